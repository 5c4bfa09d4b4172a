package linkhandler

import (
	"context"
	"fmt"

	"github.com/ncobase/recordlist/link"
	"github.com/ncobase/recordlist/logger"
	"github.com/ncobase/recordlist/store"
)

// PageHandler recognizes links to page records and renders the page tree
// drill-down with the content elements of the expanded page, so a link may
// point at a page or at one section on it.
type PageHandler struct {
	Store        store.RecordStore
	Schemas      store.Schemas
	PagesTable   string
	ContentTable string

	parts link.Parts
	uid   int
	title string
}

// NewPageHandler builds a page handler over the given record store.
func NewPageHandler(st store.RecordStore, schemas store.Schemas) *PageHandler {
	return &PageHandler{
		Store:        st,
		Schemas:      schemas,
		PagesTable:   "pages",
		ContentTable: "tt_content",
	}
}

// CanHandleLink accepts page destinations. An alias reference is resolved
// here, and the page record itself must still exist: an unknown alias or a
// deleted page means the link is not ours, so it falls through to the URL
// handler instead of producing a broken page link.
func (h *PageHandler) CanHandleLink(ctx context.Context, parts link.Parts) bool {
	dest, ok := parts.Dest.(link.Page)
	if !ok {
		return false
	}
	uid := dest.UID
	if dest.Alias != "" {
		resolved, err := h.Store.ResolveAlias(ctx, h.PagesTable, dest.Alias)
		if err != nil {
			logger.Debugf(ctx, "page alias %q did not resolve: %v", dest.Alias, err)
			return false
		}
		uid = resolved
	}
	row, err := h.Store.GetRecord(ctx, h.PagesTable, uid)
	if err != nil {
		logger.Debugf(ctx, "page %d not loadable: %v", uid, err)
		return false
	}
	h.parts = parts
	h.uid = uid
	if schema, ok := h.Schemas.Get(h.PagesTable); ok {
		h.title = fmt.Sprint(row.Fields[schema.TitleField])
	}
	return true
}

// FormatCurrentURL renders the human-readable form of the current page link.
func (h *PageHandler) FormatCurrentURL() string {
	s := fmt.Sprintf("'%s' (ID: %d)", h.title, h.uid)
	if dest, ok := h.parts.Dest.(link.Page); ok && dest.Fragment != "" {
		s += ", #" + dest.Fragment
	}
	return s
}

// Render lists the requested page and its content elements. When no page is
// expanded explicitly, the currently linked page is expanded, so reopening
// the browser shows the link's surroundings.
func (h *PageHandler) Render(ctx context.Context, req *Request) (*RenderModel, error) {
	expand := req.ExpandPage
	if expand == 0 {
		expand = h.uid
	}
	m := &RenderModel{Kind: link.KindPage}
	if expand == 0 {
		return m, nil
	}

	m.ActivePage = &PageModel{Uid: expand, Title: h.pageTitle(ctx, expand)}

	schema, ok := h.Schemas.Get(h.ContentTable)
	if !ok {
		return m, nil
	}
	rows, err := h.Store.FetchWindow(ctx, h.ContentTable, store.Scope{PageID: expand}, nil, store.Sort{Field: schema.SortField}, 0, 0)
	if err != nil {
		return nil, fmt.Errorf("list content of page %d: %w", expand, err)
	}

	cur, _ := h.parts.Dest.(link.Page)
	for _, row := range rows {
		dest := link.Page{UID: expand, Fragment: fmt.Sprint(row.Uid)}
		m.Elements = append(m.Elements, ElementModel{
			URL:      link.Format(dest),
			Title:    fmt.Sprint(row.Fields[schema.TitleField]),
			Uid:      row.Uid,
			Selected: h.uid == expand && cur.Fragment == dest.Fragment,
		})
	}
	return m, nil
}

// LinkAttributes implements Handler.
func (h *PageHandler) LinkAttributes() []string { return defaultAttributes() }

// SupportsUpdate implements Handler.
func (h *PageHandler) SupportsUpdate() bool { return true }

func (h *PageHandler) pageTitle(ctx context.Context, uid int) string {
	schema, ok := h.Schemas.Get(h.PagesTable)
	if !ok {
		return ""
	}
	row, err := h.Store.GetRecord(ctx, h.PagesTable, uid)
	if err != nil {
		logger.Debugf(ctx, "page %d not loadable: %v", uid, err)
		return ""
	}
	return fmt.Sprint(row.Fields[schema.TitleField])
}
