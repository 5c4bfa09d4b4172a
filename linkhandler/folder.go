package linkhandler

import (
	"context"
	"fmt"

	"github.com/ncobase/recordlist/link"
	"github.com/ncobase/recordlist/store"
)

// FolderHandler recognizes links to storage folders.
type FolderHandler struct {
	FS store.FileSystem

	parts link.Parts
	item  store.FSItem
}

// NewFolderHandler builds a folder handler over the given file storage.
func NewFolderHandler(fs store.FileSystem) *FolderHandler {
	return &FolderHandler{FS: fs}
}

// CanHandleLink accepts folder destinations whose identifier resolves to an
// existing folder.
func (h *FolderHandler) CanHandleLink(ctx context.Context, parts link.Parts) bool {
	dest, ok := parts.Dest.(link.Folder)
	if !ok {
		return false
	}
	item, err := h.FS.ResolveIdentifier(ctx, dest.Identifier)
	if err != nil || !item.Folder {
		return false
	}
	h.parts = parts
	h.item = item
	return true
}

// FormatCurrentURL implements Handler.
func (h *FolderHandler) FormatCurrentURL() string { return h.item.Identifier }

// Render lists the subfolders of the expanded folder, each both selectable
// as a target and expandable for further drill-down.
func (h *FolderHandler) Render(ctx context.Context, req *Request) (*RenderModel, error) {
	folder := req.ExpandFolder
	if folder == "" {
		folder = "/"
	}
	m := &RenderModel{Kind: link.KindFolder}

	folders, err := h.FS.ListFolders(ctx, folder)
	if err != nil {
		return nil, fmt.Errorf("list folders of %s: %w", folder, err)
	}
	cur, _ := h.parts.Dest.(link.Folder)
	for _, f := range folders {
		m.Folders = append(m.Folders, ElementModel{
			URL:      link.Format(link.Folder{Identifier: f.Identifier}),
			Title:    f.Name,
			Selected: cur.Identifier != "" && cur.Identifier == f.Identifier,
		})
	}
	return m, nil
}

// LinkAttributes implements Handler.
func (h *FolderHandler) LinkAttributes() []string { return defaultAttributes() }

// SupportsUpdate implements Handler.
func (h *FolderHandler) SupportsUpdate() bool { return true }
