package linkhandler

import (
	"context"

	"github.com/ncobase/recordlist/link"
)

// Link attribute field names
const (
	AttrTarget = "target"
	AttrTitle  = "title"
	AttrClass  = "class"
	AttrParams = "params"
)

func defaultAttributes() []string {
	return []string{AttrTarget, AttrTitle, AttrClass, AttrParams}
}

// Request carries the drill-down state a handler may consume while
// rendering.
type Request struct {
	// ExpandPage is the page whose content elements the page handler lists.
	ExpandPage int
	// ExpandFolder is the folder the file and folder handlers list.
	ExpandFolder string
	// AllowedExtensions restricts file listings; empty or "*" allows all.
	AllowedExtensions []string
}

// Handler recognizes and renders one category of link target.
//
// CanHandleLink is a predicate over the link parts. It may perform read-only
// lookups that can fail; any failure means "not mine" and is never
// propagated. A truthy result may cache resolution results on the handler
// instance for its own later FormatCurrentURL/Render calls; no shared state
// is touched while deciding.
type Handler interface {
	CanHandleLink(ctx context.Context, parts link.Parts) bool
	// FormatCurrentURL is only valid after a truthy CanHandleLink.
	FormatCurrentURL() string
	Render(ctx context.Context, req *Request) (*RenderModel, error)
	// LinkAttributes returns the attribute fields this category supports.
	LinkAttributes() []string
	// SupportsUpdate reports whether "update current link" applies to this
	// category.
	SupportsUpdate() bool
}

// ElementModel is one selectable entry of a handler's browse body.
type ElementModel struct {
	// URL is the raw link string selecting this element.
	URL      string `json:"url"`
	Title    string `json:"title"`
	Uid      int    `json:"uid,omitempty"`
	Selected bool   `json:"selected,omitempty"`
}

// PageModel describes the expanded page heading of the page handler body.
type PageModel struct {
	Uid   int    `json:"uid"`
	Title string `json:"title"`
}

// RenderModel is the handler-specific browse body, consumed by the
// templating layer. Only the sections of the rendering handler's category
// are populated.
type RenderModel struct {
	Kind link.Kind `json:"kind"`

	// Page handler: the expanded page and its content elements.
	ActivePage *PageModel     `json:"activePage,omitempty"`
	Elements   []ElementModel `json:"elements,omitempty"`

	// File and folder handlers: folder drill-down.
	Folders []ElementModel `json:"folders,omitempty"`
	Files   []ElementModel `json:"files,omitempty"`

	// URL and mail handlers: the editable current value.
	Value string `json:"value,omitempty"`
}
