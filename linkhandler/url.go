package linkhandler

import (
	"context"
	"strings"

	"github.com/ncobase/recordlist/link"
)

// URLHandler recognizes external URL links. It is a catch-all: the parser
// classifies anything it cannot shape otherwise as a URL, so this handler's
// scan position decides the fate of unrecognized links.
type URLHandler struct {
	href string
}

// NewURLHandler builds a URL handler.
func NewURLHandler() *URLHandler { return &URLHandler{} }

// CanHandleLink accepts URL destinations. A scheme-less value is prefixed
// with http:// so a bare host typed by an editor stays a working link.
func (h *URLHandler) CanHandleLink(ctx context.Context, parts link.Parts) bool {
	dest, ok := parts.Dest.(link.URL)
	if !ok {
		return false
	}
	h.href = NormalizeURL(dest.Href)
	return true
}

// FormatCurrentURL implements Handler.
func (h *URLHandler) FormatCurrentURL() string { return h.href }

// Render exposes the current value for the URL input form.
func (h *URLHandler) Render(ctx context.Context, req *Request) (*RenderModel, error) {
	return &RenderModel{Kind: link.KindURL, Value: h.href}, nil
}

// LinkAttributes implements Handler. External links carry no additional
// query parameters.
func (h *URLHandler) LinkAttributes() []string {
	return []string{AttrTarget, AttrTitle, AttrClass}
}

// SupportsUpdate implements Handler.
func (h *URLHandler) SupportsUpdate() bool { return false }

// NormalizeURL prefixes http:// when no scheme separator is present.
func NormalizeURL(href string) string {
	if href == "" || strings.Contains(href, "://") {
		return href
	}
	return "http://" + href
}
