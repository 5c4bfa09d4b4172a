package linkhandler

import (
	"context"

	"github.com/ncobase/recordlist/link"
)

// MailHandler recognizes mailto links.
type MailHandler struct {
	address string
}

// NewMailHandler builds a mail handler.
func NewMailHandler() *MailHandler { return &MailHandler{} }

// CanHandleLink accepts mail destinations.
func (h *MailHandler) CanHandleLink(ctx context.Context, parts link.Parts) bool {
	dest, ok := parts.Dest.(link.Mail)
	if !ok {
		return false
	}
	h.address = dest.Address
	return true
}

// FormatCurrentURL implements Handler.
func (h *MailHandler) FormatCurrentURL() string { return h.address }

// Render exposes the current address for the mail input form.
func (h *MailHandler) Render(ctx context.Context, req *Request) (*RenderModel, error) {
	return &RenderModel{Kind: link.KindMail, Value: h.address}, nil
}

// LinkAttributes implements Handler. A mail link opens the mail client, so
// a browser target makes no sense for it.
func (h *MailHandler) LinkAttributes() []string {
	return []string{AttrTitle, AttrClass, AttrParams}
}

// SupportsUpdate implements Handler.
func (h *MailHandler) SupportsUpdate() bool { return false }
