package linkhandler

import (
	"context"
	"fmt"

	"github.com/ncobase/recordlist/config"
	"github.com/ncobase/recordlist/link"
	"github.com/ncobase/recordlist/logger"
)

// AllowedItemsModifier is the middleware hook over the visible handler tabs.
// It runs after the blind lists were applied and may only shrink further.
type AllowedItemsModifier interface {
	ModifyAllowedItems(allowed []string, parts link.Parts) []string
}

// AttributesModifier is the middleware hook over the attribute fields the
// displayed handler offers.
type AttributesModifier interface {
	ModifyAllowedLinkAttributes(attrs []string) []string
}

// Session is one link browser invocation. It carries the raw request state
// and produces the complete browse model in a fixed sequence: parse the
// current link, resolve its handler, build the tab menu, render the active
// tab. Sessions are single-use.
type Session struct {
	Registry    *Registry
	Cfg         *config.Browser
	Middlewares []any

	// CurrentLink is the raw value of the field the browser edits.
	CurrentLink string
	// Attributes are the attribute values currently set on the link; they
	// travel separately from the raw link string.
	Attributes map[string]string
	// Act overrides the displayed tab; ignored when not allowed.
	Act string
	// BParams is the raw positional parameter string of the opening form.
	BParams string
	// Params is the loosely typed configuration bag of the opener.
	Params P
	// ExpandPage and ExpandFolder carry the drill-down state.
	ExpandPage   int
	ExpandFolder string

	state sessionState
	parts link.Parts
	bp    BParams
}

type sessionState int

const (
	stateInit sessionState = iota
	stateLinkParsed
	stateHandlerResolved
	stateMenuBuilt
	stateRendered
)

// BrowseModel is the complete render state of one browser invocation.
type BrowseModel struct {
	Menu []MenuEntry `json:"menu"`
	// Active is the identifier of the displayed tab.
	Active string `json:"active"`
	// CurrentURL is the human-readable form of the current link, empty when
	// none is set or the displayed tab does not hold it.
	CurrentURL string `json:"current_url,omitempty"`
	// Attributes lists the attribute fields the displayed tab offers;
	// AttributeValues seeds them from the current link.
	Attributes      []string          `json:"attributes"`
	AttributeValues map[string]string `json:"attribute_values,omitempty"`
	SupportsUpdate  bool              `json:"supports_update"`
	Body            *RenderModel      `json:"body"`
}

// Run executes the session and returns the browse model.
func (s *Session) Run(ctx context.Context) (*BrowseModel, error) {
	if s.state != stateInit {
		return nil, fmt.Errorf("link browser session already ran")
	}

	s.bp = ParseBParams(s.BParams)
	s.parts = s.parseCurrentLink(ctx)
	s.state = stateLinkParsed

	currentID, currentHandler := s.Registry.Resolve(ctx, s.parts)
	s.state = stateHandlerResolved

	allowed := s.allowedItems()

	displayedID := currentID
	if s.Act != "" && contains(allowed, s.Act) {
		displayedID = s.Act
	}
	menu, fellBack := s.Registry.BuildMenu(allowed, displayedID)
	if len(menu) == 0 {
		return nil, fmt.Errorf("all link handler tabs are disabled: %w", ErrNoHandlersConfigured)
	}
	if fellBack {
		// The tab holding the current link is not shown, so its link state
		// must not leak into the tab that is.
		s.parts = link.Parts{}
		currentID, currentHandler = "", nil
		displayedID = activeOf(menu)
	}
	s.state = stateMenuBuilt
	logger.Debugf(ctx, "link browser shows tab %q (link tab %q)", displayedID, currentID)

	handler := currentHandler
	if displayedID != currentID || handler == nil {
		d, ok := s.Registry.Get(displayedID)
		if !ok {
			return nil, fmt.Errorf("unknown link handler %q", displayedID)
		}
		handler = d.New()
	}

	body, err := handler.Render(ctx, s.renderRequest())
	if err != nil {
		return nil, fmt.Errorf("render tab %q: %w", displayedID, err)
	}
	s.state = stateRendered

	model := &BrowseModel{
		Menu:           menu,
		Active:         displayedID,
		Attributes:     s.allowedLinkAttributes(handler),
		SupportsUpdate: handler.SupportsUpdate(),
		Body:           body,
	}
	if displayedID == currentID && currentID != "" {
		model.CurrentURL = handler.FormatCurrentURL()
		model.AttributeValues = s.attributeValues(model.Attributes)
	}
	return model, nil
}

// parseCurrentLink never fails: an unparseable value classifies as a URL and
// the URL tab shows it for correction.
func (s *Session) parseCurrentLink(ctx context.Context) link.Parts {
	if s.CurrentLink == "" {
		return link.Parts{}
	}
	return link.Parts{
		Dest:   link.Parse(s.CurrentLink),
		Target: s.Attributes[AttrTarget],
		Title:  s.Attributes[AttrTitle],
		Class:  s.Attributes[AttrClass],
		Params: s.Attributes[AttrParams],
	}
}

// allowedItems starts from all registered tabs in display order and strips
// the global and per-request blind lists, then lets middleware shrink the
// rest.
func (s *Session) allowedItems() []string {
	allowed := s.Registry.Identifiers()
	if s.Cfg != nil {
		allowed = without(allowed, s.Cfg.BlindLinkOptions)
	}
	allowed = without(allowed, s.Params.Strings(PBlindLinkOptions))
	for _, m := range s.Middlewares {
		if mod, ok := m.(AllowedItemsModifier); ok {
			allowed = mod.ModifyAllowedItems(allowed, s.parts)
		}
	}
	return allowed
}

func (s *Session) allowedLinkAttributes(h Handler) []string {
	attrs := h.LinkAttributes()
	if s.Cfg != nil {
		attrs = without(attrs, s.Cfg.BlindLinkFields)
	}
	attrs = without(attrs, s.Params.Strings(PBlindLinkFields))
	for _, m := range s.Middlewares {
		if mod, ok := m.(AttributesModifier); ok {
			attrs = mod.ModifyAllowedLinkAttributes(attrs)
		}
	}
	return attrs
}

// attributeValues seeds the attribute form fields from the current link,
// restricted to the fields actually offered.
func (s *Session) attributeValues(allowed []string) map[string]string {
	all := map[string]string{
		AttrTarget: s.parts.Target,
		AttrTitle:  s.parts.Title,
		AttrClass:  s.parts.Class,
		AttrParams: s.parts.Params,
	}
	out := make(map[string]string, len(allowed))
	for _, a := range allowed {
		if v := all[a]; v != "" {
			out[a] = v
		}
	}
	return out
}

func (s *Session) renderRequest() *Request {
	req := &Request{
		ExpandPage:   s.ExpandPage,
		ExpandFolder: s.ExpandFolder,
	}
	if !s.bp.AllowsAll() {
		req.AllowedExtensions = s.bp.Allowed
	}
	if ext := s.Params.Strings(PAllowedExtensions); len(ext) > 0 {
		req.AllowedExtensions = ext
	}
	return req
}

func activeOf(menu []MenuEntry) string {
	for _, m := range menu {
		if m.Active {
			return m.Identifier
		}
	}
	return ""
}

func contains(list []string, v string) bool {
	for _, x := range list {
		if x == v {
			return true
		}
	}
	return false
}

func without(list, drop []string) []string {
	if len(drop) == 0 {
		return list
	}
	out := make([]string, 0, len(list))
	for _, v := range list {
		if !contains(drop, v) {
			out = append(out, v)
		}
	}
	return out
}
