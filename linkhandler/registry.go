package linkhandler

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ncobase/recordlist/config"
	"github.com/ncobase/recordlist/link"
	"github.com/ncobase/recordlist/logger"
)

// ErrNoHandlersConfigured is returned when a registry is built without a
// single handler entry.
var ErrNoHandlersConfigured = errors.New("no link handlers configured")

// Factory builds the handler instance for one configured entry. Resolution
// state is cached on instances, so each registry use gets fresh ones.
type Factory func() Handler

// Descriptor is one registered handler tab.
type Descriptor struct {
	Identifier string
	Kind       link.Kind
	Label      string
	New        Factory
}

// Registry holds the configured handlers in their two precomputed orders:
// the scan order link resolution walks and the display order the selector
// menu shows. The two orders are independent.
type Registry struct {
	byID    map[string]Descriptor
	scan    []string
	display []string
}

// NewRegistry validates the configured entries, binds each to its factory
// and resolves both dependency orders. Unknown references and cycles are
// configuration errors and surface here, not at resolution time.
func NewRegistry(entries []config.HandlerEntry, factories map[string]Factory) (*Registry, error) {
	if len(entries) == 0 {
		return nil, ErrNoHandlersConfigured
	}

	r := &Registry{byID: make(map[string]Descriptor, len(entries))}
	ids := make([]string, 0, len(entries))
	for _, e := range entries {
		if _, dup := r.byID[e.Identifier]; dup {
			return nil, fmt.Errorf("duplicate link handler %q", e.Identifier)
		}
		f, ok := factories[e.Kind]
		if !ok {
			return nil, fmt.Errorf("link handler %q: no factory for kind %q", e.Identifier, e.Kind)
		}
		label := e.Label
		if label == "" {
			label = strings.ToUpper(e.Kind[:1]) + e.Kind[1:]
		}
		r.byID[e.Identifier] = Descriptor{
			Identifier: e.Identifier,
			Kind:       link.Kind(e.Kind),
			Label:      label,
			New:        f,
		}
		ids = append(ids, e.Identifier)
	}

	var err error
	if r.scan, err = dependencyOrder(entries, ids, scanEdges); err != nil {
		return nil, fmt.Errorf("scan order: %w", err)
	}
	if r.display, err = dependencyOrder(entries, ids, displayEdges); err != nil {
		return nil, fmt.Errorf("display order: %w", err)
	}
	return r, nil
}

// Identifiers returns the handler ids in display order.
func (r *Registry) Identifiers() []string {
	out := make([]string, len(r.display))
	copy(out, r.display)
	return out
}

// Get returns the descriptor for id.
func (r *Registry) Get(id string) (Descriptor, bool) {
	d, ok := r.byID[id]
	return d, ok
}

// Resolve walks the handlers in scan order and returns the first one that
// claims the link, together with its id. A nil handler means no handler
// recognized the link.
func (r *Registry) Resolve(ctx context.Context, parts link.Parts) (string, Handler) {
	if parts.IsEmpty() {
		return "", nil
	}
	for _, id := range r.scan {
		h := r.byID[id].New()
		if h.CanHandleLink(ctx, parts) {
			logger.Debugf(ctx, "link claimed by handler %q", id)
			return id, h
		}
	}
	return "", nil
}

// MenuEntry is one tab of the handler selector menu.
type MenuEntry struct {
	Identifier string `json:"identifier"`
	Label      string `json:"label"`
	Active     bool   `json:"active"`
}

// BuildMenu produces the selector menu over the allowed handler ids in
// display order. Exactly one entry is active: activeID when it is part of
// the menu, otherwise the first entry. The second return reports whether the
// fallback was taken, in which case any current link state belongs to a tab
// that is not shown and must be discarded by the caller.
func (r *Registry) BuildMenu(allowed []string, activeID string) ([]MenuEntry, bool) {
	allow := make(map[string]bool, len(allowed))
	for _, id := range allowed {
		allow[id] = true
	}

	var menu []MenuEntry
	found := false
	for _, id := range r.display {
		if !allow[id] {
			continue
		}
		d := r.byID[id]
		active := id == activeID
		found = found || active
		menu = append(menu, MenuEntry{Identifier: id, Label: d.Label, Active: active})
	}
	if !found && len(menu) > 0 {
		menu[0].Active = true
	}
	return menu, !found
}

func scanEdges(e config.HandlerEntry) (before, after []string) {
	return e.ScanBefore, e.ScanAfter
}

func displayEdges(e config.HandlerEntry) (before, after []string) {
	return e.DisplayBefore, e.DisplayAfter
}

// dependencyOrder resolves one before/after graph into a linear order.
// "X before B" and "B after X" both mean X precedes B. Entries without
// dependencies go first; the rest are placed once everything they depend on
// is placed. Ties keep the configured entry order, so the output is stable
// across runs. A pass without progress means a cycle.
func dependencyOrder(entries []config.HandlerEntry, ids []string, edges func(config.HandlerEntry) (before, after []string)) ([]string, error) {
	known := make(map[string]bool, len(ids))
	for _, id := range ids {
		known[id] = true
	}

	deps := make(map[string][]string, len(ids))
	for _, e := range entries {
		before, after := edges(e)
		for _, dep := range after {
			if !known[dep] {
				return nil, fmt.Errorf("handler %q references unknown handler %q", e.Identifier, dep)
			}
			deps[e.Identifier] = append(deps[e.Identifier], dep)
		}
		for _, succ := range before {
			if !known[succ] {
				return nil, fmt.Errorf("handler %q references unknown handler %q", e.Identifier, succ)
			}
			deps[succ] = append(deps[succ], e.Identifier)
		}
	}

	var order, pending []string
	placed := make(map[string]bool, len(ids))
	for _, id := range ids {
		if len(deps[id]) == 0 {
			order = append(order, id)
			placed[id] = true
		} else {
			pending = append(pending, id)
		}
	}

	for len(pending) > 0 {
		progress := false
		remaining := pending[:0]
		for _, id := range pending {
			ready := true
			for _, dep := range deps[id] {
				if !placed[dep] {
					ready = false
					break
				}
			}
			if ready {
				order = append(order, id)
				placed[id] = true
				progress = true
			} else {
				remaining = append(remaining, id)
			}
		}
		if !progress {
			return nil, fmt.Errorf("dependency cycle between handlers %s", strings.Join(remaining, ", "))
		}
		pending = remaining
	}
	return order, nil
}
