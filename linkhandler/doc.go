// Package linkhandler implements the link browser core: a registry of
// pluggable handlers, one per link category, and the per-request session
// that resolves the current link, builds the selector menu and renders the
// active handler's browse model.
//
// Handlers are tried against the current link in scan order and shown as
// menu tabs in display order; both orders are independent topological
// orderings over the configured before/after constraints. Orderings are
// computed once at registry construction, where an empty or cyclic handler
// set fails fast.
package linkhandler
