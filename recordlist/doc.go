// Package recordlist implements the list module core: windowed fetching of
// ordered record collections with the sibling bookkeeping manual reordering
// needs, and the composition of rows, control actions, clipboard offers and
// localization entries into the renderable table model.
package recordlist
