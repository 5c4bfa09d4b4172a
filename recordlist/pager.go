package recordlist

import (
	"context"
	"fmt"

	"github.com/ncobase/recordlist/store"
)

// Window is one page of a table listing.
type Window struct {
	Rows       []store.Row `json:"rows"`
	FirstIndex int         `json:"first_index"`
	PageSize   int         `json:"page_size"`
	TotalCount int         `json:"total_count"`
}

// HasPrev reports whether a page precedes this window.
func (w *Window) HasPrev() bool { return w.FirstIndex > 0 }

// HasNext reports whether a page follows this window.
func (w *Window) HasNext() bool {
	return w.PageSize > 0 && w.FirstIndex+len(w.Rows) < w.TotalCount
}

// Siblings carries the move targets computed while walking a window. Values
// use a signed convention: a negative target means "place after record
// -target", a positive target means "place at the top of page target".
// PrevOf answers "where does uid go when moved one slot up", NextOf "one slot
// down", and PrevUidOf records the plain uid of the preceding row.
type Siblings struct {
	PrevOf    map[int]int `json:"prev_of"`
	NextOf    map[int]int `json:"next_of"`
	PrevUidOf map[int]int `json:"prev_uid_of"`
}

func newSiblings() *Siblings {
	return &Siblings{
		PrevOf:    make(map[int]int),
		NextOf:    make(map[int]int),
		PrevUidOf: make(map[int]int),
	}
}

// MovePosition says how a decoded move target is to be interpreted.
type MovePosition string

const (
	// MoveAfter places the record directly after the target record.
	MoveAfter MovePosition = "after"
	// MoveTop places the record at the top of the target page.
	MoveTop MovePosition = "top"
)

// MoveTarget is the decoded form of a signed sibling value.
type MoveTarget struct {
	Position MovePosition `json:"position"`
	Target   int          `json:"target"`
}

// DecodeMoveTarget unpacks the signed sibling convention into a tagged value.
func DecodeMoveTarget(v int) MoveTarget {
	if v < 0 {
		return MoveTarget{Position: MoveAfter, Target: -v}
	}
	return MoveTarget{Position: MoveTop, Target: v}
}

// Pager fetches listing windows from a record store.
type Pager struct {
	Store   store.RecordStore
	Schemas store.Schemas
}

// Fetch returns one window of table rows plus the sibling maps for manual
// reordering. A non-positive limit fetches the complete collection. The
// offset is clamped into [0, totalCount). Sibling maps are only populated
// when the table carries a manual sort field and no explicit sort overrides
// it; they are returned non-nil either way.
//
// To know the records adjacent to the window's edges, the fetch is widened by
// two rows in front of the requested offset. The two extra rows seed the
// sibling chain and are dropped from the returned window.
func (p *Pager) Fetch(ctx context.Context, table string, scope store.Scope, filter store.Filter, sort store.Sort, offset, limit int) (*Window, *Siblings, error) {
	schema, ok := p.Schemas.Get(table)
	if !ok {
		return nil, nil, fmt.Errorf("unknown table %q: %w", table, store.ErrNotFound)
	}

	total, err := p.Store.Count(ctx, table, scope, filter)
	if err != nil {
		return nil, nil, fmt.Errorf("count %s: %w", table, err)
	}

	if offset < 0 || offset >= total {
		offset = 0
	}

	effSort := sort
	manualOrder := schema.SortField != "" && sort.Field == ""
	if manualOrder {
		effSort = store.Sort{Field: schema.SortField}
	}

	fetchOffset, fetchLimit := offset, limit
	bridged := false
	if offset > 2 && limit > 0 {
		fetchOffset -= 2
		fetchLimit += 2
		bridged = true
	}

	rows, err := p.Store.FetchWindow(ctx, table, scope, filter, effSort, fetchOffset, fetchLimit)
	if err != nil {
		return nil, nil, fmt.Errorf("fetch %s window: %w", table, err)
	}

	sib := newSiblings()
	prevUid, prevPrevUid := 0, 0
	if bridged && len(rows) >= 2 {
		prevPrevUid = -rows[0].Uid
		prevUid = rows[1].Uid
		rows = rows[2:]
	}
	if limit > 0 && len(rows) > limit {
		rows = rows[:limit]
	}

	if manualOrder {
		for _, row := range rows {
			if prevUid != 0 {
				sib.PrevOf[row.Uid] = prevPrevUid
				sib.NextOf[prevUid] = -row.Uid
				sib.PrevUidOf[row.Uid] = prevUid
			}
			if _, ok := sib.PrevOf[row.Uid]; ok {
				prevPrevUid = -prevUid
			} else {
				prevPrevUid = row.Pid
			}
			prevUid = row.Uid
		}
	}

	w := &Window{
		Rows:       rows,
		FirstIndex: offset,
		PageSize:   limit,
		TotalCount: total,
	}
	return w, sib, nil
}
