package recordlist

import (
	"context"
	"testing"

	"github.com/ncobase/recordlist/store"
)

func testSchemas() store.Schemas {
	return store.Schemas{
		"tt_content": {
			Name:       "tt_content",
			Label:      "Content",
			TitleField: "header",
			SortField:  "sorting",
			Fields:     []string{"header", "hidden"},
		},
		"sys_log": {
			Name:       "sys_log",
			Label:      "Log",
			TitleField: "details",
			Fields:     []string{"details"},
		},
	}
}

// seedContent inserts n manually ordered rows with uids 1..n on page 10.
func seedContent(n int) *store.MemStore {
	ms := store.NewMemStore(testSchemas())
	for i := 1; i <= n; i++ {
		ms.Insert("tt_content", store.Row{
			Uid: i, Pid: 10,
			Fields: map[string]any{"header": "Element", "sorting": i * 16},
		})
	}
	return ms
}

func contentScope() store.Scope { return store.Scope{PageID: 10} }

func TestFetchPlainWindow(t *testing.T) {
	p := &Pager{Store: seedContent(10), Schemas: testSchemas()}

	w, _, err := p.Fetch(context.Background(), "tt_content", contentScope(), nil, store.Sort{}, 0, 3)
	if err != nil {
		t.Fatal(err)
	}
	if len(w.Rows) != 3 || w.Rows[0].Uid != 1 || w.Rows[2].Uid != 3 {
		t.Errorf("rows = %v", uids(w.Rows))
	}
	if w.TotalCount != 10 || w.FirstIndex != 0 {
		t.Errorf("window = %+v", w)
	}
	if !w.HasNext() || w.HasPrev() {
		t.Errorf("HasNext/HasPrev = %v/%v", w.HasNext(), w.HasPrev())
	}
}

func TestFetchClampsOffset(t *testing.T) {
	p := &Pager{Store: seedContent(5), Schemas: testSchemas()}

	w, _, err := p.Fetch(context.Background(), "tt_content", contentScope(), nil, store.Sort{}, 50, 3)
	if err != nil {
		t.Fatal(err)
	}
	if w.FirstIndex != 0 {
		t.Errorf("offset beyond total not clamped: FirstIndex = %d", w.FirstIndex)
	}
	if got := uids(w.Rows); len(got) != 3 || got[0] != 1 {
		t.Errorf("rows = %v", got)
	}
}

func TestFetchAllWithoutLimit(t *testing.T) {
	p := &Pager{Store: seedContent(7), Schemas: testSchemas()}

	w, _, err := p.Fetch(context.Background(), "tt_content", contentScope(), nil, store.Sort{}, 0, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(w.Rows) != 7 {
		t.Errorf("got %d rows, want all 7", len(w.Rows))
	}
}

// A window starting mid-collection must know its edge neighbours: moving the
// first visible row up has to target the element before the window.
func TestFetchBridgesWindowEdges(t *testing.T) {
	p := &Pager{Store: seedContent(10), Schemas: testSchemas()}

	w, sib, err := p.Fetch(context.Background(), "tt_content", contentScope(), nil, store.Sort{}, 4, 3)
	if err != nil {
		t.Fatal(err)
	}
	if got := uids(w.Rows); len(got) != 3 || got[0] != 5 || got[2] != 7 {
		t.Fatalf("rows = %v, want [5 6 7]", got)
	}

	// Moving uid 5 up lands it after uid 3, the element before uid 4.
	if got := sib.PrevOf[5]; got != -3 {
		t.Errorf("PrevOf[5] = %d, want -3", got)
	}
	if got := sib.PrevUidOf[5]; got != 4 {
		t.Errorf("PrevUidOf[5] = %d, want 4", got)
	}
	// Moving uid 4 down lands it after uid 5 even though 4 is not visible.
	if got := sib.NextOf[4]; got != -5 {
		t.Errorf("NextOf[4] = %d, want -5", got)
	}
	if got := sib.PrevOf[6]; got != -4 {
		t.Errorf("PrevOf[6] = %d, want -4", got)
	}
	if got := sib.NextOf[6]; got != -7 {
		t.Errorf("NextOf[6] = %d, want -7", got)
	}
}

func TestFetchFirstPageSiblings(t *testing.T) {
	p := &Pager{Store: seedContent(5), Schemas: testSchemas()}

	w, sib, err := p.Fetch(context.Background(), "tt_content", contentScope(), nil, store.Sort{}, 0, 3)
	if err != nil {
		t.Fatal(err)
	}
	if got := uids(w.Rows); got[0] != 1 {
		t.Fatalf("rows = %v", got)
	}
	// The very first row has nothing to move up past.
	if _, ok := sib.PrevOf[1]; ok {
		t.Error("PrevOf[1] set for the first element")
	}
	// The second row moves up to the top of the page.
	if got := sib.PrevOf[2]; got != 10 {
		t.Errorf("PrevOf[2] = %d, want page id 10", got)
	}
	if got := sib.NextOf[1]; got != -2 {
		t.Errorf("NextOf[1] = %d, want -2", got)
	}
}

func TestFetchNoSiblingsWhenReSorted(t *testing.T) {
	p := &Pager{Store: seedContent(5), Schemas: testSchemas()}

	_, sib, err := p.Fetch(context.Background(), "tt_content", contentScope(), nil, store.Sort{Field: "header"}, 0, 5)
	if err != nil {
		t.Fatal(err)
	}
	if len(sib.PrevOf) != 0 || len(sib.NextOf) != 0 {
		t.Errorf("siblings computed for re-sorted view: %+v", sib)
	}
}

func TestFetchNoSiblingsWithoutSortField(t *testing.T) {
	ms := store.NewMemStore(testSchemas())
	ms.Insert("sys_log", store.Row{Uid: 1, Pid: 10, Fields: map[string]any{"details": "a"}})
	ms.Insert("sys_log", store.Row{Uid: 2, Pid: 10, Fields: map[string]any{"details": "b"}})
	p := &Pager{Store: ms, Schemas: testSchemas()}

	_, sib, err := p.Fetch(context.Background(), "sys_log", contentScope(), nil, store.Sort{}, 0, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(sib.PrevOf) != 0 {
		t.Errorf("siblings computed for unsortable table: %+v", sib)
	}
}

func TestFetchUnknownTable(t *testing.T) {
	p := &Pager{Store: seedContent(1), Schemas: testSchemas()}
	if _, _, err := p.Fetch(context.Background(), "nope", contentScope(), nil, store.Sort{}, 0, 1); err == nil {
		t.Error("Fetch accepted unknown table")
	}
}

func TestFetchCollaboratorFailure(t *testing.T) {
	ms := seedContent(3)
	ms.Fail = context.DeadlineExceeded
	p := &Pager{Store: ms, Schemas: testSchemas()}

	_, _, err := p.Fetch(context.Background(), "tt_content", contentScope(), nil, store.Sort{}, 0, 1)
	if err == nil {
		t.Fatal("Fetch succeeded against failing store")
	}
}

func TestDecodeMoveTarget(t *testing.T) {
	if got := DecodeMoveTarget(-7); got.Position != MoveAfter || got.Target != 7 {
		t.Errorf("DecodeMoveTarget(-7) = %+v", got)
	}
	if got := DecodeMoveTarget(10); got.Position != MoveTop || got.Target != 10 {
		t.Errorf("DecodeMoveTarget(10) = %+v", got)
	}
}

func uids(rows []store.Row) []int {
	out := make([]int, len(rows))
	for i, r := range rows {
		out[i] = r.Uid
	}
	return out
}
