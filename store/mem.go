package store

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
)

// MemStore is an in-memory RecordStore. It backs tests and small
// deployments without a database.
type MemStore struct {
	mu      sync.RWMutex
	schemas Schemas
	tables  map[string][]Row
	aliases map[string]map[string]int
	refs    map[string]map[int]int

	// Fail, when set, makes every operation return a collaborator error.
	Fail error
}

// NewMemStore creates an empty store over the given schemas.
func NewMemStore(schemas Schemas) *MemStore {
	return &MemStore{
		schemas: schemas,
		tables:  make(map[string][]Row),
		aliases: make(map[string]map[string]int),
		refs:    make(map[string]map[int]int),
	}
}

// Insert appends a row to table, keeping insertion order as storage order.
func (m *MemStore) Insert(table string, row Row) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if row.Fields == nil {
		row.Fields = map[string]any{}
	}
	if _, ok := row.Fields["uid"]; !ok {
		row.Fields["uid"] = row.Uid
	}
	if _, ok := row.Fields["pid"]; !ok {
		row.Fields["pid"] = row.Pid
	}
	m.tables[table] = append(m.tables[table], row)
}

// Delete removes a row by uid.
func (m *MemStore) Delete(table string, uid int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	rows := m.tables[table]
	for i, r := range rows {
		if r.Uid == uid {
			m.tables[table] = append(rows[:i:i], rows[i+1:]...)
			return
		}
	}
}

// SetReferences records the reference-index count for a record.
func (m *MemStore) SetReferences(table string, uid, n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.refs[table] == nil {
		m.refs[table] = make(map[int]int)
	}
	m.refs[table][uid] = n
}

// SetAlias registers an alias for a uid.
func (m *MemStore) SetAlias(table, alias string, uid int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.aliases[table] == nil {
		m.aliases[table] = make(map[string]int)
	}
	m.aliases[table][alias] = uid
}

// Count implements RecordStore.
func (m *MemStore) Count(ctx context.Context, table string, scope Scope, filter Filter) (int, error) {
	if m.Fail != nil {
		return 0, Unavailable("count "+table, m.Fail)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.match(table, scope, filter)), nil
}

// FetchWindow implements RecordStore.
func (m *MemStore) FetchWindow(ctx context.Context, table string, scope Scope, filter Filter, srt Sort, offset, limit int) ([]Row, error) {
	if m.Fail != nil {
		return nil, Unavailable("fetch "+table, m.Fail)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	rows := m.match(table, scope, filter)

	field := srt.Field
	if field == "" {
		if sc, ok := m.schemas.Get(table); ok {
			field = sc.SortField
		}
	}
	if field != "" {
		// Stable sort preserves storage order on ties.
		sort.SliceStable(rows, func(i, j int) bool {
			less := compareValues(rows[i].Fields[field], rows[j].Fields[field])
			if srt.Desc {
				return less > 0
			}
			return less < 0
		})
	}

	if offset < 0 {
		offset = 0
	}
	if offset >= len(rows) {
		return nil, nil
	}
	rows = rows[offset:]
	if limit > 0 && limit < len(rows) {
		rows = rows[:limit]
	}

	out := make([]Row, len(rows))
	copy(out, rows)
	return out, nil
}

// ResolveAlias implements RecordStore.
func (m *MemStore) ResolveAlias(ctx context.Context, table, alias string) (int, error) {
	if m.Fail != nil {
		return 0, Unavailable("resolve alias "+table, m.Fail)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if uid, ok := m.aliases[table][alias]; ok {
		return uid, nil
	}
	return 0, ErrNotFound
}

// GetRecord implements RecordStore.
func (m *MemStore) GetRecord(ctx context.Context, table string, uid int) (Row, error) {
	if m.Fail != nil {
		return Row{}, Unavailable("get "+table, m.Fail)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, r := range m.tables[table] {
		if r.Uid == uid {
			return r, nil
		}
	}
	return Row{}, ErrNotFound
}

// CountReferences implements RecordStore.
func (m *MemStore) CountReferences(ctx context.Context, table string, uid int) (int, error) {
	if m.Fail != nil {
		return 0, Unavailable("count references "+table, m.Fail)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.refs[table][uid], nil
}

func (m *MemStore) match(table string, scope Scope, filter Filter) []Row {
	sc, _ := m.schemas.Get(table)

	var out []Row
	for _, r := range m.tables[table] {
		if scope.Search != "" {
			title, _ := r.Fields[sc.TitleField].(string)
			if !containsFold(title, scope.Search) {
				continue
			}
			if scope.SearchLevels == 0 && r.Pid != scope.PageID {
				continue
			}
		} else if r.Pid != scope.PageID {
			continue
		}

		ok := true
		for field, want := range filter {
			if fmt.Sprint(r.Fields[field]) != fmt.Sprint(want) {
				ok = false
				break
			}
		}
		if ok {
			out = append(out, r)
		}
	}
	return out
}

func compareValues(a, b any) int {
	af, aok := asFloat(a)
	bf, bok := asFloat(b)
	if aok && bok {
		switch {
		case af < bf:
			return -1
		case af > bf:
			return 1
		}
		return 0
	}
	as, bs := fmt.Sprint(a), fmt.Sprint(b)
	switch {
	case as < bs:
		return -1
	case as > bs:
		return 1
	}
	return 0
}

func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}

func containsFold(s, sub string) bool {
	return sub == "" || strings.Contains(strings.ToLower(s), strings.ToLower(sub))
}
