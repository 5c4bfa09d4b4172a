package store

import (
	"context"
	"errors"
	"testing"
)

func memSchemas() Schemas {
	return Schemas{
		"pages": {
			Name: "pages", Label: "Pages", TitleField: "title",
			SortField: "sorting", AliasField: "alias",
			Fields: []string{"title", "alias"},
		},
	}
}

func TestMemStoreScope(t *testing.T) {
	ms := NewMemStore(memSchemas())
	ms.Insert("pages", Row{Uid: 1, Pid: 0, Fields: map[string]any{"title": "Home", "sorting": 16}})
	ms.Insert("pages", Row{Uid: 2, Pid: 1, Fields: map[string]any{"title": "About", "sorting": 16}})
	ms.Insert("pages", Row{Uid: 3, Pid: 1, Fields: map[string]any{"title": "Contact", "sorting": 32}})

	n, err := ms.Count(context.Background(), "pages", Scope{PageID: 1}, nil)
	if err != nil || n != 2 {
		t.Errorf("Count = %d, %v", n, err)
	}

	rows, err := ms.FetchWindow(context.Background(), "pages", Scope{PageID: 1}, nil, Sort{}, 0, 0)
	if err != nil || len(rows) != 2 || rows[0].Uid != 2 {
		t.Errorf("FetchWindow = %v, %v", rows, err)
	}
}

func TestMemStoreSearch(t *testing.T) {
	ms := NewMemStore(memSchemas())
	ms.Insert("pages", Row{Uid: 1, Pid: 0, Fields: map[string]any{"title": "Products", "sorting": 16}})
	ms.Insert("pages", Row{Uid: 2, Pid: 5, Fields: map[string]any{"title": "Product news", "sorting": 16}})

	// Search confined to one page.
	rows, err := ms.FetchWindow(context.Background(), "pages", Scope{PageID: 0, Search: "product"}, nil, Sort{}, 0, 0)
	if err != nil || len(rows) != 1 || rows[0].Uid != 1 {
		t.Errorf("scoped search = %v, %v", rows, err)
	}

	// SearchLevels > 0 searches across pages.
	rows, err = ms.FetchWindow(context.Background(), "pages", Scope{Search: "product", SearchLevels: 1}, nil, Sort{}, 0, 0)
	if err != nil || len(rows) != 2 {
		t.Errorf("deep search = %v, %v", rows, err)
	}
}

func TestMemStoreSortDesc(t *testing.T) {
	ms := NewMemStore(memSchemas())
	ms.Insert("pages", Row{Uid: 1, Pid: 0, Fields: map[string]any{"title": "B", "sorting": 16}})
	ms.Insert("pages", Row{Uid: 2, Pid: 0, Fields: map[string]any{"title": "A", "sorting": 32}})

	rows, err := ms.FetchWindow(context.Background(), "pages", Scope{}, nil, Sort{Field: "title", Desc: true}, 0, 0)
	if err != nil || rows[0].Uid != 1 {
		t.Errorf("desc sort = %v, %v", rows, err)
	}
}

func TestMemStoreAlias(t *testing.T) {
	ms := NewMemStore(memSchemas())
	ms.Insert("pages", Row{Uid: 9, Pid: 0, Fields: map[string]any{"title": "Team", "sorting": 16}})
	ms.SetAlias("pages", "team", 9)

	uid, err := ms.ResolveAlias(context.Background(), "pages", "team")
	if err != nil || uid != 9 {
		t.Errorf("ResolveAlias = %d, %v", uid, err)
	}
	if _, err := ms.ResolveAlias(context.Background(), "pages", "gone"); !errors.Is(err, ErrNotFound) {
		t.Errorf("stale alias err = %v", err)
	}
}

func TestMemStoreFailureInjection(t *testing.T) {
	ms := NewMemStore(memSchemas())
	ms.Fail = errors.New("connection refused")

	_, err := ms.Count(context.Background(), "pages", Scope{}, nil)
	if !errors.Is(err, ErrCollaboratorUnavailable) {
		t.Errorf("err = %v, want collaborator error", err)
	}
	var ce *CollaboratorError
	if !errors.As(err, &ce) || ce.Op == "" {
		t.Errorf("err = %#v, want CollaboratorError with op", err)
	}
}

func TestExtensionAllowed(t *testing.T) {
	tests := []struct {
		ext     string
		allowed []string
		want    bool
	}{
		{"pdf", nil, true},
		{"pdf", []string{"*"}, true},
		{"pdf", []string{"jpg", "pdf"}, true},
		{"PDF", []string{"pdf"}, true},
		{"exe", []string{"jpg", "pdf"}, false},
	}
	for _, tt := range tests {
		if got := ExtensionAllowed(tt.ext, tt.allowed); got != tt.want {
			t.Errorf("ExtensionAllowed(%q, %v) = %v", tt.ext, tt.allowed, got)
		}
	}
}

func TestSchemasNames(t *testing.T) {
	s := Schemas{"b": {Name: "b"}, "a": {Name: "a"}}
	names := s.Names()
	if len(names) != 2 || names[0] != "a" {
		t.Errorf("Names() = %v", names)
	}
}
