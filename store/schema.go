package store

import (
	"sort"

	"github.com/ncobase/recordlist/config"
)

// Schema describes the list-relevant metadata of a table. It mirrors what
// the surrounding application knows about its tables: which column carries
// the manual sort order, which one disables a record, and so on.
type Schema struct {
	Name  string
	Label string
	// TitleField is the column used as the record title.
	TitleField string
	// SortField is the manual-sort column. Empty means the table has no
	// manual ordering.
	SortField string
	// DisabledField is the hide/unhide flag column, empty when the table has
	// none.
	DisabledField string
	// ReadOnly suppresses all mutating actions.
	ReadOnly bool
	// LanguageField and TranslationParentField enable the localization view.
	LanguageField          string
	TranslationParentField string
	// DeleteStateField marks versioned records in deleted state; such rows
	// offer restore instead of delete.
	DeleteStateField string
	// UseColumnsForDefaultValues lets new records inherit defaults from the
	// previous record, which makes "new after" useful even without manual
	// sorting.
	UseColumnsForDefaultValues bool
	// DuplicateField pre-selects duplicate rows on numbered clipboard pads.
	DuplicateField string
	// AliasField is the column alias lookups resolve against, empty when the
	// table has no aliases.
	AliasField string
	// Fields is the full list of selectable display columns.
	Fields []string
}

// HasField reports whether name is a selectable column.
func (s Schema) HasField(name string) bool {
	for _, f := range s.Fields {
		if f == name {
			return true
		}
	}
	return false
}

// Schemas is a table name to schema lookup.
type Schemas map[string]Schema

// Get returns the schema for table and whether it is known.
func (s Schemas) Get(table string) (Schema, bool) {
	sc, ok := s[table]
	return sc, ok
}

// Names returns the known table names in stable order.
func (s Schemas) Names() []string {
	out := make([]string, 0, len(s))
	for name := range s {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// SchemasFromConfig converts configured table entries into the schema lookup.
func SchemasFromConfig(entries []config.TableEntry) Schemas {
	out := make(Schemas, len(entries))
	for _, e := range entries {
		out[e.Name] = Schema{
			Name:                       e.Name,
			Label:                      e.Label,
			TitleField:                 e.TitleField,
			SortField:                  e.SortField,
			DisabledField:              e.DisabledField,
			ReadOnly:                   e.ReadOnly,
			LanguageField:              e.LanguageField,
			TranslationParentField:     e.TranslationParentField,
			DeleteStateField:           e.DeleteStateField,
			UseColumnsForDefaultValues: e.UseColumnsForDefaultValues,
			DuplicateField:             e.DuplicateField,
			AliasField:                 e.AliasField,
			Fields:                     e.Fields,
		}
	}
	return out
}
