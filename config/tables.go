package config

import "github.com/spf13/viper"

// TableEntry describes one listable table.
type TableEntry struct {
	Name                       string   `mapstructure:"name"`
	Label                      string   `mapstructure:"label"`
	TitleField                 string   `mapstructure:"title_field"`
	SortField                  string   `mapstructure:"sort_field"`
	DisabledField              string   `mapstructure:"disabled_field"`
	ReadOnly                   bool     `mapstructure:"read_only"`
	LanguageField              string   `mapstructure:"language_field"`
	TranslationParentField     string   `mapstructure:"translation_parent_field"`
	DeleteStateField           string   `mapstructure:"delete_state_field"`
	UseColumnsForDefaultValues bool     `mapstructure:"use_columns_for_default_values"`
	DuplicateField             string   `mapstructure:"duplicate_field"`
	AliasField                 string   `mapstructure:"alias_field"`
	Fields                     []string `mapstructure:"fields"`
}

func getTablesConfig(v *viper.Viper) []TableEntry {
	var tables []TableEntry
	if err := v.UnmarshalKey("tables", &tables); err != nil || len(tables) == 0 {
		return DefaultTables()
	}
	return tables
}

// DefaultTables returns the built-in page tree tables, enough to run the
// link browser and list module against a fresh database.
func DefaultTables() []TableEntry {
	return []TableEntry{
		{
			Name:          "pages",
			Label:         "Pages",
			TitleField:    "title",
			SortField:     "sorting",
			DisabledField: "hidden",
			AliasField:    "alias",
			Fields:        []string{"title", "alias", "hidden"},
		},
		{
			Name:                   "tt_content",
			Label:                  "Content",
			TitleField:             "header",
			SortField:              "sorting",
			DisabledField:          "hidden",
			LanguageField:          "sys_language_uid",
			TranslationParentField: "l18n_parent",
			Fields:                 []string{"header", "hidden", "sys_language_uid"},
		},
	}
}
