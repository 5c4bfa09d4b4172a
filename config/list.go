package config

import (
	"github.com/spf13/viper"
)

// List holds record list defaults
type List struct {
	// ItemsPerPage is the page size of the list module.
	ItemsPerPage int
	// ItemsPerPageCollapsed is the page size used for collapsed multi-table
	// listings.
	ItemsPerPageCollapsed int
}

func getListConfig(v *viper.Viper) *List {
	cfg := &List{
		ItemsPerPage:          v.GetInt("list.items_per_page"),
		ItemsPerPageCollapsed: v.GetInt("list.items_per_page_collapsed"),
	}
	if cfg.ItemsPerPage <= 0 {
		cfg.ItemsPerPage = 100
	}
	if cfg.ItemsPerPageCollapsed <= 0 {
		cfg.ItemsPerPageCollapsed = 20
	}
	return cfg
}
