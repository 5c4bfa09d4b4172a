package config

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// HandlerEntry describes one configured link handler tab.
//
// DisplayBefore/DisplayAfter order the selector menu, ScanBefore/ScanAfter
// order the link resolution trial sequence. Both graphs are independent.
type HandlerEntry struct {
	Identifier    string   `mapstructure:"identifier" validate:"required"`
	Kind          string   `mapstructure:"kind" validate:"required,oneof=page file folder url mail"`
	Label         string   `mapstructure:"label"`
	DisplayBefore []string `mapstructure:"display_before"`
	DisplayAfter  []string `mapstructure:"display_after"`
	ScanBefore    []string `mapstructure:"scan_before"`
	ScanAfter     []string `mapstructure:"scan_after"`
}

// Browser holds the link browser configuration
type Browser struct {
	Handlers []HandlerEntry `mapstructure:"handlers" validate:"dive"`
	// BlindLinkOptions removes handler tabs globally, in addition to any
	// per-request blind list.
	BlindLinkOptions []string `mapstructure:"blind_link_options"`
	// BlindLinkFields removes link attribute fields globally.
	BlindLinkFields []string `mapstructure:"blind_link_fields"`
}

var validate = validator.New()

// Validate checks the handler entries for structural errors.
func (b *Browser) Validate() error {
	if err := validate.Struct(b); err != nil {
		return fmt.Errorf("invalid browser configuration: %w", err)
	}
	seen := make(map[string]bool, len(b.Handlers))
	for _, h := range b.Handlers {
		if seen[h.Identifier] {
			return fmt.Errorf("invalid browser configuration: duplicate handler identifier %q", h.Identifier)
		}
		seen[h.Identifier] = true
	}
	return nil
}

func getBrowserConfig(v *viper.Viper) *Browser {
	cfg := &Browser{
		BlindLinkOptions: v.GetStringSlice("browser.blind_link_options"),
		BlindLinkFields:  v.GetStringSlice("browser.blind_link_fields"),
	}
	if err := v.UnmarshalKey("browser.handlers", &cfg.Handlers); err != nil {
		return cfg
	}
	if len(cfg.Handlers) == 0 {
		cfg.Handlers = DefaultHandlers()
	}
	return cfg
}

// DefaultHandlers returns the built-in handler set in its default order.
func DefaultHandlers() []HandlerEntry {
	return []HandlerEntry{
		{Identifier: "page", Kind: "page", Label: "Page"},
		{Identifier: "file", Kind: "file", Label: "File", DisplayAfter: []string{"page"}, ScanAfter: []string{"page"}},
		{Identifier: "folder", Kind: "folder", Label: "Folder", DisplayAfter: []string{"file"}, ScanAfter: []string{"file"}},
		{Identifier: "url", Kind: "url", Label: "External URL", DisplayAfter: []string{"folder"}, ScanAfter: []string{"mail"}},
		{Identifier: "mail", Kind: "mail", Label: "Email", DisplayAfter: []string{"url"}, ScanAfter: []string{"folder"}},
	}
}
