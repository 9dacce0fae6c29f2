package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/tallyho/tallyho/internal/common"
	"github.com/tallyho/tallyho/internal/ledger"
	"github.com/tallyho/tallyho/internal/settings"
)

// Config holds the application-level settings read at startup.
type Config struct {
	// CurrencySymbol prefixes every rendered amount, e.g. "$" or "£".
	CurrencySymbol string
	// Theme selects the colour scheme, "Light" or "Dark".
	Theme settings.Theme
	// Categories are seeded into the ledger at startup, after the
	// default category.
	Categories []string
	// ImportCategory is assigned to transactions read from OFX files.
	ImportCategory string
}

// Load builds a Config from Viper, applying defaults for anything the
// config file and TALLYHO_ environment variables leave unset.
func Load() (*Config, error) {
	cfg := &Config{
		CurrencySymbol: "$",
		Theme:          settings.ThemeLight,
		ImportCategory: ledger.DefaultCategoryName,
	}

	if v := viper.GetString("currency.symbol"); v != "" {
		cfg.CurrencySymbol = v
	}
	if v := viper.GetString("theme"); v != "" {
		theme, err := settings.ParseTheme(v)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", common.ErrInvalidConfig, err)
		}
		cfg.Theme = theme
	}
	if v := viper.GetStringSlice("categories"); len(v) > 0 {
		cfg.Categories = v
	}
	if v := viper.GetString("import.category"); v != "" {
		cfg.ImportCategory = v
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks the configuration for values the ledger would reject.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.CurrencySymbol) == "" {
		return fmt.Errorf("%w: currency symbol cannot be blank", common.ErrInvalidConfig)
	}
	if !c.Theme.Valid() {
		return fmt.Errorf("%w: unknown theme %q", common.ErrInvalidConfig, string(c.Theme))
	}
	if strings.TrimSpace(c.ImportCategory) == "" {
		return fmt.Errorf("%w: import category cannot be blank", common.ErrInvalidConfig)
	}
	for _, name := range c.Categories {
		if strings.TrimSpace(name) == "" {
			return fmt.Errorf("%w: category names cannot be blank", common.ErrInvalidConfig)
		}
	}
	return nil
}
