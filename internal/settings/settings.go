// Package settings holds the display settings one running application
// shares between the ledger and its presentation layers: the currency
// symbol and the color theme. The composition root creates one Settings
// and passes it by reference to everything that formats output.
package settings

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/tallyho/tallyho/internal/common"
)

// Theme names a display color scheme.
type Theme string

const (
	// ThemeLight is dark text on a light background.
	ThemeLight Theme = "Light"
	// ThemeDark is light text on a dark background.
	ThemeDark Theme = "Dark"
)

// ParseTheme converts user input into a Theme.
func ParseTheme(s string) (Theme, error) {
	switch Theme(s) {
	case ThemeLight:
		return ThemeLight, nil
	case ThemeDark:
		return ThemeDark, nil
	default:
		return "", fmt.Errorf("%w: unknown theme %q (want %q or %q)",
			common.ErrInvalidArgument, s, ThemeLight, ThemeDark)
	}
}

// Valid reports whether the theme is one of the known themes.
func (t Theme) Valid() bool {
	return t == ThemeLight || t == ThemeDark
}

// Settings is the mutable display configuration. Getters never fail;
// setters validate and leave the value unchanged on error. Like the
// ledger, it assumes a single owner and does no internal locking.
type Settings struct {
	currencySymbol string
	theme          Theme
}

// New returns settings with the defaults: "$" and the light theme.
func New() *Settings {
	return &Settings{
		currencySymbol: "$",
		theme:          ThemeLight,
	}
}

// CurrencySymbol returns the symbol used when formatting amounts.
func (s *Settings) CurrencySymbol() string {
	return s.currencySymbol
}

// SetCurrencySymbol replaces the currency symbol. The symbol must contain
// at least one non-whitespace character.
func (s *Settings) SetCurrencySymbol(symbol string) error {
	if strings.TrimSpace(symbol) == "" {
		return fmt.Errorf("%w: currency symbol is empty", common.ErrInvalidArgument)
	}
	s.currencySymbol = symbol
	return nil
}

// Theme returns the active theme.
func (s *Settings) Theme() Theme {
	return s.theme
}

// SetTheme replaces the active theme.
func (s *Settings) SetTheme(theme Theme) error {
	if !theme.Valid() {
		return fmt.Errorf("%w: unknown theme %q", common.ErrInvalidArgument, theme)
	}
	s.theme = theme
	return nil
}

// BackgroundColor returns the background for the active theme.
func (s *Settings) BackgroundColor() lipgloss.Color {
	if s.theme == ThemeDark {
		return lipgloss.Color("#1e1e1e")
	}
	return lipgloss.Color("#ffffff")
}

// ForegroundColor returns the text color for the active theme.
func (s *Settings) ForegroundColor() lipgloss.Color {
	if s.theme == ThemeDark {
		return lipgloss.Color("#ffffff")
	}
	return lipgloss.Color("#000000")
}
