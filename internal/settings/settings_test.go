package settings

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tallyho/tallyho/internal/common"
)

func TestNew_Defaults(t *testing.T) {
	s := New()

	assert.Equal(t, "$", s.CurrencySymbol())
	assert.Equal(t, ThemeLight, s.Theme())
}

func TestSetCurrencySymbol(t *testing.T) {
	t.Run("accepts a new symbol", func(t *testing.T) {
		s := New()
		require.NoError(t, s.SetCurrencySymbol("€"))
		assert.Equal(t, "€", s.CurrencySymbol())
	})

	t.Run("rejects empty symbol", func(t *testing.T) {
		s := New()
		err := s.SetCurrencySymbol("")
		require.Error(t, err)
		assert.ErrorIs(t, err, common.ErrInvalidArgument)
		assert.Equal(t, "$", s.CurrencySymbol(), "failed set should not change the symbol")
	})

	t.Run("rejects whitespace-only symbol", func(t *testing.T) {
		s := New()
		err := s.SetCurrencySymbol("  ")
		require.Error(t, err)
		assert.ErrorIs(t, err, common.ErrInvalidArgument)
	})
}

func TestSetTheme(t *testing.T) {
	t.Run("switches between themes", func(t *testing.T) {
		s := New()
		require.NoError(t, s.SetTheme(ThemeDark))
		assert.Equal(t, ThemeDark, s.Theme())
		require.NoError(t, s.SetTheme(ThemeLight))
		assert.Equal(t, ThemeLight, s.Theme())
	})

	t.Run("rejects unknown theme", func(t *testing.T) {
		s := New()
		err := s.SetTheme(Theme("Solarized"))
		require.Error(t, err)
		assert.ErrorIs(t, err, common.ErrInvalidArgument)
		assert.Equal(t, ThemeLight, s.Theme(), "failed set should not change the theme")
	})
}

func TestParseTheme(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Theme
		wantErr bool
	}{
		{name: "light", input: "Light", want: ThemeLight},
		{name: "dark", input: "Dark", want: ThemeDark},
		{name: "wrong case", input: "dark", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseTheme(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, common.ErrInvalidArgument)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestThemeColors(t *testing.T) {
	s := New()

	require.NoError(t, s.SetTheme(ThemeLight))
	assert.Equal(t, lipgloss.Color("#ffffff"), s.BackgroundColor())
	assert.Equal(t, lipgloss.Color("#000000"), s.ForegroundColor())

	require.NoError(t, s.SetTheme(ThemeDark))
	assert.Equal(t, lipgloss.Color("#1e1e1e"), s.BackgroundColor())
	assert.Equal(t, lipgloss.Color("#ffffff"), s.ForegroundColor())
}
