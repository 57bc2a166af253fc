package ui

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTruncate(t *testing.T) {
	tests := []struct {
		in    string
		width int
		want  string
	}{
		{"short", 10, "short"},
		{"exactly", 7, "exactly"},
		{"truncated text", 8, "truncat…"},
		{"日本語テキスト", 7, "日本語…"},
		{"anything", 0, ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Truncate(tt.in, tt.width))
		})
	}
}

func TestJoinNonEmpty(t *testing.T) {
	parts := []string{"a", "", "b"}
	assert.Equal(t, "a | b", JoinNonEmpty(" | ", parts...))
	assert.Equal(t, []string{"a", "", "b"}, parts)
	assert.Empty(t, JoinNonEmpty(" | "))
}

func TestThemeOverrides(t *testing.T) {
	th, err := DarkTheme().WithOverrides(map[string]string{
		"finished":     "#00ff00",
		"TEXT_PRIMARY": "#abc",
	})
	require.NoError(t, err)
	assert.Equal(t, lipgloss.Color("#00ff00"), th.Finished)
	assert.Equal(t, lipgloss.Color("#abc"), th.TextPrimary)
	assert.Equal(t, DarkTheme().Late, th.Late)

	_, err = DarkTheme().WithOverrides(map[string]string{"sparkle": "#fff"})
	assert.ErrorContains(t, err, "unknown colour role")

	_, err = DarkTheme().WithOverrides(map[string]string{"late": "red"})
	assert.ErrorContains(t, err, "not a hex colour")
}
