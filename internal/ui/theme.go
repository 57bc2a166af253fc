package ui

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Theme holds all colours for the application, one per role.
type Theme struct {
	Background lipgloss.Color

	Unfinished lipgloss.Color
	Finished   lipgloss.Color
	Late       lipgloss.Color

	TextNormal    lipgloss.Color
	TextPrimary   lipgloss.Color
	TextSecondary lipgloss.Color
	TextDark      lipgloss.Color

	BorderPrimary   lipgloss.Color
	BorderSecondary lipgloss.Color

	Focused   lipgloss.Color
	Unfocused lipgloss.Color
}

// DarkTheme returns the default dark theme (Catppuccin Mocha).
func DarkTheme() Theme {
	return Theme{
		Background: lipgloss.Color("#1e1e2e"),

		Unfinished: lipgloss.Color("#f9e2af"),
		Finished:   lipgloss.Color("#a6e3a1"),
		Late:       lipgloss.Color("#f38ba8"),

		TextNormal:    lipgloss.Color("#cdd6f4"),
		TextPrimary:   lipgloss.Color("#89b4fa"),
		TextSecondary: lipgloss.Color("#9399b2"),
		TextDark:      lipgloss.Color("#6c7086"),

		BorderPrimary:   lipgloss.Color("#3b3b5c"),
		BorderSecondary: lipgloss.Color("#313152"),

		Focused:   lipgloss.Color("#7c7cf0"),
		Unfocused: lipgloss.Color("#3b3b5c"),
	}
}

var hexColour = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// WithOverrides returns a copy of t with the named roles replaced. Role
// names are the snake_case config keys (e.g. "text_primary").
func (t Theme) WithOverrides(overrides map[string]string) (Theme, error) {
	roles := map[string]*lipgloss.Color{
		"background":       &t.Background,
		"unfinished":       &t.Unfinished,
		"finished":         &t.Finished,
		"late":             &t.Late,
		"text_normal":      &t.TextNormal,
		"text_primary":     &t.TextPrimary,
		"text_secondary":   &t.TextSecondary,
		"text_dark":        &t.TextDark,
		"border_primary":   &t.BorderPrimary,
		"border_secondary": &t.BorderSecondary,
		"focused":          &t.Focused,
		"unfocused":        &t.Unfocused,
	}
	for name, value := range overrides {
		dst, ok := roles[strings.ToLower(name)]
		if !ok {
			return t, fmt.Errorf("theme: unknown colour role %q", name)
		}
		if !hexColour.MatchString(value) {
			return t, fmt.Errorf("theme: %s: %q is not a hex colour", name, value)
		}
		*dst = lipgloss.Color(value)
	}
	return t, nil
}

// Styles holds pre-computed lipgloss styles derived from a Theme.
type Styles struct {
	Theme Theme

	// Layout
	StatusBar lipgloss.Style
	HelpBar   lipgloss.Style

	// Panels
	Panel        lipgloss.Style
	PanelFocused lipgloss.Style
	PanelTitle   lipgloss.Style

	// Workspace list rows
	ListItem     lipgloss.Style
	ListSelected lipgloss.Style
	ListCount    lipgloss.Style

	// Item cards
	Card         lipgloss.Style
	CardSelected lipgloss.Style
	Unfinished   lipgloss.Style
	Finished     lipgloss.Style
	Late         lipgloss.Style
	Countdown    lipgloss.Style

	// Text
	Title   lipgloss.Style
	Body    lipgloss.Style
	Muted   lipgloss.Style
	KeyBind lipgloss.Style
	KeyDesc lipgloss.Style
	Error   lipgloss.Style
	Info    lipgloss.Style

	// Dialogs
	Dialog       lipgloss.Style
	DialogTitle  lipgloss.Style
	InputFocused lipgloss.Style
	InputBlurred lipgloss.Style
}

// NewStyles builds all styles from the given theme.
func NewStyles(t Theme) Styles {
	s := Styles{Theme: t}

	s.StatusBar = lipgloss.NewStyle().Foreground(t.TextSecondary).Padding(0, 1)
	s.HelpBar = lipgloss.NewStyle().Foreground(t.TextDark).Padding(0, 1)

	s.Panel = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(t.Unfocused).Padding(0, 1)
	s.PanelFocused = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(t.Focused).Padding(0, 1)
	s.PanelTitle = lipgloss.NewStyle().Foreground(t.TextNormal).Bold(true).Padding(0, 1)

	s.ListItem = lipgloss.NewStyle().Foreground(t.TextNormal).PaddingLeft(2)
	s.ListSelected = lipgloss.NewStyle().Foreground(t.TextPrimary).Bold(true).PaddingLeft(1)
	s.ListCount = lipgloss.NewStyle().Foreground(t.TextDark)

	s.Card = lipgloss.NewStyle().Border(lipgloss.NormalBorder()).BorderForeground(t.BorderSecondary).Padding(0, 1)
	s.CardSelected = lipgloss.NewStyle().Border(lipgloss.ThickBorder()).BorderForeground(t.Focused).Padding(0, 1)
	s.Unfinished = lipgloss.NewStyle().Foreground(t.Unfinished)
	s.Finished = lipgloss.NewStyle().Foreground(t.Finished).Strikethrough(true)
	s.Late = lipgloss.NewStyle().Foreground(t.Late).Bold(true)
	s.Countdown = lipgloss.NewStyle().Foreground(t.TextSecondary)

	s.Title = lipgloss.NewStyle().Foreground(t.TextNormal).Bold(true)
	s.Body = lipgloss.NewStyle().Foreground(t.TextNormal)
	s.Muted = lipgloss.NewStyle().Foreground(t.TextSecondary)
	s.KeyBind = lipgloss.NewStyle().Foreground(t.TextPrimary).Bold(true)
	s.KeyDesc = lipgloss.NewStyle().Foreground(t.TextSecondary)
	s.Error = lipgloss.NewStyle().Foreground(t.Late).Bold(true)
	s.Info = lipgloss.NewStyle().Foreground(t.TextPrimary)

	s.Dialog = lipgloss.NewStyle().Border(lipgloss.DoubleBorder()).BorderForeground(t.Focused).Padding(1, 3)
	s.DialogTitle = lipgloss.NewStyle().Foreground(t.TextNormal).Bold(true)
	s.InputFocused = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(t.Focused).Padding(0, 1)
	s.InputBlurred = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(t.Unfocused).Padding(0, 1)

	return s
}

// DefaultStyles returns styles using the dark theme.
func DefaultStyles() Styles {
	return NewStyles(DarkTheme())
}
