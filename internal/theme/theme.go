// Package theme centralizes the Lip Gloss styles shared across the UI.
package theme

import (
	"github.com/charmbracelet/lipgloss"

	"loupe/internal/category"
)

// Styles describes reusable Lip Gloss styles shared across the UI.
type Styles struct {
	Row                   *lipgloss.Style
	RowIndicator          *lipgloss.Style
	SelectedRow           *lipgloss.Style
	SelectedRowIndicator  *lipgloss.Style
	Favorite              *lipgloss.Style
	Trash                 *lipgloss.Style
	Error                 *lipgloss.Style
	Info                  *lipgloss.Style
	Header                *lipgloss.Style
	Footer                *lipgloss.Style
	Filter                *lipgloss.Style
	FilterPrompt          *lipgloss.Style
	FilterPlaceholder     *lipgloss.Style
	Cursor                *lipgloss.Style
	PreviewTitle          *lipgloss.Style
	PreviewError          *lipgloss.Style

	categories map[category.Type]*lipgloss.Style
}

// Category returns the tint for a row category, or nil when the category has
// no dedicated style.
func (s *Styles) Category(t category.Type) *lipgloss.Style {
	return s.categories[t]
}

var defaultStyles = Styles{
	Row: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("249")),
	),
	RowIndicator: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("238")),
	),
	SelectedRow: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Background(lipgloss.Color("238")).Bold(true),
	),
	SelectedRowIndicator: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("33")).Background(lipgloss.Color("238")),
	),
	Favorite: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("220")),
	),
	Trash: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Strikethrough(true),
	),
	Error: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
	),
	Info: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("249")),
	),
	Header: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Bold(true),
	),
	Footer: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("249")),
	),
	Filter: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("249")),
	),
	FilterPrompt: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("34")).Bold(true),
	),
	FilterPlaceholder: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
	),
	Cursor: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("33")).Blink(true),
	),
	PreviewTitle: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Bold(true),
	),
	PreviewError: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
	),
	categories: map[category.Type]*lipgloss.Style{
		category.Folder: ptr(
			lipgloss.NewStyle().Foreground(lipgloss.Color("33")),
		),
		category.Archive: ptr(
			lipgloss.NewStyle().Foreground(lipgloss.Color("208")),
		),
		category.Image: ptr(
			lipgloss.NewStyle().Foreground(lipgloss.Color("114")),
		),
		category.Video: ptr(
			lipgloss.NewStyle().Foreground(lipgloss.Color("176")),
		),
		category.Document: ptr(
			lipgloss.NewStyle().Foreground(lipgloss.Color("139")),
		),
		category.Unsupported: ptr(
			lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		),
	},
}

// Default exposes the standard style set used across the application.
func Default() *Styles {
	return &defaultStyles
}

func ptr(style lipgloss.Style) *lipgloss.Style {
	return &style
}
