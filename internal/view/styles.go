package view

import "github.com/charmbracelet/lipgloss"

// Styles holds the lipgloss styles used by the renderers.
type Styles struct {
	Header   lipgloss.Style
	Card     lipgloss.Style
	Title    lipgloss.Style
	Price    lipgloss.Style
	Muted    lipgloss.Style
	Error    lipgloss.Style
	Control  lipgloss.Style
	Disabled lipgloss.Style
	Label    lipgloss.Style
}

// DefaultStyles returns the terminal styles.
func DefaultStyles() Styles {
	return Styles{
		Header: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212")),
		Card: lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderLeft(true).
			BorderForeground(lipgloss.Color("240")).
			PaddingLeft(1).
			MarginBottom(1),
		Title:    lipgloss.NewStyle().Bold(true),
		Price:    lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
		Muted:    lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		Error:    lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
		Control:  lipgloss.NewStyle().Foreground(lipgloss.Color("39")),
		Disabled: lipgloss.NewStyle().Foreground(lipgloss.Color("238")),
		Label:    lipgloss.NewStyle(),
	}
}

// PlainStyles returns unstyled renderers for non-interactive output.
func PlainStyles() Styles {
	plain := lipgloss.NewStyle()
	return Styles{
		Header:   plain,
		Card:     plain.MarginBottom(1),
		Title:    plain,
		Price:    plain,
		Muted:    plain,
		Error:    plain,
		Control:  plain,
		Disabled: plain,
		Label:    plain,
	}
}
