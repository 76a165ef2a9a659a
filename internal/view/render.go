// Package view renders catalog state as text.
package view

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/me/prodview/internal/controller"
	"github.com/me/prodview/pkg/model"
)

const (
	loadingText  = "Loading..."
	emptyText    = "No products found."
	noImageText  = "(no image)"
	sentinelText = "· · · scroll for more · · ·"
	endText      = "— end of catalog —"
)

// FormatPrice formats a price as "$<price>" without trailing zeros, the way
// the service's numbers print.
func FormatPrice(price float64) string {
	return "$" + decimal.NewFromFloat(price).String()
}

// PageLabel returns "Page X of Y".
func PageLabel(page, totalPages int) string {
	return fmt.Sprintf("Page %d of %d", page, totalPages)
}

// ProductCard renders one product: first image, title, description and price.
// width <= 0 disables wrapping.
func ProductCard(p model.Product, st Styles, width int) string {
	image := p.FirstImage()
	if image == "" {
		image = noImageText
	}

	lines := []string{
		st.Title.Render(p.Title),
		st.Muted.Render(image),
	}
	if p.Description != "" {
		desc := lipgloss.NewStyle()
		if width > 4 {
			desc = desc.Width(width - 4)
		}
		lines = append(lines, desc.Render(p.Description))
	}
	lines = append(lines, "Price: "+st.Price.Render(FormatPrice(p.Price)))
	if d := detailLine(p); d != "" {
		lines = append(lines, st.Muted.Render(d))
	}
	return st.Card.Render(strings.Join(lines, "\n"))
}

func detailLine(p model.Product) string {
	var parts []string
	if p.Brand != "" {
		parts = append(parts, p.Brand)
	}
	if p.Category != "" {
		parts = append(parts, p.Category)
	}
	if p.Rating > 0 {
		parts = append(parts, fmt.Sprintf("★ %.2f", p.Rating))
	}
	if p.DiscountPercentage > 0 {
		parts = append(parts, fmt.Sprintf("-%s%%", decimal.NewFromFloat(p.DiscountPercentage).String()))
	}
	return strings.Join(parts, " · ")
}

// ProductList renders products as a sequence of cards.
func ProductList(products []model.Product, st Styles, width int) string {
	if len(products) == 0 {
		return st.Muted.Render(emptyText)
	}
	cards := make([]string, len(products))
	for i, p := range products {
		cards[i] = ProductCard(p, st, width)
	}
	return lipgloss.JoinVertical(lipgloss.Left, cards...)
}

// Pager renders the Prev/Next controls with the page label. Disabled
// controls are shown dimmed and bracketed with dashes.
func Pager(s controller.State, st Styles) string {
	prev := control("< Previous", s.CanPrev(), st)
	next := control("Next >", s.CanNext(), st)
	label := PageLabel(s.Page(), s.TotalPages())
	if s.Searching() {
		label = fmt.Sprintf("%d results for %q", s.Total, s.Query)
	}
	return prev + "  " + st.Label.Render(label) + "  " + next
}

func control(text string, enabled bool, st Styles) string {
	if enabled {
		return st.Control.Render("[" + text + "]")
	}
	return st.Disabled.Render("-" + text + "-")
}

// Body renders the scrollable part of the view: loading, the error, or the
// product list followed by the infinite-mode sentinel.
func Body(s controller.State, st Styles, width int) string {
	switch {
	case s.Phase == model.PhaseErrored:
		return st.Error.Render(s.Err)
	case s.Phase == model.PhaseIdle:
		return st.Muted.Render(loadingText)
	case s.Loading() && (s.Mode == model.ModePaged || s.Searching() || len(s.Products()) == 0 || s.Cursor.Page == 1):
		return st.Muted.Render(loadingText)
	}

	list := ProductList(s.Products(), st, width)
	if s.Mode != model.ModeInfinite || s.Searching() {
		return list
	}
	return list + "\n" + Sentinel(s, st)
}

// Sentinel renders the element whose visibility drives infinite loading.
func Sentinel(s controller.State, st Styles) string {
	switch {
	case s.Loading():
		return st.Muted.Render(loadingText)
	case s.HasMore:
		return st.Muted.Render(sentinelText)
	default:
		return st.Muted.Render(endText)
	}
}

// Render renders the whole view without the interactive chrome.
func Render(s controller.State, st Styles, width int) string {
	body := Body(s, st, width)
	if s.Mode != model.ModePaged || !s.Phase.IsSettled() || s.Phase == model.PhaseErrored {
		return body
	}
	return body + "\n" + Pager(s, st)
}
