package ui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// overlay centers content in a bordered box over the full screen. The
// backing view is discarded: terminals cannot composite, so the modal takes
// the whole frame.
func (m Model) overlay(_ string, content string) string {
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(m.theme.BorderFocus)).
		Padding(1, 2).
		Render(content)

	return lipgloss.Place(
		m.width,
		m.height,
		lipgloss.Center,
		lipgloss.Center,
		box,
		lipgloss.WithWhitespaceChars(" "),
		lipgloss.WithWhitespaceForeground(lipgloss.Color(m.theme.Background)),
	)
}

// renderConfirm renders the delete confirmation prompt.
func (m Model) renderConfirm() string {
	noun := map[View]string{
		ViewUsers:    "user",
		ViewShops:    "shop",
		ViewProducts: "product",
	}[m.currentView]

	var b strings.Builder
	b.WriteString(m.styles.DangerText.Render("Delete " + noun + "?"))
	b.WriteString("\n\n")
	b.WriteString(m.styles.Text.Render(m.confirmLabel))
	b.WriteString("\n")
	b.WriteString(m.styles.MutedText.Render(m.confirmID))
	b.WriteString("\n\n")
	b.WriteString(m.styles.FaintText.Render("y confirm · n cancel"))
	return b.String()
}

// renderDetail renders the read-only detail card for the highlighted row.
func (m Model) renderDetail() string {
	var title string
	var pairs [][2]string

	sel := m.selected[m.currentView]
	switch m.currentView {
	case ViewUsers:
		users := m.visibleUsers()
		if sel >= len(users) {
			return ""
		}
		u := users[sel]
		title = u.Name
		pairs = [][2]string{
			{"ID", u.ID},
			{"Email", u.Email},
			{"Phone", u.Phone},
			{"Role", string(u.Role)},
		}
	case ViewShops:
		shops := m.visibleShops()
		if sel >= len(shops) {
			return ""
		}
		s := shops[sel]
		title = s.ShopName
		pairs = [][2]string{
			{"ID", s.ID},
			{"Owner", m.ownerTable().Label(s.OwnerUserID)},
			{"Contact", s.ContactNumber},
			{"Address", s.Address},
			{"Description", s.Description},
		}
	default:
		products := m.visibleProducts()
		if sel >= len(products) {
			return ""
		}
		p := products[sel]
		title = p.ProductName
		pairs = [][2]string{
			{"ID", p.ID},
			{"Shop", m.shopTable().Label(p.ShopID)},
			{"Price", formatPrice(p.Price)},
			{"Quantity", strconv.Itoa(p.Quantity)},
			{"Category", p.Category},
			{"Description", p.Description},
		}
	}

	labelStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(m.theme.Muted)).
		Width(12)

	var b strings.Builder
	b.WriteString(m.styles.AccentText.Bold(true).Render(title))
	b.WriteString("\n\n")
	for _, pair := range pairs {
		value := pair[1]
		if value == "" {
			value = "-"
		}
		b.WriteString(labelStyle.Render(pair[0]))
		b.WriteString(m.styles.Text.Render(value))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(m.styles.FaintText.Render("esc close"))
	return b.String()
}

// renderHelp renders the help overlay.
func (m Model) renderHelp() string {
	sections := []helpSection{
		{
			title: "Navigation",
			items: []helpItem{
				{"1/2/3", "Users/Shops/Products"},
				{"tab", "Cycle views"},
				{"j/k", "Move up/down"},
				{"g/G", "Go to top/bottom"},
				{"enter", "Show detail"},
			},
		},
		{
			title: "Data",
			items: []helpItem{
				{"/", "Filter by name"},
				{"n", "New entry"},
				{"e", "Edit selected"},
				{"d", "Delete selected"},
				{"r", "Refresh view"},
				{"s", "Cycle shop filter (products)"},
			},
		},
		{
			title: "General",
			items: []helpItem{
				{"T", "Cycle theme"},
				{"?", "Toggle help"},
				{"ctrl+l", "Log out"},
				{"q/ctrl+c", "Quit"},
			},
		},
	}

	var b strings.Builder
	b.WriteString(m.styles.Text.Bold(true).Render("Keyboard Shortcuts"))
	b.WriteString("\n")
	b.WriteString(m.styles.FaintText.Render(strings.Repeat("─", 30)))
	b.WriteString("\n\n")

	keyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(m.theme.Warning)).
		Width(12)

	for i, section := range sections {
		b.WriteString(m.styles.AccentText.Bold(true).Render(section.title))
		b.WriteString("\n")
		for _, item := range section.items {
			b.WriteString(keyStyle.Render(item.key))
			b.WriteString(m.styles.Text.Render(item.desc))
			b.WriteString("\n")
		}
		if i < len(sections)-1 {
			b.WriteString("\n")
		}
	}

	return m.overlay("", b.String())
}

type helpSection struct {
	title string
	items []helpItem
}

type helpItem struct {
	key  string
	desc string
}
