package ui

import (
	"strconv"
	"strings"
)

var viewTitles = map[View]string{
	ViewUsers:    "Users",
	ViewShops:    "Shops",
	ViewProducts: "Products",
}

// renderHeader renders the title bar with view tabs.
func (m Model) renderHeader() string {
	var tabs []string
	for _, v := range []View{ViewUsers, ViewShops, ViewProducts} {
		label := viewTitles[v]
		n := 0
		switch v {
		case ViewUsers:
			n = len(m.stores.Users.Items())
		case ViewShops:
			n = len(m.stores.Shops.Items())
		case ViewProducts:
			n = len(m.stores.Products.Items())
		}
		tab := label
		if n > 0 {
			tab += " (" + strconv.Itoa(n) + ")"
		}
		if v == m.currentView {
			tabs = append(tabs, m.styles.AccentText.Bold(true).Render("["+tab+"]"))
		} else {
			tabs = append(tabs, m.styles.MutedText.Render(" "+tab+" "))
		}
	}

	left := m.styles.Text.Bold(true).Render("mallboard") + "  " + strings.Join(tabs, " ")
	return m.styles.Header.Render(left)
}

// renderFooter renders the toast when one is visible, otherwise key hints.
func (m Model) renderFooter() string {
	if m.toast != nil {
		return m.renderToast()
	}

	hints := "1/2/3 views · / filter · n new · e edit · d delete · enter detail · r refresh · ? help · q quit"
	if m.currentView == ViewProducts {
		hints = "s shop filter · " + hints
	}
	return m.styles.Footer.Render(hints)
}
