package ui

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/mallworks/mallboard/internal/mall"
	"github.com/mallworks/mallboard/internal/state"
)

// Visible rows

func (m Model) visibleUsers() []mall.User {
	return m.stores.Users.Filter(m.filters[ViewUsers])
}

func (m Model) visibleShops() []mall.Shop {
	return m.stores.Shops.Filter(m.filters[ViewShops])
}

func (m Model) visibleProducts() []mall.Product {
	return m.stores.Products.Filter(m.filters[ViewProducts])
}

func (m Model) visibleCount() int {
	switch m.currentView {
	case ViewUsers:
		return len(m.visibleUsers())
	case ViewShops:
		return len(m.visibleShops())
	default:
		return len(m.visibleProducts())
	}
}

// selectedEntity returns the id and display label of the highlighted row.
func (m Model) selectedEntity() (id, label string, ok bool) {
	sel := m.selected[m.currentView]
	switch m.currentView {
	case ViewUsers:
		users := m.visibleUsers()
		if sel < len(users) {
			return users[sel].ID, users[sel].Name, true
		}
	case ViewShops:
		shops := m.visibleShops()
		if sel < len(shops) {
			return shops[sel].ID, shops[sel].ShopName, true
		}
	case ViewProducts:
		products := m.visibleProducts()
		if sel < len(products) {
			return products[sel].ID, products[sel].ProductName, true
		}
	}
	return "", "", false
}

// Reference tables, rebuilt from the latest snapshots on every render so
// labels always reflect the most recent refresh.

func (m Model) ownerTable() state.RefTable[mall.User] {
	return state.NewRefTable(
		m.stores.Users.Items(),
		m.stores.Users.Loaded(),
		func(u mall.User) string { return u.ID },
		mall.UserLabel,
		"User",
	)
}

func (m Model) shopTable() state.RefTable[mall.Shop] {
	return state.NewRefTable(
		m.stores.Shops.Items(),
		m.stores.Shops.Loaded(),
		func(s mall.Shop) string { return s.ID },
		mall.ShopLabel,
		"Shop",
	)
}

// Content

func (m Model) renderContent() string {
	var b strings.Builder

	if line := m.renderFilterLine(); line != "" {
		b.WriteString(line)
		b.WriteString("\n")
	}

	if banner := m.renderBanner(); banner != "" {
		b.WriteString(banner)
		b.WriteString("\n")
	}

	switch m.currentView {
	case ViewUsers:
		b.WriteString(m.renderUsersTable())
	case ViewShops:
		b.WriteString(m.renderShopsTable())
		b.WriteString("\n")
		b.WriteString(m.renderShopStats())
	case ViewProducts:
		b.WriteString(m.renderProductsTable())
		b.WriteString("\n")
		b.WriteString(m.renderProductStats())
	}

	return b.String()
}

// renderFilterLine shows the filter prompt while editing, or the committed
// filter when one is active.
func (m Model) renderFilterLine() string {
	if m.mode == modeFilter {
		return m.styles.AccentText.Render("/") + m.filterInput.input.View()
	}
	if q := m.filters[m.currentView]; q != "" {
		return m.styles.MutedText.Render("filter: " + q + "  (press / to change)")
	}
	if m.currentView == ViewProducts && m.shopFilterIdx >= 0 {
		shops := m.stores.Shops.Items()
		if m.shopFilterIdx < len(shops) {
			return m.styles.MutedText.Render("shop: " + shops[m.shopFilterIdx].ShopName + "  (press s to cycle)")
		}
	}
	return ""
}

// renderBanner surfaces refresh failures inline without discarding the rows
// already on screen.
func (m Model) renderBanner() string {
	store := m.currentStoreState()
	if store.err != nil {
		msg := "Could not refresh: " + store.err.Error()
		if store.failures > 1 {
			msg += fmt.Sprintf(" (%d attempts)", store.failures)
		}
		return m.styles.DangerText.Render(msg)
	}
	if m.refreshing {
		return m.styles.MutedText.Render("Refreshing...")
	}
	return ""
}

type storeState struct {
	loaded   bool
	err      error
	failures int
}

func (m Model) currentStoreState() storeState {
	switch m.currentView {
	case ViewUsers:
		return storeState{m.stores.Users.Loaded(), m.stores.Users.LastError(), m.stores.Users.ConsecutiveFailures()}
	case ViewShops:
		return storeState{m.stores.Shops.Loaded(), m.stores.Shops.LastError(), m.stores.Shops.ConsecutiveFailures()}
	default:
		return storeState{m.stores.Products.Loaded(), m.stores.Products.LastError(), m.stores.Products.ConsecutiveFailures()}
	}
}

// Tables

var (
	userColumns    = []tableColumn{{"ID", 10}, {"NAME", 20}, {"EMAIL", 28}, {"PHONE", 12}, {"ROLE", 10}}
	shopColumns    = []tableColumn{{"ID", 10}, {"SHOP", 20}, {"OWNER", 30}, {"CONTACT", 12}, {"ADDRESS", 24}}
	productColumns = []tableColumn{{"ID", 10}, {"PRODUCT", 22}, {"SHOP", 20}, {"PRICE", 10}, {"QTY", 5}, {"CATEGORY", 14}}
)

type tableColumn struct {
	title string
	width int
}

func (m Model) renderUsersTable() string {
	users := m.visibleUsers()
	rows := make([][]string, len(users))
	for i, u := range users {
		rows[i] = []string{u.ID, u.Name, u.Email, u.Phone, string(u.Role)}
	}
	return m.renderTable(userColumns, rows, m.emptyMessage("users"))
}

func (m Model) renderShopsTable() string {
	owners := m.ownerTable()
	shops := m.visibleShops()
	rows := make([][]string, len(shops))
	for i, s := range shops {
		rows[i] = []string{s.ID, s.ShopName, owners.Label(s.OwnerUserID), s.ContactNumber, s.Address}
	}
	return m.renderTable(shopColumns, rows, m.emptyMessage("shops"))
}

func (m Model) renderProductsTable() string {
	shops := m.shopTable()
	products := m.visibleProducts()
	rows := make([][]string, len(products))
	for i, p := range products {
		rows[i] = []string{
			p.ID,
			p.ProductName,
			shops.Label(p.ShopID),
			formatPrice(p.Price),
			strconv.Itoa(p.Quantity),
			p.Category,
		}
	}
	return m.renderTable(productColumns, rows, m.emptyMessage("products"))
}

func (m Model) emptyMessage(noun string) string {
	store := m.currentStoreState()
	if !store.loaded {
		return "Loading " + noun + "..."
	}
	if m.filters[m.currentView] != "" {
		return "No " + noun + " match the filter."
	}
	return "No " + noun + " yet."
}

// renderTable renders a header row plus data rows, highlighting the current
// selection.
func (m Model) renderTable(cols []tableColumn, rows [][]string, empty string) string {
	var b strings.Builder

	var header strings.Builder
	for _, col := range cols {
		header.WriteString(pad(col.title, col.width))
		header.WriteString(" ")
	}
	b.WriteString(m.styles.AccentText.Bold(true).Render(strings.TrimRight(header.String(), " ")))
	b.WriteString("\n")

	if len(rows) == 0 {
		b.WriteString(m.styles.MutedText.Render(empty))
		return b.String()
	}

	sel := m.selected[m.currentView]
	for i, row := range rows {
		var line strings.Builder
		for j, col := range cols {
			cell := ""
			if j < len(row) {
				cell = row[j]
			}
			line.WriteString(pad(truncate(cell, col.width), col.width))
			line.WriteString(" ")
		}
		text := strings.TrimRight(line.String(), " ")
		if i == sel {
			b.WriteString(m.styles.Selected.Render(text))
		} else {
			b.WriteString(m.styles.Text.Render(text))
		}
		if i < len(rows)-1 {
			b.WriteString("\n")
		}
	}

	return b.String()
}

// renderShopStats summarizes the shops view below the table.
func (m Model) renderShopStats() string {
	shops := m.stores.Shops.Items()

	withContact := 0
	withAddress := 0
	for _, s := range shops {
		if s.ContactNumber != "" {
			withContact++
		}
		if s.Address != "" {
			withAddress++
		}
	}

	stats := fmt.Sprintf("%d shops · %d with contact · %d with address",
		len(shops), withContact, withAddress)
	return m.styles.FaintText.Render(stats)
}

// renderProductStats summarizes the products view below the table: how many
// rows the filter lets through and how the full snapshot splits by category.
func (m Model) renderProductStats() string {
	all := m.stores.Products.Items()
	visible := m.visibleProducts()

	byCategory := map[string]int{}
	for _, p := range all {
		cat := p.Category
		if cat == "" {
			cat = "uncategorized"
		}
		byCategory[cat]++
	}
	cats := make([]string, 0, len(byCategory))
	for cat := range byCategory {
		cats = append(cats, cat)
	}
	sort.Strings(cats)

	stats := fmt.Sprintf("%d of %d products", len(visible), len(all))
	for _, cat := range cats {
		stats += fmt.Sprintf(" · %s %d", cat, byCategory[cat])
	}
	return m.styles.FaintText.Render(stats)
}

func formatPrice(p float64) string {
	return strconv.FormatFloat(p, 'f', 2, 64)
}

// truncate shortens s to at most w characters, ending with an ellipsis when
// anything was cut.
func truncate(s string, w int) string {
	if w <= 0 {
		return ""
	}
	r := []rune(s)
	if len(r) <= w {
		return s
	}
	if w == 1 {
		return "…"
	}
	return string(r[:w-1]) + "…"
}

// pad right-pads s with spaces to exactly w characters.
func pad(s string, w int) string {
	r := []rune(s)
	if len(r) >= w {
		return s
	}
	return s + strings.Repeat(" ", w-len(r))
}
