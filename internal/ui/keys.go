package ui

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mallworks/mallboard/internal/action"
	"github.com/mallworks/mallboard/internal/prefs"
)

// filterInput wraps the text input used for in-view filtering, remembering
// the committed value so escape can restore it.
type filterInput struct {
	input    textinput.Model
	previous string
}

func newFilterInput(current string) filterInput {
	ti := textinput.New()
	ti.Placeholder = "filter"
	ti.CharLimit = 64
	ti.SetValue(current)
	ti.Focus()
	return filterInput{input: ti, previous: current}
}

// handleKey routes keyboard input to whatever owns it.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	switch m.mode {
	case modeLogin:
		return m.handleLoginKey(msg)
	case modeHelp:
		// Any key dismisses help.
		m.mode = m.returnMode
		return m, nil
	case modeFilter:
		return m.handleFilterKey(msg)
	case modeForm:
		return m.handleFormKey(msg)
	case modeConfirm:
		return m.handleConfirmKey(msg)
	case modeDetail:
		switch msg.String() {
		case "esc", "enter", "q":
			m.mode = modeList
		}
		return m, nil
	}

	return m.handleListKey(msg)
}

// handleListKey processes keyboard input for the list views.
func (m Model) handleListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit

	case "1":
		return m, m.switchView(ViewUsers)

	case "2":
		return m, m.switchView(ViewShops)

	case "3":
		return m, m.switchView(ViewProducts)

	case "tab":
		return m, m.switchView((m.currentView + 1) % 3)

	case "shift+tab":
		return m, m.switchView((m.currentView + 2) % 3)

	case "/":
		m.filterInput = newFilterInput(m.filters[m.currentView])
		m.mode = modeFilter
		return m, textinput.Blink

	case "r":
		return m, m.refreshCurrentView()

	case "n":
		m.form = m.newCreateForm()
		m.mode = modeForm
		return m, textinput.Blink

	case "e":
		if form := m.newEditForm(); form != nil {
			m.form = form
			m.mode = modeForm
			return m, textinput.Blink
		}
		return m, nil

	case "d":
		if id, label, ok := m.selectedEntity(); ok {
			m.confirmID = id
			m.confirmLabel = label
			m.mode = modeConfirm
		}
		return m, nil

	case "enter":
		if _, _, ok := m.selectedEntity(); ok {
			m.mode = modeDetail
		}
		return m, nil

	case "s":
		if m.currentView == ViewProducts {
			return m, m.cycleShopFilter()
		}
		return m, nil

	case "T":
		m.theme = GetTheme(NextTheme(m.theme.Name))
		m.styles = m.theme.Styles()
		if m.prefsPath != "" {
			_ = prefs.Save(m.prefsPath, prefs.Prefs{Theme: m.theme.Name})
		}
		return m, nil

	case "?", "h":
		m.returnMode = m.mode
		m.mode = modeHelp
		return m, nil

	case "ctrl+l":
		notice := m.coord.Logout()
		m.mode = modeLogin
		m.login = newLoginModel()
		if notice.Kind == action.NoticeError {
			m.login.errMsg = notice.Message
		}
		return m, m.login.focusCmd()

	case "j", "down":
		if m.selected[m.currentView] < m.visibleCount()-1 {
			m.selected[m.currentView]++
		}
		return m, nil

	case "k", "up":
		if m.selected[m.currentView] > 0 {
			m.selected[m.currentView]--
		}
		return m, nil

	case "g", "home":
		m.selected[m.currentView] = 0
		return m, nil

	case "G", "end":
		if count := m.visibleCount(); count > 0 {
			m.selected[m.currentView] = count - 1
		}
		return m, nil
	}

	return m, nil
}

// handleFilterKey processes keyboard input while the filter prompt is open.
func (m Model) handleFilterKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.filters[m.currentView] = m.filterInput.input.Value()
		m.mode = modeList
		m.clampSelection()
		return m, nil

	case "esc":
		m.filters[m.currentView] = m.filterInput.previous
		m.mode = modeList
		return m, nil
	}

	var cmd tea.Cmd
	m.filterInput.input, cmd = m.filterInput.input.Update(msg)
	// Filtering is live: each keystroke narrows the visible rows.
	m.filters[m.currentView] = m.filterInput.input.Value()
	m.clampSelection()
	return m, cmd
}

// handleConfirmKey processes the delete confirmation prompt.
func (m Model) handleConfirmKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "enter":
		id := m.confirmID
		view := m.currentView
		ctx := m.ctx
		coord := m.coord
		return m, mutationCmd(func() action.Notice {
			switch view {
			case ViewUsers:
				return coord.DeleteUser(ctx, id)
			case ViewShops:
				return coord.DeleteShop(ctx, id)
			default:
				return coord.DeleteProduct(ctx, id)
			}
		})

	case "n", "esc":
		m.confirmID = ""
		m.confirmLabel = ""
		m.mode = modeList
		return m, nil
	}
	return m, nil
}

// cycleShopFilter advances the product view's shop filter: all shops, then
// each shop in snapshot order, then back to all.
func (m *Model) cycleShopFilter() tea.Cmd {
	shops := m.stores.Shops.Items()
	m.shopFilterIdx++
	if m.shopFilterIdx >= len(shops) {
		m.shopFilterIdx = -1
	}
	if m.shopFilterIdx == -1 {
		m.stores.SetProductShopFilter("")
	} else {
		m.stores.SetProductShopFilter(shops[m.shopFilterIdx].ID)
	}
	return m.refreshCurrentView()
}
