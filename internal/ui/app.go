package ui

import (
	"context"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mallworks/mallboard/internal/action"
	"github.com/mallworks/mallboard/internal/prefs"
	"github.com/mallworks/mallboard/internal/state"
)

// View represents the current active view.
type View int

const (
	ViewUsers View = iota
	ViewShops
	ViewProducts
)

// Mode represents what currently owns keyboard input.
type Mode int

const (
	modeList Mode = iota
	modeFilter
	modeForm
	modeConfirm
	modeDetail
	modeHelp
	modeLogin
)

const (
	redrawTick    = time.Second
	toastDuration = 2 * time.Second
)

// Options configures the UI.
type Options struct {
	Context     context.Context
	Stores      *state.Stores
	Coordinator *action.Coordinator
	ThemeName   string
	PrefsPath   string
	LoggedIn    bool
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	ctx       context.Context
	stores    *state.Stores
	coord     *action.Coordinator
	prefsPath string

	// UI state
	theme       Theme
	styles      Styles
	currentView View
	mode        Mode
	width       int
	height      int
	ready       bool

	// List state
	selected map[View]int
	filters  map[View]string

	// Refresh state. gen is bumped every time a refresh is issued; a
	// refreshedMsg carrying an older gen is ignored so a slow response
	// cannot clear the spinner for a newer request.
	gen        int
	refreshing bool

	// Product shop filter cycle: -1 means all shops.
	shopFilterIdx int

	// Filter input
	filterInput filterInput

	// Form state (nil outside modeForm)
	form *formModel

	// Confirm state
	confirmID    string
	confirmLabel string

	// Login state
	login loginModel

	// Toast state
	toast    *toast
	toastSeq int

	// Help overlay returns to this mode on dismiss
	returnMode Mode
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	themeName := opts.ThemeName
	if themeName == "" {
		themeName = "Nightfox"
	}

	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}

	theme := GetTheme(themeName)

	mode := modeList
	if !opts.LoggedIn {
		mode = modeLogin
	}

	return Model{
		ctx:           ctx,
		stores:        opts.Stores,
		coord:         opts.Coordinator,
		prefsPath:     prefsPath,
		theme:         theme,
		styles:        theme.Styles(),
		currentView:   ViewUsers,
		mode:          mode,
		selected:      map[View]int{},
		filters:       map[View]string{},
		shopFilterIdx: -1,
		login:         newLoginModel(),
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		tea.EnterAltScreen,
		tickCmd(),
	}
	if m.mode != modeLogin && m.stores != nil {
		cmds = append(cmds, refreshAllCmd(m.ctx, m.stores, m.gen))
	}
	if m.mode == modeLogin {
		cmds = append(cmds, m.login.focusCmd())
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		return m, nil

	case tickMsg:
		// The periodic tick exists only to redraw: stores may have been
		// refreshed by the background refresher since the last frame.
		return m, tickCmd()

	case refreshedMsg:
		if msg.gen != m.gen {
			// A newer refresh is in flight; this response already lost.
			return m, nil
		}
		m.refreshing = false
		m.clampSelection()
		return m, nil

	case noticeMsg:
		return m.handleNotice(action.Notice(msg))

	case loginDoneMsg:
		return m.handleLoginDone(msg)

	case toastExpiredMsg:
		if m.toast != nil && m.toast.id == msg.id {
			m.toast = nil
		}
		return m, nil
	}

	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	if m.mode == modeLogin {
		return m.renderLogin()
	}
	if m.mode == modeHelp {
		return m.renderHelp()
	}

	main := m.renderMain()

	switch m.mode {
	case modeForm:
		return m.overlay(main, m.renderForm())
	case modeConfirm:
		return m.overlay(main, m.renderConfirm())
	case modeDetail:
		return m.overlay(main, m.renderDetail())
	}
	return main
}

// renderMain renders the header, content area, and footer.
func (m Model) renderMain() string {
	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderContent())
	b.WriteString("\n")
	b.WriteString(m.renderFooter())

	return b.String()
}

// handleNotice applies the outcome of a mutation attempt.
func (m Model) handleNotice(n action.Notice) (tea.Model, tea.Cmd) {
	if n.Kind == action.NoticeSuccess {
		// The write went through; leave whichever modal initiated it.
		m.form = nil
		m.confirmID = ""
		if m.mode == modeForm || m.mode == modeConfirm {
			m.mode = modeList
		}
		m.clampSelection()
	} else {
		if m.form != nil {
			// Keep the form open so the operator can correct and resubmit.
			m.form.submitting = false
			m.form.errMsg = n.Message
			return m, nil
		}
		if m.mode == modeConfirm {
			m.confirmID = ""
			m.confirmLabel = ""
			m.mode = modeList
		}
	}
	return m.showToast(n)
}

// handleLoginDone applies the outcome of a login attempt.
func (m Model) handleLoginDone(msg loginDoneMsg) (tea.Model, tea.Cmd) {
	m.login.submitting = false
	if msg.notice.Kind != action.NoticeSuccess {
		m.login.errMsg = msg.notice.Message
		return m, nil
	}
	m.mode = modeList
	m.login = newLoginModel()
	m.gen++
	m.refreshing = true
	model, toastCmd := m.showToast(msg.notice)
	return model, tea.Batch(toastCmd, refreshAllCmd(m.ctx, m.stores, m.gen))
}

// showToast replaces any visible toast with a new one.
func (m Model) showToast(n action.Notice) (tea.Model, tea.Cmd) {
	m.toastSeq++
	m.toast = &toast{
		id:      m.toastSeq,
		kind:    n.Kind,
		message: n.Message,
	}
	return m, toastCmd(m.toastSeq)
}

// refreshCurrentView reissues the fetches the active view depends on.
func (m *Model) refreshCurrentView() tea.Cmd {
	m.gen++
	m.refreshing = true
	return refreshViewCmd(m.ctx, m.stores, m.currentView, m.gen)
}

// switchView activates a view and refreshes its backing stores.
func (m *Model) switchView(v View) tea.Cmd {
	m.currentView = v
	return m.refreshCurrentView()
}

// clampSelection keeps the selected row inside the visible row count.
func (m *Model) clampSelection() {
	count := m.visibleCount()
	sel := m.selected[m.currentView]
	if count == 0 {
		m.selected[m.currentView] = 0
		return
	}
	if sel >= count {
		m.selected[m.currentView] = count - 1
	}
}

// Messages

type tickMsg time.Time

// refreshedMsg reports a completed refresh for one view activation.
type refreshedMsg struct {
	view View
	gen  int
	err  error
}

// noticeMsg carries the result of a mutation back into the UI loop.
type noticeMsg action.Notice

// loginDoneMsg carries the result of a login attempt.
type loginDoneMsg struct {
	notice action.Notice
}

// toastExpiredMsg clears the toast with the matching id. A toast that has
// already been replaced keeps its replacement.
type toastExpiredMsg struct {
	id int
}

// Commands

func tickCmd() tea.Cmd {
	return tea.Tick(redrawTick, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func toastCmd(id int) tea.Cmd {
	return tea.Tick(toastDuration, func(time.Time) tea.Msg {
		return toastExpiredMsg{id: id}
	})
}

// refreshViewCmd refreshes the stores the given view renders from: the
// primary collection plus any collection its reference labels resolve
// against. The fetches run together and the first error is reported.
func refreshViewCmd(ctx context.Context, stores *state.Stores, view View, gen int) tea.Cmd {
	return func() tea.Msg {
		var first error
		record := func(err error) {
			if err != nil && first == nil {
				first = err
			}
		}
		switch view {
		case ViewUsers:
			record(stores.Users.Refresh(ctx))
		case ViewShops:
			record(stores.Shops.Refresh(ctx))
			record(stores.Users.Refresh(ctx))
		case ViewProducts:
			record(stores.Products.Refresh(ctx))
			record(stores.Shops.Refresh(ctx))
		}
		return refreshedMsg{view: view, gen: gen, err: first}
	}
}

func refreshAllCmd(ctx context.Context, stores *state.Stores, gen int) tea.Cmd {
	return func() tea.Msg {
		err := stores.RefreshAll(ctx)
		return refreshedMsg{view: ViewUsers, gen: gen, err: err}
	}
}

func mutationCmd(run func() action.Notice) tea.Cmd {
	return func() tea.Msg {
		return noticeMsg(run())
	}
}

func loginCmd(run func() action.Notice) tea.Cmd {
	return func() tea.Msg {
		return loginDoneMsg{notice: run()}
	}
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	m := New(opts)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(opts.Context))
	_, err := p.Run()
	return err
}
