package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mallworks/mallboard/internal/action"
	"github.com/mallworks/mallboard/internal/mall"
)

// loginModel is the state of the login screen shown before any data view.
type loginModel struct {
	email      textinput.Model
	password   textinput.Model
	focus      int // 0 email, 1 password
	errMsg     string
	submitting bool
}

func newLoginModel() loginModel {
	email := textinput.New()
	email.Placeholder = "email"
	email.CharLimit = 128
	email.Focus()

	password := textinput.New()
	password.Placeholder = "password"
	password.CharLimit = 128
	password.EchoMode = textinput.EchoPassword

	return loginModel{email: email, password: password}
}

func (l loginModel) focusCmd() tea.Cmd {
	return textinput.Blink
}

// handleLoginKey processes keyboard input on the login screen.
func (m Model) handleLoginKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.login.submitting {
		return m, nil
	}

	switch msg.String() {
	case "tab", "down", "shift+tab", "up":
		if m.login.focus == 0 {
			m.login.focus = 1
			m.login.email.Blur()
			m.login.password.Focus()
		} else {
			m.login.focus = 0
			m.login.password.Blur()
			m.login.email.Focus()
		}
		return m, textinput.Blink

	case "enter":
		if m.login.focus == 0 {
			m.login.focus = 1
			m.login.email.Blur()
			m.login.password.Focus()
			return m, textinput.Blink
		}
		creds := mall.Credentials{
			Email:    strings.TrimSpace(m.login.email.Value()),
			Password: m.login.password.Value(),
		}
		m.login.submitting = true
		m.login.errMsg = ""
		ctx := m.ctx
		coord := m.coord
		return m, loginCmd(func() action.Notice {
			return coord.Login(ctx, creds)
		})
	}

	var cmd tea.Cmd
	if m.login.focus == 0 {
		m.login.email, cmd = m.login.email.Update(msg)
	} else {
		m.login.password, cmd = m.login.password.Update(msg)
	}
	return m, cmd
}

// renderLogin renders the login screen.
func (m Model) renderLogin() string {
	var b strings.Builder

	b.WriteString(m.styles.AccentText.Bold(true).Render("mallboard"))
	b.WriteString("\n")
	b.WriteString(m.styles.MutedText.Render("Sign in to the mall console"))
	b.WriteString("\n\n")

	b.WriteString(m.styles.MutedText.Render("Email"))
	b.WriteString("\n")
	b.WriteString(m.login.email.View())
	b.WriteString("\n\n")
	b.WriteString(m.styles.MutedText.Render("Password"))
	b.WriteString("\n")
	b.WriteString(m.login.password.View())
	b.WriteString("\n\n")

	if m.login.errMsg != "" {
		b.WriteString(m.styles.DangerText.Render(m.login.errMsg))
		b.WriteString("\n\n")
	}

	if m.login.submitting {
		b.WriteString(m.styles.MutedText.Render("Signing in..."))
	} else {
		b.WriteString(m.styles.FaintText.Render("enter sign in · tab switch field · ctrl+c quit"))
	}

	return m.overlay("", b.String())
}
