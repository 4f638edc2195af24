package ui

import (
	"github.com/mallworks/mallboard/internal/action"
)

// toast is a transient notification shown in the footer. A new toast
// replaces the current one immediately; each carries an id so the expiry
// timer of a replaced toast cannot clear its successor.
type toast struct {
	id      int
	kind    action.NoticeKind
	message string
}

func (m Model) renderToast() string {
	if m.toast == nil {
		return ""
	}
	if m.toast.kind == action.NoticeError {
		return m.styles.DangerText.Render("✗ " + m.toast.message)
	}
	return m.styles.SuccessText.Render("✓ " + m.toast.message)
}
