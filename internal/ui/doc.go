// Package ui implements the Bubble Tea terminal interface for mallboard.
//
// The UI is a single root Model with three list views (users, shops,
// products) and a set of modal modes layered over them: a filter prompt, a
// create/edit form, a delete confirmation, a read-only detail card, a help
// overlay, and the login screen shown when no session is persisted.
//
// Rendering reads the state stores directly on every frame. The stores are
// safe for concurrent use, so the background refresher can replace snapshots
// while the UI is drawing; a one-second tick forces a redraw so those
// updates become visible without user input. Foreign-key columns (shop
// owner, product shop) are resolved through reference tables rebuilt from
// the latest snapshots at render time.
//
// Switching to a view refreshes the stores that view renders from: the
// primary collection plus the collection its labels resolve against.
// Refreshes carry a generation number; a response from a superseded refresh
// is ignored so it cannot clear the spinner for a newer one. The snapshots
// themselves still apply in completion order, matching the stores'
// last-response-wins contract.
//
// Mutations go through the action coordinator off the UI goroutine and come
// back as notices, rendered as a footer toast for two seconds. A new toast
// replaces the current one and restarts the clock.
package ui
