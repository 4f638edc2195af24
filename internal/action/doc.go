// Package action sequences user-initiated writes against the mall API.
//
// The Coordinator is the single boundary where a mutation attempt runs:
// local validation first (a rejected payload never reaches the network),
// then the write, then a refresh of every store that displays the mutated
// entity type. The outcome is always a transient Notice; errors are
// converted here and never propagate into the UI loop.
package action
