package state

import "fmt"

// LoadingLabel is returned while the referenced collection has not produced
// any entries yet.
const LoadingLabel = "Loading..."

// RefTable resolves foreign-key ids against a snapshot of the referenced
// collection. It is pure given its inputs: rebuilding it whenever the
// referenced store refreshes keeps labels consistent with the latest data.
type RefTable[E any] struct {
	loaded bool
	byID   map[string]E
	label  func(E) string
	noun   string
}

// NewRefTable builds the id index in a single pass. If the snapshot holds a
// duplicate id (a contract violation upstream) the later entry silently
// wins. noun names the referenced entity for the unknown-id fallback, e.g.
// "User" yields "Unknown User (u1)".
func NewRefTable[E any](items []E, loaded bool, key func(E) string, label func(E) string, noun string) RefTable[E] {
	byID := make(map[string]E, len(items))
	for _, item := range items {
		byID[key(item)] = item
	}
	return RefTable[E]{
		loaded: loaded,
		byID:   byID,
		label:  label,
		noun:   noun,
	}
}

// Label resolves id to a display label with three tiers: a loading
// placeholder while the referenced collection is empty or not yet loaded, a
// composed label when the id is present, and an id-echoing fallback when the
// id is absent from a loaded collection. A broken reference degrades
// visibly instead of failing the whole view.
func (t RefTable[E]) Label(id string) string {
	if !t.loaded || len(t.byID) == 0 {
		return LoadingLabel
	}
	if entity, ok := t.byID[id]; ok {
		return t.label(entity)
	}
	return fmt.Sprintf("Unknown %s (%s)", t.noun, id)
}

// Has reports whether id resolves against the current index.
func (t RefTable[E]) Has(id string) bool {
	_, ok := t.byID[id]
	return ok
}

// Len returns the number of indexed entries.
func (t RefTable[E]) Len() int {
	return len(t.byID)
}
