package search

import "countrypick/internal/domain"

// Mode selects how a query is matched and when the dropdown opens
type Mode int

const (
	// ModeAsync matches names only; the widget debounces recomputation and
	// the dropdown opens when a result is ready.
	ModeAsync Mode = iota
	// ModeSync matches names and currency codes on every keystroke; the
	// widget controls dropdown visibility.
	ModeSync
)

func (m Mode) String() string {
	if m == ModeSync {
		return "sync"
	}
	return "async"
}

// Direction of a highlight move
type Direction int

const (
	Next Direction = iota
	Previous
)

// State is the search and selection state owned by one widget
type State struct {
	Canonical    []domain.CountryRecord // sorted once at Initialize, never touched again
	Filtered     []domain.CountryRecord // subsequence of Canonical, order preserved
	Query        string
	Highlighted  int
	DropdownOpen bool
	Loading      bool

	// Passes counts filter recomputations
	Passes int

	selected map[string]domain.CountryRecord
	order    []string        // selection order of keys
	known    map[string]bool // every key ever loaded into Canonical
	position map[string]int  // key -> index in Canonical
}
