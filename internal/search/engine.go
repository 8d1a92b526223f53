// Package search implements the incremental search and multi-select state
// machine shared by both country cards.
package search

import (
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"countrypick/internal/domain"
)

// NewCollator returns a collator for locale-aware name ordering
func NewCollator(tag language.Tag) *collate.Collator {
	return collate.New(tag)
}

// Initialize builds the state for a freshly loaded list. The records are
// copied and sorted by name with c; a nil c collates for English.
func Initialize(records []domain.CountryRecord, c *collate.Collator) *State {
	if c == nil {
		c = NewCollator(language.English)
	}

	canonical := make([]domain.CountryRecord, len(records))
	copy(canonical, records)
	sort.SliceStable(canonical, func(i, j int) bool {
		return c.CompareString(canonical[i].Name, canonical[j].Name) < 0
	})

	s := &State{
		Canonical: canonical,
		Filtered:  canonical,
		selected:  make(map[string]domain.CountryRecord),
		known:     make(map[string]bool, len(canonical)),
		position:  make(map[string]int, len(canonical)),
	}
	for i, r := range canonical {
		s.known[r.Key()] = true
		s.position[r.Key()] = i
	}
	return s
}

// Empty returns the state of a widget whose list failed to load
func Empty() *State {
	return Initialize(nil, nil)
}

// Blank reports whether text short-circuits filtering. Async mode ignores
// surrounding whitespace; sync mode only treats "" as blank, so a lone
// space still matches names containing one.
func Blank(text string, mode Mode) bool {
	if mode == ModeAsync {
		return strings.TrimSpace(text) == ""
	}
	return text == ""
}

// SetQuery records text as the query. A blank query short-circuits: the
// filtered view is emptied, the dropdown closes and loading stops. It
// reports whether the query was blank.
func (s *State) SetQuery(text string, mode Mode) bool {
	s.Query = text
	if !Blank(text, mode) {
		return false
	}
	s.Filtered = nil
	s.Highlighted = 0
	s.DropdownOpen = false
	s.Loading = false
	return true
}

// Recompute filters the canonical list with the current query. In async
// mode a finished recomputation also opens the dropdown.
func (s *State) Recompute(mode Mode) {
	q := strings.ToLower(s.Query)

	filtered := make([]domain.CountryRecord, 0)
	for _, r := range s.Canonical {
		if Matches(r, q, mode) {
			filtered = append(filtered, r)
		}
	}

	s.Filtered = filtered
	s.Highlighted = 0
	s.Passes++

	if mode == ModeAsync {
		s.DropdownOpen = true
		s.Loading = false
	}
}

// UpdateQuery sets the query and recomputes the filtered view at once
func (s *State) UpdateQuery(text string, mode Mode) {
	if s.SetQuery(text, mode) {
		return
	}
	s.Recompute(mode)
}

// ShowAll resets the filtered view to the whole canonical list
func (s *State) ShowAll() {
	s.Filtered = s.Canonical
	s.Highlighted = 0
}

// Matches reports whether r matches the lower-cased query
func Matches(r domain.CountryRecord, lowerQuery string, mode Mode) bool {
	if strings.Contains(strings.ToLower(r.Name), lowerQuery) {
		return true
	}
	return mode == ModeSync && strings.Contains(strings.ToLower(r.CurrencyCode), lowerQuery)
}

// MoveHighlight advances the highlight circularly. No-op on an empty view.
func (s *State) MoveHighlight(dir Direction) {
	n := len(s.Filtered)
	if n == 0 {
		return
	}
	switch dir {
	case Next:
		s.Highlighted = (s.Highlighted + 1) % n
	case Previous:
		s.Highlighted = (s.Highlighted - 1 + n) % n
	}
}

// SetHighlight moves the highlight to index when it is in range
func (s *State) SetHighlight(index int) bool {
	if index < 0 || index >= len(s.Filtered) {
		return false
	}
	s.Highlighted = index
	return true
}

// HighlightedRecord returns the record under the highlight
func (s *State) HighlightedRecord() (domain.CountryRecord, bool) {
	if s.Highlighted < 0 || s.Highlighted >= len(s.Filtered) {
		return domain.CountryRecord{}, false
	}
	return s.Filtered[s.Highlighted], true
}

// ToggleSelection adds r to the selection or removes it. Records that were
// never part of the canonical list are ignored; the result reports whether
// the selection changed.
func (s *State) ToggleSelection(r domain.CountryRecord) bool {
	key := r.Key()
	if !s.known[key] {
		return false
	}

	if _, ok := s.selected[key]; ok {
		delete(s.selected, key)
		for i, k := range s.order {
			if k == key {
				s.order = append(s.order[:i:i], s.order[i+1:]...)
				break
			}
		}
		return true
	}

	s.selected[key] = r
	s.order = append(s.order, key)
	return true
}

// CommitHighlighted toggles the highlighted record
func (s *State) CommitHighlighted() bool {
	r, ok := s.HighlightedRecord()
	if !ok {
		return false
	}
	return s.ToggleSelection(r)
}

// IsSelected reports whether r is in the selection
func (s *State) IsSelected(r domain.CountryRecord) bool {
	_, ok := s.selected[r.Key()]
	return ok
}

// SelectedCount returns the size of the selection
func (s *State) SelectedCount() int {
	return len(s.selected)
}

// Selected returns the selection in the order it was made
func (s *State) Selected() []domain.CountryRecord {
	out := make([]domain.CountryRecord, 0, len(s.order))
	for _, k := range s.order {
		out = append(out, s.selected[k])
	}
	return out
}

// SelectedSorted returns the selection in canonical order
func (s *State) SelectedSorted() []domain.CountryRecord {
	out := s.Selected()
	sort.SliceStable(out, func(i, j int) bool {
		return s.position[out[i].Key()] < s.position[out[j].Key()]
	})
	return out
}
