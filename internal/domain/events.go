package domain

// EventType represents the type of domain event
type EventType string

// Event types
const (
	EventCountriesLoaded     EventType = "CountriesLoaded"
	EventCountriesLoadFailed EventType = "CountriesLoadFailed"
	EventSelectionChanged    EventType = "SelectionChanged"
	EventDropdownToggled     EventType = "DropdownToggled"
)

// DomainEvent is the interface for all domain events
type DomainEvent interface {
	Type() EventType
}

// CountriesLoadedEvent is emitted when a card finished loading its list
type CountriesLoadedEvent struct {
	Card    string
	Count   int
	Skipped int // raw records dropped while mapping
}

func (e CountriesLoadedEvent) Type() EventType { return EventCountriesLoaded }

// CountriesLoadFailedEvent is emitted when the initial fetch of a card fails.
// The card keeps an empty list afterwards.
type CountriesLoadFailedEvent struct {
	Card string
	Err  error
}

func (e CountriesLoadFailedEvent) Type() EventType { return EventCountriesLoadFailed }

// SelectionChangedEvent carries the full selection of a card after a toggle
type SelectionChangedEvent struct {
	Card     string
	Selected []CountryRecord
}

func (e SelectionChangedEvent) Type() EventType { return EventSelectionChanged }

// Names returns the selected country names in selection order
func (e SelectionChangedEvent) Names() []string {
	names := make([]string, 0, len(e.Selected))
	for _, r := range e.Selected {
		names = append(names, r.Name)
	}
	return names
}

// DropdownToggledEvent is emitted when a card's dropdown opens or closes
type DropdownToggledEvent struct {
	Card string
	Open bool
}

func (e DropdownToggledEvent) Type() EventType { return EventDropdownToggled }
