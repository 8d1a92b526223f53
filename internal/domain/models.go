package domain

// CountryRecord is one entry of the country list
type CountryRecord struct {
	Name         string // display and sort key, unique within a load
	CurrencyCode string
	CurrencyName string
	Flag         string // emoji flag, only rendered by the async card
}

// Key identifies a record inside a selection set
func (r CountryRecord) Key() string {
	return r.Name
}
