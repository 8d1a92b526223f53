package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"countrypick/internal/domain"
)

// RawCountry mirrors one element of the endpoint's JSON array:
//
//	{ "name": { "common": "France" }, "currencies": { "EUR": { "name": "Euro" } }, "flag": "🇫🇷" }
type RawCountry struct {
	Name       RawName    `json:"name"`
	Currencies Currencies `json:"currencies"`
	Flag       string     `json:"flag"`
}

// RawName holds the naming variants of a country; only Common is used
type RawName struct {
	Common string `json:"common"`
}

// Currency is one entry of the currencies object
type Currency struct {
	Code string
	Name string
}

// Currencies keeps the entries of the currencies object in document order,
// so "the first currency" means the first one the endpoint listed.
type Currencies []Currency

// UnmarshalJSON decodes a JSON object keyed by currency code
func (c *Currencies) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok == nil {
		*c = nil
		return nil
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("currencies: expected object, got %v", tok)
	}

	var out Currencies
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		code, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("currencies: expected code, got %v", keyTok)
		}
		var entry struct {
			Name string `json:"name"`
		}
		if err := dec.Decode(&entry); err != nil {
			return fmt.Errorf("currencies: %s: %w", code, err)
		}
		out = append(out, Currency{Code: code, Name: entry.Name})
	}
	if _, err := dec.Token(); err != nil {
		return err
	}

	*c = out
	return nil
}

// ToRecords maps raw countries to records. Only the first currency of each
// country is kept. Records without a currency and records repeating an
// earlier name are skipped; the returned error joins one error per skipped
// record and the returned records are usable even when it is non-nil.
func ToRecords(raw []RawCountry) ([]domain.CountryRecord, error) {
	records := make([]domain.CountryRecord, 0, len(raw))
	seen := make(map[string]bool, len(raw))
	var skipped []error

	for i, rc := range raw {
		name := rc.Name.Common
		if len(rc.Currencies) == 0 {
			skipped = append(skipped, fmt.Errorf("record %d (%q): %w", i, name, ErrMissingCurrency))
			continue
		}
		if seen[name] {
			skipped = append(skipped, fmt.Errorf("record %d (%q): %w", i, name, ErrDuplicateName))
			continue
		}
		seen[name] = true

		first := rc.Currencies[0]
		records = append(records, domain.CountryRecord{
			Name:         name,
			CurrencyCode: first.Code,
			CurrencyName: first.Name,
			Flag:         rc.Flag,
		})
	}

	return records, errors.Join(skipped...)
}
