// Package manifest defines the card manifest document: a JSON mapping from
// page-key to an ordered list of link cards. The reserved key "" holds the
// listing for the site root.
package manifest

import (
	"encoding/json"
	"fmt"
	"sort"
)

// Fallback values filled into a Card whose manifest entry omits the field.
const (
	DefaultCategory = "default"
	DefaultTitle    = "Default Title"
	DefaultURL      = "#"
)

// Card describes one renderable link card. Every field is optional in the
// wire form; WithDefaults fills the gaps with the fixed fallbacks.
type Card struct {
	Category string `json:"category,omitempty" yaml:"category,omitempty"`
	Title    string `json:"title,omitempty" yaml:"title,omitempty"`
	URL      string `json:"url,omitempty" yaml:"url,omitempty"`
}

// WithDefaults returns a copy of c with empty fields replaced by the fixed
// fallback values. Defaults are applied on read, never at parse time, so a
// stored document round-trips unchanged.
func (c Card) WithDefaults() Card {
	if c.Category == "" {
		c.Category = DefaultCategory
	}
	if c.Title == "" {
		c.Title = DefaultTitle
	}
	if c.URL == "" {
		c.URL = DefaultURL
	}
	return c
}

// Manifest maps a page-key to its ordered card list.
type Manifest map[string][]Card

// Parse decodes a JSON manifest document.
func Parse(data []byte) (Manifest, error) {
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("manifest: parse: %w", err)
	}
	return m, nil
}

// Cards returns the list for key with defaults applied, preserving the
// manifest's order exactly. An absent key yields nil: showing nothing for
// an unknown page is the documented behavior, not an error.
func (m Manifest) Cards(key string) []Card {
	entries, ok := m[key]
	if !ok {
		return nil
	}
	cards := make([]Card, len(entries))
	for i, c := range entries {
		cards[i] = c.WithDefaults()
	}
	return cards
}

// Keys returns the manifest's page-keys sorted lexicographically.
func (m Manifest) Keys() []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
