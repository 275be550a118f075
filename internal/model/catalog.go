package model

import (
	"sort"
	"strings"

	"github.com/google/uuid"
)

// CatalogEntry is a reusable profile definition: everything about a
// profile except the cuts.
type CatalogEntry struct {
	ID             string  `json:"id"`
	Code           string  `json:"code"`
	Description    string  `json:"description"`
	WeightPerMeter float64 `json:"weight_per_meter"`
	BarLength      float64 `json:"bar_length_mm"`
	PricePerKg     float64 `json:"price_per_kg"`
}

// NewCatalogEntry creates a new CatalogEntry with a generated ID.
func NewCatalogEntry(code, description string, weightPerMeter, barLength, pricePerKg float64) CatalogEntry {
	return CatalogEntry{
		ID:             uuid.New().String()[:8],
		Code:           code,
		Description:    description,
		WeightPerMeter: weightPerMeter,
		BarLength:      barLength,
		PricePerKg:     pricePerKg,
	}
}

// ToProfile starts a profile from this entry with no cuts.
func (e CatalogEntry) ToProfile() Profile {
	return NewProfile(e.Code, e.WeightPerMeter, e.BarLength, e.PricePerKg)
}

// Catalog holds the user's saved profile definitions.
type Catalog struct {
	Entries []CatalogEntry `json:"entries"`
}

// DefaultCatalog returns a catalog seeded with common window-frame profiles.
func DefaultCatalog() Catalog {
	return Catalog{
		Entries: []CatalogEntry{
			NewCatalogEntry("MARCO-20", "Sliding frame 20 series", 0.512, 6000, 0),
			NewCatalogEntry("HOJA-20", "Sliding sash 20 series", 0.436, 6000, 0),
			NewCatalogEntry("TUBO-40x20", "Rectangular tube 40x20x1.5", 0.462, 6000, 0),
			NewCatalogEntry("ANG-25", "Equal angle 25x25x2", 0.260, 6000, 0),
			NewCatalogEntry("MARCO-25", "Casement frame 25 series", 0.735, 6200, 0),
		},
	}
}

// Upsert adds e, or replaces the entry with the same code (case-insensitive).
func (c *Catalog) Upsert(e CatalogEntry) {
	for i := range c.Entries {
		if strings.EqualFold(c.Entries[i].Code, e.Code) {
			e.ID = c.Entries[i].ID
			c.Entries[i] = e
			return
		}
	}
	c.Entries = append(c.Entries, e)
}

// Remove deletes the entry with the given code. Returns false if absent.
func (c *Catalog) Remove(code string) bool {
	for i := range c.Entries {
		if strings.EqualFold(c.Entries[i].Code, code) {
			c.Entries = append(c.Entries[:i], c.Entries[i+1:]...)
			return true
		}
	}
	return false
}

// FindByCode returns a pointer to the entry with the given code, or nil.
func (c *Catalog) FindByCode(code string) *CatalogEntry {
	for i := range c.Entries {
		if strings.EqualFold(c.Entries[i].Code, code) {
			return &c.Entries[i]
		}
	}
	return nil
}

// Codes returns the entry codes sorted alphabetically, for dropdowns.
func (c *Catalog) Codes() []string {
	codes := make([]string, len(c.Entries))
	for i, e := range c.Entries {
		codes[i] = e.Code
	}
	sort.Strings(codes)
	return codes
}
