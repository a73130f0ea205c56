// Package schema has the metric catalog, rubric types and partner records for all parts of partnerscore.
package schema

import (
	"maps"
	"slices"
	"strconv"
	"strings"
)

// Identity field names used in dict-form partner records.
const (
	FieldPartnerName  = "partner_name"
	FieldYear         = "year"
	FieldTier         = "tier"
	FieldDiscountPct  = "discount_pct"
	FieldCity         = "city"
	FieldCountry      = "country"
	FieldManagerName  = "manager_name"
	FieldManagerEmail = "manager_email"
)

// IdentityFields lists the identity columns in display order.
var IdentityFields = []string{
	FieldPartnerName, FieldYear, FieldTier, FieldDiscountPct,
	FieldCity, FieldCountry, FieldManagerName, FieldManagerEmail,
}

// PartnerIdentity holds the descriptive fields shared by raw and scored partner records.
type PartnerIdentity struct {
	Name         string  `json:"partner_name" yaml:"partner_name"`
	Year         int     `json:"year,omitempty" yaml:"year,omitempty"`
	Tier         string  `json:"tier,omitempty" yaml:"tier,omitempty"`
	DiscountPct  float64 `json:"discount_pct,omitempty" yaml:"discount_pct,omitempty"`
	City         string  `json:"city,omitempty" yaml:"city,omitempty"`
	Country      string  `json:"country,omitempty" yaml:"country,omitempty"`
	ManagerName  string  `json:"manager_name,omitempty" yaml:"manager_name,omitempty"`
	ManagerEmail string  `json:"manager_email,omitempty" yaml:"manager_email,omitempty"`
}

// RawPartner is the source-of-truth record for one partner.
// Raw holds display-form values such as "$1,200" or "15%" keyed by metric key.
type RawPartner struct {
	PartnerIdentity
	Raw map[string]string `json:"raw" yaml:"raw"`
}

// ScoredRow is the derived scoring result for one partner.
// Scores has one entry per enabled metric; Unscored marks a metric that could not be scored.
type ScoredRow struct {
	PartnerIdentity
	Scores      map[string]Score `json:"scores"`
	TotalScore  int              `json:"total_score"`
	MaxPossible int              `json:"max_possible"`
	Percentage  float64          `json:"percentage"`
}

// RawValue returns the raw value for a metric key.
func (p RawPartner) RawValue(key string) string {
	return p.Raw[key]
}

// SetIdentityField assigns one identity field from its string form.
// Unparseable numeric fields are left at zero. It reports whether the field is known.
func (p *PartnerIdentity) SetIdentityField(field, value string) bool {
	value = strings.TrimSpace(value)
	switch field {
	case FieldPartnerName:
		p.Name = value
	case FieldYear:
		if y, err := strconv.Atoi(value); err == nil {
			p.Year = y
		}
	case FieldTier:
		p.Tier = value
	case FieldDiscountPct:
		if d, ok := ParseNumber(value); ok {
			p.DiscountPct = d
		}
	case FieldCity:
		p.City = value
	case FieldCountry:
		p.Country = value
	case FieldManagerName:
		p.ManagerName = value
	case FieldManagerEmail:
		p.ManagerEmail = value
	default:
		return false
	}
	return true
}

// IdentityRecord returns the identity fields in dict form.
func (p PartnerIdentity) IdentityRecord() map[string]string {
	rec := map[string]string{
		FieldPartnerName:  p.Name,
		FieldTier:         p.Tier,
		FieldCity:         p.City,
		FieldCountry:      p.Country,
		FieldManagerName:  p.ManagerName,
		FieldManagerEmail: p.ManagerEmail,
	}
	if p.Year != 0 {
		rec[FieldYear] = strconv.Itoa(p.Year)
	}
	if p.DiscountPct != 0 {
		rec[FieldDiscountPct] = strconv.FormatFloat(p.DiscountPct, 'f', -1, 64)
	}
	return rec
}

// PartnerFromRecord builds a raw partner from a dict-form record.
// Identity fields are read by name and every raw_<key> field becomes a raw value.
func PartnerFromRecord(rec map[string]string) RawPartner {
	p := RawPartner{Raw: make(map[string]string)}
	for field, value := range rec {
		if key, ok := strings.CutPrefix(field, RawFieldPrefix); ok {
			if key != "" {
				p.Raw[key] = value
			}
			continue
		}
		p.SetIdentityField(field, value)
	}
	return p
}

// ToRecord converts the partner back into dict form with raw_<key> fields.
func (p RawPartner) ToRecord() map[string]string {
	rec := p.IdentityRecord()
	for key, value := range p.Raw {
		rec[RawFieldPrefix+key] = value
	}
	return rec
}

// RawKeys returns the metric keys that carry a raw value, sorted.
func (p RawPartner) RawKeys() []string {
	return slices.Sorted(maps.Keys(p.Raw))
}

// Clone returns a deep copy of the raw partner.
func (p RawPartner) Clone() RawPartner {
	clone := p
	clone.Raw = maps.Clone(p.Raw)
	if clone.Raw == nil {
		clone.Raw = make(map[string]string)
	}
	return clone
}
