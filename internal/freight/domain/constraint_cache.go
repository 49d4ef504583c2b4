package domain

// ConstraintCache is an in-memory snapshot of minimum-wage and sanction data
// consulted by the constraint engine. A refresh is read-only and additive;
// missing keys on the source side simply yield empty mappings here.
type ConstraintCache struct {
	MinWageCentsByCountry map[string]int64
	SanctionedCarriers    map[string]bool
}

// NewConstraintCache returns an empty cache — the correct default during
// startup, before the first successful refresh (spec.md §7).
func NewConstraintCache() *ConstraintCache {
	return &ConstraintCache{
		MinWageCentsByCountry: make(map[string]int64),
		SanctionedCarriers:    make(map[string]bool),
	}
}

const defaultMinWageCents = 800

// MinWageCents looks up the minimum wage for a country code, falling back to
// the spec-mandated default when the country is absent from the cache.
func (c *ConstraintCache) MinWageCents(countryCode string) int64 {
	if c == nil {
		return defaultMinWageCents
	}
	if v, ok := c.MinWageCentsByCountry[countryCode]; ok {
		return v
	}
	return defaultMinWageCents
}

// IsSanctioned reports whether a carrier code is on the sanctioned list.
func (c *ConstraintCache) IsSanctioned(carrierCode string) bool {
	return c != nil && c.SanctionedCarriers[carrierCode]
}
