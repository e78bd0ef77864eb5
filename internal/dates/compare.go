package dates

import "strings"

// sortKey is (year, month, day, lower(fallback)) where a missing year sorts
// as +infinity and a missing month or day sorts as -1. Real dates therefore
// precede every non-date, and within a year a less precise date comes first.
type sortKey struct {
	yearUnknown bool
	year        int
	month       int
	day         int
	fallback    string
}

func (d PartialDate) key() sortKey {
	k := sortKey{
		yearUnknown: !d.hasYear,
		month:       -1,
		day:         -1,
		fallback:    strings.ToLower(d.fallback),
	}
	if d.hasYear {
		k.year = d.year
	}
	if d.month != 0 {
		k.month = d.month
	}
	if d.day != 0 {
		k.day = d.day
	}
	return k
}

// Compare returns -1, 0 or +1 ordering a before, equal to, or after b.
func Compare(a, b PartialDate) int {
	ka, kb := a.key(), b.key()

	if ka.yearUnknown != kb.yearUnknown {
		if ka.yearUnknown {
			return 1
		}
		return -1
	}
	if c := compareInt(ka.year, kb.year); c != 0 {
		return c
	}
	if c := compareInt(ka.month, kb.month); c != 0 {
		return c
	}
	if c := compareInt(ka.day, kb.day); c != 0 {
		return c
	}
	return strings.Compare(ka.fallback, kb.fallback)
}

func compareInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// Less reports whether d sorts before other.
func (d PartialDate) Less(other PartialDate) bool {
	return Compare(d, other) < 0
}

// Equal reports whether d and other have the same sort key. Fallback text
// is compared case-insensitively.
func (d PartialDate) Equal(other PartialDate) bool {
	return Compare(d, other) == 0
}
