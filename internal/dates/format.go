package dates

import (
	"strconv"
	"strings"
)

// Style names a date rendering convention.
type Style string

const (
	StyleAmerican      Style = "american"
	StyleAmericanLong  Style = "american long"
	StyleAmericanSlash Style = "american slash"
	StyleBritish       Style = "british"
	StyleBritishLong   Style = "british long"
	StyleBritishSlash  Style = "british slash"
	StyleISO           Style = "iso"
	StyleYMDSlash      Style = "yyyy/mm/dd"
)

// layoutPair holds time layouts for a date with and without a day.
type layoutPair struct {
	withDay    string
	withoutDay string
}

// Day layouts use "2" so the day never gets a leading zero.
var styleLayouts = map[Style]layoutPair{
	StyleAmerican:      {withDay: "Jan 2, 2006", withoutDay: "Jan 2006"},
	StyleAmericanLong:  {withDay: "January 2, 2006", withoutDay: "January 2006"},
	StyleAmericanSlash: {withDay: "01/02/2006", withoutDay: "01/2006"},
	StyleBritish:       {withDay: "2 Jan 2006", withoutDay: "Jan 2006"},
	StyleBritishLong:   {withDay: "2 January 2006", withoutDay: "January 2006"},
	StyleBritishSlash:  {withDay: "02/01/2006", withoutDay: "01/2006"},
	StyleISO:           {withDay: "2006-01-02", withoutDay: "2006-01"},
	StyleYMDSlash:      {withDay: "2006/01/02", withoutDay: "2006/01"},
}

// Styles lists every supported style in display order.
func Styles() []Style {
	return []Style{
		StyleAmerican,
		StyleAmericanLong,
		StyleAmericanSlash,
		StyleBritish,
		StyleBritishLong,
		StyleBritishSlash,
		StyleISO,
		StyleYMDSlash,
	}
}

// ParseStyle resolves a style name, ignoring case and surrounding whitespace.
func ParseStyle(s string) (Style, error) {
	style := Style(strings.ToLower(strings.TrimSpace(s)))
	if !style.Valid() {
		return "", &StyleError{Style: s}
	}
	return style, nil
}

// Valid reports whether s is a supported style.
func (s Style) Valid() bool {
	_, ok := styleLayouts[s]
	return ok
}

// FormatSingle renders d in the given style. The empty date renders as "",
// a non-date as its fallback text, and a year-only date as the bare year.
func FormatSingle(d PartialDate, style Style) (string, error) {
	layouts, ok := styleLayouts[style]
	if !ok {
		return "", &StyleError{Style: string(style)}
	}

	switch d.Precision() {
	case PrecisionNone:
		return d.fallback, nil
	case PrecisionYear:
		return strconv.Itoa(d.year), nil
	case PrecisionMonth:
		return d.instant().Format(layouts.withoutDay), nil
	default:
		return d.instant().Format(layouts.withDay), nil
	}
}
