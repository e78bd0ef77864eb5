package dates

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Precision describes how much of a calendar date is known.
type Precision int

const (
	PrecisionNone Precision = iota
	PrecisionYear
	PrecisionMonth
	PrecisionDay
)

// datePattern is YYYY(SEP MM(SEP DD)?)? with SEP one of - . /
// RE2 has no backreferences, so Parse checks that both separators agree.
var datePattern = regexp.MustCompile(`^(\d{4})(?:([-./])([01]?[0-9])(?:([-./])([0-3]?[0-9]))?)?$`)

// PartialDate is a year, a year and month, a full calendar date, or free
// text that could not be read as a date. The zero value is the empty date.
type PartialDate struct {
	year     int
	hasYear  bool
	month    int // 0 when unknown
	day      int // 0 when unknown
	fallback string
}

// NewYear returns a year-only date.
func NewYear(year int) PartialDate {
	return PartialDate{year: year, hasYear: true}
}

// NewYearMonth returns a date with month precision.
func NewYearMonth(year, month int) (PartialDate, error) {
	if msg := checkMonth(month); msg != "" {
		return PartialDate{}, &DateFormatError{Value: fmt.Sprintf("%04d-%02d", year, month), Message: msg}
	}
	return PartialDate{year: year, hasYear: true, month: month}, nil
}

// NewDate returns a date with day precision. The triplet must name a real calendar day.
func NewDate(year, month, day int) (PartialDate, error) {
	value := fmt.Sprintf("%04d-%02d-%02d", year, month, day)
	if msg := checkMonth(month); msg != "" {
		return PartialDate{}, &DateFormatError{Value: value, Message: msg}
	}
	if msg := checkDay(year, month, day); msg != "" {
		return PartialDate{}, &DateFormatError{Value: value, Message: msg}
	}
	return PartialDate{year: year, hasYear: true, month: month, day: day}, nil
}

// NewText returns a non-date value carrying s verbatim.
func NewText(s string) PartialDate {
	return PartialDate{fallback: s}
}

// Parse reads s as a partial date. Text outside the numeric grammar becomes
// a fallback-only value; text inside the grammar with an impossible month or
// day is a *DateFormatError.
func Parse(s string) (PartialDate, error) {
	s = strings.TrimSpace(s)

	m := datePattern.FindStringSubmatch(s)
	if m == nil || (m[4] != "" && m[4] != m[2]) {
		return NewText(s), nil
	}

	year, _ := strconv.Atoi(m[1])
	if m[3] == "" {
		return NewYear(year), nil
	}

	month, _ := strconv.Atoi(m[3])
	if msg := checkMonth(month); msg != "" {
		return PartialDate{}, &DateFormatError{Value: s, Message: msg}
	}
	if m[5] == "" {
		return PartialDate{year: year, hasYear: true, month: month}, nil
	}

	day, _ := strconv.Atoi(m[5])
	if msg := checkDay(year, month, day); msg != "" {
		return PartialDate{}, &DateFormatError{Value: s, Message: msg}
	}
	return PartialDate{year: year, hasYear: true, month: month, day: day}, nil
}

// MustParse is like Parse but panics on error. Intended for fixtures and constants.
func MustParse(s string) PartialDate {
	d, err := Parse(s)
	if err != nil {
		panic(fmt.Sprintf("dates: MustParse(%q): %v", s, err))
	}
	return d
}

func checkMonth(month int) string {
	if month < 1 || month > 12 {
		return "month out of range"
	}
	return ""
}

// checkDay rejects days that time.Date would normalize into another month.
// Year 0 has no calendar days.
func checkDay(year, month, day int) string {
	if year < 1 || day < 1 {
		return "day out of range"
	}
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if t.Year() != year || int(t.Month()) != month || t.Day() != day {
		return "day out of range"
	}
	return ""
}

// Year returns the year and whether it is known.
func (d PartialDate) Year() (int, bool) { return d.year, d.hasYear }

// Month returns the month (1-12) and whether it is known.
func (d PartialDate) Month() (int, bool) { return d.month, d.month != 0 }

// Day returns the day of month and whether it is known.
func (d PartialDate) Day() (int, bool) { return d.day, d.day != 0 }

// Fallback returns the free text of a non-date value.
func (d PartialDate) Fallback() string { return d.fallback }

// IsDate reports whether d carries a real calendar year.
func (d PartialDate) IsDate() bool { return d.hasYear }

// IsZero reports whether d is the empty date: no year and no fallback text.
func (d PartialDate) IsZero() bool { return !d.hasYear && d.fallback == "" }

// Precision reports the most specific component that is known.
func (d PartialDate) Precision() Precision {
	switch {
	case d.day != 0:
		return PrecisionDay
	case d.month != 0:
		return PrecisionMonth
	case d.hasYear:
		return PrecisionYear
	default:
		return PrecisionNone
	}
}

// String returns a form that Parse reads back to an equal value.
func (d PartialDate) String() string {
	switch d.Precision() {
	case PrecisionDay:
		return fmt.Sprintf("%04d-%02d-%02d", d.year, d.month, d.day)
	case PrecisionMonth:
		return fmt.Sprintf("%04d-%02d", d.year, d.month)
	case PrecisionYear:
		return fmt.Sprintf("%04d", d.year)
	default:
		return d.fallback
	}
}

// instant returns the first moment of d. Only valid for month or day precision.
func (d PartialDate) instant() time.Time {
	day := d.day
	if day == 0 {
		day = 1
	}
	return time.Date(d.year, time.Month(d.month), day, 0, 0, 0, 0, time.UTC)
}

type partialDateJSON struct {
	Year     *int   `json:"year,omitempty"`
	Month    *int   `json:"month,omitempty"`
	Day      *int   `json:"day,omitempty"`
	Fallback string `json:"fallback,omitempty"`
}

// MarshalJSON encodes the known components; the empty date encodes as {}.
func (d PartialDate) MarshalJSON() ([]byte, error) {
	var out partialDateJSON
	if d.hasYear {
		year := d.year
		out.Year = &year
		if month, ok := d.Month(); ok {
			out.Month = &month
		}
		if day, ok := d.Day(); ok {
			out.Day = &day
		}
	} else {
		out.Fallback = d.fallback
	}
	return json.Marshal(out)
}

// UnmarshalJSON accepts either the object form written by MarshalJSON or a
// plain string, which is read with Parse.
func (d *PartialDate) UnmarshalJSON(data []byte) error {
	var text string
	if err := json.Unmarshal(data, &text); err == nil {
		parsed, err := Parse(text)
		if err != nil {
			return err
		}
		*d = parsed
		return nil
	}

	var in partialDateJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}

	switch {
	case in.Year == nil:
		if in.Month != nil || in.Day != nil {
			return &DateFormatError{Message: "month or day given without a year"}
		}
		*d = NewText(in.Fallback)
	case in.Month == nil:
		if in.Day != nil {
			return &DateFormatError{Message: "day given without a month"}
		}
		*d = NewYear(*in.Year)
	case in.Day == nil:
		parsed, err := NewYearMonth(*in.Year, *in.Month)
		if err != nil {
			return err
		}
		*d = parsed
	default:
		parsed, err := NewDate(*in.Year, *in.Month, *in.Day)
		if err != nil {
			return err
		}
		*d = parsed
	}
	return nil
}
