package dates

// RangeSeparator joins the two ends of a date range. LaTeX renders it as an en dash.
const RangeSeparator = "--"

// rangeLayouts are the start/end layouts used when a range collapses into a
// single mention of the shared year.
type rangeLayouts struct {
	monthOnly  [2]string
	sameMonth  [2]string
	crossMonth [2]string
}

var consolidatedLayouts = map[Style]rangeLayouts{
	StyleAmerican: {
		monthOnly:  [2]string{"Jan", "Jan 2006"},
		sameMonth:  [2]string{"Jan 2", "2, 2006"},
		crossMonth: [2]string{"Jan 2", "Jan 2, 2006"},
	},
	StyleAmericanLong: {
		monthOnly:  [2]string{"January", "January 2006"},
		sameMonth:  [2]string{"January 2", "2, 2006"},
		crossMonth: [2]string{"January 2", "January 2, 2006"},
	},
	StyleBritish: {
		monthOnly:  [2]string{"Jan", "Jan 2006"},
		sameMonth:  [2]string{"2", "2 Jan 2006"},
		crossMonth: [2]string{"2 Jan", "2 Jan 2006"},
	},
	StyleBritishLong: {
		monthOnly:  [2]string{"January", "January 2006"},
		sameMonth:  [2]string{"2", "2 January 2006"},
		crossMonth: [2]string{"2 January", "2 January 2006"},
	},
}

// FormatRange renders the span from start to end. When both ends share a
// year and a precision, the word styles mention that year once
// ("May 22--24, 2023"); every other pair is two formatted dates joined by
// RangeSeparator. end is expected to be the later date but is not checked.
func FormatRange(start, end PartialDate, style Style) (string, error) {
	startText, err := FormatSingle(start, style)
	if err != nil {
		return "", err
	}
	endText, err := FormatSingle(end, style)
	if err != nil {
		return "", err
	}

	if end.IsZero() || endText == startText {
		return startText, nil
	}
	if start.IsZero() {
		return endText, nil
	}

	layouts, ok := consolidatedLayouts[style]
	if !ok || !sharesYearAndPrecision(start, end) {
		return startText + RangeSeparator + endText, nil
	}

	var pair [2]string
	switch {
	case start.Precision() == PrecisionMonth:
		pair = layouts.monthOnly
	case start.month == end.month:
		pair = layouts.sameMonth
	default:
		pair = layouts.crossMonth
	}
	return start.instant().Format(pair[0]) + RangeSeparator + end.instant().Format(pair[1]), nil
}

// sharesYearAndPrecision reports whether both ends are real dates in the same
// year and both stop at the month or both carry a day.
func sharesYearAndPrecision(start, end PartialDate) bool {
	if !start.IsDate() || !end.IsDate() || start.year != end.year {
		return false
	}
	p := start.Precision()
	return p == end.Precision() && (p == PrecisionMonth || p == PrecisionDay)
}
