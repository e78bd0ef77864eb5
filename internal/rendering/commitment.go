package rendering

import "github.com/jonathan/cvtext/internal/types"

// FormatCommitment describes the time an activity took, e.g. "10 hrs/wk, 40 wks/yr".
// A missing half is shown as "?". Returns "" when neither is known.
func FormatCommitment(a types.Activity) string {
	if a.HoursPerWeek == "" && a.WeeksPerYear == "" {
		return ""
	}
	return quantity(a.HoursPerWeek, "hr/wk", "hrs/wk") + ", " + quantity(a.WeeksPerYear, "wk/yr", "wks/yr")
}

func quantity(n, singular, plural string) string {
	switch n {
	case "":
		return "? " + plural
	case "1":
		return "1 " + singular
	default:
		return n + " " + plural
	}
}
