package dates

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatRange(t *testing.T) {
	tests := []struct {
		name  string
		start string
		end   string
		style Style
		want  string
	}{
		// same month, days merged
		{"american same month", "2023-05-22", "2023-05-24", StyleAmerican, "May 22--24, 2023"},
		{"american long same month", "2023-06-01", "2023-06-03", StyleAmericanLong, "June 1--3, 2023"},
		{"british same month", "2023-05-22", "2023-05-24", StyleBritish, "22--24 May 2023"},
		{"british long same month", "2023-06-01", "2023-06-03", StyleBritishLong, "1--3 June 2023"},

		// same year, different months, with days
		{"american cross month", "2023-05-22", "2023-06-03", StyleAmerican, "May 22--Jun 3, 2023"},
		{"american long cross month", "2023-05-22", "2023-06-03", StyleAmericanLong, "May 22--June 3, 2023"},
		{"british cross month", "2023-05-22", "2023-06-03", StyleBritish, "22 May--3 Jun 2023"},
		{"british long cross month", "2023-05-22", "2023-06-03", StyleBritishLong, "22 May--3 June 2023"},

		// month precision
		{"american months", "2020-01", "2020-06", StyleAmerican, "Jan--Jun 2020"},
		{"american long months", "2020-01", "2020-06", StyleAmericanLong, "January--June 2020"},
		{"british months", "2020-01", "2020-06", StyleBritish, "Jan--Jun 2020"},
		{"british long months", "2020-09", "2020-12", StyleBritishLong, "September--December 2020"},

		// no consolidation
		{"different years", "2023-05-22", "2024-05-24", StyleAmerican, "May 22, 2023--May 24, 2024"},
		{"mixed precision", "2023-05", "2023-06-03", StyleAmerican, "May 2023--Jun 3, 2023"},
		{"years only", "2020", "2021", StyleAmerican, "2020--2021"},
		{"iso", "2023-05", "2023-06", StyleISO, "2023-05--2023-06"},
		{"american slash", "2023-05-22", "2023-05-24", StyleAmericanSlash, "05/22/2023--05/24/2023"},
		{"british slash", "2023-05-22", "2023-05-24", StyleBritishSlash, "22/05/2023--24/05/2023"},
		{"yyyy/mm/dd", "2023-05-22", "2023-05-24", StyleYMDSlash, "2023/05/22--2023/05/24"},
		{"text end", "2020-01", "Present", StyleAmerican, "Jan 2020--Present"},
		{"text start", "Childhood", "2010", StyleBritish, "Childhood--2010"},

		// short circuits
		{"identical iso", "2023-05", "2023-05", StyleISO, "2023-05"},
		{"identical american", "2023-05-22", "2023-05-22", StyleAmerican, "May 22, 2023"},
		{"identical years", "2021", "2021", StyleBritishLong, "2021"},
		{"empty end", "2023-05", "", StyleAmerican, "May 2023"},
		{"empty start", "", "2023-05", StyleAmerican, "May 2023"},
		{"both empty", "", "", StyleAmerican, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FormatRange(MustParse(tt.start), MustParse(tt.end), tt.style)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormatRange_InvalidStyle(t *testing.T) {
	_, err := FormatRange(MustParse("2020"), MustParse("2021"), Style("compact"))
	require.Error(t, err)
	assert.IsType(t, &StyleError{}, err)
}

func TestFormatRange_EndBeforeStartIsNotReordered(t *testing.T) {
	got, err := FormatRange(MustParse("2023-06"), MustParse("2023-01"), StyleAmerican)
	require.NoError(t, err)
	assert.Equal(t, "Jun--Jan 2023", got)
}
