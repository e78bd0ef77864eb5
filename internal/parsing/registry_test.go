package parsing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_MatchField(t *testing.T) {
	reg := NewRegistry()

	tests := []struct {
		name  string
		line  string
		field Field
		value string
	}{
		{"ascii colon", "Name: Ada Lovelace", FieldName, "Ada Lovelace"},
		{"full-width colon", "Name：Ada Lovelace", FieldName, "Ada Lovelace"},
		{"case insensitive", "gPa: 3.9", FieldGPA, "3.9"},
		{"space before colon", "Degree : BSc", FieldDegree, "BSc"},
		{"leading whitespace", "   Org: ACME", FieldOrg, "ACME"},
		{"multi-word keyword", "Hours per Week: 10", FieldHoursPerWeek, "10"},
		{"keyword spacing", "Weeks  per\tYear: 40", FieldWeeksPerYear, "40"},
		{"award date", "Award Date: 2021-05", FieldEventDate, "2021-05"},
		{"test date", "Test Date: 2021-05", FieldEventDate, "2021-05"},
		{"award", "Award: Dean's List", FieldAward, "Dean's List"},
		{"test", "Test: TOEFL", FieldTest, "TOEFL"},
		{"skillset name", "Skillset Name: Languages", FieldSkillSetName, "Languages"},
		{"skills", "Skills: Go, Rust", FieldSkills, "Go, Rust"},
		{"empty value", "School:", FieldSchool, ""},
		{"value keeps colons", "Website: https://example.com", FieldWebsite, "https://example.com"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			field, value, ok := reg.MatchField(tt.line)
			require.True(t, ok)
			assert.Equal(t, tt.field, field)
			assert.Equal(t, tt.value, value)
		})
	}
}

func TestRegistry_NoMatch(t *testing.T) {
	reg := NewRegistry()

	for _, line := range []string{
		"Named after: nobody",
		"Role Model: someone",
		"Skillset: Go",
		"Score 1500",
		"- Role: Tutor",
	} {
		_, _, ok := reg.MatchField(line)
		assert.False(t, ok, line)
	}
}

func TestRegistry_FieldOrder(t *testing.T) {
	fields := NewRegistry().Fields()
	require.Len(t, fields, 25)

	seenAttribute := false
	for _, f := range fields {
		if !f.IsContact() && !f.StartsRecord() {
			seenAttribute = true
			continue
		}
		assert.False(t, seenAttribute, "%s listed after an attribute field", f)
	}
}

func TestField_String(t *testing.T) {
	assert.Equal(t, "Start Date", FieldStartDate.String())
	assert.Equal(t, "Hours per Week", FieldHoursPerWeek.String())
	assert.Equal(t, "Description", fieldDescription.String())
	assert.Equal(t, "Field(99)", Field(99).String())
}

func TestField_IsDate(t *testing.T) {
	assert.True(t, FieldStartDate.IsDate())
	assert.True(t, FieldEndDate.IsDate())
	assert.True(t, FieldEventDate.IsDate())
	assert.False(t, FieldScore.IsDate())
	assert.False(t, FieldName.IsDate())
}
