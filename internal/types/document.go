// Package types provides type definitions for the structured résumé produced by the parser.
//
//nolint:revive // types is a standard Go package name pattern
package types

// Document is the structured form of one plain-text résumé. Record slices
// keep the order in which records appear in the source text.
type Document struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	Website string `json:"website"`

	Sections   []string    `json:"sections"`
	Education  []Education `json:"education"`
	Activities []Activity  `json:"activities"`
	Awards     []Award     `json:"awards"`
	Tests      []Test      `json:"tests"`
	SkillSets  []SkillSet  `json:"skillsets"`
}

// NewDocument returns an empty document whose lists encode as [] rather than null.
func NewDocument() *Document {
	return &Document{
		Sections:   []string{},
		Education:  []Education{},
		Activities: []Activity{},
		Awards:     []Award{},
		Tests:      []Test{},
		SkillSets:  []SkillSet{},
	}
}

// LastEducation returns the most recent education entry, or nil when there is none.
func (d *Document) LastEducation() *Education {
	var last *Education
	for i := range d.Education {
		if last == nil || !d.Education[i].Less(last) {
			last = &d.Education[i]
		}
	}
	return last
}

// AcademicTests returns the admissions tests in document order.
func (d *Document) AcademicTests() []Test {
	var tests []Test
	for i := range d.Tests {
		if d.Tests[i].IsAcademic() {
			tests = append(tests, d.Tests[i])
		}
	}
	return tests
}

// EnglishTests returns the language proficiency tests in document order.
func (d *Document) EnglishTests() []Test {
	var tests []Test
	for i := range d.Tests {
		if d.Tests[i].IsLanguage() {
			tests = append(tests, d.Tests[i])
		}
	}
	return tests
}

// ActivitiesOfSection returns the activities stamped with section. The empty
// string selects activities that appeared before any heading.
func (d *Document) ActivitiesOfSection(section string) []Activity {
	var activities []Activity
	for i := range d.Activities {
		if d.Activities[i].Section == section {
			activities = append(activities, d.Activities[i])
		}
	}
	return activities
}

// SectionsWithActivities returns each distinct heading that owns at least one
// activity, in document order, followed by "" if any activity has no heading.
func (d *Document) SectionsWithActivities() []string {
	seen := make(map[string]bool)
	var sections []string
	for _, s := range append(append([]string{}, d.Sections...), "") {
		if seen[s] {
			continue
		}
		seen[s] = true
		if len(d.ActivitiesOfSection(s)) > 0 {
			sections = append(sections, s)
		}
	}
	return sections
}
