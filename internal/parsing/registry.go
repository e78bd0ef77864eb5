// Package parsing converts plain-text résumés into structured documents.
//
// A résumé is a sequence of lines. Each line is blank, a "# heading", a
// "Keyword: value" field, or a "- text" bullet. Fields that start a record
// (School, Role, Award, Test, Skillset Name) open a new entry; the
// attribute fields that follow are attached to it.
package parsing

import (
	"regexp"
	"strconv"
	"strings"
)

// Field identifies a keyword line.
type Field int

const (
	FieldName Field = iota
	FieldEmail
	FieldPhone
	FieldAddress
	FieldWebsite

	FieldSchool
	FieldRole
	FieldSkillSetName
	FieldAward
	FieldTest

	FieldLoc
	FieldStartDate
	FieldEndDate
	FieldEventDate
	FieldDegree
	FieldMajor
	FieldMinor
	FieldGPA
	FieldRank
	FieldCourses
	FieldOrg
	FieldHoursPerWeek
	FieldWeeksPerYear
	FieldScore
	FieldSkills

	// fieldDescription stands for bullet lines in mismatch errors.
	fieldDescription Field = -1
)

type fieldInfo struct {
	label   string
	keyword string // regexp fragment
}

var fieldInfos = map[Field]fieldInfo{
	FieldName:         {"Name", `name`},
	FieldEmail:        {"Email", `email`},
	FieldPhone:        {"Phone", `phone`},
	FieldAddress:      {"Address", `address`},
	FieldWebsite:      {"Website", `website`},
	FieldSchool:       {"School", `school`},
	FieldRole:         {"Role", `role`},
	FieldSkillSetName: {"Skillset Name", `skillset\s+name`},
	FieldAward:        {"Award", `award`},
	FieldTest:         {"Test", `test`},
	FieldLoc:          {"Loc", `loc`},
	FieldStartDate:    {"Start Date", `start\s+date`},
	FieldEndDate:      {"End Date", `end\s+date`},
	FieldEventDate:    {"Award/Test Date", `(?:award|test)\s+date`},
	FieldDegree:       {"Degree", `degree`},
	FieldMajor:        {"Major", `major`},
	FieldMinor:        {"Minor", `minor`},
	FieldGPA:          {"GPA", `gpa`},
	FieldRank:         {"Rank", `rank`},
	FieldCourses:      {"Courses", `courses`},
	FieldOrg:          {"Org", `org`},
	FieldHoursPerWeek: {"Hours per Week", `hours\s+per\s+week`},
	FieldWeeksPerYear: {"Weeks per Year", `weeks\s+per\s+year`},
	FieldScore:        {"Score", `score`},
	FieldSkills:       {"Skills", `skills`},
	fieldDescription:  {"Description", ""},
}

// String returns the keyword as written in a résumé.
func (f Field) String() string {
	if info, ok := fieldInfos[f]; ok {
		return info.label
	}
	return "Field(" + strconv.Itoa(int(f)) + ")"
}

// IsContact reports whether f sets a document header field.
func (f Field) IsContact() bool {
	return f >= FieldName && f <= FieldWebsite
}

// StartsRecord reports whether f opens a new record.
func (f Field) StartsRecord() bool {
	return f >= FieldSchool && f <= FieldTest
}

// IsDate reports whether the value of f is read as a PartialDate.
func (f Field) IsDate() bool {
	switch f {
	case FieldStartDate, FieldEndDate, FieldEventDate:
		return true
	}
	return false
}

type fieldPattern struct {
	field   Field
	pattern *regexp.Regexp
}

// Registry holds the compiled line patterns. It is immutable once built and
// safe for concurrent use by any number of parsers.
type Registry struct {
	fields  []fieldPattern
	section *regexp.Regexp
	bullet  *regexp.Regexp
}

// NewRegistry compiles the keyword patterns. Contact and record-starting
// fields come first so they are tried before attribute fields.
func NewRegistry() *Registry {
	order := []Field{
		FieldName, FieldEmail, FieldPhone, FieldAddress, FieldWebsite,
		FieldSchool, FieldRole, FieldSkillSetName, FieldAward, FieldTest,
		FieldLoc, FieldStartDate, FieldEndDate, FieldEventDate,
		FieldDegree, FieldMajor, FieldMinor, FieldGPA, FieldRank, FieldCourses,
		FieldOrg, FieldHoursPerWeek, FieldWeeksPerYear,
		FieldScore, FieldSkills,
	}

	r := &Registry{
		fields:  make([]fieldPattern, 0, len(order)),
		section: regexp.MustCompile(`^\s*#\s*(.+)$`),
		bullet:  regexp.MustCompile(`^\s*[-•]\s*(.+)$`),
	}
	for _, f := range order {
		r.fields = append(r.fields, fieldPattern{
			field:   f,
			pattern: regexp.MustCompile(`(?i)^\s*` + fieldInfos[f].keyword + `\s*[:：](.*)$`),
		})
	}
	return r
}

// MatchField returns the first field whose pattern matches line, with the
// trimmed captured value. An empty value still counts as a match.
func (r *Registry) MatchField(line string) (Field, string, bool) {
	for _, fp := range r.fields {
		if m := fp.pattern.FindStringSubmatch(line); m != nil {
			return fp.field, strings.TrimSpace(m[1]), true
		}
	}
	return 0, "", false
}

// Fields lists the fields in match order.
func (r *Registry) Fields() []Field {
	fields := make([]Field, len(r.fields))
	for i, fp := range r.fields {
		fields[i] = fp.field
	}
	return fields
}

func (r *Registry) matchSection(line string) (string, bool) {
	return capture(r.section, line)
}

func (r *Registry) matchBullet(line string) (string, bool) {
	return capture(r.bullet, line)
}

func capture(re *regexp.Regexp, line string) (string, bool) {
	m := re.FindStringSubmatch(line)
	if m == nil {
		return "", false
	}
	return strings.TrimSpace(m[1]), true
}
