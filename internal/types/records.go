package types

import (
	"regexp"
	"strings"

	"github.com/jonathan/cvtext/internal/dates"
)

var (
	academicTests = []string{"SAT", "ACT", "GRE", "GMAT"}
	languageTests = []string{"TOEFL", "IELTS", "DET", "Duolingo"}

	courseSemicolon = regexp.MustCompile(`;\s*`)
	courseComma     = regexp.MustCompile(`,\s*`)
	apCourse        = regexp.MustCompile(`^AP\b`)
	ibCourse        = regexp.MustCompile(`\b[HS]L\b`)
)

// Education represents one school attended
type Education struct {
	School    string            `json:"school"`
	Loc       string            `json:"loc"`
	StartDate dates.PartialDate `json:"start_date"`
	EndDate   dates.PartialDate `json:"end_date"`
	Degree    string            `json:"degree"`
	Major     string            `json:"major"`
	Minor     string            `json:"minor"`
	GPA       string            `json:"gpa"`
	Rank      string            `json:"rank"`
	Courses   string            `json:"courses"`
}

// CourseList splits Courses on semicolons when any are present, otherwise on commas.
func (e *Education) CourseList() []string {
	if strings.TrimSpace(e.Courses) == "" {
		return nil
	}

	sep := courseComma
	if strings.Contains(e.Courses, ";") {
		sep = courseSemicolon
	}

	var courses []string
	for _, c := range sep.Split(e.Courses, -1) {
		if c = strings.TrimSpace(c); c != "" {
			courses = append(courses, c)
		}
	}
	return courses
}

// APCourses returns the Advanced Placement courses, e.g. "AP Calculus BC".
func (e *Education) APCourses() []string {
	return filterCourses(e.CourseList(), apCourse)
}

// IBCourses returns the IB courses, recognized by an HL or SL level marker.
func (e *Education) IBCourses() []string {
	return filterCourses(e.CourseList(), ibCourse)
}

func filterCourses(courses []string, pattern *regexp.Regexp) []string {
	var matched []string
	for _, c := range courses {
		if pattern.MatchString(c) {
			matched = append(matched, c)
		}
	}
	return matched
}

// Less orders education by end date, then start date.
func (e *Education) Less(other *Education) bool {
	return lessSpan(e.StartDate, e.EndDate, other.StartDate, other.EndDate)
}

// Activity represents one role held, grouped under a document section
type Activity struct {
	Role         string            `json:"role"`
	Org          string            `json:"org"`
	Loc          string            `json:"loc"`
	StartDate    dates.PartialDate `json:"start_date"`
	EndDate      dates.PartialDate `json:"end_date"`
	HoursPerWeek string            `json:"hours_per_week"`
	WeeksPerYear string            `json:"weeks_per_year"`
	Descriptions []string          `json:"descriptions"`
	Section      string            `json:"section"`
}

// Less orders activities by end date, then start date.
func (a *Activity) Less(other *Activity) bool {
	return lessSpan(a.StartDate, a.EndDate, other.StartDate, other.EndDate)
}

func lessSpan(aStart, aEnd, bStart, bEnd dates.PartialDate) bool {
	if c := dates.Compare(aEnd, bEnd); c != 0 {
		return c < 0
	}
	return aStart.Less(bStart)
}

// Award represents an honor and when it was received
type Award struct {
	Name string            `json:"name"`
	Date dates.PartialDate `json:"date"`
}

// Test represents a standardized test result
type Test struct {
	Name  string            `json:"name"`
	Score string            `json:"score"`
	Date  dates.PartialDate `json:"date"`
}

// IsAcademic reports whether the test is an admissions test (SAT, ACT, GRE, GMAT).
func (t *Test) IsAcademic() bool {
	return containsFold(academicTests, t.Name)
}

// IsLanguage reports whether the test is an English proficiency test.
func (t *Test) IsLanguage() bool {
	return containsFold(languageTests, t.Name)
}

func containsFold(list []string, s string) bool {
	s = strings.TrimSpace(s)
	for _, item := range list {
		if strings.EqualFold(item, s) {
			return true
		}
	}
	return false
}

// SkillSet represents a named group of skills
type SkillSet struct {
	Name   string `json:"name"`
	Skills string `json:"skills"`
}
