package parsing

import (
	"fmt"
	"io"
	"regexp"

	"github.com/jonathan/cvtext/internal/types"
)

// lineBreak matches every line boundary: CRLF, LF, CR, vertical tab, form
// feed, the file/group/record separators, NEL and the Unicode line and
// paragraph separators.
var lineBreak = regexp.MustCompile(`\r\n|[\n\r\v\f\x1c\x1d\x1e\x{85}\x{2028}\x{2029}]`)

// RecordKind names the variant of the record under the cursor
type RecordKind int

const (
	RecordNone RecordKind = iota
	RecordEducation
	RecordActivity
	RecordAward
	RecordTest
	RecordSkillSet
)

func (k RecordKind) String() string {
	switch k {
	case RecordNone:
		return "none"
	case RecordEducation:
		return "education"
	case RecordActivity:
		return "activity"
	case RecordAward:
		return "award"
	case RecordTest:
		return "test"
	case RecordSkillSet:
		return "skillset"
	default:
		return fmt.Sprintf("RecordKind(%d)", int(k))
	}
}

// cursor points at the current record by kind and index into the document
// slice of that kind, so appends never leave it dangling.
type cursor struct {
	kind  RecordKind
	index int
}

// Parser turns résumé text into a Document. A Parser holds no per-parse
// state and may be shared between goroutines.
type Parser struct {
	classifier *Classifier
}

// NewParser creates a parser that matches lines against reg.
func NewParser(reg *Registry) *Parser {
	return &Parser{classifier: NewClassifier(reg)}
}

// Parse reads text line by line and returns the document with the
// non-blank lines that matched nothing. Any DateError or StructuralError
// aborts the parse and no document is returned.
func (p *Parser) Parse(text string) (*types.Document, []string, error) {
	b := &builder{doc: types.NewDocument()}
	unparsed := []string{}

	for _, raw := range lineBreak.Split(text, -1) {
		switch c := p.classifier.Classify(raw).(type) {
		case Blank:
		case Unclassified:
			unparsed = append(unparsed, c.Line)
		case Invalid:
			return nil, nil, c.Err
		case SectionHeading:
			b.section = c.Title
			b.doc.Sections = append(b.doc.Sections, c.Title)
		case Bullet:
			if err := b.appendDescription(c.Text); err != nil {
				return nil, nil, &StructuralError{Line: NormalizeLine(raw), Cause: err}
			}
		case Matched:
			if err := b.apply(c); err != nil {
				return nil, nil, &StructuralError{Line: NormalizeLine(raw), Cause: err}
			}
		default:
			return nil, nil, fmt.Errorf("unexpected classification %T", c)
		}
	}

	return b.doc, unparsed, nil
}

// ParseReader reads all of r and parses it.
func (p *Parser) ParseReader(r io.Reader) (*types.Document, []string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read résumé: %w", err)
	}
	return p.Parse(string(data))
}

type builder struct {
	doc     *types.Document
	cur     cursor
	section string
}

func (b *builder) apply(m Matched) error {
	doc := b.doc
	switch m.Field {
	case FieldName:
		doc.Name = m.Value
	case FieldEmail:
		doc.Email = m.Value
	case FieldPhone:
		doc.Phone = m.Value
	case FieldAddress:
		doc.Address = m.Value
	case FieldWebsite:
		doc.Website = m.Value

	case FieldSchool:
		doc.Education = append(doc.Education, types.Education{School: m.Value})
		b.cur = cursor{RecordEducation, len(doc.Education) - 1}
	case FieldRole:
		doc.Activities = append(doc.Activities, types.Activity{
			Role:         m.Value,
			Descriptions: []string{},
			Section:      b.section,
		})
		b.cur = cursor{RecordActivity, len(doc.Activities) - 1}
	case FieldSkillSetName:
		doc.SkillSets = append(doc.SkillSets, types.SkillSet{Name: m.Value})
		b.cur = cursor{RecordSkillSet, len(doc.SkillSets) - 1}
	case FieldAward:
		doc.Awards = append(doc.Awards, types.Award{Name: m.Value})
		b.cur = cursor{RecordAward, len(doc.Awards) - 1}
	case FieldTest:
		doc.Tests = append(doc.Tests, types.Test{Name: m.Value})
		b.cur = cursor{RecordTest, len(doc.Tests) - 1}

	default:
		return b.setAttribute(m)
	}
	return nil
}

func (b *builder) setAttribute(m Matched) error {
	switch b.cur.kind {
	case RecordNone:
		return ErrNoRecord
	case RecordEducation:
		return setEducation(&b.doc.Education[b.cur.index], m)
	case RecordActivity:
		return setActivity(&b.doc.Activities[b.cur.index], m)
	case RecordAward:
		return setAward(&b.doc.Awards[b.cur.index], m)
	case RecordTest:
		return setTest(&b.doc.Tests[b.cur.index], m)
	case RecordSkillSet:
		return setSkillSet(&b.doc.SkillSets[b.cur.index], m)
	default:
		return fmt.Errorf("unknown record kind %d", int(b.cur.kind))
	}
}

func (b *builder) appendDescription(text string) error {
	switch b.cur.kind {
	case RecordNone:
		return ErrNoRecord
	case RecordActivity:
		a := &b.doc.Activities[b.cur.index]
		a.Descriptions = append(a.Descriptions, text)
		return nil
	default:
		return &FieldMismatchError{Field: fieldDescription, Record: b.cur.kind}
	}
}

func setEducation(e *types.Education, m Matched) error {
	switch m.Field {
	case FieldLoc:
		e.Loc = m.Value
	case FieldStartDate:
		e.StartDate = m.Date
	case FieldEndDate:
		e.EndDate = m.Date
	case FieldDegree:
		e.Degree = m.Value
	case FieldMajor:
		e.Major = m.Value
	case FieldMinor:
		e.Minor = m.Value
	case FieldGPA:
		e.GPA = m.Value
	case FieldRank:
		e.Rank = m.Value
	case FieldCourses:
		e.Courses = m.Value
	default:
		return &FieldMismatchError{Field: m.Field, Record: RecordEducation}
	}
	return nil
}

func setActivity(a *types.Activity, m Matched) error {
	switch m.Field {
	case FieldLoc:
		a.Loc = m.Value
	case FieldStartDate:
		a.StartDate = m.Date
	case FieldEndDate:
		a.EndDate = m.Date
	case FieldOrg:
		a.Org = m.Value
	case FieldHoursPerWeek:
		a.HoursPerWeek = m.Value
	case FieldWeeksPerYear:
		a.WeeksPerYear = m.Value
	default:
		return &FieldMismatchError{Field: m.Field, Record: RecordActivity}
	}
	return nil
}

func setAward(a *types.Award, m Matched) error {
	if m.Field != FieldEventDate {
		return &FieldMismatchError{Field: m.Field, Record: RecordAward}
	}
	a.Date = m.Date
	return nil
}

func setTest(t *types.Test, m Matched) error {
	switch m.Field {
	case FieldScore:
		t.Score = m.Value
	case FieldEventDate:
		t.Date = m.Date
	default:
		return &FieldMismatchError{Field: m.Field, Record: RecordTest}
	}
	return nil
}

func setSkillSet(s *types.SkillSet, m Matched) error {
	if m.Field != FieldSkills {
		return &FieldMismatchError{Field: m.Field, Record: RecordSkillSet}
	}
	s.Skills = m.Value
	return nil
}
