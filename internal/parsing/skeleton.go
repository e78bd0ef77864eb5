package parsing

import "strings"

const datePlaceholder = "yyyy-mm"

func block(lines ...string) string {
	return strings.Join(lines, "\n") + "\n"
}

// ContactSkeleton returns the blank document header fields.
func ContactSkeleton() string {
	return block("Name:", "Email:", "Phone:", "Address:", "Website:")
}

// EducationSkeleton returns a blank education record.
func EducationSkeleton() string {
	return block(
		"School:",
		"Loc:",
		"Start Date: "+datePlaceholder,
		"End Date: "+datePlaceholder,
		"Degree:",
		"Major:",
		"Minor:",
		"GPA:",
		"Rank:",
		"Courses:",
	)
}

// ActivitySkeleton returns a blank activity record with two placeholder bullets.
func ActivitySkeleton() string {
	return block(
		"Role:",
		"Org:",
		"Loc:",
		"Start Date: "+datePlaceholder,
		"End Date: "+datePlaceholder,
		"Hours per Week:",
		"Weeks per Year:",
		"- [description]",
		"- [description]",
	)
}

// TestSkeleton returns a blank test record.
func TestSkeleton() string {
	return block("Test:", "Score:", "Test Date: "+datePlaceholder)
}

// AwardSkeleton returns a blank award record.
func AwardSkeleton() string {
	return block("Award:", "Award Date: "+datePlaceholder)
}

// SkillSetSkeleton returns a blank skill set.
func SkillSetSkeleton() string {
	return block("Skillset Name:", "Skills:")
}

// Skeleton returns a model résumé listing every keyword, suitable as a
// starting point for a new document. It parses without error.
func Skeleton() string {
	return strings.Join([]string{
		ContactSkeleton(),
		EducationSkeleton(),
		TestSkeleton(),
		AwardSkeleton(),
		SkillSetSkeleton(),
		"# Research Experience [change as appropriate]\n",
		ActivitySkeleton(),
		"# Work Experience [change as appropriate]\n",
		ActivitySkeleton(),
	}, "\n")
}
