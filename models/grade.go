package models

import "strings"

// Grade is the ordinal nutrition quality label: A (best) through E (worst),
// with Z standing for unknown or unassigned.
type Grade string

const (
	GradeA Grade = "A"
	GradeB Grade = "B"
	GradeC Grade = "C"
	GradeD Grade = "D"
	GradeE Grade = "E"
	GradeZ Grade = "Z"
)

// ParseGrade maps a raw upstream nutrition_grades value onto a Grade.
// Anything that is not a single A-E (or Z) letter is rejected.
func ParseGrade(raw string) (Grade, bool) {
	cleaned := strings.ToUpper(strings.TrimSpace(raw))
	if len(cleaned) != 1 {
		return "", false
	}
	switch g := Grade(cleaned); g {
	case GradeA, GradeB, GradeC, GradeD, GradeE, GradeZ:
		return g, true
	}
	return "", false
}
