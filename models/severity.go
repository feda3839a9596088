package models

import "strings"

// Severity is the four-level risk scale used everywhere an indicator is
// assessed. The zero value is SeverityGreen.
type Severity string

const (
	SeverityGreen  Severity = "green"
	SeverityYellow Severity = "yellow"
	SeverityOrange Severity = "orange"
	SeverityRed    Severity = "red"
)

// severityRank defines the total order Green < Yellow < Orange < Red.
var severityRank = map[Severity]int{
	SeverityGreen:  0,
	SeverityYellow: 1,
	SeverityOrange: 2,
	SeverityRed:    3,
}

// Rank returns the position of s in the severity order. Unknown values rank
// as green.
func (s Severity) Rank() int {
	return severityRank[s]
}

// Above reports whether s is strictly more severe than other.
func (s Severity) Above(other Severity) bool {
	return s.Rank() > other.Rank()
}

// IsElevated reports whether s is anything above the green baseline.
func (s Severity) IsElevated() bool {
	return s.Rank() > 0
}

// Valid reports whether s is one of the four defined levels.
func (s Severity) Valid() bool {
	_, ok := severityRank[s]
	return ok
}

// ParseSeverity normalizes a free-form severity string (any casing,
// surrounding whitespace). The second return is false when the input is not
// one of the four levels.
func ParseSeverity(raw string) (Severity, bool) {
	s := Severity(strings.ToLower(strings.TrimSpace(raw)))
	return s, s.Valid()
}

// MaxSeverity returns the more severe of a and b.
func MaxSeverity(a, b Severity) Severity {
	if b.Above(a) {
		return b
	}
	return a
}

// AllSeverities lists the four levels in ascending order, for building
// per-severity count maps.
var AllSeverities = []Severity{SeverityGreen, SeverityYellow, SeverityOrange, SeverityRed}

// NewSeverityCounts returns a count map with every level present at zero, so
// summary documents always carry all four keys.
func NewSeverityCounts() map[Severity]int {
	counts := make(map[Severity]int, len(AllSeverities))
	for _, s := range AllSeverities {
		counts[s] = 0
	}
	return counts
}
