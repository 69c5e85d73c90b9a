// Package order defines the closed set of result orderings.
package order

// Mode is a result ordering.
type Mode string

// Ordering constants.
const (
	// Recent is the default: newest materials first.
	Recent Mode = "recent"
	// Popular orders by download count, descending.
	Popular Mode = "popular"
	// Views orders by view count, descending.
	Views Mode = "views"
	// Relevance keeps similarity order; only meaningful for semantic results.
	Relevance Mode = "relevance"
)

// IsValid checks if the mode is one of the supported values.
func (m Mode) IsValid() bool {
	return m == Recent || m == Popular || m == Views || m == Relevance
}

// Parse maps a sort key to a Mode. Unknown or empty keys fall back to
// Recent rather than erroring.
func Parse(s string) Mode {
	m := Mode(s)
	if !m.IsValid() {
		return Recent
	}
	return m
}
