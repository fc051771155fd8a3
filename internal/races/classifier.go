// Package races decides which race titles belong to the tracked set of
// office types.
//
// Race-title spelling varies across election cycles ("U.S. Senator" in 2014,
// "US Senator" in 2016, "United States Senator" in 2018), so matching is
// case-insensitive substring matching against a keyword set rather than an
// exhaustive enumeration of historical spellings. Judicial retention and
// other untracked races are excluded simply by not matching any keyword.
package races

import "strings"

// DefaultKeywords identifies the tracked office categories: president,
// governor, US Senate, US House, state senate, and state house.
var DefaultKeywords = []string{
	"president",
	"governor",
	"u.s. senator",
	"us senator",
	"united states senator",
	"u.s. rep",
	"us rep",
	"united states representative",
	"state senator",
	"state rep",
}

// DefaultStatewideKeywords identifies races whose candidates appear on every
// ballot in the state. Used by the consistency validator; a district race
// matching none of these should never receive votes in every precinct.
var DefaultStatewideKeywords = []string{
	"president",
	"governor",
	"u.s. senator",
	"us senator",
	"united states senator",
}

// Classifier matches race titles against keyword sets.
type Classifier struct {
	tracked   []string
	statewide []string
}

// NewClassifier builds a Classifier from the given keyword sets.
// Nil or empty slices fall back to the defaults. Keywords are matched
// case-insensitively.
func NewClassifier(tracked, statewide []string) *Classifier {
	if len(tracked) == 0 {
		tracked = DefaultKeywords
	}
	if len(statewide) == 0 {
		statewide = DefaultStatewideKeywords
	}
	return &Classifier{
		tracked:   lowerAll(tracked),
		statewide: lowerAll(statewide),
	}
}

// Tracked reports whether the race title belongs to a tracked office type.
// An empty title is not tracked.
func (c *Classifier) Tracked(title string) bool {
	return matchAny(title, c.tracked)
}

// Statewide reports whether the race is inherently statewide.
func (c *Classifier) Statewide(title string) bool {
	return matchAny(title, c.statewide)
}

func matchAny(title string, keywords []string) bool {
	if title == "" {
		return false
	}
	lower := strings.ToLower(title)
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

func lowerAll(in []string) []string {
	out := make([]string, len(in))
	for i, s := range in {
		out[i] = strings.ToLower(strings.TrimSpace(s))
	}
	return out
}
