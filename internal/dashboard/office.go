package dashboard

import (
	"regexp"
	"strings"
)

// Office selects a slice of the canonical table for projection.
// Title matches exactly; Prefix matches any race title starting with it.
// Exactly one of the two should be set.
type Office struct {
	Key       string // artifact suffix, e.g. "us_senate"
	Title     string // exact race title, e.g. "U.S. Senator"
	Prefix    string // race title prefix, e.g. "U.S. Rep"
	Statewide bool   // single "statewide" district instead of numbered ones
}

// DefaultOffices covers the tracked office types for the 2014 cycle titles.
// Other cycles configure their own titles.
func DefaultOffices() []Office {
	return []Office{
		{Key: "president", Title: "President and Vice President", Statewide: true},
		{Key: "governor", Prefix: "Governor", Statewide: true},
		{Key: "us_senate", Title: "U.S. Senator", Statewide: true},
		{Key: "us_congress", Prefix: "U.S. Rep"},
		{Key: "state_senate", Prefix: "State Senator"},
		{Key: "state_house", Prefix: "State Rep"},
	}
}

// Matches reports whether a race title belongs to this office.
func (o Office) Matches(race string) bool {
	if o.Title != "" {
		return race == o.Title
	}
	if o.Prefix != "" {
		return strings.HasPrefix(race, o.Prefix)
	}
	return false
}

var districtNumber = regexp.MustCompile(`\d+`)

// District returns the district key for a race title: "statewide" for
// statewide offices, otherwise the last number in the title ("U.S. Rep.
// Dist. 3" -> "3"). A district race with no number falls back to the whole
// title so its results are not silently merged with another district's.
func (o Office) District(race string) string {
	if o.Statewide {
		return "statewide"
	}
	nums := districtNumber.FindAllString(race, -1)
	if len(nums) == 0 {
		return race
	}
	d := strings.TrimLeft(nums[len(nums)-1], "0")
	if d == "" {
		d = "0"
	}
	return d
}
