// Package dashboard projects the canonical table into the per-office JSON
// artifacts the election dashboard consumes: per-precinct vote shares, ranked
// district results, and ranked per-precinct results.
package dashboard

// Canonical party labels expected by the dashboard.
const (
	PartyRepublican  = "Republican"
	PartyDemocratic  = "Democratic"
	PartyLibertarian = "Libertarian"
	PartyOther       = "Other"
)

// PartyMap normalizes the party labels found in source files to the
// dashboard's canonical set. Labels differ by state and year, so the map is
// data, not code.
type PartyMap map[string]string

// DefaultPartyMap covers the label spellings seen across the Iowa cycles:
// some files write "Republican Party", others just "Republican" or "Democrat".
func DefaultPartyMap() PartyMap {
	return PartyMap{
		"Republican Party":  PartyRepublican,
		"Republican":        PartyRepublican,
		"Democratic Party":  PartyDemocratic,
		"Democratic":        PartyDemocratic,
		"Democrat":          PartyDemocratic,
		"Libertarian Party": PartyLibertarian,
		"Libertarian":       PartyLibertarian,
	}
}

// Normalize maps a raw label to a canonical one. Anything unmapped,
// including the empty label, becomes Other.
func (m PartyMap) Normalize(raw string) string {
	if p, ok := m[raw]; ok {
		return p
	}
	return PartyOther
}
