package dashboard

import (
	"math"
	"sort"

	"github.com/iowa-dashboard/ingest/internal/merge"
)

// PrecinctShare is the per-precinct share record for the map coloring:
// Republican share of all votes, Republican share of the two-party vote, and
// the precinct's total votes.
type PrecinctShare struct {
	RShare     float64 `json:"r_share"`
	RTwoParty  float64 `json:"r_twoparty"`
	TotalVotes int     `json:"total_votes"`
}

// CandidateResult is one entry of a ranked result list.
type CandidateResult struct {
	Name  string  `json:"CandidateName"`
	Party string  `json:"party"`
	Votes int     `json:"votes"`
	Share float64 `json:"share"`
}

// row is one office-filtered canonical row with its normalized party.
type row struct {
	key   merge.Key
	party string
}

func officeRows(t *merge.Table, o Office, pm PartyMap) []row {
	var rows []row
	for _, k := range t.Keys() {
		if !o.Matches(k.Race) {
			continue
		}
		rows = append(rows, row{key: k, party: pm.Normalize(t.Party(k))})
	}
	return rows
}

// PrecinctShares computes the per-precinct share record for an office.
// Precincts with zero total votes yield zero shares rather than NaN.
func PrecinctShares(t *merge.Table, o Office, pm PartyMap) map[string]PrecinctShare {
	rows := officeRows(t, o, pm)
	out := make(map[string]PrecinctShare)

	for _, p := range t.Precincts() {
		total, r, d := 0, 0, 0
		for _, rw := range rows {
			v := t.Votes(rw.key, p)
			total += v
			switch rw.party {
			case PartyRepublican:
				r += v
			case PartyDemocratic:
				d += v
			}
		}

		out[p] = PrecinctShare{
			RShare:     share(r, total),
			RTwoParty:  share(r, r+d),
			TotalVotes: total,
		}
	}

	return out
}

// DistrictResults computes ranked candidate totals per district. Statewide
// offices produce a single "statewide" entry; district offices group by the
// district parsed from each race title.
func DistrictResults(t *merge.Table, o Office, pm PartyMap) map[string][]CandidateResult {
	rows := officeRows(t, o, pm)
	precincts := t.Precincts()

	type entry struct {
		result   CandidateResult
		district string
	}
	var entries []entry

	for _, rw := range rows {
		total := 0
		for _, p := range precincts {
			total += t.Votes(rw.key, p)
		}
		entries = append(entries, entry{
			district: o.District(rw.key.Race),
			result: CandidateResult{
				Name:  rw.key.Candidate,
				Party: rw.party,
				Votes: total,
			},
		})
	}

	out := make(map[string][]CandidateResult)
	for _, e := range entries {
		out[e.district] = append(out[e.district], e.result)
	}

	for district, results := range out {
		total := 0
		for _, r := range results {
			total += r.Votes
		}
		for i := range results {
			results[i].Share = share(results[i].Votes, total)
		}
		rank(results)
		out[district] = results
	}

	return out
}

// PrecinctResults computes the ranked candidate list for every precinct.
func PrecinctResults(t *merge.Table, o Office, pm PartyMap) map[string][]CandidateResult {
	rows := officeRows(t, o, pm)
	out := make(map[string][]CandidateResult)

	for _, p := range t.Precincts() {
		total := 0
		for _, rw := range rows {
			total += t.Votes(rw.key, p)
		}

		var results []CandidateResult
		for _, rw := range rows {
			v := t.Votes(rw.key, p)
			results = append(results, CandidateResult{
				Name:  rw.key.Candidate,
				Party: rw.party,
				Votes: v,
				Share: share(v, total),
			})
		}
		rank(results)
		out[p] = results
	}

	return out
}

// rank sorts by votes descending, name ascending for equal votes so output
// is deterministic.
func rank(results []CandidateResult) {
	sort.SliceStable(results, func(i, j int) bool {
		if results[i].Votes != results[j].Votes {
			return results[i].Votes > results[j].Votes
		}
		return results[i].Name < results[j].Name
	})
}

// share returns part/whole as a percentage rounded to one decimal, zero when
// the whole is zero.
func share(part, whole int) float64 {
	if whole <= 0 {
		return 0.0
	}
	return math.Round(float64(part)/float64(whole)*1000) / 10
}
