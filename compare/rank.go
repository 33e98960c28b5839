package compare

import (
	"fmt"
	"sort"

	"iscc.codes/core/model"
)

// Rank compares one reference ISCC against many candidates and returns them
// ordered by descending aggregate similarity. Candidates that fail to decode
// or compare are kept in the ranking with their error recorded, sorted after
// all comparable candidates.
//
// Ordering is deterministic: ties break on the candidate text form.
func Rank(reference string, candidates []string, threshold float64) (*model.Ranking, error) {
	if threshold < 0 || threshold > 1 {
		return nil, fmt.Errorf("threshold %v outside [0,1]", threshold)
	}
	ranking := &model.Ranking{
		Reference:  reference,
		Threshold:  threshold,
		Candidates: make([]model.RankedCandidate, 0, len(candidates)),
	}
	for _, candidate := range candidates {
		entry := model.RankedCandidate{ISCC: candidate}
		report, err := Compare(reference, candidate)
		if err != nil {
			entry.Error = err.Error()
		} else {
			entry.Comparison = report
			if aggregate, err := Aggregate(report); err == nil {
				entry.MeetsThreshold = aggregate >= threshold
				if entry.MeetsThreshold {
					ranking.MatchesAboveThreshold++
				}
			}
		}
		ranking.Candidates = append(ranking.Candidates, entry)
	}

	sort.SliceStable(ranking.Candidates, func(i, j int) bool {
		si, iOK := aggregateOf(ranking.Candidates[i])
		sj, jOK := aggregateOf(ranking.Candidates[j])
		if iOK != jOK {
			return iOK
		}
		if iOK && si != sj {
			return si > sj
		}
		return ranking.Candidates[i].ISCC < ranking.Candidates[j].ISCC
	})
	return ranking, nil
}

func aggregateOf(c model.RankedCandidate) (float64, bool) {
	if c.Comparison == nil || c.Comparison.AggregateSimilarity == nil {
		return 0, false
	}
	return *c.Comparison.AggregateSimilarity, true
}
