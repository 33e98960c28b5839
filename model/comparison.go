package model

// UnitComparison reports the distance between one matched pair of same-typed
// unit bodies.
type UnitComparison struct {
	MainType   string  `json:"maintype"`
	Distance   int     `json:"distance"`
	Bits       int     `json:"bits"`
	Similarity float64 `json:"similarity"`
}

// Comparison is the full report for one pair of ISCCs.
//
// AggregateSimilarity is the arithmetic mean over matched units and is absent
// (nil) when the two codes share no unit MainType. Unmatched lists MainType
// names present in exactly one of the two codes; those units never contribute
// to the aggregate.
type Comparison struct {
	ISCCA               string           `json:"isccA"`
	ISCCB               string           `json:"isccB"`
	Matched             []UnitComparison `json:"matched"`
	Unmatched           []string         `json:"unmatched,omitempty"`
	AggregateSimilarity *float64         `json:"aggregateSimilarity,omitempty"`
	Assessment          string           `json:"assessment"`
}

// RankedCandidate is one entry of a batch ranking. Candidates that failed to
// compare carry Error and no Comparison.
type RankedCandidate struct {
	ISCC           string      `json:"iscc"`
	Comparison     *Comparison `json:"comparison,omitempty"`
	MeetsThreshold bool        `json:"meetsThreshold"`
	Error          string      `json:"error,omitempty"`
}

// Ranking compares one reference ISCC against many candidates, ordered by
// descending aggregate similarity.
type Ranking struct {
	Reference             string            `json:"reference"`
	Threshold             float64           `json:"threshold"`
	Candidates            []RankedCandidate `json:"candidates"`
	MatchesAboveThreshold int               `json:"matchesAboveThreshold"`
}
