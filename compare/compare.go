// Package compare implements the ISCC similarity/distance engine: Hamming
// distance over equal-length unit bodies, per-unit similarity, and the
// composite comparison report.
//
// Every function is pure and reentrant. Batch callers may fan out across
// goroutines without coordination; no call touches shared state.
package compare

import (
	"fmt"
	"math/bits"

	"iscc.codes/core/iscc"
	"iscc.codes/core/model"
)

// DefaultThreshold is the near-duplicate classification threshold.
const DefaultThreshold = 0.7

// HammingDistance counts differing bit positions between two equal-length
// bodies. Distance between unequal-length fingerprints is undefined and is
// rejected, not degraded.
func HammingDistance(a, b []byte) (int, error) {
	if len(a) != len(b) {
		return 0, iscc.NewError(iscc.KindLengthMismatch, "ISCC-CMP-001",
			fmt.Sprintf("cannot compare %d bits against %d bits", len(a)*8, len(b)*8))
	}
	if len(a) == 0 {
		return 0, iscc.NewError(iscc.KindLengthMismatch, "ISCC-CMP-002",
			"cannot compare empty bodies")
	}
	distance := 0
	for i := range a {
		distance += bits.OnesCount8(a[i] ^ b[i])
	}
	return distance, nil
}

// Similarity returns 1 - distance/bits, in [0,1].
func Similarity(a, b []byte) (float64, error) {
	distance, err := HammingDistance(a, b)
	if err != nil {
		return 0, err
	}
	return 1 - float64(distance)/float64(len(a)*8), nil
}

// CompareUnits compares one matched pair of same-typed units.
func CompareUnits(a, b iscc.Unit) (model.UnitComparison, error) {
	if a.Header.MainType != b.Header.MainType {
		return model.UnitComparison{}, iscc.NewError(iscc.KindFormat, "ISCC-CMP-003",
			fmt.Sprintf("cannot compare %s unit against %s unit",
				a.Header.MainType, b.Header.MainType))
	}
	distance, err := HammingDistance(a.Body, b.Body)
	if err != nil {
		return model.UnitComparison{}, err
	}
	totalBits := a.BodyBits()
	return model.UnitComparison{
		MainType:   a.Header.MainType.String(),
		Distance:   distance,
		Bits:       totalBits,
		Similarity: 1 - float64(distance)/float64(totalBits),
	}, nil
}

// Compare decodes two ISCC text forms and reports per-unit distances over
// their matched MainTypes. Units present in only one code are listed as
// unmatched and excluded from the aggregate. When no MainType matches, the
// report carries no aggregate; Aggregate surfaces that as NoComparableUnits.
func Compare(isccA, isccB string) (*model.Comparison, error) {
	unitsA, err := iscc.DecomposeText(isccA)
	if err != nil {
		return nil, err
	}
	unitsB, err := iscc.DecomposeText(isccB)
	if err != nil {
		return nil, err
	}

	byTypeA := indexByType(unitsA)
	byTypeB := indexByType(unitsB)

	report := &model.Comparison{ISCCA: isccA, ISCCB: isccB}
	var sum float64

	// Walk the full MainType value space so the report order is deterministic
	// regardless of unit order in either input.
	for mt := iscc.MTMeta; mt <= iscc.MTFlake; mt++ {
		ua, okA := byTypeA[mt]
		ub, okB := byTypeB[mt]
		switch {
		case okA && okB:
			uc, err := CompareUnits(ua, ub)
			if err != nil {
				return nil, err
			}
			report.Matched = append(report.Matched, uc)
			sum += uc.Similarity
		case okA || okB:
			report.Unmatched = append(report.Unmatched, mt.String())
		}
	}

	if len(report.Matched) > 0 {
		aggregate := sum / float64(len(report.Matched))
		report.AggregateSimilarity = &aggregate
		report.Assessment = Assess(aggregate)
	} else {
		report.Assessment = AssessmentNone
	}
	return report, nil
}

func indexByType(units []iscc.Unit) map[iscc.MainType]iscc.Unit {
	byType := make(map[iscc.MainType]iscc.Unit, len(units))
	for _, u := range units {
		byType[u.Header.MainType] = u
	}
	return byType
}

// Aggregate returns the report's aggregate similarity, or a structured
// NoComparableUnits error when the two codes shared no unit MainType.
func Aggregate(c *model.Comparison) (float64, error) {
	if c == nil || c.AggregateSimilarity == nil {
		return 0, iscc.NewError(iscc.KindNoComparableUnits, "ISCC-CMP-010",
			"no unit MainType present in both codes")
	}
	return *c.AggregateSimilarity, nil
}

// NearDuplicate classifies a report against a similarity threshold in [0,1].
// Pass DefaultThreshold unless the caller has a calibrated one.
func NearDuplicate(c *model.Comparison, threshold float64) (bool, error) {
	aggregate, err := Aggregate(c)
	if err != nil {
		return false, err
	}
	return aggregate >= threshold, nil
}

// Assessment labels for aggregate similarity buckets.
const (
	AssessmentStrong = "strong match"
	AssessmentGood   = "good match"
	AssessmentWeak   = "weak match"
	AssessmentNone   = "no match"
)

// Assess buckets an aggregate similarity in [0,1] into a match label.
func Assess(similarity float64) string {
	switch {
	case similarity >= 0.90:
		return AssessmentStrong
	case similarity >= 0.75:
		return AssessmentGood
	case similarity >= 0.50:
		return AssessmentWeak
	default:
		return AssessmentNone
	}
}
