package reputation

import (
	"fmt"
	"sort"

	"github.com/covenantos/trustcore/pkg/observability"
)

// SourceReport is one observer's view of an agent's reputation.
type SourceReport struct {
	SourceID string  `json:"source_id"`
	Score    float64 `json:"score"`
	Weight   float64 `json:"weight"`
}

// ConsensusScore carries the weighted median and quartile spread of a set of
// reports. Consensus is 1 when all weight agrees and shrinks with the
// interquartile range.
type ConsensusScore struct {
	Median        float64 `json:"median"`
	LowerQuartile float64 `json:"lower_quartile"`
	UpperQuartile float64 `json:"upper_quartile"`
	Consensus     float64 `json:"consensus"`
}

// Aggregate reconciles conflicting reputation reports into a weighted
// median. The statistic tolerates malicious reports holding up to just under
// half the total weight: the honest majority-by-weight always owns the
// crossing point, even when outnumbered by count.
func Aggregate(sources []SourceReport) (float64, error) {
	sorted, totalWeight, err := validateSources(sources)
	if err != nil {
		return 0, err
	}
	observability.RecordAggregation()
	return weightedQuantile(sorted, totalWeight/2), nil
}

// AggregateWithConfidence computes the median plus the 25% and 75% weight
// crossings and a consensus measure derived from their spread.
func AggregateWithConfidence(sources []SourceReport) (ConsensusScore, error) {
	sorted, totalWeight, err := validateSources(sources)
	if err != nil {
		return ConsensusScore{}, err
	}
	observability.RecordAggregation()
	lower := weightedQuantile(sorted, totalWeight*0.25)
	median := weightedQuantile(sorted, totalWeight*0.5)
	upper := weightedQuantile(sorted, totalWeight*0.75)
	return ConsensusScore{
		Median:        median,
		LowerQuartile: lower,
		UpperQuartile: upper,
		Consensus:     clamp01(1 - (upper - lower)),
	}, nil
}

func validateSources(sources []SourceReport) ([]SourceReport, float64, error) {
	if len(sources) == 0 {
		return nil, 0, fmt.Errorf("no reputation sources provided")
	}
	var totalWeight float64
	for _, src := range sources {
		if src.Score < 0 || src.Score > 1 {
			return nil, 0, fmt.Errorf("score must be within [0, 1], got %v from source %s", src.Score, src.SourceID)
		}
		if src.Weight < 0 {
			return nil, 0, fmt.Errorf("weight must be non-negative, got %v from source %s", src.Weight, src.SourceID)
		}
		totalWeight += src.Weight
	}
	if totalWeight == 0 {
		return nil, 0, fmt.Errorf("total source weight must be positive")
	}
	sorted := make([]SourceReport, len(sources))
	copy(sorted, sources)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Score < sorted[j].Score })
	return sorted, totalWeight, nil
}

// weightedQuantile walks cumulative weight over score-sorted reports and
// returns the score at the first crossing of target. When the cumulative
// weight lands exactly on the target and a next report exists, the two
// adjacent scores are interpolated.
func weightedQuantile(sorted []SourceReport, target float64) float64 {
	var cumulative float64
	for i, src := range sorted {
		cumulative += src.Weight
		if cumulative >= target {
			if cumulative == target && i+1 < len(sorted) {
				return (src.Score + sorted[i+1].Score) / 2
			}
			return src.Score
		}
	}
	return sorted[len(sorted)-1].Score
}
