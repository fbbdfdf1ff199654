package validate

import (
	"math"

	"github.com/priya-raghavan/statement-parser/constants"
	"github.com/priya-raghavan/statement-parser/internal/statement"
)

// Weights for the blended result confidence: the mean field confidence
// dominates, with a coverage term rewarding results that extracted a
// healthy number of fields.
const (
	meanWeight     = 0.7
	coverageWeight = 0.3
	// coverageTarget is the field count at which the coverage term
	// saturates.
	coverageTarget = 10.0
)

// ScoreConfidence computes the blended confidence for a result:
// 0.7 * mean(field confidences) + 0.3 * min(1, fields/10).
func ScoreConfidence(res *statement.ExtractionResult) float64 {
	confs := res.FieldConfidences()
	if len(confs) == 0 {
		return 0
	}

	var sum float64
	for _, c := range confs {
		sum += c
	}
	mean := sum / float64(len(confs))
	coverage := math.Min(1.0, float64(len(confs))/coverageTarget)

	score := meanWeight*mean + coverageWeight*coverage
	if score > 1 {
		score = 1
	}
	return score
}

// ApplyConfidence discounts every field by its extraction-method
// multiplier (plus the sensitive-field multiplier where it applies) and
// then stores the blended score on the result.
func ApplyConfidence(res *statement.ExtractionResult) {
	discounted := make([]statement.Field, 0, len(res.Fields))
	for _, f := range res.Fields {
		m := f.Method.ConfidenceMultiplier()
		if f.Name.IsSensitive() {
			m *= constants.SensitiveConfidenceMultiplier
		}
		if m != 1.0 {
			discounted = append(discounted, f.Discounted(m))
		}
	}
	for _, f := range discounted {
		res.AddField(f)
	}
	res.OverallConfidence = ScoreConfidence(res)
}
