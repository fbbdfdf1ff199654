package ocr

import (
	"regexp"
	"strings"
)

var (
	reDate   = regexp.MustCompile(`\b\d{1,2}[/-]\d{1,2}[/-]\d{2,4}\b|\b\d{1,2}\s+(?:jan|feb|mar|apr|may|jun|jul|aug|sep|oct|nov|dec)`)
	reCurr   = regexp.MustCompile(`\binr\b|₹|\brs\.?`)
	reAmount = regexp.MustCompile(`\b\d{1,3}(,\d{2,3})+(\.\d{2})?\b|\b\d+\.\d{2}\b`)
	reCard   = regexp.MustCompile(`(?:x{4}|\*{4}|\d{4})[ -]?(?:x{4}|\*{4})[ -]?(?:x{4}|\*{4})[ -]?\d{4}`)
)

// heuristicConfidence scores recognized text by how much it looks like a
// card statement: date-ish, currency-ish, amount-ish, and masked-card-ish
// artifacts each add a little on top of a low base.
func heuristicConfidence(txt string) float64 {
	txtL := strings.ToLower(txt)
	score := 0.2 // base
	if reDate.MatchString(txtL) {
		score += 0.2
	}
	if reCurr.MatchString(txtL) {
		score += 0.15
	}
	if reAmount.MatchString(txtL) {
		score += 0.15
	}
	if reCard.MatchString(txtL) {
		score += 0.15
	}
	if len(txt) > 200 {
		score += 0.1
	}
	if score > 1.0 {
		score = 1.0
	}
	return score
}

// BlendConfidence combines TSV word confidence with the text heuristic,
// weighting the measured value higher when available.
func BlendConfidence(tsvConf float64, text string) float64 {
	heur := heuristicConfidence(text)
	if tsvConf <= 0 {
		return heur
	}
	conf := 0.7*tsvConf + 0.3*heur
	if conf > 1.0 {
		conf = 1.0
	}
	return conf
}
