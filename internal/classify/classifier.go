// Package classify identifies which bank issued a statement by scoring
// weighted text markers: bank names, domains, corporate identifiers, card
// product names, and taglines.
package classify

import (
	"regexp"
	"strings"

	"github.com/priya-raghavan/statement-parser/constants"
)

// MinConfidence is the score floor below which a statement is reported
// as unknown. Parser acceptance uses the same floor.
const MinConfidence = 0.3

// SamplePages caps how many leading pages feed classification; issuer
// markers live on the first pages and later ones only add noise.
const SamplePages = 2

type marker struct {
	re     *regexp.Regexp
	weight float64
}

func m(pattern string, weight float64) marker {
	return marker{re: regexp.MustCompile(`(?i)` + pattern), weight: weight}
}

// issuerMarkers holds the evidence table per issuer. Corporate identity
// numbers are the strongest signal since they are unique and printed on
// every statement.
var issuerMarkers = map[constants.IssuerType][]marker{
	constants.IssuerHDFC: {
		m(`hdfc\s*bank`, 0.4),
		m(`hdfcbank\.com`, 0.3),
		m(`L65920MH1994PLC080618`, 0.5),
		m(`we\s+understand\s+your\s+world`, 0.2),
		m(`\b(?:regalia|millennia|moneyback|diners\s*club)\b`, 0.2),
	},
	constants.IssuerICICI: {
		m(`icici\s*bank`, 0.4),
		m(`icicibank\.com`, 0.3),
		m(`L65190GJ1994PLC021012`, 0.5),
		m(`hum\s+hai\s+na`, 0.2),
		m(`\b(?:coral|sapphiro|rubyx|amazon\s*pay\s*icici)\b`, 0.2),
	},
	constants.IssuerSBI: {
		m(`sbi\s*cards?`, 0.4),
		m(`sbicard\.com`, 0.3),
		m(`SBICPSL`, 0.3),
		m(`U65999DL1998PLC093849`, 0.5),
		m(`\b(?:simplyclick|simplysave|sbi\s*card\s*elite|sbi\s*card\s*prime)\b`, 0.2),
	},
	constants.IssuerAxis: {
		m(`axis\s*bank`, 0.4),
		m(`axisbank\.com`, 0.3),
		m(`L65110GJ1993PLC020769`, 0.5),
		m(`badhti\s+ka\s+naam\s+zindagi`, 0.2),
		m(`\b(?:flipkart\s*axis|my\s*zone|magnus|ace\s*credit\s*card)\b`, 0.2),
	},
	constants.IssuerAmex: {
		m(`american\s*express`, 0.4),
		m(`americanexpress\.com`, 0.3),
		m(`membership\s*rewards`, 0.3),
		m(`\bamex\b`, 0.2),
		m(`\b(?:platinum\s*travel|smartearn)\b`, 0.2),
	},
}

// SampleText joins the leading pages' text into the classification
// sample.
func SampleText(pageTexts []string) string {
	if len(pageTexts) > SamplePages {
		pageTexts = pageTexts[:SamplePages]
	}
	return strings.Join(pageTexts, "\n")
}

// ScoreText sums matched marker weights per issuer, capped at 1.0, and
// returns the best issuer. Scores under the floor give IssuerUnknown.
// Ties break in the fixed issuer order so results are deterministic.
func ScoreText(text string) (constants.IssuerType, float64) {
	scores := ScoreAll(text)

	best := constants.IssuerUnknown
	bestScore := 0.0
	for _, issuer := range constants.Issuers {
		if s := scores[issuer]; s > bestScore {
			best, bestScore = issuer, s
		}
	}
	if bestScore < MinConfidence {
		return constants.IssuerUnknown, bestScore
	}
	return best, bestScore
}

// ScoreAll returns every issuer's capped marker score.
func ScoreAll(text string) map[constants.IssuerType]float64 {
	out := make(map[constants.IssuerType]float64, len(issuerMarkers))
	for issuer, markers := range issuerMarkers {
		var score float64
		for _, mk := range markers {
			if mk.re.MatchString(text) {
				score += mk.weight
			}
		}
		if score > 1.0 {
			score = 1.0
		}
		out[issuer] = score
	}
	return out
}

// ScoreIssuer scores text against a single issuer's markers.
func ScoreIssuer(issuer constants.IssuerType, text string) float64 {
	var score float64
	for _, mk := range issuerMarkers[issuer] {
		if mk.re.MatchString(text) {
			score += mk.weight
		}
	}
	if score > 1.0 {
		score = 1.0
	}
	return score
}
