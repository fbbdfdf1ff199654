// Package layout finds labeled values on a statement page by spatial
// proximity: a label block like "Total Amount Due" and its value either on
// the same line to the right or immediately below.
package layout

import (
	"log/slog"
	"regexp"

	"github.com/priya-raghavan/statement-parser/constants"
	"github.com/priya-raghavan/statement-parser/internal/pdftext"
)

const (
	// headerFraction and footerFraction bound the page regions scanned
	// for identity fields and fine print.
	headerFraction = 0.15
	footerFraction = 0.10

	// sameLineTolerance allows labels and values to disagree vertically
	// by this many points and still count as one line.
	sameLineTolerance = 10.0
	// belowGap is how far under a label a value may start.
	belowGap = 20.0
	// belowXSlack is how far a below-value may start left or right of its
	// label's left edge.
	belowXSlack = 30.0

	// proximityConfidence is assigned to values found by label proximity.
	proximityConfidence = 0.8
)

// labelAliases maps field types to label writings seen across issuers.
var labelAliases = map[constants.FieldType][]*regexp.Regexp{
	constants.FieldCardNumber: compileAll(
		`(?i)^card\s*(?:no|number|#)`,
		`(?i)^credit\s*card\s*(?:no|number)`,
	),
	constants.FieldCardholderName: compileAll(
		`(?i)^(?:card\s*)?(?:holder|member)(?:'s)?\s*name`,
		`(?i)^name\s*$`,
	),
	constants.FieldStatementDate: compileAll(
		`(?i)^statement\s*date`,
		`(?i)^statement\s*generation\s*date`,
	),
	constants.FieldBillingCycle: compileAll(
		`(?i)^(?:billing|statement)\s*(?:cycle|period)`,
	),
	constants.FieldPaymentDueDate: compileAll(
		`(?i)^payment\s*due\s*date`,
		`(?i)^due\s*date`,
	),
	constants.FieldTotalDue: compileAll(
		`(?i)^total\s*(?:amount\s*)?due`,
		`(?i)^total\s*payment\s*due`,
	),
	constants.FieldOpeningBalance: compileAll(
		`(?i)^(?:opening|previous)\s*balance`,
	),
	constants.FieldClosingBalance: compileAll(
		`(?i)^closing\s*balance`,
	),
	constants.FieldMinimumDue: compileAll(
		`(?i)^min(?:imum)?\s*(?:amount\s*)?due`,
		`(?i)^minimum\s*payment\s*due`,
	),
	constants.FieldCreditLimit: compileAll(
		`(?i)^(?:total\s*)?credit\s*limit`,
		`(?i)^sanctioned\s*credit\s*limit`,
	),
	constants.FieldAvailableCredit: compileAll(
		`(?i)^available\s*credit\s*(?:limit)?`,
	),
	constants.FieldRewardPoints: compileAll(
		`(?i)^reward\s*points?\s*(?:balance|earned)?`,
	),
	constants.FieldCustomerID: compileAll(
		`(?i)^customer\s*(?:id|no)`,
	),
	constants.FieldStatementNumber: compileAll(
		`(?i)^statement\s*(?:no|number)`,
	),
}

func compileAll(patterns ...string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, 0, len(patterns))
	for _, p := range patterns {
		out = append(out, regexp.MustCompile(p))
	}
	return out
}

// Candidate pairs a recognized label with its located value block.
type Candidate struct {
	Field      constants.FieldType
	Label      pdftext.Block
	Value      pdftext.Block
	Confidence float64
}

type Analyzer struct {
	log *slog.Logger
}

func NewAnalyzer(logger *slog.Logger) *Analyzer {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Analyzer{log: logger}
}

// HeaderBlocks returns blocks in the top region of the page.
func (a *Analyzer) HeaderBlocks(page pdftext.Page) []pdftext.Block {
	limit := page.Height * headerFraction
	var out []pdftext.Block
	for _, b := range page.Blocks {
		if b.BBox.Y0 <= limit {
			out = append(out, b)
		}
	}
	return out
}

// FooterBlocks returns blocks in the bottom region of the page.
func (a *Analyzer) FooterBlocks(page pdftext.Page) []pdftext.Block {
	limit := page.Height * (1 - footerFraction)
	var out []pdftext.Block
	for _, b := range page.Blocks {
		if b.BBox.Y1 >= limit {
			out = append(out, b)
		}
	}
	return out
}

// FindFields scans a page for label blocks and pairs each with its
// nearest value. The first label match per field type wins.
func (a *Analyzer) FindFields(page pdftext.Page) []Candidate {
	var out []Candidate
	seen := map[constants.FieldType]bool{}

	for _, block := range page.Blocks {
		field, ok := matchLabel(block.Text)
		if !ok || seen[field] {
			continue
		}
		value, found := findValue(block, page.Blocks)
		if !found {
			continue
		}
		seen[field] = true
		out = append(out, Candidate{
			Field:      field,
			Label:      block,
			Value:      value,
			Confidence: proximityConfidence,
		})
	}
	a.log.Debug("layout analysis", "page", page.Number, "candidates", len(out))
	return out
}

func matchLabel(text string) (constants.FieldType, bool) {
	for _, ft := range constants.AllFields {
		for _, re := range labelAliases[ft] {
			if re.MatchString(text) {
				return ft, true
			}
		}
	}
	return "", false
}

// findValue looks right on the same line first, then immediately below.
func findValue(label pdftext.Block, blocks []pdftext.Block) (pdftext.Block, bool) {
	var best pdftext.Block
	bestDist := -1.0

	// Same line, to the right, minimal horizontal distance.
	for _, b := range blocks {
		if b == label || b.Text == "" {
			continue
		}
		if abs(b.BBox.Y0-label.BBox.Y0) < sameLineTolerance && b.BBox.X0 > label.BBox.X1 {
			d := b.BBox.X0 - label.BBox.X1
			if bestDist < 0 || d < bestDist {
				best, bestDist = b, d
			}
		}
	}
	if bestDist >= 0 {
		return best, true
	}

	// Next block below, within the gap, roughly left-aligned.
	for _, b := range blocks {
		if b == label || b.Text == "" {
			continue
		}
		gap := b.BBox.Y0 - label.BBox.Y1
		if gap <= 0 || gap >= belowGap {
			continue
		}
		if abs(b.BBox.X0-label.BBox.X0) > belowXSlack {
			continue
		}
		if bestDist < 0 || gap < bestDist {
			best, bestDist = b, gap
		}
	}
	return best, bestDist >= 0
}

func abs(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}
