package pipeline

import (
	"strings"

	"github.com/priya-raghavan/statement-parser/internal/pdftext"
)

// Text-density tiers for document quality. Pages of a clean digital
// statement carry well over a thousand characters; scans that survived
// OCR sit lower.
const (
	qualityHighChars   = 1000
	qualityMediumChars = 500
	qualityLowChars    = 100

	qualityHigh   = 0.95
	qualityMedium = 0.85
	qualityLow    = 0.65
	qualityPoor   = 0.40
)

// QualityScore rates a document by mean characters per page.
func QualityScore(doc *pdftext.Document) float64 {
	if doc == nil || doc.PageCount == 0 {
		return qualityPoor
	}
	chars := len(strings.TrimSpace(doc.Text))
	mean := chars / doc.PageCount

	switch {
	case mean > qualityHighChars:
		return qualityHigh
	case mean > qualityMediumChars:
		return qualityMedium
	case mean > qualityLowChars:
		return qualityLow
	default:
		return qualityPoor
	}
}

// QualityScoreForText rates OCR output the same way, given a page count.
func QualityScoreForText(text string, pages int) float64 {
	if pages <= 0 {
		return qualityPoor
	}
	mean := len(strings.TrimSpace(text)) / pages
	switch {
	case mean > qualityHighChars:
		return qualityHigh
	case mean > qualityMediumChars:
		return qualityMedium
	case mean > qualityLowChars:
		return qualityLow
	default:
		return qualityPoor
	}
}
