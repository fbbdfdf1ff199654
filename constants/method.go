package constants

// ExtractionMethod records which pipeline stage produced a field value.
type ExtractionMethod string

const (
	MethodText    ExtractionMethod = "TEXT"    // embedded-text regex match
	MethodLayout  ExtractionMethod = "LAYOUT"  // label/value spatial proximity
	MethodTable   ExtractionMethod = "TABLE"   // tabular region extraction
	MethodSpatial ExtractionMethod = "SPATIAL" // issuer-specific coordinate path
	MethodOCR     ExtractionMethod = "OCR"     // rasterized page OCR
	MethodManual  ExtractionMethod = "MANUAL"  // operator-supplied correction
)

// Per-method confidence multipliers, applied when the final score is
// computed. OCR text carries recognition noise; the spatial path trusts
// coordinates that can drift between layout revisions.
const (
	OCRConfidenceMultiplier     = 0.8
	SpatialConfidenceMultiplier = 0.95
	// SensitiveConfidenceMultiplier further discounts fields whose values
	// must never be wrong, like card numbers.
	SensitiveConfidenceMultiplier = 0.95
)

// ConfidenceMultiplier scales a field's reported confidence by how
// trustworthy its extraction method is.
func (m ExtractionMethod) ConfidenceMultiplier() float64 {
	switch m {
	case MethodOCR:
		return OCRConfidenceMultiplier
	case MethodSpatial:
		return SpatialConfidenceMultiplier
	default:
		return 1.0
	}
}
