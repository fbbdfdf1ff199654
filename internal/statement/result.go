package statement

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/priya-raghavan/statement-parser/constants"
)

// ExtractionResult is the complete outcome of parsing one statement.
// At most one Field per FieldType; AddField replaces.
type ExtractionResult struct {
	ID                string                        `json:"id"`
	Issuer            constants.IssuerType          `json:"issuer"`
	IssuerConfidence  float64                       `json:"issuer_confidence"`
	Fields            map[constants.FieldType]Field `json:"fields"`
	Transactions      []Transaction                 `json:"transactions,omitempty"`
	OverallConfidence float64                       `json:"overall_confidence"`
	QualityScore      float64                       `json:"quality_score"`
	Scanned           bool                          `json:"scanned"`
	Valid             bool                          `json:"is_valid"`
	ValidationErrors  []string                      `json:"validation_errors,omitempty"`
	Warnings          []string                      `json:"warnings,omitempty"`
	Metadata          map[string]any                `json:"metadata,omitempty"`
	CreatedAt         time.Time                     `json:"created_at"`
}

// NewResult allocates a result for one document run. Results start valid;
// validation errors flip the flag.
func NewResult(issuer constants.IssuerType) *ExtractionResult {
	return &ExtractionResult{
		ID:        uuid.NewString(),
		Issuer:    issuer,
		Fields:    make(map[constants.FieldType]Field),
		Metadata:  make(map[string]any),
		Valid:     true,
		CreatedAt: time.Now().UTC(),
	}
}

// AddField stores a field, replacing any previous value of the same type,
// and recomputes the mean field confidence.
func (r *ExtractionResult) AddField(f Field) {
	r.Fields[f.Name] = f
	r.recalculate()
}

// SetIfEmpty stores a field only when no value of that type exists yet.
// Returns true when the field was stored.
func (r *ExtractionResult) SetIfEmpty(f Field) bool {
	if _, ok := r.Fields[f.Name]; ok {
		return false
	}
	r.AddField(f)
	return true
}

// Get returns the field of the given type, if present.
func (r *ExtractionResult) Get(name constants.FieldType) (Field, bool) {
	f, ok := r.Fields[name]
	return f, ok
}

// Amount returns the decimal value of an amount field, if present and typed.
func (r *ExtractionResult) Amount(name constants.FieldType) (decimal.Decimal, bool) {
	f, ok := r.Fields[name]
	if !ok {
		return decimal.Decimal{}, false
	}
	switch v := f.Value.(type) {
	case decimal.Decimal:
		return v, true
	case *decimal.Decimal:
		if v != nil {
			return *v, true
		}
	}
	return decimal.Decimal{}, false
}

// Date returns the time value of a date field, if present and typed.
func (r *ExtractionResult) Date(name constants.FieldType) (time.Time, bool) {
	f, ok := r.Fields[name]
	if !ok {
		return time.Time{}, false
	}
	if t, ok := f.Value.(time.Time); ok {
		return t, true
	}
	return time.Time{}, false
}

// Text returns the string value of a field, if present and typed.
func (r *ExtractionResult) Text(name constants.FieldType) (string, bool) {
	f, ok := r.Fields[name]
	if !ok {
		return "", false
	}
	if s, ok := f.Value.(string); ok {
		return s, true
	}
	return "", false
}

// Warn appends a non-fatal extraction warning.
func (r *ExtractionResult) Warn(msg string) {
	r.Warnings = append(r.Warnings, msg)
}

// Invalidate records a validation error. Validation never aborts a run;
// the errors ride along on the result.
func (r *ExtractionResult) Invalidate(msg string) {
	r.Valid = false
	r.ValidationErrors = append(r.ValidationErrors, msg)
}

// Completeness is the fraction of known field types that were extracted.
func (r *ExtractionResult) Completeness() float64 {
	if len(constants.AllFields) == 0 {
		return 0
	}
	found := 0
	for _, ft := range constants.AllFields {
		if _, ok := r.Fields[ft]; ok {
			found++
		}
	}
	return float64(found) / float64(len(constants.AllFields))
}

// FieldConfidences returns the confidence of every stored field.
func (r *ExtractionResult) FieldConfidences() []float64 {
	out := make([]float64, 0, len(r.Fields))
	for _, f := range r.Fields {
		out = append(out, f.Confidence)
	}
	return out
}

// recalculate keeps OverallConfidence at the mean field confidence. The
// final blended score is set later by the confidence scorer.
func (r *ExtractionResult) recalculate() {
	if len(r.Fields) == 0 {
		r.OverallConfidence = 0
		return
	}
	var sum float64
	for _, f := range r.Fields {
		sum += f.Confidence
	}
	r.OverallConfidence = sum / float64(len(r.Fields))
}

// ToMap serializes the result to plain JSON types, the shape that schema
// validation and exports consume. Dates become ISO strings and decimals
// become numbers.
func (r *ExtractionResult) ToMap() (map[string]any, error) {
	norm := *r
	norm.Fields = make(map[constants.FieldType]Field, len(r.Fields))
	for name, f := range r.Fields {
		nf := f
		switch v := f.Value.(type) {
		case time.Time:
			nf.Value = v.Format("2006-01-02")
		case decimal.Decimal:
			nf.Value, _ = v.Float64()
		case *decimal.Decimal:
			if v != nil {
				nf.Value, _ = v.Float64()
			}
		}
		norm.Fields[name] = nf
	}

	raw, err := json.Marshal(&norm)
	if err != nil {
		return nil, err
	}
	var out map[string]any
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, err
	}
	return out, nil
}
