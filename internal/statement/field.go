package statement

import (
	"fmt"

	"github.com/priya-raghavan/statement-parser/constants"
	"github.com/priya-raghavan/statement-parser/internal/common"
)

// BoundingBox locates a value on a page, in top-left-origin page points.
type BoundingBox struct {
	X0 float64 `json:"x0"`
	Y0 float64 `json:"y0"`
	X1 float64 `json:"x1"`
	Y1 float64 `json:"y1"`
}

// Width returns the horizontal extent of the box.
func (b BoundingBox) Width() float64 { return b.X1 - b.X0 }

// Height returns the vertical extent of the box.
func (b BoundingBox) Height() float64 { return b.Y1 - b.Y0 }

// Field is one extracted statement value with its provenance.
type Field struct {
	Name       constants.FieldType        `json:"name"`
	Value      any                        `json:"value"`
	RawText    string                     `json:"raw_text,omitempty"`
	Confidence float64                    `json:"confidence"`
	Method     constants.ExtractionMethod `json:"method"`
	Page       int                        `json:"page,omitempty"`
	BBox       *BoundingBox               `json:"bbox,omitempty"`
}

// NewField builds a Field, rejecting confidences outside [0,1].
func NewField(name constants.FieldType, value any, confidence float64, method constants.ExtractionMethod) (Field, error) {
	v := common.NewValidator()
	v.Field(string(name), confidence, common.UnitInterval)
	if err := v.Error(); err != nil {
		return Field{}, err
	}
	if value == nil {
		return Field{}, common.NewAppError("FIELD_INVALID", fmt.Sprintf("field %s has no value", name), common.ErrInvalidInput)
	}
	return Field{Name: name, Value: value, Confidence: confidence, Method: method}, nil
}

// WithLocation attaches page/bbox provenance to a field.
func (f Field) WithLocation(page int, bbox *BoundingBox) Field {
	f.Page = page
	f.BBox = bbox
	return f
}

// WithRawText records the text the value was parsed from.
func (f Field) WithRawText(raw string) Field {
	f.RawText = raw
	return f
}

// Discounted returns a copy with confidence scaled by factor, clamped to
// [0,1]. Used for OCR-sourced values.
func (f Field) Discounted(factor float64) Field {
	c := f.Confidence * factor
	if c < 0 {
		c = 0
	}
	if c > 1 {
		c = 1
	}
	f.Confidence = c
	return f
}
