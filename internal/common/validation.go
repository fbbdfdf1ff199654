package common

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"
)

// RuleViolation represents a single field-level validation failure
type RuleViolation struct {
	Field   string
	Value   interface{}
	Message string
}

func (e RuleViolation) Error() string {
	return fmt.Sprintf("validation failed for field '%s' with value '%v': %s", e.Field, e.Value, e.Message)
}

// Validator provides validation utilities
type Validator struct {
	violations []RuleViolation
}

// NewValidator creates a new validator instance
func NewValidator() *Validator {
	return &Validator{
		violations: make([]RuleViolation, 0),
	}
}

// Field validates a field and collects violations
func (v *Validator) Field(fieldName string, value interface{}, rules ...ValidationRule) *Validator {
	for _, rule := range rules {
		if err := rule(fieldName, value); err != nil {
			v.violations = append(v.violations, *err)
		}
	}
	return v
}

// HasErrors returns true if there are validation failures
func (v *Validator) HasErrors() bool {
	return len(v.violations) > 0
}

// Violations returns all validation failures
func (v *Validator) Violations() []RuleViolation {
	return v.violations
}

// Error returns a combined error, or nil when everything passed
func (v *Validator) Error() error {
	if !v.HasErrors() {
		return nil
	}
	return ValidationError(v.ErrorMessage(), nil)
}

// ErrorMessage returns a combined error message as string
func (v *Validator) ErrorMessage() string {
	if !v.HasErrors() {
		return ""
	}

	var messages []string
	for _, violation := range v.violations {
		messages = append(messages, violation.Error())
	}
	return strings.Join(messages, "; ")
}

// ValidationRule represents a single validation rule
type ValidationRule func(fieldName string, value interface{}) *RuleViolation

// Required - Common validation rules
func Required(fieldName string, value interface{}) *RuleViolation {
	if value == nil {
		return &RuleViolation{Field: fieldName, Value: value, Message: "is required"}
	}

	switch v := value.(type) {
	case string:
		if strings.TrimSpace(v) == "" {
			return &RuleViolation{Field: fieldName, Value: value, Message: "is required"}
		}
	case *string:
		if v == nil || strings.TrimSpace(*v) == "" {
			return &RuleViolation{Field: fieldName, Value: value, Message: "is required"}
		}
	}
	return nil
}

// UnitInterval requires a float64 in [0,1], the range for confidences.
func UnitInterval(fieldName string, value interface{}) *RuleViolation {
	f, ok := value.(float64)
	if !ok {
		return &RuleViolation{Field: fieldName, Value: value, Message: "must be a float64"}
	}
	if f < 0 || f > 1 {
		return &RuleViolation{
			Field:   fieldName,
			Value:   value,
			Message: "must be between 0.0 and 1.0",
		}
	}
	return nil
}

var lastFourRegex = regexp.MustCompile(`^\d{4}$`)

// CardLastFour requires exactly four digits, the masked card form.
func CardLastFour(fieldName string, value interface{}) *RuleViolation {
	str, ok := value.(string)
	if !ok {
		return &RuleViolation{Field: fieldName, Value: value, Message: "must be a string"}
	}
	if !lastFourRegex.MatchString(str) {
		return &RuleViolation{
			Field:   fieldName,
			Value:   value,
			Message: "must be exactly 4 digits",
		}
	}
	return nil
}

func UUID(fieldName string, value interface{}) *RuleViolation {
	str, ok := value.(string)
	if !ok {
		return &RuleViolation{Field: fieldName, Value: value, Message: "must be a string"}
	}

	if _, err := uuid.Parse(str); err != nil {
		return &RuleViolation{
			Field:   fieldName,
			Value:   value,
			Message: "must be a valid UUID",
		}
	}
	return nil
}
