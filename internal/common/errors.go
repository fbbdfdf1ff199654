package common

import (
	"errors"
	"fmt"
)

// AppError represents application-specific errors
type AppError struct {
	Code    string
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// Error categories for the extraction pipeline. Stage errors wrap one of
// these sentinels so callers can branch with errors.Is.
var (
	ErrFile                = errors.New("file error")
	ErrParsing             = errors.New("parsing error")
	ErrExtraction          = errors.New("extraction error")
	ErrValidation          = errors.New("validation failed")
	ErrIssuerNotSupported  = errors.New("issuer not supported")
	ErrConfidenceThreshold = errors.New("confidence below threshold")
	ErrInvalidInput        = errors.New("invalid input")
	ErrInternal            = errors.New("internal error")
)

// Error constructors
func NewAppError(code, message string, cause error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

func WrapError(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// FileError marks failures opening, reading, or preflighting an input PDF.
func FileError(message string, cause error) *AppError {
	return NewAppError("FILE_ERROR", message, join(ErrFile, cause))
}

// ParsingError is the single top-level failure type the orchestrator returns;
// every stage failure is converted into one before leaving the pipeline.
func ParsingError(message string, cause error) *AppError {
	return NewAppError("PARSING_ERROR", message, join(ErrParsing, cause))
}

// ExtractionError marks a stage failure inside the pipeline (text, OCR,
// tables, layout).
func ExtractionError(message string, cause error) *AppError {
	return NewAppError("EXTRACTION_ERROR", message, join(ErrExtraction, cause))
}

// ValidationError marks schema or business-rule failures on a final result.
func ValidationError(message string, cause error) *AppError {
	return NewAppError("VALIDATION_ERROR", message, join(ErrValidation, cause))
}

// IssuerNotSupportedError reports a statement whose issuer has no parser.
func IssuerNotSupportedError(issuer string) *AppError {
	return NewAppError("ISSUER_NOT_SUPPORTED", fmt.Sprintf("no parser registered for issuer %q", issuer), ErrIssuerNotSupported)
}

// ConfidenceThresholdError reports classification or extraction confidence
// below the configured floor.
func ConfidenceThresholdError(message string, got, want float64) *AppError {
	return NewAppError("CONFIDENCE_THRESHOLD",
		fmt.Sprintf("%s: confidence %.2f below threshold %.2f", message, got, want),
		ErrConfidenceThreshold)
}

func join(sentinel, cause error) error {
	if cause == nil {
		return sentinel
	}
	return fmt.Errorf("%w: %w", sentinel, cause)
}
