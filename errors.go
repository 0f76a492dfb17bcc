package polyfield

import (
	"fmt"
)

// ErrorCategory classifies toolkit errors by the subsystem that raised them.
type ErrorCategory string

const (
	ErrorCategoryValidation    ErrorCategory = "validation"
	ErrorCategoryThreshold     ErrorCategory = "threshold"
	ErrorCategoryInterpolation ErrorCategory = "interpolation"
	ErrorCategoryEvaluation    ErrorCategory = "evaluation"
	ErrorCategoryCommitment    ErrorCategory = "commitment"
	ErrorCategoryProof         ErrorCategory = "proof"
	ErrorCategoryCryptographic ErrorCategory = "cryptographic"
)

// ProtocolError is a structured error carrying the failing subsystem and a
// stable machine-readable code. Every condition it describes is local and
// recoverable: the caller gets a fully-formed error and no partial results.
type ProtocolError struct {
	Category ErrorCategory
	Code     string
	Message  string
	Details  string
	Cause    error
}

// Error implements the error interface.
func (e *ProtocolError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("[%s:%s] %s: %s", e.Category, e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("[%s:%s] %s", e.Category, e.Code, e.Message)
}

// Unwrap returns the underlying cause, if any.
func (e *ProtocolError) Unwrap() error {
	return e.Cause
}

// Is matches protocol errors by category and code, so the sentinel values
// below keep working with errors.Is after WithDetails/WithCause copies.
func (e *ProtocolError) Is(target error) bool {
	t, ok := target.(*ProtocolError)
	if !ok {
		return false
	}
	return e.Category == t.Category && e.Code == t.Code
}

// WithDetails returns a copy of the error annotated with caller context.
func (e *ProtocolError) WithDetails(format string, args ...interface{}) *ProtocolError {
	clone := *e
	clone.Details = fmt.Sprintf(format, args...)
	return &clone
}

// WithCause returns a copy of the error wrapping an underlying failure.
func (e *ProtocolError) WithCause(cause error) *ProtocolError {
	clone := *e
	clone.Cause = cause
	return &clone
}

// NewProtocolError creates a new structured toolkit error.
func NewProtocolError(category ErrorCategory, code, message string) *ProtocolError {
	return &ProtocolError{
		Category: category,
		Code:     code,
		Message:  message,
	}
}

// Parameter and construction errors.
var (
	ErrInvalidThreshold = NewProtocolError(
		ErrorCategoryThreshold, "INVALID_THRESHOLD",
		"threshold must satisfy 0 <= t < n")

	ErrEmptyPolynomial = NewProtocolError(
		ErrorCategoryValidation, "EMPTY_POLYNOMIAL",
		"polynomial needs at least a constant term")

	ErrCurveMismatch = NewProtocolError(
		ErrorCategoryValidation, "CURVE_MISMATCH",
		"operands belong to different curves")

	ErrInvalidShareIndex = NewProtocolError(
		ErrorCategoryValidation, "INVALID_SHARE_INDEX",
		"share index is out of range for the scheme")
)

// Secret sharing errors.
var (
	ErrInsufficientShares = NewProtocolError(
		ErrorCategoryThreshold, "INSUFFICIENT_SHARES",
		"not enough shares to reconstruct the secret")

	ErrShareVerification = NewProtocolError(
		ErrorCategoryThreshold, "SHARE_VERIFICATION_FAILED",
		"share does not match the published commitments")
)

// Interpolation errors.
var (
	ErrDuplicatePoints = NewProtocolError(
		ErrorCategoryInterpolation, "DUPLICATE_POINTS",
		"interpolation points must be pairwise distinct")

	ErrPointValueMismatch = NewProtocolError(
		ErrorCategoryInterpolation, "POINT_VALUE_MISMATCH",
		"points and values must have the same non-zero length")
)

// Fast evaluation errors.
var (
	ErrDegreeTooLarge = NewProtocolError(
		ErrorCategoryEvaluation, "DEGREE_TOO_LARGE",
		"polynomial degree exceeds every divisor of the smooth subgroup order")

	ErrFFTSizeUnsupported = NewProtocolError(
		ErrorCategoryEvaluation, "FFT_SIZE_UNSUPPORTED",
		"evaluation size does not divide the smooth subgroup order")

	ErrNoSmoothSubgroup = NewProtocolError(
		ErrorCategoryEvaluation, "NO_SMOOTH_SUBGROUP",
		"curve does not publish a smooth-order subgroup of its scalar field")
)

// Commitment and proof errors.
var (
	ErrCommitmentMismatch = NewProtocolError(
		ErrorCategoryCommitment, "COMMITMENT_MISMATCH",
		"decommitment does not open the commitment")

	ErrProofVerification = NewProtocolError(
		ErrorCategoryProof, "PROOF_VERIFICATION_FAILED",
		"zero-knowledge proof rejected")
)

// Cryptographic errors.
var (
	ErrRandomnessGeneration = NewProtocolError(
		ErrorCategoryCryptographic, "RANDOMNESS_GENERATION_FAILED",
		"failed to generate secure randomness")
)
