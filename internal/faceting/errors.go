package faceting

import (
	"errors"
	"fmt"
)

// ErrRankTooLow reports a faceting request below the minimum supported
// rank. It is a rejected request, not a failure: callers receive an
// empty result alongside it.
var ErrRankTooLow = errors.New("faceting requires rank 3 or higher")

// InternalErrorCode categorizes internal invariant violations.
type InternalErrorCode string

const (
	// ErrCodeNonIntegralMultiplicity indicates a ridge multiplicity
	// that did not divide evenly, which can only come from broken
	// orbit bookkeeping.
	ErrCodeNonIntegralMultiplicity InternalErrorCode = "NON_INTEGRAL_MULTIPLICITY"

	// ErrCodeNotDyadic indicates an accepted facet combination whose
	// assembled rank structure failed the dyadic check.
	ErrCodeNotDyadic InternalErrorCode = "NOT_DYADIC"

	// ErrCodeEmptyStabilizer indicates a hyperplane whose stabilizer
	// came out empty, which is impossible while the identity row is
	// present.
	ErrCodeEmptyStabilizer InternalErrorCode = "EMPTY_STABILIZER"
)

// InternalError is an unrecoverable invariant violation. It indicates
// a bug in the orbit bookkeeping, not bad input; the run aborts and
// there is nothing to retry.
type InternalError struct {
	Code    InternalErrorCode
	Message string
	Err     error
}

func (e *InternalError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *InternalError) Unwrap() error {
	return e.Err
}

// IsInternal reports whether err is an internal invariant violation.
func IsInternal(err error) bool {
	var ie *InternalError
	return errors.As(err, &ie)
}

func internalErrorf(code InternalErrorCode, format string, args ...any) *InternalError {
	return &InternalError{Code: code, Message: fmt.Sprintf(format, args...)}
}
