package timepitch

import "errors"

// Error kinds returned by the processor. All errors wrap one of these
// sentinels, so callers can classify them with errors.Is.
var (
	// ErrInvalidConfig reports an unusable construction parameter.
	ErrInvalidConfig = errors.New("timepitch: invalid configuration")

	// ErrInvalidParameter reports a rejected control value or a buffer that
	// does not hold whole frames. The previous state is retained.
	ErrInvalidParameter = errors.New("timepitch: invalid parameter")

	// ErrInvalidState reports an operation that is not valid in the current
	// stream state, such as Process after Flush without an intervening Clear.
	ErrInvalidState = errors.New("timepitch: invalid state")
)
