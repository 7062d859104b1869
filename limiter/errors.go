package limiter

import (
	"errors"
	"fmt"
)

// ErrLimitExceeded matches any LimitExceededError via errors.Is.
var ErrLimitExceeded = errors.New("flow limit exceeded")

// LimitExceededError reports an admission failure. Attempted is the amount
// the caller asked for, Available how much the current epoch could still
// admit in that direction.
type LimitExceededError struct {
	Subject   string
	Attempted uint64
	Available uint64
}

func (e *LimitExceededError) Error() string {
	return fmt.Sprintf("flow limit exceeded for subject %s: attempted %d, available %d", e.Subject, e.Attempted, e.Available)
}

func (e *LimitExceededError) Is(target error) bool {
	return target == ErrLimitExceeded
}

func IsLimitExceeded(err error) bool {
	return errors.Is(err, ErrLimitExceeded)
}
