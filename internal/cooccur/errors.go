package cooccur

import (
	"errors"
	"fmt"
)

// ErrSelfPair is returned when both sides of a pair are the same identifier
// under case folding.
var ErrSelfPair = errors.New("pair members must be distinct")

// ErrInvalidThreshold matches any ConfigurationError raised for a bad
// support threshold.
var ErrInvalidThreshold = errors.New("invalid support threshold")

// ConfigurationError reports a run configuration that must be rejected before
// any counting starts.
type ConfigurationError struct {
	Field  string
	Value  int
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration: %s=%d: %s", e.Field, e.Value, e.Reason)
}

// Is lets errors.Is(err, ErrInvalidThreshold) match threshold errors.
func (e *ConfigurationError) Is(target error) bool {
	return target == ErrInvalidThreshold && e.Field == "threshold"
}

func validateThreshold(threshold int) error {
	if threshold < 1 {
		return &ConfigurationError{Field: "threshold", Value: threshold, Reason: "must be at least 1"}
	}
	return nil
}
