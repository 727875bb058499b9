package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Construction errors
	ErrInvalidConfiguration = errors.New("invalid configuration")
	ErrNonPositiveUnits     = fmt.Errorf("%w: unit count must be positive", ErrInvalidConfiguration)
	ErrNonPositiveDegree    = fmt.Errorf("%w: polynomial degree must be positive", ErrInvalidConfiguration)

	// Panel errors
	ErrIndexOutOfRange = errors.New("control unit index out of range")
	ErrShapeMismatch   = errors.New("panel shape mismatch")
	ErrEmptyPeriod     = fmt.Errorf("%w: each side of the intervention needs at least one sample", ErrShapeMismatch)

	// Evaluation errors
	ErrModelEvaluation = errors.New("model evaluation failed")
)

// Error constructors with context
func NewInvalidConfigurationError(field string, reason string) error {
	return fmt.Errorf("%w: %s: %s", ErrInvalidConfiguration, field, reason)
}

func NewIndexOutOfRangeError(index, nUnits int) error {
	return fmt.Errorf("%w: index %d, control units %d", ErrIndexOutOfRange, index, nUnits)
}

func NewShapeMismatchError(slot string, reason string) error {
	return fmt.Errorf("%w: %s: %s", ErrShapeMismatch, slot, reason)
}

// NewModelEvaluationError keeps the collaborator's error in the chain so
// callers can still match it with errors.Is.
func NewModelEvaluationError(model, dataset string, err error) error {
	return fmt.Errorf("%w: model %s on dataset %s: %w", ErrModelEvaluation, model, dataset, err)
}

// Error checking helpers
func IsInvalidConfiguration(err error) bool {
	return errors.Is(err, ErrInvalidConfiguration)
}

func IsIndexOutOfRange(err error) bool {
	return errors.Is(err, ErrIndexOutOfRange)
}

func IsShapeMismatch(err error) bool {
	return errors.Is(err, ErrShapeMismatch)
}

func IsModelEvaluation(err error) bool {
	return errors.Is(err, ErrModelEvaluation)
}
