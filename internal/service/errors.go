package service

import (
	"errors"
	"fmt"
)

// The five failure kinds every operation can return. Concrete errors wrap one
// of these, so callers (the HTTP adapter) branch with errors.Is and map each
// kind to a fixed status code: 400, 403, 409, 404, 500.
var (
	ErrValidation = errors.New("validation failed")
	ErrOwnership  = errors.New("access denied")
	ErrConflict   = errors.New("conflict")
	ErrNotFound   = errors.New("not found")
	ErrInternal   = errors.New("internal error")
)

// --- Named errors shared across services ---
var (
	ErrClientNotManaged  = fmt.Errorf("%w: user is not a client of this manager", ErrOwnership)
	ErrWorkoutNotOwned   = fmt.Errorf("%w: workout does not belong to this manager", ErrOwnership)
	ErrExerciseNotOwned  = fmt.Errorf("%w: exercise does not belong to this manager", ErrOwnership)
	ErrExerciseNotOfUser = fmt.Errorf("%w: exercise does not belong to this user", ErrOwnership)
	ErrLogNotOwned       = fmt.Errorf("%w: log does not belong to this user", ErrOwnership)
	ErrMesocycleNotOwned = fmt.Errorf("%w: mesocycle does not belong to this caller", ErrOwnership)
	ErrWorkoutNameTaken  = fmt.Errorf("%w: an active workout with that name already exists", ErrConflict)
	ErrOrderIndexTaken   = fmt.Errorf("%w: order_index is already used in this workout", ErrConflict)
	ErrEmailTaken        = fmt.Errorf("%w: email is already registered", ErrConflict)
)

func validationf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

func internalf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInternal, fmt.Sprintf(format, args...))
}
