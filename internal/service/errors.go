package service

// Errors returned by services carry a client-safe message. Anything that is
// not one of these types is an internal failure.

// ValidationError reports bad input.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// AuthenticationError reports missing or wrong credentials.
type AuthenticationError struct {
	Message string
}

func (e *AuthenticationError) Error() string { return e.Message }

// AuthorizationError reports an authenticated caller acting on something it
// does not own.
type AuthorizationError struct {
	Message string
}

func (e *AuthorizationError) Error() string { return e.Message }

// NotFoundError reports a missing entity.
type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string { return e.Message }

var (
	ErrNameRequired         = &ValidationError{Message: "name is required"}
	ErrInvalidSets          = &ValidationError{Message: "Invalid sets data"}
	ErrExerciseIDRequired   = &ValidationError{Message: "exerciseId is required"}
	ErrWorkoutNotFound      = &NotFoundError{Message: "Workout not found"}
	ErrExerciseNotFound     = &NotFoundError{Message: "Exercise not found"}
	ErrExerciseNotInWorkout = &NotFoundError{Message: "Exercise not found in workout"}
	ErrNotAuthorized        = &AuthorizationError{Message: "not authorized"}
)
