package repository

import (
	"context"

	"cgarcia/trainlog-app/internal/domain"
)

// Error constants for the repository layer
var (
	ErrNotFound  = RepositoryError("not found")
	ErrDuplicate = RepositoryError("duplicate")
)

// RepositoryError helps distinguish repository errors
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// UserRepository defines the interface for interacting with user data.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (int64, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	// GetManagedClient returns the user only when it has role USER and is
	// managed by managerID; ErrNotFound otherwise.
	GetManagedClient(ctx context.Context, userID, managerID int64) (*domain.User, error)
	ListClientsByManager(ctx context.Context, managerID int64) ([]domain.User, error)
	// ListClientSummaries computes the roster rows (active workout count,
	// most recent log timestamp) for every client of the manager.
	ListClientSummaries(ctx context.Context, managerID int64) ([]domain.ClientSummary, error)
	Update(ctx context.Context, user *domain.User) error
	// DeleteClientCascade hard-deletes the client and everything it owns
	// (logs, workouts with their exercises, movements) in one transaction.
	DeleteClientCascade(ctx context.Context, userID int64) error
}

// MovementRepository defines the interface for the per-user movement catalog.
type MovementRepository interface {
	Create(ctx context.Context, movement *domain.Movement) (int64, error)
	GetByNormalized(ctx context.Context, userID int64, normalized string) (*domain.Movement, error)
	GetByIDForUser(ctx context.Context, id, userID int64) (*domain.Movement, error)
	// Suggest substring-matches the normalized key, ordered by display name.
	// An empty query returns the user's movements alphabetically up to limit.
	Suggest(ctx context.Context, userID int64, normalizedQuery string, limit int) ([]domain.Movement, error)
}

// MesocycleRepository defines the interface for interacting with mesocycles.
type MesocycleRepository interface {
	Create(ctx context.Context, m *domain.Mesocycle) (int64, error)
	ListByUser(ctx context.Context, userID int64) ([]domain.Mesocycle, error)
	// GetForManager resolves the mesocycle through its owning user's
	// manager_id; ErrNotFound when the chain does not reach managerID.
	GetForManager(ctx context.Context, id, managerID int64) (*domain.Mesocycle, error)
	GetForUser(ctx context.Context, id, userID int64) (*domain.Mesocycle, error)
	Update(ctx context.Context, m *domain.Mesocycle) error
	// DeleteDetachingWorkouts clears mesocycle_id on the block's workouts and
	// deletes the block, atomically.
	DeleteDetachingWorkouts(ctx context.Context, id int64) error
}

// WorkoutRepository defines the interface for interacting with workout data.
type WorkoutRepository interface {
	Create(ctx context.Context, w *domain.Workout) (int64, error)
	// GetOwnedByManager returns the workout (archived included) only when its
	// manager_id matches.
	GetOwnedByManager(ctx context.Context, workoutID, managerID int64) (*domain.Workout, error)
	GetActiveOwnedByManager(ctx context.Context, workoutID, managerID int64) (*domain.Workout, error)
	ListActiveByUser(ctx context.Context, userID int64) ([]domain.Workout, error)
	ListActiveByMesocycle(ctx context.Context, userID, mesocycleID int64) ([]domain.Workout, error)
	// ListForManager returns the manager listing rows (client email plus
	// active exercise counts) for one client.
	ListForManager(ctx context.Context, userID, managerID int64) ([]domain.ManagerWorkout, error)
	Rename(ctx context.Context, workoutID int64, name string) error
	// ArchiveCascade archives all active exercises under the workout and the
	// workout itself in one transaction. Already-archived rows are untouched.
	ArchiveCascade(ctx context.Context, workoutID int64) error
	// Dashboard assembles active workouts with ordered active exercises and
	// movement-scoped last logs, reusing prepared statements across rows.
	Dashboard(ctx context.Context, userID int64, filter *domain.MesocycleFilter) ([]domain.DashboardWorkout, error)
}

// ExerciseRepository defines the interface for interacting with programmed
// exercises (workout_exercises rows).
type ExerciseRepository interface {
	// Create inserts the exercise only while its workout is still active;
	// an archived workout yields ErrNotFound.
	Create(ctx context.Context, e *domain.Exercise) (int64, error)
	// GetOwnedByManager resolves ownership through the workout's manager_id
	// (archived rows included) and also reports the owning client's user id.
	GetOwnedByManager(ctx context.Context, exerciseID, managerID int64) (*domain.Exercise, int64, error)
	// GetOwnedByUser resolves ownership through the workout's user_id.
	// Archived rows are included so history stays reachable.
	GetOwnedByUser(ctx context.Context, exerciseID, userID int64) (*domain.Exercise, error)
	ListActiveByWorkout(ctx context.Context, workoutID int64) ([]domain.Exercise, error)
	Update(ctx context.Context, e *domain.Exercise) error
	Archive(ctx context.Context, exerciseID int64) error
	// SetMovement back-fills movement_id on rows predating movement tracking.
	SetMovement(ctx context.Context, exerciseID, movementID int64) error
}

// ExerciseLogRepository defines the interface for the log ledger.
type ExerciseLogRepository interface {
	Create(ctx context.Context, l *domain.ExerciseLog) (int64, error)
	GetOwnedByUser(ctx context.Context, logID, userID int64) (*domain.ExerciseLog, error)
	// ListByMovement returns all of the user's entries for the movement,
	// newest first (date desc, id desc).
	ListByMovement(ctx context.Context, movementID, userID int64) ([]domain.ExerciseLog, error)
	// LastByMovement returns nil (not ErrNotFound) when no entry exists.
	LastByMovement(ctx context.Context, movementID, userID int64) (*domain.ExerciseLog, error)
	Update(ctx context.Context, l *domain.ExerciseLog) error
	Delete(ctx context.Context, logID int64) error
}
