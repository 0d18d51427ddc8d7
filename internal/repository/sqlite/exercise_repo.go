package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"cgarcia/trainlog-app/internal/domain"
	"cgarcia/trainlog-app/internal/repository"
)

// sqliteExerciseRepository implements repository.ExerciseRepository
type sqliteExerciseRepository struct {
	db *sql.DB
}

// NewExerciseRepository creates a new Exercise repository backed by SQLite.
func NewExerciseRepository(db *sql.DB) repository.ExerciseRepository {
	return &sqliteExerciseRepository{db: db}
}

const exerciseColumns = "id, name, sets, reps, rir, rm_percent, order_index, workout_id, movement_id, archived_at"

func scanExerciseRow(scan func(dest ...any) error) (*domain.Exercise, error) {
	var e domain.Exercise
	var rir, rmPercent, movementID sql.NullInt64
	var archivedAt sql.NullTime
	err := scan(&e.ID, &e.Name, &e.Sets, &e.Reps, &rir, &rmPercent, &e.OrderIndex,
		&e.WorkoutID, &movementID, &archivedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	e.RIR = nullIntSmall(rir)
	e.RMPercent = nullIntSmall(rmPercent)
	e.MovementID = movementID.Int64
	e.ArchivedAt = nullTime(archivedAt)
	return &e, nil
}

// Create inserts only while the workout is still active. The EXISTS guard
// runs in the same statement as the insert, so a workout archived after the
// caller's ownership check cannot gain new exercises; zero rows inserted
// surfaces as ErrNotFound.
func (r *sqliteExerciseRepository) Create(ctx context.Context, e *domain.Exercise) (int64, error) {
	var movementID any
	if e.MovementID != 0 {
		movementID = e.MovementID
	}
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO workout_exercises
		 (name, sets, reps, rir, rm_percent, order_index, workout_id, movement_id)
		 SELECT ?, ?, ?, ?, ?, ?, ?, ?
		 WHERE EXISTS (SELECT 1 FROM workouts WHERE id = ? AND archived_at IS NULL)`,
		e.Name, e.Sets, e.Reps, e.RIR, e.RMPercent, e.OrderIndex, e.WorkoutID, movementID,
		e.WorkoutID)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, repository.ErrDuplicate
		}
		return 0, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	if n == 0 {
		return 0, repository.ErrNotFound
	}
	return res.LastInsertId()
}

// GetOwnedByManager joins through the workout so the ownership chain
// (manager → workout → exercise) is checked in one statement. Archived rows
// are returned so callers can treat re-archiving as a no-op.
func (r *sqliteExerciseRepository) GetOwnedByManager(ctx context.Context, exerciseID, managerID int64) (*domain.Exercise, int64, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT we.id, we.name, we.sets, we.reps, we.rir, we.rm_percent, we.order_index,
		        we.workout_id, we.movement_id, we.archived_at, w.user_id
		 FROM workout_exercises we
		 JOIN workouts w ON we.workout_id = w.id
		 WHERE we.id = ? AND w.manager_id = ?`,
		exerciseID, managerID)

	var e domain.Exercise
	var rir, rmPercent, movementID sql.NullInt64
	var archivedAt sql.NullTime
	var userID int64
	err := row.Scan(&e.ID, &e.Name, &e.Sets, &e.Reps, &rir, &rmPercent, &e.OrderIndex,
		&e.WorkoutID, &movementID, &archivedAt, &userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, 0, repository.ErrNotFound
		}
		return nil, 0, err
	}
	e.RIR = nullIntSmall(rir)
	e.RMPercent = nullIntSmall(rmPercent)
	e.MovementID = movementID.Int64
	e.ArchivedAt = nullTime(archivedAt)
	return &e, userID, nil
}

func (r *sqliteExerciseRepository) GetOwnedByUser(ctx context.Context, exerciseID, userID int64) (*domain.Exercise, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT we.id, we.name, we.sets, we.reps, we.rir, we.rm_percent, we.order_index,
		        we.workout_id, we.movement_id, we.archived_at
		 FROM workout_exercises we
		 JOIN workouts w ON we.workout_id = w.id
		 WHERE we.id = ? AND w.user_id = ?`,
		exerciseID, userID)
	return scanExerciseRow(row.Scan)
}

func (r *sqliteExerciseRepository) ListActiveByWorkout(ctx context.Context, workoutID int64) ([]domain.Exercise, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+exerciseColumns+` FROM workout_exercises
		 WHERE workout_id = ? AND archived_at IS NULL
		 ORDER BY order_index`, workoutID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	exercises := []domain.Exercise{}
	for rows.Next() {
		e, err := scanExerciseRow(rows.Scan)
		if err != nil {
			return nil, err
		}
		exercises = append(exercises, *e)
	}
	return exercises, rows.Err()
}

// Update writes every mutable column at once; the service folds the patch
// into the full row before calling this.
func (r *sqliteExerciseRepository) Update(ctx context.Context, e *domain.Exercise) error {
	var movementID any
	if e.MovementID != 0 {
		movementID = e.MovementID
	}
	res, err := r.db.ExecContext(ctx,
		`UPDATE workout_exercises
		 SET name = ?, sets = ?, reps = ?, rir = ?, rm_percent = ?, order_index = ?, movement_id = ?
		 WHERE id = ? AND archived_at IS NULL`,
		e.Name, e.Sets, e.Reps, e.RIR, e.RMPercent, e.OrderIndex, movementID, e.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return repository.ErrDuplicate
		}
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// Archive is idempotent at the SQL level: an already-archived row matches
// nothing and the update is a no-op.
func (r *sqliteExerciseRepository) Archive(ctx context.Context, exerciseID int64) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE workout_exercises SET archived_at = CURRENT_TIMESTAMP
		 WHERE id = ? AND archived_at IS NULL`, exerciseID)
	return err
}

func (r *sqliteExerciseRepository) SetMovement(ctx context.Context, exerciseID, movementID int64) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE workout_exercises SET movement_id = ? WHERE id = ?`, movementID, exerciseID)
	return err
}
