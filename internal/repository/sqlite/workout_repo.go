package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"cgarcia/trainlog-app/internal/domain"
	"cgarcia/trainlog-app/internal/repository"
)

// sqliteWorkoutRepository implements repository.WorkoutRepository
type sqliteWorkoutRepository struct {
	db *sql.DB
}

// NewWorkoutRepository creates a new Workout repository backed by SQLite.
func NewWorkoutRepository(db *sql.DB) repository.WorkoutRepository {
	return &sqliteWorkoutRepository{db: db}
}

const workoutColumns = "id, name, user_id, manager_id, mesocycle_id, archived_at"

func scanWorkout(row *sql.Row) (*domain.Workout, error) {
	var w domain.Workout
	var mesocycleID sql.NullInt64
	var archivedAt sql.NullTime
	err := row.Scan(&w.ID, &w.Name, &w.UserID, &w.ManagerID, &mesocycleID, &archivedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	w.MesocycleID = nullInt(mesocycleID)
	w.ArchivedAt = nullTime(archivedAt)
	return &w, nil
}

func (r *sqliteWorkoutRepository) Create(ctx context.Context, w *domain.Workout) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO workouts (name, user_id, manager_id, mesocycle_id) VALUES (?, ?, ?, ?)`,
		w.Name, w.UserID, w.ManagerID, w.MesocycleID)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, repository.ErrDuplicate
		}
		return 0, err
	}
	return res.LastInsertId()
}

func (r *sqliteWorkoutRepository) GetOwnedByManager(ctx context.Context, workoutID, managerID int64) (*domain.Workout, error) {
	return scanWorkout(r.db.QueryRowContext(ctx,
		`SELECT `+workoutColumns+` FROM workouts WHERE id = ? AND manager_id = ?`,
		workoutID, managerID))
}

func (r *sqliteWorkoutRepository) GetActiveOwnedByManager(ctx context.Context, workoutID, managerID int64) (*domain.Workout, error) {
	return scanWorkout(r.db.QueryRowContext(ctx,
		`SELECT `+workoutColumns+` FROM workouts
		 WHERE id = ? AND manager_id = ? AND archived_at IS NULL`,
		workoutID, managerID))
}

func (r *sqliteWorkoutRepository) ListActiveByUser(ctx context.Context, userID int64) ([]domain.Workout, error) {
	return r.list(ctx,
		`SELECT `+workoutColumns+` FROM workouts
		 WHERE user_id = ? AND archived_at IS NULL
		 ORDER BY id DESC`, userID)
}

func (r *sqliteWorkoutRepository) ListActiveByMesocycle(ctx context.Context, userID, mesocycleID int64) ([]domain.Workout, error) {
	return r.list(ctx,
		`SELECT `+workoutColumns+` FROM workouts
		 WHERE user_id = ? AND archived_at IS NULL AND mesocycle_id = ?
		 ORDER BY id DESC`, userID, mesocycleID)
}

func (r *sqliteWorkoutRepository) list(ctx context.Context, query string, args ...any) ([]domain.Workout, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	workouts := []domain.Workout{}
	for rows.Next() {
		var w domain.Workout
		var mesocycleID sql.NullInt64
		var archivedAt sql.NullTime
		if err := rows.Scan(&w.ID, &w.Name, &w.UserID, &w.ManagerID, &mesocycleID, &archivedAt); err != nil {
			return nil, err
		}
		w.MesocycleID = nullInt(mesocycleID)
		w.ArchivedAt = nullTime(archivedAt)
		workouts = append(workouts, w)
	}
	return workouts, rows.Err()
}

func (r *sqliteWorkoutRepository) ListForManager(ctx context.Context, userID, managerID int64) ([]domain.ManagerWorkout, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT w.id, w.name, u.email,
		        COUNT(we.id) AS exercises_count
		 FROM workouts w
		 JOIN users u ON w.user_id = u.id
		 LEFT JOIN workout_exercises we ON we.workout_id = w.id AND we.archived_at IS NULL
		 WHERE w.user_id = ? AND w.manager_id = ? AND w.archived_at IS NULL
		 GROUP BY w.id, w.name, u.email
		 ORDER BY w.id DESC`,
		userID, managerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var workouts []domain.ManagerWorkout
	for rows.Next() {
		var w domain.ManagerWorkout
		if err := rows.Scan(&w.ID, &w.Name, &w.UserEmail, &w.ExercisesCount); err != nil {
			return nil, err
		}
		workouts = append(workouts, w)
	}
	return workouts, rows.Err()
}

func (r *sqliteWorkoutRepository) Rename(ctx context.Context, workoutID int64, name string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE workouts SET name = ? WHERE id = ? AND archived_at IS NULL`,
		name, workoutID)
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

// ArchiveCascade soft-deletes the workout and its active exercises together.
// A partially archived workout (exercises gone, workout still listed) is
// never observable.
func (r *sqliteWorkoutRepository) ArchiveCascade(ctx context.Context, workoutID int64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`UPDATE workout_exercises SET archived_at = CURRENT_TIMESTAMP
		 WHERE workout_id = ? AND archived_at IS NULL`, workoutID); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx,
		`UPDATE workouts SET archived_at = CURRENT_TIMESTAMP
		 WHERE id = ? AND archived_at IS NULL`, workoutID); err != nil {
		return err
	}
	return tx.Commit()
}

// Dashboard builds the nested workout → exercises → last-log view with two
// prepared statements reused across rows instead of per-row query compilation.
func (r *sqliteWorkoutRepository) Dashboard(ctx context.Context, userID int64, filter *domain.MesocycleFilter) ([]domain.DashboardWorkout, error) {
	query := `SELECT id, name, mesocycle_id FROM workouts
	          WHERE user_id = ? AND archived_at IS NULL`
	args := []any{userID}
	if filter != nil {
		if filter.Unassigned {
			query += ` AND mesocycle_id IS NULL`
		} else {
			query += ` AND mesocycle_id = ?`
			args = append(args, filter.MesocycleID)
		}
	}
	query += ` ORDER BY id DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	workouts := []domain.DashboardWorkout{}
	for rows.Next() {
		var w domain.DashboardWorkout
		var mesocycleID sql.NullInt64
		if err := rows.Scan(&w.ID, &w.Name, &mesocycleID); err != nil {
			return nil, err
		}
		w.MesocycleID = nullInt(mesocycleID)
		workouts = append(workouts, w)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	exercisesStmt, err := r.db.PrepareContext(ctx,
		`SELECT id, name, sets, reps, rir, rm_percent, order_index, movement_id
		 FROM workout_exercises
		 WHERE workout_id = ? AND archived_at IS NULL
		 ORDER BY order_index`)
	if err != nil {
		return nil, err
	}
	defer exercisesStmt.Close()

	lastLogStmt, err := r.db.PrepareContext(ctx,
		`SELECT weight, reps, date FROM exercise_logs
		 WHERE movement_id = ? AND user_id = ?
		 ORDER BY date DESC, id DESC LIMIT 1`)
	if err != nil {
		return nil, err
	}
	defer lastLogStmt.Close()

	for i := range workouts {
		exercises, err := r.dashboardExercises(ctx, exercisesStmt, lastLogStmt, workouts[i].ID, userID)
		if err != nil {
			return nil, err
		}
		workouts[i].Exercises = exercises
	}
	return workouts, nil
}

func (r *sqliteWorkoutRepository) dashboardExercises(ctx context.Context, exercisesStmt, lastLogStmt *sql.Stmt, workoutID, userID int64) ([]domain.DashboardExercise, error) {
	rows, err := exercisesStmt.QueryContext(ctx, workoutID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	exercises := []domain.DashboardExercise{}
	for rows.Next() {
		var e domain.DashboardExercise
		var rir, rmPercent, movementID sql.NullInt64
		if err := rows.Scan(&e.ID, &e.Name, &e.Sets, &e.Reps, &rir, &rmPercent, &e.OrderIndex, &movementID); err != nil {
			return nil, err
		}
		e.RIR = nullIntSmall(rir)
		e.RMPercent = nullIntSmall(rmPercent)
		e.MovementID = movementID.Int64
		exercises = append(exercises, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range exercises {
		if exercises[i].MovementID == 0 {
			continue
		}
		var last domain.LastLog
		var date time.Time
		err := lastLogStmt.QueryRowContext(ctx, exercises[i].MovementID, userID).
			Scan(&last.Weight, &last.Reps, &date)
		if errors.Is(err, sql.ErrNoRows) {
			continue
		}
		if err != nil {
			return nil, err
		}
		last.Date = formatTime(date)
		exercises[i].LastLog = &last
	}
	return exercises, nil
}
