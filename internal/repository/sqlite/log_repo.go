package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"cgarcia/trainlog-app/internal/domain"
	"cgarcia/trainlog-app/internal/repository"
)

// sqliteLogRepository implements repository.ExerciseLogRepository
type sqliteLogRepository struct {
	db *sql.DB
}

// NewExerciseLogRepository creates a new log ledger repository backed by SQLite.
func NewExerciseLogRepository(db *sql.DB) repository.ExerciseLogRepository {
	return &sqliteLogRepository{db: db}
}

func (r *sqliteLogRepository) Create(ctx context.Context, l *domain.ExerciseLog) (int64, error) {
	var res sql.Result
	var err error
	if l.Date.IsZero() {
		// Let the column default stamp the current time.
		res, err = r.db.ExecContext(ctx,
			`INSERT INTO exercise_logs (weight, reps, user_id, exercise_id, movement_id)
			 VALUES (?, ?, ?, ?, ?)`,
			l.Weight, l.Reps, l.UserID, l.ExerciseID, l.MovementID)
	} else {
		res, err = r.db.ExecContext(ctx,
			`INSERT INTO exercise_logs (weight, reps, date, user_id, exercise_id, movement_id)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			l.Weight, l.Reps, formatTime(l.Date), l.UserID, l.ExerciseID, l.MovementID)
	}
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func scanLog(scan func(dest ...any) error) (*domain.ExerciseLog, error) {
	var l domain.ExerciseLog
	var movementID sql.NullInt64
	err := scan(&l.ID, &l.Weight, &l.Reps, &l.Date, &l.UserID, &l.ExerciseID, &movementID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	l.MovementID = movementID.Int64
	l.Date = l.Date.UTC()
	return &l, nil
}

const logColumns = "id, weight, reps, date, user_id, exercise_id, movement_id"

func (r *sqliteLogRepository) GetOwnedByUser(ctx context.Context, logID, userID int64) (*domain.ExerciseLog, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+logColumns+` FROM exercise_logs WHERE id = ? AND user_id = ?`,
		logID, userID)
	return scanLog(row.Scan)
}

func (r *sqliteLogRepository) ListByMovement(ctx context.Context, movementID, userID int64) ([]domain.ExerciseLog, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+logColumns+` FROM exercise_logs
		 WHERE movement_id = ? AND user_id = ?
		 ORDER BY date DESC, id DESC`,
		movementID, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	logs := []domain.ExerciseLog{}
	for rows.Next() {
		l, err := scanLog(rows.Scan)
		if err != nil {
			return nil, err
		}
		logs = append(logs, *l)
	}
	return logs, rows.Err()
}

func (r *sqliteLogRepository) LastByMovement(ctx context.Context, movementID, userID int64) (*domain.ExerciseLog, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+logColumns+` FROM exercise_logs
		 WHERE movement_id = ? AND user_id = ?
		 ORDER BY date DESC, id DESC LIMIT 1`,
		movementID, userID)
	l, err := scanLog(row.Scan)
	if errors.Is(err, repository.ErrNotFound) {
		// No history yet is a normal state, not an error.
		return nil, nil
	}
	return l, err
}

func (r *sqliteLogRepository) Update(ctx context.Context, l *domain.ExerciseLog) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE exercise_logs SET weight = ?, reps = ?, date = ? WHERE id = ?`,
		l.Weight, l.Reps, formatTime(l.Date), l.ID)
	if err != nil {
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

func (r *sqliteLogRepository) Delete(ctx context.Context, logID int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM exercise_logs WHERE id = ?`, logID)
	return err
}
