package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"cgarcia/trainlog-app/internal/domain"
	"cgarcia/trainlog-app/internal/repository"
)

// sqliteUserRepository implements repository.UserRepository
type sqliteUserRepository struct {
	db *sql.DB
}

// NewUserRepository creates a new User repository backed by SQLite.
func NewUserRepository(db *sql.DB) repository.UserRepository {
	return &sqliteUserRepository{db: db}
}

const userColumns = "id, email, password, name, role, manager_id"

func scanUser(row *sql.Row) (*domain.User, error) {
	var u domain.User
	var managerID sql.NullInt64
	err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Name, &u.Role, &managerID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	u.ManagerID = nullInt(managerID)
	return &u, nil
}

func (r *sqliteUserRepository) Create(ctx context.Context, user *domain.User) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO users (email, password, name, role, manager_id) VALUES (?, ?, ?, ?, ?)`,
		user.Email, user.PasswordHash, user.Name, user.Role, user.ManagerID)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, repository.ErrDuplicate
		}
		return 0, err
	}
	return res.LastInsertId()
}

func (r *sqliteUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = ?`, email)
	return scanUser(row)
}

func (r *sqliteUserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = ?`, id)
	return scanUser(row)
}

func (r *sqliteUserRepository) GetManagedClient(ctx context.Context, userID, managerID int64) (*domain.User, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = ? AND manager_id = ? AND role = ?`,
		userID, managerID, domain.RoleUser)
	return scanUser(row)
}

func (r *sqliteUserRepository) ListClientsByManager(ctx context.Context, managerID int64) ([]domain.User, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, email, name, role, manager_id FROM users WHERE manager_id = ? ORDER BY id`,
		managerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var clients []domain.User
	for rows.Next() {
		var u domain.User
		var managerID sql.NullInt64
		if err := rows.Scan(&u.ID, &u.Email, &u.Name, &u.Role, &managerID); err != nil {
			return nil, err
		}
		u.ManagerID = nullInt(managerID)
		clients = append(clients, u)
	}
	return clients, rows.Err()
}

// ListClientSummaries walks the roster once, reusing one prepared statement
// per derived field instead of compiling a query per client.
func (r *sqliteUserRepository) ListClientSummaries(ctx context.Context, managerID int64) ([]domain.ClientSummary, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, email, name FROM users WHERE manager_id = ? ORDER BY id`, managerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var summaries []domain.ClientSummary
	for rows.Next() {
		var s domain.ClientSummary
		if err := rows.Scan(&s.ID, &s.Email, &s.Name); err != nil {
			return nil, err
		}
		summaries = append(summaries, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	countStmt, err := r.db.PrepareContext(ctx,
		`SELECT COUNT(*) FROM workouts WHERE user_id = ? AND archived_at IS NULL`)
	if err != nil {
		return nil, err
	}
	defer countStmt.Close()

	lastStmt, err := r.db.PrepareContext(ctx,
		`SELECT MAX(date) FROM exercise_logs WHERE user_id = ?`)
	if err != nil {
		return nil, err
	}
	defer lastStmt.Close()

	for i := range summaries {
		if err := countStmt.QueryRowContext(ctx, summaries[i].ID).Scan(&summaries[i].WorkoutsCount); err != nil {
			return nil, err
		}
		var last sql.NullString
		if err := lastStmt.QueryRowContext(ctx, summaries[i].ID).Scan(&last); err != nil {
			return nil, err
		}
		if last.Valid {
			v := last.String
			summaries[i].LastActivity = &v
		}
	}
	return summaries, nil
}

func (r *sqliteUserRepository) Update(ctx context.Context, user *domain.User) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE users SET email = ?, password = ?, name = ? WHERE id = ?`,
		user.Email, user.PasswordHash, user.Name, user.ID)
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

// DeleteClientCascade is the one true hard-delete path. The order matters:
// workouts must go before movements because workout_exercises rows still
// reference movements until the workout cascade removes them.
func (r *sqliteUserRepository) DeleteClientCascade(ctx context.Context, userID int64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	steps := []string{
		`DELETE FROM exercise_logs WHERE user_id = ?`,
		`DELETE FROM workouts WHERE user_id = ?`,
		`DELETE FROM mesocycles WHERE user_id = ?`,
		`DELETE FROM movements WHERE user_id = ?`,
		`DELETE FROM users WHERE id = ?`,
	}
	for _, q := range steps {
		if _, err := tx.ExecContext(ctx, q, userID); err != nil {
			return fmt.Errorf("client cascade delete: %w", err)
		}
	}
	return tx.Commit()
}
