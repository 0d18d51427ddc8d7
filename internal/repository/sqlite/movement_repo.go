package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"cgarcia/trainlog-app/internal/domain"
	"cgarcia/trainlog-app/internal/repository"
)

// sqliteMovementRepository implements repository.MovementRepository
type sqliteMovementRepository struct {
	db *sql.DB
}

// NewMovementRepository creates a new Movement repository backed by SQLite.
func NewMovementRepository(db *sql.DB) repository.MovementRepository {
	return &sqliteMovementRepository{db: db}
}

func (r *sqliteMovementRepository) Create(ctx context.Context, movement *domain.Movement) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO movements (name, name_normalized, user_id) VALUES (?, ?, ?)`,
		movement.Name, movement.NameNormalized, movement.UserID)
	if err != nil {
		if isUniqueViolation(err) {
			// A concurrent caller created the same normalized name first.
			return 0, repository.ErrDuplicate
		}
		return 0, err
	}
	return res.LastInsertId()
}

func (r *sqliteMovementRepository) GetByNormalized(ctx context.Context, userID int64, normalized string) (*domain.Movement, error) {
	return r.scanOne(r.db.QueryRowContext(ctx,
		`SELECT id, name, name_normalized, user_id FROM movements WHERE user_id = ? AND name_normalized = ?`,
		userID, normalized))
}

func (r *sqliteMovementRepository) GetByIDForUser(ctx context.Context, id, userID int64) (*domain.Movement, error) {
	return r.scanOne(r.db.QueryRowContext(ctx,
		`SELECT id, name, name_normalized, user_id FROM movements WHERE id = ? AND user_id = ?`,
		id, userID))
}

func (r *sqliteMovementRepository) scanOne(row *sql.Row) (*domain.Movement, error) {
	var m domain.Movement
	err := row.Scan(&m.ID, &m.Name, &m.NameNormalized, &m.UserID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &m, nil
}

// escapeLike neutralizes LIKE metacharacters so user queries always match
// literally, paired with an ESCAPE '\' clause.
func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}

func (r *sqliteMovementRepository) Suggest(ctx context.Context, userID int64, normalizedQuery string, limit int) ([]domain.Movement, error) {
	var rows *sql.Rows
	var err error
	if normalizedQuery == "" {
		rows, err = r.db.QueryContext(ctx,
			`SELECT id, name, name_normalized, user_id FROM movements WHERE user_id = ? ORDER BY name ASC LIMIT ?`,
			userID, limit)
	} else {
		rows, err = r.db.QueryContext(ctx,
			`SELECT id, name, name_normalized, user_id FROM movements
			 WHERE user_id = ? AND name_normalized LIKE ? ESCAPE '\'
			 ORDER BY name ASC LIMIT ?`,
			userID, "%"+escapeLike(normalizedQuery)+"%", limit)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	movements := []domain.Movement{}
	for rows.Next() {
		var m domain.Movement
		if err := rows.Scan(&m.ID, &m.Name, &m.NameNormalized, &m.UserID); err != nil {
			return nil, err
		}
		movements = append(movements, m)
	}
	return movements, rows.Err()
}
