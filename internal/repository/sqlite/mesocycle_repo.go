package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"cgarcia/trainlog-app/internal/domain"
	"cgarcia/trainlog-app/internal/repository"
)

// sqliteMesocycleRepository implements repository.MesocycleRepository
type sqliteMesocycleRepository struct {
	db *sql.DB
}

// NewMesocycleRepository creates a new Mesocycle repository backed by SQLite.
func NewMesocycleRepository(db *sql.DB) repository.MesocycleRepository {
	return &sqliteMesocycleRepository{db: db}
}

const mesocycleColumns = "id, name, goal, start_date, end_date, status, user_id"

func scanMesocycle(row *sql.Row) (*domain.Mesocycle, error) {
	var m domain.Mesocycle
	err := row.Scan(&m.ID, &m.Name, &m.Goal, &m.StartDate, &m.EndDate, &m.Status, &m.UserID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &m, nil
}

func (r *sqliteMesocycleRepository) Create(ctx context.Context, m *domain.Mesocycle) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO mesocycles (name, goal, start_date, end_date, status, user_id)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		m.Name, m.Goal, m.StartDate, m.EndDate, m.Status, m.UserID)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r *sqliteMesocycleRepository) ListByUser(ctx context.Context, userID int64) ([]domain.Mesocycle, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+mesocycleColumns+` FROM mesocycles
		 WHERE user_id = ?
		 ORDER BY start_date DESC, id DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	mesocycles := []domain.Mesocycle{}
	for rows.Next() {
		var m domain.Mesocycle
		if err := rows.Scan(&m.ID, &m.Name, &m.Goal, &m.StartDate, &m.EndDate, &m.Status, &m.UserID); err != nil {
			return nil, err
		}
		mesocycles = append(mesocycles, m)
	}
	return mesocycles, rows.Err()
}

func (r *sqliteMesocycleRepository) GetForManager(ctx context.Context, id, managerID int64) (*domain.Mesocycle, error) {
	return scanMesocycle(r.db.QueryRowContext(ctx,
		`SELECT m.id, m.name, m.goal, m.start_date, m.end_date, m.status, m.user_id
		 FROM mesocycles m
		 JOIN users u ON u.id = m.user_id
		 WHERE m.id = ? AND u.manager_id = ? AND u.role = ?`,
		id, managerID, domain.RoleUser))
}

func (r *sqliteMesocycleRepository) GetForUser(ctx context.Context, id, userID int64) (*domain.Mesocycle, error) {
	return scanMesocycle(r.db.QueryRowContext(ctx,
		`SELECT `+mesocycleColumns+` FROM mesocycles WHERE id = ? AND user_id = ?`,
		id, userID))
}

func (r *sqliteMesocycleRepository) Update(ctx context.Context, m *domain.Mesocycle) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE mesocycles SET name = ?, goal = ?, start_date = ?, end_date = ?, status = ? WHERE id = ?`,
		m.Name, m.Goal, m.StartDate, m.EndDate, m.Status, m.ID)
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

// DeleteDetachingWorkouts detaches (never deletes) the block's workouts, then
// removes the block. Both steps commit together or not at all.
func (r *sqliteMesocycleRepository) DeleteDetachingWorkouts(ctx context.Context, id int64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`UPDATE workouts SET mesocycle_id = NULL WHERE mesocycle_id = ?`, id); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx,
		`DELETE FROM mesocycles WHERE id = ?`, id); err != nil {
		return err
	}
	return tx.Commit()
}
