package memberships

import (
	"errors"

	"gymdesk/internal/database"
	"gymdesk/internal/entities"
)

// Repository is the membership DAO.
type Repository struct {
	db *database.Database
}

func NewRepository(db *database.Database) *Repository {
	return &Repository{db: db}
}

// All returns every membership, newest start date first.
func (r *Repository) All() ([]entities.Membership, error) {
	var memberships []entities.Membership
	err := r.db.Select("list memberships", &memberships,
		`SELECT * FROM memberships ORDER BY start_date DESC`)
	return memberships, err
}

func (r *Repository) ByID(id int64) (*entities.Membership, error) {
	var m entities.Membership
	err := r.db.Get("get membership", &m, `SELECT * FROM memberships WHERE id = ?`, id)
	if errors.Is(err, database.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *Repository) ForClient(clientID int64) ([]entities.Membership, error) {
	var memberships []entities.Membership
	err := r.db.Select("list client memberships", &memberships,
		`SELECT * FROM memberships WHERE client_id = ? ORDER BY start_date DESC`, clientID)
	return memberships, err
}

func (r *Repository) Insert(m *entities.Membership) (int64, error) {
	id, err := r.db.ExecReturningID("insert membership",
		`INSERT INTO memberships (client_id, type, start_date, end_date, price, is_active)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		m.ClientID, m.Type, m.StartDate, m.EndDate, m.Price, m.IsActive)
	if err != nil {
		return 0, err
	}
	m.ID = id
	return id, nil
}

func (r *Repository) Update(m *entities.Membership) error {
	affected, err := r.db.Exec("update membership",
		`UPDATE memberships
		 SET client_id = ?, type = ?, start_date = ?, end_date = ?, price = ?, is_active = ?
		 WHERE id = ?`,
		m.ClientID, m.Type, m.StartDate, m.EndDate, m.Price, m.IsActive, m.ID)
	if err != nil {
		return err
	}
	if affected == 0 {
		return database.ErrNotFound
	}
	return nil
}

func (r *Repository) Delete(id int64) error {
	affected, err := r.db.Exec("delete membership", `DELETE FROM memberships WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if affected == 0 {
		return database.ErrNotFound
	}
	return nil
}

// HasActive reports whether the client holds a membership that is active
// and whose [start, end] range contains the given day.
func (r *Repository) HasActive(clientID int64, today string) (bool, error) {
	count, err := r.db.ScalarInt64("check active membership",
		`SELECT COUNT(*) FROM memberships
		 WHERE client_id = ? AND is_active = 1 AND start_date <= ? AND end_date >= ?`,
		clientID, today, today)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
