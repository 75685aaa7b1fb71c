package clients

import (
	"errors"

	"gymdesk/internal/database"
	"gymdesk/internal/entities"
)

// Repository is the client DAO. It owns the SQL shape for the clients
// table; every statement is parameterized.
type Repository struct {
	db *database.Database
}

func NewRepository(db *database.Database) *Repository {
	return &Repository{db: db}
}

// All returns every client ordered by last then first name.
func (r *Repository) All() ([]entities.Client, error) {
	var clients []entities.Client
	err := r.db.Select("list clients", &clients,
		`SELECT * FROM clients ORDER BY last_name, first_name`)
	return clients, err
}

// ByID returns the client with the given id, or (nil, nil) when absent.
func (r *Repository) ByID(id int64) (*entities.Client, error) {
	var c entities.Client
	err := r.db.Get("get client", &c, `SELECT * FROM clients WHERE id = ?`, id)
	if errors.Is(err, database.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// Insert stores a new client and returns its id. The registration date
// defaults to today when absent.
func (r *Repository) Insert(c *entities.Client) (int64, error) {
	if c.RegistrationDate == "" {
		c.RegistrationDate = entities.Today()
	}
	id, err := r.db.ExecReturningID("insert client",
		`INSERT INTO clients (first_name, last_name, email, phone, birth_date, registration_date, notes)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		c.FirstName, c.LastName, c.Email, c.Phone, c.BirthDate, c.RegistrationDate, c.Notes)
	if err != nil {
		return 0, err
	}
	c.ID = id
	return id, nil
}

// Update rewrites every mutable field. Returns database.ErrNotFound when
// no row has the given id; storage failures surface as StorageError.
func (r *Repository) Update(c *entities.Client) error {
	affected, err := r.db.Exec("update client",
		`UPDATE clients
		 SET first_name = ?, last_name = ?, email = ?, phone = ?, birth_date = ?, registration_date = ?, notes = ?
		 WHERE id = ?`,
		c.FirstName, c.LastName, c.Email, c.Phone, c.BirthDate, c.RegistrationDate, c.Notes, c.ID)
	if err != nil {
		return err
	}
	if affected == 0 {
		return database.ErrNotFound
	}
	return nil
}

// Delete removes a client. Memberships and reservations cascade.
func (r *Repository) Delete(id int64) error {
	affected, err := r.db.Exec("delete client", `DELETE FROM clients WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if affected == 0 {
		return database.ErrNotFound
	}
	return nil
}

// Search matches the keyword as a substring of first name, last name,
// email or phone.
func (r *Repository) Search(keyword string) ([]entities.Client, error) {
	pattern := "%" + keyword + "%"
	var clients []entities.Client
	err := r.db.Select("search clients", &clients,
		`SELECT * FROM clients
		 WHERE first_name LIKE ? OR last_name LIKE ? OR email LIKE ? OR phone LIKE ?
		 ORDER BY last_name, first_name`,
		pattern, pattern, pattern, pattern)
	return clients, err
}
