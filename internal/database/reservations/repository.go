package reservations

import (
	"errors"

	"gymdesk/internal/database"
	"gymdesk/internal/entities"
)

// Repository is the reservation DAO.
type Repository struct {
	db *database.Database
}

func NewRepository(db *database.Database) *Repository {
	return &Repository{db: db}
}

// All returns every reservation, newest first.
func (r *Repository) All() ([]entities.Reservation, error) {
	var reservations []entities.Reservation
	err := r.db.Select("list reservations", &reservations,
		`SELECT * FROM reservations ORDER BY reservation_date DESC`)
	return reservations, err
}

func (r *Repository) ByID(id int64) (*entities.Reservation, error) {
	var res entities.Reservation
	err := r.db.Get("get reservation", &res, `SELECT * FROM reservations WHERE id = ?`, id)
	if errors.Is(err, database.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &res, nil
}

// ForClient returns a client's reservations regardless of status.
func (r *Repository) ForClient(clientID int64) ([]entities.Reservation, error) {
	var reservations []entities.Reservation
	err := r.db.Select("list client reservations", &reservations,
		`SELECT * FROM reservations WHERE client_id = ? ORDER BY reservation_date DESC`, clientID)
	return reservations, err
}

// ForClass returns the confirmed reservations of a class.
func (r *Repository) ForClass(classID int64) ([]entities.Reservation, error) {
	var reservations []entities.Reservation
	err := r.db.Select("list class reservations", &reservations,
		`SELECT * FROM reservations WHERE class_id = ? AND status = ? ORDER BY reservation_date DESC`,
		classID, entities.ReservationConfirmed)
	return reservations, err
}

// CountConfirmed returns the number of confirmed reservations for a class.
func (r *Repository) CountConfirmed(classID int64) (int, error) {
	count, err := r.db.ScalarInt64("count class reservations",
		`SELECT COUNT(*) FROM reservations WHERE class_id = ? AND status = ?`,
		classID, entities.ReservationConfirmed)
	return int(count), err
}

// Insert stores a reservation. The timestamp defaults to now and the
// status to confirmed when unset.
func (r *Repository) Insert(res *entities.Reservation) (int64, error) {
	if res.ReservationDate == "" {
		res.ReservationDate = entities.Now()
	}
	if res.Status == "" {
		res.Status = entities.ReservationConfirmed
	}
	id, err := r.db.ExecReturningID("insert reservation",
		`INSERT INTO reservations (client_id, class_id, reservation_date, status)
		 VALUES (?, ?, ?, ?)`,
		res.ClientID, res.ClassID, res.ReservationDate, res.Status)
	if err != nil {
		return 0, err
	}
	res.ID = id
	return id, nil
}

func (r *Repository) Update(res *entities.Reservation) error {
	affected, err := r.db.Exec("update reservation",
		`UPDATE reservations
		 SET client_id = ?, class_id = ?, reservation_date = ?, status = ?
		 WHERE id = ?`,
		res.ClientID, res.ClassID, res.ReservationDate, res.Status, res.ID)
	if err != nil {
		return err
	}
	if affected == 0 {
		return database.ErrNotFound
	}
	return nil
}

func (r *Repository) Delete(id int64) error {
	affected, err := r.db.Exec("delete reservation", `DELETE FROM reservations WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if affected == 0 {
		return database.ErrNotFound
	}
	return nil
}
