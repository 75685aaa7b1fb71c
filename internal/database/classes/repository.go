package classes

import (
	"errors"

	"gymdesk/internal/database"
	"gymdesk/internal/entities"
)

// Repository is the gym class DAO.
type Repository struct {
	db *database.Database
}

func NewRepository(db *database.Database) *Repository {
	return &Repository{db: db}
}

// All returns every class in schedule order.
func (r *Repository) All() ([]entities.GymClass, error) {
	var classes []entities.GymClass
	err := r.db.Select("list classes", &classes,
		`SELECT * FROM gym_classes ORDER BY date, time`)
	return classes, err
}

func (r *Repository) ByID(id int64) (*entities.GymClass, error) {
	var gc entities.GymClass
	err := r.db.Get("get class", &gc, `SELECT * FROM gym_classes WHERE id = ?`, id)
	if errors.Is(err, database.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &gc, nil
}

// OnDate returns the classes scheduled for one day, ordered by time.
func (r *Repository) OnDate(date string) ([]entities.GymClass, error) {
	var classes []entities.GymClass
	err := r.db.Select("list classes by date", &classes,
		`SELECT * FROM gym_classes WHERE date = ? ORDER BY time`, date)
	return classes, err
}

func (r *Repository) Insert(gc *entities.GymClass) (int64, error) {
	id, err := r.db.ExecReturningID("insert class",
		`INSERT INTO gym_classes (name, trainer, max_participants, date, time, duration, description)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		gc.Name, gc.Trainer, gc.MaxParticipants, gc.Date, gc.Time, gc.Duration, gc.Description)
	if err != nil {
		return 0, err
	}
	gc.ID = id
	return id, nil
}

func (r *Repository) Update(gc *entities.GymClass) error {
	affected, err := r.db.Exec("update class",
		`UPDATE gym_classes
		 SET name = ?, trainer = ?, max_participants = ?, date = ?, time = ?, duration = ?, description = ?
		 WHERE id = ?`,
		gc.Name, gc.Trainer, gc.MaxParticipants, gc.Date, gc.Time, gc.Duration, gc.Description, gc.ID)
	if err != nil {
		return err
	}
	if affected == 0 {
		return database.ErrNotFound
	}
	return nil
}

func (r *Repository) Delete(id int64) error {
	affected, err := r.db.Exec("delete class", `DELETE FROM gym_classes WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if affected == 0 {
		return database.ErrNotFound
	}
	return nil
}
