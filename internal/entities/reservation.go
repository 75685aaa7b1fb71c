package entities

const (
	ReservationConfirmed = "confirmed"
	ReservationCancelled = "cancelled"
)

// Reservation links a client to a class. Cancelling never deletes the row;
// the status flips to cancelled so attendance history survives.
type Reservation struct {
	ID              int64  `db:"id" json:"id"`
	ClientID        int64  `db:"client_id" json:"client_id"`
	ClassID         int64  `db:"class_id" json:"class_id"`
	ReservationDate string `db:"reservation_date" json:"reservation_date"`
	Status          string `db:"status" json:"status"`
}

func (r Reservation) IsConfirmed() bool {
	return r.Status == ReservationConfirmed
}
