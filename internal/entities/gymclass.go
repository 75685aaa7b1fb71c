package entities

// GymClass is a scheduled training session. Capacity is not stored on the
// row; the confirmed reservation count determines the seats taken.
type GymClass struct {
	ID              int64  `db:"id" json:"id"`
	Name            string `db:"name" json:"name"`
	Trainer         string `db:"trainer" json:"trainer"`
	MaxParticipants int    `db:"max_participants" json:"max_participants"`
	Date            string `db:"date" json:"date"`
	Time            string `db:"time" json:"time"`
	Duration        int    `db:"duration" json:"duration"`
	Description     string `db:"description" json:"description"`
}
