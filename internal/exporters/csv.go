package exporters

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"gymdesk/internal/entities"
)

// CSV headers, also consumed by the importers.
var (
	ClientCSVHeader      = []string{"id", "first_name", "last_name", "email", "phone", "birth_date", "registration_date", "notes"}
	MembershipCSVHeader  = []string{"id", "client_id", "type", "start_date", "end_date", "price", "is_active"}
	ClassCSVHeader       = []string{"id", "name", "trainer", "max_participants", "date", "time", "duration", "description"}
	ReservationCSVHeader = []string{"id", "client_id", "class_id", "reservation_date", "status"}
)

// WriteClientsCSV writes a header row followed by one record per client.
// encoding/csv handles RFC 4180 quoting of embedded commas, quotes and
// newlines.
func WriteClientsCSV(w io.Writer, clients []entities.Client) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(ClientCSVHeader); err != nil {
		return fmt.Errorf("write clients csv: %w", err)
	}
	for _, c := range clients {
		record := []string{
			strconv.FormatInt(c.ID, 10),
			c.FirstName, c.LastName, c.Email, c.Phone,
			c.BirthDate, c.RegistrationDate, c.Notes,
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write clients csv: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

func WriteMembershipsCSV(w io.Writer, memberships []entities.Membership) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(MembershipCSVHeader); err != nil {
		return fmt.Errorf("write memberships csv: %w", err)
	}
	for _, m := range memberships {
		active := "0"
		if m.IsActive {
			active = "1"
		}
		record := []string{
			strconv.FormatInt(m.ID, 10),
			strconv.FormatInt(m.ClientID, 10),
			string(m.Type), m.StartDate, m.EndDate,
			strconv.FormatFloat(m.Price, 'f', 2, 64),
			active,
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write memberships csv: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

func WriteClassesCSV(w io.Writer, classes []entities.GymClass) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(ClassCSVHeader); err != nil {
		return fmt.Errorf("write classes csv: %w", err)
	}
	for _, gc := range classes {
		record := []string{
			strconv.FormatInt(gc.ID, 10),
			gc.Name, gc.Trainer,
			strconv.Itoa(gc.MaxParticipants),
			gc.Date, gc.Time,
			strconv.Itoa(gc.Duration),
			gc.Description,
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write classes csv: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

func WriteReservationsCSV(w io.Writer, reservations []entities.Reservation) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(ReservationCSVHeader); err != nil {
		return fmt.Errorf("write reservations csv: %w", err)
	}
	for _, r := range reservations {
		record := []string{
			strconv.FormatInt(r.ID, 10),
			strconv.FormatInt(r.ClientID, 10),
			strconv.FormatInt(r.ClassID, 10),
			r.ReservationDate, r.Status,
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write reservations csv: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}
