package exporters

import (
	"encoding/json"
	"io"

	"gymdesk/internal/entities"
)

// JSON exports are one top-level object holding a single array key named
// after the entity set. String escaping is encoding/json's.

func WriteClientsJSON(w io.Writer, clients []entities.Client) error {
	return writeJSON(w, "clients", clients)
}

func WriteMembershipsJSON(w io.Writer, memberships []entities.Membership) error {
	return writeJSON(w, "memberships", memberships)
}

func WriteClassesJSON(w io.Writer, classes []entities.GymClass) error {
	return writeJSON(w, "gym_classes", classes)
}

func WriteReservationsJSON(w io.Writer, reservations []entities.Reservation) error {
	return writeJSON(w, "reservations", reservations)
}

func writeJSON[T any](w io.Writer, key string, items []T) error {
	if items == nil {
		items = []T{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(map[string][]T{key: items})
}
