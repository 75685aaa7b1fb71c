package importers

import (
	"encoding/json"
	"fmt"
	"io"

	"gymdesk/internal/entities"
)

// ParseClientsJSON reads an export-format JSON document: one top-level
// object holding a "clients" array.
func ParseClientsJSON(r io.Reader) ([]entities.Client, error) {
	var payload struct {
		Clients []entities.Client `json:"clients"`
	}
	if err := json.NewDecoder(r).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to parse clients JSON: %w", err)
	}
	return payload.Clients, nil
}

// ParseClassesJSON reads a "gym_classes" export document.
func ParseClassesJSON(r io.Reader) ([]entities.GymClass, error) {
	var payload struct {
		Classes []entities.GymClass `json:"gym_classes"`
	}
	if err := json.NewDecoder(r).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to parse classes JSON: %w", err)
	}
	return payload.Classes, nil
}
