package importers

import (
	"fmt"
	"io"

	"github.com/google/uuid"

	"gymdesk/internal/entities"
)

// Imports cover clients and classes. Membership and reservation rows
// reference client and class ids that differ between stores, so loading
// them would need an id-remapping step across batches; both stay
// export-only until that exists.

// ImportResult summarizes a bulk import. Imports use the partial-success
// policy uniformly: rows that fail validation or storage are reported in
// Errors while the rest land, so one bad row never discards a whole file.
type ImportResult struct {
	BatchID  string   `json:"batch_id"`
	Imported int      `json:"imported"`
	Errors   []string `json:"errors,omitempty"`
}

// ClientCreator persists one client; implemented by the client service.
type ClientCreator interface {
	Create(c *entities.Client) (int64, error)
}

// ClassCreator persists one gym class; implemented by the class service.
type ClassCreator interface {
	CreateClass(gc *entities.GymClass) (int64, error)
}

// ImportClientsCSV parses and persists a clients CSV file.
func ImportClientsCSV(svc ClientCreator, r io.Reader) (ImportResult, error) {
	rows, rowErrors, err := ParseClientsCSV(r)
	if err != nil {
		return ImportResult{}, err
	}
	return importClients(svc, rows, rowErrors), nil
}

// ImportClientsJSON parses and persists a clients JSON export.
func ImportClientsJSON(svc ClientCreator, r io.Reader) (ImportResult, error) {
	rows, err := ParseClientsJSON(r)
	if err != nil {
		return ImportResult{}, err
	}
	return importClients(svc, rows, nil), nil
}

func importClients(svc ClientCreator, rows []entities.Client, rowErrors []string) ImportResult {
	result := ImportResult{BatchID: uuid.NewString(), Errors: rowErrors}
	for i := range rows {
		c := rows[i]
		c.ID = 0 // ids are assigned by the target store
		if _, err := svc.Create(&c); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("client %s %s: %v", c.FirstName, c.LastName, err))
			continue
		}
		result.Imported++
	}
	return result
}

// ImportClassesCSV parses and persists a classes CSV file.
func ImportClassesCSV(svc ClassCreator, r io.Reader) (ImportResult, error) {
	rows, rowErrors, err := ParseClassesCSV(r)
	if err != nil {
		return ImportResult{}, err
	}
	return importClasses(svc, rows, rowErrors), nil
}

// ImportClassesJSON parses and persists a classes JSON export.
func ImportClassesJSON(svc ClassCreator, r io.Reader) (ImportResult, error) {
	rows, err := ParseClassesJSON(r)
	if err != nil {
		return ImportResult{}, err
	}
	return importClasses(svc, rows, nil), nil
}

func importClasses(svc ClassCreator, rows []entities.GymClass, rowErrors []string) ImportResult {
	result := ImportResult{BatchID: uuid.NewString(), Errors: rowErrors}
	for i := range rows {
		gc := rows[i]
		gc.ID = 0
		if _, err := svc.CreateClass(&gc); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("class %s: %v", gc.Name, err))
			continue
		}
		result.Imported++
	}
	return result
}
