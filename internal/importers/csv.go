package importers

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"gymdesk/internal/entities"
)

// ParseClientsCSV parses a clients CSV export. Returns the parsed rows,
// per-row diagnostics, and a fatal error only when the file itself is
// unreadable (missing header, no required columns). Rows that fail to
// parse are reported and skipped, never aborting the whole import.
func ParseClientsCSV(r io.Reader) ([]entities.Client, []string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	index, err := readHeader(reader, "first_name", "last_name")
	if err != nil {
		return nil, nil, err
	}

	var rows []entities.Client
	var rowErrors []string

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			rowErrors = append(rowErrors, readError(err))
			continue
		}
		lineNum := recordLine(reader)

		c := entities.Client{
			FirstName:        fieldValue(record, index, "first_name"),
			LastName:         fieldValue(record, index, "last_name"),
			Email:            fieldValue(record, index, "email"),
			Phone:            fieldValue(record, index, "phone"),
			BirthDate:        fieldValue(record, index, "birth_date"),
			RegistrationDate: fieldValue(record, index, "registration_date"),
			Notes:            fieldValue(record, index, "notes"),
		}
		if c.FirstName == "" || c.LastName == "" {
			rowErrors = append(rowErrors, fmt.Sprintf("line %d: first and last name are required", lineNum))
			continue
		}
		rows = append(rows, c)
	}

	return rows, rowErrors, nil
}

// ParseClassesCSV parses a gym class CSV export with the same
// partial-success policy as ParseClientsCSV.
func ParseClassesCSV(r io.Reader) ([]entities.GymClass, []string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	index, err := readHeader(reader, "name", "trainer", "max_participants")
	if err != nil {
		return nil, nil, err
	}

	var rows []entities.GymClass
	var rowErrors []string

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			rowErrors = append(rowErrors, readError(err))
			continue
		}
		lineNum := recordLine(reader)

		gc := entities.GymClass{
			Name:        fieldValue(record, index, "name"),
			Trainer:     fieldValue(record, index, "trainer"),
			Date:        fieldValue(record, index, "date"),
			Time:        fieldValue(record, index, "time"),
			Description: fieldValue(record, index, "description"),
		}

		maxRaw := fieldValue(record, index, "max_participants")
		max, err := strconv.Atoi(maxRaw)
		if err != nil {
			rowErrors = append(rowErrors, fmt.Sprintf("line %d: max_participants %q is not a number", lineNum, maxRaw))
			continue
		}
		gc.MaxParticipants = max

		if durRaw := fieldValue(record, index, "duration"); durRaw != "" {
			dur, err := strconv.Atoi(durRaw)
			if err != nil {
				rowErrors = append(rowErrors, fmt.Sprintf("line %d: duration %q is not a number", lineNum, durRaw))
				continue
			}
			gc.Duration = dur
		}

		rows = append(rows, gc)
	}

	return rows, rowErrors, nil
}

// recordLine reports the input line the most recently read record starts
// on. The reader tracks physical lines itself, so quoted fields spanning
// newlines do not skew the count.
func recordLine(reader *csv.Reader) int {
	line, _ := reader.FieldPos(0)
	return line
}

// readError formats a failed Read with the line the parser flagged.
func readError(err error) string {
	var parseErr *csv.ParseError
	if errors.As(err, &parseErr) {
		return fmt.Sprintf("line %d: %v", parseErr.Line, parseErr.Err)
	}
	return err.Error()
}

// readHeader reads the header row and builds a column index, verifying
// the required columns exist.
func readHeader(reader *csv.Reader, required ...string) (map[string]int, error) {
	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	index := make(map[string]int)
	for i, h := range header {
		index[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, col := range required {
		if _, ok := index[col]; !ok {
			return nil, fmt.Errorf("missing required header: %s", col)
		}
	}
	return index, nil
}

func fieldValue(record []string, index map[string]int, column string) string {
	i, ok := index[column]
	if !ok || i >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[i])
}
