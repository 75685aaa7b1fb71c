package history

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"gymdesk/internal/database"
	historydb "gymdesk/internal/database/history"
	"gymdesk/internal/entities"
)

// ErrNothingToUndo is reported when UndoLast runs against an empty log.
var ErrNothingToUndo = errors.New("nothing to undo")

// Service is the change-history engine. It is stateless between calls,
// operating purely on the appended log: every mutation leaves one entry,
// and undo reverses entries by dispatching on their kind.
type Service struct {
	repo *historydb.Repository
	db   *database.Database
}

func NewService(repo *historydb.Repository, db *database.Database) *Service {
	return &Service{repo: repo, db: db}
}

// Record appends one log entry for a mutation and returns its id. Failures
// are returned but callers are expected to continue: history capture must
// never block a primary mutation.
func (s *Service) Record(kind entities.OperationKind, table string, recordID int64, before, after any, description string) (int64, error) {
	entry := &entities.LogEntry{
		Kind:        kind,
		TableName:   table,
		RecordID:    recordID,
		Before:      Snapshot(before),
		After:       Snapshot(after),
		Description: description,
	}
	return s.repo.Append(entry)
}

// UndoLast reverses the most recent log entry. Returns ErrNothingToUndo
// when the log is empty.
func (s *Service) UndoLast() error {
	latest, err := s.repo.Latest()
	if err != nil {
		return err
	}
	if latest == nil {
		return ErrNothingToUndo
	}
	return s.undoEntry(latest)
}

// Undo reverses the log entry with the given id.
func (s *Service) Undo(id int64) error {
	entry, err := s.repo.ByID(id)
	if err != nil {
		return err
	}
	if entry == nil {
		return database.ErrNotFound
	}
	return s.undoEntry(entry)
}

func (s *Service) undoEntry(entry *entities.LogEntry) error {
	if err := s.applyUndo(entry); err != nil {
		return err
	}
	// The undo is itself auditable: before/after swapped, never chained
	// automatically into further undos.
	undoLog := &entities.LogEntry{
		Kind:        entities.OpUndo,
		TableName:   entry.TableName,
		RecordID:    entry.RecordID,
		Before:      entry.After,
		After:       entry.Before,
		Description: fmt.Sprintf("undo of operation %d (%s)", entry.ID, entry.Kind),
	}
	if _, err := s.repo.Append(undoLog); err != nil {
		log.Warn().Err(err).Int64("entry_id", entry.ID).Msg("failed to log undo")
	}
	return nil
}

// applyUndo reverses a single entry: INSERT by deleting the record, UPDATE
// by restoring every field from the pre-image, DELETE by re-inserting the
// pre-image under its original id, UNDO by reapplying its pre-image.
// Table and column names are validated against the known schema before
// entering generated SQL; values are always bound as parameters.
func (s *Service) applyUndo(entry *entities.LogEntry) error {
	cols, ok := database.TableColumns(entry.TableName)
	if !ok {
		return fmt.Errorf("table %q is not an undo target", entry.TableName)
	}

	switch entry.Kind {
	case entities.OpInsert:
		return s.deleteRecord(entry)

	case entities.OpUpdate:
		return s.restoreFields(entry, cols)

	case entities.OpDelete:
		return s.reinsertRecord(entry, cols)

	case entities.OpUndo:
		// An UNDO entry carries swapped images, so reversing it means
		// bringing its pre-image back. The image shapes identify which
		// primitive the earlier undo performed.
		switch {
		case entry.Before != "" && entry.After == "":
			return s.reinsertRecord(entry, cols)
		case entry.Before != "" && entry.After != "":
			return s.restoreFields(entry, cols)
		case entry.Before == "" && entry.After != "":
			return s.deleteRecord(entry)
		default:
			return fmt.Errorf("operation %d has no images to undo", entry.ID)
		}

	default:
		return fmt.Errorf("cannot undo %s operations", entry.Kind)
	}
}

// deleteRecord removes the entry's record, reversing an insertion.
func (s *Service) deleteRecord(entry *entities.LogEntry) error {
	affected, err := s.db.Exec("undo insert",
		fmt.Sprintf("DELETE FROM %s WHERE id = ?", entry.TableName), entry.RecordID)
	if err != nil {
		return err
	}
	if affected == 0 {
		return database.ErrNotFound
	}
	return nil
}

// restoreFields writes every whitelisted column of the entry's pre-image
// back onto the record, reversing an update.
func (s *Service) restoreFields(entry *entities.LogEntry, cols []string) error {
	fields, err := decodeSnapshot(entry.Before)
	if err != nil {
		return err
	}
	var assignments []string
	var args []any
	for _, col := range cols {
		if col == "id" {
			continue
		}
		value, present := fields[col]
		if !present {
			continue
		}
		assignments = append(assignments, col+" = ?")
		args = append(args, value)
	}
	if len(assignments) == 0 {
		return fmt.Errorf("pre-image of operation %d has no restorable fields", entry.ID)
	}
	args = append(args, entry.RecordID)
	query := fmt.Sprintf("UPDATE %s SET %s WHERE id = ?",
		entry.TableName, strings.Join(assignments, ", "))
	affected, err := s.db.Exec("undo update", query, args...)
	if err != nil {
		return err
	}
	if affected == 0 {
		return database.ErrNotFound
	}
	return nil
}

// reinsertRecord puts the entry's pre-image back under its original id,
// reversing a deletion.
func (s *Service) reinsertRecord(entry *entities.LogEntry, cols []string) error {
	fields, err := decodeSnapshot(entry.Before)
	if err != nil {
		return err
	}
	if _, present := fields["id"]; !present {
		fields["id"] = entry.RecordID
	}
	var names []string
	var placeholders []string
	var args []any
	for _, col := range cols {
		value, present := fields[col]
		if !present {
			continue
		}
		names = append(names, col)
		placeholders = append(placeholders, "?")
		args = append(args, value)
	}
	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		entry.TableName, strings.Join(names, ", "), strings.Join(placeholders, ", "))
	_, err = s.db.Exec("undo delete", query, args...)
	return err
}

// CreateRestorePoint appends a named marker recording the current log head.
func (s *Service) CreateRestorePoint(name, description string) (int64, error) {
	lastID, err := s.repo.MaxID()
	if err != nil {
		return 0, err
	}
	point := &entities.RestorePoint{
		Name:        name,
		Description: description,
		LastLogID:   lastID,
	}
	return s.repo.CreatePoint(point)
}

// RestorePoints returns every restore point, newest first.
func (s *Service) RestorePoints() ([]entities.RestorePoint, error) {
	return s.repo.Points()
}

// RestoreToPoint undoes every non-UNDO operation logged after the point,
// most recent first by id, and returns how many were undone. Individual
// failures are logged and skipped. A RESTORE summary entry is appended.
func (s *Service) RestoreToPoint(id int64) (int, error) {
	point, err := s.repo.PointByID(id)
	if err != nil {
		return 0, err
	}
	if point == nil {
		return 0, database.ErrNotFound
	}

	pending, err := s.repo.EntriesAfter(point.LastLogID)
	if err != nil {
		return 0, err
	}

	undone := 0
	for i := range pending {
		entry := &pending[i]
		if err := s.undoEntry(entry); err != nil {
			log.Warn().Err(err).Int64("entry_id", entry.ID).Msg("restore: skipping operation")
			continue
		}
		undone++
	}

	summary := &entities.LogEntry{
		Kind:        entities.OpRestore,
		TableName:   "punkty_przywracania",
		RecordID:    point.ID,
		Description: fmt.Sprintf("restored to point %q: %d of %d operations undone", point.Name, undone, len(pending)),
	}
	if _, err := s.repo.Append(summary); err != nil {
		log.Warn().Err(err).Int64("point_id", point.ID).Msg("failed to log restore summary")
	}
	return undone, nil
}

// History returns log entries most-recent-first, capped at limit when > 0.
func (s *Service) History(limit int) ([]entities.LogEntry, error) {
	return s.repo.Recent(limit)
}

func (s *Service) HistoryForTable(table string, limit int) ([]entities.LogEntry, error) {
	return s.repo.ForTable(table, limit)
}

func (s *Service) HistoryForRecord(table string, recordID int64) ([]entities.LogEntry, error) {
	return s.repo.ForRecord(table, recordID)
}

// PruneOlderThan removes entries beyond the retention window and appends a
// CLEANUP marker. Returns the number of removed entries.
func (s *Service) PruneOlderThan(days int) (int64, error) {
	cutoff := time.Now().AddDate(0, 0, -days).Format(entities.TimestampFormat)
	deleted, err := s.repo.DeleteOlderThan(cutoff)
	if err != nil {
		return 0, err
	}
	marker := &entities.LogEntry{
		Kind:        entities.OpCleanup,
		TableName:   "logi_operacji",
		Description: fmt.Sprintf("removed %d entries older than %d days", deleted, days),
	}
	if _, err := s.repo.Append(marker); err != nil {
		log.Warn().Err(err).Msg("failed to log cleanup marker")
	}
	return deleted, nil
}

// WipeAll deletes the entire log and all restore points.
func (s *Service) WipeAll() error {
	return s.repo.WipeAll()
}
