package history

import (
	"errors"

	"gymdesk/internal/database"
	"gymdesk/internal/entities"
)

// Repository is the DAO for the append-only operation log and the restore
// points. Log rows are only ever removed by retention cleanup or WipeAll.
type Repository struct {
	db *database.Database
}

func NewRepository(db *database.Database) *Repository {
	return &Repository{db: db}
}

// Append stores one log entry and returns its id. Actor defaults to
// "system" and the timestamp to now.
func (r *Repository) Append(e *entities.LogEntry) (int64, error) {
	if e.Actor == "" {
		e.Actor = "system"
	}
	if e.LoggedAt == "" {
		e.LoggedAt = entities.Now()
	}
	id, err := r.db.ExecReturningID("append log entry",
		`INSERT INTO logi_operacji (typ_operacji, tabela, id_rekordu, dane_przed, dane_po, uzytkownik, czas_operacji, opis)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		e.Kind, e.TableName, e.RecordID, e.Before, e.After, e.Actor, e.LoggedAt, e.Description)
	if err != nil {
		return 0, err
	}
	e.ID = id
	return id, nil
}

// ByID returns one log entry, or (nil, nil) when absent.
func (r *Repository) ByID(id int64) (*entities.LogEntry, error) {
	var e entities.LogEntry
	err := r.db.Get("get log entry", &e, `SELECT * FROM logi_operacji WHERE id = ?`, id)
	if errors.Is(err, database.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// Latest returns the most recent entry by id, or (nil, nil) on an empty log.
func (r *Repository) Latest() (*entities.LogEntry, error) {
	var e entities.LogEntry
	err := r.db.Get("get latest log entry", &e,
		`SELECT * FROM logi_operacji ORDER BY id DESC LIMIT 1`)
	if errors.Is(err, database.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// Recent returns log entries most-recent-first, capped at limit when
// limit > 0.
func (r *Repository) Recent(limit int) ([]entities.LogEntry, error) {
	var entries []entities.LogEntry
	if limit > 0 {
		err := r.db.Select("list log entries", &entries,
			`SELECT * FROM logi_operacji ORDER BY id DESC LIMIT ?`, limit)
		return entries, err
	}
	err := r.db.Select("list log entries", &entries,
		`SELECT * FROM logi_operacji ORDER BY id DESC`)
	return entries, err
}

// ForTable returns the entries touching one table, most recent first.
func (r *Repository) ForTable(table string, limit int) ([]entities.LogEntry, error) {
	var entries []entities.LogEntry
	if limit > 0 {
		err := r.db.Select("list table log entries", &entries,
			`SELECT * FROM logi_operacji WHERE tabela = ? ORDER BY id DESC LIMIT ?`, table, limit)
		return entries, err
	}
	err := r.db.Select("list table log entries", &entries,
		`SELECT * FROM logi_operacji WHERE tabela = ? ORDER BY id DESC`, table)
	return entries, err
}

// ForRecord returns the full change history of one record.
func (r *Repository) ForRecord(table string, recordID int64) ([]entities.LogEntry, error) {
	var entries []entities.LogEntry
	err := r.db.Select("list record log entries", &entries,
		`SELECT * FROM logi_operacji WHERE tabela = ? AND id_rekordu = ? ORDER BY id DESC`,
		table, recordID)
	return entries, err
}

// EntriesAfter returns every non-UNDO entry with id strictly greater than
// afterID, most recent first. The id is the authoritative ordering key;
// timestamps are second-granularity and may collide.
func (r *Repository) EntriesAfter(afterID int64) ([]entities.LogEntry, error) {
	var entries []entities.LogEntry
	err := r.db.Select("list log entries after", &entries,
		`SELECT * FROM logi_operacji WHERE id > ? AND typ_operacji != ? ORDER BY id DESC`,
		afterID, entities.OpUndo)
	return entries, err
}

// MaxID returns the id of the newest log entry, zero on an empty log.
func (r *Repository) MaxID() (int64, error) {
	return r.db.ScalarInt64("max log id", `SELECT MAX(id) FROM logi_operacji`)
}

// DeleteOlderThan removes entries logged before the cutoff timestamp and
// returns how many were removed.
func (r *Repository) DeleteOlderThan(cutoff string) (int64, error) {
	return r.db.Exec("prune log entries",
		`DELETE FROM logi_operacji WHERE czas_operacji < ?`, cutoff)
}

// CreatePoint stores a restore point. The creation timestamp defaults to now.
func (r *Repository) CreatePoint(p *entities.RestorePoint) (int64, error) {
	if p.CreatedAt == "" {
		p.CreatedAt = entities.Now()
	}
	id, err := r.db.ExecReturningID("create restore point",
		`INSERT INTO punkty_przywracania (nazwa, opis, czas_utworzenia, ostatni_log_id)
		 VALUES (?, ?, ?, ?)`,
		p.Name, p.Description, p.CreatedAt, p.LastLogID)
	if err != nil {
		return 0, err
	}
	p.ID = id
	return id, nil
}

// PointByID returns one restore point, or (nil, nil) when absent.
func (r *Repository) PointByID(id int64) (*entities.RestorePoint, error) {
	var p entities.RestorePoint
	err := r.db.Get("get restore point", &p,
		`SELECT * FROM punkty_przywracania WHERE id = ?`, id)
	if errors.Is(err, database.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Points returns every restore point, newest first.
func (r *Repository) Points() ([]entities.RestorePoint, error) {
	var points []entities.RestorePoint
	err := r.db.Select("list restore points", &points,
		`SELECT * FROM punkty_przywracania ORDER BY id DESC`)
	return points, err
}

// WipeAll deletes every log entry and restore point. Irreversible; meant
// for reset and test paths only.
func (r *Repository) WipeAll() error {
	if _, err := r.db.Exec("wipe log entries", `DELETE FROM logi_operacji`); err != nil {
		return err
	}
	_, err := r.db.Exec("wipe restore points", `DELETE FROM punkty_przywracania`)
	return err
}
