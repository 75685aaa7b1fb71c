package entities

// OperationKind classifies a history log entry.
type OperationKind string

const (
	OpInsert  OperationKind = "INSERT"
	OpUpdate  OperationKind = "UPDATE"
	OpDelete  OperationKind = "DELETE"
	OpUndo    OperationKind = "UNDO"
	OpRestore OperationKind = "RESTORE"
	OpCleanup OperationKind = "CLEANUP"
)

// LogEntry is one append-only audit record of a mutation. Ids are
// monotonically increasing and define the authoritative ordering; the
// second-granularity timestamp is for display only.
//
// Column names keep the legacy Polish schema so existing databases stay
// readable.
type LogEntry struct {
	ID          int64         `db:"id" json:"id"`
	Kind        OperationKind `db:"typ_operacji" json:"kind"`
	TableName   string        `db:"tabela" json:"table"`
	RecordID    int64         `db:"id_rekordu" json:"record_id"`
	Before      string        `db:"dane_przed" json:"before,omitempty"`
	After       string        `db:"dane_po" json:"after,omitempty"`
	Actor       string        `db:"uzytkownik" json:"actor"`
	LoggedAt    string        `db:"czas_operacji" json:"logged_at"`
	Description string        `db:"opis" json:"description"`
}

// RestorePoint is a named cursor into the log timeline. LastLogID records
// the newest log entry at creation time; restores key on it rather than on
// the timestamp, so entries sharing a second are never skipped.
type RestorePoint struct {
	ID          int64  `db:"id" json:"id"`
	Name        string `db:"nazwa" json:"name"`
	Description string `db:"opis" json:"description"`
	CreatedAt   string `db:"czas_utworzenia" json:"created_at"`
	LastLogID   int64  `db:"ostatni_log_id" json:"last_log_id"`
}
