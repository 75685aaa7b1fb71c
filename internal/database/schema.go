package database

// schemaStatements create the store's tables and indexes. Every statement
// uses IF NOT EXISTS so InitSchema is safe to call repeatedly.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS clients (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		first_name TEXT NOT NULL,
		last_name TEXT NOT NULL,
		email TEXT,
		phone TEXT,
		birth_date TEXT,
		registration_date TEXT NOT NULL,
		notes TEXT
	)`,
	`CREATE TABLE IF NOT EXISTS memberships (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		client_id INTEGER NOT NULL,
		type TEXT NOT NULL,
		start_date TEXT NOT NULL,
		end_date TEXT NOT NULL,
		price REAL NOT NULL,
		is_active INTEGER NOT NULL DEFAULT 1,
		FOREIGN KEY (client_id) REFERENCES clients(id) ON DELETE CASCADE
	)`,
	`CREATE TABLE IF NOT EXISTS gym_classes (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		trainer TEXT NOT NULL,
		max_participants INTEGER NOT NULL,
		date TEXT NOT NULL,
		time TEXT NOT NULL,
		duration INTEGER NOT NULL,
		description TEXT
	)`,
	`CREATE TABLE IF NOT EXISTS reservations (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		client_id INTEGER NOT NULL,
		class_id INTEGER NOT NULL,
		reservation_date TEXT NOT NULL,
		status TEXT NOT NULL DEFAULT 'confirmed',
		FOREIGN KEY (client_id) REFERENCES clients(id) ON DELETE CASCADE,
		FOREIGN KEY (class_id) REFERENCES gym_classes(id) ON DELETE CASCADE
	)`,
	`CREATE TABLE IF NOT EXISTS logi_operacji (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		typ_operacji TEXT NOT NULL,
		tabela TEXT NOT NULL,
		id_rekordu INTEGER NOT NULL,
		dane_przed TEXT,
		dane_po TEXT,
		uzytkownik TEXT NOT NULL DEFAULT 'system',
		czas_operacji TEXT NOT NULL,
		opis TEXT
	)`,
	`CREATE TABLE IF NOT EXISTS punkty_przywracania (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		nazwa TEXT NOT NULL,
		opis TEXT,
		czas_utworzenia TEXT NOT NULL,
		ostatni_log_id INTEGER NOT NULL DEFAULT 0
	)`,
	`CREATE INDEX IF NOT EXISTS idx_clients_email ON clients(email)`,
	`CREATE INDEX IF NOT EXISTS idx_memberships_client ON memberships(client_id)`,
	`CREATE INDEX IF NOT EXISTS idx_memberships_dates ON memberships(start_date, end_date)`,
	`CREATE INDEX IF NOT EXISTS idx_classes_date ON gym_classes(date)`,
	`CREATE INDEX IF NOT EXISTS idx_reservations_client ON reservations(client_id)`,
	`CREATE INDEX IF NOT EXISTS idx_reservations_class ON reservations(class_id)`,
	`CREATE INDEX IF NOT EXISTS idx_logi_tabela ON logi_operacji(tabela)`,
	`CREATE INDEX IF NOT EXISTS idx_logi_czas ON logi_operacji(czas_operacji)`,
}

// entityColumns lists the columns of every undoable table, in insert
// order. The history engine uses it to validate table and column names
// before they are interpolated into generated undo statements; values are
// always bound as parameters.
var entityColumns = map[string][]string{
	"clients":      {"id", "first_name", "last_name", "email", "phone", "birth_date", "registration_date", "notes"},
	"memberships":  {"id", "client_id", "type", "start_date", "end_date", "price", "is_active"},
	"gym_classes":  {"id", "name", "trainer", "max_participants", "date", "time", "duration", "description"},
	"reservations": {"id", "client_id", "class_id", "reservation_date", "status"},
}

// TableColumns returns the column set of a known entity table. The second
// result is false for tables that are not undo targets.
func TableColumns(table string) ([]string, bool) {
	cols, ok := entityColumns[table]
	return cols, ok
}
