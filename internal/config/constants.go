package config

// DefaultDatabasePath is the default path for the application database.
const DefaultDatabasePath = "./gymdesk.db"

// Default membership price table. Overridable via environment.
const (
	DefaultMonthlyPrice           = 120.0
	DefaultQuarterlyPrice         = 320.0
	DefaultYearlyPrice            = 1100.0
	DefaultStudentDiscountPercent = 20.0
)
