// Package database provides the data access layer for the application.
//
// # Architecture
//
// The database layer is organized into domain-specific sub-packages:
//
//	database/
//	├── database.go      # Connection setup, schema initialization
//	├── clients/         # Client CRUD and search
//	├── memberships/     # Membership CRUD and validity queries
//	├── classes/         # Gym class CRUD operations
//	├── reservations/    # Reservation tracking and seat counting
//	└── history/         # Operation log and restore points
//
// # Using Sub-packages
//
// Each sub-package provides a Repository type with domain-specific operations:
//
//	// Initialize database connection
//	db, err := database.New("./gymdesk.db")
//
//	// Create domain-specific repositories
//	clientsRepo := clients.NewRepository(db)
//	membershipsRepo := memberships.NewRepository(db)
//
//	// Use repositories
//	client, err := clientsRepo.ByID(123)
//	active, err := membershipsRepo.HasActive(client.ID, entities.Today())
//
// All writes go through the shared Database executor, which keeps a
// single open connection so sequential statements observe each other's
// effects without explicit transactions.
package database
