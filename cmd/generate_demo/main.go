// Command generate_demo creates a demo database with sample gym data.
// Usage: go run cmd/generate_demo/main.go [-db path/to/demo.db]
package main

import (
	"flag"
	"log"
	"os"

	"gymdesk/internal/database"
	"gymdesk/internal/database/classes"
	"gymdesk/internal/database/clients"
	"gymdesk/internal/database/memberships"
	"gymdesk/internal/database/reservations"
	"gymdesk/internal/entities"
)

const defaultDemoDatabasePath = "./demo/demo.db"

func daysFromToday(days int) string {
	date, err := entities.AddDays(entities.Today(), days)
	if err != nil {
		log.Fatalf("Failed to compute date offset: %v", err)
	}
	return date
}

func main() {
	dbPath := flag.String("db", defaultDemoDatabasePath, "path to the demo database file")
	flag.Parse()

	log.Printf("Generating demo database at %s...", *dbPath)

	// Delete existing demo database to start fresh
	if err := os.Remove(*dbPath); err != nil && !os.IsNotExist(err) {
		log.Fatalf("Failed to remove existing demo database: %v", err)
	}

	db, err := database.New(*dbPath)
	if err != nil {
		log.Fatalf("Failed to create database: %v", err)
	}
	defer db.Close()

	clientIDs := createClients(db)
	createMemberships(db, clientIDs)
	classIDs := createClasses(db)
	createReservations(db, clientIDs, classIDs)

	log.Println("Demo database generated successfully!")
}

func createClients(db *database.Database) []int64 {
	repo := clients.NewRepository(db)

	demo := []entities.Client{
		{
			FirstName:        "Anna",
			LastName:         "Kowalska",
			Email:            "anna.kowalska@example.com",
			Phone:            "600-100-200",
			BirthDate:        "1995-04-12",
			RegistrationDate: daysFromToday(-120),
			Notes:            "Prefers morning classes",
		},
		{
			FirstName:        "Piotr",
			LastName:         "Nowak",
			Email:            "piotr.nowak@example.com",
			Phone:            "600-300-400",
			BirthDate:        "1988-11-02",
			RegistrationDate: daysFromToday(-60),
		},
		{
			FirstName:        "Maria",
			LastName:         "Wisniewska",
			Email:            "maria.w@example.com",
			Phone:            "600-500-600",
			BirthDate:        "2002-07-23",
			RegistrationDate: daysFromToday(-30),
			Notes:            "Student membership",
		},
		{
			FirstName:        "Tomasz",
			LastName:         "Zielinski",
			Email:            "tomasz.z@example.com",
			Phone:            "600-700-800",
			BirthDate:        "1979-01-30",
			RegistrationDate: daysFromToday(-7),
		},
	}

	ids := make([]int64, 0, len(demo))
	for i := range demo {
		id, err := repo.Insert(&demo[i])
		if err != nil {
			log.Printf("Failed to save client %s: %v", demo[i].FullName(), err)
			continue
		}
		log.Printf("Saved client: %s", demo[i].FullName())
		ids = append(ids, id)
	}
	return ids
}

func createMemberships(db *database.Database, clientIDs []int64) {
	repo := memberships.NewRepository(db)
	today := entities.Today()

	configs := []struct {
		client int
		typ    entities.MembershipType
		days   int
		price  float64
	}{
		{client: 0, typ: entities.MembershipNormalMonthly, days: 30, price: 120.00},
		{client: 1, typ: entities.MembershipNormalYearly, days: 365, price: 1100.00},
		{client: 2, typ: entities.MembershipStudentQuarterly, days: 90, price: 256.00},
	}

	for _, c := range configs {
		if c.client >= len(clientIDs) {
			continue
		}
		m := &entities.Membership{
			ClientID:  clientIDs[c.client],
			Type:      c.typ,
			StartDate: today,
			EndDate:   daysFromToday(c.days),
			Price:     c.price,
			IsActive:  true,
		}
		if _, err := repo.Insert(m); err != nil {
			log.Printf("Failed to save membership for client %d: %v", m.ClientID, err)
			continue
		}
		log.Printf("Saved membership: client %d, %s", m.ClientID, m.Type)
	}
}

func createClasses(db *database.Database) []int64 {
	repo := classes.NewRepository(db)

	demo := []entities.GymClass{
		{
			Name:            "Morning Yoga",
			Trainer:         "Ewa Mazur",
			MaxParticipants: 12,
			Date:            daysFromToday(1),
			Time:            "07:30",
			Duration:        60,
			Description:     "Gentle vinyasa flow for all levels",
		},
		{
			Name:            "CrossFit Basics",
			Trainer:         "Marek Lis",
			MaxParticipants: 8,
			Date:            daysFromToday(1),
			Time:            "18:00",
			Duration:        45,
			Description:     "Introduction to functional training",
		},
		{
			Name:            "Spinning",
			Trainer:         "Ewa Mazur",
			MaxParticipants: 15,
			Date:            daysFromToday(2),
			Time:            "19:00",
			Duration:        50,
		},
	}

	ids := make([]int64, 0, len(demo))
	for i := range demo {
		id, err := repo.Insert(&demo[i])
		if err != nil {
			log.Printf("Failed to save class %s: %v", demo[i].Name, err)
			continue
		}
		log.Printf("Saved class: %s with %s", demo[i].Name, demo[i].Trainer)
		ids = append(ids, id)
	}
	return ids
}

func createReservations(db *database.Database, clientIDs, classIDs []int64) {
	repo := reservations.NewRepository(db)

	pairs := []struct{ client, class int }{
		{0, 0},
		{0, 2},
		{1, 1},
		{2, 0},
	}

	for _, p := range pairs {
		if p.client >= len(clientIDs) || p.class >= len(classIDs) {
			continue
		}
		r := &entities.Reservation{
			ClientID: clientIDs[p.client],
			ClassID:  classIDs[p.class],
			Status:   entities.ReservationConfirmed,
		}
		if _, err := repo.Insert(r); err != nil {
			log.Printf("Failed to save reservation: %v", err)
			continue
		}
		log.Printf("Saved reservation: client %d -> class %d", r.ClientID, r.ClassID)
	}
}
