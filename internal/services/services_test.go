package services

import (
	"os"
	"testing"

	"github.com/stretchr/testify/require"

	"gymdesk/internal/database"
	"gymdesk/internal/database/classes"
	"gymdesk/internal/database/clients"
	historydb "gymdesk/internal/database/history"
	"gymdesk/internal/database/memberships"
	"gymdesk/internal/database/reservations"
	"gymdesk/internal/entities"
	"gymdesk/internal/history"
)

// testEnv bundles every service over one throwaway database so the business
// rule tests can cross entity boundaries.
type testEnv struct {
	db          *database.Database
	history     *history.Service
	clients     *ClientService
	memberships *MembershipService
	classes     *ClassService
}

var testPrices = PriceTable{
	Monthly:                120.00,
	Quarterly:              320.00,
	Yearly:                 1100.00,
	StudentDiscountPercent: 20.0,
}

func setupTestServices(t *testing.T) (*testEnv, func()) {
	dbPath := "./test_services_" + t.Name() + ".db"

	db, err := database.New(dbPath)
	require.NoError(t, err)

	hist := history.NewService(historydb.NewRepository(db), db)
	membershipService := NewMembershipService(memberships.NewRepository(db), hist, testPrices)

	env := &testEnv{
		db:          db,
		history:     hist,
		clients:     NewClientService(clients.NewRepository(db), hist),
		memberships: membershipService,
		classes: NewClassService(
			classes.NewRepository(db), reservations.NewRepository(db), membershipService, hist),
	}

	cleanup := func() {
		db.Close()
		os.Remove(dbPath)
	}

	return env, cleanup
}

func createTestClient(t *testing.T, env *testEnv, first, last string) *entities.Client {
	c := &entities.Client{FirstName: first, LastName: last}
	id, err := env.clients.Create(c)
	require.NoError(t, err)
	c.ID = id
	return c
}

func createTestClass(t *testing.T, env *testEnv, name string, maxParticipants int) *entities.GymClass {
	gc := &entities.GymClass{
		Name:            name,
		Trainer:         "Ewa Mazur",
		MaxParticipants: maxParticipants,
		Date:            entities.Today(),
		Time:            "18:00",
		Duration:        60,
	}
	id, err := env.classes.CreateClass(gc)
	require.NoError(t, err)
	gc.ID = id
	return gc
}

// subscribe gives the client a membership valid today.
func subscribe(t *testing.T, env *testEnv, clientID int64) *entities.Membership {
	m, err := env.memberships.CreateMonthly(clientID, "", false)
	require.NoError(t, err)
	return m
}
