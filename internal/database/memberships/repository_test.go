package memberships

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gymdesk/internal/database"
	"gymdesk/internal/entities"
)

func setupTestDB(t *testing.T) (*database.Database, *Repository, func()) {
	dbPath := "./test_memberships_" + t.Name() + ".db"

	db, err := database.New(dbPath)
	require.NoError(t, err)

	repo := NewRepository(db)

	cleanup := func() {
		db.Close()
		os.Remove(dbPath)
	}

	return db, repo, cleanup
}

func shiftDate(t *testing.T, date string, days int) string {
	shifted, err := entities.AddDays(date, days)
	require.NoError(t, err)
	return shifted
}

func createTestClientRow(t *testing.T, db *database.Database) int64 {
	id, err := db.ExecReturningID("insert client",
		"INSERT INTO clients (first_name, last_name, registration_date) VALUES (?, ?, ?)",
		"Anna", "Kowalska", entities.Today())
	require.NoError(t, err)
	return id
}

func createTestMembership(t *testing.T, repo *Repository, clientID int64, start, end string, active bool) *entities.Membership {
	m := &entities.Membership{
		ClientID:  clientID,
		Type:      entities.MembershipNormalMonthly,
		StartDate: start,
		EndDate:   end,
		Price:     120.00,
		IsActive:  active,
	}
	id, err := repo.Insert(m)
	require.NoError(t, err)
	m.ID = id
	return m
}

func TestRepository_InsertAndByID(t *testing.T) {
	db, repo, cleanup := setupTestDB(t)
	defer cleanup()

	clientID := createTestClientRow(t, db)
	m := createTestMembership(t, repo, clientID, "2024-01-01", "2024-01-31", true)

	saved, err := repo.ByID(m.ID)

	require.NoError(t, err)
	require.NotNil(t, saved)
	assert.Equal(t, clientID, saved.ClientID)
	assert.Equal(t, entities.MembershipNormalMonthly, saved.Type)
	assert.True(t, saved.IsActive)
}

func TestRepository_All_NewestStartFirst(t *testing.T) {
	db, repo, cleanup := setupTestDB(t)
	defer cleanup()

	clientID := createTestClientRow(t, db)
	createTestMembership(t, repo, clientID, "2024-01-01", "2024-01-31", true)
	createTestMembership(t, repo, clientID, "2024-03-01", "2024-03-31", true)
	createTestMembership(t, repo, clientID, "2024-02-01", "2024-02-29", true)

	all, err := repo.All()

	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "2024-03-01", all[0].StartDate)
	assert.Equal(t, "2024-01-01", all[2].StartDate)
}

func TestRepository_ForClient(t *testing.T) {
	db, repo, cleanup := setupTestDB(t)
	defer cleanup()

	first := createTestClientRow(t, db)
	second := createTestClientRow(t, db)
	createTestMembership(t, repo, first, "2024-01-01", "2024-01-31", true)
	createTestMembership(t, repo, second, "2024-01-01", "2024-01-31", true)

	got, err := repo.ForClient(first)

	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, first, got[0].ClientID)
}

func TestRepository_HasActive_WithinRange(t *testing.T) {
	db, repo, cleanup := setupTestDB(t)
	defer cleanup()

	clientID := createTestClientRow(t, db)
	today := entities.Today()
	createTestMembership(t, repo, clientID, shiftDate(t, today, -5), shiftDate(t, today, 5), true)

	active, err := repo.HasActive(clientID, today)

	require.NoError(t, err)
	assert.True(t, active)
}

func TestRepository_HasActive_BoundaryDays(t *testing.T) {
	db, repo, cleanup := setupTestDB(t)
	defer cleanup()

	clientID := createTestClientRow(t, db)
	today := entities.Today()

	// A membership starting and ending today is still valid today.
	createTestMembership(t, repo, clientID, today, today, true)

	active, err := repo.HasActive(clientID, today)

	require.NoError(t, err)
	assert.True(t, active)
}

func TestRepository_HasActive_Expired(t *testing.T) {
	db, repo, cleanup := setupTestDB(t)
	defer cleanup()

	clientID := createTestClientRow(t, db)
	today := entities.Today()
	createTestMembership(t, repo, clientID, shiftDate(t, today, -60), shiftDate(t, today, -30), true)

	active, err := repo.HasActive(clientID, today)

	require.NoError(t, err)
	assert.False(t, active)
}

func TestRepository_HasActive_InactiveFlag(t *testing.T) {
	db, repo, cleanup := setupTestDB(t)
	defer cleanup()

	clientID := createTestClientRow(t, db)
	today := entities.Today()
	createTestMembership(t, repo, clientID, shiftDate(t, today, -5), shiftDate(t, today, 5), false)

	active, err := repo.HasActive(clientID, today)

	require.NoError(t, err)
	assert.False(t, active)
}

func TestRepository_Update(t *testing.T) {
	db, repo, cleanup := setupTestDB(t)
	defer cleanup()

	clientID := createTestClientRow(t, db)
	m := createTestMembership(t, repo, clientID, "2024-01-01", "2024-01-31", true)
	m.IsActive = false

	require.NoError(t, repo.Update(m))

	saved, err := repo.ByID(m.ID)
	require.NoError(t, err)
	assert.False(t, saved.IsActive)
}

func TestRepository_UpdateAndDelete_Missing(t *testing.T) {
	_, repo, cleanup := setupTestDB(t)
	defer cleanup()

	err := repo.Update(&entities.Membership{
		ID:        999,
		ClientID:  1,
		Type:      entities.MembershipNormalMonthly,
		StartDate: "2024-01-01",
		EndDate:   "2024-01-31",
		Price:     120,
	})
	assert.ErrorIs(t, err, database.ErrNotFound)

	assert.ErrorIs(t, repo.Delete(999), database.ErrNotFound)
}
