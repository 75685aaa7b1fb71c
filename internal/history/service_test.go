package history

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gymdesk/internal/database"
	"gymdesk/internal/database/clients"
	historydb "gymdesk/internal/database/history"
	"gymdesk/internal/entities"
)

func setupTestService(t *testing.T) (*database.Database, *Service, func()) {
	dbPath := "./test_history_svc_" + t.Name() + ".db"

	db, err := database.New(dbPath)
	require.NoError(t, err)

	svc := NewService(historydb.NewRepository(db), db)

	cleanup := func() {
		db.Close()
		os.Remove(dbPath)
	}

	return db, svc, cleanup
}

func insertTestClient(t *testing.T, db *database.Database, first, last string) *entities.Client {
	repo := clients.NewRepository(db)
	c := &entities.Client{FirstName: first, LastName: last, Email: first + "@example.com"}
	id, err := repo.Insert(c)
	require.NoError(t, err)
	c.ID = id
	return c
}

func fetchTestClient(t *testing.T, db *database.Database, id int64) *entities.Client {
	c, err := clients.NewRepository(db).ByID(id)
	require.NoError(t, err)
	return c
}

func TestRecord_AppendsEntry(t *testing.T) {
	db, svc, cleanup := setupTestService(t)
	defer cleanup()

	c := insertTestClient(t, db, "Anna", "Kowalska")

	id, err := svc.Record(entities.OpInsert, "clients", c.ID, nil, c, "created client")

	require.NoError(t, err)
	assert.NotZero(t, id)

	entries, err := svc.History(0)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, entities.OpInsert, entries[0].Kind)
	assert.Empty(t, entries[0].Before)
	assert.Contains(t, entries[0].After, `"first_name":"Anna"`)
}

func TestUndoLast_EmptyLog(t *testing.T) {
	_, svc, cleanup := setupTestService(t)
	defer cleanup()

	assert.ErrorIs(t, svc.UndoLast(), ErrNothingToUndo)
}

func TestUndoLast_Insert_RemovesRecord(t *testing.T) {
	db, svc, cleanup := setupTestService(t)
	defer cleanup()

	c := insertTestClient(t, db, "Anna", "Kowalska")
	_, err := svc.Record(entities.OpInsert, "clients", c.ID, nil, c, "created client")
	require.NoError(t, err)

	require.NoError(t, svc.UndoLast())

	assert.Nil(t, fetchTestClient(t, db, c.ID))

	// The undo is itself logged, with the images swapped.
	entries, err := svc.History(0)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, entities.OpUndo, entries[0].Kind)
	assert.Contains(t, entries[0].Before, `"first_name":"Anna"`)
	assert.Empty(t, entries[0].After)
}

func TestUndo_Update_RestoresAllFields(t *testing.T) {
	db, svc, cleanup := setupTestService(t)
	defer cleanup()

	c := insertTestClient(t, db, "Anna", "Kowalska")
	before := *c

	c.FirstName = "Anna Maria"
	c.Phone = "700-000-000"
	c.Notes = "changed"
	require.NoError(t, clients.NewRepository(db).Update(c))

	id, err := svc.Record(entities.OpUpdate, "clients", c.ID, before, c, "updated client")
	require.NoError(t, err)

	require.NoError(t, svc.Undo(id))

	restored := fetchTestClient(t, db, c.ID)
	require.NotNil(t, restored)
	assert.Equal(t, "Anna", restored.FirstName)
	assert.Empty(t, restored.Phone)
	assert.Empty(t, restored.Notes)
}

func TestUndo_Delete_ReinsertsUnderOriginalID(t *testing.T) {
	db, svc, cleanup := setupTestService(t)
	defer cleanup()

	c := insertTestClient(t, db, "Anna", "Kowalska")
	require.NoError(t, clients.NewRepository(db).Delete(c.ID))

	id, err := svc.Record(entities.OpDelete, "clients", c.ID, c, nil, "deleted client")
	require.NoError(t, err)

	require.NoError(t, svc.Undo(id))

	restored := fetchTestClient(t, db, c.ID)
	require.NotNil(t, restored)
	assert.Equal(t, c.ID, restored.ID)
	assert.Equal(t, "Kowalska", restored.LastName)
	assert.Equal(t, c.Email, restored.Email)
}

func TestUndo_UndoOfInsertUndo_ReinsertsRecord(t *testing.T) {
	db, svc, cleanup := setupTestService(t)
	defer cleanup()

	c := insertTestClient(t, db, "Anna", "Kowalska")
	_, err := svc.Record(entities.OpInsert, "clients", c.ID, nil, c, "created client")
	require.NoError(t, err)
	require.NoError(t, svc.UndoLast())
	require.Nil(t, fetchTestClient(t, db, c.ID))

	// The newest entry is the UNDO record; undoing it by direct
	// operation brings the client back under its original id.
	entries, err := svc.History(1)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, entities.OpUndo, entries[0].Kind)

	require.NoError(t, svc.Undo(entries[0].ID))

	restored := fetchTestClient(t, db, c.ID)
	require.NotNil(t, restored)
	assert.Equal(t, c.ID, restored.ID)
	assert.Equal(t, "Kowalska", restored.LastName)

	entries, err = svc.History(0)
	require.NoError(t, err)
	assert.Len(t, entries, 3)
	assert.Equal(t, entities.OpUndo, entries[0].Kind)
}

func TestUndo_UndoOfUpdateUndo_ReappliesChange(t *testing.T) {
	db, svc, cleanup := setupTestService(t)
	defer cleanup()

	c := insertTestClient(t, db, "Anna", "Kowalska")
	before := *c

	c.Notes = "prefers evening classes"
	require.NoError(t, clients.NewRepository(db).Update(c))
	id, err := svc.Record(entities.OpUpdate, "clients", c.ID, before, c, "updated client")
	require.NoError(t, err)

	require.NoError(t, svc.Undo(id))
	require.Empty(t, fetchTestClient(t, db, c.ID).Notes)

	entries, err := svc.History(1)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.NoError(t, svc.Undo(entries[0].ID))

	assert.Equal(t, "prefers evening classes", fetchTestClient(t, db, c.ID).Notes)
}

func TestUndo_UndoOfDeleteUndo_RemovesRecordAgain(t *testing.T) {
	db, svc, cleanup := setupTestService(t)
	defer cleanup()

	c := insertTestClient(t, db, "Anna", "Kowalska")
	require.NoError(t, clients.NewRepository(db).Delete(c.ID))
	id, err := svc.Record(entities.OpDelete, "clients", c.ID, c, nil, "deleted client")
	require.NoError(t, err)

	require.NoError(t, svc.Undo(id))
	require.NotNil(t, fetchTestClient(t, db, c.ID))

	entries, err := svc.History(1)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.NoError(t, svc.Undo(entries[0].ID))

	assert.Nil(t, fetchTestClient(t, db, c.ID))
}

func TestUndo_UnknownID(t *testing.T) {
	_, svc, cleanup := setupTestService(t)
	defer cleanup()

	assert.ErrorIs(t, svc.Undo(999), database.ErrNotFound)
}

func TestUndo_UnknownTable(t *testing.T) {
	_, svc, cleanup := setupTestService(t)
	defer cleanup()

	id, err := svc.Record(entities.OpInsert, "not_a_table", 1, nil, nil, "")
	require.NoError(t, err)

	assert.Error(t, svc.Undo(id))
}

func TestRestoreToPoint_UndoesInReverseOrder(t *testing.T) {
	db, svc, cleanup := setupTestService(t)
	defer cleanup()

	repo := clients.NewRepository(db)
	kept := insertTestClient(t, db, "Kept", "Client")
	_, err := svc.Record(entities.OpInsert, "clients", kept.ID, nil, kept, "")
	require.NoError(t, err)

	pointID, err := svc.CreateRestorePoint("checkpoint", "before the batch")
	require.NoError(t, err)

	// Batch after the point: one insert and one update.
	added := insertTestClient(t, db, "Added", "Later")
	_, err = svc.Record(entities.OpInsert, "clients", added.ID, nil, added, "")
	require.NoError(t, err)

	beforeUpdate := *kept
	kept.Notes = "modified after checkpoint"
	require.NoError(t, repo.Update(kept))
	_, err = svc.Record(entities.OpUpdate, "clients", kept.ID, beforeUpdate, kept, "")
	require.NoError(t, err)

	undone, err := svc.RestoreToPoint(pointID)

	require.NoError(t, err)
	assert.Equal(t, 2, undone)

	assert.Nil(t, fetchTestClient(t, db, added.ID))
	restored := fetchTestClient(t, db, kept.ID)
	require.NotNil(t, restored)
	assert.Empty(t, restored.Notes)
}

func TestRestoreToPoint_NothingAfterPoint(t *testing.T) {
	db, svc, cleanup := setupTestService(t)
	defer cleanup()

	c := insertTestClient(t, db, "Anna", "Kowalska")
	_, err := svc.Record(entities.OpInsert, "clients", c.ID, nil, c, "")
	require.NoError(t, err)

	pointID, err := svc.CreateRestorePoint("quiet", "")
	require.NoError(t, err)

	undone, err := svc.RestoreToPoint(pointID)

	require.NoError(t, err)
	assert.Zero(t, undone)
	require.NotNil(t, fetchTestClient(t, db, c.ID))
}

func TestRestoreToPoint_UnknownPoint(t *testing.T) {
	_, svc, cleanup := setupTestService(t)
	defer cleanup()

	_, err := svc.RestoreToPoint(999)

	assert.ErrorIs(t, err, database.ErrNotFound)
}

func TestCreateRestorePoint_CapturesLogHead(t *testing.T) {
	db, svc, cleanup := setupTestService(t)
	defer cleanup()

	c := insertTestClient(t, db, "Anna", "Kowalska")
	entryID, err := svc.Record(entities.OpInsert, "clients", c.ID, nil, c, "")
	require.NoError(t, err)

	pointID, err := svc.CreateRestorePoint("head", "")
	require.NoError(t, err)

	points, err := svc.RestorePoints()
	require.NoError(t, err)
	require.Len(t, points, 1)
	assert.Equal(t, pointID, points[0].ID)
	assert.Equal(t, entryID, points[0].LastLogID)
}

func TestGuard_CommittedMutationIsLogged(t *testing.T) {
	db, svc, cleanup := setupTestService(t)
	defer cleanup()

	c := insertTestClient(t, db, "Anna", "Kowalska")

	guard := svc.Begin(entities.OpInsert, "clients", 0, nil)
	guard.Commit(c.ID, c, "created client")
	guard.Finish()

	entries, err := svc.History(0)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, c.ID, entries[0].RecordID)
	assert.Equal(t, "created client", entries[0].Description)
}

func TestGuard_AbandonedMutationLogsNothing(t *testing.T) {
	_, svc, cleanup := setupTestService(t)
	defer cleanup()

	guard := svc.Begin(entities.OpInsert, "clients", 0, nil)
	guard.Finish()

	entries, err := svc.History(0)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestGuard_FinishFiresOnce(t *testing.T) {
	db, svc, cleanup := setupTestService(t)
	defer cleanup()

	c := insertTestClient(t, db, "Anna", "Kowalska")

	guard := svc.Begin(entities.OpInsert, "clients", 0, nil)
	guard.Commit(c.ID, c, "created client")
	guard.Finish()
	guard.Finish()

	entries, err := svc.History(0)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestPruneOlderThan_AppendsCleanupMarker(t *testing.T) {
	db, svc, cleanup := setupTestService(t)
	defer cleanup()

	_, err := db.Exec("insert old entry",
		"INSERT INTO logi_operacji (typ_operacji, tabela, id_rekordu, uzytkownik, czas_operacji) VALUES (?, ?, ?, ?, ?)",
		"INSERT", "clients", 1, "system", "2020-01-01 12:00:00")
	require.NoError(t, err)

	deleted, err := svc.PruneOlderThan(30)

	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	entries, err := svc.History(0)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, entities.OpCleanup, entries[0].Kind)
}

func TestWipeAll(t *testing.T) {
	db, svc, cleanup := setupTestService(t)
	defer cleanup()

	c := insertTestClient(t, db, "Anna", "Kowalska")
	_, err := svc.Record(entities.OpInsert, "clients", c.ID, nil, c, "")
	require.NoError(t, err)
	_, err = svc.CreateRestorePoint("checkpoint", "")
	require.NoError(t, err)

	require.NoError(t, svc.WipeAll())

	entries, err := svc.History(0)
	require.NoError(t, err)
	assert.Empty(t, entries)

	points, err := svc.RestorePoints()
	require.NoError(t, err)
	assert.Empty(t, points)
}
