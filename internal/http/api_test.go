package http

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gymdesk/internal/database"
	"gymdesk/internal/database/classes"
	"gymdesk/internal/database/clients"
	historydb "gymdesk/internal/database/history"
	"gymdesk/internal/database/memberships"
	"gymdesk/internal/database/reservations"
	"gymdesk/internal/entities"
	"gymdesk/internal/exporters"
	"gymdesk/internal/history"
	"gymdesk/internal/services"
)

// setupTestAPI wires real services over a throwaway database behind the
// full router, so the tests exercise the same path production requests take.
func setupTestAPI(t *testing.T) (*gin.Engine, func()) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dbPath := "./test_api_" + strings.ReplaceAll(t.Name(), "/", "_") + ".db"
	db, err := database.New(dbPath)
	require.NoError(t, err)

	hist := history.NewService(historydb.NewRepository(db), db)
	membershipService := services.NewMembershipService(
		memberships.NewRepository(db), hist, services.PriceTable{
			Monthly: 120, Quarterly: 320, Yearly: 1100, StudentDiscountPercent: 20,
		})
	clientService := services.NewClientService(clients.NewRepository(db), hist)
	classService := services.NewClassService(
		classes.NewRepository(db), reservations.NewRepository(db), membershipService, hist)

	router := NewRouter(RouterConfig{
		Clients:     NewClientsController(clientService),
		Memberships: NewMembershipsController(membershipService),
		Classes:     NewClassesController(classService),
		History:     NewHistoryController(hist),
		Transfer:    NewTransferController(clientService, membershipService, classService, exporters.NewArchiver(t.TempDir())),
		Health:      NewHealthController(db, "test"),
	})

	cleanup := func() {
		db.Close()
		os.Remove(dbPath)
	}
	return router, cleanup
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}
	req, err := http.NewRequest(method, path, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func createClientViaAPI(t *testing.T, router *gin.Engine, first, last string) entities.Client {
	t.Helper()
	w := doJSON(t, router, "POST", "/api/clients", gin.H{"first_name": first, "last_name": last})
	require.Equal(t, http.StatusCreated, w.Code)

	var c entities.Client
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &c))
	require.NotZero(t, c.ID)
	return c
}

func TestHealthEndpoint(t *testing.T) {
	router, cleanup := setupTestAPI(t)
	defer cleanup()

	w := doJSON(t, router, "GET", "/health", nil)

	assert.Equal(t, http.StatusOK, w.Code)

	var health HealthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &health))
	assert.Equal(t, "healthy", health.Status)
	assert.Equal(t, "ok", health.Checks["database"])
}

func TestClientEndpoints_CRUD(t *testing.T) {
	router, cleanup := setupTestAPI(t)
	defer cleanup()

	created := createClientViaAPI(t, router, "Anna", "Kowalska")

	w := doJSON(t, router, "GET", "/api/clients", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	var list []entities.Client
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	assert.Len(t, list, 1)

	w = doJSON(t, router, "PUT", "/api/clients/1", gin.H{
		"first_name": "Anna", "last_name": "Kowalska", "phone": "700-000-000",
	})
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, router, "GET", "/api/clients/1", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	var fetched entities.Client
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &fetched))
	assert.Equal(t, created.ID, fetched.ID)
	assert.Equal(t, "700-000-000", fetched.Phone)

	w = doJSON(t, router, "DELETE", "/api/clients/1", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, router, "GET", "/api/clients/1", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestClientEndpoints_ValidationAndBadIDs(t *testing.T) {
	router, cleanup := setupTestAPI(t)
	defer cleanup()

	w := doJSON(t, router, "POST", "/api/clients", gin.H{"first_name": "Anna"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, router, "GET", "/api/clients/abc", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, router, "DELETE", "/api/clients/999", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestMembershipEndpoints(t *testing.T) {
	router, cleanup := setupTestAPI(t)
	defer cleanup()

	created := createClientViaAPI(t, router, "Maria", "Wisniewska")

	w := doJSON(t, router, "POST", "/api/clients/1/memberships", gin.H{
		"duration": "monthly", "student": true,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var m entities.Membership
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &m))
	assert.Equal(t, entities.MembershipStudentMonthly, m.Type)
	assert.Equal(t, 96.0, m.Price)
	assert.Equal(t, created.ID, m.ClientID)

	w = doJSON(t, router, "GET", "/api/clients/1/membership-status", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	var status map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &status))
	assert.Equal(t, true, status["active"])

	w = doJSON(t, router, "POST", "/api/clients/1/memberships", gin.H{"duration": "weekly"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestReservationEndpoints_FullFlow(t *testing.T) {
	router, cleanup := setupTestAPI(t)
	defer cleanup()

	createClientViaAPI(t, router, "Anna", "Kowalska")
	w := doJSON(t, router, "POST", "/api/classes", gin.H{
		"name": "Yoga", "trainer": "Ewa Mazur", "max_participants": 1,
		"date": entities.Today(), "time": "18:00", "duration": 60,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	// No membership yet: booking is refused.
	w = doJSON(t, router, "POST", "/api/reservations", gin.H{"client_id": 1, "class_id": 1})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = doJSON(t, router, "POST", "/api/clients/1/memberships", gin.H{"duration": "monthly"})
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, router, "POST", "/api/reservations", gin.H{"client_id": 1, "class_id": 1})
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, router, "GET", "/api/classes/1/seats", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	var seats map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &seats))
	assert.Equal(t, float64(0), seats["available_seats"])

	// The class is now full for everyone else.
	createClientViaAPI(t, router, "Piotr", "Nowak")
	w = doJSON(t, router, "POST", "/api/clients/2/memberships", gin.H{"duration": "monthly"})
	require.Equal(t, http.StatusCreated, w.Code)
	w = doJSON(t, router, "POST", "/api/reservations", gin.H{"client_id": 2, "class_id": 1})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = doJSON(t, router, "POST", "/api/reservations/1/cancel", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, router, "POST", "/api/reservations/1/cancel", nil)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestHistoryEndpoints_UndoAndRestore(t *testing.T) {
	router, cleanup := setupTestAPI(t)
	defer cleanup()

	w := doJSON(t, router, "POST", "/api/history/undo", nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	createClientViaAPI(t, router, "Anna", "Kowalska")

	w = doJSON(t, router, "GET", "/api/history", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	var entries []entities.LogEntry
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &entries))
	require.Len(t, entries, 1)
	assert.Equal(t, entities.OpInsert, entries[0].Kind)

	w = doJSON(t, router, "POST", "/api/restore-points", gin.H{"name": "checkpoint"})
	require.Equal(t, http.StatusCreated, w.Code)

	createClientViaAPI(t, router, "Piotr", "Nowak")

	w = doJSON(t, router, "POST", "/api/restore-points/1/restore", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	var restored map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &restored))
	assert.Equal(t, true, restored["restored"])
	assert.Equal(t, float64(1), restored["operations_undone"])

	// The post-checkpoint client is gone, the earlier one survives.
	w = doJSON(t, router, "GET", "/api/clients", nil)
	var list []entities.Client
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Len(t, list, 1)
	assert.Equal(t, "Anna", list[0].FirstName)

	// The newest entry is now the restore summary, which is not undoable.
	w = doJSON(t, router, "POST", "/api/history/undo", nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestGetHistory_MalformedLimit(t *testing.T) {
	router, cleanup := setupTestAPI(t)
	defer cleanup()

	w := doJSON(t, router, "GET", "/api/history?limit=abc", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, router, "GET", "/api/history?limit=-1", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestExportEndpoints(t *testing.T) {
	router, cleanup := setupTestAPI(t)
	defer cleanup()

	createClientViaAPI(t, router, "Anna", "Kowalska")

	w := doJSON(t, router, "GET", "/api/export/clients", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/csv")
	assert.Contains(t, w.Body.String(), "Kowalska")

	w = doJSON(t, router, "GET", "/api/export/clients?format=json", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	var payload map[string][]entities.Client
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &payload))
	assert.Len(t, payload["clients"], 1)
}

func TestImportClientsEndpoint(t *testing.T) {
	router, cleanup := setupTestAPI(t)
	defer cleanup()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", "clients.csv")
	require.NoError(t, err)
	_, err = part.Write([]byte("first_name,last_name\nAnna,Kowalska\n,Broken\n"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req, err := http.NewRequest("POST", "/api/import/clients", &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", mw.FormDataContentType())

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var result map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.Equal(t, float64(1), result["imported"])
	errorsList, _ := result["errors"].([]any)
	assert.Len(t, errorsList, 1)

	list := doJSON(t, router, "GET", "/api/clients", nil)
	var fetched []entities.Client
	require.NoError(t, json.Unmarshal(list.Body.Bytes(), &fetched))
	assert.Len(t, fetched, 1)
}
