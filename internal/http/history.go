package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"gymdesk/internal/entities"
	"gymdesk/internal/history"
)

// HistoryStore defines the history-engine operations the audit endpoints use.
type HistoryStore interface {
	History(limit int) ([]entities.LogEntry, error)
	HistoryForTable(table string, limit int) ([]entities.LogEntry, error)
	HistoryForRecord(table string, recordID int64) ([]entities.LogEntry, error)
	UndoLast() error
	Undo(id int64) error
	CreateRestorePoint(name, description string) (int64, error)
	RestorePoints() ([]entities.RestorePoint, error)
	RestoreToPoint(id int64) (int, error)
	PruneOlderThan(days int) (int64, error)
}

type HistoryController struct {
	store HistoryStore
}

func NewHistoryController(store HistoryStore) *HistoryController {
	return &HistoryController{store: store}
}

// GetHistory returns the operation log, most recent first. Optional
// filters: ?table=, ?record_id=, ?limit=
// GET /api/history
func (hc *HistoryController) GetHistory(c *gin.Context) {
	limit, ok := parseLimitQuery(c)
	if !ok {
		return
	}
	table := c.Query("table")

	var (
		entries []entities.LogEntry
		err     error
	)
	switch {
	case table != "" && c.Query("record_id") != "":
		recordID, ok := parseIDQueryParam(c, "record_id")
		if !ok {
			return
		}
		entries, err = hc.store.HistoryForRecord(table, recordID)
	case table != "":
		entries, err = hc.store.HistoryForTable(table, limit)
	default:
		entries, err = hc.store.History(limit)
	}
	if err != nil {
		respondInternalError(c, err, "list history")
		return
	}
	c.JSON(http.StatusOK, entries)
}

// UndoLast reverses the most recent logged operation
// POST /api/history/undo
func (hc *HistoryController) UndoLast(c *gin.Context) {
	if err := hc.store.UndoLast(); err != nil {
		if errors.Is(err, history.ErrNothingToUndo) {
			c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})
			return
		}
		respondServiceError(c, err, "undo last")
		return
	}
	respondSuccess(c, "operation undone")
}

// UndoOperation reverses one logged operation by id
// POST /api/history/:id/undo
func (hc *HistoryController) UndoOperation(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := hc.store.Undo(id); err != nil {
		respondServiceError(c, err, "undo operation")
		return
	}
	respondSuccess(c, "operation undone")
}

// CreateRestorePoint appends a named marker at the current log head
// POST /api/restore-points
func (hc *HistoryController) CreateRestorePoint(c *gin.Context) {
	var req struct {
		Name        string `json:"name" binding:"required"`
		Description string `json:"description"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "name is required")
		return
	}
	id, err := hc.store.CreateRestorePoint(req.Name, req.Description)
	if err != nil {
		respondInternalError(c, err, "create restore point")
		return
	}
	respondCreated(c, gin.H{"id": id, "name": req.Name})
}

// GetRestorePoints lists restore points, newest first
// GET /api/restore-points
func (hc *HistoryController) GetRestorePoints(c *gin.Context) {
	points, err := hc.store.RestorePoints()
	if err != nil {
		respondInternalError(c, err, "list restore points")
		return
	}
	c.JSON(http.StatusOK, points)
}

// RestoreToPoint undoes everything logged after the point
// POST /api/restore-points/:id/restore
func (hc *HistoryController) RestoreToPoint(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	undone, err := hc.store.RestoreToPoint(id)
	if err != nil {
		respondServiceError(c, err, "restore to point")
		return
	}
	c.JSON(http.StatusOK, gin.H{"restored": undone > 0, "operations_undone": undone})
}

// PruneHistory removes log entries beyond the retention window
// POST /api/history/prune
func (hc *HistoryController) PruneHistory(c *gin.Context) {
	var req struct {
		Days int `json:"days" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Days <= 0 {
		respondBadRequest(c, "days must be a positive number")
		return
	}
	deleted, err := hc.store.PruneOlderThan(req.Days)
	if err != nil {
		respondInternalError(c, err, "prune history")
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": deleted})
}
