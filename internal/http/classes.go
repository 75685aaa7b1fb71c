package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"gymdesk/internal/entities"
)

// ClassStore defines the service operations the class and reservation
// endpoints use.
type ClassStore interface {
	Classes() ([]entities.GymClass, error)
	ClassByID(id int64) (*entities.GymClass, error)
	ClassesOnDate(date string) ([]entities.GymClass, error)
	CreateClass(gc *entities.GymClass) (int64, error)
	UpdateClass(gc *entities.GymClass) error
	DeleteClass(id int64) error
	AvailableSeats(classID int64) (int, error)
	Reserve(clientID, classID int64) (*entities.Reservation, error)
	CancelReservation(id int64) error
	Reservations() ([]entities.Reservation, error)
	ReservationsForClient(clientID int64) ([]entities.Reservation, error)
	ReservationsForClass(classID int64) ([]entities.Reservation, error)
}

type ClassesController struct {
	store ClassStore
}

func NewClassesController(store ClassStore) *ClassesController {
	return &ClassesController{store: store}
}

// GetAllClasses returns the schedule, optionally filtered by ?date=
// GET /api/classes
func (cc *ClassesController) GetAllClasses(c *gin.Context) {
	var (
		classes []entities.GymClass
		err     error
	)
	if date := c.Query("date"); date != "" {
		classes, err = cc.store.ClassesOnDate(date)
	} else {
		classes, err = cc.store.Classes()
	}
	if err != nil {
		respondInternalError(c, err, "list classes")
		return
	}
	c.JSON(http.StatusOK, classes)
}

// GetClass returns one class
// GET /api/classes/:id
func (cc *ClassesController) GetClass(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	gc, err := cc.store.ClassByID(id)
	if err != nil {
		respondInternalError(c, err, "get class")
		return
	}
	if gc == nil {
		respondNotFound(c, "class")
		return
	}
	c.JSON(http.StatusOK, gc)
}

// CreateClass stores a new class
// POST /api/classes
func (cc *ClassesController) CreateClass(c *gin.Context) {
	var gc entities.GymClass
	if err := c.ShouldBindJSON(&gc); err != nil {
		respondBadRequest(c, "invalid class payload")
		return
	}
	gc.ID = 0
	if _, err := cc.store.CreateClass(&gc); err != nil {
		respondServiceError(c, err, "create class")
		return
	}
	respondCreated(c, gc)
}

// UpdateClass rewrites a class
// PUT /api/classes/:id
func (cc *ClassesController) UpdateClass(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var gc entities.GymClass
	if err := c.ShouldBindJSON(&gc); err != nil {
		respondBadRequest(c, "invalid class payload")
		return
	}
	gc.ID = id
	if err := cc.store.UpdateClass(&gc); err != nil {
		respondServiceError(c, err, "update class")
		return
	}
	c.JSON(http.StatusOK, gc)
}

// DeleteClass removes a class and cascades its reservations
// DELETE /api/classes/:id
func (cc *ClassesController) DeleteClass(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := cc.store.DeleteClass(id); err != nil {
		respondServiceError(c, err, "delete class")
		return
	}
	respondSuccess(c, "class deleted")
}

// GetClassSeats reports remaining capacity
// GET /api/classes/:id/seats
func (cc *ClassesController) GetClassSeats(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	seats, err := cc.store.AvailableSeats(id)
	if err != nil {
		respondServiceError(c, err, "get class seats")
		return
	}
	c.JSON(http.StatusOK, gin.H{"class_id": id, "available_seats": seats})
}

// GetClassReservations returns the confirmed reservations of a class
// GET /api/classes/:id/reservations
func (cc *ClassesController) GetClassReservations(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	reservations, err := cc.store.ReservationsForClass(id)
	if err != nil {
		respondInternalError(c, err, "list class reservations")
		return
	}
	c.JSON(http.StatusOK, reservations)
}

// GetAllReservations returns every reservation, newest first
// GET /api/reservations
func (cc *ClassesController) GetAllReservations(c *gin.Context) {
	reservations, err := cc.store.Reservations()
	if err != nil {
		respondInternalError(c, err, "list reservations")
		return
	}
	c.JSON(http.StatusOK, reservations)
}

// GetClientReservations returns a client's reservations, any status
// GET /api/clients/:id/reservations
func (cc *ClassesController) GetClientReservations(c *gin.Context) {
	clientID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	reservations, err := cc.store.ReservationsForClient(clientID)
	if err != nil {
		respondInternalError(c, err, "list client reservations")
		return
	}
	c.JSON(http.StatusOK, reservations)
}

// CreateReservation books a confirmed seat
// POST /api/reservations
func (cc *ClassesController) CreateReservation(c *gin.Context) {
	var req struct {
		ClientID int64 `json:"client_id" binding:"required"`
		ClassID  int64 `json:"class_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "client_id and class_id are required")
		return
	}
	res, err := cc.store.Reserve(req.ClientID, req.ClassID)
	if err != nil {
		respondServiceError(c, err, "create reservation")
		return
	}
	respondCreated(c, res)
}

// CancelReservation flips a reservation's status to cancelled
// POST /api/reservations/:id/cancel
func (cc *ClassesController) CancelReservation(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := cc.store.CancelReservation(id); err != nil {
		respondServiceError(c, err, "cancel reservation")
		return
	}
	respondSuccess(c, "reservation cancelled")
}
