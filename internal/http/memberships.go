package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"gymdesk/internal/entities"
)

// MembershipStore defines the service operations the membership endpoints use.
type MembershipStore interface {
	All() ([]entities.Membership, error)
	ByID(id int64) (*entities.Membership, error)
	ForClient(clientID int64) ([]entities.Membership, error)
	HasActive(clientID int64) (bool, error)
	CreateMonthly(clientID int64, start string, student bool) (*entities.Membership, error)
	CreateQuarterly(clientID int64, start string, student bool) (*entities.Membership, error)
	CreateYearly(clientID int64, start string, student bool) (*entities.Membership, error)
	Update(m *entities.Membership) error
	Delete(id int64) error
}

type MembershipsController struct {
	store MembershipStore
}

func NewMembershipsController(store MembershipStore) *MembershipsController {
	return &MembershipsController{store: store}
}

// GetAllMemberships returns every membership, newest start date first
// GET /api/memberships
func (mc *MembershipsController) GetAllMemberships(c *gin.Context) {
	memberships, err := mc.store.All()
	if err != nil {
		respondInternalError(c, err, "list memberships")
		return
	}
	c.JSON(http.StatusOK, memberships)
}

// GetMembership returns one membership
// GET /api/memberships/:id
func (mc *MembershipsController) GetMembership(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	m, err := mc.store.ByID(id)
	if err != nil {
		respondInternalError(c, err, "get membership")
		return
	}
	if m == nil {
		respondNotFound(c, "membership")
		return
	}
	c.JSON(http.StatusOK, m)
}

// GetClientMemberships returns a client's memberships
// GET /api/clients/:id/memberships
func (mc *MembershipsController) GetClientMemberships(c *gin.Context) {
	clientID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	memberships, err := mc.store.ForClient(clientID)
	if err != nil {
		respondInternalError(c, err, "list client memberships")
		return
	}
	c.JSON(http.StatusOK, memberships)
}

// GetClientMembershipStatus reports whether a client holds a membership
// valid today
// GET /api/clients/:id/membership-status
func (mc *MembershipsController) GetClientMembershipStatus(c *gin.Context) {
	clientID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	active, err := mc.store.HasActive(clientID)
	if err != nil {
		respondInternalError(c, err, "check membership status")
		return
	}
	c.JSON(http.StatusOK, gin.H{"client_id": clientID, "active": active})
}

// CreateMembership creates a membership via the named-duration factories
// POST /api/clients/:id/memberships
func (mc *MembershipsController) CreateMembership(c *gin.Context) {
	clientID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req struct {
		Duration  string `json:"duration" binding:"required"`
		StartDate string `json:"start_date"`
		Student   bool   `json:"student"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "duration is required")
		return
	}

	var (
		m   *entities.Membership
		err error
	)
	switch req.Duration {
	case "monthly":
		m, err = mc.store.CreateMonthly(clientID, req.StartDate, req.Student)
	case "quarterly":
		m, err = mc.store.CreateQuarterly(clientID, req.StartDate, req.Student)
	case "yearly":
		m, err = mc.store.CreateYearly(clientID, req.StartDate, req.Student)
	default:
		respondBadRequest(c, "duration must be monthly, quarterly or yearly")
		return
	}
	if err != nil {
		respondServiceError(c, err, "create membership")
		return
	}
	respondCreated(c, m)
}

// UpdateMembership edits a membership directly
// PUT /api/memberships/:id
func (mc *MembershipsController) UpdateMembership(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var m entities.Membership
	if err := c.ShouldBindJSON(&m); err != nil {
		respondBadRequest(c, "invalid membership payload")
		return
	}
	m.ID = id
	if err := mc.store.Update(&m); err != nil {
		respondServiceError(c, err, "update membership")
		return
	}
	c.JSON(http.StatusOK, m)
}

// DeleteMembership removes a membership
// DELETE /api/memberships/:id
func (mc *MembershipsController) DeleteMembership(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := mc.store.Delete(id); err != nil {
		respondServiceError(c, err, "delete membership")
		return
	}
	respondSuccess(c, "membership deleted")
}
