package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"gymdesk/internal/entities"
)

// ClientStore defines the service operations the client endpoints use.
type ClientStore interface {
	All() ([]entities.Client, error)
	ByID(id int64) (*entities.Client, error)
	Search(keyword string) ([]entities.Client, error)
	Create(c *entities.Client) (int64, error)
	Update(c *entities.Client) error
	Delete(id int64) error
}

type ClientsController struct {
	store ClientStore
}

func NewClientsController(store ClientStore) *ClientsController {
	return &ClientsController{store: store}
}

// GetAllClients returns all clients, or a keyword search when ?q= is set
// GET /api/clients
func (cc *ClientsController) GetAllClients(c *gin.Context) {
	var (
		clients []entities.Client
		err     error
	)
	if q := c.Query("q"); q != "" {
		clients, err = cc.store.Search(q)
	} else {
		clients, err = cc.store.All()
	}
	if err != nil {
		respondInternalError(c, err, "list clients")
		return
	}
	c.JSON(http.StatusOK, clients)
}

// GetClient returns a single client
// GET /api/clients/:id
func (cc *ClientsController) GetClient(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	client, err := cc.store.ByID(id)
	if err != nil {
		respondInternalError(c, err, "get client")
		return
	}
	if client == nil {
		respondNotFound(c, "client")
		return
	}
	c.JSON(http.StatusOK, client)
}

// CreateClient stores a new client
// POST /api/clients
func (cc *ClientsController) CreateClient(c *gin.Context) {
	var client entities.Client
	if err := c.ShouldBindJSON(&client); err != nil {
		respondBadRequest(c, "invalid client payload")
		return
	}
	client.ID = 0
	if _, err := cc.store.Create(&client); err != nil {
		respondServiceError(c, err, "create client")
		return
	}
	respondCreated(c, client)
}

// UpdateClient rewrites a client
// PUT /api/clients/:id
func (cc *ClientsController) UpdateClient(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var client entities.Client
	if err := c.ShouldBindJSON(&client); err != nil {
		respondBadRequest(c, "invalid client payload")
		return
	}
	client.ID = id
	if err := cc.store.Update(&client); err != nil {
		respondServiceError(c, err, "update client")
		return
	}
	c.JSON(http.StatusOK, client)
}

// DeleteClient removes a client and cascades its memberships/reservations
// DELETE /api/clients/:id
func (cc *ClientsController) DeleteClient(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := cc.store.Delete(id); err != nil {
		respondServiceError(c, err, "delete client")
		return
	}
	respondSuccess(c, "client deleted")
}
