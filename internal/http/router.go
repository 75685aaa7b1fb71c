package http

import (
	"github.com/gin-gonic/gin"
)

// RouterConfig carries the controllers the router wires up. All business
// logic stays behind the Store interfaces; handlers only translate HTTP.
type RouterConfig struct {
	Clients     *ClientsController
	Memberships *MembershipsController
	Classes     *ClassesController
	History     *HistoryController
	Transfer    *TransferController
	Health      *HealthController
}

// NewRouter creates and configures the HTTP router with all endpoints.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	router.GET("/health", cfg.Health.Status)

	api := router.Group("/api")
	{
		api.GET("/clients", cfg.Clients.GetAllClients)
		api.POST("/clients", cfg.Clients.CreateClient)
		api.GET("/clients/:id", cfg.Clients.GetClient)
		api.PUT("/clients/:id", cfg.Clients.UpdateClient)
		api.DELETE("/clients/:id", cfg.Clients.DeleteClient)

		api.GET("/clients/:id/memberships", cfg.Memberships.GetClientMemberships)
		api.POST("/clients/:id/memberships", cfg.Memberships.CreateMembership)
		api.GET("/clients/:id/membership-status", cfg.Memberships.GetClientMembershipStatus)
		api.GET("/clients/:id/reservations", cfg.Classes.GetClientReservations)

		api.GET("/memberships", cfg.Memberships.GetAllMemberships)
		api.GET("/memberships/:id", cfg.Memberships.GetMembership)
		api.PUT("/memberships/:id", cfg.Memberships.UpdateMembership)
		api.DELETE("/memberships/:id", cfg.Memberships.DeleteMembership)

		api.GET("/classes", cfg.Classes.GetAllClasses)
		api.POST("/classes", cfg.Classes.CreateClass)
		api.GET("/classes/:id", cfg.Classes.GetClass)
		api.PUT("/classes/:id", cfg.Classes.UpdateClass)
		api.DELETE("/classes/:id", cfg.Classes.DeleteClass)
		api.GET("/classes/:id/seats", cfg.Classes.GetClassSeats)
		api.GET("/classes/:id/reservations", cfg.Classes.GetClassReservations)

		api.GET("/reservations", cfg.Classes.GetAllReservations)
		api.POST("/reservations", cfg.Classes.CreateReservation)
		api.POST("/reservations/:id/cancel", cfg.Classes.CancelReservation)

		api.GET("/history", cfg.History.GetHistory)
		api.POST("/history/undo", cfg.History.UndoLast)
		api.POST("/history/:id/undo", cfg.History.UndoOperation)
		api.POST("/history/prune", cfg.History.PruneHistory)
		api.GET("/restore-points", cfg.History.GetRestorePoints)
		api.POST("/restore-points", cfg.History.CreateRestorePoint)
		api.POST("/restore-points/:id/restore", cfg.History.RestoreToPoint)

		api.GET("/export/clients", cfg.Transfer.ExportClients)
		api.GET("/export/memberships", cfg.Transfer.ExportMemberships)
		api.GET("/export/classes", cfg.Transfer.ExportClasses)
		api.GET("/export/reservations", cfg.Transfer.ExportReservations)
		api.POST("/import/clients", cfg.Transfer.ImportClients)
		api.POST("/import/classes", cfg.Transfer.ImportClasses)
	}

	return router
}
