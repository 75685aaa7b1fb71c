package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"gymdesk/internal/entities"
	"gymdesk/internal/exporters"
	"gymdesk/internal/importers"
)

// TransferController serves CSV/JSON exports and bulk imports. It owns no
// format logic: the codec packages do the work, the controller only moves
// bytes and picks content types.
type TransferController struct {
	clients     ClientStore
	memberships MembershipStore
	classes     ClassStore
	archiver    *exporters.Archiver
}

func NewTransferController(clients ClientStore, memberships MembershipStore, classes ClassStore, archiver *exporters.Archiver) *TransferController {
	return &TransferController{
		clients:     clients,
		memberships: memberships,
		classes:     classes,
		archiver:    archiver,
	}
}

// ExportClients streams the client list as CSV or JSON (?format=json)
// GET /api/export/clients
func (tc *TransferController) ExportClients(c *gin.Context) {
	clients, err := tc.clients.All()
	if err != nil {
		respondInternalError(c, err, "export clients")
		return
	}
	tc.archive(map[string][]entities.Client{"clients": clients})

	if c.Query("format") == "json" {
		c.Header("Content-Type", "application/json")
		c.Header("Content-Disposition", `attachment; filename="clients.json"`)
		if err := exporters.WriteClientsJSON(c.Writer, clients); err != nil {
			respondInternalError(c, err, "export clients json")
		}
		return
	}

	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", `attachment; filename="clients.csv"`)
	if err := exporters.WriteClientsCSV(c.Writer, clients); err != nil {
		respondInternalError(c, err, "export clients csv")
	}
}

// ExportMemberships streams the membership list
// GET /api/export/memberships
func (tc *TransferController) ExportMemberships(c *gin.Context) {
	memberships, err := tc.memberships.All()
	if err != nil {
		respondInternalError(c, err, "export memberships")
		return
	}
	tc.archive(map[string][]entities.Membership{"memberships": memberships})

	if c.Query("format") == "json" {
		c.Header("Content-Type", "application/json")
		c.Header("Content-Disposition", `attachment; filename="memberships.json"`)
		if err := exporters.WriteMembershipsJSON(c.Writer, memberships); err != nil {
			respondInternalError(c, err, "export memberships json")
		}
		return
	}

	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", `attachment; filename="memberships.csv"`)
	if err := exporters.WriteMembershipsCSV(c.Writer, memberships); err != nil {
		respondInternalError(c, err, "export memberships csv")
	}
}

// ExportClasses streams the class schedule
// GET /api/export/classes
func (tc *TransferController) ExportClasses(c *gin.Context) {
	classes, err := tc.classes.Classes()
	if err != nil {
		respondInternalError(c, err, "export classes")
		return
	}
	tc.archive(map[string][]entities.GymClass{"gym_classes": classes})

	if c.Query("format") == "json" {
		c.Header("Content-Type", "application/json")
		c.Header("Content-Disposition", `attachment; filename="classes.json"`)
		if err := exporters.WriteClassesJSON(c.Writer, classes); err != nil {
			respondInternalError(c, err, "export classes json")
		}
		return
	}

	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", `attachment; filename="classes.csv"`)
	if err := exporters.WriteClassesCSV(c.Writer, classes); err != nil {
		respondInternalError(c, err, "export classes csv")
	}
}

// ExportReservations streams all reservations
// GET /api/export/reservations
func (tc *TransferController) ExportReservations(c *gin.Context) {
	reservations, err := tc.classes.Reservations()
	if err != nil {
		respondInternalError(c, err, "export reservations")
		return
	}
	tc.archive(map[string][]entities.Reservation{"reservations": reservations})

	if c.Query("format") == "json" {
		c.Header("Content-Type", "application/json")
		c.Header("Content-Disposition", `attachment; filename="reservations.json"`)
		if err := exporters.WriteReservationsJSON(c.Writer, reservations); err != nil {
			respondInternalError(c, err, "export reservations json")
		}
		return
	}

	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", `attachment; filename="reservations.csv"`)
	if err := exporters.WriteReservationsCSV(c.Writer, reservations); err != nil {
		respondInternalError(c, err, "export reservations csv")
	}
}

// ImportClients ingests an uploaded CSV or JSON clients file. Bad rows are
// reported, good rows land; the response carries both counts.
// POST /api/import/clients
func (tc *TransferController) ImportClients(c *gin.Context) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		respondBadRequest(c, "file upload is required")
		return
	}
	defer file.Close()

	var result importers.ImportResult
	if isJSONUpload(header.Filename) {
		result, err = importers.ImportClientsJSON(tc.clients, file)
	} else {
		result, err = importers.ImportClientsCSV(tc.clients, file)
	}
	if err != nil {
		respondBadRequest(c, err.Error())
		return
	}
	c.JSON(http.StatusOK, result)
}

// ImportClasses ingests an uploaded CSV or JSON classes file
// POST /api/import/classes
func (tc *TransferController) ImportClasses(c *gin.Context) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		respondBadRequest(c, "file upload is required")
		return
	}
	defer file.Close()

	var result importers.ImportResult
	if isJSONUpload(header.Filename) {
		result, err = importers.ImportClassesJSON(tc.classes, file)
	} else {
		result, err = importers.ImportClassesCSV(tc.classes, file)
	}
	if err != nil {
		respondBadRequest(c, err.Error())
		return
	}
	c.JSON(http.StatusOK, result)
}

func (tc *TransferController) archive(payload any) {
	if tc.archiver == nil {
		return
	}
	if _, err := tc.archiver.SaveJSON(payload); err != nil {
		log.Warn().Err(err).Msg("failed to archive export")
	}
}

func isJSONUpload(filename string) bool {
	n := len(filename)
	return n > 5 && filename[n-5:] == ".json"
}
