package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	service "github.com/morichal/MeetingPortal/service"
)

// PortalController manages HTTP requests for the client portal
type PortalController struct {
	service *service.PortalService
}

// NewPortalController initializes the controller with the service
func NewPortalController(service *service.PortalService) *PortalController {
	return &PortalController{service}
}

// respondServiceError translates service sentinel errors to HTTP statuses.
func respondServiceError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrInvalidTransition):
		ctx.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrMissingTarget):
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

// Health reports service liveness
func (c *PortalController) Health(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

// Search runs a full-text query over the client's meetings, questions and rules
func (c *PortalController) Search(ctx *gin.Context) {
	query := ctx.Query("q")
	if query == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Query parameter 'q' is required"})
		return
	}

	results, err := c.service.Search(ctx.Param("client"), query)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message": "Search completed successfully",
		"results": results,
		"total":   len(results),
	})
}
