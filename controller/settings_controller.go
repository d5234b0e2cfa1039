package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	service "github.com/morichal/MeetingPortal/service"
)

// GetSettings returns the client's settings with API keys masked
func (c *PortalController) GetSettings(ctx *gin.Context) {
	settings, err := c.service.GetSettings(ctx.Param("client"))
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"settings": settings})
}

// UpdateSettings applies partial changes to the client's settings
func (c *PortalController) UpdateSettings(ctx *gin.Context) {
	var input service.UpdateSettingsInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid settings payload", "details": err.Error()})
		return
	}

	settings, err := c.service.UpdateSettings(ctx.Param("client"), input)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{
		"message":  "Settings updated successfully",
		"settings": settings,
	})
}

// ResetUsage zeroes the client's monthly usage counters
func (c *PortalController) ResetUsage(ctx *gin.Context) {
	settings, err := c.service.ResetUsage(ctx.Param("client"))
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{
		"message":  "Usage counters reset",
		"settings": settings,
	})
}

// ListProviders reports which AI providers have credentials configured
func (c *PortalController) ListProviders(ctx *gin.Context) {
	providers, err := c.service.ListProviders(ctx.Param("client"))
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"providers": providers})
}
