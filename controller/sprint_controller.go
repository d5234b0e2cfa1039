package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	service "github.com/morichal/MeetingPortal/service"
)

// ListSprints returns the client's sprints with computed progress
func (c *PortalController) ListSprints(ctx *gin.Context) {
	sprints, err := c.service.ListSprints(ctx.Param("client"))
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{
		"sprints": sprints,
		"total":   len(sprints),
	})
}

// GetSprint returns a single sprint with its progress
func (c *PortalController) GetSprint(ctx *gin.Context) {
	sprint, err := c.service.GetSprint(ctx.Param("client"), ctx.Param("id"))
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"sprint": sprint})
}

// CreateSprint records a sprint and assigns it a code
func (c *PortalController) CreateSprint(ctx *gin.Context) {
	var input service.CreateSprintInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid sprint payload", "details": err.Error()})
		return
	}

	sprint, err := c.service.CreateSprint(ctx.Param("client"), input)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, gin.H{
		"message": "Sprint created successfully",
		"sprint":  sprint,
	})
}

// UpdateSprint applies partial changes to a sprint
func (c *PortalController) UpdateSprint(ctx *gin.Context) {
	var input service.UpdateSprintInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid sprint payload", "details": err.Error()})
		return
	}

	sprint, err := c.service.UpdateSprint(ctx.Param("client"), ctx.Param("id"), input)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{
		"message": "Sprint updated successfully",
		"sprint":  sprint,
	})
}

// DeleteSprint removes a sprint and its items
func (c *PortalController) DeleteSprint(ctx *gin.Context) {
	if err := c.service.DeleteSprint(ctx.Param("client"), ctx.Param("id")); err != nil {
		respondServiceError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"message": "Sprint deleted successfully"})
}

// ListSprintItems returns the items of one sprint
func (c *PortalController) ListSprintItems(ctx *gin.Context) {
	items, err := c.service.ListSprintItems(ctx.Param("client"), ctx.Param("id"))
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{
		"items": items,
		"total": len(items),
	})
}

// CreateSprintItem adds an item to a sprint and assigns it a code
func (c *PortalController) CreateSprintItem(ctx *gin.Context) {
	var input service.CreateSprintItemInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid sprint item payload", "details": err.Error()})
		return
	}

	item, err := c.service.CreateSprintItem(ctx.Param("client"), ctx.Param("id"), input)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, gin.H{
		"message": "Sprint item created successfully",
		"item":    item,
	})
}

// UpdateSprintItem applies partial changes to a sprint item
func (c *PortalController) UpdateSprintItem(ctx *gin.Context) {
	var input service.UpdateSprintItemInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid sprint item payload", "details": err.Error()})
		return
	}

	item, err := c.service.UpdateSprintItem(ctx.Param("client"), ctx.Param("id"), input)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{
		"message": "Sprint item updated successfully",
		"item":    item,
	})
}

// DeleteSprintItem removes a sprint item
func (c *PortalController) DeleteSprintItem(ctx *gin.Context) {
	if err := c.service.DeleteSprintItem(ctx.Param("client"), ctx.Param("id")); err != nil {
		respondServiceError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"message": "Sprint item deleted successfully"})
}
