package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	service "github.com/morichal/MeetingPortal/service"
)

// ListActionItems returns action items, optionally filtered by status and assignee
func (c *PortalController) ListActionItems(ctx *gin.Context) {
	items, err := c.service.ListActionItems(ctx.Param("client"), ctx.Query("status"), ctx.Query("assigned_to"))
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{
		"items": items,
		"total": len(items),
	})
}

// GetActionItem returns a single action item
func (c *PortalController) GetActionItem(ctx *gin.Context) {
	item, err := c.service.GetActionItem(ctx.Param("client"), ctx.Param("id"))
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"item": item})
}

// CreateActionItem records an action item and assigns it a code
func (c *PortalController) CreateActionItem(ctx *gin.Context) {
	var input service.CreateActionItemInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid action item payload", "details": err.Error()})
		return
	}

	item, err := c.service.CreateActionItem(ctx.Param("client"), input)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, gin.H{
		"message": "Action item created successfully",
		"item":    item,
	})
}

// UpdateActionItem applies partial changes to an action item
func (c *PortalController) UpdateActionItem(ctx *gin.Context) {
	var input service.UpdateActionItemInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid action item payload", "details": err.Error()})
		return
	}

	item, err := c.service.UpdateActionItem(ctx.Param("client"), ctx.Param("id"), input)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{
		"message": "Action item updated successfully",
		"item":    item,
	})
}

// CompleteActionItem marks an action item as completed
func (c *PortalController) CompleteActionItem(ctx *gin.Context) {
	item, err := c.service.CompleteActionItem(ctx.Param("client"), ctx.Param("id"))
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{
		"message": "Action item marked as completed",
		"item":    item,
	})
}

// DeleteActionItem removes an action item
func (c *PortalController) DeleteActionItem(ctx *gin.Context) {
	if err := c.service.DeleteActionItem(ctx.Param("client"), ctx.Param("id")); err != nil {
		respondServiceError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"message": "Action item deleted successfully"})
}
