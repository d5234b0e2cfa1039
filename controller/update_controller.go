package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	service "github.com/morichal/MeetingPortal/service"
)

// ListUpdates returns progress updates, optionally filtered by category
func (c *PortalController) ListUpdates(ctx *gin.Context) {
	updates, err := c.service.ListUpdates(ctx.Param("client"), ctx.Query("category"))
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{
		"updates": updates,
		"total":   len(updates),
	})
}

// CreateUpdate records a progress update and assigns it a code
func (c *PortalController) CreateUpdate(ctx *gin.Context) {
	var input service.CreateUpdateInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid update payload", "details": err.Error()})
		return
	}

	update, err := c.service.CreateUpdate(ctx.Param("client"), input)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, gin.H{
		"message": "Update created successfully",
		"update":  update,
	})
}

// DeleteUpdate removes a progress update
func (c *PortalController) DeleteUpdate(ctx *gin.Context) {
	if err := c.service.DeleteUpdate(ctx.Param("client"), ctx.Param("id")); err != nil {
		respondServiceError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"message": "Update deleted successfully"})
}

// ListBlockers returns blockers, optionally filtered by status and severity
func (c *PortalController) ListBlockers(ctx *gin.Context) {
	blockers, err := c.service.ListBlockers(ctx.Param("client"), ctx.Query("status"), ctx.Query("severity"))
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{
		"blockers": blockers,
		"total":    len(blockers),
	})
}

// CreateBlocker records a blocker and assigns it a code
func (c *PortalController) CreateBlocker(ctx *gin.Context) {
	var input service.CreateBlockerInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid blocker payload", "details": err.Error()})
		return
	}

	blocker, err := c.service.CreateBlocker(ctx.Param("client"), input)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, gin.H{
		"message": "Blocker created successfully",
		"blocker": blocker,
	})
}

// UpdateBlocker applies partial changes to a blocker
func (c *PortalController) UpdateBlocker(ctx *gin.Context) {
	var input service.UpdateBlockerInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid blocker payload", "details": err.Error()})
		return
	}

	blocker, err := c.service.UpdateBlocker(ctx.Param("client"), ctx.Param("id"), input)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{
		"message": "Blocker updated successfully",
		"blocker": blocker,
	})
}

// ResolveBlocker marks a blocker resolved with a resolution note
func (c *PortalController) ResolveBlocker(ctx *gin.Context) {
	var req struct {
		Resolution string `json:"resolution" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Resolution is required", "details": err.Error()})
		return
	}

	blocker, err := c.service.ResolveBlocker(ctx.Param("client"), ctx.Param("id"), req.Resolution)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{
		"message": "Blocker resolved successfully",
		"blocker": blocker,
	})
}

// DeleteBlocker removes a blocker
func (c *PortalController) DeleteBlocker(ctx *gin.Context) {
	if err := c.service.DeleteBlocker(ctx.Param("client"), ctx.Param("id")); err != nil {
		respondServiceError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"message": "Blocker deleted successfully"})
}
