package controller

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

// ListSuggestions returns the client's AI suggestions, optionally filtered
// by status and type query parameters
func (c *PortalController) ListSuggestions(ctx *gin.Context) {
	suggestions, err := c.service.ListSuggestions(ctx.Param("client"), ctx.Query("status"), ctx.Query("type"))
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{
		"suggestions": suggestions,
		"total":       len(suggestions),
	})
}

// MeetingSuggestions returns the suggestions produced from one meeting
func (c *PortalController) MeetingSuggestions(ctx *gin.Context) {
	suggestions, err := c.service.MeetingSuggestions(ctx.Param("client"), ctx.Param("id"))
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{
		"suggestions": suggestions,
		"total":       len(suggestions),
	})
}

// ReviewSuggestion approves or rejects a pending suggestion. Approval also
// applies the suggestion to its target record in the same transaction.
func (c *PortalController) ReviewSuggestion(ctx *gin.Context) {
	var req struct {
		Action     string `json:"action" binding:"required,oneof=approve reject"`
		ReviewedBy string `json:"reviewed_by"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid review payload", "details": err.Error()})
		return
	}

	suggestion, err := c.service.ReviewSuggestion(ctx.Param("client"), ctx.Param("id"), req.Action, req.ReviewedBy)
	if err != nil {
		log.Printf("[ReviewSuggestion] Error reviewing suggestion %s: %v", ctx.Param("id"), err)
		respondServiceError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message":    "Suggestion reviewed successfully",
		"suggestion": suggestion,
	})
}

// BatchApprove approves a batch of pending suggestions, continuing past
// individual failures and reporting a per-suggestion outcome
func (c *PortalController) BatchApprove(ctx *gin.Context) {
	var req struct {
		IDs        []string `json:"ids" binding:"required,min=1"`
		ReviewedBy string   `json:"reviewed_by"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid batch payload", "details": err.Error()})
		return
	}

	approved, results, err := c.service.BatchApprove(ctx.Param("client"), req.IDs, req.ReviewedBy)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message":        "Batch review completed",
		"approved_count": approved,
		"results":        results,
	})
}

// DeleteSuggestion discards a suggestion without applying it
func (c *PortalController) DeleteSuggestion(ctx *gin.Context) {
	if err := c.service.DeleteSuggestion(ctx.Param("client"), ctx.Param("id")); err != nil {
		respondServiceError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"message": "Suggestion deleted successfully"})
}
