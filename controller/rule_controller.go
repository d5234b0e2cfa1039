package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	service "github.com/morichal/MeetingPortal/service"
)

// ListBusinessRules returns the client's business rules, optionally filtered
// by category and status
func (c *PortalController) ListBusinessRules(ctx *gin.Context) {
	rules, err := c.service.ListBusinessRules(ctx.Param("client"), ctx.Query("category"), ctx.Query("status"))
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{
		"rules": rules,
		"total": len(rules),
	})
}

// CreateBusinessRule records a rule and assigns it a code
func (c *PortalController) CreateBusinessRule(ctx *gin.Context) {
	var input service.CreateBusinessRuleInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid rule payload", "details": err.Error()})
		return
	}

	rule, err := c.service.CreateBusinessRule(ctx.Param("client"), input)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, gin.H{
		"message": "Business rule created successfully",
		"rule":    rule,
	})
}

// UpdateBusinessRule applies partial changes to a rule
func (c *PortalController) UpdateBusinessRule(ctx *gin.Context) {
	var input service.UpdateBusinessRuleInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid rule payload", "details": err.Error()})
		return
	}

	rule, err := c.service.UpdateBusinessRule(ctx.Param("client"), ctx.Param("id"), input)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{
		"message": "Business rule updated successfully",
		"rule":    rule,
	})
}

// DeleteBusinessRule removes a rule
func (c *PortalController) DeleteBusinessRule(ctx *gin.Context) {
	if err := c.service.DeleteBusinessRule(ctx.Param("client"), ctx.Param("id")); err != nil {
		respondServiceError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"message": "Business rule deleted successfully"})
}

// ListDecisions returns the client's decisions, optionally filtered by status
func (c *PortalController) ListDecisions(ctx *gin.Context) {
	decisions, err := c.service.ListDecisions(ctx.Param("client"), ctx.Query("status"))
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{
		"decisions": decisions,
		"total":     len(decisions),
	})
}

// CreateDecision records a decision and assigns it a code
func (c *PortalController) CreateDecision(ctx *gin.Context) {
	var input service.CreateDecisionInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid decision payload", "details": err.Error()})
		return
	}

	decision, err := c.service.CreateDecision(ctx.Param("client"), input)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, gin.H{
		"message":  "Decision created successfully",
		"decision": decision,
	})
}

// UpdateDecision applies partial changes to a decision
func (c *PortalController) UpdateDecision(ctx *gin.Context) {
	var input service.UpdateDecisionInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid decision payload", "details": err.Error()})
		return
	}

	decision, err := c.service.UpdateDecision(ctx.Param("client"), ctx.Param("id"), input)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{
		"message":  "Decision updated successfully",
		"decision": decision,
	})
}

// DeleteDecision removes a decision
func (c *PortalController) DeleteDecision(ctx *gin.Context) {
	if err := c.service.DeleteDecision(ctx.Param("client"), ctx.Param("id")); err != nil {
		respondServiceError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"message": "Decision deleted successfully"})
}
