package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	service "github.com/morichal/MeetingPortal/service"
)

// ListQuestions returns open questions, optionally filtered by status and priority
func (c *PortalController) ListQuestions(ctx *gin.Context) {
	questions, err := c.service.ListQuestions(ctx.Param("client"), ctx.Query("status"), ctx.Query("priority"))
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{
		"questions": questions,
		"total":     len(questions),
	})
}

// GetQuestion returns a single question
func (c *PortalController) GetQuestion(ctx *gin.Context) {
	question, err := c.service.GetQuestion(ctx.Param("client"), ctx.Param("id"))
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"question": question})
}

// CreateQuestion records a question and assigns it a code
func (c *PortalController) CreateQuestion(ctx *gin.Context) {
	var input service.CreateQuestionInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid question payload", "details": err.Error()})
		return
	}

	question, err := c.service.CreateQuestion(ctx.Param("client"), input)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, gin.H{
		"message":  "Question created successfully",
		"question": question,
	})
}

// UpdateQuestion applies partial changes to a question
func (c *PortalController) UpdateQuestion(ctx *gin.Context) {
	var input service.UpdateQuestionInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid question payload", "details": err.Error()})
		return
	}

	question, err := c.service.UpdateQuestion(ctx.Param("client"), ctx.Param("id"), input)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{
		"message":  "Question updated successfully",
		"question": question,
	})
}

// AnswerQuestion records a manual answer and marks the question answered
func (c *PortalController) AnswerQuestion(ctx *gin.Context) {
	var input service.AnswerQuestionInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid answer payload", "details": err.Error()})
		return
	}

	question, err := c.service.AnswerQuestion(ctx.Param("client"), ctx.Param("id"), input)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{
		"message":  "Question answered successfully",
		"question": question,
	})
}

// DeleteQuestion removes a question
func (c *PortalController) DeleteQuestion(ctx *gin.Context) {
	if err := c.service.DeleteQuestion(ctx.Param("client"), ctx.Param("id")); err != nil {
		respondServiceError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"message": "Question deleted successfully"})
}
