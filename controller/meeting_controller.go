package controller

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	service "github.com/morichal/MeetingPortal/service"
)

// ListMeetings returns the client's meetings, newest first
func (c *PortalController) ListMeetings(ctx *gin.Context) {
	meetings, err := c.service.ListMeetings(ctx.Param("client"))
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{
		"meetings": meetings,
		"total":    len(meetings),
	})
}

// GetMeeting returns a single meeting
func (c *PortalController) GetMeeting(ctx *gin.Context) {
	meeting, err := c.service.GetMeeting(ctx.Param("client"), ctx.Param("id"))
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"meeting": meeting})
}

// CreateMeeting records a meeting and assigns it a code
func (c *PortalController) CreateMeeting(ctx *gin.Context) {
	var input service.CreateMeetingInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid meeting payload", "details": err.Error()})
		return
	}

	meeting, err := c.service.CreateMeeting(ctx.Param("client"), input)
	if err != nil {
		log.Printf("[CreateMeeting] Error creating meeting: %v", err)
		respondServiceError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, gin.H{
		"message": "Meeting created successfully",
		"meeting": meeting,
	})
}

// UpdateMeeting applies partial changes to a meeting
func (c *PortalController) UpdateMeeting(ctx *gin.Context) {
	var input service.UpdateMeetingInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid meeting payload", "details": err.Error()})
		return
	}

	meeting, err := c.service.UpdateMeeting(ctx.Param("client"), ctx.Param("id"), input)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{
		"message": "Meeting updated successfully",
		"meeting": meeting,
	})
}

// DeleteMeeting removes a meeting and its dependent records
func (c *PortalController) DeleteMeeting(ctx *gin.Context) {
	if err := c.service.DeleteMeeting(ctx.Param("client"), ctx.Param("id")); err != nil {
		respondServiceError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"message": "Meeting deleted successfully"})
}
