package controller

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	service "github.com/morichal/MeetingPortal/service"
)

// ListClients returns every client workspace
func (c *PortalController) ListClients(ctx *gin.Context) {
	clients, err := c.service.ListClients()
	if err != nil {
		log.Printf("Error fetching clients: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve clients"})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{
		"clients": clients,
		"total":   len(clients),
	})
}

// CreateClient provisions a new client workspace
func (c *PortalController) CreateClient(ctx *gin.Context) {
	var input service.CreateClientInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid client payload", "details": err.Error()})
		return
	}

	client, err := c.service.CreateClient(input)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, gin.H{
		"message": "Client created successfully",
		"client":  client,
	})
}

// UpdateClient renames a client workspace
func (c *PortalController) UpdateClient(ctx *gin.Context) {
	var req struct {
		Name string `json:"name" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid client payload", "details": err.Error()})
		return
	}

	client, err := c.service.UpdateClient(ctx.Param("client"), req.Name)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{
		"message": "Client updated successfully",
		"client":  client,
	})
}

// DeleteClient removes a client workspace and all its records
func (c *PortalController) DeleteClient(ctx *gin.Context) {
	if err := c.service.DeleteClient(ctx.Param("client")); err != nil {
		respondServiceError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"message": "Client deleted successfully"})
}

// AllData returns the client's full dataset in one payload
func (c *PortalController) AllData(ctx *gin.Context) {
	data, err := c.service.ClientAllData(ctx.Param("client"))
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, data)
}

// ExportData returns the full dataset as a file download
func (c *PortalController) ExportData(ctx *gin.Context) {
	data, err := c.service.ClientAllData(ctx.Param("client"))
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	ctx.Header("Content-Disposition", "attachment; filename="+ctx.Param("client")+"-export.json")
	ctx.JSON(http.StatusOK, data)
}
