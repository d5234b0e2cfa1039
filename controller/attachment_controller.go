package controller

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

// ListAttachments returns the files linked to a meeting
func (c *PortalController) ListAttachments(ctx *gin.Context) {
	attachments, err := c.service.ListAttachments(ctx.Param("client"), ctx.Param("id"))
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{
		"attachments": attachments,
		"total":       len(attachments),
	})
}

// UploadAttachment stores a file against a meeting
func (c *PortalController) UploadAttachment(ctx *gin.Context) {
	file, header, err := ctx.Request.FormFile("file")
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Failed to get file from request"})
		return
	}
	defer file.Close()

	attachment, err := c.service.UploadAttachment(
		ctx.Param("client"), ctx.Param("id"),
		file, header,
		ctx.PostForm("description"), ctx.PostForm("uploaded_by"),
	)
	if err != nil {
		log.Printf("[UploadAttachment] Error uploading attachment: %v", err)
		respondServiceError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{
		"message":    "Attachment uploaded successfully",
		"attachment": attachment,
	})
}

// DeleteAttachment removes an attachment record
func (c *PortalController) DeleteAttachment(ctx *gin.Context) {
	if err := c.service.DeleteAttachment(ctx.Param("client"), ctx.Param("id")); err != nil {
		respondServiceError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"message": "Attachment deleted successfully"})
}
