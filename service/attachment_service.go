package services

import (
	"bytes"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/s3"
	"gorm.io/gorm"

	model "github.com/morichal/MeetingPortal/models"
)

func (s *PortalService) ListAttachments(clientSlug, meetingID string) ([]model.Attachment, error) {
	client, err := s.ClientBySlug(clientSlug)
	if err != nil {
		return nil, err
	}

	var attachments []model.Attachment
	if err := s.db.Where("client_id = ? AND meeting_id = ?", client.ID, meetingID).
		Order("created_at DESC").Find(&attachments).Error; err != nil {
		log.Printf("[ListAttachments] Error fetching attachments for meeting %s: %v", meetingID, err)
		return nil, err
	}
	return attachments, nil
}

// UploadAttachment stores the file in S3 and records it against the meeting.
func (s *PortalService) UploadAttachment(clientSlug, meetingID string, file multipart.File, header *multipart.FileHeader, description, uploadedBy string) (*model.Attachment, error) {
	if s.s3Client == nil {
		return nil, fmt.Errorf("attachment storage is not configured")
	}

	client, err := s.ClientBySlug(clientSlug)
	if err != nil {
		return nil, err
	}

	var meeting model.Meeting
	if err := s.db.Where("id = ? AND client_id = ?", meetingID, client.ID).First(&meeting).Error; err != nil {
		return nil, notFoundOr(err, "meeting", meetingID)
	}

	fileBytes, err := io.ReadAll(file)
	if err != nil {
		log.Printf("[UploadAttachment] Error reading file: %v", err)
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	bucket := os.Getenv("S3_BUCKET")
	if bucket == "" {
		return nil, fmt.Errorf("bucket name not configured")
	}

	fileID := fmt.Sprintf("%s/%d-%s", client.Slug, time.Now().Unix(), header.Filename)
	uploadInput := &s3.PutObjectInput{
		Bucket:      aws.String(bucket),
		Key:         aws.String(fileID),
		Body:        bytes.NewReader(fileBytes),
		ContentType: aws.String(http.DetectContentType(fileBytes)),
	}
	if _, err := s.s3Client.PutObject(uploadInput); err != nil {
		log.Printf("[UploadAttachment] S3 upload error: %v", err)
		return nil, fmt.Errorf("failed to upload file to S3: %w", err)
	}

	fileURL := fmt.Sprintf("%s/object/public/%s/%s", os.Getenv("S3_PUBLIC_URL"), bucket, fileID)
	log.Printf("[UploadAttachment] File stored at: %s", fileURL)

	attachment := model.Attachment{
		ClientID:    client.ID,
		MeetingID:   meeting.ID,
		Filename:    header.Filename,
		FileType:    inferFileType(header.Filename),
		FileURL:     fileURL,
		Description: description,
		UploadedBy:  uploadedBy,
	}
	if err := s.db.Create(&attachment).Error; err != nil {
		log.Printf("[UploadAttachment] Error saving attachment record: %v", err)
		return nil, err
	}
	return &attachment, nil
}

func (s *PortalService) DeleteAttachment(clientSlug, attachmentID string) error {
	client, err := s.ClientBySlug(clientSlug)
	if err != nil {
		return err
	}
	result := s.db.Where("id = ? AND client_id = ?", attachmentID, client.ID).Delete(&model.Attachment{})
	if result.Error != nil {
		log.Printf("[DeleteAttachment] Error deleting attachment %s: %v", attachmentID, result.Error)
		return result.Error
	}
	if result.RowsAffected == 0 {
		return notFoundOr(gorm.ErrRecordNotFound, "attachment", attachmentID)
	}
	return nil
}

func inferFileType(filename string) string {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf":
		return "pdf"
	case ".doc", ".docx", ".txt", ".md", ".rtf":
		return "doc"
	case ".png", ".jpg", ".jpeg", ".gif", ".svg", ".webp":
		return "image"
	case ".xls", ".xlsx", ".csv":
		return "spreadsheet"
	case ".ppt", ".pptx", ".key":
		return "presentation"
	default:
		return "other"
	}
}
