package services

import (
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/elastic/go-elasticsearch/v8"
	"gorm.io/gorm"

	model "github.com/morichal/MeetingPortal/models"
)

// PortalService holds the database handle plus the optional S3 and
// Elasticsearch clients. All resource operations hang off this one struct.
type PortalService struct {
	db       *gorm.DB
	s3Client *s3.S3
	esClient *elasticsearch.Client
}

// NewPortalService initializes the service. S3 and Elasticsearch are both
// optional: attachment uploads and search return errors when their client is
// not configured, everything else keeps working.
func NewPortalService(db *gorm.DB) (*PortalService, error) {
	if db == nil {
		return nil, fmt.Errorf("nil database handle")
	}

	svc := &PortalService{db: db}

	region := os.Getenv("S3_REGION")
	endpoint := os.Getenv("S3_ENDPOINT")
	accessKey := os.Getenv("S3_ACCESS_KEY")
	secretKey := os.Getenv("S3_SECRET_KEY")

	if region != "" && endpoint != "" && accessKey != "" && secretKey != "" {
		sess, err := session.NewSession(&aws.Config{
			Region:           aws.String(region),
			Endpoint:         aws.String(endpoint),
			DisableSSL:       aws.Bool(false),
			Credentials:      credentials.NewStaticCredentials(accessKey, secretKey, ""),
			S3ForcePathStyle: aws.Bool(true),
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create AWS session: %w", err)
		}
		svc.s3Client = s3.New(sess)
	} else {
		log.Println("Warning: S3 not configured, attachment uploads disabled")
	}

	esURL := os.Getenv("ELASTICSEARCH_URL")
	if esURL != "" {
		esClient, err := elasticsearch.NewClient(elasticsearch.Config{
			Addresses: []string{esURL},
		})
		if err != nil {
			log.Printf("Warning: Failed to create Elasticsearch client: %v", err)
		} else {
			svc.esClient = esClient
		}
	}

	return svc, nil
}

// ClientBySlug resolves a client workspace from its URL slug.
func (s *PortalService) ClientBySlug(slug string) (*model.Client, error) {
	var client model.Client
	if err := s.db.Where("slug = ?", slug).First(&client).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("client %s: %w", slug, ErrNotFound)
		}
		log.Printf("[ClientBySlug] Error fetching client %s: %v", slug, err)
		return nil, err
	}
	return &client, nil
}
