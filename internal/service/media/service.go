package media

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"

	"accessdesk/internal/config"
	"accessdesk/internal/domain"
	"accessdesk/internal/repository"
)

// Service stores employee profile images in object storage and keeps the
// employee record pointing at the current one.
type Service interface {
	UploadProfileImage(ctx context.Context, employeeID uuid.UUID, fileName string, fileSize int64, mimeType string, reader io.Reader) (string, error)
	RemoveProfileImage(ctx context.Context, employeeID uuid.UUID) error
}

type service struct {
	employeeRepo repository.EmployeeRepository
	minioClient  *minio.Client
	cfg          *config.Config
}

func NewService(employeeRepo repository.EmployeeRepository, minioClient *minio.Client, cfg *config.Config) Service {
	return &service{
		employeeRepo: employeeRepo,
		minioClient:  minioClient,
		cfg:          cfg,
	}
}

func (s *service) UploadProfileImage(ctx context.Context, employeeID uuid.UUID, fileName string, fileSize int64, mimeType string, reader io.Reader) (string, error) {
	if !strings.HasPrefix(mimeType, "image/") {
		return "", domain.NewValidationError("profile image must be an image file, got %s", mimeType)
	}

	employee, err := s.employeeRepo.GetByID(ctx, employeeID)
	if err != nil {
		return "", err
	}

	storagePath := fmt.Sprintf("profiles/%s/%s", time.Now().Format("2006/01"), uuid.New().String())

	_, err = s.minioClient.PutObject(ctx, s.cfg.MinIOBucket, storagePath, reader, fileSize, minio.PutObjectOptions{
		ContentType: mimeType,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to MinIO: %w", err)
	}

	publicURL := s.getPublicURL(storagePath)
	if err := s.employeeRepo.SetProfileImage(ctx, employee.ID, &publicURL); err != nil {
		_ = s.minioClient.RemoveObject(ctx, s.cfg.MinIOBucket, storagePath, minio.RemoveObjectOptions{})
		return "", err
	}

	return publicURL, nil
}

func (s *service) RemoveProfileImage(ctx context.Context, employeeID uuid.UUID) error {
	employee, err := s.employeeRepo.GetByID(ctx, employeeID)
	if err != nil {
		return err
	}
	if employee.ProfileImage == nil {
		return nil
	}

	if err := s.employeeRepo.SetProfileImage(ctx, employee.ID, nil); err != nil {
		return err
	}

	if path, ok := s.storagePathFromURL(*employee.ProfileImage); ok {
		_ = s.minioClient.RemoveObject(ctx, s.cfg.MinIOBucket, path, minio.RemoveObjectOptions{})
	}
	return nil
}

func (s *service) getPublicURL(storagePath string) string {
	scheme := "http"
	if s.cfg.MinIOPublicUseSSL {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s/%s/%s", scheme, s.cfg.MinIOPublicEndpoint, s.cfg.MinIOBucket, url.PathEscape(storagePath))
}

func (s *service) storagePathFromURL(publicURL string) (string, bool) {
	parsed, err := url.Parse(publicURL)
	if err != nil {
		return "", false
	}
	prefix := "/" + s.cfg.MinIOBucket + "/"
	if !strings.HasPrefix(parsed.Path, prefix) {
		return "", false
	}
	path, err := url.PathUnescape(strings.TrimPrefix(parsed.Path, prefix))
	if err != nil {
		return "", false
	}
	return path, true
}
