package service

import (
	"bytes"
	"context"
	"fmt"
	"log"

	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
)

// DriveService stores preview images in a Google Drive folder
type DriveService struct {
	client   *drive.Service
	folderID string
}

// NewDriveService creates a new DriveService instance
// credentialsPath should be the path to the Service Account JSON file
func NewDriveService(ctx context.Context, credentialsPath, folderID string) (*DriveService, error) {
	return NewDriveServiceWithOptions(ctx, folderID, option.WithCredentialsFile(credentialsPath))
}

// NewDriveServiceWithOptions creates a DriveService from explicit client options
func NewDriveServiceWithOptions(ctx context.Context, folderID string, opts ...option.ClientOption) (*DriveService, error) {
	driveService, err := drive.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create drive service: %w", err)
	}

	return &DriveService{
		client:   driveService,
		folderID: folderID,
	}, nil
}

// Ensure DriveService implements PreviewStore
var _ PreviewStore = (*DriveService)(nil)

// Put uploads a PNG preview, shares it read-only and returns its public URL
func (ds *DriveService) Put(ctx context.Context, name string, data []byte) (string, error) {
	file := &drive.File{
		Name:     name,
		MimeType: "image/png",
	}
	if ds.folderID != "" {
		file.Parents = []string{ds.folderID}
	}

	created, err := ds.client.Files.Create(file).
		Media(bytes.NewReader(data)).
		Fields("id").
		Context(ctx).
		Do()
	if err != nil {
		return "", fmt.Errorf("failed to upload preview: %w", err)
	}

	_, err = ds.client.Permissions.Create(created.Id, &drive.Permission{Type: "anyone", Role: "reader"}).
		Context(ctx).
		Do()
	if err != nil {
		return "", fmt.Errorf("failed to share preview: %w", err)
	}

	log.Printf("✓ Preview uploaded to Drive: %s (%s)", name, created.Id)
	return fmt.Sprintf("https://drive.google.com/uc?id=%s", created.Id), nil
}
