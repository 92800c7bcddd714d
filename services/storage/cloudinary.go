package storage

import (
	"context"
	"fmt"
	"io"
	"mime"
	"path"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// CloudinaryStore implements AttachmentStore on Cloudinary.
type CloudinaryStore struct {
	cld *cloudinary.Cloudinary
}

// NewCloudinaryStore creates a Cloudinary-backed store.
func NewCloudinaryStore(cloudName, apiKey, apiSecret string) (*CloudinaryStore, error) {
	if cloudName == "" || apiKey == "" || apiSecret == "" {
		return nil, fmt.Errorf("cloudinary credentials not set in configuration")
	}
	cld, err := cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Cloudinary: %w", err)
	}
	return &CloudinaryStore{cld: cld}, nil
}

// Upload sends r to Cloudinary using objectPath as the public ID.
func (s *CloudinaryStore) Upload(ctx context.Context, objectPath string, r io.Reader, contentType string) (string, error) {
	result, err := s.cld.Upload.Upload(ctx, r, uploader.UploadParams{
		PublicID:     objectPath,
		ResourceType: resourceType(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload file: %w", err)
	}
	if result.SecureURL == "" {
		return "", fmt.Errorf("cloudinary returned no URL for %s", objectPath)
	}
	return result.SecureURL, nil
}

// Delete removes a file given its public ID. Cloudinary scopes public IDs by
// resource type, so the upload's content type picks the bucket.
func (s *CloudinaryStore) Delete(ctx context.Context, objectPath, contentType string) error {
	_, err := s.cld.Upload.Destroy(ctx, uploader.DestroyParams{
		PublicID:     objectPath,
		ResourceType: destroyResourceType(objectPath, contentType),
	})
	if err != nil {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}

// destroyResourceType prefers the stored content type and falls back to the
// extension for attachments saved without one.
func destroyResourceType(objectPath, contentType string) string {
	if contentType == "" {
		contentType = mime.TypeByExtension(path.Ext(objectPath))
	}
	return resourceType(contentType)
}

// resourceType maps a MIME type onto Cloudinary's image/video/raw buckets.
func resourceType(contentType string) string {
	switch {
	case strings.HasPrefix(contentType, "image/"):
		return "image"
	case strings.HasPrefix(contentType, "video/"), strings.HasPrefix(contentType, "audio/"):
		return "video"
	}
	return "raw"
}
