package storage

import (
	"context"
	"fmt"
	"io"
	"net/url"

	"cloud.google.com/go/storage"
	"github.com/google/uuid"
	"google.golang.org/api/option"
)

// FirebaseStore implements AttachmentStore on the Firebase Storage bucket.
type FirebaseStore struct {
	client     *storage.Client
	bucketName string
}

// NewFirebaseStore creates a store authenticated with the service account file.
func NewFirebaseStore(ctx context.Context, serviceAccountJSONPath, bucketName string) (*FirebaseStore, error) {
	if bucketName == "" {
		return nil, fmt.Errorf("firebase bucket is not configured")
	}
	client, err := storage.NewClient(ctx, option.WithCredentialsFile(serviceAccountJSONPath))
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}
	return &FirebaseStore{client: client, bucketName: bucketName}, nil
}

// Upload streams r to the bucket with a download token so the returned URL
// works the same way Firebase client SDK URLs do.
func (s *FirebaseStore) Upload(ctx context.Context, objectPath string, r io.Reader, contentType string) (string, error) {
	token := uuid.New().String()

	w := s.client.Bucket(s.bucketName).Object(objectPath).NewWriter(ctx)
	w.ObjectAttrs.ContentType = contentType
	w.ObjectAttrs.Metadata = map[string]string{"firebaseStorageDownloadTokens": token}

	if _, err := io.Copy(w, r); err != nil {
		_ = w.Close()
		return "", fmt.Errorf("failed to copy file to storage: %w", err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("failed to close writer: %w", err)
	}
	return downloadURL(s.bucketName, objectPath, token), nil
}

// Delete deletes an object from the bucket.
func (s *FirebaseStore) Delete(ctx context.Context, objectPath, _ string) error {
	if err := s.client.Bucket(s.bucketName).Object(objectPath).Delete(ctx); err != nil {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}

// Close releases the underlying client.
func (s *FirebaseStore) Close() error {
	return s.client.Close()
}

func downloadURL(bucket, objectPath, token string) string {
	return fmt.Sprintf("https://firebasestorage.googleapis.com/v0/b/%s/o/%s?alt=media&token=%s",
		bucket, url.PathEscape(objectPath), token)
}
