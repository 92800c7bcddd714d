package storage

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"lexdesk/config"

	"github.com/google/uuid"
)

// AttachmentStore holds chat attachment bytes.
type AttachmentStore interface {
	// Upload writes r under objectPath and returns a URL clients can fetch.
	Upload(ctx context.Context, objectPath string, r io.Reader, contentType string) (string, error)
	// Delete removes the object at objectPath. contentType is the type it was
	// uploaded with; backends that partition objects by kind need it.
	Delete(ctx context.Context, objectPath, contentType string) error
}

// ChatObjectPath returns the sender-scoped path for a new attachment:
// chat/<senderId>/<uuid>-<filename>.
func ChatObjectPath(senderID, filename string) string {
	name := path.Base(strings.ReplaceAll(filename, "\\", "/"))
	if name == "." || name == "/" {
		name = "file"
	}
	return path.Join("chat", senderID, uuid.New().String()+"-"+name)
}

// New selects the backend named by STORAGE_BACKEND.
func New(ctx context.Context, cfg *config.Config) (AttachmentStore, error) {
	switch cfg.StorageBackend {
	case "", "firebase":
		return NewFirebaseStore(ctx, cfg.FirebaseCredentialsFile, cfg.FirebaseBucket)
	case "cloudinary":
		return NewCloudinaryStore(cfg.CloudinaryCloudName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret)
	}
	return nil, fmt.Errorf("unknown storage backend %q", cfg.StorageBackend)
}
