package client

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/anthanhphan/go-fileshare/internal/server/domain"
	"github.com/anthanhphan/go-fileshare/pkg/idgen"
)

// DefaultIdentityPath is where the uploader id lives for the current user profile.
func DefaultIdentityPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "fileshare", "uploader_id"), nil
}

// LoadOrCreateUploaderID returns the uploader id stored at path, generating
// and persisting a new one on first use.
func LoadOrCreateUploaderID(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err == nil {
		if id := strings.TrimSpace(string(data)); strings.HasPrefix(id, idgen.UploaderPrefix) {
			return id, nil
		}
	} else if !errors.Is(err, fs.ErrNotExist) {
		return "", fmt.Errorf("read identity: %w", err)
	}

	id := idgen.UploaderID()
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return "", fmt.Errorf("create identity dir: %w", err)
	}
	if err := os.WriteFile(path, []byte(id+"\n"), 0o600); err != nil {
		return "", fmt.Errorf("write identity: %w", err)
	}
	return id, nil
}

// IsOwner reports whether rec was uploaded under uploaderID.
func IsOwner(rec *domain.FileRecord, uploaderID string) bool {
	return rec != nil && rec.IsOwner(uploaderID)
}
