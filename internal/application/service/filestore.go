package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"path/filepath"
	"strings"
)

// FileStore persists uploaded blobs under a per-entity directory.
// Implementations must treat Delete of an absent object as a no-op.
type FileStore interface {
	Store(ctx context.Context, content io.Reader, dir, filename string) error
	Delete(ctx context.Context, dir, filename string) error
	URLFor(dir, filename string) string
}

// HashName derives the storage filename from the file content plus the
// original name's extension. The name is stable for identical content and
// never exposes the client-supplied filename. The reader is rewound so the
// same handle can be stored afterwards.
func HashName(content io.ReadSeeker, originalName string) (string, error) {
	h := sha256.New()
	if _, err := io.Copy(h, content); err != nil {
		return "", fmt.Errorf("failed to hash upload content: %w", err)
	}
	if _, err := content.Seek(0, io.SeekStart); err != nil {
		return "", fmt.Errorf("failed to rewind upload content: %w", err)
	}
	ext := strings.ToLower(filepath.Ext(originalName))
	return hex.EncodeToString(h.Sum(nil))[:40] + ext, nil
}
