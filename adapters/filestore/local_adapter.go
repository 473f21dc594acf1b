package filestore

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/codeflix/catalog-admin-api/internal/application/service"
	"github.com/codeflix/catalog-admin-api/internal/config"
)

// localAdapter keeps blobs on the local filesystem under baseDir/dir/filename
// and serves them from a static base URL.
type localAdapter struct {
	baseDir string
	baseURL string
}

func NewLocalAdapter(cfg config.Config) (service.FileStore, error) {
	if cfg.Storage.BaseDir == "" {
		return nil, fmt.Errorf("storage base_dir is not configured")
	}
	if err := os.MkdirAll(cfg.Storage.BaseDir, 0o755); err != nil {
		return nil, fmt.Errorf("cannot create storage base dir: %w", err)
	}
	return &localAdapter{
		baseDir: cfg.Storage.BaseDir,
		baseURL: strings.TrimRight(cfg.Storage.BaseURL, "/"),
	}, nil
}

func (a *localAdapter) Store(ctx context.Context, content io.Reader, dir, filename string) error {
	target := filepath.Join(a.baseDir, dir)
	if err := os.MkdirAll(target, 0o755); err != nil {
		return fmt.Errorf("cannot create upload dir: %w", err)
	}

	// Write to a temp file first so a torn write never leaves a partial blob
	// under the final name.
	tmp, err := os.CreateTemp(target, ".upload-*")
	if err != nil {
		return fmt.Errorf("cannot create temp upload file: %w", err)
	}
	if _, err := io.Copy(tmp, content); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to write upload: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to close upload file: %w", err)
	}
	if err := os.Rename(tmp.Name(), filepath.Join(target, filename)); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to place upload file: %w", err)
	}
	return nil
}

func (a *localAdapter) Delete(ctx context.Context, dir, filename string) error {
	err := os.Remove(filepath.Join(a.baseDir, dir, filename))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}

func (a *localAdapter) URLFor(dir, filename string) string {
	return a.baseURL + "/" + dir + "/" + filename
}
