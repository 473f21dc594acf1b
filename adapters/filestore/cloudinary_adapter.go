package filestore

import (
	"context"
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"

	"github.com/codeflix/catalog-admin-api/internal/application/service"
	"github.com/codeflix/catalog-admin-api/internal/config"
)

type cloudinaryAdapter struct {
	cld     *cloudinary.Cloudinary
	baseURL string
}

func NewCloudinaryAdapter(cfg config.Config) (service.FileStore, error) {

	if cfg.Cloudinary.CloudName == "" {
		return nil, fmt.Errorf("cloudinary cloud_name has not config")
	}

	cld, err := cloudinary.NewFromParams(
		cfg.Cloudinary.CloudName,
		cfg.Cloudinary.ApiKey,
		cfg.Cloudinary.ApiSecret,
	)
	if err != nil {
		return nil, fmt.Errorf("cannot init cloudinary: %w", err)
	}

	log.Println("connect Cloudinary successfully.")
	return &cloudinaryAdapter{
		cld:     cld,
		baseURL: strings.TrimRight(cfg.Storage.BaseURL, "/"),
	}, nil
}

func (a *cloudinaryAdapter) Store(ctx context.Context, content io.Reader, dir, filename string) error {
	_, err := a.cld.Upload.Upload(ctx, content, uploader.UploadParams{
		PublicID:     dir + "/" + filename,
		ResourceType: "auto",
		Overwrite:    api.Bool(true),
	})
	if err != nil {
		return fmt.Errorf("failed to upload cloudinary: %w", err)
	}
	return nil
}

func (a *cloudinaryAdapter) Delete(ctx context.Context, dir, filename string) error {
	// Destroy of an unknown public ID is reported as "not found" in the
	// result body, not as an error, which matches the no-op contract.
	_, err := a.cld.Upload.Destroy(ctx, uploader.DestroyParams{
		PublicID: dir + "/" + filename,
	})
	if err != nil {
		return fmt.Errorf("failed to delete cloudinary: %w", err)
	}
	return nil
}

func (a *cloudinaryAdapter) URLFor(dir, filename string) string {
	return a.baseURL + "/" + dir + "/" + filename
}
