package video

import (
	"context"
	"io"

	"go.uber.org/zap"

	"github.com/codeflix/catalog-admin-api/adapters/event"
	"github.com/codeflix/catalog-admin-api/internal/application/service"
	"github.com/codeflix/catalog-admin-api/internal/application/validation"
	"github.com/codeflix/catalog-admin-api/internal/domain/video"
	"github.com/codeflix/catalog-admin-api/pkg/apperror"
	"github.com/codeflix/catalog-admin-api/pkg/logger"
	"github.com/google/uuid"
)

// FileInput is a raw upload taken from the request. Name is only consulted
// for its extension; the stored filename is derived from the content.
type FileInput struct {
	Name    string
	Size    int64
	Content io.ReadSeeker
}

// SaveVideoInput is shared by create and update. Files is keyed by the
// video.Field* constants.
type SaveVideoInput struct {
	Title        string
	Description  string
	YearLaunched int
	Opened       bool
	Rating       video.Rating
	Duration     int
	CategoryIDs  []uuid.UUID
	GenreIDs     []uuid.UUID
	Files        map[string]*FileInput
}

type upload struct {
	name    string
	content io.Reader
	// held marks an upload whose name the entity already carried before
	// this attempt: the blob exists, so a failed attempt must not remove it.
	held bool
}

var fileFields = []string{
	video.FieldThumbFile,
	video.FieldBannerFile,
	video.FieldTrailerFile,
	video.FieldVideoFile,
}

// saver coordinates the row write, the junction sync and the file uploads so
// they commit or fail as one unit. On failure every file stored by the
// attempt is removed again before the error is returned; files that existed
// before the attempt are never touched. Superseded old files are only
// deleted after a successful commit.
type saver struct {
	videoRepo video.Repository
	rules     *validation.VideoRules
	tx        service.Transactor
	store     service.FileStore
	cache     service.VideoCache
	events    event.Publisher
	logger    logger.Logger
}

// extractFiles assigns the destination filename of every upload to the
// entity's file columns and returns the uploads plus the filenames they
// supersede. Must run before the transaction starts so a rollback never
// leaves a half-named row.
func (s *saver) extractFiles(v *video.Video, files map[string]*FileInput) ([]upload, []string, error) {
	var uploads []upload
	var replaced []string
	for _, field := range fileFields {
		f := files[field]
		if f == nil {
			continue
		}
		name, err := service.HashName(f.Content, f.Name)
		if err != nil {
			return nil, nil, apperror.NewInternal("failed to derive upload filename", err)
		}
		ref := v.FileRef(field)
		// Re-uploading identical content keeps the same name; deleting the
		// "old" file would then remove the new one.
		held := *ref != nil && **ref == name
		if *ref != nil && !held {
			replaced = append(replaced, **ref)
		}
		n := name
		*ref = &n
		uploads = append(uploads, upload{name: name, content: f.Content, held: held})
	}
	return uploads, replaced, nil
}

// persist runs the transactional window: row write, relation sync, file
// uploads, commit. Uploads happen last so any failure inside the window
// rolls back the row and junctions together, and the compensating loop
// below removes whatever this attempt already wrote to storage.
func (s *saver) persist(ctx context.Context, v *video.Video, in SaveVideoInput, uploads []upload, isCreate bool) error {
	attempted := make([]upload, 0, len(uploads))
	err := s.tx.InTx(ctx, func(txCtx context.Context) error {
		if isCreate {
			if err := s.videoRepo.Save(txCtx, v); err != nil {
				return err
			}
		} else {
			if err := s.videoRepo.Update(txCtx, v); err != nil {
				return err
			}
		}
		if in.CategoryIDs != nil {
			if err := s.videoRepo.SyncCategories(txCtx, v.ID, in.CategoryIDs); err != nil {
				return err
			}
		}
		if in.GenreIDs != nil {
			if err := s.videoRepo.SyncGenres(txCtx, v.ID, in.GenreIDs); err != nil {
				return err
			}
		}
		for _, up := range uploads {
			attempted = append(attempted, up)
			if err := s.store.Store(ctx, up.content, v.UploadDir(), up.name); err != nil {
				return apperror.NewInternal("failed to store uploaded file", err)
			}
		}
		return nil
	})
	if err != nil {
		for _, up := range attempted {
			// A held name is a blob the rolled-back row still points at.
			if up.held {
				continue
			}
			if derr := s.store.Delete(ctx, v.UploadDir(), up.name); derr != nil {
				s.logger.Error("failed to remove uploaded file after rollback", derr,
					zap.String("video_id", v.ID.String()), zap.String("file", up.name))
			}
		}
		return err
	}
	return nil
}

// deleteReplaced removes superseded files once the new state is committed.
func (s *saver) deleteReplaced(ctx context.Context, v *video.Video, replaced []string) {
	for _, name := range replaced {
		if err := s.store.Delete(ctx, v.UploadDir(), name); err != nil {
			s.logger.Warn("failed to delete superseded file",
				zap.String("video_id", v.ID.String()), zap.String("file", name), zap.Error(err))
		}
	}
}

func (s *saver) publish(eventType string, v *video.Video) {
	if s.events == nil {
		return
	}
	go func() {
		payload := event.CatalogEventPayload{
			EventType: eventType,
			VideoID:   v.ID,
			Title:     v.Title,
		}
		if err := s.events.PublishCatalogEvent(context.Background(), payload); err != nil {
			s.logger.Error("failed to publish catalog event", err,
				zap.String("event_type", eventType), zap.String("video_id", v.ID.String()))
		}
	}()
}
