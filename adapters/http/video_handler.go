package http

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/codeflix/catalog-admin-api/internal/application/service"
	videoUC "github.com/codeflix/catalog-admin-api/internal/application/usecase/video"
	"github.com/codeflix/catalog-admin-api/internal/domain/video"
	"github.com/codeflix/catalog-admin-api/pkg/apperror"
	"github.com/codeflix/catalog-admin-api/pkg/logger"
)

// UploadLimits caps each file field, in kilobytes.
type UploadLimits struct {
	ThumbKB   int64
	BannerKB  int64
	TrailerKB int64
	VideoKB   int64
}

type VideoHandler struct {
	createUC *videoUC.CreateVideoUseCase
	updateUC *videoUC.UpdateVideoUseCase
	getUC    *videoUC.GetVideoUseCase
	listUC   *videoUC.ListVideosUseCase
	deleteUC *videoUC.DeleteVideoUseCase
	store    service.FileStore
	limits   UploadLimits
	logger   logger.Logger
}

func NewVideoHandler(
	createUC *videoUC.CreateVideoUseCase,
	updateUC *videoUC.UpdateVideoUseCase,
	getUC *videoUC.GetVideoUseCase,
	listUC *videoUC.ListVideosUseCase,
	deleteUC *videoUC.DeleteVideoUseCase,
	store service.FileStore,
	limits UploadLimits,
	log logger.Logger,
) *VideoHandler {
	return &VideoHandler{
		createUC: createUC,
		updateUC: updateUC,
		getUC:    getUC,
		listUC:   listUC,
		deleteUC: deleteUC,
		store:    store,
		limits:   limits,
		logger:   log,
	}
}

func (h *VideoHandler) CreateVideo(c *gin.Context) {
	in, cleanup, ok := h.parseSaveInput(c)
	if !ok {
		return
	}
	defer cleanup()

	v, err := h.createUC.Execute(c.Request.Context(), in)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"data": ToVideoDTO(v, h.store)})
}

func (h *VideoHandler) UpdateVideo(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.Error(apperror.NewInvalidInput("invalid video ID", err))
		return
	}

	in, cleanup, ok := h.parseSaveInput(c)
	if !ok {
		return
	}
	defer cleanup()

	v, err := h.updateUC.Execute(c.Request.Context(), id, in)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": ToVideoDTO(v, h.store)})
}

func (h *VideoHandler) GetVideo(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.Error(apperror.NewInvalidInput("invalid video ID", err))
		return
	}
	v, err := h.getUC.Execute(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": ToVideoDTO(v, h.store)})
}

func (h *VideoHandler) ListVideos(c *gin.Context) {
	params := video.ListParams{
		Search:  c.Query("search"),
		Page:    intQuery(c, "page", 1),
		PerPage: intQuery(c, "per_page", 15),
	}
	out, err := h.listUC.Execute(c.Request.Context(), params)
	if err != nil {
		c.Error(err)
		return
	}
	dtos := make([]VideoDTO, len(out.Videos))
	for i, v := range out.Videos {
		dtos[i] = ToVideoDTO(v, h.store)
	}
	c.JSON(http.StatusOK, gin.H{"data": dtos, "meta": listMeta(out.Total, out.Page, out.PerPage)})
}

func (h *VideoHandler) DeleteVideo(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.Error(apperror.NewInvalidInput("invalid video ID", err))
		return
	}
	if err := h.deleteUC.Execute(c.Request.Context(), id); err != nil {
		c.Error(err)
		return
	}
	c.Status(http.StatusNoContent)
}

// parseSaveInput reads the multipart form shared by create and update. On
// failure the error response is already queued and ok is false.
func (h *VideoHandler) parseSaveInput(c *gin.Context) (videoUC.SaveVideoInput, func(), bool) {
	fields := map[string]string{}
	in := videoUC.SaveVideoInput{
		Title:       c.PostForm("title"),
		Description: c.PostForm("description"),
		Rating:      video.Rating(c.PostForm("rating")),
	}

	in.YearLaunched = intField(c, "year_launched", fields)
	in.Duration = intField(c, "duration", fields)
	if raw := c.PostForm("opened"); raw != "" {
		opened, err := strconv.ParseBool(raw)
		if err != nil {
			fields["opened"] = "opened must be a boolean"
		}
		in.Opened = opened
	}

	in.CategoryIDs = uuidField(c, "categories_id", fields)
	in.GenreIDs = uuidField(c, "genres_id", fields)

	var closers []func()
	cleanup := func() {
		for _, close := range closers {
			close()
		}
	}

	in.Files = map[string]*videoUC.FileInput{}
	for _, field := range []string{video.FieldThumbFile, video.FieldBannerFile, video.FieldTrailerFile, video.FieldVideoFile} {
		fileHeader, err := c.FormFile(field)
		if err != nil {
			continue
		}
		if limit := h.limitKB(field); fileHeader.Size > limit*1024 {
			fields[field] = fmt.Sprintf("the %s may not be greater than %d kilobytes", field, limit)
			continue
		}
		file, err := fileHeader.Open()
		if err != nil {
			cleanup()
			c.Error(apperror.NewInternal("failed to open uploaded file", err))
			return in, nil, false
		}
		closers = append(closers, func() { file.Close() })
		in.Files[field] = &videoUC.FileInput{
			Name:    fileHeader.Filename,
			Size:    fileHeader.Size,
			Content: file,
		}
	}

	if len(fields) > 0 {
		cleanup()
		c.Error(apperror.NewValidation("invalid video payload", fields))
		return in, nil, false
	}
	return in, cleanup, true
}

func (h *VideoHandler) limitKB(field string) int64 {
	switch field {
	case video.FieldThumbFile:
		return h.limits.ThumbKB
	case video.FieldBannerFile:
		return h.limits.BannerKB
	case video.FieldTrailerFile:
		return h.limits.TrailerKB
	default:
		return h.limits.VideoKB
	}
}

func intField(c *gin.Context, name string, fields map[string]string) int {
	raw := c.PostForm(name)
	if raw == "" {
		fields[name] = name + " is required"
		return 0
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		fields[name] = name + " must be an integer"
		return 0
	}
	return n
}

func uuidField(c *gin.Context, name string, fields map[string]string) []uuid.UUID {
	raw := c.PostFormArray(name)
	if len(raw) == 0 {
		raw = c.PostFormArray(name + "[]")
	}
	ids := make([]uuid.UUID, 0, len(raw))
	for _, s := range raw {
		id, err := uuid.Parse(s)
		if err != nil {
			fields[name] = name + " must contain valid UUIDs"
			return nil
		}
		ids = append(ids, id)
	}
	return ids
}

func intQuery(c *gin.Context, name string, def int) int {
	raw := c.Query(name)
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return def
	}
	return n
}
