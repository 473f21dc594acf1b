package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codeflix/catalog-admin-api/internal/application/service"
	videoUC "github.com/codeflix/catalog-admin-api/internal/application/usecase/video"
	"github.com/codeflix/catalog-admin-api/internal/application/validation"
	"github.com/codeflix/catalog-admin-api/internal/domain/category"
	"github.com/codeflix/catalog-admin-api/internal/domain/genre"
	"github.com/codeflix/catalog-admin-api/internal/domain/video"
	"github.com/codeflix/catalog-admin-api/pkg/apperror"
	"github.com/codeflix/catalog-admin-api/pkg/logger"
)

type memVideoRepo struct {
	videos     map[uuid.UUID]*video.Video
	categories map[uuid.UUID][]uuid.UUID
	genres     map[uuid.UUID][]uuid.UUID
}

func newMemVideoRepo() *memVideoRepo {
	return &memVideoRepo{
		videos:     map[uuid.UUID]*video.Video{},
		categories: map[uuid.UUID][]uuid.UUID{},
		genres:     map[uuid.UUID][]uuid.UUID{},
	}
}

func (r *memVideoRepo) Save(ctx context.Context, v *video.Video) error {
	cp := *v
	r.videos[v.ID] = &cp
	return nil
}

func (r *memVideoRepo) Update(ctx context.Context, v *video.Video) error {
	if _, ok := r.videos[v.ID]; !ok {
		return apperror.NewNotFound("video", v.ID.String())
	}
	cp := *v
	r.videos[v.ID] = &cp
	return nil
}

func (r *memVideoRepo) SoftDelete(ctx context.Context, id uuid.UUID) error {
	if _, ok := r.videos[id]; !ok {
		return apperror.NewNotFound("video", id.String())
	}
	delete(r.videos, id)
	return nil
}

func (r *memVideoRepo) FindByID(ctx context.Context, id uuid.UUID) (*video.Video, error) {
	v, ok := r.videos[id]
	if !ok {
		return nil, apperror.NewNotFound("video", id.String())
	}
	cp := *v
	cp.CategoryIDs = r.categories[id]
	cp.GenreIDs = r.genres[id]
	return &cp, nil
}

func (r *memVideoRepo) List(ctx context.Context, params video.ListParams) ([]*video.Video, int64, error) {
	out := []*video.Video{}
	for _, v := range r.videos {
		cp := *v
		out = append(out, &cp)
	}
	return out, int64(len(out)), nil
}

func (r *memVideoRepo) SyncCategories(ctx context.Context, videoID uuid.UUID, ids []uuid.UUID) error {
	r.categories[videoID] = ids
	return nil
}

func (r *memVideoRepo) SyncGenres(ctx context.Context, videoID uuid.UUID, ids []uuid.UUID) error {
	r.genres[videoID] = ids
	return nil
}

type noopTransactor struct{}

func (noopTransactor) InTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type memFileStore struct {
	objects map[string][]byte
}

func (s *memFileStore) Store(ctx context.Context, content io.Reader, dir, filename string) error {
	data, err := io.ReadAll(content)
	if err != nil {
		return err
	}
	s.objects[dir+"/"+filename] = data
	return nil
}

func (s *memFileStore) Delete(ctx context.Context, dir, filename string) error {
	delete(s.objects, dir+"/"+filename)
	return nil
}

func (s *memFileStore) URLFor(dir, filename string) string {
	return "http://files.test/" + dir + "/" + filename
}

type memGenreRepo struct {
	genre.Repository
	existing map[uuid.UUID]bool
	links    map[uuid.UUID][]uuid.UUID
}

func (r *memGenreRepo) ExistingIDs(ctx context.Context, ids []uuid.UUID) ([]uuid.UUID, error) {
	out := []uuid.UUID{}
	for _, id := range ids {
		if r.existing[id] {
			out = append(out, id)
		}
	}
	return out, nil
}

func (r *memGenreRepo) LinkedCategories(ctx context.Context, genreIDs, categoryIDs []uuid.UUID) (map[uuid.UUID][]uuid.UUID, error) {
	requested := map[uuid.UUID]bool{}
	for _, id := range categoryIDs {
		requested[id] = true
	}
	out := map[uuid.UUID][]uuid.UUID{}
	for _, genreID := range genreIDs {
		for _, catID := range r.links[genreID] {
			if requested[catID] {
				out[genreID] = append(out[genreID], catID)
			}
		}
	}
	return out, nil
}

type videoTestEnv struct {
	router *gin.Engine
	store  *memFileStore
	catID  uuid.UUID
	genID  uuid.UUID
}

func newVideoRouter(t *testing.T, limits UploadLimits) *videoTestEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	log := logger.NewZapLogger("development")
	catID := uuid.New()
	genID := uuid.New()

	catRepo := newMemCategoryRepo()
	require.NoError(t, catRepo.Save(context.Background(), &category.Category{ID: catID, Name: "Movies", IsActive: true}))
	genRepo := &memGenreRepo{
		existing: map[uuid.UUID]bool{genID: true},
		links:    map[uuid.UUID][]uuid.UUID{genID: {catID}},
	}
	rules := validation.NewVideoRules(catRepo, genRepo)

	repo := newMemVideoRepo()
	tx := noopTransactor{}
	store := &memFileStore{objects: map[string][]byte{}}

	var fileStore service.FileStore = store
	handler := NewVideoHandler(
		videoUC.NewCreateVideoUseCase(repo, rules, tx, fileStore, nil, nil, log),
		videoUC.NewUpdateVideoUseCase(repo, rules, tx, fileStore, nil, nil, log),
		videoUC.NewGetVideoUseCase(repo, nil),
		videoUC.NewListVideosUseCase(repo),
		videoUC.NewDeleteVideoUseCase(repo, nil, nil, log),
		fileStore,
		limits,
		log,
	)

	r := gin.New()
	r.Use(ErrorMiddleware(log))
	grp := r.Group("/api/videos")
	grp.POST("", handler.CreateVideo)
	grp.GET("", handler.ListVideos)
	grp.GET("/:id", handler.GetVideo)
	grp.PUT("/:id", handler.UpdateVideo)
	grp.DELETE("/:id", handler.DeleteVideo)

	return &videoTestEnv{router: r, store: store, catID: catID, genID: genID}
}

type formFile struct {
	field, name string
	content     []byte
}

func multipartRequest(t *testing.T, method, path string, fields map[string][]string, files []formFile) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for name, values := range fields {
		for _, v := range values {
			require.NoError(t, w.WriteField(name, v))
		}
	}
	for _, f := range files {
		fw, err := w.CreateFormFile(f.field, f.name)
		require.NoError(t, err)
		_, err = fw.Write(f.content)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

func (e *videoTestEnv) validFields() map[string][]string {
	return map[string][]string{
		"title":         {"The Movie"},
		"description":   {"a movie"},
		"year_launched": {"2022"},
		"opened":        {"true"},
		"rating":        {"12"},
		"duration":      {"120"},
		"categories_id": {e.catID.String()},
		"genres_id":     {e.genID.String()},
	}
}

func defaultLimits() UploadLimits {
	return UploadLimits{ThumbKB: 5 * 1024, BannerKB: 10 * 1024, TrailerKB: 1024 * 1024, VideoKB: 50 * 1024 * 1024}
}

func TestVideoHandler_CreateWithFiles(t *testing.T) {
	env := newVideoRouter(t, defaultLimits())

	req := multipartRequest(t, http.MethodPost, "/api/videos", env.validFields(), []formFile{
		{field: video.FieldThumbFile, name: "thumb.jpg", content: []byte("thumb-bytes")},
		{field: video.FieldVideoFile, name: "movie.mp4", content: []byte("video-bytes")},
	})
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var out struct {
		Data VideoDTO `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	assert.Equal(t, "The Movie", out.Data.Title)
	assert.Equal(t, "12", out.Data.Rating)
	assert.Equal(t, []string{env.catID.String()}, out.Data.CategoriesID)
	assert.Equal(t, []string{env.genID.String()}, out.Data.GenresID)
	require.NotNil(t, out.Data.ThumbFileURL)
	assert.Contains(t, *out.Data.ThumbFileURL, "http://files.test/"+out.Data.ID+"/")
	assert.Nil(t, out.Data.BannerFileURL)
	assert.Len(t, env.store.objects, 2)
}

func TestVideoHandler_MissingScalarsIs422WithFieldErrors(t *testing.T) {
	env := newVideoRouter(t, defaultLimits())

	fields := env.validFields()
	delete(fields, "duration")
	req := multipartRequest(t, http.MethodPost, "/api/videos", fields, nil)
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)

	var out struct {
		Errors map[string]string `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	assert.Contains(t, out.Errors, "duration")
}

func TestVideoHandler_OversizedFileIs422(t *testing.T) {
	limits := defaultLimits()
	limits.ThumbKB = 1
	env := newVideoRouter(t, limits)

	req := multipartRequest(t, http.MethodPost, "/api/videos", env.validFields(), []formFile{
		{field: video.FieldThumbFile, name: "thumb.jpg", content: bytes.Repeat([]byte("x"), 2048)},
	})
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)

	var out struct {
		Errors map[string]string `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	assert.Contains(t, out.Errors, video.FieldThumbFile)
	assert.Empty(t, env.store.objects, "nothing is stored when the payload is rejected")
}

func TestVideoHandler_UnknownGenreIs422(t *testing.T) {
	env := newVideoRouter(t, defaultLimits())

	fields := env.validFields()
	fields["genres_id"] = []string{uuid.NewString()}
	req := multipartRequest(t, http.MethodPost, "/api/videos", fields, nil)
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestVideoHandler_ArrayStyleRelationKeys(t *testing.T) {
	env := newVideoRouter(t, defaultLimits())

	fields := env.validFields()
	fields["categories_id[]"] = fields["categories_id"]
	delete(fields, "categories_id")
	fields["genres_id[]"] = fields["genres_id"]
	delete(fields, "genres_id")

	req := multipartRequest(t, http.MethodPost, "/api/videos", fields, nil)
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusCreated, w.Code, w.Body.String())
}

func TestVideoHandler_GetDeleteLifecycle(t *testing.T) {
	env := newVideoRouter(t, defaultLimits())

	req := multipartRequest(t, http.MethodPost, "/api/videos", env.validFields(), nil)
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code)
	var created struct {
		Data VideoDTO `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	w = httptest.NewRecorder()
	env.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/videos/"+created.Data.ID, nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	env.router.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/api/videos/"+created.Data.ID, nil))
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = httptest.NewRecorder()
	env.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/videos/"+created.Data.ID, nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}
