package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	genreUC "github.com/codeflix/catalog-admin-api/internal/application/usecase/genre"
	"github.com/codeflix/catalog-admin-api/internal/domain/genre"
	"github.com/codeflix/catalog-admin-api/pkg/apperror"
	"github.com/codeflix/catalog-admin-api/pkg/logger"
)

type GenreHandler struct {
	uc     *genreUC.GenreUseCase
	logger logger.Logger
}

func NewGenreHandler(uc *genreUC.GenreUseCase, log logger.Logger) *GenreHandler {
	return &GenreHandler{uc: uc, logger: log}
}

func (h *GenreHandler) CreateGenre(c *gin.Context) {
	in, ok := h.bindSaveInput(c)
	if !ok {
		return
	}
	result, err := h.uc.Create(c.Request.Context(), in)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"data": ToGenreDTO(result)})
}

func (h *GenreHandler) UpdateGenre(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.Error(apperror.NewInvalidInput("invalid genre ID", err))
		return
	}
	in, ok := h.bindSaveInput(c)
	if !ok {
		return
	}
	result, err := h.uc.Update(c.Request.Context(), id, in)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": ToGenreDTO(result)})
}

func (h *GenreHandler) GetGenre(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.Error(apperror.NewInvalidInput("invalid genre ID", err))
		return
	}
	result, err := h.uc.Get(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": ToGenreDTO(result)})
}

func (h *GenreHandler) ListGenres(c *gin.Context) {
	params := genre.ListParams{
		Search:  c.Query("search"),
		Page:    intQuery(c, "page", 1),
		PerPage: intQuery(c, "per_page", 15),
	}
	out, err := h.uc.List(c.Request.Context(), params)
	if err != nil {
		c.Error(err)
		return
	}
	dtos := make([]GenreDTO, len(out.Genres))
	for i, g := range out.Genres {
		dtos[i] = ToGenreDTO(g)
	}
	c.JSON(http.StatusOK, gin.H{"data": dtos, "meta": listMeta(out.Total, out.Page, out.PerPage)})
}

func (h *GenreHandler) DeleteGenre(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.Error(apperror.NewInvalidInput("invalid genre ID", err))
		return
	}
	if err := h.uc.Delete(c.Request.Context(), id); err != nil {
		c.Error(err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *GenreHandler) bindSaveInput(c *gin.Context) (genreUC.SaveGenreInput, bool) {
	var req SaveGenreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewValidation("invalid genre payload", map[string]string{"name": err.Error()}))
		return genreUC.SaveGenreInput{}, false
	}

	categoryIDs := make([]uuid.UUID, len(req.CategoriesID))
	for i, s := range req.CategoriesID {
		id, err := uuid.Parse(s)
		if err != nil {
			c.Error(apperror.NewValidation("invalid genre payload", map[string]string{
				"categories_id": "categories_id must contain valid UUIDs",
			}))
			return genreUC.SaveGenreInput{}, false
		}
		categoryIDs[i] = id
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}
	return genreUC.SaveGenreInput{
		Name:        req.Name,
		IsActive:    isActive,
		CategoryIDs: categoryIDs,
	}, true
}
