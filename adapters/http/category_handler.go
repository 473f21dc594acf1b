package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	categoryUC "github.com/codeflix/catalog-admin-api/internal/application/usecase/category"
	"github.com/codeflix/catalog-admin-api/internal/domain/category"
	"github.com/codeflix/catalog-admin-api/pkg/apperror"
	"github.com/codeflix/catalog-admin-api/pkg/logger"
)

type CategoryHandler struct {
	uc     *categoryUC.CategoryUseCase
	logger logger.Logger
}

func NewCategoryHandler(uc *categoryUC.CategoryUseCase, log logger.Logger) *CategoryHandler {
	return &CategoryHandler{uc: uc, logger: log}
}

func (h *CategoryHandler) CreateCategory(c *gin.Context) {
	var req SaveCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewValidation("invalid category payload", map[string]string{"name": err.Error()}))
		return
	}

	result, err := h.uc.Create(c.Request.Context(), toSaveCategoryInput(req))
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"data": ToCategoryDTO(result)})
}

func (h *CategoryHandler) UpdateCategory(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.Error(apperror.NewInvalidInput("invalid category ID", err))
		return
	}
	var req SaveCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewValidation("invalid category payload", map[string]string{"name": err.Error()}))
		return
	}

	result, err := h.uc.Update(c.Request.Context(), id, toSaveCategoryInput(req))
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": ToCategoryDTO(result)})
}

func (h *CategoryHandler) GetCategory(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.Error(apperror.NewInvalidInput("invalid category ID", err))
		return
	}
	result, err := h.uc.Get(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": ToCategoryDTO(result)})
}

func (h *CategoryHandler) ListCategories(c *gin.Context) {
	params := category.ListParams{
		Search:  c.Query("search"),
		Page:    intQuery(c, "page", 1),
		PerPage: intQuery(c, "per_page", 15),
	}
	out, err := h.uc.List(c.Request.Context(), params)
	if err != nil {
		c.Error(err)
		return
	}
	dtos := make([]CategoryDTO, len(out.Categories))
	for i, cat := range out.Categories {
		dtos[i] = ToCategoryDTO(cat)
	}
	c.JSON(http.StatusOK, gin.H{"data": dtos, "meta": listMeta(out.Total, out.Page, out.PerPage)})
}

func (h *CategoryHandler) DeleteCategory(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.Error(apperror.NewInvalidInput("invalid category ID", err))
		return
	}
	if err := h.uc.Delete(c.Request.Context(), id); err != nil {
		c.Error(err)
		return
	}
	c.Status(http.StatusNoContent)
}

func toSaveCategoryInput(req SaveCategoryRequest) categoryUC.SaveCategoryInput {
	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}
	return categoryUC.SaveCategoryInput{
		Name:        req.Name,
		Description: req.Description,
		IsActive:    isActive,
	}
}
