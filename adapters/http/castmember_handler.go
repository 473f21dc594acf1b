package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	castmemberUC "github.com/codeflix/catalog-admin-api/internal/application/usecase/castmember"
	"github.com/codeflix/catalog-admin-api/internal/domain/castmember"
	"github.com/codeflix/catalog-admin-api/pkg/apperror"
	"github.com/codeflix/catalog-admin-api/pkg/logger"
)

type CastMemberHandler struct {
	uc     *castmemberUC.CastMemberUseCase
	logger logger.Logger
}

func NewCastMemberHandler(uc *castmemberUC.CastMemberUseCase, log logger.Logger) *CastMemberHandler {
	return &CastMemberHandler{uc: uc, logger: log}
}

func (h *CastMemberHandler) CreateCastMember(c *gin.Context) {
	var req SaveCastMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewValidation("invalid cast member payload", map[string]string{"name": err.Error()}))
		return
	}

	result, err := h.uc.Create(c.Request.Context(), castmemberUC.SaveCastMemberInput{
		Name: req.Name,
		Type: castmember.Type(*req.Type),
	})
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"data": ToCastMemberDTO(result)})
}

func (h *CastMemberHandler) UpdateCastMember(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.Error(apperror.NewInvalidInput("invalid cast member ID", err))
		return
	}
	var req SaveCastMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewValidation("invalid cast member payload", map[string]string{"name": err.Error()}))
		return
	}

	result, err := h.uc.Update(c.Request.Context(), id, castmemberUC.SaveCastMemberInput{
		Name: req.Name,
		Type: castmember.Type(*req.Type),
	})
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": ToCastMemberDTO(result)})
}

func (h *CastMemberHandler) GetCastMember(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.Error(apperror.NewInvalidInput("invalid cast member ID", err))
		return
	}
	result, err := h.uc.Get(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": ToCastMemberDTO(result)})
}

func (h *CastMemberHandler) ListCastMembers(c *gin.Context) {
	params := castmember.ListParams{
		Search:  c.Query("search"),
		Page:    intQuery(c, "page", 1),
		PerPage: intQuery(c, "per_page", 15),
	}
	out, err := h.uc.List(c.Request.Context(), params)
	if err != nil {
		c.Error(err)
		return
	}
	dtos := make([]CastMemberDTO, len(out.CastMembers))
	for i, m := range out.CastMembers {
		dtos[i] = ToCastMemberDTO(m)
	}
	c.JSON(http.StatusOK, gin.H{"data": dtos, "meta": listMeta(out.Total, out.Page, out.PerPage)})
}

func (h *CastMemberHandler) DeleteCastMember(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.Error(apperror.NewInvalidInput("invalid cast member ID", err))
		return
	}
	if err := h.uc.Delete(c.Request.Context(), id); err != nil {
		c.Error(err)
		return
	}
	c.Status(http.StatusNoContent)
}
