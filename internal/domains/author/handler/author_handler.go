package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"library-backend/internal/domains/author/model"
	"library-backend/internal/domains/author/service"
	"library-backend/internal/shared/middleware"
	"library-backend/internal/shared/response"
	"library-backend/pkg/logger"
)

type AuthorHandler struct {
	service service.ServiceInterface
}

func NewAuthorHandler(svc service.ServiceInterface) *AuthorHandler {
	return &AuthorHandler{service: svc}
}

// Create - POST /api/v1/authors
func (h *AuthorHandler) Create(c *gin.Context) {
	actorID, ok := middleware.RequireUserID(c)
	if !ok {
		return
	}

	var req model.CreateAuthorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	author, err := h.service.Create(c.Request.Context(), req, actorID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, author.ToResponse())
}

// GetByID - GET /api/v1/authors/:id
func (h *AuthorHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid UUID format")
		return
	}

	author, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, author.ToResponse())
}

// List - GET /api/v1/authors?search=&limit=20&offset=0
func (h *AuthorHandler) List(c *gin.Context) {
	filter := model.AuthorFilter{Search: c.Query("search")}
	if limitStr := c.Query("limit"); limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil {
			filter.Limit = l
		}
	}
	if offsetStr := c.Query("offset"); offsetStr != "" {
		if o, err := strconv.Atoi(offsetStr); err == nil {
			filter.Offset = o
		}
	}

	authors, total, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		h.handleError(c, err)
		return
	}

	responses := make([]*model.AuthorResponse, len(authors))
	for i := range authors {
		responses[i] = authors[i].ToResponse()
	}

	response.SuccessWithMeta(c, http.StatusOK, responses, &response.Meta{
		Limit: filter.Limit,
		Total: total,
	})
}

// Update - PUT /api/v1/authors/:id
func (h *AuthorHandler) Update(c *gin.Context) {
	actorID, ok := middleware.RequireUserID(c)
	if !ok {
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid UUID format")
		return
	}

	var req model.UpdateAuthorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	author, err := h.service.Update(c.Request.Context(), id, req, actorID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, author.ToResponse())
}

// Delete - DELETE /api/v1/authors/:id
func (h *AuthorHandler) Delete(c *gin.Context) {
	actorID, ok := middleware.RequireUserID(c)
	if !ok {
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid UUID format")
		return
	}

	if err := h.service.Delete(c.Request.Context(), id, actorID); err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"deleted": id})
}

func (h *AuthorHandler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, model.ErrAuthorNotFound):
		response.NotFound(c, err.Error())
	case errors.Is(err, model.ErrAuthorInUse):
		response.DependencyExists(c, err.Error())
	case errors.Is(err, model.ErrNotCreator):
		response.Forbidden(c, err.Error())
	default:
		var vErrs validation.Errors
		if errors.As(err, &vErrs) {
			response.ValidationError(c, vErrs)
			return
		}
		logger.Error("author operation failed", err)
		response.InternalServerError(c, "Internal server error")
	}
}
