package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"library-backend/internal/domains/genre/model"
	"library-backend/internal/domains/genre/service"
	"library-backend/internal/shared/response"
	"library-backend/pkg/logger"
)

type GenreHandler struct {
	service service.ServiceInterface
}

func NewGenreHandler(svc service.ServiceInterface) *GenreHandler {
	return &GenreHandler{service: svc}
}

// Create - POST /api/v1/genres
func (h *GenreHandler) Create(c *gin.Context) {
	var req model.CreateGenreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	genre, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, genre.ToResponse())
}

// GetByID - GET /api/v1/genres/:id
func (h *GenreHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid UUID format")
		return
	}

	genre, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, genre.ToResponse())
}

// List - GET /api/v1/genres?search=&limit=20&offset=0
func (h *GenreHandler) List(c *gin.Context) {
	filter := model.GenreFilter{Search: c.Query("search")}
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

	genres, total, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		h.handleError(c, err)
		return
	}

	responses := make([]model.GenreResponse, len(genres))
	for i := range genres {
		responses[i] = genres[i].ToResponse()
	}

	response.SuccessWithMeta(c, http.StatusOK, responses, &response.Meta{
		Limit: filter.Limit,
		Total: total,
	})
}

// Update - PUT /api/v1/genres/:id
func (h *GenreHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid UUID format")
		return
	}

	var req model.UpdateGenreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	genre, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, genre.ToResponse())
}

// Delete - DELETE /api/v1/genres/:id
func (h *GenreHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid UUID format")
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"deleted": id})
}

func (h *GenreHandler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, model.ErrGenreNotFound):
		response.NotFound(c, err.Error())
	case errors.Is(err, model.ErrGenreNameTaken):
		response.Conflict(c, err.Error())
	case errors.Is(err, model.ErrGenreInUse):
		response.DependencyExists(c, err.Error())
	default:
		var vErrs validation.Errors
		if errors.As(err, &vErrs) {
			response.ValidationError(c, vErrs)
			return
		}
		logger.Error("genre operation failed", err)
		response.InternalServerError(c, "Internal server error")
	}
}
