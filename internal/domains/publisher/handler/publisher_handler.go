package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"library-backend/internal/domains/publisher/model"
	"library-backend/internal/domains/publisher/service"
	"library-backend/internal/shared/response"
	"library-backend/pkg/logger"
)

type PublisherHandler struct {
	service service.ServiceInterface
}

func NewPublisherHandler(svc service.ServiceInterface) *PublisherHandler {
	return &PublisherHandler{service: svc}
}

// Create - POST /api/v1/publishers
func (h *PublisherHandler) Create(c *gin.Context) {
	var req model.CreatePublisherRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	publisher, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, publisher.ToResponse())
}

// GetByID - GET /api/v1/publishers/:id
func (h *PublisherHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid UUID format")
		return
	}

	publisher, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, publisher.ToResponse())
}

// List - GET /api/v1/publishers?search=&limit=20&offset=0
func (h *PublisherHandler) List(c *gin.Context) {
	filter := model.PublisherFilter{Search: c.Query("search")}
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

	publishers, total, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		h.handleError(c, err)
		return
	}

	responses := make([]model.PublisherResponse, len(publishers))
	for i := range publishers {
		responses[i] = publishers[i].ToResponse()
	}

	response.SuccessWithMeta(c, http.StatusOK, responses, &response.Meta{
		Limit: filter.Limit,
		Total: total,
	})
}

// Update - PUT /api/v1/publishers/:id
func (h *PublisherHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid UUID format")
		return
	}

	var req model.UpdatePublisherRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	publisher, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, publisher.ToResponse())
}

// Delete - DELETE /api/v1/publishers/:id
func (h *PublisherHandler) Delete(c *gin.Context) {
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

func (h *PublisherHandler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, model.ErrPublisherNotFound):
		response.NotFound(c, err.Error())
	case errors.Is(err, model.ErrPublisherNameTaken):
		response.Conflict(c, err.Error())
	case errors.Is(err, model.ErrPublisherInUse):
		response.DependencyExists(c, err.Error())
	default:
		var vErrs validation.Errors
		if errors.As(err, &vErrs) {
			response.ValidationError(c, vErrs)
			return
		}
		logger.Error("publisher operation failed", err)
		response.InternalServerError(c, "Internal server error")
	}
}
