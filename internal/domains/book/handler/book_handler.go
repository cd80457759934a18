package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"library-backend/internal/domains/book/model"
	"library-backend/internal/domains/book/service"
	"library-backend/internal/shared/middleware"
	"library-backend/internal/shared/response"
	"library-backend/pkg/logger"
)

type BookHandler struct {
	service service.ServiceInterface
}

func NewBookHandler(svc service.ServiceInterface) *BookHandler {
	return &BookHandler{service: svc}
}

// Create - POST /api/v1/books
func (h *BookHandler) Create(c *gin.Context) {
	actorID, ok := middleware.RequireUserID(c)
	if !ok {
		return
	}

	var req model.CreateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	book, err := h.service.Create(c.Request.Context(), req, actorID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, book.ToResponse())
}

// GetByID - GET /api/v1/books/:id
func (h *BookHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid UUID format")
		return
	}

	book, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, book.ToResponse())
}

// List - GET /api/v1/books?search=&author_id=&genre_id=&publisher_id=&tag=&available=&limit=20&offset=0
func (h *BookHandler) List(c *gin.Context) {
	filter := model.BookFilter{
		Search: c.Query("search"),
		Tag:    c.Query("tag"),
	}

	if v := c.Query("author_id"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			response.BadRequest(c, "invalid author_id")
			return
		}
		filter.AuthorID = &id
	}
	if v := c.Query("genre_id"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			response.BadRequest(c, "invalid genre_id")
			return
		}
		filter.GenreID = &id
	}
	if v := c.Query("publisher_id"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			response.BadRequest(c, "invalid publisher_id")
			return
		}
		filter.PublisherID = &id
	}
	if v := c.Query("available"); v != "" {
		filter.Available, _ = strconv.ParseBool(v)
	}
	if v := c.Query("limit"); v != "" {
		if l, err := strconv.Atoi(v); err == nil {
			filter.Limit = l
		}
	}
	if v := c.Query("offset"); v != "" {
		if o, err := strconv.Atoi(v); err == nil {
			filter.Offset = o
		}
	}

	books, total, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		h.handleError(c, err)
		return
	}

	responses := make([]*model.BookResponse, len(books))
	for i := range books {
		responses[i] = books[i].ToResponse()
	}

	response.SuccessWithMeta(c, http.StatusOK, responses, &response.Meta{
		Limit: filter.Limit,
		Total: total,
	})
}

// Update - PUT /api/v1/books/:id
func (h *BookHandler) Update(c *gin.Context) {
	if _, ok := middleware.RequireUserID(c); !ok {
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid UUID format")
		return
	}

	var req model.UpdateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	book, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, book.ToResponse())
}

// Delete - DELETE /api/v1/books/:id
func (h *BookHandler) Delete(c *gin.Context) {
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

func (h *BookHandler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, model.ErrBookNotFound):
		response.NotFound(c, err.Error())
	case errors.Is(err, model.ErrISBNTaken):
		response.Conflict(c, err.Error())
	case errors.Is(err, model.ErrBookHasLoans):
		response.DependencyExists(c, err.Error())
	case errors.Is(err, model.ErrNotCreator):
		response.Forbidden(c, err.Error())
	case errors.Is(err, model.ErrCopiesBelowLoans):
		response.Conflict(c, err.Error())
	case errors.Is(err, model.ErrAuthorNotFound),
		errors.Is(err, model.ErrGenreNotFound),
		errors.Is(err, model.ErrPublisherNotFound):
		response.BadRequest(c, err.Error())
	default:
		var vErrs validation.Errors
		if errors.As(err, &vErrs) {
			response.ValidationError(c, vErrs)
			return
		}
		logger.Error("book operation failed", err)
		response.InternalServerError(c, "Internal server error")
	}
}
