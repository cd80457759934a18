package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"library-backend/internal/domains/loan/model"
	"library-backend/internal/domains/loan/service"
	"library-backend/internal/shared/middleware"
	"library-backend/internal/shared/response"
	"library-backend/pkg/logger"
)

type LoanHandler struct {
	service service.ServiceInterface
}

func NewLoanHandler(svc service.ServiceInterface) *LoanHandler {
	return &LoanHandler{service: svc}
}

// Borrow - POST /api/v1/loans
func (h *LoanHandler) Borrow(c *gin.Context) {
	userID, ok := middleware.RequireUserID(c)
	if !ok {
		return
	}

	var req model.BorrowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		response.ValidationError(c, err)
		return
	}

	bookID, err := uuid.Parse(req.BookID)
	if err != nil {
		response.BadRequest(c, "invalid book_id format")
		return
	}

	loan, err := h.service.Borrow(c.Request.Context(), bookID, userID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, loan.ToResponse())
}

// Return - POST /api/v1/loans/:id/return
func (h *LoanHandler) Return(c *gin.Context) {
	userID, ok := middleware.RequireUserID(c)
	if !ok {
		return
	}

	loanID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid loan id format")
		return
	}

	loan, err := h.service.Return(c.Request.Context(), loanID, userID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, loan.ToResponse())
}

// GetByID - GET /api/v1/loans/:id
func (h *LoanHandler) GetByID(c *gin.Context) {
	userID, ok := middleware.RequireUserID(c)
	if !ok {
		return
	}

	loanID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid loan id format")
		return
	}

	loan, err := h.service.GetByID(c.Request.Context(), loanID, userID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, loan.ToResponse())
}

// List - GET /api/v1/loans?status=pending&limit=20&offset=0
func (h *LoanHandler) List(c *gin.Context) {
	userID, ok := middleware.RequireUserID(c)
	if !ok {
		return
	}

	filter := model.LoanFilter{Status: c.Query("status")}
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

	loans, total, err := h.service.ListByUser(c.Request.Context(), userID, filter)
	if err != nil {
		h.handleError(c, err)
		return
	}

	responses := make([]*model.LoanResponse, len(loans))
	for i := range loans {
		responses[i] = loans[i].ToResponse()
	}

	response.SuccessWithMeta(c, http.StatusOK, responses, &response.Meta{
		Limit: filter.Limit,
		Total: total,
	})
}

func (h *LoanHandler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, model.ErrBookNotFound):
		response.NotFound(c, err.Error())
	case errors.Is(err, model.ErrLoanNotFound):
		response.NotFound(c, err.Error())
	case errors.Is(err, model.ErrBookUnavailable):
		response.Unavailable(c, err.Error())
	case errors.Is(err, model.ErrInvalidStatus):
		response.BadRequest(c, err.Error())
	default:
		logger.Error("loan operation failed", err)
		response.InternalServerError(c, "Internal server error")
	}
}
