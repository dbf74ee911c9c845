package category

import (
	"net/http"

	"go-calypso/internal/shared/apperror"
	"go-calypso/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	suggester Suggester
	logger    *zap.Logger
}

func NewHandler(suggester Suggester, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("category.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("category.handler")
	}
	return &Handler{suggester: suggester, logger: l}
}

// Suggest always answers 200; an unavailable service yields available=false.
func (h *Handler) Suggest(c *gin.Context) {
	var req SuggestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("http category suggestion validation failed", zap.Error(err))
		httpErr := apperror.ToHTTP(apperror.MapValidationError(err))
		response.Error(c, http.StatusBadRequest, apperror.CodeValidation, httpErr.Message, httpErr.Details)
		return
	}

	label, ok := h.suggester.Suggest(c.Request.Context(), req.Purpose)
	response.Success(c, http.StatusOK, SuggestionResponse{Category: label, Available: ok}, nil)
}
