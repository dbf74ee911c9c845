package managedlist

import (
	"net/http"

	"go-calypso/internal/shared/apperror"
	"go-calypso/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("managedlist.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("managedlist.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) writeBindError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(apperror.MapValidationError(err))
	response.Error(c, http.StatusBadRequest, apperror.CodeValidation, httpErr.Message, httpErr.Details)
}

// GetAll serves GET /lists?listType=X. Admins may add includeInactive=true.
func (h *Handler) GetAll(c *gin.Context) {
	items, err := h.service.List(c.Request.Context(), c.Query("listType"), c.Query("includeInactive") == "true")
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, items, nil)
}

// GetPublic feeds the self-registration form and never shows inactive items.
func (h *Handler) GetPublic(c *gin.Context) {
	items, err := h.service.List(c.Request.Context(), c.Query("listType"), false)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, items, nil)
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("http create list item validation failed", zap.Error(err))
		h.writeBindError(c, err)
		return
	}

	item, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, item, nil)
}

func (h *Handler) Update(c *gin.Context) {
	var req UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("http update list item validation failed", zap.Error(err))
		h.writeBindError(c, err)
		return
	}

	item, err := h.service.Update(c.Request.Context(), c.Param("itemId"), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, item, nil)
}

func (h *Handler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("itemId")); err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": true}, nil)
}
