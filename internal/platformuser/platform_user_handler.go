package platformuser

import (
	"net/http"
	"strconv"

	"go-calypso/internal/domain"
	"go-calypso/internal/middleware"
	platformusererrors "go-calypso/internal/platformuser/errors"
	"go-calypso/internal/shared/apperror"
	"go-calypso/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	svc    Service
	logger *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("platformuser.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("platformuser.handler")
	}
	return &Handler{svc: service, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("platform user request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) writeBindError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(apperror.MapValidationError(err))
	response.Error(c, http.StatusBadRequest, apperror.CodeValidation, httpErr.Message, httpErr.Details)
}

func (h *Handler) GetAll(c *gin.Context) {
	resp, err := h.svc.GetAll(c.Request.Context())
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	page, _ := strconv.Atoi(c.Query("page"))
	pageSize, _ := strconv.Atoi(c.Query("page_size"))
	items, meta := response.Paginate(resp, page, pageSize)
	response.Success(c, http.StatusOK, items, meta)
}

func (h *Handler) GetById(c *gin.Context) {
	resp, err := h.svc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Create(c *gin.Context) {
	var req CreatePlatformUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("http create platform user validation failed", zap.Error(err))
		h.writeBindError(c, err)
		return
	}

	resp, err := h.svc.Create(c.Request.Context(), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) Update(c *gin.Context) {
	var req UpdatePlatformUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("http update platform user validation failed", zap.Error(err))
		h.writeBindError(c, err)
		return
	}

	resp, err := h.svc.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": true}, nil)
}

// ChangePassword lets users change their own password with the current one,
// and primary admins reset anyone's without it.
func (h *Handler) ChangePassword(c *gin.Context) {
	caller, ok := middleware.GetCurrentUser(c)
	if !ok {
		h.writeServiceError(c, apperror.ErrUnauthorized)
		return
	}

	id := c.Param("id")
	self := caller.UserID == id
	if !self && domain.Role(caller.Role) != domain.RolePrimaryAdmin {
		h.writeServiceError(c, platformusererrors.ErrPasswordChangeForbidden)
		return
	}

	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeBindError(c, err)
		return
	}
	if self && req.CurrentPassword == "" {
		h.writeServiceError(c, apperror.RequiredField("Current Password"))
		return
	}

	if err := h.svc.ChangePassword(c.Request.Context(), id, req, self); err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"updated": true}, nil)
}
