package rbac

import (
	"net/http"

	"go-calypso/internal/domain"
	"go-calypso/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("rbac.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("rbac.handler")
	}
	return &Handler{service: service, logger: l}
}

type checkRequest struct {
	Resource string `json:"resource" binding:"required"`
	Action   string `json:"action" binding:"required"`
}

// Enforce answers whether the caller's own role allows resource/action.
func (h *Handler) Enforce(c *gin.Context) {
	var req checkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "resource and action are required", err.Error())
		return
	}

	allowed, err := h.service.Enforce(domain.EnforceRequest{
		Role:     c.GetString("role"),
		Resource: req.Resource,
		Action:   req.Action,
	})
	if err != nil {
		h.logger.Error("http rbac enforce failed", zap.Error(err))
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
		return
	}

	response.Success(c, http.StatusOK, domain.EnforceResponse{Allowed: allowed}, nil)
}

func (h *Handler) MyPermissions(c *gin.Context) {
	role := c.GetString("role")
	perms, err := h.service.Permissions(role)
	if err != nil {
		h.logger.Error("http rbac permissions failed", zap.String("role", role), zap.Error(err))
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
		return
	}

	response.Success(c, http.StatusOK, domain.RolePermissionsResponse{Role: role, Permissions: perms}, nil)
}
