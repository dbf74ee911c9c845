package auth

import (
	"net/http"

	"go-calypso/internal/middleware"
	"go-calypso/internal/shared/apperror"
	"go-calypso/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	service      Service
	cookieSecure bool
	logger       *zap.Logger
}

func NewHandler(s Service, cookieSecure bool, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("auth.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("auth.handler")
	}
	return &Handler{service: s, cookieSecure: cookieSecure, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) setAccessCookie(c *gin.Context, value string, maxAge int) {
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     middleware.AccessTokenCookie,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpErr := apperror.ToHTTP(apperror.MapValidationError(err))
		response.Error(c, http.StatusBadRequest, apperror.CodeValidation, httpErr.Message, httpErr.Details)
		return
	}

	accessToken, user, err := h.service.Login(c.Request.Context(), req.Identification, req.Password)
	if err != nil {
		h.logger.Warn("http login failed", zap.String("client_ip", c.ClientIP()), zap.Error(err))
		h.writeServiceError(c, err)
		return
	}

	ttl := h.service.TokenTTL()
	h.setAccessCookie(c, accessToken, int(ttl.Seconds()))
	response.Success(c, http.StatusOK, LoginResponse{
		User:        user,
		AccessToken: accessToken,
		ExpiresIn:   int64(ttl.Seconds()),
	}, nil)
}

func (h *Handler) Me(c *gin.Context) {
	caller, ok := middleware.GetCurrentUser(c)
	if !ok {
		h.writeServiceError(c, apperror.ErrUnauthorized)
		return
	}

	user, err := h.service.GetMe(c.Request.Context(), caller.UserID)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, user, nil)
}

func (h *Handler) Logout(c *gin.Context) {
	h.setAccessCookie(c, "", -1)
	response.Success(c, http.StatusOK, gin.H{"loggedOut": true}, nil)
}
