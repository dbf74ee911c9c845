package visit

import (
	"net/http"
	"strconv"

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
	l := zap.L().Named("visit.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("visit.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	if httpErr.Status >= http.StatusInternalServerError {
		h.logger.Error("visit request failed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Error(err),
		)
	}
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) writeBindError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(apperror.MapValidationError(err))
	response.Error(c, http.StatusBadRequest, apperror.CodeValidation, httpErr.Message, httpErr.Details)
}

func (h *Handler) Register(c *gin.Context) {
	var req RegisterVisitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("http register visit validation failed", zap.Error(err))
		h.writeBindError(c, err)
		return
	}

	resp, err := h.service.Register(c.Request.Context(), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) SelfRegister(c *gin.Context) {
	var req SelfRegisterVisitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("http self-register visit validation failed",
			zap.String("client_ip", c.ClientIP()),
			zap.Error(err),
		)
		h.writeBindError(c, err)
		return
	}

	resp, err := h.service.SelfRegister(c.Request.Context(), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) Approve(c *gin.Context) {
	var req ApproveVisitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeBindError(c, err)
		return
	}

	resp, err := h.service.Approve(c.Request.Context(), c.Param("id"), req.HostID)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) MarkExit(c *gin.Context) {
	resp, err := h.service.MarkExit(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) GetAll(c *gin.Context) {
	visits, err := h.service.List(c.Request.Context(), ListQuery{
		Estado: c.Query("estado"),
		Search: c.Query("search"),
		From:   c.Query("from"),
		To:     c.Query("to"),
	})
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	page, _ := strconv.Atoi(c.Query("page"))
	pageSize, _ := strconv.Atoi(c.Query("page_size"))
	items, meta := response.Paginate(visits, page, pageSize)
	response.Success(c, http.StatusOK, items, meta)
}

func (h *Handler) GetById(c *gin.Context) {
	resp, err := h.service.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}
