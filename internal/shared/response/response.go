package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type PaginationMeta struct {
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
	Page       int   `json:"page"`
	PageSize   int   `json:"pageSize"`
}

func NewPaginationMeta(total int64, page, limit int) PaginationMeta {
	totalPages := 0
	if limit > 0 {
		totalPages = int((total + int64(limit) - 1) / int64(limit))
	}

	return PaginationMeta{
		Total:      total,
		TotalPages: totalPages,
		Page:       page,
		PageSize:   limit,
	}
}

type ApiEnvelope struct {
	Ok    bool            `json:"ok"`
	Data  any             `json:"data,omitempty"`
	Meta  *PaginationMeta `json:"meta,omitempty"`
	Error any             `json:"error,omitempty"`
}

type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

func Success(c *gin.Context, status int, data any, meta *PaginationMeta) {
	c.JSON(status, ApiEnvelope{
		Ok:   true,
		Data: data,
		Meta: meta,
	})
}

// Result writes data with a status that may itself signal failure, as bulk
// operations do with 207 and 422.
func Result(c *gin.Context, status int, data any) {
	c.JSON(status, ApiEnvelope{
		Ok:   status < http.StatusBadRequest,
		Data: data,
	})
}

func Error(c *gin.Context, status int, errorCode string, message string, details any) {
	c.JSON(status, ApiEnvelope{
		Ok: false,
		Error: ErrorBody{
			Code:    errorCode,
			Message: message,
			Details: details,
		},
	})
}

// Paginate slices items in memory and returns the page with its meta.
// page and pageSize below 1 return everything.
func Paginate[T any](items []T, page, pageSize int) ([]T, *PaginationMeta) {
	total := int64(len(items))
	if page < 1 || pageSize < 1 {
		return items, nil
	}
	meta := NewPaginationMeta(total, page, pageSize)
	start := (page - 1) * pageSize
	if start >= len(items) {
		return []T{}, &meta
	}
	end := start + pageSize
	if end > len(items) {
		end = len(items)
	}
	return items[start:end], &meta
}
