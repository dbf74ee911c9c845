package category_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go-calypso/internal/category"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type stubSuggester struct {
	label string
}

func (s stubSuggester) Suggest(context.Context, string) (string, bool) {
	return s.label, s.label != ""
}

func TestHandler_Suggest(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		name       string
		suggester  category.Suggester
		body       string
		wantStatus int
		wantBody   string
	}{
		{"suggestion", stubSuggester{label: "Proveedor"}, `{"purpose":"Entrega de insumos"}`, http.StatusOK, `"category":"Proveedor","available":true`},
		{"unavailable", stubSuggester{}, `{"purpose":"Entrega de insumos"}`, http.StatusOK, `"category":"","available":false`},
		{"purpose too short", stubSuggester{}, `{"purpose":"ab"}`, http.StatusBadRequest, `"ok":false`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodPost, "/visits/category-suggestion", strings.NewReader(tc.body))
			c.Request.Header.Set("Content-Type", "application/json")

			category.NewHandler(tc.suggester).Suggest(c)

			assert.Equal(t, tc.wantStatus, w.Code)
			assert.Contains(t, w.Body.String(), tc.wantBody)
		})
	}
}
