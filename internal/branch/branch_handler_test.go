package branch_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go-calypso/internal/branch"
	brancherrors "go-calypso/internal/branch/errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeBranchService struct {
	CreateFn  func(ctx context.Context, req branch.CreateBranchRequest) (branch.BranchResponse, error)
	GetAllFn  func(ctx context.Context) ([]branch.BranchResponse, error)
	GetByIDFn func(ctx context.Context, id string) (branch.BranchResponse, error)
	UpdateFn  func(ctx context.Context, id string, req branch.UpdateBranchRequest) (branch.BranchResponse, error)
	DeleteFn  func(ctx context.Context, id string) error
}

func (f *fakeBranchService) Create(ctx context.Context, req branch.CreateBranchRequest) (branch.BranchResponse, error) {
	return f.CreateFn(ctx, req)
}
func (f *fakeBranchService) GetAll(ctx context.Context) ([]branch.BranchResponse, error) {
	return f.GetAllFn(ctx)
}
func (f *fakeBranchService) GetByID(ctx context.Context, id string) (branch.BranchResponse, error) {
	return f.GetByIDFn(ctx, id)
}
func (f *fakeBranchService) Update(ctx context.Context, id string, req branch.UpdateBranchRequest) (branch.BranchResponse, error) {
	return f.UpdateFn(ctx, id, req)
}
func (f *fakeBranchService) Delete(ctx context.Context, id string) error {
	return f.DeleteFn(ctx, id)
}

type apiEnvelope struct {
	Ok    bool            `json:"ok"`
	Data  json.RawMessage `json:"data"`
	Meta  json.RawMessage `json:"meta"`
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) apiEnvelope {
	t.Helper()
	var env apiEnvelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return env
}

func newContext(method, target, body string) (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		c.Request.Header.Set("Content-Type", "application/json")
	}
	return c, w
}

func TestBranchHandler_Create(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		svc := &fakeBranchService{
			CreateFn: func(ctx context.Context, req branch.CreateBranchRequest) (branch.BranchResponse, error) {
				return branch.BranchResponse{ID: uuid.NewString(), Name: req.Name}, nil
			},
		}
		c, w := newContext(http.MethodPost, "/branches", `{"name":"Sede Norte"}`)
		branch.NewHandler(svc).Create(c)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.True(t, decodeEnvelope(t, w).Ok)
	})

	t.Run("validation error", func(t *testing.T) {
		c, w := newContext(http.MethodPost, "/branches", `{}`)
		branch.NewHandler(&fakeBranchService{}).Create(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		env := decodeEnvelope(t, w)
		assert.Equal(t, "VALIDATION_ERROR", env.Error.Code)
	})

	t.Run("service error", func(t *testing.T) {
		svc := &fakeBranchService{
			CreateFn: func(ctx context.Context, req branch.CreateBranchRequest) (branch.BranchResponse, error) {
				return branch.BranchResponse{}, errors.New("failed")
			},
		}
		c, w := newContext(http.MethodPost, "/branches", `{"name":"Sede Norte"}`)
		branch.NewHandler(svc).Create(c)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}

func TestBranchHandler_GetAll(t *testing.T) {
	svc := &fakeBranchService{
		GetAllFn: func(ctx context.Context) ([]branch.BranchResponse, error) {
			return []branch.BranchResponse{{Name: "A"}, {Name: "B"}, {Name: "C"}}, nil
		},
	}
	c, w := newContext(http.MethodGet, "/branches?page=2&page_size=2", "")
	branch.NewHandler(svc).GetAll(c)

	require.Equal(t, http.StatusOK, w.Code)
	env := decodeEnvelope(t, w)
	var items []branch.BranchResponse
	require.NoError(t, json.Unmarshal(env.Data, &items))
	require.Len(t, items, 1)
	assert.Equal(t, "C", items[0].Name)
	assert.JSONEq(t, `{"total":3,"totalPages":2,"page":2,"pageSize":2}`, string(env.Meta))
}

func TestBranchHandler_Delete(t *testing.T) {
	t.Run("conflict when in use", func(t *testing.T) {
		id := uuid.NewString()
		svc := &fakeBranchService{
			DeleteFn: func(ctx context.Context, got string) error {
				assert.Equal(t, id, got)
				return brancherrors.ErrBranchInUse
			},
		}
		c, w := newContext(http.MethodDelete, "/branches/"+id, "")
		c.Params = gin.Params{{Key: "id", Value: id}}
		branch.NewHandler(svc).Delete(c)

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Equal(t, "CONFLICT", decodeEnvelope(t, w).Error.Code)
	})

	t.Run("success", func(t *testing.T) {
		svc := &fakeBranchService{DeleteFn: func(ctx context.Context, id string) error { return nil }}
		c, w := newContext(http.MethodDelete, "/branches/x", "")
		c.Params = gin.Params{{Key: "id", Value: "x"}}
		branch.NewHandler(svc).Delete(c)

		assert.Equal(t, http.StatusOK, w.Code)
	})
}
