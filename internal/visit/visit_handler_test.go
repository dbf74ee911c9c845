package visit_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"go-calypso/internal/shared/apperror"
	"go-calypso/internal/shared/validation"
	"go-calypso/internal/visit"
	visiterrors "go-calypso/internal/visit/errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	apperror.Init()
	validation.Init()
	os.Exit(m.Run())
}

type fakeVisitService struct {
	RegisterFn     func(ctx context.Context, req visit.RegisterVisitRequest) (visit.VisitResponse, error)
	SelfRegisterFn func(ctx context.Context, req visit.SelfRegisterVisitRequest) (visit.VisitResponse, error)
	ApproveFn      func(ctx context.Context, id, hostID string) (visit.VisitResponse, error)
	MarkExitFn     func(ctx context.Context, id string) (visit.VisitResponse, error)
	ListFn         func(ctx context.Context, q visit.ListQuery) ([]visit.VisitResponse, error)
	GetByIDFn      func(ctx context.Context, id string) (visit.VisitResponse, error)
}

func (f *fakeVisitService) Register(ctx context.Context, req visit.RegisterVisitRequest) (visit.VisitResponse, error) {
	return f.RegisterFn(ctx, req)
}
func (f *fakeVisitService) SelfRegister(ctx context.Context, req visit.SelfRegisterVisitRequest) (visit.VisitResponse, error) {
	return f.SelfRegisterFn(ctx, req)
}
func (f *fakeVisitService) Approve(ctx context.Context, id, hostID string) (visit.VisitResponse, error) {
	return f.ApproveFn(ctx, id, hostID)
}
func (f *fakeVisitService) MarkExit(ctx context.Context, id string) (visit.VisitResponse, error) {
	return f.MarkExitFn(ctx, id)
}
func (f *fakeVisitService) List(ctx context.Context, q visit.ListQuery) ([]visit.VisitResponse, error) {
	return f.ListFn(ctx, q)
}
func (f *fakeVisitService) GetByID(ctx context.Context, id string) (visit.VisitResponse, error) {
	return f.GetByIDFn(ctx, id)
}

type apiEnvelope struct {
	Ok    bool            `json:"ok"`
	Data  json.RawMessage `json:"data"`
	Meta  json.RawMessage `json:"meta"`
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
		Details []struct {
			Field string `json:"field"`
			Rule  string `json:"rule"`
		} `json:"details"`
	} `json:"error"`
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) apiEnvelope {
	t.Helper()
	var env apiEnvelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return env
}

func selfRegistrationBody(overrides map[string]any) string {
	body := map[string]any{
		"documentType":            "CC",
		"documentNumber":          "1020304050",
		"firstNames":              "Luisa",
		"lastNames":               "Gómez",
		"birthDate":               "1990-04-12",
		"gender":                  "Femenino",
		"bloodType":               "O+",
		"phone":                   "+57 310 555 1234",
		"purpose":                 "Entrevista de trabajo",
		"visitType":               "Candidato",
		"branchId":                uuid.NewString(),
		"eps":                     "Sura",
		"arl":                     "Positiva",
		"emergencyContactName":    "Pedro Gómez",
		"emergencyContactPhone":   "3105550000",
		"emergencyContactKinship": "Hermano",
	}
	for k, v := range overrides {
		body[k] = v
	}
	raw, _ := json.Marshal(body)
	return string(raw)
}

func jsonRequest(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestVisitHandler_SelfRegister(t *testing.T) {
	t.Run("created", func(t *testing.T) {
		svc := &fakeVisitService{
			SelfRegisterFn: func(ctx context.Context, req visit.SelfRegisterVisitRequest) (visit.VisitResponse, error) {
				assert.Equal(t, "Luisa", req.FirstNames)
				return visit.VisitResponse{ID: uuid.NewString(), Estado: visit.EstadoPendiente}, nil
			},
		}
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = jsonRequest(http.MethodPost, "/public/visits/self-registration", selfRegistrationBody(nil))

		visit.NewHandler(svc).SelfRegister(c)

		require.Equal(t, http.StatusCreated, w.Code)
		assert.Contains(t, w.Body.String(), `"estado":"PENDIENTE_APROBACION"`)
	})

	cases := []struct {
		name      string
		overrides map[string]any
		field     string
		rule      string
	}{
		{"bad phone", map[string]any{"phone": "12ab"}, "phone", "phone"},
		{"digits in name", map[string]any{"firstNames": "Lu1sa"}, "firstNames", "person_name"},
		{"future birth date", map[string]any{"birthDate": "2999-01-01"}, "birthDate", "pastdate"},
		{"bad plate", map[string]any{"vehiclePlate": "!!"}, "vehiclePlate", "plate"},
		{"missing purpose", map[string]any{"purpose": ""}, "purpose", "required"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = jsonRequest(http.MethodPost, "/public/visits/self-registration", selfRegistrationBody(tc.overrides))

			visit.NewHandler(&fakeVisitService{}).SelfRegister(c)

			require.Equal(t, http.StatusBadRequest, w.Code)
			env := decodeEnvelope(t, w)
			assert.Equal(t, apperror.CodeValidation, env.Error.Code)
			require.NotEmpty(t, env.Error.Details)
			assert.Equal(t, tc.field, env.Error.Details[0].Field)
			assert.Equal(t, tc.rule, env.Error.Details[0].Rule)
		})
	}
}

func TestVisitHandler_Register(t *testing.T) {
	hostID := uuid.NewString()
	svc := &fakeVisitService{
		RegisterFn: func(ctx context.Context, req visit.RegisterVisitRequest) (visit.VisitResponse, error) {
			assert.Equal(t, hostID, req.HostID)
			return visit.VisitResponse{ID: uuid.NewString(), Estado: visit.EstadoActiva, HostID: &req.HostID}, nil
		},
	}

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = jsonRequest(http.MethodPost, "/visits", selfRegistrationBody(map[string]any{"hostId": hostID}))
	visit.NewHandler(svc).Register(c)
	assert.Equal(t, http.StatusCreated, w.Code)

	w = httptest.NewRecorder()
	c, _ = gin.CreateTestContext(w)
	c.Request = jsonRequest(http.MethodPost, "/visits", selfRegistrationBody(nil))
	visit.NewHandler(svc).Register(c)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "hostId", decodeEnvelope(t, w).Error.Details[0].Field)
}

func TestVisitHandler_Transitions(t *testing.T) {
	id := uuid.NewString()
	hostID := uuid.NewString()

	cases := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"ok", nil, http.StatusOK, ""},
		{"not found", visiterrors.ErrVisitNotFound, http.StatusNotFound, apperror.CodeNotFound},
		{"not pending", visiterrors.ErrVisitNotPending, http.StatusConflict, apperror.CodeInvalidState},
		{"host missing", visiterrors.ErrHostNotFound, http.StatusNotFound, apperror.CodeNotFound},
	}
	for _, tc := range cases {
		t.Run("approve "+tc.name, func(t *testing.T) {
			svc := &fakeVisitService{
				ApproveFn: func(ctx context.Context, gotID, gotHost string) (visit.VisitResponse, error) {
					assert.Equal(t, id, gotID)
					assert.Equal(t, hostID, gotHost)
					if tc.err != nil {
						return visit.VisitResponse{}, tc.err
					}
					return visit.VisitResponse{ID: id, Estado: visit.EstadoActiva}, nil
				},
			}
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = jsonRequest(http.MethodPut, "/visits/"+id+"/approve", `{"hostId":"`+hostID+`"}`)
			c.Params = gin.Params{{Key: "id", Value: id}}

			visit.NewHandler(svc).Approve(c)

			assert.Equal(t, tc.wantStatus, w.Code)
			if tc.wantCode != "" {
				assert.Equal(t, tc.wantCode, decodeEnvelope(t, w).Error.Code)
			}
		})
	}

	t.Run("approve without host", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = jsonRequest(http.MethodPut, "/visits/"+id+"/approve", `{}`)
		c.Params = gin.Params{{Key: "id", Value: id}}

		visit.NewHandler(&fakeVisitService{}).Approve(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("second exit is a conflict", func(t *testing.T) {
		calls := 0
		svc := &fakeVisitService{
			MarkExitFn: func(ctx context.Context, gotID string) (visit.VisitResponse, error) {
				calls++
				if calls > 1 {
					return visit.VisitResponse{}, visiterrors.ErrVisitAlreadyExited
				}
				return visit.VisitResponse{ID: gotID, Estado: visit.EstadoFinalizada}, nil
			},
		}
		h := visit.NewHandler(svc)

		for _, want := range []int{http.StatusOK, http.StatusConflict} {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodPut, "/visits/"+id+"/exit", nil)
			c.Params = gin.Params{{Key: "id", Value: id}}
			h.MarkExit(c)
			assert.Equal(t, want, w.Code)
		}
	})
}

func TestVisitHandler_GetAll(t *testing.T) {
	var got visit.ListQuery
	svc := &fakeVisitService{
		ListFn: func(ctx context.Context, q visit.ListQuery) ([]visit.VisitResponse, error) {
			got = q
			return []visit.VisitResponse{{ID: "1"}, {ID: "2"}, {ID: "3"}}, nil
		},
	}

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/visits?estado=activa&search=ana&from=2026-03-01&to=2026-03-31&page=2&page_size=2", nil)

	visit.NewHandler(svc).GetAll(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, visit.ListQuery{Estado: "activa", Search: "ana", From: "2026-03-01", To: "2026-03-31"}, got)

	env := decodeEnvelope(t, w)
	assert.JSONEq(t, `[{"id":"3"}]`, trimVisits(t, env.Data))
	assert.JSONEq(t, `{"total":3,"totalPages":2,"page":2,"pageSize":2}`, string(env.Meta))
}

// trimVisits keeps only the ids of a visit list payload.
func trimVisits(t *testing.T, raw json.RawMessage) string {
	t.Helper()
	var items []map[string]any
	require.NoError(t, json.Unmarshal(raw, &items))
	out := make([]map[string]any, len(items))
	for i, it := range items {
		out[i] = map[string]any{"id": it["id"]}
	}
	b, err := json.Marshal(out)
	require.NoError(t, err)
	return string(b)
}
