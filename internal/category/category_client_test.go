package category_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"go-calypso/internal/category"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_Suggest(t *testing.T) {
	t.Run("returns the normalized label", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "Bearer key-1", r.Header.Get("Authorization"))

			var body map[string]string
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, "Entrega de insumos", body["purpose"])

			_ = json.NewEncoder(w).Encode(map[string]string{"category": ` "Proveedor." `})
		}))
		defer srv.Close()

		c := category.NewClient(category.Config{URL: srv.URL, APIKey: "key-1"})
		label, ok := c.Suggest(context.Background(), "  Entrega de insumos ")
		assert.True(t, ok)
		assert.Equal(t, "Proveedor", label)
	})

	t.Run("upstream error degrades to no suggestion", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer srv.Close()

		label, ok := category.NewClient(category.Config{URL: srv.URL}).Suggest(context.Background(), "Auditoría")
		assert.False(t, ok)
		assert.Empty(t, label)
	})

	t.Run("slow upstream times out", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			select {
			case <-time.After(time.Second):
			case <-r.Context().Done():
			}
		}))
		defer srv.Close()

		c := category.NewClient(category.Config{URL: srv.URL, Timeout: 50 * time.Millisecond})
		start := time.Now()
		_, ok := c.Suggest(context.Background(), "Mantenimiento")
		assert.False(t, ok)
		assert.Less(t, time.Since(start), 900*time.Millisecond)
	})

	t.Run("empty label is no suggestion", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"category":""}`))
		}))
		defer srv.Close()

		_, ok := category.NewClient(category.Config{URL: srv.URL}).Suggest(context.Background(), "Visita")
		assert.False(t, ok)
	})

	t.Run("blank purpose or missing url skip the call", func(t *testing.T) {
		var hits int32
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			atomic.AddInt32(&hits, 1)
		}))
		defer srv.Close()

		_, ok := category.NewClient(category.Config{URL: srv.URL}).Suggest(context.Background(), "   ")
		assert.False(t, ok)
		_, ok = category.NewClient(category.Config{}).Suggest(context.Background(), "Visita")
		assert.False(t, ok)
		assert.Zero(t, atomic.LoadInt32(&hits))
	})

	t.Run("breaker opens after repeated failures", func(t *testing.T) {
		var hits int32
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			atomic.AddInt32(&hits, 1)
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer srv.Close()

		c := category.NewClient(category.Config{URL: srv.URL})
		for i := 0; i < 8; i++ {
			_, ok := c.Suggest(context.Background(), "Visita técnica")
			assert.False(t, ok)
		}
		assert.Equal(t, int32(5), atomic.LoadInt32(&hits))
		assert.Equal(t, "open", c.BreakerState())
	})

	t.Run("cancelled caller still gets the shared answer", func(t *testing.T) {
		var hits int32
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			atomic.AddInt32(&hits, 1)
			_, _ = w.Write([]byte(`{"category":"Contratista"}`))
		}))
		defer srv.Close()

		c := category.NewClient(category.Config{URL: srv.URL})
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		for i := 0; i < 6; i++ {
			label, ok := c.Suggest(ctx, "Instalación de red")
			assert.True(t, ok)
			assert.Equal(t, "Contratista", label)
		}
		assert.Equal(t, int32(6), atomic.LoadInt32(&hits))
		assert.Equal(t, "closed", c.BreakerState())
	})
}

func TestNoop(t *testing.T) {
	label, ok := category.Noop{}.Suggest(context.Background(), "Visita")
	assert.False(t, ok)
	assert.Empty(t, label)
}
