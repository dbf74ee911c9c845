package category

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const (
	maxCategoryLen = 100

	breakerFailureThreshold = 5
	breakerOpenTimeout      = 30 * time.Second
	breakerHalfOpenRequests = 2
)

// Suggester proposes a category label for a visit purpose. ok is false when
// no suggestion is available; callers never see the underlying failure.
//
//go:generate mockgen -source=category_client.go -destination=mock/category_client_mock.go -package=mock
type Suggester interface {
	Suggest(ctx context.Context, purpose string) (category string, ok bool)
}

type suggestRequest struct {
	Purpose string `json:"purpose"`
}

type suggestResponse struct {
	Category string `json:"category"`
}

type Config struct {
	URL     string
	APIKey  string
	Timeout time.Duration
}

// Client calls the external categorisation service over HTTP.
type Client struct {
	cfg        Config
	httpClient *http.Client
	cb         *gobreaker.CircuitBreaker
	sf         singleflight.Group
	logger     *zap.Logger
}

func NewClient(cfg Config, logger ...*zap.Logger) *Client {
	l := zap.L().Named("category.client")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("category.client")
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 4 * time.Second
	}
	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		cb: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:        "category-suggestion",
			MaxRequests: breakerHalfOpenRequests,
			Timeout:     breakerOpenTimeout,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= breakerFailureThreshold
			},
			OnStateChange: func(name string, from, to gobreaker.State) {
				l.Info("breaker state changed",
					zap.String("breaker", name),
					zap.String("from", from.String()),
					zap.String("to", to.String()),
				)
			},
		}),
		logger: l,
	}
}

// BreakerState reports "closed", "half-open" or "open".
func (c *Client) BreakerState() string {
	return c.cb.State().String()
}

func (c *Client) Suggest(ctx context.Context, purpose string) (string, bool) {
	purpose = strings.TrimSpace(purpose)
	if purpose == "" || c.cfg.URL == "" {
		return "", false
	}

	// identical purposes submitted at the same time share one upstream call;
	// it must outlive whichever caller started it
	shared := context.WithoutCancel(ctx)
	v, err, _ := c.sf.Do(strings.ToLower(purpose), func() (any, error) {
		return c.cb.Execute(func() (interface{}, error) {
			return c.call(shared, purpose)
		})
	})
	if err != nil {
		c.logger.Warn("category suggestion unavailable",
			zap.String("breaker", c.cb.State().String()),
			zap.Error(err),
		)
		return "", false
	}

	label := v.(string)
	if label == "" {
		return "", false
	}
	return label, true
}

func (c *Client) call(ctx context.Context, purpose string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	body, err := json.Marshal(suggestRequest{Purpose: purpose})
	if err != nil {
		return "", fmt.Errorf("category: marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.URL, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("category: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.cfg.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("category: service unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("category: service returned %d", resp.StatusCode)
	}

	var out suggestResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("category: decode response: %w", err)
	}
	return normalizeLabel(out.Category), nil
}

func normalizeLabel(s string) string {
	s = strings.TrimSpace(strings.Trim(strings.TrimSpace(s), `."'`))
	if len([]rune(s)) > maxCategoryLen {
		s = string([]rune(s)[:maxCategoryLen])
	}
	return s
}

// Noop never suggests anything; used when no service URL is configured.
type Noop struct{}

func (Noop) Suggest(context.Context, string) (string, bool) { return "", false }
