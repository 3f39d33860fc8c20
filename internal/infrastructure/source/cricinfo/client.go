package cricinfo

import (
	"context"
	"fmt"
	"strings"
	"time"

	crerr "github.com/cockroachdb/errors"
	"github.com/valyala/bytebufferpool"
	"github.com/valyala/fasthttp"

	"github.com/crickstat/xfactor/internal/domain/career"
	"github.com/crickstat/xfactor/internal/platform/logging"
	"github.com/crickstat/xfactor/internal/platform/resilience"
	"github.com/crickstat/xfactor/internal/usecase"
)

const (
	defaultBaseURL        = "https://stats.espncricinfo.com"
	defaultTimeout        = 20 * time.Second
	maxResponseBodySize   = 6 << 20
	fieldingQueryTemplate = "%s/ci/engine/player/%d.json?class=%d;template=results;type=fielding;view=innings"
)

var errCricinfoTransient = crerr.New("cricinfo transient failure")

type ClientConfig struct {
	BaseURL        string
	Timeout        time.Duration
	MaxRetries     int
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
}

// Client fetches fielding history pages from the statistics site. Identical
// concurrent fetches collapse into one request; repeated transport failures
// open the breaker instead of hammering a struggling upstream.
type Client struct {
	http           *fasthttp.Client
	baseURL        string
	timeout        time.Duration
	maxRetries     int
	logger         *logging.Logger
	breaker        *resilience.CircuitBreaker
	circuitEnabled bool
	flight         resilience.SingleFlight
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	breakerCfg := resilience.NormalizeCircuitBreakerConfig(cfg.CircuitBreaker)

	return &Client{
		http: &fasthttp.Client{
			ReadTimeout:         timeout,
			WriteTimeout:        timeout,
			MaxResponseBodySize: maxResponseBodySize,
		},
		baseURL:        baseURL,
		timeout:        timeout,
		maxRetries:     cfg.MaxRetries,
		logger:         logger,
		breaker:        resilience.NewCircuitBreaker(breakerCfg.FailureThreshold, breakerCfg.OpenTimeout, breakerCfg.HalfOpenMaxReq),
		circuitEnabled: breakerCfg.Enabled,
	}
}

func (c *Client) FetchFieldingDocument(ctx context.Context, playerRef int64, format career.Format) (usecase.SourceDocument, error) {
	if playerRef <= 0 {
		return usecase.SourceDocument{}, fmt.Errorf("%w: player ref must be positive", usecase.ErrInvalidInput)
	}
	if !format.Valid() {
		return usecase.SourceDocument{}, fmt.Errorf("%w: invalid format %d", usecase.ErrInvalidInput, format)
	}

	if c.circuitEnabled {
		if err := c.breaker.Allow(); err != nil {
			c.logger.WarnContext(ctx, "cricinfo circuit breaker rejected request", "state", c.breaker.State())
			return usecase.SourceDocument{}, fmt.Errorf("%w: statistics source is temporarily unavailable", usecase.ErrDependencyUnavailable)
		}
	}

	fullURL := fmt.Sprintf(fieldingQueryTemplate, c.baseURL, playerRef, int(format))

	out, err, _ := c.flight.Do(fullURL, func() (any, error) {
		doc, reqErr := c.fetchDocument(ctx, fullURL)
		if c.circuitEnabled {
			if reqErr != nil && crerr.Is(reqErr, errCricinfoTransient) {
				c.breaker.RecordFailure()
			} else {
				c.breaker.RecordSuccess()
			}
		}
		return doc, reqErr
	})
	if err != nil {
		return usecase.SourceDocument{}, err
	}

	doc, ok := out.(usecase.SourceDocument)
	if !ok {
		return usecase.SourceDocument{}, fmt.Errorf("unexpected response payload type %T", out)
	}
	return doc, nil
}

func (c *Client) fetchDocument(ctx context.Context, fullURL string) (usecase.SourceDocument, error) {
	body := bytebufferpool.Get()
	defer bytebufferpool.Put(body)

	if err := c.executeRequest(ctx, fullURL, body); err != nil {
		return usecase.SourceDocument{}, err
	}

	doc, err := ParseFieldingPage(body.B)
	if err != nil {
		return usecase.SourceDocument{}, fmt.Errorf("parse fielding page: %w", err)
	}
	return doc, nil
}

func (c *Client) executeRequest(ctx context.Context, fullURL string, body *bytebufferpool.ByteBuffer) error {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		body.Reset()

		status, err := c.doOnce(ctx, fullURL, body)
		switch {
		case err != nil:
			lastErr = fmt.Errorf("%w: send request: %v", errCricinfoTransient, err)
		case status >= 200 && status < 300:
			return nil
		case isRetryableStatus(status):
			lastErr = fmt.Errorf("%w: source status=%d", errCricinfoTransient, status)
		default:
			return fmt.Errorf("source status=%d url=%s", status, fullURL)
		}

		if attempt == c.maxRetries {
			break
		}
		backoff := time.Duration(attempt+1) * time.Second
		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}

	if lastErr == nil {
		lastErr = fmt.Errorf("source request failed")
	}
	c.logger.WarnContext(ctx, "cricinfo request failed", "url", fullURL, "error", lastErr)
	return lastErr
}

func (c *Client) doOnce(ctx context.Context, fullURL string, body *bytebufferpool.ByteBuffer) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(fullURL)
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.Set("Accept", "text/html")

	deadline := time.Now().Add(c.timeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}
	if err := c.http.DoDeadline(req, resp, deadline); err != nil {
		return 0, err
	}

	if _, err := body.Write(resp.Body()); err != nil {
		return 0, err
	}
	return resp.StatusCode(), nil
}

func isRetryableStatus(status int) bool {
	return status == fasthttp.StatusTooManyRequests || status >= 500
}
