package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
)

// DefaultTimeout bounds a Send without WithTimeout.
const DefaultTimeout = 10 * time.Second

const (
	userAgent      = "errorlog-webhook/1.0"
	maxExcerpt     = 200
	maxBodyDrained = 64 << 10
)

// Sender posts JSON to HTTP endpoints, once per call.
type Sender struct {
	client *http.Client
}

// NewSender creates a Sender with its own pooled client.
func NewSender() *Sender {
	return &Sender{client: &http.Client{
		Transport: &http.Transport{
			Proxy:               http.ProxyFromEnvironment,
			MaxIdleConns:        100,
			MaxIdleConnsPerHost: 10,
			IdleConnTimeout:     90 * time.Second,
		},
	}}
}

// NewSenderWithClient creates a Sender on client; nil behaves like NewSender.
func NewSenderWithClient(client *http.Client) *Sender {
	if client == nil {
		return NewSender()
	}
	return &Sender{client: client}
}

// Send marshals data and POSTs it to endpoint. Non-2xx answers return an
// error wrapping ErrUnexpectedStatus with a short body excerpt.
func (s *Sender) Send(ctx context.Context, endpoint string, data any, opts ...SendOption) error {
	if err := checkEndpoint(endpoint); err != nil {
		return err
	}
	body, err := json.Marshal(data)
	if err != nil {
		return errors.Join(ErrInvalidPayload, err)
	}

	cfg := sendConfig{
		timeout: DefaultTimeout,
		header:  http.Header{"Content-Type": {"application/json"}},
		client:  s.client,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	var done func(bool)
	if cfg.breaker != nil {
		if done, err = cfg.breaker.Acquire(); err != nil {
			return fmt.Errorf("%w: %s", err, endpoint)
		}
	}

	res := post(ctx, cfg, endpoint, body)
	if done != nil {
		done(res.Error == nil || callerFault(res.StatusCode))
	}
	if cfg.onDelivery != nil {
		cfg.onDelivery(res)
	}
	return res.Error
}

func post(ctx context.Context, cfg sendConfig, endpoint string, body []byte) (res DeliveryResult) {
	res = DeliveryResult{ID: uuid.NewString(), URL: endpoint}
	start := time.Now()
	defer func() { res.Duration = time.Since(start) }()

	ctx, cancel := context.WithTimeout(ctx, cfg.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		res.Error = errors.Join(ErrInvalidURL, err)
		return res
	}
	req.Header = cfg.header.Clone()
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("X-Delivery-ID", res.ID)

	resp, err := cfg.client.Do(req)
	if err != nil {
		kind := ErrTemporaryFailure
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			kind = ErrTimeout
		}
		res.Error = fmt.Errorf("%w: %w", kind, err)
		return res
	}
	defer func() { _ = resp.Body.Close() }()

	res.StatusCode = resp.StatusCode
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxBodyDrained))
	if resp.StatusCode/100 != 2 {
		res.Error = statusError(resp.StatusCode, raw)
	}
	return res
}

func statusError(code int, body []byte) error {
	excerpt := strings.Join(strings.Fields(string(body)), " ")
	if excerpt == "" {
		return fmt.Errorf("%w: %d", ErrUnexpectedStatus, code)
	}
	if len(excerpt) > maxExcerpt {
		excerpt = excerpt[:maxExcerpt] + "..."
	}
	return fmt.Errorf("%w: %d: %s", ErrUnexpectedStatus, code, excerpt)
}

// callerFault reports statuses that blame the request rather than the
// endpoint. They do not count against the breaker.
func callerFault(code int) bool {
	return code/100 == 4 && code != http.StatusRequestTimeout && code != http.StatusTooManyRequests
}

func checkEndpoint(endpoint string) error {
	if endpoint == "" {
		return fmt.Errorf("%w: empty", ErrInvalidURL)
	}
	u, err := url.Parse(endpoint)
	switch {
	case err != nil:
		return errors.Join(ErrInvalidURL, err)
	case u.Scheme != "http" && u.Scheme != "https":
		return fmt.Errorf("%w: scheme %q", ErrInvalidURL, u.Scheme)
	case u.Host == "":
		return fmt.Errorf("%w: no host", ErrInvalidURL)
	}
	return nil
}
