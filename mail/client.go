package mail

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"net/http"
	"time"

	"github.com/kbukum/tablekit/errors"
	"github.com/kbukum/tablekit/httpclient"
	"github.com/kbukum/tablekit/logger"
	"github.com/kbukum/tablekit/observability"
	"github.com/kbukum/tablekit/resilience"
)

const serviceName = "resend"

// Client sends email through Resend.
type Client struct {
	http   *httpclient.Client
	config Config
	log    *logger.Logger
}

// NewClient validates cfg and builds a client.
func NewClient(cfg Config) (*Client, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	limiter := resilience.ResendRateLimiterConfig()
	hc := httpclient.Config{
		BaseURL:        cfg.BaseURL,
		Timeout:        cfg.Timeout,
		Headers:        map[string]string{"User-Agent": "tablekit"},
		RateLimiter:    &limiter,
		CircuitBreaker: httpclient.DefaultCircuitBreakerConfig(serviceName),
	}
	if cfg.APIKey != "" {
		hc.Auth = httpclient.BearerAuth(cfg.APIKey)
	}
	if !cfg.DisableRetry {
		hc.Retry = httpclient.DefaultRetryConfig()
	}
	client, err := httpclient.New(hc)
	if err != nil {
		return nil, errors.Internal(err)
	}
	return &Client{http: client, config: cfg, log: logger.Get("mail")}, nil
}

// Configured reports whether the client has a default API key.
func (c *Client) Configured() bool { return c.config.APIKey != "" }

// Send validates p and posts it to /emails.
func (c *Client) Send(ctx context.Context, p SendParams) (res *SendResult, err error) {
	op := observability.Start(ctx, "mail", "send")
	defer func() {
		op.End(err)
		status := "ok"
		if err != nil {
			status = "error"
		}
		op.Metrics.RecordMail(op.Context(), status)
	}()

	if p.From == "" {
		p.From = c.config.From
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	req := httpclient.Request{Method: http.MethodPost, Path: "/emails", Body: p}
	if p.APIKey != "" {
		req.Auth = httpclient.BearerAuth(p.APIKey)
	} else if !c.Configured() {
		return nil, errors.MissingField("api_key")
	}

	start := time.Now()
	resp, err := c.http.Do(op.Context(), req)
	if err != nil {
		c.log.Warn("send failed", logger.ErrorFields("send", err))
		return nil, apiError(err)
	}
	var out SendResult
	if err := json.Unmarshal(resp.Body, &out); err != nil {
		return nil, errors.ExternalServiceError(serviceName, err)
	}
	c.log.Info("mail sent", logger.Fields(
		"id", out.ID,
		"recipients", len(p.To),
		"duration", time.Since(start).String(),
	))
	return &out, nil
}

// apiErrorBody is how Resend describes a rejected request.
type apiErrorBody struct {
	StatusCode int    `json:"statusCode"`
	Name       string `json:"name"`
	Message    string `json:"message"`
}

func apiError(err error) *errors.AppError {
	appErr := httpclient.ToAppError(serviceName, err)
	var httpErr *httpclient.Error
	if !stderrors.As(err, &httpErr) || len(httpErr.Body) == 0 {
		return appErr
	}
	var body apiErrorBody
	if json.Unmarshal(httpErr.Body, &body) == nil && body.Message != "" {
		appErr.WithDetail("reason", body.Name).WithDetail("message", body.Message)
	}
	return appErr
}

// CheckHealth lists the sending domains to confirm the API key works.
func (c *Client) CheckHealth(ctx context.Context) observability.Health {
	h := observability.Health{
		Name:    serviceName,
		Details: map[string]string{"base_url": c.config.BaseURL},
	}
	if !c.Configured() {
		h.Status = observability.HealthStatusDegraded
		h.Message = "no API key configured"
		return h
	}
	ctx, cancel := context.WithTimeout(ctx, c.config.Timeout)
	defer cancel()
	_, err := c.http.Do(ctx, httpclient.Request{Method: http.MethodGet, Path: "/domains"})
	switch {
	case err == nil:
		h.Status = observability.HealthStatusUp
	case httpclient.IsAuth(err):
		h.Status = observability.HealthStatusDown
		h.Message = "API key rejected"
	default:
		h.Status = observability.HealthStatusDegraded
		h.Message = err.Error()
	}
	return h
}
