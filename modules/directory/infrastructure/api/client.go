package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"github.com/iota-uz/employee-directory/pkg/configuration"
	"github.com/iota-uz/employee-directory/pkg/httpapi"
	"github.com/iota-uz/employee-directory/pkg/mapping"
	"github.com/iota-uz/employee-directory/pkg/metrics"
)

var tracer = otel.Tracer("employee-directory-api-client")

// StatusError is returned for any non-2xx response.
type StatusError struct {
	Status   int
	Envelope *httpapi.ErrorEnvelope
	Body     string
}

func (e *StatusError) Error() string {
	if e.Envelope != nil {
		return fmt.Sprintf("http status=%d: %s", e.Status, e.Envelope.String())
	}
	return fmt.Sprintf("http status=%d body=%s", e.Status, e.Body)
}

type Options struct {
	BaseURL         string
	IDField         string
	Timeout         time.Duration
	RequestIDHeader string
	// Transport overrides the default round tripper, used by tests.
	Transport http.RoundTripper
}

// OptionsFromConfig maps the process configuration onto client options.
func OptionsFromConfig(conf *configuration.Configuration) Options {
	return Options{
		BaseURL:         conf.API.URL,
		IDField:         conf.API.IDField,
		Timeout:         conf.API.Timeout,
		RequestIDHeader: conf.RequestIDHeader,
	}
}

// Client talks JSON to the employee REST API.
type Client struct {
	baseURL         *url.URL
	idField         string
	httpClient      *http.Client
	requestIDHeader string
}

func NewClient(opts Options) (*Client, error) {
	raw := strings.TrimRight(strings.TrimSpace(opts.BaseURL), "/")
	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid base url: %q", opts.BaseURL)
	}
	return &Client{
		baseURL:         u,
		idField:         mapping.Or(strings.TrimSpace(opts.IDField), "_id"),
		httpClient:      &http.Client{Timeout: opts.Timeout, Transport: opts.Transport},
		requestIDHeader: opts.RequestIDHeader,
	}, nil
}

func (c *Client) IDField() string {
	return c.idField
}

func (c *Client) endpoint(segments ...string) string {
	u := *c.baseURL
	escaped := make([]string, len(segments))
	for i, s := range segments {
		escaped[i] = url.PathEscape(s)
	}
	u.RawPath = strings.TrimRight(u.EscapedPath(), "/") + "/" + strings.Join(escaped, "/")
	u.Path, _ = url.PathUnescape(u.RawPath)
	return u.String()
}

// doJSON performs one request and returns the response body of a 2xx reply.
func (c *Client) doJSON(ctx context.Context, op, method, target string, reqBody any) (respBody []byte, err error) {
	start := time.Now()
	ctx, span := tracer.Start(ctx, "api."+op, trace.WithAttributes(
		attribute.String("http.method", method),
		attribute.String("http.url", target),
	))
	defer func() {
		outcome := metrics.OutcomeSuccess
		if err != nil {
			outcome = metrics.OutcomeError
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		metrics.APIRequests.WithLabelValues(op, outcome).Inc()
		metrics.APIRequestDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
		span.End()
	}()

	var body io.Reader
	if reqBody != nil {
		b, err := json.Marshal(reqBody)
		if err != nil {
			return nil, fmt.Errorf("json marshal request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, fmt.Errorf("http request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if reqBody != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.requestIDHeader != "" {
		req.Header.Set(c.requestIDHeader, uuid.NewString())
	}
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(req.Header))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http do: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()
	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))

	respBody, err = io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("http read: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		statusErr := &StatusError{Status: resp.StatusCode, Body: strings.TrimSpace(string(respBody))}
		if env, ok := httpapi.ParseError(respBody); ok {
			statusErr.Envelope = env
		}
		return nil, statusErr
	}
	return respBody, nil
}
