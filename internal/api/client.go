// Package api is the HTTP transport for the AllergyCare backend. It owns the
// envelope contract and the error taxonomy; domain services build requests on
// top of it and never touch net/http directly.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"
)

const defaultTimeoutSeconds = 20

// Options configures a Client. Zero values fall back to sane defaults; a zero
// RateLimitRPS disables outbound pacing.
type Options struct {
	BaseURL        string
	Token          string
	TimeoutSeconds int
	RateLimitRPS   int
	RateLimitBurst int
}

// Client talks JSON (and multipart for uploads) to the backend.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// New creates a Client from options.
func New(opts Options) *Client {
	timeoutSeconds := opts.TimeoutSeconds
	if timeoutSeconds <= 0 {
		timeoutSeconds = defaultTimeoutSeconds
	}

	var limiter *rate.Limiter
	if opts.RateLimitRPS > 0 {
		burst := opts.RateLimitBurst
		if burst <= 0 {
			burst = opts.RateLimitRPS
		}
		limiter = rate.NewLimiter(rate.Limit(opts.RateLimitRPS), burst)
	}

	return &Client{
		baseURL: strings.TrimRight(opts.BaseURL, "/"),
		token:   opts.Token,
		httpClient: &http.Client{
			Timeout: time.Duration(timeoutSeconds) * time.Second,
		},
		limiter: limiter,
	}
}

// Get issues a GET and decodes the standard envelope.
func (c *Client) Get(ctx context.Context, path string) (*Envelope, error) {
	return c.doJSON(ctx, http.MethodGet, path, nil)
}

// Post issues a POST with a JSON body and decodes the standard envelope.
func (c *Client) Post(ctx context.Context, path string, body any) (*Envelope, error) {
	return c.doJSON(ctx, http.MethodPost, path, body)
}

// Patch issues a PATCH with a JSON body and decodes the standard envelope.
func (c *Client) Patch(ctx context.Context, path string, body any) (*Envelope, error) {
	return c.doJSON(ctx, http.MethodPatch, path, body)
}

func (c *Client) doJSON(ctx context.Context, method, path string, body any) (*Envelope, error) {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	raw, err := c.do(req)
	if err != nil {
		return nil, err
	}
	return decodeEnvelope(raw)
}

// MultipartField is one part of a multipart upload. A part with a non-nil
// Reader is written as a file part, otherwise as a plain form value.
type MultipartField struct {
	Name     string
	Value    string
	Reader   io.Reader
	Filename string
	MIMEType string
}

// PostMultipart uploads a multipart form and returns the raw response body.
// The analyze endpoint answers with its own shape, not the standard envelope,
// so decoding is left to the caller.
func (c *Client) PostMultipart(ctx context.Context, path string, fields []MultipartField) ([]byte, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	for _, field := range fields {
		if field.Reader == nil {
			if err := writer.WriteField(field.Name, field.Value); err != nil {
				return nil, fmt.Errorf("write form field %s: %w", field.Name, err)
			}
			continue
		}

		header := make(map[string][]string)
		header["Content-Disposition"] = []string{
			fmt.Sprintf(`form-data; name="%s"; filename="%s"`, field.Name, field.Filename),
		}
		mimeType := field.MIMEType
		if mimeType == "" {
			mimeType = "application/octet-stream"
		}
		header["Content-Type"] = []string{mimeType}

		part, err := writer.CreatePart(header)
		if err != nil {
			return nil, fmt.Errorf("create form part %s: %w", field.Name, err)
		}
		if _, err := io.Copy(part, field.Reader); err != nil {
			return nil, fmt.Errorf("copy form part %s: %w", field.Name, err)
		}
	}

	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("finalize multipart body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, &buf)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	return c.do(req)
}

// do applies pacing and shared headers, executes the request and returns the
// body. Transport-level failures are tagged ErrTransport; HTTP error statuses
// whose body still parses as an envelope are surfaced through the envelope's
// own failure path by the caller.
func (c *Client) do(req *http.Request) ([]byte, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(req.Context()); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrTransport, err)
		}
	}

	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	req.Header.Set("X-Request-ID", uuid.NewString())
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTransport, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTransport, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		// Error statuses usually still carry an envelope with a message.
		if env, decodeErr := decodeEnvelope(body); decodeErr == nil {
			return nil, env.Err()
		}
		return nil, fmt.Errorf("%w: status %d", ErrRejected, resp.StatusCode)
	}

	return body, nil
}
