package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// FallbackMessage is shown to the operator whenever a remote call fails
// without a structured error body.
const FallbackMessage = "The request could not be completed. Check the connection and try again."

// Client talks JSON over HTTP to the backend. It implements API.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
	log        *logrus.Logger
}

// Config holds gateway client configuration.
type Config struct {
	BaseURL string
	Token   string
	Timeout time.Duration
	Logger  *logrus.Logger
}

// New creates a gateway client.
func New(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	log := cfg.Logger
	if log == nil {
		log = logrus.New()
		log.SetOutput(io.Discard)
	}
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		token:   cfg.Token,
		log:     log,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// APIError is a structured error response from the backend, in the shape
// {"message": "...", "errors": {"field": ["msg", ...]}}. Field messages,
// when present, are concatenated into a single display string.
type APIError struct {
	StatusCode int
	Message    string              `json:"message"`
	Fields     map[string][]string `json:"errors"`
}

func (e *APIError) Error() string {
	if len(e.Fields) > 0 {
		keys := make([]string, 0, len(e.Fields))
		for k := range e.Fields {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		var msgs []string
		for _, k := range keys {
			msgs = append(msgs, e.Fields[k]...)
		}
		return strings.Join(msgs, "; ")
	}
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("request failed with status %d", e.StatusCode)
}

// TransportError marks a call that failed without a structured backend
// response: connection refused, timeout, or an unreadable body. Callers
// that keep their own local validation errors verbatim use it to tell the
// two apart.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string { return e.Err.Error() }

func (e *TransportError) Unwrap() error { return e.Err }

// Message returns the text to surface to the operator for a failed call:
// the structured backend message when there is one, the fixed fallback
// otherwise. Errors are never swallowed silently.
func Message(err error) string {
	if err == nil {
		return ""
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) && (apiErr.Message != "" || len(apiErr.Fields) > 0) {
		return apiErr.Error()
	}
	return FallbackMessage
}

// do sends one request and decodes the response into out (if non-nil).
// Create/update responses may arrive wrapped in a {"data": ...} envelope;
// both shapes are accepted.
func (c *Client) do(ctx context.Context, method, path string, payload, out any) error {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.WithError(err).WithFields(logrus.Fields{
			"method": method,
			"path":   path,
		}).Error("gateway request failed")
		return &TransportError{Err: fmt.Errorf("send request: %w", err)}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return &TransportError{Err: fmt.Errorf("read response: %w", err)}
	}

	c.log.WithFields(logrus.Fields{
		"method":   method,
		"path":     path,
		"status":   resp.StatusCode,
		"duration": time.Since(start).String(),
	}).Debug("gateway request")

	if resp.StatusCode >= 400 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		if json.Unmarshal(respBody, apiErr) != nil {
			return &TransportError{Err: fmt.Errorf("request failed: %s", resp.Status)}
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := decodeBody(respBody, out); err != nil {
		return &TransportError{Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}

// decodeBody unmarshals either a bare payload or a {"data": ...} envelope.
func decodeBody(data []byte, out any) error {
	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(data, &envelope); err == nil && len(envelope.Data) > 0 {
		return json.Unmarshal(envelope.Data, out)
	}
	return json.Unmarshal(data, out)
}

// apiFloat tolerates decimal fields encoded as JSON strings, which is how
// the backend serializes money columns.
type apiFloat float64

func (f *apiFloat) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		*f = 0
		return nil
	}
	var v float64
	if err := json.Unmarshal([]byte(s), &v); err != nil {
		return err
	}
	*f = apiFloat(v)
	return nil
}

// dateLayout is the calendar-date format used on the wire
const dateLayout = "2006-01-02"
