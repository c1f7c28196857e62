package submission

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/c-w-schwind/Aufgabe-Christian/pkg/model"
)

// ContentType is sent with every submission.
const ContentType = "application/json; charset=UTF-8"

// maxErrorBody caps how much of a failed response is surfaced to the user.
const maxErrorBody = 4 << 10

// Response is the decoded body of a successful submission.
type Response struct {
	Status int
	Body   map[string]any
}

// Client transmits form records to a fixed collection endpoint.
type Client struct {
	endpoint string
	http     *http.Client
	timeout  time.Duration
	logger   *slog.Logger
}

// New constructs a Client. WithEndpoint is required.
func New(options ...Option) (*Client, error) {
	c := &Client{
		http:   &http.Client{},
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(c)
	}
	if c.endpoint == "" {
		return nil, ErrEndpointRequired
	}
	if c.timeout > 0 && c.http.Timeout == 0 {
		c.http.Timeout = c.timeout
	}
	return c, nil
}

// Endpoint reports the configured collection URL.
func (c *Client) Endpoint() string {
	return c.endpoint
}

// Send POSTs record as JSON and interprets the outcome. Every failure is a
// *Error; callers use KindOf/MessageOf to present it.
func (c *Client) Send(ctx context.Context, record model.FormRecord) (Response, error) {
	if err := ctx.Err(); err != nil {
		return Response{}, networkError(err)
	}

	payload, err := json.Marshal(record)
	if err != nil {
		return Response{}, fmt.Errorf("submission: encode record: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return Response{}, fmt.Errorf("submission: request: %w", err)
	}
	req.Header.Set("Content-Type", ContentType)
	req.Header.Set("Accept", "application/json")

	c.logger.Debug("submitting record", "endpoint", c.endpoint, "bytes", len(payload))

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Warn("submission transport failure", "endpoint", c.endpoint, "error", err)
		return Response{}, networkError(err)
	}
	defer resp.Body.Close()

	out, err := interpret(resp)
	if err != nil {
		c.logger.Warn("submission failed", "status", resp.StatusCode, "kind", KindOf(err))
		return Response{}, err
	}
	c.logger.Info("submission accepted", "status", resp.StatusCode)
	return out, nil
}

func interpret(resp *http.Response) (Response, error) {
	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return Response{}, unauthorizedError()
	case resp.StatusCode == http.StatusInternalServerError:
		return Response{}, serverError()
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return Response{}, requestFailed(resp.StatusCode, http.StatusText(resp.StatusCode), strings.TrimSpace(string(body)))
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return Response{}, networkError(err)
	}
	out := Response{Status: resp.StatusCode, Body: map[string]any{}}
	if len(bytes.TrimSpace(raw)) == 0 {
		return out, nil
	}
	var decoded any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return Response{}, &Error{
			Kind:    KindRequestFailed,
			Status:  resp.StatusCode,
			Message: "Request Failed: the server response was not valid JSON.",
			Err:     fmt.Errorf("%w: %v", ErrDecode, err),
		}
	}
	switch v := decoded.(type) {
	case map[string]any:
		out.Body = v
	default:
		out.Body["data"] = v
	}
	return out, nil
}
