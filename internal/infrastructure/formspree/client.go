// Package formspree delivers rating submissions to a hosted Formspree form.
package formspree

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/felixgeelhaar/studiorate/pkg/domain/rating"
)

// DefaultEndpoint is the studio's form.
const DefaultEndpoint = "https://formspree.io/f/xdkbkoel"

const maxErrorBody = 64 << 10

var _ rating.Submitter = (*Client)(nil)

// Client posts one multipart form per submission. It never retries and sets
// no timeout of its own: a request ends when the endpoint answers, the
// transport fails, or the caller's context ends.
type Client struct {
	endpoint string
	client   *http.Client
	logger   *zap.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) {
		if c != nil {
			cl.client = c
		}
	}
}

func WithLogger(l *zap.Logger) Option {
	return func(cl *Client) {
		if l != nil {
			cl.logger = l
		}
	}
}

// NewClient creates a client for endpoint; empty means DefaultEndpoint.
func NewClient(endpoint string, opts ...Option) *Client {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	c := &Client{
		endpoint: endpoint,
		client:   &http.Client{},
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Endpoint returns the form URL this client posts to.
func (c *Client) Endpoint() string {
	return c.endpoint
}

// errorResponse is the JSON body Formspree returns on rejection.
type errorResponse struct {
	Error  string `json:"error"`
	Errors []struct {
		Field   string `json:"field"`
		Message string `json:"message"`
	} `json:"errors"`
}

// Submit sends sub. Any 2xx is success; everything else, including
// transport errors, is a *rating.SubmissionError.
func (c *Client) Submit(ctx context.Context, sub *rating.Submission) error {
	body, contentType, err := encode(sub)
	if err != nil {
		return &rating.SubmissionError{Err: fmt.Errorf("encode form: %w", err)}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, body)
	if err != nil {
		return &rating.SubmissionError{Err: fmt.Errorf("create request: %w", err)}
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "Studiorate/1.0")
	if sub.ID != "" {
		req.Header.Set("X-Submission-ID", sub.ID)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return &rating.SubmissionError{Err: fmt.Errorf("send request: %w", err)}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		detail := readErrorDetail(resp.Body)
		c.logger.Debug("form endpoint rejected submission",
			zap.String("submission_id", sub.ID),
			zap.Int("status", resp.StatusCode),
			zap.String("detail", detail),
		)
		return &rating.SubmissionError{StatusCode: resp.StatusCode, Detail: detail}
	}

	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

func encode(sub *rating.Submission) (io.Reader, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for _, f := range sub.Fields() {
		if err := w.WriteField(f.Name, f.Value); err != nil {
			return nil, "", err
		}
	}
	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return &buf, w.FormDataContentType(), nil
}

func readErrorDetail(r io.Reader) string {
	data, err := io.ReadAll(io.LimitReader(r, maxErrorBody))
	if err != nil || len(data) == 0 {
		return ""
	}

	var er errorResponse
	if json.Unmarshal(data, &er) != nil {
		return ""
	}
	msgs := make([]string, 0, len(er.Errors)+1)
	if er.Error != "" {
		msgs = append(msgs, er.Error)
	}
	for _, e := range er.Errors {
		if e.Field != "" {
			msgs = append(msgs, e.Field+": "+e.Message)
			continue
		}
		msgs = append(msgs, e.Message)
	}
	return strings.Join(msgs, "; ")
}
