// Package printnode submits rendered labels to the PrintNode print service.
package printnode

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"labelprint/pkg/platform/sentinel"
)

const (
	// DefaultBaseURL is the public PrintNode API.
	DefaultBaseURL = "https://api.printnode.com"

	// ContentTypePDF marks base64-encoded PDF content.
	ContentTypePDF = "pdf_base64"
	// Source tags jobs created by this service in the PrintNode console.
	Source = "tailoring-number-label-webapp"

	printJobsPath = "/printjobs"
)

// Config holds the PrintNode credential pair and transport settings.
type Config struct {
	APIKey    string
	PrinterID int64
	BaseURL   string
	Timeout   time.Duration
}

type printJobRequest struct {
	PrinterID   int64  `json:"printerId"`
	Title       string `json:"title"`
	ContentType string `json:"contentType"`
	Content     string `json:"content"`
	Source      string `json:"source"`
}

// Client submits print jobs. It never retries: a failure is returned to the
// caller, which owns any retry policy.
type Client struct {
	http      *resty.Client
	printerID int64
}

// Option configures a Client.
type Option func(*options)

type options struct {
	logger *slog.Logger
}

// WithLogger sends the HTTP client's own warnings and errors to logger.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// New builds a Client. A missing API key or non-positive printer id is a
// configuration fault and wraps sentinel.ErrMisconfigured.
func New(cfg Config, opts ...Option) (*Client, error) {
	o := options{logger: slog.Default()}
	for _, opt := range opts {
		opt(&o)
	}

	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, fmt.Errorf("%w: printnode api key is required", sentinel.ErrMisconfigured)
	}
	if cfg.PrinterID <= 0 {
		return nil, fmt.Errorf("%w: printnode printer id must be a positive number", sentinel.ErrMisconfigured)
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}

	client := resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetBasicAuth(cfg.APIKey, "").
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json").
		SetRetryCount(0).
		SetLogger(slogAdapter{logger: o.logger})
	if cfg.Timeout > 0 {
		client.SetTimeout(cfg.Timeout)
	}

	return &Client{http: client, printerID: cfg.PrinterID}, nil
}

// PrinterID is the target printer.
func (c *Client) PrinterID() int64 {
	return c.printerID
}

// Submit posts one PDF as a print job and returns PrintNode's job id.
func (c *Client) Submit(ctx context.Context, pdf []byte, title string) (string, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(printJobRequest{
			PrinterID:   c.printerID,
			Title:       title,
			ContentType: ContentTypePDF,
			Content:     base64.StdEncoding.EncodeToString(pdf),
			Source:      Source,
		}).
		Post(printJobsPath)
	if err != nil {
		return "", unreachable(err)
	}
	if !resp.IsSuccess() {
		return "", rejected(resp.StatusCode(), strings.TrimSpace(resp.String()))
	}

	return parseJobID(resp.Body()), nil
}

// parseJobID renders the response body as an opaque id. PrintNode answers
// with a bare JSON number; strings are unquoted and anything else is kept
// verbatim.
func parseJobID(body []byte) string {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return strings.TrimSpace(string(body))
	}
	switch id := v.(type) {
	case json.Number:
		return id.String()
	case string:
		return id
	default:
		return strings.TrimSpace(string(body))
	}
}
