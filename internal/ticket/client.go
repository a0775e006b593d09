// Package ticket creates tracking tickets over the tracker's XML HTTP API.
//
// Tickets POST to <base>/<project>/tickets.xml with Basic credentials. Some
// deployments only route the extensionless path, so a 404 on the first URL is
// retried once against <base>/<project>/tickets with an explicit XML Accept
// header. HTTP 200 or 201 is success; anything else fails with the response
// body captured in memory for diagnostics.
package ticket

import (
	"bytes"
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

const userAgent = "cronwatch/0.1.0"

// Dispatcher is the surface the monitor depends on.
type Dispatcher interface {
	Create(ctx context.Context, summary, description string) error
}

// Credentials identify the API account used for Basic auth.
type Credentials struct {
	Username string
	APIKey   string
}

// Options configure a ticket Client.
type Options struct {
	BaseURL     string
	Project     string
	Credentials Credentials
	Priority    string
	Status      string
	Type        string
	Timeout     time.Duration
	Logger      *slog.Logger
}

// Client posts ticket documents to the tracker.
type Client struct {
	baseURL  string
	project  string
	creds    Credentials
	priority string
	status   string
	kind     string
	client   *http.Client
	logger   *slog.Logger
}

type document struct {
	XMLName     xml.Name `xml:"ticket"`
	Summary     string   `xml:"summary"`
	Description string   `xml:"description"`
	Priority    string   `xml:"priority"`
	Status      string   `xml:"status"`
	Type        string   `xml:"ticket-type"`
}

// NewClient validates the options and builds a Client.
func NewClient(opts Options) (*Client, error) {
	baseURL := strings.TrimRight(strings.TrimSpace(opts.BaseURL), "/")
	if baseURL == "" {
		return nil, fmt.Errorf("ticket base URL required")
	}
	project := strings.TrimSpace(opts.Project)
	if project == "" {
		return nil, fmt.Errorf("ticket project required")
	}
	if strings.TrimSpace(opts.Credentials.Username) == "" || strings.TrimSpace(opts.Credentials.APIKey) == "" {
		return nil, fmt.Errorf("ticket credentials required")
	}

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return &Client{
		baseURL:  baseURL,
		project:  project,
		creds:    opts.Credentials,
		priority: opts.Priority,
		status:   opts.Status,
		kind:     opts.Type,
		client:   &http.Client{Timeout: timeout},
		logger:   logger,
	}, nil
}

// Create posts a new ticket. The extensionless fallback fires only on a 404
// from the primary URL.
func (c *Client) Create(ctx context.Context, summary, description string) error {
	body, err := xml.MarshalIndent(document{
		Summary:     summary,
		Description: description,
		Priority:    c.priority,
		Status:      c.status,
		Type:        c.kind,
	}, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal ticket: %w", err)
	}
	payload := append([]byte(xml.Header), body...)

	primary := fmt.Sprintf("%s/%s/tickets.xml", c.baseURL, c.project)
	status, respBody, err := c.post(ctx, primary, payload, false)
	if err != nil {
		return fmt.Errorf("post ticket: %w", err)
	}
	if status == http.StatusNotFound {
		fallback := fmt.Sprintf("%s/%s/tickets", c.baseURL, c.project)
		c.logger.Debug("ticket endpoint returned 404, retrying extensionless URL", "url", fallback)
		status, respBody, err = c.post(ctx, fallback, payload, true)
		if err != nil {
			return fmt.Errorf("post ticket (fallback): %w", err)
		}
	}

	if status != http.StatusOK && status != http.StatusCreated {
		return fmt.Errorf("tracker returned %d: %s", status, strings.TrimSpace(respBody))
	}
	return nil
}

func (c *Client) post(ctx context.Context, url string, payload []byte, acceptXML bool) (int, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return 0, "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Content-Type", "application/xml")
	if acceptXML {
		req.Header.Set("Accept", "application/xml")
	}
	req.SetBasicAuth(c.creds.Username, c.creds.APIKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return 0, "", err
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	return resp.StatusCode, string(body), nil
}

var _ Dispatcher = (*Client)(nil)
