// Package fetch reads the dashboard's three spreadsheet tabs through the
// Google Sheets values API and hands the rows to the record normalizer.
package fetch

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	sheets "google.golang.org/api/sheets/v4"

	"github.com/jonathan/jobdash/internal/records"
)

// DefaultTimeout bounds a whole FetchAll call.
const DefaultTimeout = 30 * time.Second

// Tabs names the spreadsheet tabs to read. Names must match the sheet exactly.
type Tabs struct {
	Applications string
	Resumes      string
	Templates    string
}

// DefaultTabs returns the tab names of the tracking spreadsheet template.
func DefaultTabs() Tabs {
	return Tabs{
		Applications: "Applications",
		Resumes:      "Resume Library",
		Templates:    "Follow-Up Templates",
	}
}

// Error represents a failure fetching one tab.
type Error struct {
	Tab        string
	Message    string
	StatusCode int
	Cause      error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("fetch error for %s: %s: %v", e.Tab, e.Message, e.Cause)
	}
	return fmt.Sprintf("fetch error for %s: %s", e.Tab, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Options configures the client.
type Options struct {
	SpreadsheetID string
	APIKey        string
	Tabs          Tabs
	Timeout       time.Duration

	// Endpoint and HTTPClient override the API location; used by tests.
	Endpoint   string
	HTTPClient *http.Client
}

// Snapshot is one complete, normalized load of all three tabs.
type Snapshot struct {
	Applications []records.Record
	Resumes      []records.Record
	Templates    []records.Record
	FetchedAt    time.Time
}

// Client fetches tab values from one spreadsheet.
type Client struct {
	svc           *sheets.Service
	spreadsheetID string
	tabs          Tabs
	timeout       time.Duration
}

// New creates a client. An API key is required unless an HTTP client is supplied.
func New(ctx context.Context, opts Options) (*Client, error) {
	if opts.SpreadsheetID == "" {
		return nil, fmt.Errorf("spreadsheet ID is required")
	}
	if opts.APIKey == "" && opts.HTTPClient == nil {
		return nil, fmt.Errorf("API key is required")
	}
	if opts.Tabs == (Tabs{}) {
		opts.Tabs = DefaultTabs()
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}

	var clientOpts []option.ClientOption
	if opts.APIKey != "" {
		clientOpts = append(clientOpts, option.WithAPIKey(opts.APIKey))
	}
	if opts.HTTPClient != nil {
		clientOpts = append(clientOpts, option.WithHTTPClient(opts.HTTPClient))
	}
	if opts.Endpoint != "" {
		clientOpts = append(clientOpts, option.WithEndpoint(opts.Endpoint))
	}

	svc, err := sheets.NewService(ctx, clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}

	return &Client{
		svc:           svc,
		spreadsheetID: opts.SpreadsheetID,
		tabs:          opts.Tabs,
		timeout:       opts.Timeout,
	}, nil
}

// Tabs returns the configured tab names.
func (c *Client) Tabs() Tabs {
	return c.tabs
}

// FetchTab returns the raw rows of one tab; row 0 is the header.
func (c *Client) FetchTab(ctx context.Context, tab string) ([][]string, error) {
	resp, err := c.svc.Spreadsheets.Values.Get(c.spreadsheetID, tab).Context(ctx).Do()
	if err != nil {
		fetchErr := &Error{Tab: tab, Message: "request failed", Cause: err}
		var apiErr *googleapi.Error
		if errors.As(err, &apiErr) {
			fetchErr.StatusCode = apiErr.Code
			fetchErr.Message = fmt.Sprintf("HTTP status %d", apiErr.Code)
		}
		return nil, fetchErr
	}
	return records.FromCells(resp.Values), nil
}

// FetchAll reads the three tabs concurrently and normalizes them. If any tab
// fails the whole load fails and no partial snapshot is returned.
func (c *Client) FetchAll(ctx context.Context) (*Snapshot, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var apps, resumes, templates [][]string
	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		rows, err := c.FetchTab(gCtx, c.tabs.Applications)
		apps = rows
		return err
	})
	g.Go(func() error {
		rows, err := c.FetchTab(gCtx, c.tabs.Resumes)
		resumes = rows
		return err
	})
	g.Go(func() error {
		rows, err := c.FetchTab(gCtx, c.tabs.Templates)
		templates = rows
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &Snapshot{
		Applications: records.Normalize(apps, true),
		Resumes:      records.Normalize(resumes, false),
		Templates:    records.Normalize(templates, false),
		FetchedAt:    time.Now(),
	}, nil
}
