// Package client consumes the search middleware's wire contract: it issues
// search requests, normalizes the response envelope and exposes the derived
// view state (filtered list, page slice, debug trace) to a presentation layer.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/haf-search-api/internal/models"
	"github.com/rs/zerolog"
)

// Scope selects between a store-wide and a single-author search
type Scope int

const (
	ScopeGlobal Scope = iota
	ScopeAuthor
)

// TimeMode selects between the relative window and a custom date range
type TimeMode int

const (
	TimeModeRelative TimeMode = iota
	TimeModeCustom
)

// DefaultDays is the relative window requested when the user picked nothing
const DefaultDays = 3

// SearchOptions is one search invocation as collected from the UI
type SearchOptions struct {
	Keywords  []string
	Scope     Scope
	TimeMode  TimeMode
	Days      int
	StartDate string
	EndDate   string
	Author    string
}

// SearchOutcome is a successful search: normalized rows plus the debug trace
type SearchOutcome struct {
	Posts    []models.Post
	DebugSQL string
}

// PrecheckError is a UI-side guard failure. It never reaches the network.
type PrecheckError struct {
	Reason string
}

func (e *PrecheckError) Error() string {
	return e.Reason
}

// ServerError is a usable HTTP response that reported failure. DebugSQL is
// populated when the envelope carried it, so SQL that caused a 500 is still
// inspectable.
type ServerError struct {
	Message    string
	StatusCode int
	DebugSQL   string
}

func (e *ServerError) Error() string {
	return e.Message
}

// TransportError means no usable HTTP response arrived: a network failure,
// or a body that is not the middleware's JSON envelope
type TransportError struct {
	Message string
}

func (e *TransportError) Error() string {
	return e.Message
}

// wireRow tolerates both response conventions: a truncated body_preview or
// a full body. The preview wins when both are present.
type wireRow struct {
	Author      string    `json:"author"`
	Permlink    string    `json:"permlink"`
	Title       string    `json:"title"`
	BodyPreview string    `json:"body_preview"`
	Body        string    `json:"body"`
	Created     time.Time `json:"created"`
	Category    string    `json:"category"`
}

type wireEnvelope struct {
	Success bool                `json:"success"`
	Data    []wireRow           `json:"data"`
	Error   string              `json:"error"`
	Debug   *models.SearchDebug `json:"debug"`
}

// Client is the search pipeline's network half. One outstanding call per
// Search invocation; a newer call supersedes the display of an older one on
// the caller's side, it does not cancel it.
type Client struct {
	endpoint   string
	httpClient *http.Client
	log        zerolog.Logger
	trace      []string
}

// New creates a client for the given middleware endpoint
func New(endpoint string, log zerolog.Logger) *Client {
	return &Client{
		endpoint:   strings.TrimSpace(endpoint),
		httpClient: &http.Client{Timeout: 60 * time.Second},
		log:        log.With().Str("component", "search_client").Logger(),
	}
}

// Trace returns the execution log of the most recent Search call
func (c *Client) Trace() []string {
	return c.trace
}

func (c *Client) tracef(format string, args ...interface{}) {
	line := fmt.Sprintf(format, args...)
	c.trace = append(c.trace, line)
	c.log.Debug().Msg(line)
}

// precheck duplicates the trust-boundary guards on the client so obviously
// bad requests never hit the network
func precheck(opts SearchOptions) error {
	if len(opts.Keywords) == 0 {
		return &PrecheckError{Reason: "at least one keyword is required"}
	}
	if opts.Scope == ScopeAuthor && strings.TrimSpace(opts.Author) == "" {
		return &PrecheckError{Reason: "author is required for a user-scoped search"}
	}
	if opts.TimeMode == TimeModeCustom && (opts.StartDate == "" || opts.EndDate == "") {
		return &PrecheckError{Reason: "both start and end dates are required for a custom range"}
	}
	return nil
}

// Search issues one request and normalizes the outcome. Any non-success
// envelope or unparseable body becomes an error carrying the best-available
// message; transport failures get operator guidance appended to the trace.
func (c *Client) Search(ctx context.Context, opts SearchOptions) (*SearchOutcome, error) {
	c.trace = nil

	if err := precheck(opts); err != nil {
		return nil, err
	}

	if c.endpoint == "" {
		return nil, &PrecheckError{Reason: "no endpoint configured"}
	}

	c.tracef("Initializing search...")
	c.tracef("Target endpoint: %s", c.endpoint)

	body := models.SearchRequestBody{Keywords: opts.Keywords}
	if opts.TimeMode == TimeModeCustom {
		body.StartDate = opts.StartDate
		body.EndDate = opts.EndDate
	} else {
		days := opts.Days
		if days <= 0 {
			days = DefaultDays
		}
		body.Days = &days
	}
	if opts.Scope == ScopeAuthor {
		body.Author = opts.Author
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	c.tracef("Sending request...")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.tracef("ERROR: %v", err)
		c.tracef("Check that the middleware is reachable and the configured endpoint is correct.")
		return nil, &TransportError{Message: fmt.Sprintf("failed to reach middleware: %v", err)}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		c.tracef("ERROR: reading response failed: %v", err)
		return nil, &TransportError{Message: fmt.Sprintf("failed to read response: %v", err)}
	}

	var envelope wireEnvelope
	if err := json.Unmarshal(raw, &envelope); err != nil {
		msg := "failed to parse response"
		if resp.StatusCode != http.StatusOK {
			msg = fmt.Sprintf("Server responded with status %d", resp.StatusCode)
		}
		c.tracef("ERROR: %s", msg)
		c.tracef("Check that the middleware is reachable and the configured endpoint is correct.")
		return nil, &TransportError{Message: msg}
	}

	if !envelope.Success {
		msg := envelope.Error
		if msg == "" {
			msg = fmt.Sprintf("Server responded with status %d", resp.StatusCode)
		}
		serverErr := &ServerError{Message: msg, StatusCode: resp.StatusCode}
		if envelope.Debug != nil {
			serverErr.DebugSQL = envelope.Debug.GeneratedSQL
		}
		c.tracef("ERROR: %s", msg)
		return nil, serverErr
	}

	posts := make([]models.Post, 0, len(envelope.Data))
	for _, row := range envelope.Data {
		display := row.BodyPreview
		if display == "" {
			display = row.Body
		}
		posts = append(posts, models.Post{
			Author:      row.Author,
			Permlink:    row.Permlink,
			Title:       row.Title,
			BodyPreview: display,
			Created:     row.Created,
			Category:    row.Category,
		})
	}

	debugSQL := "SQL generated on server"
	if envelope.Debug != nil && envelope.Debug.GeneratedSQL != "" {
		debugSQL = envelope.Debug.GeneratedSQL
	}

	c.tracef("Success! Received %d records.", len(posts))

	return &SearchOutcome{Posts: posts, DebugSQL: debugSQL}, nil
}
