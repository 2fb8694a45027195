package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/haf-search-api/internal/models"
	"github.com/rs/zerolog"
)

func validOptions() SearchOptions {
	return SearchOptions{
		Keywords: []string{"hive"},
		Scope:    ScopeGlobal,
		TimeMode: TimeModeRelative,
		Days:     3,
	}
}

func TestSearchSuccessMapsPreview(t *testing.T) {
	var requests int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++

		var body models.SearchRequestBody
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("Failed to decode request body: %v", err)
		}
		if len(body.Keywords) != 1 || body.Keywords[0] != "hive" {
			t.Errorf("Expected keywords [hive], got %v", body.Keywords)
		}
		if body.Days == nil || *body.Days != 3 {
			t.Errorf("Expected days 3, got %v", body.Days)
		}

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"success": true,
			"data": [
				{"author":"alice","permlink":"p1","title":"One","body_preview":"preview text","created":"2024-06-14T10:00:00Z","category":"hive"},
				{"author":"bob","permlink":"p2","title":"Two","body":"full body only","created":"2024-06-14T09:00:00Z","category":"hive"}
			],
			"debug": {"generatedSql":"SELECT ...","rowCount":2}
		}`))
	}))
	defer srv.Close()

	c := New(srv.URL, zerolog.Nop())
	outcome, err := c.Search(context.Background(), validOptions())
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}

	if requests != 1 {
		t.Errorf("Expected 1 request, got %d", requests)
	}
	if len(outcome.Posts) != 2 {
		t.Fatalf("Expected 2 posts, got %d", len(outcome.Posts))
	}
	if outcome.Posts[0].BodyPreview != "preview text" {
		t.Errorf("Expected preview preferred, got %q", outcome.Posts[0].BodyPreview)
	}
	if outcome.Posts[1].BodyPreview != "full body only" {
		t.Errorf("Expected body fallback, got %q", outcome.Posts[1].BodyPreview)
	}
	if outcome.DebugSQL != "SELECT ..." {
		t.Errorf("Expected debug SQL propagated, got %q", outcome.DebugSQL)
	}
}

func TestSearchServerFailureCarriesDebugSQL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"success":false,"error":"connection terminated","debug":{"generatedSql":"SELECT broken"}}`))
	}))
	defer srv.Close()

	c := New(srv.URL, zerolog.Nop())
	_, err := c.Search(context.Background(), validOptions())
	if err == nil {
		t.Fatal("Expected an error")
	}

	var serverErr *ServerError
	if !errors.As(err, &serverErr) {
		t.Fatalf("Expected ServerError, got %T", err)
	}
	if serverErr.Message != "connection terminated" {
		t.Errorf("Expected store message verbatim, got %q", serverErr.Message)
	}
	if serverErr.DebugSQL != "SELECT broken" {
		t.Errorf("Expected failing SQL preserved, got %q", serverErr.DebugSQL)
	}
	if serverErr.StatusCode != http.StatusInternalServerError {
		t.Errorf("Expected status 500, got %d", serverErr.StatusCode)
	}
}

func TestSearchNonJSONResponse(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		message string
	}{
		{
			name:    "garbage with 200",
			status:  http.StatusOK,
			body:    "<html>gateway</html>",
			message: "failed to parse response",
		},
		{
			name:    "garbage with 502",
			status:  http.StatusBadGateway,
			body:    "Bad Gateway",
			message: "Server responded with status 502",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			c := New(srv.URL, zerolog.Nop())
			_, err := c.Search(context.Background(), validOptions())
			if err == nil {
				t.Fatal("Expected an error")
			}
			if err.Error() != tt.message {
				t.Errorf("Expected message %q, got %q", tt.message, err.Error())
			}
			// An unparseable body is not a usable response
			var transportErr *TransportError
			if !errors.As(err, &transportErr) {
				t.Errorf("Expected TransportError, got %T", err)
			}
		})
	}
}

func TestSearchTransportError(t *testing.T) {
	// Point at a closed server
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	c := New(srv.URL, zerolog.Nop())
	_, err := c.Search(context.Background(), validOptions())
	if err == nil {
		t.Fatal("Expected an error")
	}

	var transportErr *TransportError
	if !errors.As(err, &transportErr) {
		t.Fatalf("Expected TransportError, got %T", err)
	}

	// The trace carries the operator guidance
	trace := strings.Join(c.Trace(), "\n")
	if !strings.Contains(trace, "middleware is reachable") {
		t.Errorf("Expected troubleshooting guidance in trace, got:\n%s", trace)
	}
}

func TestSearchPrecheckGuards(t *testing.T) {
	var requests int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
	}))
	defer srv.Close()

	tests := []struct {
		name string
		opts SearchOptions
	}{
		{
			name: "no keywords",
			opts: SearchOptions{TimeMode: TimeModeRelative, Days: 3},
		},
		{
			name: "author scope without author",
			opts: SearchOptions{Keywords: []string{"hive"}, Scope: ScopeAuthor, Author: "   "},
		},
		{
			name: "custom range missing end date",
			opts: SearchOptions{Keywords: []string{"hive"}, TimeMode: TimeModeCustom, StartDate: "2024-01-01"},
		},
	}

	c := New(srv.URL, zerolog.Nop())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := c.Search(context.Background(), tt.opts)
			if err == nil {
				t.Fatal("Expected a precheck error")
			}
			var precheckErr *PrecheckError
			if !errors.As(err, &precheckErr) {
				t.Fatalf("Expected PrecheckError, got %T", err)
			}
		})
	}

	if requests != 0 {
		t.Errorf("Precheck failures must not reach the network, got %d requests", requests)
	}
}

func TestSearchOmitsDaysForCustomRange(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body models.SearchRequestBody
		json.NewDecoder(r.Body).Decode(&body)
		if body.Days != nil {
			t.Errorf("Expected no days field for custom range, got %v", *body.Days)
		}
		if body.StartDate != "2024-01-01" || body.EndDate != "2024-01-05" {
			t.Errorf("Expected range bounds, got %q..%q", body.StartDate, body.EndDate)
		}
		w.Write([]byte(`{"success":true,"data":[],"debug":{"generatedSql":"q","rowCount":0}}`))
	}))
	defer srv.Close()

	c := New(srv.URL, zerolog.Nop())
	_, err := c.Search(context.Background(), SearchOptions{
		Keywords:  []string{"hive"},
		TimeMode:  TimeModeCustom,
		StartDate: "2024-01-01",
		EndDate:   "2024-01-05",
	})
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
}
