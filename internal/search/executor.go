package search

import (
	"context"
	"database/sql"

	"github.com/haf-search-api/internal/models"
	"github.com/rs/zerolog"
)

// Store is the slice of the connection pool the executor needs
type Store interface {
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
}

// Executor runs generated queries against the HAF content store. One
// attempt per call, no retries; re-issuing is the caller's decision.
type Executor struct {
	db  Store
	log zerolog.Logger
}

// NewExecutor creates an executor over the given pool
func NewExecutor(db Store, log zerolog.Logger) *Executor {
	return &Executor{
		db:  db,
		log: log.With().Str("component", "executor").Logger(),
	}
}

// Execute runs the statement and maps rows 1:1 to posts. Every failure
// path returns the store's message verbatim together with the attempted
// statement text, so a broken query is diagnosable without re-deriving it.
// The pooled connection is released on all paths via rows.Close.
func (e *Executor) Execute(ctx context.Context, query GeneratedQuery) *models.SearchResult {
	rows, err := e.db.QueryContext(ctx, query.SQL, query.Args...)
	if err != nil {
		e.log.Error().Err(err).Msg("Search query failed")
		return &models.SearchResult{
			Success:  false,
			Err:      err.Error(),
			DebugSQL: query.Text,
		}
	}
	defer rows.Close()

	posts := make([]models.Post, 0)
	for rows.Next() {
		var p models.Post
		if err := rows.Scan(&p.Author, &p.Permlink, &p.Title, &p.BodyPreview, &p.Created, &p.Category); err != nil {
			e.log.Error().Err(err).Msg("Row scan failed")
			return &models.SearchResult{
				Success:  false,
				Err:      err.Error(),
				DebugSQL: query.Text,
			}
		}
		posts = append(posts, p)
	}
	if err := rows.Err(); err != nil {
		e.log.Error().Err(err).Msg("Row iteration failed")
		return &models.SearchResult{
			Success:  false,
			Err:      err.Error(),
			DebugSQL: query.Text,
		}
	}

	e.log.Info().Int("rows", len(posts)).Msg("Search completed")

	return &models.SearchResult{
		Success:  true,
		Rows:     posts,
		DebugSQL: query.Text,
	}
}
