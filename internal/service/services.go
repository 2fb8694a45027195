package service

import (
	"context"

	"github.com/haf-search-api/internal/config"
	"github.com/haf-search-api/internal/database"
	"github.com/haf-search-api/internal/models"
	"github.com/haf-search-api/internal/search"
	"github.com/haf-search-api/internal/validation"
	"github.com/rs/zerolog"
)

// SearchService defines the interface for the search pipeline
type SearchService interface {
	// Search validates the raw body, builds the query and executes it.
	// Validation failures are returned separately and never reach the store.
	Search(ctx context.Context, body *models.SearchRequestBody) (*models.SearchResult, []validation.ValidationError)
}

// QueryExecutor runs a generated query against the content store
type QueryExecutor interface {
	Execute(ctx context.Context, query search.GeneratedQuery) *models.SearchResult
}

// Services holds all service interfaces
type Services struct {
	Search SearchService
}

// NewServices creates all services over the given pool
func NewServices(db *database.DB, cfg *config.Config, log zerolog.Logger) *Services {
	return &Services{
		Search: NewSearchService(
			validation.NewValidator(&cfg.Search),
			search.NewBuilder(&cfg.Search),
			search.NewExecutor(db, log),
			log,
		),
	}
}
