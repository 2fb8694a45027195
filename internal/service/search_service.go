package service

import (
	"context"
	"strings"

	"github.com/haf-search-api/internal/models"
	"github.com/haf-search-api/internal/search"
	"github.com/haf-search-api/internal/validation"
	"github.com/rs/zerolog"
)

// searchService is the concrete search pipeline: validator → builder → executor
type searchService struct {
	validator *validation.Validator
	builder   *search.Builder
	executor  QueryExecutor
	log       zerolog.Logger
}

// NewSearchService creates the search service
func NewSearchService(validator *validation.Validator, builder *search.Builder, executor QueryExecutor, log zerolog.Logger) SearchService {
	return &searchService{
		validator: validator,
		builder:   builder,
		executor:  executor,
		log:       log.With().Str("component", "search_service").Logger(),
	}
}

// Search runs one request through the pipeline. Requests rejected by the
// validator never produce a query; everything past validation is a single
// execution attempt with the debug text carried on both outcomes.
func (s *searchService) Search(ctx context.Context, body *models.SearchRequestBody) (*models.SearchResult, []validation.ValidationError) {
	req, errs := s.validator.ParseSearchRequest(body)
	if len(errs) > 0 {
		s.log.Warn().
			Interface("errors", errs).
			Msg("Search request rejected")
		return nil, errs
	}

	query := s.builder.Build(req)

	s.log.Info().
		Str("keywords", strings.Join(req.Keywords, ", ")).
		Str("author", req.Author).
		Msg("Executing search")

	return s.executor.Execute(ctx, query), nil
}
