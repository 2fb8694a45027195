package mocks

import (
	"context"
	"database/sql"

	"github.com/haf-search-api/internal/api"
	"github.com/haf-search-api/internal/models"
	"github.com/haf-search-api/internal/search"
	"github.com/haf-search-api/internal/service"
	"github.com/haf-search-api/internal/validation"
)

// MockSearchService is a mock implementation of SearchService
type MockSearchService struct {
	SearchFunc func(ctx context.Context, body *models.SearchRequestBody) (*models.SearchResult, []validation.ValidationError)
	Requests   []*models.SearchRequestBody
}

// Verify interface compliance
var _ service.SearchService = (*MockSearchService)(nil)

func NewMockSearchService() *MockSearchService {
	return &MockSearchService{
		Requests: make([]*models.SearchRequestBody, 0),
	}
}

func (m *MockSearchService) Search(ctx context.Context, body *models.SearchRequestBody) (*models.SearchResult, []validation.ValidationError) {
	m.Requests = append(m.Requests, body)
	if m.SearchFunc != nil {
		return m.SearchFunc(ctx, body)
	}
	return &models.SearchResult{Success: true, Rows: []models.Post{}}, nil
}

// MockExecutor is a mock implementation of QueryExecutor
type MockExecutor struct {
	ExecuteFunc func(ctx context.Context, query search.GeneratedQuery) *models.SearchResult
	Executed    []search.GeneratedQuery
}

// Verify interface compliance
var _ service.QueryExecutor = (*MockExecutor)(nil)

func NewMockExecutor() *MockExecutor {
	return &MockExecutor{
		Executed: make([]search.GeneratedQuery, 0),
	}
}

func (m *MockExecutor) Execute(ctx context.Context, query search.GeneratedQuery) *models.SearchResult {
	m.Executed = append(m.Executed, query)
	if m.ExecuteFunc != nil {
		return m.ExecuteFunc(ctx, query)
	}
	return &models.SearchResult{Success: true, Rows: []models.Post{}, DebugSQL: query.Text}
}

// MockPool is a mock implementation of the pool slice the router reports on
type MockPool struct {
	HealthErr error
	PoolStats sql.DBStats
}

// Verify interface compliance
var _ api.Pool = (*MockPool)(nil)

func NewMockPool() *MockPool {
	return &MockPool{}
}

func (m *MockPool) HealthCheck(ctx context.Context) error {
	return m.HealthErr
}

func (m *MockPool) Stats() sql.DBStats {
	return m.PoolStats
}
