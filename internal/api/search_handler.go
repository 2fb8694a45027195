package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/haf-search-api/internal/models"
	"github.com/haf-search-api/internal/service"
	"github.com/rs/zerolog"
)

// SearchHandler handles POST /search
type SearchHandler struct {
	services *service.Services
	log      zerolog.Logger
}

// NewSearchHandler creates a new SearchHandler
func NewSearchHandler(services *service.Services, log zerolog.Logger) *SearchHandler {
	return &SearchHandler{
		services: services,
		log:      log.With().Str("handler", "search").Logger(),
	}
}

// Search handles POST /search.
//
// Status mapping: validation failures are 400 with a short message and no
// debug payload; store failures are 500 with the store's message verbatim
// and the attempted SQL, so a query that blew up is still inspectable.
func (h *SearchHandler) Search(c *gin.Context) {
	var body models.SearchRequestBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	result, validationErrs := h.services.Search.Search(c.Request.Context(), &body)
	if len(validationErrs) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": validationErrs[0].Message})
		return
	}

	if !result.Success {
		h.log.Error().
			Str("store_error", result.Err).
			Msg("Search execution failed")
		c.JSON(http.StatusInternalServerError, models.SearchResponseBody{
			Success: false,
			Error:   result.Err,
			Debug:   &models.SearchDebug{GeneratedSQL: result.DebugSQL},
		})
		return
	}

	c.JSON(http.StatusOK, models.SearchResponseBody{
		Success: true,
		Data:    result.Rows,
		Debug: &models.SearchDebug{
			GeneratedSQL: result.DebugSQL,
			RowCount:     len(result.Rows),
		},
	})
}
