package validation

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/haf-search-api/internal/config"
	"github.com/haf-search-api/internal/models"
)

var dateRegex = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// ValidationError represents a single validation error
type ValidationError struct {
	Field   string      `json:"field"`
	Message string      `json:"message"`
	Value   interface{} `json:"value,omitempty"`
}

// Validator checks raw search bodies at the trust boundary and folds them
// into the validated SearchRequest shape. Requests that pass never make the
// query builder fail.
type Validator struct {
	cfg *config.SearchConfig
	now func() time.Time
}

// NewValidator creates a new validator instance
func NewValidator(cfg *config.SearchConfig) *Validator {
	return &Validator{cfg: cfg, now: time.Now}
}

// ParseSearchRequest validates the wire body and produces a SearchRequest.
// On failure it returns the validation errors; the first error's message is
// what the HTTP layer surfaces.
func (v *Validator) ParseSearchRequest(body *models.SearchRequestBody) (*models.SearchRequest, []ValidationError) {
	var errors []ValidationError

	// Keywords: required, each non-empty, bounded
	if len(body.Keywords) == 0 {
		errors = append(errors, ValidationError{Field: "keywords", Message: "Keywords array is required"})
	} else if len(body.Keywords) > v.cfg.MaxKeywords {
		errors = append(errors, ValidationError{
			Field:   "keywords",
			Message: fmt.Sprintf("A maximum of %d keywords is allowed", v.cfg.MaxKeywords),
			Value:   len(body.Keywords),
		})
	}

	keywords := make([]string, 0, len(body.Keywords))
	for _, k := range body.Keywords {
		k = strings.TrimSpace(k)
		if k == "" {
			errors = append(errors, ValidationError{Field: "keywords", Message: "Keywords must be non-empty strings"})
			break
		}
		keywords = append(keywords, k)
	}

	timeSpec, timeErrs := v.parseTimeSpec(body)
	errors = append(errors, timeErrs...)

	if len(errors) > 0 {
		return nil, errors
	}

	return &models.SearchRequest{
		Keywords: keywords,
		Time:     timeSpec,
		Author:   strings.TrimSpace(body.Author),
	}, nil
}

// parseTimeSpec folds the days/startDate/endDate field trio into the tagged
// variant. A complete startDate/endDate pair wins; anything else collapses
// to the relative default, matching the wire contract.
func (v *Validator) parseTimeSpec(body *models.SearchRequestBody) (models.TimeSpec, []ValidationError) {
	if body.StartDate != "" && body.EndDate != "" {
		var errors []ValidationError

		start, startErr := parseDate(body.StartDate)
		end, endErr := parseDate(body.EndDate)
		if startErr != nil || endErr != nil {
			errors = append(errors, ValidationError{
				Field:   "startDate",
				Message: "Invalid date format. Use YYYY-MM-DD.",
			})
			return models.TimeSpec{}, errors
		}

		if start.After(end) {
			errors = append(errors, ValidationError{
				Field:   "startDate",
				Message: "Date range start must not be after end",
				Value:   body.StartDate,
			})
		}

		genesis, _ := parseDate(models.HiveGenesisDate)
		today := v.now().UTC().Truncate(24 * time.Hour)
		if start.Before(genesis) || end.After(today) {
			errors = append(errors, ValidationError{
				Field:   "startDate",
				Message: fmt.Sprintf("Dates must be between %s and today", models.HiveGenesisDate),
			})
		}

		if len(errors) > 0 {
			return models.TimeSpec{}, errors
		}
		return models.AbsoluteRange(body.StartDate, body.EndDate), nil
	}

	// Missing or non-positive days silently collapse to the default window
	days := v.cfg.DefaultDays
	if body.Days != nil && *body.Days > 0 {
		days = *body.Days
	}
	return models.RelativeDays(days), nil
}

// parseDate enforces both the strict YYYY-MM-DD shape and calendar validity
func parseDate(s string) (time.Time, error) {
	if !dateRegex.MatchString(s) {
		return time.Time{}, fmt.Errorf("invalid date %q", s)
	}
	return time.Parse("2006-01-02", s)
}
