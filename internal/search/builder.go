package search

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/haf-search-api/internal/config"
	"github.com/haf-search-api/internal/models"
)

// authorStrip removes everything outside the Hive account-name alphabet
var authorStrip = regexp.MustCompile(`[^a-z0-9.-]`)

// GeneratedQuery is one composed search statement. SQL carries $n
// placeholders and is what actually runs; Text renders the bound values
// inline and is the debug trace returned to callers. The two are built
// from the same fragments, so Text is always runnable as-is.
type GeneratedQuery struct {
	SQL  string
	Args []interface{}
	Text string
}

// Builder translates a validated SearchRequest into a GeneratedQuery.
// Pure and deterministic: no I/O, and identical input yields identical
// text (the relative-window interval is inlined at build time).
type Builder struct {
	cfg *config.SearchConfig
}

// NewBuilder creates a query builder with the given search policy
func NewBuilder(cfg *config.SearchConfig) *Builder {
	return &Builder{cfg: cfg}
}

// Build composes the bounded search query. Input must already be validated;
// Build never fails on a well-formed request.
func (b *Builder) Build(req *models.SearchRequest) GeneratedQuery {
	var args []interface{}

	// bind adds a value and returns its placeholder
	bind := func(v interface{}) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	timeSQL, timeText := b.timeCondition(req.Time, bind)
	authorSQL, authorText := authorCondition(req.Author, bind)
	kwSQL, kwText := keywordCondition(req.Keywords, bind)

	const skeleton = `SELECT
    author,
    permlink,
    title,
    left(body, %d) AS body_preview,
    created,
    parent_permlink AS category
FROM hafsql.comments
WHERE parent_author = ''
    AND %s%s
    AND (%s)
ORDER BY created DESC
LIMIT %d`

	sql := fmt.Sprintf(skeleton, b.cfg.PreviewLength, timeSQL, authorSQL, kwSQL, b.cfg.MaxRows)
	text := fmt.Sprintf(skeleton, b.cfg.PreviewLength, timeText, authorText, kwText, b.cfg.MaxRows)

	return GeneratedQuery{SQL: sql, Args: args, Text: text}
}

// timeCondition renders the time window. The relative interval is a
// server-validated integer, so it is inlined identically in both forms;
// absolute bounds are user text and get bound.
func (b *Builder) timeCondition(spec models.TimeSpec, bind func(interface{}) string) (string, string) {
	if spec.Kind == models.TimeAbsolute {
		start := spec.StartDate + " 00:00:00"
		end := spec.EndDate + " 23:59:59"
		sql := fmt.Sprintf("created BETWEEN %s AND %s", bind(start), bind(end))
		text := fmt.Sprintf("created BETWEEN '%s' AND '%s'", start, end)
		return sql, text
	}

	days := spec.Days
	if days <= 0 {
		days = b.cfg.DefaultDays
	}
	cond := fmt.Sprintf("created > NOW() - INTERVAL '%d days'", days)
	return cond, cond
}

// authorCondition returns the optional author clause, prefixed with AND.
// An author that sanitizes to nothing is silently dropped.
func authorCondition(author string, bind func(interface{}) string) (string, string) {
	safe := SanitizeAuthor(author)
	if safe == "" {
		return "", ""
	}
	sql := fmt.Sprintf("\n    AND author = %s", bind(safe))
	text := fmt.Sprintf("\n    AND author = '%s'", safe)
	return sql, text
}

// keywordCondition renders the OR-disjunction of per-keyword ILIKE pairs
func keywordCondition(keywords []string, bind func(interface{}) string) (string, string) {
	sqlParts := make([]string, 0, len(keywords))
	textParts := make([]string, 0, len(keywords))
	for _, kw := range keywords {
		p := bind("%" + kw + "%")
		sqlParts = append(sqlParts, fmt.Sprintf("(title ILIKE %s OR body ILIKE %s)", p, p))

		escaped := EscapeLiteral(kw)
		textParts = append(textParts, fmt.Sprintf("(title ILIKE '%%%s%%' OR body ILIKE '%%%s%%')", escaped, escaped))
	}
	return strings.Join(sqlParts, " OR "), strings.Join(textParts, " OR ")
}

// EscapeLiteral doubles embedded single quotes, the only escaping applied
// to rendered debug text
func EscapeLiteral(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}

// SanitizeAuthor lowercases the handle and strips every character outside
// the Hive account-name alphabet (lowercase alphanumerics, dot, hyphen)
func SanitizeAuthor(author string) string {
	return authorStrip.ReplaceAllString(strings.ToLower(strings.TrimSpace(author)), "")
}
