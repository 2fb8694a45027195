package client

import (
	"strings"

	"github.com/haf-search-api/internal/models"
)

// PageSize is the fixed number of posts per page
const PageSize = 9

// ViewState holds the client-side derived state over one search result:
// the raw rows, the local filter and the page cursor. Never persisted; the
// next search replaces it wholesale.
type ViewState struct {
	posts    []models.Post
	filtered []models.Post
	filter   string
	page     int
}

// NewViewState creates an empty view state
func NewViewState() *ViewState {
	return &ViewState{page: 1}
}

// SetPosts replaces the raw row set and resets the page cursor
func (v *ViewState) SetPosts(posts []models.Post) {
	v.posts = posts
	v.page = 1
	v.refilter()
}

// SetFilter updates the local filter term and resets the page cursor
func (v *ViewState) SetFilter(term string) {
	v.filter = term
	v.page = 1
	v.refilter()
}

// SetPage moves the page cursor. Out-of-range requests are a no-op.
func (v *ViewState) SetPage(page int) {
	if page < 1 || page > v.TotalPages() {
		return
	}
	v.page = page
}

// Page returns the current page cursor (1-based)
func (v *ViewState) Page() int {
	return v.page
}

// Filter returns the current filter term
func (v *ViewState) Filter() string {
	return v.filter
}

// Posts returns the unfiltered row set
func (v *ViewState) Posts() []models.Post {
	return v.posts
}

// Filtered returns the rows matching the filter term, in original order.
// An empty term matches everything.
func (v *ViewState) Filtered() []models.Post {
	return v.filtered
}

// TotalPages returns the page count over the filtered rows, at least 1
func (v *ViewState) TotalPages() int {
	pages := (len(v.filtered) + PageSize - 1) / PageSize
	if pages < 1 {
		return 1
	}
	return pages
}

// Visible returns the current page's slice of the filtered rows
func (v *ViewState) Visible() []models.Post {
	start := (v.page - 1) * PageSize
	if start >= len(v.filtered) {
		return []models.Post{}
	}
	end := start + PageSize
	if end > len(v.filtered) {
		end = len(v.filtered)
	}
	return v.filtered[start:end]
}

// refilter recomputes the filtered rows. Case-insensitive substring match
// across title, author and body.
func (v *ViewState) refilter() {
	if v.filter == "" {
		v.filtered = v.posts
		return
	}
	term := strings.ToLower(v.filter)
	filtered := make([]models.Post, 0, len(v.posts))
	for _, p := range v.posts {
		if strings.Contains(strings.ToLower(p.Title), term) ||
			strings.Contains(strings.ToLower(p.Author), term) ||
			strings.Contains(strings.ToLower(p.BodyPreview), term) {
			filtered = append(filtered, p)
		}
	}
	v.filtered = filtered
}
