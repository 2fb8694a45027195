package client

// SearchForm collects the user's search input before submission. It owns
// the cross-field consistency rules the UI relies on.
type SearchForm struct {
	Keywords  []string
	Scope     Scope
	TimeMode  TimeMode
	Days      int
	StartDate string
	EndDate   string
	Author    string
}

// NewSearchForm creates a form with the default global/relative selection
func NewSearchForm() *SearchForm {
	return &SearchForm{
		Scope:    ScopeGlobal,
		TimeMode: TimeModeRelative,
		Days:     DefaultDays,
	}
}

// SetScope changes the search scope. Leaving the user-specific scope while
// a custom date range is selected snaps the time mode back to the default
// relative window; custom ranges only make sense per author.
func (f *SearchForm) SetScope(scope Scope) {
	if f.Scope == ScopeAuthor && scope == ScopeGlobal && f.TimeMode == TimeModeCustom {
		f.TimeMode = TimeModeRelative
		f.Days = DefaultDays
		f.StartDate = ""
		f.EndDate = ""
	}
	f.Scope = scope
}

// SetTimeMode changes the time-window selection
func (f *SearchForm) SetTimeMode(mode TimeMode) {
	f.TimeMode = mode
	if mode == TimeModeRelative && f.Days <= 0 {
		f.Days = DefaultDays
	}
}

// Options produces the search invocation for the current form state
func (f *SearchForm) Options() SearchOptions {
	return SearchOptions{
		Keywords:  f.Keywords,
		Scope:     f.Scope,
		TimeMode:  f.TimeMode,
		Days:      f.Days,
		StartDate: f.StartDate,
		EndDate:   f.EndDate,
		Author:    f.Author,
	}
}
