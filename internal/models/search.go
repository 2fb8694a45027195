package models

// TimeKind discriminates the two time-window representations.
type TimeKind int

const (
	// TimeRelative is "last N days from now"
	TimeRelative TimeKind = iota
	// TimeAbsolute is an explicit inclusive calendar-date range
	TimeAbsolute
)

// TimeSpec is the tagged time-window variant. Exactly one representation is
// meaningful, selected by Kind; the raw days/startDate/endDate wire fields
// are folded into it at the trust boundary.
type TimeSpec struct {
	Kind TimeKind

	// Days is the relative window size, valid when Kind == TimeRelative
	Days int

	// StartDate and EndDate are YYYY-MM-DD bounds, valid when Kind == TimeAbsolute
	StartDate string
	EndDate   string
}

// RelativeDays builds a relative time window
func RelativeDays(days int) TimeSpec {
	return TimeSpec{Kind: TimeRelative, Days: days}
}

// AbsoluteRange builds an absolute time window
func AbsoluteRange(start, end string) TimeSpec {
	return TimeSpec{Kind: TimeAbsolute, StartDate: start, EndDate: end}
}

// SearchRequest is a validated search, ready for query construction.
// Instances are produced by validation.ParseSearchRequest only.
type SearchRequest struct {
	Keywords []string
	Time     TimeSpec
	Author   string
}

// SearchRequestBody is the raw wire shape of POST /search.
// Exactly one of Days or the StartDate/EndDate pair is meaningful; when
// neither is present the server defaults to a relative window.
type SearchRequestBody struct {
	Keywords  []string `json:"keywords"`
	Days      *int     `json:"days,omitempty"`
	StartDate string   `json:"startDate,omitempty"`
	EndDate   string   `json:"endDate,omitempty"`
	Author    string   `json:"author,omitempty"`
}

// SearchDebug carries the generated query text for operator diagnosis
type SearchDebug struct {
	GeneratedSQL string `json:"generatedSql"`
	RowCount     int    `json:"rowCount,omitempty"`
}

// SearchResponseBody is the wire response envelope for POST /search
type SearchResponseBody struct {
	Success bool         `json:"success"`
	Data    []Post       `json:"data,omitempty"`
	Error   string       `json:"error,omitempty"`
	Debug   *SearchDebug `json:"debug,omitempty"`
}

// SearchResult is the outcome of one execution attempt. Immutable after
// construction; one instance per request/response cycle.
type SearchResult struct {
	Success  bool
	Rows     []Post
	Err      string
	DebugSQL string
}
