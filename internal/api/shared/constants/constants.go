package constants

const (
	// Request headers
	SESSION_HEADER    = "X-Session-ID"
	VIEWER_HEADER     = "X-Viewer-Address"
	REQUEST_ID_HEADER = "X-Request-ID"

	// Session cookie, used when the header is absent
	SESSION_COOKIE = "session_id"

	// Ranking
	RANKING_PAGE_SIZE    = 20
	DEFAULT_RANKING_DAYS = 7

	// Longest accepted collection search term
	MAX_SEARCH_TERM_LENGTH = 64
)

// RANKING_WINDOWS are the accepted ranking periods in days, 0 is all time
var RANKING_WINDOWS = []int{0, 7, 30}
