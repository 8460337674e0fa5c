package ui

import "filmseek/internal/domain"

// debounceFiredMsg is delivered when a scheduled quiescence timer fires.
// The token identifies which timer; stale tokens are ignored.
type debounceFiredMsg struct {
	token int
}

// searchResultsMsg carries a settled successful dispatch
type searchResultsMsg struct {
	seq     int
	query   string
	results []domain.Movie
}

// searchFailedMsg carries a settled failed dispatch
type searchFailedMsg struct {
	seq   int
	query string
	err   error
}
