package domain

import "encoding/json"

// Movie is one record in the search index. The wire shape matches the
// search service: release_date is epoch seconds. It is kept as a
// json.Number so a malformed value degrades a single field instead of
// rejecting the whole response.
type Movie struct {
	ID          int         `json:"id"`
	Title       string      `json:"title"`
	Poster      string      `json:"poster"`
	Overview    string      `json:"overview"`
	ReleaseDate json.Number `json:"release_date"`
}

// UnmarshalJSON accepts any JSON token for release_date. A record whose
// timestamp arrives as the wrong type keeps its other fields and decodes
// with an invalid date, so one bad field never fails the whole response.
func (m *Movie) UnmarshalJSON(data []byte) error {
	type movieAlias Movie
	aux := struct {
		*movieAlias
		ReleaseDate json.RawMessage `json:"release_date"`
	}{movieAlias: (*movieAlias)(m)}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	var n json.Number
	if len(aux.ReleaseDate) > 0 && json.Unmarshal(aux.ReleaseDate, &n) == nil {
		m.ReleaseDate = n
	}
	return nil
}

// ReleaseSeconds returns the release date as epoch seconds.
func (m Movie) ReleaseSeconds() (int64, bool) {
	secs, err := m.ReleaseDate.Int64()
	if err != nil {
		return 0, false
	}
	return secs, true
}

// SearchResponse is the body of a successful /search response.
// Result order is the server's ranking order and must be preserved.
type SearchResponse struct {
	Results []Movie `json:"results"`
}

// ViewState represents the rendering condition of the results area
type ViewState int

const (
	ViewEmpty ViewState = iota
	ViewLoading
	ViewPopulated
	ViewFailed
)

func (s ViewState) String() string {
	switch s {
	case ViewEmpty:
		return "empty"
	case ViewLoading:
		return "loading"
	case ViewPopulated:
		return "populated"
	case ViewFailed:
		return "failed"
	default:
		return "unknown"
	}
}
