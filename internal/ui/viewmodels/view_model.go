// Package viewmodels turns pipeline state into render-ready descriptors.
// It is deliberately free of terminal concerns so the same view data can
// drive any rendering backend.
package viewmodels

import (
	"time"

	"filmseek/internal/domain"
)

// InvalidDateText is rendered when a record's release date is not a
// valid number. A bad timestamp degrades one field, never the render.
const InvalidDateText = "Invalid Date"

// ResultNode describes one rendered search result, fields in render order.
type ResultNode struct {
	Title     string
	PosterURL string
	Overview  string
	DateText  string
}

// ViewData is everything the renderer needs for one frame.
type ViewData struct {
	State       domain.ViewState
	Query       string
	Nodes       []ResultNode
	ShowLoading bool
	Spinner     string // current spinner frame, empty when not loading
}

// BuildResultNodes maps movies to result nodes, preserving server order.
func BuildResultNodes(results []domain.Movie) []ResultNode {
	nodes := make([]ResultNode, 0, len(results))
	for _, m := range results {
		nodes = append(nodes, ResultNode{
			Title:     m.Title,
			PosterURL: m.Poster,
			Overview:  m.Overview,
			DateText:  releaseDateText(m),
		})
	}
	return nodes
}

// releaseDateText formats epoch seconds as a calendar date in local time,
// e.g. "Fri Oct 15 2021".
func releaseDateText(m domain.Movie) string {
	secs, ok := m.ReleaseSeconds()
	if !ok {
		return InvalidDateText
	}
	return time.Unix(secs, 0).Format("Mon Jan 02 2006")
}
