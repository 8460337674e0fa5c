package viewmodels

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"filmseek/internal/domain"
)

func TestBuildResultNodes(t *testing.T) {
	results := []domain.Movie{
		{
			Title:       "Dune",
			Poster:      "p.jpg",
			Overview:    "o",
			ReleaseDate: json.Number("1634256000"),
		},
	}

	nodes := BuildResultNodes(results)
	require.Len(t, nodes, 1)

	node := nodes[0]
	assert.Equal(t, "Dune", node.Title)
	assert.Equal(t, "p.jpg", node.PosterURL)
	assert.Equal(t, "o", node.Overview)

	// Rendered in the runtime's local zone, like the original widget
	want := time.Unix(1634256000, 0).Format("Mon Jan 02 2006")
	assert.Equal(t, want, node.DateText)
}

func TestBuildResultNodesPreservesOrder(t *testing.T) {
	results := []domain.Movie{
		{Title: "Alien"},
		{Title: "Blade Runner"},
		{Title: "Arrival"},
	}

	nodes := BuildResultNodes(results)
	require.Len(t, nodes, 3)
	assert.Equal(t, "Alien", nodes[0].Title)
	assert.Equal(t, "Blade Runner", nodes[1].Title)
	assert.Equal(t, "Arrival", nodes[2].Title)
}

func TestInvalidReleaseDateDegradesOneField(t *testing.T) {
	results := []domain.Movie{
		{Title: "Dune", ReleaseDate: json.Number("not-a-number")},
	}

	nodes := BuildResultNodes(results)
	require.Len(t, nodes, 1)
	assert.Equal(t, "Dune", nodes[0].Title, "a bad timestamp must not drop the record")
	assert.Equal(t, InvalidDateText, nodes[0].DateText)
}

func TestBuildResultNodesEmpty(t *testing.T) {
	assert.Empty(t, BuildResultNodes(nil))
}
