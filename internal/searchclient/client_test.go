package searchclient

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchSendsQueryVerbatim(t *testing.T) {
	queries := []string{
		"dune",
		"the empire strikes back",
		"läon & mathilda?",
		"", // empty query is passed through, not short-circuited
	}

	for _, q := range queries {
		var got string
		var calls int
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls++
			// r.URL.Query() percent-decodes, so equality here proves
			// the query survived the round trip
			got = r.URL.Query().Get("q")
			w.Write([]byte(`{"results":[]}`))
		}))

		client := New(srv.URL)
		_, err := client.Search(context.Background(), q)
		srv.Close()

		require.NoError(t, err)
		assert.Equal(t, 1, calls, "exactly one request per dispatch")
		assert.Equal(t, q, got)
	}
}

func TestSearchDecodesResults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"results":[{"id":1,"title":"Dune","poster":"p.jpg","overview":"o","release_date":1634256000}]}`))
	}))
	defer srv.Close()

	client := New(srv.URL)
	results, err := client.Search(context.Background(), "dune")
	require.NoError(t, err)
	require.Len(t, results, 1)

	assert.Equal(t, "Dune", results[0].Title)
	assert.Equal(t, "p.jpg", results[0].Poster)
	assert.Equal(t, "o", results[0].Overview)

	secs, ok := results[0].ReleaseSeconds()
	require.True(t, ok)
	assert.Equal(t, int64(1634256000), secs)
}

func TestSearchToleratesMalformedReleaseDate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"results":[` +
			`{"id":1,"title":"Dune","poster":"p.jpg","overview":"o","release_date":"oops"},` +
			`{"id":2,"title":"Alien","poster":"a.jpg","overview":"x","release_date":296524800}]}`))
	}))
	defer srv.Close()

	client := New(srv.URL)
	results, err := client.Search(context.Background(), "dune")
	require.NoError(t, err, "a wrongly-typed date field must not fail the response")
	require.Len(t, results, 2)

	assert.Equal(t, "Dune", results[0].Title)
	_, ok := results[0].ReleaseSeconds()
	assert.False(t, ok, "the malformed field decodes as an invalid date")

	secs, ok := results[1].ReleaseSeconds()
	require.True(t, ok, "well-formed records are unaffected")
	assert.Equal(t, int64(296524800), secs)
}

func TestSearchEmptyResults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"results":[]}`))
	}))
	defer srv.Close()

	client := New(srv.URL)
	results, err := client.Search(context.Background(), "nothing matches this")
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestSearchRejectedStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := New(srv.URL)
	_, err := client.Search(context.Background(), "dune")
	assert.Error(t, err)
}

func TestSearchMalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html>not json</html>`))
	}))
	defer srv.Close()

	client := New(srv.URL)
	_, err := client.Search(context.Background(), "dune")
	assert.Error(t, err)
}

func TestSearchConnectionError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // closed before use

	client := New(srv.URL)
	_, err := client.Search(context.Background(), "dune")
	assert.Error(t, err)
}
