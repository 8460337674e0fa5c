package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"filmseek/internal/domain"
	"filmseek/internal/store"
)

func newTestServer(t *testing.T, movies []domain.Movie) *httptest.Server {
	t.Helper()
	st, err := store.OpenInMemory()
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	if len(movies) > 0 {
		require.NoError(t, st.Put(movies))
	}

	srv := New(st, zerolog.Nop(), 20)
	ts := httptest.NewServer(srv.Router())
	t.Cleanup(ts.Close)
	return ts
}

func TestSearchEndpoint(t *testing.T) {
	ts := newTestServer(t, []domain.Movie{
		{ID: 1, Title: "Dune", Poster: "p.jpg", Overview: "o", ReleaseDate: json.Number("1634256000")},
	})

	resp, err := http.Get(ts.URL + "/search?q=dune")
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))

	var body domain.SearchResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Len(t, body.Results, 1)
	assert.Equal(t, "Dune", body.Results[0].Title)
}

func TestSearchEndpointEmptyIndexReturnsArray(t *testing.T) {
	ts := newTestServer(t, nil)

	resp, err := http.Get(ts.URL + "/search?q=dune")
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var raw map[string]json.RawMessage
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&raw))
	// the widget iterates results unconditionally, so null would break it
	assert.JSONEq(t, `[]`, string(raw["results"]))
}

func TestSearchEndpointNoQueryParam(t *testing.T) {
	ts := newTestServer(t, []domain.Movie{
		{ID: 1, Title: "Dune"},
		{ID: 2, Title: "Alien"},
	})

	// A missing q behaves like an empty query: first page of the index
	resp, err := http.Get(ts.URL + "/search")
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body domain.SearchResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Len(t, body.Results, 2)
}

func TestHealthEndpoint(t *testing.T) {
	ts := newTestServer(t, []domain.Movie{{ID: 1, Title: "Dune"}})

	resp, err := http.Get(ts.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "ok", body["status"])
	assert.EqualValues(t, 1, body["movies"])
}

type failingStore struct{}

func (failingStore) Put([]domain.Movie) error                   { return errors.New("closed") }
func (failingStore) Get(int) (*domain.Movie, error)             { return nil, errors.New("closed") }
func (failingStore) Search(string, int) ([]domain.Movie, error) { return nil, errors.New("closed") }
func (failingStore) Count() (int, error)                        { return 0, errors.New("closed") }
func (failingStore) Close() error                               { return nil }

func TestSearchEndpointStoreFailure(t *testing.T) {
	srv := New(failingStore{}, zerolog.Nop(), 20)
	ts := httptest.NewServer(srv.Router())
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/search?q=dune")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
}
