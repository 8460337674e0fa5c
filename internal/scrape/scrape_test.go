package scrape

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const page = `<html><body>
<a href="https://docs.example.edu/download?id=1">one</a>
<a href="https://other.example.com/elsewhere">offsite</a>
<a href="https://docs.example.edu/download?id=2">two</a>
<a href="https://docs.example.edu/download?id=1">one again</a>
<a>no href</a>
</body></html>`

func TestLinksFiltersByPrefix(t *testing.T) {
	links, err := Links(strings.NewReader(page), "https://docs.example.edu/download")
	require.NoError(t, err)

	assert.Equal(t, []string{
		"https://docs.example.edu/download?id=1",
		"https://docs.example.edu/download?id=2",
	}, links, "matching links, de-duplicated, in document order")
}

func TestLinksEmptyPrefixMatchesAll(t *testing.T) {
	links, err := Links(strings.NewReader(page), "")
	require.NoError(t, err)
	assert.Len(t, links, 3)
}

func TestLinksNoAnchors(t *testing.T) {
	links, err := Links(strings.NewReader("<html><body><p>plain</p></body></html>"), "")
	require.NoError(t, err)
	assert.Empty(t, links)
}
