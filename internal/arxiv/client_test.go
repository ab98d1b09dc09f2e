package arxiv

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

const sampleFeed = `<?xml version="1.0" encoding="UTF-8"?>
<feed xmlns="http://www.w3.org/2005/Atom">
  <entry>
    <id>http://arxiv.org/abs/2301.00001v2</id>
    <title> Attention Is Still All You Need </title>
    <summary>
      We revisit attention.
    </summary>
    <published>2023-01-01T18:30:00Z</published>
  </entry>
</feed>`

func testClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c := NewClient()
	c.baseURL = srv.URL
	c.now = func() time.Time {
		return time.Date(2023, 1, 10, 12, 0, 0, 0, time.UTC)
	}
	return c
}

func TestSearchParsesAtomFeed(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(sampleFeed))
	})

	papers, err := c.Search(context.Background(), "attention", "cs.LG")
	require.NoError(t, err)
	require.Len(t, papers, 1)

	p := papers[0]
	require.Equal(t, "2301.00001", p.ID)
	require.Equal(t, "Attention Is Still All You Need", p.Title)
	require.Equal(t, "We revisit attention.", p.Abstract)
	require.Equal(t, "http://arxiv.org/abs/2301.00001v2", p.URL)
	require.Equal(t, time.Date(2023, 1, 1, 18, 30, 0, 0, time.UTC), p.PublishedAt)
}

func TestSearchBuildsQueryWithWindow(t *testing.T) {
	var query, maxResults, sortBy, sortOrder string
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		query = r.URL.Query().Get("search_query")
		maxResults = r.URL.Query().Get("max_results")
		sortBy = r.URL.Query().Get("sortBy")
		sortOrder = r.URL.Query().Get("sortOrder")
		w.Write([]byte(sampleFeed))
	})

	_, err := c.Search(context.Background(), "attention", "cs.LG")
	require.NoError(t, err)

	// Fixed "now" of 2023-01-10 puts the one-day window at Jan 2 - Jan 3.
	require.Equal(t, "(ti:attention OR abs:attention) AND cat:cs.LG AND submittedDate:[20230102 TO 20230103]", query)
	require.Equal(t, "1", maxResults)
	require.Equal(t, "submittedDate", sortBy)
	require.Equal(t, "descending", sortOrder)
}

func TestSearchEmptyFeed(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<?xml version="1.0"?><feed xmlns="http://www.w3.org/2005/Atom"></feed>`))
	})

	papers, err := c.Search(context.Background(), "attention", "cs.LG")
	require.NoError(t, err)
	require.Empty(t, papers)
}

func TestSearchHTTPError(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	_, err := c.Search(context.Background(), "attention", "cs.LG")
	require.Error(t, err)
}

func TestSearchWindow(t *testing.T) {
	now := time.Date(2024, 3, 15, 9, 0, 0, 0, time.UTC)
	start, end := searchWindow(now)
	require.Equal(t, "20240307", start)
	require.Equal(t, "20240308", end)
}
