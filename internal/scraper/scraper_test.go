package scraper

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/neuralforge/neuralforge/pkg/models"
)

const testPage = `<!DOCTYPE html>
<html>
<head><title>Test Page</title></head>
<body>
  <h1>Main Heading</h1>
  <h2>Sub Heading</h2>
  <p>Some body text with a few words in it.</p>
  <a href="https://example.com/one">one</a>
  <a href="https://example.com/two">two</a>
  <a href="/relative">relative</a>
  <img src="/images/a.png">
  <script>var ignored = "script text should not count";</script>
</body>
</html>`

func testServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(testPage))
	})
	mux.HandleFunc("/missing", func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestScrapeExtractsContent(t *testing.T) {
	srv := testServer(t)

	result := New().Scrape(context.Background(), srv.URL)
	require.Equal(t, "success", result.Status, "error: %s", result.Error)

	assert.Equal(t, "Test Page", result.Title)
	assert.Equal(t, []string{"Main Heading", "Sub Heading"}, result.Headings)
	// Relative links are dropped.
	assert.Equal(t, 2, result.LinkCount)
	assert.Equal(t, 1, result.ImageCount)
	assert.Greater(t, result.WordCount, 0)
	assert.NotContains(t, result.Title, "script")
}

func TestScrapeWordCountIgnoresScripts(t *testing.T) {
	srv := testServer(t)

	result := New().Scrape(context.Background(), srv.URL)
	require.Equal(t, "success", result.Status)

	// "ignored"/"script text should not count" live in a script tag.
	// Headings plus the paragraph come to far fewer than 30 words.
	assert.Less(t, result.WordCount, 30)
}

func TestScrapeHTTPErrorIsReported(t *testing.T) {
	srv := testServer(t)

	result := New().Scrape(context.Background(), srv.URL+"/missing")
	assert.Equal(t, "failed", result.Status)
	assert.Contains(t, result.Error, "404")
}

func TestScrapeUnreachableHost(t *testing.T) {
	result := New().Scrape(context.Background(), "http://127.0.0.1:1/nope")
	assert.Equal(t, "failed", result.Status)
	assert.NotEmpty(t, result.Error)
}

func TestScrapeAllAndStats(t *testing.T) {
	srv := testServer(t)

	s := New()
	results := s.ScrapeAll(context.Background(), []string{srv.URL, srv.URL + "/missing"}, 0)
	require.Len(t, results, 2)

	stats := Stats(results)
	assert.Equal(t, 2, stats.TotalURLs)
	assert.Equal(t, 1, stats.Successful)
	assert.Equal(t, 1, stats.Failed)
	assert.InDelta(t, 50.0, stats.SuccessRate, 1e-9)
	assert.Greater(t, stats.TotalWords, 0)
}

func TestExport(t *testing.T) {
	srv := testServer(t)
	results := []*models.ScrapeResult{New().Scrape(context.Background(), srv.URL)}

	path := filepath.Join(t.TempDir(), "out.json")
	require.NoError(t, Export(results, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var decoded []models.ScrapeResult
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.Len(t, decoded, 1)
	assert.Equal(t, "Test Page", decoded[0].Title)
}
