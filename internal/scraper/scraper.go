// Package scraper fetches pages with resty and extracts structured content
// with goquery.
package scraper

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"

	"github.com/neuralforge/neuralforge/pkg/models"
)

const (
	// DefaultUserAgent identifies the toolkit to scraped sites.
	DefaultUserAgent = "NeuralForge/1.0 (+https://github.com/neuralforge/neuralforge)"

	defaultTimeout = 10 * time.Second
	maxHeadings    = 20
	maxLinks       = 50
	maxImages      = 30
)

// Scraper wraps a configured resty client.
type Scraper struct {
	client *resty.Client
}

// Option configures a Scraper.
type Option func(*Scraper)

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(s *Scraper) {
		if ua != "" {
			s.client.SetHeader("User-Agent", ua)
		}
	}
}

// WithTimeout overrides the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(s *Scraper) {
		if d > 0 {
			s.client.SetTimeout(d)
		}
	}
}

// New builds a scraper with retries and a polite User-Agent.
func New(opts ...Option) *Scraper {
	client := resty.New().
		SetTimeout(defaultTimeout).
		SetRetryCount(2).
		SetRetryWaitTime(500*time.Millisecond).
		SetHeader("User-Agent", DefaultUserAgent)

	s := &Scraper{client: client}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Scrape fetches one URL and extracts title, headings, links, images, and a
// word count. Fetch or parse failures are reported in the result rather
// than as an error, so batch runs keep going.
func (s *Scraper) Scrape(ctx context.Context, url string) *models.ScrapeResult {
	result := &models.ScrapeResult{URL: url, ScrapedAt: time.Now()}

	resp, err := s.client.R().SetContext(ctx).Get(url)
	if err != nil {
		result.Status = "failed"
		result.Error = err.Error()
		return result
	}
	if resp.StatusCode() >= 400 {
		result.Status = "failed"
		result.Error = fmt.Sprintf("HTTP %d", resp.StatusCode())
		return result
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(resp.String()))
	if err != nil {
		result.Status = "failed"
		result.Error = fmt.Sprintf("failed to parse HTML: %v", err)
		return result
	}

	result.Title = strings.TrimSpace(doc.Find("title").First().Text())

	doc.Find("h1, h2, h3").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		if text := strings.TrimSpace(sel.Text()); text != "" {
			result.Headings = append(result.Headings, text)
		}
		return len(result.Headings) < maxHeadings
	})

	doc.Find("a[href]").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		if href, ok := sel.Attr("href"); ok && strings.HasPrefix(href, "http") {
			result.Links = append(result.Links, href)
		}
		return len(result.Links) < maxLinks
	})

	doc.Find("img[src]").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		if src, ok := sel.Attr("src"); ok {
			result.Images = append(result.Images, src)
		}
		return len(result.Images) < maxImages
	})

	doc.Find("script, style").Remove()
	result.WordCount = len(strings.Fields(doc.Find("body").Text()))
	result.LinkCount = len(result.Links)
	result.ImageCount = len(result.Images)
	result.Status = "success"
	return result
}

// ScrapeAll fetches the URLs sequentially with a small delay between
// requests. The context cancels the whole batch.
func (s *Scraper) ScrapeAll(ctx context.Context, urls []string, delay time.Duration) []*models.ScrapeResult {
	results := make([]*models.ScrapeResult, 0, len(urls))
	for i, url := range urls {
		if i > 0 && delay > 0 {
			select {
			case <-ctx.Done():
				return results
			case <-time.After(delay):
			}
		}
		results = append(results, s.Scrape(ctx, url))
	}
	return results
}

// Stats aggregates a batch of results.
func Stats(results []*models.ScrapeResult) *models.ScrapeStats {
	stats := &models.ScrapeStats{TotalURLs: len(results)}
	for _, r := range results {
		if r.Status == "success" {
			stats.Successful++
			stats.TotalWords += r.WordCount
			stats.TotalImages += r.ImageCount
			stats.TotalLinks += r.LinkCount
		} else {
			stats.Failed++
		}
	}
	if stats.TotalURLs > 0 {
		stats.SuccessRate = float64(stats.Successful) / float64(stats.TotalURLs) * 100
	}
	return stats
}

// Export writes results as indented JSON.
func Export(results []*models.ScrapeResult, path string) error {
	data, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode results: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write export: %w", err)
	}
	return nil
}

// Render formats one result for terminal output.
func Render(r *models.ScrapeResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "URL: %s\n", r.URL)
	if r.Status != "success" {
		fmt.Fprintf(&b, "Status: failed (%s)\n", r.Error)
		return b.String()
	}
	fmt.Fprintf(&b, "Title: %s\n", r.Title)
	fmt.Fprintf(&b, "Words: %d, links: %d, images: %d\n", r.WordCount, r.LinkCount, r.ImageCount)
	if len(r.Headings) > 0 {
		b.WriteString("Headings:\n")
		for _, h := range r.Headings {
			fmt.Fprintf(&b, "  - %s\n", h)
		}
	}
	return b.String()
}
