package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/neuralforge/neuralforge/internal/scraper"
	"github.com/neuralforge/neuralforge/pkg/models"
)

func scrapeCmd() *cobra.Command {
	var (
		url        string
		extraURLs  []string
		exportPath string
		delay      time.Duration
	)

	cmd := &cobra.Command{
		Use:   "scrape",
		Short: "Extract content from web pages",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			s := scraper.New(
				scraper.WithUserAgent(cfg.Scraper.UserAgent),
				scraper.WithTimeout(time.Duration(cfg.Scraper.TimeoutSeconds)*time.Second),
			)

			urls := append([]string{url}, extraURLs...)
			var results []*models.ScrapeResult
			if len(urls) == 1 {
				results = append(results, s.Scrape(cmd.Context(), urls[0]))
			} else {
				results = s.ScrapeAll(cmd.Context(), urls, delay)
			}

			for _, r := range results {
				fmt.Print(scraper.Render(r))
				fmt.Println()
			}

			if len(results) > 1 {
				stats := scraper.Stats(results)
				fmt.Printf("Scraped %d page(s): %d ok, %d failed (%.0f%% success)\n",
					stats.TotalURLs, stats.Successful, stats.Failed, stats.SuccessRate)
			}

			if exportPath != "" {
				if err := scraper.Export(results, exportPath); err != nil {
					return err
				}
				fmt.Printf("📄 Exported results to %s\n", exportPath)
			}

			for _, r := range results {
				if r.Status != "success" {
					return fmt.Errorf("scrape of %s failed: %s", r.URL, r.Error)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&url, "url", "https://example.com", "URL to scrape")
	cmd.Flags().StringSliceVar(&extraURLs, "also", nil, "additional URLs to scrape")
	cmd.Flags().StringVar(&exportPath, "export", "", "write results to a JSON file")
	cmd.Flags().DurationVar(&delay, "delay", time.Second, "delay between batch requests")
	return cmd
}
