package interpreter

import (
	"regexp"
	"strings"
)

// Default parameter values used when the input carries no usable reference.
const (
	DefaultOrganizeTarget = "~/Downloads"
	DefaultScrapeURL      = "https://example.com"
	DefaultRecipient      = "user@example.com"
)

var (
	urlRe   = regexp.MustCompile(`https?://[^\s]+`)
	emailRe = regexp.MustCompile(`[\w.-]+@[\w.-]+\.\w+`)
	timeRe  = regexp.MustCompile(`(?:at|in|for)\s+(\d+)\s*(?:am|pm|hours?|minutes?|days?)`)
	taskRe  = regexp.MustCompile(`(?:to|for)\s+(.+)`)
)

// extractParams pulls action-specific values from the raw (lowercased) input.
// Extraction is independent of which pattern matched; each rule takes the
// first match and falls back to a fixed default where one is defined.
func extractParams(input string, action Action) *Params {
	params := NewParams()

	switch action {
	case ActionOrganizeFiles:
		// Priority order: downloads, desktop, documents.
		switch {
		case strings.Contains(input, "downloads"):
			params.Set("target", "~/Downloads")
		case strings.Contains(input, "desktop"):
			params.Set("target", "~/Desktop")
		case strings.Contains(input, "documents"):
			params.Set("target", "~/Documents")
		default:
			params.Set("target", DefaultOrganizeTarget)
		}

	case ActionWebScraping:
		if m := urlRe.FindString(input); m != "" {
			params.Set("url", m)
		} else {
			params.Set("url", DefaultScrapeURL)
		}

	case ActionEmailAutomation:
		if m := emailRe.FindString(input); m != "" {
			params.Set("recipient", m)
		} else {
			params.Set("recipient", DefaultRecipient)
		}

	case ActionScheduleTask:
		// Time and task are independent; either, both, or neither may be
		// present, and an empty map is a valid outcome.
		if m := timeRe.FindStringSubmatch(input); m != nil {
			params.Set("time", m[1])
		}
		if m := taskRe.FindStringSubmatch(input); m != nil {
			params.Set("task", m[1])
		}
	}

	return params
}
