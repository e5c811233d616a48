package models

import "time"

// MemoryEntry is a single recorded AI interaction.
type MemoryEntry struct {
	ID            int64             `json:"id"`
	AgentName     string            `json:"agent_name"`
	Task          string            `json:"task"`
	Response      string            `json:"response"`
	SuccessRating int               `json:"success_rating"` // 1..5
	ModelUsed     string            `json:"model_used"`
	TokensUsed    int               `json:"tokens_used"`
	Metadata      map[string]string `json:"metadata,omitempty"`
	Timestamp     time.Time         `json:"timestamp"`

	// RelevanceScore is populated by queries, not stored.
	RelevanceScore float64 `json:"relevance_score,omitempty"`
}

// MemoryStats summarizes the memory store.
type MemoryStats struct {
	TotalEntries     int       `json:"total_entries"`
	AvgSuccessRating float64   `json:"avg_success_rating"`
	TotalTokensUsed  int       `json:"total_tokens_used"`
	TopModel         string    `json:"top_model"`
	ModelsUsed       []string  `json:"models_used"`
	Oldest           time.Time `json:"oldest,omitempty"`
	Newest           time.Time `json:"newest,omitempty"`
}

// LogEntry records one processed natural-language command.
type LogEntry struct {
	ID         int64
	SessionID  string
	Input      string
	Action     string
	Confidence float64
	Status     string // ok, no_match, low_confidence, failed
	DurationMs int64
	Timestamp  time.Time
}

// ScrapeResult holds the extracted content of a single page.
type ScrapeResult struct {
	URL        string    `json:"url"`
	Title      string    `json:"title"`
	Headings   []string  `json:"headings"`
	Links      []string  `json:"links"`
	Images     []string  `json:"images"`
	WordCount  int       `json:"word_count"`
	LinkCount  int       `json:"link_count"`
	ImageCount int       `json:"image_count"`
	Status     string    `json:"status"` // success or failed
	Error      string    `json:"error,omitempty"`
	ScrapedAt  time.Time `json:"scraped_at"`
}

// ScrapeStats aggregates results across scraped pages.
type ScrapeStats struct {
	TotalURLs   int     `json:"total_urls"`
	Successful  int     `json:"successful_scrapes"`
	Failed      int     `json:"failed_scrapes"`
	SuccessRate float64 `json:"success_rate"`
	TotalWords  int     `json:"total_words"`
	TotalImages int     `json:"total_images"`
	TotalLinks  int     `json:"total_links"`
}

// ScheduledTask is a persisted scheduler entry.
type ScheduledTask struct {
	ID        int64
	Name      string
	Schedule  string // friendly spec: daily, weekly, monthly, or HH:MM
	CronSpec  string // translated cron expression
	Status    string // scheduled, running, completed, failed
	LastRun   time.Time
	CreatedAt time.Time
}

// Metrics is a one-shot system metrics snapshot.
type Metrics struct {
	Timestamp     time.Time `json:"timestamp"`
	CPUPercent    float64   `json:"cpu_percent"`
	MemoryPercent float64   `json:"memory_percent"`
	MemoryUsed    uint64    `json:"memory_used"`
	MemoryTotal   uint64    `json:"memory_total"`
	DiskPercent   float64   `json:"disk_percent"`
	DiskUsed      uint64    `json:"disk_used"`
	DiskTotal     uint64    `json:"disk_total"`
	NetBytesSent  uint64    `json:"net_bytes_sent"`
	NetBytesRecv  uint64    `json:"net_bytes_recv"`
	UptimeSeconds uint64    `json:"uptime_seconds"`
}
