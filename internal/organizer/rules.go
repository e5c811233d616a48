package organizer

import (
	"path/filepath"
	"strings"
)

// Rules maps file extensions (with leading dot, lowercase) to category
// folder names.
type Rules struct {
	byExt map[string]string
}

// DefaultRules covers the common document, media, archive, and code types.
func DefaultRules() *Rules {
	categories := map[string][]string{
		"Documents":    {".pdf", ".doc", ".docx", ".txt", ".rtf", ".odt", ".md"},
		"Images":       {".jpg", ".jpeg", ".png", ".gif", ".bmp", ".svg", ".webp", ".heic"},
		"Videos":       {".mp4", ".avi", ".mkv", ".mov", ".wmv", ".flv", ".webm"},
		"Audio":        {".mp3", ".wav", ".flac", ".aac", ".ogg", ".m4a"},
		"Archives":     {".zip", ".rar", ".7z", ".tar", ".gz", ".bz2"},
		"Spreadsheets": {".xls", ".xlsx", ".csv", ".ods"},
		"Code":         {".py", ".go", ".js", ".html", ".css", ".json", ".xml", ".yaml", ".yml", ".sh"},
	}
	byExt := make(map[string]string)
	for category, exts := range categories {
		for _, ext := range exts {
			byExt[ext] = category
		}
	}
	return &Rules{byExt: byExt}
}

// Category returns the folder for a file name, or false when the extension
// has no rule.
func (r *Rules) Category(name string) (string, bool) {
	category, ok := r.byExt[strings.ToLower(filepath.Ext(name))]
	return category, ok
}

// Add registers or overrides a rule. Extensions are normalized to lowercase
// with a leading dot.
func (r *Rules) Add(ext, category string) {
	ext = strings.ToLower(ext)
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	r.byExt[ext] = category
}
