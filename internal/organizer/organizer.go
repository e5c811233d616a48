// Package organizer sorts files into category folders by extension and
// reports duplicates and oversized files.
package organizer

import (
	"crypto/md5"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
)

const (
	largeFileBytes = 100 * 1024 * 1024
	recentWindow   = 7 * 24 * time.Hour
)

// Analysis summarizes a directory scan.
type Analysis struct {
	Directory   string
	TotalFiles  int
	TotalBytes  int64
	FileTypes   map[string]int
	Duplicates  []Duplicate
	LargeFiles  []FileInfo
	RecentFiles []FileInfo
	AnalyzedAt  time.Time
}

// FileInfo describes one file of interest.
type FileInfo struct {
	Path     string
	Size     int64
	Modified time.Time
}

// Duplicate pairs files that share the name+size fingerprint. The heuristic
// is deliberately weak (no content hashing); it flags candidates, nothing
// more.
type Duplicate struct {
	Hash  string
	Files []string
	Size  int64
}

// Operation records one planned or performed move.
type Operation struct {
	Source   string
	Target   string
	Category string
	Status   string // moved, would_move, error
	Err      string
}

// Result summarizes an organize run.
type Result struct {
	Source     string
	Target     string
	DryRun     bool
	Processed  int
	Moved      int
	Skipped    int
	Operations []Operation
	Errors     []string
}

// Organizer applies an extension->category rule table.
type Organizer struct {
	rules *Rules
}

// New creates an organizer with the given rules; nil means default rules.
func New(rules *Rules) *Organizer {
	if rules == nil {
		rules = DefaultRules()
	}
	return &Organizer{rules: rules}
}

// Analyze walks directory recursively and gathers counts, sizes, large and
// recent files, and duplicate candidates.
func (o *Organizer) Analyze(directory string) (*Analysis, error) {
	root, err := os.Stat(directory)
	if err != nil {
		return nil, fmt.Errorf("directory does not exist: %w", err)
	}
	if !root.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", directory)
	}

	a := &Analysis{
		Directory:  directory,
		FileTypes:  make(map[string]int),
		AnalyzedAt: time.Now(),
	}
	fingerprints := make(map[string]string)
	now := time.Now()

	err = filepath.WalkDir(directory, func(path string, d os.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		info, err := d.Info()
		if err != nil {
			return nil // file vanished mid-walk
		}

		a.TotalFiles++
		a.TotalBytes += info.Size()
		a.FileTypes[strings.ToLower(filepath.Ext(path))]++

		if info.Size() > largeFileBytes {
			a.LargeFiles = append(a.LargeFiles, FileInfo{Path: path, Size: info.Size(), Modified: info.ModTime()})
		}
		if now.Sub(info.ModTime()) < recentWindow {
			a.RecentFiles = append(a.RecentFiles, FileInfo{Path: path, Size: info.Size(), Modified: info.ModTime()})
		}

		// Name+size fingerprint for duplicate candidates.
		sum := md5.Sum([]byte(fmt.Sprintf("%s%d", d.Name(), info.Size())))
		hash := fmt.Sprintf("%x", sum)
		if prev, ok := fingerprints[hash]; ok {
			a.Duplicates = append(a.Duplicates, Duplicate{
				Hash:  hash,
				Files: []string{prev, path},
				Size:  info.Size(),
			})
		} else {
			fingerprints[hash] = path
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk directory: %w", err)
	}
	return a, nil
}

// Organize moves the files directly under sourceDir into category subfolders
// of targetDir. Name conflicts get a _N suffix. With dryRun the moves are
// only recorded, not performed.
func (o *Organizer) Organize(sourceDir, targetDir string, dryRun bool) (*Result, error) {
	if _, err := os.Stat(sourceDir); err != nil {
		return nil, fmt.Errorf("source directory does not exist: %w", err)
	}
	if err := os.MkdirAll(targetDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create target directory: %w", err)
	}

	result := &Result{Source: sourceDir, Target: targetDir, DryRun: dryRun}

	entries, err := os.ReadDir(sourceDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read source directory: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		result.Processed++

		category, ok := o.rules.Category(entry.Name())
		if !ok {
			result.Skipped++
			continue
		}

		categoryDir := filepath.Join(targetDir, category)
		target := filepath.Join(categoryDir, entry.Name())
		if !dryRun {
			if err := os.MkdirAll(categoryDir, 0755); err != nil {
				result.Skipped++
				result.Errors = append(result.Errors, err.Error())
				continue
			}
			target = resolveConflict(target)
		}

		op := Operation{
			Source:   filepath.Join(sourceDir, entry.Name()),
			Target:   target,
			Category: category,
		}

		if dryRun {
			op.Status = "would_move"
			result.Moved++
		} else if err := os.Rename(op.Source, target); err != nil {
			op.Status = "error"
			op.Err = err.Error()
			result.Skipped++
			result.Errors = append(result.Errors, err.Error())
		} else {
			op.Status = "moved"
			result.Moved++
		}
		result.Operations = append(result.Operations, op)
	}

	return result, nil
}

// resolveConflict appends _1, _2, ... to the stem until the path is free.
func resolveConflict(path string) string {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return path
	}
	ext := filepath.Ext(path)
	stem := strings.TrimSuffix(path, ext)
	for i := 1; ; i++ {
		candidate := fmt.Sprintf("%s_%d%s", stem, i, ext)
		if _, err := os.Stat(candidate); os.IsNotExist(err) {
			return candidate
		}
	}
}

// Render formats an analysis for terminal output.
func (a *Analysis) Render() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Directory: %s\n", a.Directory)
	fmt.Fprintf(&b, "Files: %d (%s)\n", a.TotalFiles, humanize.Bytes(uint64(a.TotalBytes)))
	fmt.Fprintf(&b, "Extensions: %d\n", len(a.FileTypes))
	fmt.Fprintf(&b, "Duplicates: %d candidate pair(s)\n", len(a.Duplicates))
	fmt.Fprintf(&b, "Large files (>%s): %d\n", humanize.Bytes(largeFileBytes), len(a.LargeFiles))
	fmt.Fprintf(&b, "Recent files (7d): %d\n", len(a.RecentFiles))
	return b.String()
}

// Render formats an organize result for terminal output.
func (r *Result) Render() string {
	var b strings.Builder
	mode := "moved"
	if r.DryRun {
		mode = "would move"
	}
	fmt.Fprintf(&b, "Organized %s -> %s\n", r.Source, r.Target)
	fmt.Fprintf(&b, "Processed %d file(s): %s %d, skipped %d\n", r.Processed, mode, r.Moved, r.Skipped)
	for _, op := range r.Operations {
		fmt.Fprintf(&b, "  [%s] %s -> %s\n", op.Category, filepath.Base(op.Source), op.Target)
	}
	if len(r.Errors) > 0 {
		fmt.Fprintf(&b, "Errors: %d\n", len(r.Errors))
	}
	return b.String()
}
