// Package scan walks a directory tree with fastwalk and keeps the N
// heaviest files, producing the normalized mapping the tree builder
// consumes.
package scan

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"sync"
	"time"

	"github.com/charlievieth/fastwalk"

	"github.com/idelchi/stree/internal/parse"
)

// DefaultProgressInterval is the default interval for progress updates.
const DefaultProgressInterval = 500 * time.Millisecond

// DefaultTopN is the number of heaviest files kept when Options.TopN is
// unset.
const DefaultTopN = 50

// logger provides conditional debug output.
type logger struct {
	enabled bool
}

// printf prints debug output if logging is enabled.
func (l logger) printf(format string, args ...any) {
	if l.enabled {
		fmt.Printf(format, args...)
	}
}

// Options configures a scan.
type Options struct {
	// Root is the directory to scan.
	Root string
	// TopN is the number of heaviest files to keep (0 = DefaultTopN).
	TopN int
	// MinSize is the minimum file size in bytes; smaller files are
	// ignored.
	MinSize int64
	// Excludes contains regex patterns to exclude.
	Excludes []string
	// ProgressInterval controls progress callback cadence.
	ProgressInterval time.Duration
	// Debug indicates whether debug output is enabled.
	Debug bool
}

// Summary reports scan totals. It feeds the status line on stderr; the
// machine-readable report is the json view's job.
type Summary struct {
	// FilesSeen is the number of regular files that passed the filters.
	FilesSeen int64
	// TotalBytes is the cumulative size of those files.
	TotalBytes int64
	// ErrorCount is the number of unreadable entries skipped.
	ErrorCount int64
	// Elapsed is the total walk time.
	Elapsed time.Duration
}

// collector aggregates results from concurrent fastwalk callbacks using a
// mutex.
type collector struct {
	mu         sync.Mutex
	entries    []parse.Entry
	fileCount  int64
	totalBytes int64
	errorCount int64
}

// add records a file. Protected by a mutex since fastwalk calls the
// callback from multiple goroutines concurrently.
func (c *collector) add(path string, size int64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.fileCount++
	c.totalBytes += size
	c.entries = append(c.entries, parse.Entry{Path: path, Size: size})
}

// addError increments the error counter.
func (c *collector) addError() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.errorCount++
}

// startProgressReporter invokes hook(files, bytes) on each tick until ctx
// is done.
func startProgressReporter(ctx context.Context, c *collector, hook func(int64, int64), interval time.Duration) {
	if hook == nil {
		return
	}

	if interval <= 0 {
		interval = DefaultProgressInterval
	}

	ticker := time.NewTicker(interval)

	go func() {
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				c.mu.Lock()

				files := c.fileCount
				bytes := c.totalBytes
				c.mu.Unlock()
				hook(files, bytes)
			case <-ctx.Done():
				return
			}
		}
	}()
}

// shouldExcludeByPattern checks if path matches any exclusion regex.
func shouldExcludeByPattern(path string, patterns []*regexp.Regexp) *regexp.Regexp {
	if len(patterns) == 0 {
		return nil
	}

	fPath := filepath.ToSlash(path)

	for _, re := range patterns {
		if re.MatchString(fPath) {
			return re
		}
	}

	return nil
}

// Run walks the directory tree at opt.Root and returns the heaviest files
// as a normalized mapping, plus the scan totals. Selection order is
// descending size, ties broken by ascending path. Symlinks are not
// followed; unreadable entries are counted and skipped.
//
// The walk can be cancelled via ctx. Progress updates are sent to
// progressHook if provided.
func Run(ctx context.Context, opt Options, progressHook func(int64, int64)) (parse.Mapping, *Summary, error) {
	log := logger{enabled: opt.Debug}

	if opt.Root == "" {
		opt.Root = "."
	}

	// The builder requires absolute paths, so anchor the root first.
	root, err := filepath.Abs(filepath.Clean(opt.Root))
	if err != nil {
		return nil, nil, fmt.Errorf("resolving absolute path: %w", err)
	}

	if statInfo, err := os.Stat(root); err != nil {
		return nil, nil, fmt.Errorf("accessing path %q: %w", root, err)
	} else if !statInfo.IsDir() {
		return nil, nil, fmt.Errorf("path %q is not a directory", root)
	}

	if opt.TopN <= 0 {
		opt.TopN = DefaultTopN
	}

	excludeRegexes := make([]*regexp.Regexp, 0, len(opt.Excludes))

	for _, p := range opt.Excludes {
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, nil, fmt.Errorf("compiling exclusion pattern %q: %w", p, err)
		}

		excludeRegexes = append(excludeRegexes, re)
	}

	log.printf("[debug]: scanning %s (top %d, min size %d)\n", root, opt.TopN, opt.MinSize)

	for _, re := range excludeRegexes {
		log.printf("[debug]: exclude regex: %s\n", re.String())
	}

	c := &collector{}

	// Create child context to ensure progress reporter cleanup.
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	startProgressReporter(ctx, c, progressHook, opt.ProgressInterval)

	start := time.Now()

	conf := &fastwalk.Config{
		Follow: false, // Don't follow symlinks
	}

	walkErr := fastwalk.Walk(conf, root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			log.printf("[debug]: error accessing path %s: %v\n", path, err)
			c.addError()

			return nil // Silently skip errors
		}

		select {
		case <-ctx.Done():
			return context.Canceled
		default:
		}

		if matched := shouldExcludeByPattern(path, excludeRegexes); matched != nil {
			log.printf("[debug]: excluding %s (matched %s)\n", filepath.ToSlash(path), matched.String())

			if d.IsDir() {
				return filepath.SkipDir
			}

			return nil
		}

		if d.IsDir() || !d.Type().IsRegular() {
			return nil
		}

		fileInfo, err := d.Info()
		if err != nil {
			c.addError()

			return nil
		}

		if fileInfo.Size() < opt.MinSize {
			return nil
		}

		c.add(path, fileInfo.Size())

		return nil
	})
	if walkErr != nil {
		return nil, nil, walkErr
	}

	mapping, err := c.finalize(opt.TopN)
	if err != nil {
		return nil, nil, err
	}

	summary := &Summary{
		FilesSeen:  c.fileCount,
		TotalBytes: c.totalBytes,
		ErrorCount: c.errorCount,
		Elapsed:    time.Since(start),
	}

	return mapping, summary, nil
}

// finalize keeps the topN heaviest entries and normalizes them for the
// builder.
func (c *collector) finalize(topN int) (parse.Mapping, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	sort.Slice(c.entries, func(i, j int) bool {
		if c.entries[i].Size != c.entries[j].Size {
			return c.entries[i].Size > c.entries[j].Size
		}

		return c.entries[i].Path < c.entries[j].Path
	})

	entries := c.entries
	if len(entries) > topN {
		entries = entries[:topN]
	}

	return parse.Normalize(entries)
}
