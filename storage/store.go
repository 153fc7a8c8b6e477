// Package storage persists analyses as one JSON file per save in a flat
// directory.
package storage

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
	"unicode"

	"github.com/charmbracelet/log"

	"github.com/seo-optimizer/seoreport/analyzer"
)

// TimestampFormat is the layout of SavedAnalysis.Timestamp and the filename
// suffix.
const TimestampFormat = "20060102_150405"

// SavedAnalysis is the on-disk envelope of one saved analysis.
type SavedAnalysis struct {
	URL       string           `json:"url"`
	Timestamp string           `json:"timestamp"`
	Notes     string           `json:"notes"`
	Data      *analyzer.Report `json:"data"`
}

// SaveResult is returned by Save.
type SaveResult struct {
	Status   string `json:"status"`
	Message  string `json:"message"`
	Filename string `json:"filename"`
}

// Summary is one entry of List.
type Summary struct {
	Filename  string `json:"filename"`
	URL       string `json:"url"`
	Timestamp string `json:"timestamp"`
	Notes     string `json:"notes"`
}

// Store reads and writes saved analyses under a single directory.
type Store struct {
	dir    string
	logger *log.Logger
	now    func() time.Time
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used for skipped files.
func WithLogger(l *log.Logger) Option {
	return func(s *Store) {
		s.logger = l
	}
}

// WithClock overrides time.Now for timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// NewStore creates dir if needed and returns a Store over it.
func NewStore(dir string, opts ...Option) (*Store, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, analyzer.WrapError(analyzer.EPERSISTENCE, err, "Failed to create storage directory: %v", err)
	}
	s := &Store{
		dir:    dir,
		logger: log.Default(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Dir returns the storage directory.
func (s *Store) Dir() string {
	return s.dir
}

// Save writes report under a filename derived from url and the current time.
// Saving the same url twice within one second replaces the earlier file.
func (s *Store) Save(url string, report *analyzer.Report, notes string) (SaveResult, error) {
	if url == "" || report == nil {
		return SaveResult{}, analyzer.Errorf(analyzer.EINVALID, "URL and analysis data are required")
	}

	timestamp := s.now().Format(TimestampFormat)
	filename := sanitize(url) + "_" + timestamp + ".json"

	data, err := json.MarshalIndent(SavedAnalysis{
		URL:       url,
		Timestamp: timestamp,
		Notes:     notes,
		Data:      report,
	}, "", "  ")
	if err != nil {
		return SaveResult{}, analyzer.WrapError(analyzer.EPERSISTENCE, err, "Failed to save analysis: %v", err)
	}

	if err := writeFileAtomic(filepath.Join(s.dir, filename), data); err != nil {
		return SaveResult{}, analyzer.WrapError(analyzer.EPERSISTENCE, err, "Failed to save analysis: %v", err)
	}

	return SaveResult{
		Status:   analyzer.StatusSuccess,
		Message:  "Analysis saved successfully",
		Filename: filename,
	}, nil
}

// Load reads a saved analysis by filename.
func (s *Store) Load(filename string) (*SavedAnalysis, error) {
	if err := validateFilename(filename); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(filepath.Join(s.dir, filename))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, analyzer.WrapError(analyzer.ENOTFOUND, err, "Analysis file not found")
		}
		return nil, analyzer.WrapError(analyzer.EPERSISTENCE, err, "Failed to load analysis: %v", err)
	}

	var saved SavedAnalysis
	if err := json.Unmarshal(data, &saved); err != nil {
		return nil, analyzer.WrapError(analyzer.EPERSISTENCE, err, "Failed to load analysis: %v", err)
	}
	return &saved, nil
}

// List returns a summary of every saved analysis, newest first. Files that
// cannot be read or decoded are skipped.
func (s *Store) List() ([]Summary, error) {
	paths, err := filepath.Glob(filepath.Join(s.dir, "*.json"))
	if err != nil {
		return nil, analyzer.WrapError(analyzer.EPERSISTENCE, err, "Failed to list analyses: %v", err)
	}

	summaries := make([]Summary, 0, len(paths))
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			s.logger.Warn("skipping unreadable analysis", "path", path, "error", err)
			continue
		}
		var saved SavedAnalysis
		if err := json.Unmarshal(data, &saved); err != nil {
			s.logger.Warn("skipping malformed analysis", "path", path, "error", err)
			continue
		}
		summaries = append(summaries, Summary{
			Filename:  filepath.Base(path),
			URL:       saved.URL,
			Timestamp: saved.Timestamp,
			Notes:     saved.Notes,
		})
	}

	sort.Slice(summaries, func(i, j int) bool {
		if summaries[i].Timestamp != summaries[j].Timestamp {
			return summaries[i].Timestamp > summaries[j].Timestamp
		}
		return summaries[i].Filename < summaries[j].Filename
	})
	return summaries, nil
}

// sanitize keeps letters, digits, '-' and '_'.
func sanitize(url string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-' || r == '_' {
			return r
		}
		return -1
	}, url)
}

func validateFilename(filename string) error {
	if filename == "" ||
		strings.Contains(filename, "..") ||
		strings.ContainsAny(filename, `/\`) ||
		filepath.Base(filename) != filename {
		return analyzer.Errorf(analyzer.EINVALID, "Invalid filename")
	}
	return nil
}

// writeFileAtomic writes to a temporary file first and renames it into place.
func writeFileAtomic(path string, data []byte) error {
	tempFile := path + ".tmp"
	if err := os.WriteFile(tempFile, data, 0644); err != nil {
		return err
	}
	if err := os.Rename(tempFile, path); err != nil {
		os.Remove(tempFile)
		return err
	}
	return nil
}
