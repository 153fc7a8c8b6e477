package stats

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

// FileName is the statistics file inside the data directory.
const FileName = "stats.json"

// Event is one countable usage event.
type Event int

const (
	EventAnalysis Event = iota
	EventFailure
	EventExport
	EventSave
)

// MonthlyStats holds usage counters for one calendar month.
type MonthlyStats struct {
	Analyses      int       `json:"analyses"`
	Failures      int       `json:"failures"`
	Exports       int       `json:"exports"`
	Saves         int       `json:"saves"`
	TotalDuration float64   `json:"total_duration_ms"`
	LastUpdated   time.Time `json:"last_updated"`
}

// AverageDuration is the mean analysis duration in milliseconds.
func (m MonthlyStats) AverageDuration() float64 {
	if m.Analyses == 0 {
		return 0
	}
	return m.TotalDuration / float64(m.Analyses)
}

// ErrorRate is the share of failed analyses in percent.
func (m MonthlyStats) ErrorRate() float64 {
	if m.Analyses == 0 {
		return 0
	}
	return float64(m.Failures) / float64(m.Analyses) * 100
}

// Storage handles persistent storage of statistics
type Storage struct {
	mutex       sync.RWMutex
	writeMu     sync.Mutex
	stats       map[string]*MonthlyStats // key: "YYYY-MM"
	filePath    string
	lastWrite   time.Time
	writeBuffer chan struct{}
	done        chan struct{}
	stopped     chan struct{}
	stopOnce    sync.Once
	interval    time.Duration
	logger      *log.Logger
	now         func() time.Time
}

// Option configures a Storage.
type Option func(*Storage)

// WithLogger sets the logger used for write failures.
func WithLogger(l *log.Logger) Option {
	return func(s *Storage) {
		s.logger = l
	}
}

// WithFlushInterval changes the periodic write interval (default 5m).
func WithFlushInterval(d time.Duration) Option {
	return func(s *Storage) {
		s.interval = d
	}
}

// WithClock overrides time.Now for month keys.
func WithClock(now func() time.Time) Option {
	return func(s *Storage) {
		s.now = now
	}
}

// NewStorage creates a new statistics storage instance
func NewStorage(dataDir string, opts ...Option) (*Storage, error) {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	s := &Storage{
		stats:       make(map[string]*MonthlyStats),
		filePath:    filepath.Join(dataDir, FileName),
		writeBuffer: make(chan struct{}, 1),
		done:        make(chan struct{}),
		stopped:     make(chan struct{}),
		interval:    5 * time.Minute,
		logger:      log.Default(),
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	if err := s.load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to load stats: %w", err)
	}

	go s.backgroundWriter()

	return s, nil
}

func (s *Storage) load() error {
	data, err := os.ReadFile(s.filePath)
	if err != nil {
		return err
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()

	return json.Unmarshal(data, &s.stats)
}

// save writes statistics to a temporary file and renames it into place.
func (s *Storage) save() error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.mutex.RLock()
	data, err := json.Marshal(s.stats)
	s.mutex.RUnlock()

	if err != nil {
		return fmt.Errorf("failed to marshal stats: %w", err)
	}

	tempFile := s.filePath + ".tmp"
	if err := os.WriteFile(tempFile, data, 0644); err != nil {
		return fmt.Errorf("failed to write temporary file: %w", err)
	}

	if err := os.Rename(tempFile, s.filePath); err != nil {
		os.Remove(tempFile)
		return fmt.Errorf("failed to rename temporary file: %w", err)
	}

	return nil
}

func (s *Storage) flush() {
	if err := s.save(); err != nil {
		s.logger.Warn("statistics write failed", "path", s.filePath, "error", err)
	}
}

// backgroundWriter handles periodic and requested writes until Shutdown.
func (s *Storage) backgroundWriter() {
	defer close(s.stopped)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.writeBuffer:
			s.flush()
		case <-ticker.C:
			s.flush()
		case <-s.done:
			return
		}
	}
}

func (s *Storage) month() string {
	return s.now().Format("2006-01")
}

// requestWrite signals that a write to disk is needed
func (s *Storage) requestWrite() {
	select {
	case s.writeBuffer <- struct{}{}:
	default:
		// write already pending
	}
}

// Record counts one event for the current month. duration is only
// accumulated for EventAnalysis.
func (s *Storage) Record(event Event, duration time.Duration) {
	month := s.month()

	s.mutex.Lock()
	defer s.mutex.Unlock()

	stats, exists := s.stats[month]
	if !exists {
		stats = &MonthlyStats{}
		s.stats[month] = stats
	}

	switch event {
	case EventAnalysis:
		stats.Analyses++
		stats.TotalDuration += float64(duration) / float64(time.Millisecond)
	case EventFailure:
		stats.Failures++
	case EventExport:
		stats.Exports++
	case EventSave:
		stats.Saves++
	}
	stats.LastUpdated = s.now()

	if time.Since(s.lastWrite) > time.Minute {
		s.requestWrite()
		s.lastWrite = time.Now()
	}
}

// GetCurrentStats returns statistics for the current month
func (s *Storage) GetCurrentStats() MonthlyStats {
	stats, _ := s.GetMonthlyStats(s.month())
	return stats
}

// Cleanup removes statistics for every month except the current and previous one.
func (s *Storage) Cleanup() {
	current := s.now()
	currentMonth := current.Format("2006-01")
	previousMonth := current.AddDate(0, -1, 0).Format("2006-01")

	s.mutex.Lock()
	for key := range s.stats {
		if key != currentMonth && key != previousMonth {
			delete(s.stats, key)
		}
	}
	s.mutex.Unlock()

	s.requestWrite()
	s.logger.Debug("statistics retained", "months", []string{currentMonth, previousMonth})
}

// GetMonthlyStats returns statistics for a specific month
func (s *Storage) GetMonthlyStats(yearMonth string) (MonthlyStats, bool) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	if stats, exists := s.stats[yearMonth]; exists {
		return *stats, true
	}
	return MonthlyStats{}, false
}

// GetAllMonths returns all months that have statistics, newest first.
func (s *Storage) GetAllMonths() []string {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	months := make([]string, 0, len(s.stats))
	for month := range s.stats {
		months = append(months, month)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(months)))

	return months
}

// Shutdown stops the background writer and writes the final state to disk.
// It is safe to call more than once.
func (s *Storage) Shutdown() error {
	var err error
	s.stopOnce.Do(func() {
		close(s.done)
		<-s.stopped
		err = s.save()
	})
	return err
}
