// Package scheduler runs the periodic collection backups.
package scheduler

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/mrlokans/library/internal/config"
	"github.com/mrlokans/library/internal/entities"
	"github.com/mrlokans/library/internal/storage"
)

const (
	backupPrefix     = "library-"
	backupSuffix     = ".json"
	backupTimeLayout = "20060102-150405"
)

// BookSource is the read side of the library store.
type BookSource interface {
	All() []entities.Book
}

var cronParser = cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)

// ValidateCronSchedule checks a standard five-field cron expression.
func ValidateCronSchedule(schedule string) error {
	_, err := cronParser.Parse(schedule)
	return err
}

// BackupScheduler writes timestamped JSON snapshots of the collection.
type BackupScheduler struct {
	source BookSource
	cfg    config.Backup
	logger *zap.Logger
	now    func() time.Time

	cron       *cron.Cron
	entryID    cron.EntryID
	mu         sync.RWMutex
	runMu      sync.Mutex
	isRunning  bool
	cancelFunc context.CancelFunc
}

// NewBackupScheduler creates a new scheduler instance
func NewBackupScheduler(source BookSource, cfg config.Backup, logger *zap.Logger) *BackupScheduler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BackupScheduler{
		source: source,
		cfg:    cfg,
		logger: logger,
		now:    time.Now,
		cron:   cron.New(cron.WithParser(cronParser)),
	}
}

// Start begins the scheduler if backups are enabled. It stops when ctx is
// cancelled or Stop is called.
func (s *BackupScheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return nil
	}

	if !s.cfg.Enabled {
		s.logger.Info("Backup scheduler disabled")
		return nil
	}

	if s.cfg.Dir == "" {
		s.logger.Warn("Backup directory not configured, scheduler not started")
		return nil
	}

	if err := ValidateCronSchedule(s.cfg.Schedule); err != nil {
		return fmt.Errorf("invalid cron schedule '%s': %w", s.cfg.Schedule, err)
	}

	entryID, err := s.cron.AddFunc(s.cfg.Schedule, func() {
		if _, err := s.RunNow(); err != nil {
			s.logger.Error("Scheduled backup failed", zap.Error(err))
		}
	})
	if err != nil {
		return fmt.Errorf("failed to schedule backup job: %w", err)
	}
	s.entryID = entryID

	var cancelCtx context.Context
	cancelCtx, s.cancelFunc = context.WithCancel(ctx)

	s.cron.Start()
	s.isRunning = true

	s.logger.Info("Backup scheduler started",
		zap.String("schedule", s.cfg.Schedule),
		zap.String("dir", s.cfg.Dir),
		zap.Time("next_run", s.nextRunLocked()))

	go func() {
		<-cancelCtx.Done()
		s.Stop()
	}()

	return nil
}

// Stop waits for a running backup to finish, then stops the scheduler.
func (s *BackupScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return
	}

	ctx := s.cron.Stop()
	<-ctx.Done()

	s.isRunning = false
	if s.cancelFunc != nil {
		s.cancelFunc()
		s.cancelFunc = nil
	}

	s.logger.Info("Backup scheduler stopped")
}

// IsRunning returns whether the scheduler is active
func (s *BackupScheduler) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

// NextRunTime returns when the next backup will occur, or nil when stopped.
func (s *BackupScheduler) NextRunTime() *time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.isRunning {
		return nil
	}
	t := s.nextRunLocked()
	return &t
}

func (s *BackupScheduler) nextRunLocked() time.Time {
	for _, entry := range s.cron.Entries() {
		if entry.ID == s.entryID {
			return entry.Next
		}
	}
	return time.Time{}
}

// RunNow writes a snapshot synchronously and prunes old ones. It returns the
// snapshot path.
func (s *BackupScheduler) RunNow() (string, error) {
	s.runMu.Lock()
	defer s.runMu.Unlock()

	if s.cfg.Dir == "" {
		return "", fmt.Errorf("backup directory not configured")
	}

	start := s.now()
	books := s.source.All()
	path := filepath.Join(s.cfg.Dir, backupPrefix+start.Format(backupTimeLayout)+backupSuffix)

	if err := storage.NewJSONFile(path).Save(books); err != nil {
		return "", fmt.Errorf("write backup: %w", err)
	}

	removed, err := s.prune()
	if err != nil {
		s.logger.Warn("Failed to prune old backups", zap.Error(err))
	}

	s.logger.Info("Backup written",
		zap.String("path", path),
		zap.Int("books", len(books)),
		zap.Int("pruned", removed),
		zap.Duration("duration", time.Since(start)))
	return path, nil
}

// Snapshots lists backup files, oldest first.
func (s *BackupScheduler) Snapshots() ([]string, error) {
	entries, err := os.ReadDir(s.cfg.Dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var names []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasPrefix(name, backupPrefix) || !strings.HasSuffix(name, backupSuffix) {
			continue
		}
		names = append(names, filepath.Join(s.cfg.Dir, name))
	}
	// The timestamp layout sorts lexically.
	sort.Strings(names)
	return names, nil
}

func (s *BackupScheduler) prune() (int, error) {
	if s.cfg.Keep <= 0 {
		return 0, nil
	}

	snapshots, err := s.Snapshots()
	if err != nil {
		return 0, err
	}

	removed := 0
	for len(snapshots)-removed > s.cfg.Keep {
		if err := os.Remove(snapshots[removed]); err != nil {
			return removed, err
		}
		removed++
	}
	return removed, nil
}
