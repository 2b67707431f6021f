package monitoring

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/isdelr/mini-social-be/internal/services"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
)

// Snapshotter periodically zips the store file into the snapshot directory
// and prunes old snapshots past the retention count.
type Snapshotter struct {
	storePath    string
	snapshotPath string
	keep         int
	schedule     cron.Schedule
	eventSvc     services.EventServiceProvider
	ticker       *time.Ticker
	done         chan bool
	nextRunAt    time.Time
}

// NewSnapshotter creates a snapshotter driven by a standard cron expression.
func NewSnapshotter(storePath, snapshotPath, cronSpec string, keep int, eventSvc services.EventServiceProvider) (*Snapshotter, error) {
	schedule, err := cron.ParseStandard(cronSpec)
	if err != nil {
		return nil, fmt.Errorf("invalid snapshot cron expression: %w", err)
	}
	return &Snapshotter{
		storePath:    storePath,
		snapshotPath: snapshotPath,
		keep:         keep,
		schedule:     schedule,
		eventSvc:     eventSvc,
		done:         make(chan bool),
	}, nil
}

// Run starts the snapshotter's ticking loop.
func (s *Snapshotter) Run() {
	log.Info().Str("path", s.snapshotPath).Msg("Starting store snapshotter...")
	s.nextRunAt = s.schedule.Next(time.Now())
	s.ticker = time.NewTicker(1 * time.Minute)
	defer s.ticker.Stop()

	for {
		select {
		case <-s.done:
			log.Info().Msg("Stopping store snapshotter.")
			return
		case <-s.ticker.C:
			now := time.Now()
			if now.After(s.nextRunAt) {
				s.takeSnapshot()
				s.nextRunAt = s.schedule.Next(now)
			}
		}
	}
}

// Stop halts the snapshotter.
func (s *Snapshotter) Stop() {
	s.done <- true
}

// takeSnapshot zips the current store file into the snapshot directory and
// prunes old snapshots past the retention count.
func (s *Snapshotter) takeSnapshot() {
	if err := os.MkdirAll(s.snapshotPath, 0755); err != nil {
		log.Error().Err(err).Msg("Failed to create snapshot directory")
		return
	}

	name := fmt.Sprintf("store_%s.zip", time.Now().Format("20060102150405"))
	target := filepath.Join(s.snapshotPath, name)

	if err := s.zipStoreFile(target); err != nil {
		os.Remove(target) // Clean up partial file
		log.Error().Err(err).Msg("Failed to snapshot store")
		s.eventSvc.CreateEvent("system.snapshot.fail", "error", fmt.Sprintf("Store snapshot failed: %v", err), nil)
		return
	}

	log.Info().Str("snapshot", name).Msg("Store snapshot written")
	s.eventSvc.CreateEvent("system.snapshot", "info", fmt.Sprintf("Store snapshot '%s' written.", name), nil)
	s.prune()
}

func (s *Snapshotter) zipStoreFile(target string) error {
	src, err := os.Open(s.storePath)
	if err != nil {
		return fmt.Errorf("could not open store file: %w", err)
	}
	defer src.Close()

	out, err := os.Create(target)
	if err != nil {
		return fmt.Errorf("could not create snapshot file: %w", err)
	}
	defer out.Close()

	zipWriter := zip.NewWriter(out)
	writer, err := zipWriter.Create(filepath.Base(s.storePath))
	if err != nil {
		return err
	}
	if _, err = io.Copy(writer, src); err != nil {
		return err
	}
	return zipWriter.Close()
}

// prune removes the oldest snapshots beyond the retention count. Snapshot
// names embed their creation time, so lexical order is chronological.
func (s *Snapshotter) prune() {
	entries, err := os.ReadDir(s.snapshotPath)
	if err != nil {
		log.Error().Err(err).Msg("Failed to list snapshots for pruning")
		return
	}

	var names []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasPrefix(e.Name(), "store_") && strings.HasSuffix(e.Name(), ".zip") {
			names = append(names, e.Name())
		}
	}
	if len(names) <= s.keep {
		return
	}

	sort.Strings(names)
	for _, name := range names[:len(names)-s.keep] {
		if err := os.Remove(filepath.Join(s.snapshotPath, name)); err != nil {
			log.Error().Err(err).Str("snapshot", name).Msg("Failed to prune snapshot")
		}
	}
}
