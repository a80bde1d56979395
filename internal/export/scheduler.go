package export

import (
	"bytes"
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Scheduler runs an export to one or more destinations, once or periodically.
type Scheduler struct {
	exporter     *Exporter
	destinations []Destination
	interval     time.Duration
	logger       *zap.Logger

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewScheduler creates a scheduler that exports to the given destinations at
// the given interval.
func NewScheduler(e *Exporter, destinations []Destination, interval time.Duration, logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Scheduler{
		exporter:     e,
		destinations: destinations,
		interval:     interval,
		logger:       logger,
	}
}

// RunOnce exports and writes to every destination.
func (s *Scheduler) RunOnce(ctx context.Context) (Summary, error) {
	var buf bytes.Buffer
	summary, err := s.exporter.WriteJSONL(ctx, &buf)
	if err != nil {
		s.logger.Error("export failed", zap.Error(err))
		return summary, err
	}

	failed := WriteAll(ctx, buf.Bytes(), s.destinations)
	for _, err := range failed {
		s.logger.Error("export destination write failed", zap.Error(err))
	}
	s.logger.Info("export completed",
		zap.Int("dogs", summary.Dogs),
		zap.Int("pages", summary.Pages),
		zap.Int("destinations", len(s.destinations)-len(failed)),
		zap.Int("bytes", buf.Len()),
	)
	return summary, errors.Join(failed...)
}

// Start begins periodic export. It runs once immediately, then on each tick.
func (s *Scheduler) Start() {
	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.run(ctx)
	}()
}

// Stop cancels the scheduler and waits for the current export (if any) to finish.
func (s *Scheduler) Stop() {
	if s.cancel != nil {
		s.cancel()
	}
	s.wg.Wait()
}

func (s *Scheduler) run(ctx context.Context) {
	_, _ = s.RunOnce(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			_, _ = s.RunOnce(ctx)
		}
	}
}
