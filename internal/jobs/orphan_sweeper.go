package jobs

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/forgo/circle/api/internal/service"
)

// Sweeper repairs records left pointing at deleted users
type Sweeper interface {
	SweepOrphans(ctx context.Context) (service.SweepReport, error)
}

// OrphanSweeper periodically removes posts, profiles and subscriptions that
// outlived their user because of a delete racing a create
type OrphanSweeper struct {
	sweeper  Sweeper
	interval time.Duration
	timeout  time.Duration
	logger   *slog.Logger
	stopCh   chan struct{}
	wg       sync.WaitGroup
	running  bool
	mu       sync.Mutex
}

// NewOrphanSweeper creates a new orphan sweeper job
func NewOrphanSweeper(sweeper Sweeper, interval time.Duration, logger *slog.Logger) *OrphanSweeper {
	if interval <= 0 {
		interval = 10 * time.Minute
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &OrphanSweeper{
		sweeper:  sweeper,
		interval: interval,
		timeout:  2 * time.Minute,
		logger:   logger.With(slog.String("job", "orphan_sweeper")),
		stopCh:   make(chan struct{}),
	}
}

// Start begins the sweep loop
func (j *OrphanSweeper) Start() {
	j.mu.Lock()
	if j.running {
		j.mu.Unlock()
		return
	}
	j.running = true
	j.mu.Unlock()

	j.wg.Add(1)
	go j.run()
	j.logger.Info("orphan sweeper started", slog.Duration("interval", j.interval))
}

// Stop stops the sweep loop and waits for a sweep in progress to finish.
// A stopped sweeper cannot be restarted.
func (j *OrphanSweeper) Stop() {
	j.mu.Lock()
	if !j.running {
		j.mu.Unlock()
		return
	}
	j.running = false
	j.mu.Unlock()

	close(j.stopCh)
	j.wg.Wait()
	j.logger.Info("orphan sweeper stopped")
}

func (j *OrphanSweeper) run() {
	defer j.wg.Done()

	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			j.sweep()
		case <-j.stopCh:
			return
		}
	}
}

func (j *OrphanSweeper) sweep() {
	ctx, cancel := context.WithTimeout(context.Background(), j.timeout)
	defer cancel()

	report, err := j.RunOnce(ctx)
	if err != nil {
		j.logger.Error("orphan sweep failed", slog.String("error", err.Error()))
		return
	}
	if !report.Empty() {
		j.logger.Info("orphan sweep repaired records",
			slog.Int("posts", report.PostsDeleted),
			slog.Int("profiles", report.ProfilesDeleted),
			slog.Int("subscriptions", report.SubscriptionsScrubbed),
		)
	}
}

// RunOnce runs a single sweep (for testing or manual trigger)
func (j *OrphanSweeper) RunOnce(ctx context.Context) (service.SweepReport, error) {
	return j.sweeper.SweepOrphans(ctx)
}

// IsRunning returns whether the sweep loop is running
func (j *OrphanSweeper) IsRunning() bool {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.running
}
