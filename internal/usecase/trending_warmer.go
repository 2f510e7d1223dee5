package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"StockSight/pkg/cache"
	applogger "StockSight/pkg/logger"
)

const (
	warmLockKey = "lock:trending-warm"
	warmTimeout = 30 * time.Second
)

// TrendingWarmer refreshes the trending cache on a cron schedule.
// With a shared Redis cache only one replica warms per tick.
type TrendingWarmer struct {
	cron     *cron.Cron
	stocks   *StockUseCase
	locker   cache.Service
	schedule string
	l        *applogger.Logger
}

func NewTrendingWarmer(schedule string, stocks *StockUseCase, locker cache.Service, l *applogger.Logger) *TrendingWarmer {
	return &TrendingWarmer{
		cron:     cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		stocks:   stocks,
		locker:   locker,
		schedule: schedule,
		l:        l,
	}
}

// Start registers the job and starts the scheduler. An empty schedule disables warming.
func (w *TrendingWarmer) Start() error {
	if w.schedule == "" {
		w.l.Info("trending warmer disabled")
		return nil
	}
	if _, err := w.cron.AddFunc(w.schedule, w.RunOnce); err != nil {
		return fmt.Errorf("register trending warmer: %w", err)
	}
	w.cron.Start()
	w.l.Info("trending warmer started", applogger.String("schedule", w.schedule))
	return nil
}

// Stop halts scheduling and waits for a running job until ctx is done.
func (w *TrendingWarmer) Stop(ctx context.Context) {
	done := w.cron.Stop()
	select {
	case <-done.Done():
	case <-ctx.Done():
	}
	w.l.Info("trending warmer stopped")
}

// RunOnce warms the trending cache immediately.
func (w *TrendingWarmer) RunOnce() {
	ctx, cancel := context.WithTimeout(context.Background(), warmTimeout)
	defer cancel()

	if w.locker != nil {
		ok, err := w.locker.TryLock(ctx, warmLockKey, warmTimeout)
		if err != nil {
			w.l.Warn("trending warmer lock failed", applogger.Error(err))
			return
		}
		if !ok {
			w.l.Debug("trending warmer skipped, lock held elsewhere")
			return
		}
		defer func() { _ = w.locker.Unlock(context.Background(), warmLockKey) }()
	}

	start := time.Now()
	n, err := w.stocks.WarmTrending(ctx)
	if err != nil {
		w.l.Error("trending warm failed", applogger.Error(err))
		return
	}
	w.l.Debug("trending warmed", applogger.Int("quotes", n), applogger.Duration("took", time.Since(start)))
}
