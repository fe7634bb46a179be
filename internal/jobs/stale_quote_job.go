package jobs

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// StaleQuoteJobName is the name of the stale quote cancellation job
const StaleQuoteJobName = "stale_quote_cancel"

// DefaultStaleQuoteTimeout bounds a single sweep of the stale quote job
const DefaultStaleQuoteTimeout = 5 * time.Minute

// QuoteExpiryService defines the interface for sweeping stale quote requests.
// This interface allows the job to call the service without importing the service package directly.
type QuoteExpiryService interface {
	// CancelStaleQuotes cancels quote requests that have sat in status new longer
	// than maxAge. Returns the number of quotes cancelled.
	CancelStaleQuotes(ctx context.Context, maxAge time.Duration) (int, error)
}

// StaleQuoteJob cancels quote requests that were never reviewed within the
// configured age limit.
type StaleQuoteJob struct {
	quoteService QuoteExpiryService
	logger       *zap.Logger
	maxAge       time.Duration
	timeout      time.Duration
}

// NewStaleQuoteJob creates a new stale quote cancellation job.
func NewStaleQuoteJob(quoteService QuoteExpiryService, logger *zap.Logger, maxAge time.Duration, timeout time.Duration) *StaleQuoteJob {
	return &StaleQuoteJob{
		quoteService: quoteService,
		logger:       logger,
		maxAge:       maxAge,
		timeout:      timeout,
	}
}

// Run executes one sweep. This is called by the scheduler according to the
// cron expression.
func (j *StaleQuoteJob) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), j.timeout)
	defer cancel()

	start := time.Now()
	j.logger.Info("starting stale quote sweep",
		zap.Duration("max_age", j.maxAge))

	cancelled, err := j.quoteService.CancelStaleQuotes(ctx, j.maxAge)
	if err != nil {
		j.logger.Error("stale quote sweep failed",
			zap.Error(err),
			zap.Int("cancelled", cancelled),
			zap.Duration("duration", time.Since(start)))
		return
	}

	j.logger.Info("stale quote sweep completed",
		zap.Int("cancelled", cancelled),
		zap.Duration("duration", time.Since(start)))
}

// RegisterStaleQuoteJob registers the stale quote cancellation job with the
// scheduler. The cronExpr should be a valid cron expression with seconds field
// (e.g., "0 0 3 * * *" for 03:00 every day). If runOnStartup is true, a sweep
// also runs immediately in a background goroutine so it doesn't block API
// startup.
func RegisterStaleQuoteJob(scheduler *Scheduler, quoteService QuoteExpiryService, logger *zap.Logger, cronExpr string, maxAge time.Duration, runOnStartup bool) error {
	job := NewStaleQuoteJob(quoteService, logger, maxAge, DefaultStaleQuoteTimeout)

	if runOnStartup {
		go job.Run()
	}

	return scheduler.AddJob(StaleQuoteJobName, cronExpr, job.Run)
}
