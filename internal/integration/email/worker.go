// Package email implements the outbound email pipeline: a database-backed
// queue written to inside request handlers and drained by a background
// delivery worker, so provider outages never block an API response.
package email

import (
	"context"
	"log/slog"
	"time"

	"github.com/minn-platform/backend/internal/application/adapter"
	"github.com/minn-platform/backend/internal/domain/entity"
	domainerror "github.com/minn-platform/backend/internal/domain/error"
	"github.com/minn-platform/backend/internal/integration/email/templates"
)

// purgeEvery spaces out cleanup passes over old sent jobs.
const purgeEvery = time.Hour

// WorkerConfig tunes the delivery worker.
type WorkerConfig struct {
	// PollInterval is how often the queue is checked for due jobs.
	PollInterval time.Duration

	// BatchSize caps how many jobs one poll picks up.
	BatchSize int

	// SendTimeout bounds a single provider call.
	SendTimeout time.Duration

	// Retention is how long sent jobs are kept before being purged.
	Retention time.Duration
}

// DefaultWorkerConfig returns the tuning used in production.
func DefaultWorkerConfig() WorkerConfig {
	return WorkerConfig{
		PollInterval: 5 * time.Second,
		BatchSize:    10,
		SendTimeout:  30 * time.Second,
		Retention:    7 * 24 * time.Hour,
	}
}

// Worker drains the email queue: it renders due jobs, hands them to the
// provider and books the outcome back into the queue.
type Worker struct {
	queue     adapter.EmailQueueRepository
	sender    adapter.EmailSender
	library   *templates.Library
	cfg       WorkerConfig
	lastPurge time.Time
}

// NewWorker creates a delivery worker. Zero config fields fall back to the
// defaults.
func NewWorker(queue adapter.EmailQueueRepository, sender adapter.EmailSender, library *templates.Library, cfg WorkerConfig) *Worker {
	def := DefaultWorkerConfig()
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = def.PollInterval
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = def.BatchSize
	}
	if cfg.SendTimeout <= 0 {
		cfg.SendTimeout = def.SendTimeout
	}
	if cfg.Retention <= 0 {
		cfg.Retention = def.Retention
	}

	return &Worker{
		queue:   queue,
		sender:  sender,
		library: library,
		cfg:     cfg,
	}
}

// Start runs the delivery loop until ctx is cancelled. One pass runs
// immediately so mail queued before startup is not delayed by the first
// tick.
func (w *Worker) Start(ctx context.Context) {
	slog.Info("email worker started",
		"poll_interval", w.cfg.PollInterval,
		"batch_size", w.cfg.BatchSize,
	)

	ticker := time.NewTicker(w.cfg.PollInterval)
	defer ticker.Stop()

	w.drainDue(ctx)

	for {
		select {
		case <-ctx.Done():
			slog.Info("email worker stopped")
			return
		case <-ticker.C:
			w.drainDue(ctx)
			w.maybePurge(ctx)
		}
	}
}

// ProcessNow runs a single queue pass synchronously.
func (w *Worker) ProcessNow(ctx context.Context) {
	w.drainDue(ctx)
}

func (w *Worker) drainDue(ctx context.Context) {
	jobs, err := w.queue.DuePending(ctx, w.cfg.BatchSize)
	if err != nil {
		slog.Error("email queue poll failed", "error", err)
		return
	}

	for _, job := range jobs {
		if ctx.Err() != nil {
			return
		}
		w.deliver(ctx, job)
	}
}

// deliver renders and sends one job, then books the outcome.
func (w *Worker) deliver(ctx context.Context, job *entity.EmailJob) {
	logger := slog.With(
		"job_id", job.ID,
		"template", job.Template,
		"recipient", job.RecipientEmail,
	)

	job.MarkProcessing()
	if err := w.queue.Update(ctx, job); err != nil {
		logger.Error("claiming email job failed", "error", err)
		return
	}

	body, err := w.library.Render(string(job.Template), job.TemplateData)
	if err != nil {
		logger.Error("rendering email failed", "error", err)
		w.recordFailure(ctx, job, err)
		return
	}

	sendCtx, cancel := context.WithTimeout(ctx, w.cfg.SendTimeout)
	providerID, err := w.sender.Send(sendCtx, adapter.OutboundEmail{
		To:      job.RecipientEmail,
		ToName:  job.RecipientName,
		Subject: job.Subject,
		HTML:    body.HTML,
		Text:    body.Text,
	})
	cancel()
	if err != nil {
		logger.Error("sending email failed", "error", err)
		w.recordFailure(ctx, job, err)
		return
	}

	job.MarkSent(providerID)
	if err := w.queue.Update(ctx, job); err != nil {
		logger.Error("recording sent email failed", "error", err)
		return
	}

	logger.Info("email sent", "provider_id", providerID)
}

// recordFailure books the failed attempt and either reschedules the job or
// abandons it.
func (w *Worker) recordFailure(ctx context.Context, job *entity.EmailJob, cause error) {
	job.RecordFailure(cause, domainerror.IsPermanentEmailError(cause))

	if err := w.queue.Update(ctx, job); err != nil {
		slog.Error("recording email failure failed", "job_id", job.ID, "error", err)
		return
	}

	if job.Status == entity.EmailStatusFailed {
		slog.Warn("email abandoned",
			"job_id", job.ID,
			"attempts", job.Attempts,
			"last_error", job.LastError,
		)
		return
	}

	slog.Info("email retry scheduled",
		"job_id", job.ID,
		"attempts", job.Attempts,
		"next_attempt", job.ScheduledAt,
	)
}

// maybePurge deletes old sent jobs at most once per purge interval.
func (w *Worker) maybePurge(ctx context.Context) {
	now := time.Now().UTC()
	if now.Sub(w.lastPurge) < purgeEvery {
		return
	}
	w.lastPurge = now

	deleted, err := w.queue.PurgeSentBefore(ctx, now.Add(-w.cfg.Retention))
	if err != nil {
		slog.Error("purging sent emails failed", "error", err)
		return
	}
	if deleted > 0 {
		slog.Info("purged sent emails", "count", deleted)
	}
}
