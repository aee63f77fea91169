package worker

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/jwalitptl/patient-api/internal/repository"
	"github.com/jwalitptl/patient-api/pkg/metrics"
)

// PolicyExpiryWorker periodically marks policies whose coverage window has
// ended. Reads always derive the effective status on the fly; the sweep only
// keeps the stored rows from drifting too far behind.
type PolicyExpiryWorker struct {
	repo     repository.InsurancePolicyRepository
	interval time.Duration
	metrics  *metrics.Metrics
}

func NewPolicyExpiryWorker(repo repository.InsurancePolicyRepository, interval time.Duration, m *metrics.Metrics) *PolicyExpiryWorker {
	return &PolicyExpiryWorker{
		repo:     repo,
		interval: interval,
		metrics:  m,
	}
}

func (w *PolicyExpiryWorker) Start(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	log.Info().Dur("interval", w.interval).Msg("policy expiry worker started")

	w.sweep(ctx)
	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("policy expiry worker stopped")
			return
		case <-ticker.C:
			w.sweep(ctx)
		}
	}
}

func (w *PolicyExpiryWorker) sweep(ctx context.Context) {
	start := time.Now()
	expired, err := w.repo.MarkExpired(ctx, start.UTC())
	w.metrics.DatabaseLatency.WithLabelValues("mark_expired").Observe(time.Since(start).Seconds())
	if err != nil {
		w.metrics.DatabaseOperations.WithLabelValues("mark_expired", "error").Inc()
		log.Error().Err(err).Msg("policy expiry sweep failed")
		return
	}
	w.metrics.DatabaseOperations.WithLabelValues("mark_expired", "success").Inc()
	if expired > 0 {
		w.metrics.PoliciesExpired.Add(float64(expired))
		log.Info().Int64("policies", expired).Msg("marked policies expired")
	}
}
