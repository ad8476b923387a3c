package workers

import (
	"context"
	"sync"
	"time"

	"github.com/MKhiriev/go-benefit-portal/internal/logger"
	"github.com/MKhiriev/go-benefit-portal/internal/store"
)

// ErrorClassificator mirrors the store-level retry classification so the
// pruner can decide whether a failed sweep is worth retrying before the next
// tick.
type ErrorClassificator interface {
	Classify(err error) store.ErrorClassification
}

// SessionPruner periodically removes expired session rows. Sessions are
// rejected at authentication time regardless, so a missed sweep is never a
// security issue; the pruner only keeps the table from growing unbounded.
type SessionPruner struct {
	sessions   store.SessionRepository
	classifier ErrorClassificator
	interval   time.Duration
	retryDelay time.Duration
	logger     *logger.Logger

	done     chan struct{}
	stopOnce sync.Once
}

// NewSessionPruner constructs a pruner sweeping at the given interval.
func NewSessionPruner(sessions store.SessionRepository, classifier ErrorClassificator, interval time.Duration, logger *logger.Logger) *SessionPruner {
	return &SessionPruner{
		sessions:   sessions,
		classifier: classifier,
		interval:   interval,
		retryDelay: 5 * time.Second,
		logger:     logger,
		done:       make(chan struct{}),
	}
}

// Run sweeps once immediately and then on every tick until ctx is cancelled
// or Stop is called.
func (p *SessionPruner) Run(ctx context.Context) {
	p.logger.Info().Dur("interval", p.interval).Msg("session pruner started")

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	p.sweep(ctx)

	for {
		select {
		case <-ctx.Done():
			p.logger.Info().Msg("session pruner stopped")
			return
		case <-p.done:
			p.logger.Info().Msg("session pruner stopped")
			return
		case <-ticker.C:
			p.sweep(ctx)
		}
	}
}

// Stop terminates the Run loop. Safe to call more than once.
func (p *SessionPruner) Stop() {
	p.stopOnce.Do(func() {
		close(p.done)
	})
}

// sweep deletes expired rows once, retrying a single time after retryDelay
// when the failure is classified as retryable.
func (p *SessionPruner) sweep(ctx context.Context) {
	deleted, err := p.sessions.DeleteExpired(ctx, time.Now())
	if err == nil {
		if deleted > 0 {
			p.logger.Info().Int64("deleted", deleted).Msg("pruned expired sessions")
		}
		return
	}

	if p.classifier == nil || p.classifier.Classify(err) != store.Retryable {
		p.logger.Err(err).Msg("session sweep failed")
		return
	}

	p.logger.Warn().Err(err).Dur("retry_in", p.retryDelay).Msg("session sweep failed, retrying")

	select {
	case <-ctx.Done():
		return
	case <-p.done:
		return
	case <-time.After(p.retryDelay):
	}

	if deleted, err = p.sessions.DeleteExpired(ctx, time.Now()); err != nil {
		p.logger.Err(err).Msg("session sweep retry failed")
		return
	}
	if deleted > 0 {
		p.logger.Info().Int64("deleted", deleted).Msg("pruned expired sessions")
	}
}
