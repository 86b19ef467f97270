package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/avast/retry-go/v4"

	"github.com/engimate/backend/internal/pkg/apperrors"
	"github.com/engimate/backend/internal/pkg/dberrors"
	"github.com/engimate/backend/internal/pkg/logger"
	"github.com/engimate/backend/internal/pkg/metrics"
)

// Query kinds, used as log fields and metric labels
const (
	QueryStateBand      = "state_band"
	QueryAllIndiaBand   = "all_india_band"
	QueryCollegeCutoffs = "college_cutoffs"
	QueryMeritRank      = "merit_rank"
	QueryCollegeNames   = "college_names"
	QueryCollege        = "college"
	QueryCities         = "cities"
	QueryUniversities   = "universities"
	QueryColleges       = "colleges"
)

// RetryPolicy bounds the attempts made for one store query.
// The wait after attempt n is n*Backoff.
type RetryPolicy struct {
	Attempts uint
	Backoff  time.Duration
}

// Delay returns the wait after the given 1-based attempt
func (p RetryPolicy) Delay(attempt int) time.Duration {
	return time.Duration(attempt) * p.Backoff
}

// DefaultRetryPolicy is three attempts with a 2s linear backoff
var DefaultRetryPolicy = RetryPolicy{Attempts: 3, Backoff: 2 * time.Second}

// Executor runs store queries with a per-attempt timeout and a bounded retry
// for transient failures
type Executor struct {
	policy       RetryPolicy
	queryTimeout time.Duration
}

// NewExecutor creates a new Executor. A zero queryTimeout leaves attempts bounded only by ctx.
func NewExecutor(policy RetryPolicy, queryTimeout time.Duration) *Executor {
	if policy.Attempts == 0 {
		policy.Attempts = 1
	}
	return &Executor{
		policy:       policy,
		queryTimeout: queryTimeout,
	}
}

// Do runs fn until it succeeds, fails permanently or exhausts the policy.
// fn must be safe to call again; it receives a context bound to the attempt.
// Store failures come back as apperrors.ErrStoreUnavailable; a cancelled ctx comes back as is.
func (e *Executor) Do(ctx context.Context, query string, fn func(ctx context.Context) error) error {
	start := time.Now()
	defer func() {
		metrics.StoreQueryLatency.WithLabelValues(query).Observe(time.Since(start).Seconds())
	}()

	attempt := 0
	err := retry.Do(
		func() error {
			attempt++
			attemptCtx := ctx
			if e.queryTimeout > 0 {
				var cancel context.CancelFunc
				attemptCtx, cancel = context.WithTimeout(ctx, e.queryTimeout)
				defer cancel()
			}
			return fn(attemptCtx)
		},
		retry.Context(ctx),
		retry.Attempts(e.policy.Attempts),
		retry.RetryIf(dberrors.IsTransient),
		retry.DelayType(func(_ uint, _ error, _ *retry.Config) time.Duration {
			return e.policy.Delay(attempt)
		}),
		retry.OnRetry(func(_ uint, err error) {
			if attempt >= int(e.policy.Attempts) {
				return
			}
			metrics.StoreRetries.WithLabelValues(query).Inc()
			logger.Ctx(ctx).Warn().Err(err).
				Str("query", query).
				Int("attempt", attempt).
				Dur("backoff", e.policy.Delay(attempt)).
				Msg("Transient cutoff store error, retrying")
		}),
		retry.LastErrorOnly(true),
	)
	if err == nil {
		return nil
	}

	if errors.Is(err, context.Canceled) && ctx.Err() != nil {
		return err
	}
	if errors.Is(err, ErrNotFound) {
		return err
	}

	metrics.StoreFailures.WithLabelValues(query).Inc()
	logger.Ctx(ctx).Error().Err(err).
		Str("query", query).
		Int("attempts", attempt).
		Msg("Cutoff store query failed")
	return apperrors.NewStoreUnavailableError(err)
}
