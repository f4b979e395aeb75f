package protocol

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Danielskry/SpectralZK/config"
	"github.com/Danielskry/SpectralZK/proving"
)

// TrialResult summarizes one independent session of a trial run.
type TrialResult struct {
	Session    uuid.UUID
	Seed       int64
	PathLength int
	Revealed   int
	Verified   bool
	Duration   time.Duration
}

type TrialsReport struct {
	Results   []TrialResult
	Successes int
	Elapsed   time.Duration
}

// SuccessRate is the fraction of verified sessions, 0 for an empty report.
func (r *TrialsReport) SuccessRate() float64 {
	if len(r.Results) == 0 {
		return 0
	}
	return float64(r.Successes) / float64(len(r.Results))
}

// MinMaxAvg returns the shortest, longest and mean session duration.
func (r *TrialsReport) MinMaxAvg() (lo, hi, avg time.Duration) {
	if len(r.Results) == 0 {
		return 0, 0, 0
	}
	lo = r.Results[0].Duration
	var total time.Duration
	for _, res := range r.Results {
		lo = min(lo, res.Duration)
		hi = max(hi, res.Duration)
		total += res.Duration
	}
	return lo, hi, total / time.Duration(len(r.Results))
}

// RunTrials executes n independent sessions with at most cfg.Parallelism running at once.
// Trial i uses the tiling seed base+i, where base is cfg.Seed or 0. A WithSeed option is ignored.
func RunTrials(ctx context.Context, cfg config.Config, n int, opts ...OptionFunc) (*TrialsReport, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if n < 0 {
		return nil, fmt.Errorf("protocol: invalid number of trials: %d", n)
	}

	options := defaultOpts()
	for _, opt := range opts {
		if err := opt(options); err != nil {
			return nil, err
		}
	}
	if err := options.validate(); err != nil {
		return nil, err
	}
	logger := options.logger

	var rnd io.Reader
	if options.rand != nil {
		rnd = &lockedReader{r: options.rand}
	}

	var base int64
	if cfg.Seed != nil {
		base = *cfg.Seed
	}

	report := &TrialsReport{Results: make([]TrialResult, n)}
	start := time.Now()

	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(cfg.Parallelism)
	for i := 0; i < n; i++ {
		i := i
		eg.Go(func() error {
			if err := egCtx.Err(); err != nil {
				return err
			}
			res, err := runTrial(egCtx, cfg, base+int64(i), rnd, logger)
			if err != nil {
				return fmt.Errorf("trial %d: %w", i, err)
			}
			report.Results[i] = *res
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	for _, res := range report.Results {
		if res.Verified {
			report.Successes++
		}
	}
	report.Elapsed = time.Since(start)

	logger.Info("protocol: trials completed",
		zap.Int("trials", n),
		zap.Int("successes", report.Successes),
		zap.Duration("elapsed", report.Elapsed),
	)
	return report, nil
}

func runTrial(ctx context.Context, cfg config.Config, seed int64, rnd io.Reader, logger *zap.Logger) (*TrialResult, error) {
	session, err := uuid.NewRandom()
	if err != nil {
		return nil, fmt.Errorf("session id: %w", err)
	}
	logger = logger.With(zap.Stringer("session", session))

	p, err := New(WithSeed(seed), WithRandomness(rnd), WithLogger(logger))
	if err != nil {
		return nil, err
	}

	t := time.Now()
	transcript, err := p.Run(ctx, cfg, proving.WithLogger(logger))
	if err != nil {
		return nil, err
	}

	revealed := 0
	for _, rs := range transcript.Response.RevealedSteps {
		if rs.Present() {
			revealed++
		}
	}

	return &TrialResult{
		Session:    session,
		Seed:       seed,
		PathLength: transcript.Response.PathLength,
		Revealed:   revealed,
		Verified:   transcript.Verified,
		Duration:   time.Since(t),
	}, nil
}

type lockedReader struct {
	mu sync.Mutex
	r  io.Reader
}

func (l *lockedReader) Read(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.r.Read(p)
}
