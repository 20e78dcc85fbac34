package search

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/findbrexitconsultants/directory/internal/domain"
	"github.com/findbrexitconsultants/directory/internal/domain/search/page"
	"github.com/findbrexitconsultants/directory/internal/domain/search/spec"
	"github.com/findbrexitconsultants/directory/internal/domain/search/strategy"
	"github.com/findbrexitconsultants/directory/internal/logger"
)

// DefaultServerTimeout bounds a server attempt when none is configured.
const DefaultServerTimeout = 3 * time.Second

// Outcome is a resolved page plus how it was produced.
type Outcome struct {
	Page   page.Page
	State  strategy.State
	Reason strategy.Reason
	// Notice is set when a failed server attempt was replaced by the fallback.
	Notice string
	// TaxonomyApplied is false when service or industry slugs were requested
	// but the run ended on a path that ignores them.
	TaxonomyApplied bool
}

// Coordinator runs the resolution state machine over a server and a fallback resolver.
type Coordinator struct {
	server        Resolver
	fallback      Resolver
	serverTimeout time.Duration
	recorder      Recorder
}

// NewCoordinator creates a coordinator with the default server timeout.
func NewCoordinator(server, fallback Resolver) *Coordinator {
	return &Coordinator{
		server:        server,
		fallback:      fallback,
		serverTimeout: DefaultServerTimeout,
	}
}

// WithServerTimeout bounds every server attempt. Zero or negative disables the bound.
func (c *Coordinator) WithServerTimeout(d time.Duration) *Coordinator {
	c.serverTimeout = d
	return c
}

// WithRecorder attaches an outcome observer.
func (c *Coordinator) WithRecorder(r Recorder) *Coordinator {
	c.recorder = r
	return c
}

// Resolve runs the state machine from strategy.Entry until a resolver succeeds
// or the run reaches Failed. The server attempt is never retried.
func (c *Coordinator) Resolve(ctx context.Context, s spec.Spec) (Outcome, error) {
	start := time.Now()
	log := logger.FromContext(ctx)

	state, reason := strategy.Entry(s)
	var causes []error

	for {
		switch state {
		case strategy.ServerAttempt:
			p, err := c.attemptServer(ctx, s)
			if err == nil {
				out := Outcome{Page: p, State: state, Reason: reason, TaxonomyApplied: true}
				c.observe(out.State, out.Reason, nil, start)
				return out, nil
			}
			if ctx.Err() != nil {
				c.observe(state, reason, err, start)
				return Outcome{}, fmt.Errorf("search aborted: %w", ctx.Err())
			}
			reason = reasonFor(err)
			causes = append(causes, err)
			log.Warn("Server resolver failed, switching to fallback",
				zap.String("reason", string(reason)),
				zap.Error(err),
			)
			state = advance(state, strategy.Fallback)

		case strategy.Fallback:
			p, err := c.fallback.Resolve(ctx, s)
			if err == nil {
				out := Outcome{
					Page:            p,
					State:           state,
					Reason:          reason,
					TaxonomyApplied: !s.HasTaxonomy(),
				}
				if reason != strategy.ReasonLocations {
					out.Notice = strategy.Notice
				}
				c.observe(out.State, out.Reason, nil, start)
				return out, nil
			}
			if ctx.Err() != nil {
				c.observe(state, reason, err, start)
				return Outcome{}, fmt.Errorf("search aborted: %w", ctx.Err())
			}
			causes = append(causes, err)
			log.Error("Fallback resolver failed", zap.String("reason", string(reason)), zap.Error(err))
			state = advance(state, strategy.Failed)

		default:
			err := fmt.Errorf("%w: %w", domain.ErrSearchUnavailable, errors.Join(causes...))
			c.observe(strategy.Failed, reason, err, start)
			return Outcome{State: strategy.Failed, Reason: reason}, err
		}
	}
}

// attemptServer calls the server resolver under the configured deadline.
func (c *Coordinator) attemptServer(ctx context.Context, s spec.Spec) (page.Page, error) {
	if c.serverTimeout <= 0 {
		return c.server.Resolve(ctx, s)
	}

	actx, cancel := context.WithTimeout(ctx, c.serverTimeout)
	defer cancel()

	p, err := c.server.Resolve(actx, s)
	if err != nil && ctx.Err() == nil && errors.Is(actx.Err(), context.DeadlineExceeded) {
		return page.Page{}, fmt.Errorf("%w after %s: %w", domain.ErrResolverTimeout, c.serverTimeout, err)
	}
	return p, err
}

func (c *Coordinator) observe(state strategy.State, reason strategy.Reason, err error, start time.Time) {
	if c.recorder != nil {
		c.recorder.ObserveResolution(state, reason, err, time.Since(start))
	}
}

// advance moves to the next state, or to Failed when the transition is not in the graph.
func advance(from, to strategy.State) strategy.State {
	if !strategy.IsTransitionAllowed(from, to) {
		return strategy.Failed
	}
	return to
}

func reasonFor(err error) strategy.Reason {
	switch {
	case errors.Is(err, domain.ErrResolverTimeout):
		return strategy.ReasonServerTimeout
	case errors.Is(err, domain.ErrTaxonomyLookup):
		return strategy.ReasonTaxonomy
	default:
		return strategy.ReasonServerError
	}
}
