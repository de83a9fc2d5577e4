package recognition

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
)

type readyState int

const (
	stateNotReady readyState = iota
	stateReadying
	stateReady
)

// Gate wraps a Classifier with a one-shot readiness state machine.
// The first Classify triggers training; concurrent callers block on the
// same run instead of starting their own. Training failure resets the
// gate so a later call can retry. Once ready, the gate stays ready for
// the life of the process.
type Gate struct {
	backend Classifier
	logger  *slog.Logger

	mu    sync.Mutex
	state readyState
	done  chan struct{}
}

// NewGate creates a readiness gate around the given backend.
func NewGate(backend Classifier, logger *slog.Logger) *Gate {
	return &Gate{
		backend: backend,
		logger:  logger.With("system", "classifier"),
	}
}

// Ready blocks until the backend has trained, the context expires, or
// training fails. It is idempotent: after the first success every call
// returns nil immediately.
func (g *Gate) Ready(ctx context.Context) error {
	g.mu.Lock()
	switch g.state {
	case stateReady:
		g.mu.Unlock()
		return nil
	case stateReadying:
		done := g.done
		g.mu.Unlock()
		select {
		case <-done:
			return g.Ready(ctx)
		case <-ctx.Done():
			return fmt.Errorf("%w: %w", ErrNotReady, ctx.Err())
		}
	}

	g.state = stateReadying
	g.done = make(chan struct{})
	done := g.done
	g.mu.Unlock()

	g.logger.Info("training classifier backend")
	err := g.backend.Train(ctx)

	g.mu.Lock()
	if err != nil {
		g.state = stateNotReady
	} else {
		g.state = stateReady
	}
	close(done)
	g.mu.Unlock()

	if err != nil {
		g.logger.Error("classifier training failed", "error", err)
		return fmt.Errorf("%w: %w", ErrTrainFailed, err)
	}

	g.logger.Info("classifier ready")
	return nil
}

// Train satisfies the Classifier interface by delegating to Ready.
func (g *Gate) Train(ctx context.Context) error {
	return g.Ready(ctx)
}

// Classify waits for readiness, then delegates to the backend.
func (g *Gate) Classify(ctx context.Context, text string) (Output, error) {
	if err := g.Ready(ctx); err != nil {
		return Output{}, err
	}
	return g.backend.Classify(ctx, text)
}
