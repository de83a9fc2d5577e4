package api

import (
	"context"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/seren-app/seren/internal/alerts"
	"github.com/seren-app/seren/internal/emotions"
	"github.com/seren-app/seren/internal/lexicons"
	"github.com/seren-app/seren/internal/reports"
)

// Domain holds all domain systems that comprise the API.
type Domain struct {
	Emotions emotions.System
	Alerts   alerts.System
	Lexicons lexicons.System
	Reports  reports.System

	runtime *Runtime
}

// evaluator bridges record persistence to alert evaluation. The alerts
// system is attached after construction; both sides exist before any
// request is served.
type evaluator struct {
	alerts alerts.System
}

func (e *evaluator) Evaluate(ctx context.Context, subjectID uuid.UUID) error {
	if e.alerts == nil {
		return nil
	}
	_, err := e.alerts.Evaluate(ctx, subjectID)
	return err
}

// NewDomain creates all domain systems from the API runtime.
func NewDomain(runtime *Runtime) *Domain {
	eval := &evaluator{}

	emotionsSystem := emotions.New(
		runtime.Database.Connection(),
		runtime.Recognizer,
		runtime.Storage,
		eval,
		runtime.Logger,
		runtime.Pagination,
	)

	alertsSystem := alerts.New(
		runtime.Database.Connection(),
		emotionsSystem,
		runtime.Logger,
		runtime.Pagination,
	)
	eval.alerts = alertsSystem

	lexiconsSystem := lexicons.New(
		runtime.Database.Connection(),
		runtime.Recognizer,
		runtime.Logger,
		runtime.Pagination,
	)

	reportsSystem := reports.New(
		runtime.Database.Connection(),
		runtime.Logger,
	)

	return &Domain{
		Emotions: emotionsSystem,
		Alerts:   alertsSystem,
		Lexicons: lexiconsSystem,
		Reports:  reportsSystem,
		runtime:  runtime,
	}
}

// Warm trains the classifier backend and loads the stored lexicon
// concurrently so the first request does not pay the startup cost.
func (d *Domain) Warm(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return d.runtime.Recognizer.Warm(ctx)
	})

	g.Go(func() error {
		lx, err := d.Lexicons.Compile(ctx)
		if err != nil {
			return err
		}
		d.runtime.Recognizer.SetLexicon(lx)
		return nil
	})

	return g.Wait()
}
