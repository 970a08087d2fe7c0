package runner

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/opentracing/opentracing-go"

	"earnsim/internal/models"
	"earnsim/internal/notify"
	"earnsim/internal/order"
	"earnsim/internal/sim"
	"earnsim/pkg/logger"
)

// Store is the persistence collaborator for one batch run.
type Store interface {
	Outputs(ctx context.Context) ([]models.LLMOutput, error)
	Earnings(ctx context.Context, symbol, quarter string) (*models.EarningsRecord, error)
	SaveResult(ctx context.Context, res *models.SimulationResult) error
	InsertOutputs(ctx context.Context, outs []models.LLMOutput) error
}

// Runner drives one batch: optional TSV import, then an independent
// parse -> validate -> simulate pipeline per record. Records share nothing,
// so a rejection or data gap is recorded on its row and never stops the
// batch.
type Runner struct {
	store    Store
	sim      *sim.Simulator
	n        notify.Notifier
	manifest *Manifest
	workers  int
}

func New(store Store, s *sim.Simulator, n notify.Notifier, manifest *Manifest, workers int) *Runner {
	if workers <= 0 {
		workers = 1
	}
	return &Runner{
		store:    store,
		sim:      s,
		n:        n,
		manifest: manifest,
		workers:  workers,
	}
}

func (r *Runner) Run(ctx context.Context) error {
	if r.manifest != nil && r.manifest.Input != "" {
		if err := r.importAnswers(ctx); err != nil {
			return err
		}
	}

	outs, err := r.store.Outputs(ctx)
	if err != nil {
		return err
	}
	logger.Info("working on %d records", len(outs))

	queue := make(chan models.LLMOutput)
	var wg sync.WaitGroup
	var rejected atomic.Int64
	for i := 0; i < r.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for out := range queue {
				res := r.evaluate(ctx, out)
				if res.Err != nil {
					rejected.Add(1)
					logger.Warn("%s %s %s: %v",
						out.Key.Symbol, out.Key.Quarter, out.Key.Model, res.Err)
				}
				if err := r.store.SaveResult(ctx, res); err != nil {
					logger.Error("save %s %s %s: %v",
						out.Key.Symbol, out.Key.Quarter, out.Key.Model, err)
				}
			}
		}()
	}

feed:
	for _, out := range outs {
		select {
		case <-ctx.Done():
			break feed
		case queue <- out:
		}
	}
	close(queue)
	wg.Wait()

	r.n.Sendf("batch done: %d records, %d rejected", len(outs), rejected.Load())
	return ctx.Err()
}

func (r *Runner) importAnswers(ctx context.Context) error {
	raw, err := os.ReadFile(r.manifest.Input)
	if err != nil {
		return fmt.Errorf("read answers: %w", err)
	}
	outs := ParseAnswers(strings.Split(string(raw), "\n"), r.manifest.Models)
	logger.Info("importing %d answers from %s", len(outs), r.manifest.Input)
	return r.store.InsertOutputs(ctx, outs)
}

// evaluate runs the full pipeline for one record. Every outcome is a
// result row: either entry/exit/profit or a recorded rejection, never
// both empty.
func (r *Runner) evaluate(ctx context.Context, out models.LLMOutput) *models.SimulationResult {
	span, ctx := opentracing.StartSpanFromContext(ctx, "evaluate")
	defer span.Finish()
	span.SetTag("symbol", out.Key.Symbol)
	span.SetTag("quarter", out.Key.Quarter)
	span.SetTag("model", out.Key.Model)

	res := &models.SimulationResult{Key: out.Key}

	var po models.ParsedOrder
	switch {
	case out.Text != "":
		matches, err := order.Extract(out.Text)
		if err != nil {
			res.Err = err
			return res
		}
		for _, m := range matches {
			res.Orders = append(res.Orders, m.Text)
		}
		po = matches[len(matches)-1]
	case out.Order == "":
		res.Err = order.ErrNoOrder
		return res
	default:
		var err error
		po, err = order.ParseLine(out.Order)
		if err != nil {
			res.Err = err
			return res
		}
		res.Orders = []string{po.Text}
	}

	rec, err := r.store.Earnings(ctx, out.Key.Symbol, out.Key.Quarter)
	if err != nil {
		res.Err = err
		return res
	}
	if len(rec.Books) == 0 {
		res.Err = sim.ErrMissingBookData
		return res
	}

	pos, err := order.Validate(po, out.Key.Symbol, rec.Books[0])
	if err != nil {
		res.Err = err
		return res
	}
	res.Entry = pos
	if pos.Side == models.SideNeither {
		return res // profit and return stay zero, no exit
	}

	exit, err := r.sim.Run(ctx, rec, pos)
	if err != nil {
		res.Err = err
		return res
	}
	res.Exit = &exit
	res.Profit, res.Return = sim.Score(pos, exit)
	return res
}
