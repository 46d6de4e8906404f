package mend

import (
	"context"
	"fmt"
	"runtime"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"typemend/internal/analysis"
	"typemend/internal/logger"
	"typemend/internal/project"
	"typemend/internal/source"
	"typemend/internal/tsast"
)

// Planner produces fixes for the files of one project.
type Planner struct {
	Manifest *project.Manifest
	Files    *source.FileSet
	Phases   Phases
	// Parallelism bounds concurrent parsing; zero means GOMAXPROCS capped at 4.
	Parallelism int
}

// NewPlanner returns a planner whose file set renders paths relative to the
// manifest root.
func NewPlanner(m *project.Manifest, phases Phases) *Planner {
	return &Planner{
		Manifest: m,
		Files:    source.NewFileSetWithBase(m.Root),
		Phases:   phases,
	}
}

// Plan runs the enabled phases over r in order: interfaces, templates, stubs.
// Problems with individual items become records; only I/O failures and
// invalid configuration are returned as errors.
func (p *Planner) Plan(ctx context.Context, r *analysis.Report) (*Plan, error) {
	plan := &Plan{}
	if p.Phases.Has(PhaseInterfaces) {
		if err := p.planInterfaces(ctx, r, plan); err != nil {
			return nil, err
		}
	}
	if p.Phases.Has(PhaseTemplates) {
		if err := p.planTemplates(plan); err != nil {
			return nil, err
		}
	}
	if p.Phases.Has(PhaseStubs) {
		if err := p.planStubs(r, plan); err != nil {
			return nil, err
		}
	}
	logger.L().Debug("plan ready",
		zap.Int("fixes", len(plan.Fixes)),
		zap.Int("records", len(plan.Records)),
	)
	return plan, nil
}

func (p *Planner) parallelism() int {
	if p.Parallelism > 0 {
		return p.Parallelism
	}
	return min(runtime.GOMAXPROCS(0), 4)
}

// parseAll parses files concurrently; results keep the order of ids.
func (p *Planner) parseAll(ctx context.Context, ids []source.FileID) ([]*tsast.File, error) {
	out := make([]*tsast.File, len(ids))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(p.parallelism())
	for i, id := range ids {
		f := p.Files.Get(id)
		g.Go(func() error {
			parsed, err := tsast.Parse(ctx, f.Path, f.Content)
			if err != nil {
				return err
			}
			if parsed.HasErrors {
				logger.L().Debug("syntax errors in type file", zap.String("path", f.Path))
			}
			out[i] = parsed
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("parse type files: %w", err)
	}
	return out, nil
}

func (p *Planner) display(id source.FileID) string {
	return p.Files.Display(id)
}
