package mend

import (
	"fmt"
	"path/filepath"
	"strings"

	"fortio.org/safecast"
	"go.uber.org/zap"

	"typemend/internal/analysis"
	"typemend/internal/fix"
	"typemend/internal/logger"
	"typemend/internal/source"
)

const stubPrefix = "handle"

// Stub returns the placeholder declaration inserted for name.
func Stub(name string) string {
	return "\nconst " + name + " = () => {\n  // TODO: Implement\n};\n\n"
}

// declared reports whether content already binds name with const or function.
func declared(content, name string) bool {
	return strings.Contains(content, "const "+name) || strings.Contains(content, "function "+name)
}

// planStubs inserts stubs for missing handlers into the first Limit files
// of the report. Only handle-prefixed names in files with a binding marker
// get a stub; they are placed before the first insertion marker.
func (p *Planner) planStubs(r *analysis.Report, plan *Plan) error {
	cfg := p.Manifest.Config.Stubs
	sourceDir := p.Manifest.SourceDir()

	paths := r.FilesToFix.Paths()
	if cfg.Limit > 0 && len(paths) > cfg.Limit {
		logger.L().Info("stub file limit reached",
			zap.Int("limit", cfg.Limit),
			zap.Int("ignored", len(paths)-cfg.Limit),
		)
		paths = paths[:cfg.Limit]
	}

	for _, rel := range paths {
		full := filepath.Join(sourceDir, filepath.FromSlash(rel))
		id, err := p.Files.LoadOrMissing(full)
		if err != nil {
			return fmt.Errorf("load %s: %w", full, err)
		}
		file := p.Files.Get(id)
		display := p.display(id)
		if file.Missing() {
			plan.add(Record{
				Phase:   PhaseStubs,
				Status:  StatusSkipped,
				Subject: rel,
				Path:    display,
				Message: "file not found",
			})
			continue
		}

		content := string(file.Content)
		bound := cfg.BindingMarker == "" || strings.Contains(content, cfg.BindingMarker)

		var existing, names []string
		for _, name := range r.FilesToFix.Distinct(rel) {
			switch {
			case declared(content, name):
				existing = append(existing, name)
			case !bound || !strings.HasPrefix(name, stubPrefix):
				logger.L().Debug("no stub for function",
					zap.String("file", display),
					zap.String("name", name),
					zap.Bool("binding_marker", bound),
				)
			default:
				names = append(names, name)
			}
		}

		if len(existing) > 0 {
			plan.add(Record{
				Phase:   PhaseStubs,
				Status:  StatusSkipped,
				Subject: rel,
				Path:    display,
				Message: "already declared",
				Items:   existing,
			})
		}
		if len(names) == 0 {
			continue
		}

		at := strings.Index(content, cfg.InsertionMarker)
		if at < 0 {
			plan.add(Record{
				Phase:   PhaseStubs,
				Status:  StatusWarning,
				Subject: rel,
				Path:    display,
				Message: fmt.Sprintf("no %s found, stubs not inserted", cfg.InsertionMarker),
				Items:   names,
			})
			continue
		}

		span, err := markerSpan(id, at, cfg.InsertionMarker)
		if err != nil {
			return fmt.Errorf("%s: %w", display, err)
		}
		f := stubsFix(span, cfg.InsertionMarker, rel, names)
		plan.Fixes = append(plan.Fixes, f)
		plan.add(Record{
			Phase:   PhaseStubs,
			Status:  StatusPlanned,
			Subject: rel,
			Path:    display,
			Message: fmt.Sprintf("added %d function stubs", len(names)),
			Items:   names,
			FixID:   f.ID,
		})
	}
	return nil
}

func markerSpan(id source.FileID, at int, marker string) (source.Span, error) {
	start, err := safecast.Conv[uint32](at)
	if err != nil {
		return source.Span{}, fmt.Errorf("marker offset overflow: %w", err)
	}
	end, err := safecast.Conv[uint32](at + len(marker))
	if err != nil {
		return source.Span{}, fmt.Errorf("marker offset overflow: %w", err)
	}
	return source.Span{File: id, Start: start, End: end}, nil
}

// stubsFix inserts all stubs for one file in front of the marker covered by span.
func stubsFix(span source.Span, marker, rel string, names []string) fix.Fix {
	var b strings.Builder
	for _, name := range names {
		b.WriteString(Stub(name))
	}
	b.WriteString(marker)

	return fix.ReplaceSpan(
		fmt.Sprintf("stub %d handlers in %s", len(names), rel),
		span,
		b.String(),
		marker,
		fix.WithID("stubs:"+rel),
		fix.WithKind(fix.FixKindStub),
		fix.WithApplicability(fix.FixApplicabilityManualReview),
	)
}
