package main

import (
	"path"
	"strconv"
	"strings"

	"typemend/internal/analysis"
	"typemend/internal/diag"
	"typemend/internal/fix"
	"typemend/internal/mend"
	"typemend/internal/ui"
)

const topCodes = 10

func printDistribution(p *ui.Printer, r *analysis.Report) {
	p.Infof("📊 Error Distribution:\n\n")
	rows := make([][]string, 0, topCodes)
	for _, cc := range r.TopCodes(topCodes) {
		code := diag.Code(cc.Code)
		rows = append(rows, []string{cc.Code, strconv.Itoa(cc.Count), code.Category(), code.Title()})
	}
	p.Table([]string{"Code", "Count", "Category", "Description"}, rows)
	p.Infof("\n📁 Missing Props: %d interfaces\n", len(r.MissingProps))
	p.Infof("🔧 Files with Function Issues: %d\n", r.FilesToFix.Len())
}

func printPhase(p *ui.Printer, plan *mend.Plan, phase mend.Phase, skipped map[string]fix.SkippedFix, tally mend.Tally) {
	p.Header(phase.Title())
	for _, r := range plan.PhaseRecords(phase) {
		if s, ok := skipped[r.FixID]; ok && r.Status == mend.StatusPlanned {
			p.Status(ui.LevelWarn, "%s: not applied (%s)", recordSubject(r), s.Reason)
			continue
		}
		printRecord(p, r)
	}

	switch phase {
	case mend.PhaseInterfaces:
		p.Printf("\n✅ Added %d missing props\n", tally.PropsAdded)
	case mend.PhaseTemplates:
		p.Printf("\n✅ Created %d of %d type files\n", tally.TemplatesCreated, tally.TemplateTargets)
	case mend.PhaseStubs:
		p.Printf("\n✅ Added %d function declarations\n", tally.StubsAdded)
	}
}

func recordSubject(r mend.Record) string {
	if r.Phase == mend.PhaseInterfaces && r.Path != "" {
		return r.Subject + " (" + path.Base(r.Path) + ")"
	}
	return r.Subject
}

func printRecord(p *ui.Printer, r mend.Record) {
	items := strings.Join(r.Items, ", ")
	switch r.Phase {
	case mend.PhaseInterfaces:
		switch r.Status {
		case mend.StatusPlanned:
			p.Status(ui.LevelOK, "%s: added %d props", recordSubject(r), len(r.Items))
			p.Detail("%s", items)
		case mend.StatusSkipped:
			p.Status(ui.LevelSkip, "%s: already declared: %s", recordSubject(r), items)
		case mend.StatusError:
			p.Status(ui.LevelError, "%s does not exist", r.Path)
		case mend.StatusWarning:
			if r.Path == "" {
				p.Status(ui.LevelWarn, "%s: %s (%s)", r.Subject, items, r.Message)
			} else {
				p.Status(ui.LevelWarn, "Could not find interface %s in %s (%s)", r.Subject, path.Base(r.Path), r.Message)
			}
		}
	case mend.PhaseTemplates:
		switch r.Status {
		case mend.StatusPlanned:
			p.Status(ui.LevelOK, "Created %s", r.Subject)
		default:
			p.Status(ui.LevelSkip, "%s %s", r.Subject, r.Message)
		}
	case mend.PhaseStubs:
		switch r.Status {
		case mend.StatusPlanned:
			p.Status(ui.LevelOK, "%s: added %d function stubs", r.Subject, len(r.Items))
			p.Detail("%s", items)
		case mend.StatusWarning:
			p.Status(ui.LevelWarn, "%s: %s: %s", r.Subject, r.Message, items)
		default:
			if items != "" {
				p.Status(ui.LevelSkip, "%s: %s: %s", r.Subject, r.Message, items)
			} else {
				p.Status(ui.LevelSkip, "%s: %s", r.Subject, r.Message)
			}
		}
	}
}

func printSummary(p *ui.Printer, t mend.Tally) {
	p.Header("📊 Summary:")
	p.Printf("  Props added: %d\n", t.PropsAdded)
	p.Printf("  Function stubs: %d\n", t.StubsAdded)
	p.Printf("  Type files created: %d\n", t.TemplateTargets)
}

func skippedByID(cs *fix.Changeset) map[string]fix.SkippedFix {
	out := make(map[string]fix.SkippedFix)
	if cs == nil {
		return out
	}
	for _, s := range cs.Skipped {
		out[s.ID] = s
	}
	return out
}
