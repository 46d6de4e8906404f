package mend

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"typemend/internal/analysis"
	"typemend/internal/fix"
	"typemend/internal/infer"
	"typemend/internal/source"
	"typemend/internal/tsast"
)

const defaultIndent = "  "

type interfaceTarget struct {
	name  string
	props []string
	file  source.FileID
}

func (p *Planner) planInterfaces(ctx context.Context, r *analysis.Report, plan *Plan) error {
	files := p.Manifest.Config.Interfaces.Files
	typesDir := p.Manifest.TypesDir()

	targets := make([]interfaceTarget, 0)
	parseIdx := make(map[source.FileID]int)
	toParse := make([]source.FileID, 0)

	for _, name := range r.Interfaces() {
		props := r.Props(name)
		fileName, ok := files[name]
		if !ok {
			plan.add(Record{
				Phase:   PhaseInterfaces,
				Status:  StatusWarning,
				Subject: name,
				Message: "no file mapping",
				Items:   props,
			})
			continue
		}

		path := filepath.Join(typesDir, filepath.FromSlash(fileName))
		id, err := p.Files.LoadOrMissing(path)
		if err != nil {
			return fmt.Errorf("load %s: %w", path, err)
		}
		if p.Files.Get(id).Missing() {
			plan.add(Record{
				Phase:   PhaseInterfaces,
				Status:  StatusError,
				Subject: name,
				Path:    p.display(id),
				Message: "file not found",
				Items:   props,
			})
			continue
		}

		if _, ok := parseIdx[id]; !ok {
			parseIdx[id] = len(toParse)
			toParse = append(toParse, id)
		}
		targets = append(targets, interfaceTarget{name: name, props: props, file: id})
	}

	parsed, err := p.parseAll(ctx, toParse)
	if err != nil {
		return err
	}

	for _, t := range targets {
		path := p.display(t.file)
		decl, ok := parsed[parseIdx[t.file]].Lookup(t.name)
		if !ok || !decl.Complete {
			msg := "interface not found"
			if ok {
				msg = "interface body is not closed"
			}
			plan.add(Record{
				Phase:   PhaseInterfaces,
				Status:  StatusWarning,
				Subject: t.name,
				Path:    path,
				Message: msg,
				Items:   t.props,
			})
			continue
		}

		missing := make([]string, 0, len(t.props))
		declared := make([]string, 0)
		for _, prop := range t.props {
			if decl.HasMember(prop) {
				declared = append(declared, prop)
			} else {
				missing = append(missing, prop)
			}
		}
		if len(declared) > 0 {
			plan.add(Record{
				Phase:   PhaseInterfaces,
				Status:  StatusSkipped,
				Subject: t.name,
				Path:    path,
				Message: "already declared",
				Items:   declared,
			})
		}
		if len(missing) == 0 {
			continue
		}

		f := propsFix(p.Files.Get(t.file), decl, t.name, missing)
		plan.Fixes = append(plan.Fixes, f)
		plan.add(Record{
			Phase:   PhaseInterfaces,
			Status:  StatusPlanned,
			Subject: t.name,
			Path:    path,
			Message: fmt.Sprintf("added %d props", len(missing)),
			Items:   missing,
			FixID:   f.ID,
		})
	}
	return nil
}

// propsFix inserts one optional member per prop right before the closing
// brace of decl. props must already be sorted.
func propsFix(file *source.File, decl *tsast.Interface, name string, props []string) fix.Fix {
	content := file.Content
	indent := decl.MemberIndent(defaultIndent)

	// Start at the beginning of the brace's line when only whitespace
	// precedes it, so the brace keeps its own indentation.
	at := decl.Close
	lineStart := at
	for lineStart > 0 && content[lineStart-1] != '\n' {
		lineStart--
	}
	var b strings.Builder
	if strings.TrimSpace(string(content[lineStart:at])) == "" {
		at = lineStart
	} else {
		b.WriteByte('\n')
	}

	for _, prop := range props {
		b.WriteString(indent)
		b.WriteString(infer.Member(prop))
		b.WriteByte('\n')
	}
	old := string(content[at : decl.Close+1])
	b.WriteString(old)

	span := source.Span{File: file.ID, Start: at, End: decl.Close + 1}
	return fix.ReplaceSpan(
		fmt.Sprintf("add %d props to %s", len(props), name),
		span,
		b.String(),
		old,
		fix.WithID("props:"+name),
		fix.WithApplicability(fix.FixApplicabilitySafeWithHeuristics),
	)
}
