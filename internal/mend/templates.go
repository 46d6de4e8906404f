package mend

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"

	"typemend/internal/fix"
	"typemend/internal/project"
)

//go:embed templates/*.ts
var builtinTemplates embed.FS

// Builtin returns the text of the built-in template name.
func Builtin(name string) (string, bool) {
	data, err := builtinTemplates.ReadFile(path.Join("templates", name+".ts"))
	if err != nil {
		return "", false
	}
	return string(data), true
}

// BuiltinNames lists the built-in templates in name order.
func BuiltinNames() []string {
	entries, err := fs.ReadDir(builtinTemplates, "templates")
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, strings.TrimSuffix(e.Name(), ".ts"))
	}
	sort.Strings(names)
	return names
}

func (p *Planner) templateText(t project.TemplateConfig) (string, error) {
	if t.Builtin != "" {
		text, ok := Builtin(t.Builtin)
		if !ok {
			return "", fmt.Errorf("template %s: unknown builtin %q (available: %s)",
				t.Path, t.Builtin, strings.Join(BuiltinNames(), ", "))
		}
		return text, nil
	}
	src := p.Manifest.Resolve(t.Source)
	// #nosec G304 -- template source is configured in the manifest
	data, err := os.ReadFile(src)
	if err != nil {
		return "", fmt.Errorf("template %s: %w", t.Path, err)
	}
	return string(data), nil
}

// planTemplates creates every configured template target that does not
// exist yet. Existing files are never touched.
func (p *Planner) planTemplates(plan *Plan) error {
	for _, t := range p.Manifest.Config.Templates {
		plan.TemplateTargets++

		text, err := p.templateText(t)
		if err != nil {
			return err
		}
		target := p.Manifest.TemplatePath(t)
		id, err := p.Files.LoadOrMissing(target)
		if err != nil {
			return fmt.Errorf("load %s: %w", target, err)
		}
		display := p.display(id)
		subject := path.Base(display)

		if !p.Files.Get(id).Missing() {
			plan.add(Record{
				Phase:   PhaseTemplates,
				Status:  StatusSkipped,
				Subject: subject,
				Path:    display,
				Message: "already exists",
			})
			continue
		}

		f := fix.CreateFile("create "+display, id, text, fix.WithID("template:"+display))
		plan.Fixes = append(plan.Fixes, f)
		plan.add(Record{
			Phase:   PhaseTemplates,
			Status:  StatusPlanned,
			Subject: subject,
			Path:    display,
			Message: "created",
			FixID:   f.ID,
		})
	}
	return nil
}
