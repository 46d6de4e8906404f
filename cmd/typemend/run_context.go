package main

import (
	"context"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"typemend/internal/analysis"
	"typemend/internal/checker"
	"typemend/internal/logger"
	"typemend/internal/observ"
	"typemend/internal/project"
	"typemend/internal/ui"
)

// runContext bundles what every checker-driven command needs.
type runContext struct {
	manifest *project.Manifest
	printer  *ui.Printer
	timer    *observ.Timer
}

func newRunContext(cmd *cobra.Command) (*runContext, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, err
	}
	m, err := project.Discover(wd, settings.Manifest)
	if err != nil {
		return nil, err
	}
	if m.Path == "" {
		logger.L().Debug("no manifest found, using defaults", zap.String("root", m.Root))
	} else {
		logger.L().Debug("manifest loaded", zap.String("path", m.Path))
	}
	return &runContext{
		manifest: m,
		printer:  ui.NewPrinter(cmd.OutOrStdout(), !color.NoColor, settings.Quiet),
		timer:    observ.NewTimer(),
	}, nil
}

// collect returns checker output, either from input ("-" for stdin) or by
// running the configured checker.
func (rc *runContext) collect(cmd *cobra.Command, input string) (*checker.Output, error) {
	step := rc.timer.Start("checker")
	if input != "" {
		out, err := checker.ReadFile(input, cmd.InOrStdin())
		if err != nil {
			return nil, err
		}
		step.Stop(fmt.Sprintf("%d lines from %s", len(out.Lines), out.Source))
		return out, nil
	}

	c := checker.NewCollector(rc.manifest, settings.Timeout)
	mode, err := parseSpinnerMode(settings.UI)
	if err != nil {
		return nil, err
	}

	var out *checker.Output
	run := func(ctx context.Context) error {
		o, err := c.Run(ctx)
		out = o
		return err
	}
	if mode.showSpinner() {
		err = ui.RunWithSpinner(cmd.Context(), os.Stderr, "running "+c.String(), run)
	} else {
		rc.printer.Infof("Running %s in %s\n", c.String(), rc.manifest.Config.Checker.Dir)
		err = run(cmd.Context())
	}
	if err != nil {
		return nil, err
	}
	step.Stop(fmt.Sprintf("%d lines, exit %d", len(out.Lines), out.ExitCode))
	return out, nil
}

func (rc *runContext) analyze(out *checker.Output) *analysis.Report {
	step := rc.timer.Start("analyze")
	report := analysis.Analyze(out.Lines, analysis.Options{
		PathPrefix:     rc.manifest.Config.Stubs.PathPrefix,
		MaxDiagnostics: settings.MaxDiagnostics,
	})
	step.Stop(fmt.Sprintf("%d errors", report.TotalCodes()))
	return report
}

func (rc *runContext) printTimings() {
	if settings.Timings {
		rc.printer.Printf("\n%s", rc.timer.Summary())
	}
}
