package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"typemend/internal/diag"
	"typemend/internal/ui"
)

var diagnoseCmd = &cobra.Command{
	Use:   "diagnose [flags]",
	Short: "Classify type-checker errors without changing anything",
	Args:  cobra.NoArgs,
	RunE:  runDiagnose,
}

func init() {
	diagnoseCmd.Flags().String("input", "", "read checker output from a file (\"-\" for stdin) instead of running the checker")
	diagnoseCmd.Flags().String("format", "pretty", "output format (pretty|json)")
}

func runDiagnose(cmd *cobra.Command, _ []string) error {
	input, err := cmd.Flags().GetString("input")
	if err != nil {
		return err
	}
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return err
	}
	format = strings.ToLower(format)
	if format != "pretty" && format != "json" {
		return fmt.Errorf("unsupported format %q (must be pretty or json)", format)
	}

	rc, err := newRunContext(cmd)
	if err != nil {
		return err
	}
	out, err := rc.collect(cmd, input)
	if err != nil {
		return fmt.Errorf("diagnose: %w", err)
	}
	report := rc.analyze(out)

	if format == "json" {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(report.Summarize(topCodes))
	}

	p := rc.printer
	printDistribution(p, report)

	if ifaces := report.Interfaces(); len(ifaces) > 0 {
		p.Header("Missing props")
		for _, iface := range ifaces {
			p.Status(ui.LevelInfo, "%s", iface)
			p.Detail("%s", strings.Join(report.Props(iface), ", "))
		}
	}
	if paths := report.FilesToFix.Paths(); len(paths) > 0 {
		p.Header("Missing functions")
		for _, path := range paths {
			p.Status(ui.LevelInfo, "%s", path)
			p.Detail("%s", strings.Join(report.FilesToFix.Distinct(path), ", "))
		}
	}

	if bag := report.Diagnostics; bag != nil && bag.Len() > 0 && !p.Quiet() {
		bag.Dedup()
		bag.Sort()
		p.Header("Diagnostics")
		p.Printf("%s\n", diag.FormatShort(bag.Items()))
		if n := bag.Dropped(); n > 0 {
			p.Printf("... and %d more (raise --max-diagnostics to see them)\n", n)
		}
	}
	rc.printTimings()
	return nil
}
