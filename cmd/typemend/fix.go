package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"typemend/internal/fix"
	"typemend/internal/logger"
	"typemend/internal/mend"
	"typemend/internal/ui"
)

var fixCmd = &cobra.Command{
	Use:   "fix [flags]",
	Short: "Patch props interfaces, create type files and stub missing handlers",
	Long: `Run the type checker, classify its errors and apply the mechanical fixes:
optional props added to the mapped interfaces, the configured type files
created when absent and handler stubs inserted before defineExpose.
Every change is shown as a diff and confirmed before anything is written.`,
	Args: cobra.NoArgs,
	RunE: runFix,
}

func init() {
	fixCmd.Flags().Bool("dry-run", false, "show the planned changes without writing them")
	fixCmd.Flags().BoolP("yes", "y", false, "apply without asking for confirmation")
	fixCmd.Flags().String("input", "", "read checker output from a file (\"-\" for stdin) instead of running the checker")
	fixCmd.Flags().String("only", "", "comma separated phases to run (interfaces,templates,stubs)")
}

func runFix(cmd *cobra.Command, _ []string) error {
	dryRun, err := cmd.Flags().GetBool("dry-run")
	if err != nil {
		return err
	}
	assumeYes, err := cmd.Flags().GetBool("yes")
	if err != nil {
		return err
	}
	input, err := cmd.Flags().GetString("input")
	if err != nil {
		return err
	}
	only, err := cmd.Flags().GetString("only")
	if err != nil {
		return err
	}
	phases, err := mend.ParsePhases(only)
	if err != nil {
		return err
	}

	rc, err := newRunContext(cmd)
	if err != nil {
		return err
	}
	p := rc.printer

	out, err := rc.collect(cmd, input)
	if err != nil {
		return fmt.Errorf("fix: %w", err)
	}
	report := rc.analyze(out)
	printDistribution(p, report)

	step := rc.timer.Start("plan")
	planner := mend.NewPlanner(rc.manifest, phases)
	plan, err := planner.Plan(cmd.Context(), report)
	if err != nil {
		return fmt.Errorf("fix: %w", err)
	}
	cs, err := fix.Plan(planner.Files, plan.Fixes)
	if err != nil && !errors.Is(err, fix.ErrNoChanges) {
		return fmt.Errorf("fix: %w", err)
	}
	step.Stop(fmt.Sprintf("%d fixes, %d files", len(plan.Fixes), len(cs.Changes)))

	tally := plan.Tally(cs)
	skipped := skippedByID(cs)
	for _, phase := range []mend.Phase{mend.PhaseInterfaces, mend.PhaseTemplates, mend.PhaseStubs} {
		if phases.Has(phase) {
			printPhase(p, plan, phase, skipped, tally)
		}
	}

	if cs.Empty() {
		p.Printf("\nNo changes to apply.\n")
		printSummary(p, tally)
		rc.printTimings()
		return nil
	}

	if !p.Quiet() {
		diff, err := cs.Diff(3)
		if err != nil {
			return fmt.Errorf("fix: render diff: %w", err)
		}
		p.Printf("\n")
		p.Diff(diff)
	}

	if dryRun {
		p.Printf("\nDry run: %d files would change.\n", len(cs.Changes))
		printSummary(p, tally)
		rc.printTimings()
		return nil
	}

	if !assumeYes {
		ok, err := ui.Confirm(cmd.InOrStdin(), cmd.OutOrStdout(), fmt.Sprintf("Apply changes to %d files?", len(cs.Changes)))
		if err != nil {
			return err
		}
		if !ok {
			p.Printf("aborted\n")
			return nil
		}
	}

	step = rc.timer.Start("commit")
	if err := commitWithJournal(cs, rc.manifest.JournalPath()); err != nil {
		return fmt.Errorf("fix: %w", err)
	}
	step.Stop(fmt.Sprintf("%d files", len(cs.Changes)))

	printSummary(p, tally)
	p.Printf("\n✅ Run '%s' in %s to verify remaining errors\n",
		strings.Join(rc.manifest.Config.Checker.Command, " "), rc.manifest.Config.Checker.Dir)
	rc.printTimings()
	return nil
}

// commitWithJournal saves the undo journal and then writes cs. The journal is
// removed again when the commit fails, since the files were rolled back.
func commitWithJournal(cs *fix.Changeset, journalPath string) error {
	j, err := fix.NewJournal(cs)
	if err != nil {
		return err
	}
	if err := j.Save(journalPath); err != nil {
		return fmt.Errorf("save journal: %w", err)
	}
	if err := fix.Commit(cs); err != nil {
		if rmErr := os.Remove(journalPath); rmErr != nil && !errors.Is(rmErr, os.ErrNotExist) {
			logger.L().Warn("remove journal", zap.String("path", journalPath), zap.Error(rmErr))
		}
		return err
	}
	logger.L().Info("changes committed",
		zap.Int("files", len(cs.Changes)),
		zap.Int("fixes", len(cs.Applied)),
		zap.String("journal", journalPath),
	)
	return nil
}
