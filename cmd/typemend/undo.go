package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"typemend/internal/fix"
	"typemend/internal/logger"
	"typemend/internal/ui"
)

var undoCmd = &cobra.Command{
	Use:   "undo",
	Short: "Revert the last applied fix run",
	Long: `Restore every file changed by the last 'typemend fix' from the journal
and delete the files it created. Files modified since then are left alone
unless --force is given.`,
	Args: cobra.NoArgs,
	RunE: runUndo,
}

func init() {
	undoCmd.Flags().Bool("force", false, "restore files even if they were modified after the fix run")
}

func runUndo(cmd *cobra.Command, _ []string) error {
	force, err := cmd.Flags().GetBool("force")
	if err != nil {
		return err
	}
	rc, err := newRunContext(cmd)
	if err != nil {
		return err
	}
	p := rc.printer

	path := rc.manifest.JournalPath()
	j, err := fix.ReadJournal(path)
	if err != nil {
		if errors.Is(err, fix.ErrNoJournal) {
			return fmt.Errorf("undo: nothing to undo: %w", err)
		}
		return fmt.Errorf("undo: %w", err)
	}

	res, err := fix.Undo(j, force)
	if res != nil {
		for _, f := range res.Restored {
			p.Status(ui.LevelOK, "Restored %s", f)
		}
		for _, f := range res.Removed {
			p.Status(ui.LevelOK, "Removed %s", f)
		}
	}
	if err != nil {
		return fmt.Errorf("undo: %w", err)
	}

	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("undo: remove journal: %w", err)
	}
	logger.L().Info("journal reverted",
		zap.Int("restored", len(res.Restored)),
		zap.Int("removed", len(res.Removed)),
	)
	p.Printf("\nReverted the fix run from %s.\n", j.CreatedAt.Local().Format("2006-01-02 15:04:05"))
	return nil
}
