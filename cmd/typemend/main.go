package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"typemend/internal/config"
	"typemend/internal/logger"
	"typemend/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "typemend",
	Short: "Patch common type-checker errors in a Vue/TypeScript project",
	Long: `typemend runs the project's type checker, reads its diagnostics and
applies mechanical fixes: inferred optional props on component interfaces,
missing type files from templates, and stubs for missing event handlers.`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

// settings is filled by setup before any command runs.
var settings *config.Settings

func init() {
	rootCmd.Version = version.Version

	rootCmd.AddCommand(fixCmd)
	rootCmd.AddCommand(diagnoseCmd)
	rootCmd.AddCommand(undoCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(versionCmd)

	config.RegisterFlags(rootCmd.PersistentFlags())
}

// main executes the root command. If command execution returns an error, the
// process exits with status code 1.
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	_ = logger.Sync()
	if err != nil {
		os.Exit(1)
	}
}

func setup(cmd *cobra.Command, _ []string) error {
	s, err := config.Load(cmd.Root().PersistentFlags())
	if err != nil {
		return err
	}
	if err := logger.Init(s.LogLevel, s.LogFormat); err != nil {
		return err
	}
	color.NoColor = !useColor(s.Color, os.Stdout)
	settings = s
	return nil
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

func useColor(mode string, f *os.File) bool {
	switch mode {
	case "on":
		return true
	case "off":
		return false
	default:
		return isTerminal(f)
	}
}
