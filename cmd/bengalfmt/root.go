package main

import (
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/bengalssg/bengal/pkg/logging"
)

// globalFlags holds the persistent flags every subcommand reads. Grounded on
// the teacher's own root-command-plus-persistent-flags shape; collected into
// a struct rather than package vars so tests can construct a command tree
// without touching process state.
type globalFlags struct {
	configPath string
	logLevel   string
	logFile    string
	noColor    bool
	baseurl    string
}

func newRootCmd() *cobra.Command {
	flags := &globalFlags{}

	root := &cobra.Command{
		Use:   "bengalfmt",
		Short: "Parse, transform, and render Markdown content through the Bengal pipeline",
	}

	root.PersistentFlags().StringVar(&flags.configPath, "config", "", "path to a YAML config file")
	root.PersistentFlags().StringVar(&flags.logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	root.PersistentFlags().StringVar(&flags.logFile, "log-file", "", "write JSON-lines logs to this path instead of stderr")
	root.PersistentFlags().BoolVar(&flags.noColor, "no-color", false, "disable colored output regardless of terminal detection")
	root.PersistentFlags().StringVar(&flags.baseurl, "baseurl", "", "override the configured baseurl")

	root.AddCommand(newRenderCmd(flags))
	root.AddCommand(newAnalyzeCmd(flags))

	return root
}

// colorEnabled reports whether styled output should be emitted: never when
// --no-color is set, and only when stdout is a real terminal otherwise.
// Grounded on the teacher's deleted internal/ui/pretty/styles.go, which used
// the same mattn/go-isatty probe to decide whether to colorize.
func colorEnabled(flags *globalFlags) bool {
	if flags.noColor {
		return false
	}
	return isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
}

// terminalWidth returns the current terminal's column width, or a sane
// fallback when stdout isn't a terminal or the ioctl fails. The render
// command reports it in its startup debug log; the build-timing summary does
// not use it and keeps its fixed-width divider line.
func terminalWidth(fallback int) int {
	w, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || w <= 0 {
		return fallback
	}
	return w
}

// newLogger builds the logger a subcommand runs with: JSON-lines to
// --log-file when given (returning its Closer so the caller can flush it at
// exit), otherwise the usual colored text logger to stderr.
func newLogger(flags *globalFlags) (*logging.Logger, io.Closer) {
	if flags.logFile != "" {
		sink, closer, err := logging.NewJSONFileSink(flags.logFile)
		if err == nil {
			return sink, closer
		}
		fallback := logging.New(flags.logLevel)
		fallback.Warn("could not open log file, continuing with stderr only", "path", flags.logFile, "err", err)
		return fallback, nil
	}
	return logging.New(flags.logLevel), nil
}
