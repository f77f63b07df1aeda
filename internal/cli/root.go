package cli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/faizmokh/mdstatus/internal/config"
	"github.com/faizmokh/mdstatus/internal/files"
	"github.com/faizmokh/mdstatus/internal/report"
	"github.com/faizmokh/mdstatus/internal/section"
	"github.com/faizmokh/mdstatus/internal/ui"
	"github.com/faizmokh/mdstatus/internal/version"
)

// ErrNoDocuments is returned when the command is invoked without any document paths.
var ErrNoDocuments = errors.New("no input documents")

const usageLine = "usage: mdstatus <mdfile> [<mdfile> ...]"

type options struct {
	configPath  string
	showClosed  bool
	jsonOutput  bool
	outputPath  string
	interactive bool
	strict      bool
	verbose     bool
	color       string
}

// NewRootCommand creates the Cobra command that scans documents and prints the digest.
func NewRootCommand(ctx context.Context, manager *files.Manager) *cobra.Command {
	var opts options

	cmd := &cobra.Command{
		Use:   "mdstatus <mdfile> [<mdfile> ...]",
		Short: "List WAIT, WIP and TODO sections across Markdown notes, most recently touched first.",
		Long: "mdstatus scans Markdown notes for sections tagged *TODO*, *WIP*, *WAIT*, *DONE* or *DONT*\n" +
			"and lists them by category, ordered by the newest (YYYY/MM/DD hh:mm) timestamp in each section.\n" +
			"Set SHOW_CLOSED=true (or pass --show-closed) to include DONT and DONE sections.",
		Version: version.Info(),
		Args:    requireDocuments,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("output") && opts.outputPath == "" {
				return fmt.Errorf("--output: %w", files.ErrEmptyPath)
			}
			return run(ctx, cmd, manager, opts, args)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.configPath, "config", "", "Path to a JSONC config file (default: $XDG_CONFIG_HOME/mdstatus/config.json)")
	flags.BoolVar(&opts.showClosed, "show-closed", false, "Include DONT and DONE sections (overrides SHOW_CLOSED)")
	flags.BoolVar(&opts.jsonOutput, "json", false, "Emit the digest as JSON")
	flags.StringVarP(&opts.outputPath, "output", "o", "", "Write the report to a file instead of stdout")
	flags.BoolVarP(&opts.interactive, "interactive", "i", false, "Browse the digest in a terminal UI")
	flags.BoolVar(&opts.strict, "strict", false, "Validate every timestamp before reporting")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "Log progress to stderr")
	flags.StringVar(&opts.color, "color", "auto", "Style category headers: auto, always or never (auto honors NO_COLOR)")

	return cmd
}

func requireDocuments(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("%w\n%s", ErrNoDocuments, usageLine)
	}
	return nil
}

func run(ctx context.Context, cmd *cobra.Command, manager *files.Manager, opts options, paths []string) error {
	logger := newLogger(cmd.ErrOrStderr(), opts.verbose)

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("show-closed") {
		cfg.ShowClosed = opts.showClosed
	}
	if cfg.Source != "" {
		logger.Debug("loaded config", "path", cfg.Source)
	}

	color, err := report.ParseColorMode(opts.color)
	if err != nil {
		return fmt.Errorf("--color: %w", err)
	}

	reportOpts := report.Options{
		ShowClosed:    cfg.ShowClosed,
		BasenameWidth: cfg.BasenameWidth,
		LineWidth:     cfg.LineWidth,
		Color:         color,
	}
	loader := section.NewLoader(manager, logger)

	if opts.interactive {
		m := ui.NewModel(ctx, loader, paths, reportOpts)
		if _, err := tea.NewProgram(m, tea.WithContext(ctx), tea.WithAltScreen()).Run(); err != nil {
			return fmt.Errorf("run TUI: %w", err)
		}
		return nil
	}

	sections, err := loader.Load(ctx, paths)
	if err != nil {
		return err
	}
	if opts.strict {
		if err := section.CheckTimestamps(sections); err != nil {
			return err
		}
	}

	if opts.outputPath != "" {
		var buf bytes.Buffer
		if err := render(&buf, sections, reportOpts, opts.jsonOutput); err != nil {
			return err
		}
		if err := manager.WriteReport(opts.outputPath, buf.Bytes()); err != nil {
			return err
		}
		logger.Debug("wrote report", "path", opts.outputPath, "bytes", buf.Len())
		return nil
	}

	return render(cmd.OutOrStdout(), sections, reportOpts, opts.jsonOutput)
}

func render(w io.Writer, sections []section.Section, opts report.Options, asJSON bool) error {
	if asJSON {
		return report.WriteJSON(w, sections, opts)
	}
	return report.Write(w, sections, opts)
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// ExecuteCommand is a thin wrapper that executes the Cobra root command.
func ExecuteCommand(ctx context.Context) error {
	manager, err := files.NewManager("")
	if err != nil {
		return err
	}
	cmd := NewRootCommand(ctx, manager)
	return cmd.Execute()
}

// Main is a helper used by cmd/mdstatus/main.go to keep wiring contained in one package.
func Main(ctx context.Context) {
	if err := ExecuteCommand(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
