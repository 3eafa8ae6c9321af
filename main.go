package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/fini-net/gh-hookwatch/internal/config"
	ghclient "github.com/fini-net/gh-hookwatch/internal/github"
	"github.com/fini-net/gh-hookwatch/internal/source"
	"github.com/fini-net/gh-hookwatch/internal/tui"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var version = "dev" // Set during build

// exitError carries a process exit code out of cobra without printing anything
type exitError int

func (e exitError) Error() string {
	return fmt.Sprintf("exit status %d", int(e))
}

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	cmd := newRootCmd()
	cmd.SetArgs(args)

	if err := cmd.ExecuteContext(context.Background()); err != nil {
		if code, ok := err.(exitError); ok {
			return int(code)
		}
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}

func newRootCmd() *cobra.Command {
	var once bool

	cmd := &cobra.Command{
		Use:   "gh-hookwatch",
		Short: "Live tracker for GitHub webhook events",
		Long: `gh-hookwatch polls a webhook backend's /latest-events endpoint and shows
push, pull request and merge activity as it arrives.

With --source github it reads a repository's events from the GitHub API instead.`,
		Version:       version,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cmd.Flags())
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			code := runWatch(cmd.Context(), cfg, once)
			if code != 0 {
				return exitError(code)
			}
			return nil
		},
	}

	f := cmd.Flags()
	f.String("api-url", "", "webhook backend base URL (env API_URL)")
	f.Duration("interval", 0, "poll interval, e.g. 15s")
	f.Duration("request-timeout", 0, "per-request timeout, 0 disables")
	f.String("source", "", "event source: backend or github")
	f.String("repo", "", "owner/name for --source github (default: origin remote)")
	f.StringP("output", "o", "", "snapshot output format: text, json or yaml")
	f.String("log-file", "", "write logs to this file")
	f.Bool("no-color", false, "disable colors")
	f.BoolVar(&once, "once", false, "fetch once, print and exit")

	cmd.AddCommand(newVersionCmd())

	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "gh-hookwatch version %s\n", version)
		},
	}
}

func runWatch(ctx context.Context, cfg *config.Config, once bool) int {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	logger, closeLog, err := newLogger(cfg.LogFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open log file: %v\n", err)
		return 1
	}
	defer closeLog()

	if cfg.NoColor || os.Getenv("NO_COLOR") != "" {
		lipgloss.SetColorProfile(termenv.Ascii)
	}

	src, label, err := newSource(ctx, cfg, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return 1
	}

	// Check if running in a terminal
	if once || !term.IsTerminal(int(os.Stdout.Fd())) {
		return runSnapshot(ctx, src, cfg.Output, os.Stdout, os.Stderr)
	}

	model := tui.NewModel(ctx, src, label, cfg.RefreshInterval, tui.NewStyles(cfg.Colors), logger)

	// Run TUI (keeps output visible after exit)
	p := tea.NewProgram(model)
	finalModel, err := p.Run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error running TUI: %v\n", err)
		return 1
	}

	if m, ok := finalModel.(tui.Model); ok {
		return m.ExitCode()
	}

	return 0
}

// newSource builds the configured event source and the label shown in the header
func newSource(ctx context.Context, cfg *config.Config, logger *slog.Logger) (source.Source, string, error) {
	if cfg.Source != config.SourceGitHub {
		logger.Info("polling backend", "url", source.EventsURL(cfg.APIURL), "interval", cfg.RefreshInterval)
		return source.NewBackend(cfg.APIURL, cfg.RequestTimeout), cfg.APIURL, nil
	}

	owner, repo, err := ghclient.ResolveRepo(cfg.Repo)
	if err != nil {
		return nil, "", fmt.Errorf("failed to resolve repository: %w", err)
	}

	client, authenticated := ghclient.NewClient(ctx)
	if !authenticated {
		logger.Warn("no GitHub token found, using the API anonymously")
	}

	es := ghclient.NewEventSource(client, owner, repo)
	es.Timeout = cfg.RequestTimeout
	logger.Info("polling GitHub", "repo", es.Repo(), "interval", cfg.RefreshInterval)
	return es, es.Repo(), nil
}

// newLogger writes structured logs to path, or nowhere when path is empty
func newLogger(path string) (*slog.Logger, func(), error) {
	if path == "" {
		return slog.New(slog.DiscardHandler), func() {}, nil
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, err
	}

	logger := slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug})).
		With("pid", os.Getpid())
	return logger, func() { f.Close() }, nil
}
