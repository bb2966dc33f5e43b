package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/uguryavuz/ath-events/internal/browser"
	"github.com/uguryavuz/ath-events/internal/config"
	"github.com/uguryavuz/ath-events/internal/event"
	"github.com/uguryavuz/ath-events/internal/logger"
	"github.com/uguryavuz/ath-events/internal/notifier"
	"github.com/uguryavuz/ath-events/internal/report"
	"github.com/uguryavuz/ath-events/internal/scraper"
	"github.com/uguryavuz/ath-events/internal/storage"
)

const (
	ExitSuccess = 0
	ExitError   = 1
)

var (
	flagNotifyFirstRun bool
	flagStateFile      string
	flagConfig         string
	flagDryRun         bool
	flagVerbose        bool
	flagTimeout        time.Duration
)

// NewRootCmd creates the root command.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ath-events",
		Short: "Check the Boston Athenaeum events page for changes",
		Long: `Checks the Boston Athenaeum events listing for changes since the last run.
Expands the lazily-loaded page, extracts every event, diffs against the
persisted state, and pushes an ntfy notification when new tracked events
appear or a Saturday Art & Architecture Tour reopens.`,
		RunE:          runCheck,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.Flags().BoolVar(&flagNotifyFirstRun, "notify-first-run", false, "Send a baseline notification on the first run")
	cmd.Flags().StringVar(&flagStateFile, "state-file", "", "Path to state.json (default from config)")
	cmd.Flags().StringVar(&flagConfig, "config", "", "Path to a YAML config file")
	cmd.Flags().BoolVar(&flagDryRun, "dry-run", false, "Print notifications instead of posting them")
	cmd.Flags().BoolVar(&flagVerbose, "verbose", false, "Enable debug logging")
	cmd.Flags().DurationVar(&flagTimeout, "timeout", 3*time.Minute, "Overall page materialization budget")

	return cmd
}

// runCheck performs one full monitoring run.
func runCheck(cmd *cobra.Command, args []string) error {
	if flagVerbose {
		logger.SetDefault(logger.New(logger.LevelDebug, os.Stderr))
	}

	cfg := loadConfig()

	store := storage.New(cfg.StateFile)
	prevHash, prevByURL := store.Load()
	logger.Debug("state loaded", logger.Fields{
		"path":      store.Path(),
		"items":     len(prevByURL),
		"first_run": prevHash == "",
	})

	events, err := fetchEvents(cmd.Context(), cfg.SourceURL)
	if err != nil {
		return err
	}

	res, err := event.Diff(events, prevByURL, event.Options{
		PreviousHash:   prevHash,
		NotifyFirstRun: flagNotifyFirstRun,
	})
	if err != nil {
		return err
	}

	if res.ShouldNotify {
		sendNotification(cmd.Context(), cfg, events, res)
	}

	if res.ShouldPersist {
		now := time.Now().Format("2006-01-02T15:04:05")
		if err := store.Save(now, cfg.SourceURL, events, res.Hash); err != nil {
			return fmt.Errorf("saving state: %w", err)
		}
		if err := writeAuxOutputs(store.Path(), events); err != nil {
			logger.Warn("writing auxiliary outputs failed", logger.Fields{"error": err.Error()})
		}
	}

	printSummary(cmd.OutOrStdout(), store.Path(), len(events), res)

	if flagVerbose {
		logger.Debug("run metrics", logger.MetricsSnapshot())
	}
	return nil
}

// loadConfig resolves configuration: defaults, then the optional YAML file,
// then environment overrides, then flag overrides.
func loadConfig() config.Config {
	cfg := config.Default()
	if flagConfig != "" {
		loaded, err := config.LoadFrom(flagConfig)
		if err != nil {
			logger.Warn("config file unusable, using defaults", logger.Fields{"error": err.Error()})
		}
		cfg = loaded
	}
	cfg = config.ApplyEnvOverrides(cfg)
	if flagStateFile != "" {
		cfg.StateFile = flagStateFile
	}
	return cfg
}

// fetchEvents materializes the listing page and extracts the event records.
// Navigation failure is the one fatal path: with no usable page at all, zero
// events would silently corrupt the diff.
func fetchEvents(ctx context.Context, sourceURL string) ([]*event.Event, error) {
	runCtx, cancel := context.WithTimeout(ctx, flagTimeout)
	defer cancel()

	start := time.Now()
	html, err := browser.NewChrome().Snapshot(runCtx, sourceURL)
	if err != nil {
		return nil, fmt.Errorf("fetching events page: %w", err)
	}
	logger.RecordTiming("materialize", time.Since(start))

	events, err := scraper.New().Parse(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("extracting events: %w", err)
	}
	logger.Add("events.extracted", int64(len(events)))
	logger.Info("events extracted", logger.Fields{"count": len(events)})
	return events, nil
}

// sendNotification formats and delivers the notification. Delivery is
// best-effort: failures are logged and never fail the run.
func sendNotification(ctx context.Context, cfg config.Config, events []*event.Event, res *event.Result) {
	var title, body string
	if res.FirstRun {
		title = report.BaselineTitle
		body = report.BaselineBody(event.FilterTracked(events))
	} else {
		title = report.UpdateTitle
		body = report.UpdateBody(res)
	}

	var n notifier.Notifier
	if flagDryRun {
		n = notifier.NewDryRun(os.Stdout)
	} else {
		n = notifier.NewNtfy(cfg.Server, cfg.Topic)
	}
	if err := n.Notify(ctx, title, body); err != nil {
		logger.Warn("notification delivery failed", logger.Fields{"title": title, "error": err.Error()})
		return
	}
	logger.Add("notifications.sent", 1)
}

// writeAuxOutputs regenerates the informational mirrors beside the state
// file: the pretty-printed records array and the Markdown listing. Both
// cover the full event set, not just the tracked subset.
func writeAuxOutputs(statePath string, events []*event.Event) error {
	dir := filepath.Dir(statePath)

	pretty, err := report.PrettyJSON(events)
	if err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(dir, "events_pretty.json"), pretty, 0644); err != nil {
		return fmt.Errorf("writing events_pretty.json: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "events.md"), []byte(report.Markdown(events)), 0644); err != nil {
		return fmt.Errorf("writing events.md: %w", err)
	}
	return nil
}

// printSummary prints the run report: state path, item count, and the one
// status line classifying the outcome.
func printSummary(w io.Writer, statePath string, itemCount int, res *event.Result) {
	fmt.Fprintf(w, "State: %s\n", statePath)
	fmt.Fprintf(w, "Items found: %d\n", itemCount)
	fmt.Fprintf(w, "Status: %s\n", statusLine(res))
}

// statusLine classifies the run outcome per the notify/persist decision.
func statusLine(res *event.Result) string {
	switch {
	case res.FirstRun && res.ShouldNotify:
		return "first run (baseline created, notified)"
	case res.FirstRun:
		return "first run (baseline created, no notification)"
	case res.ShouldNotify:
		return "notified and state updated"
	case res.ShouldPersist:
		return "no relevant changes (state updated)"
	default:
		return "no changes (not rewriting state.json)"
	}
}

// Execute runs the CLI.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(ExitError)
	}
	os.Exit(ExitSuccess)
}
