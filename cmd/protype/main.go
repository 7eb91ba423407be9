// Package main provides the CLI entrypoint for protype.
package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	fyneapp "fyne.io/fyne/v2/app"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/verte-zerg/protype/internal/config"
	"github.com/verte-zerg/protype/internal/generator"
	"github.com/verte-zerg/protype/internal/gui"
	"github.com/verte-zerg/protype/internal/model"
	"github.com/verte-zerg/protype/internal/scores"
	"github.com/verte-zerg/protype/internal/sentences"
	"github.com/verte-zerg/protype/internal/session"
	"github.com/verte-zerg/protype/internal/stats"
	"github.com/verte-zerg/protype/internal/store"
	"github.com/verte-zerg/protype/internal/trainer"
	"github.com/verte-zerg/protype/internal/tui"
)

const (
	appID          = "com.verte-zerg.protype"
	debugEnv       = "PROTYPE_DEBUG"
	defaultHistory = true
	defaultWidth   = 80
)

var (
	practiceSentences string
	practiceStatsFile string
	practiceHistory   bool
	practiceLowFloor  int

	statsSince string
	statsLast  int

	clearYes bool
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "protype",
		Short:         "Typing speed test",
		SilenceUsage:  true,
		SilenceErrors: false,
		Args:          cobra.NoArgs,
		RunE:          runPracticeCmd,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&practiceSentences, "sentences", "", "sentence file (.txt one per line, or .yaml list)")
	flags.StringVar(&practiceStatsFile, "stats-file", "", "best/low score file (default: XDG data dir)")
	flags.BoolVar(&practiceHistory, "history", defaultHistory, "record completed rounds in the history database")
	flags.IntVar(&practiceLowFloor, "low-floor", scores.DefaultLowFloor, "speeds at or below this WPM never set the low score")

	rootCmd.AddCommand(newGUICmd())
	rootCmd.AddCommand(newStatsCmd())
	rootCmd.AddCommand(newClearCmd())
	rootCmd.AddCommand(newConfigCmd())

	return rootCmd
}

func runPracticeCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	tr, cleanup, err := buildTrainer(cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	closeLog, err := setupTUILog()
	if err != nil {
		return err
	}
	defer closeLog()

	program := tea.NewProgram(tui.NewModel(tr), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

func newGUICmd() *cobra.Command {
	return &cobra.Command{
		Use:   "gui",
		Short: "Open the desktop window",
		Args:  cobra.NoArgs,
		RunE:  runGUICmd,
	}
}

func runGUICmd(cmd *cobra.Command, _ []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	tr, cleanup, err := buildTrainer(cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	app := fyneapp.NewWithID(appID)
	gui.BuildMainWindow(app, tr).ShowAndRun()
	return nil
}

func newStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show lifetime scores and round history",
		Args:  cobra.NoArgs,
		RunE:  runStatsCmd,
	}
	cmd.Flags().StringVar(&statsSince, "since", "", "start date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&statsLast, "last", 0, "limit to last N rounds")
	return cmd
}

func runStatsCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	if statsLast < 0 {
		return fmt.Errorf("--last must be >= 0")
	}
	var sinceTime *time.Time
	if statsSince != "" {
		parsed, err := time.ParseInLocation("2006-01-02", statsSince, time.Local)
		if err != nil {
			return fmt.Errorf("invalid --since value: %w", err)
		}
		sinceTime = &parsed
	}

	var st *store.Store
	if cfg.History {
		st, err = store.Open(cfg.HistoryPath)
		if err != nil {
			return fmt.Errorf("failed to open db: %w", err)
		}
		defer func() {
			if cerr := st.Close(); cerr != nil {
				logErrf("failed to close db: %v\n", cerr)
			}
		}()
	}

	rec := scores.Load(cfg.StatsPath)
	report, err := stats.BuildReport(context.Background(), st, rec, model.HistoryConfig{Since: sinceTime, Last: statsLast}, cfg.LowFloor)
	if err != nil {
		return fmt.Errorf("failed to load rounds: %w", err)
	}
	if err := report.Render(cmd.OutOrStdout(), terminalWidth(os.Stdout)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func newClearCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Reset lifetime statistics",
		Args:  cobra.NoArgs,
		RunE:  runClearCmd,
	}
	cmd.Flags().BoolVar(&clearYes, "yes", false, "skip the confirmation prompt")
	return cmd
}

func runClearCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	interactive := term.IsTerminal(int(os.Stdin.Fd()))
	ok, err := confirmClear(cmd.InOrStdin(), cmd.ErrOrStderr(), clearYes, interactive)
	if err != nil {
		return err
	}
	if !ok {
		logErrln("Aborted.")
		return nil
	}

	if err := scores.Open(cfg.StatsPath).Clear(); err != nil {
		return fmt.Errorf("failed to clear stats: %w", err)
	}
	if cfg.History {
		if err := clearHistory(cfg.HistoryPath); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintln(cmd.OutOrStdout(), "Lifetime statistics cleared."); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

// confirmClear asks for a y/N answer unless yes is set. A non-interactive
// stdin without yes is refused.
func confirmClear(in io.Reader, out io.Writer, yes, interactive bool) (bool, error) {
	if yes {
		return true, nil
	}
	if !interactive {
		return false, fmt.Errorf("stdin is not a terminal; pass --yes to clear without a prompt")
	}
	if _, err := fmt.Fprint(out, "Reset all your lifetime statistics? [y/N] "); err != nil {
		return false, fmt.Errorf("failed to write prompt: %w", err)
	}
	answer, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && err != io.EOF {
		return false, fmt.Errorf("failed to read answer: %w", err)
	}
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}

func clearHistory(path string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}
	st, err := store.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()
	if err := st.Clear(context.Background()); err != nil {
		return fmt.Errorf("failed to clear history: %w", err)
	}
	return nil
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := writeDefaultConfig(path); err != nil {
		return err
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

// writeDefaultConfig creates the commented template unless path exists.
func writeDefaultConfig(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}
	return nil
}

// resolveConfig merges the config file into flags the user did not set.
func resolveConfig(cmd *cobra.Command) (model.Config, error) {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return model.Config{}, fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "sentences", &practiceSentences, fileCfg.Practice.Sentences)
	applyStringConfig(cmd, "stats-file", &practiceStatsFile, fileCfg.Practice.StatsFile)
	applyBoolConfig(cmd, "history", &practiceHistory, fileCfg.Practice.History)
	applyIntConfig(cmd, "low-floor", &practiceLowFloor, fileCfg.Practice.LowFloor)

	cfg := model.Config{
		SentencesPath: practiceSentences,
		StatsPath:     practiceStatsFile,
		History:       practiceHistory,
		HistoryPath:   config.DefaultDBPath(),
		LowFloor:      practiceLowFloor,
	}
	if cfg.StatsPath == "" {
		cfg.StatsPath = config.DefaultStatsPath()
	}
	if err := validateConfig(cfg); err != nil {
		return model.Config{}, err
	}
	return cfg, nil
}

// buildTrainer wires sentences, scores and the optional history store.
// The returned cleanup closes the store.
func buildTrainer(cfg model.Config) (*trainer.Trainer, func(), error) {
	list := sentences.Defaults
	if cfg.SentencesPath != "" {
		loaded, err := sentences.Load(cfg.SentencesPath)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to load sentences: %w", err)
		}
		list = loaded
	}

	opts := []trainer.Option{trainer.WithLowFloor(cfg.LowFloor)}
	cleanup := func() {}
	if cfg.History {
		st, err := store.Open(cfg.HistoryPath)
		if err != nil {
			logErrf("failed to open db, history disabled: %v\n", err)
		} else {
			opts = append(opts, trainer.WithRecorder(st))
			cleanup = func() {
				if cerr := st.Close(); cerr != nil {
					logErrf("failed to close db: %v\n", cerr)
				}
			}
		}
	}

	sess := session.New(list, generator.New(), session.SystemClock())
	return trainer.New(sess, scores.Open(cfg.StatsPath), opts...), cleanup, nil
}

// setupTUILog keeps log output off the alternate screen. With PROTYPE_DEBUG
// set it goes to the debug log file.
func setupTUILog() (func(), error) {
	if os.Getenv(debugEnv) == "" {
		log.SetOutput(io.Discard)
		return func() {}, nil
	}
	path := config.DefaultLogPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	f, err := tea.LogToFile(path, "protype")
	if err != nil {
		return nil, fmt.Errorf("failed to open debug log: %w", err)
	}
	return func() {
		if cerr := f.Close(); cerr != nil {
			// Best-effort close of the debug log.
			_ = cerr
		}
	}, nil
}

func terminalWidth(f *os.File) int {
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil || width <= 0 {
		return defaultWidth
	}
	return width
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyIntConfig(cmd *cobra.Command, name string, target, value *int) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyBoolConfig(cmd *cobra.Command, name string, target, value *bool) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# protype configuration
# Uncomment a value to enable it. CLI flags override config values.

[practice]
# sentences = "~/sentences.txt"   # Sentence file (.txt one per line, or .yaml list)
# stats-file = %q
# history = %t                    # Record completed rounds for "protype stats"
# low-floor = %d                  # Speeds at or below this never set the low score
`,
		config.DefaultStatsPath(),
		defaultHistory,
		scores.DefaultLowFloor,
	)
}

func validateConfig(cfg model.Config) error {
	if cfg.LowFloor < 0 {
		return fmt.Errorf("--low-floor must be >= 0")
	}
	if cfg.StatsPath == "" {
		return fmt.Errorf("--stats-file must not be empty")
	}
	return nil
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}

func logErrln(args ...any) {
	if _, err := fmt.Fprintln(os.Stderr, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
