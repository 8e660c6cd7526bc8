// Package main provides the CLI entrypoint for pomotui.
package main

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/verte-zerg/pomotui/internal/analytics"
	"github.com/verte-zerg/pomotui/internal/app"
	"github.com/verte-zerg/pomotui/internal/config"
	"github.com/verte-zerg/pomotui/internal/stats"
	"github.com/verte-zerg/pomotui/internal/tui"
)

const (
	defaultMode        = "short"
	defaultAutoAdvance = false
)

var (
	sessionMode        string
	sessionAutoAdvance bool
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "pomotui",
		Short:         "TUI pomodoro timer",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runSessionCmd,
	}

	rootCmd.Flags().StringVar(&sessionMode, "mode", defaultMode, "preselected mode: short (25/5) or long (50/10)")
	rootCmd.Flags().BoolVar(&sessionAutoAdvance, "auto-advance", defaultAutoAdvance, "start the next phase without waiting for confirmation")

	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newStatsCmd())

	return rootCmd
}

func runSessionCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "mode", &sessionMode, fileCfg.Session.Mode)
	applyBoolConfig(cmd, "auto-advance", &sessionAutoAdvance, fileCfg.Session.AutoAdvance)

	selected, err := parseModeCursor(sessionMode)
	if err != nil {
		return err
	}

	advance := app.AdvanceAwaitAck
	if sessionAutoAdvance {
		advance = app.AdvanceAuto
	}

	store := analytics.NewFileStore(config.DefaultAnalyticsPath())
	controller := app.New(analytics.Load(store), app.Config{Advance: advance})
	controller.SelectedMode = selected

	model := tui.NewModel(controller)
	program := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
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

func newStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show analytics",
		Args:  cobra.NoArgs,
		RunE:  runStatsCmd,
	}
}

func runStatsCmd(cmd *cobra.Command, _ []string) error {
	store := analytics.NewFileStore(config.DefaultAnalyticsPath())
	a := analytics.Load(store)

	width := 0
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
	}
	if err := stats.RenderReport(cmd.OutOrStdout(), a, width); err != nil {
		return fmt.Errorf("failed to render stats: %w", err)
	}
	return nil
}

func parseModeCursor(mode string) (int, error) {
	switch strings.TrimSpace(strings.ToLower(mode)) {
	case "short":
		return 0, nil
	case "long":
		return 1, nil
	}
	return 0, fmt.Errorf("unknown mode %q (available: short, long)", mode)
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
	return fmt.Sprintf(`# pomotui configuration
# Uncomment a value to enable it. CLI flags override config values.

[session]
# mode = %q            # Preselected mode: short (25/5) or long (50/10)
# auto-advance = %t   # Start the next phase without waiting for confirmation
`,
		defaultMode,
		defaultAutoAdvance,
	)
}
