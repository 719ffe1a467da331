// Package main provides the CLI entrypoint for dahdit.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/verte-zerg/dahdit/internal/config"
	"github.com/verte-zerg/dahdit/internal/historyui"
	"github.com/verte-zerg/dahdit/internal/model"
	"github.com/verte-zerg/dahdit/internal/morse"
	"github.com/verte-zerg/dahdit/internal/report"
	"github.com/verte-zerg/dahdit/internal/store"
	"github.com/verte-zerg/dahdit/internal/tui"
)

var (
	rootFormat    string
	rootNoHistory bool

	historyPlain       bool
	historyOp          string
	historyLast        int
	historySince       string
	historyClearBefore string
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "dahdit",
		Short:         "Morse code converter",
		SilenceUsage:  true,
		SilenceErrors: false,
		Args:          cobra.NoArgs,
		RunE:          runLiveCmd,
	}

	rootCmd.PersistentFlags().StringVar(&rootFormat, "format", morse.DefaultFormat.String(), "long, short and space symbols")
	rootCmd.PersistentFlags().BoolVar(&rootNoHistory, "no-history", false, "do not record conversions")

	rootCmd.AddCommand(newEncodeCmd())
	rootCmd.AddCommand(newDecodeCmd())
	rootCmd.AddCommand(newSwitchCmd())
	rootCmd.AddCommand(newValidateCmd())
	rootCmd.AddCommand(newRepairCmd())
	rootCmd.AddCommand(newGarbleCmd())
	rootCmd.AddCommand(newAlphabetCmd())
	rootCmd.AddCommand(newHistoryCmd())
	rootCmd.AddCommand(newConfigCmd())

	return rootCmd
}

func runLiveCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := resolveConfig(cmd, "", "")
	if err != nil {
		return err
	}
	conv, err := morse.NewConverter(cfg.Format)
	if err != nil {
		return err
	}

	var st *store.Store
	if cfg.History {
		st, err = store.Open(config.DefaultDBPath())
		if err != nil {
			return fmt.Errorf("failed to open db: %w", err)
		}
		defer func() {
			if cerr := st.Close(); cerr != nil {
				logErrf("failed to close db: %v\n", cerr)
			}
		}()
	}

	m := tui.NewModel(cfg, conv, st)
	program := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

// resolveConfig merges the config file with flags. modeFlag and orderFlag
// name the command flags that override the repair settings, if any.
func resolveConfig(cmd *cobra.Command, modeFlag, orderFlag string) (model.Config, error) {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return model.Config{}, fmt.Errorf("failed to load config: %w", err)
	}

	symbols := rootFormat
	applyStringConfig(cmd, "format", &symbols, fileCfg.Format.Symbols)
	format, err := morse.ParseFormat(symbols)
	if err != nil {
		return model.Config{}, fmt.Errorf("invalid format %q: %w", symbols, err)
	}

	modeName := morse.DefaultRepairMode.String()
	if modeFlag != "" {
		modeName = flagString(cmd, modeFlag)
	}
	applyStringConfig(cmd, modeFlag, &modeName, fileCfg.Repair.Mode)
	mode, err := morse.ParseRepairMode(modeName)
	if err != nil {
		return model.Config{}, err
	}

	var order morse.RepairOrder
	orderValue := ""
	if len(fileCfg.Repair.Order) > 0 {
		orderValue = strings.Join(fileCfg.Repair.Order, ",")
	}
	if orderFlag != "" && cmd.Flags().Changed(orderFlag) {
		orderValue = flagString(cmd, orderFlag)
	}
	if orderValue != "" {
		order, err = morse.ParseRepairOrder(orderValue)
		if err != nil {
			return model.Config{}, fmt.Errorf("invalid repair order: %w", err)
		}
	}

	history := true
	applyBoolConfig(cmd, "no-history", &history, fileCfg.History.Enabled)
	if rootNoHistory {
		history = false
	}

	return model.Config{
		Format:      format,
		RepairMode:  mode,
		RepairOrder: order,
		History:     history,
	}, nil
}

func flagString(cmd *cobra.Command, name string) string {
	value, err := cmd.Flags().GetString(name)
	if err != nil {
		return ""
	}
	return value
}

// readInput returns the command input from arguments, --file or piped stdin.
func readInput(cmd *cobra.Command, args []string, file string) (string, string, error) {
	if file != "" {
		if len(args) > 0 {
			return "", "", fmt.Errorf("use either arguments or --file")
		}
		data, err := os.ReadFile(file)
		if err != nil {
			return "", "", fmt.Errorf("failed to read %s: %w", file, err)
		}
		return string(data), file, nil
	}
	if len(args) > 0 {
		return strings.Join(args, " "), "args", nil
	}
	in := cmd.InOrStdin()
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		return "", "", fmt.Errorf("no input: pass it as arguments, with --file, or on stdin")
	}
	data, err := io.ReadAll(in)
	if err != nil {
		return "", "", fmt.Errorf("failed to read stdin: %w", err)
	}
	return strings.TrimRight(string(data), "\r\n"), "stdin", nil
}

// recordConversion appends c to the history. Failures are reported and ignored.
func recordConversion(cfg model.Config, c model.Conversion) {
	if !cfg.History {
		return
	}
	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		logErrf("failed to open db: %v\n", err)
		return
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()
	c.CreatedAt = time.Now()
	if _, err := st.InsertConversion(context.Background(), c); err != nil {
		logErrf("failed to save conversion: %v\n", err)
	}
}

func writeLine(cmd *cobra.Command, s string) error {
	if _, err := fmt.Fprintln(cmd.OutOrStdout(), s); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func newAlphabetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "alphabet",
		Short: "List characters and codes in the active format",
		Args:  cobra.NoArgs,
		RunE:  runAlphabetCmd,
	}
}

func runAlphabetCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := resolveConfig(cmd, "", "")
	if err != nil {
		return err
	}
	conv, err := morse.NewConverter(cfg.Format)
	if err != nil {
		return err
	}
	if err := report.RenderAlphabet(cmd.OutOrStdout(), conv.KeyTable()); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func newHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Browse recorded conversions",
		Args:  cobra.NoArgs,
		RunE:  runHistoryCmd,
	}
	cmd.Flags().BoolVar(&historyPlain, "plain", false, "print tables instead of the browser")
	cmd.Flags().StringVar(&historyOp, "op", "", "operation filter")
	cmd.Flags().IntVar(&historyLast, "last", 0, "limit to last N conversions")
	cmd.Flags().StringVar(&historySince, "since", "", "start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&historyClearBefore, "clear-before", "", "delete conversions before date (YYYY-MM-DD)")
	return cmd
}

func runHistoryCmd(cmd *cobra.Command, _ []string) error {
	if historyLast < 0 {
		return fmt.Errorf("--last must be >= 0")
	}
	filter := model.HistoryFilter{
		Op:   strings.TrimSpace(strings.ToLower(historyOp)),
		Last: historyLast,
	}
	if historySince != "" {
		parsed, err := time.ParseInLocation("2006-01-02", historySince, time.Local)
		if err != nil {
			return fmt.Errorf("invalid --since value: %w", err)
		}
		filter.Since = &parsed
	}

	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()

	if historyClearBefore != "" {
		before, err := time.ParseInLocation("2006-01-02", historyClearBefore, time.Local)
		if err != nil {
			return fmt.Errorf("invalid --clear-before value: %w", err)
		}
		n, err := st.DeleteBefore(context.Background(), before)
		if err != nil {
			return fmt.Errorf("failed to clear history: %w", err)
		}
		logErrf("Deleted %d conversions\n", n)
		return nil
	}

	if historyPlain {
		r, err := report.BuildReport(context.Background(), st, filter)
		if err != nil {
			return fmt.Errorf("failed to load history: %w", err)
		}
		if err := report.Render(cmd.OutOrStdout(), r, report.TerminalWidth()); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		return nil
	}

	m := historyui.NewModel(st, filter)
	program := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run history TUI: %w", err)
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

// writeDefaultConfig creates the config file from the template unless it exists.
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

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if name != "" && cmd.Flags().Changed(name) {
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
	return fmt.Sprintf(`# dahdit configuration
# Uncomment a value to enable it. CLI flags override config values.

[format]
# symbols = %q            # Long, short and space symbols

[repair]
# mode = %q   # Repair mode for decode --repair and repair
# order = [%s]   # Modes tried by the ordered mode

[history]
# enabled = true          # Record conversions
`,
		morse.DefaultFormat.String(),
		morse.DefaultRepairMode.String(),
		quotedList(morse.DefaultRepairOrder()),
	)
}

func quotedList(order morse.RepairOrder) string {
	parts := make([]string, len(order))
	for i, m := range order {
		parts[i] = fmt.Sprintf("%q", m.String())
	}
	return strings.Join(parts, ", ")
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
