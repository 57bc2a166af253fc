package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/Akashdeep-Patra/tdr/internal/app"
	"github.com/Akashdeep-Patra/tdr/internal/common"
	"github.com/Akashdeep-Patra/tdr/internal/config"
	"github.com/Akashdeep-Patra/tdr/internal/logging"
	"github.com/Akashdeep-Patra/tdr/internal/model"
	"github.com/Akashdeep-Patra/tdr/internal/store"
	"github.com/Akashdeep-Patra/tdr/internal/ui"
	"github.com/Akashdeep-Patra/tdr/internal/ui/components"
	"github.com/Akashdeep-Patra/tdr/internal/watcher"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// Set at build time with -ldflags "-X main.version=...".
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// watchDebounce coalesces the burst of events one save produces.
const watchDebounce = 200 * time.Millisecond

func main() {
	rootCmd := buildRootCmd()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "tdr: %v\n", err)
		os.Exit(1)
	}
}

func buildRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "tdr",
		Short: "A keyboard-driven todo list for the terminal",
		Long: `tdr keeps todo items in named workspaces and lets you add, edit,
complete, reorder and delete them without leaving the keyboard.

The list is stored as YAML in ~/.todo.yml (see --file). Press ? inside
the program for the key reference.`,
		RunE:          runApp,
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       version,
	}

	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"tdr %s\n  commit:  %s\n  built:   %s\n  go:      %s\n  os/arch: %s/%s\n",
		version, commit, date, runtime.Version(), runtime.GOOS, runtime.GOARCH,
	))

	rootCmd.PersistentFlags().StringP("file", "f", "", "Path to the data file (default ~/.todo.yml)")
	rootCmd.PersistentFlags().StringP("config", "c", "", "Path to a config file")

	rootCmd.AddCommand(buildListCmd())
	rootCmd.AddCommand(buildPathCmd())
	rootCmd.AddCommand(buildVersionCmd())
	rootCmd.AddCommand(buildCompletionCmd())

	return rootCmd
}

func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	dataFile, _ := cmd.Flags().GetString("file")
	configFile, _ := cmd.Flags().GetString("config")

	cfg, err := config.Load(config.Options{ConfigFile: configFile, DataFile: dataFile})
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

// buildListCmd creates `tdr list`, which prints the board without the TUI.
func buildListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Print every workspace and item",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			st := store.NewFileStore(cfg.DataFile, nil)
			board, err := st.Load()
			if err != nil {
				return fmt.Errorf("loading data file: %w", err)
			}
			printBoard(cmd.OutOrStdout(), board, time.Now())
			return nil
		},
	}
}

func printBoard(w io.Writer, b *model.Board, now time.Time) {
	if b.Empty() {
		fmt.Fprintln(w, "nothing to do")
		return
	}
	for _, ws := range b.Workspaces {
		fmt.Fprintf(w, "%s (%d)\n", ws.Title, ws.ItemCount)
		for _, it := range ws.Items {
			mark := "[ ]"
			switch {
			case it.Finished:
				mark = "[x]"
			case it.IsLate(now):
				mark = "[!]"
			}
			line := fmt.Sprintf("  %s %s", mark, it.Text)
			if it.HasExpiry && !it.Finished {
				line += fmt.Sprintf("  (%s, %s)", it.ExpiryText(), components.FormatRemaining(it.Remaining(now)))
			}
			fmt.Fprintln(w, line)
		}
	}
}

// buildPathCmd creates `tdr path`, which prints the resolved file locations.
func buildPathCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the data, config and log file locations",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "data:    %s\n", cfg.DataFile)
			fmt.Fprintf(out, "config:  %s\n", filepath.Join(config.ConfigDir(), "config.yaml"))
			fmt.Fprintf(out, "log:     %s\n", cfg.LogFile)
			return nil
		},
	}
}

// buildVersionCmd creates the `tdr version` subcommand supporting --json.
func buildVersionCmd() *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			info := map[string]string{
				"version": version,
				"commit":  commit,
				"date":    date,
				"go":      runtime.Version(),
				"os":      runtime.GOOS,
				"arch":    runtime.GOARCH,
			}
			if jsonOutput {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(info)
			}
			fmt.Fprintf(out, "tdr %s\n", version)
			fmt.Fprintf(out, "  commit:  %s\n", commit)
			fmt.Fprintf(out, "  built:   %s\n", date)
			fmt.Fprintf(out, "  go:      %s\n", runtime.Version())
			fmt.Fprintf(out, "  os/arch: %s/%s\n", runtime.GOOS, runtime.GOARCH)
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output version info as JSON")

	return cmd
}

// buildCompletionCmd creates the `tdr completion` subcommand for shell completions.
func buildCompletionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for tdr.

Examples:
  # Bash (add to ~/.bashrc)
  tdr completion bash > /etc/bash_completion.d/tdr

  # Zsh (add to ~/.zshrc before compinit)
  tdr completion zsh > "${fpath[1]}/_tdr"

  # Fish
  tdr completion fish > ~/.config/fish/completions/tdr.fish

  # PowerShell
  tdr completion powershell > tdr.ps1`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(out)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			default:
				return fmt.Errorf("unsupported shell: %s", args[0])
			}
		},
	}

	return cmd
}

func runApp(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	logger, closeLog, err := logging.New(cfg.LogLevel, cfg.LogFile)
	if err != nil {
		return fmt.Errorf("opening log: %w", err)
	}
	defer closeLog()
	log := logrus.NewEntry(logger).WithField("pid", os.Getpid())
	log.WithField("version", version).WithField("data_file", cfg.DataFile).Info("starting")

	st := store.NewFileStore(cfg.DataFile, log)
	board, err := st.Load()
	if err != nil {
		log.WithError(err).Error("cannot load data file")
		return fmt.Errorf("loading data file: %w", err)
	}

	theme, err := ui.DarkTheme().WithOverrides(cfg.Theme)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	m := app.New(st, board, cfg, ui.NewStyles(theme), log)

	p := tea.NewProgram(m, tea.WithAltScreen())

	// Reload when another process rewrites the data file.
	if cfg.Watch {
		if watchCh, stop, watchErr := watcher.Watch(cfg.DataFile, watchDebounce); watchErr == nil {
			defer stop()
			go func() {
				for range watchCh {
					p.Send(common.StoreChangedMsg{})
				}
			}()
		} else {
			log.WithError(watchErr).Warn("file watcher disabled")
		}
	}

	_, err = p.Run()
	log.Info("exiting")
	return err
}
