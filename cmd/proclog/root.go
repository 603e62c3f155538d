package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/prabalesh/proclog/internal/collector"
	"github.com/prabalesh/proclog/internal/logwriter"
	"github.com/prabalesh/proclog/internal/scheduler"
	"github.com/prabalesh/proclog/internal/ui"
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "proclog [folder] [minutes]",
		Short: "Write timestamped process snapshots to a folder on a fixed interval",
		Long: `proclog scans the running processes (PID, name, user, memory) and writes
a new timestamped log file at regular intervals until interrupted.

Without arguments it prompts for the folder name and the interval.`,
		Args:          cobra.MaximumNArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := parseConfig(args, cmd.InOrStdin(), cmd.OutOrStdout())
			if err != nil {
				return err
			}
			return runLogger(cmd, cfg)
		},
	}

	cmd.AddCommand(newWatchCmd())

	return cmd
}

func runLogger(cmd *cobra.Command, cfg config) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	out := cmd.OutOrStdout()

	sched := scheduler.New(
		collector.NewProcessCollector(),
		logwriter.NewWriter(cfg.dir),
		cfg.interval,
		out,
	)

	fmt.Fprintf(out, "\n[✓] Logging started. Logs will be saved in '%s' every %d minute(s).\n",
		cfg.dir, int(cfg.interval.Minutes()))
	fmt.Fprintln(out, "Press Ctrl+C to stop.")
	fmt.Fprintln(out)

	if err := sched.Run(ctx); err != nil {
		return err
	}

	fmt.Fprintln(out, "\n[!] Logging stopped by user.")
	return nil
}

func newWatchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Show a live view of running processes without writing log files",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p := tea.NewProgram(ui.NewApp(), tea.WithAltScreen())
			_, err := p.Run()
			return err
		},
	}
}
