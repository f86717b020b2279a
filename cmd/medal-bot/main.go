package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
)

// Version is set at build time via -ldflags "-X main.Version=..."
var Version = "dev"

type options struct {
	configPath string
	envFile    string
	dryRun     bool
	once       bool
	interval   time.Duration
	seed       uint64
}

func main() {
	var opts options
	rootCmd := &cobra.Command{
		Use:           "medal-bot",
		Short:         "Post a random Olympic medal result to Bluesky",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBot(cmd, opts)
		},
	}
	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&opts.configPath, "config", "c", "", "path to YAML config (env only when empty)")
	flags.StringVar(&opts.envFile, "env-file", ".env", "dotenv file loaded before the config")
	flags.Uint64Var(&opts.seed, "seed", 0, "random seed for event sampling (0 = random)")
	rootCmd.Flags().BoolVar(&opts.dryRun, "dry-run", false, "print the post instead of publishing it")
	rootCmd.Flags().BoolVar(&opts.once, "once", false, "run a single cycle then exit, even if an interval is configured")
	rootCmd.Flags().DurationVar(&opts.interval, "interval", 0, "run every interval until interrupted")

	rootCmd.AddCommand(previewCmd(&opts))
	rootCmd.AddCommand(versionCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runBot(cmd *cobra.Command, opts options) error {
	ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	a, err := newApp(opts, cmd.Flags().Changed("dry-run"), cmd.Flags().Changed("interval"), false)
	if err != nil {
		return err
	}
	defer a.close()
	log := a.log

	log.Info().
		Str("version", Version).
		Str("source", a.runner.Source.Name()).
		Str("sink", a.runner.Sink.Name()).
		Dur("interval", a.cfg.Schedule.Interval).
		Msg("medal-bot starting")

	if a.bluesky != nil && !a.cfg.DryRun {
		if err := a.bluesky.Login(ctx); err != nil {
			return fmt.Errorf("login: %w", err)
		}
	}

	interval := a.cfg.Schedule.Interval
	if opts.once || interval == 0 {
		_, err := a.runner.RunOnce(ctx)
		a.dumpMetrics()
		return err
	}

	if addr := a.cfg.Metrics.ListenAddress; addr != "" && a.runner.Metrics != nil {
		go func() {
			log.Info().Str("addr", addr).Msg("serving /metrics")
			if err := a.runner.Metrics.Serve(ctx, addr); err != nil {
				log.Error().Err(err).Msg("metrics server")
			}
		}()
	}

	_, _ = a.runner.RunOnce(ctx)
	a.dumpMetrics()
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			log.Info().Err(ctx.Err()).Msg("stopping")
			return nil
		case <-ticker.C:
			_, _ = a.runner.RunOnce(ctx)
			a.dumpMetrics()
		}
	}
}

func previewCmd(opts *options) *cobra.Command {
	var count int
	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Compose posts and print them without publishing",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(*opts, false, false, true)
			if err != nil {
				return err
			}
			defer a.close()
			posts, err := a.runner.Preview(cmd.Context(), count)
			for i, p := range posts {
				if i > 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "----")
				}
				fmt.Fprintln(cmd.OutOrStdout(), p.Text)
				if p.Embed != nil {
					fmt.Fprintf(cmd.OutOrStdout(), "[embed] %s | %s | %s\n", p.Embed.URI, p.Embed.Title, p.Embed.Description)
				}
			}
			return err
		},
	}
	cmd.Flags().IntVarP(&count, "count", "n", 3, "number of posts to compose")
	return cmd
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), Version)
		},
	}
}
