package main

import (
	"fmt"
	"io"
	"math/rand/v2"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/galois26/medal-bot/internal/bot"
	"github.com/galois26/medal-bot/internal/compose"
	"github.com/galois26/medal-bot/internal/config"
	"github.com/galois26/medal-bot/internal/country"
	"github.com/galois26/medal-bot/internal/linkcard"
	"github.com/galois26/medal-bot/internal/logging"
	"github.com/galois26/medal-bot/internal/metrics"
	"github.com/galois26/medal-bot/internal/richtext"
	"github.com/galois26/medal-bot/internal/sink"
	"github.com/galois26/medal-bot/internal/source"
)

type app struct {
	cfg     *config.Config
	log     zerolog.Logger
	closer  io.Closer
	runner  *bot.Runner
	bluesky *sink.Bluesky
}

// newApp loads configuration and builds the runner. Preview forces dry run.
func newApp(opts options, dryRunSet, intervalSet, preview bool) (*app, error) {
	if err := config.LoadEnvFile(opts.envFile); err != nil {
		return nil, err
	}
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return nil, err
	}
	if dryRunSet {
		cfg.DryRun = opts.dryRun
	}
	if intervalSet {
		cfg.Schedule.Interval = opts.interval
	}
	if preview {
		cfg.DryRun = true
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	log, closer, err := logging.New(cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("init logging: %w", err)
	}

	src, err := source.NewFromConfig(cfg.Dataset)
	if err != nil {
		closer.Close()
		return nil, fmt.Errorf("build source: %w", err)
	}

	seed := opts.seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	composer := compose.New(cfg.Render, country.NewResolver(cfg.Countries), rand.New(rand.NewPCG(seed, seed>>1|1)))

	// Handles resolve without a session, so dry runs still annotate mentions.
	bsky := sink.NewBluesky(cfg.Bluesky, log)
	var sk sink.Sink = bsky
	if cfg.DryRun {
		sk = sink.NewStdout(os.Stdout)
	}

	var m *metrics.Metrics
	if cfg.Metrics.Enable || cfg.Metrics.PushURL != "" || cfg.Metrics.ListenAddress != "" {
		m = metrics.New()
	}

	log.Debug().Uint64("seed", seed).Str("disambiguation", cfg.Render.Disambiguation).
		Str("link_mode", cfg.Render.LinkMode).Int("max_length", cfg.Render.EffectiveMaxLength()).
		Bool("dry_run", cfg.DryRun).Msg("configured")

	return &app{
		cfg:    cfg,
		log:    log,
		closer: closer,
		runner: &bot.Runner{
			Source:    src,
			Composer:  composer,
			Annotator: richtext.NewDetector(bsky, log),
			Cards:     linkcard.NewFetcher(cfg.LinkCard, log),
			Sink:      sk,
			Metrics:   m,
			PushURL:   cfg.Metrics.PushURL,
			Job:       cfg.Metrics.Job,
			Log:       log,
		},
		bluesky: bsky,
	}, nil
}

// dumpMetrics logs a one-line snapshot when metrics are enabled.
func (a *app) dumpMetrics() {
	if a.runner.Metrics == nil || !a.cfg.Metrics.Enable {
		return
	}
	if snap := a.runner.Metrics.Dump(); snap != "" {
		a.log.Info().Str("snapshot", snap).Msg("metrics")
	}
}

func (a *app) close() {
	_ = a.closer.Close()
}
