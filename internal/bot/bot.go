// Package bot wires one run: load the dataset, compose, annotate, publish.
package bot

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/galois26/medal-bot/internal/compose"
	"github.com/galois26/medal-bot/internal/metrics"
	"github.com/galois26/medal-bot/internal/model"
	"github.com/galois26/medal-bot/internal/sink"
	"github.com/galois26/medal-bot/internal/source"
)

// Runner holds the collaborators of a run. Annotator, Cards and Metrics are
// optional.
type Runner struct {
	Source    source.Source
	Composer  *compose.Composer
	Annotator compose.Annotator
	Cards     compose.CardSource
	Sink      sink.Sink
	Metrics   *metrics.Metrics
	PushURL   string // Pushgateway, pushed after every run when set
	Job       string
	Log       zerolog.Logger
}

// Result describes one run.
type Result struct {
	RunID    string
	Outcome  string
	Attempts int
	Key      model.EventKey
	Post     model.Post
	Receipt  sink.Receipt
}

// RunOnce performs one independent run. Finding nothing short enough to post
// is a normal result with Outcome no_result; only failures return an error.
func (r *Runner) RunOnce(ctx context.Context) (Result, error) {
	res := Result{RunID: uuid.NewString()}
	log := r.Log.With().Str("run_id", res.RunID).Logger()
	start := time.Now()

	res, err := r.run(ctx, log, res)
	if err != nil {
		res.Outcome = metrics.OutcomeFailed
		log.Error().Err(err).Dur("took", time.Since(start)).Msg("run failed")
	}
	if r.Metrics != nil {
		r.Metrics.ObserveRun(res.Outcome)
		if r.PushURL != "" {
			if perr := r.Metrics.Push(ctx, r.PushURL, r.Job); perr != nil {
				log.Warn().Err(perr).Msg("metrics push failed")
			}
		}
	}
	return res, err
}

func (r *Runner) run(ctx context.Context, log zerolog.Logger, res Result) (Result, error) {
	rows, err := r.load(ctx)
	if err != nil {
		return res, err
	}
	log.Debug().Str("source", r.Source.Name()).Int("rows", len(rows)).Msg("dataset loaded")

	out, err := r.Composer.Compose(rows)
	res.Attempts = out.Attempts
	if r.Metrics != nil {
		r.Metrics.ObserveCompose(out.Attempts)
	}
	if err != nil {
		return res, err
	}
	if !out.Found {
		res.Outcome = metrics.OutcomeNoResult
		log.Info().Int("attempts", out.Attempts).Int("too_long", out.Rejected).Msg("couldn't find a suitable result")
		return res, nil
	}
	res.Key = out.Draft.Key
	length := compose.Length(out.Draft.Text)
	if r.Metrics != nil {
		r.Metrics.ObserveLength(length)
	}

	post, err := r.Composer.Assemble(ctx, out.Draft, r.Annotator, r.Cards)
	if err != nil {
		return res, err
	}
	res.Post = post

	pubStart := time.Now()
	receipt, err := r.Sink.Publish(ctx, post)
	if r.Metrics != nil {
		r.Metrics.ObservePublish(time.Since(pubStart))
	}
	if err != nil {
		return res, fmt.Errorf("publish to %s: %w", r.Sink.Name(), err)
	}
	res.Receipt = receipt
	res.Outcome = metrics.OutcomePosted
	if receipt.DryRun {
		res.Outcome = metrics.OutcomeDryRun
	}
	log.Info().
		Str("event", out.Draft.Key.String()).
		Int("attempts", out.Attempts).
		Int("length", length).
		Int("facets", len(post.Facets)).
		Bool("embed", post.Embed != nil).
		Str("uri", receipt.URI).
		Str("outcome", res.Outcome).
		Msg("run finished")
	return res, nil
}

func (r *Runner) load(ctx context.Context) ([]model.Row, error) {
	rows, err := r.Source.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", compose.ErrDataUnavailable, err)
	}
	return rows, nil
}

// Preview composes up to n posts from one dataset load without publishing.
// Events that never fit are skipped.
func (r *Runner) Preview(ctx context.Context, n int) ([]model.Post, error) {
	rows, err := r.load(ctx)
	if err != nil {
		return nil, err
	}
	var posts []model.Post
	for i := 0; i < n; i++ {
		out, err := r.Composer.Compose(rows)
		if err != nil {
			return posts, err
		}
		if !out.Found {
			r.Log.Info().Int("attempts", out.Attempts).Msg("couldn't find a suitable result")
			continue
		}
		p, err := r.Composer.Assemble(ctx, out.Draft, r.Annotator, r.Cards)
		if err != nil {
			return posts, err
		}
		posts = append(posts, p)
	}
	return posts, nil
}
