package compose

import (
	"context"
	"fmt"
	"time"

	"github.com/galois26/medal-bot/internal/config"
	"github.com/galois26/medal-bot/internal/model"
)

// Annotator detects facets in final post text.
type Annotator interface {
	Annotate(ctx context.Context, text string) ([]model.Facet, error)
}

// CardSource fills link-card metadata for url, returning fallback when the
// page offers nothing better.
type CardSource interface {
	Card(ctx context.Context, url string, fallback model.Embed) model.Embed
}

// Assemble turns a finished draft into the record handed to a sink. The
// annotator sees the final text exactly once. cards may be nil.
func (c *Composer) Assemble(ctx context.Context, d Draft, ann Annotator, cards CardSource) (model.Post, error) {
	p := model.Post{
		Text:      d.Text,
		Langs:     append([]string(nil), c.cfg.Langs...),
		CreatedAt: time.Now().UTC(),
	}
	if ann != nil {
		facets, err := ann.Annotate(ctx, d.Text)
		if err != nil {
			return model.Post{}, fmt.Errorf("annotate: %w", err)
		}
		p.Facets = facets
	}
	if c.cfg.LinkMode == config.LinkEmbed && d.URL != "" {
		e := Fallback(d)
		if cards != nil {
			e = cards.Card(ctx, d.URL, e)
		}
		p.Embed = &e
	}
	return p, nil
}

// Fallback is the embed used when the linked page cannot be read.
func Fallback(d Draft) model.Embed {
	return model.Embed{
		URI:         d.URL,
		Title:       d.Row.Sport + " - " + d.Row.Event,
		Description: d.Row.City + " " + d.Row.Year + " " + olympics(d.Row.Season),
	}
}
