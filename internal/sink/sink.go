package sink

import (
	"context"
	"time"

	"github.com/galois26/medal-bot/internal/model"
)

// Sink publishes one post per call.
type Sink interface {
	Name() string
	Publish(ctx context.Context, p model.Post) (Receipt, error)
}

// Receipt identifies a published record. Dry runs leave URI and CID empty.
type Receipt struct {
	URI    string
	CID    string
	DryRun bool
}

const postCollection = "app.bsky.feed.post"

// postRecord is the app.bsky.feed.post lexicon record.
type postRecord struct {
	Type      string         `json:"$type"`
	Text      string         `json:"text"`
	CreatedAt string         `json:"createdAt"`
	Langs     []string       `json:"langs,omitempty"`
	Facets    []model.Facet  `json:"facets,omitempty"`
	Embed     *externalEmbed `json:"embed,omitempty"`
}

type externalEmbed struct {
	Type     string      `json:"$type"`
	External model.Embed `json:"external"`
}

func newRecord(p model.Post) postRecord {
	created := p.CreatedAt
	if created.IsZero() {
		created = time.Now()
	}
	r := postRecord{
		Type:      postCollection,
		Text:      p.Text,
		CreatedAt: created.UTC().Format(time.RFC3339Nano),
		Langs:     p.Langs,
		Facets:    p.Facets,
	}
	if p.Embed != nil {
		r.Embed = &externalEmbed{Type: "app.bsky.embed.external", External: *p.Embed}
	}
	return r
}
