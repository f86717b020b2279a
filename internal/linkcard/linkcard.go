// Package linkcard reads Open Graph metadata for external embeds.
package linkcard

import (
	"context"
	"io"
	"net/http"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog"

	"github.com/galois26/medal-bot/internal/config"
	"github.com/galois26/medal-bot/internal/model"
	"github.com/galois26/medal-bot/internal/util"
)

// maxPageSize caps how much HTML is parsed per page.
const maxPageSize = 1 << 20

type Fetcher struct {
	cfg    config.LinkCardConfig
	client *http.Client
	log    zerolog.Logger
}

func NewFetcher(cfg config.LinkCardConfig, log zerolog.Logger) *Fetcher {
	return &Fetcher{cfg: cfg, client: util.NewHTTPClient(cfg.Timeout), log: log}
}

// Card returns metadata for url. Fields the page does not provide, and any
// fetch failure, fall back to fallback. It never fails.
func (f *Fetcher) Card(ctx context.Context, url string, fallback model.Embed) model.Embed {
	card := fallback
	card.URI = url
	if !f.cfg.Fetch {
		return card
	}
	doc, err := f.fetch(ctx, url)
	if err != nil {
		f.log.Warn().Err(err).Str("url", url).Msg("link card fetch failed, using fallback")
		return card
	}
	if t := first(doc, `meta[property="og:title"]`, `meta[name="twitter:title"]`); t != "" {
		card.Title = t
	} else if t := strings.TrimSpace(doc.Find("head title").First().Text()); t != "" {
		card.Title = t
	}
	if d := first(doc, `meta[property="og:description"]`, `meta[name="twitter:description"]`, `meta[name="description"]`); d != "" {
		card.Description = d
	}
	return card
}

func (f *Fetcher) fetch(ctx context.Context, url string) (*goquery.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "text/html")
	if ua := f.cfg.UserAgent; ua != "" {
		req.Header.Set("User-Agent", ua)
	}
	resp, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}
	if err := util.CheckResponse(resp); err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	return goquery.NewDocumentFromReader(io.LimitReader(resp.Body, maxPageSize))
}

// first returns the content of the first selector with a non-empty value.
func first(doc *goquery.Document, selectors ...string) string {
	for _, sel := range selectors {
		if v, ok := doc.Find(sel).First().Attr("content"); ok {
			if v = strings.TrimSpace(v); v != "" {
				return v
			}
		}
	}
	return ""
}
