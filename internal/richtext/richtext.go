// Package richtext finds links, mentions and hashtags in post text and
// reports them as byte-offset facets.
package richtext

import (
	"context"
	"regexp"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/rs/zerolog"

	"github.com/galois26/medal-bot/internal/model"
)

// MaxTagLength is the longest hashtag (in runes, without '#') that is linked.
const MaxTagLength = 64

var (
	linkRe    = regexp.MustCompile(`(?i)https?://\S+|[a-z][a-z0-9-]*(?:\.[a-z0-9-]+)+(?:[/?#:]\S*)?`)
	mentionRe = regexp.MustCompile(`@([a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?(?:\.[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?)+)`)
	tagRe     = regexp.MustCompile(`[#＃]\S+`)
)

// HandleResolver maps a handle such as "alice.bsky.social" to its DID.
type HandleResolver interface {
	ResolveHandle(ctx context.Context, handle string) (string, error)
}

// Detector annotates text. Without a resolver mentions are skipped.
type Detector struct {
	resolver HandleResolver
	log      zerolog.Logger
}

func NewDetector(resolver HandleResolver, log zerolog.Logger) *Detector {
	return &Detector{resolver: resolver, log: log}
}

// Annotate returns facets sorted by ByteStart. Offsets index the UTF-8 bytes
// of text, so text[f.Index.ByteStart:f.Index.ByteEnd] is the matched span.
// Mentions that do not resolve are dropped; only a cancelled context fails.
func (d *Detector) Annotate(ctx context.Context, text string) ([]model.Facet, error) {
	var facets []model.Facet
	facets = append(facets, Links(text)...)
	facets = append(facets, Tags(text)...)

	mentions, err := d.mentions(ctx, text)
	if err != nil {
		return nil, err
	}
	facets = append(facets, mentions...)

	sort.SliceStable(facets, func(i, j int) bool {
		return facets[i].Index.ByteStart < facets[j].Index.ByteStart
	})
	// drop overlaps, first span wins
	out := facets[:0]
	end := -1
	for _, f := range facets {
		if f.Index.ByteStart < end {
			continue
		}
		out = append(out, f)
		end = f.Index.ByteEnd
	}
	if len(out) == 0 {
		return nil, nil
	}
	return out, nil
}

// Links finds http(s) URLs and bare domains with a known TLD.
func Links(text string) []model.Facet {
	var out []model.Facet
	for _, m := range linkRe.FindAllStringIndex(text, -1) {
		start, end := m[0], m[1]
		if !boundary(text, start) {
			continue
		}
		end = start + len(trimLink(text[start:end]))
		raw := text[start:end]
		uri := raw
		if !hasScheme(raw) {
			if !knownTLD(host(raw)) {
				continue
			}
			uri = "https://" + raw
		} else if host(raw[strings.Index(raw, "://")+3:]) == "" {
			continue
		}
		out = append(out, facet(start, end, model.Feature{Type: model.FeatureLink, URI: uri}))
	}
	return out
}

// Tags finds hashtags that are not purely numeric.
func Tags(text string) []model.Facet {
	var out []model.Facet
	for _, m := range tagRe.FindAllStringIndex(text, -1) {
		start, end := m[0], m[1]
		if !boundary(text, start) {
			continue
		}
		_, hashLen := utf8.DecodeRuneInString(text[start:])
		tag := strings.TrimRightFunc(text[start+hashLen:end], unicode.IsPunct)
		if tag == "" || utf8.RuneCountInString(tag) > MaxTagLength || numeric(tag) {
			continue
		}
		end = start + hashLen + len(tag)
		out = append(out, facet(start, end, model.Feature{Type: model.FeatureTag, Tag: tag}))
	}
	return out
}

func (d *Detector) mentions(ctx context.Context, text string) ([]model.Facet, error) {
	if d.resolver == nil {
		return nil, nil
	}
	var out []model.Facet
	for _, m := range mentionRe.FindAllStringSubmatchIndex(text, -1) {
		start, end := m[0], m[1]
		if !boundary(text, start) {
			continue
		}
		handle := strings.ToLower(text[m[2]:m[3]])
		if numeric(handle[strings.LastIndexByte(handle, '.')+1:]) {
			continue
		}
		did, err := d.resolver.ResolveHandle(ctx, handle)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, ctxErr
			}
			d.log.Debug().Err(err).Str("handle", handle).Msg("mention not resolved")
			continue
		}
		out = append(out, facet(start, end, model.Feature{Type: model.FeatureMention, DID: did}))
	}
	return out, nil
}

func facet(start, end int, f model.Feature) model.Facet {
	return model.Facet{
		Index:    model.ByteSlice{ByteStart: start, ByteEnd: end},
		Features: []model.Feature{f},
	}
}

// boundary reports whether a match at i starts a word: start of text,
// after whitespace or after '('.
func boundary(text string, i int) bool {
	if i == 0 {
		return true
	}
	r, _ := utf8.DecodeLastRuneInString(text[:i])
	return unicode.IsSpace(r) || r == '('
}

// trimLink drops trailing punctuation and an unbalanced closing paren.
func trimLink(s string) string {
	for {
		t := strings.TrimRight(s, ".,;:!?\"'")
		if strings.HasSuffix(t, ")") && strings.Count(t, ")") > strings.Count(t, "(") {
			t = t[:len(t)-1]
		}
		if t == s {
			return s
		}
		s = t
	}
}

func hasScheme(s string) bool {
	l := strings.ToLower(s)
	return strings.HasPrefix(l, "http://") || strings.HasPrefix(l, "https://")
}

func host(s string) string {
	if i := strings.IndexAny(s, "/?#:"); i >= 0 {
		s = s[:i]
	}
	return strings.ToLower(s)
}

func numeric(s string) bool {
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
