package richtext

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/galois26/medal-bot/internal/model"
)

type handles map[string]string

func (h handles) ResolveHandle(_ context.Context, handle string) (string, error) {
	if did, ok := h[handle]; ok {
		return did, nil
	}
	return "", errors.New("not found")
}

func spans(text string, facets []model.Facet) []string {
	var out []string
	for _, f := range facets {
		out = append(out, text[f.Index.ByteStart:f.Index.ByteEnd])
	}
	return out
}

func TestLinkAfterGlyphs(t *testing.T) {
	url := "https://en.wikipedia.org/wiki/Gymnastics_at_the_1896_Summer_Olympics"
	text := "Athens 1896 - summer\nGymnastics - Horizontal Bar, Men\n\n" +
		"🥇: Hermann Weingärtner (Germany)\n🥈: Alfred Flatow (Germany)\n\n\n" + url

	facets, err := NewDetector(nil, zerolog.Nop()).Annotate(context.Background(), text)
	require.NoError(t, err)
	require.Len(t, facets, 1)
	f := facets[0]
	assert.Equal(t, url, text[f.Index.ByteStart:f.Index.ByteEnd])
	assert.Equal(t, len(text), f.Index.ByteEnd)
	assert.Equal(t, []model.Feature{{Type: model.FeatureLink, URI: url}}, f.Features)
}

func TestLinks(t *testing.T) {
	tests := []struct {
		text string
		want []string
		uris []string
	}{
		{"see https://example.com.", []string{"https://example.com"}, []string{"https://example.com"}},
		{"(https://en.wikipedia.org/wiki/Foo_(bar))", []string{"https://en.wikipedia.org/wiki/Foo_(bar)"}, []string{"https://en.wikipedia.org/wiki/Foo_(bar)"}},
		{"(see olympics.com)", []string{"olympics.com"}, []string{"https://olympics.com"}},
		{"bsky.app/profile/x, and more", []string{"bsky.app/profile/x"}, []string{"https://bsky.app/profile/x"}},
		{"example.de", []string{"example.de"}, []string{"https://example.de"}},
		{"St. Louis 1904", nil, nil},
		{"file.exe and config.yaml", nil, nil},
		{"mail bob@example.com", nil, nil},
		{"https:// nothing", nil, nil},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			facets := Links(tt.text)
			assert.Equal(t, tt.want, spans(tt.text, facets))
			var uris []string
			for _, f := range facets {
				uris = append(uris, f.Features[0].URI)
			}
			assert.Equal(t, tt.uris, uris)
		})
	}
}

func TestTags(t *testing.T) {
	text := "#Olympics1896 #1896 go#no #gymnastics! ＃athens"
	facets := Tags(text)
	assert.Equal(t, []string{"#Olympics1896", "#gymnastics", "＃athens"}, spans(text, facets))
	assert.Equal(t, "athens", facets[2].Features[0].Tag)

	assert.Len(t, Tags("#"+strings.Repeat("b", MaxTagLength)), 1)
	assert.Empty(t, Tags("#"+strings.Repeat("b", MaxTagLength+1)))
}

func TestMentions(t *testing.T) {
	text := "🥇 to @Alice.bsky.social and @nobody.example.com, cc @bob.test"
	d := NewDetector(handles{"alice.bsky.social": "did:plc:alice", "bob.test": "did:plc:bob"}, zerolog.Nop())

	facets, err := d.Annotate(context.Background(), text)
	require.NoError(t, err)
	assert.Equal(t, []string{"@Alice.bsky.social", "@bob.test"}, spans(text, facets))
	assert.Equal(t, "did:plc:alice", facets[0].Features[0].DID)
	assert.Equal(t, model.FeatureMention, facets[1].Features[0].Type)
}

func TestAnnotateSortedAndNilWithoutMatches(t *testing.T) {
	d := NewDetector(handles{"a.bsky.social": "did:plc:a"}, zerolog.Nop())
	text := "#tag then https://x.org then @a.bsky.social"
	facets, err := d.Annotate(context.Background(), text)
	require.NoError(t, err)
	assert.Equal(t, []string{"#tag", "https://x.org", "@a.bsky.social"}, spans(text, facets))
	for i := 1; i < len(facets); i++ {
		assert.Less(t, facets[i-1].Index.ByteStart, facets[i].Index.ByteStart)
	}

	facets, err = d.Annotate(context.Background(), "🥇: Hermann Weingärtner (Germany)")
	require.NoError(t, err)
	assert.Nil(t, facets)
}

func TestAnnotateCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewDetector(handles{}, zerolog.Nop()).Annotate(ctx, "hi @someone.bsky.social")
	assert.ErrorIs(t, err, context.Canceled)
}
