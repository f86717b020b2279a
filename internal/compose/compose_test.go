package compose

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/galois26/medal-bot/internal/config"
	"github.com/galois26/medal-bot/internal/country"
	"github.com/galois26/medal-bot/internal/model"
)

// seq picks the given indexes in order, repeating the last one.
type seq struct {
	idx   []int
	calls int
}

func (s *seq) IntN(n int) int {
	i := s.idx[len(s.idx)-1]
	if s.calls < len(s.idx) {
		i = s.idx[s.calls]
	}
	s.calls++
	return i % n
}

func pick(idx ...int) *seq { return &seq{idx: idx} }

func renderCfg(mut ...func(*config.RenderConfig)) config.RenderConfig {
	c := config.RenderConfig{
		Disambiguation: config.Parenthetical,
		LinkMode:       config.LinkNone,
		Langs:          []string{"en"},
	}
	for _, m := range mut {
		m(&c)
	}
	return c
}

func athens() []model.Row {
	base := model.Row{
		Olympiad: "Athina 1896", Season: "summer", Year: "1896", City: "Athens",
		Sport: "Gymnastics", Event: "Horizontal Bar, Men", Code: "GER", Country: "Germany",
	}
	gold, silver := base, base
	gold.Winner, gold.Medal = "Hermann Weingärtner", model.Gold
	silver.Winner, silver.Medal = "Alfred Flatow", model.Silver
	return []model.Row{gold, silver}
}

func TestAthensExample(t *testing.T) {
	rows := athens()
	c := New(renderCfg(), country.NewResolver(nil), pick(1))

	out, err := c.Compose(rows)
	require.NoError(t, err)
	require.True(t, out.Found)
	assert.Equal(t, 1, out.Attempts)
	assert.Equal(t, "Athens 1896 - summer\nGymnastics - Horizontal Bar, Men\n\n"+
		"🥇: Hermann Weingärtner (Germany)\n"+
		"🥈: Alfred Flatow (Germany)", out.Draft.Text)
	assert.Equal(t, rows[1], out.Draft.Row)
	assert.Equal(t, 2, out.Draft.Lines)
}

func TestSampleEmpty(t *testing.T) {
	_, _, err := Sample(nil, pick(0))
	assert.ErrorIs(t, err, ErrDataUnavailable)

	_, err = New(renderCfg(), country.NewResolver(nil), pick(0)).Compose(nil)
	assert.ErrorIs(t, err, ErrDataUnavailable)
}

func TestSampleUsesPicker(t *testing.T) {
	rows := athens()
	r, key, err := Sample(rows, pick(1))
	require.NoError(t, err)
	assert.Equal(t, "Alfred Flatow", r.Winner)
	assert.Equal(t, rows[0].Key(), key)
}

func TestGroupIsExact(t *testing.T) {
	rows := athens()
	other := rows[0]
	other.Event = "Horizontal Bar, men" // case differs
	later := rows[0]
	later.Year, later.Olympiad = "1900", "Paris 1900"
	rows = append(rows, other, later)

	g := Group(rows, rows[0].Key())
	assert.Equal(t, rows[:2], g)
	for _, r := range rows {
		assert.Contains(t, Group(rows, r.Key()), r)
	}
}

func TestAggregateOrdersByTierStable(t *testing.T) {
	mk := func(w string, m model.Medal) model.Row {
		return model.Row{Season: "summer", Year: "2000", City: "Sydney", Sport: "Swimming", Event: "Relay", Winner: w, Code: "AUS", Country: "Australia", Medal: m}
	}
	rows := []model.Row{
		mk("C1", model.Bronze),
		mk("S1", model.Silver),
		mk("G1", model.Gold),
		mk("C2", model.Bronze),
		mk("G1", model.Gold), // duplicate kept
		mk("S2", model.Silver),
	}
	lines, err := New(renderCfg(), country.NewResolver(nil), pick(0)).Aggregate(rows, rows[0].Key())
	require.NoError(t, err)
	assert.Equal(t, []string{
		"🥇: G1 (Australia)",
		"🥇: G1 (Australia)",
		"🥈: S1 (Australia)",
		"🥈: S2 (Australia)",
		"🥉: C1 (Australia)",
		"🥉: C2 (Australia)",
	}, lines)
}

func TestDisambiguation(t *testing.T) {
	team := model.Row{Winner: "Germany", Code: "GER", Country: "Germany", Medal: model.Gold}
	named := model.Row{Winner: "Germany 2", Code: "GER", Medal: model.Gold}
	person := model.Row{Winner: "Carl Schuhmann", Code: "GER", Medal: model.Gold}
	committee := model.Row{Winner: "Mixed team", Code: "MIX", Country: "Mixed team", Medal: model.Gold}

	tests := []struct {
		name string
		mode string
		row  model.Row
		want string
	}{
		{"parenthetical team", config.Parenthetical, team, "🥇: Germany"},
		{"parenthetical resolved", config.Parenthetical, named, "🥇: Germany 2"},
		{"parenthetical person", config.Parenthetical, person, "🥇: Carl Schuhmann (Germany)"},
		{"parenthetical committee column", config.Parenthetical, committee, "🥇: Mixed team"},
		{"team prefix team", config.TeamPrefix, team, "🥇: Team Germany"},
		{"team prefix person", config.TeamPrefix, person, "🥇: Carl Schuhmann (Germany)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New(renderCfg(func(r *config.RenderConfig) { r.Disambiguation = tt.mode }), country.NewResolver(nil), pick(0))
			lines, err := c.Aggregate([]model.Row{tt.row}, tt.row.Key())
			require.NoError(t, err)
			assert.Equal(t, []string{tt.want}, lines)
		})
	}
}

func TestRenderDefectIsNotRetried(t *testing.T) {
	rows := athens()
	rows[0].Country, rows[0].Code = "", "XXX"
	c := New(renderCfg(), country.NewResolver(nil), pick(0, 1, 0, 1, 0))

	out, err := c.Compose(rows)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrRenderDefect)
	var defect *RenderDefectError
	require.ErrorAs(t, err, &defect)
	assert.Equal(t, "XXX", defect.Code)
	assert.Equal(t, 1, out.Attempts)
	assert.False(t, out.Found)
}

func TestResolverOverride(t *testing.T) {
	rows := athens()
	rows[0].Country, rows[0].Code = "", "XXX"
	c := New(renderCfg(), country.NewResolver(map[string]string{"xxx": "Atlantis"}), pick(0))
	lines, err := c.Aggregate(rows, rows[0].Key())
	require.NoError(t, err)
	assert.Equal(t, "🥇: Hermann Weingärtner (Atlantis)", lines[0])
}

func longEvent() []model.Row {
	var rows []model.Row
	for i := 0; i < 40; i++ {
		rows = append(rows, model.Row{
			Season: "summer", Year: "1920", City: "Antwerp", Sport: "Athletics", Event: "Tug of War, Men",
			Winner: "Athlete Number " + strings.Repeat("x", 5), Code: "GBR", Medal: model.Gold,
		})
	}
	return rows
}

func TestGuardRejectsLongEvents(t *testing.T) {
	long := longEvent()
	rows := append(long, athens()...)

	// three long picks, then a short one
	c := New(renderCfg(), country.NewResolver(nil), pick(0, 3, 7, len(long)))
	out, err := c.Compose(rows)
	require.NoError(t, err)
	require.True(t, out.Found)
	assert.Equal(t, 4, out.Attempts)
	assert.Equal(t, 1, out.Rejected)
	assert.Less(t, Length(out.Draft.Text), config.DefaultMaxLength)
	assert.True(t, strings.HasPrefix(out.Draft.Text, "Athens 1896"))
}

func TestGuardExhaustion(t *testing.T) {
	p := pick(0)
	c := New(renderCfg(), country.NewResolver(nil), p)
	out, err := c.Compose(longEvent())
	require.NoError(t, err)
	assert.False(t, out.Found)
	assert.Equal(t, MaxAttempts, out.Attempts)
	assert.Equal(t, MaxAttempts, p.calls)
	assert.Empty(t, out.Draft.Text)
}

func TestGuardUnbounded(t *testing.T) {
	c := New(renderCfg(func(r *config.RenderConfig) { r.Unbounded = true }), country.NewResolver(nil), pick(0))
	out, err := c.Compose(longEvent())
	require.NoError(t, err)
	require.True(t, out.Found)
	assert.Equal(t, 1, out.Attempts)
	assert.Greater(t, Length(out.Draft.Text), config.DefaultMaxLength)
}

func TestGuardZeroMaxLength(t *testing.T) {
	zero := 0
	c := New(renderCfg(func(r *config.RenderConfig) { r.MaxLength = &zero }), country.NewResolver(nil), pick(0))
	out, err := c.Compose(longEvent())
	require.NoError(t, err)
	require.True(t, out.Found)
	assert.Equal(t, 1, out.Attempts)
	assert.Greater(t, Length(out.Draft.Text), config.DefaultMaxLength)
}

func TestLengthCountsGraphemes(t *testing.T) {
	assert.Equal(t, 3, Length("🥇🥈🥉"))
	assert.Equal(t, 1, Length("a\u0308"))
	assert.Equal(t, 1, Length("\U0001F469\u200d\U0001F469\u200d\U0001F467"))
}

func TestBuildTextDeterministic(t *testing.T) {
	rows := athens()
	c := New(renderCfg(), country.NewResolver(nil), pick(0))
	a, err := c.BuildText(rows[0], rows)
	require.NoError(t, err)
	b, err := c.BuildText(rows[0], rows)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestOlympicsLabel(t *testing.T) {
	rows := athens()
	c := New(renderCfg(func(r *config.RenderConfig) { r.OlympicsLabel = true }), country.NewResolver(nil), pick(0))
	d, err := c.BuildText(rows[0], rows)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(d.Text, "Athens 1896 - Summer Olympics\nGymnastics - Horizontal Bar, Men\n\n"))
}

func TestLinkModes(t *testing.T) {
	rows := athens()
	rows[1].URL = "https://en.wikipedia.org/wiki/Gymnastics_at_the_1896_Summer_Olympics"

	none := New(renderCfg(), country.NewResolver(nil), pick(0))
	d, err := none.BuildText(rows[0], rows)
	require.NoError(t, err)
	assert.Empty(t, d.URL)
	assert.NotContains(t, d.Text, "http")

	embed := New(renderCfg(func(r *config.RenderConfig) { r.LinkMode = config.LinkEmbed }), country.NewResolver(nil), pick(0))
	d, err = embed.BuildText(rows[0], rows)
	require.NoError(t, err)
	assert.Equal(t, rows[1].URL, d.URL)
	assert.NotContains(t, d.Text, "http")

	inline := New(renderCfg(func(r *config.RenderConfig) { r.LinkMode = config.LinkInline }), country.NewResolver(nil), pick(0))
	d, err = inline.BuildText(rows[0], rows)
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(d.Text, "🥈: Alfred Flatow (Germany)\n\n\n"+rows[1].URL))
}

type countingAnnotator struct {
	texts []string
}

func (a *countingAnnotator) Annotate(_ context.Context, text string) ([]model.Facet, error) {
	a.texts = append(a.texts, text)
	i := strings.Index(text, "https://")
	if i < 0 {
		return nil, nil
	}
	return []model.Facet{{
		Index:    model.ByteSlice{ByteStart: i, ByteEnd: len(text)},
		Features: []model.Feature{{Type: model.FeatureLink, URI: text[i:]}},
	}}, nil
}

type fixedCards struct{ title string }

func (f fixedCards) Card(_ context.Context, url string, fallback model.Embed) model.Embed {
	if f.title == "" {
		return fallback
	}
	return model.Embed{URI: url, Title: f.title, Description: fallback.Description}
}

func TestAssembleInline(t *testing.T) {
	rows := athens()
	rows[0].URL = "https://example.org/1896"
	c := New(renderCfg(func(r *config.RenderConfig) { r.LinkMode = config.LinkInline }), country.NewResolver(nil), pick(0))
	out, err := c.Compose(rows)
	require.NoError(t, err)

	ann := &countingAnnotator{}
	p, err := c.Assemble(context.Background(), out.Draft, ann, fixedCards{title: "unused"})
	require.NoError(t, err)
	assert.Equal(t, []string{out.Draft.Text}, ann.texts)
	require.Len(t, p.Facets, 1)
	ix := p.Facets[0].Index
	assert.Equal(t, "https://example.org/1896", p.Text[ix.ByteStart:ix.ByteEnd])
	assert.Nil(t, p.Embed)
	assert.Equal(t, []string{"en"}, p.Langs)
	assert.False(t, p.CreatedAt.IsZero())
}

func TestAssembleEmbed(t *testing.T) {
	rows := athens()
	rows[0].URL = "https://example.org/1896"
	c := New(renderCfg(func(r *config.RenderConfig) { r.LinkMode = config.LinkEmbed }), country.NewResolver(nil), pick(0))
	out, err := c.Compose(rows)
	require.NoError(t, err)

	ann := &countingAnnotator{}
	p, err := c.Assemble(context.Background(), out.Draft, ann, nil)
	require.NoError(t, err)
	assert.Len(t, ann.texts, 1)
	assert.Empty(t, p.Facets)
	require.NotNil(t, p.Embed)
	assert.Equal(t, model.Embed{
		URI:         "https://example.org/1896",
		Title:       "Gymnastics - Horizontal Bar, Men",
		Description: "Athens 1896 Summer Olympics",
	}, *p.Embed)

	p, err = c.Assemble(context.Background(), out.Draft, ann, fixedCards{title: "Gymnastics at the 1896 Summer Olympics"})
	require.NoError(t, err)
	assert.Equal(t, "Gymnastics at the 1896 Summer Olympics", p.Embed.Title)
}
