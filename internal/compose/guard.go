package compose

import (
	"github.com/rivo/uniseg"

	"github.com/galois26/medal-bot/internal/config"
	"github.com/galois26/medal-bot/internal/model"
)

// MaxAttempts bounds how many events Compose samples before giving up.
const MaxAttempts = 5

// Composer turns a dataset into post drafts. It holds no per-run state.
type Composer struct {
	cfg       config.RenderConfig
	maxLength int
	names     Names
	picker    Picker
}

// Names resolves committee codes to display names; *country.Resolver
// satisfies it.
type Names interface {
	Name(code string) (string, bool)
}

func New(cfg config.RenderConfig, names Names, picker Picker) *Composer {
	return &Composer{cfg: cfg, maxLength: cfg.EffectiveMaxLength(), names: names, picker: picker}
}

// Outcome is the result of Compose. Found is false when no sampled event fit
// the length limit; that is a normal "nothing to post" result.
type Outcome struct {
	Draft    Draft
	Found    bool
	Attempts int
	Rejected int // distinct events that were too long
}

// Length counts user-perceived characters (grapheme clusters).
func Length(text string) int {
	return uniseg.GraphemeClusterCount(text)
}

// Compose samples events until one renders within the length limit, trying
// at most MaxAttempts times. Only ErrDataUnavailable and render defects are
// returned as errors.
func (c *Composer) Compose(rows []model.Row) (Outcome, error) {
	rejected := make(map[model.EventKey]struct{})
	for attempt := 1; attempt <= MaxAttempts; attempt++ {
		row, key, err := Sample(rows, c.picker)
		if err != nil {
			return Outcome{Attempts: attempt}, err
		}
		if _, ok := rejected[key]; ok {
			continue
		}
		d, err := c.BuildText(row, rows)
		if err != nil {
			return Outcome{Attempts: attempt}, err
		}
		if c.fits(d.Text) {
			return Outcome{Draft: d, Found: true, Attempts: attempt, Rejected: len(rejected)}, nil
		}
		rejected[key] = struct{}{}
	}
	return Outcome{Attempts: MaxAttempts, Rejected: len(rejected)}, nil
}

func (c *Composer) fits(text string) bool {
	return c.maxLength <= 0 || Length(text) < c.maxLength
}
