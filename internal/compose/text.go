package compose

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/galois26/medal-bot/internal/config"
	"github.com/galois26/medal-bot/internal/model"
)

// Draft is a composed post body before facets and embeds are attached.
type Draft struct {
	Text  string
	Row   model.Row // sampled row
	Key   model.EventKey
	URL   string // reference link, "" when none; inlined or embedded per link mode
	Lines int
}

// BuildText renders the post body for the event of row. It has no side
// effects: the same row and rows always produce the same draft.
func (c *Composer) BuildText(row model.Row, rows []model.Row) (Draft, error) {
	key := row.Key()
	group := Group(rows, key)
	lines, err := c.lines(group)
	if err != nil {
		return Draft{}, err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s %s - %s\n", row.City, row.Year, c.season(row.Season))
	fmt.Fprintf(&b, "%s - %s\n\n", row.Sport, row.Event)
	b.WriteString(strings.Join(lines, "\n"))

	d := Draft{Row: row, Key: key, Lines: len(lines)}
	if c.cfg.LinkMode != config.LinkNone {
		d.URL = referenceURL(row, group)
	}
	if c.cfg.LinkMode == config.LinkInline && d.URL != "" {
		b.WriteString("\n\n\n" + d.URL)
	}
	d.Text = b.String()
	return d, nil
}

func (c *Composer) season(s string) string {
	if !c.cfg.OlympicsLabel {
		return s
	}
	return olympics(s)
}

// olympics turns "summer" into "Summer Olympics".
func olympics(season string) string {
	return cases.Title(language.English).String(season) + " Olympics"
}

func referenceURL(row model.Row, group []model.Row) string {
	if row.URL != "" {
		return row.URL
	}
	for _, r := range group {
		if r.URL != "" {
			return r.URL
		}
	}
	return ""
}
