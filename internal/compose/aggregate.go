package compose

import (
	"strings"

	"github.com/galois26/medal-bot/internal/config"
	"github.com/galois26/medal-bot/internal/model"
)

// Group returns every row whose event key equals key, in dataset order.
func Group(rows []model.Row, key model.EventKey) []model.Row {
	var out []model.Row
	for _, r := range rows {
		if r.Key() == key {
			out = append(out, r)
		}
	}
	return out
}

// Aggregate renders the event group for key as medal lines: gold first, then
// silver, then bronze, keeping dataset order within a tier. Duplicate
// entries each get their own line.
func (c *Composer) Aggregate(rows []model.Row, key model.EventKey) ([]string, error) {
	return c.lines(Group(rows, key))
}

func (c *Composer) lines(group []model.Row) ([]string, error) {
	lines := make([]string, 0, len(group))
	for _, m := range model.Medals {
		for _, r := range group {
			if r.Medal != m {
				continue
			}
			name, err := c.winner(r)
			if err != nil {
				return nil, err
			}
			lines = append(lines, m.Glyph()+": "+name)
		}
	}
	return lines, nil
}

// winner applies the configured disambiguation to r.Winner.
func (c *Composer) winner(r model.Row) (string, error) {
	country, err := c.countryName(r)
	if err != nil {
		return "", err
	}
	if strings.Contains(r.Winner, country) {
		if c.cfg.Disambiguation == config.TeamPrefix {
			return "Team " + r.Winner, nil
		}
		return r.Winner, nil
	}
	return r.Winner + " (" + country + ")", nil
}

func (c *Composer) countryName(r model.Row) (string, error) {
	if c.cfg.Disambiguation != config.TeamPrefix && r.Country != "" {
		return r.Country, nil
	}
	if name, ok := c.names.Name(r.Code); ok {
		return name, nil
	}
	return "", &RenderDefectError{Row: r, Code: r.Code}
}
