package source

import (
	"errors"
	"fmt"
	"strings"

	"github.com/hashicorp/go-multierror"
	"golang.org/x/text/unicode/norm"

	"github.com/galois26/medal-bot/internal/model"
)

// Field names accepted in dataset.columns.
const (
	FieldOlympiad      = "olympiad"
	FieldSeason        = "season"
	FieldYear          = "year"
	FieldMonth         = "month"
	FieldDay           = "day"
	FieldCity          = "city"
	FieldSport         = "sport"
	FieldEvent         = "event"
	FieldGender        = "gender"
	FieldWinner        = "winner"
	FieldCountry       = "country"
	FieldCode          = "code"
	FieldCommitteeType = "committee_type"
	FieldMedal         = "medal"
	FieldURL           = "url"
)

// aliases lists accepted (normalised) headers per field, covering both
// dataset generations.
var aliases = map[string][]string{
	FieldOlympiad:      {"olympiad", "games", "edition"},
	FieldSeason:        {"season", "olympic_season"},
	FieldYear:          {"year", "olympic_year"},
	FieldMonth:         {"month"},
	FieldDay:           {"day"},
	FieldCity:          {"city", "olympic_city", "host_city"},
	FieldSport:         {"sport", "discipline"},
	FieldEvent:         {"event", "event_name"},
	FieldGender:        {"gender", "sex"},
	FieldWinner:        {"winner", "athlete", "athlete_name", "name"},
	FieldCountry:       {"country", "committee", "noc_name", "nation"},
	FieldCode:          {"code", "country_code", "noc", "committee_code"},
	FieldCommitteeType: {"committee_type"},
	FieldMedal:         {"medal", "medal_type"},
	FieldURL:           {"url", "link", "wikipedia_url", "reference"},
}

var required = []string{FieldSeason, FieldYear, FieldCity, FieldSport, FieldEvent, FieldMedal, FieldWinner, FieldCode}

// maxRowErrors bounds how many bad rows are reported before giving up.
const maxRowErrors = 20

func normalizeHeader(h string) string {
	h = strings.TrimPrefix(h, "\ufeff")
	h = strings.ToLower(strings.TrimSpace(h))
	return strings.Join(strings.Fields(h), "_")
}

func clean(s string) string {
	return norm.NFC.String(strings.TrimSpace(s))
}

// columns maps field name -> record index.
type columns map[string]int

func mapColumns(header []string, overrides map[string]string) (columns, error) {
	index := make(map[string]int, len(header))
	for i, h := range header {
		n := normalizeHeader(h)
		if _, dup := index[n]; !dup && n != "" {
			index[n] = i
		}
	}

	cols := make(columns, len(aliases))
	var errs *multierror.Error
	for field, hdr := range overrides {
		field = strings.ToLower(strings.TrimSpace(field))
		if _, known := aliases[field]; !known {
			errs = multierror.Append(errs, fmt.Errorf("columns: unknown field %q", field))
			continue
		}
		i, ok := index[normalizeHeader(hdr)]
		if !ok {
			errs = multierror.Append(errs, fmt.Errorf("columns: header %q for %s not found", hdr, field))
			continue
		}
		cols[field] = i
	}
	for field, names := range aliases {
		if _, set := cols[field]; set {
			continue
		}
		for _, n := range names {
			if i, ok := index[n]; ok {
				cols[field] = i
				break
			}
		}
	}
	for _, field := range required {
		if _, ok := cols[field]; !ok {
			errs = multierror.Append(errs, fmt.Errorf("missing required column %q", field))
		}
	}
	return cols, errs.ErrorOrNil()
}

func (c columns) get(record []string, field string) string {
	i, ok := c[field]
	if !ok || i >= len(record) {
		return ""
	}
	return clean(record[i])
}

func (c columns) row(record []string) (model.Row, error) {
	medal, err := model.ParseMedal(c.get(record, FieldMedal))
	if err != nil {
		return model.Row{}, err
	}
	r := model.Row{
		Olympiad:      c.get(record, FieldOlympiad),
		Season:        c.get(record, FieldSeason),
		Year:          c.get(record, FieldYear),
		Month:         c.get(record, FieldMonth),
		Day:           c.get(record, FieldDay),
		City:          c.get(record, FieldCity),
		Sport:         c.get(record, FieldSport),
		Event:         c.get(record, FieldEvent),
		Gender:        c.get(record, FieldGender),
		Winner:        c.get(record, FieldWinner),
		Country:       c.get(record, FieldCountry),
		Code:          c.get(record, FieldCode),
		CommitteeType: c.get(record, FieldCommitteeType),
		Medal:         medal,
		URL:           c.get(record, FieldURL),
	}
	if r.Winner == "" {
		return model.Row{}, errors.New("empty winner")
	}
	return r, nil
}

func blank(record []string) bool {
	for _, v := range record {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

// collector turns records into rows, accumulating per-line errors.
type collector struct {
	cols columns
	rows []model.Row
	errs *multierror.Error
	bad  int
}

// add converts one record; line is 1-based including the header. It returns
// false once too many rows failed.
func (c *collector) add(line int, record []string) bool {
	if blank(record) {
		return true
	}
	r, err := c.cols.row(record)
	if err != nil {
		c.bad++
		c.errs = multierror.Append(c.errs, fmt.Errorf("line %d: %w", line, err))
		return c.bad < maxRowErrors
	}
	c.rows = append(c.rows, r)
	return true
}

func (c *collector) result(name string) ([]model.Row, error) {
	if err := c.errs.ErrorOrNil(); err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	if len(c.rows) == 0 {
		return nil, fmt.Errorf("%s: no rows", name)
	}
	return c.rows, nil
}
