package model

import (
	"fmt"
	"strings"
)

// Medal is the tier of an award. The zero value is invalid.
type Medal int

const (
	Gold Medal = iota + 1
	Silver
	Bronze
)

// Medals lists the tiers in rank order, gold first.
var Medals = []Medal{Gold, Silver, Bronze}

func (m Medal) String() string {
	switch m {
	case Gold:
		return "Gold"
	case Silver:
		return "Silver"
	case Bronze:
		return "Bronze"
	default:
		return fmt.Sprintf("Medal(%d)", int(m))
	}
}

// Glyph is the emoji marker rendered in front of a medal line.
func (m Medal) Glyph() string {
	switch m {
	case Gold:
		return "🥇"
	case Silver:
		return "🥈"
	case Bronze:
		return "🥉"
	default:
		return ""
	}
}

// ParseMedal accepts "gold", "silver" or "bronze" in any case.
func ParseMedal(s string) (Medal, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "gold":
		return Gold, nil
	case "silver":
		return Silver, nil
	case "bronze":
		return Bronze, nil
	default:
		return 0, fmt.Errorf("unknown medal %q", s)
	}
}

// Row is one medal award as loaded from the dataset.
type Row struct {
	Olympiad      string // e.g. "Athina 1896"
	Season        string // summer | winter
	Year          string
	Month         string // optional
	Day           string // optional
	City          string
	Sport         string
	Event         string // e.g. "100m, Men"
	Gender        string
	Winner        string // athlete or team name
	Country       string // country/committee display name, may be empty
	Code          string // short committee code, e.g. "GER"
	CommitteeType string
	Medal         Medal
	URL           string // optional reference link
}

// EventKey identifies one competition. Rows with equal keys form an event group.
type EventKey struct {
	Olympiad string
	Season   string
	Year     string
	Month    string
	Day      string
	City     string
	Sport    string
	Event    string
}

// Key derives the event key of r.
func (r Row) Key() EventKey {
	return EventKey{
		Olympiad: r.Olympiad,
		Season:   r.Season,
		Year:     r.Year,
		Month:    r.Month,
		Day:      r.Day,
		City:     r.City,
		Sport:    r.Sport,
		Event:    r.Event,
	}
}

func (k EventKey) String() string {
	return fmt.Sprintf("%s %s %s/%s/%s", k.City, k.Year, k.Sport, k.Event, k.Olympiad)
}
