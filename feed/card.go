package feed

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/dustin/go-humanize"

	"github.com/eringen/pokefans/pokedex"
)

const (
	// ExcerptLimit caps the message excerpt, in characters.
	ExcerptLimit = 120
	// AnonymousName replaces an empty trainer name.
	AnonymousName = "Anonymous Trainer"
	// UnknownDate is shown when no usable date is present.
	UnknownDate = "Unknown date"

	dateLayout = "Jan 2, 2006"
)

// Card is the rendered summary of a submission.
type Card struct {
	ID          string
	TrainerName string
	TypeName    string
	TypeIcon    string
	Excerpt     string
	Date        string
	Ago         string
}

// NewCard summarizes sub; now anchors the relative date.
func NewCard(sub Submission, now time.Time) Card {
	c := Card{
		ID:          sub.ID,
		TrainerName: strings.TrimSpace(sub.TrainerName),
		TypeName:    sub.FavoriteType,
		TypeIcon:    pokedex.Icon(sub.FavoriteType),
		Excerpt:     Excerpt(sub.Message, ExcerptLimit),
		Date:        UnknownDate,
	}
	if c.TrainerName == "" {
		c.TrainerName = AnonymousName
	}
	if t, ok := submittedTime(sub); ok {
		c.Date = t.Format(dateLayout)
		c.Ago = humanize.RelTime(t, now, "ago", "from now")
	}
	return c
}

// Cards summarizes each submission in order.
func Cards(subs []Submission, now time.Time) []Card {
	out := make([]Card, 0, len(subs))
	for _, s := range subs {
		out = append(out, NewCard(s, now))
	}
	return out
}

// Excerpt cuts s to limit characters, marking the cut with an ellipsis.
func Excerpt(s string, limit int) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	return string([]rune(s)[:limit]) + "..."
}

// submittedTime prefers SubmittedAt and falls back to the form's timestamp
// field for entries written without one.
func submittedTime(sub Submission) (time.Time, bool) {
	if !sub.SubmittedAt.IsZero() {
		return sub.SubmittedAt, true
	}
	if sub.Timestamp == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(time.RFC3339, sub.Timestamp)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
