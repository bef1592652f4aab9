// Package announce builds and delivers roster announcements.
package announce

import (
	"fmt"
	"time"

	"github.com/slack-go/slack"

	"github.com/yuchengtw/duty-roster-bot/internal/domain"
)

// Kind labels the announcement template used.
type Kind string

const (
	KindWeekly  Kind = "weekly"
	KindSuspend Kind = "suspend"
	KindGeneral Kind = "general"
)

// Announcement is a composed message: a plain-text summary used as the
// notification preview, plus the rich block document. Composition is pure;
// only the interpolated name, date, or reason varies between calls.
type Announcement struct {
	Kind    Kind
	Duty    string
	AltText string
	Blocks  []slack.Block
}

const weeklyReminder = "Please confirm counter coverage and hand over any pending cases before Monday morning."

// ComposeWeekly builds the duty notice for an active week.
func ComposeWeekly(duty string, weekStart time.Time) Announcement {
	week := weekStart.Format(domain.DateKeyLayout)
	return Announcement{
		Kind:    KindWeekly,
		Duty:    duty,
		AltText: fmt.Sprintf("Duty roster: %s is on duty for the week of %s", duty, week),
		Blocks: []slack.Block{
			slack.NewHeaderBlock(
				slack.NewTextBlockObject(slack.PlainTextType, "📋 Weekly Duty Roster", true, false),
			),
			slack.NewSectionBlock(
				slack.NewTextBlockObject(slack.MarkdownType,
					fmt.Sprintf("Week of *%s*\n\nOn duty this week: *%s*", week, duty),
					false, false),
				nil, nil,
			),
			slack.NewContextBlock("",
				slack.NewTextBlockObject(slack.MarkdownType, weeklyReminder, false, false),
			),
		},
	}
}

// ComposeSuspended builds the notice for a suspended week. An empty reason
// falls back to a generic holiday line.
func ComposeSuspended(reason string, weekStart time.Time) Announcement {
	if reason == "" {
		reason = "Office holiday week"
	}
	week := weekStart.Format(domain.DateKeyLayout)
	return Announcement{
		Kind:    KindSuspend,
		AltText: fmt.Sprintf("Duty roster: rotation suspended for the week of %s (%s)", week, reason),
		Blocks: []slack.Block{
			slack.NewHeaderBlock(
				slack.NewTextBlockObject(slack.PlainTextType, "📋 Weekly Duty Roster", true, false),
			),
			slack.NewSectionBlock(
				slack.NewTextBlockObject(slack.MarkdownType,
					fmt.Sprintf("Week of *%s*\n\nRotation is *suspended* this week.\nReason: *%s*", week, reason),
					false, false),
				nil, nil,
			),
			slack.NewContextBlock("",
				slack.NewTextBlockObject(slack.MarkdownType, "The rotation resumes automatically next active week.", false, false),
			),
		},
	}
}

// ComposeGeneral wraps free-form operator content in the announcement frame.
func ComposeGeneral(content string) Announcement {
	return Announcement{
		Kind:    KindGeneral,
		AltText: content,
		Blocks: []slack.Block{
			slack.NewHeaderBlock(
				slack.NewTextBlockObject(slack.PlainTextType, "📣 Announcement", true, false),
			),
			slack.NewSectionBlock(
				slack.NewTextBlockObject(slack.MarkdownType, content, false, false),
				nil, nil,
			),
		},
	}
}
