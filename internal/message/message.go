// Package message renders the texts sent to participants. Output is HTML limited to the
// inline tags the telegram client keeps.
package message

import (
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/victornm/pollquiz/internal/domain"
)

func Intro(questions int, openPeriod time.Duration) string {
	var b strings.Builder
	b.WriteString("<b>Quiz is starting</b>\n")
	fmt.Fprintf(&b, "%d question(s), %d seconds each.\n", questions, int(openPeriod.Seconds()))
	b.WriteString("Answer every poll before it closes. Unanswered polls count as incorrect.")
	return b.String()
}

// FullQuestion carries the untruncated question when a poll had to be shortened.
func FullQuestion(question string, options []string) string {
	var b strings.Builder
	b.WriteString("<b>Full question</b>\n")
	b.WriteString(html.EscapeString(question))
	b.WriteString("\n")
	for i, o := range options {
		fmt.Fprintf(&b, "\n%d. %s", i+1, html.EscapeString(o))
	}
	return b.String()
}

func ParticipantSummary(r domain.Result, participants int) string {
	var b strings.Builder
	b.WriteString("<b>Your result</b>\n")
	fmt.Fprintf(&b, "Correct: %d\n", r.Correct)
	fmt.Fprintf(&b, "Incorrect: %d\n", r.Incorrect)
	fmt.Fprintf(&b, "Score: %s%%\n", r.Percentage.StringFixed(2))
	fmt.Fprintf(&b, "Time: %s\n", formatDuration(r.CompletionTime))
	fmt.Fprintf(&b, "Rank: %d of %d", r.Rank, participants)
	if r.Dropped {
		b.WriteString("\n<i>You were removed from the quiz after a delivery failure.</i>")
	}
	return b.String()
}

func Scoreboard(sb domain.Scoreboard) string {
	var b strings.Builder
	fmt.Fprintf(&b, "<b>Quiz finished</b>: %d question(s), %d participant(s)\n", sb.Questions, len(sb.Results))

	for _, r := range sb.Results {
		fmt.Fprintf(&b, "\n%d. %s: %d/%d (%s%%) in %s",
			r.Rank, html.EscapeString(r.DisplayName()), r.Correct, r.Total,
			r.Percentage.StringFixed(2), formatDuration(r.CompletionTime))
		if r.Dropped {
			b.WriteString(" <i>(dropped)</i>")
		}
	}

	if len(sb.Warnings) > 0 {
		b.WriteString("\n\n<b>Warnings</b>")
		for _, w := range sb.Warnings {
			b.WriteString("\n- ")
			b.WriteString(html.EscapeString(w))
		}
	}

	return b.String()
}

func FailureNotice(err error) string {
	return "<b>Quiz aborted</b>\n" + html.EscapeString(err.Error())
}

func formatDuration(d time.Duration) string {
	return d.Round(time.Second).String()
}
