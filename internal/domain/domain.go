package domain

import (
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/victornm/pollquiz/internal/errors"
)

const (
	MinOptions = 2
	MaxOptions = 10
)

// Question is an immutable quiz question. Options always contain CorrectAnswer.
type Question struct {
	Prompt        string
	CorrectAnswer string
	Options       []string
	// SourceRow identifies where the question came from, e.g. a spreadsheet row.
	SourceRow string
}

// NewQuestion trims and de-duplicates options, makes sure the correct answer is one of them
// and enforces the option bounds.
func NewQuestion(prompt, correct string, options []string, sourceRow string) (Question, error) {
	prompt = strings.TrimSpace(prompt)
	correct = strings.TrimSpace(correct)

	if prompt == "" {
		return Question{}, errors.Validationf("question %s: empty prompt", sourceRow)
	}
	if correct == "" {
		return Question{}, errors.Validationf("question %s: missing correct answer", sourceRow)
	}

	seen := make(map[string]struct{}, len(options)+1)
	cleaned := make([]string, 0, len(options)+1)
	add := func(o string) {
		o = strings.TrimSpace(o)
		if o == "" {
			return
		}
		if _, ok := seen[o]; ok {
			return
		}
		seen[o] = struct{}{}
		cleaned = append(cleaned, o)
	}

	add(correct)
	for _, o := range options {
		add(o)
	}

	if len(cleaned) < MinOptions || len(cleaned) > MaxOptions {
		return Question{}, errors.Validationf("question %s: has %d distinct options, want %d-%d",
			sourceRow, len(cleaned), MinOptions, MaxOptions)
	}

	return Question{
		Prompt:        prompt,
		CorrectAnswer: correct,
		Options:       cleaned,
		SourceRow:     sourceRow,
	}, nil
}

// Identity is how the messaging platform knows a recipient.
type Identity struct {
	UserID    int64  `json:"user_id"`
	Username  string `json:"username,omitempty"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
}

func (i Identity) DisplayName() string {
	name := strings.TrimSpace(i.FirstName + " " + i.LastName)
	switch {
	case name != "" && i.Username != "":
		return name + " (@" + i.Username + ")"
	case name != "":
		return name
	case i.Username != "":
		return "@" + i.Username
	default:
		return strconv.FormatInt(i.UserID, 10)
	}
}

type Participant struct {
	Identity
	JoinedAt time.Time
	Active   bool
	// DropReason is set when a failure removed the participant from the active set.
	DropReason string
}

// PollDispatch ties one sent poll to the question it asks.
type PollDispatch struct {
	SessionID     string
	QuestionIndex int
	ParticipantID int64
	PollID        string
	CorrectOption int
}

type AnswerKey struct {
	ParticipantID int64
	QuestionIndex int
}

// Session is a read-only snapshot of a quiz session.
type Session struct {
	SessionID    string
	Questions    []Question
	Participants []Participant
	Active       bool
	StartedAt    time.Time
	EndedAt      time.Time
}

// Result is the final outcome for one participant.
type Result struct {
	Identity
	Rank           int             `json:"rank"`
	Correct        int             `json:"correct"`
	Incorrect      int             `json:"incorrect"`
	Total          int             `json:"total"`
	Percentage     decimal.Decimal `json:"percentage"`
	CompletionTime time.Duration   `json:"completion_time"`
	Dropped        bool            `json:"dropped,omitempty"`
}

func (r Result) CompletionSeconds() float64 {
	return r.CompletionTime.Seconds()
}

// Scoreboard is the ranked outcome of a finished session. Results are in rank order.
type Scoreboard struct {
	SessionID string    `json:"session_id"`
	Questions int       `json:"questions"`
	StartedAt time.Time `json:"started_at"`
	EndedAt   time.Time `json:"ended_at"`
	Results   []Result  `json:"results"`
	Warnings  []string  `json:"warnings,omitempty"`
}
