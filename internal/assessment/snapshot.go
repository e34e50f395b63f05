package assessment

import (
	"math"
	"time"

	"github.com/kalambet/tizhi/internal/profile"
	"github.com/kalambet/tizhi/internal/questionnaire"
)

// Status of an assessment.
type Status string

const (
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
)

// Snapshot is a copy of an assessment's state safe to hand to callers.
type Snapshot struct {
	ID         string                  `json:"id"`
	Status     Status                  `json:"status"`
	Position   int                     `json:"position"` // 1-based position of Question
	Total      int                     `json:"total"`    // questions planned so far
	Answered   int                     `json:"answered"`
	Progress   int                     `json:"progress"` // percent
	Question   *questionnaire.Question `json:"question,omitempty"`
	Answer     int                     `json:"answer,omitempty"` // previously recorded answer for Question
	Options    []questionnaire.Option  `json:"options,omitempty"`
	Respondent *profile.Respondent     `json:"respondent,omitempty"`
	CreatedAt  time.Time               `json:"created_at"`
	UpdatedAt  time.Time               `json:"updated_at"`
}

// snapshot must be called with e.mu held.
func (e *entry) snapshot() Snapshot {
	s := Snapshot{
		ID:        e.id,
		Status:    StatusInProgress,
		Total:     e.session.Len(),
		CreatedAt: e.createdAt,
		UpdatedAt: e.updatedAt,
	}
	answers := e.session.Answers()
	s.Answered = len(answers)

	if e.respondent != nil {
		rp := *e.respondent
		s.Respondent = &rp
	}

	q, ok := e.session.Current()
	if !ok {
		s.Status = StatusCompleted
		s.Position = s.Total
		s.Progress = 100
		return s
	}
	s.Question = &q
	s.Answer = answers[q.ID]
	s.Options = questionnaire.Options()
	s.Position = e.session.Index() + 1
	s.Progress = int(math.Round(float64(s.Position) / float64(s.Total) * 100))
	return s
}
