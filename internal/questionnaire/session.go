package questionnaire

import "fmt"

// Update is the outcome of a submitted answer: either the next question
// to present or, once the session completes, the final scores.
type Update struct {
	Completed bool
	Next      Question
	Scores    ScoreMap
}

// Session walks one respondent through the questionnaire. It starts with
// the core questions, plans the follow-ups once the last core question is
// answered and scores the answers on completion.
//
// A Session is owned by a single caller and is not safe for concurrent
// use.
type Session struct {
	bank      *Bank
	plan      []Question
	coreLen   int
	planned   bool
	index     int
	answers   Answers
	completed bool
	scores    ScoreMap
}

// NewSession starts a session awaiting the first core question.
func NewSession(bank *Bank) *Session {
	core := bank.ByTier(TierCore)
	return &Session{
		bank:    bank,
		plan:    core,
		coreLen: len(core),
		answers: make(Answers, len(core)),
	}
}

// Current returns the question awaiting an answer. ok is false once the
// session has completed.
func (s *Session) Current() (q Question, ok bool) {
	if s.completed {
		return Question{}, false
	}
	return s.plan[s.index], true
}

// Index returns the position of the current question in the plan.
func (s *Session) Index() int { return s.index }

// Len returns the number of questions currently planned.
func (s *Session) Len() int { return len(s.plan) }

// Completed reports whether the session has been scored.
func (s *Session) Completed() bool { return s.completed }

// Answers returns a copy of the answers recorded so far.
func (s *Session) Answers() Answers { return s.answers.Clone() }

// Result returns the final scores. ok is false until the session
// completes.
func (s *Session) Result() (ScoreMap, bool) {
	return s.scores, s.completed
}

// Submit records value for the current question and moves the session
// forward. Invalid values and submissions after completion are rejected
// without changing the session.
func (s *Session) Submit(value int) (Update, error) {
	if s.completed {
		return Update{}, ErrSessionCompleted
	}
	if !ValidValue(value) {
		return Update{}, fmt.Errorf("%w: got %d", ErrInvalidAnswerValue, value)
	}

	s.answers[s.plan[s.index].ID] = value

	if s.index == s.coreLen-1 && !s.planned {
		s.planned = true
		followUps := SelectFollowUps(s.bank, s.answers)
		if len(followUps) == 0 {
			return s.complete(), nil
		}
		plan := make([]Question, 0, len(s.plan)+len(followUps))
		plan = append(plan, s.plan...)
		plan = append(plan, followUps...)
		s.plan = plan
		s.index++
		return Update{Next: s.plan[s.index]}, nil
	}

	if s.index < len(s.plan)-1 {
		s.index++
		return Update{Next: s.plan[s.index]}, nil
	}
	return s.complete(), nil
}

// Back returns to the previous question, keeping its recorded answer. It
// is a no-op on the first question.
func (s *Session) Back() error {
	if s.completed {
		return ErrSessionCompleted
	}
	if s.index > 0 {
		s.index--
	}
	return nil
}

func (s *Session) complete() Update {
	s.completed = true
	s.scores = Score(s.bank, s.answers)
	return Update{Completed: true, Scores: s.scores}
}
