package questionnaire

import "errors"

var (
	// ErrInvalidAnswerValue is returned when an answer lies outside the
	// 1..5 Likert range. The session is left unchanged.
	ErrInvalidAnswerValue = errors.New("answer value must be between 1 and 5")

	// ErrSessionCompleted is returned by Submit and Back once the session
	// has produced its scores.
	ErrSessionCompleted = errors.New("session already completed")

	// ErrEmptyQuestionBank is returned when a bank lacks the core question
	// for one or more categories. The engine cannot run without it.
	ErrEmptyQuestionBank = errors.New("question bank is missing core questions")
)
