package grading

import (
	"math"

	"github.com/openlearn/edulearn-api/internal/models"
)

// AnswerInput pairs an assignment question with the learner's raw answer.
type AnswerInput struct {
	AssignmentQuestionID uint
	Value                string
}

// Score evaluates every submitted answer against the assignment's questions
// and returns the earned percentage, rounded to two decimals.
//
// Answers referencing an unknown assignment question id are skipped: they
// indicate a stale or cross-assignment payload, not a grading failure.
// Pending verdicts (essay, speaking) contribute to neither accumulator until
// graded manually. An attempt with no evaluable questions scores zero.
func Score(questions map[uint]models.Question, answers []AnswerInput) float64 {
	var earned, possible float64

	for _, answer := range answers {
		question, ok := questions[answer.AssignmentQuestionID]
		if !ok {
			continue
		}

		switch Evaluate(question, answer.Value) {
		case VerdictCorrect:
			earned += question.PointValue()
			possible += question.PointValue()
		case VerdictIncorrect:
			possible += question.PointValue()
		case VerdictPending:
			// manual review decides later
		}
	}

	if possible == 0 {
		return 0
	}

	return math.Round(earned/possible*100*100) / 100
}
