package grading

import (
	"time"

	"github.com/openlearn/edulearn-api/internal/models"
)

// CanShowAnswers decides whether a learner who already submitted may see the
// correct answers. Unknown policies fail closed.
func CanShowAnswers(assignment models.Assignment, now time.Time) bool {
	switch assignment.ShowAnswersAfter {
	case models.ShowAnswersAfterSubmission:
		return true
	case models.ShowAnswersAfterDeadline:
		return assignment.IsPastDeadline(now)
	case models.ShowAnswersNever:
		return false
	default:
		return false
	}
}
