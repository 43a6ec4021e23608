package grading

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/openlearn/edulearn-api/internal/models"
)

func TestCanShowAnswersAfterSubmission(t *testing.T) {
	assignment := models.Assignment{ShowAnswersAfter: models.ShowAnswersAfterSubmission}
	require.True(t, CanShowAnswers(assignment, time.Now()))
}

func TestCanShowAnswersAfterDeadlineBoundary(t *testing.T) {
	deadline := time.Date(2024, 1, 10, 23, 59, 0, 0, time.UTC)
	assignment := models.Assignment{
		ShowAnswersAfter: models.ShowAnswersAfterDeadline,
		Deadline:         &deadline,
	}

	require.False(t, CanShowAnswers(assignment, deadline.Add(-time.Minute)))
	require.False(t, CanShowAnswers(assignment, deadline))
	require.True(t, CanShowAnswers(assignment, deadline.Add(time.Second)))
}

func TestCanShowAnswersAfterDeadlineWithoutDeadline(t *testing.T) {
	assignment := models.Assignment{ShowAnswersAfter: models.ShowAnswersAfterDeadline}
	require.False(t, CanShowAnswers(assignment, time.Now()))
}

func TestCanShowAnswersFailsClosed(t *testing.T) {
	require.False(t, CanShowAnswers(models.Assignment{ShowAnswersAfter: models.ShowAnswersNever}, time.Now()))
	require.False(t, CanShowAnswers(models.Assignment{ShowAnswersAfter: ""}, time.Now()))
	require.False(t, CanShowAnswers(models.Assignment{ShowAnswersAfter: "sometimes"}, time.Now()))
}
