package grading

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"github.com/openlearn/edulearn-api/internal/models"
)

func TestEvaluateMultipleChoice(t *testing.T) {
	question := models.Question{
		Kind: models.QuestionMultipleChoice,
		Options: []models.Option{
			{ID: 10, Content: "Mars"},
			{ID: 11, Content: "Venus", IsCorrect: true},
			{ID: 12, Content: "Pluto"},
		},
	}

	require.Equal(t, VerdictCorrect, Evaluate(question, "11"))
	require.Equal(t, VerdictCorrect, Evaluate(question, " 11 "))
	require.Equal(t, VerdictIncorrect, Evaluate(question, "10"))
	require.Equal(t, VerdictIncorrect, Evaluate(question, "Venus"))
	require.Equal(t, VerdictIncorrect, Evaluate(question, ""))
}

func TestEvaluateMultipleChoiceMisconfiguredKey(t *testing.T) {
	none := models.Question{
		Kind:    models.QuestionMultipleChoice,
		Options: []models.Option{{ID: 1}, {ID: 2}},
	}
	several := models.Question{
		Kind: models.QuestionMultipleChoice,
		Options: []models.Option{
			{ID: 1, IsCorrect: true},
			{ID: 2, IsCorrect: true},
		},
	}

	for _, question := range []models.Question{none, several} {
		for _, option := range question.Options {
			answer := strconv.FormatUint(uint64(option.ID), 10)
			require.Equal(t, VerdictIncorrect, Evaluate(question, answer))
		}
	}
}

func TestEvaluateTrueFalseCaseInsensitive(t *testing.T) {
	question := models.Question{Kind: models.QuestionTrueFalse, Answer: "true"}

	require.Equal(t, VerdictCorrect, Evaluate(question, "TRUE"))
	require.Equal(t, VerdictCorrect, Evaluate(question, "True"))
	require.Equal(t, VerdictIncorrect, Evaluate(question, "false"))
	require.Equal(t, VerdictIncorrect, Evaluate(question, ""))
}

func TestEvaluateFillInBlankTrimsAndIgnoresCase(t *testing.T) {
	question := models.Question{Kind: models.QuestionFillInBlank, Answer: "Paris"}

	require.Equal(t, VerdictCorrect, Evaluate(question, "paris"))
	require.Equal(t, VerdictCorrect, Evaluate(question, "  PARIS  "))
	require.Equal(t, VerdictIncorrect, Evaluate(question, "London"))
}

func TestEvaluateMatchingIsOrderInvariant(t *testing.T) {
	question := models.Question{
		Kind:  models.QuestionMatching,
		Pairs: datatypes.JSON(`[{"left":"cat","right":"meow"},{"left":"dog","right":"woof"}]`),
	}

	require.Equal(t, VerdictCorrect, Evaluate(question, `[{"left":"dog","right":"woof"},{"left":"cat","right":"meow"}]`))
	require.Equal(t, VerdictCorrect, Evaluate(question, `[{"left":"cat","right":"meow"},{"left":"dog","right":"woof"}]`))
	require.Equal(t, VerdictIncorrect, Evaluate(question, `[{"left":"cat","right":"woof"},{"left":"dog","right":"meow"}]`))
	require.Equal(t, VerdictIncorrect, Evaluate(question, `[{"left":"cat","right":"meow"}]`))
}

func TestEvaluateMatchingMalformedJSON(t *testing.T) {
	question := models.Question{
		Kind:  models.QuestionMatching,
		Pairs: datatypes.JSON(`[{"left":"cat","right":"meow"}]`),
	}

	require.Equal(t, VerdictIncorrect, Evaluate(question, `{"left":"cat"`))
	require.Equal(t, VerdictIncorrect, Evaluate(question, `not json`))

	broken := models.Question{Kind: models.QuestionMatching, Pairs: datatypes.JSON(`oops`)}
	require.Equal(t, VerdictIncorrect, Evaluate(broken, `[{"left":"cat","right":"meow"}]`))
}

func TestEvaluateManualKindsArePending(t *testing.T) {
	essay := models.Question{Kind: models.QuestionEssay}
	speaking := models.Question{Kind: models.QuestionSpeaking}

	require.Equal(t, VerdictPending, Evaluate(essay, "a long reflection"))
	require.Equal(t, VerdictPending, Evaluate(speaking, ""))
}
