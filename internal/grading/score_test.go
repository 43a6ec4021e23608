package grading

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/openlearn/edulearn-api/internal/models"
)

func TestScoreAllCorrect(t *testing.T) {
	questions := map[uint]models.Question{
		1: {Kind: models.QuestionTrueFalse, Answer: "true", Points: 1},
		2: {Kind: models.QuestionFillInBlank, Answer: "Paris", Points: 1},
	}
	answers := []AnswerInput{
		{AssignmentQuestionID: 1, Value: "true"},
		{AssignmentQuestionID: 2, Value: "Paris"},
	}

	require.Equal(t, float64(100), Score(questions, answers))
}

func TestScoreWeightsAndRounding(t *testing.T) {
	questions := map[uint]models.Question{
		1: {Kind: models.QuestionTrueFalse, Answer: "true", Points: 2},
		2: {Kind: models.QuestionFillInBlank, Answer: "Paris"},
	}
	answers := []AnswerInput{
		{AssignmentQuestionID: 1, Value: "true"},
		{AssignmentQuestionID: 2, Value: "Rome"},
	}

	// 2 of 3 points, rounded to 2 decimals
	require.Equal(t, 66.67, Score(questions, answers))
}

func TestScoreSkipsUnknownQuestionIDs(t *testing.T) {
	questions := map[uint]models.Question{
		1: {Kind: models.QuestionTrueFalse, Answer: "true"},
	}
	answers := []AnswerInput{
		{AssignmentQuestionID: 1, Value: "true"},
		{AssignmentQuestionID: 99, Value: "true"},
	}

	require.Equal(t, float64(100), Score(questions, answers))
}

func TestScorePendingExcludedFromBothAccumulators(t *testing.T) {
	questions := map[uint]models.Question{
		1: {Kind: models.QuestionTrueFalse, Answer: "true"},
		2: {Kind: models.QuestionEssay, Points: 10},
	}
	answers := []AnswerInput{
		{AssignmentQuestionID: 1, Value: "true"},
		{AssignmentQuestionID: 2, Value: "my essay"},
	}

	require.Equal(t, float64(100), Score(questions, answers))
}

func TestScoreZeroWhenNothingEvaluable(t *testing.T) {
	require.Equal(t, float64(0), Score(nil, nil))

	questions := map[uint]models.Question{
		1: {Kind: models.QuestionEssay},
	}
	answers := []AnswerInput{{AssignmentQuestionID: 1, Value: "essay text"}}
	require.Equal(t, float64(0), Score(questions, answers))
}
