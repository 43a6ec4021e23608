// Package grading holds the pure scoring rules for assignment attempts:
// per-question answer evaluation, score aggregation and the answer
// visibility policy. Nothing here touches the database.
package grading

import (
	"encoding/json"
	"sort"
	"strconv"
	"strings"

	"github.com/openlearn/edulearn-api/internal/models"
)

// Verdict is the three-valued outcome of evaluating one answer.
type Verdict int

// Verdicts. Pending means the question kind needs manual review and the
// answer neither earns nor forfeits points yet.
const (
	VerdictIncorrect Verdict = iota
	VerdictCorrect
	VerdictPending
)

// Evaluate decides whether a raw learner answer is correct for the given
// question. It never returns an error: malformed input is simply incorrect.
func Evaluate(question models.Question, rawAnswer string) Verdict {
	if !question.Kind.Evaluable() {
		return VerdictPending
	}

	if strings.TrimSpace(rawAnswer) == "" {
		return VerdictIncorrect
	}

	switch question.Kind {
	case models.QuestionMultipleChoice:
		return evaluateMultipleChoice(question.Options, rawAnswer)
	case models.QuestionTrueFalse:
		if strings.EqualFold(strings.TrimSpace(rawAnswer), strings.TrimSpace(question.Answer)) {
			return VerdictCorrect
		}
		return VerdictIncorrect
	case models.QuestionFillInBlank:
		if strings.EqualFold(strings.TrimSpace(rawAnswer), strings.TrimSpace(question.Answer)) {
			return VerdictCorrect
		}
		return VerdictIncorrect
	case models.QuestionMatching:
		return evaluateMatching(question.Pairs, rawAnswer)
	default:
		return VerdictPending
	}
}

// evaluateMultipleChoice requires exactly one option flagged correct; a
// question with zero or several flagged options is unanswerable and every
// submission against it is incorrect.
func evaluateMultipleChoice(options []models.Option, rawAnswer string) Verdict {
	var correctID uint
	flagged := 0
	for _, option := range options {
		if option.IsCorrect {
			flagged++
			correctID = option.ID
		}
	}

	if flagged != 1 {
		return VerdictIncorrect
	}

	if strings.TrimSpace(rawAnswer) == strconv.FormatUint(uint64(correctID), 10) {
		return VerdictCorrect
	}

	return VerdictIncorrect
}

// evaluateMatching compares the submitted pair list against the canonical
// one as a set: ordering within either list must not change the outcome.
func evaluateMatching(canonical []byte, rawAnswer string) Verdict {
	var want, got []models.MatchPair
	if err := json.Unmarshal(canonical, &want); err != nil {
		return VerdictIncorrect
	}
	if err := json.Unmarshal([]byte(rawAnswer), &got); err != nil {
		return VerdictIncorrect
	}

	if len(want) != len(got) || len(want) == 0 {
		return VerdictIncorrect
	}

	sortPairs(want)
	sortPairs(got)

	for i := range want {
		if want[i] != got[i] {
			return VerdictIncorrect
		}
	}

	return VerdictCorrect
}

func sortPairs(pairs []models.MatchPair) {
	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].Left != pairs[j].Left {
			return pairs[i].Left < pairs[j].Left
		}
		return pairs[i].Right < pairs[j].Right
	})
}
