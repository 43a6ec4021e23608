package models

import (
	"time"

	"gorm.io/datatypes"
)

// QuestionKind is the closed set of question types the platform knows how to
// present. Adding a kind requires touching every switch over this type.
type QuestionKind string

// Question kinds.
const (
	QuestionMultipleChoice QuestionKind = "multiple_choice"
	QuestionTrueFalse      QuestionKind = "true_false"
	QuestionFillInBlank    QuestionKind = "fill_in_blank"
	QuestionMatching       QuestionKind = "matching"
	QuestionEssay          QuestionKind = "essay"
	QuestionSpeaking       QuestionKind = "speaking"
)

// Evaluable reports whether correctness of the kind can be decided
// automatically. Essay and speaking answers wait for manual review.
func (k QuestionKind) Evaluable() bool {
	switch k {
	case QuestionMultipleChoice, QuestionTrueFalse, QuestionFillInBlank, QuestionMatching:
		return true
	default:
		return false
	}
}

// MatchPair is one left/right association of a matching question.
type MatchPair struct {
	Left  string `json:"left"`
	Right string `json:"right"`
}

// Question is a bank entry. Answer holds the canonical answer for true/false
// and fill-in-blank kinds; Pairs holds the canonical pair list for matching
// kinds; multiple choice is answered by the option flagged correct.
type Question struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Content   string         `gorm:"type:text;not null" json:"content"`
	Kind      QuestionKind   `gorm:"size:32;not null" json:"kind"`
	Answer    string         `gorm:"type:text" json:"-"`
	Pairs     datatypes.JSON `json:"-"`
	Points    float64        `json:"points"`
	Options   []Option       `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"options"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// PointValue returns the question weight, defaulting to 1 when unset.
func (q Question) PointValue() float64 {
	if q.Points <= 0 {
		return 1
	}
	return q.Points
}

// Option is a selectable choice; IsCorrect is meaningful only for
// multiple_choice and true_false questions.
type Option struct {
	ID         uint   `gorm:"primaryKey" json:"id"`
	QuestionID uint   `gorm:"not null;index" json:"question_id"`
	Content    string `gorm:"type:text;not null" json:"content"`
	IsCorrect  bool   `json:"-"`
}
