package models

import "time"

// Submission statuses.
const (
	// SubmissionStatusSubmitted marks an attempt recorded before the deadline.
	SubmissionStatusSubmitted = "submitted"
	// SubmissionStatusLate marks an attempt recorded after the deadline.
	SubmissionStatusLate = "late"
)

// Submission is a learner's single recorded attempt at an assignment. The
// composite unique index makes the at-most-one-attempt rule a database
// guarantee rather than a read-then-write check.
type Submission struct {
	ID               uint       `gorm:"primaryKey" json:"id"`
	AssignmentID     uint       `gorm:"not null;uniqueIndex:idx_submission_assignment_learner" json:"assignment_id"`
	LearnerID        uint       `gorm:"not null;uniqueIndex:idx_submission_assignment_learner" json:"learner_id"`
	Score            float64    `json:"score"`
	Status           string     `gorm:"size:32;not null" json:"status"`
	Content          string     `gorm:"type:text" json:"content"`
	AudioURL         string     `gorm:"size:512" json:"audio_url"`
	AudioDurationSec int        `json:"audio_duration_sec"`
	SubmittedAt      time.Time  `json:"submitted_at"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
	Assignment       Assignment `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"assignment"`
	Learner          Learner    `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"learner"`
	Assets           []SubmissionAsset
}

// IsLate reports whether the attempt was recorded past the deadline.
func (s Submission) IsLate() bool {
	return s.Status == SubmissionStatusLate
}

// Answer is the raw text a learner supplied for one assignment question.
// Rows are upserted on the composite key, so a duplicate entry in a single
// submission payload overwrites rather than duplicates.
type Answer struct {
	ID                   uint      `gorm:"primaryKey" json:"id"`
	LearnerID            uint      `gorm:"not null;uniqueIndex:idx_answer_learner_question" json:"learner_id"`
	AssignmentQuestionID uint      `gorm:"not null;uniqueIndex:idx_answer_learner_question" json:"assignment_question_id"`
	Value                string    `gorm:"type:text" json:"value"`
	CreatedAt            time.Time `json:"created_at"`
	UpdatedAt            time.Time `json:"updated_at"`
}

// SubmissionAsset is an uploaded attachment (currently audio recordings).
type SubmissionAsset struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	SubmissionID uint      `gorm:"not null;index" json:"submission_id"`
	Kind         string    `gorm:"size:32;not null" json:"kind"`
	URL          string    `gorm:"size:512;not null" json:"url"`
	DurationSec  int       `json:"duration_sec"`
	CreatedAt    time.Time `json:"created_at"`
}
