package models

import "time"

// AssignmentType describes the kind of work an assignment expects.
type AssignmentType string

// Supported assignment types.
const (
	AssignmentTypeQuiz     AssignmentType = "quiz"
	AssignmentTypeAudio    AssignmentType = "audio"
	AssignmentTypeVideo    AssignmentType = "video"
	AssignmentTypeDocument AssignmentType = "document"
)

// AssignmentStatus is the publication state of an assignment.
type AssignmentStatus string

// Assignment statuses. Only active assignments accept submissions.
const (
	AssignmentStatusActive   AssignmentStatus = "active"
	AssignmentStatusInactive AssignmentStatus = "inactive"
	AssignmentStatusDraft    AssignmentStatus = "draft"
)

// ShowAnswersPolicy controls when learners may see correct answers.
type ShowAnswersPolicy string

// Answer visibility policies.
const (
	ShowAnswersAfterSubmission ShowAnswersPolicy = "after_submission"
	ShowAnswersAfterDeadline   ShowAnswersPolicy = "after_deadline"
	ShowAnswersNever           ShowAnswersPolicy = "never"
)

// Assignment is a unit of gradable work published to a course.
type Assignment struct {
	ID               uint              `gorm:"primaryKey" json:"id"`
	CourseID         uint              `gorm:"not null;index" json:"course_id"`
	InstructorID     uint              `gorm:"index" json:"instructor_id"`
	Title            string            `gorm:"size:255;not null" json:"title"`
	Description      string            `gorm:"type:text" json:"description"`
	Type             AssignmentType    `gorm:"size:32;not null" json:"type"`
	Status           AssignmentStatus  `gorm:"size:32;not null;default:draft" json:"status"`
	Deadline         *time.Time        `json:"deadline"`
	ShowAnswersAfter ShowAnswersPolicy `gorm:"size:32" json:"show_answers_after"`
	CreatedAt        time.Time         `json:"created_at"`
	UpdatedAt        time.Time         `json:"updated_at"`
	Questions        []AssignmentQuestion
}

// IsPastDeadline reports whether the deadline has passed at the reference
// time. Assignments without a deadline are never past due.
func (a Assignment) IsPastDeadline(reference time.Time) bool {
	return a.Deadline != nil && reference.After(*a.Deadline)
}

// AssignmentQuestion attaches a question to an assignment with a
// per-assignment position. Submitted answers reference this join row rather
// than the question itself, so a question bank entry can be reused across
// assignments.
type AssignmentQuestion struct {
	ID           uint     `gorm:"primaryKey" json:"id"`
	AssignmentID uint     `gorm:"not null;uniqueIndex:idx_assignment_question" json:"assignment_id"`
	QuestionID   uint     `gorm:"not null;uniqueIndex:idx_assignment_question" json:"question_id"`
	Position     int      `gorm:"not null" json:"position"`
	Question     Question `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"question"`
}
