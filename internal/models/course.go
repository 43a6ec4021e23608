package models

import "time"

// Course groups assignments and enrollments.
type Course struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Title        string    `gorm:"size:255;not null" json:"title"`
	Code         string    `gorm:"size:64;uniqueIndex" json:"code"`
	InstructorID uint      `gorm:"index" json:"instructor_id"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Enrollment links a learner to a course. A learner is enrolled at most once
// per course.
type Enrollment struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CourseID  uint      `gorm:"not null;uniqueIndex:idx_enrollment_course_learner" json:"course_id"`
	LearnerID uint      `gorm:"not null;uniqueIndex:idx_enrollment_course_learner" json:"learner_id"`
	CreatedAt time.Time `json:"created_at"`
}
