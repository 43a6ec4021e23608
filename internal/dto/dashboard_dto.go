package dto

import "time"

// DashboardAssignment is one row of the learner dashboard.
type DashboardAssignment struct {
	AssignmentID uint       `json:"assignment_id"`
	Title        string     `json:"title"`
	Type         string     `json:"type"`
	Deadline     *time.Time `json:"deadline"`
	Submitted    bool       `json:"submitted"`
	Status       string     `json:"status,omitempty"`
	Score        *float64   `json:"score,omitempty"`
	Overdue      bool       `json:"overdue"`
}

// DashboardSummary aggregates the learner's standing across assignments.
type DashboardSummary struct {
	TotalAssignments int      `json:"total_assignments"`
	Submitted        int      `json:"submitted"`
	Late             int      `json:"late"`
	Pending          int      `json:"pending"`
	AverageScore     *float64 `json:"average_score"`
}

// DashboardResponse is the cached learner dashboard payload.
type DashboardResponse struct {
	Summary     DashboardSummary      `json:"summary"`
	Assignments []DashboardAssignment `json:"assignments"`
	GeneratedAt time.Time             `json:"generated_at"`
}
