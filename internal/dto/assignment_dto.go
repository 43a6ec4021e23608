package dto

import (
	"time"

	"github.com/openlearn/edulearn-api/internal/models"
)

// AssignmentResponse is what learners see when opening an assignment.
type AssignmentResponse struct {
	ID               uint                     `json:"id"`
	CourseID         uint                     `json:"course_id"`
	Title            string                   `json:"title"`
	Description      string                   `json:"description"`
	Type             models.AssignmentType    `json:"type"`
	Status           models.AssignmentStatus  `json:"status"`
	Deadline         *time.Time               `json:"deadline"`
	ShowAnswersAfter models.ShowAnswersPolicy `json:"show_answers_after"`
	Submission       *SubmissionSummary       `json:"submission"`
	CreatedAt        time.Time                `json:"created_at"`
	UpdatedAt        time.Time                `json:"updated_at"`
}

// SubmissionSummary is the prior-attempt digest embedded in assignment views.
type SubmissionSummary struct {
	ID          uint      `json:"id"`
	Status      string    `json:"status"`
	Score       float64   `json:"score"`
	SubmittedAt time.Time `json:"submitted_at"`
}

// NewAssignmentResponse converts an Assignment model into a DTO, attaching
// the learner's prior submission when one exists.
func NewAssignmentResponse(model models.Assignment, submission *models.Submission) AssignmentResponse {
	response := AssignmentResponse{
		ID:               model.ID,
		CourseID:         model.CourseID,
		Title:            model.Title,
		Description:      model.Description,
		Type:             model.Type,
		Status:           model.Status,
		Deadline:         model.Deadline,
		ShowAnswersAfter: model.ShowAnswersAfter,
		CreatedAt:        model.CreatedAt,
		UpdatedAt:        model.UpdatedAt,
	}

	if submission != nil && submission.ID != 0 {
		response.Submission = &SubmissionSummary{
			ID:          submission.ID,
			Status:      submission.Status,
			Score:       submission.Score,
			SubmittedAt: submission.SubmittedAt,
		}
	}

	return response
}

// OptionResponse is a selectable choice stripped of the answer key.
type OptionResponse struct {
	ID      uint   `json:"id"`
	Content string `json:"content"`
}

// QuestionResponse is one assignment question as presented to a learner.
type QuestionResponse struct {
	AssignmentQuestionID uint                `json:"assignment_question_id"`
	Position             int                 `json:"position"`
	Content              string              `json:"content"`
	Kind                 models.QuestionKind `json:"kind"`
	Points               float64             `json:"points"`
	Options              []OptionResponse    `json:"options"`
}

// NewQuestionResponseSlice converts assignment questions for learner
// consumption. Correct-answer data never leaves through this path.
func NewQuestionResponseSlice(questions []models.AssignmentQuestion) []QuestionResponse {
	responses := make([]QuestionResponse, 0, len(questions))
	for _, aq := range questions {
		options := make([]OptionResponse, 0, len(aq.Question.Options))
		for _, option := range aq.Question.Options {
			options = append(options, OptionResponse{ID: option.ID, Content: option.Content})
		}

		responses = append(responses, QuestionResponse{
			AssignmentQuestionID: aq.ID,
			Position:             aq.Position,
			Content:              aq.Question.Content,
			Kind:                 aq.Question.Kind,
			Points:               aq.Question.PointValue(),
			Options:              options,
		})
	}

	return responses
}

// ResultQuestion reports one question's outcome after submission. The
// correct answer is present only when the visibility policy allows it.
type ResultQuestion struct {
	AssignmentQuestionID uint                `json:"assignment_question_id"`
	Position             int                 `json:"position"`
	Content              string              `json:"content"`
	Kind                 models.QuestionKind `json:"kind"`
	Points               float64             `json:"points"`
	YourAnswer           string              `json:"your_answer"`
	Verdict              string              `json:"verdict"`
	CorrectAnswer        *string             `json:"correct_answer,omitempty"`
}

// ResultsResponse is the post-submission result view for one assignment.
type ResultsResponse struct {
	AssignmentID uint             `json:"assignment_id"`
	Score        float64          `json:"score"`
	Status       string           `json:"status"`
	SubmittedAt  time.Time        `json:"submitted_at"`
	ShowAnswers  bool             `json:"show_answers"`
	Questions    []ResultQuestion `json:"questions"`
}
