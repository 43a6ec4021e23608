package dto

import (
	"time"

	"github.com/openlearn/edulearn-api/internal/models"
)

// SubmissionCreateRequest carries the multipart fields of a submit call.
// Answers maps assignment-question ids to the learner's raw answers.
type SubmissionCreateRequest struct {
	AssignmentID uint            `validate:"required,gt=0"`
	Answers      map[uint]string `validate:"omitempty,dive,keys,gt=0,endkeys"`
	Content      string          `validate:"omitempty,max=20000"`
	DurationSec  int             `validate:"omitempty,gte=0,lte=7200"`
}

// SubmissionResponse is returned to API clients when viewing submissions.
type SubmissionResponse struct {
	ID               uint           `json:"id"`
	AssignmentID     uint           `json:"assignment_id"`
	LearnerID        uint           `json:"learner_id"`
	Score            float64        `json:"score"`
	Status           string         `json:"status"`
	Content          string         `json:"content"`
	AudioURL         string         `json:"audio_url,omitempty"`
	AudioDurationSec int            `json:"audio_duration_sec,omitempty"`
	SubmittedAt      time.Time      `json:"submitted_at"`
	Assignment       AssignmentLite `json:"assignment"`
	Assets           []AssetLite    `json:"assets,omitempty"`
}

// AssignmentLite summarizes an assignment in submission responses.
type AssignmentLite struct {
	ID       uint                  `json:"id"`
	Title    string                `json:"title"`
	Type     models.AssignmentType `json:"type"`
	Deadline *time.Time            `json:"deadline"`
}

// AssetLite summarizes an uploaded attachment.
type AssetLite struct {
	Kind        string `json:"kind"`
	URL         string `json:"url"`
	DurationSec int    `json:"duration_sec"`
}

// NewSubmissionResponse converts a Submission model into a DTO.
func NewSubmissionResponse(model models.Submission) SubmissionResponse {
	response := SubmissionResponse{
		ID:               model.ID,
		AssignmentID:     model.AssignmentID,
		LearnerID:        model.LearnerID,
		Score:            model.Score,
		Status:           model.Status,
		Content:          model.Content,
		AudioURL:         model.AudioURL,
		AudioDurationSec: model.AudioDurationSec,
		SubmittedAt:      model.SubmittedAt,
	}

	if model.Assignment.ID != 0 {
		response.Assignment = AssignmentLite{
			ID:       model.Assignment.ID,
			Title:    model.Assignment.Title,
			Type:     model.Assignment.Type,
			Deadline: model.Assignment.Deadline,
		}
	}

	for _, asset := range model.Assets {
		response.Assets = append(response.Assets, AssetLite{
			Kind:        asset.Kind,
			URL:         asset.URL,
			DurationSec: asset.DurationSec,
		})
	}

	return response
}
