package dto

import (
	"time"

	"github.com/openlearn/edulearn-api/internal/models"
)

// LearnerResponse is the profile view of the authenticated learner.
type LearnerResponse struct {
	ID        uint      `json:"id"`
	AccountID uint      `json:"account_id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// NewLearnerResponse converts a Learner model into a DTO.
func NewLearnerResponse(model models.Learner) LearnerResponse {
	return LearnerResponse{
		ID:        model.ID,
		AccountID: model.AccountID,
		Name:      model.Name,
		CreatedAt: model.CreatedAt,
	}
}
