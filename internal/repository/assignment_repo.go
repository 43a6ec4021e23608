package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/openlearn/edulearn-api/internal/models"
)

// AssignmentRepository defines persistence operations for assignments and
// their question lists.
type AssignmentRepository interface {
	GetByID(ctx context.Context, id uint) (models.Assignment, error)
	// GetForLearner fetches an assignment only when the learner is enrolled
	// in its course; outsiders see it as not found.
	GetForLearner(ctx context.Context, id, learnerID uint) (models.Assignment, error)
	ListActiveForLearner(ctx context.Context, learnerID uint) ([]models.Assignment, error)
	Questions(ctx context.Context, assignmentID uint) ([]models.AssignmentQuestion, error)
}

type assignmentRepository struct {
	db *gorm.DB
}

// NewAssignmentRepository instantiates a GORM-backed repository.
func NewAssignmentRepository(db *gorm.DB) AssignmentRepository {
	return &assignmentRepository{db: db}
}

func (r *assignmentRepository) GetByID(ctx context.Context, id uint) (models.Assignment, error) {
	var assignment models.Assignment
	if err := r.db.WithContext(ctx).First(&assignment, id).Error; err != nil {
		return models.Assignment{}, err
	}

	return assignment, nil
}

func (r *assignmentRepository) GetForLearner(ctx context.Context, id, learnerID uint) (models.Assignment, error) {
	var assignment models.Assignment
	err := r.db.WithContext(ctx).Model(&models.Assignment{}).
		Joins("JOIN enrollments ON enrollments.course_id = assignments.course_id AND enrollments.learner_id = ?", learnerID).
		Where("assignments.id = ?", id).
		First(&assignment).Error
	if err != nil {
		return models.Assignment{}, err
	}

	return assignment, nil
}

func (r *assignmentRepository) ListActiveForLearner(ctx context.Context, learnerID uint) ([]models.Assignment, error) {
	var assignments []models.Assignment
	err := r.db.WithContext(ctx).Model(&models.Assignment{}).
		Joins("JOIN enrollments ON enrollments.course_id = assignments.course_id AND enrollments.learner_id = ?", learnerID).
		Where("assignments.status = ?", models.AssignmentStatusActive).
		Order("assignments.deadline ASC").
		Find(&assignments).Error
	if err != nil {
		return nil, err
	}

	return assignments, nil
}

func (r *assignmentRepository) Questions(ctx context.Context, assignmentID uint) ([]models.AssignmentQuestion, error) {
	var questions []models.AssignmentQuestion
	err := r.db.WithContext(ctx).Model(&models.AssignmentQuestion{}).
		Preload("Question").
		Preload("Question.Options").
		Where("assignment_id = ?", assignmentID).
		Order("position ASC").
		Find(&questions).Error
	if err != nil {
		return nil, err
	}

	return questions, nil
}
