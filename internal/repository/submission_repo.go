package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/openlearn/edulearn-api/internal/models"
)

// SubmissionRepository defines data operations for submissions and the raw
// answers recorded with them.
type SubmissionRepository interface {
	GetByID(ctx context.Context, id uint) (models.Submission, error)
	GetByAssignmentAndLearner(ctx context.Context, assignmentID, learnerID uint) (models.Submission, error)
	ListByLearner(ctx context.Context, learnerID uint) ([]models.Submission, error)
	// CreateWithAnswers persists the submission row and upserts all answers
	// atomically. The unique index on (assignment_id, learner_id) rejects a
	// second attempt with gorm.ErrDuplicatedKey.
	CreateWithAnswers(ctx context.Context, submission *models.Submission, answers []models.Answer) error
	ListAnswers(ctx context.Context, learnerID uint, assignmentQuestionIDs []uint) ([]models.Answer, error)
}

type submissionRepository struct {
	db *gorm.DB
}

// NewSubmissionRepository instantiates the repository.
func NewSubmissionRepository(db *gorm.DB) SubmissionRepository {
	return &submissionRepository{db: db}
}

func (r *submissionRepository) baseQuery(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Model(&models.Submission{}).
		Preload("Assignment").
		Preload("Learner").
		Preload("Assets")
}

func (r *submissionRepository) GetByID(ctx context.Context, id uint) (models.Submission, error) {
	var submission models.Submission
	if err := r.baseQuery(ctx).First(&submission, id).Error; err != nil {
		return models.Submission{}, err
	}

	return submission, nil
}

func (r *submissionRepository) GetByAssignmentAndLearner(ctx context.Context, assignmentID, learnerID uint) (models.Submission, error) {
	var submission models.Submission
	err := r.baseQuery(ctx).
		Where("assignment_id = ?", assignmentID).
		Where("learner_id = ?", learnerID).
		First(&submission).Error
	if err != nil {
		return models.Submission{}, err
	}

	return submission, nil
}

func (r *submissionRepository) ListByLearner(ctx context.Context, learnerID uint) ([]models.Submission, error) {
	var submissions []models.Submission
	err := r.baseQuery(ctx).
		Where("learner_id = ?", learnerID).
		Order("submitted_at DESC").
		Find(&submissions).Error
	if err != nil {
		return nil, err
	}

	return submissions, nil
}

func (r *submissionRepository) CreateWithAnswers(ctx context.Context, submission *models.Submission, answers []models.Answer) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(submission).Error; err != nil {
			return err
		}

		for i := range answers {
			err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "learner_id"}, {Name: "assignment_question_id"}},
				DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
			}).Create(&answers[i]).Error
			if err != nil {
				return err
			}
		}

		return nil
	})
}

func (r *submissionRepository) ListAnswers(ctx context.Context, learnerID uint, assignmentQuestionIDs []uint) ([]models.Answer, error) {
	if len(assignmentQuestionIDs) == 0 {
		return nil, nil
	}

	var answers []models.Answer
	err := r.db.WithContext(ctx).Model(&models.Answer{}).
		Where("learner_id = ?", learnerID).
		Where("assignment_question_id IN ?", assignmentQuestionIDs).
		Find(&answers).Error
	if err != nil {
		return nil, err
	}

	return answers, nil
}
