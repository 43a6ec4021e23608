package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/openlearn/edulearn-api/internal/models"
)

// LearnerRepository resolves learner profiles.
type LearnerRepository interface {
	GetByID(ctx context.Context, id uint) (models.Learner, error)
	GetByAccountID(ctx context.Context, accountID uint) (models.Learner, error)
}

type learnerRepository struct {
	db *gorm.DB
}

// NewLearnerRepository instantiates a GORM-backed repository.
func NewLearnerRepository(db *gorm.DB) LearnerRepository {
	return &learnerRepository{db: db}
}

func (r *learnerRepository) GetByID(ctx context.Context, id uint) (models.Learner, error) {
	var learner models.Learner
	if err := r.db.WithContext(ctx).First(&learner, id).Error; err != nil {
		return models.Learner{}, err
	}

	return learner, nil
}

func (r *learnerRepository) GetByAccountID(ctx context.Context, accountID uint) (models.Learner, error) {
	var learner models.Learner
	if err := r.db.WithContext(ctx).Where("account_id = ?", accountID).First(&learner).Error; err != nil {
		return models.Learner{}, err
	}

	return learner, nil
}
