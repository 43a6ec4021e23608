package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/openlearn/edulearn-api/internal/models"
)

// EnrollmentRepository answers course-membership questions.
type EnrollmentRepository interface {
	IsEnrolled(ctx context.Context, courseID, learnerID uint) (bool, error)
	ListCourseIDs(ctx context.Context, learnerID uint) ([]uint, error)
}

type enrollmentRepository struct {
	db *gorm.DB
}

// NewEnrollmentRepository instantiates the repository.
func NewEnrollmentRepository(db *gorm.DB) EnrollmentRepository {
	return &enrollmentRepository{db: db}
}

func (r *enrollmentRepository) IsEnrolled(ctx context.Context, courseID, learnerID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Enrollment{}).
		Where("course_id = ?", courseID).
		Where("learner_id = ?", learnerID).
		Count(&count).Error
	if err != nil {
		return false, err
	}

	return count > 0, nil
}

func (r *enrollmentRepository) ListCourseIDs(ctx context.Context, learnerID uint) ([]uint, error) {
	var ids []uint
	err := r.db.WithContext(ctx).Model(&models.Enrollment{}).
		Where("learner_id = ?", learnerID).
		Pluck("course_id", &ids).Error
	if err != nil {
		return nil, err
	}

	return ids, nil
}
