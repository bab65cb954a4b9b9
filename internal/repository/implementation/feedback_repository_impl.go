package implementation

import (
	"context"
	"errors"

	"career-compass-be/internal/entity"
	"career-compass-be/internal/mapper"
	"career-compass-be/internal/model"
	"career-compass-be/internal/repository/contract"
	"career-compass-be/internal/repository/specification"

	"gorm.io/gorm"
)

type FeedbackRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.CareerMapper
}

func NewFeedbackRepository(db *gorm.DB) contract.FeedbackRepository {
	return &FeedbackRepositoryImpl{
		db:     db,
		mapper: mapper.NewCareerMapper(),
	}
}

func (r *FeedbackRepositoryImpl) Create(ctx context.Context, feedback *entity.AssessmentFeedback) error {
	m := r.mapper.FeedbackToModel(feedback)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return contract.ErrDuplicate
		}
		return err
	}
	*feedback = *r.mapper.FeedbackToEntity(m)
	return nil
}

func (r *FeedbackRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.AssessmentFeedback, error) {
	var m model.AssessmentFeedback
	query := applySpecifications(r.db.WithContext(ctx), specs...)

	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.FeedbackToEntity(&m), nil
}

func (r *FeedbackRepositoryImpl) Aggregate(ctx context.Context) (*entity.FeedbackAggregate, error) {
	var row struct {
		Total         int64
		RatingSum     int64
		AccurateCount int64
	}
	err := r.db.WithContext(ctx).Model(&model.AssessmentFeedback{}).
		Select("COUNT(*) AS total, COALESCE(SUM(rating), 0) AS rating_sum, COUNT(*) FILTER (WHERE is_accurate) AS accurate_count").
		Scan(&row).Error
	if err != nil {
		return nil, err
	}
	return &entity.FeedbackAggregate{
		Total:         row.Total,
		RatingSum:     row.RatingSum,
		AccurateCount: row.AccurateCount,
	}, nil
}
