package implementation

import (
	"context"
	"errors"

	"career-compass-be/internal/entity"
	"career-compass-be/internal/mapper"
	"career-compass-be/internal/model"
	"career-compass-be/internal/repository/contract"
	"career-compass-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type IndustryInsightRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.CareerMapper
}

func NewIndustryInsightRepository(db *gorm.DB) contract.IndustryInsightRepository {
	return &IndustryInsightRepositoryImpl{
		db:     db,
		mapper: mapper.NewCareerMapper(),
	}
}

func (r *IndustryInsightRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.IndustryInsight, error) {
	var m model.IndustryInsight
	query := applySpecifications(r.db.WithContext(ctx), specs...)

	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.InsightToEntity(&m)
}

func (r *IndustryInsightRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.IndustryInsight, error) {
	var models []model.IndustryInsight
	query := applySpecifications(r.db.WithContext(ctx), specs...)

	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}

	insights := make([]*entity.IndustryInsight, 0, len(models))
	for i := range models {
		insight, err := r.mapper.InsightToEntity(&models[i])
		if err != nil {
			return nil, err
		}
		insights = append(insights, insight)
	}
	return insights, nil
}

func (r *IndustryInsightRepositoryImpl) CreateIfAbsent(ctx context.Context, insight *entity.IndustryInsight) (bool, error) {
	m, err := r.mapper.InsightToModel(insight)
	if err != nil {
		return false, err
	}
	if m.Id == uuid.Nil {
		m.Id = uuid.New()
	}

	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "industry"}}, DoNothing: true}).
		Create(m)
	if res.Error != nil {
		return false, res.Error
	}
	if res.RowsAffected == 0 {
		return false, nil
	}

	insight.Id = m.Id
	insight.LastUpdate = m.LastUpdate
	return true, nil
}

func (r *IndustryInsightRepositoryImpl) Update(ctx context.Context, insight *entity.IndustryInsight) error {
	m, err := r.mapper.InsightToModel(insight)
	if err != nil {
		return err
	}
	res := r.db.WithContext(ctx).Model(&model.IndustryInsight{}).
		Where("id = ?", insight.Id).
		Updates(map[string]interface{}{
			"insight":     m.Insight,
			"next_update": m.NextUpdate,
			"last_update": gorm.Expr("NOW()"),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return contract.ErrNotFound
	}
	return nil
}
