package implementation

import (
	"context"
	"errors"
	"time"

	"career-compass-be/internal/entity"
	"career-compass-be/internal/mapper"
	"career-compass-be/internal/model"
	"career-compass-be/internal/repository/contract"
	"career-compass-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type RoadmapRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.CareerMapper
}

func NewRoadmapRepository(db *gorm.DB) contract.RoadmapRepository {
	return &RoadmapRepositoryImpl{
		db:     db,
		mapper: mapper.NewCareerMapper(),
	}
}

func (r *RoadmapRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.CareerRoadmap, error) {
	var m model.CareerRoadmap
	query := applySpecifications(r.db.WithContext(ctx), specs...)

	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.RoadmapToEntity(&m)
}

func (r *RoadmapRepositoryImpl) Upsert(ctx context.Context, roadmap *entity.CareerRoadmap) error {
	m, err := r.mapper.RoadmapToModel(roadmap)
	if err != nil {
		return err
	}
	if m.Id == uuid.Nil {
		m.Id = uuid.New()
	}

	err = r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"duration":     m.Duration,
			"roadmap_data": m.RoadmapData,
			"progress":     m.Progress,
			"updated_at":   time.Now(),
		}),
	}).Create(m).Error
	if err != nil {
		return err
	}

	stored, err := r.FindOne(ctx, specification.UserOwnedBy{UserID: roadmap.UserId})
	if err != nil {
		return err
	}
	if stored == nil {
		return contract.ErrNotFound
	}
	*roadmap = *stored
	return nil
}

func (r *RoadmapRepositoryImpl) SetTaskStatus(ctx context.Context, userID uuid.UUID, taskID string, completed bool) error {
	res := r.db.WithContext(ctx).Model(&model.CareerRoadmap{}).
		Where("user_id = ?", userID).
		Updates(map[string]interface{}{
			"progress":   gorm.Expr("jsonb_set(progress, ARRAY[?]::text[], to_jsonb(?::boolean), true)", taskID, completed),
			"updated_at": time.Now(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return contract.ErrNotFound
	}
	return nil
}
