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

type AssessmentRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.CareerMapper
}

func NewAssessmentRepository(db *gorm.DB) contract.AssessmentRepository {
	return &AssessmentRepositoryImpl{
		db:     db,
		mapper: mapper.NewCareerMapper(),
	}
}

func (r *AssessmentRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.CareerAssessment, error) {
	var m model.CareerAssessment
	query := applySpecifications(r.db.WithContext(ctx), specs...)

	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.AssessmentToEntity(&m)
}

func (r *AssessmentRepositoryImpl) Upsert(ctx context.Context, assessment *entity.CareerAssessment) error {
	assessment.PrimaryRole = nil

	m, err := r.mapper.AssessmentToModel(assessment)
	if err != nil {
		return err
	}
	if m.Id == uuid.Nil {
		m.Id = uuid.New()
	}

	err = r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"questions":             m.Questions,
			"primary_role":          nil,
			"analysis":              m.Analysis,
			"recommended_countries": m.RecommendedCountries,
			"updated_at":            time.Now(),
		}),
	}).Create(m).Error
	if err != nil {
		return err
	}

	// the conflicting row keeps its original id, read it back
	stored, err := r.FindOne(ctx, specification.UserOwnedBy{UserID: assessment.UserId})
	if err != nil {
		return err
	}
	if stored == nil {
		return contract.ErrNotFound
	}
	*assessment = *stored
	return nil
}

func (r *AssessmentRepositoryImpl) SetPrimaryRole(ctx context.Context, userID uuid.UUID, role string) error {
	res := r.db.WithContext(ctx).Model(&model.CareerAssessment{}).
		Where("user_id = ?", userID).
		Updates(map[string]interface{}{
			"primary_role": role,
			"updated_at":   time.Now(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return contract.ErrNotFound
	}
	return nil
}
