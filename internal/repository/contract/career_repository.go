package contract

import (
	"context"

	"career-compass-be/internal/entity"
	"career-compass-be/internal/repository/specification"

	"github.com/google/uuid"
)

type AssessmentRepository interface {
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.CareerAssessment, error)
	// Upsert replaces the user's assessment. Primary role is always cleared.
	Upsert(ctx context.Context, assessment *entity.CareerAssessment) error
	SetPrimaryRole(ctx context.Context, userID uuid.UUID, role string) error
}

type RoadmapRepository interface {
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.CareerRoadmap, error)
	// Upsert replaces the user's roadmap together with its progress.
	Upsert(ctx context.Context, roadmap *entity.CareerRoadmap) error
	// SetTaskStatus updates one progress key in place. ErrNotFound when the user has no roadmap.
	SetTaskStatus(ctx context.Context, userID uuid.UUID, taskID string, completed bool) error
}

type FeedbackRepository interface {
	// Create fails with ErrDuplicate when the assessment already has feedback.
	Create(ctx context.Context, feedback *entity.AssessmentFeedback) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.AssessmentFeedback, error)
	Aggregate(ctx context.Context) (*entity.FeedbackAggregate, error)
}

type IndustryInsightRepository interface {
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.IndustryInsight, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.IndustryInsight, error)
	// CreateIfAbsent inserts unless the industry exists and reports whether it inserted.
	CreateIfAbsent(ctx context.Context, insight *entity.IndustryInsight) (bool, error)
	Update(ctx context.Context, insight *entity.IndustryInsight) error
}
