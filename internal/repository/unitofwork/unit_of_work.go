package unitofwork

import (
	"context"

	"career-compass-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	UserRepository() contract.UserRepository
	AssessmentRepository() contract.AssessmentRepository
	RoadmapRepository() contract.RoadmapRepository
	FeedbackRepository() contract.FeedbackRepository
	IndustryInsightRepository() contract.IndustryInsightRepository
}
