package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"career-compass-be/internal/dto"
	"career-compass-be/internal/entity"
	"career-compass-be/internal/pkg/apperror"
	"career-compass-be/internal/pkg/logger"
	"career-compass-be/internal/repository/contract"
	"career-compass-be/internal/repository/specification"
	"career-compass-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

const msgAssessmentNotOwned = "Assessment not found or unauthorized"

type IFeedbackService interface {
	Submit(ctx context.Context, userId uuid.UUID, req *dto.SubmitFeedbackRequest) (*dto.FeedbackResponse, error)
	GetForAssessment(ctx context.Context, userId uuid.UUID, assessmentId uuid.UUID) (*dto.FeedbackResponse, error)
	Stats(ctx context.Context) (*dto.FeedbackStatsResponse, error)
}

type feedbackService struct {
	uowFactory unitofwork.RepositoryFactory
	logger     logger.ILogger
}

func NewFeedbackService(uowFactory unitofwork.RepositoryFactory, log logger.ILogger) IFeedbackService {
	return &feedbackService{
		uowFactory: uowFactory,
		logger:     log,
	}
}

func (s *feedbackService) ownedAssessment(ctx context.Context, uow unitofwork.UnitOfWork, userId, assessmentId uuid.UUID) (*entity.CareerAssessment, error) {
	assessment, err := uow.AssessmentRepository().FindOne(ctx, specification.ByID{ID: assessmentId})
	if err != nil {
		return nil, apperror.Internal("Failed to load assessment", err)
	}
	if assessment == nil || assessment.UserId != userId {
		return nil, apperror.NotFound(msgAssessmentNotOwned)
	}
	return assessment, nil
}

// Submit stores the one feedback an assessment can receive.
func (s *feedbackService) Submit(ctx context.Context, userId uuid.UUID, req *dto.SubmitFeedbackRequest) (*dto.FeedbackResponse, error) {
	if req.Rating < 1 || req.Rating > 5 {
		return nil, apperror.Validation("Rating must be between 1 and 5")
	}
	if req.IsAccurate == nil {
		return nil, apperror.Validation("isAccurate is required")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if _, err := s.ownedAssessment(ctx, uow, userId, req.AssessmentId); err != nil {
		return nil, err
	}

	feedback := &entity.AssessmentFeedback{
		Id:           uuid.New(),
		AssessmentId: req.AssessmentId,
		Rating:       req.Rating,
		IsAccurate:   *req.IsAccurate,
		CreatedAt:    time.Now(),
	}
	if req.Comment != nil {
		if c := strings.TrimSpace(*req.Comment); c != "" {
			feedback.Comment = &c
		}
	}

	if err := uow.FeedbackRepository().Create(ctx, feedback); err != nil {
		if errors.Is(err, contract.ErrDuplicate) {
			return nil, apperror.Conflict("Feedback has already been submitted and cannot be changed")
		}
		return nil, apperror.Internal("Failed to submit feedback", err)
	}

	s.logger.Info("FEEDBACK", "Feedback submitted", map[string]interface{}{
		"assessment_id": req.AssessmentId.String(),
		"rating":        req.Rating,
	})
	return toFeedbackResponse(feedback), nil
}

// GetForAssessment returns nil when the assessment has no feedback yet.
func (s *feedbackService) GetForAssessment(ctx context.Context, userId uuid.UUID, assessmentId uuid.UUID) (*dto.FeedbackResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if _, err := s.ownedAssessment(ctx, uow, userId, assessmentId); err != nil {
		return nil, err
	}

	feedback, err := uow.FeedbackRepository().FindOne(ctx, specification.ByAssessmentID{AssessmentID: assessmentId})
	if err != nil {
		return nil, apperror.Internal("Failed to load feedback", err)
	}
	if feedback == nil {
		return nil, nil
	}
	return toFeedbackResponse(feedback), nil
}

func (s *feedbackService) Stats(ctx context.Context) (*dto.FeedbackStatsResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	agg, err := uow.FeedbackRepository().Aggregate(ctx)
	if err != nil {
		return nil, apperror.Internal("Failed to load feedback stats", err)
	}
	return feedbackStats(agg), nil
}

func feedbackStats(agg *entity.FeedbackAggregate) *dto.FeedbackStatsResponse {
	if agg == nil || agg.Total == 0 {
		return &dto.FeedbackStatsResponse{}
	}

	total := float64(agg.Total)
	average := float64(agg.RatingSum) / total
	return &dto.FeedbackStatsResponse{
		Happiness: &dto.HappinessStats{
			HappinessIndex: round1(average / 5 * 100),
			AverageRating:  round1(average),
			TotalFeedbacks: agg.Total,
		},
		Accuracy: &dto.AccuracyStats{
			AccuracyPercentage: round1(float64(agg.AccurateCount) / total * 100),
			TotalFeedbacks:     agg.Total,
			AccurateCount:      agg.AccurateCount,
		},
	}
}

func toFeedbackResponse(f *entity.AssessmentFeedback) *dto.FeedbackResponse {
	return &dto.FeedbackResponse{
		Id:           f.Id,
		AssessmentId: f.AssessmentId,
		Rating:       f.Rating,
		Comment:      f.Comment,
		IsAccurate:   f.IsAccurate,
		CreatedAt:    f.CreatedAt,
	}
}
