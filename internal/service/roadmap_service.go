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
	"career-compass-be/pkg/analysis"
	"career-compass-be/pkg/events"
	"career-compass-be/pkg/llm"
	"career-compass-be/pkg/prompt"

	"github.com/google/uuid"
)

const msgRoadmapNotFound = "Roadmap not found"

type IRoadmapService interface {
	Generate(ctx context.Context, userId uuid.UUID, req *dto.GenerateRoadmapRequest) (*dto.RoadmapResponse, error)
	Get(ctx context.Context, userId uuid.UUID) (*dto.RoadmapResponse, error)
	SetTaskStatus(ctx context.Context, userId uuid.UUID, taskId string, req *dto.UpdateTaskStatusRequest) (*dto.RoadmapResponse, error)
}

type roadmapService struct {
	uowFactory unitofwork.RepositoryFactory
	provider   llm.LLMProvider
	publisher  events.Publisher
	logger     logger.ILogger
}

func NewRoadmapService(uowFactory unitofwork.RepositoryFactory, provider llm.LLMProvider, publisher events.Publisher, log logger.ILogger) IRoadmapService {
	return &roadmapService{
		uowFactory: uowFactory,
		provider:   provider,
		publisher:  publisher,
		logger:     log,
	}
}

func validDuration(months int) bool {
	return months == 3 || months == 6 || months == 12
}

// Generate replaces the user's roadmap; progress starts over with every task open.
func (s *roadmapService) Generate(ctx context.Context, userId uuid.UUID, req *dto.GenerateRoadmapRequest) (*dto.RoadmapResponse, error) {
	if !validDuration(req.Duration) {
		return nil, apperror.Validation("Duration must be 3, 6 or 12 months")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	user, err := findUser(ctx, uow, userId)
	if err != nil {
		return nil, err
	}
	assessment, err := findAssessment(ctx, uow, userId)
	if err != nil {
		return nil, err
	}
	if assessment == nil || assessment.Analysis == nil {
		return nil, apperror.NotFound(msgAssessmentRequired)
	}
	if assessment.PrimaryRole == nil || *assessment.PrimaryRole == "" {
		return nil, apperror.Validation("Please select a role at the career path page")
	}
	role := *assessment.PrimaryRole

	text, err := generate(ctx, s.provider, "roadmap", prompt.Roadmap(req.Duration, role, assessment.Analysis), llm.WithJSONResponse())
	if err != nil {
		return nil, err
	}
	plan, err := analysis.ParseRoadmap(text)
	if err != nil {
		return nil, malformedOr(err, "The AI returned an invalid roadmap, please try again")
	}

	now := time.Now()
	roadmap := &entity.CareerRoadmap{
		Id:        uuid.New(),
		UserId:    userId,
		Duration:  req.Duration,
		Roadmap:   plan,
		Progress:  plan.InitialProgress(),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uow.RoadmapRepository().Upsert(ctx, roadmap); err != nil {
		return nil, apperror.Internal("Failed to save roadmap", err)
	}

	s.logger.Info("ROADMAP", "Roadmap generated", map[string]interface{}{
		"user_id":  userId.String(),
		"duration": req.Duration,
		"tasks":    len(roadmap.Progress),
	})

	event := events.NewRoadmapGenerated(user.Id.String(), user.Email, user.Name, role, req.Duration)
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Warn("ROADMAP", "Failed to publish event", map[string]interface{}{
			"event": event.EventType(),
			"error": err.Error(),
		})
	}

	return toRoadmapResponse(roadmap), nil
}

func (s *roadmapService) Get(ctx context.Context, userId uuid.UUID) (*dto.RoadmapResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	roadmap, err := uow.RoadmapRepository().FindOne(ctx, specification.UserOwnedBy{UserID: userId})
	if err != nil {
		return nil, apperror.Internal("Failed to load roadmap", err)
	}
	if roadmap == nil {
		return nil, apperror.NotFound(msgRoadmapNotFound)
	}
	return toRoadmapResponse(roadmap), nil
}

// SetTaskStatus writes one progress key. Repeating the same call has no further effect.
func (s *roadmapService) SetTaskStatus(ctx context.Context, userId uuid.UUID, taskId string, req *dto.UpdateTaskStatusRequest) (*dto.RoadmapResponse, error) {
	taskId = strings.TrimSpace(taskId)
	if taskId == "" {
		return nil, apperror.Validation("Task id is required")
	}
	if req.Completed == nil {
		return nil, apperror.Validation("Completed is required")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	repo := uow.RoadmapRepository()

	roadmap, err := repo.FindOne(ctx, specification.UserOwnedBy{UserID: userId})
	if err != nil {
		return nil, apperror.Internal("Failed to load roadmap", err)
	}
	if roadmap == nil {
		return nil, apperror.NotFound(msgRoadmapNotFound)
	}
	if roadmap.Roadmap != nil && !roadmap.Roadmap.HasTask(taskId) {
		return nil, apperror.NotFound("Task not found")
	}

	if err := repo.SetTaskStatus(ctx, userId, taskId, *req.Completed); err != nil {
		if errors.Is(err, contract.ErrNotFound) {
			return nil, apperror.NotFound(msgRoadmapNotFound)
		}
		return nil, apperror.Internal("Failed to update progress", err)
	}

	if roadmap.Progress == nil {
		roadmap.Progress = make(map[string]bool)
	}
	roadmap.Progress[taskId] = *req.Completed
	roadmap.UpdatedAt = time.Now()
	return toRoadmapResponse(roadmap), nil
}

func toRoadmapResponse(r *entity.CareerRoadmap) *dto.RoadmapResponse {
	progress := r.Progress
	if progress == nil {
		progress = map[string]bool{}
	}
	return &dto.RoadmapResponse{
		Id:             r.Id,
		Duration:       r.Duration,
		Roadmap:        r.Roadmap,
		Progress:       progress,
		CompletedTasks: r.CompletedTasks(),
		TotalTasks:     len(progress),
		CreatedAt:      r.CreatedAt,
		UpdatedAt:      r.UpdatedAt,
	}
}
