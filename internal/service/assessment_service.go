package service

import (
	"context"

	"career-compass-be/internal/dto"
	"career-compass-be/internal/pkg/apperror"
	"career-compass-be/internal/pkg/logger"
	"career-compass-be/internal/repository/unitofwork"
	"career-compass-be/pkg/interview"

	"github.com/google/uuid"
)

// IAssessmentService runs the open-ended career interview of fresher users.
type IAssessmentService interface {
	StartInterview(ctx context.Context, userId uuid.UUID) (*dto.InterviewSessionResponse, error)
	GetSession(ctx context.Context, userId uuid.UUID, sessionId string) (*dto.InterviewSessionResponse, error)
	SubmitAnswer(ctx context.Context, userId uuid.UUID, sessionId string, req *dto.SubmitAnswerRequest) (*dto.InterviewSessionResponse, error)
	CompleteLayer(ctx context.Context, userId uuid.UUID, sessionId string, req *dto.CompleteLayerRequest) (*dto.InterviewStepResponse, error)
	Submit(ctx context.Context, userId uuid.UUID, sessionId string) (*dto.InterviewStepResponse, error)
	GetResult(ctx context.Context, userId uuid.UUID) (*dto.AssessmentResponse, error)
}

type assessmentService struct {
	uowFactory unitofwork.RepositoryFactory
	bank       *interview.Bank
	runner     *interviewRunner
}

func NewAssessmentService(
	uowFactory unitofwork.RepositoryFactory,
	bank *interview.Bank,
	machine *interview.Machine,
	sessions SessionStore,
	assembler ISubmissionAssembler,
	log logger.ILogger,
) IAssessmentService {
	return &assessmentService{
		uowFactory: uowFactory,
		bank:       bank,
		runner: &interviewRunner{
			flow:      interview.FlowAssessment,
			machine:   machine,
			sessions:  sessions,
			assembler: assembler,
			logger:    log,
		},
	}
}

func (s *assessmentService) StartInterview(ctx context.Context, userId uuid.UUID) (*dto.InterviewSessionResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if _, err := findUser(ctx, uow, userId); err != nil {
		return nil, err
	}
	return s.runner.start(interview.NewAssessmentSession(userId.String(), s.bank)), nil
}

func (s *assessmentService) GetSession(ctx context.Context, userId uuid.UUID, sessionId string) (*dto.InterviewSessionResponse, error) {
	return s.runner.get(userId, sessionId)
}

func (s *assessmentService) SubmitAnswer(ctx context.Context, userId uuid.UUID, sessionId string, req *dto.SubmitAnswerRequest) (*dto.InterviewSessionResponse, error) {
	return s.runner.submitAnswer(ctx, userId, sessionId, req.Answer)
}

func (s *assessmentService) CompleteLayer(ctx context.Context, userId uuid.UUID, sessionId string, req *dto.CompleteLayerRequest) (*dto.InterviewStepResponse, error) {
	return s.runner.completeLayer(ctx, userId, sessionId, req.Text)
}

func (s *assessmentService) Submit(ctx context.Context, userId uuid.UUID, sessionId string) (*dto.InterviewStepResponse, error) {
	return s.runner.submit(ctx, userId, sessionId)
}

func (s *assessmentService) GetResult(ctx context.Context, userId uuid.UUID) (*dto.AssessmentResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	assessment, err := findAssessment(ctx, uow, userId)
	if err != nil {
		return nil, err
	}
	if assessment == nil {
		return nil, apperror.NotFound("Assessment not found")
	}
	return toAssessmentResponse(assessment), nil
}
