package service

import (
	"context"
	"encoding/json"
	"errors"

	"career-compass-be/internal/dto"
	"career-compass-be/internal/pkg/apperror"
	"career-compass-be/internal/pkg/logger"
	"career-compass-be/internal/repository/unitofwork"
	"career-compass-be/pkg/analysis"
	"career-compass-be/pkg/interview"
	"career-compass-be/pkg/llm"
	"career-compass-be/pkg/prompt"
	"career-compass-be/pkg/resume"

	"github.com/google/uuid"
)

// IValidationService runs the resume based flow of experienced users: the resume is
// turned into a profile, the LLM writes questions that probe its claims, and the
// answers are analysed together with the resume.
type IValidationService interface {
	ExtractResume(ctx context.Context, userId uuid.UUID, filename string, data []byte) (*dto.ResumeExtractionResponse, error)
	StartValidation(ctx context.Context, userId uuid.UUID, req *dto.StartValidationRequest) (*dto.InterviewSessionResponse, error)
	GetSession(ctx context.Context, userId uuid.UUID, sessionId string) (*dto.InterviewSessionResponse, error)
	SubmitAnswer(ctx context.Context, userId uuid.UUID, sessionId string, req *dto.SubmitAnswerRequest) (*dto.InterviewSessionResponse, error)
	CompleteLayer(ctx context.Context, userId uuid.UUID, sessionId string, req *dto.CompleteLayerRequest) (*dto.InterviewStepResponse, error)
	Submit(ctx context.Context, userId uuid.UUID, sessionId string) (*dto.InterviewStepResponse, error)
}

type validationService struct {
	uowFactory unitofwork.RepositoryFactory
	bank       *interview.Bank
	provider   llm.LLMProvider
	runner     *interviewRunner
	logger     logger.ILogger
}

func NewValidationService(
	uowFactory unitofwork.RepositoryFactory,
	bank *interview.Bank,
	provider llm.LLMProvider,
	machine *interview.Machine,
	sessions SessionStore,
	assembler ISubmissionAssembler,
	log logger.ILogger,
) IValidationService {
	return &validationService{
		uowFactory: uowFactory,
		bank:       bank,
		provider:   provider,
		logger:     log,
		runner: &interviewRunner{
			flow:      interview.FlowValidation,
			machine:   machine,
			sessions:  sessions,
			assembler: assembler,
			logger:    log,
		},
	}
}

func (s *validationService) ExtractResume(ctx context.Context, userId uuid.UUID, filename string, data []byte) (*dto.ResumeExtractionResponse, error) {
	text, err := resume.Extract(filename, data)
	if err != nil {
		return nil, resumeError(err)
	}

	out, err := generate(ctx, s.provider, "resume_extraction", prompt.ResumeExtraction(text), llm.WithJSONResponse())
	if err != nil {
		return nil, err
	}

	profile, err := analysis.ParseResumeProfile(out)
	if err != nil {
		return nil, malformedOr(err, "Failed to extract resume data")
	}

	s.logger.Info("VALIDATION", "Resume extracted", map[string]interface{}{
		"user_id": userId.String(),
		"skills":  len(profile.Skills),
	})
	return &dto.ResumeExtractionResponse{Profile: profile}, nil
}

func (s *validationService) StartValidation(ctx context.Context, userId uuid.UUID, req *dto.StartValidationRequest) (*dto.InterviewSessionResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if _, err := findUser(ctx, uow, userId); err != nil {
		return nil, err
	}
	if req.Profile == nil || len(req.Profile.Skills) == 0 {
		return nil, apperror.Validation("Resume profile must list at least one skill")
	}

	layers := s.bank.ValidationLayers
	out, err := generate(ctx, s.provider, "validation_questions", prompt.ValidationQuestions(req.Profile, layers), llm.WithJSONResponse())
	if err != nil {
		return nil, err
	}

	generated, err := analysis.ParseValidationQuestions(out, len(layers))
	if err != nil {
		return nil, malformedOr(err, "Failed to generate validation questions")
	}

	// layers keep their configured identity; the generated text only supplies questions
	sessionLayers := make([]interview.Layer, len(layers))
	for i, layer := range layers {
		layer.Questions = generated[i].Questions
		sessionLayers[i] = layer
	}

	resumeData, err := json.Marshal(req.Profile)
	if err != nil {
		return nil, apperror.Internal("Failed to encode resume profile", err)
	}

	session, err := interview.NewValidationSession(userId.String(), sessionLayers, resumeData)
	if err != nil {
		return nil, apperror.MalformedAnalysis("Failed to generate validation questions", err)
	}
	return s.runner.start(session), nil
}

func (s *validationService) GetSession(ctx context.Context, userId uuid.UUID, sessionId string) (*dto.InterviewSessionResponse, error) {
	return s.runner.get(userId, sessionId)
}

func (s *validationService) SubmitAnswer(ctx context.Context, userId uuid.UUID, sessionId string, req *dto.SubmitAnswerRequest) (*dto.InterviewSessionResponse, error) {
	return s.runner.submitAnswer(ctx, userId, sessionId, req.Answer)
}

func (s *validationService) CompleteLayer(ctx context.Context, userId uuid.UUID, sessionId string, req *dto.CompleteLayerRequest) (*dto.InterviewStepResponse, error) {
	return s.runner.completeLayer(ctx, userId, sessionId, req.Text)
}

func (s *validationService) Submit(ctx context.Context, userId uuid.UUID, sessionId string) (*dto.InterviewStepResponse, error) {
	return s.runner.submit(ctx, userId, sessionId)
}

func resumeError(err error) error {
	switch {
	case errors.Is(err, resume.ErrTooLarge):
		return apperror.Validation("File size must be less than 5MB")
	case errors.Is(err, resume.ErrUnsupportedFormat):
		return apperror.UnsupportedFormat("Only PDF and DOCX files are supported", err)
	case errors.Is(err, resume.ErrInsufficientText):
		return apperror.InsufficientText("Could not extract enough text from the resume", err)
	case errors.Is(err, resume.ErrUnreadable):
		return apperror.UnsupportedFormat("The resume file could not be read", err)
	default:
		return apperror.Internal("Failed to read resume", err)
	}
}
