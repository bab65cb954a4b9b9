package service

import (
	"context"
	"encoding/json"
	"time"

	"career-compass-be/internal/entity"
	"career-compass-be/internal/pkg/apperror"
	"career-compass-be/internal/pkg/logger"
	"career-compass-be/internal/repository/unitofwork"
	"career-compass-be/pkg/analysis"
	"career-compass-be/pkg/events"
	"career-compass-be/pkg/interview"
	"career-compass-be/pkg/llm"
	"career-compass-be/pkg/prompt"

	"github.com/google/uuid"
)

// ISubmissionAssembler turns a finished interview into the user's stored analysis.
type ISubmissionAssembler interface {
	Submit(ctx context.Context, userId uuid.UUID, session *interview.Session) (*entity.CareerAssessment, error)
}

type submissionAssembler struct {
	uowFactory unitofwork.RepositoryFactory
	provider   llm.LLMProvider
	publisher  events.Publisher
	logger     logger.ILogger
}

func NewSubmissionAssembler(
	uowFactory unitofwork.RepositoryFactory,
	provider llm.LLMProvider,
	publisher events.Publisher,
	log logger.ILogger,
) ISubmissionAssembler {
	return &submissionAssembler{
		uowFactory: uowFactory,
		provider:   provider,
		publisher:  publisher,
		logger:     log,
	}
}

type validationSubmission struct {
	ResumeData        json.RawMessage          `json:"resumeData"`
	ValidationAnswers []interview.HistoryEntry `json:"validationAnswers"`
}

// Submit makes exactly one completion call. Nothing is written unless the answer
// parses, and the stored assessment replaces any previous one.
func (a *submissionAssembler) Submit(ctx context.Context, userId uuid.UUID, session *interview.Session) (*entity.CareerAssessment, error) {
	uow := a.uowFactory.NewUnitOfWork(ctx)
	user, err := findUser(ctx, uow, userId)
	if err != nil {
		return nil, err
	}

	var (
		request   string
		operation string
		questions interface{}
	)
	switch session.Flow {
	case interview.FlowValidation:
		resume := session.Context
		if len(resume) == 0 {
			resume = json.RawMessage("null")
		}
		request = prompt.ValidationAnalysis(resume, session.History)
		operation = "validation_analysis"
		questions = []validationSubmission{{ResumeData: resume, ValidationAnswers: session.History}}
	default:
		request = prompt.AssessmentAnalysis(session.History)
		operation = "assessment_analysis"
		questions = []interface{}{session.History}
	}

	text, err := generate(ctx, a.provider, operation, request, llm.WithJSONResponse())
	if err != nil {
		return nil, err
	}

	result, _, err := analysis.Parse(text)
	if err != nil {
		a.logger.Warn("ASSESSMENT", "Analysis could not be parsed", map[string]interface{}{
			"user_id": userId.String(),
			"flow":    string(session.Flow),
			"length":  len(text),
		})
		return nil, malformedOr(err, "The AI returned an invalid analysis, please submit again")
	}
	if session.Flow == interview.FlowValidation {
		result.UserType = analysis.UserTypeExperienced
	}

	rawQuestions, err := json.Marshal(questions)
	if err != nil {
		return nil, apperror.Internal("Failed to encode submission", err)
	}

	now := time.Now()
	assessment := &entity.CareerAssessment{
		Id:                   uuid.New(),
		UserId:               userId,
		Questions:            rawQuestions,
		Analysis:             result,
		RecommendedCountries: result.RecommendedCountries,
		CreatedAt:            now,
		UpdatedAt:            now,
	}
	if err := uow.AssessmentRepository().Upsert(ctx, assessment); err != nil {
		return nil, apperror.Internal("Failed to save assessment", err)
	}

	a.logger.Info("ASSESSMENT", "Assessment saved", map[string]interface{}{
		"user_id":       userId.String(),
		"assessment_id": assessment.Id.String(),
		"flow":          string(session.Flow),
	})

	event := events.NewAssessmentCompleted(user.Id.String(), user.Email, user.Name, string(session.Flow), result.PrimaryProfile)
	if err := a.publisher.Publish(ctx, event); err != nil {
		a.logger.Warn("ASSESSMENT", "Failed to publish event", map[string]interface{}{
			"event": event.EventType(),
			"error": err.Error(),
		})
	}

	return assessment, nil
}
