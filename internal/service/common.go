package service

import (
	"context"
	"errors"
	"math"

	"career-compass-be/internal/entity"
	"career-compass-be/internal/pkg/apperror"
	"career-compass-be/internal/repository/specification"
	"career-compass-be/internal/repository/unitofwork"
	"career-compass-be/pkg/analysis"
	"career-compass-be/pkg/interview"
	"career-compass-be/pkg/llm"

	"github.com/google/uuid"
)

const (
	msgUserNotFound       = "User not found"
	msgAssessmentRequired = "Please complete your career assessment first"
)

func findUser(ctx context.Context, uow unitofwork.UnitOfWork, userId uuid.UUID) (*entity.User, error) {
	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId})
	if err != nil {
		return nil, apperror.Internal("Failed to load user", err)
	}
	if user == nil {
		return nil, apperror.NotFound(msgUserNotFound)
	}
	return user, nil
}

// findAssessment returns the user's assessment, nil when there is none.
func findAssessment(ctx context.Context, uow unitofwork.UnitOfWork, userId uuid.UUID) (*entity.CareerAssessment, error) {
	assessment, err := uow.AssessmentRepository().FindOne(ctx, specification.UserOwnedBy{UserID: userId})
	if err != nil {
		return nil, apperror.Internal("Failed to load assessment", err)
	}
	return assessment, nil
}

// generate runs one completion tagged with operation and maps transport failures.
func generate(ctx context.Context, provider llm.LLMProvider, operation, prompt string, opts ...llm.Option) (string, error) {
	text, err := provider.Generate(llm.WithOperation(ctx, operation), prompt, opts...)
	if err != nil {
		return "", apperror.ExternalService("The AI service is unavailable, please try again", err)
	}
	return text, nil
}

func malformedOr(err error, msg string) error {
	if errors.Is(err, analysis.ErrMalformed) {
		return apperror.MalformedAnalysis(msg, err)
	}
	return apperror.Internal(msg, err)
}

// interviewError translates state machine errors into the API taxonomy.
func interviewError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, interview.ErrEmptyAnswer):
		return apperror.Validation("Answer cannot be empty")
	case errors.Is(err, interview.ErrNotAwaitingAnswer),
		errors.Is(err, interview.ErrNotAwaitingLayerInput),
		errors.Is(err, interview.ErrNotReadyToSubmit),
		errors.Is(err, interview.ErrSessionComplete):
		return apperror.Conflict(err.Error())
	default:
		return err
	}
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
