package service

import (
	"context"

	"career-compass-be/internal/dto"
	"career-compass-be/internal/pkg/apperror"
	"career-compass-be/internal/pkg/logger"
	"career-compass-be/pkg/interview"

	"github.com/google/uuid"
)

// SessionStore keeps in-progress interviews. Get returns a copy the caller may mutate.
// Lock serializes the steps of one session for as long as the session is stored.
type SessionStore interface {
	Save(session *interview.Session)
	Get(sessionID string) (*interview.Session, bool)
	Delete(sessionID string)
	Lock(sessionID string) func()
}

// interviewRunner holds the steps shared by the assessment and validation flows.
// Every step works on a copy of the stored session and saves it only on success,
// so a failed step leaves the stored state unchanged.
type interviewRunner struct {
	flow      interview.Flow
	machine   *interview.Machine
	sessions  SessionStore
	assembler ISubmissionAssembler
	logger    logger.ILogger
}

func (r *interviewRunner) load(userId uuid.UUID, sessionID string) (*interview.Session, error) {
	s, ok := r.sessions.Get(sessionID)
	if !ok || s.Flow != r.flow || s.UserID != userId.String() {
		return nil, apperror.NotFound("Interview session not found")
	}
	return s, nil
}

func (r *interviewRunner) start(s *interview.Session) *dto.InterviewSessionResponse {
	r.sessions.Save(s)
	r.logger.Info("INTERVIEW", "Session started", map[string]interface{}{
		"session_id": s.ID,
		"user_id":    s.UserID,
		"flow":       string(s.Flow),
	})
	return dto.NewInterviewSessionResponse(s)
}

func (r *interviewRunner) get(userId uuid.UUID, sessionID string) (*dto.InterviewSessionResponse, error) {
	s, err := r.load(userId, sessionID)
	if err != nil {
		return nil, err
	}
	return dto.NewInterviewSessionResponse(s), nil
}

func (r *interviewRunner) submitAnswer(ctx context.Context, userId uuid.UUID, sessionID, answer string) (*dto.InterviewSessionResponse, error) {
	unlock := r.sessions.Lock(sessionID)
	defer unlock()

	s, err := r.load(userId, sessionID)
	if err != nil {
		return nil, err
	}
	if err := r.machine.SubmitAnswer(ctx, s, answer); err != nil {
		return nil, interviewError(err)
	}
	r.sessions.Save(s)
	return dto.NewInterviewSessionResponse(s), nil
}

// completeLayer stores the layer completion first. On the last layer the final
// submission follows; if it fails the session stays ready to submit for a retry.
func (r *interviewRunner) completeLayer(ctx context.Context, userId uuid.UUID, sessionID, text string) (*dto.InterviewStepResponse, error) {
	unlock := r.sessions.Lock(sessionID)
	defer unlock()

	s, err := r.load(userId, sessionID)
	if err != nil {
		return nil, err
	}
	if err := r.machine.CompleteLayer(s, text); err != nil {
		return nil, interviewError(err)
	}
	r.sessions.Save(s)

	if s.Status != interview.StatusReadyToSubmit {
		return &dto.InterviewStepResponse{Session: dto.NewInterviewSessionResponse(s)}, nil
	}
	return r.finalSubmit(ctx, userId, s)
}

func (r *interviewRunner) submit(ctx context.Context, userId uuid.UUID, sessionID string) (*dto.InterviewStepResponse, error) {
	unlock := r.sessions.Lock(sessionID)
	defer unlock()

	s, err := r.load(userId, sessionID)
	if err != nil {
		return nil, err
	}
	switch s.Status {
	case interview.StatusComplete:
		return nil, interviewError(interview.ErrSessionComplete)
	case interview.StatusReadyToSubmit:
	default:
		return nil, interviewError(interview.ErrNotReadyToSubmit)
	}
	return r.finalSubmit(ctx, userId, s)
}

func (r *interviewRunner) finalSubmit(ctx context.Context, userId uuid.UUID, s *interview.Session) (*dto.InterviewStepResponse, error) {
	assessment, err := r.assembler.Submit(ctx, userId, s)
	if err != nil {
		r.logger.Warn("INTERVIEW", "Final submission failed", map[string]interface{}{
			"session_id": s.ID,
			"error":      err.Error(),
		})
		return nil, err
	}

	if err := r.machine.MarkComplete(s); err != nil {
		return nil, interviewError(err)
	}
	r.sessions.Save(s)

	return &dto.InterviewStepResponse{
		Session:    dto.NewInterviewSessionResponse(s),
		Assessment: toAssessmentResponse(assessment),
	}, nil
}
