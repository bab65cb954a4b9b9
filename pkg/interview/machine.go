package interview

import (
	"context"
	"strings"
	"time"

	"career-compass-be/internal/pkg/logger"
)

const (
	// FallbackQuestion replaces a follow-up that failed or timed out.
	FallbackQuestion = "Can you provide more details on that?"
	// EmptyQuestionFallback replaces a follow-up that came back blank.
	EmptyQuestionFallback = "Could you tell me more about that?"

	DefaultQuestionTimeout = 10 * time.Second
)

// QuestionGenerator produces the next follow-up question for a layer.
type QuestionGenerator interface {
	NextQuestion(ctx context.Context, layer Layer, history []HistoryEntry) (string, error)
}

// Machine drives a Session through its states. It holds no session state itself.
type Machine struct {
	generator QuestionGenerator
	timeout   time.Duration
	logger    logger.ILogger
}

func NewMachine(generator QuestionGenerator, timeout time.Duration, log logger.ILogger) *Machine {
	if timeout <= 0 {
		timeout = DefaultQuestionTimeout
	}
	return &Machine{
		generator: generator,
		timeout:   timeout,
		logger:    log,
	}
}

// SubmitAnswer records the answer to the current question and moves to the next
// question, or to optional input once the layer cap is reached. A blank answer
// leaves the session untouched.
func (m *Machine) SubmitAnswer(ctx context.Context, s *Session, answer string) error {
	switch s.Status {
	case StatusComplete:
		return ErrSessionComplete
	case StatusAwaitingAnswer:
	default:
		return ErrNotAwaitingAnswer
	}

	answer = strings.TrimSpace(answer)
	if answer == "" {
		return ErrEmptyAnswer
	}

	layer := s.CurrentLayer()
	s.History = append(s.History, HistoryEntry{
		LayerID:   layer.ID,
		LayerName: layer.Name,
		Question:  s.CurrentQuestion,
		Answer:    answer,
	})
	s.UpdatedAt = time.Now()

	if s.QuestionCountInLayer+1 >= s.QuestionCap() {
		s.ShowLayerInput = true
		s.Status = StatusAwaitingOptionalInput
		return nil
	}

	var next string
	if len(layer.Questions) > 0 {
		next = layer.Questions[s.QuestionCountInLayer+1]
	} else {
		next = m.RequestNextQuestion(ctx, layer, s.LayerHistory(layer.ID))
	}

	s.CurrentQuestion = next
	s.QuestionCountInLayer++
	return nil
}

// RequestNextQuestion asks the generator for a follow-up and always returns a
// question within the configured timeout.
func (m *Machine) RequestNextQuestion(ctx context.Context, layer Layer, history []HistoryEntry) string {
	ctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	type result struct {
		question string
		err      error
	}
	done := make(chan result, 1)

	go func() {
		q, err := m.generator.NextQuestion(ctx, layer, history)
		done <- result{question: q, err: err}
	}()

	select {
	case <-ctx.Done():
		m.logger.Warn("INTERVIEW", "Next question timed out, using fallback", map[string]interface{}{
			"layer_id": layer.ID,
			"timeout":  m.timeout.String(),
		})
		return FallbackQuestion
	case r := <-done:
		if r.err != nil {
			m.logger.Warn("INTERVIEW", "Next question failed, using fallback", map[string]interface{}{
				"layer_id": layer.ID,
				"error":    r.err.Error(),
			})
			return FallbackQuestion
		}
		q := strings.TrimSpace(r.question)
		if q == "" {
			return EmptyQuestionFallback
		}
		return q
	}
}

// CompleteLayer appends the optional addendum, if any, and advances to the next
// layer. On the last layer the session becomes ready to submit.
func (m *Machine) CompleteLayer(s *Session, optional string) error {
	if s.Status == StatusComplete {
		return ErrSessionComplete
	}
	if s.Status != StatusAwaitingOptionalInput {
		return ErrNotAwaitingLayerInput
	}

	layer := s.CurrentLayer()
	if text := strings.TrimSpace(optional); text != "" {
		s.History = append(s.History, HistoryEntry{
			LayerID:   layer.ID,
			LayerName: layer.Name,
			Question:  AdditionalContextQuestion,
			Answer:    text,
			Type:      EntryTypeOptional,
		})
	}

	s.ShowLayerInput = false
	s.UpdatedAt = time.Now()

	if s.IsLastLayer() {
		s.CurrentQuestion = ""
		s.Status = StatusReadyToSubmit
		return nil
	}

	s.CurrentLayerIndex++
	s.QuestionCountInLayer = 0
	s.CurrentQuestion = s.CurrentLayer().FirstQuestion()
	s.Status = StatusAwaitingAnswer
	return nil
}

// MarkComplete closes a session whose history was accepted by the submission step.
func (m *Machine) MarkComplete(s *Session) error {
	if s.Status != StatusReadyToSubmit {
		return ErrNotReadyToSubmit
	}
	s.Status = StatusComplete
	s.UpdatedAt = time.Now()
	return nil
}
