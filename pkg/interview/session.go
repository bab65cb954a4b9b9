package interview

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

type Flow string

const (
	FlowAssessment Flow = "assessment"
	FlowValidation Flow = "validation"
)

type Status string

const (
	StatusAwaitingAnswer        Status = "AWAITING_ANSWER"
	StatusAwaitingOptionalInput Status = "AWAITING_OPTIONAL_INPUT"
	StatusReadyToSubmit         Status = "READY_TO_SUBMIT"
	StatusComplete              Status = "COMPLETE"
)

const (
	EntryTypeOptional         = "optional"
	AdditionalContextQuestion = "Additional Context"
)

var (
	ErrEmptyAnswer           = errors.New("answer cannot be empty")
	ErrNotAwaitingAnswer     = errors.New("session is not awaiting an answer")
	ErrNotAwaitingLayerInput = errors.New("session is not awaiting optional layer input")
	ErrNotReadyToSubmit      = errors.New("session is not ready to submit")
	ErrSessionComplete       = errors.New("session is already complete")
)

// HistoryEntry is one answered question, or an optional addendum when Type is "optional".
type HistoryEntry struct {
	LayerID   string `json:"layerId"`
	LayerName string `json:"layerName,omitempty"`
	Question  string `json:"question"`
	Answer    string `json:"answer"`
	Type      string `json:"type,omitempty"`
}

type Session struct {
	ID                   string          `json:"id"`
	UserID               string          `json:"userId"`
	Flow                 Flow            `json:"flow"`
	Layers               []Layer         `json:"layers"`
	CurrentLayerIndex    int             `json:"currentLayerIndex"`
	QuestionCountInLayer int             `json:"questionCountInLayer"`
	History              []HistoryEntry  `json:"history"`
	CurrentQuestion      string          `json:"currentQuestion"`
	ShowLayerInput       bool            `json:"showLayerInput"`
	Status               Status          `json:"status"`
	Context              json.RawMessage `json:"context,omitempty"`
	CreatedAt            time.Time       `json:"createdAt"`
	UpdatedAt            time.Time       `json:"updatedAt"`
}

// NewAssessmentSession starts the open-ended interview on the first bank layer.
func NewAssessmentSession(userID string, bank *Bank) *Session {
	perLayer := bank.QuestionsPerAssessmentLayer()
	layers := make([]Layer, len(bank.Assessment))
	for i, layer := range bank.Assessment {
		layer.QuestionCount = perLayer
		layer.Questions = nil
		layers[i] = layer
	}
	return newSession(userID, FlowAssessment, layers, nil)
}

// NewValidationSession starts an interview whose questions are all known up front.
func NewValidationSession(userID string, layers []Layer, context json.RawMessage) (*Session, error) {
	if len(layers) == 0 {
		return nil, fmt.Errorf("validation session needs at least one layer")
	}

	copied := make([]Layer, len(layers))
	for i, layer := range layers {
		if len(layer.Questions) == 0 {
			return nil, fmt.Errorf("validation layer %q has no questions", layer.ID)
		}
		layer.Questions = append([]string(nil), layer.Questions...)
		layer.QuestionCount = len(layer.Questions)
		copied[i] = layer
	}
	return newSession(userID, FlowValidation, copied, context), nil
}

func newSession(userID string, flow Flow, layers []Layer, context json.RawMessage) *Session {
	now := time.Now()
	return &Session{
		ID:              uuid.NewString(),
		UserID:          userID,
		Flow:            flow,
		Layers:          layers,
		History:         make([]HistoryEntry, 0),
		CurrentQuestion: layers[0].FirstQuestion(),
		Status:          StatusAwaitingAnswer,
		Context:         context,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

func (s *Session) CurrentLayer() Layer {
	return s.Layers[s.CurrentLayerIndex]
}

func (s *Session) IsLastLayer() bool {
	return s.CurrentLayerIndex == len(s.Layers)-1
}

// QuestionCap is how many questions the current layer asks before optional input.
func (s *Session) QuestionCap() int {
	layer := s.CurrentLayer()
	if len(layer.Questions) > 0 {
		return len(layer.Questions)
	}
	if layer.QuestionCount > 0 {
		return layer.QuestionCount
	}
	return 1
}

// LayerHistory returns the answered questions of one layer, addenda excluded.
func (s *Session) LayerHistory(layerID string) []HistoryEntry {
	out := make([]HistoryEntry, 0)
	for _, entry := range s.History {
		if entry.LayerID == layerID && entry.Type == "" {
			out = append(out, entry)
		}
	}
	return out
}

// Progress is the share of questions answered, in percent.
func (s *Session) Progress() float64 {
	if s.Status == StatusReadyToSubmit || s.Status == StatusComplete {
		return 100
	}

	total, done := 0, 0
	for i, layer := range s.Layers {
		count := layer.QuestionCount
		if len(layer.Questions) > 0 {
			count = len(layer.Questions)
		}
		total += count
		if i < s.CurrentLayerIndex {
			done += count
		}
	}
	if total == 0 {
		return 0
	}

	done += s.QuestionCountInLayer
	if s.Status == StatusAwaitingOptionalInput {
		done++
	}
	return float64(done) / float64(total) * 100
}

// Clone deep-copies the session so callers can mutate it without touching a stored copy.
func (s *Session) Clone() *Session {
	c := *s
	c.Layers = make([]Layer, len(s.Layers))
	for i, layer := range s.Layers {
		layer.Questions = append([]string(nil), layer.Questions...)
		c.Layers[i] = layer
	}
	c.History = append(make([]HistoryEntry, 0, len(s.History)), s.History...)
	if s.Context != nil {
		c.Context = append(json.RawMessage(nil), s.Context...)
	}
	return &c
}
