package dto

import (
	"time"

	"career-compass-be/pkg/interview"
)

type SubmitAnswerRequest struct {
	Answer string `json:"answer" validate:"required,max=5000"`
}

type CompleteLayerRequest struct {
	Text string `json:"text" validate:"max=5000"`
}

type LayerResponse struct {
	Index       int    `json:"index"`
	Id          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

type InterviewSessionResponse struct {
	Id              string                   `json:"id"`
	Flow            string                   `json:"flow"`
	Status          string                   `json:"status"`
	CurrentLayer    LayerResponse            `json:"currentLayer"`
	TotalLayers     int                      `json:"totalLayers"`
	CurrentQuestion string                   `json:"currentQuestion"`
	QuestionNumber  int                      `json:"questionNumber"`
	QuestionCap     int                      `json:"questionCap"`
	ShowLayerInput  bool                     `json:"showLayerInput"`
	Progress        float64                  `json:"progress"`
	History         []interview.HistoryEntry `json:"history"`
	UpdatedAt       time.Time                `json:"updatedAt"`
}

// InterviewStepResponse is returned by every step that may end the interview.
// Assessment is set once the final submission succeeded.
type InterviewStepResponse struct {
	Session    *InterviewSessionResponse `json:"session"`
	Assessment *AssessmentResponse       `json:"assessment,omitempty"`
}

func NewInterviewSessionResponse(s *interview.Session) *InterviewSessionResponse {
	layer := s.CurrentLayer()
	question := s.QuestionCountInLayer + 1
	if s.Status == interview.StatusReadyToSubmit || s.Status == interview.StatusComplete {
		question = s.QuestionCap()
	}
	return &InterviewSessionResponse{
		Id:     s.ID,
		Flow:   string(s.Flow),
		Status: string(s.Status),
		CurrentLayer: LayerResponse{
			Index:       s.CurrentLayerIndex,
			Id:          layer.ID,
			Name:        layer.Name,
			Description: layer.Description,
		},
		TotalLayers:     len(s.Layers),
		CurrentQuestion: s.CurrentQuestion,
		QuestionNumber:  question,
		QuestionCap:     s.QuestionCap(),
		ShowLayerInput:  s.ShowLayerInput,
		Progress:        s.Progress(),
		History:         s.History,
		UpdatedAt:       s.UpdatedAt,
	}
}
