package dto

import (
	"time"

	"career-compass-be/pkg/analysis"

	"github.com/google/uuid"
)

type AssessmentResponse struct {
	Id                   uuid.UUID          `json:"id"`
	UserId               uuid.UUID          `json:"userId"`
	PrimaryRole          *string            `json:"primaryRole"`
	Analysis             *analysis.Analysis `json:"analysis"`
	RecommendedCountries []analysis.Country `json:"recommendedCountries"`
	CreatedAt            time.Time          `json:"createdAt"`
	UpdatedAt            time.Time          `json:"updatedAt"`
}

type GenerateRoadmapRequest struct {
	Duration int `json:"duration" validate:"required,oneof=3 6 12"`
}

type UpdateTaskStatusRequest struct {
	Completed *bool `json:"completed" validate:"required"`
}

type RoadmapResponse struct {
	Id             uuid.UUID         `json:"id"`
	Duration       int               `json:"duration"`
	Roadmap        *analysis.Roadmap `json:"roadmap"`
	Progress       map[string]bool   `json:"progress"`
	CompletedTasks int               `json:"completedTasks"`
	TotalTasks     int               `json:"totalTasks"`
	CreatedAt      time.Time         `json:"createdAt"`
	UpdatedAt      time.Time         `json:"updatedAt"`
}

type SubmitFeedbackRequest struct {
	AssessmentId uuid.UUID `json:"assessmentId" validate:"required"`
	Rating       int       `json:"rating" validate:"required,min=1,max=5"`
	Comment      *string   `json:"comment" validate:"omitempty,max=2000"`
	IsAccurate   *bool     `json:"isAccurate" validate:"required"`
}

type FeedbackResponse struct {
	Id           uuid.UUID `json:"id"`
	AssessmentId uuid.UUID `json:"assessmentId"`
	Rating       int       `json:"rating"`
	Comment      *string   `json:"comment"`
	IsAccurate   bool      `json:"isAccurate"`
	CreatedAt    time.Time `json:"createdAt"`
}

type HappinessStats struct {
	HappinessIndex float64 `json:"happinessIndex"`
	AverageRating  float64 `json:"averageRating"`
	TotalFeedbacks int64   `json:"totalFeedbacks"`
}

type AccuracyStats struct {
	AccuracyPercentage float64 `json:"accuracyPercentage"`
	TotalFeedbacks     int64   `json:"totalFeedbacks"`
	AccurateCount      int64   `json:"accurateCount"`
}

// FeedbackStatsResponse has null members until the first feedback arrives.
type FeedbackStatsResponse struct {
	Happiness *HappinessStats `json:"happiness"`
	Accuracy  *AccuracyStats  `json:"accuracy"`
}

type ImproveTextRequest struct {
	Current string `json:"current" validate:"required,max=5000"`
	Type    string `json:"type" validate:"required,max=100"`
}

type ImproveTextResponse struct {
	Improved string `json:"improved"`
}

type IndustryInsightResponse struct {
	Industry   string                    `json:"industry"`
	Insight    *analysis.IndustryInsight `json:"insight"`
	LastUpdate time.Time                 `json:"lastUpdate"`
	NextUpdate time.Time                 `json:"nextUpdate"`
}

type ResumeExtractionResponse struct {
	Profile *analysis.ResumeProfile `json:"profile"`
}

type StartValidationRequest struct {
	Profile *analysis.ResumeProfile `json:"profile" validate:"required"`
}

// IndustryInsightMessage is the payload of a queued insight generation.
type IndustryInsightMessage struct {
	Industry string `json:"industry"`
}
