package entity

import (
	"encoding/json"
	"time"

	"career-compass-be/pkg/analysis"

	"github.com/google/uuid"
)

// CareerAssessment is the single stored analysis of a user. Questions keeps the raw
// submission (interview history, or resume plus validation answers).
type CareerAssessment struct {
	Id                   uuid.UUID
	UserId               uuid.UUID
	Questions            json.RawMessage
	PrimaryRole          *string
	Analysis             *analysis.Analysis
	RecommendedCountries []analysis.Country
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

type CareerRoadmap struct {
	Id        uuid.UUID
	UserId    uuid.UUID
	Duration  int
	Roadmap   *analysis.Roadmap
	Progress  map[string]bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CompletedTasks counts the tasks marked done.
func (r *CareerRoadmap) CompletedTasks() int {
	n := 0
	for _, done := range r.Progress {
		if done {
			n++
		}
	}
	return n
}

type AssessmentFeedback struct {
	Id           uuid.UUID
	AssessmentId uuid.UUID
	Rating       int
	Comment      *string
	IsAccurate   bool
	CreatedAt    time.Time
}

type IndustryInsight struct {
	Id         uuid.UUID
	Industry   string
	Insight    *analysis.IndustryInsight
	LastUpdate time.Time
	NextUpdate time.Time
}

// FeedbackAggregate is the raw material of the public feedback stats.
type FeedbackAggregate struct {
	Total         int64
	RatingSum     int64
	AccurateCount int64
}
