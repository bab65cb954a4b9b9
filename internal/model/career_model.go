package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type CareerAssessment struct {
	Id                   uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId               uuid.UUID      `gorm:"type:uuid;uniqueIndex;not null"`
	Questions            datatypes.JSON `gorm:"type:jsonb;not null"`
	PrimaryRole          *string        `gorm:"type:varchar(255)"`
	Analysis             datatypes.JSON `gorm:"type:jsonb"`
	RecommendedCountries datatypes.JSON `gorm:"type:jsonb;default:'[]'"`
	CreatedAt            time.Time      `gorm:"autoCreateTime"`
	UpdatedAt            time.Time      `gorm:"autoUpdateTime"`

	User *User `gorm:"foreignKey:UserId;constraint:OnDelete:CASCADE"`
}

func (CareerAssessment) TableName() string {
	return "career_assessments"
}

type CareerRoadmap struct {
	Id          uuid.UUID                           `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId      uuid.UUID                           `gorm:"type:uuid;uniqueIndex;not null"`
	Duration    int                                 `gorm:"not null"`
	RoadmapData datatypes.JSON                      `gorm:"type:jsonb;not null"`
	Progress    datatypes.JSONType[map[string]bool] `gorm:"type:jsonb;not null"`
	CreatedAt   time.Time                           `gorm:"autoCreateTime"`
	UpdatedAt   time.Time                           `gorm:"autoUpdateTime"`

	User *User `gorm:"foreignKey:UserId;constraint:OnDelete:CASCADE"`
}

func (CareerRoadmap) TableName() string {
	return "career_roadmaps"
}

type AssessmentFeedback struct {
	Id           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	AssessmentId uuid.UUID `gorm:"type:uuid;uniqueIndex;not null"`
	Rating       int       `gorm:"not null;check:rating >= 1 AND rating <= 5"`
	Comment      *string   `gorm:"type:text"`
	IsAccurate   bool      `gorm:"not null;default:false"`
	CreatedAt    time.Time `gorm:"autoCreateTime"`

	Assessment *CareerAssessment `gorm:"foreignKey:AssessmentId;constraint:OnDelete:CASCADE"`
}

func (AssessmentFeedback) TableName() string {
	return "assessment_feedbacks"
}

type IndustryInsight struct {
	Id         uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Industry   string         `gorm:"type:varchar(255);uniqueIndex;not null"`
	Insight    datatypes.JSON `gorm:"type:jsonb;not null"`
	LastUpdate time.Time      `gorm:"autoUpdateTime"`
	NextUpdate time.Time      `gorm:"not null;index"`
}

func (IndustryInsight) TableName() string {
	return "industry_insights"
}
