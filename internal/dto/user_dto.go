package dto

import (
	"time"

	"github.com/google/uuid"
)

type UserProfileResponse struct {
	Id         uuid.UUID `json:"id"`
	Email      string    `json:"email"`
	Name       string    `json:"name"`
	ImageURL   string    `json:"imageUrl,omitempty"`
	UserType   *string   `json:"userType"`
	Industry   *string   `json:"industry"`
	Bio        *string   `json:"bio"`
	Experience *int      `json:"experience"`
	Skills     []string  `json:"skills"`
	City       *string   `json:"city"`
	Country    *string   `json:"country"`
	CreatedAt  time.Time `json:"createdAt"`
}

type UpdateProfileRequest struct {
	Industry   string   `json:"industry" validate:"required,max=200"`
	Experience *int     `json:"experience" validate:"omitempty,min=0,max=60"`
	Bio        *string  `json:"bio" validate:"omitempty,max=2000"`
	Skills     []string `json:"skills" validate:"omitempty,max=100,dive,required,max=100"`
	City       *string  `json:"city" validate:"omitempty,max=100"`
	Country    *string  `json:"country" validate:"omitempty,max=100"`
}

type UpdateUserTypeRequest struct {
	UserType string `json:"userType" validate:"required,oneof=FRESHER EXPERIENCED"`
}

type SelectPrimaryRoleRequest struct {
	Role string `json:"role" validate:"required,max=200"`
}

// OnboardingStatusResponse drives the client's gating between onboarding steps.
type OnboardingStatusResponse struct {
	IsOnboarded    bool    `json:"isOnboarded"`
	UserType       *string `json:"userType"`
	HasAssessment  bool    `json:"hasAssessment"`
	HasPrimaryRole bool    `json:"hasPrimaryRole"`
	HasRoadmap     bool    `json:"hasRoadmap"`
	NextStep       string  `json:"nextStep"`
}

// Identity is the verified caller as described by the identity provider.
type Identity struct {
	ExternalId string
	Email      string
	Name       string
	ImageURL   string
}
