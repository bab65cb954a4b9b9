package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"career-compass-be/internal/dto"
	"career-compass-be/internal/entity"
	"career-compass-be/internal/pkg/apperror"
	"career-compass-be/internal/pkg/logger"
	"career-compass-be/internal/repository/contract"
	"career-compass-be/internal/repository/specification"
	"career-compass-be/internal/repository/unitofwork"
	"career-compass-be/pkg/analysis"

	"github.com/google/uuid"
)

// Client routes returned as the next onboarding step.
const (
	StepSelection    = "/onboarding/selection"
	StepAssessment   = "/onboarding/assessment"
	StepResumeUpload = "/onboarding/resume-upload"
	StepCareerPath   = "/onboarding/career-path"
	StepRoadmap      = "/roadmap"
	StepDashboard    = "/dashboard"
)

type IUserService interface {
	ResolveUser(ctx context.Context, identity dto.Identity) (uuid.UUID, error)
	GetProfile(ctx context.Context, userId uuid.UUID) (*dto.UserProfileResponse, error)
	UpdateProfile(ctx context.Context, userId uuid.UUID, req *dto.UpdateProfileRequest) (*dto.UserProfileResponse, error)
	SetUserType(ctx context.Context, userId uuid.UUID, req *dto.UpdateUserTypeRequest) error
	SelectPrimaryRole(ctx context.Context, userId uuid.UUID, req *dto.SelectPrimaryRoleRequest) (*dto.AssessmentResponse, error)
	OnboardingStatus(ctx context.Context, userId uuid.UUID) (*dto.OnboardingStatusResponse, error)
}

// InsightScheduler queues industry insight generation.
type InsightScheduler interface {
	Schedule(ctx context.Context, industry string) error
}

type userService struct {
	uowFactory unitofwork.RepositoryFactory
	insights   InsightScheduler
	logger     logger.ILogger
}

func NewUserService(uowFactory unitofwork.RepositoryFactory, insights InsightScheduler, log logger.ILogger) IUserService {
	return &userService{
		uowFactory: uowFactory,
		insights:   insights,
		logger:     log,
	}
}

// ResolveUser finds the local user of a verified identity. A user created before the
// identity provider account (same email) gets linked; otherwise a new user is created.
func (s *userService) ResolveUser(ctx context.Context, identity dto.Identity) (uuid.UUID, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	repo := uow.UserRepository()

	user, err := repo.FindOne(ctx, specification.ByExternalID{ExternalID: identity.ExternalId})
	if err != nil {
		return uuid.Nil, apperror.Internal("Failed to load user", err)
	}
	if user != nil {
		return user.Id, nil
	}

	if identity.Email != "" {
		linked, err := s.linkByEmail(ctx, identity)
		if err != nil {
			return uuid.Nil, apperror.Internal("Failed to link user", err)
		}
		if linked != nil {
			s.logger.Info("USER", "Linked existing user to identity", map[string]interface{}{"user_id": linked.Id.String()})
			return linked.Id, nil
		}
	}

	now := time.Now()
	user = &entity.User{
		Id:         uuid.New(),
		ExternalId: identity.ExternalId,
		Email:      identity.Email,
		Name:       identity.Name,
		Skills:     []string{},
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if identity.ImageURL != "" {
		user.ImageURL = &identity.ImageURL
	}

	if err := repo.Create(ctx, user); err != nil {
		if !errors.Is(err, contract.ErrDuplicate) {
			return uuid.Nil, apperror.Internal("Failed to create user", err)
		}
		// a concurrent first request created the user
		existing, findErr := repo.FindOne(ctx, specification.ByExternalID{ExternalID: identity.ExternalId})
		if findErr != nil || existing == nil {
			return uuid.Nil, apperror.Internal("Failed to create user", err)
		}
		return existing.Id, nil
	}

	s.logger.Info("USER", "User created", map[string]interface{}{"user_id": user.Id.String()})
	return user.Id, nil
}

// linkByEmail attaches the identity to the user registered with the same email, nil when there is none.
func (s *userService) linkByEmail(ctx context.Context, identity dto.Identity) (*entity.User, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	repo := uow.UserRepository()
	user, err := repo.FindOne(ctx, specification.ByEmail{Email: identity.Email}, specification.ForUpdate{})
	if err != nil || user == nil {
		return nil, err
	}

	user.ExternalId = identity.ExternalId
	if identity.Name != "" {
		user.Name = identity.Name
	}
	if identity.ImageURL != "" {
		user.ImageURL = &identity.ImageURL
	}
	if err := repo.Update(ctx, user); err != nil {
		return nil, err
	}
	if err := uow.Commit(); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *userService) GetProfile(ctx context.Context, userId uuid.UUID) (*dto.UserProfileResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	user, err := findUser(ctx, uow, userId)
	if err != nil {
		return nil, err
	}
	return toProfileResponse(user), nil
}

func (s *userService) UpdateProfile(ctx context.Context, userId uuid.UUID, req *dto.UpdateProfileRequest) (*dto.UserProfileResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	user, err := findUser(ctx, uow, userId)
	if err != nil {
		return nil, err
	}

	industry := strings.TrimSpace(req.Industry)
	if industry == "" {
		return nil, apperror.Validation("Industry is required")
	}

	skills := make([]string, 0, len(req.Skills))
	for _, skill := range req.Skills {
		if skill = strings.TrimSpace(skill); skill != "" {
			skills = append(skills, skill)
		}
	}

	user.Industry = &industry
	user.Experience = req.Experience
	user.Bio = req.Bio
	user.Skills = skills
	user.City = trimmedOrNil(req.City)
	user.Country = trimmedOrNil(req.Country)
	user.UpdatedAt = time.Now()

	if err := uow.UserRepository().Update(ctx, user); err != nil {
		return nil, apperror.Internal("Failed to update profile", err)
	}

	// the profile is saved even when the insight cannot be queued
	if err := s.insights.Schedule(ctx, industry); err != nil {
		s.logger.Warn("USER", "Failed to schedule industry insight", map[string]interface{}{
			"industry": industry,
			"error":    err.Error(),
		})
	}

	return toProfileResponse(user), nil
}

func (s *userService) SetUserType(ctx context.Context, userId uuid.UUID, req *dto.UpdateUserTypeRequest) error {
	userType := entity.UserType(req.UserType)
	if !userType.Valid() {
		return apperror.Validation("User type must be FRESHER or EXPERIENCED")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.UserRepository().UpdateUserType(ctx, userId, userType); err != nil {
		if errors.Is(err, contract.ErrNotFound) {
			return apperror.NotFound(msgUserNotFound)
		}
		return apperror.Internal("Failed to update user type", err)
	}
	return nil
}

func (s *userService) SelectPrimaryRole(ctx context.Context, userId uuid.UUID, req *dto.SelectPrimaryRoleRequest) (*dto.AssessmentResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	assessment, err := findAssessment(ctx, uow, userId)
	if err != nil {
		return nil, err
	}
	if assessment == nil || assessment.Analysis == nil {
		return nil, apperror.NotFound(msgAssessmentRequired)
	}

	role, ok := assessment.Analysis.FindRole(req.Role)
	if !ok {
		return nil, apperror.Validation("Role must be one of the recommended roles")
	}

	if err := uow.AssessmentRepository().SetPrimaryRole(ctx, userId, role.Role); err != nil {
		if errors.Is(err, contract.ErrNotFound) {
			return nil, apperror.NotFound(msgAssessmentRequired)
		}
		return nil, apperror.Internal("Failed to update career path", err)
	}

	assessment.PrimaryRole = &role.Role
	return toAssessmentResponse(assessment), nil
}

func (s *userService) OnboardingStatus(ctx context.Context, userId uuid.UUID) (*dto.OnboardingStatusResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	user, err := findUser(ctx, uow, userId)
	if err != nil {
		return nil, err
	}
	assessment, err := findAssessment(ctx, uow, userId)
	if err != nil {
		return nil, err
	}
	roadmap, err := uow.RoadmapRepository().FindOne(ctx, specification.UserOwnedBy{UserID: userId})
	if err != nil {
		return nil, apperror.Internal("Failed to load roadmap", err)
	}

	res := &dto.OnboardingStatusResponse{
		IsOnboarded:    user.Industry != nil && *user.Industry != "",
		HasAssessment:  assessment != nil,
		HasPrimaryRole: assessment != nil && assessment.PrimaryRole != nil,
		HasRoadmap:     roadmap != nil,
	}
	if user.UserType != nil {
		t := string(*user.UserType)
		res.UserType = &t
	}

	switch {
	case user.UserType == nil:
		res.NextStep = StepSelection
	case !res.HasAssessment && *user.UserType == entity.UserTypeExperienced:
		res.NextStep = StepResumeUpload
	case !res.HasAssessment:
		res.NextStep = StepAssessment
	case !res.HasPrimaryRole:
		res.NextStep = StepCareerPath
	case !res.HasRoadmap:
		res.NextStep = StepRoadmap
	default:
		res.NextStep = StepDashboard
	}
	return res, nil
}

func trimmedOrNil(v *string) *string {
	if v == nil {
		return nil
	}
	t := strings.TrimSpace(*v)
	if t == "" {
		return nil
	}
	return &t
}

func toProfileResponse(user *entity.User) *dto.UserProfileResponse {
	res := &dto.UserProfileResponse{
		Id:         user.Id,
		Email:      user.Email,
		Name:       user.Name,
		Industry:   user.Industry,
		Bio:        user.Bio,
		Experience: user.Experience,
		Skills:     user.Skills,
		City:       user.City,
		Country:    user.Country,
		CreatedAt:  user.CreatedAt,
	}
	if res.Skills == nil {
		res.Skills = []string{}
	}
	if user.ImageURL != nil {
		res.ImageURL = *user.ImageURL
	}
	if user.UserType != nil {
		t := string(*user.UserType)
		res.UserType = &t
	}
	return res
}

func toAssessmentResponse(a *entity.CareerAssessment) *dto.AssessmentResponse {
	countries := a.RecommendedCountries
	if countries == nil {
		countries = []analysis.Country{}
	}
	return &dto.AssessmentResponse{
		Id:                   a.Id,
		UserId:               a.UserId,
		PrimaryRole:          a.PrimaryRole,
		Analysis:             a.Analysis,
		RecommendedCountries: countries,
		CreatedAt:            a.CreatedAt,
		UpdatedAt:            a.UpdatedAt,
	}
}
