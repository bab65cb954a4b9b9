package mapper

import (
	"career-compass-be/internal/entity"
	"career-compass-be/internal/model"

	"gorm.io/datatypes"
)

type UserMapper struct{}

func NewUserMapper() *UserMapper {
	return &UserMapper{}
}

func (m *UserMapper) ToEntity(u *model.User) *entity.User {
	if u == nil {
		return nil
	}

	var userType *entity.UserType
	if u.UserType != nil {
		t := entity.UserType(*u.UserType)
		userType = &t
	}

	skills := []string(u.Skills)
	if skills == nil {
		skills = []string{}
	}

	return &entity.User{
		Id:         u.Id,
		ExternalId: u.ExternalId,
		Email:      u.Email,
		Name:       u.Name,
		ImageURL:   u.ImageURL,
		UserType:   userType,
		Industry:   u.Industry,
		Bio:        u.Bio,
		Experience: u.Experience,
		Skills:     skills,
		City:       u.City,
		Country:    u.Country,
		CreatedAt:  u.CreatedAt,
		UpdatedAt:  u.UpdatedAt,
	}
}

func (m *UserMapper) ToModel(u *entity.User) *model.User {
	if u == nil {
		return nil
	}

	var userType *string
	if u.UserType != nil {
		t := string(*u.UserType)
		userType = &t
	}

	skills := u.Skills
	if skills == nil {
		skills = []string{}
	}

	return &model.User{
		Id:         u.Id,
		ExternalId: u.ExternalId,
		Email:      u.Email,
		Name:       u.Name,
		ImageURL:   u.ImageURL,
		UserType:   userType,
		Industry:   u.Industry,
		Bio:        u.Bio,
		Experience: u.Experience,
		Skills:     datatypes.NewJSONSlice(skills),
		City:       u.City,
		Country:    u.Country,
		CreatedAt:  u.CreatedAt,
		UpdatedAt:  u.UpdatedAt,
	}
}
