package entity

import (
	"time"

	"github.com/google/uuid"
)

type UserType string

const (
	UserTypeFresher     UserType = "FRESHER"
	UserTypeExperienced UserType = "EXPERIENCED"
)

func (t UserType) Valid() bool {
	return t == UserTypeFresher || t == UserTypeExperienced
}

type User struct {
	Id         uuid.UUID
	ExternalId string
	Email      string
	Name       string
	ImageURL   *string
	UserType   *UserType
	Industry   *string
	Bio        *string
	Experience *int
	Skills     []string
	City       *string
	Country    *string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// HasLocation reports whether both city and country are known.
func (u *User) HasLocation() bool {
	return u.City != nil && *u.City != "" && u.Country != nil && *u.Country != ""
}
