package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type User struct {
	Id         uuid.UUID                   `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ExternalId string                      `gorm:"type:varchar(255);uniqueIndex;not null"`
	Email      string                      `gorm:"type:varchar(255);uniqueIndex;not null"`
	Name       string                      `gorm:"type:varchar(255)"`
	ImageURL   *string                     `gorm:"type:text"`
	UserType   *string                     `gorm:"type:varchar(20)"`
	Industry   *string                     `gorm:"type:varchar(255);index"`
	Bio        *string                     `gorm:"type:text"`
	Experience *int
	Skills     datatypes.JSONSlice[string] `gorm:"type:jsonb;default:'[]'"`
	City       *string                     `gorm:"type:varchar(255)"`
	Country    *string                     `gorm:"type:varchar(255)"`
	CreatedAt  time.Time                   `gorm:"autoCreateTime"`
	UpdatedAt  time.Time                   `gorm:"autoUpdateTime"`
}

func (User) TableName() string {
	return "users"
}
