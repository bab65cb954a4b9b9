package contract

import (
	"context"

	"career-compass-be/internal/entity"
	"career-compass-be/internal/repository/specification"

	"github.com/google/uuid"
)

type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	Update(ctx context.Context, user *entity.User) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.User, error)
	UpdateUserType(ctx context.Context, id uuid.UUID, userType entity.UserType) error
}
