package controller

import (
	"career-compass-be/internal/pkg/apperror"
	"career-compass-be/internal/pkg/serverutils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

func currentUser(ctx *fiber.Ctx) (uuid.UUID, error) {
	raw, err := serverutils.UserID(ctx)
	if err != nil {
		return uuid.Nil, err
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, apperror.Unauthorized("Unauthorized")
	}
	return id, nil
}

// bindJSON parses and validates the request body into req.
func bindJSON(ctx *fiber.Ctx, req interface{}) error {
	if err := ctx.BodyParser(req); err != nil {
		return apperror.Validation("Invalid request body")
	}
	return serverutils.ValidateRequest(req)
}

// withAuth prefixes handler with the auth chain for routes outside an authenticated group.
func withAuth(auth []fiber.Handler, handler fiber.Handler) []fiber.Handler {
	chain := make([]fiber.Handler, 0, len(auth)+1)
	chain = append(chain, auth...)
	return append(chain, handler)
}
