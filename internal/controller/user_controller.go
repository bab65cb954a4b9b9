package controller

import (
	"career-compass-be/internal/dto"
	"career-compass-be/internal/pkg/serverutils"
	"career-compass-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IUserController interface {
	RegisterRoutes(r fiber.Router, auth ...fiber.Handler)
	GetProfile(ctx *fiber.Ctx) error
	UpdateProfile(ctx *fiber.Ctx) error
	SetUserType(ctx *fiber.Ctx) error
	SelectPrimaryRole(ctx *fiber.Ctx) error
	OnboardingStatus(ctx *fiber.Ctx) error
}

type userController struct {
	service service.IUserService
}

func NewUserController(service service.IUserService) IUserController {
	return &userController{service: service}
}

func (c *userController) RegisterRoutes(r fiber.Router, auth ...fiber.Handler) {
	h := r.Group("/user/v1", auth...)
	h.Get("/profile", c.GetProfile)
	h.Put("/profile", c.UpdateProfile)
	h.Put("/type", c.SetUserType)
	h.Put("/primary-role", c.SelectPrimaryRole)
	h.Get("/onboarding", c.OnboardingStatus)
}

func (c *userController) GetProfile(ctx *fiber.Ctx) error {
	userId, err := currentUser(ctx)
	if err != nil {
		return err
	}

	res, err := c.service.GetProfile(ctx.UserContext(), userId)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("User profile", res))
}

func (c *userController) UpdateProfile(ctx *fiber.Ctx) error {
	userId, err := currentUser(ctx)
	if err != nil {
		return err
	}

	var req dto.UpdateProfileRequest
	if err := bindJSON(ctx, &req); err != nil {
		return err
	}

	res, err := c.service.UpdateProfile(ctx.UserContext(), userId, &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Profile updated", res))
}

func (c *userController) SetUserType(ctx *fiber.Ctx) error {
	userId, err := currentUser(ctx)
	if err != nil {
		return err
	}

	var req dto.UpdateUserTypeRequest
	if err := bindJSON(ctx, &req); err != nil {
		return err
	}

	if err := c.service.SetUserType(ctx.UserContext(), userId, &req); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("User type updated", nil))
}

func (c *userController) SelectPrimaryRole(ctx *fiber.Ctx) error {
	userId, err := currentUser(ctx)
	if err != nil {
		return err
	}

	var req dto.SelectPrimaryRoleRequest
	if err := bindJSON(ctx, &req); err != nil {
		return err
	}

	res, err := c.service.SelectPrimaryRole(ctx.UserContext(), userId, &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Career path selected", res))
}

func (c *userController) OnboardingStatus(ctx *fiber.Ctx) error {
	userId, err := currentUser(ctx)
	if err != nil {
		return err
	}

	res, err := c.service.OnboardingStatus(ctx.UserContext(), userId)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Onboarding status", res))
}
