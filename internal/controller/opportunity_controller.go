package controller

import (
	"career-compass-be/internal/pkg/serverutils"
	"career-compass-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IOpportunityController interface {
	RegisterRoutes(r fiber.Router, auth ...fiber.Handler)
	Internships(ctx *fiber.Ctx) error
	Certificates(ctx *fiber.Ctx) error
}

type opportunityController struct {
	service service.IOpportunityService
}

func NewOpportunityController(service service.IOpportunityService) IOpportunityController {
	return &opportunityController{service: service}
}

func (c *opportunityController) RegisterRoutes(r fiber.Router, auth ...fiber.Handler) {
	h := r.Group("/opportunity/v1", auth...)
	h.Get("/internships", c.Internships)
	h.Get("/certificates", c.Certificates)
}

func (c *opportunityController) Internships(ctx *fiber.Ctx) error {
	userId, err := currentUser(ctx)
	if err != nil {
		return err
	}

	res, err := c.service.Internships(ctx.UserContext(), userId)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Internships", res))
}

func (c *opportunityController) Certificates(ctx *fiber.Ctx) error {
	userId, err := currentUser(ctx)
	if err != nil {
		return err
	}

	res, err := c.service.Certificates(ctx.UserContext(), userId)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Certificates", res))
}
