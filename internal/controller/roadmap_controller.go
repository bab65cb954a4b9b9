package controller

import (
	"career-compass-be/internal/dto"
	"career-compass-be/internal/pkg/serverutils"
	"career-compass-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IRoadmapController interface {
	RegisterRoutes(r fiber.Router, auth ...fiber.Handler)
	Generate(ctx *fiber.Ctx) error
	Get(ctx *fiber.Ctx) error
	SetTaskStatus(ctx *fiber.Ctx) error
}

type roadmapController struct {
	service service.IRoadmapService
}

func NewRoadmapController(service service.IRoadmapService) IRoadmapController {
	return &roadmapController{service: service}
}

func (c *roadmapController) RegisterRoutes(r fiber.Router, auth ...fiber.Handler) {
	h := r.Group("/roadmap/v1", auth...)
	h.Post("/", c.Generate)
	h.Get("/", c.Get)
	h.Patch("/tasks/:taskId", c.SetTaskStatus)
}

func (c *roadmapController) Generate(ctx *fiber.Ctx) error {
	userId, err := currentUser(ctx)
	if err != nil {
		return err
	}

	var req dto.GenerateRoadmapRequest
	if err := bindJSON(ctx, &req); err != nil {
		return err
	}

	res, err := c.service.Generate(ctx.UserContext(), userId, &req)
	if err != nil {
		return err
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Roadmap generated", res))
}

func (c *roadmapController) Get(ctx *fiber.Ctx) error {
	userId, err := currentUser(ctx)
	if err != nil {
		return err
	}

	res, err := c.service.Get(ctx.UserContext(), userId)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Roadmap", res))
}

func (c *roadmapController) SetTaskStatus(ctx *fiber.Ctx) error {
	userId, err := currentUser(ctx)
	if err != nil {
		return err
	}

	var req dto.UpdateTaskStatusRequest
	if err := bindJSON(ctx, &req); err != nil {
		return err
	}

	res, err := c.service.SetTaskStatus(ctx.UserContext(), userId, ctx.Params("taskId"), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Progress updated", res))
}
