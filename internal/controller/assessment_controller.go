package controller

import (
	"career-compass-be/internal/dto"
	"career-compass-be/internal/pkg/serverutils"
	"career-compass-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IAssessmentController interface {
	RegisterRoutes(r fiber.Router, auth ...fiber.Handler)
	StartInterview(ctx *fiber.Ctx) error
	GetSession(ctx *fiber.Ctx) error
	SubmitAnswer(ctx *fiber.Ctx) error
	CompleteLayer(ctx *fiber.Ctx) error
	Submit(ctx *fiber.Ctx) error
	GetResult(ctx *fiber.Ctx) error
}

type assessmentController struct {
	service service.IAssessmentService
}

func NewAssessmentController(service service.IAssessmentService) IAssessmentController {
	return &assessmentController{service: service}
}

func (c *assessmentController) RegisterRoutes(r fiber.Router, auth ...fiber.Handler) {
	h := r.Group("/assessment/v1", auth...)
	h.Post("/interview", c.StartInterview)
	h.Get("/interview/:id", c.GetSession)
	h.Post("/interview/:id/answer", c.SubmitAnswer)
	h.Post("/interview/:id/layer", c.CompleteLayer)
	h.Post("/interview/:id/submit", c.Submit)
	h.Get("/result", c.GetResult)
}

func (c *assessmentController) StartInterview(ctx *fiber.Ctx) error {
	userId, err := currentUser(ctx)
	if err != nil {
		return err
	}

	res, err := c.service.StartInterview(ctx.UserContext(), userId)
	if err != nil {
		return err
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Interview started", res))
}

func (c *assessmentController) GetSession(ctx *fiber.Ctx) error {
	userId, err := currentUser(ctx)
	if err != nil {
		return err
	}

	res, err := c.service.GetSession(ctx.UserContext(), userId, ctx.Params("id"))
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Interview session", res))
}

func (c *assessmentController) SubmitAnswer(ctx *fiber.Ctx) error {
	userId, err := currentUser(ctx)
	if err != nil {
		return err
	}

	var req dto.SubmitAnswerRequest
	if err := bindJSON(ctx, &req); err != nil {
		return err
	}

	res, err := c.service.SubmitAnswer(ctx.UserContext(), userId, ctx.Params("id"), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Answer recorded", res))
}

func (c *assessmentController) CompleteLayer(ctx *fiber.Ctx) error {
	userId, err := currentUser(ctx)
	if err != nil {
		return err
	}

	var req dto.CompleteLayerRequest
	if len(ctx.Body()) > 0 {
		if err := bindJSON(ctx, &req); err != nil {
			return err
		}
	}

	res, err := c.service.CompleteLayer(ctx.UserContext(), userId, ctx.Params("id"), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Layer completed", res))
}

func (c *assessmentController) Submit(ctx *fiber.Ctx) error {
	userId, err := currentUser(ctx)
	if err != nil {
		return err
	}

	res, err := c.service.Submit(ctx.UserContext(), userId, ctx.Params("id"))
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Assessment submitted", res))
}

func (c *assessmentController) GetResult(ctx *fiber.Ctx) error {
	userId, err := currentUser(ctx)
	if err != nil {
		return err
	}

	res, err := c.service.GetResult(ctx.UserContext(), userId)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Assessment result", res))
}
