package controller

import (
	"career-compass-be/internal/dto"
	"career-compass-be/internal/pkg/apperror"
	"career-compass-be/internal/pkg/serverutils"
	"career-compass-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IFeedbackController interface {
	RegisterRoutes(r fiber.Router, auth ...fiber.Handler)
	Submit(ctx *fiber.Ctx) error
	GetForAssessment(ctx *fiber.Ctx) error
	Stats(ctx *fiber.Ctx) error
}

type feedbackController struct {
	service service.IFeedbackService
}

func NewFeedbackController(service service.IFeedbackService) IFeedbackController {
	return &feedbackController{service: service}
}

// RegisterRoutes mounts the public stats route ahead of the authenticated ones.
func (c *feedbackController) RegisterRoutes(r fiber.Router, auth ...fiber.Handler) {
	h := r.Group("/feedback/v1")
	h.Get("/stats", c.Stats)
	h.Post("/", withAuth(auth, c.Submit)...)
	h.Get("/:assessmentId", withAuth(auth, c.GetForAssessment)...)
}

func (c *feedbackController) Submit(ctx *fiber.Ctx) error {
	userId, err := currentUser(ctx)
	if err != nil {
		return err
	}

	var req dto.SubmitFeedbackRequest
	if err := bindJSON(ctx, &req); err != nil {
		return err
	}

	res, err := c.service.Submit(ctx.UserContext(), userId, &req)
	if err != nil {
		return err
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Feedback submitted", res))
}

func (c *feedbackController) GetForAssessment(ctx *fiber.Ctx) error {
	userId, err := currentUser(ctx)
	if err != nil {
		return err
	}

	assessmentId, err := uuid.Parse(ctx.Params("assessmentId"))
	if err != nil {
		return apperror.Validation("Invalid assessment id")
	}

	res, err := c.service.GetForAssessment(ctx.UserContext(), userId, assessmentId)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Feedback", res))
}

func (c *feedbackController) Stats(ctx *fiber.Ctx) error {
	res, err := c.service.Stats(ctx.UserContext())
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Feedback stats", res))
}
