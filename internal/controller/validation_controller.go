package controller

import (
	"io"

	"career-compass-be/internal/dto"
	"career-compass-be/internal/pkg/apperror"
	"career-compass-be/internal/pkg/serverutils"
	"career-compass-be/internal/service"
	"career-compass-be/pkg/resume"

	"github.com/gofiber/fiber/v2"
)

type IValidationController interface {
	RegisterRoutes(r fiber.Router, auth ...fiber.Handler)
	UploadResume(ctx *fiber.Ctx) error
	StartValidation(ctx *fiber.Ctx) error
	GetSession(ctx *fiber.Ctx) error
	SubmitAnswer(ctx *fiber.Ctx) error
	CompleteLayer(ctx *fiber.Ctx) error
	Submit(ctx *fiber.Ctx) error
}

type validationController struct {
	service service.IValidationService
}

func NewValidationController(service service.IValidationService) IValidationController {
	return &validationController{service: service}
}

func (c *validationController) RegisterRoutes(r fiber.Router, auth ...fiber.Handler) {
	h := r.Group("/validation/v1", auth...)
	h.Post("/resume", c.UploadResume)
	h.Post("/session", c.StartValidation)
	h.Get("/session/:id", c.GetSession)
	h.Post("/session/:id/answer", c.SubmitAnswer)
	h.Post("/session/:id/layer", c.CompleteLayer)
	h.Post("/session/:id/submit", c.Submit)
}

func (c *validationController) UploadResume(ctx *fiber.Ctx) error {
	userId, err := currentUser(ctx)
	if err != nil {
		return err
	}

	file, err := ctx.FormFile("file")
	if err != nil {
		return apperror.Validation("Resume file is required")
	}
	if file.Size > resume.MaxFileSize {
		return apperror.Validation("File size must be less than 5MB")
	}

	f, err := file.Open()
	if err != nil {
		return apperror.Internal("Failed to read upload", err)
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, resume.MaxFileSize+1))
	if err != nil {
		return apperror.Internal("Failed to read upload", err)
	}

	res, err := c.service.ExtractResume(ctx.UserContext(), userId, file.Filename, data)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Resume parsed", res))
}

func (c *validationController) StartValidation(ctx *fiber.Ctx) error {
	userId, err := currentUser(ctx)
	if err != nil {
		return err
	}

	var req dto.StartValidationRequest
	if err := bindJSON(ctx, &req); err != nil {
		return err
	}

	res, err := c.service.StartValidation(ctx.UserContext(), userId, &req)
	if err != nil {
		return err
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Validation started", res))
}

func (c *validationController) GetSession(ctx *fiber.Ctx) error {
	userId, err := currentUser(ctx)
	if err != nil {
		return err
	}

	res, err := c.service.GetSession(ctx.UserContext(), userId, ctx.Params("id"))
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Validation session", res))
}

func (c *validationController) SubmitAnswer(ctx *fiber.Ctx) error {
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

func (c *validationController) CompleteLayer(ctx *fiber.Ctx) error {
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

func (c *validationController) Submit(ctx *fiber.Ctx) error {
	userId, err := currentUser(ctx)
	if err != nil {
		return err
	}

	res, err := c.service.Submit(ctx.UserContext(), userId, ctx.Params("id"))
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Validation submitted", res))
}
