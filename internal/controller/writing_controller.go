package controller

import (
	"career-compass-be/internal/dto"
	"career-compass-be/internal/pkg/serverutils"
	"career-compass-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IWritingController interface {
	RegisterRoutes(r fiber.Router, auth ...fiber.Handler)
	Improve(ctx *fiber.Ctx) error
}

type writingController struct {
	service service.IWritingService
}

func NewWritingController(service service.IWritingService) IWritingController {
	return &writingController{service: service}
}

func (c *writingController) RegisterRoutes(r fiber.Router, auth ...fiber.Handler) {
	h := r.Group("/writing/v1", auth...)
	h.Post("/improve", c.Improve)
}

func (c *writingController) Improve(ctx *fiber.Ctx) error {
	var req dto.ImproveTextRequest
	if err := bindJSON(ctx, &req); err != nil {
		return err
	}

	res, err := c.service.Improve(ctx.UserContext(), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Text improved", res))
}
