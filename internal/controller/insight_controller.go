package controller

import (
	"net/url"

	"career-compass-be/internal/pkg/apperror"
	"career-compass-be/internal/pkg/serverutils"
	"career-compass-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IInsightController interface {
	RegisterRoutes(r fiber.Router, auth ...fiber.Handler)
	Get(ctx *fiber.Ctx) error
}

type insightController struct {
	service service.IInsightService
}

func NewInsightController(service service.IInsightService) IInsightController {
	return &insightController{service: service}
}

func (c *insightController) RegisterRoutes(r fiber.Router, auth ...fiber.Handler) {
	h := r.Group("/insight/v1", auth...)
	h.Get("/:industry", c.Get)
}

func (c *insightController) Get(ctx *fiber.Ctx) error {
	industry, err := url.PathUnescape(ctx.Params("industry"))
	if err != nil {
		return apperror.Validation("Invalid industry")
	}

	res, err := c.service.Get(ctx.UserContext(), industry)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Industry insight", res))
}
