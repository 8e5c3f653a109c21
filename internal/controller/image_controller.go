package controller

import (
	"github.com/gofiber/fiber/v2"

	"github.com/sanjay123-Ad/AI-Backend/internal/dto"
	"github.com/sanjay123-Ad/AI-Backend/internal/pkg/serverutils"
	"github.com/sanjay123-Ad/AI-Backend/internal/service"
)

type IImageController interface {
	RegisterRoutes(r fiber.Router)
	Lookup(ctx *fiber.Ctx) error
}

type imageController struct {
	imageService service.IImageService
}

func NewImageController(imageService service.IImageService) IImageController {
	return &imageController{imageService: imageService}
}

func (c *imageController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/images/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Post("lookup", c.Lookup)
}

func (c *imageController) Lookup(ctx *fiber.Ctx) error {
	var req dto.ImageLookupRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.imageService.LookupImages(ctx.Context(), req.Names)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success lookup images", res))
}
