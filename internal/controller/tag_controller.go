package controller

import (
	"notes-api/internal/dto"
	"notes-api/internal/pkg/serverutils"
	"notes-api/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ITagController interface {
	RegisterRoutes(r fiber.Router, authMiddleware fiber.Handler)
	List(ctx *fiber.Ctx) error
	Create(ctx *fiber.Ctx) error
}

type tagController struct {
	tagService service.ITagService
}

func NewTagController(tagService service.ITagService) ITagController {
	return &tagController{
		tagService: tagService,
	}
}

func (c *tagController) RegisterRoutes(r fiber.Router, authMiddleware fiber.Handler) {
	h := r.Group("/tags", authMiddleware)
	h.Get("", c.List)
	h.Post("", c.Create)
}

// List returns every tag; ?scope=mine narrows it to tags on the caller's notes.
func (c *tagController) List(ctx *fiber.Ctx) error {
	var (
		res []*dto.TagResponse
		err error
	)
	if ctx.Query("scope") == "mine" {
		res, err = c.tagService.GetUsedByUser(ctx.UserContext(), serverutils.CurrentUserId(ctx))
	} else {
		res, err = c.tagService.GetAll(ctx.UserContext())
	}
	if err != nil {
		return err
	}

	if len(res) == 0 {
		return ctx.JSON(serverutils.DataWithMessage(res, "Aucun tag."))
	}
	return ctx.JSON(serverutils.DataResponse(res))
}

func (c *tagController) Create(ctx *fiber.Ctx) error {
	var req dto.CreateTagRequest
	if err := serverutils.ParseBody(ctx, &req); err != nil {
		return err
	}

	res, err := c.tagService.Create(ctx.UserContext(), &req)
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusCreated).JSON(serverutils.DataResponse(res))
}
