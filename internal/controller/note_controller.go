package controller

import (
	"notes-api/internal/dto"
	"notes-api/internal/pkg/apperror"
	"notes-api/internal/pkg/serverutils"
	"notes-api/internal/service"

	"github.com/gofiber/fiber/v2"
)

type INoteController interface {
	RegisterRoutes(r fiber.Router, authMiddleware fiber.Handler)
	List(ctx *fiber.Ctx) error
	Create(ctx *fiber.Ctx) error
	Update(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
}

type noteController struct {
	noteService service.INoteService
}

func NewNoteController(noteService service.INoteService) INoteController {
	return &noteController{
		noteService: noteService,
	}
}

func (c *noteController) RegisterRoutes(r fiber.Router, authMiddleware fiber.Handler) {
	h := r.Group("/notes", authMiddleware)
	h.Get("", c.List)
	h.Post("", c.Create)
	h.Put("/:id", c.Update)
	h.Delete("/:id", c.Delete)
}

// noteId treats a malformed id like an unknown one.
func noteId(ctx *fiber.Ctx) (uint, error) {
	id, err := ctx.ParamsInt("id")
	if err != nil || id <= 0 {
		return 0, apperror.NotFound("Note not found.")
	}
	return uint(id), nil
}

func (c *noteController) List(ctx *fiber.Ctx) error {
	res, err := c.noteService.List(ctx.UserContext(), serverutils.CurrentUserId(ctx))
	if err != nil {
		return err
	}

	if len(res) == 0 {
		return ctx.JSON(serverutils.DataWithMessage(res, "Aucune note."))
	}
	return ctx.JSON(serverutils.DataResponse(res))
}

func (c *noteController) Create(ctx *fiber.Ctx) error {
	var req dto.CreateNoteRequest
	if err := serverutils.ParseBody(ctx, &req); err != nil {
		return err
	}

	res, err := c.noteService.Create(ctx.UserContext(), serverutils.CurrentUserId(ctx), &req)
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusCreated).JSON(serverutils.DataResponse(res))
}

func (c *noteController) Update(ctx *fiber.Ctx) error {
	id, err := noteId(ctx)
	if err != nil {
		return err
	}

	var req dto.UpdateNoteRequest
	if err := serverutils.ParseBody(ctx, &req); err != nil {
		return err
	}

	res, err := c.noteService.Update(ctx.UserContext(), serverutils.CurrentUserId(ctx), id, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.DataWithMessage(res, "Note mise à jour."))
}

func (c *noteController) Delete(ctx *fiber.Ctx) error {
	id, err := noteId(ctx)
	if err != nil {
		return err
	}

	if err := c.noteService.Delete(ctx.UserContext(), serverutils.CurrentUserId(ctx), id); err != nil {
		return err
	}

	return ctx.JSON(serverutils.MessageResponse("Note supprimée."))
}
