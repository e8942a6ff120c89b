package controller

import (
	"notes-api/internal/dto"
	"notes-api/internal/pkg/serverutils"
	"notes-api/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IAuthController interface {
	RegisterRoutes(r fiber.Router, authMiddleware fiber.Handler, loginLimiter fiber.Handler)
	Register(ctx *fiber.Ctx) error
	Login(ctx *fiber.Ctx) error
	CurrentUser(ctx *fiber.Ctx) error
	Logout(ctx *fiber.Ctx) error
}

type authController struct {
	authService service.IAuthService
}

func NewAuthController(authService service.IAuthService) IAuthController {
	return &authController{
		authService: authService,
	}
}

func (c *authController) RegisterRoutes(r fiber.Router, authMiddleware fiber.Handler, loginLimiter fiber.Handler) {
	// The SPA posts to the short paths.
	r.Post("/login", loginLimiter, c.Login)
	r.Post("/register", c.Register)

	h := r.Group("/auth")
	h.Post("/login", loginLimiter, c.Login)
	h.Post("/register", c.Register)
	h.Get("/user", authMiddleware, c.CurrentUser)
	h.Post("/logout", authMiddleware, c.Logout)
}

func (c *authController) Register(ctx *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := serverutils.ParseBody(ctx, &req); err != nil {
		return err
	}

	res, err := c.authService.Register(ctx.UserContext(), &req)
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusCreated).JSON(res)
}

func (c *authController) Login(ctx *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := serverutils.ParseBody(ctx, &req); err != nil {
		return err
	}

	res, err := c.authService.Login(ctx.UserContext(), &req, ctx.IP(), ctx.Get(fiber.HeaderUserAgent))
	if err != nil {
		return err
	}

	return ctx.JSON(res)
}

func (c *authController) CurrentUser(ctx *fiber.Ctx) error {
	session := serverutils.CurrentSession(ctx)
	return ctx.JSON(serverutils.DataResponse(session.User))
}

func (c *authController) Logout(ctx *fiber.Ctx) error {
	if err := c.authService.Logout(ctx.UserContext(), serverutils.CurrentSession(ctx)); err != nil {
		return err
	}

	return ctx.JSON(serverutils.MessageResponse("Logged out."))
}
