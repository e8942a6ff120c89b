package serverutils

import (
	"context"
	"strings"

	"notes-api/internal/dto"
	"notes-api/internal/pkg/apperror"

	"github.com/gofiber/fiber/v2"
)

const (
	localSession = "session"
	localUserId  = "user_id"
)

// TokenResolver turns a plain bearer token into a session, nil when unknown.
type TokenResolver interface {
	Resolve(ctx context.Context, plainToken string) (*dto.AuthSession, error)
}

// AuthMiddleware requires a valid bearer token and stores the session in Locals.
func AuthMiddleware(resolver TokenResolver) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		token := bearerToken(ctx.Get(fiber.HeaderAuthorization))
		if token == "" {
			return apperror.Unauthenticated()
		}

		session, err := resolver.Resolve(ctx.UserContext(), token)
		if err != nil {
			return err
		}
		if session == nil {
			return apperror.Unauthenticated()
		}

		ctx.Locals(localSession, session)
		ctx.Locals(localUserId, session.User.Id)
		return ctx.Next()
	}
}

func bearerToken(header string) string {
	const prefix = "bearer "
	if len(header) < len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return ""
	}
	return strings.TrimSpace(header[len(prefix):])
}

// CurrentSession is nil outside AuthMiddleware.
func CurrentSession(ctx *fiber.Ctx) *dto.AuthSession {
	session, _ := ctx.Locals(localSession).(*dto.AuthSession)
	return session
}

func CurrentUserId(ctx *fiber.Ctx) uint {
	userId, _ := ctx.Locals(localUserId).(uint)
	return userId
}
