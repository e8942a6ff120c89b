package serverutils

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"notes-api/internal/dto"
	"notes-api/internal/pkg/apperror"
	"notes-api/internal/pkg/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubResolver struct {
	sessions map[string]*dto.AuthSession
	err      error
}

func (r stubResolver) Resolve(ctx context.Context, plainToken string) (*dto.AuthSession, error) {
	if r.err != nil {
		return nil, r.err
	}
	return r.sessions[plainToken], nil
}

func newTestApp() *fiber.App {
	return fiber.New(fiber.Config{ErrorHandler: ErrorHandler(logger.NewNopLogger())})
}

func decode(t *testing.T, res *http.Response) map[string]interface{} {
	t.Helper()
	body, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(body, &out), string(body))
	return out
}

func TestBearerToken(t *testing.T) {
	assert.Equal(t, "1|abc", bearerToken("Bearer 1|abc"))
	assert.Equal(t, "1|abc", bearerToken("bearer 1|abc"))
	assert.Equal(t, "", bearerToken("Basic xyz"))
	assert.Equal(t, "", bearerToken("Bearer"))
	assert.Equal(t, "", bearerToken(""))
}

func TestAuthMiddleware(t *testing.T) {
	resolver := stubResolver{sessions: map[string]*dto.AuthSession{
		"good": {TokenId: 1, User: dto.UserDTO{Id: 7, Name: "Alice"}},
	}}

	app := newTestApp()
	app.Get("/me", AuthMiddleware(resolver), func(ctx *fiber.Ctx) error {
		return ctx.JSON(fiber.Map{"id": CurrentUserId(ctx), "name": CurrentSession(ctx).User.Name})
	})

	tests := []struct {
		name   string
		header string
		status int
	}{
		{"no header", "", http.StatusUnauthorized},
		{"unknown token", "Bearer bad", http.StatusUnauthorized},
		{"valid token", "Bearer good", http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			res, err := app.Test(req, -1)
			require.NoError(t, err)
			assert.Equal(t, tt.status, res.StatusCode)

			body := decode(t, res)
			if tt.status == http.StatusUnauthorized {
				assert.Equal(t, "Unauthenticated.", body["message"])
			} else {
				assert.Equal(t, float64(7), body["id"])
				assert.Equal(t, "Alice", body["name"])
			}
		})
	}
}

func TestAuthMiddlewareResolverFailure(t *testing.T) {
	app := newTestApp()
	app.Get("/me", AuthMiddleware(stubResolver{err: errors.New("db gone")}), func(ctx *fiber.Ctx) error {
		return ctx.SendStatus(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer anything")
	res, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusInternalServerError, res.StatusCode)
	assert.Equal(t, "Server Error.", decode(t, res)["message"])
}

func TestErrorHandlerRendersDomainErrors(t *testing.T) {
	app := newTestApp()
	app.Get("/validation", func(ctx *fiber.Ctx) error {
		return apperror.ValidationField("tag_id", "Un tag doit être associé à la note.")
	})
	app.Get("/missing", func(ctx *fiber.Ctx) error {
		return apperror.NotFound("Note not found.")
	})
	app.Get("/teapot", func(ctx *fiber.Ctx) error {
		return fiber.NewError(http.StatusTeapot, "short and stout")
	})

	res, err := app.Test(httptest.NewRequest(http.MethodGet, "/validation", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnprocessableEntity, res.StatusCode)
	body := decode(t, res)
	assert.Equal(t, "Un tag doit être associé à la note.", body["message"])
	assert.Equal(t, []interface{}{"Un tag doit être associé à la note."}, body["errors"].(map[string]interface{})["tag_id"])

	res, err = app.Test(httptest.NewRequest(http.MethodGet, "/missing", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
	body = decode(t, res)
	assert.Equal(t, "Note not found.", body["message"])
	assert.NotContains(t, body, "errors")

	res, err = app.Test(httptest.NewRequest(http.MethodGet, "/teapot", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusTeapot, res.StatusCode)
}

func TestParseBody(t *testing.T) {
	app := newTestApp()
	app.Post("/notes", func(ctx *fiber.Ctx) error {
		var req dto.CreateNoteRequest
		if err := ParseBody(ctx, &req); err != nil {
			return err
		}
		return ctx.JSON(fiber.Map{"has_tag": req.TagId != nil})
	})

	post := func(body string) *http.Response {
		req := httptest.NewRequest(http.MethodPost, "/notes", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		res, err := app.Test(req, -1)
		require.NoError(t, err)
		return res
	}

	res := post(`{"tag_id": 3}`)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, true, decode(t, res)["has_tag"])

	res = post("")
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, false, decode(t, res)["has_tag"])

	res = post(`{"tag_id": "three"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, res.StatusCode)
	errs := decode(t, res)["errors"].(map[string]interface{})
	assert.Contains(t, errs, "tag_id")

	res = post(`{"tag_id":`)
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
}

func TestLoginRateLimiter(t *testing.T) {
	app := newTestApp()
	app.Post("/login", LoginRateLimiter(2, time.Minute, nil), func(ctx *fiber.Ctx) error {
		return ctx.SendStatus(http.StatusOK)
	})

	for i := 0; i < 2; i++ {
		res, err := app.Test(httptest.NewRequest(http.MethodPost, "/login", nil), -1)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, res.StatusCode)
	}

	res, err := app.Test(httptest.NewRequest(http.MethodPost, "/login", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusTooManyRequests, res.StatusCode)
	assert.Equal(t, "Too Many Attempts.", decode(t, res)["message"])
}
