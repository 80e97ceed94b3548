package auth_test

import (
	"net/http/httptest"
	"testing"

	"asset-bridge/core/middleware/auth"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupApp(cfg auth.Config) *fiber.App {
	app := fiber.New()
	app.Use(auth.New(cfg))
	app.Get("/ping", func(c *fiber.Ctx) error { return c.SendString("pong") })
	app.Get("/public", func(c *fiber.Ctx) error { return c.SendString("ok") })
	return app
}

func TestAuth(t *testing.T) {
	app := setupApp(auth.Config{
		ApiKey: "secret",
		Next:   func(c *fiber.Ctx) bool { return c.Path() == "/public" },
	})

	tests := []struct {
		name   string
		path   string
		header string
		want   int
	}{
		{"Missing key", "/ping", "", fiber.StatusUnauthorized},
		{"Wrong key", "/ping", "nope", fiber.StatusUnauthorized},
		{"Valid key", "/ping", "secret", fiber.StatusOK},
		{"Query key", "/ping?api_key=secret", "", fiber.StatusOK},
		{"Skipped route", "/public", "", fiber.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", tt.path, nil)
			if tt.header != "" {
				req.Header.Set(auth.HeaderName, tt.header)
			}
			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tt.want, resp.StatusCode)
		})
	}
}

func TestAuth_Disabled(t *testing.T) {
	app := setupApp(auth.Config{})

	resp, err := app.Test(httptest.NewRequest("GET", "/ping", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}
