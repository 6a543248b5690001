package middleware_test

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"Backend-Attendance/src/middleware"
	"Backend-Attendance/src/utils"
)

func TestAuthJWT(t *testing.T) {
	app := fiber.New()
	app.Get("/private", middleware.AuthJWT("secret"), func(c *fiber.Ctx) error {
		return c.SendString(c.Locals("userId").(string))
	})

	good, err := utils.GenerateJWT("secret", "u1", "org@example.com", "admin", time.Hour)
	require.NoError(t, err)
	bad, err := utils.GenerateJWT("nope", "u1", "org@example.com", "admin", time.Hour)
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{name: "missing header", header: "", want: fiber.StatusUnauthorized},
		{name: "not bearer", header: "Basic abc", want: fiber.StatusUnauthorized},
		{name: "wrong secret", header: "Bearer " + bad, want: fiber.StatusUnauthorized},
		{name: "valid", header: "Bearer " + good, want: fiber.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/private", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tt.want, resp.StatusCode)
		})
	}
}
