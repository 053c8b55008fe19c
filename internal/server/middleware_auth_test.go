package server

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"stayhub/internal/models"
	"stayhub/internal/policy"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthMiddlewareApp(s *Server) *fiber.App {
	app := fiber.New()
	app.Get("/api/protected", s.AuthRequired(), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"userID": c.Locals("userID"),
			"role":   c.Locals("role"),
		})
	})
	app.Get("/api/ws/bookings", s.AuthRequired(), func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})
	return app
}

func TestAuthRequired(t *testing.T) {
	s := &Server{config: testConfig(), revoked: make(map[string]time.Time)}
	app := newAuthMiddlewareApp(s)
	user := &models.User{ID: 7, Role: models.RoleHost}

	pair, err := s.generateTokenPair(user)
	require.NoError(t, err)

	get := func(path, authorization string) *http.Response {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		if authorization != "" {
			req.Header.Set("Authorization", authorization)
		}
		resp, err := app.Test(req)
		require.NoError(t, err)
		return resp
	}

	t.Run("Missing Header", func(t *testing.T) {
		resp := get("/api/protected", "")
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("Garbage Token", func(t *testing.T) {
		resp := get("/api/protected", "Bearer not.a.token")
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("Refresh Token Not Accepted", func(t *testing.T) {
		resp := get("/api/protected", "Bearer "+pair.RefreshToken)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("Valid Access Token", func(t *testing.T) {
		resp := get("/api/protected", "Bearer "+pair.AccessToken)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		body := decodeBody(t, resp)
		assert.Equal(t, float64(7), body["userID"])
		assert.Equal(t, "host", body["role"])
	})

	t.Run("Wrong Secret", func(t *testing.T) {
		other := &Server{
			config:  testConfig(),
			revoked: make(map[string]time.Time),
		}
		other.config.JWTSecret = "a-completely-different-secret"
		forged, err := other.generateTokenPair(user)
		require.NoError(t, err)

		resp := get("/api/protected", "Bearer "+forged.AccessToken)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("Websocket Query Token", func(t *testing.T) {
		resp := get("/api/ws/bookings?token="+pair.AccessToken, "")
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("Query Token Outside Websocket Path", func(t *testing.T) {
		resp := get("/api/protected?token="+pair.AccessToken, "")
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})
}

func TestRequireAction(t *testing.T) {
	s := &Server{config: testConfig(), revoked: make(map[string]time.Time)}

	newApp := func(role models.Role, action policy.Action) *fiber.App {
		app := fiber.New()
		app.Post("/guarded", func(c *fiber.Ctx) error {
			c.Locals("role", role)
			return c.Next()
		}, s.RequireAction(action), func(c *fiber.Ctx) error {
			return c.SendStatus(http.StatusOK)
		})
		return app
	}

	tests := []struct {
		name           string
		role           models.Role
		action         policy.Action
		expectedStatus int
	}{
		{"Guest Books", models.RoleGuest, policy.ActionManageBookings, http.StatusOK},
		{"Guest Cannot Manage Cities", models.RoleGuest, policy.ActionManageCities, http.StatusForbidden},
		{"Guest Cannot Manage Listings", models.RoleGuest, policy.ActionManageListings, http.StatusForbidden},
		{"Host Manages Listings", models.RoleHost, policy.ActionManageListings, http.StatusOK},
		{"Host Cannot Book", models.RoleHost, policy.ActionManageBookings, http.StatusForbidden},
		{"Admin Manages Cities", models.RoleAdmin, policy.ActionManageCities, http.StatusOK},
		{"Admin Cannot Book", models.RoleAdmin, policy.ActionManageBookings, http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newApp(tt.role, tt.action)
			req := httptest.NewRequest(http.MethodPost, "/guarded", nil)
			resp, err := app.Test(req)
			require.NoError(t, err)
			defer func() { _ = resp.Body.Close() }()
			assert.Equal(t, tt.expectedStatus, resp.StatusCode)
		})
	}
}
