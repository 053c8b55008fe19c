package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"stayhub/internal/config"
	"stayhub/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// MockUserRepository is a mock of the UserRepository interface
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Update(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func testConfig() *config.Config {
	return &config.Config{
		Env:             "test",
		JWTSecret:       "test_secret",
		AccessTokenTTL:  60,
		RefreshTokenTTL: 24,
		PageSize:        20,
	}
}

func newAuthTestServer(repo *MockUserRepository) (*Server, *fiber.App) {
	s := &Server{
		config:   testConfig(),
		userRepo: repo,
		revoked:  make(map[string]time.Time),
	}

	app := fiber.New()
	app.Post("/register", s.Register)
	app.Post("/login", s.Login)
	app.Post("/refresh", s.Refresh)
	app.Post("/logout", s.Logout)
	return s, app
}

func postJSON(t *testing.T, app *fiber.App, path string, body any) *http.Response {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	defer func() { _ = resp.Body.Close() }()
	var out map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func TestRegister(t *testing.T) {
	mockRepo := new(MockUserRepository)
	_, app := newAuthTestServer(mockRepo)

	tests := []struct {
		name           string
		body           map[string]string
		mockSetup      func()
		expectedStatus int
	}{
		{
			name: "Success",
			body: map[string]string{
				"username": "newguest",
				"email":    "guest@example.com",
				"password": "Password123!",
			},
			mockSetup: func() {
				mockRepo.On("GetByEmail", mock.Anything, "guest@example.com").Return(nil, nil)
				mockRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name: "Host Role",
			body: map[string]string{
				"username": "newhost",
				"email":    "host@example.com",
				"password": "Password123!",
				"role":     "host",
			},
			mockSetup: func() {
				mockRepo.On("GetByEmail", mock.Anything, "host@example.com").Return(nil, nil)
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name: "Admin Role Rejected",
			body: map[string]string{
				"username": "sneaky",
				"email":    "sneaky@example.com",
				"password": "Password123!",
				"role":     "admin",
			},
			mockSetup:      func() {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "Unknown Role Rejected",
			body: map[string]string{
				"username": "weird",
				"email":    "weird@example.com",
				"password": "Password123!",
				"role":     "landlord",
			},
			mockSetup:      func() {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "Duplicate User",
			body: map[string]string{
				"username": "dupe",
				"email":    "exists@example.com",
				"password": "Password123!",
			},
			mockSetup: func() {
				mockRepo.On("GetByEmail", mock.Anything, "exists@example.com").Return(&models.User{ID: 1}, nil)
			},
			expectedStatus: http.StatusConflict,
		},
		{
			name: "Weak Password",
			body: map[string]string{
				"username": "weakling",
				"email":    "weak@example.com",
				"password": "short",
			},
			mockSetup:      func() {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "Missing Fields",
			body: map[string]string{
				"username": "lonely",
			},
			mockSetup:      func() {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "Bad Phone",
			body: map[string]string{
				"username": "phoney",
				"email":    "phoney@example.com",
				"password": "Password123!",
				"phone":    "call me maybe",
			},
			mockSetup:      func() {},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			resp := postJSON(t, app, "/register", tt.body)
			defer func() { _ = resp.Body.Close() }()
			assert.Equal(t, tt.expectedStatus, resp.StatusCode)
		})
	}
}

func TestRegister_ReturnsTokensAndProfile(t *testing.T) {
	mockRepo := new(MockUserRepository)
	_, app := newAuthTestServer(mockRepo)
	mockRepo.On("GetByEmail", mock.Anything, "aida@example.com").Return(nil, nil)
	mockRepo.On("Create", mock.Anything, mock.Anything).Return(nil)

	resp := postJSON(t, app, "/register", map[string]string{
		"username": "aida",
		"email":    "aida@example.com",
		"password": "Password123!",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.NotEmpty(t, body["access_token"])
	assert.NotEmpty(t, body["refresh_token"])

	user, ok := body["user"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "aida", user["username"])
	assert.Equal(t, "guest", user["role"])
	// The password hash must never leak into the response.
	_, hasPassword := user["password"]
	assert.False(t, hasPassword)
}

func TestLogin(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("Password123!"), bcrypt.DefaultCost)
	require.NoError(t, err)
	stored := &models.User{ID: 1, Username: "aigerim", Email: "aigerim@example.com", Password: string(hash), Role: models.RoleGuest}

	mockRepo := new(MockUserRepository)
	_, app := newAuthTestServer(mockRepo)
	mockRepo.On("GetByEmail", mock.Anything, "aigerim@example.com").Return(stored, nil)
	mockRepo.On("GetByEmail", mock.Anything, "nobody@example.com").Return(nil, nil)

	t.Run("Success", func(t *testing.T) {
		resp := postJSON(t, app, "/login", map[string]string{
			"email":    "aigerim@example.com",
			"password": "Password123!",
		})
		require.Equal(t, http.StatusOK, resp.StatusCode)
		body := decodeBody(t, resp)
		assert.NotEmpty(t, body["access_token"])
		assert.NotEmpty(t, body["refresh_token"])
	})

	t.Run("Wrong Password", func(t *testing.T) {
		resp := postJSON(t, app, "/login", map[string]string{
			"email":    "aigerim@example.com",
			"password": "WrongPassword1!",
		})
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("Unknown Email", func(t *testing.T) {
		// Absent account must read the same as a bad password.
		resp := postJSON(t, app, "/login", map[string]string{
			"email":    "nobody@example.com",
			"password": "Password123!",
		})
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})
}

func TestRefresh_Rotation(t *testing.T) {
	user := &models.User{ID: 1, Username: "aigerim", Role: models.RoleGuest}
	mockRepo := new(MockUserRepository)
	s, app := newAuthTestServer(mockRepo)
	mockRepo.On("GetByID", mock.Anything, uint(1)).Return(user, nil)

	pair, err := s.generateTokenPair(user)
	require.NoError(t, err)

	resp := postJSON(t, app, "/refresh", map[string]string{"refresh_token": pair.RefreshToken})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.NotEmpty(t, body["access_token"])
	assert.NotEmpty(t, body["refresh_token"])
	assert.NotEqual(t, pair.RefreshToken, body["refresh_token"])

	// The presented refresh token was rotated out; replaying it must fail.
	resp = postJSON(t, app, "/refresh", map[string]string{"refresh_token": pair.RefreshToken})
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestRefresh_RejectsAccessToken(t *testing.T) {
	user := &models.User{ID: 1, Role: models.RoleGuest}
	mockRepo := new(MockUserRepository)
	s, app := newAuthTestServer(mockRepo)

	pair, err := s.generateTokenPair(user)
	require.NoError(t, err)

	resp := postJSON(t, app, "/refresh", map[string]string{"refresh_token": pair.AccessToken})
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestLogout(t *testing.T) {
	user := &models.User{ID: 1, Role: models.RoleGuest}
	mockRepo := new(MockUserRepository)
	s, app := newAuthTestServer(mockRepo)
	mockRepo.On("GetByID", mock.Anything, uint(1)).Return(user, nil)

	t.Run("Malformed Token", func(t *testing.T) {
		resp := postJSON(t, app, "/logout", map[string]string{"refresh_token": "garbage"})
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("Access Token Rejected", func(t *testing.T) {
		pair, err := s.generateTokenPair(user)
		require.NoError(t, err)
		resp := postJSON(t, app, "/logout", map[string]string{"refresh_token": pair.AccessToken})
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("Revokes Refresh Token", func(t *testing.T) {
		pair, err := s.generateTokenPair(user)
		require.NoError(t, err)

		resp := postJSON(t, app, "/logout", map[string]string{"refresh_token": pair.RefreshToken})
		require.Equal(t, http.StatusOK, resp.StatusCode)
		body := decodeBody(t, resp)
		assert.Equal(t, "Logged out", body["message"])

		resp = postJSON(t, app, "/refresh", map[string]string{"refresh_token": pair.RefreshToken})
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})
}
