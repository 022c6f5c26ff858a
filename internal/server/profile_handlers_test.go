package server

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"devconnect/internal/auth"
	"devconnect/internal/config"
	"devconnect/internal/models"
	"devconnect/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockProfileRepository is a mock of the ProfileRepository interface
type MockProfileRepository struct {
	mock.Mock
}

func (m *MockProfileRepository) GetByUserID(ctx context.Context, userID uint) (*models.Profile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Profile), args.Error(1)
}

func (m *MockProfileRepository) GetByHandle(ctx context.Context, handle string) (*models.Profile, error) {
	args := m.Called(ctx, handle)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Profile), args.Error(1)
}

func (m *MockProfileRepository) List(ctx context.Context, limit, offset int) ([]*models.Profile, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Profile), args.Error(1)
}

func (m *MockProfileRepository) Create(ctx context.Context, profile *models.Profile) error {
	args := m.Called(ctx, profile)
	return args.Error(0)
}

func (m *MockProfileRepository) Update(ctx context.Context, profile *models.Profile) error {
	args := m.Called(ctx, profile)
	return args.Error(0)
}

func (m *MockProfileRepository) AddExperience(ctx context.Context, exp *models.Experience) error {
	args := m.Called(ctx, exp)
	return args.Error(0)
}

func (m *MockProfileRepository) AddEducation(ctx context.Context, edu *models.Education) error {
	args := m.Called(ctx, edu)
	return args.Error(0)
}

func (m *MockProfileRepository) DeleteExperience(ctx context.Context, profileID, expID uint) error {
	args := m.Called(ctx, profileID, expID)
	return args.Error(0)
}

func (m *MockProfileRepository) DeleteEducation(ctx context.Context, profileID, eduID uint) error {
	args := m.Called(ctx, profileID, eduID)
	return args.Error(0)
}

func (m *MockProfileRepository) DeleteWithUser(ctx context.Context, userID uint) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func noProfileErr() *models.AppError {
	return models.NewFieldNotFoundError("noprofile", "There is no profile for this user")
}

func newProfileTestServer(repo *MockProfileRepository) *Server {
	return &Server{
		config:         &config.Config{JWTSecret: "test_secret", JWTTTLMinutes: 60},
		tokens:         auth.NewTokenService("test_secret", time.Hour),
		profileRepo:    repo,
		profileService: service.NewProfileService(repo),
	}
}

func authedRequest(t *testing.T, s *Server, method, path string) *http.Request {
	t.Helper()
	token, err := s.tokens.Issue(auth.Claims{UserID: 1, Name: "Ann"})
	require.NoError(t, err)
	req := httptest.NewRequest(method, path, nil)
	req.Header.Set("Authorization", "Bearer "+token)
	return req
}

func TestGetCurrentProfile(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		app := fiber.New()
		mockRepo := new(MockProfileRepository)
		mockRepo.On("GetByUserID", mock.Anything, uint(1)).
			Return(&models.Profile{ID: 7, UserID: 1, Handle: "ann1", Status: "Developer"}, nil)

		s := newProfileTestServer(mockRepo)
		app.Get("/api/profile", s.AuthRequired(), s.GetCurrentProfile)

		resp, err := app.Test(authedRequest(t, s, http.MethodGet, "/api/profile"))
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()

		require.Equal(t, http.StatusOK, resp.StatusCode)
		body := decodeBody(t, resp)
		assert.Equal(t, "ann1", body["handle"])
	})

	t.Run("No Profile", func(t *testing.T) {
		app := fiber.New()
		mockRepo := new(MockProfileRepository)
		mockRepo.On("GetByUserID", mock.Anything, uint(1)).Return(nil, noProfileErr())

		s := newProfileTestServer(mockRepo)
		app.Get("/api/profile", s.AuthRequired(), s.GetCurrentProfile)

		resp, err := app.Test(authedRequest(t, s, http.MethodGet, "/api/profile"))
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		body := decodeBody(t, resp)
		assert.Equal(t, "There is no profile for this user", body["noprofile"])
	})
}

func TestGetProfileByHandle(t *testing.T) {
	app := fiber.New()
	mockRepo := new(MockProfileRepository)
	mockRepo.On("GetByHandle", mock.Anything, "ann1").
		Return(&models.Profile{ID: 7, UserID: 1, Handle: "ann1"}, nil)
	mockRepo.On("GetByHandle", mock.Anything, "ghost").Return(nil, noProfileErr())

	s := newProfileTestServer(mockRepo)
	app.Get("/api/profile/handle/:handle", s.GetProfileByHandle)

	t.Run("Found", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/profile/handle/ann1", nil))
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("Missing", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/profile/handle/ghost", nil))
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}

func TestGetAllProfiles_EmptyIsOK(t *testing.T) {
	app := fiber.New()
	mockRepo := new(MockProfileRepository)
	mockRepo.On("List", mock.Anything, 20, 0).Return(([]*models.Profile)(nil), nil)

	s := newProfileTestServer(mockRepo)
	app.Get("/api/profile/all", s.GetAllProfiles)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/profile/all", nil))
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var profiles []any
	require.NoError(t, json.Unmarshal(raw, &profiles))
	assert.Empty(t, profiles)
}

func TestUpsertProfile(t *testing.T) {
	t.Run("Validation Failure", func(t *testing.T) {
		app := fiber.New()
		mockRepo := new(MockProfileRepository)
		s := newProfileTestServer(mockRepo)
		app.Post("/api/profile", s.AuthRequired(), s.UpsertProfile)

		token, err := s.tokens.Issue(auth.Claims{UserID: 1, Name: "Ann"})
		require.NoError(t, err)

		resp := postJSONWithToken(t, app, "/api/profile", token, map[string]string{
			"handle": "ann1",
			// status and skills missing
		})
		defer func() { _ = resp.Body.Close() }()

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		body := decodeBody(t, resp)
		assert.Contains(t, body, "status")
		assert.Contains(t, body, "skills")
	})

	t.Run("Creates Profile", func(t *testing.T) {
		app := fiber.New()
		mockRepo := new(MockProfileRepository)
		created := &models.Profile{ID: 7, UserID: 1, Handle: "ann1", Status: "Developer", Skills: []string{"js", "ts"}}
		mockRepo.On("GetByHandle", mock.Anything, "ann1").Return(nil, noProfileErr())
		mockRepo.On("GetByUserID", mock.Anything, uint(1)).Return(nil, noProfileErr()).Once()
		mockRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
		mockRepo.On("GetByUserID", mock.Anything, uint(1)).Return(created, nil)

		s := newProfileTestServer(mockRepo)
		app.Post("/api/profile", s.AuthRequired(), s.UpsertProfile)

		token, err := s.tokens.Issue(auth.Claims{UserID: 1, Name: "Ann"})
		require.NoError(t, err)

		resp := postJSONWithToken(t, app, "/api/profile", token, map[string]string{
			"handle": "ann1",
			"status": "Developer",
			"skills": "js,ts",
		})
		defer func() { _ = resp.Body.Close() }()

		require.Equal(t, http.StatusOK, resp.StatusCode)
		body := decodeBody(t, resp)
		assert.Equal(t, "ann1", body["handle"])
	})

	t.Run("Handle Taken", func(t *testing.T) {
		app := fiber.New()
		mockRepo := new(MockProfileRepository)
		mockRepo.On("GetByHandle", mock.Anything, "ann1").
			Return(&models.Profile{ID: 2, UserID: 99, Handle: "ann1"}, nil)

		s := newProfileTestServer(mockRepo)
		app.Post("/api/profile", s.AuthRequired(), s.UpsertProfile)

		token, err := s.tokens.Issue(auth.Claims{UserID: 1, Name: "Ann"})
		require.NoError(t, err)

		resp := postJSONWithToken(t, app, "/api/profile", token, map[string]string{
			"handle": "ann1",
			"status": "Developer",
			"skills": "js",
		})
		defer func() { _ = resp.Body.Close() }()

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		body := decodeBody(t, resp)
		assert.Equal(t, "That handle already exists", body["handle"])
	})
}

func TestDeleteAccount(t *testing.T) {
	app := fiber.New()
	mockRepo := new(MockProfileRepository)
	mockRepo.On("DeleteWithUser", mock.Anything, uint(1)).Return(nil)

	s := newProfileTestServer(mockRepo)
	app.Delete("/api/profile", s.AuthRequired(), s.DeleteAccount)

	resp, err := app.Test(authedRequest(t, s, http.MethodDelete, "/api/profile"))
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, true, body["success"])
	mockRepo.AssertExpectations(t)
}
