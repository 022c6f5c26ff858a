package server

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"devconnect/internal/auth"
	"devconnect/internal/featureflags"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetFeatureFlags(t *testing.T) {
	srv := newTestServer(new(MockUserRepository))
	srv.featureFlags = featureflags.NewManager("new_feed=on,legacy_dates=off")

	app := fiber.New()
	app.Get("/api/users/flags", srv.AuthRequired(), srv.GetFeatureFlags)

	token, err := srv.tokens.Issue(auth.Claims{UserID: 7, Name: "Ann"})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/users/flags", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	evaluated, ok := body["evaluated"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, true, evaluated["new_feed"])
	assert.Equal(t, false, evaluated["legacy_dates"])
}

func TestGetFeatureFlags_NilManager(t *testing.T) {
	srv := newTestServer(new(MockUserRepository))

	app := fiber.New()
	app.Get("/api/users/flags", srv.AuthRequired(), srv.GetFeatureFlags)

	token, err := srv.tokens.Issue(auth.Claims{UserID: 7, Name: "Ann"})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/users/flags", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Empty(t, body["evaluated"])
}
