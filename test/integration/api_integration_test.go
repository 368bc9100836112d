package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"os"
	"testing"

	"reflecto-be/internal/bootstrap"
	"reflecto-be/internal/config"
	"reflecto-be/internal/server"
	"reflecto-be/pkg/database"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Spins up the full HTTP surface against a real database and walks the
// unauthenticated paths plus the 401 gate on protected ones.
func TestApiSurface(t *testing.T) {
	if err := godotenv.Load("../../.env"); err != nil {
		t.Logf("Warning: Could not load ../../.env: %v", err)
	}
	if os.Getenv("DB_CONNECTION_STRING") == "" {
		t.Skip("Skipping integration test: DB_CONNECTION_STRING not set")
	}

	cfg := config.Load()
	db, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	require.NoError(t, err)

	container := bootstrap.NewContainer(db, cfg)
	srv := server.New(cfg, container, container.Logger)
	app := srv.GetApp()

	t.Run("public notebook listing needs no token", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/notebook/v1/public?page=1", nil)
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)
	})

	t.Run("protected surface rejects anonymous callers", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/notebook/v1", nil)
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		assert.Equal(t, 401, resp.StatusCode)
	})

	t.Run("unknown public notebook is a 404", func(t *testing.T) {
		req := httptest.NewRequest("GET", fmt.Sprintf("/api/notebook/v1/public/%s", uuid.New()), nil)
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		assert.Equal(t, 404, resp.StatusCode)
	})

	t.Run("contact intake accepts anonymous submissions", func(t *testing.T) {
		body, _ := json.Marshal(map[string]string{
			"name":    "Integration Tester",
			"email":   "tester@example.com",
			"message": "Checking the intake path.",
		})
		req := httptest.NewRequest("POST", "/api/submission/v1/contact", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		assert.Equal(t, 201, resp.StatusCode)
	})

	t.Run("contact intake reports the first missing field", func(t *testing.T) {
		body, _ := json.Marshal(map[string]string{"email": "tester@example.com"})
		req := httptest.NewRequest("POST", "/api/submission/v1/contact", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		assert.Equal(t, 400, resp.StatusCode)

		var envelope struct {
			Success bool   `json:"success"`
			Field   string `json:"field"`
		}
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
		assert.False(t, envelope.Success)
		assert.Equal(t, "name", envelope.Field)
	})
}
