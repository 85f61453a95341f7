package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/comitanigiacomo/kyool-companion/internal/app"
	"github.com/comitanigiacomo/kyool-companion/internal/config"
	"github.com/comitanigiacomo/kyool-companion/internal/core/domain"
)

// fakeKyool is a minimal stand-in for the remote backend.
func fakeKyool(t *testing.T) *httptest.Server {
	t.Helper()

	var mu sync.Mutex
	glasses := 0
	streak := 0

	r := gin.New()
	r.GET("/users/:id", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"id": c.Param("id"), "timezone": "UTC"})
	})
	r.GET("/users/:id/water/today", func(c *gin.Context) {
		mu.Lock()
		defer mu.Unlock()
		c.JSON(http.StatusOK, gin.H{"glasses": glasses})
	})
	r.GET("/users/:id/water/history", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"history": []gin.H{}})
	})
	r.POST("/users/:id/water/set", func(c *gin.Context) {
		var body struct {
			Glasses int `json:"glasses"`
		}
		_ = c.ShouldBindJSON(&body)
		mu.Lock()
		glasses = body.Glasses
		mu.Unlock()
		c.JSON(http.StatusOK, gin.H{"glasses": body.Glasses})
	})
	r.GET("/users/:id/streak/:type", func(c *gin.Context) {
		mu.Lock()
		defer mu.Unlock()
		c.JSON(http.StatusOK, gin.H{"streak_type": c.Param("type"), "current_streak": streak, "last_logged_date": time.Now().UTC().Format("2006-01-02")})
	})
	r.POST("/users/:id/streak/:type/update", func(c *gin.Context) {
		mu.Lock()
		streak++
		n := streak
		mu.Unlock()
		c.JSON(http.StatusOK, gin.H{"streak_type": c.Param("type"), "current_streak": n, "last_logged_date": time.Now().UTC().Format("2006-01-02")})
	})

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}

func TestEndToEnd_WaterDay(t *testing.T) {
	gin.SetMode(gin.TestMode)
	backend := fakeKyool(t)

	cfg := &config.Config{
		APIURL:         backend.URL,
		APITimeout:     2 * time.Second,
		StorageDriver:  config.StorageSQLite,
		SQLitePath:     filepath.Join(t.TempDir(), "kyool.db"),
		WaterDailyCap:  8,
		WaterDailyGoal: 8,
		StreakCacheTTL: time.Minute,
	}

	a, err := app.New(t.Context(), cfg)
	require.NoError(t, err)
	defer a.Close()
	a.StartWorker(t.Context())

	router := a.Router()

	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "e2e-tester-1",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}).SignedString([]byte("backend-secret"))
	require.NoError(t, err)

	do := func(method, path, body string, auth bool) *httptest.ResponseRecorder {
		req, _ := http.NewRequest(method, path, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
		if auth {
			req.Header.Set("Authorization", "Bearer "+tok)
		}
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	t.Run("1. Add water", func(t *testing.T) {
		w := do(http.MethodPost, "/api/v1/water/add", `{"amount": 8}`, true)

		assert.Equal(t, http.StatusOK, w.Code)
		var summary domain.WaterSummary
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &summary))
		assert.Equal(t, 8, summary.Total)
	})

	t.Run("2. Goal reached notification", func(t *testing.T) {
		w := do(http.MethodGet, "/api/v1/notifications/unread-count", "", false)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"unread":1}`, w.Body.String())
	})

	t.Run("3. Worker bumped the water streak", func(t *testing.T) {
		require.Eventually(t, func() bool {
			w := do(http.MethodGet, "/api/v1/streaks/water", "", true)
			return w.Code == http.StatusOK && bytes.Contains(w.Body.Bytes(), []byte(`"effective_streak":1`))
		}, 2*time.Second, 20*time.Millisecond)
	})

	t.Run("4. Goals persist in device storage", func(t *testing.T) {
		w := do(http.MethodPost, "/api/v1/goals", `{"title": "Hydrate", "category": "hydration"}`, false)
		assert.Equal(t, http.StatusCreated, w.Code)

		raw, ok, err := a.Storage.GetItem(t.Context(), domain.GoalsStorageKey)
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Contains(t, raw, "Hydrate")
	})

	t.Run("5. Validation error", func(t *testing.T) {
		w := do(http.MethodPost, "/api/v1/water/add", `{"amount": -2}`, true)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("6. Auth error", func(t *testing.T) {
		w := do(http.MethodGet, "/api/v1/friends", "", false)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}
