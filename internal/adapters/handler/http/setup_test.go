package http_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"github.com/comitanigiacomo/kyool-companion/internal/adapters/api"
	adapterHTTP "github.com/comitanigiacomo/kyool-companion/internal/adapters/handler/http"
	"github.com/comitanigiacomo/kyool-companion/internal/adapters/identity"
	"github.com/comitanigiacomo/kyool-companion/internal/adapters/repository"
	"github.com/comitanigiacomo/kyool-companion/internal/core/events"
	"github.com/comitanigiacomo/kyool-companion/internal/core/services"
)

var testNow = time.Date(2024, 5, 20, 10, 0, 0, 0, time.UTC)

type fixture struct {
	router *gin.Engine
	bus    *events.Bus
	notes  *services.NotificationService
	token  string
}

// backendCalls records which backend paths were hit.
type backendCalls struct {
	mu    sync.Mutex
	paths []string
}

func (b *backendCalls) add(p string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.paths = append(b.paths, p)
}

func (b *backendCalls) count() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.paths)
}

// setupRouter wires the real services and API client against a fake backend.
func setupRouter(t *testing.T, register func(r *gin.Engine)) (*fixture, *backendCalls) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	calls := &backendCalls{}
	backend := gin.New()
	backend.Use(func(c *gin.Context) {
		calls.add(c.Request.Method + " " + c.Request.URL.Path)
		c.Next()
	})
	backend.GET("/users/:id", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"id": c.Param("id"), "timezone": "UTC"})
	})
	if register != nil {
		register(backend)
	}
	srv := httptest.NewServer(backend)
	t.Cleanup(srv.Close)

	client := api.NewClient(srv.URL)
	bus := events.NewBus()
	zones := services.NewZoneResolver(client, "UTC")

	streaks := services.NewStreakService(client, bus, zones)
	streaks.SetClock(func() time.Time { return testNow })
	water := services.NewWaterService(client, bus, zones, services.WaterConfig{})
	water.SetClock(func() time.Time { return testNow })

	notes := services.NewNotificationService()
	t.Cleanup(notes.FeedFrom(bus))

	router := adapterHTTP.NewRouter(adapterHTTP.RouterDependencies{
		StreakHandler:       adapterHTTP.NewStreakHandler(streaks),
		WaterHandler:        adapterHTTP.NewWaterHandler(water),
		GoalHandler:         adapterHTTP.NewGoalHandler(services.NewGoalService(repository.NewInMemoryStorage())),
		NotificationHandler: adapterHTTP.NewNotificationHandler(notes),
		BodyFatHandler:      adapterHTTP.NewBodyFatHandler(services.NewBodyFatService(client, bus)),
		SocialHandler:       adapterHTTP.NewSocialHandler(services.NewSocialService(client, client, bus)),
		WaitlistHandler:     adapterHTTP.NewWaitlistHandler(services.NewWaitlistService(client)),
		EventsHandler:       adapterHTTP.NewEventsHandler(bus),
		Identity:            identity.NewReader(),
		StartTime:           time.Now(),
	})

	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "u1",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}).SignedString([]byte("backend-secret"))
	require.NoError(t, err)

	return &fixture{router: router, bus: bus, notes: notes, token: tok}, calls
}

func (f *fixture) do(method, path string, body any, signedIn bool) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if signedIn {
		req.Header.Set("Authorization", "Bearer "+f.token)
	}
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}
