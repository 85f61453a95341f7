package api_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/comitanigiacomo/kyool-companion/internal/adapters/api"
	"github.com/comitanigiacomo/kyool-companion/internal/core/domain"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBackend(t *testing.T, register func(r *gin.Engine)) *api.Client {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	register(r)
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return api.NewClient(srv.URL + "/")
}

type recordedCall struct {
	op     string
	status int
}

type fakeRecorder struct {
	mu    sync.Mutex
	calls []recordedCall
}

func (f *fakeRecorder) RecordAPICall(ctx context.Context, op string, status int, elapsed time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, recordedCall{op: op, status: status})
}

func TestClient_Streaks(t *testing.T) {
	ctx := context.Background()

	t.Run("Success: Get streak", func(t *testing.T) {
		client := newBackend(t, func(r *gin.Engine) {
			r.GET("/users/:id/streak/:type", func(c *gin.Context) {
				assert.Equal(t, "u1", c.Param("id"))
				c.JSON(http.StatusOK, gin.H{
					"streak_type":      c.Param("type"),
					"current_streak":   3,
					"last_logged_date": "2024-05-20",
					"start_date":       "2024-05-18",
				})
			})
		})

		rec, err := client.GetStreak(ctx, "u1", "water")

		require.NoError(t, err)
		assert.Equal(t, "water", rec.StreakType)
		assert.Equal(t, 3, rec.CurrentStreak)
		require.NotNil(t, rec.LastLoggedDate)
		assert.Equal(t, domain.DateKey("2024-05-20"), *rec.LastLoggedDate)
	})

	t.Run("Success: Never logged has null dates", func(t *testing.T) {
		client := newBackend(t, func(r *gin.Engine) {
			r.GET("/users/:id/streak/:type", func(c *gin.Context) {
				c.JSON(http.StatusOK, gin.H{"streak_type": "water", "current_streak": 0, "last_logged_date": nil, "start_date": nil})
			})
		})

		rec, err := client.GetStreak(ctx, "u1", "water")

		require.NoError(t, err)
		assert.Nil(t, rec.LastLoggedDate)
		assert.Nil(t, rec.StartDate)
	})

	t.Run("Success: Update and reset use POST", func(t *testing.T) {
		client := newBackend(t, func(r *gin.Engine) {
			r.POST("/users/:id/streak/:type/update", func(c *gin.Context) {
				c.JSON(http.StatusOK, gin.H{"streak_type": "water", "current_streak": 4, "last_logged_date": "2024-05-21"})
			})
			r.POST("/users/:id/streak/:type/reset", func(c *gin.Context) {
				c.JSON(http.StatusOK, gin.H{"streak_type": "water", "current_streak": 0})
			})
		})

		rec, err := client.UpdateStreak(ctx, "u1", "water")
		require.NoError(t, err)
		assert.Equal(t, 4, rec.CurrentStreak)

		rec, err = client.ResetStreak(ctx, "u1", "water")
		require.NoError(t, err)
		assert.Equal(t, 0, rec.CurrentStreak)
	})

	t.Run("Success: All streaks fill in missing type names", func(t *testing.T) {
		client := newBackend(t, func(r *gin.Engine) {
			r.GET("/users/:id/streaks", func(c *gin.Context) {
				c.JSON(http.StatusOK, gin.H{"streaks": gin.H{"workout": gin.H{"current_streak": 2}}})
			})
		})

		all, err := client.GetAllStreaks(ctx, "u1")

		require.NoError(t, err)
		assert.Equal(t, "workout", all["workout"].StreakType)
		assert.Equal(t, 2, all["workout"].CurrentStreak)
	})

	t.Run("Fail: Server detail becomes the error message", func(t *testing.T) {
		client := newBackend(t, func(r *gin.Engine) {
			r.GET("/users/:id/streak/:type", func(c *gin.Context) {
				c.JSON(http.StatusBadRequest, gin.H{"detail": "Invalid streak type"})
			})
		})

		_, err := client.GetStreak(ctx, "u1", "nap")

		require.Error(t, err)
		assert.Equal(t, "Invalid streak type", err.Error())
		assert.Equal(t, http.StatusBadRequest, api.StatusOf(err))
	})

	t.Run("Fail: No detail falls back to the call message", func(t *testing.T) {
		client := newBackend(t, func(r *gin.Engine) {
			r.GET("/users/:id/streak/:type", func(c *gin.Context) {
				c.String(http.StatusInternalServerError, "oops")
			})
		})

		_, err := client.GetStreak(ctx, "u1", "water")

		require.Error(t, err)
		assert.Equal(t, "Failed to get streak: Internal Server Error", err.Error())
	})
}

func TestClient_Water(t *testing.T) {
	ctx := context.Background()
	var setBody struct {
		Glasses int `json:"glasses"`
	}

	client := newBackend(t, func(r *gin.Engine) {
		r.POST("/users/:id/water/set", func(c *gin.Context) {
			require.NoError(t, c.ShouldBindJSON(&setBody))
			c.JSON(http.StatusOK, gin.H{"success": true})
		})
		r.GET("/users/:id/water/today", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"glasses": 5})
		})
		r.GET("/users/:id/water/history", func(c *gin.Context) {
			assert.Equal(t, "7", c.Query("days"))
			c.JSON(http.StatusOK, gin.H{"history": []gin.H{{"date": "2024-05-20", "glasses": 5}}})
		})
	})

	require.NoError(t, client.SetWaterIntake(ctx, "u1", 5))
	assert.Equal(t, 5, setBody.Glasses)

	today, err := client.GetTodayWaterIntake(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 5, today)

	history, err := client.GetWaterHistory(ctx, "u1", 7)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, domain.DateKey("2024-05-20"), history[0].Date)
}

func TestClient_BodyFat(t *testing.T) {
	ctx := context.Background()

	t.Run("Success: 404 means nothing logged", func(t *testing.T) {
		client := newBackend(t, func(r *gin.Engine) {
			r.GET("/users/:id/body-fat/latest", func(c *gin.Context) {
				c.JSON(http.StatusNotFound, gin.H{"detail": "No body fat logs found"})
			})
			r.GET("/users/:id/body-fat/history", func(c *gin.Context) {
				c.JSON(http.StatusNotFound, gin.H{"detail": "No body fat logs found"})
			})
		})

		latest, err := client.GetLatestBodyFat(ctx, "u1")
		assert.NoError(t, err)
		assert.Nil(t, latest)

		history, err := client.GetBodyFatHistory(ctx, "u1")
		assert.NoError(t, err)
		assert.Empty(t, history)
		assert.NotNil(t, history)
	})

	t.Run("Success: Bearer token is forwarded", func(t *testing.T) {
		client := newBackend(t, func(r *gin.Engine) {
			r.POST("/users/:id/body-fat/log", func(c *gin.Context) {
				assert.Equal(t, "Bearer tok-123", c.GetHeader("Authorization"))
				c.JSON(http.StatusCreated, gin.H{"id": "bf1", "body_fat": 18.5, "height": 180, "neck": 38, "waist": 82})
			})
		})

		reqCtx := api.WithBearer(ctx, "tok-123")
		log, err := client.LogBodyFat(reqCtx, "u1", domain.BodyFatMeasurements{Height: 180, Neck: 38, Waist: 82, BodyFatPercentage: 18.5})

		require.NoError(t, err)
		assert.Equal(t, "bf1", log.ID)
		assert.Equal(t, 18.5, log.BodyFat)
	})

	t.Run("Fail: Other errors still surface", func(t *testing.T) {
		client := newBackend(t, func(r *gin.Engine) {
			r.GET("/users/:id/body-fat/latest", func(c *gin.Context) {
				c.JSON(http.StatusForbidden, gin.H{"detail": "Not allowed"})
			})
		})

		_, err := client.GetLatestBodyFat(ctx, "u1")
		assert.EqualError(t, err, "Not allowed")
	})
}

func TestClient_Social(t *testing.T) {
	ctx := context.Background()
	var gotBody map[string]string

	client := newBackend(t, func(r *gin.Engine) {
		r.POST("/users/:id/send-friend-request", func(c *gin.Context) {
			require.NoError(t, c.ShouldBindJSON(&gotBody))
			c.JSON(http.StatusOK, gin.H{"message": "sent"})
		})
		r.GET("/users/:id/friends", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"friends": []gin.H{{"id": "f1", "username": "ana"}}})
		})
		r.GET("/users/:id/friend-requests/incoming", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"requests": []gin.H{{"id": "r1", "sender_id": "f2"}}})
		})
		r.POST("/users/:id/workouts/log", func(c *gin.Context) {
			var w domain.WorkoutLog
			require.NoError(t, c.ShouldBindJSON(&w))
			assert.Equal(t, "Push day", w.RoutineName)
			c.JSON(http.StatusOK, gin.H{"success": true})
		})
	})

	require.NoError(t, client.SendFriendRequest(ctx, "u1", "f9"))
	assert.Equal(t, "f9", gotBody["receiver_id"])

	friends, err := client.ListFriends(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "ana", friends[0].Username)

	incoming, err := client.IncomingFriendRequests(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "f2", incoming[0].SenderID)

	require.NoError(t, client.LogWorkout(ctx, "u1", domain.WorkoutLog{RoutineName: "Push day", DurationMinutes: 45}))
}

func TestClient_Waitlist(t *testing.T) {
	ctx := context.Background()

	client := newBackend(t, func(r *gin.Engine) {
		r.GET("/waitlist/entries", func(c *gin.Context) {
			assert.Equal(t, "25", c.Query("limit"))
			assert.Equal(t, "contacted", c.Query("status"))
			c.JSON(http.StatusOK, gin.H{"entries": []gin.H{{"id": "w1", "status": "contacted", "joined_at": "2024-01-01T10:00:00.123456"}}, "count": 1})
		})
		r.PUT("/waitlist/entries/:id/status", func(c *gin.Context) {
			c.JSON(http.StatusNotFound, gin.H{"detail": "Entry not found"})
		})
		r.GET("/waitlist/stats", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"total_entries": 12, "by_type": gin.H{"executives": 2, "professionals": 7, "students": 3}, "high_value_prospects": 4})
		})
	})

	page, err := client.WaitlistEntries(ctx, domain.WaitlistQuery{Limit: 25, Status: "contacted"})
	require.NoError(t, err)
	assert.Equal(t, 1, page.Count)
	assert.Equal(t, "2024-01-01T10:00:00.123456", page.Entries[0].JoinedAt)

	err = client.UpdateWaitlistStatus(ctx, "missing", "converted")
	assert.True(t, api.IsNotFound(err))
	assert.EqualError(t, err, "Entry not found")

	stats, err := client.WaitlistStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 7, stats.ByType.Professionals)
}

func TestClient_StructuredDetailAndRecorder(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/waitlist/join", func(c *gin.Context) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": []gin.H{{"loc": []string{"body", "email"}, "msg": "field required"}}})
	})
	srv := httptest.NewServer(r)
	defer srv.Close()

	rec := &fakeRecorder{}
	client := api.NewClient(srv.URL, api.WithRecorder(rec), api.WithTimeout(2*time.Second))

	_, err := client.JoinWaitlist(context.Background(), domain.WaitlistApplication{})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "field required")
	require.Len(t, rec.calls, 1)
	assert.Equal(t, recordedCall{op: "join_waitlist", status: http.StatusUnprocessableEntity}, rec.calls[0])
}

func TestClient_TransportError(t *testing.T) {
	client := api.NewClient("http://127.0.0.1:1")

	_, err := client.GetTodayWaterIntake(context.Background(), "u1")

	require.Error(t, err)
	assert.Equal(t, 0, api.StatusOf(err))
}

type headerTransport struct {
	next  http.RoundTripper
	agent string
}

func (h headerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	req.Header.Set("User-Agent", h.agent)
	return h.next.RoundTrip(req)
}

func TestClient_WithHTTPClient(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/users/:id/water/today", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"glasses": 3})
	})
	var seen struct {
		agent, auth string
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		seen.agent = req.Header.Get("User-Agent")
		seen.auth = req.Header.Get("Authorization")
		r.ServeHTTP(w, req)
	}))
	defer srv.Close()

	hc := &http.Client{Transport: headerTransport{next: http.DefaultTransport, agent: "kyool-test"}}
	client := api.NewClient(srv.URL, api.WithHTTPClient(hc), api.WithToken("tok"))

	glasses, err := client.GetTodayWaterIntake(context.Background(), "u1")

	require.NoError(t, err)
	assert.Equal(t, 3, glasses)
	assert.Equal(t, "kyool-test", seen.agent)
	assert.Equal(t, "Bearer tok", seen.auth)
}

func TestClient_BackendPaths(t *testing.T) {
	ctx := context.Background()
	gin.SetMode(gin.TestMode)

	var (
		mu   sync.Mutex
		seen []string
	)
	r := gin.New()
	r.NoRoute(func(c *gin.Context) {
		mu.Lock()
		seen = append(seen, c.Request.Method+" "+c.Request.URL.Path)
		mu.Unlock()
		if strings.HasSuffix(c.Request.URL.Path, "/history") {
			c.JSON(http.StatusOK, []gin.H{})
			return
		}
		c.JSON(http.StatusOK, gin.H{})
	})
	srv := httptest.NewServer(r)
	defer srv.Close()
	client := api.NewClient(srv.URL)

	_, err := client.GetStreak(ctx, "u1", "water")
	require.NoError(t, err)
	_, err = client.UpdateStreak(ctx, "u1", "water")
	require.NoError(t, err)
	_, err = client.ResetStreak(ctx, "u1", "workout")
	require.NoError(t, err)
	_, err = client.GetAllStreaks(ctx, "u1")
	require.NoError(t, err)
	_, err = client.LogBodyFat(ctx, "u1", domain.BodyFatMeasurements{Height: 180, Neck: 38, Waist: 82, BodyFatPercentage: 18})
	require.NoError(t, err)
	_, err = client.GetLatestBodyFat(ctx, "u1")
	require.NoError(t, err)
	_, err = client.GetBodyFatHistory(ctx, "u1")
	require.NoError(t, err)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []string{
		"GET /users/u1/streak/water",
		"POST /users/u1/streak/water/update",
		"POST /users/u1/streak/workout/reset",
		"GET /users/u1/streaks",
		"POST /users/u1/body-fat/log",
		"GET /users/u1/body-fat/latest",
		"GET /users/u1/body-fat/history",
	}, seen)
}
