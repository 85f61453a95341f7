package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/comitanigiacomo/kyool-companion/internal/adapters/api"
	"github.com/comitanigiacomo/kyool-companion/internal/adapters/cache"
	adapterHTTP "github.com/comitanigiacomo/kyool-companion/internal/adapters/handler/http"
	"github.com/comitanigiacomo/kyool-companion/internal/adapters/identity"
	"github.com/comitanigiacomo/kyool-companion/internal/adapters/repository"
	"github.com/comitanigiacomo/kyool-companion/internal/adapters/telemetry"
	"github.com/comitanigiacomo/kyool-companion/internal/config"
	"github.com/comitanigiacomo/kyool-companion/internal/core/domain"
	"github.com/comitanigiacomo/kyool-companion/internal/core/events"
	"github.com/comitanigiacomo/kyool-companion/internal/core/services"
	"github.com/comitanigiacomo/kyool-companion/internal/core/workers"
)

const (
	cachePrefix      = "kyool:cache:"
	storageNamespace = "device"
	shutdownTimeout  = 5 * time.Second
	drainTimeout     = 10 * time.Second
)

// App holds every long-lived dependency of the companion. Both the HTTP
// service and the CLI build one per process.
type App struct {
	Config    *config.Config
	StartTime time.Time

	Bus      *events.Bus
	Client   *api.Client
	Recorder telemetry.Recorder
	Redis    *redis.Client
	Storage  domain.DeviceStorage
	Identity *identity.Reader
	Session  *identity.Session

	Streaks       *services.StreakService
	Water         *services.WaterService
	Goals         *services.GoalService
	Notifications *services.NotificationService
	BodyFat       *services.BodyFatService
	Social        *services.SocialService
	Waitlist      *services.WaitlistService
	Worker        *workers.StreakWorker

	stopWorker context.CancelFunc
	closers    []func()
}

// New wires the companion from cfg. Redis is optional unless it is the
// selected storage driver.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	a := &App{
		Config:    cfg,
		StartTime: time.Now(),
		Bus:       events.NewBus(),
		Identity:  identity.NewReader(),
	}

	a.Recorder = telemetry.New(ctx, cfg.Telemetry)
	a.closers = append(a.closers, func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := a.Recorder.Close(closeCtx); err != nil {
			log.Warn().Err(err).Msg("telemetry flush failed")
		}
	})

	a.Client = api.NewClient(cfg.APIURL,
		api.WithTimeout(cfg.APITimeout),
		api.WithToken(cfg.IDToken),
		api.WithRecorder(a.Recorder),
	)

	if cfg.RedisEnabled() {
		rdb, err := cache.NewRedisClient(cfg.RedisHost, cfg.RedisPort, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			if cfg.StorageDriver == config.StorageRedis {
				a.Close()
				return nil, err
			}
			log.Warn().Err(err).Msg("redis unavailable, continuing without it")
		} else {
			log.Info().Str("host", cfg.RedisHost).Msg("redis connected")
			a.Redis = rdb
			a.closers = append(a.closers, func() { _ = rdb.Close() })
		}
	}

	if err := a.openStorage(ctx); err != nil {
		a.Close()
		return nil, err
	}

	var store cache.Store
	if a.Redis != nil {
		store = cache.NewRedisStore(a.Redis, cachePrefix)
	} else {
		session, err := cache.NewSessionStore(cache.SessionConfig{})
		if err != nil {
			a.Close()
			return nil, fmt.Errorf("failed to create session cache: %w", err)
		}
		store = session
		a.closers = append(a.closers, session.Close)
	}

	if cfg.IDToken != "" {
		session, err := a.Identity.Read(cfg.IDToken)
		if err != nil {
			log.Warn().Err(err).Msg("configured ID token is unusable, running signed out")
		} else {
			a.Session = session
		}
	}

	detected := cfg.UserTimezone
	if detected == "" {
		detected = domain.DetectTimezone()
	}
	zones := services.NewZoneResolver(a.Client, detected)
	a.Streaks = services.NewStreakService(repository.NewCachedStreakAPI(a.Client, store, cfg.StreakCacheTTL), a.Bus, zones)
	a.Water = services.NewWaterService(a.Client, a.Bus, zones, services.WaterConfig{
		DailyCap:  cfg.WaterDailyCap,
		DailyGoal: cfg.WaterDailyGoal,
	})
	a.Goals = services.NewGoalService(a.Storage)
	a.Notifications = services.NewNotificationService()
	a.BodyFat = services.NewBodyFatService(a.Client, a.Bus)
	a.Social = services.NewSocialService(a.Client, a.Client, a.Bus)
	a.Waitlist = services.NewWaitlistService(a.Client)

	a.closers = append(a.closers, a.Notifications.FeedFrom(a.Bus))
	sub := telemetry.Observe(a.Recorder, a.Bus)
	a.closers = append(a.closers, sub.Unsubscribe)

	a.Worker = workers.NewStreakWorker(a.Streaks, workers.DefaultQueueSize)
	a.Worker.Subscribe(a.Bus)

	return a, nil
}

func (a *App) openStorage(ctx context.Context) error {
	switch a.Config.StorageDriver {
	case config.StorageSQLite:
		db, err := repository.OpenSQLiteStorage(ctx, a.Config.SQLitePath)
		if err != nil {
			return err
		}
		a.Storage = db
		a.closers = append(a.closers, func() { _ = db.Close() })
	case config.StorageRedis:
		if a.Redis == nil {
			return errors.New("storage driver redis requires REDIS_HOST")
		}
		a.Storage = repository.NewRedisStorage(a.Redis, storageNamespace)
	case config.StorageMemory:
		a.Storage = repository.NewInMemoryStorage()
	default:
		return fmt.Errorf("unknown storage driver %q", a.Config.StorageDriver)
	}
	log.Debug().Str("driver", a.Config.StorageDriver).Msg("device storage ready")
	return nil
}

// UserID is the signed-in user from the configured ID token, or "".
func (a *App) UserID() string {
	if a.Session == nil {
		return ""
	}
	return a.Session.UserID
}

// StartWorker runs the streak worker until ctx is done or Close is called.
func (a *App) StartWorker(ctx context.Context) {
	ctx, a.stopWorker = context.WithCancel(ctx)
	a.Worker.Start(ctx)
}

func (a *App) Router() *gin.Engine {
	return adapterHTTP.NewRouter(adapterHTTP.RouterDependencies{
		StreakHandler:       adapterHTTP.NewStreakHandler(a.Streaks),
		WaterHandler:        adapterHTTP.NewWaterHandler(a.Water),
		GoalHandler:         adapterHTTP.NewGoalHandler(a.Goals),
		NotificationHandler: adapterHTTP.NewNotificationHandler(a.Notifications),
		BodyFatHandler:      adapterHTTP.NewBodyFatHandler(a.BodyFat),
		SocialHandler:       adapterHTTP.NewSocialHandler(a.Social),
		WaitlistHandler:     adapterHTTP.NewWaitlistHandler(a.Waitlist),
		EventsHandler:       adapterHTTP.NewEventsHandler(a.Bus),
		Identity:            a.Identity,
		DefaultToken:        a.Config.IDToken,
		Redis:               a.Redis,
		RateLimit:           a.Config.RateLimit,
		RateLimitWindow:     a.Config.RateLimitWindow,
		StartTime:           a.StartTime,
	})
}

// Serve runs the companion HTTP server on port until ctx is done, then shuts
// it down gracefully.
func (a *App) Serve(ctx context.Context, port string) error {
	srv := &http.Server{
		Addr:        ":" + port,
		Handler:     a.Router(),
		ReadTimeout: 10 * time.Second,
		// No WriteTimeout: /api/v1/events streams stay open.
		IdleTimeout: 120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", port).Msgf("Kyool companion running on http://localhost:%s", port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info().Msg("Stop signal received. Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("forced shutdown: %w", err)
	}

	log.Info().Msg("Server stopped gracefully.")
	return nil
}

// Close stops the worker, runs whatever streak updates are still queued and
// releases every resource in reverse order of acquisition.
func (a *App) Close() {
	if a.Worker != nil {
		a.Worker.Unsubscribe()
		if a.stopWorker != nil {
			a.stopWorker()
			a.Worker.Wait()
		}
		ctx, cancel := context.WithTimeout(context.Background(), drainTimeout)
		if n := a.Worker.Drain(ctx); n > 0 {
			log.Debug().Int("jobs", n).Msg("drained streak queue")
		}
		cancel()
	}

	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	a.closers = nil
}
