package workers

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/comitanigiacomo/kyool-companion/internal/core/domain"
	"github.com/comitanigiacomo/kyool-companion/internal/core/events"
)

const DefaultQueueSize = 100

type StreakUpdater interface {
	Update(ctx context.Context, userID, streakType string) (domain.StreakRecord, error)
}

type StreakJob struct {
	UserID     string
	StreakType string
	// Bearer is the ID token of the request that queued the job; empty falls
	// back to the client's configured token.
	Bearer string
}

// StreakWorker turns qualifying bus events into streak updates off the
// publisher's goroutine. One event produces at most one update.
type StreakWorker struct {
	updater StreakUpdater
	jobs    chan StreakJob
	timeout time.Duration

	mu   sync.Mutex
	subs []*events.Subscription
	wg   sync.WaitGroup
}

func NewStreakWorker(updater StreakUpdater, queueSize int) *StreakWorker {
	if queueSize <= 0 {
		queueSize = DefaultQueueSize
	}
	return &StreakWorker{
		updater: updater,
		jobs:    make(chan StreakJob, queueSize),
		timeout: 10 * time.Second,
	}
}

func (w *StreakWorker) Start(ctx context.Context) {
	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		log.Info().Msg("streak worker started")
		for {
			select {
			case job := <-w.jobs:
				w.processJob(ctx, job)
			case <-ctx.Done():
				log.Info().Msg("streak worker stopping")
				return
			}
		}
	}()
}

// Wait blocks until the loop started by Start has returned.
func (w *StreakWorker) Wait() {
	w.wg.Wait()
}

// Enqueue never blocks; a full queue drops the job.
func (w *StreakWorker) Enqueue(job StreakJob) bool {
	select {
	case w.jobs <- job:
		return true
	default:
		log.Warn().Str("user_id", job.UserID).Str("streak_type", job.StreakType).Msg("streak queue full, dropping job")
		return false
	}
}

// Subscribe wires the worker to the bus: added water bumps the water streak,
// a completed workout bumps the workout streak.
func (w *StreakWorker) Subscribe(bus *events.Bus) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.subs = append(w.subs,
		bus.Subscribe(domain.TopicWaterUpdated, func(e events.Event) {
			p, ok := e.Payload.(domain.WaterUpdated)
			if !ok || p.UserID == "" || p.Delta <= 0 {
				return
			}
			w.Enqueue(StreakJob{UserID: p.UserID, StreakType: domain.StreakTypeWater, Bearer: p.Bearer})
		}),
		bus.Subscribe(domain.TopicWorkoutCompleted, func(e events.Event) {
			p, ok := e.Payload.(domain.WorkoutCompleted)
			if !ok || p.UserID == "" {
				return
			}
			w.Enqueue(StreakJob{UserID: p.UserID, StreakType: domain.StreakTypeWorkout, Bearer: p.Bearer})
		}),
	)
}

func (w *StreakWorker) Unsubscribe() {
	w.mu.Lock()
	defer w.mu.Unlock()

	for _, sub := range w.subs {
		sub.Unsubscribe()
	}
	w.subs = nil
}

// Drain runs the queued jobs on the caller's goroutine until the queue is
// empty or ctx is done. It returns the number of jobs processed.
func (w *StreakWorker) Drain(ctx context.Context) int {
	n := 0
	for {
		select {
		case job := <-w.jobs:
			w.processJob(ctx, job)
			n++
		case <-ctx.Done():
			return n
		default:
			return n
		}
	}
}

func (w *StreakWorker) processJob(ctx context.Context, job StreakJob) {
	ctx, cancel := context.WithTimeout(ctx, w.timeout)
	defer cancel()
	ctx = domain.ContextWithBearer(ctx, job.Bearer)

	rec, err := w.updater.Update(ctx, job.UserID, job.StreakType)
	if err != nil {
		log.Error().Err(err).Str("user_id", job.UserID).Str("streak_type", job.StreakType).Msg("failed to update streak")
		return
	}

	log.Debug().
		Str("user_id", job.UserID).
		Str("streak_type", job.StreakType).
		Int("current_streak", rec.CurrentStreak).
		Msg("streak updated")
}
