// workers/points_refresh_worker.go
package workers

import (
	"context"
	"log"
	"time"

	"leeterboard-client/models"

	"github.com/go-co-op/gocron/v2"
)

// PointsAPI is the slice of the backend client the refresh worker needs.
type PointsAPI interface {
	RefreshUserPoints(ctx context.Context, userID string) (*models.User, error)
	GetUser(ctx context.Context, userID string) (*models.User, error)
}

// PointsRefreshWorker keeps the viewer's point balance fresh while a screen
// is open. It polls the recompute endpoint on a fixed interval, falling back
// to the plain user fetch when the recompute fails, and hands each fresh user
// to the owning screen. Stop tears the schedule down so a closed screen leaks
// no periodic work.
type PointsRefreshWorker struct {
	api      PointsAPI
	userID   string
	interval time.Duration
	onUser   func(*models.User)
	sched    gocron.Scheduler
}

func NewPointsRefreshWorker(api PointsAPI, userID string, interval time.Duration, onUser func(*models.User)) *PointsRefreshWorker {
	return &PointsRefreshWorker{
		api:      api,
		userID:   userID,
		interval: interval,
		onUser:   onUser,
	}
}

func (w *PointsRefreshWorker) Start(ctx context.Context) error {
	sched, err := gocron.NewScheduler()
	if err != nil {
		return err
	}
	w.sched = sched

	_, err = sched.NewJob(
		gocron.DurationJob(w.interval),
		gocron.NewTask(func() {
			w.refresh(ctx)
		}),
	)
	if err != nil {
		return err
	}

	sched.Start()
	log.Printf("Points refresh worker running (every %s)", w.interval)
	return nil
}

func (w *PointsRefreshWorker) Stop() {
	if w.sched == nil {
		return
	}
	if err := w.sched.Shutdown(); err != nil {
		log.Printf("Points refresh worker shutdown: %v", err)
	}
	w.sched = nil
}

func (w *PointsRefreshWorker) refresh(ctx context.Context) {
	user, err := w.api.RefreshUserPoints(ctx, w.userID)
	if err != nil {
		log.Printf("Could not refresh user points: %v", err)
		user, err = w.api.GetUser(ctx, w.userID)
		if err != nil {
			log.Printf("Could not load user: %v", err)
			return
		}
	}
	if w.onUser != nil {
		w.onUser(user)
	}
}
