package scheduler

import (
	"context"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron"
)

// Deliverer pushes finished digests to the messaging channel.
type Deliverer interface {
	DeliverWeather(ctx context.Context)
	DeliverNews(ctx context.Context)
}

// Scheduler triggers the daily digest deliveries at fixed local times.
type Scheduler struct {
	scheduler *gocron.Scheduler
	deliverer Deliverer

	weatherAt string
	newsAt    string
}

// New creates a scheduler running in the given location.
func New(location *time.Location, deliverer Deliverer, weatherAt, newsAt string) *Scheduler {
	return &Scheduler{
		scheduler: gocron.NewScheduler(location),
		deliverer: deliverer,
		weatherAt: weatherAt,
		newsAt:    newsAt,
	}
}

// Start schedules both daily jobs and starts the scheduler in the
// background.
func (s *Scheduler) Start() error {
	if _, err := s.scheduler.Every(1).Day().At(s.weatherAt).Do(func() {
		slog.Info("scheduler: delivering weather digest")
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()
		s.deliverer.DeliverWeather(ctx)
	}); err != nil {
		return err
	}

	if _, err := s.scheduler.Every(1).Day().At(s.newsAt).Do(func() {
		slog.Info("scheduler: delivering news digest")
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()
		s.deliverer.DeliverNews(ctx)
	}); err != nil {
		return err
	}

	s.scheduler.StartAsync()
	return nil
}

// Stop stops the scheduler and cancels any future jobs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}
