package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/tesilio/lassistant/internal/scheduler"
	"github.com/tesilio/lassistant/internal/telegram"
)

// App ties the bot transport, the digest scheduler and the HTTP endpoint
// into one runnable service.
type App struct {
	bot       *telegram.Bot
	scheduler *scheduler.Scheduler
	server    *http.Server
}

// New assembles the service from its already-constructed parts.
func New(bot *telegram.Bot, sched *scheduler.Scheduler, port string) *App {
	return &App{
		bot:       bot,
		scheduler: sched,
		server: &http.Server{
			Addr: ":" + port,
			// The default mux also carries the bot's webhook handler.
			Handler: nil,
		},
	}
}

// Run starts all parts and blocks until ctx is done, then shuts down.
func (a *App) Run(ctx context.Context) error {
	if err := a.bot.Start(ctx); err != nil {
		return fmt.Errorf("start telegram bot: %w", err)
	}
	if err := a.scheduler.Start(); err != nil {
		return fmt.Errorf("start scheduler: %w", err)
	}

	http.HandleFunc("/health", healthHandler)

	go func() {
		if err := a.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("http server error", "error", err.Error())
		}
	}()

	<-ctx.Done()
	return a.shutdown()
}

func healthHandler(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	fmt.Fprintf(w, `{"status":"healthy","timestamp":"%s"}`, time.Now().Format(time.RFC3339))
}

func (a *App) shutdown() error {
	slog.Info("shutting down")
	a.scheduler.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := a.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown http server: %w", err)
	}
	return nil
}
