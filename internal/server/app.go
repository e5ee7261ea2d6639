// Package server initializes and runs the verifier service. It wires the
// repositories, the challenge nonce store, and the HTTP endpoint, and
// handles graceful shutdown.
package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/decentrix/decentrix/internal/logging"
	"github.com/decentrix/decentrix/internal/server/config"
	"github.com/decentrix/decentrix/internal/server/httpapi"
	"github.com/decentrix/decentrix/internal/server/shared/db"
	"github.com/decentrix/decentrix/internal/server/siwe"
	"github.com/decentrix/decentrix/internal/server/users"
)

type App struct {
	config      *config.Config
	logger      logging.Logger
	userService *users.Service
	siweService *siwe.Service
}

func NewApp(c *config.Config) (*App, error) {

	logger := logging.NewJSON()

	m, err := db.NewPostgresRepositoryManager(c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     c.RedisAddr,
		Password: c.RedisPassword,
		DB:       c.RedisDB,
	})

	us := users.NewService(m.Users(), []byte(c.SecretKey), c.AccessTokenValidityDuration, logger)
	ss := siwe.NewService(siwe.NewRedisNonceStore(rdb), c.ChallengeValidityDuration, logger)

	return &App{config: c, logger: logger, userService: us, siweService: ss}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {

	handler := httpapi.NewHandler(app.siweService, app.userService, app.logger)
	router := httpapi.NewRouter(handler, app.userService)

	srv := &http.Server{
		Addr:    app.config.EndpointAddr,
		Handler: router,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			app.logger.Error(shutdownCtx, "shutdown error", "error", err.Error())
		}
	}()

	app.logger.Info(ctx, "listening", "addr", app.config.EndpointAddr)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()
}
