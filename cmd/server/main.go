package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	httpapi "github.com/quizcast/quizcast/internal/api/http"
	"github.com/quizcast/quizcast/internal/application/answer"
	"github.com/quizcast/quizcast/internal/application/audit"
	"github.com/quizcast/quizcast/internal/application/auth"
	"github.com/quizcast/quizcast/internal/application/delivery"
	"github.com/quizcast/quizcast/internal/application/dispatch"
	"github.com/quizcast/quizcast/internal/application/status"
	"github.com/quizcast/quizcast/internal/application/sweep"
	"github.com/quizcast/quizcast/internal/application/undo"
	"github.com/quizcast/quizcast/internal/application/user"
	"github.com/quizcast/quizcast/internal/config"
	"github.com/quizcast/quizcast/internal/grading"
	"github.com/quizcast/quizcast/internal/infrastructure/postgres"
	"github.com/quizcast/quizcast/internal/infrastructure/ws"
)

func main() {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("db error: %v", err)
	}
	defer pool.Close()

	if err := postgres.RunMigrations(ctx, pool, cfg.MigrationsDir); err != nil {
		log.Fatalf("migration error: %v", err)
	}

	// repositories
	pushRepo := postgres.NewPushRepository(pool)
	quizRepo := postgres.NewQuizRepository(pool)
	courseRepo := postgres.NewCourseRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	sessionRepo := postgres.NewSessionRepository(pool)
	auditRepo := postgres.NewAuditRepository(pool)

	// infrastructure
	hub := ws.NewHub(logger)

	// services
	auditSvc := audit.NewService(auditRepo, logger)
	userSvc := user.NewService(userRepo, logger)
	authSvc := auth.NewService(userRepo, sessionRepo, cfg.SessionTTL, logger)
	fanout := delivery.NewFanout(pushRepo, quizRepo, hub, logger)
	grader := grading.NewExpressionGrader()
	answerSvc := answer.NewService(pushRepo, quizRepo, grader, fanout, logger)
	dispatchSvc := dispatch.NewService(pushRepo, quizRepo, courseRepo, courseRepo, fanout, auditSvc, logger)
	undoSvc := undo.NewService(pushRepo, fanout, auditSvc, logger)
	statusSvc := status.NewService(pushRepo, logger)
	sweeper := sweep.NewSweeper(pushRepo, fanout, logger)

	// API server
	apiServer := httpapi.NewServer(
		dispatchSvc, undoSvc, answerSvc, statusSvc,
		authSvc, userSvc, auditSvc,
		quizRepo, fanout, hub,
		cfg.SessionCookieName, cfg.SessionCookieSecure,
	)

	httpServer := &http.Server{
		Addr:        cfg.ServerAddr,
		Handler:     apiServer.Router(),
		ReadTimeout: 15 * time.Second,
		IdleTimeout: 60 * time.Second,
	}

	// background loops
	bgCtx, bgCancel := context.WithCancel(context.Background())
	defer bgCancel()
	go sweeper.Run(bgCtx, cfg.SweepInterval)

	go func() {
		ticker := time.NewTicker(time.Hour)
		defer ticker.Stop()
		for {
			select {
			case <-bgCtx.Done():
				return
			case <-ticker.C:
				if n, err := sessionRepo.DeleteExpired(context.Background()); err == nil && n > 0 {
					logger.Info().Int("deleted", n).Msg("expired sessions purged")
				}
			}
		}
	}()

	// start server
	go func() {
		logger.Info().Str("addr", cfg.ServerAddr).Msg("http server started")
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("http server failed")
		}
	}()

	// graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	bgCancel()
	hub.Stop()
	ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = httpServer.Shutdown(ctxShutdown)
}
