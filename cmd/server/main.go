package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"

	"occupancyDash/internal/config"
	"occupancyDash/internal/modules/occupancy/application/usecase"
	"occupancyDash/internal/modules/occupancy/infrastructure"
	transport "occupancyDash/internal/modules/occupancy/interface"
	statsport "occupancyDash/internal/modules/statistics/application/port"
	statsusecase "occupancyDash/internal/modules/statistics/application/usecase"
	statsinfra "occupancyDash/internal/modules/statistics/infrastructure"
	statstransport "occupancyDash/internal/modules/statistics/interface"
	"occupancyDash/internal/platform/broker"
	"occupancyDash/internal/platform/metrics"
	"occupancyDash/internal/shared/httputil"
	"occupancyDash/internal/shared/logging"
	"occupancyDash/internal/web"
)

func main() {
	// Attempt to load variables from .env so local runs honour configuration tweaks.
	if err := godotenv.Overload(); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			fmt.Fprintf(os.Stderr, ".env load warning: %v\n", err)
		}
	}
	cfg := config.Load()

	cmd := newCommand(cfg, run)
	if err := cmd.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "occupancy-dash: %v\n", err)
		os.Exit(1)
	}
}

func run(parent context.Context, cfg *config.Config) error {
	logFile, logger, err := setupLogging(cfg)
	if err != nil {
		return fmt.Errorf("logging setup: %w", err)
	}
	defer logFile.Close()
	slog.SetDefault(logger)
	slog.Info("logging initialized", slog.String("directory", cfg.LogDir), slog.String("level", cfg.LogLevel), slog.String("format", cfg.LogFormat))

	layout, err := infrastructure.LoadLayoutFile(cfg.LayoutFile)
	if err != nil {
		return fmt.Errorf("seating layout: %w", err)
	}

	ctx, cancel := context.WithCancel(parent)
	defer cancel()
	var workers sync.WaitGroup

	metrics.Register()
	hub := infrastructure.NewHub()

	synchronizer := usecase.NewSynchronizer(
		infrastructure.NewStatusHTTPClient(cfg.BackendURL, cfg.RESTTimeout, nil),
		infrastructure.NewStatusStreamClient(cfg.BackendURL, cfg.HandshakeTimeout),
		usecase.NewSnapshotStore(),
		usecase.SyncOptions{
			PollInterval:   cfg.PollInterval,
			InitialBackoff: cfg.InitialBackoff,
			MaxBackoff:     cfg.MaxBackoff,
		},
	)
	dashboard := transport.NewDashboardHandler(synchronizer, hub, layout)
	synchronizer.AddSink(dashboard.BroadcastSink())

	if publisher := broker.NewSnapshotPublisher(cfg.KafkaBrokers, cfg.KafkaTopic); publisher != nil {
		synchronizer.AddSink(publisher)
		workers.Add(1)
		go func() {
			defer workers.Done()
			_ = publisher.Run(ctx)
		}()
		slog.Info("kafka snapshot publisher enabled", slog.Any("brokers", cfg.KafkaBrokers), slog.String("topic", cfg.KafkaTopic))
	}

	var statsCache statsport.WeeklyCache
	if cfg.RedisAddr != "" {
		redisClient := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPassword, DB: cfg.RedisDB})
		defer redisClient.Close()
		statsCache = statsinfra.NewRedisWeeklyCache(redisClient, cfg.StatsCacheTTL)
		slog.Info("weekly stats cache enabled", slog.String("addr", cfg.RedisAddr), slog.Duration("ttl", cfg.StatsCacheTTL))
	}
	statistics := statstransport.NewStatisticsHandler(statsusecase.NewWeeklyStatsService(
		statsinfra.NewWeeklyHTTPClient(cfg.BackendURL, cfg.RESTTimeout, nil),
		statsCache,
	))

	e := echo.New()
	e.HideBanner = true
	e.Logger.SetOutput(log.Writer())
	e.HTTPErrorHandler = httputil.NewHTTPErrorHandler(web.ErrorPage)
	e.Use(middleware.RequestID(), middleware.Recover())
	dashboard.Register(e)
	statistics.Register(e)
	e.GET("/metrics", echo.WrapHandler(metrics.Handler()))

	workers.Add(1)
	go func() {
		defer workers.Done()
		if err := synchronizer.Run(ctx); err != nil {
			slog.Error("status synchronizer stopped", slog.Any("error", err))
		}
	}()
	slog.Info("status synchronizer started", slog.String("backend", cfg.BackendURL), slog.Duration("poll", cfg.PollInterval))

	serverErr := make(chan error, 1)
	go func() {
		if err := e.Start(":" + cfg.ServerPort); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(stop)

	var runErr error
	select {
	case <-stop:
		slog.Info("shutting down")
	case <-ctx.Done():
	case runErr = <-serverErr:
		slog.Error("http server stopped", slog.Any("error", runErr))
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	hub.Close()
	if err := e.Shutdown(shutdownCtx); err != nil {
		slog.Warn("http shutdown error", slog.Any("error", err))
	}
	cancel()
	workers.Wait()
	return runErr
}

func setupLogging(cfg *config.Config) (*os.File, *slog.Logger, error) {
	dir := cfg.LogDir
	if dir == "" {
		dir = "./logs"
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, nil, fmt.Errorf("create log dir: %w", err)
	}
	fileName := filepath.Join(dir, time.Now().UTC().Format("2006-01-02")+".log")
	file, err := os.OpenFile(fileName, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}

	writer := io.MultiWriter(os.Stdout, file)
	logger := logging.New(writer, logging.Config{
		Level:     cfg.LogLevel,
		Format:    cfg.LogFormat,
		AddSource: true,
	})
	log.SetOutput(writer)
	log.SetFlags(0)
	log.SetPrefix("")

	return file, logger, nil
}
