package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/dmitrijs2005/communityfeed/internal/buildinfo"
	"github.com/dmitrijs2005/communityfeed/internal/client/cli"
	"github.com/dmitrijs2005/communityfeed/internal/client/client"
	"github.com/dmitrijs2005/communityfeed/internal/client/config"
	"github.com/dmitrijs2005/communityfeed/internal/client/redirect"
	"github.com/dmitrijs2005/communityfeed/internal/client/router"
	"github.com/dmitrijs2005/communityfeed/internal/client/services"
	"github.com/dmitrijs2005/communityfeed/internal/client/session"
	"github.com/dmitrijs2005/communityfeed/internal/client/storage"
	"github.com/dmitrijs2005/communityfeed/internal/common"
	"github.com/dmitrijs2005/communityfeed/internal/filex"
	"github.com/dmitrijs2005/communityfeed/internal/logging"
	"github.com/dmitrijs2005/communityfeed/internal/telemetry"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		log.Fatalf("%v", err)
	}
}

func run(ctx context.Context, cfg *config.Config) error {
	logger := logging.New(cfg.LogLevel, os.Stderr)

	shutdown, err := telemetry.Setup(ctx, telemetry.Options{
		ServiceName:    "communityfeed-cli",
		ServiceVersion: buildinfo.Version(),
		Endpoint:       cfg.OTLPEndpoint,
		Insecure:       cfg.OTLPInsecure,
	}, logger)
	if err != nil {
		logger.Warn(ctx, "tracing unavailable", "error", err)
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(sctx); err != nil {
			logger.Warn(sctx, "tracing shutdown", "error", err)
		}
	}()

	if err := filex.EnsureParentDir(cfg.StoragePath); err != nil {
		return err
	}
	db, err := storage.OpenSQLite(ctx, cfg.StoragePath)
	if err != nil {
		return err
	}
	defer db.Close()

	scoped, closeScoped := openSessionScoped(ctx, cfg, logger)
	defer closeScoped()

	store := session.NewStore(ctx, storage.NewSQLiteStore(db), logger)
	tracker := redirect.NewTracker(scoped, common.LoginPath, logger)

	api, err := client.NewHTTPClient(cfg.APIBaseURL, store,
		client.WithPathPrefix(cfg.APIPathPrefix),
		client.WithTimeout(cfg.RequestTimeout),
	)
	if err != nil {
		return err
	}

	feed := services.NewFeedService(api)
	guard := router.NewGuard(store, tracker, common.LoginPath, logger)
	rt := router.New(guard, cli.Screens(feed, store), cfg.LandingPath, os.Stdout, logger)
	auth := services.NewAuthService(api, store, tracker, rt, logger)

	app := cli.NewApp(cli.Options{
		Auth:        auth,
		Session:     store,
		Intents:     tracker,
		Navigator:   rt,
		LandingPath: cfg.LandingPath,
		Log:         logger,
	})
	app.Run(ctx)
	return nil
}

// openSessionScoped returns the store for values that must not outlive this
// terminal session. Redis keys are namespaced per run and expire after the
// session TTL; an unreachable Redis falls back to memory.
func openSessionScoped(ctx context.Context, cfg *config.Config, logger logging.Logger) (storage.Store, func()) {
	if cfg.SessionBackend != config.BackendRedis {
		return storage.NewMemoryStore(), func() {}
	}

	rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})

	pctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := rdb.Ping(pctx).Err(); err != nil {
		logger.Warn(ctx, "redis unreachable, keeping session data in memory", "addr", cfg.RedisAddr, "error", err)
		_ = rdb.Close()
		return storage.NewMemoryStore(), func() {}
	}

	namespace := "communityfeed:" + uuid.NewString()
	return storage.NewRedisStore(rdb, namespace, cfg.SessionTTL), func() { _ = rdb.Close() }
}
