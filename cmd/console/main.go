package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"locker-console/cmd/console/clients/lockerclient"
	"locker-console/cmd/console/httpclient"
	"locker-console/cmd/console/mutation"
	"locker-console/cmd/console/router"
	"locker-console/cmd/console/services"
	"locker-console/cmd/console/session"
	"locker-console/cmd/console/telemetry"
	"locker-console/internal/logger"
	"locker-console/config"
	"locker-console/db"
	"locker-console/eventbus"
)

const serviceName = "locker-console"

// @title           Locker Console API
// @version         1.0
// @description     Admin console for the locker backend
// @BasePath        /console
func main() {
	if err := config.InitApp(); err != nil {
		logger.Log.Errorf("failed to load config: %v", err)
		os.Exit(1)
	}
	cfg := config.GetConfig()
	logger.Init(cfg.Logging.Level)
	if os.Getenv("GIN_MODE") == "" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store, closeStore, err := openSessionStore(ctx, cfg.Session)
	if err != nil {
		logger.Log.Errorf("failed to open session store: %v", err)
		os.Exit(1)
	}
	defer closeStore()

	sessions := session.NewManager(store)
	if err := sessions.Load(ctx); err != nil {
		// 손상된 세션은 로그인 전 상태로 시작한다.
		logger.WarnWithFields("persisted session ignored", logger.Fields{"error": err.Error()})
	}

	base := httpclient.NewBaseClientWithClient(httpclient.New(httpclient.Config{Timeout: cfg.Backend.Timeout}), cfg.Backend.BaseURL)
	client := lockerclient.New(httpclient.NewClient(base, sessions, cfg.Backend.SourceSystem))

	pages := services.NewPageRegistry(client, services.RegistryOptions{
		PageSize:     cfg.Console.PageSize,
		FetchTimeout: cfg.Console.FetchTimeout,
		NoticeBuffer: cfg.Console.NoticeBuffer,
	})

	bus := openAuditBus(cfg.Audit)
	defer bus.Close()

	tp := telemetry.NewTracerProvider(serviceName)
	defer func() {
		sctx, scancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer scancel()
		_ = tp.Shutdown(sctx)
	}()

	dispatcher := mutation.NewDispatcher(client, pages.Targets(),
		mutation.WithAudit(bus, eventbus.NewTopic(cfg.Audit.Topic), sessions.UserID),
		mutation.WithMiddleware(mutation.WithLogging(), mutation.WithTracing(tp)),
	)

	engine := router.New(router.Deps{
		Sessions:   sessions,
		Auth:       services.NewAuthService(client, sessions, pages),
		Pages:      pages,
		Dispatcher: dispatcher,
		Statistics: services.NewStatisticsService(client),
	})

	srv := &http.Server{
		Addr:              cfg.Console.ListenAddr,
		Handler:           router.Handler(engine, cfg.Console.AllowedOrigins),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.InfoWithFields("locker console listening", logger.Fields{
			"addr":     cfg.Console.ListenAddr,
			"backend":  cfg.Backend.BaseURL,
			"session":  cfg.Session.Store,
			"audit":    cfg.Audit.Enabled,
			"loggedIn": sessions.Present(),
		})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Log.Errorf("console server error: %v", err)
			cancel()
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-sigChan:
		logger.Log.Info("received shutdown signal, shutting down console...")
	case <-ctx.Done():
	}

	sctx, scancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer scancel()
	if err := srv.Shutdown(sctx); err != nil {
		logger.Log.Errorf("console shutdown error: %v", err)
	}
	logger.Log.Info("console stopped")
}

// openSessionStore 는 설정에 맞는 세션 저장소와 정리 함수를 반환한다.
func openSessionStore(ctx context.Context, cfg config.SessionConfig) (session.Store, func(), error) {
	switch cfg.Store {
	case "mongo":
		if err := db.Init(ctx, cfg.MongoURI, cfg.MongoDB); err != nil {
			return nil, nil, err
		}
		database, err := db.Database()
		if err != nil {
			return nil, nil, err
		}
		closeFn := func() {
			cctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = db.Close(cctx)
		}
		return session.NewMongoStore(database, db.CollectionSessions), closeFn, nil
	case "memory":
		return session.NewMemoryStore(), func() {}, nil
	default:
		return session.NewFileStore(cfg.FilePath), func() {}, nil
	}
}

// openAuditBus 는 감사가 켜져 있으면 Kafka, 아니면 메모리 버스를 쓴다.
// Kafka 연결 실패는 콘솔 기동을 막지 않는다.
func openAuditBus(cfg config.AuditConfig) eventbus.EventBus {
	if !cfg.Enabled || cfg.Brokers == "" {
		return eventbus.NewMemoryEventBus(256)
	}
	topic := eventbus.NewTopic(cfg.Topic)
	if err := eventbus.EnsureTopics(cfg.Brokers, topic, cfg.Partitions); err != nil {
		logger.Log.Errorf("failed to ensure audit topics for %s: %v", topic.Base(), err)
	}
	bus, err := eventbus.NewKafkaEventBus(cfg.Brokers)
	if err != nil {
		logger.Log.Errorf("failed to create audit event bus, falling back to memory: %v", err)
		return eventbus.NewMemoryEventBus(256)
	}
	return bus
}
