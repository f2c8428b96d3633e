package internal

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"userinfo-service/config"
	"userinfo-service/internal/application/ports"
	"userinfo-service/internal/application/services"
	"userinfo-service/internal/domain/userinfo"
	"userinfo-service/internal/infrastructure/db/postgres"
	userInfoDB "userinfo-service/internal/infrastructure/db/postgres/userinfo"
	"userinfo-service/internal/infrastructure/jwt"
	"userinfo-service/internal/infrastructure/metrics"
	"userinfo-service/internal/infrastructure/mq"
	"userinfo-service/internal/infrastructure/search/elastic"
	"userinfo-service/internal/infrastructure/searchsync"
	"userinfo-service/internal/interface/api/rest"
	"userinfo-service/internal/interface/api/rest/middleware"
)

type App struct {
	logger       *zap.Logger
	cfg          config.Config
	db           *pgxpool.Pool
	es           *elasticsearch.Client
	httpSrv      *http.Server
	router       *gin.Engine
	mCounter     *prometheus.CounterVec
	userInfoRepo userinfo.Repository
	searchIndex  *elastic.UserInfoIndex
	mirror       ports.SearchSync
	mirrorWorker func(ctx context.Context)
	mq           ports.RabbitMQ
}

func NewApp(ctx context.Context) (*App, error) {
	// logger
	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("cannot initialize zap logger: %v", err)
	}

	// config
	if err = godotenv.Load(".env"); err != nil {
		logger.Warn("no .env file loaded, using process environment", zap.Error(err))
	}
	cfg := config.Load()
	if err = cfg.Validate(); err != nil {
		logger.Fatal("invalid config", zap.Error(err))
	}

	// metrics
	mCounter := metrics.NewCounter()
	pendingGauge := metrics.NewSyncPendingGauge()

	// router
	switch cfg.App.Env {
	case gin.ReleaseMode, "prod", "production":
		gin.SetMode(gin.ReleaseMode)
	case gin.TestMode:
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.DebugMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogGin(logger, mCounter))

	// httpServer
	httpSrv := &http.Server{
		Addr:              cfg.App.Host + ":" + cfg.App.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// db
	dbDsn, err := cfg.DBDSN()
	if err != nil {
		logger.Fatal("DB config error", zap.Error(err))
	}
	dbPool, err := postgres.New(ctx, logger, dbDsn)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}
	userInfoRepo := userInfoDB.NewRepository(dbPool)

	// search index
	es, err := elastic.New(ctx, logger, cfg.ES)
	if err != nil {
		logger.Fatal("failed to connect to elasticsearch", zap.Error(err))
	}
	searchIndex := elastic.NewUserInfoIndex(es, cfg.ES.Index)
	if err = searchIndex.EnsureIndex(ctx); err != nil {
		logger.Fatal("failed to prepare search index", zap.Error(err))
	}

	app := &App{
		logger:       logger,
		cfg:          cfg,
		db:           dbPool,
		es:           es,
		httpSrv:      httpSrv,
		router:       r,
		mCounter:     mCounter,
		userInfoRepo: userInfoRepo,
		searchIndex:  searchIndex,
	}

	// mirror
	switch cfg.Sync.Mode {
	case config.SyncModeBroker:
		rabbitDsn, err := cfg.AMQPDSN()
		if err != nil {
			logger.Fatal("RabbitMQ config error", zap.Error(err))
		}
		rbMQ := mq.New(cfg.MQ, logger, pendingGauge, cfg.Sync.BufferSize)
		if err = rbMQ.Connect(ctx, rabbitDsn); err != nil {
			logger.Fatal("failed to connect to rabbitMQ", zap.Error(err))
		}
		if err = rbMQ.Init(); err != nil {
			logger.Fatal("failed init rabbitMQ", zap.Error(err))
		}
		app.mq = rbMQ
		app.mirror = rbMQ
		app.mirrorWorker = rbMQ.PublisherWorker
	default:
		syncer := searchsync.New(searchIndex, userInfoRepo, logger, pendingGauge, cfg.Sync.BufferSize)
		app.mirror = syncer
		app.mirrorWorker = syncer.Worker
	}

	logger.Info("search mirror configured", zap.String("mode", cfg.Sync.Mode))

	return app, nil
}

func (a *App) Close() {
	if a.db != nil {
		a.db.Close()
	}
	if a.mq != nil && a.mq.GetConn() != nil {
		_ = a.mq.GetConn().Close()
	}
	if a.logger != nil {
		_ = a.logger.Sync()
	}
}

// Run - The central place to launch and manage our application and
// parallel processes through a single context.
func (a *App) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		a.logger.Info("starting "+a.cfg.App.Name, zap.String("addr", a.httpSrv.Addr))
		if err := a.httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server "+a.cfg.App.Name+" error: %w", err)
		}

		return nil
	})

	// the mirror worker drains its queue after ctx is done, so it must
	// outlive the http server's in-flight requests
	workerCtx, stopWorker := context.WithCancel(context.Background())
	workerDone := make(chan struct{})
	go func() {
		defer close(workerDone)
		a.mirrorWorker(workerCtx)
	}()

	<-ctx.Done()

	a.logger.Info("shutting down " + a.cfg.App.Name + " gracefully...")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := a.httpSrv.Shutdown(shutdownCtx); err != nil {
		a.logger.Error("http server shutdown "+a.cfg.App.Name+" error", zap.Error(err))
	}

	stopWorker()
	<-workerDone

	if err := g.Wait(); err != nil {
		a.logger.Error(a.cfg.App.Name+" returning an error", zap.Error(err))
		return err
	}

	a.logger.Info(a.cfg.App.Name+" gracefully stopped", zap.Int64("mirror_pending", a.mirror.Pending()))

	return nil
}

func (a *App) InitControllers() {
	// services
	jwtService := jwt.New(a.cfg.App.JWTSecret)
	userInfoService := services.NewUserInfoService(a.userInfoRepo, a.searchIndex, a.mirror, a.mCounter)

	// controllers
	rest.NewUserInfoController(a.router, userInfoService, a.logger, jwtService)

	// ops
	rest.NewOpsController(a.router, a.mirror, a.cfg.Sync.Mode)
}

func (a *App) Logger() *zap.Logger { return a.logger }
