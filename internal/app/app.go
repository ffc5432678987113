package app

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	config "github.com/DRSN-tech/marketplace/internal/cfg"
	v1Grpc "github.com/DRSN-tech/marketplace/internal/delivery/v1/grpc"
	v1Http "github.com/DRSN-tech/marketplace/internal/delivery/v1/http"
	"github.com/DRSN-tech/marketplace/internal/infrastructure/auth"
	"github.com/DRSN-tech/marketplace/internal/infrastructure/kafka"
	minioInfra "github.com/DRSN-tech/marketplace/internal/infrastructure/minio"
	s3Repo "github.com/DRSN-tech/marketplace/internal/repository/minio"
	"github.com/DRSN-tech/marketplace/internal/repository/pgdb"
	pgdbConv "github.com/DRSN-tech/marketplace/internal/repository/pgdb/converter"
	"github.com/DRSN-tech/marketplace/internal/repository/redis"
	"github.com/DRSN-tech/marketplace/internal/usecase"
	"github.com/DRSN-tech/marketplace/pkg/clients"
	"github.com/DRSN-tech/marketplace/pkg/closer"
	"github.com/DRSN-tech/marketplace/pkg/e"
	"github.com/DRSN-tech/marketplace/pkg/logger"
	"github.com/DRSN-tech/marketplace/pkg/postgres"
	"github.com/DRSN-tech/marketplace/pkg/tr"
	"github.com/go-chi/chi/v5"
	"github.com/jimlawless/whereami"
)

const (
	startupTimeout  = 10 * time.Second
	shutdownTimeout = 15 * time.Second
	cleanupWait     = 5 * time.Second
)

// App собирает зависимости сервиса и управляет его жизненным циклом.
type App struct {
	cfg    *config.Config
	logger logger.Logger
	closer *closer.Closer

	httpSrv      *v1Http.Server
	grpcSrv      *v1Grpc.GRPCServer
	outboxWorker *kafka.OutboxWorker

	// workersCtx отменяется при остановке и прерывает фоновые операции.
	workersCtx    context.Context
	cancelWorkers context.CancelFunc
}

// NewApp подключается к внешним системам и собирает граф зависимостей.
// Уже открытые ресурсы закрываются, если инициализация прервалась на полпути.
func NewApp(cfg *config.Config, log logger.Logger) (_ *App, err error) {
	workersCtx, cancelWorkers := context.WithCancel(context.Background())

	a := &App{
		cfg:           cfg,
		logger:        log,
		closer:        closer.NewCloser(0),
		workersCtx:    workersCtx,
		cancelWorkers: cancelWorkers,
	}
	a.closer.AddSimple("workers context", cancelWorkers)

	defer func() {
		if err != nil {
			closeCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			if cErr := a.closer.Close(closeCtx); cErr != nil {
				log.Warnf("partial initialization cleanup: %v", cErr)
			}
		}
	}()

	db, err := initPGDB(log, cfg.Db)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	a.closer.AddSimple("postgres", db.Close)

	userRepo := pgdb.NewUserRepo(db.Pool, pgdbConv.UserConverterImpl{})
	categoryRepo := pgdb.NewCategoryRepo(db.Pool, pgdbConv.CategoryConverterImpl{})
	productRepo := pgdb.NewProductRepo(db.Pool, pgdbConv.ProductConverterImpl{})
	orderRepo := pgdb.NewOrderRepo(db.Pool, pgdbConv.OrderConverterImpl{})
	outboxRepo := pgdb.NewOutboxEventRepo(db.Pool, pgdbConv.OutboxEventConverterImpl{})
	txManager := tr.NewManager(db.Pool)

	redisClient := clients.NewRedisClient(cfg.Redis)
	a.closer.Add("redis", func(context.Context) error { return redisClient.Close() })

	redisCtx, redisCancel := context.WithTimeout(context.Background(), startupTimeout)
	defer redisCancel()
	if err := redisClient.Ping(redisCtx); err != nil {
		log.Errorf(err, "failed to connect to redis")
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	denylist := redis.NewTokenDenylist(redisClient, log)

	minioClient, err := clients.NewMinIOClient(cfg.Minio)
	if err != nil {
		log.Errorf(err, "failed to initialize minio client")
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	minioCtx, minioCancel := context.WithTimeout(context.Background(), startupTimeout)
	defer minioCancel()
	if err := clients.EnsureBucket(minioCtx, minioClient, cfg.Minio.BucketName); err != nil {
		log.Errorf(err, "failed to initialize MinIO bucket")
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	assetRepo := s3Repo.NewAssetRepo(minioClient, cfg.Minio)
	assetsInfra := minioInfra.NewAssetsInfrastructure(assetRepo, cfg.Minio, log, workersCtx)
	a.closer.Add("asset cleanup", func(ctx context.Context) error {
		waitCtx, cancel := context.WithTimeout(ctx, cleanupWait)
		defer cancel()
		if err := assetsInfra.WaitForCleanup(waitCtx); err != nil {
			log.Warnf("MinIO cleanup did not finish before shutdown, some orphaned objects may remain")
			return err
		}
		return nil
	})

	producer := kafka.NewProducer(log, cfg.Kafka)
	a.closer.Add("kafka producer", func(context.Context) error { return producer.Close() })
	if err := producer.EnsureTopic(startupTimeout); err != nil {
		log.Errorf(err, "failed to ensure kafka topic")
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	a.outboxWorker = kafka.NewOutboxWorker(outboxRepo, log, producer, cfg.Outbox, db.Dsn)

	hasher := auth.NewBcryptHasher(cfg.Auth.BcryptCost)
	tokens := auth.NewJWTIssuer(cfg.Auth)

	authUC, err := usecase.NewAuthUC(userRepo, hasher, tokens, denylist, log)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	catalogUC := usecase.NewCatalogUC(categoryRepo, productRepo, userRepo, assetsInfra, log)
	orderUC := usecase.NewOrderUC(orderRepo, productRepo, outboxRepo, kafka.NewProtoEventEncoder(), txManager, log)

	r := chi.NewRouter()
	v1Http.NewRouter(r, log, v1Http.RouterOptions{
		SwaggerHost:   cfg.Http.SwaggerHost,
		MaxUploadSize: cfg.Minio.MaxAssetSize,
	}).Init(authUC, catalogUC, orderUC)
	a.httpSrv = v1Http.NewServer(r, cfg.Http)

	a.grpcSrv = v1Grpc.NewGRPCServer(cfg.Grpc, log)
	a.grpcSrv.RegisterServices(
		v1Grpc.DependencyCheck{Name: "postgres", Check: db.Ping},
		v1Grpc.DependencyCheck{Name: "redis", Check: redisClient.Ping},
	)

	return a, nil
}

// Run запускает серверы и воркер outbox и блокируется до сигнала остановки или фатальной ошибки.
func (a *App) Run() error {
	a.outboxWorker.Start(a.workersCtx)
	a.closer.AddSimple("outbox worker", a.outboxWorker.Stop)

	grpcErrCh := make(chan error, 1)
	go func() {
		a.logger.Infof("gRPC server starting on %s:%s", a.cfg.Grpc.NetworkMode, a.cfg.Grpc.Port)
		if err := a.grpcSrv.Start(); err != nil {
			grpcErrCh <- err
		}
	}()
	a.closer.Add("grpc server", a.grpcSrv.Stop)

	httpErrCh := make(chan error, 1)
	go func() {
		a.logger.Infof("HTTP server started on %s", a.httpSrv.Addr())
		if err := a.httpSrv.Run(); err != nil {
			httpErrCh <- err
		}
	}()
	a.closer.Add("http server", a.httpSrv.Stop)

	// === Ожидание сигнала или ошибки ===
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(shutdown)

	var appErr error
	select {
	case appErr = <-httpErrCh:
		a.logger.Errorf(appErr, "HTTP server fatal error")
	case appErr = <-grpcErrCh:
		a.logger.Errorf(appErr, "gRPC server fatal error")
	case <-shutdown:
		a.logger.Infof("Received shutdown signal, stopping gracefully...")
	}

	// === Graceful shutdown ===
	// LIFO: сначала серверы, затем воркер, фоновые очистки и соединения.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := a.closer.Close(shutdownCtx); err != nil {
		if errors.Is(shutdownCtx.Err(), context.DeadlineExceeded) {
			a.logger.Warnf("shutdown timeout: %v", err)
		} else {
			a.logger.Warnf("%v", err)
		}
	}

	a.logger.Infof("Application shutdown complete")
	return appErr
}

func initPGDB(logger logger.Logger, cfg *config.PGDBCfg) (*postgres.PgDatabase, error) {
	db, err := postgres.Connect(cfg)
	if err != nil {
		logger.Errorf(err, "failed to connect to database")
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	if err := db.RunMigrations(logger); err != nil {
		logger.Errorf(err, "failed to run migrations")
		db.Close()
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return db, nil
}
