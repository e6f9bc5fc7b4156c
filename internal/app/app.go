package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	config "github.com/DRSN-tech/catalog-admin/internal/cfg"
	v1Graphql "github.com/DRSN-tech/catalog-admin/internal/delivery/v1/graphql"
	v1Grpc "github.com/DRSN-tech/catalog-admin/internal/delivery/v1/grpc"
	v1Http "github.com/DRSN-tech/catalog-admin/internal/delivery/v1/http"
	"github.com/DRSN-tech/catalog-admin/internal/infrastructure/kafka"
	minioInfra "github.com/DRSN-tech/catalog-admin/internal/infrastructure/minio"
	"github.com/DRSN-tech/catalog-admin/internal/repository/memory"
	s3Repo "github.com/DRSN-tech/catalog-admin/internal/repository/minio"
	"github.com/DRSN-tech/catalog-admin/internal/repository/pgdb"
	pgdbConv "github.com/DRSN-tech/catalog-admin/internal/repository/pgdb/converter"
	"github.com/DRSN-tech/catalog-admin/internal/repository/redis"
	redisConv "github.com/DRSN-tech/catalog-admin/internal/repository/redis/converter"
	"github.com/DRSN-tech/catalog-admin/internal/usecase"
	"github.com/DRSN-tech/catalog-admin/pkg/clients"
	"github.com/DRSN-tech/catalog-admin/pkg/closer"
	"github.com/DRSN-tech/catalog-admin/pkg/e"
	"github.com/DRSN-tech/catalog-admin/pkg/logger"
	"github.com/DRSN-tech/catalog-admin/pkg/postgres"
	"github.com/DRSN-tech/catalog-admin/pkg/tr"
	"github.com/go-chi/chi/v5"
	"github.com/jimlawless/whereami"
)

const (
	initTimeout         = 10 * time.Second
	shutdownTimeout     = 10 * time.Second
	healthWatchInterval = 10 * time.Second
	ensureTopicTimeout  = 10 * time.Second
)

type healthCheck struct {
	name  string
	check func(ctx context.Context) error
}

// App собирает зависимости сервиса и управляет его жизненным циклом.
type App struct {
	cfg     *config.Config
	logger  logger.Logger
	closer  *closer.Closer
	httpSrv *v1Http.Server
	grpcSrv *v1Grpc.GRPCServer
	outbox  *kafka.OutboxWorker
	checks  []healthCheck
}

// storage — выбранная реализация хранилища товаров.
type storage struct {
	products usecase.ProductRepository
	about    usecase.AboutRepository
	txRunner usecase.TxRunner
	db       *postgres.PgDatabase // nil для хранилища в памяти
}

func NewApp(cfg *config.Config, log logger.Logger) (app *App, err error) {
	a := &App{
		cfg:    cfg,
		logger: log,
		closer: closer.NewCloser(0),
	}
	defer func() {
		// Закрываем то, что успели открыть
		if err != nil {
			ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			if cerr := a.closer.Close(ctx); cerr != nil {
				log.Warnf("cleanup after failed init: %v", cerr)
			}
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), initTimeout)
	defer cancel()

	store, err := a.initStorage(ctx)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	cacheRepo, err := a.initCache(ctx)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	events := a.initEvents(store.db)

	imageUC, err := a.initImages(ctx)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	productUC := usecase.NewProductUC(store.products, cacheRepo, store.txRunner, events, log)
	aboutUC := usecase.NewAboutUC(store.about, log)

	schema, err := v1Graphql.NewSchema(productUC, aboutUC, log, cfg.GraphQL.MaxParallelism)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	r := chi.NewRouter()
	router := v1Http.NewRouter(r, cfg.Http, log)
	deps := v1Http.RouterDeps{
		GraphQL:     v1Graphql.NewHandler(schema, log),
		GraphQLPath: cfg.GraphQL.Path,
		Health:      a.health,
	}
	if imageUC != nil {
		deps.ImageUC = imageUC
		deps.MaxImageSize = cfg.Minio.MaxImageSize
	}
	router.Init(deps)

	a.httpSrv = v1Http.NewServer(r, cfg.Http)
	a.grpcSrv = v1Grpc.NewGRPCServer(cfg.Grpc, log)

	return a, nil
}

func (a *App) initStorage(ctx context.Context) (*storage, error) {
	switch a.cfg.Store.Driver {
	case config.StoreMemory:
		a.logger.Infof("store: in-memory (data is lost on restart)")
		return &storage{
			products: memory.NewProductRepo(),
			about:    memory.NewAboutRepo(a.cfg.GraphQL.AboutMessage),
			txRunner: tr.NopRunner{},
		}, nil
	case config.StorePostgres:
		db, err := initPGDB(ctx, a.logger, a.cfg)
		if err != nil {
			return nil, err
		}
		a.closer.Add("postgres", func(context.Context) error {
			db.Close()
			return nil
		})
		a.checks = append(a.checks, healthCheck{name: "postgres", check: db.Ping})

		return &storage{
			products: pgdb.NewProductRepo(db.Pool, pgdbConv.NewProductConverterImpl()),
			about:    pgdb.NewAboutRepo(db.Pool, a.cfg.GraphQL.AboutMessage),
			txRunner: tr.NewPgRunner(db.Pool),
			db:       db,
		}, nil
	default:
		return nil, fmt.Errorf("%w: %s", e.ErrUnknownStoreDriver, a.cfg.Store.Driver)
	}
}

func (a *App) initCache(ctx context.Context) (usecase.CacheRepository, error) {
	if !a.cfg.Redis.Enabled {
		return redis.NopCacheRepo{}, nil
	}

	redisClient := clients.NewRedisClient(a.cfg.Redis)
	a.closer.AddCloser("redis", redisClient.Close)

	if err := redisClient.Ping(ctx); err != nil {
		a.logger.Errorf(err, "failed to connect to redis")
		return nil, err
	}
	a.checks = append(a.checks, healthCheck{name: "redis", check: redisClient.Ping})

	a.logger.Infof("product cache: redis %s, ttl %s", a.cfg.Redis.Addr, a.cfg.Redis.ProductTTL)
	return redis.NewCacheRepo(redisClient, redisConv.NewProductConverterImpl(), a.cfg.Redis, a.logger), nil
}

// initEvents выбирает способ публикации событий: outbox при PostgreSQL,
// прямую отправку при хранилище в памяти, ничего без Kafka.
func (a *App) initEvents(db *postgres.PgDatabase) usecase.EventPublisher {
	if !a.cfg.Kafka.Enabled() {
		a.logger.Infof("product events: disabled (KAFKA_BROKERS is empty)")
		return kafka.NopPublisher{}
	}

	producer := kafka.NewProducer(a.logger, a.cfg.Kafka)
	a.closer.AddCloser("kafka producer", producer.Close)

	if err := producer.EnsureTopic(ensureTopicTimeout); err != nil {
		a.logger.Warnf("failed to ensure kafka topic %s: %v", a.cfg.Kafka.Topic, err)
	}

	if db == nil {
		a.logger.Infof("product events: direct publish to %s", a.cfg.Kafka.Topic)
		return kafka.NewBestEffortPublisher(producer, a.logger)
	}

	outboxRepo := pgdb.NewOutboxEventRepo(db.Pool, pgdbConv.NewOutboxEventConverterImpl())
	a.outbox = kafka.NewOutboxWorker(outboxRepo, a.logger, producer, a.cfg.Kafka.OutboxBatchSize, a.cfg.Kafka.OutboxPoll, db.Dsn)

	a.logger.Infof("product events: transactional outbox to %s", a.cfg.Kafka.Topic)
	return kafka.NewOutboxPublisher(outboxRepo)
}

func (a *App) initImages(ctx context.Context) (usecase.ImageUC, error) {
	if !a.cfg.Minio.Enabled {
		return nil, nil
	}

	minioClient, err := clients.NewMinIOClient(a.cfg.Minio)
	if err != nil {
		a.logger.Errorf(err, "failed to initialize minio client")
		return nil, err
	}

	if err := clients.EnsureBucket(ctx, minioClient, a.cfg.Minio.BucketName); err != nil {
		a.logger.Errorf(err, "failed to initialize MinIO bucket")
		return nil, err
	}

	imageRepo := s3Repo.NewImageRepo(minioClient, a.cfg.Minio)
	imagesInfra := minioInfra.NewMinioInfrastructure(imageRepo, a.cfg.Minio, a.logger)

	return usecase.NewImageUC(imagesInfra), nil
}

// health проверяет все внешние зависимости по очереди.
func (a *App) health(ctx context.Context) error {
	for _, c := range a.checks {
		if err := c.check(ctx); err != nil {
			return fmt.Errorf("%s: %w", c.name, err)
		}
	}
	return nil
}

// Run запускает серверы и блокируется до сигнала остановки или падения сервера.
func (a *App) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if a.outbox != nil {
		a.outbox.Start(ctx)
		a.closer.Add("outbox worker", func(context.Context) error {
			a.outbox.Stop()
			return nil
		})
	}

	go a.grpcSrv.WatchHealth(ctx, healthWatchInterval, a.health)

	errCh := make(chan error, 2)
	go func() {
		a.logger.Infof("gRPC server starting on %s:%s", a.cfg.Grpc.NetworkMode, a.cfg.Grpc.Port)
		if err := a.grpcSrv.Start(); err != nil {
			errCh <- e.Wrap("gRPC server", err)
		}
	}()
	a.closer.Add("grpc server", a.grpcSrv.Stop)

	go func() {
		a.logger.Infof("HTTP server started on port %s, graphql at %s", a.cfg.Http.Port, a.cfg.GraphQL.Path)
		if err := a.httpSrv.Run(); err != nil {
			errCh <- e.Wrap("HTTP server", err)
		}
	}()
	a.closer.Add("http server", a.httpSrv.Stop)

	var appErr error
	select {
	case appErr = <-errCh:
		a.logger.Errorf(appErr, "server fatal error")
	case <-ctx.Done():
		a.logger.Infof("Received shutdown signal, stopping gracefully...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := a.closer.Close(shutdownCtx); err != nil {
		a.logger.Errorf(err, "shutdown")
	}

	a.logger.Infof("Application shutdown complete")
	return appErr
}

func initPGDB(ctx context.Context, logger logger.Logger, cfg *config.Config) (*postgres.PgDatabase, error) {
	db, err := postgres.Connect(ctx, cfg.Db)
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
