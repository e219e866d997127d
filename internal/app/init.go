package app

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"net/http"

	server "github.com/ArtemSukhotko/ai-astro-tarot/internal/adapters/primary/http"
	alerterController "github.com/ArtemSukhotko/ai-astro-tarot/internal/adapters/primary/http/controllers/alerter"
	astrologyController "github.com/ArtemSukhotko/ai-astro-tarot/internal/adapters/primary/http/controllers/astrology"
	authController "github.com/ArtemSukhotko/ai-astro-tarot/internal/adapters/primary/http/controllers/auth"
	cabinetController "github.com/ArtemSukhotko/ai-astro-tarot/internal/adapters/primary/http/controllers/cabinet"
	checkoutController "github.com/ArtemSukhotko/ai-astro-tarot/internal/adapters/primary/http/controllers/checkout"
	healthcheckController "github.com/ArtemSukhotko/ai-astro-tarot/internal/adapters/primary/http/controllers/healthcheck"
	tarotController "github.com/ArtemSukhotko/ai-astro-tarot/internal/adapters/primary/http/controllers/tarot"
	kafkaConsumerAdapter "github.com/ArtemSukhotko/ai-astro-tarot/internal/adapters/primary/kafka"
	kafkaHandlers "github.com/ArtemSukhotko/ai-astro-tarot/internal/adapters/primary/kafka/handlers"
	alerterAdapter "github.com/ArtemSukhotko/ai-astro-tarot/internal/adapters/secondary/alerter"
	"github.com/ArtemSukhotko/ai-astro-tarot/internal/adapters/secondary/ephemeris"
	"github.com/ArtemSukhotko/ai-astro-tarot/internal/adapters/secondary/geocoding"
	kafkaAdapter "github.com/ArtemSukhotko/ai-astro-tarot/internal/adapters/secondary/kafka"
	"github.com/ArtemSukhotko/ai-astro-tarot/internal/adapters/secondary/payment/mock"
	"github.com/ArtemSukhotko/ai-astro-tarot/internal/adapters/secondary/storage/inmemory"
	"github.com/ArtemSukhotko/ai-astro-tarot/internal/adapters/secondary/storage/pg"
	redisAdapter "github.com/ArtemSukhotko/ai-astro-tarot/internal/adapters/secondary/storage/redis"
	s3Adapter "github.com/ArtemSukhotko/ai-astro-tarot/internal/adapters/secondary/storage/s3"
	tarotStore "github.com/ArtemSukhotko/ai-astro-tarot/internal/adapters/secondary/tarot"
	"github.com/ArtemSukhotko/ai-astro-tarot/internal/pkg/random"
	"github.com/ArtemSukhotko/ai-astro-tarot/internal/ports/cache"
	kafkaPorts "github.com/ArtemSukhotko/ai-astro-tarot/internal/ports/kafka"
	"github.com/ArtemSukhotko/ai-astro-tarot/internal/ports/repository"
	"github.com/ArtemSukhotko/ai-astro-tarot/internal/ports/service"
	"github.com/ArtemSukhotko/ai-astro-tarot/internal/ports/storage"
	calculationRepo "github.com/ArtemSukhotko/ai-astro-tarot/internal/repository/calculation"
	paymentRepo "github.com/ArtemSukhotko/ai-astro-tarot/internal/repository/payment"
	userRepo "github.com/ArtemSukhotko/ai-astro-tarot/internal/repository/user"
	alerterService "github.com/ArtemSukhotko/ai-astro-tarot/internal/services/alerter"
	jobScheduler "github.com/ArtemSukhotko/ai-astro-tarot/internal/services/jobs"
	astroUsecase "github.com/ArtemSukhotko/ai-astro-tarot/internal/usecases/astro"
	authUsecase "github.com/ArtemSukhotko/ai-astro-tarot/internal/usecases/auth"
	cabinetUsecase "github.com/ArtemSukhotko/ai-astro-tarot/internal/usecases/cabinet"
	paymentUsecase "github.com/ArtemSukhotko/ai-astro-tarot/internal/usecases/payment"
	tarotUsecase "github.com/ArtemSukhotko/ai-astro-tarot/internal/usecases/tarot"
	"github.com/jmoiron/sqlx"
)

type Dependencies struct {
	DB             *sqlx.DB // nil, если работаем на in-memory хранилище
	HTTPServer     *http.Server
	Cache          cache.Cache
	KafkaProducers map[string]*kafkaAdapter.Producer
	KafkaConsumers map[string]*kafkaConsumerAdapter.Consumer
	JobScheduler   *jobScheduler.Scheduler
}

// repositories содержит инициализированные репозитории
type repositories struct {
	User        repository.IUserRepo
	Calculation repository.ICalculationRepo
	Payment     repository.IPaymentRepo
}

// externalServices содержит внешние сервисы (опциональные)
type externalServices struct {
	Alerter service.IAlerterService
	Cache   cache.Cache
	Storage storage.IS3Client // nil, если S3 не настроен
	Events  *kafkaAdapter.EventPublisher
}

// useCases содержит бизнес-логику приложения
type useCases struct {
	Astro   *astroUsecase.Service
	Tarot   *tarotUsecase.Service
	Auth    *authUsecase.Service
	Cabinet *cabinetUsecase.Service
	Payment *paymentUsecase.Service
}

// initDependencies инициализирует все зависимости приложения
func (a *App) initDependencies(ctx context.Context) (*Dependencies, error) {
	pingers := make(map[string]healthcheckController.Pinger)

	db, err := a.initPostgres(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to init postgres: %w", err)
	}
	repos := a.initRepositories(db)
	if db != nil {
		pingers["postgres"] = pg.NewDB(db)
	}

	ext, kafkaProducers, err := a.initExternalServices(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to init external services: %w", err)
	}
	if pinger, ok := ext.Cache.(healthcheckController.Pinger); ok {
		pingers["redis"] = pinger
	}

	uc, err := a.initUseCases(repos, ext)
	if err != nil {
		return nil, fmt.Errorf("failed to init use cases: %w", err)
	}

	if a.Cfg.SeedDemo {
		if err := a.seedDemo(ctx, uc); err != nil {
			return nil, fmt.Errorf("failed to seed demo data: %w", err)
		}
	}

	kafkaConsumers := a.initKafkaConsumers(uc.Payment)
	httpServer := a.initHTTP(uc, ext.Alerter, pingers)
	scheduler := a.initJobScheduler(ext.Alerter, uc)

	return &Dependencies{
		DB:             db,
		HTTPServer:     httpServer,
		Cache:          ext.Cache,
		KafkaProducers: kafkaProducers,
		KafkaConsumers: kafkaConsumers,
		JobScheduler:   scheduler,
	}, nil
}

// initPostgres подключается к PostgreSQL и запускает миграции. Без настроек возвращает nil
func (a *App) initPostgres(ctx context.Context) (*sqlx.DB, error) {
	if !a.Cfg.Postgres.Enabled() {
		a.Log.Warn("postgres is not configured, using in-memory storage")
		return nil, nil
	}

	db, err := a.Cfg.Postgres.NewConnection(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}

	a.Log.Info("postgres connected successfully")

	if a.Cfg.Postgres.MigrateOnStart {
		if err := pg.RunMigrations(ctx, db, a.Log); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to run migrations: %w", err)
		}
	}

	return db, nil
}

// initRepositories репозитории PostgreSQL или in-memory, если база не настроена
func (a *App) initRepositories(db *sqlx.DB) *repositories {
	if db == nil {
		return &repositories{
			User:        inmemory.NewUserRepo(),
			Calculation: inmemory.NewCalculationRepo(),
			Payment:     inmemory.NewPaymentRepo(),
		}
	}

	persistenceLayer := pg.NewDB(db)
	return &repositories{
		User:        userRepo.New(persistenceLayer, a.Log),
		Calculation: calculationRepo.New(persistenceLayer, a.Log),
		Payment:     paymentRepo.New(persistenceLayer, a.Log),
	}
}

// initExternalServices инициализирует Alerter, кэш, хранилище отчётов и продюсеры событий
func (a *App) initExternalServices(ctx context.Context) (*externalServices, map[string]*kafkaAdapter.Producer, error) {
	services := &externalServices{}

	// Alerter - опциональный, без клиента алерты только логируются
	var sender alerterService.Sender
	if client := alerterAdapter.NewClient(a.Cfg.Alerter, a.Log); client != nil {
		sender = client
	}
	services.Alerter = alerterService.New(sender, a.Log)

	// Redis Cache - опциональный
	services.Cache = inmemory.NewCache()
	if a.Cfg.Redis.Enabled() {
		redisClient, err := a.Cfg.Redis.NewConnection(ctx)
		if err != nil {
			a.Log.Warn("failed to init redis cache, continuing with in-memory cache", "error", err)
		} else {
			services.Cache = redisAdapter.NewClient(redisClient)
			a.Log.Info("redis cache connected successfully")
		}
	}

	// S3 - опциональный, без него экспорт отчётов недоступен
	if a.Cfg.S3.Enabled() {
		minioClient, err := a.Cfg.S3.NewClient(ctx)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to init s3 storage: %w", err)
		}
		services.Storage = s3Adapter.NewClient(minioClient, a.Cfg.S3.Bucket, a.Log)
		a.Log.Info("s3 storage connected successfully", "bucket", a.Cfg.S3.Bucket)
	}

	producers := a.initKafkaProducers()
	services.Events = kafkaAdapter.NewEventPublisher(
		producerOrNil(producers, kafkaAdapter.ChartCalculatedName),
		producerOrNil(producers, kafkaAdapter.PaymentSucceededName),
		a.Log,
	)

	return services, producers, nil
}

// initKafkaProducers продюсеры по именам подключений. Ошибка одного продюсера не останавливает старт
func (a *App) initKafkaProducers() map[string]*kafkaAdapter.Producer {
	producers := make(map[string]*kafkaAdapter.Producer)

	for _, name := range []string{kafkaAdapter.ChartCalculatedName, kafkaAdapter.PaymentSucceededName} {
		cfg := a.Cfg.Kafka.Find(name)
		if cfg == nil {
			continue
		}
		producer, err := kafkaAdapter.NewProducer(cfg, a.Log)
		if err != nil {
			a.Log.Warn("failed to create kafka producer", "error", err, "name", name)
			continue
		}
		producers[name] = producer
	}

	return producers
}

// initUseCases инициализирует UseCases приложения
func (a *App) initUseCases(repos *repositories, ext *externalServices) (*useCases, error) {
	aspectMode, err := astroUsecase.ParseAspectMode(a.Cfg.Astro.AspectMode)
	if err != nil {
		return nil, err
	}

	rng := random.New()

	ephemerisClient, err := ephemeris.New(&a.Cfg.Astro.Ephemeris, a.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to init ephemeris: %w", err)
	}

	astro := astroUsecase.New(
		ephemerisClient,
		geocoding.New(a.Log),
		repos.Calculation,
		rng,
		astroUsecase.Config{
			AspectMode:      aspectMode,
			EphemerisSource: a.Cfg.Astro.EphemerisSource,
			AIModel:         a.Cfg.Astro.AIModel,
			SnapshotTTL:     a.Cfg.Astro.SnapshotTTL,
			PreviewPrice:    a.Cfg.Astro.PreviewPrice,
		},
		a.Log,
	).
		WithCache(ext.Cache).
		WithEvents(ext.Events).
		WithAlerter(ext.Alerter)
	if ext.Storage != nil {
		astro.WithStorage(ext.Storage)
	}

	tarot := tarotUsecase.New(
		tarotStore.NewEmbeddedStore(),
		ext.Cache,
		rng,
		tarotUsecase.Config{
			ShuffleDelay: a.Cfg.Tarot.ShuffleDelay,
			SessionTTL:   a.Cfg.Tarot.SessionTTL,
		},
		a.Log,
	)

	secret := a.Cfg.Auth.Secret
	if secret == "" {
		secret, err = randomSecret()
		if err != nil {
			return nil, err
		}
		a.Log.Warn("auth secret is not configured, sessions will not survive a restart")
	}
	auth := authUsecase.New(repos.User, ext.Cache, authUsecase.Config{
		Secret:       secret,
		Issuer:       a.Cfg.Auth.Issuer,
		TokenTTL:     a.Cfg.Auth.TokenTTL,
		Delay:        a.Cfg.Auth.Delay,
		DemoPassword: a.Cfg.Auth.DemoPassword,
	}, a.Log)

	cabinet := cabinetUsecase.New(repos.Calculation, repos.User, cabinetUsecase.Config{
		ReportURLTTL: a.Cfg.Cabinet.ReportURLTTL,
	}, a.Log)
	if ext.Storage != nil {
		cabinet.WithStorage(ext.Storage)
	}

	payment := paymentUsecase.New(
		repos.Payment,
		repos.User,
		repos.Calculation,
		mock.NewProvider(a.Cfg.Payment.ProcessingDelay, a.Log),
		paymentUsecase.Config{
			ProcessingDelay: a.Cfg.Payment.ProcessingDelay,
			BatchSize:       a.Cfg.Payment.BatchSize,
		},
		a.Log,
	).
		WithEvents(ext.Events).
		WithAlerter(ext.Alerter)

	return &useCases{
		Astro:   astro,
		Tarot:   tarot,
		Auth:    auth,
		Cabinet: cabinet,
		Payment: payment,
	}, nil
}

// seedDemo демо-пользователи и их прогнозы
func (a *App) seedDemo(ctx context.Context, uc *useCases) error {
	users, err := uc.Auth.SeedDemoUsers(ctx)
	if err != nil {
		return err
	}
	for _, user := range users {
		if err := uc.Cabinet.SeedDemoPredictions(ctx, user.ID); err != nil {
			return err
		}
	}
	return nil
}

// initKafkaConsumers консьюмер событий платёжного провайдера
func (a *App) initKafkaConsumers(settler *paymentUsecase.Service) map[string]*kafkaConsumerAdapter.Consumer {
	consumers := make(map[string]*kafkaConsumerAdapter.Consumer)

	cfg := a.Cfg.Kafka.Find(kafkaAdapter.PaymentEventsName)
	if cfg == nil {
		return consumers
	}

	handler := kafkaHandlers.NewPaymentEventsHandler(settler, a.Log)
	consumer, err := kafkaConsumerAdapter.NewConsumer(cfg, handler, a.Log)
	if err != nil {
		a.Log.Warn("failed to create kafka consumer", "error", err, "name", kafkaAdapter.PaymentEventsName)
		return consumers
	}
	consumers[kafkaAdapter.PaymentEventsName] = consumer

	return consumers
}

// initHTTP инициализирует HTTP сервер и контроллеры
func (a *App) initHTTP(
	uc *useCases,
	alerterSvc service.IAlerterService,
	pingers map[string]healthcheckController.Pinger,
) *http.Server {
	controllers := []server.Controller{
		healthcheckController.New(pingers, a.Log),
		astrologyController.New(uc.Astro, uc.Auth, a.Log),
		tarotController.New(uc.Tarot, uc.Auth, a.Log),
		authController.New(uc.Auth, a.Log),
		cabinetController.New(uc.Cabinet, uc.Auth, a.Log),
		checkoutController.New(uc.Payment, uc.Auth, a.Log),
	}

	if a.Cfg.AlertWebhookToken != "" {
		controllers = append(controllers, alerterController.New(alerterSvc, a.Cfg.AlertWebhookToken, a.Log))
	}

	return server.NewHTTPServer(a.Cfg.Server, a.Log, controllers...)
}

// initJobScheduler инициализирует планировщик джоб
func (a *App) initJobScheduler(alerterSvc service.IAlerterService, uc *useCases) *jobScheduler.Scheduler {
	scheduler := jobScheduler.NewScheduler(a.Log, alerterSvc)

	scheduler.Register(jobScheduler.NewPositionsUpdater(uc.Astro, a.Log))
	a.Log.Info("positions updater job registered")

	scheduler.Register(jobScheduler.NewPaymentSettler(uc.Payment, a.Cfg.Payment.SettleInterval, a.Log))
	a.Log.Info("payment settler job registered", "interval", a.Cfg.Payment.SettleInterval)

	return scheduler
}

func producerOrNil(producers map[string]*kafkaAdapter.Producer, name string) kafkaPorts.IKafkaProducer {
	if producer, ok := producers[name]; ok {
		return producer
	}
	return nil
}

func randomSecret() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate auth secret: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
