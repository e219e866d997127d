package app

import (
	"fmt"
	"time"

	server "github.com/ArtemSukhotko/ai-astro-tarot/internal/adapters/primary/http"
	alerterAdapter "github.com/ArtemSukhotko/ai-astro-tarot/internal/adapters/secondary/alerter"
	ephemerisAdapter "github.com/ArtemSukhotko/ai-astro-tarot/internal/adapters/secondary/ephemeris"
	kafkaAdapter "github.com/ArtemSukhotko/ai-astro-tarot/internal/adapters/secondary/kafka"
	"github.com/ArtemSukhotko/ai-astro-tarot/internal/adapters/secondary/storage/pg"
	redisAdapter "github.com/ArtemSukhotko/ai-astro-tarot/internal/adapters/secondary/storage/redis"
	s3Adapter "github.com/ArtemSukhotko/ai-astro-tarot/internal/adapters/secondary/storage/s3"
	"github.com/ArtemSukhotko/ai-astro-tarot/internal/pkg/logger"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix префикс переменных окружения: ASTRO_SITE_POSTGRES_HOST, ASTRO_SITE_AUTH_SECRET, ...
const EnvPrefix = "ASTRO_SITE"

type Config struct {
	Postgres *pg.Config                `envconfig:"POSTGRES"`
	Redis    *redisAdapter.Config      `envconfig:"REDIS"`
	S3       *s3Adapter.Config         `envconfig:"S3"`
	Log      *logger.Config            `envconfig:"LOG"`
	Server   *server.Config            `envconfig:"APISERVER"`
	Kafka    kafkaAdapter.KafkaConfigs `envconfig:"KAFKA"`
	Alerter  *alerterAdapter.Config    `envconfig:"ALERTER"`
	Astro    AstroConfig               `envconfig:"ASTRO"`
	Auth     AuthConfig                `envconfig:"AUTH"`
	Tarot    TarotConfig               `envconfig:"TAROT"`
	Payment  PaymentConfig             `envconfig:"PAYMENT"`
	Cabinet  CabinetConfig             `envconfig:"CABINET"`
	// AlertWebhookToken включает POST /webhooks/alert
	AlertWebhookToken string `envconfig:"ALERT_WEBHOOK_TOKEN"`
	// SeedDemo создаёт демо-пользователей и их прогнозы при старте
	SeedDemo bool `envconfig:"SEED_DEMO" default:"true"`
}

// AstroConfig расчёт натальных карт
type AstroConfig struct {
	AspectMode      string                  `envconfig:"ASPECT_MODE" default:"ecliptic"` // ecliptic | legacy
	EphemerisSource string                  `envconfig:"EPHEMERIS_SOURCE"`
	AIModel         string                  `envconfig:"AI_MODEL"`
	SnapshotTTL     time.Duration           `envconfig:"SNAPSHOT_TTL" default:"24h"`
	PreviewPrice    int64                   `envconfig:"PREVIEW_PRICE" default:"299"`
	Ephemeris       ephemerisAdapter.Config `envconfig:"EPHEMERIS"`
}

// AuthConfig сессии. Пустой SECRET заменяется случайным при старте
type AuthConfig struct {
	Secret       string        `envconfig:"SECRET"`
	Issuer       string        `envconfig:"ISSUER" default:"ai-astro-tarot"`
	TokenTTL     time.Duration `envconfig:"TOKEN_TTL" default:"168h"`
	Delay        time.Duration `envconfig:"DELAY" default:"1.5s"`
	DemoPassword string        `envconfig:"DEMO_PASSWORD" default:"demo123"`
}

// TarotConfig симулятор раскладов
type TarotConfig struct {
	ShuffleDelay time.Duration `envconfig:"SHUFFLE_DELAY" default:"2s"`
	SessionTTL   time.Duration `envconfig:"SESSION_TTL" default:"24h"`
}

// PaymentConfig мок-оплата
type PaymentConfig struct {
	ProcessingDelay time.Duration `envconfig:"PROCESSING_DELAY" default:"3s"`
	SettleInterval  time.Duration `envconfig:"SETTLE_INTERVAL" default:"1s"`
	BatchSize       int           `envconfig:"BATCH_SIZE" default:"100"`
}

// CabinetConfig личный кабинет
type CabinetConfig struct {
	ReportURLTTL time.Duration `envconfig:"REPORT_URL_TTL" default:"15m"`
}

func NewEnvConfig(envPrefix string) (*Config, error) {
	cfg := &Config{}

	_ = godotenv.Load("deployments/local/.env")

	if err := envconfig.Process(envPrefix, cfg); err != nil {
		return nil, err
	}

	// Загружаем Kafka конфигурацию вручную
	if err := cfg.Kafka.Load(envPrefix); err != nil {
		return nil, fmt.Errorf("failed to load kafka config: %w", err)
	}

	return cfg, nil
}
