package app

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/yungbote/brandcraft-backend/internal/data/db"
	"github.com/yungbote/brandcraft-backend/internal/observability"
	"github.com/yungbote/brandcraft-backend/internal/platform/gcp"
	"github.com/yungbote/brandcraft-backend/internal/platform/openai"
)

type Config struct {
	Port    string `env:"PORT" envDefault:"8080"`
	LogMode string `env:"LOG_MODE" envDefault:"development"`

	DBDriver         string `env:"DB_DRIVER" envDefault:"postgres"`
	PostgresHost     string `env:"POSTGRES_HOST" envDefault:"localhost"`
	PostgresPort     string `env:"POSTGRES_PORT" envDefault:"5432"`
	PostgresUser     string `env:"POSTGRES_USER" envDefault:"postgres"`
	PostgresPassword string `env:"POSTGRES_PASSWORD"`
	PostgresName     string `env:"POSTGRES_NAME" envDefault:"brandcraft"`
	PostgresSSLMode  string `env:"POSTGRES_SSLMODE" envDefault:"disable"`
	SQLitePath       string `env:"SQLITE_PATH" envDefault:"brandcraft.db"`

	JWTSecretKey    string        `env:"JWT_SECRET_KEY" envDefault:"defaultsecret"`
	AccessTokenTTL  time.Duration `env:"ACCESS_TOKEN_TTL" envDefault:"1h"`
	RefreshTokenTTL time.Duration `env:"REFRESH_TOKEN_TTL" envDefault:"24h"`

	AllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:","`

	RedisAddr     string `env:"REDIS_ADDR"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`
	RedisChannel  string `env:"REDIS_CHANNEL" envDefault:"sse"`

	OpenAIAPIKey     string        `env:"OPENAI_API_KEY"`
	OpenAIBaseURL    string        `env:"OPENAI_BASE_URL"`
	OpenAIModel      string        `env:"OPENAI_MODEL" envDefault:"gpt-4o-mini"`
	OpenAITimeout    time.Duration `env:"OPENAI_TIMEOUT" envDefault:"120s"`
	OpenAIMaxRetries int           `env:"OPENAI_MAX_RETRIES" envDefault:"3"`

	SlideDelay        time.Duration `env:"CAROUSEL_SLIDE_DELAY" envDefault:"500ms"`
	RenderConcurrency int64         `env:"CAROUSEL_RENDER_CONCURRENCY" envDefault:"4"`
	FontPath          string        `env:"CAROUSEL_FONT_PATH"`
	PalettePath       string        `env:"CAROUSEL_PALETTE_PATH"`
	CarouselIdleTTL   time.Duration `env:"CAROUSEL_IDLE_TTL" envDefault:"30m"`
	CarouselMaxActive int           `env:"CAROUSEL_MAX_ACTIVE" envDefault:"1024"`

	StorageMode         string `env:"STORAGE_MODE" envDefault:"local"`
	AvatarBucket        string `env:"AVATAR_GCS_BUCKET_NAME"`
	CDNDomain           string `env:"AVATAR_CDN_DOMAIN"`
	StorageEmulatorHost string `env:"STORAGE_EMULATOR_HOST"`
	LocalMediaDir       string `env:"LOCAL_MEDIA_DIR" envDefault:"./media"`
	PublicBaseURL       string `env:"PUBLIC_BASE_URL" envDefault:"http://localhost:8080"`
	GCPCredentials      string `env:"GCP_CREDENTIALS"`

	MetricsEnabled  bool    `env:"METRICS_ENABLED" envDefault:"true"`
	OtelEnabled     bool    `env:"OTEL_ENABLED" envDefault:"false"`
	OtelServiceName string  `env:"OTEL_SERVICE_NAME" envDefault:"brandcraft"`
	OtelEnvironment string  `env:"OTEL_ENVIRONMENT" envDefault:"development"`
	OtelVersion     string  `env:"OTEL_SERVICE_VERSION"`
	OtelSampleRatio float64 `env:"OTEL_SAMPLE_RATIO" envDefault:"1"`
	OtelEndpoint    string  `env:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	OtelHeaders     string  `env:"OTEL_EXPORTER_OTLP_HEADERS"`
	OtelInsecure    bool    `env:"OTEL_EXPORTER_OTLP_INSECURE" envDefault:"false"`
}

// LoadConfig reads .env files when present, then the process environment.
// Variables already set in the environment win over .env values.
func LoadConfig(envFiles ...string) (Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", f, err)
		}
	}
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

func (c Config) Addr() string {
	port := strings.TrimPrefix(strings.TrimSpace(c.Port), ":")
	return ":" + port
}

func (c Config) DB() db.Config {
	return db.Config{
		Driver:     c.DBDriver,
		Host:       c.PostgresHost,
		Port:       c.PostgresPort,
		User:       c.PostgresUser,
		Password:   c.PostgresPassword,
		Name:       c.PostgresName,
		SSLMode:    c.PostgresSSLMode,
		SQLitePath: c.SQLitePath,
	}
}

func (c Config) OpenAI() openai.Config {
	return openai.Config{
		APIKey:     c.OpenAIAPIKey,
		BaseURL:    c.OpenAIBaseURL,
		Model:      c.OpenAIModel,
		Timeout:    c.OpenAITimeout,
		MaxRetries: c.OpenAIMaxRetries,
	}
}

func (c Config) ObjectStorage() (gcp.ObjectStorageConfig, error) {
	mode, err := gcp.ParseObjectStorageMode(c.StorageMode)
	if err != nil {
		return gcp.ObjectStorageConfig{}, err
	}
	return gcp.ObjectStorageConfig{
		Mode:          mode,
		AvatarBucket:  strings.TrimSpace(c.AvatarBucket),
		CDNDomain:     c.CDNDomain,
		EmulatorHost:  c.StorageEmulatorHost,
		LocalDir:      c.LocalMediaDir,
		PublicBaseURL: c.PublicBaseURL,
		Credentials:   c.GCPCredentials,
	}, nil
}

func (c Config) Otel() observability.OtelConfig {
	return observability.OtelConfig{
		Enabled:     c.OtelEnabled,
		ServiceName: c.OtelServiceName,
		Environment: c.OtelEnvironment,
		Version:     c.OtelVersion,
		SampleRatio: c.OtelSampleRatio,
		Endpoint:    c.OtelEndpoint,
		Headers:     c.OtelHeaders,
		Insecure:    c.OtelInsecure,
	}
}
