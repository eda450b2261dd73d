package config

import (
	"log"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	Env        string `env:"ENV" env-required:"true"`
	LogLevel   string `env:"LOG_LEVEL" env-default:"info" env-description:"logging level, debug, info, etc."`
	HttpServer HttpServer
	Database   Database
	Cache      Cache
	Store      Store
	Limiter    Limiter
	OSS        OSS
}

type HttpServer struct {
	Port           string        `env:"HTTP_PORT" env-default:"8080"`
	Timeout        time.Duration `env:"HTTP_TIMEOUT" env-default:"4s"`
	IdleTimeout    time.Duration `env:"HTTP_IDLE_TIMEOUT" env-default:"60s"`
	SwaggerEnabled bool          `env:"HTTP_SWAGGER_ENABLED" env-default:"false"`
}

type Database struct {
	Net                string        `env:"DB_NET" env-default:"tcp"`
	Server             string        `env:"DB_SERVER" env-default:""`
	DBName             string        `env:"DB_NAME" env-default:"travel"`
	User               string        `env:"DB_USER" env-default:""`
	Password           string        `env:"DB_PASSWORD" env-default:""`
	TimeZone           string        `env:"DB_TIMEZONE"`
	Timeout            time.Duration `env:"DB_TIMEOUT" env-default:"2s"`
	MaxIdleConnections int           `env:"DB_MAX_IDLE_CONNECTIONS" env-default:"40"`
	MaxOpenConnections int           `env:"DB_MAX_OPEN_CONNECTIONS" env-default:"40"`
}

type Cache struct {
	Address  string `env:"REDIS_ADDR" env-required:"true" env-description:"redis host:port"`
	Password string `env:"REDIS_PASSWORD" env-default:"" env-description:"redis password if exists"`
	PoolSize int    `env:"REDIS_POOL_SIZE" env-default:"70" env-description:"max tcp connections pool size"`
}

// Store controls the tour record store facade. The remote MySQL backend is
// used per call only when RemoteEnabled is set and the database connected;
// every record list otherwise lives in redis under LocalKey as one blob.
type Store struct {
	RemoteEnabled  bool   `env:"STORE_REMOTE_ENABLED" env-default:"true"`
	LocalKey       string `env:"STORE_LOCAL_KEY" env-default:"travel_tours_data"`
	LegacyLocalKey string `env:"STORE_LEGACY_LOCAL_KEY" env-default:"tours"`
	ImageCacheKey  string `env:"STORE_IMAGE_CACHE_KEY" env-default:"imageStorage"`
}

type Limiter struct {
	RPS   int           `env:"LIMITER_RPS" env-default:"10"`
	Burst int           `env:"LIMITER_BURST" env-default:"20"`
	TTL   time.Duration `env:"LIMITER_TTL" env-default:"10m"`
}

type OSS struct {
	Endpoint        string `env:"OSS_ENDPOINT" env-default:""`
	AccessKeyID     string `env:"OSS_ACCESS_KEY_ID" env-default:""`
	AccessKeySecret string `env:"OSS_ACCESS_KEY_SECRET" env-default:""`
	Bucket          string `env:"OSS_BUCKET" env-default:""`
	PublicBaseURL   string `env:"OSS_PUBLIC_BASE_URL" env-default:"" env-description:"override for the public object URL prefix, e.g. a CDN domain"`
	Prefix          string `env:"OSS_PREFIX" env-default:"uploads/"`
	MaxUploadSize   int64  `env:"OSS_MAX_UPLOAD_SIZE" env-default:"5242880"`
}

// Configured reports whether the object storage credentials are present.
func (o OSS) Configured() bool {
	return o.Endpoint != "" && o.AccessKeyID != "" && o.AccessKeySecret != "" && o.Bucket != ""
}

func MustLoad() *Config {
	var cfg Config

	if err := cleanenv.ReadEnv(&cfg); err != nil {
		log.Fatalf("cannot read config from environment: %s", err)
	}

	return &cfg
}
