package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	EnvPrefix = ""

	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

type Config struct {
	App           AppConfig
	DB            DBConfig
	Redis         RedisConfig
	JWT           JWTConfig
	Password      PasswordConfig
	AuthRateLimit AuthRateLimitConfig
	CORS          CORSConfig
	FeatureFlags  FeatureFlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"LUBEDASH_APP_ENV" required:"true"`
	Port         string `envconfig:"LUBEDASH_APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"LUBEDASH_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"LUBEDASH_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"LUBEDASH_DB_DSN"`
	Driver string `envconfig:"LUBEDASH_DB_DRIVER" default:"postgres"`

	Host     string `envconfig:"LUBEDASH_DB_HOST"`
	Port     int    `envconfig:"LUBEDASH_DB_PORT" default:"5432"`
	User     string `envconfig:"LUBEDASH_DB_USER"`
	Password string `envconfig:"LUBEDASH_DB_PASSWORD"`
	Name     string `envconfig:"LUBEDASH_DB_NAME"`
	SSLMode  string `envconfig:"LUBEDASH_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"LUBEDASH_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"LUBEDASH_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"LUBEDASH_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"LUBEDASH_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"LUBEDASH_REDIS_URL"`
	Address      string        `envconfig:"LUBEDASH_REDIS_ADDR"`
	Password     string        `envconfig:"LUBEDASH_REDIS_PASSWORD"`
	DB           int           `envconfig:"LUBEDASH_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"LUBEDASH_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"LUBEDASH_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"LUBEDASH_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"LUBEDASH_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"LUBEDASH_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret                 string `envconfig:"LUBEDASH_JWT_SECRET" required:"true"`
	Issuer                 string `envconfig:"LUBEDASH_JWT_ISSUER" default:"lubedash"`
	ExpirationMinutes      int    `envconfig:"LUBEDASH_JWT_EXPIRATION_MINUTES" default:"30"`
	RefreshTokenTTLMinutes int    `envconfig:"LUBEDASH_REFRESH_TOKEN_TTL_MINUTES" default:"43200"`
}

// RefreshTokenTTL returns the refresh token TTL configured in minutes.
func (j JWTConfig) RefreshTokenTTL() time.Duration {
	if j.RefreshTokenTTLMinutes <= 0 {
		return 0
	}
	return time.Duration(j.RefreshTokenTTLMinutes) * time.Minute
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"LUBEDASH_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"LUBEDASH_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"LUBEDASH_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"LUBEDASH_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"LUBEDASH_ARGON_KEY_LEN" default:"32"`
}

type AuthRateLimitConfig struct {
	LoginWindow     time.Duration `envconfig:"LUBEDASH_AUTH_RATE_LIMIT_LOGIN_WINDOW" default:"1m"`
	LoginEmailLimit int           `envconfig:"LUBEDASH_AUTH_RATE_LIMIT_LOGIN_EMAIL_LIMIT" default:"5"`
	LoginIPLimit    int           `envconfig:"LUBEDASH_AUTH_RATE_LIMIT_LOGIN_IP_LIMIT" default:"20"`
}

type CORSConfig struct {
	AllowedOrigins []string `envconfig:"LUBEDASH_CORS_ALLOWED_ORIGINS" default:"http://localhost:3000"`
}

type FeatureFlagsConfig struct {
	UseSQLite   bool `envconfig:"LUBEDASH_USE_SQLITE" default:"false"`
	AutoMigrate bool `envconfig:"LUBEDASH_AUTO_MIGRATE" default:"false"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	missing := []string{}
	for _, pair := range []struct{ env, value string }{
		{"LUBEDASH_DB_HOST", db.Host},
		{"LUBEDASH_DB_USER", db.User},
		{"LUBEDASH_DB_NAME", db.Name},
	} {
		if pair.value == "" {
			missing = append(missing, pair.env)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("either LUBEDASH_DB_DSN or %s are required", strings.Join(missing, ", "))
	}

	userInfo := url.User(db.User)
	if db.Password != "" {
		userInfo = url.UserPassword(db.User, db.Password)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.Host, db.Port),
		Path:   db.Name,
	}

	if db.SSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.SSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
