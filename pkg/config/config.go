package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	EnvPrefix = "FIELDSERVE"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	EnvDBDSN  = "FIELDSERVE_DB_DSN"
	EnvDBHost = "FIELDSERVE_DB_HOST"
	EnvDBUser = "FIELDSERVE_DB_USER"
	EnvDBName = "FIELDSERVE_DB_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}

type Config struct {
	App           AppConfig
	DB            DBConfig
	Redis         RedisConfig
	JWT           JWTConfig
	Password      PasswordConfig
	AuthRateLimit AuthRateLimitConfig
	Media         MediaConfig
	QR            QRConfig
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
	Env          string `envconfig:"FIELDSERVE_APP_ENV" required:"true"`
	Port         string `envconfig:"FIELDSERVE_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"FIELDSERVE_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"FIELDSERVE_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"FIELDSERVE_DB_DSN"`
	Driver string `envconfig:"FIELDSERVE_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"FIELDSERVE_DB_HOST"`
	LegacyPort     int    `envconfig:"FIELDSERVE_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"FIELDSERVE_DB_USER"`
	LegacyPassword string `envconfig:"FIELDSERVE_DB_PASSWORD"`
	LegacyName     string `envconfig:"FIELDSERVE_DB_NAME"`
	LegacySSLMode  string `envconfig:"FIELDSERVE_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"FIELDSERVE_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"FIELDSERVE_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"FIELDSERVE_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"FIELDSERVE_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"FIELDSERVE_REDIS_URL"`
	Address      string        `envconfig:"FIELDSERVE_REDIS_ADDR"`
	Password     string        `envconfig:"FIELDSERVE_REDIS_PASSWORD"`
	DB           int           `envconfig:"FIELDSERVE_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"FIELDSERVE_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"FIELDSERVE_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"FIELDSERVE_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"FIELDSERVE_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"FIELDSERVE_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret            string `envconfig:"FIELDSERVE_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"FIELDSERVE_JWT_ISSUER" required:"true"`
	ExpirationMinutes int    `envconfig:"FIELDSERVE_JWT_EXPIRATION_MINUTES" default:"1440"`
}

// TokenTTL returns the access token lifetime configured in minutes.
func (j JWTConfig) TokenTTL() time.Duration {
	if j.ExpirationMinutes <= 0 {
		return 0
	}
	return time.Duration(j.ExpirationMinutes) * time.Minute
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"FIELDSERVE_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"FIELDSERVE_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"FIELDSERVE_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"FIELDSERVE_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"FIELDSERVE_ARGON_KEY_LEN" default:"32"`
}

type AuthRateLimitConfig struct {
	LoginWindow        time.Duration `envconfig:"FIELDSERVE_AUTH_RATE_LIMIT_LOGIN_WINDOW" default:"1m"`
	LoginUsernameLimit int           `envconfig:"FIELDSERVE_AUTH_RATE_LIMIT_LOGIN_USERNAME_LIMIT" default:"5"`
	LoginIPLimit       int           `envconfig:"FIELDSERVE_AUTH_RATE_LIMIT_LOGIN_IP_LIMIT" default:"20"`
}

type MediaConfig struct {
	UploadDir     string `envconfig:"FIELDSERVE_UPLOAD_DIR" default:"./uploads"`
	PublicPath    string `envconfig:"FIELDSERVE_UPLOAD_PUBLIC_PATH" default:"/uploads"`
	MaxUploadMB   int    `envconfig:"FIELDSERVE_MAX_UPLOAD_MB" default:"10"`
	MaxUploadFile int    `envconfig:"FIELDSERVE_MAX_UPLOAD_FILES" default:"10"`
}

// MaxUploadBytes returns the per-file upload cap in bytes.
func (m MediaConfig) MaxUploadBytes() int64 {
	if m.MaxUploadMB <= 0 {
		return 0
	}
	return int64(m.MaxUploadMB) * 1024 * 1024
}

// MaxRequestBytes caps a whole upload request body: every file at the
// per-file limit, plus slack for the multipart framing.
func (m MediaConfig) MaxRequestBytes() int64 {
	perFile := m.MaxUploadBytes()
	if perFile <= 0 || m.MaxUploadFile <= 0 {
		return 0
	}
	return perFile*int64(m.MaxUploadFile) + 1<<20
}

type QRConfig struct {
	ReviewURL string `envconfig:"FIELDSERVE_GOOGLE_REVIEW_URL" default:"https://search.google.com/local/writereview?placeid=ChIJ4zh65TDHwoARD9qv25utrnk"`
	ImageSize int    `envconfig:"FIELDSERVE_QR_IMAGE_SIZE" default:"256"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"FIELDSERVE_AUTO_MIGRATE" default:"false"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	missing := []string{}
	legacyValues := map[string]string{
		EnvDBHost: db.LegacyHost,
		EnvDBUser: db.LegacyUser,
		EnvDBName: db.LegacyName,
	}
	for _, env := range legacyDBEnvVars {
		if legacyValues[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.LegacyUser)
	if db.LegacyPassword != "" {
		userInfo = url.UserPassword(db.LegacyUser, db.LegacyPassword)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.LegacyHost, db.LegacyPort),
		Path:   db.LegacyName,
	}

	if db.LegacySSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.LegacySSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
