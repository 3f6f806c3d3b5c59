package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App          AppConfig
	DB           DBConfig
	Redis        RedisConfig
	Calculator   CalculatorConfig
	Autosave     AutosaveConfig
	FeatureFlags FeatureFlagsConfig
	CORS         CORSConfig
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
	Env          string `envconfig:"TARIFFSHERIFF_APP_ENV" required:"true"`
	Port         string `envconfig:"TARIFFSHERIFF_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"TARIFFSHERIFF_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"TARIFFSHERIFF_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"TARIFFSHERIFF_DB_DSN"`
	Driver string `envconfig:"TARIFFSHERIFF_DB_DRIVER" default:"postgres"`

	Host     string `envconfig:"TARIFFSHERIFF_DB_HOST"`
	Port     int    `envconfig:"TARIFFSHERIFF_DB_PORT" default:"5432"`
	User     string `envconfig:"TARIFFSHERIFF_DB_USER"`
	Password string `envconfig:"TARIFFSHERIFF_DB_PASSWORD"`
	Name     string `envconfig:"TARIFFSHERIFF_DB_NAME"`
	SSLMode  string `envconfig:"TARIFFSHERIFF_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"TARIFFSHERIFF_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"TARIFFSHERIFF_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"TARIFFSHERIFF_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"TARIFFSHERIFF_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"TARIFFSHERIFF_REDIS_URL" required:"true"`
	Address      string        `envconfig:"TARIFFSHERIFF_REDIS_ADDR"`
	Password     string        `envconfig:"TARIFFSHERIFF_REDIS_PASSWORD"`
	DB           int           `envconfig:"TARIFFSHERIFF_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"TARIFFSHERIFF_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"TARIFFSHERIFF_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"TARIFFSHERIFF_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"TARIFFSHERIFF_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"TARIFFSHERIFF_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// CalculatorConfig carries the cost pipeline constants and warning thresholds.
// Rates are fractions of dutiable value, fixed amounts are in the calculation
// currency.
type CalculatorConfig struct {
	VATRate            float64 `envconfig:"TARIFFSHERIFF_CALC_VAT_RATE" default:"0.20"`
	ProcessingFeeRate  float64 `envconfig:"TARIFFSHERIFF_CALC_PROCESSING_FEE_RATE" default:"0.005"`
	ProcessingFeeCap   float64 `envconfig:"TARIFFSHERIFF_CALC_PROCESSING_FEE_CAP" default:"500"`
	InspectionFee      float64 `envconfig:"TARIFFSHERIFF_CALC_INSPECTION_FEE" default:"75"`
	HeavyWeightKg      float64 `envconfig:"TARIFFSHERIFF_CALC_HEAVY_WEIGHT_KG" default:"1000"`
	HighValueThreshold float64 `envconfig:"TARIFFSHERIFF_CALC_HIGH_VALUE_THRESHOLD" default:"100000"`
	HistoryLimit       int     `envconfig:"TARIFFSHERIFF_CALC_HISTORY_LIMIT" default:"10"`
}

type AutosaveConfig struct {
	Debounce time.Duration `envconfig:"TARIFFSHERIFF_AUTOSAVE_DEBOUNCE" default:"1s"`
	TTL      time.Duration `envconfig:"TARIFFSHERIFF_AUTOSAVE_TTL" default:"168h"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"TARIFFSHERIFF_AUTO_MIGRATE" default:"false"`
}

type CORSConfig struct {
	AllowedOrigins []string `envconfig:"TARIFFSHERIFF_CORS_ALLOWED_ORIGINS"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}
	if db.Host == "" || db.User == "" || db.Name == "" {
		return fmt.Errorf("either TARIFFSHERIFF_DB_DSN or host/user/name settings are required")
	}
	dsn := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(db.User, db.Password),
		Host:   fmt.Sprintf("%s:%d", db.Host, db.Port),
		Path:   "/" + db.Name,
	}
	query := dsn.Query()
	query.Set("sslmode", db.SSLMode)
	dsn.RawQuery = query.Encode()
	db.DSN = dsn.String()
	return nil
}
