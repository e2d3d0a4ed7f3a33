package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// -----------------------------------------------------------------------------
// Environment variable configuration guidelines:
// - required: Values that differ between environments (port, DB connection, etc.), security settings
// - default: Values common across all environments (timeouts, policy tables, etc.)
// -----------------------------------------------------------------------------

type Config struct {
	Server   ServerConfig
	DB       DBConfig
	CORS     CORSConfig
	Log      LogConfig
	Token    TokenConfig
	Exchange ExchangeConfig
}

type ServerConfig struct {
	Port string `envconfig:"PORT" required:"true"`
}

type DBConfig struct {
	Host     string `envconfig:"DB_HOST" default:"localhost"`
	Port     string `envconfig:"DB_PORT" default:"5432"`
	User     string `envconfig:"DB_USER" required:"true"`
	Password string `envconfig:"DB_PASSWORD" required:"true"`
	DBName   string `envconfig:"DB_NAME" required:"true"`
	SSLMode  string `envconfig:"DB_SSL_MODE" default:"disable"`
}

type CORSConfig struct {
	AllowOrigins     []string      `envconfig:"CORS_ALLOW_ORIGINS" default:"http://localhost:3000,http://localhost:8080"`
	AllowMethods     []string      `envconfig:"CORS_ALLOW_METHODS" default:"GET,POST,PUT,PATCH,DELETE,OPTIONS"`
	AllowHeaders     []string      `envconfig:"CORS_ALLOW_HEADERS" default:"Origin,Content-Type,Accept,Authorization"`
	ExposeHeaders    []string      `envconfig:"CORS_EXPOSE_HEADERS" default:"Content-Length"`
	AllowCredentials bool          `envconfig:"CORS_ALLOW_CREDENTIALS" default:"true"`
	MaxAge           time.Duration `envconfig:"CORS_MAX_AGE" default:"12h"`
}

type LogConfig struct {
	Level      string `envconfig:"LOG_LEVEL" default:"info"`
	TimeFormat string `envconfig:"LOG_TIME_FORMAT" default:"2006-01-02 15:04:05.000"`
}

// TokenConfig signs the per-party QR confirmation tokens.
type TokenConfig struct {
	Secret string        `envconfig:"TOKEN_SECRET" required:"true"`
	TTL    time.Duration `envconfig:"TOKEN_TTL" default:"72h"`
}

// ExchangeConfig is the policy table for the exchange lifecycle: the fixed
// service fee surcharge and the asymmetric point/CO2 credits applied when a
// transaction completes. Values are configuration, not hard-coded policy.
type ExchangeConfig struct {
	ServiceFeeCents int   `envconfig:"EXCHANGE_SERVICE_FEE_CENTS" default:"150"`
	SellerPoints    int64 `envconfig:"EXCHANGE_SELLER_POINTS" default:"100"`
	BuyerPoints     int64 `envconfig:"EXCHANGE_BUYER_POINTS" default:"40"`
	CO2SavedGrams   int64 `envconfig:"EXCHANGE_CO2_SAVED_GRAMS" default:"800"`
}

func (c *DBConfig) BuildDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode,
	)
}

func LoadConfig() (Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("failed to process env config: %w", err)
	}
	return cfg, nil
}

func NewTestConfig() Config {
	return Config{
		Server: ServerConfig{
			Port: "8889",
		},
		DB: DBConfig{
			Host:     "localhost",
			Port:     "15433",
			User:     "test",
			Password: "test",
			DBName:   "test_db",
			SSLMode:  "disable",
		},
		Log: LogConfig{
			Level:      "error",
			TimeFormat: "2006-01-02 15:04:05.000",
		},
		Token: TokenConfig{
			Secret: "test-secret",
			TTL:    time.Hour,
		},
		Exchange: ExchangeConfig{
			ServiceFeeCents: 150,
			SellerPoints:    100,
			BuyerPoints:     40,
			CO2SavedGrams:   800,
		},
	}
}
