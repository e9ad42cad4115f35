package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// -----------------------------------------------------------------------------
// Environment variable configuration guidelines:
// - required: Values that differ between environments (port, secrets, etc.)
// - default: Values common across all environments (timezone, TTLs, etc.)
// -----------------------------------------------------------------------------

type Config struct {
	Server    ServerConfig
	Store     StoreConfig
	DB        DBConfig
	Redis     RedisConfig
	CORS      CORSConfig
	Log       LogConfig
	JWT       JWTConfig
	Cookie    CookieConfig
	Queue     QueueConfig
	Flow      FlowConfig
	RateLimit RateLimitConfig
}

type ServerConfig struct {
	Port string `envconfig:"PORT" required:"true"`
}

const (
	StoreDriverMemory   = "memory"
	StoreDriverPostgres = "postgres"
)

type StoreConfig struct {
	Driver string `envconfig:"STORE_DRIVER" default:"postgres"`
}

type DBConfig struct {
	Host     string `envconfig:"DB_HOST" default:"localhost"`
	Port     string `envconfig:"DB_PORT" default:"5432"`
	User     string `envconfig:"DB_USER"`
	Password string `envconfig:"DB_PASSWORD"`
	DBName   string `envconfig:"DB_NAME"`
	SSLMode  string `envconfig:"DB_SSL_MODE" default:"disable"`
	TimeZone string `envconfig:"DB_TIMEZONE" default:"Africa/Johannesburg"`
	MaxConns int32  `envconfig:"DB_MAX_CONNS" default:"20"`
}

// Empty Addr disables Redis: bucket cache falls back to memory and outbound
// messages go to the log sink.
type RedisConfig struct {
	Addr            string `envconfig:"REDIS_ADDR"`
	Password        string `envconfig:"REDIS_PASSWORD"`
	DB              int    `envconfig:"REDIS_DB" default:"0"`
	OutboundChannel string `envconfig:"REDIS_OUTBOUND_CHANNEL" default:"concierge:outbound"`
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
	Level          string `envconfig:"LOG_LEVEL" default:"info"`
	TimeZone       string `envconfig:"LOG_TIMEZONE" default:"Africa/Johannesburg"`
	TimeFormat     string `envconfig:"LOG_TIME_FORMAT" default:"2006-01-02 15:04:05.000"`
	TimeZoneOffset int    `envconfig:"LOG_TIMEZONE_OFFSET" default:"7200"` // 2*60*60
}

type JWTConfig struct {
	Secret   string `envconfig:"JWT_SECRET" required:"true"`
	Duration string `envconfig:"JWT_DURATION" default:"12h"`
}

type CookieConfig struct {
	Domain   string `envconfig:"COOKIE_DOMAIN"`
	Secure   bool   `envconfig:"COOKIE_SECURE" default:"true"`
	SameSite string `envconfig:"COOKIE_SAME_SITE" default:"Lax"`
}

type QueueConfig struct {
	// Restaurant-local timezone; decides "today" and the peak-hour multiplier.
	TimeZone string        `envconfig:"QUEUE_TIMEZONE" default:"Africa/Johannesburg"`
	CacheTTL time.Duration `envconfig:"QUEUE_CACHE_TTL" default:"30s"`
}

type FlowConfig struct {
	StateTTL      time.Duration `envconfig:"FLOW_STATE_TTL" default:"30m"`
	SweepInterval time.Duration `envconfig:"FLOW_SWEEP_INTERVAL" default:"5m"`
}

type RateLimitConfig struct {
	MessagesPerMinute int `envconfig:"RATE_LIMIT_MESSAGES_PER_MINUTE" default:"30"`
	Burst             int `envconfig:"RATE_LIMIT_BURST" default:"5"`
}

func (c *DBConfig) BuildDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s&timezone=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode, c.TimeZone,
	)
}

// Location resolves the queue timezone, falling back to UTC when the zone
// database does not know the name.
func (c QueueConfig) Location() *time.Location {
	loc, err := time.LoadLocation(c.TimeZone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func LoadConfig() (Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("failed to process env config: %w", err)
	}
	if cfg.Store.Driver != StoreDriverMemory && cfg.Store.Driver != StoreDriverPostgres {
		return Config{}, fmt.Errorf("unsupported STORE_DRIVER %q", cfg.Store.Driver)
	}
	return cfg, nil
}

func NewTestConfig() Config {
	return Config{
		Server: ServerConfig{
			Port: "8889", // Test port
		},
		Store: StoreConfig{
			Driver: StoreDriverMemory,
		},
		DB: DBConfig{
			Host:     "localhost",
			Port:     "15433", // Test DB port
			User:     "test",
			Password: "test",
			DBName:   "test_db",
			SSLMode:  "disable",
			TimeZone: "UTC",
			MaxConns: 5,
		},
		CORS: CORSConfig{
			AllowOrigins:     []string{"http://localhost:3000"},
			AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
			ExposeHeaders:    []string{"Content-Length"},
			AllowCredentials: true,
			MaxAge:           time.Hour,
		},
		Log: LogConfig{
			Level:          "error", // Error level only for tests
			TimeZone:       "UTC",
			TimeFormat:     "2006-01-02 15:04:05.000",
			TimeZoneOffset: 0,
		},
		JWT: JWTConfig{
			Secret:   "test-secret",
			Duration: "1h",
		},
		Cookie: CookieConfig{
			Secure:   false,
			SameSite: "Lax",
		},
		Queue: QueueConfig{
			TimeZone: "UTC",
			CacheTTL: 30 * time.Second,
		},
		Flow: FlowConfig{
			StateTTL:      30 * time.Minute,
			SweepInterval: time.Minute,
		},
		RateLimit: RateLimitConfig{
			MessagesPerMinute: 600,
			Burst:             50,
		},
	}
}
