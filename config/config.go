package config

import (
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type Config struct {
	App struct {
		Env        string
		Port       string
		LogLevel   string
		CORSOrigin string
	}
	DB struct {
		URL      string
		Host     string
		Port     string
		User     string
		Password string
		Name     string
		SSLMode  string
	}
	JWT struct {
		AccessTokenSecret        string
		AccessTokenExpiryMinutes int
	}
	AMQP struct {
		URL      string
		Exchange string
	}
}

// Global DB instance, accessible after ConnectDB() is called via Initialize.
var DB *gorm.DB

var appConfig *Config
var once sync.Once

const defaultJWTSecret = "your-very-strong-access-secret"

func newViper() *viper.Viper {
	// .env is optional; real environment variables always win.
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found or error loading, relying on system environment variables.")
	}

	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("APP_ENV", "development")
	v.SetDefault("PORT", "8088")
	v.SetDefault("LOG_LEVEL", "")
	v.SetDefault("CORS_ORIGIN", "*")

	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "password")
	v.SetDefault("DB_NAME", "scorebook")
	v.SetDefault("DB_SSLMODE", "disable")

	v.SetDefault("JWT_ACCESS_TOKEN_SECRET", defaultJWTSecret)
	v.SetDefault("JWT_ACCESS_TOKEN_EXPIRY_MINUTES", 60)

	v.SetDefault("AMQP_EXCHANGE", "scorebook.live")
	return v
}

// LoadConfig reads configuration from a .env file (if present) and then from
// environment variables.
func LoadConfig() (*Config, error) {
	v := newViper()
	cfg := &Config{}

	cfg.App.Env = v.GetString("APP_ENV")
	cfg.App.Port = v.GetString("PORT")
	cfg.App.LogLevel = v.GetString("LOG_LEVEL")
	cfg.App.CORSOrigin = v.GetString("CORS_ORIGIN")

	cfg.DB.URL = v.GetString("DATABASE_URL")
	cfg.DB.Host = v.GetString("DB_HOST")
	cfg.DB.Port = v.GetString("DB_PORT")
	cfg.DB.User = v.GetString("DB_USER")
	cfg.DB.Password = v.GetString("DB_PASSWORD")
	cfg.DB.Name = v.GetString("DB_NAME")
	cfg.DB.SSLMode = v.GetString("DB_SSLMODE")

	cfg.JWT.AccessTokenSecret = v.GetString("JWT_ACCESS_TOKEN_SECRET")
	cfg.JWT.AccessTokenExpiryMinutes = v.GetInt("JWT_ACCESS_TOKEN_EXPIRY_MINUTES")

	cfg.AMQP.URL = v.GetString("AMQP_URL")
	cfg.AMQP.Exchange = v.GetString("AMQP_EXCHANGE")

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	appConfig = cfg
	return cfg, nil
}

func (c *Config) validate() error {
	if c.JWT.AccessTokenExpiryMinutes <= 0 {
		return fmt.Errorf("invalid JWT_ACCESS_TOKEN_EXPIRY_MINUTES: %d", c.JWT.AccessTokenExpiryMinutes)
	}
	if c.JWT.AccessTokenSecret == defaultJWTSecret {
		if c.IsProduction() {
			return errors.New("JWT_ACCESS_TOKEN_SECRET must be set in production")
		}
		log.Println("WARNING: Using default JWT secret. Set JWT_ACCESS_TOKEN_SECRET for production.")
	}
	if c.DB.URL == "" && c.DB.Password == "password" && c.IsProduction() {
		log.Println("WARNING: Using default DB password in production. Please set DB_PASSWORD environment variable.")
	}
	return nil
}

// IsProduction reports whether APP_ENV is "production".
func (c *Config) IsProduction() bool {
	return c.App.Env == "production"
}

// PostgresDSN returns the connection string. DATABASE_URL takes precedence
// over the individual DB_* fields.
func (c *Config) PostgresDSN() string {
	if c.DB.URL != "" {
		return c.DB.URL
	}
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=UTC",
		c.DB.Host,
		c.DB.User,
		c.DB.Password,
		c.DB.Name,
		c.DB.Port,
		c.DB.SSLMode,
	)
}

// GormConfig logs SQL in development and stays silent otherwise.
func (c *Config) GormConfig() *gorm.Config {
	gormConfig := &gorm.Config{}
	if c.App.Env == "development" {
		gormConfig.Logger = logger.Default.LogMode(logger.Info)
	} else {
		gormConfig.Logger = logger.Default.LogMode(logger.Silent)
	}
	return gormConfig
}

// ConnectDB opens the postgres connection and sets the global DB variable.
func ConnectDB(cfg Config) (*gorm.DB, error) {
	gormDB, err := gorm.Open(postgres.Open(cfg.PostgresDSN()), cfg.GormConfig())
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	DB = gormDB
	return gormDB, nil
}

// Initialize loads all configurations and connects to the database.
// This should be called once at the start of a command.
func Initialize() error {
	var loadErr error
	once.Do(func() {
		loadedCfg, err := LoadConfig()
		if err != nil {
			loadErr = fmt.Errorf("failed to load configuration: %w", err)
			return
		}

		if _, err = ConnectDB(*loadedCfg); err != nil {
			loadErr = fmt.Errorf("failed to connect to database during initialization: %w", err)
			return
		}
	})
	return loadErr
}

// GetConfig returns the loaded application configuration.
// It exits if the configuration has not been loaded yet.
func GetConfig() *Config {
	if appConfig == nil {
		log.Fatal("Configuration not loaded. Call config.Initialize() first.")
	}
	return appConfig
}
