// Package config carrega a configuração da aplicação a partir do .env e das variáveis de ambiente.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// ErrMissingJWTSecret indica que JWT_SECRET_KEY não foi configurada
var ErrMissingJWTSecret = errors.New("JWT_SECRET_KEY não configurada")

// Config reúne todas as seções de configuração
type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	JWT       JWTConfig
	Redis     RedisConfig
	RabbitMQ  RabbitMQConfig
	Realtime  RealtimeConfig
	RateLimit RateLimitConfig
	Log       LogConfig
}

// ServerConfig contém as configurações do servidor HTTP
type ServerConfig struct {
	Port            string
	GinMode         string
	CORSOrigins     []string
	ShutdownTimeout time.Duration
}

// DatabaseConfig contém as configurações do PostgreSQL
type DatabaseConfig struct {
	URL             string
	Host            string
	Port            int
	User            string
	Password        string
	Name            string
	SSLMode         string
	MaxConnections  int32
	MinConnections  int32
	MaxConnLifetime time.Duration
	MigrationsPath  string
}

// ConnectionURL retorna DATABASE_URL ou a URL montada a partir das partes
func (c DatabaseConfig) ConnectionURL() string {
	if c.URL != "" {
		return c.URL
	}
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.Name, c.SSLMode)
}

// JWTConfig contém as configurações dos tokens
type JWTConfig struct {
	Secret     string
	Expiration time.Duration
}

// RedisConfig contém as configurações do Redis
type RedisConfig struct {
	Enabled  bool
	Addr     string
	Password string
	DB       int
}

// RabbitMQConfig contém as configurações do RabbitMQ
type RabbitMQConfig struct {
	Enabled    bool
	Host       string
	Port       int
	Username   string
	Password   string
	VHost      string
	Exchange   string
	RetryCount int
	RetryDelay time.Duration
}

// RealtimeConfig contém as configurações do feed de alterações
type RealtimeConfig struct {
	Channel        string
	Cooldown       time.Duration
	SubscriberSize int
}

// RateLimitConfig contém as configurações do limitador das rotas de autenticação
type RateLimitConfig struct {
	Requests int64
	Window   time.Duration
}

// LogConfig contém as configurações de log
type LogConfig struct {
	Level    string
	Encoding string
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("SERVER_PORT", "8080")
	v.SetDefault("GIN_MODE", "release")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "*")
	v.SetDefault("SHUTDOWN_TIMEOUT_SECONDS", 10)

	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_NAME", "erp_estoque")
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("DB_MAX_CONNECTIONS", 10)
	v.SetDefault("DB_MIN_CONNECTIONS", 1)
	v.SetDefault("DB_MAX_LIFETIME", 3600)
	v.SetDefault("MIGRATIONS_PATH", "migrations")

	v.SetDefault("JWT_EXPIRATION_HOURS", 24)

	v.SetDefault("REDIS_ENABLED", false)
	v.SetDefault("REDIS_ADDR", "localhost:6379")
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("RABBITMQ_ENABLED", false)
	v.SetDefault("RABBITMQ_HOST", "localhost")
	v.SetDefault("RABBITMQ_PORT", 5672)
	v.SetDefault("RABBITMQ_USER", "guest")
	v.SetDefault("RABBITMQ_PASSWORD", "guest")
	v.SetDefault("RABBITMQ_VHOST", "/")
	v.SetDefault("RABBITMQ_EXCHANGE", "inventory.events")
	v.SetDefault("RABBITMQ_RETRY_COUNT", 5)
	v.SetDefault("RABBITMQ_RETRY_DELAY_SECONDS", 2)

	v.SetDefault("REALTIME_CHANNEL", "product_changes")
	v.SetDefault("ALERT_COOLDOWN_MS", 5000)
	v.SetDefault("REALTIME_BUFFER", 64)

	v.SetDefault("RATE_LIMIT_REQUESTS", 5)
	v.SetDefault("RATE_LIMIT_WINDOW_SECONDS", 60)

	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_ENCODING", "json")
}

// Load lê o arquivo .env informado (opcional) e as variáveis de ambiente, que têm precedência
func Load(envFile string) (*Config, error) {
	cfg := read(envFile)
	if cfg.JWT.Secret == "" {
		return nil, ErrMissingJWTSecret
	}
	return cfg, nil
}

// LoadDatabase lê apenas a seção do banco; usado pelo comando de migração, que não precisa do segredo JWT
func LoadDatabase(envFile string) DatabaseConfig {
	return read(envFile).Database
}

func read(envFile string) *Config {
	v := viper.New()
	setDefaults(v)

	if envFile != "" {
		v.SetConfigFile(envFile)
		v.SetConfigType("env")
		// arquivo ausente não é erro: o ambiente basta
		_ = v.ReadInConfig()
	}

	v.AutomaticEnv()
	_ = v.BindEnv("SERVER_PORT", "SERVER_PORT", "PORT")
	_ = v.BindEnv("DATABASE_URL")
	_ = v.BindEnv("JWT_SECRET_KEY")
	_ = v.BindEnv("REDIS_PASSWORD")

	cfg := &Config{
		Server: ServerConfig{
			Port:            v.GetString("SERVER_PORT"),
			GinMode:         v.GetString("GIN_MODE"),
			CORSOrigins:     splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
			ShutdownTimeout: time.Duration(v.GetInt("SHUTDOWN_TIMEOUT_SECONDS")) * time.Second,
		},
		Database: DatabaseConfig{
			URL:             v.GetString("DATABASE_URL"),
			Host:            v.GetString("DB_HOST"),
			Port:            v.GetInt("DB_PORT"),
			User:            v.GetString("DB_USER"),
			Password:        v.GetString("DB_PASSWORD"),
			Name:            v.GetString("DB_NAME"),
			SSLMode:         v.GetString("DB_SSL_MODE"),
			MaxConnections:  v.GetInt32("DB_MAX_CONNECTIONS"),
			MinConnections:  v.GetInt32("DB_MIN_CONNECTIONS"),
			MaxConnLifetime: time.Duration(v.GetInt("DB_MAX_LIFETIME")) * time.Second,
			MigrationsPath:  v.GetString("MIGRATIONS_PATH"),
		},
		JWT: JWTConfig{
			Secret:     v.GetString("JWT_SECRET_KEY"),
			Expiration: time.Duration(v.GetInt("JWT_EXPIRATION_HOURS")) * time.Hour,
		},
		Redis: RedisConfig{
			Enabled:  v.GetBool("REDIS_ENABLED"),
			Addr:     v.GetString("REDIS_ADDR"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
		},
		RabbitMQ: RabbitMQConfig{
			Enabled:    v.GetBool("RABBITMQ_ENABLED"),
			Host:       v.GetString("RABBITMQ_HOST"),
			Port:       v.GetInt("RABBITMQ_PORT"),
			Username:   v.GetString("RABBITMQ_USER"),
			Password:   v.GetString("RABBITMQ_PASSWORD"),
			VHost:      v.GetString("RABBITMQ_VHOST"),
			Exchange:   v.GetString("RABBITMQ_EXCHANGE"),
			RetryCount: v.GetInt("RABBITMQ_RETRY_COUNT"),
			RetryDelay: time.Duration(v.GetInt("RABBITMQ_RETRY_DELAY_SECONDS")) * time.Second,
		},
		Realtime: RealtimeConfig{
			Channel:        v.GetString("REALTIME_CHANNEL"),
			Cooldown:       time.Duration(v.GetInt("ALERT_COOLDOWN_MS")) * time.Millisecond,
			SubscriberSize: v.GetInt("REALTIME_BUFFER"),
		},
		RateLimit: RateLimitConfig{
			Requests: v.GetInt64("RATE_LIMIT_REQUESTS"),
			Window:   time.Duration(v.GetInt("RATE_LIMIT_WINDOW_SECONDS")) * time.Second,
		},
		Log: LogConfig{
			Level:    v.GetString("LOG_LEVEL"),
			Encoding: v.GetString("LOG_ENCODING"),
		},
	}
	return cfg
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
