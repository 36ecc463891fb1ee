package config

import (
    "errors"
    "fmt"
    "strings"
    "time"

    "github.com/spf13/viper"
)

type Config struct {
    Server    ServerConfig    `mapstructure:"server"`
    Database  DatabaseConfig  `mapstructure:"database"`
    Redis     RedisConfig     `mapstructure:"redis"`
    JWT       JWTConfig       `mapstructure:"jwt"`
    RateLimit RateLimitConfig `mapstructure:"rate_limit"`
    Sentry    SentryConfig    `mapstructure:"sentry"`
    Trace     TraceConfig     `mapstructure:"trace"`
    Log       LogConfig       `mapstructure:"log"`
}

type ServerConfig struct {
    Addr string `mapstructure:"addr"`
    Mode string `mapstructure:"mode"` // debug / release
}

type DatabaseConfig struct {
    Host     string `mapstructure:"host"`
    Port     int    `mapstructure:"port"`
    User     string `mapstructure:"user"`
    Password string `mapstructure:"password"`
    DBName   string `mapstructure:"dbname"`
    SSLMode  string `mapstructure:"sslmode"`
    MaxOpen  int    `mapstructure:"max_open"`
    MaxIdle  int    `mapstructure:"max_idle"`
}

func (d DatabaseConfig) DSN() string {
    return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%d sslmode=%s",
        d.Host, d.User, d.Password, d.DBName, d.Port, d.SSLMode)
}

type RedisConfig struct {
    Addr     string `mapstructure:"addr"`
    Password string `mapstructure:"password"`
    DB       int    `mapstructure:"db"`
}

type JWTConfig struct {
    Secret string        `mapstructure:"secret"`
    TTL    time.Duration `mapstructure:"ttl"`
}

type RateLimitConfig struct {
    RPS   float64 `mapstructure:"rps"`
    Burst int     `mapstructure:"burst"`
}

type SentryConfig struct {
    DSN string `mapstructure:"dsn"`
}

type TraceConfig struct {
    Endpoint string `mapstructure:"endpoint"` // OTLP/HTTP collector, empty disables tracing
}

type LogConfig struct {
    Level string `mapstructure:"level"`
}

// Load 读取 config.yaml 并叠加 SOCIALFEED_* 环境变量
func Load() (*Config, error) {
    v := viper.New()
    v.SetConfigName("config")
    v.SetConfigType("yaml")
    v.AddConfigPath(".")
    v.AddConfigPath("./config")
    v.SetEnvPrefix("SOCIALFEED")
    v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
    v.AutomaticEnv()

    v.SetDefault("server.addr", ":8080")
    v.SetDefault("server.mode", "debug")
    v.SetDefault("database.host", "localhost")
    v.SetDefault("database.port", 5432)
    v.SetDefault("database.user", "postgres")
    v.SetDefault("database.password", "postgres")
    v.SetDefault("database.dbname", "postgres")
    v.SetDefault("database.sslmode", "disable")
    v.SetDefault("database.max_open", 50)
    v.SetDefault("database.max_idle", 10)
    v.SetDefault("redis.addr", "localhost:6379")
    v.SetDefault("redis.db", 0)
    v.SetDefault("jwt.secret", "dev-secret-change-me")
    v.SetDefault("jwt.ttl", 24*time.Hour)
    v.SetDefault("rate_limit.rps", 100)
    v.SetDefault("rate_limit.burst", 200)
    v.SetDefault("log.level", "info")

    if err := v.ReadInConfig(); err != nil {
        var notFound viper.ConfigFileNotFoundError
        if !errors.As(err, &notFound) {
            return nil, err
        }
        // 没有配置文件时退回默认值 + 环境变量
    }

    var cfg Config
    if err := v.Unmarshal(&cfg); err != nil {
        return nil, err
    }
    return &cfg, nil
}
