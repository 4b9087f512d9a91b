package config

import (
	"fmt"
	"time"
)

// Config is the root application configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Log      LogConfig      `yaml:"log"`
	CORS     CORSConfig     `yaml:"cors"`
	Quiz     QuizConfig     `yaml:"quiz"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"SERVER_HOST"             env-default:"0.0.0.0"`
	Port            int           `yaml:"port"             env:"SERVER_PORT"             env-default:"3000"`
	Mode            string        `yaml:"mode"             env:"GIN_MODE"                env-default:"release"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"5s"`
	MaxUploadBytes  int64         `yaml:"max_upload_bytes" env:"SERVER_MAX_UPLOAD_BYTES" env-default:"10485760"`
}

// Addr returns the listen address.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// DatabaseConfig selects the driver and its DSN.
type DatabaseConfig struct {
	Driver string `yaml:"driver" env:"DB_TYPE" env-default:"sqlite3"`
	DSN    string `yaml:"dsn"    env:"DB_DSN"  env-default:"data/vocabulary.db"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `yaml:"level" env:"LOG_LEVEL" env-default:"info"`
	Mode  string `yaml:"mode"  env:"LOG_MODE"  env-default:"prod"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins string `yaml:"allowed_origins" env:"CORS_ALLOWED_ORIGINS" env-default:"*"`
}

// QuizConfig tunes the quiz and mistake tracking behaviour.
type QuizConfig struct {
	PromotionThreshold int `yaml:"promotion_threshold" env:"MISTAKE_PROMOTION_THRESHOLD" env-default:"2"`
	MaxCount           int `yaml:"max_count"           env:"QUIZ_MAX_COUNT"              env-default:"0"` // 0 means no cap
	OptionCount        int `yaml:"option_count"        env:"QUIZ_OPTION_COUNT"           env-default:"4"`
	ActivityDays       int `yaml:"activity_days"       env:"ACTIVITY_DAYS"               env-default:"100"`
}
