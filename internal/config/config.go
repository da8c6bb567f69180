package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Hermes  HermesConfig  `yaml:"hermes"`
	SMTP    SMTPConfig    `yaml:"smtp"`
	Scoring ScoringConfig `yaml:"scoring"`
	Logging LoggingConfig `yaml:"logging"`
}

type ServerConfig struct {
	Port           int    `yaml:"port"`
	MetricsPort    int    `yaml:"metrics_port"`
	MaxUploadBytes int64  `yaml:"max_upload_bytes"`
	RateLimit      int    `yaml:"rate_limit_per_minute"`
	ResultFilename string `yaml:"result_filename"`
}

type HermesConfig struct {
	URL string `yaml:"url"`
}

// SMTPConfig configures delivery of results by email. Delivery is disabled
// while Host is empty.
type SMTPConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	From     string `yaml:"from"`
	Subject  string `yaml:"subject"`
}

type ScoringConfig struct {
	// Precision is the number of decimals written for scores; -1 keeps full
	// precision.
	Precision     int    `yaml:"precision"`
	StrictWeights bool   `yaml:"strict_weights"`
	RankMethod    string `yaml:"rank_method"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// MailEnabled reports whether results can be delivered by email.
func (c *Config) MailEnabled() bool {
	return c.SMTP.Host != ""
}

// SMTPAddr returns host:port of the mail server.
func (c *Config) SMTPAddr() string {
	return fmt.Sprintf("%s:%d", c.SMTP.Host, c.SMTP.Port)
}

func Load(path string) (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port:           8700,
			MetricsPort:    8701,
			MaxUploadBytes: 10 << 20,
			RateLimit:      60,
			ResultFilename: "result.csv",
		},
		SMTP: SMTPConfig{
			Port:    587,
			Subject: "Your TOPSIS Analysis Result",
		},
		Scoring: ScoringConfig{
			Precision:  6,
			RankMethod: "competition",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	applyEnv(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks values that would otherwise fail late at startup or
// silently change ranking output.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port %d", c.Server.Port)
	}
	if c.Server.MetricsPort <= 0 || c.Server.MetricsPort > 65535 {
		return fmt.Errorf("invalid metrics port %d", c.Server.MetricsPort)
	}
	if c.Server.MaxUploadBytes <= 0 {
		return fmt.Errorf("max_upload_bytes must be positive, got %d", c.Server.MaxUploadBytes)
	}
	if c.Server.RateLimit <= 0 {
		return fmt.Errorf("rate_limit_per_minute must be positive, got %d", c.Server.RateLimit)
	}
	if c.Server.ResultFilename == "" {
		return fmt.Errorf("result_filename must not be empty")
	}
	if c.Scoring.Precision < -1 {
		return fmt.Errorf("scoring precision must be >= -1, got %d", c.Scoring.Precision)
	}
	switch c.Scoring.RankMethod {
	case "competition", "dense":
	default:
		return fmt.Errorf("unknown rank method %q (want competition or dense)", c.Scoring.RankMethod)
	}
	if c.MailEnabled() && c.SMTP.From == "" {
		return fmt.Errorf("smtp.from is required when smtp.host is set")
	}
	return nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("TOPSIS_PORT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = n
		}
	}
	if v := os.Getenv("TOPSIS_METRICS_PORT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Server.MetricsPort = n
		}
	}
	if v := os.Getenv("TOPSIS_MAX_UPLOAD_BYTES"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			cfg.Server.MaxUploadBytes = n
		}
	}
	if v := os.Getenv("TOPSIS_RATE_LIMIT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Server.RateLimit = n
		}
	}
	if v := os.Getenv("TOPSIS_RESULT_FILENAME"); v != "" {
		cfg.Server.ResultFilename = v
	}
	if v := os.Getenv("TOPSIS_HERMES_URL"); v != "" {
		cfg.Hermes.URL = v
	}
	if v := os.Getenv("TOPSIS_SMTP_HOST"); v != "" {
		cfg.SMTP.Host = v
	}
	if v := os.Getenv("TOPSIS_SMTP_PORT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.SMTP.Port = n
		}
	}
	if v := os.Getenv("TOPSIS_SMTP_USERNAME"); v != "" {
		cfg.SMTP.Username = v
	}
	if v := os.Getenv("TOPSIS_SMTP_PASSWORD"); v != "" {
		cfg.SMTP.Password = v
	}
	if v := os.Getenv("TOPSIS_SMTP_FROM"); v != "" {
		cfg.SMTP.From = v
	}
	if v := os.Getenv("TOPSIS_PRECISION"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Scoring.Precision = n
		}
	}
	if v := os.Getenv("TOPSIS_STRICT_WEIGHTS"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Scoring.StrictWeights = b
		}
	}
	if v := os.Getenv("TOPSIS_RANK_METHOD"); v != "" {
		cfg.Scoring.RankMethod = v
	}
	if v := os.Getenv("TOPSIS_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("TOPSIS_LOG_FORMAT"); v != "" {
		cfg.Logging.Format = v
	}
}
