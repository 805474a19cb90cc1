package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const envPrefix = "RISKLY"

// Load reads configs/config.yaml (if present), merges config.<env>.yaml, then
// applies RISKLY_* environment overrides. A missing base file is not an error.
func Load() (*Config, error) {
	loadEnvFile()

	v := newViper()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./configs")
	v.AddConfigPath(".")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading base config: %w", err)
		}
	}

	env := v.GetString("app.environment")
	v.SetConfigName("config." + env)
	_ = v.MergeInConfig() // optional

	return unmarshal(v)
}

// LoadFromFile loads configuration from a specific file path.
func LoadFromFile(path string) (*Config, error) {
	loadEnvFile()

	v := newViper()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	return unmarshal(v)
}

func newViper() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	return v
}

func unmarshal(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	normalize(&cfg)
	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

func loadEnvFile() {
	for _, path := range []string{".env", "../.env", "../../.env"} {
		if _, err := os.Stat(path); err == nil {
			_ = godotenv.Load(path)
			return
		}
	}
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "riskly")
	v.SetDefault("app.environment", "development")

	v.SetDefault("server.address", "127.0.0.1:8501")
	v.SetDefault("server.read_timeout", "30s")
	v.SetDefault("server.write_timeout", "1m")
	v.SetDefault("server.shutdown_timeout", "10s")

	v.SetDefault("simulator.delay", "2s")

	// Streamlit's default upload ceiling.
	v.SetDefault("upload.max_bytes", 200<<20)
	v.SetDefault("upload.allowed_extensions", []string{"csv", "xlsx"})
	v.SetDefault("upload.field_name", "audit_trail")

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")

	v.SetDefault("metrics.enabled", true)
	v.SetDefault("metrics.path", "/metrics")
}

func normalize(cfg *Config) {
	exts := make([]string, 0, len(cfg.Upload.AllowedExtensions))
	for _, e := range cfg.Upload.AllowedExtensions {
		e = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(e), "."))
		if e != "" {
			exts = append(exts, e)
		}
	}
	cfg.Upload.AllowedExtensions = exts
}

func validateConfig(cfg *Config) error {
	if cfg.Server.Address == "" {
		return fmt.Errorf("server.address is required")
	}
	if cfg.Simulator.Delay < 0 {
		return fmt.Errorf("simulator.delay must not be negative")
	}
	if cfg.Server.WriteTimeout > 0 && cfg.Simulator.Delay >= cfg.Server.WriteTimeout {
		return fmt.Errorf("simulator.delay (%s) must be shorter than server.write_timeout (%s)",
			cfg.Simulator.Delay, cfg.Server.WriteTimeout)
	}
	if cfg.Upload.MaxBytes <= 0 {
		return fmt.Errorf("upload.max_bytes must be positive")
	}
	if len(cfg.Upload.AllowedExtensions) == 0 {
		return fmt.Errorf("upload.allowed_extensions must not be empty")
	}
	if cfg.Upload.FieldName == "" {
		return fmt.Errorf("upload.field_name is required")
	}
	if cfg.Metrics.Enabled && !strings.HasPrefix(cfg.Metrics.Path, "/") {
		return fmt.Errorf("metrics.path must start with /")
	}
	return nil
}
