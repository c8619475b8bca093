package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type AppConfig struct {
	Port       string `mapstructure:"port"`
	Timezone   string `mapstructure:"timezone"`
	DBPath     string `mapstructure:"db_path"`
	LogLevel   string `mapstructure:"log_level"`
	LogFormat  string `mapstructure:"log_format"` // json|console
	MCPPath    string `mapstructure:"mcp_path"`
	ServerName string `mapstructure:"server_name"`
}

var envKeys = map[string]string{
	"port":        "PORT",
	"timezone":    "TZ",
	"db_path":     "DB_PATH",
	"log_level":   "LOG_LEVEL",
	"log_format":  "LOG_FORMAT",
	"mcp_path":    "MCP_PATH",
	"server_name": "SERVER_NAME",
}

func defaults(v *viper.Viper) {
	v.SetDefault("port", "8080")
	v.SetDefault("timezone", "Europe/Madrid")
	v.SetDefault("db_path", "cuaderno.db")
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "console")
	v.SetDefault("mcp_path", "/mcp")
	v.SetDefault("server_name", "Agente Agricola")
}

// Load reads .env (if present), an optional config.yaml and the environment.
// Environment wins over the file, the file over defaults.
func Load() (AppConfig, error) {
	// a missing .env is normal outside development
	_ = godotenv.Load()

	v := viper.New()
	defaults(v)
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		var nf viper.ConfigFileNotFoundError
		if !errors.As(err, &nf) {
			return AppConfig{}, fmt.Errorf("read config: %w", err)
		}
	}
	for key, env := range envKeys {
		if err := v.BindEnv(key, env); err != nil {
			return AppConfig{}, fmt.Errorf("bind %s: %w", env, err)
		}
	}

	var cfg AppConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return AppConfig{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if !strings.HasPrefix(cfg.MCPPath, "/") {
		cfg.MCPPath = "/" + cfg.MCPPath
	}
	return cfg, nil
}
