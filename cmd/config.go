package cmd

import (
	"fmt"

	"github.com/spf13/viper"

	"schema-gate/internal/dialect"
)

// AppConfig is the per-run configuration, resolved once before any
// command body executes and immutable afterwards.
type AppConfig struct {
	Conn    dialect.ConnConfig
	Dialect string
	Env     string // deployment environment name (APP_ENV)
}

// envBindings maps viper keys to the environment variables the
// deployment pipeline injects.
var envBindings = map[string]string{
	"db.host":     "DB_HOST",
	"db.port":     "DB_PORT",
	"db.name":     "DB_NAME",
	"db.user":     "DB_USER",
	"db.password": "DB_PASSWORD",
	"db.dialect":  "DB_DIALECT",
	"db.ssl":      "DB_SSL",
	"app.env":     "APP_ENV",
}

func bindEnv() {
	for key, env := range envBindings {
		viper.BindEnv(key, env)
	}
	viper.SetDefault("db.port", 5432)
	viper.SetDefault("db.dialect", "postgres")
	viper.SetDefault("app.env", "development")
}

// loadConfig resolves configuration with the usual precedence:
// flag > config file > environment > default.
func loadConfig() (*AppConfig, error) {
	cfg := &AppConfig{
		Conn: dialect.ConnConfig{
			Host:     viper.GetString("db.host"),
			Port:     viper.GetInt("db.port"),
			Database: viper.GetString("db.name"),
			User:     viper.GetString("db.user"),
			Password: viper.GetString("db.password"),
			SSL:      viper.GetBool("db.ssl"),
		},
		Dialect: viper.GetString("db.dialect"),
		Env:     viper.GetString("app.env"),
	}

	if cfg.Conn.Host == "" {
		return nil, fmt.Errorf("DB_HOST is required (env, config file or --host)")
	}
	if cfg.Conn.Database == "" {
		return nil, fmt.Errorf("DB_NAME is required (env, config file or --name)")
	}
	if cfg.Conn.User == "" {
		return nil, fmt.Errorf("DB_USER is required (env, config file or --user)")
	}
	return cfg, nil
}
