package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/ifnmg/vitrine-projetos/internal/constants"
)

// Load reads the configuration file (config.yaml by default) and merges
// environment variables on top (VITRINE_SERVER_PORT overrides
// server.port, and so on).
func Load(configFile string) (*Config, error) {
	v := viper.New()

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	v.SetEnvPrefix("VITRINE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		// A missing file is fine, defaults plus env vars still apply.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	setDefaults(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

func setDefaults(cfg *Config) {
	if cfg.Server.Host == "" {
		cfg.Server.Host = "0.0.0.0"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Server.Mode == "" {
		cfg.Server.Mode = "debug"
	}
	if cfg.Database.Driver == "" {
		cfg.Database.Driver = "mysql"
	}
	if cfg.Database.Host == "" {
		cfg.Database.Host = "localhost"
	}
	if cfg.Database.Port == 0 {
		if cfg.Database.Driver == "postgres" {
			cfg.Database.Port = 5432
		} else {
			cfg.Database.Port = 3306
		}
	}
	if cfg.Database.User == "" {
		cfg.Database.User = "vitrine"
	}
	if cfg.Database.Name == "" {
		cfg.Database.Name = "vitrine_projetos"
	}
	if cfg.JWT.SecretKey == "" {
		cfg.JWT.SecretKey = "default-secret-key-change-me"
	}
	if cfg.JWT.ExpireMinutes == 0 {
		cfg.JWT.ExpireMinutes = constants.DefaultTokenExpireMinutes
	}
	if cfg.Upload.Dir == "" {
		cfg.Upload.Dir = "./uploads"
	}
	if cfg.Upload.MaxSizeMB == 0 {
		cfg.Upload.MaxSizeMB = constants.DefaultMaxUploadMB
	}
	if cfg.Admin.Nome == "" {
		cfg.Admin.Nome = "Administrador"
	}
	if cfg.Admin.Email == "" {
		cfg.Admin.Email = "admin@vitrine.ifnmg.edu.br"
	}
}

func validate(cfg *Config) error {
	if cfg.Server.Port <= 0 || cfg.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", cfg.Server.Port)
	}
	if cfg.Database.Driver != "mysql" && cfg.Database.Driver != "postgres" {
		return fmt.Errorf("unsupported database driver: %s", cfg.Database.Driver)
	}
	return nil
}
