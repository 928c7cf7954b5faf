package main

import (
	"errors"
	"flag"

	"github.com/sirupsen/logrus"

	"github.com/ifnmg/vitrine-projetos/internal/config"
	"github.com/ifnmg/vitrine-projetos/internal/database"
	"github.com/ifnmg/vitrine-projetos/internal/models"
	"github.com/ifnmg/vitrine-projetos/internal/repository"
	"github.com/ifnmg/vitrine-projetos/internal/services"
)

// Seeds the initial ADMIN account from the admin section of the config.
// Safe to run repeatedly: an existing account is left untouched.
func main() {
	configFile := flag.String("config", "", "path to config file")
	flag.Parse()

	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	cfg, err := config.Load(*configFile)
	if err != nil {
		logger.WithError(err).Fatal("failed to load configuration")
	}
	if cfg.Admin.Senha == "" {
		logger.Fatal("admin.senha (or VITRINE_ADMIN_SENHA) must be set")
	}

	db, err := database.Connect(cfg)
	if err != nil {
		logger.WithError(err).Fatal("failed to connect to database")
	}
	if err := database.Migrate(db); err != nil {
		logger.WithError(err).Fatal("failed to run migrations")
	}

	userService := services.NewUserService(repository.NewUserRepository(db))

	user, err := userService.Create(services.CreateUserInput{
		Nome:  cfg.Admin.Nome,
		Email: cfg.Admin.Email,
		Senha: cfg.Admin.Senha,
		Role:  models.RoleAdmin,
	})
	if err != nil {
		if errors.Is(err, services.ErrEmailEmUso) {
			logger.WithField("email", cfg.Admin.Email).Info("admin account already exists")
			return
		}
		logger.WithError(err).Fatal("failed to create admin account")
	}

	logger.WithFields(logrus.Fields{
		"id":    user.ID,
		"email": user.Email,
	}).Info("admin account created")
}
