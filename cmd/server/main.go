package main

import (
	"flag"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/ifnmg/vitrine-projetos/internal/config"
	"github.com/ifnmg/vitrine-projetos/internal/database"
	"github.com/ifnmg/vitrine-projetos/internal/handlers"
	"github.com/ifnmg/vitrine-projetos/internal/middleware"
	"github.com/ifnmg/vitrine-projetos/internal/repository"
	"github.com/ifnmg/vitrine-projetos/internal/services"
	"github.com/ifnmg/vitrine-projetos/internal/storage"
	"github.com/ifnmg/vitrine-projetos/internal/utils"
)

func main() {
	configFile := flag.String("config", "", "path to config file")
	flag.Parse()

	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	cfg, err := config.Load(*configFile)
	if err != nil {
		logger.WithError(err).Fatal("failed to load configuration")
	}

	db, err := database.Connect(cfg)
	if err != nil {
		logger.WithError(err).Fatal("failed to connect to database")
	}
	if err := database.Migrate(db); err != nil {
		logger.WithError(err).Fatal("failed to run migrations")
	}
	if err := database.AddIndexes(db, cfg.Database.Driver); err != nil {
		logger.WithError(err).Fatal("failed to create indexes")
	}

	store, err := storage.NewDisk(cfg.Upload.Dir)
	if err != nil {
		logger.WithError(err).Fatal("failed to prepare upload directory")
	}

	jwtManager := utils.NewJWTManager(cfg.JWT.SecretKey, cfg.JWT.ExpireDuration())

	userRepo := repository.NewUserRepository(db)
	alunoRepo := repository.NewAlunoRepository(db)
	projetoRepo := repository.NewProjetoRepository(db)
	tccRepo := repository.NewTCCRepository(db)

	authService := services.NewAuthService(userRepo, jwtManager)
	userService := services.NewUserService(userRepo)
	alunoService := services.NewAlunoService(alunoRepo)
	importService := services.NewImportService(alunoService, userService)
	projetoService := services.NewProjetoService(projetoRepo, alunoRepo, userRepo, store, logger, cfg.Upload.MaxBytes())
	tccService := services.NewTCCService(tccRepo, alunoRepo, userRepo, store, logger, cfg.Upload.MaxBytes())

	authHandler := handlers.NewAuthHandler(authService)
	userHandler := handlers.NewUserHandler(userService, importService)
	alunoHandler := handlers.NewAlunoHandler(alunoService, importService)
	projetoHandler := handlers.NewProjetoHandler(projetoService)
	tccHandler := handlers.NewTCCHandler(tccService)

	gin.SetMode(cfg.Server.Mode)
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(logger))
	r.Use(middleware.CORS(cfg.CORS.Origins))
	r.MaxMultipartMemory = cfg.Upload.MaxBytes()

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.Static("/uploads", store.BaseDir())

	api := r.Group("/api")
	{
		api.POST("/login", authHandler.Login)

		// Showcase: projects and theses are readable without a token.
		api.GET("/projetos", projetoHandler.ListProjetos)
		api.GET("/projetos/:id", projetoHandler.GetProjeto)
		api.GET("/tcc", tccHandler.ListTCCs)
		api.GET("/tcc/:id", tccHandler.GetTCC)

		auth := api.Group("")
		auth.Use(middleware.RequireAuth(jwtManager))
		{
			auth.GET("/me", authHandler.Me)

			auth.POST("/projetos", projetoHandler.CreateProjeto)
			auth.PUT("/projetos/:id", projetoHandler.UpdateProjeto)
			auth.DELETE("/projetos/:id", projetoHandler.DeleteProjeto)

			auth.GET("/projetos/:id/participantes", projetoHandler.ListParticipantes)
			auth.POST("/projetos/:id/participantes", projetoHandler.LinkParticipante)
			auth.DELETE("/projetos/:id/participantes/:participanteId", projetoHandler.UnlinkParticipante)

			auth.POST("/projetos/:id/imagem", projetoHandler.UploadImagem)
			auth.PATCH("/projetos/imagem/:id/principal", projetoHandler.SetImagemPrincipal)
			auth.DELETE("/projetos/imagem/:id", projetoHandler.DeleteImagem)

			auth.POST("/tcc", tccHandler.CreateTCC)
			auth.PUT("/tcc/:id", tccHandler.UpdateTCC)
			auth.DELETE("/tcc/:id", tccHandler.DeleteTCC)

			auth.GET("/alunos", alunoHandler.ListAlunos)
			auth.GET("/alunos/:id", alunoHandler.GetAluno)

			admin := auth.Group("")
			admin.Use(middleware.RequireAdmin())
			{
				admin.POST("/users", userHandler.CreateUser)
				admin.GET("/users", userHandler.ListUsers)
				admin.GET("/users/:id", userHandler.GetUser)
				admin.PUT("/users/:id", userHandler.UpdateUser)
				admin.DELETE("/users/:id", userHandler.DeleteUser)
				admin.POST("/users/lote", userHandler.ImportUsers)

				admin.POST("/alunos", alunoHandler.CreateAluno)
				admin.PUT("/alunos/:id", alunoHandler.UpdateAluno)
				admin.DELETE("/alunos/:id", alunoHandler.DeleteAluno)
				admin.POST("/alunos/lote", alunoHandler.ImportAlunos)
			}

			// Password change is admin-or-self, checked in the handler.
			auth.PATCH("/users/:id/senha", userHandler.UpdateSenha)
		}
	}

	logger.WithField("address", cfg.Server.Address()).Info("starting server")
	if err := r.Run(cfg.Server.Address()); err != nil {
		logger.WithError(err).Fatal("server stopped")
	}
}
