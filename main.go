package main

import (
	"os"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"minerva/config"
	"minerva/controllers"
	"minerva/services"
	"minerva/storage"
)

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout})
	gin.DefaultWriter = zerolog.ConsoleWriter{Out: os.Stdout}

	cfg, err := config.Load("minerva.yaml")
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	store, err := storage.Open(cfg.DatabasePath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open store")
	}

	manager := services.NewManager(store)
	if err := manager.Load(); err != nil {
		log.Fatal().Err(err).Msg("failed to load collections")
	}

	session := services.NewSession(services.StaticAuthenticator{
		Username: cfg.Admin.Username,
		Password: cfg.Admin.Password,
	}, store)
	session.Restore()

	readme := services.NewReadmeService(cfg.OpenAI)

	auth := controllers.NewAuthController(session)
	notes := controllers.NewNoteController(manager)
	projects := controllers.NewProjectController(manager)
	analysis := controllers.NewAnalysisController(manager)
	readmeCtl := controllers.NewReadmeController(manager, readme)

	router := gin.New()
	router.Use(controllers.ZLogMiddleware(), gin.Recovery())

	router.POST("/login", auth.Login)

	authed := router.Group("/", auth.RequireAuth)
	authed.POST("/logout", auth.Logout)

	// Notes
	authed.GET("/notes", notes.List)
	authed.GET("/notes/:id", notes.Get)
	authed.POST("/notes", notes.Save)
	authed.DELETE("/notes/:id", notes.Delete)

	// Projects
	authed.GET("/projects", projects.List)
	authed.GET("/projects/:id", projects.Get)
	authed.POST("/projects", projects.Save)
	authed.DELETE("/projects/:id", projects.Delete)

	// Analytics
	authed.GET("/stats", analysis.Stats)
	authed.GET("/suggestions", analysis.Suggestions)
	authed.GET("/roadmap", analysis.Roadmap)

	// Readme generation
	authed.POST("/readme", readmeCtl.Generate)

	if err := router.Run(cfg.Addr); err != nil {
		log.Fatal().Err(err).Msg("app failed to start")
	}
}
