package main

import (
	"log"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/slack-go/slack"

	"github.com/yuchengtw/duty-roster-bot/internal/announce"
	"github.com/yuchengtw/duty-roster-bot/internal/config"
	"github.com/yuchengtw/duty-roster-bot/internal/database"
	"github.com/yuchengtw/duty-roster-bot/internal/domain/contract"
	"github.com/yuchengtw/duty-roster-bot/internal/handlers"
	"github.com/yuchengtw/duty-roster-bot/internal/llm"
	"github.com/yuchengtw/duty-roster-bot/migrator/sqlite"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	cfg := config.Load()

	loc, err := cfg.Location()
	if err != nil {
		log.Fatalf("Failed to load rotation timezone %q: %v", cfg.RotationTZ, err)
	}

	db, err := database.New(cfg.DatabasePath)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	log.Println("Running migrations...")
	if err := sqlite.Migrate(db.DB()); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Migrations completed successfully")

	dm := database.NewInstance(db)

	// A missing token is not fatal at boot: the cron endpoint reports it as a
	// configuration error instead, so operators see it in the response.
	var api contract.SlackAPI
	if cfg.SlackBotToken != "" {
		api = slack.New(cfg.SlackBotToken)
	} else {
		log.Println("Warning: SLACK_BOT_TOKEN not set, dispatch will fail with a config error")
	}

	dispatcher := announce.NewDispatcher(api, dm)
	chat := llm.New(llm.Config{
		BaseURL: cfg.LLMAPIURL,
		APIKey:  cfg.LLMAPIKey,
		Model:   cfg.LLMModel,
	})

	cron := handlers.NewCron(cfg, loc, dispatcher, dm)
	webhook := handlers.NewWebhook(cfg.SlackSigningSecret, api, chat)
	groups := handlers.NewGroups(dm)

	if os.Getenv("GIN_MODE") == "" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	r.GET("/cron/announce", cron.Announce)
	r.GET("/cron/deliveries", cron.Deliveries)

	r.POST("/webhook/events", webhook.Events)

	r.GET("/groups", groups.List)
	r.POST("/groups", groups.Create)
	r.DELETE("/groups/:id", groups.Delete)

	log.Printf("Server starting on port %s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
