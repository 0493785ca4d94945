package main

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"labrise-backend/config"
	"labrise-backend/logger"
	"labrise-backend/routes"
	"labrise-backend/services"
)

func main() {
	log := logger.New("labrise-backend")

	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Info().Msg("No .env file found")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}

	st, err := config.OpenStore(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open store")
	}

	historyService := services.NewHistoryService(st, log)

	var queueOpts []services.QueueOption
	if cfg.AllowRemoveCompleted {
		queueOpts = append(queueOpts, services.WithRemoveCompleted())
	}
	queueService := services.NewQueueService(st, historyService, log, queueOpts...)
	analyticsService := services.NewAnalyticsService(st, historyService)
	syncService := services.NewCustomerSyncService(st, log)

	if cfg.RemindersEnabled() {
		reminderService := services.NewReminderService(st, log, services.ReminderConfig{
			AccountSID: cfg.TwilioAccountSID,
			AuthToken:  cfg.TwilioAuthToken,
			FromNumber: cfg.TwilioPhoneNumber,
			AfterDays:  cfg.ReminderAfterDays,
		})
		if _, err := reminderService.StartScheduler(cfg.ReminderCron); err != nil {
			log.Fatal().Err(err).Msg("failed to start reminder scheduler")
		}
	} else {
		log.Info().Msg("reminders disabled: Twilio credentials not configured")
	}

	r := routes.SetupRouter(routes.Deps{
		Store:     st,
		Queue:     queueService,
		History:   historyService,
		Analytics: analyticsService,
		Sync:      syncService,
		Log:       log,
		CORS:      cfg.CORSOrigins,
	})
	printRoutes(r)

	log.Info().Str("port", cfg.Port).Msg("listening")
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}

func printRoutes(r *gin.Engine) {
	for _, route := range r.Routes() {
		fmt.Printf("%-6s %s\n", route.Method, route.Path)
	}
}
