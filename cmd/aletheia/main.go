package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/aletheia-health/aletheia/internal/api"
	"github.com/aletheia-health/aletheia/internal/cli"
	"github.com/aletheia-health/aletheia/internal/config"
	"github.com/aletheia-health/aletheia/internal/db"
	"github.com/aletheia-health/aletheia/internal/security"
	"github.com/aletheia-health/aletheia/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

func main() {
	cfg := config.Load()

	if len(os.Args) > 1 && os.Args[1] == "reset-password" {
		if len(os.Args) != 3 {
			fmt.Fprintln(os.Stderr, "usage: aletheia reset-password <email>")
			os.Exit(2)
		}
		if err := cli.RunResetPasswordCommand(cfg.DBPath, os.Args[2]); err != nil {
			log.Fatalf("reset password failed: %v", err)
		}
		return
	}

	database, err := db.OpenSQLite(cfg.DBPath)
	if err != nil {
		log.Fatalf("database init failed: %v", err)
	}

	var calendarService *services.CalendarService
	if cfg.GoogleConfigured() {
		cipher, err := security.NewTokenCipher(cfg.EncryptionKey)
		if err != nil {
			log.Fatalf("encryption key invalid: %v", err)
		}
		calendarService = services.NewCalendarService(cfg.GoogleClientID, cfg.GoogleClientSecret, cfg.GoogleRedirectURI, cipher)
	} else {
		log.Println("Google Calendar integration disabled: credentials not configured")
	}

	var chatService *services.ChatService
	if cfg.GeminiAPIKey != "" {
		chatService, err = services.NewChatService(context.Background(), cfg.GeminiAPIKey)
		if err != nil {
			log.Fatalf("chat assistant init failed: %v", err)
		}
		defer chatService.Close()
	} else {
		log.Println("Chat assistant disabled: GEMINI_API_KEY not configured")
	}

	handler, err := api.NewHandler(api.Options{
		Database:        database,
		Secret:          cfg.SecretKey,
		TokenTTL:        time.Duration(cfg.TokenTTLMinutes) * time.Minute,
		ArticleFeedURL:  cfg.ArticleFeedURL,
		CalendarService: calendarService,
		ChatService:     chatService,
	})
	if err != nil {
		log.Fatalf("handler init failed: %v", err)
	}

	app := fiber.New(fiber.Config{
		AppName:               "Aletheia",
		DisableStartupMessage: true,
	})

	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(compress.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(cfg.CORSOrigins, ","),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, PUT, DELETE, OPTIONS",
	}))

	api.RegisterRoutes(app, handler)

	sigCtx, stopSignals := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	go func() {
		<-sigCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			log.Printf("server shutdown failed: %v", err)
		}
	}()

	log.Printf("Aletheia listening on http://0.0.0.0:%s (db: %s)", cfg.Port, cfg.DBPath)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("server exited: %v", err)
	}
}
