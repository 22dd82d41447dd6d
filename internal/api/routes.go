package api

import "github.com/gofiber/fiber/v2"

func RegisterRoutes(app *fiber.App, handler *Handler) {
	app.Get("/healthz", handler.Health)

	api := app.Group("/api")

	auth := api.Group("/auth")
	auth.Post("/signup", handler.Signup)
	auth.Post("/login", handler.Login)
	auth.Get("/me", handler.AuthRequired, handler.Me)
	auth.Put("/me", handler.AuthRequired, handler.UpdateMe)

	logs := api.Group("/logs", handler.AuthRequired)
	logs.Post("/", handler.UpsertLog)
	logs.Get("/", handler.ListLogs)
	logs.Delete("/:date", handler.DeleteLog)

	articles := api.Group("/articles")
	articles.Get("/", handler.ListArticles)
	articles.Post("/refresh", handler.RefreshArticles)

	googleCalendar := api.Group("/google-calendar", handler.AuthRequired)
	googleCalendar.Get("/status", handler.CalendarStatus)
	googleCalendar.Post("/auth/initiate", handler.CalendarAuthInitiate)
	googleCalendar.Post("/auth/callback", handler.CalendarAuthCallback)
	googleCalendar.Delete("/disconnect", handler.CalendarDisconnect)
	googleCalendar.Post("/settings", handler.CalendarSettings)
	googleCalendar.Post("/sync", handler.CalendarSyncLog)
	googleCalendar.Post("/sync-all", handler.CalendarSyncAll)
	googleCalendar.Delete("/sync/:id", handler.CalendarUnsyncLog)

	chat := api.Group("/chat", handler.AuthRequired)
	chat.Post("/", handler.Chat)
}
