package router

import (
	"movienight_manager/handler"
	"movienight_manager/middleware"
	"movienight_manager/validate"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

func SetupRoutes(app *fiber.App) {
	api := app.Group("/api", logger.New())
	v1 := api.Group("/v1", logger.New())

	joinEvent := v1.Group("/joinevent", logger.New())
	joinEvent.Put("/", middleware.OptionalClaims(), validate.UpsertJoinEvent(), handler.UpsertJoinEvent)
	joinEvent.Get("/", handler.GetJoinEvents)
	joinEvent.Get("/slug/:slug", handler.GetJoinEventBySlug)
	joinEvent.Get("/:joinEventId", validate.GetById("joinEventId"), handler.GetJoinEventById)
	joinEvent.Get("/:joinEventId/qr", validate.GetById("joinEventId"), handler.GetJoinEventQR)
	joinEvent.Delete("/:joinEventId/participant/:participantId", handler.DeleteParticipant)

	cinema := v1.Group("/cinema", logger.New())
	cinema.Get("/", handler.GetAllCinemas)

	movie := v1.Group("/movie", logger.New())
	movie.Get("/", handler.GetAllMovies)

	genre := v1.Group("/genre", logger.New())
	genre.Get("/", handler.GetAllGenres)

	v1.Post("/sync", middleware.Protected(), handler.SyncListings)

	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	app.Get("/ws/joinevent/:id", websocket.New(handler.JoinEventFeed))
}
