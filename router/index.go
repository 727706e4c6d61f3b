package router

import (
	"movie_booking/handler"
	"movie_booking/middleware"
	"movie_booking/validate"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

func SetupRoutes(app *fiber.App) {
	api := app.Group("/api", logger.New())

	// Booking API công khai, wire shape JSON trần cho client đặt vé
	api.Get("/movies", handler.GetPublicMovies)
	api.Get("/showtimes", handler.GetPublicShowtimes)
	api.Get("/seats", handler.GetPublicSeats)
	api.Post("/bookings", validate.CreateBooking(), handler.CreateBooking)
	api.Get("/bookings/code/:code", handler.GetBookingByCode)

	auth := api.Group("/auth")
	auth.Post("/login", validate.Login(), handler.Login)
	auth.Post("/register", validate.Register(), handler.Register)
	auth.Post("/logout", handler.Logout)
	auth.Post("/refresh-token", handler.RefreshToken)

	// Flow đặt vé: login -> movies -> seats -> payment -> ticket
	flow := api.Group("/flow", logger.New())
	flow.Post("/session", handler.CreateFlowSession)
	flow.Get("/state", handler.GetFlowState)
	flow.Post("/login", handler.FlowLogin)
	flow.Post("/movies/select", handler.FlowSelectMovie)
	flow.Post("/showtimes/select", handler.FlowSelectShowtime)
	flow.Post("/seats/toggle", handler.FlowToggleSeat)
	flow.Post("/seats/confirm", handler.FlowConfirmSeats)
	flow.Post("/payment", handler.FlowSubmitPayment)
	flow.Get("/ticket", handler.FlowTicket)
	flow.Get("/ticket/qr", handler.FlowTicketQR)
	flow.Post("/ticket/email", handler.FlowEmailTicket)
	flow.Post("/back", handler.FlowBack)
	flow.Post("/home", handler.FlowReturnHome)
	flow.Post("/logout", handler.FlowLogout)

	// Admin catalog
	admin := api.Group("/admin", logger.New(), middleware.Protected(), middleware.AdminOnly())
	admin.Get("/movies", validate.FilterMovie(), handler.GetMovies)
	admin.Get("/movies/:movieId", validate.GetById("movieId"), handler.GetMovieById)
	admin.Post("/movies", validate.CreateMovie(), handler.CreateMovie)
	admin.Put("/movies/:movieId", validate.GetById("movieId"), validate.EditMovie(), handler.UpdateMovie)
	admin.Delete("/movies/:movieId", validate.GetById("movieId"), handler.DeleteMovie)
	admin.Post("/movies/:movieId/poster", validate.GetById("movieId"), handler.UploadMoviePoster)
	admin.Post("/showtimes", validate.CreateShowtime(), handler.CreateShowtime)
	admin.Delete("/showtimes/:showtimeId", validate.GetById("showtimeId"), handler.DeleteShowtime)

	// Websocket cập nhật ghế theo suất chiếu
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	app.Get("/ws/showtime/:id", websocket.New(handler.SeatFeed))
}
