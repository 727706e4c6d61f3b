package main

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"

	"movie_booking/client"
	"movie_booking/config"
	"movie_booking/database"
	"movie_booking/handler"
	"movie_booking/helper"
	"movie_booking/router"
)

func main() {
	app := fiber.New(fiber.Config{
		BodyLimit: 20 * 1024 * 1024, // upload poster tối đa 20MB
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins:     config.ConfigDefault("CORS_ORIGIN", "http://localhost:5173"),
		AllowMethods:     "GET,POST,PUT,DELETE,PATCH,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Authorization, Accept",
		AllowCredentials: true,
		ExposeHeaders:    "Set-Cookie",
		MaxAge:           600,
	}))

	database.ConnectDB()

	helper.StartShowtimeScheduler()
	defer helper.StopShowtimeScheduler()
	helper.StartMovieStatusScheduler()
	defer helper.StopMovieStatusScheduler()

	port := config.ConfigDefault("PORT", "3000")

	// Flow session gọi lại chính server này qua HTTP
	handler.SetFlowAPI(client.New(config.ConfigDefault("BACKEND_URL", "http://localhost:"+port)))

	router.SetupRoutes(app)
	log.Fatal(app.Listen(":" + port))
}
