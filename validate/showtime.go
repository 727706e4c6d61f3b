package validate

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"movie_booking/constants"
	"movie_booking/model"
	"movie_booking/utils"
)

func CreateShowtime() fiber.Handler {
	return func(c *fiber.Ctx) error {
		input := new(model.ShowtimeInput)
		if err := c.BodyParser(input); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, err)
		}
		if err := validate.Struct(input); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, err)
		}
		if _, err := time.Parse(time.RFC3339, input.ShowDateTime); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, "showDateTime must be RFC3339", err)
		}

		c.Locals("showtimeInput", input)
		return c.Next()
	}
}
