package validate

import (
	"github.com/gofiber/fiber/v2"

	"movie_booking/constants"
	"movie_booking/model"
	"movie_booking/utils"
)

func CreateBooking() fiber.Handler {
	return func(c *fiber.Ctx) error {
		input := new(model.CreateBookingInput)
		if err := c.BodyParser(input); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, err)
		}
		if err := validate.Struct(input); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, err)
		}

		c.Locals("bookingInput", input)
		return c.Next()
	}
}
