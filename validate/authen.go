package validate

import (
	"github.com/gofiber/fiber/v2"

	"movie_booking/constants"
	"movie_booking/model"
	"movie_booking/utils"
)

func Login() fiber.Handler {
	return func(c *fiber.Ctx) error {
		input := new(model.LoginInput)
		if err := c.BodyParser(input); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, err)
		}
		if err := validate.Struct(input); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.MISSING_LOGIN_INPUT, err)
		}

		c.Locals("loginInput", input)
		return c.Next()
	}
}

func Register() fiber.Handler {
	return func(c *fiber.Ctx) error {
		input := new(model.RegisterInput)
		if err := c.BodyParser(input); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, err)
		}
		if err := validate.Struct(input); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, err)
		}

		c.Locals("registerInput", input)
		return c.Next()
	}
}
