package validate

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"movie_booking/constants"
	"movie_booking/model"
	"movie_booking/utils"
)

func validateMovieInput(c *fiber.Ctx) (*model.MovieInput, error) {
	input := new(model.MovieInput)
	if err := c.BodyParser(input); err != nil {
		return nil, utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, err)
	}
	if err := validate.Struct(input); err != nil {
		return nil, utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, err)
	}
	if _, err := time.Parse("2006-01-02", input.ReleaseDate); err != nil {
		return nil, utils.ErrorResponse(c, fiber.StatusBadRequest, "releaseDate must be YYYY-MM-DD", err)
	}
	return input, nil
}

func CreateMovie() fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := validateMovieInput(c)
		if err != nil {
			return err
		}
		c.Locals("movieInput", input)
		return c.Next()
	}
}

func EditMovie() fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := validateMovieInput(c)
		if err != nil {
			return err
		}
		c.Locals("movieInput", input)
		return c.Next()
	}
}

func FilterMovie() fiber.Handler {
	return func(c *fiber.Ctx) error {
		input := new(model.FilterMovieInput)
		if err := c.QueryParser(input); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, err)
		}
		if err := validate.Struct(input); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, err)
		}
		c.Locals("filterInput", input)
		return c.Next()
	}
}
