package handler

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"movie_booking/constants"
	"movie_booking/database"
	"movie_booking/helper"
	"movie_booking/model"
	"movie_booking/utils"
)

// GetPublicShowtimes trả mảng JSON trần các suất chiếu ACTIVE,
// lọc được theo ?movieId=.
func GetPublicShowtimes(c *fiber.Ctx) error {
	filterInput := new(model.FilterShowtimeInput)
	if err := c.QueryParser(filterInput); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, err)
	}

	cacheable := filterInput.MovieId == 0
	if cacheable {
		if cached, ok := helper.CacheGet("catalog:showtimes"); ok {
			c.Set("Content-Type", "application/json")
			return c.Send(cached)
		}
	}

	db := database.DB
	condition := db.Model(&model.Showtime{}).
		Where("status = ? AND show_date_time > ?", constants.SHOWTIME_ACTIVE, time.Now())
	if filterInput.MovieId > 0 {
		condition = condition.Where("movie_id = ?", filterInput.MovieId)
	}

	var showtimes []model.Showtime
	if err := condition.Order("show_date_time ASC, id ASC").Find(&showtimes).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	response := make([]model.ShowtimeResponse, 0, len(showtimes))
	for i := range showtimes {
		response = append(response, showtimes[i].ToResponse())
	}

	if cacheable {
		if payload, err := json.Marshal(response); err == nil {
			helper.CacheSet("catalog:showtimes", payload)
		}
	}
	return c.JSON(response)
}

// ===== Admin =====

func CreateShowtime(c *fiber.Ctx) error {
	input, ok := c.Locals("showtimeInput").(*model.ShowtimeInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, errors.New("missing showtime input"))
	}

	db := database.DB

	var movie model.Movie
	if err := db.First(&movie, input.MovieID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, constants.MOVIE_NOT_FOUND, err)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	showDateTime, _ := time.Parse(time.RFC3339, input.ShowDateTime)
	showtime := model.Showtime{
		MovieId:      input.MovieID,
		TheaterId:    input.TheaterID,
		ScreenNumber: input.ScreenNumber,
		ShowDateTime: showDateTime,
		BasePrice:    input.BasePrice,
		Status:       constants.SHOWTIME_ACTIVE,
	}
	if err := db.Create(&showtime).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	helper.InvalidateCatalog()
	return utils.SuccessResponse(c, fiber.StatusCreated, showtime)
}

func DeleteShowtime(c *fiber.Ctx) error {
	showtimeId := c.Locals("inputId").(int)

	db := database.DB
	var showtime model.Showtime
	if err := db.First(&showtime, showtimeId).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, constants.SHOWTIME_NOT_FOUND, err)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	if err := db.Delete(&showtime).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	helper.InvalidateCatalog()
	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{"deleted": showtime.ID})
}
