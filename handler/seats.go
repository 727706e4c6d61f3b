package handler

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"movie_booking/constants"
	"movie_booking/database"
	"movie_booking/helper"
	"movie_booking/model"
	"movie_booking/utils"
)

// FetchShowtimeSeats dựng danh sách ghế của (rạp, phòng chiếu) thuộc
// suất chiếu, gắn status theo các booking đã hoàn tất. Dùng chung cho
// REST lẫn websocket fanout.
func FetchShowtimeSeats(showtimeID uint) ([]model.SeatResponse, error) {
	db := database.DB

	var showtime model.Showtime
	if err := db.First(&showtime, showtimeID).Error; err != nil {
		return nil, err
	}

	var seats []model.Seat
	if err := db.Where("theater_id = ? AND screen_number = ?", showtime.TheaterId, showtime.ScreenNumber).
		Order("seat_number ASC").Find(&seats).Error; err != nil {
		return nil, err
	}

	occupied, err := helper.OccupiedSeatIDs(db, showtimeID)
	if err != nil {
		return nil, err
	}

	response := make([]model.SeatResponse, 0, len(seats))
	for i := range seats {
		status := constants.SEAT_AVAILABLE
		if occupied[seats[i].ID] {
			status = constants.SEAT_OCCUPIED
		}
		response = append(response, seats[i].ToResponse(status))
	}
	return response, nil
}

// GetPublicSeats trả mảng JSON trần. Không có ?showtimeId= thì trả toàn
// bộ ghế vật lý không kèm status.
func GetPublicSeats(c *fiber.Ctx) error {
	showtimeIdStr := c.Query("showtimeId")

	if showtimeIdStr == "" {
		var seats []model.Seat
		if err := database.DB.Order("theater_id ASC, screen_number ASC, seat_number ASC").
			Find(&seats).Error; err != nil {
			return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
		}
		response := make([]model.SeatResponse, 0, len(seats))
		for i := range seats {
			response = append(response, seats[i].ToResponse(""))
		}
		return c.JSON(response)
	}

	showtimeId64, err := strconv.ParseUint(showtimeIdStr, 10, 32)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.DATA_INPUT_IS_NOT_NUMBER, err)
	}

	response, err := FetchShowtimeSeats(uint(showtimeId64))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, constants.SHOWTIME_NOT_FOUND, err)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	return c.JSON(response)
}
