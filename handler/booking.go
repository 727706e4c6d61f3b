package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"movie_booking/constants"
	"movie_booking/database"
	"movie_booking/helper"
	"movie_booking/model"
	"movie_booking/utils"
)

func newBookingCode() string {
	return "BK" + strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
}

// publishSeatUpdate đẩy sơ đồ ghế mới lên kênh Redis của suất chiếu để
// các client đang mở websocket thấy ghế vừa bị giữ.
func publishSeatUpdate(showtimeID uint) {
	go func() {
		seats, err := FetchShowtimeSeats(showtimeID)
		if err != nil {
			log.Printf("Lỗi nạp ghế cho fanout: %v", err)
			return
		}
		payload, err := json.Marshal(seats)
		if err != nil {
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
		defer cancel()
		helper.RedisClient().Publish(ctx, fmt.Sprintf("showtime:%d", showtimeID), payload)
	}()
}

// CreateBooking ghi booking và giữ ghế trong một transaction. Ghế đã
// thuộc booking hoàn tất khác của cùng suất chiếu thì trả 409, unique
// index (showtime_id, seat_id) chặn nốt race còn lại.
func CreateBooking(c *fiber.Ctx) error {
	input, ok := c.Locals("bookingInput").(*model.CreateBookingInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, errors.New("missing booking input"))
	}

	db := database.DB

	var showtime model.Showtime
	if err := db.First(&showtime, input.ShowtimeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, constants.SHOWTIME_NOT_FOUND, err)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	var seatCount int64
	db.Model(&model.Seat{}).
		Where("id IN ? AND theater_id = ? AND screen_number = ?", input.SeatIDs, showtime.TheaterId, showtime.ScreenNumber).
		Count(&seatCount)
	if seatCount != int64(len(input.SeatIDs)) {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, errors.New("seat does not belong to this screen"))
	}

	booking := model.Booking{
		PublicCode:    newBookingCode(),
		UserId:        input.UserID,
		ShowtimeId:    input.ShowtimeID,
		TotalAmount:   input.TotalAmount,
		PaymentStatus: input.PaymentStatus,
		PaymentMethod: input.PaymentMethod,
		Status:        constants.BOOKING_COMPLETED,
		PaidAt:        utils.Ptr(time.Now()),
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		occupied, err := helper.OccupiedSeatIDs(tx, input.ShowtimeID)
		if err != nil {
			return err
		}
		for _, seatID := range input.SeatIDs {
			if occupied[seatID] {
				return gorm.ErrDuplicatedKey
			}
		}

		if err := tx.Create(&booking).Error; err != nil {
			return err
		}
		for _, seatID := range input.SeatIDs {
			bookingSeat := model.BookingSeat{
				BookingId:  booking.ID,
				ShowtimeId: input.ShowtimeID,
				SeatId:     seatID,
			}
			if err := tx.Create(&bookingSeat).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) || strings.Contains(strings.ToLower(err.Error()), "unique") {
			return utils.ErrorResponse(c, fiber.StatusConflict, constants.SEATS_ALREADY_BOOKED, err)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	publishSeatUpdate(input.ShowtimeID)

	// wire shape trần để client flow đọc thẳng bookingId
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"bookingId":  booking.ID,
		"publicCode": booking.PublicCode,
	})
}

// GetBookingByCode tra cứu vé theo public code, kèm ghế đã giữ.
func GetBookingByCode(c *fiber.Ctx) error {
	code := c.Params("code")

	db := database.DB
	var booking model.Booking
	if err := db.Preload("Seats").Preload("Seats.Seat").
		Where("public_code = ?", code).First(&booking).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, constants.BOOKING_NOT_FOUND, err)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, booking)
}
