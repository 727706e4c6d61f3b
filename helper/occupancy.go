package helper

import (
	"gorm.io/gorm"

	"movie_booking/constants"
	"movie_booking/model"
)

// OccupiedSeatIDs trả về tập ghế đã thuộc booking hoàn tất của một suất
// chiếu. Đây là nguồn occupancy duy nhất: không random, cùng dữ liệu
// luôn cho cùng sơ đồ ghế.
func OccupiedSeatIDs(db *gorm.DB, showtimeID uint) (map[uint]bool, error) {
	var seatIDs []uint
	err := db.Model(&model.BookingSeat{}).
		Joins("JOIN bookings ON bookings.id = booking_seats.booking_id").
		Where("booking_seats.showtime_id = ? AND bookings.status = ?", showtimeID, constants.BOOKING_COMPLETED).
		Pluck("booking_seats.seat_id", &seatIDs).Error
	if err != nil {
		return nil, err
	}

	occupied := make(map[uint]bool, len(seatIDs))
	for _, id := range seatIDs {
		occupied[id] = true
	}
	return occupied, nil
}
