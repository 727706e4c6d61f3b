package flow

import "movie_booking/client"

// BookingContext gom dữ liệu của một lượt đặt vé khi đi qua các bước.
// Chỉ Session được ghi vào đây; các bước khác chỉ đọc.
type BookingContext struct {
	Movie         *client.Movie `json:"movie,omitempty"`
	ShowtimeID    uint          `json:"showtimeId,omitempty"`
	ShowtimeLabel string        `json:"showtimeLabel,omitempty"`
	SeatLabels    []string      `json:"seatLabels,omitempty"`
	SeatIDs       []uint        `json:"seatIds,omitempty"`
	Subtotal      Cents         `json:"subtotal"`
	Fee           Cents         `json:"fee"`
	Total         Cents         `json:"total"`
	BookingID     uint          `json:"bookingId,omitempty"`
	BookingCode   string        `json:"bookingCode,omitempty"`
}

func (b *BookingContext) Reset() {
	*b = BookingContext{}
}

// Precondition của bước seats: đã có phim.
func (b *BookingContext) CanEnterSeats() bool {
	return b.Movie != nil
}

// Precondition của bước payment: có phim, có suất, có ít nhất một ghế.
func (b *BookingContext) CanEnterPayment() bool {
	return b.Movie != nil && b.ShowtimeID != 0 && len(b.SeatLabels) > 0
}

// Precondition của bước ticket: booking đã được backend ghi nhận.
func (b *BookingContext) CanEnterTicket() bool {
	return b.BookingID != 0
}
