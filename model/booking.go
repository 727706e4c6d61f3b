package model

import "time"

type Booking struct {
	DTO
	PublicCode    string     `gorm:"size:20;uniqueIndex" json:"publicCode"`
	UserId        uint       `json:"userId"`
	ShowtimeId    uint       `gorm:"index;not null" json:"showtimeId"`
	TotalAmount   float64    `json:"totalAmount"`
	PaymentStatus string     `gorm:"size:20" json:"paymentStatus"`
	PaymentMethod string     `gorm:"size:20" json:"paymentMethod"`
	Status        string     `gorm:"size:20;default:'COMPLETED'" json:"status"`
	PaidAt        *time.Time `json:"paidAt,omitempty"`

	Showtime Showtime      `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Seats    []BookingSeat `gorm:"foreignKey:BookingId" json:"seats"`
}

// BookingSeat gắn một ghế vật lý vào một booking của một suất chiếu.
// Unique theo (showtime, seat) để hai booking không thể giữ cùng một ghế.
type BookingSeat struct {
	DTO
	BookingId  uint `gorm:"index" json:"bookingId"`
	ShowtimeId uint `gorm:"uniqueIndex:idx_showtime_seat" json:"showtimeId"`
	SeatId     uint `gorm:"uniqueIndex:idx_showtime_seat" json:"seatId"`
	Seat       Seat `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}

type CreateBookingInput struct {
	UserID        uint    `json:"userId"`
	ShowtimeID    uint    `json:"showtimeId" validate:"required,gt=0"`
	TotalAmount   float64 `json:"totalAmount" validate:"gte=0"`
	PaymentStatus string  `json:"paymentStatus" validate:"required"`
	PaymentMethod string  `json:"paymentMethod" validate:"required"`
	SeatIDs       []uint  `json:"seatIds" validate:"required,min=1,dive,gt=0"`
}
