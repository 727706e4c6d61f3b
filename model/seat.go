package model

type Seat struct {
	DTO
	TheaterId    uint    `gorm:"index:idx_seat_screen;not null" json:"theaterId"`
	ScreenNumber int     `gorm:"index:idx_seat_screen;not null" json:"screenNumber"`
	SeatNumber   int     `gorm:"not null" json:"seatNumber"`
	SeatType     string  `gorm:"size:20;default:'NORMAL'" json:"seatType"` // NORMAL, VIP
	Theater      Theater `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
}

// SeatResponse là wire shape của GET /seats, status được suy ra từ
// các booking đã xác nhận của suất chiếu đang xét.
type SeatResponse struct {
	SeatID       uint   `json:"seatId"`
	TheaterID    uint   `json:"theaterId"`
	ScreenNumber int    `json:"screenNumber"`
	SeatNumber   int    `json:"seatNumber"`
	SeatType     string `json:"seatType"`
	Status       string `json:"status,omitempty"`
}

func (s *Seat) ToResponse(status string) SeatResponse {
	return SeatResponse{
		SeatID:       s.ID,
		TheaterID:    s.TheaterId,
		ScreenNumber: s.ScreenNumber,
		SeatNumber:   s.SeatNumber,
		SeatType:     s.SeatType,
		Status:       status,
	}
}
