package model

import "time"

type Showtime struct {
	DTO
	MovieId      uint      `gorm:"index;not null" json:"movieId"`
	TheaterId    uint      `gorm:"not null" json:"theaterId"`
	ScreenNumber int       `gorm:"not null" json:"screenNumber"`
	ShowDateTime time.Time `gorm:"not null" json:"showDateTime"`
	BasePrice    float64   `gorm:"not null" json:"basePrice"`
	Status       string    `gorm:"size:20;default:'ACTIVE'" json:"status"`

	Movie   Movie   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	Theater Theater `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
}

type ShowtimeResponse struct {
	ShowtimeID   uint    `json:"showtimeId"`
	MovieID      uint    `json:"movieId"`
	TheaterID    uint    `json:"theaterId"`
	ScreenNumber int     `json:"screenNumber"`
	ShowDateTime string  `json:"showDateTime"`
	BasePrice    float64 `json:"basePrice"`
}

func (s *Showtime) ToResponse() ShowtimeResponse {
	return ShowtimeResponse{
		ShowtimeID:   s.ID,
		MovieID:      s.MovieId,
		TheaterID:    s.TheaterId,
		ScreenNumber: s.ScreenNumber,
		ShowDateTime: s.ShowDateTime.Format(time.RFC3339),
		BasePrice:    s.BasePrice,
	}
}

type ShowtimeInput struct {
	MovieID      uint    `json:"movieId" validate:"required,gt=0"`
	TheaterID    uint    `json:"theaterId" validate:"required,gt=0"`
	ScreenNumber int     `json:"screenNumber" validate:"required,gt=0"`
	ShowDateTime string  `json:"showDateTime" validate:"required"` // RFC3339
	BasePrice    float64 `json:"basePrice" validate:"required,gt=0"`
}

type FilterShowtimeInput struct {
	MovieId uint `query:"movieId" validate:"omitempty,gt=0"`
}
