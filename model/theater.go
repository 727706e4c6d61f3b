package model

type Theater struct {
	DTO
	Name        string `gorm:"size:120;not null" json:"name"`
	Address     string `gorm:"size:300" json:"address"`
	ScreenCount int    `json:"screenCount"`

	Seats []Seat `gorm:"foreignKey:TheaterId" json:"-"`
}
