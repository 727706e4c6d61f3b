package model

import "time"

type Movie struct {
	DTO
	Title         string    `gorm:"size:200;not null" json:"title"`
	Slug          string    `gorm:"size:220;uniqueIndex" json:"slug"`
	Description   string    `gorm:"type:text" json:"description"`
	Genre         string    `gorm:"size:60" json:"genre"`
	DurationMin   int       `json:"durationMin"`
	Rating        string    `gorm:"size:10" json:"rating"`
	ReleaseDate   time.Time `json:"releaseDate"`
	CoverImageUrl string    `gorm:"size:500" json:"coverImageUrl"`
	Status        string    `gorm:"size:20" json:"status"` // COMING_SOON, NOW_SHOWING, ENDED

	Showtimes []Showtime `gorm:"foreignKey:MovieId" json:"-"`
}

// MovieResponse là wire shape trả về cho client đặt vé
type MovieResponse struct {
	MovieID       uint   `json:"movieId"`
	Title         string `json:"title"`
	Genre         string `json:"genre"`
	DurationMin   int    `json:"durationMin"`
	Rating        string `json:"rating"`
	ReleaseDate   string `json:"releaseDate"`
	CoverImageUrl string `json:"coverImageUrl"`
	Description   string `json:"description,omitempty"`
}

func (m *Movie) ToResponse() MovieResponse {
	return MovieResponse{
		MovieID:       m.ID,
		Title:         m.Title,
		Genre:         m.Genre,
		DurationMin:   m.DurationMin,
		Rating:        m.Rating,
		ReleaseDate:   m.ReleaseDate.Format("2006-01-02"),
		CoverImageUrl: m.CoverImageUrl,
		Description:   m.Description,
	}
}

type MovieInput struct {
	Title         string `json:"title" validate:"required"`
	Description   string `json:"description"`
	Genre         string `json:"genre" validate:"required"`
	DurationMin   int    `json:"durationMin" validate:"required,gt=0"`
	Rating        string `json:"rating" validate:"required"`
	ReleaseDate   string `json:"releaseDate" validate:"required"` // YYYY-MM-DD
	CoverImageUrl string `json:"coverImageUrl" validate:"omitempty,url"`
}

type FilterMovieInput struct {
	Pagination
	Title  string `query:"title"`
	Genre  string `query:"genre"`
	Status string `query:"status" validate:"omitempty,oneof=COMING_SOON NOW_SHOWING ENDED"`
}
