package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Wire shapes của booking backend. Flow core chỉ nói chuyện với backend
// qua BookingAPI nên có thể thay bằng fake trong test.

type Movie struct {
	MovieID       uint   `json:"movieId"`
	Title         string `json:"title"`
	Genre         string `json:"genre"`
	DurationMin   int    `json:"durationMin"`
	Rating        string `json:"rating"`
	ReleaseDate   string `json:"releaseDate"`
	CoverImageUrl string `json:"coverImageUrl"`
	Description   string `json:"description,omitempty"`
}

type Showtime struct {
	ShowtimeID   uint    `json:"showtimeId"`
	MovieID      uint    `json:"movieId"`
	TheaterID    uint    `json:"theaterId"`
	ScreenNumber int     `json:"screenNumber"`
	ShowDateTime string  `json:"showDateTime"`
	BasePrice    float64 `json:"basePrice"`
}

type Seat struct {
	SeatID       uint   `json:"seatId"`
	TheaterID    uint   `json:"theaterId"`
	ScreenNumber int    `json:"screenNumber"`
	SeatNumber   int    `json:"seatNumber"`
	SeatType     string `json:"seatType"`
	Status       string `json:"status,omitempty"` // available | occupied
}

type BookingRequest struct {
	UserID        uint    `json:"userId"`
	ShowtimeID    uint    `json:"showtimeId"`
	TotalAmount   float64 `json:"totalAmount"`
	PaymentStatus string  `json:"paymentStatus"`
	PaymentMethod string  `json:"paymentMethod"`
	SeatIDs       []uint  `json:"seatIds"`
}

type BookingResponse struct {
	BookingID  uint   `json:"bookingId"`
	PublicCode string `json:"publicCode,omitempty"`
}

type BookingAPI interface {
	Movies() ([]Movie, error)
	Showtimes() ([]Showtime, error)
	// Seats trả về toàn bộ ghế; truyền showtimeId để backend gắn status
	// occupied theo các booking đã xác nhận của suất chiếu đó.
	Seats(showtimeID uint) ([]Seat, error)
	CreateBooking(req BookingRequest) (BookingResponse, error)
}

type HTTP struct {
	baseURL string
	client  *http.Client
}

func New(baseURL string) *HTTP {
	return &HTTP{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

func (h *HTTP) getJSON(path string, out any) error {
	resp, err := h.client.Get(h.baseURL + path)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("GET %s: status %d: %s", path, resp.StatusCode, string(body))
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func (h *HTTP) Movies() ([]Movie, error) {
	var movies []Movie
	if err := h.getJSON("/api/movies", &movies); err != nil {
		return nil, err
	}
	return movies, nil
}

func (h *HTTP) Showtimes() ([]Showtime, error) {
	var showtimes []Showtime
	if err := h.getJSON("/api/showtimes", &showtimes); err != nil {
		return nil, err
	}
	return showtimes, nil
}

func (h *HTTP) Seats(showtimeID uint) ([]Seat, error) {
	path := "/api/seats"
	if showtimeID > 0 {
		path = fmt.Sprintf("/api/seats?showtimeId=%d", showtimeID)
	}
	var seats []Seat
	if err := h.getJSON(path, &seats); err != nil {
		return nil, err
	}
	return seats, nil
}

func (h *HTTP) CreateBooking(req BookingRequest) (BookingResponse, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return BookingResponse{}, err
	}

	resp, err := h.client.Post(h.baseURL+"/api/bookings", "application/json", bytes.NewReader(payload))
	if err != nil {
		return BookingResponse{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return BookingResponse{}, fmt.Errorf("POST /api/bookings: status %d: %s", resp.StatusCode, string(body))
	}

	var result BookingResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return BookingResponse{}, err
	}
	return result, nil
}
