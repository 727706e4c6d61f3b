package handler_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"movie_booking/constants"
	"movie_booking/database"
	"movie_booking/model"
	"movie_booking/router"
)

func setupApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()
	db := database.ConnectTestDB()
	database.SeedData(db)

	app := fiber.New()
	router.SetupRoutes(app)
	return app, db
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body any, cookies ...*http.Cookie) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, ck := range cookies {
		req.AddCookie(ck)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, out any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

func firstShowtime(t *testing.T, db *gorm.DB) model.Showtime {
	t.Helper()
	var st model.Showtime
	require.NoError(t, db.Order("id ASC").First(&st).Error)
	return st
}

func TestGetPublicMovies(t *testing.T) {
	app, _ := setupApp(t)

	resp := doJSON(t, app, http.MethodGet, "/api/movies", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var movies []model.MovieResponse
	decodeBody(t, resp, &movies)

	// chỉ phim NOW_SHOWING, phim COMING_SOON không xuất hiện
	assert.Len(t, movies, 3)
	for _, m := range movies {
		assert.NotZero(t, m.MovieID)
		assert.NotEmpty(t, m.Title)
		assert.NotEqual(t, "Paper Lanterns", m.Title)
	}
}

func TestGetPublicShowtimesFilterByMovie(t *testing.T) {
	app, db := setupApp(t)
	st := firstShowtime(t, db)

	resp := doJSON(t, app, http.MethodGet, fmt.Sprintf("/api/showtimes?movieId=%d", st.MovieId), nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var showtimes []model.ShowtimeResponse
	decodeBody(t, resp, &showtimes)

	assert.Len(t, showtimes, 3)
	for _, s := range showtimes {
		assert.Equal(t, st.MovieId, s.MovieID)
	}
}

func TestGetPublicSeatsOccupancy(t *testing.T) {
	app, db := setupApp(t)
	st := firstShowtime(t, db)

	resp := doJSON(t, app, http.MethodGet, fmt.Sprintf("/api/seats?showtimeId=%d", st.ID), nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var seats []model.SeatResponse
	decodeBody(t, resp, &seats)

	require.Len(t, seats, 80)
	occupied := 0
	for _, seat := range seats {
		if seat.Status == constants.SEAT_OCCUPIED {
			occupied++
		}
	}
	// seed giữ sẵn ghế 5, 6, 17, 18 cho suất đầu của mỗi phim
	assert.Equal(t, 4, occupied)

	// cùng dữ liệu thì occupancy tái lập y hệt
	resp2 := doJSON(t, app, http.MethodGet, fmt.Sprintf("/api/seats?showtimeId=%d", st.ID), nil)
	var seats2 []model.SeatResponse
	decodeBody(t, resp2, &seats2)
	assert.Equal(t, seats, seats2)
}

func TestGetPublicSeatsUnknownShowtime(t *testing.T) {
	app, _ := setupApp(t)

	resp := doJSON(t, app, http.MethodGet, "/api/seats?showtimeId=99999", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestCreateBookingAndConflict(t *testing.T) {
	app, db := setupApp(t)
	st := firstShowtime(t, db)

	var freeSeats []model.Seat
	require.NoError(t, db.Where("theater_id = ? AND screen_number = ? AND seat_number IN ?",
		st.TheaterId, st.ScreenNumber, []int{1, 2}).Find(&freeSeats).Error)
	require.Len(t, freeSeats, 2)

	input := model.CreateBookingInput{
		UserID:        1,
		ShowtimeID:    st.ID,
		TotalAmount:   st.BasePrice * 2,
		PaymentStatus: "completed",
		PaymentMethod: "credit",
		SeatIDs:       []uint{freeSeats[0].ID, freeSeats[1].ID},
	}

	resp := doJSON(t, app, http.MethodPost, "/api/bookings", input)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var created struct {
		BookingID  uint   `json:"bookingId"`
		PublicCode string `json:"publicCode"`
	}
	decodeBody(t, resp, &created)
	assert.NotZero(t, created.BookingID)
	assert.Contains(t, created.PublicCode, "BK")

	// đặt lại đúng hai ghế đó phải bị chặn
	resp2 := doJSON(t, app, http.MethodPost, "/api/bookings", input)
	assert.Equal(t, http.StatusConflict, resp2.StatusCode)

	// và ghế phải hiện occupied ngay sau đó
	respSeats := doJSON(t, app, http.MethodGet, fmt.Sprintf("/api/seats?showtimeId=%d", st.ID), nil)
	var seats []model.SeatResponse
	decodeBody(t, respSeats, &seats)
	occupied := map[uint]bool{}
	for _, seat := range seats {
		if seat.Status == constants.SEAT_OCCUPIED {
			occupied[seat.SeatID] = true
		}
	}
	assert.True(t, occupied[freeSeats[0].ID])
	assert.True(t, occupied[freeSeats[1].ID])
}

func TestCreateBookingSeedSeatConflict(t *testing.T) {
	app, db := setupApp(t)
	st := firstShowtime(t, db)

	var seededSeat model.Seat
	require.NoError(t, db.Where("theater_id = ? AND screen_number = ? AND seat_number = ?",
		st.TheaterId, st.ScreenNumber, 5).First(&seededSeat).Error)

	input := model.CreateBookingInput{
		UserID:        1,
		ShowtimeID:    st.ID,
		TotalAmount:   st.BasePrice,
		PaymentStatus: "completed",
		PaymentMethod: "credit",
		SeatIDs:       []uint{seededSeat.ID},
	}
	resp := doJSON(t, app, http.MethodPost, "/api/bookings", input)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestCreateBookingValidation(t *testing.T) {
	app, _ := setupApp(t)

	// thiếu seatIds
	resp := doJSON(t, app, http.MethodPost, "/api/bookings", fiber.Map{
		"showtimeId":    1,
		"totalAmount":   10.0,
		"paymentStatus": "completed",
		"paymentMethod": "credit",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// suất chiếu không tồn tại
	resp2 := doJSON(t, app, http.MethodPost, "/api/bookings", model.CreateBookingInput{
		UserID:        1,
		ShowtimeID:    99999,
		TotalAmount:   10.0,
		PaymentStatus: "completed",
		PaymentMethod: "credit",
		SeatIDs:       []uint{1},
	})
	assert.Equal(t, http.StatusNotFound, resp2.StatusCode)
}

func TestLogin(t *testing.T) {
	app, _ := setupApp(t)

	resp := doJSON(t, app, http.MethodPost, "/api/auth/login", model.LoginInput{
		Email:    "admin@theater.com",
		Password: "admin123",
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	hasAccess := false
	for _, ck := range resp.Cookies() {
		if ck.Name == "access_token" && ck.Value != "" {
			hasAccess = true
		}
	}
	assert.True(t, hasAccess)

	var body struct {
		Message string `json:"message"`
		User    struct {
			Role string `json:"role"`
		} `json:"user"`
	}
	decodeBody(t, resp, &body)
	assert.Equal(t, "login success", body.Message)
	assert.Equal(t, constants.ROLE_ADMIN, body.User.Role)
}

func TestLoginBadPassword(t *testing.T) {
	app, _ := setupApp(t)

	resp := doJSON(t, app, http.MethodPost, "/api/auth/login", model.LoginInput{
		Email:    "admin@theater.com",
		Password: "wrong-password",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestRegister(t *testing.T) {
	app, _ := setupApp(t)

	input := model.RegisterInput{
		Name:            "New Customer",
		Email:           "new@theater.com",
		Password:        "secret123",
		ConfirmPassword: "secret123",
	}
	resp := doJSON(t, app, http.MethodPost, "/api/auth/register", input)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	// email đã tồn tại
	resp2 := doJSON(t, app, http.MethodPost, "/api/auth/register", input)
	assert.Equal(t, http.StatusConflict, resp2.StatusCode)

	// mật khẩu xác nhận lệch
	input.Email = "other@theater.com"
	input.ConfirmPassword = "different1"
	resp3 := doJSON(t, app, http.MethodPost, "/api/auth/register", input)
	assert.Equal(t, http.StatusBadRequest, resp3.StatusCode)
}

func adminCookies(t *testing.T, app *fiber.App) []*http.Cookie {
	t.Helper()
	resp := doJSON(t, app, http.MethodPost, "/api/auth/login", model.LoginInput{
		Email:    "admin@theater.com",
		Password: "admin123",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	return resp.Cookies()
}

func TestAdminMovieCRUD(t *testing.T) {
	app, db := setupApp(t)
	cookies := adminCookies(t, app)

	// không đăng nhập thì bị chặn
	resp := doJSON(t, app, http.MethodPost, "/api/admin/movies", model.MovieInput{
		Title: "Blocked", Genre: "Drama", DurationMin: 90, Rating: "PG", ReleaseDate: "2026-12-01",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	// tạo phim mới
	created := doJSON(t, app, http.MethodPost, "/api/admin/movies", model.MovieInput{
		Title:       "Winter Light",
		Description: "A projectionist's final reel.",
		Genre:       "Drama",
		DurationMin: 101,
		Rating:      "PG",
		ReleaseDate: "2027-01-15",
	}, cookies...)
	require.Equal(t, http.StatusCreated, created.StatusCode)

	var createdBody struct {
		Data model.Movie `json:"data"`
	}
	decodeBody(t, created, &createdBody)
	movie := createdBody.Data
	assert.NotZero(t, movie.ID)
	assert.Equal(t, "winter-light", movie.Slug)
	assert.Equal(t, constants.MOVIE_COMING_SOON, movie.Status)

	// sửa phim
	updated := doJSON(t, app, http.MethodPut, fmt.Sprintf("/api/admin/movies/%d", movie.ID), model.MovieInput{
		Title:       "Winter Light",
		Description: "Updated synopsis.",
		Genre:       "Drama",
		DurationMin: 105,
		Rating:      "PG-13",
		ReleaseDate: "2027-01-15",
	}, cookies...)
	assert.Equal(t, http.StatusOK, updated.StatusCode)

	var stored model.Movie
	require.NoError(t, db.First(&stored, movie.ID).Error)
	assert.Equal(t, 105, stored.DurationMin)
	assert.Equal(t, "PG-13", stored.Rating)

	// xoá phim
	deleted := doJSON(t, app, http.MethodDelete, fmt.Sprintf("/api/admin/movies/%d", movie.ID), nil, cookies...)
	assert.Equal(t, http.StatusOK, deleted.StatusCode)
	assert.ErrorIs(t, db.First(&stored, movie.ID).Error, gorm.ErrRecordNotFound)
}

func TestAdminMovieValidation(t *testing.T) {
	app, _ := setupApp(t)
	cookies := adminCookies(t, app)

	// thiếu title
	resp := doJSON(t, app, http.MethodPost, "/api/admin/movies", fiber.Map{
		"genre": "Drama", "durationMin": 90, "rating": "PG", "releaseDate": "2026-12-01",
	}, cookies...)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// releaseDate sai định dạng
	resp2 := doJSON(t, app, http.MethodPost, "/api/admin/movies", model.MovieInput{
		Title: "Bad Date", Genre: "Drama", DurationMin: 90, Rating: "PG", ReleaseDate: "12/01/2026",
	}, cookies...)
	assert.Equal(t, http.StatusBadRequest, resp2.StatusCode)
}

func TestAdminRequiresAdminRole(t *testing.T) {
	app, _ := setupApp(t)

	resp := doJSON(t, app, http.MethodPost, "/api/auth/login", model.LoginInput{
		Email:    "demo@theater.com",
		Password: "admin123",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	blocked := doJSON(t, app, http.MethodGet, "/api/admin/movies", nil, resp.Cookies()...)
	assert.Equal(t, http.StatusForbidden, blocked.StatusCode)
}

func TestAdminCreateShowtime(t *testing.T) {
	app, db := setupApp(t)
	cookies := adminCookies(t, app)

	var movie model.Movie
	require.NoError(t, db.Where("status = ?", constants.MOVIE_NOW_SHOWING).First(&movie).Error)

	resp := doJSON(t, app, http.MethodPost, "/api/admin/showtimes", model.ShowtimeInput{
		MovieID:      movie.ID,
		TheaterID:    1,
		ScreenNumber: 1,
		ShowDateTime: "2027-06-01T19:30:00Z",
		BasePrice:    11.50,
	}, cookies...)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	// phim không tồn tại
	resp2 := doJSON(t, app, http.MethodPost, "/api/admin/showtimes", model.ShowtimeInput{
		MovieID:      99999,
		TheaterID:    1,
		ScreenNumber: 1,
		ShowDateTime: "2027-06-01T19:30:00Z",
		BasePrice:    11.50,
	}, cookies...)
	assert.Equal(t, http.StatusNotFound, resp2.StatusCode)
}

func TestGetBookingByCode(t *testing.T) {
	app, db := setupApp(t)

	var booking model.Booking
	require.NoError(t, db.Order("id ASC").First(&booking).Error)

	resp := doJSON(t, app, http.MethodGet, "/api/bookings/code/"+booking.PublicCode, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	missing := doJSON(t, app, http.MethodGet, "/api/bookings/code/NOPE", nil)
	assert.Equal(t, http.StatusNotFound, missing.StatusCode)
}
