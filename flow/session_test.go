package flow

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"movie_booking/client"
)

// fakeAPI là backend giả cho flow core; các hook *Fn cho phép test chen
// hành động vào giữa một fetch đang bay.
type fakeAPI struct {
	movies    []client.Movie
	showtimes []client.Showtime
	seats     []client.Seat

	moviesErr   error
	showtimeErr error
	seatsErr    error

	bookingResp client.BookingResponse
	bookingErr  error
	bookings    []client.BookingRequest

	showtimesFn func()
	seatsFn     func()
}

func (f *fakeAPI) Movies() ([]client.Movie, error) {
	return f.movies, f.moviesErr
}

func (f *fakeAPI) Showtimes() ([]client.Showtime, error) {
	if f.showtimesFn != nil {
		f.showtimesFn()
	}
	return f.showtimes, f.showtimeErr
}

func (f *fakeAPI) Seats(showtimeID uint) ([]client.Seat, error) {
	if f.seatsFn != nil {
		f.seatsFn()
	}
	return f.seats, f.seatsErr
}

func (f *fakeAPI) CreateBooking(req client.BookingRequest) (client.BookingResponse, error) {
	f.bookings = append(f.bookings, req)
	return f.bookingResp, f.bookingErr
}

func seatsForScreen(theaterID uint, screen, n int, startID uint) []client.Seat {
	seats := make([]client.Seat, 0, n)
	for i := 0; i < n; i++ {
		seats = append(seats, client.Seat{
			SeatID:       startID + uint(i),
			TheaterID:    theaterID,
			ScreenNumber: screen,
			SeatNumber:   i + 1,
			SeatType:     "NORMAL",
		})
	}
	return seats
}

func newTestAPI() *fakeAPI {
	return &fakeAPI{
		movies: []client.Movie{
			{MovieID: 1, Title: "Dune: Part Two", Genre: "Sci-Fi", DurationMin: 120},
			{MovieID: 2, Title: "Oppenheimer", Genre: "Drama", DurationMin: 180},
		},
		showtimes: []client.Showtime{
			{ShowtimeID: 10, MovieID: 1, TheaterID: 1, ScreenNumber: 1, ShowDateTime: "2026-09-01T18:30:00Z", BasePrice: 12.50},
			{ShowtimeID: 11, MovieID: 1, TheaterID: 1, ScreenNumber: 2, ShowDateTime: "2026-09-01T21:00:00Z", BasePrice: 12.50},
			{ShowtimeID: 20, MovieID: 2, TheaterID: 2, ScreenNumber: 1, ShowDateTime: "2026-09-02T20:00:00Z", BasePrice: 10.00},
		},
		seats: append(
			seatsForScreen(1, 1, 20, 100),
			seatsForScreen(1, 2, 20, 200)...,
		),
		bookingResp: client.BookingResponse{BookingID: 42, PublicCode: "BK42TEST"},
	}
}

func loginToSeats(t *testing.T, api *fakeAPI) *Session {
	t.Helper()
	s := NewSession(api, 0)
	require.NoError(t, s.Login(7, "user@example.com", false))
	require.NoError(t, s.SelectMovie(1))
	require.Equal(t, StepSeats, s.Step())
	return s
}

func TestLoginLoadsMovies(t *testing.T) {
	api := newTestAPI()
	s := NewSession(api, 0)
	require.NoError(t, s.Login(7, "user@example.com", false))

	view := s.Snapshot()
	assert.Equal(t, StepMovies, view.Step)
	assert.Len(t, view.Movies, 2)
	assert.False(t, view.Loading)
}

func TestAdminLoginGoesToAdmin(t *testing.T) {
	api := newTestAPI()
	s := NewSession(api, 0)
	require.NoError(t, s.Login(1, "admin@theater.com", true))
	assert.Equal(t, StepAdmin, s.Step())
}

func TestSelectMovieFiltersShowtimesAndBuildsGrid(t *testing.T) {
	api := newTestAPI()
	s := loginToSeats(t, api)

	view := s.Snapshot()
	require.Len(t, view.Showtimes, 2, "only showtimes of movie 1")
	assert.Equal(t, uint(10), view.Context.ShowtimeID, "first showtime selected by default")
	require.Len(t, view.Grid, 2, "20 seats, 10 per row")
	assert.Len(t, view.Grid[0].Seats, 10)
}

func TestSelectUnknownMovie(t *testing.T) {
	api := newTestAPI()
	s := NewSession(api, 0)
	require.NoError(t, s.Login(7, "u@e.com", false))
	assert.ErrorIs(t, s.SelectMovie(999), ErrUnknownMovie)
	assert.Equal(t, StepMovies, s.Step())
}

func TestRejectedSelectMovieKeepsContext(t *testing.T) {
	api := newTestAPI()
	s := loginToSeats(t, api)
	require.NoError(t, s.ToggleSeat("A1"))

	// chọn phim khi không ở bước movies bị từ chối, không đụng context
	err := s.SelectMovie(2)
	require.ErrorIs(t, err, ErrInvalidTransition)

	view := s.Snapshot()
	assert.Equal(t, StepSeats, view.Step)
	require.NotNil(t, view.Context.Movie)
	assert.Equal(t, uint(1), view.Context.Movie.MovieID, "movie of the running flow kept")
	assert.Equal(t, []string{"A1"}, view.Context.SeatLabels)

	// flow tiếp tục bình thường sau pha từ chối
	require.NoError(t, s.ConfirmSeats())
	assert.Equal(t, StepPayment, s.Step())
}

func TestToggleRecomputesTotal(t *testing.T) {
	api := newTestAPI()
	s := loginToSeats(t, api)

	require.NoError(t, s.ToggleSeat("A1"))
	require.NoError(t, s.ToggleSeat("A2"))
	view := s.Snapshot()
	assert.Equal(t, []string{"A1", "A2"}, view.Context.SeatLabels)
	assert.Equal(t, Cents(2500), view.Context.Total)

	require.NoError(t, s.ToggleSeat("A2"))
	view = s.Snapshot()
	assert.Equal(t, []string{"A1"}, view.Context.SeatLabels)
	assert.Equal(t, Cents(1250), view.Context.Total, "total recomputed, not accumulated")
}

func TestSwitchingShowtimeClearsSelection(t *testing.T) {
	api := newTestAPI()
	s := loginToSeats(t, api)

	require.NoError(t, s.ToggleSeat("A1"))
	require.NoError(t, s.ToggleSeat("A2"))
	require.NoError(t, s.ToggleSeat("B3"))
	require.NoError(t, s.SelectShowtime(11))

	view := s.Snapshot()
	assert.Equal(t, uint(11), view.Context.ShowtimeID)
	assert.Empty(t, view.Context.SeatLabels, "selection cleared on showtime switch")
	assert.Equal(t, Cents(0), view.Context.Total)
}

func TestSelectShowtimeOutsideMovie(t *testing.T) {
	api := newTestAPI()
	s := loginToSeats(t, api)
	assert.ErrorIs(t, s.SelectShowtime(20), ErrUnknownShowtime)
}

func TestConfirmSeatsGuard(t *testing.T) {
	api := newTestAPI()
	s := loginToSeats(t, api)

	err := s.ConfirmSeats()
	assert.ErrorIs(t, err, ErrNoSeatsSelected)
	assert.Equal(t, StepSeats, s.Step(), "confirm with zero seats never changes step")

	require.NoError(t, s.ToggleSeat("A1"))
	require.NoError(t, s.ConfirmSeats())
	assert.Equal(t, StepPayment, s.Step())
}

func TestEmptySeatListKeepsConfirmDisabled(t *testing.T) {
	api := newTestAPI()
	api.seats = nil
	s := loginToSeats(t, api)

	view := s.Snapshot()
	assert.Empty(t, view.Grid)
	assert.ErrorIs(t, s.ConfirmSeats(), ErrNoSeatsSelected)
	assert.Equal(t, StepSeats, s.Step())
}

func TestEndToEndBooking(t *testing.T) {
	api := newTestAPI()
	s := loginToSeats(t, api)

	require.NoError(t, s.ToggleSeat("A1"))
	require.NoError(t, s.ToggleSeat("A2"))
	require.NoError(t, s.ConfirmSeats())

	view := s.Snapshot()
	assert.Equal(t, Cents(2500), view.Context.Total)

	require.NoError(t, s.SubmitPayment("credit"))
	require.Equal(t, StepTicket, s.Step())

	require.Len(t, api.bookings, 1)
	req := api.bookings[0]
	assert.Equal(t, uint(10), req.ShowtimeID)
	assert.Equal(t, 25.00, req.TotalAmount)
	assert.Equal(t, []uint{100, 101}, req.SeatIDs)
	assert.Equal(t, "completed", req.PaymentStatus)
	assert.Equal(t, "credit", req.PaymentMethod)

	ticket, err := s.CompleteBooking()
	require.NoError(t, err)
	assert.Equal(t, uint(42), ticket.BookingID)
	assert.Equal(t, []string{"A1", "A2"}, ticket.Seats)
	assert.Equal(t, "$25.00", ticket.Total)
	assert.Contains(t, ticket.QRPayload, `"bookingId":42`)
}

func TestBookingFeeAddedAtPaymentStep(t *testing.T) {
	api := newTestAPI()
	s := NewSession(api, 250)
	require.NoError(t, s.Login(7, "u@e.com", false))
	require.NoError(t, s.SelectMovie(1))
	require.NoError(t, s.ToggleSeat("A1"))

	view := s.Snapshot()
	assert.Equal(t, Cents(1250), view.Context.Total, "fee not carried in the seats step")

	require.NoError(t, s.ConfirmSeats())
	view = s.Snapshot()
	assert.Equal(t, Cents(1250), view.Context.Subtotal)
	assert.Equal(t, Cents(250), view.Context.Fee)
	assert.Equal(t, Cents(1500), view.Context.Total)

	require.NoError(t, s.SubmitPayment(""))
	assert.Equal(t, 15.00, api.bookings[0].TotalAmount)
	assert.Equal(t, "credit", api.bookings[0].PaymentMethod)
}

func TestPaymentFailureKeepsStepAndPayload(t *testing.T) {
	api := newTestAPI()
	api.bookingErr = errors.New("boom")
	s := loginToSeats(t, api)

	require.NoError(t, s.ToggleSeat("A1"))
	require.NoError(t, s.ToggleSeat("A2"))
	require.NoError(t, s.ConfirmSeats())

	err := s.SubmitPayment("credit")
	require.Error(t, err)
	assert.Equal(t, StepPayment, s.Step(), "failed submission stays on payment")

	view := s.Snapshot()
	assert.Equal(t, Cents(2500), view.Context.Total, "context unchanged")
	assert.NotEmpty(t, view.LastError)

	// retry gửi lại đúng payload cũ
	api.bookingErr = nil
	require.NoError(t, s.SubmitPayment("credit"))
	require.Len(t, api.bookings, 2)
	assert.Equal(t, api.bookings[0], api.bookings[1])
	assert.Equal(t, StepTicket, s.Step())
}

func TestMissingBookingIdIsFailure(t *testing.T) {
	api := newTestAPI()
	api.bookingResp = client.BookingResponse{}
	s := loginToSeats(t, api)
	require.NoError(t, s.ToggleSeat("A1"))
	require.NoError(t, s.ConfirmSeats())

	require.Error(t, s.SubmitPayment("credit"))
	assert.Equal(t, StepPayment, s.Step())
}

func TestFetchFailureKeepsPriorState(t *testing.T) {
	api := newTestAPI()
	s := loginToSeats(t, api)
	require.NoError(t, s.ToggleSeat("A1"))

	api.seatsErr = errors.New("network down")
	require.Error(t, s.SelectShowtime(11))

	view := s.Snapshot()
	assert.Equal(t, StepSeats, view.Step)
	assert.NotEmpty(t, view.LastError)
	assert.Equal(t, uint(10), view.Context.ShowtimeID, "active showtime untouched on fetch failure")
}

func TestStaleResponseDiscardedAfterLogout(t *testing.T) {
	api := newTestAPI()
	s := NewSession(api, 0)
	require.NoError(t, s.Login(7, "u@e.com", false))

	// logout chen vào giữa lúc showtimes đang được tải
	api.showtimesFn = func() { s.Logout() }
	err := s.SelectMovie(1)
	require.NoError(t, err, "stale result is a discard, not an error")

	view := s.Snapshot()
	assert.Equal(t, StepLogin, view.Step)
	assert.Empty(t, view.Showtimes)
	assert.Empty(t, view.Grid)
	assert.Empty(t, view.Context.SeatLabels)
	assert.Nil(t, view.Context.Movie)
}

func TestBackPreservesLaterStepData(t *testing.T) {
	api := newTestAPI()
	s := loginToSeats(t, api)
	require.NoError(t, s.ToggleSeat("A1"))
	require.NoError(t, s.ConfirmSeats())

	assert.Equal(t, StepSeats, s.Back())
	view := s.Snapshot()
	assert.Equal(t, []string{"A1"}, view.Context.SeatLabels, "back does not clear entered data")

	// quay lại payment vẫn hợp lệ với dữ liệu cũ
	require.NoError(t, s.ConfirmSeats())
	assert.Equal(t, StepPayment, s.Step())
}

func TestReturnHomeResetsContext(t *testing.T) {
	api := newTestAPI()
	s := loginToSeats(t, api)
	require.NoError(t, s.ToggleSeat("A1"))
	require.NoError(t, s.ConfirmSeats())
	require.NoError(t, s.SubmitPayment("credit"))

	require.NoError(t, s.ReturnHome())
	view := s.Snapshot()
	assert.Equal(t, StepMovies, view.Step)
	assert.Nil(t, view.Context.Movie)
	assert.Zero(t, view.Context.BookingID)
	assert.Len(t, view.Movies, 2, "movie list reloaded")
}

func TestReturnHomeOnlyFromTicket(t *testing.T) {
	api := newTestAPI()
	s := loginToSeats(t, api)
	assert.ErrorIs(t, s.ReturnHome(), ErrInvalidTransition)
}

func TestLogoutClearsEverything(t *testing.T) {
	api := newTestAPI()
	s := loginToSeats(t, api)
	require.NoError(t, s.ToggleSeat("A1"))

	s.Logout()
	view := s.Snapshot()
	assert.Equal(t, StepLogin, view.Step)
	assert.Empty(t, view.Movies)
	assert.Nil(t, view.Context.Movie)
	assert.Zero(t, view.Context.Total)
}

func TestDefaultShowtimeHelpers(t *testing.T) {
	api := newTestAPI()
	filtered := FilterByMovie(api.showtimes, 1)
	require.Len(t, filtered, 2)
	assert.Equal(t, uint(10), filtered[0].ShowtimeID)

	st := DefaultShowtime(filtered)
	require.NotNil(t, st)
	assert.Equal(t, uint(10), st.ShowtimeID)

	assert.Nil(t, DefaultShowtime(nil))
}

func TestMovieWithoutShowtimes(t *testing.T) {
	api := newTestAPI()
	api.showtimes = nil
	s := NewSession(api, 0)
	require.NoError(t, s.Login(7, "u@e.com", false))
	require.NoError(t, s.SelectMovie(1))

	view := s.Snapshot()
	assert.Equal(t, StepSeats, view.Step)
	assert.Empty(t, view.Grid)
	assert.Zero(t, view.Context.ShowtimeID)
	assert.ErrorIs(t, s.ConfirmSeats(), ErrShowtimeRequired)
}
