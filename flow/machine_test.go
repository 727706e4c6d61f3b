package flow

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"movie_booking/client"
)

func TestMachineStartsAtLogin(t *testing.T) {
	m := NewMachine()
	assert.Equal(t, StepLogin, m.Step())
}

func TestMachineHappyPath(t *testing.T) {
	m := NewMachine()
	ctx := &BookingContext{}

	require.NoError(t, m.Advance(StepMovies, ctx))

	ctx.Movie = &client.Movie{MovieID: 1, Title: "Dune"}
	require.NoError(t, m.Advance(StepSeats, ctx))

	ctx.ShowtimeID = 7
	ctx.SeatLabels = []string{"A1"}
	require.NoError(t, m.Advance(StepPayment, ctx))

	ctx.BookingID = 42
	require.NoError(t, m.Advance(StepTicket, ctx))
	assert.Equal(t, StepTicket, m.Step())
}

func TestMachineGuardSeatsNeedsMovie(t *testing.T) {
	m := NewMachine()
	ctx := &BookingContext{}
	require.NoError(t, m.Advance(StepMovies, ctx))

	err := m.Advance(StepSeats, ctx)
	assert.ErrorIs(t, err, ErrMovieRequired)
	assert.Equal(t, StepMovies, m.Step(), "failed guard leaves step unchanged")
}

func TestMachineGuardPaymentNeedsSeats(t *testing.T) {
	m := NewMachine()
	ctx := &BookingContext{Movie: &client.Movie{MovieID: 1}}
	require.NoError(t, m.Advance(StepMovies, ctx))
	require.NoError(t, m.Advance(StepSeats, ctx))

	// chưa có suất
	err := m.Advance(StepPayment, ctx)
	assert.ErrorIs(t, err, ErrShowtimeRequired)

	// có suất nhưng chưa chọn ghế
	ctx.ShowtimeID = 3
	err = m.Advance(StepPayment, ctx)
	assert.ErrorIs(t, err, ErrNoSeatsSelected)
	assert.Equal(t, StepSeats, m.Step())
}

func TestMachineRejectsSkips(t *testing.T) {
	m := NewMachine()
	ctx := &BookingContext{Movie: &client.Movie{MovieID: 1}, ShowtimeID: 1, SeatLabels: []string{"A1"}, BookingID: 9}

	assert.ErrorIs(t, m.Advance(StepPayment, ctx), ErrInvalidTransition)
	assert.ErrorIs(t, m.Advance(StepTicket, ctx), ErrInvalidTransition)
	assert.Equal(t, StepLogin, m.Step())
}

func TestMachineAdminOnlyFromLogin(t *testing.T) {
	m := NewMachine()
	ctx := &BookingContext{}
	require.NoError(t, m.Advance(StepAdmin, ctx))
	assert.Equal(t, StepAdmin, m.Step())

	m2 := NewMachine()
	require.NoError(t, m2.Advance(StepMovies, ctx))
	assert.ErrorIs(t, m2.Advance(StepAdmin, ctx), ErrInvalidTransition)
}

func TestMachineBackWalksHistory(t *testing.T) {
	m := NewMachine()
	ctx := &BookingContext{Movie: &client.Movie{MovieID: 1}, ShowtimeID: 1, SeatLabels: []string{"A1"}}
	require.NoError(t, m.Advance(StepMovies, ctx))
	require.NoError(t, m.Advance(StepSeats, ctx))
	require.NoError(t, m.Advance(StepPayment, ctx))

	assert.Equal(t, StepSeats, m.Back())
	assert.Equal(t, StepMovies, m.Back())
	assert.Equal(t, StepLogin, m.Back())
	// hết lịch sử thì đứng yên
	assert.Equal(t, StepLogin, m.Back())
}

func TestMachineLogoutFromAnywhere(t *testing.T) {
	m := NewMachine()
	ctx := &BookingContext{Movie: &client.Movie{MovieID: 1}}
	require.NoError(t, m.Advance(StepMovies, ctx))
	require.NoError(t, m.Advance(StepSeats, ctx))

	m.Logout()
	assert.Equal(t, StepLogin, m.Step())
	assert.Equal(t, StepLogin, m.Back(), "logout clears history")
}
