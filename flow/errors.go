package flow

import "errors"

var (
	ErrInvalidTransition = errors.New("transition not allowed from current step")
	ErrMovieRequired     = errors.New("no movie selected")
	ErrShowtimeRequired  = errors.New("no showtime selected")
	ErrNoSeatsSelected   = errors.New("no seats selected")
	ErrUnknownMovie      = errors.New("movie not in loaded catalog")
	ErrUnknownShowtime   = errors.New("showtime does not belong to the selected movie")
	ErrBusy              = errors.New("a fetch is still in progress")
	ErrNotFinalized      = errors.New("booking has not been completed")
)
