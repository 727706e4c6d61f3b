package flow

import "movie_booking/client"

// FilterByMovie giữ nguyên thứ tự backend trả về.
func FilterByMovie(showtimes []client.Showtime, movieID uint) []client.Showtime {
	var filtered []client.Showtime
	for _, s := range showtimes {
		if s.MovieID == movieID {
			filtered = append(filtered, s)
		}
	}
	return filtered
}

// DefaultShowtime chọn suất đầu tiên làm mặc định, nil nếu không có suất nào.
func DefaultShowtime(filtered []client.Showtime) *client.Showtime {
	if len(filtered) == 0 {
		return nil
	}
	st := filtered[0]
	return &st
}
