package helper

import (
	"log"
	"time"

	"github.com/go-co-op/gocron/v2"

	"movie_booking/constants"
	"movie_booking/database"
	"movie_booking/model"
)

var movieScheduler gocron.Scheduler

// AutoUpdateMovieStatus quét phim mỗi ngày: đến ngày khởi chiếu thì
// chuyển NOW_SHOWING, hết suất chiếu tương lai thì chuyển ENDED.
func AutoUpdateMovieStatus() {
	log.Println("[CRON] AutoUpdateMovieStatus triggered")

	db := database.DB
	now := time.Now()
	today := now.Truncate(24 * time.Hour)

	var movies []model.Movie
	if err := db.Find(&movies).Error; err != nil {
		log.Printf("Lỗi khi quét phim: %v", err)
		return
	}

	for _, movie := range movies {
		updated := false
		release := movie.ReleaseDate.Truncate(24 * time.Hour)

		if movie.Status == constants.MOVIE_COMING_SOON && !today.Before(release) {
			movie.Status = constants.MOVIE_NOW_SHOWING
			updated = true
		}

		if movie.Status == constants.MOVIE_NOW_SHOWING && !updated && today.After(release) {
			var upcoming int64
			db.Model(&model.Showtime{}).
				Where("movie_id = ? AND show_date_time > ? AND status = ?", movie.ID, now, constants.SHOWTIME_ACTIVE).
				Count(&upcoming)
			if upcoming == 0 {
				movie.Status = constants.MOVIE_ENDED
				updated = true
			}
		}

		if updated {
			if err := db.Save(&movie).Error; err != nil {
				log.Printf("Lỗi cập nhật trạng thái phim '%s': %v", movie.Title, err)
			}
		}
	}
}

func StartMovieStatusScheduler() {
	s, err := gocron.NewScheduler()
	if err != nil {
		log.Fatal(err)
	}

	movieScheduler = s

	_, err = s.NewJob(
		gocron.DailyJob(
			1,
			gocron.NewAtTimes(
				gocron.NewAtTime(0, 5, 0),
			),
		),
		gocron.NewTask(AutoUpdateMovieStatus),
	)
	if err != nil {
		log.Fatal(err)
	}

	s.Start()
	log.Println("Movie status scheduler started (00:05)")
}

func StopMovieStatusScheduler() {
	if movieScheduler != nil {
		_ = movieScheduler.Shutdown()
	}
}
