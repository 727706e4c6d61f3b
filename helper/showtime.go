package helper

import (
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"movie_booking/constants"
	"movie_booking/database"
	"movie_booking/model"
)

var scheduler *cron.Cron

// Session bỏ hoang quá 30 phút thì dọn.
const sessionMaxIdle = 30 * time.Minute

func StartShowtimeScheduler() {
	scheduler = cron.New(cron.WithChain(
		cron.SkipIfStillRunning(cron.DefaultLogger),
	))

	// Chạy mỗi 5 phút
	if _, err := scheduler.AddFunc("*/5 * * * *", updateExpiredShowtimes); err != nil {
		log.Printf("Lỗi khởi tạo scheduler: %v", err)
		return
	}
	if _, err := scheduler.AddFunc("*/5 * * * *", func() {
		Sessions.Sweep(sessionMaxIdle)
	}); err != nil {
		log.Printf("Lỗi khởi tạo session sweeper: %v", err)
		return
	}

	scheduler.Start()
	log.Println("Scheduler suất chiếu + session sweeper đã khởi động (mỗi 5 phút)")
}

func updateExpiredShowtimes() {
	now := time.Now()
	result := database.DB.Model(&model.Showtime{}).
		Where("status = ? AND show_date_time < ?", constants.SHOWTIME_ACTIVE, now).
		Update("status", constants.SHOWTIME_EXPIRED)

	if result.Error != nil {
		log.Printf("Lỗi cập nhật suất chiếu: %v", result.Error)
		return
	}

	if result.RowsAffected > 0 {
		log.Printf("Đã chuyển %d suất chiếu sang EXPIRED", result.RowsAffected)
	}
}

// Dừng scheduler khi tắt server
func StopShowtimeScheduler() {
	if scheduler != nil {
		scheduler.Stop()
	}
}
