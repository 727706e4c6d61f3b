package database

import (
	"fmt"
	"log"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"movie_booking/constants"
	"movie_booking/model"
)

func parseDate(dateStr string) time.Time {
	t, _ := time.Parse("2006-01-02", dateStr)
	return t
}

// SeedData khởi tạo dữ liệu mẫu. Idempotent: chạy lại không nhân đôi.
// Occupancy lấy từ các booking seed bên dưới, không random, nên sơ đồ
// ghế luôn tái lập được giữa các lần chạy.
func SeedData(db *gorm.DB) {
	bytes, err := bcrypt.GenerateFromPassword([]byte("admin123"), 10)
	if err != nil {
		log.Println("failed to hash seed password:", err)
		return
	}
	hash := string(bytes)

	users := []model.User{
		{Name: "Administrator", Email: "admin@theater.com", Password: hash, Role: constants.ROLE_ADMIN, Active: true},
		{Name: "Demo Customer", Email: "demo@theater.com", Password: hash, Role: constants.ROLE_CUSTOMER, Active: true},
	}
	for _, u := range users {
		if err := db.Where(model.User{Email: u.Email}).FirstOrCreate(&u).Error; err != nil {
			log.Println("failed to seed user:", u.Email, "error:", err)
		}
	}

	theaters := []model.Theater{
		{Name: "Grand Cinema Downtown", Address: "12 Main Street", ScreenCount: 2},
		{Name: "Starlight Multiplex", Address: "88 River Road", ScreenCount: 2},
	}
	for i := range theaters {
		if err := db.Where(model.Theater{Name: theaters[i].Name}).FirstOrCreate(&theaters[i]).Error; err != nil {
			log.Println("failed to seed theater:", theaters[i].Name, "error:", err)
		}
	}

	// 80 ghế mỗi phòng, hàng cuối là VIP
	var seatCount int64
	db.Model(&model.Seat{}).Count(&seatCount)
	if seatCount == 0 {
		var seats []model.Seat
		for _, th := range theaters {
			for screen := 1; screen <= th.ScreenCount; screen++ {
				for n := 1; n <= 80; n++ {
					seatType := "NORMAL"
					if n > 70 {
						seatType = "VIP"
					}
					seats = append(seats, model.Seat{
						TheaterId:    th.ID,
						ScreenNumber: screen,
						SeatNumber:   n,
						SeatType:     seatType,
					})
				}
			}
		}
		if err := db.Create(&seats).Error; err != nil {
			log.Println("failed to seed seats:", err)
		}
	}

	movies := []model.Movie{
		{Title: "Dune: Part Two", Slug: "dune-part-two", Genre: "Sci-Fi", DurationMin: 166, Rating: "PG-13", ReleaseDate: parseDate("2026-03-01"), Status: constants.MOVIE_NOW_SHOWING, Description: "Paul Atreides unites with the Fremen."},
		{Title: "The Quiet Harbor", Slug: "the-quiet-harbor", Genre: "Drama", DurationMin: 120, Rating: "PG", ReleaseDate: parseDate("2026-05-20"), Status: constants.MOVIE_NOW_SHOWING, Description: "A lighthouse keeper's last season."},
		{Title: "Midnight Circuit", Slug: "midnight-circuit", Genre: "Action", DurationMin: 108, Rating: "R", ReleaseDate: parseDate("2026-07-04"), Status: constants.MOVIE_NOW_SHOWING, Description: "Street racers against the clock."},
		{Title: "Paper Lanterns", Slug: "paper-lanterns", Genre: "Romance", DurationMin: 95, Rating: "PG", ReleaseDate: parseDate("2026-11-30"), Status: constants.MOVIE_COMING_SOON, Description: "Two strangers, one festival night."},
	}
	for i := range movies {
		if err := db.Where(model.Movie{Slug: movies[i].Slug}).FirstOrCreate(&movies[i]).Error; err != nil {
			log.Println("failed to seed movie:", movies[i].Title, "error:", err)
		}
	}

	var showtimeCount int64
	db.Model(&model.Showtime{}).Count(&showtimeCount)
	if showtimeCount == 0 {
		base := time.Now().Truncate(24 * time.Hour).Add(24 * time.Hour)
		var showtimes []model.Showtime
		slots := []time.Duration{15 * time.Hour, 18*time.Hour + 30*time.Minute, 21 * time.Hour}
		for i, m := range movies[:3] { // phim COMING_SOON chưa có suất
			th := theaters[i%len(theaters)]
			screen := i%th.ScreenCount + 1
			price := 10.00
			if screen == 2 {
				price = 12.50
			}
			for _, slot := range slots {
				showtimes = append(showtimes, model.Showtime{
					MovieId:      m.ID,
					TheaterId:    th.ID,
					ScreenNumber: screen,
					ShowDateTime: base.Add(slot),
					BasePrice:    price,
					Status:       constants.SHOWTIME_ACTIVE,
				})
			}
		}
		if err := db.Create(&showtimes).Error; err != nil {
			log.Println("failed to seed showtimes:", err)
		}

		// vài booking cố định để có ghế occupied tái lập được
		seedOccupancy(db, showtimes)
	}

	log.Println("Seed data ready")
}

// seedOccupancy đặt sẵn một booking 4 ghế cho suất đầu của mỗi phim.
func seedOccupancy(db *gorm.DB, showtimes []model.Showtime) {
	var demo model.User
	if err := db.Where(model.User{Email: "demo@theater.com"}).First(&demo).Error; err != nil {
		return
	}

	for i := 0; i < len(showtimes); i += 3 {
		st := showtimes[i]
		var seats []model.Seat
		if err := db.Where("theater_id = ? AND screen_number = ? AND seat_number IN ?",
			st.TheaterId, st.ScreenNumber, []int{5, 6, 17, 18}).
			Order("seat_number").Find(&seats).Error; err != nil || len(seats) == 0 {
			continue
		}

		booking := model.Booking{
			PublicCode:    fmt.Sprintf("BKSEED%04d", st.ID),
			UserId:        demo.ID,
			ShowtimeId:    st.ID,
			TotalAmount:   st.BasePrice * float64(len(seats)),
			PaymentStatus: "completed",
			PaymentMethod: "credit",
			Status:        constants.BOOKING_COMPLETED,
		}
		if err := db.Create(&booking).Error; err != nil {
			log.Println("failed to seed booking:", err)
			continue
		}
		for _, seat := range seats {
			db.Create(&model.BookingSeat{BookingId: booking.ID, ShowtimeId: st.ID, SeatId: seat.ID})
		}
	}
}
