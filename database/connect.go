package database

import (
	"fmt"
	"log"
	"strconv"

	"github.com/google/uuid"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"movie_booking/config"
	"movie_booking/model"
)

var DB *gorm.DB

func ConnectDB() {
	p := config.ConfigDefault("DB_PORT", "5432")
	port, err := strconv.ParseUint(p, 10, 32)
	if err != nil {
		panic("failed to parse database port")
	}

	dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		config.Config("DB_HOST"), port, config.Config("DB_USER"),
		config.Config("DB_PASSWORD"), config.Config("DB_NAME"))
	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		panic("failed to connect database")
	}

	log.Println("Connection opened to database")
	migrate(DB)
	SeedData(DB)
}

// ConnectTestDB mở sqlite in-memory cho test handler, schema y hệt.
// Mỗi lần gọi là một DB riêng để các test không dẫm lên nhau.
func ConnectTestDB() *gorm.DB {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		panic("failed to open test database")
	}
	migrate(db)
	DB = db
	return db
}

func migrate(db *gorm.DB) {
	db.AutoMigrate(
		&model.User{},
		&model.Theater{},
		&model.Seat{},
		&model.Movie{},
		&model.Showtime{},
		&model.Booking{},
		&model.BookingSeat{},
	)
}
