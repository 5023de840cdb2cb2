package db

import (
	"fmt"
	"log"
	"os"

	"school_booking_tool/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func ConnectDB() *gorm.DB {
	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=UTC",
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
	)

	var err error
	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatal("Failed to connect to database: ", err)
	}

	if err := Migrate(DB); err != nil {
		log.Fatal("Failed to migrate models: ", err)
	}
	log.Println("Database connected")
	return DB
}

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.User{},
		&models.RoomBooking{},
		&models.Loan{},
		&models.HistoryEntry{},
		&models.SystemConfig{},
	); err != nil {
		return err
	}

	// Conflict checks scan by day; reports scan history by day.
	if err := db.Exec(fmt.Sprintf(`
	  CREATE INDEX IF NOT EXISTS %s_day_start
	  ON %s (day, start_time);
	`, models.RoomBookingTable, models.RoomBookingTable)).Error; err != nil {
		return err
	}

	if err := db.Exec(fmt.Sprintf(`
	  CREATE INDEX IF NOT EXISTS %s_day
	  ON %s (day);
	`, models.HistoryTable, models.HistoryTable)).Error; err != nil {
		return err
	}

	return nil
}
