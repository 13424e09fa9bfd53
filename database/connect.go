package database

import (
	"fmt"
	"movienight_manager/config"
	"movienight_manager/model"
	"strconv"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func ConnectDB() {
	var err error
	p := config.Config("DB_PORT")
	port, err := strconv.ParseUint(p, 10, 32)

	if err != nil {
		panic("failed to parse database port")
	}

	dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable", config.Config("DB_HOST"), port, config.Config("DB_USER"), config.Config("DB_PASSWORD"), config.Config("DB_NAME"))
	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})

	if err != nil {
		panic("failed to connect database")
	}

	fmt.Println("Connection Opened to Database")
	if err := Migrate(DB); err != nil {
		panic(err)
	}
	fmt.Println("Database Migrated")

	SeedData(DB)
}

// Migrate creates the schema for every model; shared with the test suites.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.Host{},
		&model.Cinema{},
		&model.Room{},
		&model.AgeRating{},
		&model.Movie{},
		&model.Genre{},
		&model.Playtime{},
		&model.VersionTag{},
		&model.Showtime{},
		&model.SelectOption{},
		&model.JoinEvent{},
		&model.Participant{},
		&model.ParticipantVote{},
	)
}
