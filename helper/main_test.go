package helper

import (
	"movienight_manager/database"
	"movienight_manager/model"
	"movienight_manager/utils"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.Migrate(db))
	return db
}

// seedListings simulates the nightly sync having run: cinemas and version
// tags exist before any join event references them.
func seedListings(t *testing.T, db *gorm.DB) {
	t.Helper()
	require.NoError(t, db.Create(&model.Cinema{ID: 1, Name: "Grand"}).Error)
	require.NoError(t, db.Create(&model.VersionTag{Type: "Original"}).Error)
}

func testShowtime(id, cinemaId int, cinemaName string, movieId int, movieTitle string, start time.Time) model.Showtime {
	return model.Showtime{
		ID:         id,
		Cinema:     model.Cinema{ID: cinemaId, Name: cinemaName},
		Movie:      model.Movie{ID: movieId, Title: movieTitle, Duration: 117, AgeRating: &model.AgeRating{Censorship: "15"}},
		Room:       model.Room{ID: 3, Name: "Hall 3"},
		Playtime:   model.Playtime{StartTime: start},
		VersionTag: model.VersionTag{Type: "Original"},
	}
}

func yesOption() model.SelectOption {
	return model.SelectOption{VoteOption: "Yes", Color: "green"}
}

func noOption() model.SelectOption {
	return model.SelectOption{VoteOption: "No", Color: "red"}
}

func testEvent(title string, showtimes ...model.Showtime) *model.JoinEvent {
	return &model.JoinEvent{
		Title:               title,
		Description:         "Let's catch a movie together",
		Deadline:            time.Now().Add(72 * time.Hour).UTC(),
		HostId:              "auth0|host-1",
		Host:                model.Host{AuthId: "auth0|host-1", Username: "Nina", Email: utils.Ptr("nina@example.com")},
		Showtimes:           showtimes,
		SelectOptions:       []model.SelectOption{yesOption(), noOption()},
		DefaultSelectOption: yesOption(),
	}
}

func count[T any](t *testing.T, db *gorm.DB) int64 {
	t.Helper()
	var total int64
	var zero T
	require.NoError(t, db.Model(&zero).Count(&total).Error)
	return total
}
