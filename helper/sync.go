package helper

import (
	"context"
	"fmt"
	"log"
	"movienight_manager/config"
	"movienight_manager/database"
	"movienight_manager/model"
	"movienight_manager/scraper"

	"github.com/go-co-op/gocron/v2"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var syncScheduler gocron.Scheduler

// SyncListings populates the reference store from one provider crawl. Runs
// outside the request hot path; the per-request reconciliation assumes this
// has already happened for the common case. Cinemas, movies and genres are
// overwritten with republished metadata, everything else is create-if-absent.
// Existing showtimes are left exactly as stored.
func SyncListings(ctx context.Context, db *gorm.DB, src scraper.Source) error {
	listings, err := src.Fetch(ctx)
	if err != nil {
		return fmt.Errorf("fetch listings: %w", err)
	}

	if len(listings.Cinemas) > 0 {
		err := db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"name"}),
		}).Create(&listings.Cinemas).Error
		if err != nil {
			return fmt.Errorf("sync cinemas: %w", err)
		}
	}

	if len(listings.Genres) > 0 {
		err := db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"name"}),
		}).Create(&listings.Genres).Error
		if err != nil {
			return fmt.Errorf("sync genres: %w", err)
		}
	}

	for _, movie := range listings.Movies {
		if _, err := upsertMovieRow(db, movie); err != nil {
			return fmt.Errorf("sync movies: %w", err)
		}
	}

	versionByType := map[string]model.VersionTag{}
	for _, v := range listings.VersionTags {
		tag := model.VersionTag{Type: v.Type}
		if err := db.Where(model.VersionTag{Type: v.Type}).FirstOrCreate(&tag).Error; err != nil {
			return fmt.Errorf("sync version tags: %w", err)
		}
		versionByType[tag.Type] = tag
	}

	for _, r := range listings.Rooms {
		room := r
		if err := db.Where(model.Room{ID: r.ID}).FirstOrCreate(&room).Error; err != nil {
			return fmt.Errorf("sync rooms: %w", err)
		}
	}

	for _, record := range listings.Showtimes {
		tag, ok := versionByType[record.Version]
		if !ok {
			tag = model.VersionTag{Type: record.Version}
			if err := db.Where(model.VersionTag{Type: record.Version}).FirstOrCreate(&tag).Error; err != nil {
				return fmt.Errorf("sync version tag %q: %w", record.Version, err)
			}
			versionByType[tag.Type] = tag
		}

		start := record.StartTime.UTC()
		playtime := model.Playtime{StartTime: start}
		if err := db.Where(model.Playtime{StartTime: start}).FirstOrCreate(&playtime).Error; err != nil {
			return fmt.Errorf("sync playtime %s: %w", start, err)
		}

		showtime := model.Showtime{
			ID:           record.ID,
			MovieId:      record.MovieId,
			CinemaId:     record.CinemaId,
			RoomId:       record.RoomId,
			PlaytimeId:   playtime.ID,
			VersionTagId: tag.ID,
		}
		err := db.Omit(clause.Associations).
			Clauses(clause.OnConflict{DoNothing: true}).
			Create(&showtime).Error
		if err != nil {
			return fmt.Errorf("sync showtime %d: %w", record.ID, err)
		}
	}

	bustReferenceCaches(ctx)
	return nil
}

func bustReferenceCaches(ctx context.Context) {
	if database.RDB == nil {
		return
	}
	if err := database.RDB.Del(ctx, database.CacheMoviesKey, database.CacheCinemasKey, database.CacheGenresKey).Err(); err != nil {
		log.Printf("failed to bust reference caches: %v", err)
	}
}

// StartListingsSyncScheduler crawls the provider every night at 04:00, after
// the provider's own catalogue refresh.
func StartListingsSyncScheduler() {
	url := config.Config("LISTINGS_API_URL")
	if url == "" {
		log.Println("LISTINGS_API_URL not set, listings sync disabled")
		return
	}

	s, err := gocron.NewScheduler()
	if err != nil {
		log.Fatal(err)
	}

	syncScheduler = s

	_, err = s.NewJob(
		gocron.DailyJob(
			1,
			gocron.NewAtTimes(
				gocron.NewAtTime(4, 0, 0),
			),
		),
		gocron.NewTask(func() {
			if err := SyncListings(context.Background(), database.DB, scraper.NewClient(url)); err != nil {
				log.Printf("listings sync failed: %v", err)
			}
		}),
	)
	if err != nil {
		log.Fatal(err)
	}

	s.Start()
	log.Println("listings sync scheduler started (04:00 daily)")
}

func StopListingsSyncScheduler() {
	if syncScheduler != nil {
		_ = syncScheduler.Shutdown()
	}
}
