package helper

import (
	"context"
	"errors"
	"movienight_manager/model"
	"movienight_manager/scraper"
	"movienight_manager/utils"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSource struct {
	listings scraper.Listings
	err      error
}

func (f fakeSource) Fetch(ctx context.Context) (scraper.Listings, error) {
	return f.listings, f.err
}

func crawlFixture() scraper.Listings {
	return scraper.Listings{
		Cinemas: []model.Cinema{{ID: 1, Name: "Grand"}, {ID: 2, Name: "Palads"}},
		Movies: []model.Movie{
			{ID: 10, Title: "Alpha", Duration: 117, AgeRating: &model.AgeRating{Censorship: "15"}},
			{ID: 20, Title: "Beta", Duration: 95},
		},
		Genres:      []model.Genre{{ID: 4, Name: "Drama"}},
		VersionTags: []model.VersionTag{{Type: "Original"}},
		Rooms:       []model.Room{{ID: 3, Name: "Hall 3"}},
		Showtimes: []scraper.ShowtimeRecord{
			{ID: 100, MovieId: 10, CinemaId: 1, RoomId: 3,
				StartTime: time.Date(2026, 9, 12, 20, 0, 0, 0, time.UTC), Version: "Original"},
			{ID: 101, MovieId: 20, CinemaId: 2, RoomId: 3,
				StartTime: time.Date(2026, 9, 12, 21, 30, 0, 0, time.UTC), Version: "Original"},
		},
	}
}

func TestSyncListingsPopulatesStore(t *testing.T) {
	db := setupTestDB(t)

	require.NoError(t, SyncListings(context.Background(), db, fakeSource{listings: crawlFixture()}))

	assert.EqualValues(t, 2, count[model.Cinema](t, db))
	assert.EqualValues(t, 2, count[model.Movie](t, db))
	assert.EqualValues(t, 1, count[model.Genre](t, db))
	assert.EqualValues(t, 1, count[model.VersionTag](t, db))
	assert.EqualValues(t, 1, count[model.Room](t, db))
	assert.EqualValues(t, 2, count[model.Playtime](t, db))
	assert.EqualValues(t, 2, count[model.Showtime](t, db))

	var alpha model.Movie
	require.NoError(t, db.First(&alpha, 10).Error)
	require.NotNil(t, alpha.AgeRatingId)
}

func TestSyncListingsIdempotent(t *testing.T) {
	db := setupTestDB(t)
	src := fakeSource{listings: crawlFixture()}

	require.NoError(t, SyncListings(context.Background(), db, src))
	require.NoError(t, SyncListings(context.Background(), db, src))

	assert.EqualValues(t, 2, count[model.Cinema](t, db))
	assert.EqualValues(t, 2, count[model.Movie](t, db))
	assert.EqualValues(t, 2, count[model.Playtime](t, db))
	assert.EqualValues(t, 2, count[model.Showtime](t, db))
}

func TestSyncListingsRefreshesMetadata(t *testing.T) {
	db := setupTestDB(t)
	require.NoError(t, SyncListings(context.Background(), db, fakeSource{listings: crawlFixture()}))

	revised := crawlFixture()
	revised.Cinemas[0].Name = "Grand Teatret"
	revised.Movies[0].Title = "Alpha (restored)"
	revised.Movies[0].ImageUrl = utils.Ptr("https://img.example.com/alpha.jpg")
	require.NoError(t, SyncListings(context.Background(), db, fakeSource{listings: revised}))

	var cinema model.Cinema
	require.NoError(t, db.First(&cinema, 1).Error)
	assert.Equal(t, "Grand Teatret", cinema.Name)

	var movie model.Movie
	require.NoError(t, db.First(&movie, 10).Error)
	assert.Equal(t, "Alpha (restored)", movie.Title)
	require.NotNil(t, movie.ImageUrl)
}

func TestSyncListingsLeavesStoredShowtimesAlone(t *testing.T) {
	db := setupTestDB(t)
	require.NoError(t, SyncListings(context.Background(), db, fakeSource{listings: crawlFixture()}))

	var before model.Showtime
	require.NoError(t, db.First(&before, 100).Error)

	tampered := crawlFixture()
	tampered.Showtimes[0].RoomId = 9
	tampered.Rooms = append(tampered.Rooms, model.Room{ID: 9, Name: "Hall 9"})
	require.NoError(t, SyncListings(context.Background(), db, fakeSource{listings: tampered}))

	var after model.Showtime
	require.NoError(t, db.First(&after, 100).Error)
	assert.Equal(t, before.RoomId, after.RoomId)
}

func TestSyncListingsFetchFailure(t *testing.T) {
	db := setupTestDB(t)

	fetchErr := errors.New("provider down")
	err := SyncListings(context.Background(), db, fakeSource{err: fetchErr})
	require.ErrorIs(t, err, fetchErr)
	assert.EqualValues(t, 0, count[model.Cinema](t, db))
}
