package helper

import (
	"movienight_manager/model"
	"movienight_manager/utils"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveCinemasAndVersionTagsLookupOnly(t *testing.T) {
	db := setupTestDB(t)
	start := time.Date(2026, 9, 12, 20, 0, 0, 0, time.UTC)

	event := testEvent("Cold", testShowtime(100, 5, "Palads", 10, "Alpha", start))
	missing, err := resolveCinemasAndVersionTags(db, event)
	require.NoError(t, err)

	require.Len(t, missing.Cinemas, 1)
	assert.Equal(t, 5, missing.Cinemas[0].ID)
	assert.Equal(t, "Palads", missing.Cinemas[0].Name)
	require.Len(t, missing.VersionTags, 1)
	assert.Equal(t, "Original", missing.VersionTags[0].Type)

	// reporting must not write anything
	assert.EqualValues(t, 0, count[model.Cinema](t, db))
	assert.EqualValues(t, 0, count[model.VersionTag](t, db))
}

func TestResolveCinemasAndVersionTagsRebinds(t *testing.T) {
	db := setupTestDB(t)
	seedListings(t, db)
	start := time.Date(2026, 9, 12, 20, 0, 0, 0, time.UTC)

	// submitted name differs from the stored one; the stored row wins
	st := testShowtime(100, 1, "Grande Renamed", 10, "Alpha", start)
	event := testEvent("Warm", st)

	missing, err := resolveCinemasAndVersionTags(db, event)
	require.NoError(t, err)
	assert.True(t, missing.Empty())

	assert.Equal(t, "Grand", event.Showtimes[0].Cinema.Name)
	assert.NotZero(t, event.Showtimes[0].VersionTagId)
	assert.Equal(t, "Original", event.Showtimes[0].VersionTag.Type)
}

func TestCreateMissingReferencesThenResolve(t *testing.T) {
	db := setupTestDB(t)
	start := time.Date(2026, 9, 12, 20, 0, 0, 0, time.UTC)

	event := testEvent("Cold", testShowtime(100, 5, "Palads", 10, "Alpha", start))
	missing, err := resolveCinemasAndVersionTags(db, event)
	require.NoError(t, err)
	require.False(t, missing.Empty())

	require.NoError(t, createMissingReferences(db, missing))

	missing, err = resolveCinemasAndVersionTags(db, event)
	require.NoError(t, err)
	assert.True(t, missing.Empty())
	assert.EqualValues(t, 1, count[model.Cinema](t, db))
	assert.EqualValues(t, 1, count[model.VersionTag](t, db))
}

func TestResolvePlaytimesDedupAcrossZones(t *testing.T) {
	db := setupTestDB(t)

	copenhagen := time.FixedZone("CEST", 2*3600)
	utc := time.Date(2026, 9, 12, 18, 0, 0, 0, time.UTC)
	local := utc.In(copenhagen)

	event := testEvent("Zones",
		testShowtime(100, 1, "Grand", 10, "Alpha", utc),
		testShowtime(101, 1, "Grand", 10, "Alpha", local),
	)
	require.NoError(t, resolvePlaytimesAndRooms(db, event))

	assert.EqualValues(t, 1, count[model.Playtime](t, db))
	assert.Equal(t, event.Showtimes[0].PlaytimeId, event.Showtimes[1].PlaytimeId)

	var stored model.Playtime
	require.NoError(t, db.First(&stored, event.Showtimes[0].PlaytimeId).Error)
	assert.True(t, utils.SameInstant(utc, stored.StartTime))
}

func TestUpsertMovieRowCouplesAgeRating(t *testing.T) {
	db := setupTestDB(t)

	movie, err := upsertMovieRow(db, model.Movie{
		ID:       10,
		Title:    "Alpha",
		Duration: 117,
		AgeRating: &model.AgeRating{
			Censorship: "15",
		},
	})
	require.NoError(t, err)
	require.NotNil(t, movie.AgeRatingId)
	assert.Nil(t, movie.AgeRating, "nested rating is stripped once resolved")

	// a second movie with the same rating reuses the row
	_, err = upsertMovieRow(db, model.Movie{
		ID:        20,
		Title:     "Beta",
		Duration:  95,
		AgeRating: &model.AgeRating{Censorship: "15"},
	})
	require.NoError(t, err)
	assert.EqualValues(t, 1, count[model.AgeRating](t, db))
	assert.EqualValues(t, 2, count[model.Movie](t, db))
}

func TestUpsertMovieRowOverwrites(t *testing.T) {
	db := setupTestDB(t)

	_, err := upsertMovieRow(db, model.Movie{ID: 10, Title: "Alpha", Duration: 117})
	require.NoError(t, err)

	_, err = upsertMovieRow(db, model.Movie{
		ID:       10,
		Title:    "Alpha (restored)",
		Duration: 121,
		ImageUrl: utils.Ptr("https://img.example.com/alpha.jpg"),
	})
	require.NoError(t, err)

	var stored model.Movie
	require.NoError(t, db.First(&stored, 10).Error)
	assert.Equal(t, "Alpha (restored)", stored.Title)
	assert.Equal(t, 121, stored.Duration)
	require.NotNil(t, stored.ImageUrl)
	assert.Equal(t, "https://img.example.com/alpha.jpg", *stored.ImageUrl)
	assert.EqualValues(t, 1, count[model.Movie](t, db))
}

func TestResolveHostRefreshesDisplayFields(t *testing.T) {
	db := setupTestDB(t)

	require.NoError(t, db.Create(&model.Host{
		AuthId:   "auth0|host-1",
		Username: "Old Name",
		Email:    utils.Ptr("old@example.com"),
	}).Error)

	event := testEvent("Renamed")
	require.NoError(t, resolveHost(db, event))

	var stored model.Host
	require.NoError(t, db.Where("auth_id = ?", "auth0|host-1").First(&stored).Error)
	assert.Equal(t, "Nina", stored.Username)
	require.NotNil(t, stored.Email)
	assert.Equal(t, "nina@example.com", *stored.Email)
	assert.EqualValues(t, 1, count[model.Host](t, db))
}

func TestResolveSelectOptionsDedup(t *testing.T) {
	db := setupTestDB(t)

	event := testEvent("Options")
	event.SelectOptions = []model.SelectOption{yesOption(), noOption(), yesOption()}

	require.NoError(t, resolveSelectOptions(db, event))

	assert.EqualValues(t, 2, count[model.SelectOption](t, db))
	assert.Equal(t, event.SelectOptions[0].ID, event.SelectOptions[2].ID)
	assert.Equal(t, event.SelectOptions[0].ID, event.DefaultSelectOptionId)

	// resolving the same pair again reuses the rows
	second := testEvent("Options Again")
	require.NoError(t, resolveSelectOptions(db, second))
	assert.EqualValues(t, 2, count[model.SelectOption](t, db))
}

func TestResolveSelectOptionsRejectsForeignDefault(t *testing.T) {
	db := setupTestDB(t)

	event := testEvent("Bad Default")
	event.DefaultSelectOption = model.SelectOption{VoteOption: "Maybe", Color: "blue"}

	err := resolveSelectOptions(db, event)
	require.ErrorIs(t, err, ErrUnknownSelectOption)
}
