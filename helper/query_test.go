package helper

import (
	"movienight_manager/model"
	"movienight_manager/utils"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetJoinEventByIdHydratesGraph(t *testing.T) {
	db := setupTestDB(t)
	seedListings(t, db)
	start := time.Date(2026, 9, 12, 20, 0, 0, 0, time.UTC)

	event := testEvent("Movie Night", testShowtime(100, 1, "Grand", 10, "Alpha", start))
	event.Participants = []model.Participant{
		{Nickname: "Ann", VotedFor: []model.ParticipantVote{{ShowtimeId: 100, SelectedOption: yesOption()}}},
	}
	id, err := UpsertJoinEvent(db, event)
	require.NoError(t, err)

	loaded, err := GetJoinEventById(db, id)
	require.NoError(t, err)
	require.NotNil(t, loaded)

	assert.Equal(t, "Nina", loaded.Host.Username)
	require.Len(t, loaded.Showtimes, 1)
	st := loaded.Showtimes[0]
	assert.Equal(t, "Alpha", st.Movie.Title)
	require.NotNil(t, st.Movie.AgeRating)
	assert.Equal(t, "15", st.Movie.AgeRating.Censorship)
	assert.Equal(t, "Grand", st.Cinema.Name)
	assert.Equal(t, "Hall 3", st.Room.Name)
	assert.Equal(t, "Original", st.VersionTag.Type)
	assert.False(t, st.Playtime.StartTime.IsZero())

	assert.Len(t, loaded.SelectOptions, 2)
	assert.Equal(t, "Yes", loaded.DefaultSelectOption.VoteOption)

	require.Len(t, loaded.Participants, 1)
	require.Len(t, loaded.Participants[0].VotedFor, 1)
	assert.Equal(t, "Yes", loaded.Participants[0].VotedFor[0].SelectedOption.VoteOption)
}

func TestGetJoinEventByIdAbsent(t *testing.T) {
	db := setupTestDB(t)

	loaded, err := GetJoinEventById(db, 4711)
	require.NoError(t, err)
	assert.Nil(t, loaded)
}

func TestGetJoinEventBySlug(t *testing.T) {
	db := setupTestDB(t)
	seedListings(t, db)
	start := time.Date(2026, 9, 12, 20, 0, 0, 0, time.UTC)

	id, err := UpsertJoinEvent(db, testEvent("Movie Night", testShowtime(100, 1, "Grand", 10, "Alpha", start)))
	require.NoError(t, err)

	byId, err := GetJoinEventById(db, id)
	require.NoError(t, err)
	require.NotEmpty(t, byId.Slug)

	bySlug, err := GetJoinEventBySlug(db, byId.Slug)
	require.NoError(t, err)
	require.NotNil(t, bySlug)
	assert.Equal(t, id, bySlug.ID)

	missing, err := GetJoinEventBySlug(db, "no-such-event")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestGetAllJoinEventsFilters(t *testing.T) {
	db := setupTestDB(t)
	seedListings(t, db)
	start := time.Date(2026, 9, 12, 20, 0, 0, 0, time.UTC)

	first := testEvent("Past Night", testShowtime(100, 1, "Grand", 10, "Alpha", start))
	firstId, err := UpsertJoinEvent(db, first)
	require.NoError(t, err)
	require.NoError(t, db.Model(&model.JoinEvent{}).Where("id = ?", firstId).
		Update("deadline", time.Now().Add(-24*time.Hour).UTC()).Error)

	second := testEvent("Future Night", testShowtime(101, 1, "Grand", 10, "Alpha", start))
	_, err = UpsertJoinEvent(db, second)
	require.NoError(t, err)

	other := testEvent("Other Host", testShowtime(102, 1, "Grand", 10, "Alpha", start))
	other.HostId = "auth0|host-2"
	other.Host = model.Host{AuthId: "auth0|host-2", Username: "Omar"}
	_, err = UpsertJoinEvent(db, other)
	require.NoError(t, err)

	all, total, err := GetAllJoinEvents(db, nil)
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	require.Len(t, all, 3)
	// ordered by deadline, the expired one first
	assert.Equal(t, "Past Night", all[0].Title)

	mine, total, err := GetAllJoinEvents(db, &model.FilterJoinEventInput{HostId: "auth0|host-1"})
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	assert.Len(t, mine, 2)

	upcoming, total, err := GetAllJoinEvents(db, &model.FilterJoinEventInput{Upcoming: true})
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	for _, e := range upcoming {
		assert.NotEqual(t, "Past Night", e.Title)
	}
}

func TestGetAllJoinEventsPagination(t *testing.T) {
	db := setupTestDB(t)
	seedListings(t, db)
	start := time.Date(2026, 9, 12, 20, 0, 0, 0, time.UTC)

	for i := 0; i < 3; i++ {
		event := testEvent("Night", testShowtime(100+i, 1, "Grand", 10, "Alpha", start))
		event.Deadline = time.Now().Add(time.Duration(24*(i+1)) * time.Hour)
		_, err := UpsertJoinEvent(db, event)
		require.NoError(t, err)
	}

	filter := &model.FilterJoinEventInput{
		Pagination: model.Pagination{Limit: utils.Ptr(2), Page: utils.Ptr(1)},
	}
	page, total, err := GetAllJoinEvents(db, filter)
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	assert.Len(t, page, 2)

	filter.Page = utils.Ptr(2)
	rest, _, err := GetAllJoinEvents(db, filter)
	require.NoError(t, err)
	assert.Len(t, rest, 1)
}
