package helper

import (
	"fmt"
	"movienight_manager/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// MissingReferences reports stage-1 natural keys absent from the store.
// Cinemas and version tags normally originate from the listings sync, so a
// first insert attempt assumes they exist; when they don't, the caller
// bulk-creates exactly what is reported here and resolves once more.
type MissingReferences struct {
	Cinemas     []model.Cinema
	VersionTags []model.VersionTag
}

func (m MissingReferences) Empty() bool {
	return len(m.Cinemas) == 0 && len(m.VersionTags) == 0
}

// resolveCinemasAndVersionTags is stage 1 of the insert sequence: lookup
// only, never creates. Rebinds every showtime to canonical rows, or reports
// the keys it could not find without touching the aggregate.
func resolveCinemasAndVersionTags(db *gorm.DB, event *model.JoinEvent) (MissingReferences, error) {
	missing := MissingReferences{}

	cinemaCandidates := map[int]model.Cinema{}
	versionCandidates := map[string]model.VersionTag{}
	for i := range event.Showtimes {
		st := &event.Showtimes[i]
		if st.CinemaId == 0 {
			st.CinemaId = st.Cinema.ID
		}
		cinemaCandidates[st.CinemaId] = model.Cinema{ID: st.CinemaId, Name: st.Cinema.Name}
		versionCandidates[st.VersionTag.Type] = model.VersionTag{Type: st.VersionTag.Type}
	}

	cinemaIds := make([]int, 0, len(cinemaCandidates))
	for id := range cinemaCandidates {
		cinemaIds = append(cinemaIds, id)
	}
	var cinemas []model.Cinema
	if err := db.Where("id IN ?", cinemaIds).Find(&cinemas).Error; err != nil {
		return missing, fmt.Errorf("lookup cinemas: %w", err)
	}
	cinemaByID := make(map[int]model.Cinema, len(cinemas))
	for _, c := range cinemas {
		cinemaByID[c.ID] = c
	}
	for id, candidate := range cinemaCandidates {
		if _, ok := cinemaByID[id]; !ok {
			missing.Cinemas = append(missing.Cinemas, candidate)
		}
	}

	versionTypes := make([]string, 0, len(versionCandidates))
	for t := range versionCandidates {
		versionTypes = append(versionTypes, t)
	}
	var versions []model.VersionTag
	if err := db.Where("type IN ?", versionTypes).Find(&versions).Error; err != nil {
		return missing, fmt.Errorf("lookup version tags: %w", err)
	}
	versionByType := make(map[string]model.VersionTag, len(versions))
	for _, v := range versions {
		versionByType[v.Type] = v
	}
	for t, candidate := range versionCandidates {
		if _, ok := versionByType[t]; !ok {
			missing.VersionTags = append(missing.VersionTags, candidate)
		}
	}

	if !missing.Empty() {
		return missing, nil
	}

	for i := range event.Showtimes {
		st := &event.Showtimes[i]
		st.Cinema = cinemaByID[st.CinemaId]
		version := versionByType[st.VersionTag.Type]
		st.VersionTagId = version.ID
		st.VersionTag = version
	}
	return missing, nil
}

// createMissingReferences backfills the rows stage 1 reported. Only runs on
// the cold-start path where an event references brand-new listings data.
func createMissingReferences(db *gorm.DB, missing MissingReferences) error {
	if len(missing.Cinemas) > 0 {
		if err := db.Create(&missing.Cinemas).Error; err != nil {
			return fmt.Errorf("create missing cinemas: %w", err)
		}
	}
	if len(missing.VersionTags) > 0 {
		if err := db.Create(&missing.VersionTags).Error; err != nil {
			return fmt.Errorf("create missing version tags: %w", err)
		}
	}
	return nil
}

// resolvePlaytimesAndRooms is stage 2: create-if-absent. Playtime slots and
// rooms are finer-grained than the daily sync, so submissions may introduce
// them.
func resolvePlaytimesAndRooms(db *gorm.DB, event *model.JoinEvent) error {
	playtimes := map[int64]model.Playtime{}
	rooms := map[int]model.Room{}

	for i := range event.Showtimes {
		st := &event.Showtimes[i]

		start := st.Playtime.StartTime.UTC()
		playtime, ok := playtimes[start.Unix()]
		if !ok {
			playtime = model.Playtime{StartTime: start}
			if err := db.Where(model.Playtime{StartTime: start}).FirstOrCreate(&playtime).Error; err != nil {
				return fmt.Errorf("resolve playtime %s: %w", start, err)
			}
			playtimes[start.Unix()] = playtime
		}
		st.PlaytimeId = playtime.ID
		st.Playtime = playtime

		if st.RoomId == 0 {
			st.RoomId = st.Room.ID
		}
		room, ok := rooms[st.RoomId]
		if !ok {
			room = model.Room{ID: st.RoomId, Name: st.Room.Name}
			if err := db.Where(model.Room{ID: st.RoomId}).FirstOrCreate(&room).Error; err != nil {
				return fmt.Errorf("resolve room %d: %w", st.RoomId, err)
			}
			rooms[st.RoomId] = room
		}
		st.Room = room
	}
	return nil
}

// upsertMovieRow resolves the embedded age rating first, then writes the
// movie as an upsert-with-overwrite: the listings provider periodically
// republishes corrected metadata, so an existing id gets its mutable
// attributes replaced. The in-memory AgeRating is stripped afterwards so it
// is never re-persisted as a nested write.
func upsertMovieRow(db *gorm.DB, movie model.Movie) (model.Movie, error) {
	if movie.AgeRating != nil && movie.AgeRating.Censorship != "" {
		rating := model.AgeRating{Censorship: movie.AgeRating.Censorship}
		if err := db.Where(model.AgeRating{Censorship: rating.Censorship}).FirstOrCreate(&rating).Error; err != nil {
			return movie, fmt.Errorf("resolve age rating %q: %w", rating.Censorship, err)
		}
		movie.AgeRatingId = &rating.ID
	}
	movie.AgeRating = nil

	err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"title", "image_url", "info_url", "duration", "premiere_date", "age_rating_id"}),
	}).Create(&movie).Error
	if err != nil {
		return movie, fmt.Errorf("upsert movie %d: %w", movie.ID, err)
	}
	return movie, nil
}

// upsertMovies is stage 3, applying upsertMovieRow per distinct movie id.
func upsertMovies(db *gorm.DB, event *model.JoinEvent) error {
	resolved := map[int]model.Movie{}
	for i := range event.Showtimes {
		st := &event.Showtimes[i]
		if st.MovieId == 0 {
			st.MovieId = st.Movie.ID
		}
		movie, ok := resolved[st.MovieId]
		if !ok {
			candidate := st.Movie
			candidate.ID = st.MovieId
			var err error
			movie, err = upsertMovieRow(db, candidate)
			if err != nil {
				return err
			}
			resolved[st.MovieId] = movie
		}
		st.Movie = movie
	}
	return nil
}

// resolveHost is stage 4: create-if-absent by auth id, then refresh the
// display fields so a changed username or mail is picked up.
func resolveHost(db *gorm.DB, event *model.JoinEvent) error {
	if event.HostId == "" {
		event.HostId = event.Host.AuthId
	}
	host := model.Host{AuthId: event.HostId, Username: event.Host.Username, Email: event.Host.Email}
	if err := db.Where(model.Host{AuthId: event.HostId}).FirstOrCreate(&host).Error; err != nil {
		return fmt.Errorf("resolve host %q: %w", event.HostId, err)
	}
	if event.Host.Username != "" && event.Host.Username != host.Username {
		host.Username = event.Host.Username
		host.Email = event.Host.Email
		if err := db.Model(&model.Host{}).Where("auth_id = ?", host.AuthId).
			Updates(map[string]any{"username": host.Username, "email": host.Email}).Error; err != nil {
			return fmt.Errorf("refresh host %q: %w", host.AuthId, err)
		}
	}
	event.Host = host
	return nil
}

// resolveShowtimes is stage 5. Existing showtime ids are reused exactly as
// stored; their references are not rewired. New ones are built from the ids
// the earlier stages rebound and batch-inserted.
func resolveShowtimes(db *gorm.DB, event *model.JoinEvent) error {
	ids := make([]int, 0, len(event.Showtimes))
	seen := map[int]bool{}
	for i := range event.Showtimes {
		st := &event.Showtimes[i]
		if st.ID == 0 {
			return fmt.Errorf("showtime without a provider id")
		}
		if !seen[st.ID] {
			seen[st.ID] = true
			ids = append(ids, st.ID)
		}
	}

	var existing []model.Showtime
	if err := db.Where("id IN ?", ids).Find(&existing).Error; err != nil {
		return fmt.Errorf("lookup showtimes: %w", err)
	}
	existingByID := make(map[int]model.Showtime, len(existing))
	for _, st := range existing {
		existingByID[st.ID] = st
	}

	created := map[int]bool{}
	var fresh []model.Showtime
	for i := range event.Showtimes {
		st := &event.Showtimes[i]
		if row, ok := existingByID[st.ID]; ok {
			*st = row
			continue
		}
		if created[st.ID] {
			continue
		}
		created[st.ID] = true
		fresh = append(fresh, model.Showtime{
			ID:           st.ID,
			MovieId:      st.MovieId,
			CinemaId:     st.CinemaId,
			RoomId:       st.RoomId,
			PlaytimeId:   st.PlaytimeId,
			VersionTagId: st.VersionTagId,
		})
	}
	if len(fresh) > 0 {
		if err := db.Omit(clause.Associations).Create(&fresh).Error; err != nil {
			return fmt.Errorf("insert showtimes: %w", err)
		}
	}
	return nil
}

func optionKey(option model.SelectOption) string {
	return option.VoteOption + "|" + option.Color
}

// resolveSelectOptions is stage 6: batch upsert by the (label, color) pair
// and rebind the event's option list and its default to canonical rows.
func resolveSelectOptions(db *gorm.DB, event *model.JoinEvent) error {
	canonical := map[string]model.SelectOption{}
	for i := range event.SelectOptions {
		opt := &event.SelectOptions[i]
		key := optionKey(*opt)
		resolved, ok := canonical[key]
		if !ok {
			resolved = model.SelectOption{VoteOption: opt.VoteOption, Color: opt.Color}
			if err := db.Where(model.SelectOption{VoteOption: opt.VoteOption, Color: opt.Color}).FirstOrCreate(&resolved).Error; err != nil {
				return fmt.Errorf("resolve select option %q: %w", key, err)
			}
			canonical[key] = resolved
		}
		*opt = resolved
	}

	def, ok := canonical[optionKey(event.DefaultSelectOption)]
	if !ok {
		return fmt.Errorf("%w: default option %q", ErrUnknownSelectOption, event.DefaultSelectOption.VoteOption)
	}
	event.DefaultSelectOptionId = def.ID
	event.DefaultSelectOption = def
	return nil
}
