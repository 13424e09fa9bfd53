package helper

import (
	"errors"
	"fmt"
	"movienight_manager/model"
	"movienight_manager/utils"
	"time"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrJoinEventNotFound   = errors.New("join event not found")
	ErrMissingReferences   = errors.New("cinema or version tag not known to the store")
	ErrUnknownSelectOption = errors.New("vote references an option the event does not offer")
)

// UpsertJoinEvent persists a client-submitted join event graph and returns
// its id. A non-zero id takes the update path; otherwise the aggregate is
// inserted through the dependency-ordered stage sequence. The submitted
// nested reference entities carry natural keys only and are rebound to
// canonical rows before anything referencing them is written.
func UpsertJoinEvent(db *gorm.DB, event *model.JoinEvent) (uint, error) {
	event.Deadline = utils.ToUTC(event.Deadline)

	if event.ID != 0 {
		return updateJoinEvent(db, event)
	}
	return insertJoinEvent(db, event)
}

// insertJoinEvent runs the insert stages. Each stage commits its own writes;
// there is no transaction spanning the sequence, so a crash mid-way can
// leave reference rows with no owning event (accepted failure mode, the
// rows are reusable either way).
//
// Stage 1 is optimistic: the common case is that cinemas and version tags
// already arrived via the listings sync, so the first pass only looks them
// up. When keys are reported missing they are bulk-created from the
// submitted data and resolution is retried exactly once.
func insertJoinEvent(db *gorm.DB, event *model.JoinEvent) (uint, error) {
	missing, err := resolveCinemasAndVersionTags(db, event)
	if err != nil {
		return 0, err
	}
	if !missing.Empty() {
		if err := createMissingReferences(db, missing); err != nil {
			return 0, err
		}
		missing, err = resolveCinemasAndVersionTags(db, event)
		if err != nil {
			return 0, err
		}
		if !missing.Empty() {
			return 0, fmt.Errorf("%w: still unresolved after retry", ErrMissingReferences)
		}
	}

	if err := resolvePlaytimesAndRooms(db, event); err != nil {
		return 0, err
	}
	if err := upsertMovies(db, event); err != nil {
		return 0, err
	}
	if err := resolveHost(db, event); err != nil {
		return 0, err
	}
	if err := resolveShowtimes(db, event); err != nil {
		return 0, err
	}
	if err := resolveSelectOptions(db, event); err != nil {
		return 0, err
	}

	// The event row must exist before participants can reference it.
	participants := event.Participants
	event.Participants = nil
	event.Slug = GenerateUniqueEventSlug(db, event.Title)
	event.ReminderSent = false
	if err := db.Omit("Showtimes.*", "SelectOptions.*", "Host", "DefaultSelectOption").Create(event).Error; err != nil {
		return 0, fmt.Errorf("insert join event: %w", err)
	}

	if err := insertParticipants(db, event.ID, event.SelectOptions, participants); err != nil {
		return 0, err
	}
	event.Participants = participants

	return event.ID, nil
}

// updateJoinEvent patches the event's scalar fields, overwrites matched
// participants and inserts new ones, all as one transaction. Reference
// entities are never created here; they were resolved by the original
// insert. Votes of pre-existing participants are left untouched (votes are
// immutable once cast; re-joining replaces them).
func updateJoinEvent(db *gorm.DB, event *model.JoinEvent) (uint, error) {
	var current model.JoinEvent
	if err := db.First(&current, event.ID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, ErrJoinEventNotFound
		}
		return 0, fmt.Errorf("load join event %d: %w", event.ID, err)
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		patch := map[string]any{
			"title":              event.Title,
			"description":        event.Description,
			"deadline":           event.Deadline,
			"chosen_showtime_id": event.ChosenShowtimeId,
		}
		if err := tx.Model(&model.JoinEvent{}).Where("id = ?", event.ID).Updates(patch).Error; err != nil {
			return fmt.Errorf("patch join event %d: %w", event.ID, err)
		}

		var persisted []model.Participant
		if err := tx.Where("join_event_id = ?", event.ID).Find(&persisted).Error; err != nil {
			return fmt.Errorf("load participants: %w", err)
		}
		persistedByID := make(map[uint]model.Participant, len(persisted))
		for _, p := range persisted {
			persistedByID[p.ID] = p
		}

		var newcomers []model.Participant
		for i := range event.Participants {
			p := &event.Participants[i]
			if p.ID == 0 {
				newcomers = append(newcomers, *p)
				continue
			}
			existing, ok := persistedByID[p.ID]
			if !ok {
				// stale id from the client, nothing to overwrite
				continue
			}
			merged := existing
			if err := copier.Copy(&merged, p); err != nil {
				return fmt.Errorf("merge participant %d: %w", p.ID, err)
			}
			merged.ID = existing.ID
			merged.JoinEventId = event.ID
			merged.AuthId = existing.AuthId
			merged.GuestToken = existing.GuestToken
			merged.CreatedAt = existing.CreatedAt
			merged.VotedFor = nil
			if err := tx.Omit(clause.Associations).Save(&merged).Error; err != nil {
				return fmt.Errorf("update participant %d: %w", merged.ID, err)
			}
		}

		if len(newcomers) > 0 {
			var options []model.SelectOption
			if err := tx.Model(&model.JoinEvent{DTO: model.DTO{ID: event.ID}}).Association("SelectOptions").Find(&options); err != nil {
				return fmt.Errorf("load select options: %w", err)
			}
			if err := insertParticipants(tx, event.ID, options, newcomers); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	if event.ChosenShowtimeId != nil && current.ChosenShowtimeId == nil {
		notifyChosenShowtime(db, event.ID)
	}
	return event.ID, nil
}

// insertParticipants stamps ownership, resolves each vote's option against
// the event's canonical option set and writes participant plus vote rows.
// Anonymous participants get a guest token so the client can address the row
// later without an auth id.
func insertParticipants(db *gorm.DB, eventID uint, options []model.SelectOption, participants []model.Participant) error {
	byKey := make(map[string]model.SelectOption, len(options))
	byID := make(map[uint]model.SelectOption, len(options))
	for _, o := range options {
		byKey[optionKey(o)] = o
		byID[o.ID] = o
	}

	for i := range participants {
		p := &participants[i]
		votes := p.VotedFor

		p.ID = 0
		p.VotedFor = nil
		p.JoinEventId = eventID
		if p.AuthId == nil || *p.AuthId == "" {
			p.AuthId = nil
			p.GuestToken = utils.Ptr(uuid.NewString())
		}
		if err := db.Omit(clause.Associations).Create(p).Error; err != nil {
			return fmt.Errorf("insert participant %q: %w", p.Nickname, err)
		}

		for j := range votes {
			v := &votes[j]
			option, ok := byKey[optionKey(v.SelectedOption)]
			if !ok {
				option, ok = byID[v.SelectedOptionId]
			}
			if !ok {
				return fmt.Errorf("%w: %q/%q", ErrUnknownSelectOption, v.SelectedOption.VoteOption, v.SelectedOption.Color)
			}
			v.ParticipantId = p.ID
			v.SelectedOptionId = option.ID
			v.SelectedOption = model.SelectOption{}
		}
		if len(votes) > 0 {
			if err := db.Omit(clause.Associations).Create(&votes).Error; err != nil {
				return fmt.Errorf("insert votes for participant %d: %w", p.ID, err)
			}
		}
		p.VotedFor = votes
	}
	return nil
}

// DeleteParticipant removes one participant and its votes. A participant id
// that does not belong to the event is a no-op, not an error.
func DeleteParticipant(db *gorm.DB, eventID uint, participantID uint) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var p model.Participant
		err := tx.Where("id = ? AND join_event_id = ?", participantID, eventID).First(&p).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("load participant %d: %w", participantID, err)
		}
		if err := tx.Where("participant_id = ?", p.ID).Delete(&model.ParticipantVote{}).Error; err != nil {
			return fmt.Errorf("delete votes of participant %d: %w", p.ID, err)
		}
		if err := tx.Delete(&p).Error; err != nil {
			return fmt.Errorf("delete participant %d: %w", p.ID, err)
		}
		return nil
	})
}

// notifyChosenShowtime mails every participant with an address once the host
// locks in a showtime.
func notifyChosenShowtime(db *gorm.DB, eventID uint) {
	event, err := GetJoinEventById(db, eventID)
	if err != nil || event == nil || event.ChosenShowtimeId == nil {
		return
	}
	var chosen *model.Showtime
	for i := range event.Showtimes {
		if event.Showtimes[i].ID == *event.ChosenShowtimeId {
			chosen = &event.Showtimes[i]
			break
		}
	}
	if chosen == nil {
		return
	}
	body := fmt.Sprintf("%s is locked in: %s at %s on %s.",
		event.Title, chosen.Movie.Title, chosen.Cinema.Name,
		chosen.Playtime.StartTime.Format(time.RFC1123))
	for _, p := range event.Participants {
		if p.Email != nil && *p.Email != "" {
			utils.SendEventMail(*p.Email, "Showtime chosen for "+event.Title, body)
		}
	}
}
