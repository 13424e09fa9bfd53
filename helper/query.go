package helper

import (
	"errors"
	"fmt"
	"movienight_manager/model"
	"movienight_manager/utils"
	"time"

	"gorm.io/gorm"
)

// preloadJoinEvent eagerly materializes the full graph so callers never see
// bare foreign keys.
func preloadJoinEvent(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Host").
		Preload("Showtimes.Movie.AgeRating").
		Preload("Showtimes.Cinema").
		Preload("Showtimes.Room").
		Preload("Showtimes.Playtime").
		Preload("Showtimes.VersionTag").
		Preload("SelectOptions").
		Preload("DefaultSelectOption").
		Preload("Participants.VotedFor.SelectedOption")
}

// GetJoinEventById returns the hydrated event, or nil when it does not exist.
func GetJoinEventById(db *gorm.DB, id uint) (*model.JoinEvent, error) {
	var event model.JoinEvent
	err := preloadJoinEvent(db).First(&event, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get join event %d: %w", id, err)
	}
	return &event, nil
}

// GetJoinEventBySlug resolves a public share link.
func GetJoinEventBySlug(db *gorm.DB, slug string) (*model.JoinEvent, error) {
	var event model.JoinEvent
	err := preloadJoinEvent(db).Where("slug = ?", slug).First(&event).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get join event %q: %w", slug, err)
	}
	return &event, nil
}

func GetAllJoinEvents(db *gorm.DB, filter *model.FilterJoinEventInput) ([]model.JoinEvent, int64, error) {
	query := db.Model(&model.JoinEvent{})
	if filter != nil {
		if filter.HostId != "" {
			query = query.Where("host_id = ?", filter.HostId)
		}
		if filter.Upcoming {
			query = query.Where("deadline > ?", time.Now().UTC())
		}
	}

	var total int64
	countQuery := query.Session(&gorm.Session{})
	if err := countQuery.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count join events: %w", err)
	}

	if filter != nil {
		query = utils.ApplyPagination(query, filter.Limit, filter.Page)
	}

	var events []model.JoinEvent
	if err := preloadJoinEvent(query).Order("deadline ASC").Find(&events).Error; err != nil {
		return nil, 0, fmt.Errorf("list join events: %w", err)
	}
	return events, total, nil
}
