package model

import "time"

// SelectOption is a choosable vote response, unique on (voteOption, color).
type SelectOption struct {
	DTO
	VoteOption string `gorm:"size:60;not null;uniqueIndex:idx_select_options_option_color" validate:"required,max=60" json:"voteOption"`
	Color      string `gorm:"size:30;not null;uniqueIndex:idx_select_options_option_color" validate:"required,max=30" json:"color"`
}

// JoinEvent is the aggregate a client submits in one piece: scalar fields,
// candidate showtimes, the offered vote options and nested participants.
// Nested reference entities carry natural keys only and are rebound to
// canonical rows by the reconciliation engine before anything is saved.
type JoinEvent struct {
	DTO
	Slug        string    `gorm:"size:80;uniqueIndex" json:"slug"`
	Title       string    `gorm:"size:60;not null" validate:"required,max=60" json:"title"`
	Description string    `gorm:"size:500" validate:"max=500" json:"description"`
	Deadline    time.Time `gorm:"not null" validate:"required" json:"deadline"`

	HostId string `gorm:"size:64;not null;index" json:"hostId"`
	Host   Host   `gorm:"foreignKey:HostId;references:AuthId" json:"host"`

	Showtimes []Showtime `gorm:"many2many:join_event_showtimes;" validate:"required,min=1,dive" json:"showtimes"`

	SelectOptions         []SelectOption `gorm:"many2many:join_event_select_options;" validate:"required,min=1,dive" json:"selectOptions"`
	DefaultSelectOptionId uint           `json:"defaultSelectOptionId"`
	DefaultSelectOption   SelectOption   `gorm:"foreignKey:DefaultSelectOptionId" validate:"required" json:"defaultSelectOption"`

	// Set once by the host when the event is finalized.
	ChosenShowtimeId *int `json:"chosenShowtimeId"`

	Participants []Participant `gorm:"foreignKey:JoinEventId" validate:"dive" json:"participants"`

	// Deadline sweep bookkeeping, never client-supplied.
	ReminderSent bool `gorm:"not null;default:false" json:"-"`
}

type JoinEvents []JoinEvent

type FilterJoinEventInput struct {
	Pagination
	HostId   string `query:"hostId"`
	Upcoming bool   `query:"upcoming"`
}
