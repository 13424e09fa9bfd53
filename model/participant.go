package model

type Participant struct {
	DTO
	JoinEventId uint    `gorm:"not null;index" json:"joinEventId"`
	AuthId      *string `gorm:"size:64" json:"authId"`
	// Minted server-side for participants joining without an auth id.
	GuestToken *string `gorm:"size:36" json:"guestToken,omitempty"`
	Nickname   string  `gorm:"size:60;not null" validate:"required,max=60" json:"nickname"`
	Email      *string `gorm:"size:60" validate:"omitempty,max=60" json:"email"`
	Note       *string `gorm:"size:500" validate:"omitempty,max=500" json:"note"`

	VotedFor []ParticipantVote `gorm:"foreignKey:ParticipantId;constraint:OnDelete:CASCADE" validate:"dive" json:"votedFor"`
}

// ParticipantVote records one participant's response for one candidate
// showtime. Composite-keyed; a participant votes at most once per showtime.
type ParticipantVote struct {
	ParticipantId uint `gorm:"primaryKey" json:"participantId"`
	ShowtimeId    int  `gorm:"primaryKey" json:"showtimeId"`

	SelectedOptionId uint         `gorm:"not null" json:"selectedOptionId"`
	SelectedOption   SelectOption `gorm:"foreignKey:SelectedOptionId" json:"selectedOption"`
}
