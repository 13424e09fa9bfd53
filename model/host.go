package model

// Host is keyed by the auth provider's subject claim, never generated locally.
type Host struct {
	AuthId   string  `gorm:"primaryKey;size:64" json:"authId"`
	Username string  `gorm:"size:60;not null" validate:"required,max=60" json:"username"`
	Email    *string `gorm:"size:60" validate:"omitempty,max=60" json:"email"`

	JoinEvents []JoinEvent `gorm:"foreignKey:HostId" json:"joinEvents,omitempty"`
}
