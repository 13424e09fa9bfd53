package model

import "time"

// Playtime is deduplicated on its UTC start timestamp.
type Playtime struct {
	DTO
	StartTime time.Time `gorm:"not null;uniqueIndex" json:"startTime"`
}

// VersionTag is a screening version label such as "Original version" or
// "Dubbed", unique by label.
type VersionTag struct {
	DTO
	Type string `gorm:"size:60;not null;uniqueIndex" json:"type"`
}

// Showtime ids are assigned by the listings provider. A showtime that already
// exists is reused as-is; its references are assumed correctly wired from the
// original creation.
type Showtime struct {
	ID           int  `gorm:"primaryKey;autoIncrement:false" json:"id"`
	MovieId      int  `json:"movieId"`
	CinemaId     int  `json:"cinemaId"`
	RoomId       int  `json:"roomId"`
	PlaytimeId   uint `json:"playtimeId"`
	VersionTagId uint `json:"versionTagId"`

	Movie      Movie      `gorm:"foreignKey:MovieId;constraint:OnUpdate:CASCADE" json:"movie"`
	Cinema     Cinema     `gorm:"foreignKey:CinemaId;constraint:OnUpdate:CASCADE" json:"cinema"`
	Room       Room       `gorm:"foreignKey:RoomId;constraint:OnUpdate:CASCADE" json:"room"`
	Playtime   Playtime   `gorm:"foreignKey:PlaytimeId;constraint:OnUpdate:CASCADE" json:"playtime"`
	VersionTag VersionTag `gorm:"foreignKey:VersionTagId;constraint:OnUpdate:CASCADE" json:"versionTag"`
}
