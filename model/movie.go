package model

type Movie struct {
	ID           int        `gorm:"primaryKey;autoIncrement:false" json:"id"`
	Title        string     `gorm:"size:255;not null;index" json:"title"`
	ImageUrl     *string    `gorm:"size:255" validate:"omitempty,url" json:"imageUrl"`
	InfoUrl      *string    `gorm:"size:255" validate:"omitempty,url" json:"infoUrl"`
	Duration     int        `json:"duration"` // minutes
	PremiereDate *string    `gorm:"size:60" json:"premiereDate"`
	AgeRatingId  *uint      `json:"ageRatingId"`
	AgeRating    *AgeRating `gorm:"foreignKey:AgeRatingId;constraint:OnUpdate:CASCADE,OnDelete:SET NULL" json:"ageRating"`
}

type Movies []Movie

type AgeRating struct {
	DTO
	Censorship string `gorm:"size:60;not null;uniqueIndex" validate:"required" json:"censorship"`
}

// Genre rows exist only as sync-fed filter data for clients.
type Genre struct {
	ID   int    `gorm:"primaryKey;autoIncrement:false" json:"id"`
	Name string `gorm:"size:120;not null" json:"name"`
}
