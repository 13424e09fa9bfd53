package model

// Cinema and Room ids come from the listings provider, not the database.

type Cinema struct {
	ID   int    `gorm:"primaryKey;autoIncrement:false" json:"id"`
	Name string `gorm:"size:120;not null" json:"name"`
}

type Cinemas []Cinema

type Room struct {
	ID   int    `gorm:"primaryKey;autoIncrement:false" json:"id"`
	Name string `gorm:"size:120" json:"name"`
}
