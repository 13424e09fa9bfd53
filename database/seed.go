package database

import (
	"log"
	"movienight_manager/model"

	"gorm.io/gorm"
)

// SeedData creates the stock vote options most events reuse. Events may still
// submit their own pairs; these just keep the common case deduplicated from
// day one.
func SeedData(db *gorm.DB) {
	selectOptions := []model.SelectOption{
		{VoteOption: "Can attend", Color: "#28a745"},
		{VoteOption: "Cannot attend", Color: "#dc3545"},
		{VoteOption: "If necessary", Color: "#ffc107"},
	}

	for _, option := range selectOptions {
		if err := db.Where(model.SelectOption{VoteOption: option.VoteOption, Color: option.Color}).FirstOrCreate(&option).Error; err != nil {
			log.Println("failed to seed select option:", option.VoteOption, "error:", err)
		}
	}
}
