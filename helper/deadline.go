package helper

import (
	"fmt"
	"log"
	"movienight_manager/database"
	"movienight_manager/model"
	"movienight_manager/utils"
	"time"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

var deadlineCron *cron.Cron

func StartDeadlineScheduler() {
	deadlineCron = cron.New(cron.WithChain(
		cron.SkipIfStillRunning(cron.DefaultLogger),
	))

	_, err := deadlineCron.AddFunc("*/10 * * * *", func() {
		RemindExpiredDeadlines(database.DB)
	})
	if err != nil {
		log.Printf("failed to start deadline scheduler: %v", err)
		return
	}

	deadlineCron.Start()
	log.Println("deadline scheduler started (every 10 minutes)")
}

func StopDeadlineScheduler() {
	if deadlineCron != nil {
		deadlineCron.Stop()
	}
}

// RemindExpiredDeadlines mails hosts whose voting deadline passed without a
// chosen showtime. Each event is reminded once.
func RemindExpiredDeadlines(db *gorm.DB) {
	now := time.Now().UTC()

	var events []model.JoinEvent
	err := db.Preload("Host").
		Where("deadline < ? AND chosen_showtime_id IS NULL AND reminder_sent = ?", now, false).
		Find(&events).Error
	if err != nil {
		log.Printf("deadline sweep failed: %v", err)
		return
	}

	for _, event := range events {
		if event.Host.Email != nil && *event.Host.Email != "" {
			body := fmt.Sprintf("Voting for %q closed at %s. Pick a showtime so your participants can plan.",
				event.Title, event.Deadline.Format(time.RFC1123))
			utils.SendEventMail(*event.Host.Email, "Voting closed for "+event.Title, body)
		}
		if err := db.Model(&model.JoinEvent{}).Where("id = ?", event.ID).Update("reminder_sent", true).Error; err != nil {
			log.Printf("failed to mark reminder for event %d: %v", event.ID, err)
		}
	}
}
