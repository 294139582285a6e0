package jobs

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"ClinicCare360/models"
)

// StartDailyScheduler runs the follow-up digest shortly after midnight so the
// log carries each morning's appointment schedule.
func StartDailyScheduler(store models.VisitStore) {
	c := cron.New()

	// Runs every day at 00:05 AM
	c.AddFunc("5 0 * * *", func() {
		log.Println("Running Daily Follow-Up Digest...")
		RunFollowUpDigest(store)
	})

	c.Start()
}

func RunFollowUpDigest(store models.VisitStore) {
	start, end := models.DayBounds(time.Now())

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	visits, err := store.FindByFollowUpRange(ctx, start, end)
	if err != nil {
		log.Println("Error from FindByFollowUpRange in digest:", err)
		return
	}
	log.Printf("Follow-ups scheduled today: %d", len(visits))
	for _, v := range visits {
		if v.FollowUpDate == nil {
			continue
		}
		log.Printf("Follow-up %s: %s (%s)", v.FollowUpDate.Format("15:04"), v.Name, v.Phone)
	}
}
