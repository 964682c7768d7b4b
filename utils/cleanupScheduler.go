package utils

import (
	"cbt/database"
	"cbt/models"
	"log"

	"github.com/robfig/cron/v3"
)

// SweepOrphanResults deletes results whose test no longer exists. Test
// deletion cascades to results in two separate operations, so a crash
// between them can leave orphans behind; this sweep picks them up.
func SweepOrphanResults() {
	db := database.Database.Db

	res := db.Where("test_id NOT IN (?)", db.Model(&models.Test{}).Select("id")).Delete(&models.Result{})
	if res.Error != nil {
		log.Printf("Orphan result sweep failed: %v", res.Error)
		return
	}

	if res.RowsAffected > 0 {
		log.Printf("Orphan result sweep removed %d rows", res.RowsAffected)
	}
}

// InitializeCleanupScheduler starts the daily maintenance cron.
func InitializeCleanupScheduler() *cron.Cron {
	c := cron.New()

	if _, err := c.AddFunc("@daily", SweepOrphanResults); err != nil {
		log.Printf("Failed to schedule orphan result sweep: %v", err)
	}

	c.Start()
	return c
}
