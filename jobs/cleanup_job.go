package jobs

import (
	"log"
	"time"

	"github.com/carepulse/carepulse-backend/database"
	"github.com/carepulse/carepulse-backend/models"
)

// Blocked slots are one-off exceptions; once their date is long past they
// only add noise to range queries. Weekly availability records are standing
// configuration and are never purged.
const blockedSlotRetentionDays = 90

func PurgeExpiredBlockedSlots() {
	log.Println("Running job: PurgeExpiredBlockedSlots...")

	cutoff := PurgeCutoff(time.Now())
	result := database.DB.Where("date < ?", cutoff).Delete(&models.BlockedSlot{})
	if result.Error != nil {
		log.Printf("Error purging expired blocked slots: %v", result.Error)
		return
	}
	if result.RowsAffected > 0 {
		log.Printf("Purged %d expired blocked slots older than %s", result.RowsAffected, cutoff.Format("2006-01-02"))
	}
}

// PurgeCutoff returns the midnight-UTC boundary before which blocked slots
// are considered expired.
func PurgeCutoff(now time.Time) time.Time {
	y, m, d := now.UTC().Date()
	midnight := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return midnight.AddDate(0, 0, -blockedSlotRetentionDays)
}
