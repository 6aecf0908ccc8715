package models

import (
	"time"

	"github.com/google/uuid"
)

// DaysOfWeek lists the valid dayOfWeek values in calendar order.
var DaysOfWeek = []string{
	"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday",
}

// DayIndex maps a dayOfWeek value to its calendar position, for ordering
// weekly schedules Monday first.
var DayIndex = func() map[string]int {
	m := make(map[string]int, len(DaysOfWeek))
	for i, d := range DaysOfWeek {
		m[d] = i
	}
	return m
}()

// DoctorAvailability is a doctor's standing working window for one day of the
// week. Times are zone-less wall-clock "HH:MM" strings. At most one record
// exists per (doctorName, dayOfWeek); writes go through upsert logic, and a
// day is switched off via IsAvailable=false rather than deleted.
type DoctorAvailability struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	DoctorName  string    `gorm:"size:255;not null;index:idx_doctor_day,unique" json:"doctorName"`
	DayOfWeek   string    `gorm:"size:10;not null;index:idx_doctor_day,unique" json:"dayOfWeek"`
	StartTime   string    `gorm:"size:5;not null" json:"startTime"`
	EndTime     string    `gorm:"size:5;not null" json:"endTime"`
	IsAvailable bool      `gorm:"not null;default:true" json:"isAvailable"`

	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}
