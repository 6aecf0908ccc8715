package services

import (
	"sort"
	"time"

	"github.com/carepulse/carepulse-backend/database"
	"github.com/carepulse/carepulse-backend/models"
	"github.com/google/uuid"
)

// ScheduleStore is the persistence surface the availability core runs
// against. The slot generator and schedule projector only read; the editor
// operations are the sole writers of availability and blocked-slot records.
// Appointments are written elsewhere (the booking flow) and are read-only
// here.
type ScheduleStore interface {
	// WeeklyAvailability returns the single record for (doctorName,
	// dayOfWeek), or nil when none exists. Absence is not an error.
	WeeklyAvailability(doctorName, dayOfWeek string) (*models.DoctorAvailability, error)
	// WeeklySchedule returns all of a doctor's weekly records, Monday first.
	WeeklySchedule(doctorName string) ([]models.DoctorAvailability, error)
	CreateWeeklyAvailability(a *models.DoctorAvailability) error
	UpdateWeeklyAvailability(a *models.DoctorAvailability) error

	// BlockedSlotsForDate returns the blocked ranges whose date falls on the
	// calendar day of date.
	BlockedSlotsForDate(doctorName string, date time.Time) ([]models.BlockedSlot, error)
	BlockedSlotsInRange(doctorName string, from, to time.Time) ([]models.BlockedSlot, error)
	CreateBlockedSlot(b *models.BlockedSlot) error
	// DeleteBlockedSlot removes a blocked range by identity. Deleting an
	// unknown id surfaces the store's not-found error unchanged.
	DeleteBlockedSlot(id uuid.UUID) error

	// AppointmentsForDate returns every appointment on the calendar day of
	// date regardless of status; callers filter.
	AppointmentsForDate(doctorName string, date time.Time) ([]models.Appointment, error)
	AppointmentsInRange(doctorName string, from, to time.Time) ([]models.Appointment, error)
}

type gormScheduleStore struct{}

// NewScheduleStore returns the GORM-backed store over database.DB.
func NewScheduleStore() ScheduleStore {
	return gormScheduleStore{}
}

func (gormScheduleStore) WeeklyAvailability(doctorName, dayOfWeek string) (*models.DoctorAvailability, error) {
	var records []models.DoctorAvailability
	err := database.DB.
		Where("doctor_name = ? AND day_of_week = ?", doctorName, dayOfWeek).
		Limit(1).
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, nil
	}
	return &records[0], nil
}

func (gormScheduleStore) WeeklySchedule(doctorName string) ([]models.DoctorAvailability, error) {
	var records []models.DoctorAvailability
	err := database.DB.
		Where("doctor_name = ?", doctorName).
		Find(&records).Error
	if err != nil {
		return nil, err
	}

	sort.Slice(records, func(i, j int) bool {
		return models.DayIndex[records[i].DayOfWeek] < models.DayIndex[records[j].DayOfWeek]
	})
	return records, nil
}

func (gormScheduleStore) CreateWeeklyAvailability(a *models.DoctorAvailability) error {
	return database.DB.Create(a).Error
}

func (gormScheduleStore) UpdateWeeklyAvailability(a *models.DoctorAvailability) error {
	return database.DB.Save(a).Error
}

func (gormScheduleStore) BlockedSlotsForDate(doctorName string, date time.Time) ([]models.BlockedSlot, error) {
	dayStart, dayEnd := dayBounds(date)

	var blocked []models.BlockedSlot
	err := database.DB.
		Where("doctor_name = ? AND date >= ? AND date < ?", doctorName, dayStart, dayEnd).
		Find(&blocked).Error
	return blocked, err
}

func (gormScheduleStore) BlockedSlotsInRange(doctorName string, from, to time.Time) ([]models.BlockedSlot, error) {
	var blocked []models.BlockedSlot
	err := database.DB.
		Where("doctor_name = ? AND date >= ? AND date <= ?", doctorName, from, to).
		Order("date asc").
		Find(&blocked).Error
	return blocked, err
}

func (gormScheduleStore) CreateBlockedSlot(b *models.BlockedSlot) error {
	return database.DB.Create(b).Error
}

func (gormScheduleStore) DeleteBlockedSlot(id uuid.UUID) error {
	var blocked models.BlockedSlot
	if err := database.DB.First(&blocked, "id = ?", id).Error; err != nil {
		return err
	}
	return database.DB.Delete(&blocked).Error
}

func (gormScheduleStore) AppointmentsForDate(doctorName string, date time.Time) ([]models.Appointment, error) {
	dayStart, dayEnd := dayBounds(date)

	var appointments []models.Appointment
	err := database.DB.
		Where("primary_physician = ? AND schedule >= ? AND schedule < ?", doctorName, dayStart, dayEnd).
		Find(&appointments).Error
	return appointments, err
}

func (gormScheduleStore) AppointmentsInRange(doctorName string, from, to time.Time) ([]models.Appointment, error) {
	var appointments []models.Appointment
	err := database.DB.
		Where("primary_physician = ? AND schedule >= ? AND schedule <= ?", doctorName, from, to).
		Order("schedule asc").
		Find(&appointments).Error
	return appointments, err
}

// dayBounds returns the half-open [midnight, next midnight) window around
// date in date's own location.
func dayBounds(date time.Time) (time.Time, time.Time) {
	y, m, d := date.Date()
	start := time.Date(y, m, d, 0, 0, 0, 0, date.Location())
	return start, start.AddDate(0, 0, 1)
}
