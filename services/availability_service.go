package services

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/carepulse/carepulse-backend/models"
	"github.com/google/uuid"
)

// SlotMinutes is the fixed length of a bookable slot.
const SlotMinutes = 30

// ScheduleWindowDays is the rolling window the calendar view projects over.
const ScheduleWindowDays = 30

// DefaultReason is recorded on a blocked slot when the admin gives none.
const DefaultReason = "Unavailable"

// DefaultWeekdays is the Monday-Friday set used when bulk-initializing a
// doctor's schedule.
var DefaultWeekdays = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday"}

// TimeSlot is a derived 30-minute candidate booking window. It is computed
// fresh on every query and never persisted. IsBooked and IsAvailable are
// orthogonal annotations: a slot holding a confirmed appointment inside a
// newly blocked range reads as booked and unavailable at once.
type TimeSlot struct {
	Time        string `json:"time"`
	IsAvailable bool   `json:"isAvailable"`
	IsBooked    bool   `json:"isBooked"`
}

// DoctorSchedule is the combined calendar projection for one doctor: both
// lists are returned as stored, unmerged, for the presentation layer to
// annotate.
type DoctorSchedule struct {
	Appointments []models.Appointment `json:"appointments"`
	BlockedSlots []models.BlockedSlot `json:"blockedSlots"`
}

// GenerateTimeSlots expands a [startTime, endTime) working window into
// 30-minute slots. A slot is emitted only when it fits entirely before
// endTime, so a trailing partial period produces nothing and start == end
// produces zero slots. Malformed clock strings also produce zero slots.
func GenerateTimeSlots(startTime, endTime string) []TimeSlot {
	start, okStart := parseClock(startTime)
	end, okEnd := parseClock(endTime)
	if !okStart || !okEnd {
		return []TimeSlot{}
	}

	slots := []TimeSlot{}
	for t := start; t+SlotMinutes <= end; t += SlotMinutes {
		slots = append(slots, TimeSlot{Time: formatClock(t), IsAvailable: true, IsBooked: false})
	}
	return slots
}

// GetAvailableTimeSlots computes the ordered slot list for a doctor on a
// calendar date. Any time-of-day component of date is ignored. A doctor with
// no weekly record for that weekday, or one marked unavailable, yields an
// empty list without touching blocked slots or appointments; an unknown
// doctor is indistinguishable from an unconfigured one.
//
// UTC is the canonical zone for all date bucketing and wall-clock
// comparisons: blocked slots are written at midnight UTC, so the queried
// instant is rebased to UTC before the calendar date and weekday are taken.
func GetAvailableTimeSlots(store ScheduleStore, doctorName string, date time.Time) ([]TimeSlot, error) {
	date = date.UTC()
	dayOfWeek := date.Weekday().String()

	schedule, err := store.WeeklyAvailability(doctorName, dayOfWeek)
	if err != nil {
		return nil, err
	}
	if schedule == nil || !schedule.IsAvailable {
		return []TimeSlot{}, nil
	}

	slots := GenerateTimeSlots(schedule.StartTime, schedule.EndTime)

	blocked, err := store.BlockedSlotsForDate(doctorName, date)
	if err != nil {
		return nil, err
	}
	appointments, err := store.AppointmentsForDate(doctorName, date)
	if err != nil {
		return nil, err
	}

	markBlocked(slots, blocked)
	markBooked(slots, appointments)
	return slots, nil
}

// markBlocked flags every slot falling inside a blocked range's half-open
// [startTime, endTime) window. Zero-padded "HH:MM" strings order the same
// lexicographically as numerically, so plain string comparison suffices.
func markBlocked(slots []TimeSlot, blocked []models.BlockedSlot) {
	for i := range slots {
		for _, b := range blocked {
			if slots[i].Time >= b.StartTime && slots[i].Time < b.EndTime {
				slots[i].IsAvailable = false
				break
			}
		}
	}
}

// markBooked flags slots whose wall-clock time matches a non-cancelled
// appointment. Booked implies unavailable.
func markBooked(slots []TimeSlot, appointments []models.Appointment) {
	for i := range slots {
		for _, apt := range appointments {
			if apt.Status == models.AppointmentCancelled {
				continue
			}
			if apt.Schedule.UTC().Format("15:04") == slots[i].Time {
				slots[i].IsBooked = true
				slots[i].IsAvailable = false
				break
			}
		}
	}
}

// IsDoctorAvailable reports whether the slot at the instant's wall-clock time
// is open for booking. An instant that lands on no generated slot is not
// available. The answer is a snapshot: it is not atomic with any subsequent
// appointment insert.
func IsDoctorAvailable(store ScheduleStore, doctorName string, at time.Time) (bool, error) {
	slots, err := GetAvailableTimeSlots(store, doctorName, at)
	if err != nil {
		return false, err
	}

	want := at.UTC().Format("15:04")
	for _, slot := range slots {
		if slot.Time == want {
			return slot.IsAvailable, nil
		}
	}
	return false, nil
}

// SetDoctorAvailability upserts the weekly record for (doctorName,
// dayOfWeek): an existing record is updated in place so its identity is
// preserved, otherwise one is created. startTime/endTime ordering is not
// checked here; the admin form owns that.
func SetDoctorAvailability(store ScheduleStore, doctorName, dayOfWeek, startTime, endTime string, isAvailable bool) (*models.DoctorAvailability, error) {
	existing, err := store.WeeklyAvailability(doctorName, dayOfWeek)
	if err != nil {
		return nil, err
	}

	if existing != nil {
		existing.StartTime = startTime
		existing.EndTime = endTime
		existing.IsAvailable = isAvailable
		if err := store.UpdateWeeklyAvailability(existing); err != nil {
			return nil, err
		}
		return existing, nil
	}

	created := &models.DoctorAvailability{
		DoctorName:  doctorName,
		DayOfWeek:   dayOfWeek,
		StartTime:   startTime,
		EndTime:     endTime,
		IsAvailable: isAvailable,
	}
	if err := store.CreateWeeklyAvailability(created); err != nil {
		return nil, err
	}
	return created, nil
}

// BlockDoctorSlot records a one-off blocked range. It does not check for
// overlap with existing blocks or appointments: an already-booked
// appointment inside the range stays booked, the block only stops future
// bookings there.
func BlockDoctorSlot(store ScheduleStore, doctorName string, date time.Time, startTime, endTime, reason string) (*models.BlockedSlot, error) {
	if reason == "" {
		reason = DefaultReason
	}

	y, m, d := date.UTC().Date()
	blocked := &models.BlockedSlot{
		DoctorName: doctorName,
		Date:       time.Date(y, m, d, 0, 0, 0, 0, time.UTC),
		StartTime:  startTime,
		EndTime:    endTime,
		Reason:     reason,
	}
	if err := store.CreateBlockedSlot(blocked); err != nil {
		return nil, err
	}
	return blocked, nil
}

// UnblockDoctorSlot deletes a blocked range by id, propagating the store's
// not-found error.
func UnblockDoctorSlot(store ScheduleStore, id uuid.UUID) error {
	return store.DeleteBlockedSlot(id)
}

// GetDoctorSchedule projects the doctor's calendar over a rolling window of
// windowDays starting at windowStart. Zero or negative windowDays falls back
// to the 30-day default. No pagination: the window bounds the volume.
func GetDoctorSchedule(store ScheduleStore, doctorName string, windowStart time.Time, windowDays int) (*DoctorSchedule, error) {
	if windowDays <= 0 {
		windowDays = ScheduleWindowDays
	}
	windowEnd := windowStart.AddDate(0, 0, windowDays)

	appointments, err := store.AppointmentsInRange(doctorName, windowStart, windowEnd)
	if err != nil {
		return nil, err
	}
	blocked, err := store.BlockedSlotsInRange(doctorName, windowStart, windowEnd)
	if err != nil {
		return nil, err
	}

	if appointments == nil {
		appointments = []models.Appointment{}
	}
	if blocked == nil {
		blocked = []models.BlockedSlot{}
	}
	return &DoctorSchedule{Appointments: appointments, BlockedSlots: blocked}, nil
}

// InitializeDefaultAvailability applies the default Monday-Friday
// 09:00-17:00 schedule to every doctor in the roster. Failures are isolated
// per doctor/day: the remaining items still run and the caller gets one
// result line per item.
func InitializeDefaultAvailability(store ScheduleStore, roster []string) []string {
	results := []string{}
	for _, doctor := range roster {
		for _, day := range DefaultWeekdays {
			if _, err := SetDoctorAvailability(store, doctor, day, "09:00", "17:00", true); err != nil {
				results = append(results, fmt.Sprintf("%s - %s: error: %v", doctor, day, err))
				continue
			}
			results = append(results, fmt.Sprintf("%s - %s: ok", doctor, day))
		}
	}
	return results
}

// parseClock converts "HH:MM" to minutes since midnight.
func parseClock(s string) (int, bool) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return 0, false
	}
	h, errH := strconv.Atoi(parts[0])
	m, errM := strconv.Atoi(parts[1])
	if errH != nil || errM != nil || h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, false
	}
	return h*60 + m, true
}

func formatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}
