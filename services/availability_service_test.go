package services

import (
	"errors"
	"testing"
	"time"

	"github.com/carepulse/carepulse-backend/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// fakeStore is an in-memory ScheduleStore that counts reads so tests can
// assert which queries an operation actually issued.
type fakeStore struct {
	weekly       []models.DoctorAvailability
	blocked      []models.BlockedSlot
	appointments []models.Appointment

	weeklyCalls      int
	blockedCalls     int
	appointmentCalls int

	failCreateFor string
}

// sameDay buckets both instants in UTC, the same way the GORM store's
// midnight-UTC day windows do.
func sameDay(a, b time.Time) bool {
	ay, am, ad := a.UTC().Date()
	by, bm, bd := b.UTC().Date()
	return ay == by && am == bm && ad == bd
}

func (f *fakeStore) WeeklyAvailability(doctorName, dayOfWeek string) (*models.DoctorAvailability, error) {
	f.weeklyCalls++
	for i := range f.weekly {
		if f.weekly[i].DoctorName == doctorName && f.weekly[i].DayOfWeek == dayOfWeek {
			return &f.weekly[i], nil
		}
	}
	return nil, nil
}

func (f *fakeStore) WeeklySchedule(doctorName string) ([]models.DoctorAvailability, error) {
	var out []models.DoctorAvailability
	for _, a := range f.weekly {
		if a.DoctorName == doctorName {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeStore) CreateWeeklyAvailability(a *models.DoctorAvailability) error {
	if f.failCreateFor != "" && a.DoctorName == f.failCreateFor {
		return errors.New("store unavailable")
	}
	a.ID = uuid.New()
	f.weekly = append(f.weekly, *a)
	return nil
}

func (f *fakeStore) UpdateWeeklyAvailability(a *models.DoctorAvailability) error {
	for i := range f.weekly {
		if f.weekly[i].ID == a.ID {
			f.weekly[i] = *a
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (f *fakeStore) BlockedSlotsForDate(doctorName string, date time.Time) ([]models.BlockedSlot, error) {
	f.blockedCalls++
	var out []models.BlockedSlot
	for _, b := range f.blocked {
		if b.DoctorName == doctorName && sameDay(b.Date, date) {
			out = append(out, b)
		}
	}
	return out, nil
}

func (f *fakeStore) BlockedSlotsInRange(doctorName string, from, to time.Time) ([]models.BlockedSlot, error) {
	var out []models.BlockedSlot
	for _, b := range f.blocked {
		if b.DoctorName == doctorName && !b.Date.Before(from) && !b.Date.After(to) {
			out = append(out, b)
		}
	}
	return out, nil
}

func (f *fakeStore) CreateBlockedSlot(b *models.BlockedSlot) error {
	b.ID = uuid.New()
	f.blocked = append(f.blocked, *b)
	return nil
}

func (f *fakeStore) DeleteBlockedSlot(id uuid.UUID) error {
	for i := range f.blocked {
		if f.blocked[i].ID == id {
			f.blocked = append(f.blocked[:i], f.blocked[i+1:]...)
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (f *fakeStore) AppointmentsForDate(doctorName string, date time.Time) ([]models.Appointment, error) {
	f.appointmentCalls++
	var out []models.Appointment
	for _, a := range f.appointments {
		if a.PrimaryPhysician == doctorName && sameDay(a.Schedule, date) {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeStore) AppointmentsInRange(doctorName string, from, to time.Time) ([]models.Appointment, error) {
	var out []models.Appointment
	for _, a := range f.appointments {
		if a.PrimaryPhysician == doctorName && !a.Schedule.Before(from) && !a.Schedule.After(to) {
			out = append(out, a)
		}
	}
	return out, nil
}

// monday is 2026-01-05, a Monday.
var monday = time.Date(2026, time.January, 5, 0, 0, 0, 0, time.UTC)

func weekly(doctor, day, start, end string, available bool) models.DoctorAvailability {
	return models.DoctorAvailability{
		ID:          uuid.New(),
		DoctorName:  doctor,
		DayOfWeek:   day,
		StartTime:   start,
		EndTime:     end,
		IsAvailable: available,
	}
}

func TestGenerateTimeSlots_FullDay(t *testing.T) {
	slots := GenerateTimeSlots("09:00", "17:00")

	if len(slots) != 16 {
		t.Fatalf("expected 16 slots, got %d", len(slots))
	}
	if slots[0].Time != "09:00" {
		t.Errorf("expected first slot 09:00, got %s", slots[0].Time)
	}
	if slots[len(slots)-1].Time != "16:30" {
		t.Errorf("expected last slot 16:30, got %s", slots[len(slots)-1].Time)
	}
	for i, slot := range slots {
		if slot.Time >= "17:00" {
			t.Errorf("slot %s is at or after the end time", slot.Time)
		}
		if !slot.IsAvailable || slot.IsBooked {
			t.Errorf("candidate slot %s should start available and unbooked", slot.Time)
		}
		if i > 0 && slots[i-1].Time >= slot.Time {
			t.Errorf("slots not strictly increasing: %s then %s", slots[i-1].Time, slot.Time)
		}
	}
}

func TestGenerateTimeSlots_TrailingPartialPeriodDropped(t *testing.T) {
	slots := GenerateTimeSlots("09:00", "09:45")

	if len(slots) != 1 {
		t.Fatalf("expected exactly one slot, got %d", len(slots))
	}
	if slots[0].Time != "09:00" {
		t.Errorf("expected slot 09:00, got %s", slots[0].Time)
	}
}

func TestGenerateTimeSlots_StartEqualsEnd(t *testing.T) {
	if slots := GenerateTimeSlots("09:00", "09:00"); len(slots) != 0 {
		t.Fatalf("expected zero slots, got %d", len(slots))
	}
}

func TestGenerateTimeSlots_MalformedInput(t *testing.T) {
	if slots := GenerateTimeSlots("nine", "17:00"); len(slots) != 0 {
		t.Fatalf("expected zero slots for malformed start, got %d", len(slots))
	}
	if slots := GenerateTimeSlots("09:00", "25:99"); len(slots) != 0 {
		t.Fatalf("expected zero slots for out-of-range end, got %d", len(slots))
	}
}

func TestGetAvailableTimeSlots_NoScheduleConfigured(t *testing.T) {
	store := &fakeStore{}

	slots, err := GetAvailableTimeSlots(store, "Dr. Green", monday)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(slots) != 0 {
		t.Fatalf("expected no slots for unconfigured doctor, got %d", len(slots))
	}
}

func TestGetAvailableTimeSlots_DayMarkedUnavailable(t *testing.T) {
	store := &fakeStore{
		weekly: []models.DoctorAvailability{weekly("Dr. Green", "Monday", "09:00", "17:00", false)},
		blocked: []models.BlockedSlot{{
			ID: uuid.New(), DoctorName: "Dr. Green", Date: monday, StartTime: "10:00", EndTime: "11:00",
		}},
		appointments: []models.Appointment{{
			ID: uuid.New(), PrimaryPhysician: "Dr. Green",
			Schedule: monday.Add(14 * time.Hour), Status: models.AppointmentScheduled,
		}},
	}

	slots, err := GetAvailableTimeSlots(store, "Dr. Green", monday)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(slots) != 0 {
		t.Fatalf("expected no slots for an unavailable day, got %d", len(slots))
	}
	if store.blockedCalls != 0 || store.appointmentCalls != 0 {
		t.Errorf("expected short-circuit before blocked/appointment queries, got %d blocked and %d appointment calls",
			store.blockedCalls, store.appointmentCalls)
	}
}

func TestGetAvailableTimeSlots_BlockedRangeIsHalfOpen(t *testing.T) {
	store := &fakeStore{
		weekly: []models.DoctorAvailability{weekly("Dr. Green", "Monday", "09:00", "17:00", true)},
		blocked: []models.BlockedSlot{{
			ID: uuid.New(), DoctorName: "Dr. Green", Date: monday, StartTime: "10:00", EndTime: "11:00",
		}},
	}

	slots, err := GetAvailableTimeSlots(store, "Dr. Green", monday)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := map[string]bool{
		"09:30": true,
		"10:00": false,
		"10:30": false,
		"11:00": true,
	}
	for _, slot := range slots {
		expected, ok := want[slot.Time]
		if !ok {
			continue
		}
		if slot.IsAvailable != expected {
			t.Errorf("slot %s: expected isAvailable=%v, got %v", slot.Time, expected, slot.IsAvailable)
		}
		if slot.IsBooked {
			t.Errorf("slot %s: blocking must not mark a slot booked", slot.Time)
		}
	}
}

func TestGetAvailableTimeSlots_BookedAndCancelledAppointments(t *testing.T) {
	store := &fakeStore{
		weekly: []models.DoctorAvailability{weekly("Dr. Green", "Monday", "09:00", "17:00", true)},
		appointments: []models.Appointment{
			{
				ID: uuid.New(), PrimaryPhysician: "Dr. Green",
				Schedule: monday.Add(14 * time.Hour), Status: models.AppointmentScheduled,
			},
			{
				ID: uuid.New(), PrimaryPhysician: "Dr. Green",
				Schedule: monday.Add(15 * time.Hour), Status: models.AppointmentCancelled,
			},
		},
	}

	slots, err := GetAvailableTimeSlots(store, "Dr. Green", monday)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, slot := range slots {
		switch slot.Time {
		case "14:00":
			if !slot.IsBooked || slot.IsAvailable {
				t.Errorf("14:00 should be booked and unavailable, got booked=%v available=%v", slot.IsBooked, slot.IsAvailable)
			}
		case "15:00":
			if slot.IsBooked || !slot.IsAvailable {
				t.Errorf("cancelled appointment must not affect 15:00, got booked=%v available=%v", slot.IsBooked, slot.IsAvailable)
			}
		}
	}
}

func TestGetAvailableTimeSlots_NormalizesQueryZone(t *testing.T) {
	store := &fakeStore{
		weekly: []models.DoctorAvailability{weekly("Dr. Green", "Monday", "09:00", "17:00", true)},
		appointments: []models.Appointment{{
			ID: uuid.New(), PrimaryPhysician: "Dr. Green",
			// The same instant as monday 15:00 UTC, expressed with an offset.
			Schedule: time.Date(2026, time.January, 5, 10, 0, 0, 0, time.FixedZone("UTC-5", -5*60*60)),
			Status:   models.AppointmentScheduled,
		}},
	}
	if _, err := BlockDoctorSlot(store, "Dr. Green", monday, "10:00", "11:00", ""); err != nil {
		t.Fatalf("block failed: %v", err)
	}

	// Query for the same calendar day using an offset timestamp; bucketing
	// must rebase to UTC and still see the block and the booking.
	query := time.Date(2026, time.January, 5, 8, 0, 0, 0, time.FixedZone("UTC-5", -5*60*60))
	slots, err := GetAvailableTimeSlots(store, "Dr. Green", query)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(slots) != 16 {
		t.Fatalf("expected 16 slots, got %d", len(slots))
	}
	for _, slot := range slots {
		switch slot.Time {
		case "10:00", "10:30":
			if slot.IsAvailable {
				t.Errorf("slot %s should be blocked for an offset query date", slot.Time)
			}
		case "15:00":
			if !slot.IsBooked || slot.IsAvailable {
				t.Errorf("offset-zone appointment should book the 15:00 slot, got booked=%v available=%v", slot.IsBooked, slot.IsAvailable)
			}
		}
	}
}

func TestGetAvailableTimeSlots_DrGreenMondayScenario(t *testing.T) {
	store := &fakeStore{
		weekly: []models.DoctorAvailability{weekly("Dr. Green", "Monday", "09:00", "17:00", true)},
		appointments: []models.Appointment{{
			ID: uuid.New(), PrimaryPhysician: "Dr. Green",
			Schedule: monday.Add(10 * time.Hour), Status: models.AppointmentScheduled,
		}},
	}

	slots, err := GetAvailableTimeSlots(store, "Dr. Green", monday)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(slots) != 16 {
		t.Fatalf("expected 16 slots, got %d", len(slots))
	}

	for _, slot := range slots {
		if slot.Time == "10:00" {
			if !slot.IsBooked || slot.IsAvailable {
				t.Errorf("10:00 should be booked and unavailable, got booked=%v available=%v", slot.IsBooked, slot.IsAvailable)
			}
			continue
		}
		if slot.IsBooked || !slot.IsAvailable {
			t.Errorf("slot %s should be open, got booked=%v available=%v", slot.Time, slot.IsBooked, slot.IsAvailable)
		}
	}
}

func TestSetDoctorAvailability_UpsertKeepsOneRecord(t *testing.T) {
	store := &fakeStore{}

	first, err := SetDoctorAvailability(store, "Dr. Green", "Monday", "09:00", "17:00", true)
	if err != nil {
		t.Fatalf("first set failed: %v", err)
	}
	second, err := SetDoctorAvailability(store, "Dr. Green", "Monday", "10:00", "16:00", false)
	if err != nil {
		t.Fatalf("second set failed: %v", err)
	}

	if len(store.weekly) != 1 {
		t.Fatalf("expected one record after upsert, got %d", len(store.weekly))
	}
	if second.ID != first.ID {
		t.Errorf("upsert must preserve record identity: %s != %s", second.ID, first.ID)
	}
	got := store.weekly[0]
	if got.StartTime != "10:00" || got.EndTime != "16:00" || got.IsAvailable {
		t.Errorf("record should reflect the second call, got %+v", got)
	}
}

func TestBlockDoctorSlot_VisibleOnNextRead(t *testing.T) {
	store := &fakeStore{
		weekly: []models.DoctorAvailability{weekly("Dr. Green", "Monday", "09:00", "17:00", true)},
	}

	if _, err := BlockDoctorSlot(store, "Dr. Green", monday, "13:00", "13:30", "staff meeting"); err != nil {
		t.Fatalf("block failed: %v", err)
	}

	slots, err := GetAvailableTimeSlots(store, "Dr. Green", monday)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, slot := range slots {
		if slot.Time == "13:00" && slot.IsAvailable {
			t.Error("13:00 should be unavailable right after blocking")
		}
	}
}

func TestBlockDoctorSlot_DefaultReason(t *testing.T) {
	store := &fakeStore{}

	blocked, err := BlockDoctorSlot(store, "Dr. Green", monday, "10:00", "11:00", "")
	if err != nil {
		t.Fatalf("block failed: %v", err)
	}
	if blocked.Reason != DefaultReason {
		t.Errorf("expected default reason %q, got %q", DefaultReason, blocked.Reason)
	}
	if h, m, s := blocked.Date.Clock(); h != 0 || m != 0 || s != 0 {
		t.Errorf("blocked date should be stored at midnight, got %v", blocked.Date)
	}
}

func TestUnblockDoctorSlot_PropagatesNotFound(t *testing.T) {
	store := &fakeStore{}

	err := UnblockDoctorSlot(store, uuid.New())
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected not-found error, got %v", err)
	}
}

func TestIsDoctorAvailable(t *testing.T) {
	store := &fakeStore{
		weekly: []models.DoctorAvailability{weekly("Dr. Green", "Monday", "09:00", "17:00", true)},
		blocked: []models.BlockedSlot{{
			ID: uuid.New(), DoctorName: "Dr. Green", Date: monday, StartTime: "10:00", EndTime: "11:00",
		}},
	}

	open, err := IsDoctorAvailable(store, "Dr. Green", monday.Add(9*time.Hour+30*time.Minute))
	if err != nil || !open {
		t.Errorf("09:30 should be available, got open=%v err=%v", open, err)
	}

	open, err = IsDoctorAvailable(store, "Dr. Green", monday.Add(10*time.Hour))
	if err != nil || open {
		t.Errorf("10:00 is blocked, got open=%v err=%v", open, err)
	}

	// 10:15 lands on no generated slot.
	open, err = IsDoctorAvailable(store, "Dr. Green", monday.Add(10*time.Hour+15*time.Minute))
	if err != nil || open {
		t.Errorf("off-grid time should not be available, got open=%v err=%v", open, err)
	}
}

func TestGetDoctorSchedule_RollingWindow(t *testing.T) {
	inWindow := monday.AddDate(0, 0, 10)
	outsideWindow := monday.AddDate(0, 0, 45)

	store := &fakeStore{
		appointments: []models.Appointment{
			{ID: uuid.New(), PrimaryPhysician: "Dr. Green", Schedule: inWindow.Add(10 * time.Hour), Status: models.AppointmentScheduled},
			{ID: uuid.New(), PrimaryPhysician: "Dr. Green", Schedule: outsideWindow, Status: models.AppointmentScheduled},
			{ID: uuid.New(), PrimaryPhysician: "Dr. Blue", Schedule: inWindow, Status: models.AppointmentScheduled},
		},
		blocked: []models.BlockedSlot{
			{ID: uuid.New(), DoctorName: "Dr. Green", Date: inWindow, StartTime: "10:00", EndTime: "11:00"},
			{ID: uuid.New(), DoctorName: "Dr. Green", Date: outsideWindow, StartTime: "10:00", EndTime: "11:00"},
		},
	}

	schedule, err := GetDoctorSchedule(store, "Dr. Green", monday, 30)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(schedule.Appointments) != 1 {
		t.Errorf("expected 1 appointment in window, got %d", len(schedule.Appointments))
	}
	if len(schedule.BlockedSlots) != 1 {
		t.Errorf("expected 1 blocked slot in window, got %d", len(schedule.BlockedSlots))
	}
}

func TestGetDoctorSchedule_EmptyWindowReturnsEmptyLists(t *testing.T) {
	schedule, err := GetDoctorSchedule(&fakeStore{}, "Dr. Green", monday, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if schedule.Appointments == nil || schedule.BlockedSlots == nil {
		t.Fatal("projection lists must be non-nil even when empty")
	}
}

func TestInitializeDefaultAvailability_IsolatesFailures(t *testing.T) {
	store := &fakeStore{failCreateFor: "Dr. Blue"}
	roster := []string{"Dr. Blue", "Dr. Green"}

	results := InitializeDefaultAvailability(store, roster)

	if len(results) != len(roster)*len(DefaultWeekdays) {
		t.Fatalf("expected %d result lines, got %d", len(roster)*len(DefaultWeekdays), len(results))
	}
	if len(store.weekly) != len(DefaultWeekdays) {
		t.Errorf("Dr. Green's days should still be created, got %d records", len(store.weekly))
	}
	for _, a := range store.weekly {
		if a.DoctorName != "Dr. Green" {
			t.Errorf("unexpected record for %s", a.DoctorName)
		}
		if a.StartTime != "09:00" || a.EndTime != "17:00" || !a.IsAvailable {
			t.Errorf("default schedule mismatch: %+v", a)
		}
	}
}
