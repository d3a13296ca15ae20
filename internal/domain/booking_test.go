package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var bookingNow = time.Date(2024, 1, 25, 8, 30, 0, 0, time.UTC)

func onlineDoctor() Doctor {
	return Doctor{
		ID:        "DOC1",
		Name:      LocalizedText{Default: "Dr. Priya Sharma"},
		Specialty: LocalizedText{Default: "General Physician"},
		FeeAmount: 200,
		IsOnline:  true,
	}
}

func TestOfferedDaysAreTomorrowAndDayAfter(t *testing.T) {
	days := OfferedDays(bookingNow)

	require.Len(t, days, 2)
	assert.Equal(t, SlotDay{Label: "Tomorrow", Date: "2024-01-26"}, days[0])
	assert.Equal(t, SlotDay{Label: "Day After", Date: "2024-01-27"}, days[1])
}

func TestOfferedDaysCrossMonthBoundary(t *testing.T) {
	days := OfferedDays(time.Date(2024, 2, 28, 23, 0, 0, 0, time.UTC))

	assert.Equal(t, "2024-02-29", days[0].Date)
	assert.Equal(t, "2024-03-01", days[1].Date)
}

func TestSlotTimesHaveNoLunchBlock(t *testing.T) {
	require.Len(t, SlotTimes, 12)
	assert.NotContains(t, SlotTimes, "12:00")
	assert.NotContains(t, SlotTimes, "13:30")
	assert.Equal(t, "09:00", SlotTimes[0])
	assert.Equal(t, "16:30", SlotTimes[len(SlotTimes)-1])
}

func TestChooseDoctorRejectsOfflineOrEmptyDoctor(t *testing.T) {
	offline := onlineDoctor()
	offline.IsOnline = false

	_, ok := SelectingDoctor{}.ChooseDoctor(offline, bookingNow)
	assert.False(t, ok)

	_, ok = SelectingDoctor{}.ChooseDoctor(Doctor{IsOnline: true}, bookingNow)
	assert.False(t, ok)
}

func TestChooseSlotValidation(t *testing.T) {
	slot, ok := SelectingDoctor{}.ChooseDoctor(onlineDoctor(), bookingNow)
	require.True(t, ok)

	tests := []struct {
		name  string
		date  string
		clock string
		want  bool
	}{
		{name: "tomorrow morning", date: "2024-01-26", clock: "10:00", want: true},
		{name: "day after afternoon", date: "2024-01-27", clock: "16:30", want: true},
		{name: "today is not offered", date: "2024-01-25", clock: "10:00"},
		{name: "third day is not offered", date: "2024-01-28", clock: "10:00"},
		{name: "lunch hour", date: "2024-01-26", clock: "12:30"},
		{name: "off the half hour", date: "2024-01-26", clock: "10:15"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, got := slot.ChooseSlot(tt.date, tt.clock)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEnteringDetailsBackKeepsSlotAndDropsDetails(t *testing.T) {
	slot, _ := SelectingDoctor{}.ChooseDoctor(onlineDoctor(), bookingNow)
	details, ok := slot.ChooseSlot("2024-01-27", "14:30")
	require.True(t, ok)

	details, ok = details.WithConsultationType(ConsultationPhone)
	require.True(t, ok)
	details = details.WithSymptomNotes("fever")

	back := details.Back(bookingNow)
	date, clock, kept := back.Preselected()
	assert.True(t, kept)
	assert.Equal(t, "2024-01-27", date)
	assert.Equal(t, "14:30", clock)

	again, ok := back.ChooseSlot(date, clock)
	require.True(t, ok)
	assert.Empty(t, again.ConsultationType())
	assert.Empty(t, again.SymptomNotes())
}

func TestWithConsultationTypeRejectsUnknownType(t *testing.T) {
	slot, _ := SelectingDoctor{}.ChooseDoctor(onlineDoctor(), bookingNow)
	details, _ := slot.ChooseSlot("2024-01-26", "09:00")

	unchanged, ok := details.WithConsultationType(ConsultationType("chat"))
	assert.False(t, ok)
	assert.Equal(t, details, unchanged)
}

func TestConfirmBuildsRecordFromStageAndTicket(t *testing.T) {
	slot, _ := SelectingDoctor{}.ChooseDoctor(onlineDoctor(), bookingNow)
	details, _ := slot.ChooseSlot("2024-01-26", "10:00")

	ticket := BookingTicket{ID: "b-1", PatientID: "P001", PatientName: "Rajesh Kumar", BookedAt: bookingNow}

	_, ok := details.Confirm(ConsultationType("chat"), "", ticket)
	assert.False(t, ok)

	confirmed, ok := details.Confirm(ConsultationVideo, "", ticket)
	require.True(t, ok)

	record := confirmed.Record()
	assert.Equal(t, "b-1", record.ID)
	assert.Equal(t, IdentityID("P001"), record.PatientID)
	assert.Equal(t, DoctorID("DOC1"), record.DoctorID)
	assert.Equal(t, 200, record.FeeAmount)
	assert.Equal(t, "2024-01-26", record.Date)
	assert.Equal(t, "10:00", record.Time)
	assert.Equal(t, ConsultationVideo, record.ConsultationType)
	assert.Empty(t, record.SymptomNotes)
	assert.Equal(t, bookingNow, record.BookedAt)

	assert.Equal(t, StageSelectingDoctor, confirmed.Restart().Stage())
}

func TestDraftOfEachStage(t *testing.T) {
	assert.Equal(t, BookingDraft{Stage: StageSelectingDoctor}, DraftOf(SelectingDoctor{}))

	slot, _ := SelectingDoctor{}.ChooseDoctor(onlineDoctor(), bookingNow)
	draft := DraftOf(slot)
	assert.Equal(t, StageSelectingSlot, draft.Stage)
	require.NotNil(t, draft.Doctor)
	assert.Equal(t, DoctorID("DOC1"), draft.Doctor.ID)
	assert.Empty(t, draft.Date)

	details, _ := slot.ChooseSlot("2024-01-26", "11:30")
	details = details.WithSymptomNotes("cough")
	draft = DraftOf(details)
	assert.Equal(t, StageEnteringDetails, draft.Stage)
	assert.Equal(t, "11:30", draft.Time)
	assert.Equal(t, "cough", draft.SymptomNotes)

	confirmed, _ := details.Confirm(ConsultationPhone, "cough", BookingTicket{ID: "b-2"})
	draft = DraftOf(confirmed)
	assert.Equal(t, StageConfirmed, draft.Stage)
	require.NotNil(t, draft.Doctor)
	assert.Equal(t, ConsultationPhone, draft.ConsultationType)
	assert.Equal(t, "2024-01-26", draft.Date)
}
