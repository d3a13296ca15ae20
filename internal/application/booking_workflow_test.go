package application

import (
	"testing"
	"time"

	"github.com/bnema/rural-health-connect/internal/adapters/fixtures"
	"github.com/bnema/rural-health-connect/internal/domain"
	"github.com/bnema/rural-health-connect/internal/ports/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var workflowNow = time.Date(2024, 1, 25, 9, 0, 0, 0, time.UTC)

// Online and offline doctors from the embedded directory.
const (
	onlineDoctorID  domain.DoctorID = "DOC001"
	offlineDoctorID domain.DoctorID = "DOC003"
)

func newTestWorkflow(t *testing.T, opts ...WorkflowOption) *BookingWorkflow {
	t.Helper()

	doctors, err := fixtures.LoadDoctors()
	require.NoError(t, err)

	clock := mocks.NewMockClock(t)
	clock.EXPECT().Now().Return(workflowNow).Maybe()

	opts = append([]WorkflowOption{WithIDGenerator(func() string { return "booking-1" })}, opts...)
	return NewBookingWorkflow(doctors, signedIn(domain.RolePatient), clock, opts...)
}

func TestWorkflowStartsEmptyAtSelectingDoctor(t *testing.T) {
	workflow := newTestWorkflow(t)

	assert.Equal(t, domain.StageSelectingDoctor, workflow.Stage())
	assert.Equal(t, domain.BookingDraft{Stage: domain.StageSelectingDoctor}, workflow.Draft())
	assert.NotEmpty(t, workflow.Doctors())
	assert.Nil(t, workflow.Days())
}

func TestWorkflowRejectsOfflineDoctor(t *testing.T) {
	workflow := newTestWorkflow(t)

	assert.False(t, workflow.SelectDoctor(offlineDoctorID))
	assert.False(t, workflow.SelectDoctor("missing"))

	assert.Equal(t, domain.BookingDraft{Stage: domain.StageSelectingDoctor}, workflow.Draft())
}

func TestWorkflowHappyPath(t *testing.T) {
	workflow := newTestWorkflow(t)

	require.True(t, workflow.SelectDoctor(onlineDoctorID))
	assert.Equal(t, domain.StageSelectingSlot, workflow.Stage())
	assert.Equal(t, []domain.SlotDay{
		{Label: "Tomorrow", Date: "2024-01-26"},
		{Label: "Day After", Date: "2024-01-27"},
	}, workflow.Days())

	require.True(t, workflow.SelectSlot("2024-01-26", "10:00"))
	draft := workflow.Draft()
	assert.Equal(t, domain.StageEnteringDetails, draft.Stage)
	assert.Equal(t, "2024-01-26", draft.Date)
	assert.Equal(t, "10:00", draft.Time)

	require.True(t, workflow.Confirm(domain.ConsultationVideo, "fever"))
	draft = workflow.Draft()
	assert.Equal(t, domain.StageConfirmed, draft.Stage)
	require.NotNil(t, draft.Doctor)
	assert.Equal(t, onlineDoctorID, draft.Doctor.ID)
	assert.Equal(t, "2024-01-26", draft.Date)
	assert.Equal(t, "10:00", draft.Time)
	assert.Equal(t, domain.ConsultationVideo, draft.ConsultationType)
	assert.Equal(t, "fever", draft.SymptomNotes)

	record, ok := workflow.Record()
	require.True(t, ok)
	assert.Equal(t, "booking-1", record.ID)
	assert.Equal(t, domain.IdentityID("X1"), record.PatientID)
	assert.Equal(t, "Tester", record.PatientName)
	assert.Equal(t, 200, record.FeeAmount)
	assert.Equal(t, workflowNow, record.BookedAt)
}

func TestWorkflowConfirmedDraftIsImmutable(t *testing.T) {
	workflow := newTestWorkflow(t)
	require.True(t, workflow.SelectDoctor(onlineDoctorID))
	require.True(t, workflow.SelectSlot("2024-01-26", "10:00"))
	require.True(t, workflow.Confirm(domain.ConsultationVideo, "fever"))
	confirmed := workflow.Draft()

	assert.False(t, workflow.SelectDoctor("DOC002"))
	assert.False(t, workflow.SelectSlot("2024-01-27", "09:00"))
	assert.False(t, workflow.SetConsultationType(domain.ConsultationPhone))
	assert.False(t, workflow.SetSymptomNotes("changed"))
	assert.False(t, workflow.Confirm(domain.ConsultationPhone, "changed"))
	assert.False(t, workflow.Back())

	assert.Equal(t, confirmed, workflow.Draft())
}

func TestWorkflowBackFromDetailsKeepsSlotAndClearsDetails(t *testing.T) {
	workflow := newTestWorkflow(t)
	require.True(t, workflow.SelectDoctor(onlineDoctorID))
	require.True(t, workflow.SelectSlot("2024-01-27", "15:30"))
	require.True(t, workflow.SetConsultationType(domain.ConsultationPhone))
	require.True(t, workflow.SetSymptomNotes("headache"))

	require.True(t, workflow.Back())

	draft := workflow.Draft()
	assert.Equal(t, domain.StageSelectingSlot, draft.Stage)
	assert.Equal(t, "2024-01-27", draft.Date)
	assert.Equal(t, "15:30", draft.Time)
	assert.Empty(t, draft.ConsultationType)
	assert.Empty(t, draft.SymptomNotes)
}

func TestWorkflowBackFromSlotReturnsToDoctorChoice(t *testing.T) {
	workflow := newTestWorkflow(t)
	require.True(t, workflow.SelectDoctor(onlineDoctorID))

	require.True(t, workflow.Back())
	assert.Equal(t, domain.BookingDraft{Stage: domain.StageSelectingDoctor}, workflow.Draft())

	assert.False(t, workflow.Back())
}

func TestWorkflowRejectsSlotsOutsideOffer(t *testing.T) {
	workflow := newTestWorkflow(t)
	require.True(t, workflow.SelectDoctor(onlineDoctorID))

	assert.False(t, workflow.SelectSlot("2024-01-25", "10:00"))
	assert.False(t, workflow.SelectSlot("2024-01-26", "12:00"))
	assert.Equal(t, domain.StageSelectingSlot, workflow.Stage())
}

func TestWorkflowConfirmRejectsUnknownConsultationType(t *testing.T) {
	workflow := newTestWorkflow(t)
	require.True(t, workflow.SelectDoctor(onlineDoctorID))
	require.True(t, workflow.SelectSlot("2024-01-26", "10:00"))

	assert.False(t, workflow.Confirm(domain.ConsultationType("chat"), ""))
	assert.False(t, workflow.SetConsultationType(domain.ConsultationType("chat")))
	assert.Equal(t, domain.StageEnteringDetails, workflow.Stage())

	assert.True(t, workflow.Confirm(domain.ConsultationPhone, ""))
}

func TestWorkflowRequiredSymptomNotes(t *testing.T) {
	workflow := newTestWorkflow(t, WithRequiredSymptomNotes(true))
	require.True(t, workflow.SelectDoctor(onlineDoctorID))
	require.True(t, workflow.SelectSlot("2024-01-26", "10:00"))

	assert.False(t, workflow.Confirm(domain.ConsultationVideo, "   "))
	assert.True(t, workflow.Confirm(domain.ConsultationVideo, "cough"))
}

func TestWorkflowOperationsOutOfOrderAreRejected(t *testing.T) {
	workflow := newTestWorkflow(t)

	assert.False(t, workflow.SelectSlot("2024-01-26", "10:00"))
	assert.False(t, workflow.SetConsultationType(domain.ConsultationVideo))
	assert.False(t, workflow.SetSymptomNotes("fever"))
	assert.False(t, workflow.Confirm(domain.ConsultationVideo, "fever"))
	assert.False(t, workflow.Restart())
	_, ok := workflow.Record()
	assert.False(t, ok)

	require.True(t, workflow.SelectDoctor(onlineDoctorID))
	assert.False(t, workflow.SelectDoctor(onlineDoctorID))
	assert.False(t, workflow.Restart())
}

func TestWorkflowRestartYieldsInitialDraft(t *testing.T) {
	for _, notes := range []string{"", "fever", "long history of cough"} {
		workflow := newTestWorkflow(t)
		require.True(t, workflow.SelectDoctor(onlineDoctorID))
		require.True(t, workflow.SelectSlot("2024-01-27", "09:30"))
		require.True(t, workflow.Confirm(domain.ConsultationPhone, notes))

		require.True(t, workflow.Restart())
		assert.Equal(t, domain.BookingDraft{Stage: domain.StageSelectingDoctor}, workflow.Draft())
	}
}

func TestWorkflowWithoutSessionLeavesPatientEmpty(t *testing.T) {
	doctors, err := fixtures.LoadDoctors()
	require.NoError(t, err)

	clock := mocks.NewMockClock(t)
	clock.EXPECT().Now().Return(workflowNow).Maybe()

	workflow := NewBookingWorkflow(doctors, nil, clock)
	require.True(t, workflow.SelectDoctor(onlineDoctorID))
	require.True(t, workflow.SelectSlot("2024-01-26", "10:00"))
	require.True(t, workflow.Confirm(domain.ConsultationVideo, ""))

	record, ok := workflow.Record()
	require.True(t, ok)
	assert.Empty(t, record.PatientID)
	assert.NotEmpty(t, record.ID)
}
