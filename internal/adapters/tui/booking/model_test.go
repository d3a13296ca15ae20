package booking

import (
	"testing"
	"time"

	"github.com/bnema/rural-health-connect/internal/adapters/fixtures"
	"github.com/bnema/rural-health-connect/internal/application"
	"github.com/bnema/rural-health-connect/internal/domain"
	"github.com/bnema/rural-health-connect/internal/ports/mocks"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	keyEnter = tea.KeyMsg{Type: tea.KeyEnter}
	keyDown  = tea.KeyMsg{Type: tea.KeyDown}
	keyTab   = tea.KeyMsg{Type: tea.KeyTab}
	keyEsc   = tea.KeyMsg{Type: tea.KeyEsc}
)

func newTestModel(t *testing.T, opts ...application.WorkflowOption) Model {
	t.Helper()

	doctors, err := fixtures.LoadDoctors()
	require.NoError(t, err)

	clock := mocks.NewMockClock(t)
	clock.EXPECT().Now().Return(time.Date(2024, 1, 25, 9, 0, 0, 0, time.UTC)).Maybe()

	workflow := application.NewBookingWorkflow(doctors, nil, clock, opts...)
	return NewModel(workflow, domain.LocaleEnglish)
}

func press(t *testing.T, m Model, keys ...tea.KeyMsg) (Model, tea.Cmd) {
	t.Helper()

	var cmd tea.Cmd
	for _, key := range keys {
		var next tea.Model
		next, cmd = m.Update(key)
		updated, ok := next.(Model)
		require.True(t, ok)
		m = updated
	}

	return m, cmd
}

func typeText(text string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(text)}
}

func TestWizardRefusesOfflineDoctor(t *testing.T) {
	m := newTestModel(t)

	m, _ = press(t, m, keyDown, keyDown, keyEnter)

	assert.Equal(t, domain.StageSelectingDoctor, m.workflow.Stage())
	assert.Contains(t, m.View(), "Dr. Sunita Verma is offline")
}

func TestWizardHappyPath(t *testing.T) {
	m := newTestModel(t)

	m, _ = press(t, m, keyEnter)
	require.Equal(t, domain.StageSelectingSlot, m.workflow.Stage())
	require.Len(t, m.slots, 2*len(domain.SlotTimes))
	assert.Contains(t, m.View(), "› Tomorrow  2024-01-26 09:00")

	m, _ = press(t, m, keyDown, keyDown, keyEnter)
	require.Equal(t, domain.StageEnteringDetails, m.workflow.Stage())
	assert.Contains(t, m.View(), "(•) Video Call")

	m, _ = press(t, m, typeText("fever"), keyTab)
	assert.Contains(t, m.View(), "(•) Phone Call")

	m, _ = press(t, m, keyEnter)
	require.Equal(t, domain.StageConfirmed, m.workflow.Stage())

	record, ok := m.Record()
	require.True(t, ok)
	assert.Equal(t, domain.DoctorID("DOC001"), record.DoctorID)
	assert.Equal(t, "2024-01-26", record.Date)
	assert.Equal(t, "10:00", record.Time)
	assert.Equal(t, domain.ConsultationPhone, record.ConsultationType)
	assert.Equal(t, "fever", record.SymptomNotes)
	assert.Contains(t, m.View(), "Booking Confirmed!")

	m, cmd := press(t, m, keyEnter)
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.False(t, m.Cancelled())
}

func TestWizardEscFromDetailsKeepsChosenSlot(t *testing.T) {
	m := newTestModel(t)

	m, _ = press(t, m, keyEnter, keyDown, keyDown, keyEnter, typeText("cough"), keyEsc)

	require.Equal(t, domain.StageSelectingSlot, m.workflow.Stage())
	assert.Equal(t, 2, m.cursor)
	assert.Contains(t, m.View(), "› Tomorrow  2024-01-26 10:00")
	assert.Empty(t, m.workflow.Draft().SymptomNotes)

	m, _ = press(t, m, keyEsc)
	assert.Equal(t, domain.StageSelectingDoctor, m.workflow.Stage())
}

func TestWizardRequiredNotesShowsMessage(t *testing.T) {
	m := newTestModel(t, application.WithRequiredSymptomNotes(true))

	m, _ = press(t, m, keyEnter, keyEnter, keyEnter)

	assert.Equal(t, domain.StageEnteringDetails, m.workflow.Stage())
	assert.Contains(t, m.View(), "Please describe your symptoms before confirming")
}

func TestWizardBookAnotherRestarts(t *testing.T) {
	m := newTestModel(t)

	m, _ = press(t, m, keyEnter, keyEnter, keyEnter)
	require.Equal(t, domain.StageConfirmed, m.workflow.Stage())
	assert.Empty(t, m.workflow.Draft().SymptomNotes)

	m, _ = press(t, m, typeText("n"))
	assert.Equal(t, domain.StageSelectingDoctor, m.workflow.Stage())
	assert.Len(t, m.Confirmed(), 1)

	m, _ = press(t, m, keyEnter, keyEnter, keyEnter)
	require.Equal(t, domain.StageConfirmed, m.workflow.Stage())
	assert.Len(t, m.Confirmed(), 2)
}

func TestWizardCtrlCCancels(t *testing.T) {
	m := newTestModel(t)

	m, cmd := press(t, m, tea.KeyMsg{Type: tea.KeyCtrlC})

	assert.True(t, m.Cancelled())
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}
