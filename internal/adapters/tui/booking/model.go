// Package booking is the interactive consultation booking wizard.
package booking

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/bnema/rural-health-connect/internal/application"
	"github.com/bnema/rural-health-connect/internal/domain"
	"github.com/bnema/rural-health-connect/internal/i18n"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const notesCharLimit = 500

type slotOption struct {
	day  domain.SlotDay
	time string
}

type Model struct {
	workflow *application.BookingWorkflow
	tr       i18n.Translator
	styles   styles

	doctors      []domain.Doctor
	slots        []slotOption
	cursor       int
	consultation domain.ConsultationType
	notes        textinput.Model

	confirmed []domain.BookingRecord
	message   string
	cancelled bool
}

func NewModel(workflow *application.BookingWorkflow, locale domain.Locale) Model {
	notes := textinput.New()
	notes.Placeholder = "Describe your symptoms"
	notes.CharLimit = notesCharLimit

	return Model{
		workflow:     workflow,
		tr:           i18n.Translator{Locale: locale},
		styles:       newStyles(),
		doctors:      workflow.Doctors(),
		consultation: domain.ConsultationVideo,
		notes:        notes,
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		if m.workflow.Stage() != domain.StageEnteringDetails {
			return m, nil
		}
		var cmd tea.Cmd
		m.notes, cmd = m.notes.Update(msg)
		return m, cmd
	}
	if key.Type == tea.KeyCtrlC {
		m.cancelled = true
		return m, tea.Quit
	}

	m.message = ""
	switch m.workflow.Stage() {
	case domain.StageSelectingDoctor:
		return m.updateDoctors(key)
	case domain.StageSelectingSlot:
		return m.updateSlots(key)
	case domain.StageEnteringDetails:
		return m.updateDetails(key)
	case domain.StageConfirmed:
		return m.updateConfirmed(key)
	default:
		return m, nil
	}
}

func (m Model) updateDoctors(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key.String() {
	case "q", "esc":
		m.cancelled = true
		return m, tea.Quit
	case "up", "k":
		m.cursor = moveCursor(m.cursor, -1, len(m.doctors))
	case "down", "j":
		m.cursor = moveCursor(m.cursor, 1, len(m.doctors))
	case "enter":
		if len(m.doctors) == 0 {
			return m, nil
		}
		doctor := m.doctors[m.cursor]
		if !m.workflow.SelectDoctor(doctor.ID) {
			m.message = fmt.Sprintf("%s is offline", doctor.Name.In(m.tr.Locale))
			return m, nil
		}
		m.enterSlots()
	}

	return m, nil
}

func (m *Model) enterSlots() {
	m.slots = nil
	for _, day := range m.workflow.Days() {
		for _, clock := range domain.SlotTimes {
			m.slots = append(m.slots, slotOption{day: day, time: clock})
		}
	}

	m.cursor = 0
	draft := m.workflow.Draft()
	for i, option := range m.slots {
		if option.day.Date == draft.Date && option.time == draft.Time {
			m.cursor = i
			break
		}
	}
}

func (m Model) updateSlots(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key.String() {
	case "q":
		m.cancelled = true
		return m, tea.Quit
	case "esc", "backspace":
		m.workflow.Back()
		m.cursor = 0
	case "up", "k":
		m.cursor = moveCursor(m.cursor, -1, len(m.slots))
	case "down", "j":
		m.cursor = moveCursor(m.cursor, 1, len(m.slots))
	case "enter":
		if len(m.slots) == 0 {
			return m, nil
		}
		option := m.slots[m.cursor]
		if !m.workflow.SelectSlot(option.day.Date, option.time) {
			m.message = "That slot is no longer offered"
			return m, nil
		}
		m.consultation = domain.ConsultationVideo
		m.notes.Reset()
		return m, m.notes.Focus()
	}

	return m, nil
}

func (m Model) updateDetails(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key.Type {
	case tea.KeyEsc:
		m.notes.Blur()
		m.workflow.Back()
		m.enterSlots()
		return m, nil
	case tea.KeyTab:
		m.consultation = toggle(m.consultation)
		return m, nil
	case tea.KeyEnter:
		notes := strings.TrimSpace(m.notes.Value())
		m.workflow.SetSymptomNotes(notes)
		if !m.workflow.Confirm(m.consultation, notes) {
			m.message = "Please describe your symptoms before confirming"
			return m, nil
		}
		if record, ok := m.workflow.Record(); ok {
			m.confirmed = append(slices.Clone(m.confirmed), record)
		}
		m.notes.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.notes, cmd = m.notes.Update(key)
	return m, cmd
}

func (m Model) updateConfirmed(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key.String() {
	case "n":
		m.workflow.Restart()
		m.cursor = 0
	case "enter", "q", "esc":
		return m, tea.Quit
	}

	return m, nil
}

// Record returns the confirmed booking, if the wizard got that far.
func (m Model) Record() (domain.BookingRecord, bool) {
	return m.workflow.Record()
}

// Confirmed lists every booking confirmed during the session, including
// ones made before "book another".
func (m Model) Confirmed() []domain.BookingRecord {
	return slices.Clone(m.confirmed)
}

func (m Model) Cancelled() bool {
	return m.cancelled
}

func moveCursor(cursor, delta, size int) int {
	if size == 0 {
		return 0
	}

	return (cursor + delta + size) % size
}

func toggle(c domain.ConsultationType) domain.ConsultationType {
	if c == domain.ConsultationVideo {
		return domain.ConsultationPhone
	}

	return domain.ConsultationVideo
}

// Run drives the wizard on in/out until the user confirms or quits.
func Run(workflow *application.BookingWorkflow, locale domain.Locale, in io.Reader, out io.Writer) (Model, error) {
	p := tea.NewProgram(NewModel(workflow, locale), tea.WithInput(in), tea.WithOutput(out))

	final, err := p.Run()
	if err != nil {
		return Model{}, err
	}

	model, ok := final.(Model)
	if !ok {
		return Model{}, fmt.Errorf("unexpected wizard model %T", final)
	}

	return model, nil
}

type styles struct {
	title    lipgloss.Style
	subtitle lipgloss.Style
	cursor   lipgloss.Style
	item     lipgloss.Style
	muted    lipgloss.Style
	warning  lipgloss.Style
	success  lipgloss.Style
}

func newStyles() styles {
	return styles{
		title:    lipgloss.NewStyle().Bold(true),
		subtitle: lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		cursor:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("159")),
		item:     lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		muted:    lipgloss.NewStyle().Faint(true),
		warning:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("203")),
		success:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("42")),
	}
}
