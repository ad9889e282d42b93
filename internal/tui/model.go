// Package tui — терминальный интерфейс контактной формы на bubbletea.
//
// Модель только переводит нажатия клавиш в вызовы contact.Form
// и рисует contact.View; правила и состояние живут в ядре.
package tui

import (
	"strings"

	"contact-form/internal/contact"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	messageIndex = 3
	submitIndex  = 4
	focusCount   = 5
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).MarginBottom(1)
	labelStyle   = lipgloss.NewStyle().Bold(true)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	buttonStyle  = lipgloss.NewStyle().Padding(0, 2).Border(lipgloss.NormalBorder())
	focusStyle   = buttonStyle.BorderForeground(lipgloss.Color("12")).Foreground(lipgloss.Color("12"))
	displayStyle = lipgloss.NewStyle().MarginTop(1).Border(lipgloss.RoundedBorder()).Padding(0, 1)
	helpStyle    = lipgloss.NewStyle().Faint(true).MarginTop(1)
)

var labels = map[contact.Field]string{
	contact.FirstName: "First Name*",
	contact.LastName:  "Last Name*",
	contact.Email:     "Email*",
	contact.Message:   "Message",
}

// Model — состояние терминальной формы.
type Model struct {
	form    *contact.Form
	inputs  []textinput.Model // firstName, lastName, email
	message textarea.Model
	focus   int
	done    bool
}

// New создаёт модель с пустой формой и фокусом на первом поле.
func New() Model {
	placeholders := []string{"Edd", "Burke", "bluebill1049@hotmail.com"}

	inputs := make([]textinput.Model, len(placeholders))
	for i, ph := range placeholders {
		ti := textinput.New()
		ti.Placeholder = ph
		ti.CharLimit = 256
		ti.Prompt = "> "
		inputs[i] = ti
	}
	inputs[0].Focus()

	ta := textarea.New()
	ta.ShowLineNumbers = false
	ta.SetHeight(3)
	ta.SetWidth(50)

	return Model{
		form:    contact.NewForm(),
		inputs:  inputs,
		message: ta,
	}
}

// Form возвращает форму, которой управляет модель.
func (m Model) Form() *contact.Form { return m.form }

// Init реализует tea.Model.
func (m Model) Init() tea.Cmd { return textinput.Blink }

// Update реализует tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.done = true
			return m, tea.Quit
		case tea.KeyTab:
			return m.moveFocus(1)
		case tea.KeyShiftTab:
			return m.moveFocus(-1)
		case tea.KeyEnter:
			if m.focus == submitIndex {
				m.submit()
				return m, nil
			}
			// в однострочных полях Enter переводит фокус, в сообщении — перенос строки
			if m.focus < messageIndex {
				return m.moveFocus(1)
			}
		}
	}

	var cmd tea.Cmd
	switch {
	case m.focus < messageIndex:
		before := m.inputs[m.focus].Value()
		m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
		if after := m.inputs[m.focus].Value(); after != before {
			_ = m.form.Set(contact.Fields[m.focus], after)
		}
	case m.focus == messageIndex:
		before := m.message.Value()
		m.message, cmd = m.message.Update(msg)
		if after := m.message.Value(); after != before {
			_ = m.form.Set(contact.Message, after)
		}
	}
	return m, cmd
}

func (m Model) moveFocus(delta int) (tea.Model, tea.Cmd) {
	m.focus = (m.focus + delta + focusCount) % focusCount

	var cmds []tea.Cmd
	for i := range m.inputs {
		if i == m.focus {
			cmds = append(cmds, m.inputs[i].Focus())
		} else {
			m.inputs[i].Blur()
		}
	}
	if m.focus == messageIndex {
		cmds = append(cmds, m.message.Focus())
	} else {
		m.message.Blur()
	}
	return m, tea.Batch(cmds...)
}

// submit отправляет форму; при успехе очищает поля ввода.
func (m *Model) submit() {
	if res := m.form.Submit(); !res.OK {
		return
	}
	for i := range m.inputs {
		m.inputs[i].SetValue("")
	}
	m.message.Reset()
}

// View реализует tea.Model.
func (m Model) View() string {
	if m.done {
		return ""
	}

	v := m.form.View()
	errs := make(map[contact.Field]string, len(v.Errors))
	for _, e := range v.Errors {
		errs[e.Field] = e.Text
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("Contact Form"))
	b.WriteString("\n")

	for i, f := range contact.Fields {
		b.WriteString(labelStyle.Render(labels[f]))
		b.WriteString("\n")
		if i < messageIndex {
			b.WriteString(m.inputs[i].View())
		} else {
			b.WriteString(m.message.View())
		}
		b.WriteString("\n")
		if text, ok := errs[f]; ok {
			b.WriteString(errorStyle.Render(text))
			b.WriteString("\n")
		}
	}

	button := buttonStyle
	if m.focus == submitIndex {
		button = focusStyle
	}
	b.WriteString(button.Render("Submit"))
	b.WriteString("\n")

	if d := v.Display; d != nil {
		lines := []string{
			"You Submitted:",
			"First Name: " + d.FirstName,
			"Last Name: " + d.LastName,
			"Email: " + d.Email,
		}
		if d.Message != nil {
			lines = append(lines, "Message: "+*d.Message)
		}
		b.WriteString(displayStyle.Render(strings.Join(lines, "\n")))
		b.WriteString("\n")
	}

	b.WriteString(helpStyle.Render("tab/shift+tab: move • enter: submit • esc: quit"))
	return b.String()
}
