package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/careerlog/careerlog/internal/api"
)

const (
	fieldEmail = iota
	fieldPassword
	fieldFirstName
	fieldLastName
	fieldPhone
	fieldCount
)

// loginModel holds the sign-in and registration form state.
type loginModel struct {
	inputs      [fieldCount]textinput.Model
	focusIdx    int
	registering bool
	submitting  bool
	errText     string
}

func newLoginModel() loginModel {
	var l loginModel

	email := textinput.New()
	email.Placeholder = "you@example.com"
	email.CharLimit = 254
	email.Width = 40
	email.Focus()
	l.inputs[fieldEmail] = email

	password := textinput.New()
	password.Placeholder = "password"
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '*'
	password.CharLimit = 128
	password.Width = 40
	l.inputs[fieldPassword] = password

	first := textinput.New()
	first.Placeholder = "first name"
	first.CharLimit = 64
	first.Width = 40
	l.inputs[fieldFirstName] = first

	last := textinput.New()
	last.Placeholder = "last name"
	last.CharLimit = 64
	last.Width = 40
	l.inputs[fieldLastName] = last

	phone := textinput.New()
	phone.Placeholder = "phone (optional)"
	phone.CharLimit = 32
	phone.Width = 40
	l.inputs[fieldPhone] = phone

	return l
}

// fieldLimit returns how many fields the current mode shows.
func (l loginModel) fieldLimit() int {
	if l.registering {
		return fieldCount
	}
	return fieldPassword + 1
}

func (l *loginModel) focusField(idx int) tea.Cmd {
	limit := l.fieldLimit()
	if idx < 0 {
		idx = limit - 1
	}
	if idx >= limit {
		idx = 0
	}
	l.focusIdx = idx

	var cmd tea.Cmd
	for i := range l.inputs {
		if i == idx {
			cmd = l.inputs[i].Focus()
		} else {
			l.inputs[i].Blur()
		}
	}
	return cmd
}

// handleLoginKey processes keyboard input on the login view.
func (m Model) handleLoginKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.login.submitting {
		return m, nil
	}

	switch msg.String() {
	case "tab", "down":
		return m, m.login.focusField(m.login.focusIdx + 1)

	case "shift+tab", "up":
		return m, m.login.focusField(m.login.focusIdx - 1)

	case "ctrl+r":
		m.login.registering = !m.login.registering
		m.login.errText = ""
		return m, m.login.focusField(0)

	case "enter":
		return m.submitLogin()
	}

	var cmd tea.Cmd
	m.login.inputs[m.login.focusIdx], cmd = m.login.inputs[m.login.focusIdx].Update(msg)
	return m, cmd
}

// submitLogin validates the form and fires the sign-in or registration call.
func (m Model) submitLogin() (tea.Model, tea.Cmd) {
	email := strings.TrimSpace(m.login.inputs[fieldEmail].Value())
	password := m.login.inputs[fieldPassword].Value()

	if email == "" || password == "" {
		m.login.errText = "Email and password are required."
		return m, nil
	}

	m.login.errText = ""
	m.login.submitting = true

	if m.login.registering {
		req := api.RegisterRequest{
			Email:       email,
			Password:    password,
			FirstName:   strings.TrimSpace(m.login.inputs[fieldFirstName].Value()),
			LastName:    strings.TrimSpace(m.login.inputs[fieldLastName].Value()),
			PhoneNumber: strings.TrimSpace(m.login.inputs[fieldPhone].Value()),
		}
		return m, registerCmd(m.ctx, m.client, req)
	}

	return m, loginCmd(m.ctx, m.client, m.sessions, email, password)
}

func (m Model) handleLoginDone(msg loginDoneMsg) (tea.Model, tea.Cmd) {
	m.login.submitting = false
	if msg.err != nil {
		m.login.errText = loginErrorText(msg.err)
		return m, nil
	}

	m.user = msg.user
	m.login = newLoginModel()
	m.currentView = ViewDashboard
	m.setNotice("Signed in.", false)
	return m, nil
}

func (m Model) handleRegisterDone(msg registerDoneMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.login.submitting = false
		m.login.errText = loginErrorText(msg.err)
		return m, nil
	}

	// Account created; sign in with the same credentials.
	return m, loginCmd(m.ctx, m.client, m.sessions, msg.email, msg.password)
}

// loginErrorText maps a failure to the message shown under the form.
func loginErrorText(err error) string {
	if apiErr, ok := api.AsError(err); ok {
		return apiErr.Message
	}
	return "Could not reach the server. Is it running?"
}

// renderLogin renders the sign-in / registration form.
func (m Model) renderLogin() string {
	var b strings.Builder

	title := "Sign in"
	action := "ctrl+r register"
	if m.login.registering {
		title = "Create account"
		action = "ctrl+r back to sign in"
	}

	b.WriteString(m.styles.AccentText.Render(title))
	b.WriteString("\n\n")

	labels := [fieldCount]string{"Email", "Password", "First name", "Last name", "Phone"}
	limit := m.login.fieldLimit()
	for i := range limit {
		b.WriteString(m.styles.MutedText.Render(labels[i]))
		b.WriteString("\n")
		b.WriteString(m.login.inputs[i].View())
		b.WriteString("\n")
	}

	if m.login.errText != "" {
		b.WriteString("\n")
		b.WriteString(m.styles.DangerText.Render(m.login.errText))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	hint := "enter submit · tab next field · " + action + " · ctrl+c quit"
	if m.login.submitting {
		hint = "Signing in..."
	}
	b.WriteString(m.styles.MutedText.Render(hint))

	return m.styles.Card.Render(b.String())
}
