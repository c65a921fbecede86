package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/jrsteele09/boutik-admin/auth"
	"github.com/jrsteele09/boutik-admin/client"
	"github.com/jrsteele09/boutik-admin/navigation"
	"github.com/jrsteele09/boutik-admin/session"
)

type loginScreen struct {
	env        *env
	email      textinput.Model
	password   textinput.Model
	submitting bool
	notice     string
	err        string
}

func newLoginScreen(e *env) *loginScreen {
	email := textinput.New()
	email.Placeholder = "you@example.com"
	email.Prompt = "Email     "
	email.CharLimit = 254

	password := textinput.New()
	password.Prompt = "Password  "
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '•'
	password.CharLimit = 128

	return &loginScreen{env: e, email: email, password: password}
}

func (s *loginScreen) Enter(loc navigation.Location, _ session.Snapshot) tea.Cmd {
	s.submitting = false
	s.err = ""
	s.notice = ""
	if loc.Get(client.ReasonParam) == client.ReasonSessionExpired {
		s.notice = noticeSessionExpired
	}
	s.password.SetValue("")
	s.password.Blur()
	return s.email.Focus()
}

func (s *loginScreen) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case loginResultMsg:
		s.submitting = false
		if msg.err != nil {
			s.err = errorNotice(msg.err)
			s.password.SetValue("")
		}
		return nil

	case tea.KeyMsg:
		if s.submitting {
			return nil
		}
		switch msg.String() {
		case "tab", "shift+tab", "up", "down":
			return s.toggleFocus()
		case "enter":
			if s.email.Focused() {
				return s.toggleFocus()
			}
			return s.submit()
		}
	}

	var cmd tea.Cmd
	if s.email.Focused() {
		s.email, cmd = s.email.Update(msg)
	} else {
		s.password, cmd = s.password.Update(msg)
	}
	return cmd
}

func (s *loginScreen) toggleFocus() tea.Cmd {
	if s.email.Focused() {
		s.email.Blur()
		return s.password.Focus()
	}
	s.password.Blur()
	return s.email.Focus()
}

func (s *loginScreen) submit() tea.Cmd {
	req := auth.LoginRequest{
		Username: strings.TrimSpace(s.email.Value()),
		Password: s.password.Value(),
	}
	if err := req.Validate(); err != nil {
		s.err = errorNotice(err)
		return nil
	}
	s.submitting = true
	s.err = ""
	ctx := s.env.ctx
	svc := s.env.auth
	return func() tea.Msg {
		_, err := svc.Login(ctx, req)
		return loginResultMsg{err: err}
	}
}

func (s *loginScreen) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(s.env.appName+" · Sign in") + "\n\n")
	if s.notice != "" {
		b.WriteString(noticeStyle.Render(s.notice) + "\n\n")
	}
	b.WriteString(s.email.View() + "\n")
	b.WriteString(s.password.View() + "\n\n")
	switch {
	case s.submitting:
		b.WriteString(mutedStyle.Render("Signing in…"))
	case s.err != "":
		b.WriteString(errorStyle.Render(s.err))
	default:
		b.WriteString(mutedStyle.Render("tab switch field · enter sign in · ctrl+c quit"))
	}
	return b.String()
}
