package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/jrsteele09/boutik-admin/internal/config"
	"github.com/jrsteele09/boutik-admin/internal/utils"
	"github.com/jrsteele09/boutik-admin/navigation"
	"github.com/jrsteele09/boutik-admin/session"
	"github.com/jrsteele09/boutik-admin/users"
)

type homeScreen struct {
	env  *env
	snap session.Snapshot
}

func newHomeScreen(e *env) *homeScreen {
	return &homeScreen{env: e}
}

func (s *homeScreen) Enter(_ navigation.Location, snap session.Snapshot) tea.Cmd {
	s.snap = snap
	return nil
}

func (s *homeScreen) Update(msg tea.Msg) tea.Cmd {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	switch key.String() {
	case "o":
		if s.snap.IsSuperuser() {
			s.env.router.Navigate(navigation.Location{Path: config.PathOwnersList}, navigation.Push)
		}
	}
	return nil
}

func (s *homeScreen) View() string {
	u := s.snap.User
	if u == nil {
		return ""
	}
	var b strings.Builder
	b.WriteString(titleStyle.Render(s.env.appName+" · Dashboard") + "\n\n")
	role := u.PrimaryRole()
	info, _ := users.LookupRole(role)
	fmt.Fprintf(&b, "%s%s\n", labelStyle.Render("Signed in"), u.FullName())
	fmt.Fprintf(&b, "%s%s\n", labelStyle.Render("Email"), u.Email)
	if info.Label != "" {
		fmt.Fprintf(&b, "%s%s\n", labelStyle.Render("Role"), info.Label)
	}
	if phone := utils.Value(u.Phone); phone != "" {
		fmt.Fprintf(&b, "%s%s\n", labelStyle.Render("Phone"), phone)
	}
	if len(u.OwnedAreas) > 0 {
		b.WriteString("\n" + labelStyle.Render("Shops") + "\n")
		for _, pos := range u.OwnedAreas {
			fmt.Fprintf(&b, "  • %s %s\n", pos.Name, mutedStyle.Render(utils.Value(pos.Location)))
		}
	}

	var keys []string
	if s.snap.IsSuperuser() {
		keys = append(keys, "o owners")
	}
	keys = append(keys, "ctrl+l sign out", "ctrl+c quit")
	b.WriteString("\n" + mutedStyle.Render(strings.Join(keys, " · ")))
	return b.String()
}
