package tui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/jrsteele09/boutik-admin/internal/config"
	"github.com/jrsteele09/boutik-admin/internal/utils"
	"github.com/jrsteele09/boutik-admin/navigation"
	"github.com/jrsteele09/boutik-admin/resources"
	"github.com/jrsteele09/boutik-admin/session"
	"github.com/jrsteele09/boutik-admin/units"
)

// posScreen lists the points of sale of the owner named by the "owner" query parameter
type posScreen struct {
	env     *env
	ownerID int
	table   table.Model
	page    resources.Page[units.PointOfSale]
	loading bool
	err     string
}

func newPOSScreen(e *env) *posScreen {
	return &posScreen{
		env: e,
		table: table.New(
			table.WithColumns([]table.Column{
				{Title: "ID", Width: 5},
				{Title: "Name", Width: 28},
				{Title: "Location", Width: 24},
				{Title: "Created", Width: 11},
			}),
			table.WithFocused(true),
		),
	}
}

func (s *posScreen) Enter(loc navigation.Location, _ session.Snapshot) tea.Cmd {
	id, err := strconv.Atoi(loc.Get(ownerQueryParam))
	if err != nil || id <= 0 {
		s.ownerID = 0
		s.err = "No owner selected."
		s.table.SetRows(nil)
		return nil
	}
	s.ownerID = id
	s.err = ""
	s.loading = true
	ctx, pos := s.env.ctx, s.env.pos
	return func() tea.Msg {
		page, err := pos.ListByOwner(ctx, id)
		return posLoadedMsg{ownerID: id, page: page, err: err}
	}
}

func (s *posScreen) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case posLoadedMsg:
		if msg.ownerID != s.ownerID {
			return nil
		}
		s.loading = false
		if msg.err != nil {
			s.err = errorNotice(msg.err)
			return nil
		}
		s.page = msg.page
		s.table.SetRows(posRows(msg.page.Data))
		return nil

	case tea.KeyMsg:
		if msg.String() == "esc" {
			if !s.env.router.Back() {
				s.env.router.Navigate(navigation.Location{Path: config.PathOwnersList}, navigation.Replace)
			}
			return nil
		}
		var cmd tea.Cmd
		s.table, cmd = s.table.Update(msg)
		return cmd
	}
	return nil
}

func (s *posScreen) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("%s · Shops of owner #%d", s.env.appName, s.ownerID)) + "\n\n")
	b.WriteString(s.table.View() + "\n\n")
	fmt.Fprintf(&b, "%d shops\n", s.page.Total)
	switch {
	case s.err != "":
		b.WriteString(errorStyle.Render(s.err) + "\n")
	case s.loading:
		b.WriteString(mutedStyle.Render("Loading…") + "\n")
	}
	b.WriteString(mutedStyle.Render("↑/↓ move · esc back"))
	return b.String()
}

func posRows(list []units.PointOfSale) []table.Row {
	rows := make([]table.Row, 0, len(list))
	for _, p := range list {
		created := ""
		if p.CreatedAt != nil {
			created = p.CreatedAt.Format(time.DateOnly)
		}
		rows = append(rows, table.Row{strconv.Itoa(p.ID), p.Name, utils.Value(p.Location), created})
	}
	return rows
}
