package tui

import (
	"fmt"
	"net/url"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/jrsteele09/boutik-admin/internal/config"
	"github.com/jrsteele09/boutik-admin/internal/utils"
	"github.com/jrsteele09/boutik-admin/listview"
	"github.com/jrsteele09/boutik-admin/navigation"
	"github.com/jrsteele09/boutik-admin/resources"
	"github.com/jrsteele09/boutik-admin/session"
	"github.com/jrsteele09/boutik-admin/users"
)

const (
	tabAll      = "All"
	tabActive   = "Active"
	tabInactive = "Inactive"

	filterActive = "is_active"
	filterSearch = "q"

	ownerQueryParam = "owner"
)

var ownerSortColumns = []users.SortField{users.SortByID, users.SortByLastName, users.SortByCreatedAt}

type ownersScreen struct {
	env    *env
	list   *listview.Controller
	search textinput.Model
	table  table.Model

	page    resources.OwnersPage
	loading bool
	err     string

	seq         int    // id of the latest fetch
	lastFetched string // encoded params of the latest fetch
}

func newOwnersScreen(e *env) *ownersScreen {
	s := &ownersScreen{env: e}
	s.list = listview.NewController(e.config,
		listview.WithTabs(tabAll, tabActive, tabInactive),
		listview.WithSort(listview.Sort{Column: string(users.SortByID), Direction: listview.Asc}),
		listview.WithClock(e.now),
		listview.OnTabChange(func(tab string) {
			s.list.ChangeFilter(listview.Filter{Name: filterActive, Value: activeFilterValue(tab)})
		}),
	)

	s.search = textinput.New()
	s.search.Prompt = "/ "
	s.search.Placeholder = "search by name or email"
	s.search.CharLimit = 64

	s.table = table.New(
		table.WithColumns([]table.Column{
			{Title: "ID", Width: 5},
			{Title: "Name", Width: 24},
			{Title: "Email", Width: 30},
			{Title: "Status", Width: 9},
			{Title: "Shops", Width: 6},
			{Title: "Created", Width: 11},
		}),
		table.WithFocused(true),
	)
	return s
}

// activeFilterValue maps a tab onto the is_active filter; nil clears it
func activeFilterValue(tab string) *bool {
	switch tab {
	case tabActive:
		return utils.Ptr(true)
	case tabInactive:
		return utils.Ptr(false)
	}
	return nil
}

func (s *ownersScreen) Enter(_ navigation.Location, _ session.Snapshot) tea.Cmd {
	s.lastFetched = ""
	return s.refresh()
}

func (s *ownersScreen) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case ownersLoadedMsg:
		if msg.seq != s.seq {
			return nil // superseded
		}
		s.loading = false
		if msg.err != nil {
			s.err = errorNotice(msg.err)
			return nil
		}
		s.err = ""
		s.page = msg.page
		s.table.SetRows(ownerRows(msg.page.Data))
		return nil

	case settleMsg:
		return s.refresh()

	case tea.KeyMsg:
		if s.search.Focused() {
			return s.updateSearch(msg)
		}
		return s.handleKey(msg)
	}
	return nil
}

func (s *ownersScreen) updateSearch(key tea.KeyMsg) tea.Cmd {
	switch key.String() {
	case "enter", "esc":
		s.search.Blur()
		s.table.Focus()
		return nil
	}
	var cmd tea.Cmd
	s.search, cmd = s.search.Update(key)
	s.setSearch(s.search.Value())
	return tea.Batch(cmd, s.refresh())
}

// setSearch stores the text filter; blank text removes it
func (s *ownersScreen) setSearch(text string) {
	var value *string
	if t := strings.TrimSpace(text); t != "" {
		value = &t
	}
	s.list.ChangeFilter(listview.Filter{Name: filterSearch, Value: value})
	s.list.SetPage(1)
}

func (s *ownersScreen) handleKey(key tea.KeyMsg) tea.Cmd {
	switch key.String() {
	case "/":
		s.table.Blur()
		return s.search.Focus()
	case "x":
		s.search.SetValue("")
		s.list.ClearFilters()
		s.list.ChangeTab(tabAll)
		s.list.SetPage(1)
	case "tab", "shift+tab":
		s.list.ChangeTab(cycle(s.list.Tabs(), s.list.ActiveTab(), key.String() == "tab"))
		s.list.SetPage(1)
	case "s":
		cols := make([]string, len(ownerSortColumns))
		for i, c := range ownerSortColumns {
			cols[i] = string(c)
		}
		s.list.SortBy(cycle(cols, s.list.Sort().Column, true), listview.Asc)
	case "r":
		s.list.ToggleSort(s.list.Sort().Column)
	case "right", "l", "n":
		s.list.NextPage(s.page.Total)
	case "left", "h", "p":
		s.list.PrevPage()
	case "+", "-":
		opts := s.list.PageSizeOptions()
		s.list.SetPageSize(cycleInt(opts, s.list.PageSize(), key.String() == "+"))
	case "enter":
		if row := s.table.SelectedRow(); row != nil {
			if id, err := strconv.Atoi(row[0]); err == nil {
				s.env.router.Navigate(posLocation(id), navigation.Push)
			}
		}
		return nil
	case "esc":
		if !s.env.router.Back() {
			s.env.router.Navigate(navigation.Location{Path: config.PathDashboardHome}, navigation.Replace)
		}
		return nil
	default:
		var cmd tea.Cmd
		s.table, cmd = s.table.Update(key)
		return cmd
	}
	return s.refresh()
}

// refresh fetches when the settled query differs from the last one fetched, and
// schedules a settle tick while a filter change is still inside its debounce window
func (s *ownersScreen) refresh() tea.Cmd {
	var cmds []tea.Cmd
	if at, pending := s.list.FiltersSettleAt(); pending {
		cmds = append(cmds, tea.Tick(max(at.Sub(s.env.now()), time.Millisecond), func(time.Time) tea.Msg {
			return settleMsg{}
		}))
	}

	params := s.list.Params()
	if encoded := params.Values().Encode(); encoded != s.lastFetched {
		s.lastFetched = encoded
		s.seq++
		s.loading = true
		seq, ctx, owners := s.seq, s.env.ctx, s.env.owners
		cmds = append(cmds, func() tea.Msg {
			page, err := owners.List(ctx, params)
			return ownersLoadedMsg{seq: seq, page: page, err: err}
		})
	}
	return tea.Batch(cmds...)
}

func (s *ownersScreen) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(s.env.appName+" · Owners") + "\n\n")

	tabs := make([]string, 0, len(s.list.Tabs()))
	for _, tab := range s.list.Tabs() {
		if tab == s.list.ActiveTab() {
			tabs = append(tabs, activeTabStyle.Render(tab))
		} else {
			tabs = append(tabs, tabStyle.Render(tab))
		}
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, tabs...) + "\n")
	b.WriteString(s.search.View() + "\n\n")
	b.WriteString(s.table.View() + "\n\n")

	fmt.Fprintf(&b, "Page %d/%d · %d per page · %d owners (%d active) · %d shops · sort %s\n",
		s.list.Page(), listview.PageCount(s.page.Total, s.list.PageSize()), s.list.PageSize(),
		s.page.Total, s.page.TotalActive, s.page.TotalPOS, s.list.SortQuery())

	switch {
	case s.err != "":
		b.WriteString(errorStyle.Render(s.err) + "\n")
	case s.loading:
		b.WriteString(mutedStyle.Render("Loading…") + "\n")
	}
	b.WriteString(mutedStyle.Render("tab status · / search · x clear · s sort · r reverse · ←/→ page · +/- page size · enter shops · esc back"))
	return b.String()
}

func ownerRows(owners []*users.User) []table.Row {
	rows := make([]table.Row, 0, len(owners))
	for _, o := range owners {
		status := "inactive"
		if o.IsActive {
			status = "active"
		}
		created := ""
		if o.CreatedAt != nil {
			created = o.CreatedAt.Format(time.DateOnly)
		}
		rows = append(rows, table.Row{
			strconv.Itoa(o.ID),
			o.FullName(),
			o.Email,
			status,
			strconv.Itoa(len(o.OwnedAreas)),
			created,
		})
	}
	return rows
}

func posLocation(ownerID int) navigation.Location {
	return navigation.Location{
		Path:  config.PathOwnersPOS,
		Query: url.Values{ownerQueryParam: {strconv.Itoa(ownerID)}},
	}
}

// cycle returns the entry after (or before) current, wrapping around
func cycle(items []string, current string, forward bool) string {
	if len(items) == 0 {
		return current
	}
	i := slices.Index(items, current)
	if forward {
		return items[(i+1)%len(items)]
	}
	if i <= 0 {
		return items[len(items)-1]
	}
	return items[i-1]
}

func cycleInt(items []int, current int, forward bool) int {
	strs := make([]string, len(items))
	for i, n := range items {
		strs[i] = strconv.Itoa(n)
	}
	n, err := strconv.Atoi(cycle(strs, strconv.Itoa(current), forward))
	if err != nil {
		return current
	}
	return n
}
