package tui

import (
	goerrors "errors"
	"fmt"
	"strings"

	"github.com/jesseduffield/gocui"

	"github.com/azizbekh/staffdesk/internal/controller"
	"github.com/azizbekh/staffdesk/internal/model"
)

const sidebarWidth = 16

func (u *UI) layout(gui *gocui.Gui) error {
	maxX, maxY := gui.Size()
	if maxX <= sidebarWidth+4 || maxY <= 6 {
		return nil
	}

	gui.FgColor = u.theme.fg
	gui.BgColor = u.theme.bg

	headerView, err := gui.SetView(viewHeader, 0, 0, maxX-1, 2, 0)
	if err != nil && !goerrors.Is(err, gocui.ErrUnknownView) {
		return err
	}
	headerView.Frame = false
	headerView.FgColor = u.theme.titleFg
	u.renderHeader(headerView)

	sidebarView, err := gui.SetView(viewSidebar, 0, 2, sidebarWidth, maxY-3, 0)
	if err != nil && !goerrors.Is(err, gocui.ErrUnknownView) {
		return err
	}
	sidebarView.FrameColor = u.theme.frame
	u.renderSidebar(sidebarView)

	mainView, err := gui.SetView(viewMain, sidebarWidth+1, 2, maxX-1, maxY-3, 0)
	if err != nil && !goerrors.Is(err, gocui.ErrUnknownView) {
		return err
	}
	mainView.FrameColor = u.theme.frame
	mainView.Title = " " + titleCase(u.page) + " "
	u.renderMain(mainView)

	statusView, err := gui.SetView(viewStatus, 0, maxY-2, maxX-1, maxY, 0)
	if err != nil && !goerrors.Is(err, gocui.ErrUnknownView) {
		return err
	}
	statusView.Frame = false
	u.renderStatus(statusView)

	if u.searchActive {
		if err := u.showSearch(gui); err != nil {
			return err
		}
	} else {
		_ = gui.DeleteView(viewSearch)
	}

	if u.form != nil {
		if err := u.showForm(gui); err != nil {
			return err
		}
	} else {
		_ = gui.DeleteView(viewForm)
	}

	if u.helpActive {
		if err := u.showHelp(gui); err != nil {
			return err
		}
	} else {
		_ = gui.DeleteView(viewHelp)
	}

	if !u.inputActive() {
		_, _ = gui.SetCurrentView(viewMain)
	}
	gui.Cursor = u.inputActive()
	return nil
}

func (u *UI) renderHeader(view *gocui.View) {
	view.Clear()
	u.mu.Lock()
	company := u.settings.CompanyName
	u.mu.Unlock()
	if company == "" {
		company = "StaffDesk"
	}
	fmt.Fprintf(view, " %s admin dashboard  •  theme: %s  •  ? for help\n", company, u.theme.name)
}

func (u *UI) renderSidebar(view *gocui.View) {
	view.Clear()
	for i, page := range pageOrder {
		marker := "  "
		if page == u.page {
			marker = "> "
		}
		fmt.Fprintf(view, "%s%d %s\n", marker, i+1, titleCase(page))
	}
}

func (u *UI) renderStatus(view *gocui.View) {
	view.Clear()
	view.FgColor = u.theme.fg
	u.mu.Lock()
	status, isErr := u.status, u.statusErr
	u.mu.Unlock()
	if status == "" {
		fmt.Fprint(view, " r refresh  / search  n new  e edit  d delete  b block  a assign  t theme  q quit")
		return
	}
	if isErr {
		view.FgColor = gocui.ColorRed
	} else {
		view.FgColor = gocui.ColorGreen
	}
	fmt.Fprintf(view, " %s", status)
}

func (u *UI) renderMain(view *gocui.View) {
	view.Clear()
	switch u.page {
	case pageOverview:
		u.renderOverview(view)
	case pageManagers:
		u.renderPeople(view, u.deps.Managers.Snapshot())
	case pageEmployees:
		u.renderPeople(view, u.deps.Employees.Snapshot())
	case pageTasks:
		u.renderTasks(view)
	case pageBlocked:
		u.renderBlocked(view)
	case pageSettings:
		u.renderSettings(view)
	case pageDetail:
		u.renderDetail(view)
	}
}

func (u *UI) renderDetail(view *gocui.View) {
	person, loading := u.deps.Detail.Snapshot()

	status := "active"
	if !person.IsActive {
		status = "blocked"
	}
	fmt.Fprintf(view, "\n  %s  (%s, %s)\n", person.FullName(), person.Type, status)
	fmt.Fprintf(view, "  %s\n\n", person.Email)

	if loading {
		fmt.Fprint(view, "  loading...\n")
		return
	}
	fmt.Fprintf(view, "  %-28s %-12s %-8s %s\n", "Task", "Status", "Prio", "Deadline")
	if len(person.Tasks) == 0 {
		fmt.Fprint(view, "  no tasks assigned\n")
	}
	for i, task := range person.Tasks {
		line := fmt.Sprintf("%-28s %-12s %-8s %s",
			clip(task.Name, 28), task.Status, task.Priority, task.Deadline)
		u.renderRow(view, i, line)
	}
	fmt.Fprint(view, "\n  a assign task  •  esc back\n")
}

func (u *UI) renderOverview(view *gocui.View) {
	u.mu.Lock()
	stats := u.stats
	u.mu.Unlock()

	fmt.Fprintf(view, "\n  Total employees    %d\n", stats.Total)
	fmt.Fprintf(view, "  Active             %d\n", stats.Active)
	fmt.Fprintf(view, "  Pending            %d\n", stats.Pending)
	fmt.Fprintf(view, "  Blocked            %d\n\n", stats.Blocked)

	state := u.deps.Tasks.Snapshot()
	fmt.Fprint(view, "  Recent tasks\n")
	if state.Loading {
		fmt.Fprint(view, "  loading...\n")
		return
	}
	for i, task := range state.Items {
		u.renderRow(view, i, fmt.Sprintf("%-30s %-12s %s", clip(task.Name, 30), task.Status, task.Priority))
	}
}

func (u *UI) renderPeople(view *gocui.View, state controller.State[model.Person]) {
	if state.Loading {
		fmt.Fprint(view, "  loading...\n")
		return
	}
	fmt.Fprintf(view, "  %-26s %-28s %-7s %s\n", "Name", "Email", "Tasks", "Status")
	for i, person := range state.Items {
		status := "active"
		if !person.IsActive {
			status = "blocked"
		}
		line := fmt.Sprintf("%-26s %-28s %-7d %s",
			clip(person.FullName(), 26), clip(person.Email, 28), len(person.Tasks), status)
		u.renderRow(view, i, line)
	}
	u.renderListFooter(view, len(state.Items), state.Page, state.Query)
}

func (u *UI) renderTasks(view *gocui.View) {
	state := u.deps.Tasks.Snapshot()
	if state.Loading {
		fmt.Fprint(view, "  loading...\n")
		return
	}
	fmt.Fprintf(view, "  %-28s %-12s %-8s %-12s %s\n", "Name", "Status", "Prio", "Deadline", "Owner")
	for i, task := range state.Items {
		line := fmt.Sprintf("%-28s %-12s %-8s %-12s %s",
			clip(task.Name, 28), task.Status, task.Priority, task.Deadline, task.Type)
		u.renderRow(view, i, line)
	}
	u.renderListFooter(view, len(state.Items), state.Page, state.Query)
}

func (u *UI) renderBlocked(view *gocui.View) {
	items, total, state := u.deps.Blocked.Snapshot()
	if state.Loading {
		fmt.Fprint(view, "  loading...\n")
		return
	}
	fmt.Fprintf(view, "  %-26s %-28s %s\n", "Name", "Email", "Type")
	for i, person := range items {
		line := fmt.Sprintf("%-26s %-28s %s", clip(person.FullName(), 26), clip(person.Email, 28), person.Type)
		u.renderRow(view, i, line)
	}
	fmt.Fprintf(view, "\n  %d blocked  •  page %d", total, state.Page)
	if state.Query != "" {
		fmt.Fprintf(view, "  •  filter: %q", state.Query)
	}
	fmt.Fprint(view, "  •  b to unblock\n")
}

func (u *UI) renderSettings(view *gocui.View) {
	u.mu.Lock()
	settings := u.settings
	u.mu.Unlock()

	notifications := "off"
	if settings.Notifications {
		notifications = "on"
	}
	fmt.Fprintf(view, "\n  Company        %s\n", settings.CompanyName)
	fmt.Fprintf(view, "  Email          %s\n", settings.Email)
	fmt.Fprintf(view, "  Notifications  %s\n", notifications)
	fmt.Fprintf(view, "  Language       %s\n", settings.Language)
	fmt.Fprintf(view, "\n  e to edit\n")
}

func (u *UI) renderRow(view *gocui.View, index int, line string) {
	if index == u.selected[u.page] {
		fmt.Fprintf(view, "> %s\n", line)
		return
	}
	fmt.Fprintf(view, "  %s\n", line)
}

func (u *UI) renderListFooter(view *gocui.View, count, page int, query string) {
	fmt.Fprintf(view, "\n  %d shown  •  page %d  •  [ ] to page", count, page)
	if query != "" {
		fmt.Fprintf(view, "  •  filter: %q", query)
	}
	fmt.Fprintln(view)
}

func (u *UI) showSearch(gui *gocui.Gui) error {
	maxX, _ := gui.Size()
	width := maxX / 2
	if width < 30 {
		width = maxX - 2
	}
	x0 := (maxX - width) / 2
	view, err := gui.SetView(viewSearch, x0, 3, x0+width, 5, 0)
	if err != nil && !goerrors.Is(err, gocui.ErrUnknownView) {
		return err
	}
	view.Title = " Search "
	view.Editable = true
	view.Editor = gocui.DefaultEditor
	view.FrameColor = u.theme.frame
	_, _ = gui.SetCurrentView(viewSearch)
	return nil
}

func (u *UI) showForm(gui *gocui.Gui) error {
	if u.form == nil {
		return nil
	}
	maxX, maxY := gui.Size()
	width := maxX / 2
	if width < 50 {
		width = maxX - 4
	}
	height := len(u.form.fields) + 3
	if u.form.errMsg != "" {
		height += 2
	}
	x0 := (maxX - width) / 2
	y0 := (maxY - height) / 2
	view, err := gui.SetView(viewForm, x0, y0, x0+width, y0+height, 0)
	if err != nil && !goerrors.Is(err, gocui.ErrUnknownView) {
		return err
	}
	view.Title = " " + u.form.title + " "
	view.Editable = true
	view.KeybindOnEdit = true
	view.Editor = u.formEditor
	view.FrameColor = u.theme.frame
	u.renderForm(view)
	_, _ = gui.SetCurrentView(viewForm)
	return nil
}

func (u *UI) showHelp(gui *gocui.Gui) error {
	maxX, maxY := gui.Size()
	width := 52
	if width > maxX-2 {
		width = maxX - 2
	}
	height := 17
	if height > maxY-2 {
		height = maxY - 2
	}
	x0 := (maxX - width) / 2
	y0 := (maxY - height) / 2
	view, err := gui.SetView(viewHelp, x0, y0, x0+width, y0+height, 0)
	if err != nil && !goerrors.Is(err, gocui.ErrUnknownView) {
		return err
	}
	view.Title = " Keys "
	view.FrameColor = u.theme.frame
	view.Clear()
	fmt.Fprint(view, `
  1-6, tab    switch page
  j/k, arrows move selection
  [ ]         previous / next page
  enter       person details (esc goes back)
  r           refresh
  /           search by name
  n           new manager/employee/task
  e           edit selected (or settings)
  d           delete selected
  b           block / unblock
  a           assign a new task to person
  t           toggle dark/light theme
  ?           close this help
  q, ctrl-c   quit
`)
	_, _ = gui.SetViewOnTop(viewHelp)
	return nil
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func clip(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-1]) + "…"
}
