package tui

import (
	"context"
	"sync"

	"github.com/jesseduffield/gocui"

	"github.com/azizbekh/staffdesk/internal/controller"
	"github.com/azizbekh/staffdesk/internal/gateway"
	"github.com/azizbekh/staffdesk/internal/model"
)

const (
	viewHeader  = "header"
	viewSidebar = "sidebar"
	viewMain    = "main"
	viewStatus  = "status"
	viewSearch  = "search"
	viewForm    = "form"
	viewHelp    = "help"
)

const (
	pageOverview  = "overview"
	pageManagers  = "managers"
	pageEmployees = "employees"
	pageTasks     = "tasks"
	pageBlocked   = "blocked"
	pageSettings  = "settings"

	// pageDetail is reached with Enter on a person, not from the
	// sidebar.
	pageDetail = "detail"
)

var pageOrder = []string{
	pageOverview, pageManagers, pageEmployees, pageTasks, pageBlocked, pageSettings,
}

// Deps wires the dashboard to the client SDK. Everything the UI shows
// flows through these controllers; the UI itself never talks HTTP.
type Deps struct {
	Managers  *controller.List[model.Person]
	Employees *controller.List[model.Person]
	Tasks     *controller.List[model.Task]
	Blocked   *controller.BlockedView
	Stats     *controller.Stats
	Attacher  *controller.Attacher
	Detail    *controller.Detail
	Settings  *gateway.Settings

	// Notifier is the relay the controllers were built with; Run binds
	// it to the status bar.
	Notifier *controller.Relay

	ConfigPath string
}

type UI struct {
	gui  *gocui.Gui
	deps Deps

	page     string
	theme    theme
	selected map[string]int

	form         *formState
	formEditor   *formEditor
	searchActive bool
	helpActive   bool

	mu        sync.Mutex
	status    string
	statusErr bool
	stats     model.Statistics
	statsSeq  uint64
	settings  model.Settings

	detailReturn string
}

// formState is the modal form. submit runs validation and the network
// call; returning an error keeps the modal open with the message shown
// inline. Field state lives only here, so dropping the state on any
// close path guarantees a later open starts clean.
type formState struct {
	title  string
	fields []formField
	index  int
	errMsg string
	submit func(fields []formField) error
}

type formEditor struct {
	ui *UI
}

func Run(deps Deps) error {
	gui, err := gocui.NewGui(gocui.NewGuiOpts{OutputMode: gocui.OutputNormal})
	if err != nil {
		return err
	}
	defer gui.Close()

	uiCfg, err := LoadUIConfig(deps.ConfigPath)
	if err != nil {
		uiCfg = DefaultUIConfig()
	}

	ui := &UI{
		gui:      gui,
		deps:     deps,
		page:     pageOverview,
		theme:    themeByName(uiCfg.Theme),
		selected: make(map[string]int),
	}
	ui.formEditor = &formEditor{ui: ui}
	if deps.Notifier != nil {
		deps.Notifier.Bind(ui)
	}

	gui.SetManagerFunc(ui.layout)
	if err := ui.bindKeys(gui); err != nil {
		return err
	}
	ui.refreshPage()

	if err := gui.MainLoop(); err != nil && err != gocui.ErrQuit {
		return err
	}
	return nil
}

// Success and Error make the UI the controllers' Notifier; messages land
// in the status bar.
func (u *UI) Success(msg string) {
	u.mu.Lock()
	u.status, u.statusErr = msg, false
	u.mu.Unlock()
}

func (u *UI) Error(msg string) {
	u.mu.Lock()
	u.status, u.statusErr = msg, true
	u.mu.Unlock()
}

// run executes a network operation off the UI loop and schedules a
// redraw when it finishes.
func (u *UI) run(fn func(ctx context.Context) error) {
	go func() {
		_ = fn(context.Background())
		u.gui.Update(func(*gocui.Gui) error { return nil })
	}()
}

func (u *UI) refreshPage() {
	switch u.page {
	case pageOverview:
		u.mu.Lock()
		u.statsSeq++
		seq := u.statsSeq
		u.mu.Unlock()
		u.run(func(ctx context.Context) error {
			stats, err := u.deps.Stats.Collect(ctx)
			if err != nil {
				u.Error("failed to load statistics")
				return err
			}
			u.mu.Lock()
			// Discard if a newer overview refresh has been issued.
			if seq == u.statsSeq {
				u.stats = stats
			}
			u.mu.Unlock()
			return u.deps.Tasks.Refresh(ctx)
		})
	case pageManagers:
		u.run(u.deps.Managers.Refresh)
	case pageEmployees:
		u.run(u.deps.Employees.Refresh)
	case pageTasks:
		u.run(u.deps.Tasks.Refresh)
	case pageBlocked:
		u.run(u.deps.Blocked.Refresh)
	case pageDetail:
		u.run(u.deps.Detail.Refresh)
	case pageSettings:
		u.run(func(ctx context.Context) error {
			settings, err := u.deps.Settings.Get(ctx)
			if err != nil {
				u.Error("failed to load settings")
				return err
			}
			u.mu.Lock()
			u.settings = settings
			u.mu.Unlock()
			return nil
		})
	}
}

func (u *UI) bindKeys(gui *gocui.Gui) error {
	bindings := []struct {
		view string
		key  any
		fn   func(*gocui.Gui, *gocui.View) error
	}{
		{"", gocui.KeyCtrlC, u.quit},
		{"", 'q', u.quit},
		{"", 'r', u.reload},
		{"", 'n', u.openCreate},
		{"", 'e', u.openEdit},
		{"", 'd', u.deleteSelected},
		{"", 'b', u.toggleBlock},
		{"", 'a', u.openAttach},
		{"", 't', u.toggleTheme},
		{"", '?', u.toggleHelp},
		{"", '/', u.startSearch},
		{"", gocui.KeyArrowDown, u.moveDown},
		{"", 'j', u.moveDown},
		{"", gocui.KeyArrowUp, u.moveUp},
		{"", 'k', u.moveUp},
		{"", ']', u.nextPageOfList},
		{"", '[', u.prevPageOfList},
		{"", gocui.KeyTab, u.nextPage},
		{"", gocui.KeyEnter, u.openDetail},
		{"", gocui.KeyEsc, u.closeDetail},
		{viewForm, gocui.KeyEnter, u.submitForm},
		{viewForm, gocui.KeyEsc, u.cancelForm},
		{viewForm, gocui.KeyArrowDown, u.nextFormField},
		{viewForm, gocui.KeyArrowUp, u.prevFormField},
		{viewSearch, gocui.KeyEnter, u.submitSearch},
		{viewSearch, gocui.KeyEsc, u.cancelSearch},
	}
	for _, b := range bindings {
		if err := gui.SetKeybinding(b.view, b.key, gocui.ModNone, b.fn); err != nil {
			return err
		}
	}
	for i, page := range pageOrder {
		page := page
		key := rune('1' + i)
		err := gui.SetKeybinding("", key, gocui.ModNone, func(g *gocui.Gui, v *gocui.View) error {
			if u.inputActive() {
				return nil
			}
			u.page = page
			u.refreshPage()
			return nil
		})
		if err != nil {
			return err
		}
	}
	return nil
}

func (u *UI) quit(*gocui.Gui, *gocui.View) error {
	if u.inputActive() {
		return nil
	}
	return gocui.ErrQuit
}

func (u *UI) inputActive() bool {
	return u.form != nil || u.searchActive
}

func (u *UI) reload(*gocui.Gui, *gocui.View) error {
	if u.inputActive() {
		return nil
	}
	u.refreshPage()
	return nil
}

func (u *UI) nextPage(*gocui.Gui, *gocui.View) error {
	if u.inputActive() {
		return nil
	}
	if u.page == pageDetail {
		u.page = u.detailReturn
	} else {
		for i, page := range pageOrder {
			if page == u.page {
				u.page = pageOrder[(i+1)%len(pageOrder)]
				break
			}
		}
	}
	u.refreshPage()
	return nil
}

func (u *UI) toggleTheme(*gocui.Gui, *gocui.View) error {
	if u.inputActive() {
		return nil
	}
	u.theme = themeByName(u.theme.other())
	if err := SaveUIConfig(u.deps.ConfigPath, UIConfig{Theme: u.theme.name}); err != nil {
		u.Error("failed to save theme preference")
	}
	return nil
}

func (u *UI) toggleHelp(*gocui.Gui, *gocui.View) error {
	if u.inputActive() {
		return nil
	}
	u.helpActive = !u.helpActive
	return nil
}

// visibleCount reports how many rows the current page shows, for
// selection clamping.
func (u *UI) visibleCount() int {
	switch u.page {
	case pageManagers:
		return len(u.deps.Managers.Snapshot().Items)
	case pageEmployees:
		return len(u.deps.Employees.Snapshot().Items)
	case pageTasks, pageOverview:
		return len(u.deps.Tasks.Snapshot().Items)
	case pageBlocked:
		items, _, _ := u.deps.Blocked.Snapshot()
		return len(items)
	case pageDetail:
		person, _ := u.deps.Detail.Snapshot()
		return len(person.Tasks)
	}
	return 0
}

func (u *UI) moveDown(*gocui.Gui, *gocui.View) error {
	if u.inputActive() {
		return nil
	}
	if u.selected[u.page] < u.visibleCount()-1 {
		u.selected[u.page]++
	}
	return nil
}

func (u *UI) moveUp(*gocui.Gui, *gocui.View) error {
	if u.inputActive() {
		return nil
	}
	if u.selected[u.page] > 0 {
		u.selected[u.page]--
	}
	return nil
}

func (u *UI) nextPageOfList(*gocui.Gui, *gocui.View) error {
	return u.shiftListPage(1)
}

func (u *UI) prevPageOfList(*gocui.Gui, *gocui.View) error {
	return u.shiftListPage(-1)
}

func (u *UI) shiftListPage(delta int) error {
	if u.inputActive() {
		return nil
	}
	u.selected[u.page] = 0
	switch u.page {
	case pageManagers:
		u.run(func(ctx context.Context) error {
			return u.deps.Managers.SetPage(ctx, u.deps.Managers.Snapshot().Page+delta)
		})
	case pageEmployees:
		u.run(func(ctx context.Context) error {
			return u.deps.Employees.SetPage(ctx, u.deps.Employees.Snapshot().Page+delta)
		})
	case pageTasks:
		u.run(func(ctx context.Context) error {
			return u.deps.Tasks.SetPage(ctx, u.deps.Tasks.Snapshot().Page+delta)
		})
	case pageBlocked:
		_, _, state := u.deps.Blocked.Snapshot()
		u.deps.Blocked.SetPage(state.Page + delta)
	}
	return nil
}

func (u *UI) selectedPerson() (*model.Person, *controller.List[model.Person]) {
	var list *controller.List[model.Person]
	switch u.page {
	case pageManagers:
		list = u.deps.Managers
	case pageEmployees:
		list = u.deps.Employees
	default:
		return nil, nil
	}
	items := list.Snapshot().Items
	index := u.selected[u.page]
	if index < 0 || index >= len(items) {
		return nil, nil
	}
	return &items[index], list
}

func (u *UI) selectedTask() *model.Task {
	items := u.deps.Tasks.Snapshot().Items
	index := u.selected[u.page]
	if index < 0 || index >= len(items) {
		return nil
	}
	return &items[index]
}

func (u *UI) personTypeForPage() model.PersonType {
	if u.page == pageManagers {
		return model.TypeManager
	}
	return model.TypeEmployee
}
