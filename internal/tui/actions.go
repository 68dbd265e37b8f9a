package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/jesseduffield/gocui"

	"github.com/azizbekh/staffdesk/internal/model"
)

func (u *UI) startSearch(gui *gocui.Gui, _ *gocui.View) error {
	if u.inputActive() {
		return nil
	}
	switch u.page {
	case pageManagers, pageEmployees, pageTasks, pageBlocked:
		u.searchActive = true
	}
	return nil
}

func (u *UI) submitSearch(gui *gocui.Gui, view *gocui.View) error {
	query := strings.TrimSpace(view.Buffer())
	u.searchActive = false
	u.selected[u.page] = 0
	_ = gui.DeleteView(viewSearch)

	switch u.page {
	case pageManagers:
		u.run(func(ctx context.Context) error { return u.deps.Managers.Search(ctx, query) })
	case pageEmployees:
		u.run(func(ctx context.Context) error { return u.deps.Employees.Search(ctx, query) })
	case pageTasks:
		u.run(func(ctx context.Context) error { return u.deps.Tasks.Search(ctx, query) })
	case pageBlocked:
		u.deps.Blocked.Search(query)
	}
	return nil
}

func (u *UI) cancelSearch(gui *gocui.Gui, _ *gocui.View) error {
	u.searchActive = false
	_ = gui.DeleteView(viewSearch)
	return nil
}

func (u *UI) openCreate(gui *gocui.Gui, _ *gocui.View) error {
	if u.inputActive() {
		return nil
	}
	switch u.page {
	case pageManagers, pageEmployees:
		u.openPersonForm(nil)
	case pageTasks:
		u.openTaskForm(nil)
	}
	return nil
}

func (u *UI) openEdit(gui *gocui.Gui, _ *gocui.View) error {
	if u.inputActive() {
		return nil
	}
	switch u.page {
	case pageManagers, pageEmployees:
		if person, _ := u.selectedPerson(); person != nil {
			u.openPersonForm(person)
		}
	case pageTasks:
		if task := u.selectedTask(); task != nil {
			u.openTaskForm(task)
		}
	case pageSettings:
		u.openSettingsForm()
	}
	return nil
}

func (u *UI) openPersonForm(person *model.Person) {
	list := u.deps.Managers
	if u.page == pageEmployees {
		list = u.deps.Employees
	}
	personType := u.personTypeForPage()

	title := "New " + string(personType)
	var id int64
	if person != nil {
		title = "Edit " + string(personType)
		id = person.ID
	}

	u.form = &formState{
		title:  title,
		fields: buildPersonFormFields(person),
		submit: func(fields []formField) error {
			payload, err := parsePersonForm(fields)
			if err != nil {
				return err
			}
			if id == 0 {
				u.run(func(ctx context.Context) error {
					return list.Create(ctx, model.Person{
						Name:     payload["name"].(string),
						LastName: payload["last_name"].(string),
						Email:    payload["email"].(string),
						Type:     personType,
						IsActive: true,
						Tasks:    []model.Task{},
					})
				})
				return nil
			}
			u.run(func(ctx context.Context) error { return list.Update(ctx, id, payload) })
			return nil
		},
	}
}

func (u *UI) openTaskForm(task *model.Task) {
	title := "New task"
	var id int64
	if task != nil {
		title = "Edit task"
		id = task.ID
	}

	u.form = &formState{
		title:  title,
		fields: buildTaskFormFields(task),
		submit: func(fields []formField) error {
			parsed, err := parseTaskForm(fields)
			if err != nil {
				return err
			}
			if id == 0 {
				u.run(func(ctx context.Context) error { return u.deps.Tasks.Create(ctx, parsed) })
				return nil
			}
			u.run(func(ctx context.Context) error {
				return u.deps.Tasks.Update(ctx, id, map[string]any{
					"name":        parsed.Name,
					"description": parsed.Description,
					"deadline":    parsed.Deadline,
					"status":      parsed.Status,
					"priority":    parsed.Priority,
				})
			})
			return nil
		},
	}
}

// openDetail switches to the single-person page: the selected person's
// record with their tasks table, loaded fresh through the gateway.
func (u *UI) openDetail(gui *gocui.Gui, _ *gocui.View) error {
	if u.inputActive() {
		return nil
	}
	person, _ := u.selectedPerson()
	if person == nil {
		return nil
	}
	u.deps.Detail.Show(*person)
	u.detailReturn = u.page
	u.selected[pageDetail] = 0
	u.page = pageDetail
	u.refreshPage()
	return nil
}

// closeDetail returns to the list the detail page was opened from.
func (u *UI) closeDetail(gui *gocui.Gui, _ *gocui.View) error {
	if u.inputActive() || u.page != pageDetail {
		return nil
	}
	u.page = u.detailReturn
	u.refreshPage()
	return nil
}

// openAttach builds a task form that, on submit, creates the task and
// links it to the person in one flow: the selected row on a people
// page, or the shown person on the detail page.
func (u *UI) openAttach(gui *gocui.Gui, _ *gocui.View) error {
	if u.inputActive() {
		return nil
	}

	var personID int64
	var personType model.PersonType
	var title string
	if u.page == pageDetail {
		personID, personType = u.deps.Detail.Target()
		shown, _ := u.deps.Detail.Snapshot()
		title = "Assign task to " + shown.FullName()
	} else {
		person, _ := u.selectedPerson()
		if person == nil {
			return nil
		}
		personID = person.ID
		personType = person.Type
		title = "Assign task to " + person.FullName()
	}

	u.form = &formState{
		title:  title,
		fields: buildTaskFormFields(nil),
		submit: func(fields []formField) error {
			parsed, err := parseTaskForm(fields)
			if err != nil {
				return err
			}
			u.run(func(ctx context.Context) error {
				if _, err := u.deps.Attacher.Attach(ctx, personID, personType, parsed); err != nil {
					return err
				}
				return u.refreshAfterAttach(ctx)
			})
			return nil
		},
	}
	return nil
}

// refreshAfterAttach re-syncs whichever screen triggered the attach.
func (u *UI) refreshAfterAttach(ctx context.Context) error {
	if u.page == pageDetail {
		return u.deps.Detail.Refresh(ctx)
	}
	return u.refreshPeople(ctx)
}

func (u *UI) openSettingsForm() {
	u.mu.Lock()
	current := u.settings
	u.mu.Unlock()

	notifications := "no"
	if current.Notifications {
		notifications = "yes"
	}
	fields := []formField{
		{Label: "Company name", Value: current.CompanyName},
		{Label: "Email", Value: current.Email},
		{Label: "Notifications (yes/no)", Value: notifications},
		{Label: "Language", Value: current.Language},
	}

	u.form = &formState{
		title:  "Settings",
		fields: fields,
		submit: func(fields []formField) error {
			email := strings.TrimSpace(fields[1].Value)
			if email != "" {
				if err := validateEmail(email); err != nil {
					return err
				}
			}
			next := model.Settings{
				CompanyName:   strings.TrimSpace(fields[0].Value),
				Email:         email,
				Notifications: strings.EqualFold(strings.TrimSpace(fields[2].Value), "yes"),
				Language:      strings.TrimSpace(fields[3].Value),
				Theme:         u.theme.name,
			}
			u.run(func(ctx context.Context) error {
				if err := u.deps.Settings.Put(ctx, next); err != nil {
					u.Error("failed to save settings")
					return err
				}
				u.mu.Lock()
				u.settings = next
				u.mu.Unlock()
				u.Success("settings saved")
				return nil
			})
			return nil
		},
	}
}

func (u *UI) refreshPeople(ctx context.Context) error {
	if u.page == pageEmployees {
		return u.deps.Employees.Refresh(ctx)
	}
	return u.deps.Managers.Refresh(ctx)
}

func (u *UI) deleteSelected(gui *gocui.Gui, _ *gocui.View) error {
	if u.inputActive() {
		return nil
	}
	switch u.page {
	case pageManagers, pageEmployees:
		person, list := u.selectedPerson()
		if person == nil {
			return nil
		}
		id := person.ID
		u.run(func(ctx context.Context) error { return list.Remove(ctx, id) })
	case pageTasks:
		task := u.selectedTask()
		if task == nil {
			return nil
		}
		id := task.ID
		u.run(func(ctx context.Context) error { return u.deps.Tasks.Remove(ctx, id) })
	}
	return nil
}

// toggleBlock deactivates or reactivates the selected person. On the
// blocked page it always unblocks.
func (u *UI) toggleBlock(gui *gocui.Gui, _ *gocui.View) error {
	if u.inputActive() {
		return nil
	}
	switch u.page {
	case pageManagers, pageEmployees:
		person, list := u.selectedPerson()
		if person == nil {
			return nil
		}
		id, next := person.ID, !person.IsActive
		u.run(func(ctx context.Context) error { return list.SetActive(ctx, id, next) })
	case pageBlocked:
		items, _, _ := u.deps.Blocked.Snapshot()
		index := u.selected[u.page]
		if index < 0 || index >= len(items) {
			return nil
		}
		person := items[index]
		u.run(func(ctx context.Context) error { return u.deps.Blocked.Unblock(ctx, person) })
	}
	return nil
}

func (u *UI) submitForm(gui *gocui.Gui, _ *gocui.View) error {
	if u.form == nil {
		return nil
	}
	if err := u.form.submit(u.form.fields); err != nil {
		u.form.errMsg = err.Error()
		return nil
	}
	u.closeForm(gui)
	return nil
}

func (u *UI) cancelForm(gui *gocui.Gui, _ *gocui.View) error {
	u.closeForm(gui)
	return nil
}

// closeForm drops the modal state; the view only exists while a
// terminal is attached.
func (u *UI) closeForm(gui *gocui.Gui) {
	u.form = nil
	if gui != nil {
		_ = gui.DeleteView(viewForm)
	}
}

func (u *UI) nextFormField(gui *gocui.Gui, view *gocui.View) error {
	if u.form == nil {
		return nil
	}
	if u.form.index < len(u.form.fields)-1 {
		u.form.index++
	}
	u.renderForm(view)
	return nil
}

func (u *UI) prevFormField(gui *gocui.Gui, view *gocui.View) error {
	if u.form == nil {
		return nil
	}
	if u.form.index > 0 {
		u.form.index--
	}
	u.renderForm(view)
	return nil
}

func (u *UI) renderForm(view *gocui.View) {
	if u.form == nil || view == nil {
		return
	}
	view.Clear()
	for index, field := range u.form.fields {
		prefix := "  "
		if index == u.form.index {
			prefix = "> "
		}
		fmt.Fprintf(view, "%s%s: %s\n", prefix, field.Label, field.Value)
	}
	if u.form.errMsg != "" {
		fmt.Fprintf(view, "\n  %s\n", u.form.errMsg)
	}
	label := u.form.fields[u.form.index].Label + ": "
	cursorX := len([]rune(label)) + len([]rune(u.form.fields[u.form.index].Value)) + 2
	view.SetCursor(cursorX, u.form.index)
}

func (e *formEditor) Edit(view *gocui.View, key gocui.Key, ch rune, mod gocui.Modifier) bool {
	ui := e.ui
	if ui == nil || ui.form == nil || view == nil {
		return false
	}
	field := &ui.form.fields[ui.form.index]

	if isStatusField(field.Label) {
		switch key {
		case gocui.KeyArrowRight, gocui.KeySpace:
			field.Value = cycleOption(statusOrder, field.Value, 1)
		case gocui.KeyArrowLeft:
			field.Value = cycleOption(statusOrder, field.Value, -1)
		}
		ui.renderForm(view)
		return true
	}
	if isPriorityField(field.Label) {
		switch key {
		case gocui.KeyArrowRight, gocui.KeySpace:
			field.Value = cycleOption(priorityOrder, field.Value, 1)
		case gocui.KeyArrowLeft:
			field.Value = cycleOption(priorityOrder, field.Value, -1)
		}
		ui.renderForm(view)
		return true
	}

	switch key {
	case gocui.KeyBackspace, gocui.KeyBackspace2:
		runes := []rune(field.Value)
		if len(runes) > 0 {
			field.Value = string(runes[:len(runes)-1])
		}
	case gocui.KeySpace:
		field.Value += " "
	case gocui.KeyCtrlU:
		field.Value = ""
	}

	if ch != 0 && ch != '\n' && ch != '\r' && mod == 0 {
		field.Value += string(ch)
	}

	ui.renderForm(view)
	return true
}
