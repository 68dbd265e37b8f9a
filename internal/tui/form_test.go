package tui

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/azizbekh/staffdesk/internal/model"
)

func TestParsePersonFormValid(t *testing.T) {
	t.Parallel()

	fields := buildPersonFormFields(nil)
	fields[personFieldName].Value = "  Aziz "
	fields[personFieldLastName].Value = "Karimov"
	fields[personFieldEmail].Value = "aziz@company.uz"

	payload, err := parsePersonForm(fields)
	if err != nil {
		t.Fatalf("parsePersonForm: %v", err)
	}
	if payload["name"] != "Aziz" {
		t.Errorf("name = %q, want trimmed Aziz", payload["name"])
	}
	if payload["last_name"] != "Karimov" {
		t.Errorf("last_name = %q", payload["last_name"])
	}
	if payload["email"] != "aziz@company.uz" {
		t.Errorf("email = %q", payload["email"])
	}
}

func TestParsePersonFormRejects(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name     string
		fullName [3]string
	}{
		{"missing name", [3]string{"", "Karimov", "a@b.uz"}},
		{"missing last name", [3]string{"Aziz", "", "a@b.uz"}},
		{"missing email", [3]string{"Aziz", "Karimov", ""}},
		{"email without at", [3]string{"Aziz", "Karimov", "a.b.uz"}},
		{"email without domain dot", [3]string{"Aziz", "Karimov", "a@buz"}},
		{"email ending in at", [3]string{"Aziz", "Karimov", "a@"}},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			fields := buildPersonFormFields(nil)
			fields[personFieldName].Value = tc.fullName[0]
			fields[personFieldLastName].Value = tc.fullName[1]
			fields[personFieldEmail].Value = tc.fullName[2]
			if _, err := parsePersonForm(fields); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}

func TestBuildPersonFormFieldsPrefills(t *testing.T) {
	t.Parallel()

	person := &model.Person{Name: "Malika", LastName: "Burxonova", Email: "m@b.uz"}
	fields := buildPersonFormFields(person)
	if fields[personFieldName].Value != "Malika" ||
		fields[personFieldLastName].Value != "Burxonova" ||
		fields[personFieldEmail].Value != "m@b.uz" {
		t.Errorf("prefill mismatch: %+v", fields)
	}
}

func TestParseTaskFormDefaultsAndValidation(t *testing.T) {
	t.Parallel()

	fields := buildTaskFormFields(nil)
	if fields[taskFieldStatus].Value != string(model.StatusPending) {
		t.Fatalf("new task status = %q, want pending", fields[taskFieldStatus].Value)
	}
	fields[taskFieldName].Value = "Hisobot tayyorlash"
	fields[taskFieldDeadline].Value = "2026-09-15"

	task, err := parseTaskForm(fields)
	if err != nil {
		t.Fatalf("parseTaskForm: %v", err)
	}
	if task.Status != model.StatusPending {
		t.Errorf("status = %q", task.Status)
	}
	if task.Priority != "" {
		t.Errorf("priority = %q, want unset", task.Priority)
	}

	fields[taskFieldDeadline].Value = "15.09.2026"
	if _, err := parseTaskForm(fields); err == nil {
		t.Error("expected deadline format error")
	}

	fields[taskFieldDeadline].Value = ""
	fields[taskFieldName].Value = "   "
	if _, err := parseTaskForm(fields); err == nil {
		t.Error("expected name error")
	}
}

func TestCycleOptionWrapsBothWays(t *testing.T) {
	t.Parallel()

	if got := cycleOption(statusOrder, string(model.StatusCompleted), 1); got != string(model.StatusPending) {
		t.Errorf("forward wrap = %q", got)
	}
	if got := cycleOption(statusOrder, string(model.StatusPending), -1); got != string(model.StatusCompleted) {
		t.Errorf("backward wrap = %q", got)
	}
	if got := cycleOption(priorityOrder, "", 1); got != string(model.PriorityLow) {
		t.Errorf("priority from unset = %q", got)
	}
	if got := cycleOption(priorityOrder, string(model.PriorityHigh), 1); got != "" {
		t.Errorf("priority past high = %q, want unset", got)
	}
}

func TestUIConfigRoundTrip(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "nested", "ui.json")

	cfg, err := LoadUIConfig(path)
	if err != nil {
		t.Fatalf("load missing: %v", err)
	}
	if cfg.Theme != "light" {
		t.Fatalf("default theme = %q", cfg.Theme)
	}

	if err := SaveUIConfig(path, UIConfig{Theme: "dark"}); err != nil {
		t.Fatalf("save: %v", err)
	}
	cfg, err = LoadUIConfig(path)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if cfg.Theme != "dark" {
		t.Errorf("theme = %q, want dark", cfg.Theme)
	}
}

func TestThemeToggle(t *testing.T) {
	t.Parallel()

	dark := themeByName("dark")
	if dark.other() != "light" {
		t.Errorf("dark.other() = %q", dark.other())
	}
	light := themeByName(dark.other())
	if light.name != "light" || light.other() != "dark" {
		t.Errorf("light toggle broken: %+v", light)
	}
	if themeByName("nonsense").name != "light" {
		t.Error("unknown theme should fall back to light")
	}
}

func TestFormStateDroppedOnEveryClosePath(t *testing.T) {
	t.Parallel()

	u := &UI{page: pageManagers}

	// Cancel discards typed input; the next open starts blank.
	u.openPersonForm(nil)
	u.form.fields[personFieldName].Value = "half-typed"
	if err := u.cancelForm(nil, nil); err != nil {
		t.Fatalf("cancelForm returned error: %v", err)
	}
	if u.form != nil {
		t.Fatal("form state should be dropped on cancel")
	}
	u.openPersonForm(nil)
	if got := u.form.fields[personFieldName].Value; got != "" {
		t.Fatalf("reopened form should start blank, got %q", got)
	}

	// A failed submit keeps the form up with the message.
	submitted := 0
	u.form = &formState{
		title:  "New task",
		fields: buildTaskFormFields(nil),
		submit: func([]formField) error {
			submitted++
			if submitted == 1 {
				return errors.New("name is required")
			}
			return nil
		},
	}
	if err := u.submitForm(nil, nil); err != nil {
		t.Fatalf("submitForm returned error: %v", err)
	}
	if u.form == nil || u.form.errMsg == "" {
		t.Fatal("rejected submit should keep the form and show the message")
	}

	// A successful submit tears it down like cancel does.
	if err := u.submitForm(nil, nil); err != nil {
		t.Fatalf("submitForm returned error: %v", err)
	}
	if submitted != 2 {
		t.Fatalf("submit called %d times, want 2", submitted)
	}
	if u.form != nil {
		t.Fatal("form state should be dropped after a successful submit")
	}
	u.openTaskForm(nil)
	if got := u.form.fields[taskFieldName].Value; got != "" {
		t.Fatalf("reopened task form should start blank, got %q", got)
	}
}
