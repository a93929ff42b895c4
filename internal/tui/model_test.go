package tui

import (
	"errors"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"ccswitch/config"
	"ccswitch/config/models"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/tidwall/gjson"
)

// newTestModel creates a model backed by a store in a temporary directory and
// processes the initial load
func newTestModel(t *testing.T) (Model, *config.Manager) {
	t.Helper()
	dir := t.TempDir()
	cm := config.NewManager(
		filepath.Join(dir, "profiles.json"),
		filepath.Join(dir, ".claude", "settings.json"),
		config.WithLogger(log.New(io.Discard, "", 0)),
	)
	m := NewModel(cm)
	m, _ = update(t, m, m.Init()())
	return m, cm
}

// update feeds msg to the model
func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	return next.(Model), cmd
}

// press feeds a key to the model and runs the resulting command, if any
func press(t *testing.T, m Model, k tea.KeyMsg) Model {
	t.Helper()
	m, cmd := update(t, m, k)
	if cmd != nil {
		if msg := cmd(); msg != nil {
			if _, quit := msg.(tea.QuitMsg); !quit {
				m, _ = update(t, m, msg)
			}
		}
	}
	return m
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

var (
	keyCtrlS = tea.KeyMsg{Type: tea.KeyCtrlS}
	keyCtrlA = tea.KeyMsg{Type: tea.KeyCtrlA}
	keyCtrlR = tea.KeyMsg{Type: tea.KeyCtrlR}
	keyEnter = tea.KeyMsg{Type: tea.KeyEnter}
	keyEsc   = tea.KeyMsg{Type: tea.KeyEsc}
	keyTab   = tea.KeyMsg{Type: tea.KeyTab}
)

func TestInitialLoad(t *testing.T) {
	m, cm := newTestModel(t)

	if len(m.store.Profiles) != 1 {
		t.Fatalf("loaded %d profiles, want the example profile", len(m.store.Profiles))
	}
	if m.session.SelectedID != cm.Profiles()[0].ID {
		t.Errorf("SelectedID = %q, want the example profile", m.session.SelectedID)
	}
	if m.session.Status != "Selected: "+config.ExampleProfileName {
		t.Errorf("Status = %q", m.session.Status)
	}
	if m.errorMsg != "" {
		t.Errorf("errorMsg = %q, want none for a missing store", m.errorMsg)
	}
	if !strings.Contains(m.View(), config.ExampleProfileName) {
		t.Error("main view does not list the example profile")
	}
}

func TestInitialSelectionUsesSettingsFile(t *testing.T) {
	dir := t.TempDir()
	cm := config.NewManager(
		filepath.Join(dir, "profiles.json"),
		filepath.Join(dir, "settings.json"),
		config.WithLogger(log.New(io.Discard, "", 0)),
	)
	cm.Load()
	second, _ := cm.CreateProfile("Second")
	attrs := second.Attributes
	attrs.BaseURL = "https://second.example.com"
	if err := cm.RenameOrUpdate(second.ID, attrs); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(cm.GetSettingsPath(), []byte(`{"env":{"ANTHROPIC_BASE_URL":"https://second.example.com"}}`), 0600); err != nil {
		t.Fatal(err)
	}

	m := NewModel(cm)
	m, _ = update(t, m, m.Init()())

	if m.session.SelectedID != second.ID {
		t.Errorf("SelectedID = %q, want %q", m.session.SelectedID, second.ID)
	}
	if m.cursor != 1 {
		t.Errorf("cursor = %d, want 1", m.cursor)
	}
	if m.session.Status != "Current: Second" {
		t.Errorf("Status = %q, want %q", m.session.Status, "Current: Second")
	}
}

func TestNavigation(t *testing.T) {
	m, cm := newTestModel(t)
	cm.CreateProfile("Second")
	cm.CreateProfile("Third")
	m, _ = update(t, m, ProfilesLoadedMsg{Store: cm.Store()})

	tests := []struct {
		key        tea.KeyMsg
		wantCursor int
	}{
		{runes("j"), 1},
		{runes("j"), 2},
		{runes("j"), 2},
		{runes("k"), 1},
		{runes("g"), 0},
		{runes("k"), 0},
		{runes("G"), 2},
	}

	for i, tt := range tests {
		m, _ = update(t, m, tt.key)
		if m.cursor != tt.wantCursor {
			t.Fatalf("step %d (%s): cursor = %d, want %d", i, tt.key.String(), m.cursor, tt.wantCursor)
		}
		if m.session.SelectedID != m.store.Profiles[tt.wantCursor].ID {
			t.Fatalf("step %d: selection does not follow the cursor", i)
		}
	}
}

func TestAddOpensFormForNewProfile(t *testing.T) {
	m, cm := newTestModel(t)

	m = press(t, m, runes("a"))

	if m.viewState != ViewForm {
		t.Fatalf("viewState = %v, want ViewForm", m.viewState)
	}
	if len(m.formInputs) != FormFieldCount {
		t.Fatalf("form has %d inputs, want %d", len(m.formInputs), FormFieldCount)
	}
	data := GetFormData(m.formInputs)
	if data.Name != config.DefaultNewProfileName {
		t.Errorf("form name = %q, want %q", data.Name, config.DefaultNewProfileName)
	}
	if len(cm.Profiles()) != 2 {
		t.Errorf("store has %d profiles, want 2", len(cm.Profiles()))
	}
	if m.session.Status != "Created: "+config.DefaultNewProfileName {
		t.Errorf("Status = %q", m.session.Status)
	}

	// A second add gets a numbered name
	m = press(t, m, keyEsc)
	m = press(t, m, runes("a"))
	if got := GetFormData(m.formInputs).Name; got != "New Profile 2" {
		t.Errorf("second profile name = %q, want %q", got, "New Profile 2")
	}
}

func TestFormSaveDraft(t *testing.T) {
	m, cm := newTestModel(t)
	m = press(t, m, runes("a"))
	id := m.editingID

	SetFormData(m.formInputs, FormData{
		Name:    "Work",
		BaseURL: "https://work.example.com",
		APIKey:  "sk-work",
		Timeout: "45000",
		Sonnet:  "provider-sonnet",
	})
	m = press(t, m, keyCtrlS)

	if m.viewState != ViewMain {
		t.Fatalf("viewState = %v, want ViewMain after save", m.viewState)
	}
	if m.session.Status != "Saved: Work" {
		t.Errorf("Status = %q, want %q", m.session.Status, "Saved: Work")
	}

	p, err := cm.Get(id)
	if err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if p.Name != "Work" || p.TimeoutMS != 45000 || p.ModelMappings.Sonnet != "provider-sonnet" {
		t.Errorf("stored profile = %+v", p)
	}
	if cm.ActiveID() == id {
		t.Error("draft save activated the profile")
	}
}

func TestFormRejectsInvalidInput(t *testing.T) {
	tests := []struct {
		name    string
		data    FormData
		wantErr string
	}{
		{name: "bad timeout", data: FormData{Name: "X", Timeout: "soon"}, wantErr: "timeout"},
		{name: "negative timeout", data: FormData{Name: "X", Timeout: "-1"}, wantErr: "timeout"},
		{name: "empty name", data: FormData{Name: " "}, wantErr: "name"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, _ := newTestModel(t)
			m = press(t, m, keyEnter)
			SetFormData(m.formInputs, tt.data)

			m, cmd := update(t, m, keyCtrlS)

			if cmd != nil {
				t.Error("invalid form produced a save command")
			}
			if m.viewState != ViewForm {
				t.Errorf("viewState = %v, want ViewForm", m.viewState)
			}
			if !strings.Contains(m.errorMsg, tt.wantErr) {
				t.Errorf("errorMsg = %q, want it to mention %q", m.errorMsg, tt.wantErr)
			}
		})
	}
}

func TestFormNameConflictStaysInForm(t *testing.T) {
	m, cm := newTestModel(t)
	m = press(t, m, runes("a"))
	id := m.editingID

	data := GetFormData(m.formInputs)
	data.Name = config.ExampleProfileName
	SetFormData(m.formInputs, data)
	m = press(t, m, keyCtrlS)

	if m.viewState != ViewForm {
		t.Fatalf("viewState = %v, want ViewForm after a conflict", m.viewState)
	}
	if m.errorMsg == "" {
		t.Error("no error shown for a name conflict")
	}
	p, _ := cm.Get(id)
	if p.Name != config.DefaultNewProfileName {
		t.Errorf("name changed to %q despite the conflict", p.Name)
	}
}

func TestFormApplyAndSave(t *testing.T) {
	t.Run("missing base URL", func(t *testing.T) {
		m, cm := newTestModel(t)
		m = press(t, m, runes("a"))
		id := m.editingID

		data := GetFormData(m.formInputs)
		data.Name = "Renamed"
		SetFormData(m.formInputs, data)
		m = press(t, m, keyCtrlA)

		if m.viewState != ViewForm {
			t.Errorf("viewState = %v, want ViewForm", m.viewState)
		}
		if !strings.Contains(m.errorMsg, "base URL") {
			t.Errorf("errorMsg = %q, want a base URL error", m.errorMsg)
		}
		p, _ := cm.Get(id)
		if p.Name != config.DefaultNewProfileName {
			t.Errorf("name changed to %q before validation passed", p.Name)
		}
		if _, err := os.Stat(cm.GetSettingsPath()); !errors.Is(err, os.ErrNotExist) {
			t.Error("settings file written for an invalid profile")
		}
	})

	t.Run("writes settings and activates", func(t *testing.T) {
		m, cm := newTestModel(t)
		m = press(t, m, runes("a"))
		id := m.editingID

		SetFormData(m.formInputs, FormData{
			Name:    "Live",
			BaseURL: "https://live.example.com",
			APIKey:  "sk-live",
		})
		m = press(t, m, keyCtrlA)

		if m.viewState != ViewMain {
			t.Fatalf("viewState = %v, want ViewMain (error: %s)", m.viewState, m.errorMsg)
		}
		if m.session.Status != "Applied: Live" {
			t.Errorf("Status = %q", m.session.Status)
		}
		if cm.ActiveID() != id || m.store.ActiveID() != id {
			t.Errorf("active id = %q, want %q", cm.ActiveID(), id)
		}

		settings, err := os.ReadFile(cm.GetSettingsPath())
		if err != nil {
			t.Fatalf("settings not written: %v", err)
		}
		if got := gjson.GetBytes(settings, "env.ANTHROPIC_AUTH_TOKEN").String(); got != "sk-live" {
			t.Errorf("ANTHROPIC_AUTH_TOKEN = %q, want sk-live", got)
		}
	})
}

func TestApplyFromList(t *testing.T) {
	m, cm := newTestModel(t)

	m = press(t, m, keyCtrlA)

	if m.errorMsg != "" {
		t.Fatalf("errorMsg = %q", m.errorMsg)
	}
	if cm.ActiveID() != m.session.SelectedID {
		t.Errorf("active id = %q, want the selected profile", cm.ActiveID())
	}
	if !strings.HasPrefix(m.session.Status, "Applied: ") {
		t.Errorf("Status = %q", m.session.Status)
	}
	if !strings.Contains(m.View(), "* "+config.ExampleProfileName) {
		t.Error("active profile is not marked in the list")
	}
}

func TestDeleteFlow(t *testing.T) {
	m, cm := newTestModel(t)
	cm.CreateProfile("Second")
	m, _ = update(t, m, ProfilesLoadedMsg{Store: cm.Store()})
	m, _ = update(t, m, runes("j"))
	target := m.session.SelectedID

	// Cancel keeps the profile
	m = press(t, m, runes("d"))
	if m.viewState != ViewDelete {
		t.Fatalf("viewState = %v, want ViewDelete", m.viewState)
	}
	if !strings.Contains(m.View(), "Second") {
		t.Error("confirmation does not name the profile")
	}
	m = press(t, m, runes("n"))
	if m.viewState != ViewMain || len(cm.Profiles()) != 2 {
		t.Fatalf("cancel changed state: view %v, %d profiles", m.viewState, len(cm.Profiles()))
	}

	// Confirm deletes and selects the first remaining profile
	m = press(t, m, runes("d"))
	m = press(t, m, runes("y"))
	if _, err := cm.Get(target); err == nil {
		t.Error("profile still stored after delete")
	}
	if m.viewState != ViewMain {
		t.Errorf("viewState = %v, want ViewMain", m.viewState)
	}
	if m.session.SelectedID != cm.Profiles()[0].ID || m.cursor != 0 {
		t.Errorf("selection = %q (cursor %d), want the first profile", m.session.SelectedID, m.cursor)
	}
	if m.session.Status != "Profile deleted" {
		t.Errorf("Status = %q", m.session.Status)
	}

	// Deleting the last profile leaves an empty list
	m = press(t, m, runes("d"))
	m = press(t, m, runes("y"))
	if len(m.store.Profiles) != 0 || m.session.SelectedID != "" {
		t.Errorf("store has %d profiles, selection %q", len(m.store.Profiles), m.session.SelectedID)
	}
	if !strings.Contains(m.View(), "No profiles") {
		t.Error("empty view not rendered")
	}
}

func TestToggleKeyVisibility(t *testing.T) {
	m, cm := newTestModel(t)
	id := m.session.SelectedID
	p, _ := cm.Get(id)
	p.APIKey = "sk-secret-value-1234"
	if err := cm.RenameOrUpdate(id, p.Attributes); err != nil {
		t.Fatal(err)
	}
	m, _ = update(t, m, ProfilesLoadedMsg{Store: cm.Store()})

	if strings.Contains(m.View(), "sk-secret-value-1234") {
		t.Error("API key shown before toggling")
	}

	m, _ = update(t, m, runes("v"))
	if !m.session.ShowKey {
		t.Fatal("ShowKey = false after v")
	}
	if !strings.Contains(m.View(), "sk-secret-value-1234") {
		t.Error("API key hidden after toggling")
	}

	// Opening the form keeps the choice; ctrl+r flips it inside the form
	m = press(t, m, keyEnter)
	if m.formInputs[FormFieldAPIKey].EchoMode == textinput.EchoPassword {
		t.Error("key field masked although the key is shown")
	}
	m, _ = update(t, m, keyCtrlR)
	if m.session.ShowKey {
		t.Error("ctrl+r did not hide the key")
	}
}

func TestFormFocusAndTyping(t *testing.T) {
	m, _ := newTestModel(t)
	m = press(t, m, keyEnter)

	m, _ = update(t, m, keyTab)
	if m.formFocus != FormFieldBaseURL {
		t.Fatalf("formFocus = %d, want %d", m.formFocus, FormFieldBaseURL)
	}

	// Letters that are shortcuts in the list are typed into fields
	m.formInputs[FormFieldBaseURL].SetValue("")
	for _, r := range "vqad" {
		m, _ = update(t, m, runes(string(r)))
	}
	if got := m.formInputs[FormFieldBaseURL].Value(); got != "vqad" {
		t.Errorf("typed value = %q, want %q", got, "vqad")
	}
	if m.viewState != ViewForm {
		t.Errorf("viewState = %v, want ViewForm", m.viewState)
	}

	m, _ = update(t, m, keyEsc)
	if m.viewState != ViewMain || m.formInputs != nil {
		t.Error("esc did not close the form")
	}
}

func TestHelpView(t *testing.T) {
	m, _ := newTestModel(t)

	m, _ = update(t, m, runes("?"))
	if m.viewState != ViewHelp {
		t.Fatalf("viewState = %v, want ViewHelp", m.viewState)
	}
	if !strings.Contains(m.View(), "ctrl+s") {
		t.Error("help view does not list the save shortcut")
	}

	m, _ = update(t, m, keyEsc)
	if m.viewState != ViewMain {
		t.Errorf("viewState = %v, want ViewMain", m.viewState)
	}
}

func TestQuit(t *testing.T) {
	m, _ := newTestModel(t)

	_, cmd := update(t, m, runes("q"))
	if cmd == nil {
		t.Fatal("q returned no command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q did not quit")
	}
}

func TestLoadErrorIsShown(t *testing.T) {
	dir := t.TempDir()
	storePath := filepath.Join(dir, "profiles.json")
	if err := os.WriteFile(storePath, []byte("{broken"), 0600); err != nil {
		t.Fatal(err)
	}
	cm := config.NewManager(storePath, filepath.Join(dir, "settings.json"), config.WithLogger(log.New(io.Discard, "", 0)))

	m := NewModel(cm)
	m, _ = update(t, m, m.Init()())

	if m.errorMsg == "" {
		t.Error("corrupt store not reported")
	}
	if len(m.store.Profiles) != 1 {
		t.Errorf("store has %d profiles, want the example", len(m.store.Profiles))
	}
}

func TestSaveReportsStoredName(t *testing.T) {
	m, cm := newTestModel(t)
	id := cm.Profiles()[0].ID

	msg := saveProfile(cm, id, models.Attributes{Name: "  Padded  ", BaseURL: "https://padded.example.com"}, false)()
	saved, ok := msg.(ProfileSavedMsg)
	if !ok {
		t.Fatalf("saveProfile() returned %T", msg)
	}
	if saved.Name != "Padded" {
		t.Errorf("Name = %q, want the stored name %q", saved.Name, "Padded")
	}

	m, _ = update(t, m, saved)
	if m.session.Status != "Saved: Padded" {
		t.Errorf("Status = %q, want %q", m.session.Status, "Saved: Padded")
	}
}

func TestCommandsRunConcurrently(t *testing.T) {
	dir := t.TempDir()
	cm := config.NewManager(
		filepath.Join(dir, "profiles.json"),
		filepath.Join(dir, ".claude", "settings.json"),
		config.WithLogger(log.New(io.Discard, "", 0)),
	)
	m := NewModel(cm)

	cmds := []tea.Cmd{m.Init(), createProfile(cm), createProfile(cm), createProfile(cm)}
	var wg sync.WaitGroup
	for _, cmd := range cmds {
		wg.Add(1)
		go func(cmd tea.Cmd) {
			defer wg.Done()
			cmd()
		}(cmd)
	}
	wg.Wait()

	profiles := cm.Profiles()
	seen := make(map[string]bool)
	created := 0
	for _, p := range profiles {
		if seen[p.Name] {
			t.Errorf("duplicate name %q", p.Name)
		}
		seen[p.Name] = true
		if strings.HasPrefix(p.Name, config.DefaultNewProfileName) {
			created++
		}
	}
	if created != 3 {
		t.Errorf("found %d created profiles in %v, want 3", created, profiles)
	}
}
