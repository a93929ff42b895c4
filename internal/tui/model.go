package tui

import (
	"errors"
	"os"
	"strings"

	"ccswitch/config"
	"ccswitch/config/models"
	"ccswitch/config/session"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// ViewState represents the current view state
type ViewState int

const (
	ViewMain   ViewState = iota // Profile list with details
	ViewForm                    // Edit form
	ViewDelete                  // Delete confirmation dialog
	ViewHelp                    // Help panel
)

// Model is the core state model for the TUI
type Model struct {
	manager *config.Manager
	keys    KeyMap

	store   *models.File
	session session.State
	loaded  bool
	cursor  int

	viewState ViewState

	// Form related
	formInputs []textinput.Model
	formFocus  int
	editingID  string

	errorMsg string

	width  int
	height int

	scrollOffset int
}

// NewModel creates a new TUI model
func NewModel(cm *config.Manager) Model {
	return Model{
		manager:   cm,
		keys:      DefaultKeyMap(),
		store:     &models.File{},
		viewState: ViewMain,
		width:     80,
		height:    24,
	}
}

// Init loads the store
func (m Model) Init() tea.Cmd {
	return loadProfiles(m.manager)
}

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.adjustScrollOffset()
		return m, nil

	case ProfilesLoadedMsg:
		m.store = msg.Store
		if !m.loaded {
			m.session = session.Initial(m.store, msg.DetectedID)
			m.loaded = true
		}
		if msg.LoadErr != nil {
			m.errorMsg = msg.LoadErr.Error()
		}
		m.syncCursor()
		return m, nil

	case ProfileCreatedMsg:
		if msg.Store != nil {
			m.store = msg.Store
		}
		// A profile that failed to persist still exists in memory and can be edited
		if msg.Profile.ID != "" {
			m.session = m.session.AfterCreate(msg.Profile)
			m.syncCursor()
			m.initEditForm()
		}
		if msg.Err != nil {
			m.errorMsg = msg.Err.Error()
		}
		return m, nil

	case ProfileSavedMsg:
		if msg.Store != nil {
			m.store = msg.Store
		}
		if msg.Err != nil {
			// Stay in the form so the user can fix the input
			m.errorMsg = msg.Err.Error()
			return m, nil
		}
		m.closeForm()
		status := "Saved: " + msg.Name
		if msg.Applied {
			status = "Applied: " + msg.Name
		}
		m.session = m.session.Select(m.store, msg.ID).WithStatus(status)
		m.syncCursor()
		return m, nil

	case ProfileAppliedMsg:
		if msg.Store != nil {
			m.store = msg.Store
		}
		if msg.Err != nil {
			m.errorMsg = msg.Err.Error()
			return m, nil
		}
		m.session = m.session.WithStatus("Applied: " + msg.Name)
		return m, nil

	case ProfileDeletedMsg:
		m.viewState = ViewMain
		if msg.Store != nil {
			m.store = msg.Store
		}
		if msg.Err != nil {
			m.errorMsg = msg.Err.Error()
		}
		if m.store.IndexOf(msg.ID) < 0 {
			m.session = m.session.AfterDelete(m.store)
		}
		m.syncCursor()
		return m, nil
	}

	return m, nil
}

// handleKeyMsg handles keyboard input
func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.viewState {
	case ViewForm:
		return m.handleFormViewKeys(msg)
	case ViewDelete:
		return m.handleDeleteViewKeys(msg)
	case ViewHelp:
		return m.handleHelpViewKeys(msg)
	default:
		return m.handleMainViewKeys(msg)
	}
}

// handleMainViewKeys handles keyboard input in main view
func (m Model) handleMainViewKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Up):
		m.moveTo(m.cursor - 1)
		return m, nil

	case key.Matches(msg, m.keys.Down):
		m.moveTo(m.cursor + 1)
		return m, nil

	case key.Matches(msg, m.keys.Top):
		m.moveTo(0)
		return m, nil

	case key.Matches(msg, m.keys.Bottom):
		m.moveTo(len(m.store.Profiles) - 1)
		return m, nil

	case key.Matches(msg, m.keys.Add):
		m.errorMsg = ""
		return m, createProfile(m.manager)

	case key.Matches(msg, m.keys.Edit):
		if _, ok := m.session.Selected(m.store); ok {
			m.initEditForm()
		}
		return m, nil

	case key.Matches(msg, m.keys.Apply):
		if p, ok := m.session.Selected(m.store); ok {
			m.errorMsg = ""
			return m, applyProfile(m.manager, p.ID)
		}
		return m, nil

	case key.Matches(msg, m.keys.Delete):
		if _, ok := m.session.Selected(m.store); ok {
			m.viewState = ViewDelete
			m.errorMsg = ""
		}
		return m, nil

	case key.Matches(msg, m.keys.ToggleKey):
		m.session = m.session.ToggleKey()
		return m, nil

	case key.Matches(msg, m.keys.Help):
		m.viewState = ViewHelp
		return m, nil
	}

	return m, nil
}

// handleFormViewKeys handles keyboard input in the edit form
func (m Model) handleFormViewKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.String() == "ctrl+c":
		return m, tea.Quit

	case key.Matches(msg, m.keys.Cancel):
		m.closeForm()
		m.errorMsg = ""
		return m, nil

	case key.Matches(msg, m.keys.NextField):
		m.formFocus = NextFormField(m.formInputs, m.formFocus)
		return m, nil

	case key.Matches(msg, m.keys.PrevField):
		m.formFocus = PrevFormField(m.formInputs, m.formFocus)
		return m, nil

	case key.Matches(msg, m.keys.FormToggleKey):
		m.session = m.session.ToggleKey()
		SetKeyVisible(m.formInputs, m.session.ShowKey)
		return m, nil

	case key.Matches(msg, m.keys.Save), key.Matches(msg, m.keys.Apply):
		attrs, err := GetFormData(m.formInputs).Attributes()
		if err != nil {
			m.errorMsg = err.Error()
			return m, nil
		}
		m.errorMsg = ""
		return m, saveProfile(m.manager, m.editingID, attrs, key.Matches(msg, m.keys.Apply))

	default:
		// Pass key to focused input
		if m.formFocus >= 0 && m.formFocus < len(m.formInputs) {
			var cmd tea.Cmd
			m.formInputs[m.formFocus], cmd = m.formInputs[m.formFocus].Update(msg)
			return m, cmd
		}
		return m, nil
	}
}

// handleDeleteViewKeys handles keyboard input in delete confirmation view
func (m Model) handleDeleteViewKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.String() == "ctrl+c":
		return m, tea.Quit

	case key.Matches(msg, m.keys.ConfirmYes):
		if p, ok := m.session.Selected(m.store); ok {
			return m, deleteProfile(m.manager, p.ID)
		}
		m.viewState = ViewMain
		return m, nil

	case key.Matches(msg, m.keys.ConfirmNo):
		m.viewState = ViewMain
		return m, nil
	}

	return m, nil
}

// handleHelpViewKeys handles keyboard input in help view
func (m Model) handleHelpViewKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.String() == "ctrl+c":
		return m, tea.Quit
	case key.Matches(msg, m.keys.Cancel), key.Matches(msg, m.keys.Quit), key.Matches(msg, m.keys.Help):
		m.viewState = ViewMain
	}
	return m, nil
}

// initEditForm opens the form for the selected profile
func (m *Model) initEditForm() {
	p, ok := m.session.Selected(m.store)
	if !ok {
		return
	}

	m.formInputs = FormInputs()
	m.formFocus = 0
	m.editingID = p.ID
	m.viewState = ViewForm
	m.errorMsg = ""

	SetFormData(m.formInputs, FormDataFrom(p))
	SetKeyVisible(m.formInputs, m.session.ShowKey)
}

// closeForm returns to the list
func (m *Model) closeForm() {
	m.viewState = ViewMain
	m.formInputs = nil
	m.formFocus = 0
	m.editingID = ""
}

// moveTo selects the profile at idx, clamped to the list
func (m *Model) moveTo(idx int) {
	if len(m.store.Profiles) == 0 {
		return
	}
	if idx < 0 {
		idx = 0
	}
	if idx >= len(m.store.Profiles) {
		idx = len(m.store.Profiles) - 1
	}
	m.session = m.session.Select(m.store, m.store.Profiles[idx].ID)
	m.errorMsg = ""
	m.syncCursor()
}

// syncCursor points the cursor at the selected profile
func (m *Model) syncCursor() {
	m.cursor = 0
	if idx := m.store.IndexOf(m.session.SelectedID); idx >= 0 {
		m.cursor = idx
	}
	m.adjustScrollOffset()
}

// getVisibleListHeight returns the number of lines available for the profile list
func (m *Model) getVisibleListHeight() int {
	// Title, separators, detail panel and status bar
	headerLines := 3
	footerLines := 14

	available := m.height - headerLines - footerLines
	if available < 3 {
		available = 3
	}
	return available
}

// adjustScrollOffset keeps the cursor inside the visible part of the list
func (m *Model) adjustScrollOffset() {
	visibleHeight := m.getVisibleListHeight()

	if m.cursor < m.scrollOffset {
		m.scrollOffset = m.cursor
	}
	if m.cursor >= m.scrollOffset+visibleHeight {
		m.scrollOffset = m.cursor - visibleHeight + 1
	}

	maxOffset := len(m.store.Profiles) - visibleHeight
	if maxOffset < 0 {
		maxOffset = 0
	}
	if m.scrollOffset > maxOffset {
		m.scrollOffset = maxOffset
	}
	if m.scrollOffset < 0 {
		m.scrollOffset = 0
	}
}

// View renders the UI
func (m Model) View() string {
	switch m.viewState {
	case ViewForm:
		return m.RenderFormView()
	case ViewDelete:
		return m.RenderDeleteConfirm()
	case ViewHelp:
		return m.RenderHelpView()
	default:
		return m.RenderMainView()
	}
}

// loadProfiles creates a command to read the store
func loadProfiles(cm *config.Manager) tea.Cmd {
	return func() tea.Msg {
		store := cm.Load()
		msg := ProfilesLoadedMsg{Store: store}
		if err := cm.LastLoadError(); err != nil && !errors.Is(err, os.ErrNotExist) {
			msg.LoadErr = err
		}
		if p, ok := cm.DetectCurrent(); ok {
			msg.DetectedID = p.ID
		}
		return msg
	}
}

// createProfile creates a command to add a profile with default attributes
func createProfile(cm *config.Manager) tea.Cmd {
	return func() tea.Msg {
		p, err := cm.CreateProfile(config.DefaultNewProfileName)
		return ProfileCreatedMsg{Profile: p, Store: cm.Store(), Err: err}
	}
}

// saveProfile creates a command to store edited attributes, optionally applying them
func saveProfile(cm *config.Manager, id string, attrs models.Attributes, apply bool) tea.Cmd {
	return func() tea.Msg {
		var err error
		if apply {
			err = cm.SaveAndApply(id, attrs)
		} else {
			err = cm.RenameOrUpdate(id, attrs)
		}
		msg := ProfileSavedMsg{ID: id, Name: strings.TrimSpace(attrs.Name), Applied: apply, Store: cm.Store(), Err: err}
		if err == nil {
			if p, getErr := cm.Get(id); getErr == nil {
				msg.Name = p.Name
			}
		}
		return msg
	}
}

// applyProfile creates a command to write a profile to the settings file
func applyProfile(cm *config.Manager, id string) tea.Cmd {
	return func() tea.Msg {
		err := cm.Apply(id)
		msg := ProfileAppliedMsg{ID: id, Store: cm.Store(), Err: err}
		if p, getErr := cm.Get(id); getErr == nil {
			msg.Name = p.Name
		}
		return msg
	}
}

// deleteProfile creates a command to remove a profile
func deleteProfile(cm *config.Manager, id string) tea.Cmd {
	return func() tea.Msg {
		err := cm.Delete(id)
		return ProfileDeletedMsg{ID: id, Store: cm.Store(), Err: err}
	}
}
