package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"sync"

	"ccswitch/config/models"
	"ccswitch/config/storage"
	syncpkg "ccswitch/config/sync"
	"ccswitch/config/validation"

	"github.com/google/uuid"
)

// Defaults for synthesized profiles
const (
	DefaultNewProfileName = "New Profile"
	ExampleProfileName    = "Example"
	ExampleBaseURL        = "https://api.example.com"
	storePermissions      = 0600
)

// ApplyFunc writes a profile somewhere outside the store. Activate only marks a
// profile active after its ApplyFunc succeeded.
type ApplyFunc func(models.Profile) error

// Option configures a Manager
type Option func(*Manager)

// WithLogger sets the logger used for recovered failures
func WithLogger(logger *log.Logger) Option {
	return func(m *Manager) {
		m.logger = logger
	}
}

// WithSettingsOptions controls how Apply writes the settings file
func WithSettingsOptions(opts syncpkg.Options) Option {
	return func(m *Manager) {
		m.settingsOpts = opts
	}
}

// WithIDGenerator replaces the profile id generator
func WithIDGenerator(newID func() string) Option {
	return func(m *Manager) {
		m.newID = newID
	}
}

// Manager is the profile store. It owns the in-memory document and rewrites the
// whole store file after every mutation. Methods are safe for concurrent use
// within one process; other processes writing the same file are not coordinated.
type Manager struct {
	mu sync.Mutex // guards file and loadErr, serializes file writes

	storePath    string
	settingsPath string
	settingsOpts syncpkg.Options
	writer       *syncpkg.Writer
	validator    *validation.Validator
	logger       *log.Logger
	newID        func() string

	file    *models.File
	loadErr error
}

// NewManager creates a Manager for the given store and settings files.
// Nothing is read until Load or the first operation.
func NewManager(storePath, settingsPath string, opts ...Option) *Manager {
	m := &Manager{
		storePath:    storePath,
		settingsPath: settingsPath,
		validator:    validation.NewValidator(),
		logger:       log.New(os.Stderr, "", 0),
		newID:        func() string { return uuid.New().String() },
	}
	for _, opt := range opts {
		opt(m)
	}
	m.writer = syncpkg.NewWriter(settingsPath, m.settingsOpts, m.logger)
	return m
}

// NewConfigManager creates a Manager using the default file locations
func NewConfigManager(opts ...Option) (*Manager, error) {
	storePath, err := DefaultStorePath()
	if err != nil {
		return nil, err
	}
	settingsPath, err := DefaultSettingsPath()
	if err != nil {
		return nil, err
	}
	return NewManager(storePath, settingsPath, opts...), nil
}

// GetStorePath returns the path to the store file
func (m *Manager) GetStorePath() string {
	return m.storePath
}

// GetSettingsPath returns the path to the Claude Code settings file
func (m *Manager) GetSettingsPath() string {
	return m.settingsPath
}

// LastLoadError returns why the last Load fell back to the default store, or nil
func (m *Manager) LastLoadError() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.loadErr
}

// Load reads the store file. It never fails: a missing, empty or unparsable file
// is replaced by a store holding a single "Example" profile, which is written to
// disk right away. Legacy documents are migrated and rewritten in the current shape.
func (m *Manager) Load() *models.File {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.load()
	return m.file.Clone()
}

// load does the work of Load; callers hold mu
func (m *Manager) load() {
	m.loadErr = nil

	data, err := os.ReadFile(m.storePath)
	if err != nil {
		m.loadDefault(err)
		return
	}

	res, err := decodeStore(data, m.newID)
	if err != nil {
		m.loadDefault(err)
		return
	}

	m.file = res.file
	if res.migrated || res.repaired {
		if err := m.save(); err != nil {
			m.logger.Printf("⚠️  Failed to rewrite migrated profile store: %v", err)
		}
	}
}

// loadDefault installs the synthesized default store and records cause
func (m *Manager) loadDefault(cause error) {
	m.loadErr = &LoadError{Path: m.storePath, Err: cause}
	if !errors.Is(cause, os.ErrNotExist) {
		m.logger.Printf("⚠️  %v; starting with a default profile", m.loadErr)
	}

	example := m.newProfile(ExampleProfileName)
	example.BaseURL = ExampleBaseURL
	m.file = &models.File{Profiles: []models.Profile{example}}

	if err := m.save(); err != nil {
		m.logger.Printf("⚠️  Failed to create profile store: %v", err)
	}
}

// ensureLoaded loads the store on first use; callers hold mu
func (m *Manager) ensureLoaded() {
	if m.file == nil {
		m.load()
	}
}

// Save writes the full document to the store file
func (m *Manager) Save() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ensureLoaded()
	return m.save()
}

// save writes m.file; callers hold mu
func (m *Manager) save() error {
	data, err := json.MarshalIndent(m.file, "", "  ")
	if err != nil {
		return &PersistenceError{Op: "serialize", Path: m.storePath, Err: err}
	}

	if err := storage.AtomicWrite(m.storePath, data, storePermissions); err != nil {
		return &PersistenceError{Op: "write", Path: m.storePath, Err: err}
	}

	return nil
}

// Store returns a copy of the current document
func (m *Manager) Store() *models.File {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ensureLoaded()
	return m.file.Clone()
}

// Profiles returns a copy of the profiles in display order
func (m *Manager) Profiles() []models.Profile {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ensureLoaded()
	profiles := make([]models.Profile, len(m.file.Profiles))
	copy(profiles, m.file.Profiles)
	return profiles
}

// Get returns the profile with the given id
func (m *Manager) Get(id string) (models.Profile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ensureLoaded()
	idx := m.file.IndexOf(id)
	if idx < 0 {
		return models.Profile{}, fmt.Errorf("%w: %s", ErrProfileNotFound, id)
	}
	return m.file.Profiles[idx], nil
}

// FindByName returns the profile with the given display name
func (m *Manager) FindByName(name string) (models.Profile, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ensureLoaded()
	return m.findByName(name)
}

func (m *Manager) findByName(name string) (models.Profile, bool) {
	for _, p := range m.file.Profiles {
		if p.Name == name {
			return p, true
		}
	}
	return models.Profile{}, false
}

// Resolve finds a profile by id, exact name, or unambiguous id prefix
func (m *Manager) Resolve(ref string) (models.Profile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ensureLoaded()

	ref = strings.TrimSpace(ref)
	if ref == "" {
		return models.Profile{}, fmt.Errorf("%w: empty reference", ErrProfileNotFound)
	}

	if idx := m.file.IndexOf(ref); idx >= 0 {
		return m.file.Profiles[idx], nil
	}
	if p, ok := m.findByName(ref); ok {
		return p, nil
	}

	var matches []models.Profile
	for _, p := range m.file.Profiles {
		if strings.HasPrefix(p.ID, ref) {
			matches = append(matches, p)
		}
	}
	switch len(matches) {
	case 1:
		return matches[0], nil
	case 0:
		return models.Profile{}, fmt.Errorf("%w: %s", ErrProfileNotFound, ref)
	default:
		return models.Profile{}, fmt.Errorf("reference %q matches %d profiles", ref, len(matches))
	}
}

// ActiveID returns the id of the active profile, or "" when none is active
func (m *Manager) ActiveID() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ensureLoaded()
	return m.file.ActiveID()
}

// Active returns the active profile
func (m *Manager) Active() (models.Profile, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ensureLoaded()
	idx := m.file.IndexOf(m.file.ActiveID())
	if idx < 0 {
		return models.Profile{}, false
	}
	return m.file.Profiles[idx], true
}

// newProfile returns a profile with a fresh id and default attributes
func (m *Manager) newProfile(name string) models.Profile {
	return models.Profile{
		ID: m.newID(),
		Attributes: models.Attributes{
			Name:      name,
			TimeoutMS: models.DefaultTimeoutMS,
		},
	}
}

// CreateProfile appends a profile with default attributes. Its name is baseName,
// or baseName followed by " 2", " 3", ... when taken. The profile stays in memory
// even if persisting fails.
func (m *Manager) CreateProfile(baseName string) (models.Profile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ensureLoaded()

	baseName = strings.TrimSpace(baseName)
	if baseName == "" {
		baseName = DefaultNewProfileName
	}

	p := m.newProfile(uniqueName(m.file, baseName, ""))
	m.file.Profiles = append(m.file.Profiles, p)

	return p, m.save()
}

// RenameOrUpdate replaces the editable attributes of a profile, keeping its id
// and position. A name used by another profile is rejected with ErrNameConflict
// and nothing changes.
func (m *Manager) RenameOrUpdate(id string, attrs models.Attributes) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ensureLoaded()
	return m.renameOrUpdate(id, attrs)
}

func (m *Manager) renameOrUpdate(id string, attrs models.Attributes) error {
	idx := m.file.IndexOf(id)
	if idx < 0 {
		return fmt.Errorf("%w: %s", ErrProfileNotFound, id)
	}

	attrs.Name = strings.TrimSpace(attrs.Name)
	if err := m.validator.ValidateName(attrs.Name); err != nil {
		return &ValidationError{Field: "name", Message: err.Error()}
	}
	if nameTaken(m.file, attrs.Name, id) {
		return fmt.Errorf("%w: %s", ErrNameConflict, attrs.Name)
	}
	if attrs.TimeoutMS <= 0 {
		attrs.TimeoutMS = models.DefaultTimeoutMS
	}

	m.file.Profiles[idx].Attributes = attrs
	return m.save()
}

// Delete removes a profile and clears the active id if it pointed at it.
// Deleting an unknown id does nothing.
func (m *Manager) Delete(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ensureLoaded()

	idx := m.file.IndexOf(id)
	if idx < 0 {
		return nil
	}

	m.file.Profiles = append(m.file.Profiles[:idx], m.file.Profiles[idx+1:]...)
	if m.file.ActiveID() == id {
		m.file.SetActiveID("")
	}

	return m.save()
}

// Activate runs apply for the profile and marks it active only if apply succeeded.
// On failure neither the active id nor the store file changes. apply runs with
// the Manager locked and must not call back into it.
func (m *Manager) Activate(id string, apply ApplyFunc) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ensureLoaded()
	return m.activate(id, apply)
}

func (m *Manager) activate(id string, apply ApplyFunc) error {
	idx := m.file.IndexOf(id)
	if idx < 0 {
		return fmt.Errorf("%w: %s", ErrProfileNotFound, id)
	}

	if err := apply(m.file.Profiles[idx]); err != nil {
		return err
	}

	m.file.SetActiveID(id)
	return m.save()
}

// Apply writes the profile into the Claude Code settings file and makes it active
func (m *Manager) Apply(id string) error {
	return m.Activate(id, m.applyToSettings)
}

// SaveAndApply stores edited attributes and applies the profile in one step.
// A missing base URL is rejected before anything is modified.
func (m *Manager) SaveAndApply(id string, attrs models.Attributes) error {
	if err := m.validator.ValidateForApply(models.Profile{Attributes: attrs}); err != nil {
		return &ValidationError{Field: "base_url", Message: err.Error()}
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.ensureLoaded()

	if err := m.renameOrUpdate(id, attrs); err != nil {
		return err
	}
	return m.activate(id, m.applyToSettings)
}

// applyToSettings is the default ApplyFunc
func (m *Manager) applyToSettings(p models.Profile) error {
	if err := m.validator.ValidateForApply(p); err != nil {
		return &ValidationError{Field: "base_url", Message: err.Error()}
	}
	if err := m.writer.Apply(p); err != nil {
		return &PersistenceError{Op: "write settings", Path: m.writer.Path(), Err: err}
	}
	return nil
}

// Warnings returns advisory messages for a profile, such as an empty API key
func (m *Manager) Warnings(p models.Profile) []string {
	return m.validator.Warnings(p)
}

// DetectCurrent returns the first profile whose base URL matches the one
// currently configured in the settings file
func (m *Manager) DetectCurrent() (models.Profile, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ensureLoaded()

	baseURL, err := syncpkg.ReadCurrentBaseURL(m.settingsPath)
	if err != nil || baseURL == "" {
		return models.Profile{}, false
	}

	for _, p := range m.file.Profiles {
		if p.BaseURL == baseURL {
			return p, true
		}
	}
	return models.Profile{}, false
}

// RestoreSettings puts the settings backup written by the last Apply back in place
func (m *Manager) RestoreSettings() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := storage.RestoreBackup(m.settingsPath); err != nil {
		return &PersistenceError{Op: "restore", Path: m.settingsPath, Err: err}
	}
	return nil
}
