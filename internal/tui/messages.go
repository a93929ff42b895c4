package tui

import (
	"ccswitch/config/models"
)

// ProfilesLoadedMsg is sent when the store has been read
type ProfilesLoadedMsg struct {
	Store      *models.File
	DetectedID string // profile matching the live settings file, if any
	LoadErr    error
}

// ProfileCreatedMsg is sent when a profile is added
type ProfileCreatedMsg struct {
	Profile models.Profile
	Store   *models.File
	Err     error
}

// ProfileSavedMsg is sent when edited attributes have been stored
type ProfileSavedMsg struct {
	ID      string
	Name    string
	Applied bool // true for "apply & save"
	Store   *models.File
	Err     error
}

// ProfileAppliedMsg is sent when a profile has been written to the settings file
type ProfileAppliedMsg struct {
	ID    string
	Name  string
	Store *models.File
	Err   error
}

// ProfileDeletedMsg is sent when a profile is removed
type ProfileDeletedMsg struct {
	ID    string
	Store *models.File
	Err   error
}
