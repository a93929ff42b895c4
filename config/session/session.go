// Package session holds the state of one editing session in a presentation
// shell: which profile is selected, whether the API key is revealed, and the
// status line. Transitions are pure; the profile store never sees this state.
package session

import (
	"ccswitch/config/models"
)

// State is the UI session state passed into and out of store operations
type State struct {
	SelectedID string
	ShowKey    bool
	Status     string
}

// Initial picks the starting selection: the profile detected in the settings
// file, else the active profile, else the first one
func Initial(store *models.File, detectedID string) State {
	switch {
	case detectedID != "" && store.IndexOf(detectedID) >= 0:
		return State{SelectedID: detectedID, Status: "Current: " + nameOf(store, detectedID)}
	case store.ActiveID() != "":
		return State{SelectedID: store.ActiveID(), Status: "Active: " + nameOf(store, store.ActiveID())}
	case len(store.Profiles) > 0:
		return State{SelectedID: store.Profiles[0].ID, Status: "Selected: " + store.Profiles[0].Name}
	default:
		return State{Status: "No profiles yet, add one to get started"}
	}
}

// Select moves the selection to id; the key is hidden again
func (s State) Select(store *models.File, id string) State {
	if store.IndexOf(id) < 0 {
		return s
	}
	s.SelectedID = id
	s.ShowKey = false
	s.Status = "Selected: " + nameOf(store, id)
	return s
}

// AfterCreate selects a freshly created profile
func (s State) AfterCreate(p models.Profile) State {
	s.SelectedID = p.ID
	s.ShowKey = false
	s.Status = "Created: " + p.Name
	return s
}

// AfterDelete selects the first remaining profile, or nothing
func (s State) AfterDelete(store *models.File) State {
	s.ShowKey = false
	s.Status = "Profile deleted"
	if len(store.Profiles) == 0 {
		s.SelectedID = ""
		return s
	}
	s.SelectedID = store.Profiles[0].ID
	return s
}

// ToggleKey flips API key visibility
func (s State) ToggleKey() State {
	s.ShowKey = !s.ShowKey
	return s
}

// WithStatus replaces the status line
func (s State) WithStatus(status string) State {
	s.Status = status
	return s
}

// Selected returns the selected profile, if it still exists
func (s State) Selected(store *models.File) (models.Profile, bool) {
	idx := store.IndexOf(s.SelectedID)
	if idx < 0 {
		return models.Profile{}, false
	}
	return store.Profiles[idx], true
}

func nameOf(store *models.File, id string) string {
	if idx := store.IndexOf(id); idx >= 0 {
		return store.Profiles[idx].Name
	}
	return ""
}
