package session

import (
	"testing"

	"ccswitch/config/models"
)

func testStore(active string) *models.File {
	f := &models.File{Profiles: []models.Profile{
		{ID: "a", Attributes: models.Attributes{Name: "Alpha", BaseURL: "https://a"}},
		{ID: "b", Attributes: models.Attributes{Name: "Beta", BaseURL: "https://b"}},
	}}
	f.SetActiveID(active)
	return f
}

func TestInitial(t *testing.T) {
	tests := []struct {
		name       string
		store      *models.File
		detectedID string
		wantID     string
		wantStatus string
	}{
		{name: "detected profile wins", store: testStore("a"), detectedID: "b", wantID: "b", wantStatus: "Current: Beta"},
		{name: "unknown detected id is ignored", store: testStore("a"), detectedID: "zzz", wantID: "a", wantStatus: "Active: Alpha"},
		{name: "first profile without active", store: testStore(""), wantID: "a", wantStatus: "Selected: Alpha"},
		{name: "empty store", store: &models.File{}, wantID: "", wantStatus: "No profiles yet, add one to get started"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Initial(tt.store, tt.detectedID)
			if s.SelectedID != tt.wantID {
				t.Errorf("SelectedID = %q, want %q", s.SelectedID, tt.wantID)
			}
			if s.Status != tt.wantStatus {
				t.Errorf("Status = %q, want %q", s.Status, tt.wantStatus)
			}
			if s.ShowKey {
				t.Error("ShowKey = true, want the key hidden initially")
			}
		})
	}
}

func TestSelectHidesKey(t *testing.T) {
	store := testStore("")
	s := Initial(store, "").ToggleKey()
	if !s.ShowKey {
		t.Fatal("ToggleKey() did not reveal the key")
	}

	s = s.Select(store, "b")
	if s.SelectedID != "b" || s.ShowKey {
		t.Errorf("Select() = %+v, want b selected with the key hidden", s)
	}

	unchanged := s.Select(store, "missing")
	if unchanged != s {
		t.Errorf("Select() of an unknown id changed state to %+v", unchanged)
	}
}

func TestAfterCreateAndDelete(t *testing.T) {
	store := testStore("a")
	s := Initial(store, "")

	created := models.Profile{ID: "c", Attributes: models.Attributes{Name: "Gamma"}}
	s = s.AfterCreate(created)
	if s.SelectedID != "c" || s.Status != "Created: Gamma" {
		t.Errorf("AfterCreate() = %+v", s)
	}

	store.Profiles = store.Profiles[1:]
	s = s.AfterDelete(store)
	if s.SelectedID != "b" || s.Status != "Profile deleted" {
		t.Errorf("AfterDelete() = %+v, want b selected", s)
	}

	s = s.AfterDelete(&models.File{})
	if s.SelectedID != "" {
		t.Errorf("AfterDelete() on an empty store selected %q", s.SelectedID)
	}
}

func TestSelected(t *testing.T) {
	store := testStore("")
	s := State{SelectedID: "b"}

	p, ok := s.Selected(store)
	if !ok || p.Name != "Beta" {
		t.Errorf("Selected() = %v, %v; want Beta", p.Name, ok)
	}

	if _, ok := s.WithStatus("x").Selected(&models.File{}); ok {
		t.Error("Selected() found a profile in an empty store")
	}
}
