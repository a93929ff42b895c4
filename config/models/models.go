package models

// DefaultTimeoutMS is used when a profile has no usable timeout
const DefaultTimeoutMS = 3000000

// Model tiers that can be remapped to provider-specific names
const (
	TierHaiku  = "haiku"
	TierSonnet = "sonnet"
	TierOpus   = "opus"
)

// Tiers lists the remappable tiers in display order
var Tiers = []string{TierHaiku, TierSonnet, TierOpus}

// ModelMappings maps each tier to a provider model name. An empty value means no override.
type ModelMappings struct {
	Haiku  string `json:"haiku"`
	Sonnet string `json:"sonnet"`
	Opus   string `json:"opus"`
}

// Get returns the override for a tier
func (m ModelMappings) Get(tier string) string {
	switch tier {
	case TierHaiku:
		return m.Haiku
	case TierSonnet:
		return m.Sonnet
	case TierOpus:
		return m.Opus
	}
	return ""
}

// Set stores the override for a tier; unknown tiers are ignored
func (m *ModelMappings) Set(tier, model string) {
	switch tier {
	case TierHaiku:
		m.Haiku = model
	case TierSonnet:
		m.Sonnet = model
	case TierOpus:
		m.Opus = model
	}
}

// Attributes are the user-editable fields of a profile
type Attributes struct {
	Name          string        `json:"name"`
	BaseURL       string        `json:"base_url"`
	APIKey        string        `json:"api_key"`
	TimeoutMS     int           `json:"timeout"`
	ModelMappings ModelMappings `json:"model_mappings"`
}

// Profile is one saved connection configuration
type Profile struct {
	ID string `json:"id"`
	Attributes
}

// File represents the structure of the profile store file
type File struct {
	Profiles        []Profile `json:"profiles"`
	ActiveProfileID *string   `json:"active_profile_id"`
}

// ActiveID returns the active profile id, or "" when none is active
func (f *File) ActiveID() string {
	if f.ActiveProfileID == nil {
		return ""
	}
	return *f.ActiveProfileID
}

// SetActiveID marks id as active; an empty id clears the selection
func (f *File) SetActiveID(id string) {
	if id == "" {
		f.ActiveProfileID = nil
		return
	}
	f.ActiveProfileID = &id
}

// IndexOf returns the position of the profile with the given id, or -1
func (f *File) IndexOf(id string) int {
	for i := range f.Profiles {
		if f.Profiles[i].ID == id {
			return i
		}
	}
	return -1
}

// Clone returns a deep copy of the document
func (f *File) Clone() *File {
	c := &File{Profiles: make([]Profile, len(f.Profiles))}
	copy(c.Profiles, f.Profiles)
	c.SetActiveID(f.ActiveID())
	return c
}
