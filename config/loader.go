package config

import (
	"fmt"
	"strconv"
	"strings"

	"ccswitch/config/models"

	"github.com/tidwall/gjson"
)

// Accepted keys per profile field, tried in priority order
var (
	nameKeys          = []string{"name"}
	idKeys            = []string{"id"}
	baseURLKeys       = []string{"base_url", "baseUrl", "baseURL"}
	apiKeyKeys        = []string{"api_key", "apiKey", "key"}
	timeoutKeys       = []string{"timeout", "timeout_ms", "timeoutMs"}
	modelMappingsKeys = []string{"model_mappings", "modelMappings", "models"}
)

// decodeResult is a parsed store document plus what had to be fixed to get it
type decodeResult struct {
	file *models.File
	// migrated is set when the input was in the legacy name->attributes shape
	migrated bool
	// repaired is set when ids, names or the active id were fixed up
	repaired bool
}

// decodeStore parses the store file contents in either the current or the legacy shape
func decodeStore(data []byte, newID func() string) (*decodeResult, error) {
	if strings.TrimSpace(string(data)) == "" {
		return nil, fmt.Errorf("store file is empty")
	}
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("store file is not valid JSON")
	}

	root := gjson.ParseBytes(data)
	if !root.IsObject() {
		return nil, fmt.Errorf("store file is not a JSON object")
	}

	// A legacy store may hold a profile literally named "profiles", which is an object
	if root.Get("profiles").IsArray() {
		return decodeCurrent(root, newID), nil
	}

	return decodeLegacy(root, newID), nil
}

// decodeCurrent reads {"profiles": [...], "active_profile_id": ...}
func decodeCurrent(root gjson.Result, newID func() string) *decodeResult {
	res := &decodeResult{file: &models.File{Profiles: []models.Profile{}}}
	seenIDs := make(map[string]bool)

	for _, entry := range root.Get("profiles").Array() {
		if !entry.IsObject() {
			res.repaired = true
			continue
		}

		p := decodeProfile(entry, firstOf(entry, nameKeys).String())

		p.ID = strings.TrimSpace(firstOf(entry, idKeys).String())
		if p.ID == "" || seenIDs[p.ID] {
			p.ID = newID()
			res.repaired = true
		}
		seenIDs[p.ID] = true

		name := uniqueName(res.file, p.Name, "")
		if name != p.Name {
			p.Name = name
			res.repaired = true
		}

		res.file.Profiles = append(res.file.Profiles, p)
	}

	active := root.Get("active_profile_id")
	if active.Type == gjson.String && active.Str != "" {
		if res.file.IndexOf(active.Str) >= 0 {
			res.file.SetActiveID(active.Str)
		} else {
			res.repaired = true
		}
	}

	return res
}

// decodeLegacy reads {"<name>": {attributes}, ...}. Every entry gets a fresh id
// and the first migrated profile becomes active.
func decodeLegacy(root gjson.Result, newID func() string) *decodeResult {
	res := &decodeResult{file: &models.File{Profiles: []models.Profile{}}, migrated: true}

	root.ForEach(func(key, value gjson.Result) bool {
		if !value.IsObject() {
			return true
		}

		p := decodeProfile(value, key.String())
		p.ID = newID()
		p.Name = uniqueName(res.file, p.Name, "")
		res.file.Profiles = append(res.file.Profiles, p)
		return true
	})

	if len(res.file.Profiles) > 0 {
		res.file.SetActiveID(res.file.Profiles[0].ID)
	}

	return res
}

// decodeProfile reads the attributes of a single profile object
func decodeProfile(obj gjson.Result, name string) models.Profile {
	p := models.Profile{
		Attributes: models.Attributes{
			Name:      strings.TrimSpace(name),
			BaseURL:   firstOf(obj, baseURLKeys).String(),
			APIKey:    firstOf(obj, apiKeyKeys).String(),
			TimeoutMS: parseTimeout(firstOf(obj, timeoutKeys)),
		},
	}
	if p.Name == "" {
		p.Name = DefaultNewProfileName
	}

	if mappings := firstOf(obj, modelMappingsKeys); mappings.IsObject() {
		for _, tier := range models.Tiers {
			p.ModelMappings.Set(tier, mappings.Get(tier).String())
		}
	}

	return p
}

// firstOf returns the value of the first key present in obj
func firstOf(obj gjson.Result, keys []string) gjson.Result {
	for _, key := range keys {
		if r := obj.Get(key); r.Exists() {
			return r
		}
	}
	return gjson.Result{}
}

// parseTimeout accepts numbers and numeric strings; anything else yields the default
func parseTimeout(r gjson.Result) int {
	var timeout int
	switch r.Type {
	case gjson.Number:
		timeout = int(r.Int())
	case gjson.String:
		n, err := strconv.Atoi(strings.TrimSpace(r.Str))
		if err != nil {
			return models.DefaultTimeoutMS
		}
		timeout = n
	default:
		return models.DefaultTimeoutMS
	}

	if timeout <= 0 {
		return models.DefaultTimeoutMS
	}
	return timeout
}

// uniqueName returns base, or base with " 2", " 3", ... appended until no profile
// other than ignoreID uses it
func uniqueName(f *models.File, base, ignoreID string) string {
	if !nameTaken(f, base, ignoreID) {
		return base
	}
	for n := 2; ; n++ {
		candidate := fmt.Sprintf("%s %d", base, n)
		if !nameTaken(f, candidate, ignoreID) {
			return candidate
		}
	}
}

// nameTaken reports whether a profile other than ignoreID is called name
func nameTaken(f *models.File, name, ignoreID string) bool {
	for _, p := range f.Profiles {
		if p.Name == name && p.ID != ignoreID {
			return true
		}
	}
	return false
}
