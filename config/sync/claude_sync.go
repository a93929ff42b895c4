// Package sync translates profiles into Claude Code settings documents and
// writes them to disk.
package sync

import (
	"fmt"
	"io"
	"log"
	"os"
	"strconv"

	"ccswitch/config/models"
	"ccswitch/config/storage"

	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"
	"github.com/tidwall/sjson"
)

// Environment variables written into the settings "env" object
const (
	EnvBaseURL          = "ANTHROPIC_BASE_URL"
	EnvAuthToken        = "ANTHROPIC_AUTH_TOKEN"
	EnvTimeout          = "API_TIMEOUT_MS"
	EnvDisableTraffic   = "CLAUDE_CODE_DISABLE_NONESSENTIAL_TRAFFIC"
	EnvHaikuModel       = "ANTHROPIC_DEFAULT_HAIKU_MODEL"
	EnvSonnetModel      = "ANTHROPIC_DEFAULT_SONNET_MODEL"
	EnvOpusModel        = "ANTHROPIC_DEFAULT_OPUS_MODEL"
	settingsPermissions = 0600
)

// tierEnv maps each model tier to its override variable
var tierEnv = map[string]string{
	models.TierHaiku:  EnvHaikuModel,
	models.TierSonnet: EnvSonnetModel,
	models.TierOpus:   EnvOpusModel,
}

// ManagedEnvKeys lists every env key owned by a profile, in write order
var ManagedEnvKeys = []string{
	EnvBaseURL,
	EnvAuthToken,
	EnvTimeout,
	EnvDisableTraffic,
	EnvHaikuModel,
	EnvSonnetModel,
	EnvOpusModel,
}

// Options controls how the settings file is written
type Options struct {
	// Merge keeps unrelated keys of an existing settings file and replaces only managed env keys
	Merge bool
}

// BuildSettings returns the settings document for p. It has no side effects.
func BuildSettings(p models.Profile) ([]byte, error) {
	doc, err := setEnv([]byte(`{}`), p)
	if err != nil {
		return nil, err
	}
	return pretty.Pretty(doc), nil
}

// MergeSettings rewrites the managed env keys of an existing settings document,
// leaving every other key untouched. Tiers without an override are removed.
func MergeSettings(existing []byte, p models.Profile) ([]byte, error) {
	if !gjson.ValidBytes(existing) || !gjson.ParseBytes(existing).IsObject() {
		return nil, fmt.Errorf("existing settings are not a JSON object")
	}

	doc := existing
	if env := gjson.GetBytes(doc, "env"); env.Exists() && !env.IsObject() {
		var err error
		doc, err = sjson.SetRawBytes(doc, "env", []byte(`{}`))
		if err != nil {
			return nil, fmt.Errorf("failed to reset env field: %w", err)
		}
	}

	doc, err := setEnv(doc, p)
	if err != nil {
		return nil, err
	}
	return pretty.Pretty(doc), nil
}

// setEnv writes the managed env keys of p into doc
func setEnv(doc []byte, p models.Profile) ([]byte, error) {
	timeout := p.TimeoutMS
	if timeout <= 0 {
		timeout = models.DefaultTimeoutMS
	}

	values := []struct {
		key   string
		value interface{}
	}{
		{EnvBaseURL, p.BaseURL},
		{EnvAuthToken, p.APIKey},
		{EnvTimeout, strconv.Itoa(timeout)},
		{EnvDisableTraffic, 1},
	}

	var err error
	for _, v := range values {
		doc, err = sjson.SetBytes(doc, "env."+v.key, v.value)
		if err != nil {
			return nil, fmt.Errorf("failed to set %s: %w", v.key, err)
		}
	}

	for _, tier := range models.Tiers {
		key := tierEnv[tier]
		if model := p.ModelMappings.Get(tier); model != "" {
			doc, err = sjson.SetBytes(doc, "env."+key, model)
		} else {
			doc, err = sjson.DeleteBytes(doc, "env."+key)
		}
		if err != nil {
			return nil, fmt.Errorf("failed to set %s: %w", key, err)
		}
	}

	return doc, nil
}

// ReadCurrentBaseURL returns env.ANTHROPIC_BASE_URL of the settings file at path
func ReadCurrentBaseURL(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	if !gjson.ValidBytes(data) {
		return "", fmt.Errorf("settings file %s is not valid JSON", path)
	}
	return gjson.GetBytes(data, "env."+EnvBaseURL).String(), nil
}

// Writer applies profiles to a Claude Code settings file
type Writer struct {
	path   string
	opts   Options
	logger *log.Logger
}

// NewWriter creates a Writer for the settings file at path. A nil logger discards warnings.
func NewWriter(path string, opts Options, logger *log.Logger) *Writer {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Writer{path: path, opts: opts, logger: logger}
}

// Path returns the settings file path
func (w *Writer) Path() string {
	return w.path
}

// Apply writes the settings document for p. An existing file is first copied to
// its .backup sibling; a failed backup is logged and does not stop the write.
// The permissions of an existing file are kept.
func (w *Writer) Apply(p models.Profile) error {
	data, err := w.render(p)
	if err != nil {
		return err
	}

	if _, err := storage.CreateBackup(w.path); err != nil {
		w.logger.Printf("⚠️  Failed to back up %s: %v", w.path, err)
	}

	perm := os.FileMode(settingsPermissions)
	if info, err := os.Stat(w.path); err == nil {
		perm = info.Mode().Perm()
	}

	if err := storage.AtomicWrite(w.path, data, perm); err != nil {
		return err
	}

	return nil
}

// render builds the document to write, merging into the existing file when requested
func (w *Writer) render(p models.Profile) ([]byte, error) {
	if !w.opts.Merge {
		return BuildSettings(p)
	}

	existing, err := os.ReadFile(w.path)
	if err != nil {
		if !os.IsNotExist(err) {
			w.logger.Printf("⚠️  Failed to read %s, writing a fresh settings file: %v", w.path, err)
		}
		return BuildSettings(p)
	}

	merged, err := MergeSettings(existing, p)
	if err != nil {
		w.logger.Printf("⚠️  Cannot merge into %s, writing a fresh settings file: %v", w.path, err)
		return BuildSettings(p)
	}
	return merged, nil
}
