package validation

import (
	"fmt"
	"strings"

	"ccswitch/config/models"
	"ccswitch/internal/utils"
)

// Validator validates profiles
type Validator struct {
}

// NewValidator creates a new Validator
func NewValidator() *Validator {
	return &Validator{}
}

// ValidateName checks that a profile name is usable
func (v *Validator) ValidateName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("name cannot be empty")
	}
	return nil
}

// ValidateForApply checks the fields required to write a profile into Claude Code settings
func (v *Validator) ValidateForApply(p models.Profile) error {
	if strings.TrimSpace(p.BaseURL) == "" {
		return fmt.Errorf("base URL cannot be empty")
	}
	return nil
}

// Warnings returns advisory messages that never block an operation
func (v *Validator) Warnings(p models.Profile) []string {
	var warnings []string
	if strings.TrimSpace(p.APIKey) == "" {
		warnings = append(warnings, "API key is empty; Claude Code may fall back to its environment")
	}
	if p.BaseURL != "" && !utils.ValidateURL(p.BaseURL) {
		warnings = append(warnings, fmt.Sprintf("base URL %q does not look like an http(s) URL", p.BaseURL))
	}
	return warnings
}
