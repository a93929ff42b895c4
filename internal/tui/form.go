// Package tui provides a terminal user interface for ccswitch
package tui

import (
	"errors"
	"strconv"
	"strings"

	"ccswitch/config/models"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"
)

// FormField represents the index of each form field
const (
	FormFieldName = iota
	FormFieldBaseURL
	FormFieldAPIKey
	FormFieldTimeout
	FormFieldHaiku
	FormFieldSonnet
	FormFieldOpus
	FormFieldCount // Total number of fields
)

// FormData represents the raw values typed into the form
type FormData struct {
	Name    string
	BaseURL string
	APIKey  string
	Timeout string
	Haiku   string
	Sonnet  string
	Opus    string
}

// FormDataFrom fills the form values from a stored profile
func FormDataFrom(p models.Profile) FormData {
	return FormData{
		Name:    p.Name,
		BaseURL: p.BaseURL,
		APIKey:  p.APIKey,
		Timeout: strconv.Itoa(p.TimeoutMS),
		Haiku:   p.ModelMappings.Haiku,
		Sonnet:  p.ModelMappings.Sonnet,
		Opus:    p.ModelMappings.Opus,
	}
}

// Attributes converts the form values into profile attributes.
// An empty timeout means the default.
func (f FormData) Attributes() (models.Attributes, error) {
	if strings.TrimSpace(f.Name) == "" {
		return models.Attributes{}, errors.New("name cannot be empty")
	}

	timeout := models.DefaultTimeoutMS
	if raw := strings.TrimSpace(f.Timeout); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			return models.Attributes{}, errors.New("timeout must be a positive number of milliseconds")
		}
		timeout = n
	}

	return models.Attributes{
		Name:      strings.TrimSpace(f.Name),
		BaseURL:   strings.TrimSpace(f.BaseURL),
		APIKey:    strings.TrimSpace(f.APIKey),
		TimeoutMS: timeout,
		ModelMappings: models.ModelMappings{
			Haiku:  strings.TrimSpace(f.Haiku),
			Sonnet: strings.TrimSpace(f.Sonnet),
			Opus:   strings.TrimSpace(f.Opus),
		},
	}, nil
}

// Form styles
var (
	formLabelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Width(14)

	formFocusedStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("205")).
				Bold(true).
				Width(14)

	formErrorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	formHintStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true)
)

// FormInputs creates and initializes form input fields
func FormInputs() []textinput.Model {
	inputs := make([]textinput.Model, FormFieldCount)

	placeholders := []string{
		FormFieldName:    "Profile name",
		FormFieldBaseURL: "https://api.example.com",
		FormFieldAPIKey:  "sk-...",
		FormFieldTimeout: strconv.Itoa(models.DefaultTimeoutMS),
		FormFieldHaiku:   "default",
		FormFieldSonnet:  "default",
		FormFieldOpus:    "default",
	}
	for i := range inputs {
		inputs[i] = textinput.New()
		inputs[i].Placeholder = placeholders[i]
		inputs[i].CharLimit = 0 // stored values are loaded untruncated
		inputs[i].Width = 40
		inputs[i].Prompt = ""
	}

	inputs[FormFieldTimeout].CharLimit = 10
	inputs[FormFieldAPIKey].EchoMode = textinput.EchoPassword
	inputs[FormFieldAPIKey].EchoCharacter = '•'

	// Focus the first input
	inputs[FormFieldName].Focus()

	return inputs
}

// GetFormData extracts FormData from form inputs
func GetFormData(inputs []textinput.Model) FormData {
	return FormData{
		Name:    inputs[FormFieldName].Value(),
		BaseURL: inputs[FormFieldBaseURL].Value(),
		APIKey:  inputs[FormFieldAPIKey].Value(),
		Timeout: inputs[FormFieldTimeout].Value(),
		Haiku:   inputs[FormFieldHaiku].Value(),
		Sonnet:  inputs[FormFieldSonnet].Value(),
		Opus:    inputs[FormFieldOpus].Value(),
	}
}

// SetFormData populates form inputs with existing data
func SetFormData(inputs []textinput.Model, data FormData) {
	inputs[FormFieldName].SetValue(data.Name)
	inputs[FormFieldBaseURL].SetValue(data.BaseURL)
	inputs[FormFieldAPIKey].SetValue(data.APIKey)
	inputs[FormFieldTimeout].SetValue(data.Timeout)
	inputs[FormFieldHaiku].SetValue(data.Haiku)
	inputs[FormFieldSonnet].SetValue(data.Sonnet)
	inputs[FormFieldOpus].SetValue(data.Opus)
}

// SetKeyVisible switches the API key field between masked and plain echo
func SetKeyVisible(inputs []textinput.Model, visible bool) {
	if visible {
		inputs[FormFieldAPIKey].EchoMode = textinput.EchoNormal
		return
	}
	inputs[FormFieldTimeout].CharLimit = 10
	inputs[FormFieldAPIKey].EchoMode = textinput.EchoPassword
}

// FormLabels returns the labels for each form field
func FormLabels() []string {
	return []string{
		"Name:",
		"Base URL:",
		"API Key:",
		"Timeout (ms):",
		"Haiku model:",
		"Sonnet model:",
		"Opus model:",
	}
}

// FormHints returns the hint text for each form field
func FormHints() []string {
	return []string{
		"Unique display name",
		"Endpoint written to ANTHROPIC_BASE_URL (required to apply)",
		"Written to ANTHROPIC_AUTH_TOKEN",
		"Request timeout, empty for the default",
		"Override for the haiku tier (optional)",
		"Override for the sonnet tier (optional)",
		"Override for the opus tier (optional)",
	}
}

// RenderForm renders the form view with inputs
func RenderForm(inputs []textinput.Model, focusIndex int, title string, errorMsg string, footer string) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n")
	b.WriteString(separatorStyle.Render(strings.Repeat("─", 50)))
	b.WriteString("\n\n")

	labels := FormLabels()
	hints := FormHints()

	for i, input := range inputs {
		if i == focusIndex {
			b.WriteString(formFocusedStyle.Render(labels[i]))
		} else {
			b.WriteString(formLabelStyle.Render(labels[i]))
		}
		b.WriteString(" ")
		b.WriteString(input.View())
		b.WriteString("\n")

		// Hint (only show for focused field)
		if i == focusIndex {
			b.WriteString(formLabelStyle.Render(""))
			b.WriteString(" ")
			b.WriteString(formHintStyle.Render(hints[i]))
			b.WriteString("\n")
		}
	}

	if errorMsg != "" {
		b.WriteString("\n")
		b.WriteString(formErrorStyle.Render("✗ " + errorMsg))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(separatorStyle.Render(strings.Repeat("─", 50)))
	b.WriteString("\n")
	b.WriteString(footer)

	return b.String()
}

// NextFormField moves focus to the next form field
func NextFormField(inputs []textinput.Model, currentFocus int) int {
	inputs[currentFocus].Blur()
	nextFocus := (currentFocus + 1) % len(inputs)
	inputs[nextFocus].Focus()
	return nextFocus
}

// PrevFormField moves focus to the previous form field
func PrevFormField(inputs []textinput.Model, currentFocus int) int {
	inputs[currentFocus].Blur()
	prevFocus := currentFocus - 1
	if prevFocus < 0 {
		prevFocus = len(inputs) - 1
	}
	inputs[prevFocus].Focus()
	return prevFocus
}
