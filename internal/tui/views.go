package tui

import (
	"fmt"
	"strconv"
	"strings"

	"ccswitch/config/models"
	"ccswitch/internal/utils"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
)

// Styles for the TUI
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("229")).
			Background(lipgloss.Color("57")).
			Bold(true)

	activeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")).
			Bold(true)

	activeSelectedStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("42")).
				Background(lipgloss.Color("57")).
				Bold(true)

	normalStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	messageStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42"))

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	helpKeyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205"))

	separatorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("238"))
)

// Detail panel styles
var (
	detailLabelStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("241")).
				Width(14)

	detailValueStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("252"))

	detailMaskedStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("243"))
)

// RenderMainView renders the profile list and the selected profile's details
func (m Model) RenderMainView() string {
	var b strings.Builder
	width := m.getEffectiveWidth(40)

	b.WriteString(titleStyle.Render("Claude Code Profiles"))
	b.WriteString("\n")
	b.WriteString(separatorStyle.Render(strings.Repeat("─", width)))
	b.WriteString("\n\n")

	if len(m.store.Profiles) == 0 {
		b.WriteString(dimStyle.Render("No profiles, press 'a' to add one"))
		b.WriteString("\n")
	} else {
		visibleHeight := m.getVisibleListHeight()
		startIdx := m.scrollOffset
		endIdx := startIdx + visibleHeight
		if endIdx > len(m.store.Profiles) {
			endIdx = len(m.store.Profiles)
		}

		if startIdx > 0 {
			b.WriteString(dimStyle.Render(fmt.Sprintf("  ↑ %d more...", startIdx)))
			b.WriteString("\n")
		}
		for i := startIdx; i < endIdx; i++ {
			b.WriteString(m.renderProfileLine(i, m.store.Profiles[i]))
			b.WriteString("\n")
		}
		if endIdx < len(m.store.Profiles) {
			b.WriteString(dimStyle.Render(fmt.Sprintf("  ↓ %d more...", len(m.store.Profiles)-endIdx)))
			b.WriteString("\n")
		}

		if p, ok := m.session.Selected(m.store); ok {
			b.WriteString("\n")
			b.WriteString(m.renderDetails(p))
		}
	}

	b.WriteString("\n")
	b.WriteString(separatorStyle.Render(strings.Repeat("─", width)))
	b.WriteString("\n")
	b.WriteString(m.RenderStatusBar())

	return b.String()
}

// getEffectiveWidth returns the effective width for rendering, with a minimum and maximum
func (m Model) getEffectiveWidth(defaultWidth int) int {
	if m.width <= 0 {
		return defaultWidth
	}
	maxWidth := 80
	if m.width < maxWidth {
		return m.width - 2
	}
	return maxWidth
}

// renderProfileLine renders a single profile line in the list
func (m Model) renderProfileLine(index int, p models.Profile) string {
	isSelected := index == m.cursor
	isActive := p.ID == m.store.ActiveID()

	cursor := "  "
	if isSelected {
		cursor = "> "
	}
	activeMarker := "  "
	if isActive {
		activeMarker = "* "
	}

	hostInfo := ""
	if p.BaseURL != "" {
		hostInfo = fmt.Sprintf(" (%s)", m.truncateText(utils.DisplayHost(p.BaseURL), 30))
	}

	content := fmt.Sprintf("%s%s%s%s", cursor, activeMarker, p.Name, hostInfo)

	switch {
	case isSelected && isActive:
		return activeSelectedStyle.Render(content)
	case isSelected:
		return selectedStyle.Render(content)
	case isActive:
		return activeStyle.Render(content)
	default:
		return normalStyle.Render(content)
	}
}

// renderDetails renders the fields of the selected profile
func (m Model) renderDetails(p models.Profile) string {
	var b strings.Builder
	width := m.getEffectiveWidth(40)

	row := func(label, value string, style lipgloss.Style) {
		b.WriteString(detailLabelStyle.Render(label))
		b.WriteString(style.Render(m.truncateText(value, width-16)))
		b.WriteString("\n")
	}

	row("Base URL:", orDash(p.BaseURL), detailValueStyle)
	if m.session.ShowKey {
		row("API Key:", orDash(p.APIKey), detailValueStyle)
	} else {
		row("API Key:", maskKey(p.APIKey), detailMaskedStyle)
	}
	row("Timeout:", strconv.Itoa(p.TimeoutMS)+" ms", detailValueStyle)
	for _, tier := range models.Tiers {
		row(strings.ToUpper(tier[:1])+tier[1:]+":", orDefault(p.ModelMappings.Get(tier)), detailValueStyle)
	}

	if m.manager == nil {
		return b.String()
	}
	for _, w := range m.manager.Warnings(p) {
		b.WriteString(warningStyle.Render("⚠ " + w))
		b.WriteString("\n")
	}

	return b.String()
}

// truncateText shortens text to maxWidth runes with an ellipsis
func (m Model) truncateText(text string, maxWidth int) string {
	if maxWidth < 4 {
		maxWidth = 4
	}
	runes := []rune(text)
	if len(runes) <= maxWidth {
		return text
	}
	return string(runes[:maxWidth-3]) + "..."
}

// RenderFormView renders the edit form
func (m Model) RenderFormView() string {
	title := "Edit Profile"
	if p, ok := m.session.Selected(m.store); ok && p.ID == m.editingID {
		title = "Edit Profile: " + p.Name
	}
	return RenderForm(m.formInputs, m.formFocus, title, m.errorMsg, renderHints(m.keys.FormHelp()))
}

// RenderDeleteConfirm renders the delete confirmation dialog
func (m Model) RenderDeleteConfirm() string {
	var b strings.Builder
	width := m.getEffectiveWidth(40)

	b.WriteString(titleStyle.Render("Delete Profile"))
	b.WriteString("\n")
	b.WriteString(separatorStyle.Render(strings.Repeat("─", width)))
	b.WriteString("\n\n")

	if p, ok := m.session.Selected(m.store); ok {
		b.WriteString(errorStyle.Render("⚠ This cannot be undone"))
		b.WriteString("\n\n")
		b.WriteString(normalStyle.Render("Delete profile: "))
		b.WriteString(selectedStyle.Render(p.Name))
		b.WriteString("\n\n")

		if p.ID == m.store.ActiveID() {
			b.WriteString(errorStyle.Render("This is the active profile"))
			b.WriteString("\n\n")
		}
		if p.BaseURL != "" {
			b.WriteString(dimStyle.Render("Base URL: " + m.truncateText(p.BaseURL, width-12)))
			b.WriteString("\n")
		}
	} else {
		b.WriteString(errorStyle.Render("No profile selected"))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(separatorStyle.Render(strings.Repeat("─", width)))
	b.WriteString("\n")
	b.WriteString(renderHints([]key.Binding{m.keys.ConfirmYes, m.keys.ConfirmNo}))

	return b.String()
}

// RenderHelpView renders all key bindings
func (m Model) RenderHelpView() string {
	var b strings.Builder
	width := m.getEffectiveWidth(40)

	b.WriteString(titleStyle.Render("Help"))
	b.WriteString("\n")
	b.WriteString(separatorStyle.Render(strings.Repeat("─", width)))
	b.WriteString("\n\n")

	for _, group := range m.keys.FullHelp() {
		for _, binding := range group {
			b.WriteString(renderHelpLine(binding.Help().Key, binding.Help().Desc))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	b.WriteString(separatorStyle.Render(strings.Repeat("─", width)))
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("esc/q: close"))

	return b.String()
}

func renderHelpLine(keyName, desc string) string {
	return fmt.Sprintf("  %s %s", helpKeyStyle.Width(14).Render(keyName), helpStyle.Render(desc))
}

// RenderStatusBar renders errors, the session status and shortcut hints
func (m Model) RenderStatusBar() string {
	var b strings.Builder

	if m.errorMsg != "" {
		b.WriteString(errorStyle.Render("✗ " + m.errorMsg))
		b.WriteString("\n")
	}
	if m.session.Status != "" {
		b.WriteString(messageStyle.Render(m.session.Status))
		b.WriteString("\n")
	}
	if m.errorMsg != "" || m.session.Status != "" {
		b.WriteString("\n")
	}

	b.WriteString(renderHints(m.keys.ShortHelp()))

	return b.String()
}

// renderHints joins key bindings into a single hint line
func renderHints(bindings []key.Binding) string {
	hints := make([]string, 0, len(bindings))
	for _, k := range bindings {
		hints = append(hints, fmt.Sprintf("%s %s", helpKeyStyle.Render(k.Help().Key), helpStyle.Render(k.Help().Desc)))
	}
	return strings.Join(hints, helpStyle.Render(" │ "))
}

func maskKey(s string) string {
	if s == "" {
		return "(empty)"
	}
	return utils.MaskAPIKey(s)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func orDefault(s string) string {
	if s == "" {
		return "(default)"
	}
	return s
}
