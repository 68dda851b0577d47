// Package bottombar renders the status line and the ':' command palette.
package bottombar

import (
	"strings"

	"github.com/charmbracelet/lipgloss/v2"
)

// Mode represents the UI mode that influences footer layout.
type Mode int

const (
	ModeNormal Mode = iota
	ModeText
	ModeForm
	ModeCommand
	ModeHelp
	ModeLocked
)

var modeNames = map[Mode]string{
	ModeNormal:  "NORMAL",
	ModeText:    "ADD",
	ModeForm:    "FORM",
	ModeCommand: "CMD",
	ModeHelp:    "HELP",
	ModeLocked:  "LOCKED",
}

func (m Mode) String() string { return modeNames[m] }

// CommandOption describes a command palette entry.
type CommandOption struct {
	Name        string
	Description string
}

// Model tracks footer/help/status rendering state.
type Model struct {
	mode            Mode
	helpLine        string
	statusLine      string
	busy            bool
	commandInput    string
	commandView     string
	commandOptions  []CommandOption
	filteredOptions []CommandOption
	maxSuggestions  int
}

var (
	modeStyle        = lipgloss.NewStyle().Bold(true)
	helpStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	statusStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	busyStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Italic(true)
	commandNameStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("212")).
				Bold(true)
	commandDescStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
)

// New returns a footer model with sensible defaults.
func New() Model {
	return Model{
		mode:           ModeNormal,
		maxSuggestions: 6,
	}
}

// Mode reports the current mode.
func (m Model) Mode() Mode {
	return m.mode
}

// SetMode updates the visual mode.
func (m *Model) SetMode(mode Mode) {
	if m.mode == mode {
		return
	}
	m.mode = mode
	if mode != ModeCommand {
		m.filteredOptions = nil
		m.commandInput = ""
		m.commandView = ""
	} else {
		m.filterSuggestions("")
	}
}

// SetHelp sets the contextual help line.
func (m *Model) SetHelp(help string) {
	m.helpLine = help
}

// SetStatus sets the status message to display.
func (m *Model) SetStatus(status string) {
	m.statusLine = status
}

// Status returns the current status message.
func (m Model) Status() string {
	return m.statusLine
}

// SetBusy shows or hides the in-flight parse indicator.
func (m *Model) SetBusy(busy bool) {
	m.busy = busy
}

// SetCommandDefinitions configures the available command palette entries.
func (m *Model) SetCommandDefinitions(cmds []CommandOption) {
	m.commandOptions = cmds
	m.filterSuggestions(m.commandInput)
}

// UpdateCommandInput refreshes the command palette filter and rendered line.
func (m *Model) UpdateCommandInput(value string, view string) {
	m.commandInput = value
	m.commandView = ":" + view
	m.filterSuggestions(value)
}

// Suggestions returns the palette entries matching the typed prefix.
func (m Model) Suggestions() []CommandOption {
	return m.filteredOptions
}

// View renders the footer string and reports lines consumed.
func (m Model) View() (string, int) {
	if m.mode == ModeCommand {
		return m.renderCommandMode()
	}
	return m.renderStatusLine(), 1
}

func (m Model) renderStatusLine() string {
	segments := []string{modeStyle.Render("[" + m.mode.String() + "]")}
	if m.busy {
		segments = append(segments, busyStyle.Render("parsing…"))
	}
	if m.statusLine != "" {
		segments = append(segments, statusStyle.Render(m.statusLine))
	}
	if m.helpLine != "" {
		segments = append(segments, helpStyle.Render(m.helpLine))
	}
	return strings.Join(segments, " │ ")
}

func (m Model) renderCommandMode() (string, int) {
	var lines []string
	if len(m.filteredOptions) == 0 && m.statusLine != "" {
		lines = append(lines, statusStyle.Render(m.statusLine))
	} else {
		limit := m.maxSuggestions
		if limit <= 0 || limit > len(m.filteredOptions) {
			limit = len(m.filteredOptions)
		}
		for _, opt := range m.filteredOptions[:limit] {
			name := commandNameStyle.Render(":" + opt.Name)
			if opt.Description == "" {
				lines = append(lines, name)
				continue
			}
			lines = append(lines, name+"  "+commandDescStyle.Render(opt.Description))
		}
	}
	commandLine := m.commandView
	if commandLine == "" {
		commandLine = ":"
	}
	lines = append(lines, commandLine)
	return strings.Join(lines, "\n"), len(lines)
}

func (m *Model) filterSuggestions(prefix string) {
	if m.mode != ModeCommand {
		m.filteredOptions = nil
		return
	}
	prefix = strings.ToLower(strings.TrimSpace(prefix))
	m.filteredOptions = m.filteredOptions[:0]
	for _, opt := range m.commandOptions {
		if prefix == "" || strings.HasPrefix(strings.ToLower(opt.Name), prefix) ||
			strings.HasPrefix(prefix, strings.ToLower(opt.Name)+" ") {
			m.filteredOptions = append(m.filteredOptions, opt)
		}
	}
}
