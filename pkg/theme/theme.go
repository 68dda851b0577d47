// Package theme resolves the light/dark preference and the styles the
// terminal calendar draws with.
package theme

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss/v2"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/muesli/termenv"

	"tableflip.dev/lumina/pkg/task"
)

// Mode is the persisted theme preference.
type Mode string

const (
	Light  Mode = "light"
	Dark   Mode = "dark"
	System Mode = "system"
)

// Modes lists the accepted preferences.
func Modes() []Mode {
	return []Mode{Light, Dark, System}
}

// ParseMode reads a preference. An empty string is System.
func ParseMode(raw string) (Mode, error) {
	m := Mode(strings.ToLower(strings.TrimSpace(raw)))
	if m == "" {
		return System, nil
	}
	for _, candidate := range Modes() {
		if m == candidate {
			return m, nil
		}
	}
	return System, fmt.Errorf("theme: unknown mode %q (want light, dark or system)", raw)
}

// IsDark resolves System against the terminal background.
func (m Mode) IsDark() bool {
	switch m {
	case Dark:
		return true
	case Light:
		return false
	default:
		return hasDarkBackground()
	}
}

func (m Mode) String() string { return string(m) }

// hasDarkBackground is swapped out in tests.
var hasDarkBackground = termenv.HasDarkBackground

// Palette holds the styles for one resolved mode.
type Palette struct {
	Dark bool

	Title    lipgloss.Style
	Header   lipgloss.Style
	Day      lipgloss.Style
	Muted    lipgloss.Style
	Today    lipgloss.Style
	Selected lipgloss.Style
	Done     lipgloss.Style
	Border   lipgloss.Style

	priority map[task.Priority]lipgloss.Style
	load     []lipgloss.Style
}

// For builds the palette of mode m.
func For(m Mode) Palette {
	dark := m.IsDark()

	fg, muted, accent, sel := "235", "245", "63", "254"
	base, heat := "#dbeafe", "#dc2626"
	if dark {
		fg, muted, accent, sel = "252", "241", "212", "237"
		base, heat = "#1e3a8a", "#f87171"
	}

	p := Palette{
		Dark:     dark,
		Title:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(accent)),
		Header:   lipgloss.NewStyle().Foreground(lipgloss.Color(muted)).Bold(true),
		Day:      lipgloss.NewStyle().Foreground(lipgloss.Color(fg)),
		Muted:    lipgloss.NewStyle().Foreground(lipgloss.Color(muted)),
		Today:    lipgloss.NewStyle().Foreground(lipgloss.Color(accent)).Bold(true).Underline(true),
		Selected: lipgloss.NewStyle().Background(lipgloss.Color(sel)).Bold(true),
		Done:     lipgloss.NewStyle().Foreground(lipgloss.Color(muted)).Strikethrough(true),
		Border:   lipgloss.NewStyle().Border(lipgloss.NormalBorder()).BorderForeground(lipgloss.Color(muted)),
		priority: map[task.Priority]lipgloss.Style{
			task.PriorityHigh:   lipgloss.NewStyle().Foreground(lipgloss.Color("160")),
			task.PriorityMedium: lipgloss.NewStyle().Foreground(lipgloss.Color("172")),
			task.PriorityLow:    lipgloss.NewStyle().Foreground(lipgloss.Color("34")),
		},
	}
	for _, hex := range Ramp(base, heat, len(task.Levels())) {
		p.load = append(p.load, lipgloss.NewStyle().Foreground(lipgloss.Color(hex)))
	}
	return p
}

// Priority styles a priority marker. Unset priority renders plain.
func (p Palette) Priority(pr task.Priority) lipgloss.Style {
	if s, ok := p.priority[pr]; ok {
		return s
	}
	return p.Day
}

// Load styles a busyness level, cooler for light days and hotter for heavy.
func (p Palette) Load(l task.Level) lipgloss.Style {
	i := int(l)
	if i < 0 || i >= len(p.load) {
		return p.Muted
	}
	return p.load[i]
}

// Ramp returns n hex colors blended in Lab space from one hex to another.
func Ramp(from, to string, n int) []string {
	if n <= 0 {
		return nil
	}
	a, err := colorful.Hex(from)
	if err != nil {
		return nil
	}
	b, err := colorful.Hex(to)
	if err != nil {
		return nil
	}
	out := make([]string, n)
	for i := range out {
		t := 0.0
		if n > 1 {
			t = float64(i) / float64(n-1)
		}
		out[i] = a.BlendLab(b, t).Clamped().Hex()
	}
	return out
}
