package teaui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/v2/textinput"
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"
	"github.com/google/uuid"

	"tableflip.dev/lumina/pkg/day"
	"tableflip.dev/lumina/pkg/draft"
	"tableflip.dev/lumina/pkg/gate"
	"tableflip.dev/lumina/pkg/grid"
	"tableflip.dev/lumina/pkg/logging"
	"tableflip.dev/lumina/pkg/runner/tea/internal/bottombar"
	"tableflip.dev/lumina/pkg/runner/tea/internal/calendar"
	"tableflip.dev/lumina/pkg/runner/tea/internal/panel"
	"tableflip.dev/lumina/pkg/store"
	"tableflip.dev/lumina/pkg/task"
	"tableflip.dev/lumina/pkg/theme"
	"tableflip.dev/lumina/pkg/view"
)

const (
	normalHelp = "hjkl move, [/] page, t today, w week/month, a add, o form, x toggle, dd delete, ? help"
	fullHelp   = "Keys: h/j/k/l or arrows move the day, tab focuses the agenda, [ ] or p/n change page, t today, w month/week, a add from text, o add with form, x toggle, dd delete, T cycle theme, L lock, r reload, : commands, :q quit"
)

// Options wires the model to the store and its collaborators.
type Options struct {
	Tasks   *store.Tasks
	Adapter *draft.Adapter
	Gate    *gate.Gate
	// Events, when set, carries changes other processes make to the store.
	Events <-chan store.Event
	Log    *logging.Logger
	Clock  func() time.Time
}

// field is one labelled input of the manual add form.
type field struct {
	label string
	input textinput.Model
}

const (
	fieldTitle = iota
	fieldDate
	fieldEndDate
	fieldStart
	fieldEnd
	fieldPriority
	fieldCategory
	fieldDescription
)

// Model contains UI state
type Model struct {
	opts Options
	ctx  context.Context
	log  *logging.Logger

	cal       *view.Controller
	themeMode theme.Mode
	palette   theme.Palette

	agenda panel.Model
	footer bottombar.Model
	input  textinput.Model

	form    []field
	formIdx int

	parsing    bool
	awaitingDD bool
	lastDTime  time.Time

	termWidth  int
	termHeight int
}

// messages
type errMsg struct{ err error }
type createdMsg struct{ task task.Task }
type storeEventMsg struct{ evt store.Event }
type watchClosedMsg struct{}

// New creates the calendar model. The session starts locked when the gate
// has a secret.
func New(ctx context.Context, opts Options) Model {
	if ctx == nil {
		ctx = context.Background()
	}
	log := opts.Log
	if log == nil {
		log = logging.Nop()
	}

	ti := textinput.New()
	ti.CharLimit = 256
	ti.Prompt = ""

	m := Model{
		opts:   opts,
		ctx:    ctx,
		log:    log.WithComponent("ui"),
		cal:    view.New(opts.Clock),
		agenda: panel.New(theme.Palette{}),
		footer: bottombar.New(),
		input:  ti,
	}
	mode := theme.System
	if opts.Tasks != nil {
		mode = opts.Tasks.Theme()
	}
	m.applyTheme(mode)
	m.footer.SetCommandDefinitions(commandOptions())
	m.footer.SetHelp(normalHelp)

	if !opts.Gate.Open() {
		m.lock()
	}
	m.refresh()
	return m
}

// Init starts following store changes.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{waitForEvent(m.opts.Events)}
	if m.footer.Mode() == bottombar.ModeLocked {
		cmds = append(cmds, textinput.Blink)
	}
	return tea.Batch(cmds...)
}

func waitForEvent(events <-chan store.Event) tea.Cmd {
	if events == nil {
		return nil
	}
	return func() tea.Msg {
		evt, ok := <-events
		if !ok {
			return watchClosedMsg{}
		}
		return storeEventMsg{evt}
	}
}

func (m *Model) applyTheme(mode theme.Mode) {
	m.themeMode = mode
	m.palette = theme.For(mode)
	m.agenda.SetPalette(m.palette)
}

// refresh rebuilds the agenda of the selected day.
func (m *Model) refresh() {
	var tasks []task.Task
	if m.opts.Tasks != nil {
		tasks = m.cal.Agenda(m.opts.Tasks)
	}
	m.agenda.SetContent(m.cal.AgendaTitle(), tasks)
}

func (m *Model) setMode(mode bottombar.Mode) {
	m.footer.SetMode(mode)
	switch mode {
	case bottombar.ModeNormal:
		m.footer.SetHelp(normalHelp)
	case bottombar.ModeText:
		m.footer.SetHelp("enter to add, esc to cancel")
	case bottombar.ModeForm:
		m.footer.SetHelp("tab next field, shift+tab previous, enter to add, esc to cancel")
	case bottombar.ModeLocked:
		m.footer.SetHelp("enter password, esc to quit")
	default:
		m.footer.SetHelp("")
	}
}

func (m *Model) focusInput(placeholder string, echo textinput.EchoMode) tea.Cmd {
	m.input.Reset()
	m.input.Placeholder = placeholder
	m.input.EchoMode = echo
	m.input.EchoCharacter = '•'
	return m.input.Focus()
}

func (m *Model) lock() {
	m.opts.Gate.Lock()
	m.setMode(bottombar.ModeLocked)
	m.focusInput("password", textinput.EchoPassword)
	m.footer.SetStatus("Locked")
}

// Update handles messages and keybindings
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.termWidth = msg.Width
		m.termHeight = msg.Height
		m.applySizes()
	case storeEventMsg:
		m.applyStoreEvent(msg.evt)
		return m, waitForEvent(m.opts.Events)
	case watchClosedMsg:
		m.opts.Events = nil
	case createdMsg:
		m.parsing = false
		m.footer.SetBusy(false)
		m.input.Reset()
		m.input.Blur()
		m.setMode(bottombar.ModeNormal)
		m.cal.Focus(msg.task)
		m.footer.SetStatus("Added " + msg.task.Title)
		m.refresh()
	case errMsg:
		m.parsing = false
		m.footer.SetBusy(false)
		m.footer.SetStatus("ERR: " + describe(msg.err))
	case tea.KeyPressMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *Model) applyStoreEvent(evt store.Event) {
	if m.opts.Tasks == nil {
		return
	}
	if evt.Type == store.EventInvalidated || evt.Key == store.TasksKey {
		m.opts.Tasks.Reload()
	}
	if evt.Type == store.EventInvalidated || evt.Key == store.ThemeKey {
		m.applyTheme(m.opts.Tasks.Theme())
	}
	m.refresh()
}

// describe turns adapter failures into something the user can act on.
func describe(err error) string {
	switch {
	case errors.Is(err, draft.ErrUnconfigured):
		return "natural language input is not configured (set gemini.api_key)"
	case errors.Is(err, draft.ErrUnreachable):
		return "could not reach the parser, try again"
	case errors.Is(err, draft.ErrIncomplete):
		return "could not find a title and date in that text"
	case errors.Is(err, draft.ErrMalformed):
		return "the parser returned something unreadable"
	case errors.Is(err, draft.ErrBusy):
		return "still parsing the previous text"
	default:
		return err.Error()
	}
}

func (m Model) handleKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	if key == "ctrl+c" {
		return m, tea.Quit
	}

	var cmd tea.Cmd
	switch m.footer.Mode() {
	case bottombar.ModeLocked:
		cmd = m.updateLocked(msg)
	case bottombar.ModeHelp:
		if key == "q" || key == "esc" || key == "?" {
			m.setMode(bottombar.ModeNormal)
		}
	case bottombar.ModeText:
		cmd = m.updateText(msg)
	case bottombar.ModeForm:
		cmd = m.updateForm(msg)
	case bottombar.ModeCommand:
		cmd = m.updateCommand(msg)
	default:
		cmd = m.updateNormal(msg)
	}
	return m, cmd
}

func (m *Model) updateLocked(msg tea.KeyPressMsg) tea.Cmd {
	switch msg.String() {
	case "esc":
		return tea.Quit
	case "enter":
		attempt := m.input.Value()
		m.input.Reset()
		if !m.opts.Gate.Unlock(attempt) {
			m.footer.SetStatus("Incorrect password")
			return nil
		}
		m.input.Blur()
		m.input.EchoMode = textinput.EchoNormal
		m.setMode(bottombar.ModeNormal)
		m.footer.SetStatus("Unlocked")
		return nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return cmd
}

func (m *Model) updateText(msg tea.KeyPressMsg) tea.Cmd {
	if m.parsing {
		return nil
	}
	switch msg.String() {
	case "esc":
		m.input.Reset()
		m.input.Blur()
		m.setMode(bottombar.ModeNormal)
		m.footer.SetStatus("Add cancelled")
		return nil
	case "enter":
		text := strings.TrimSpace(m.input.Value())
		if text == "" {
			m.footer.SetStatus("Describe the task first")
			return nil
		}
		m.parsing = true
		m.footer.SetBusy(true)
		return m.parse(text)
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return cmd
}

// parse runs the adapter off the update loop; the result arrives as a
// createdMsg or errMsg.
func (m *Model) parse(text string) tea.Cmd {
	adapter, ctx, ref := m.opts.Adapter, m.ctx, m.cal.Today()
	return func() tea.Msg {
		t, err := adapter.CreateFromText(ctx, text, ref)
		if err != nil {
			return errMsg{err}
		}
		return createdMsg{t}
	}
}

func (m *Model) startText() tea.Cmd {
	if m.opts.Adapter == nil || !m.opts.Adapter.Configured() {
		m.footer.SetStatus("ERR: " + describe(draft.ErrUnconfigured))
		return nil
	}
	m.setMode(bottombar.ModeText)
	m.footer.SetStatus("")
	return tea.Batch(m.focusInput("Lunch with Sam tomorrow at noon", textinput.EchoNormal), textinput.Blink)
}

func newField(label, value, placeholder string) field {
	ti := textinput.New()
	ti.Prompt = ""
	ti.CharLimit = 128
	ti.Placeholder = placeholder
	ti.SetValue(value)
	return field{label: label, input: ti}
}

func (m *Model) startForm() tea.Cmd {
	f := task.NewForm(m.cal.Selected)
	m.form = []field{
		fieldTitle:       newField("Title", "", "required"),
		fieldDate:        newField("Date", f.Date, "YYYY-MM-DD"),
		fieldEndDate:     newField("End date", f.EndDate, "YYYY-MM-DD"),
		fieldStart:       newField("Start", "", "HH:mm"),
		fieldEnd:         newField("End", "", "HH:mm"),
		fieldPriority:    newField("Priority", f.Priority, "low, medium, high or none"),
		fieldCategory:    newField("Category", "", "optional"),
		fieldDescription: newField("Description", "", "optional"),
	}
	m.formIdx = 0
	m.setMode(bottombar.ModeForm)
	m.footer.SetStatus("")
	return tea.Batch(m.form[0].input.Focus(), textinput.Blink)
}

func (m *Model) moveField(n int) tea.Cmd {
	m.form[m.formIdx].input.Blur()
	m.formIdx = (m.formIdx + n + len(m.form)) % len(m.form)
	return m.form[m.formIdx].input.Focus()
}

func (m *Model) updateForm(msg tea.KeyPressMsg) tea.Cmd {
	switch msg.String() {
	case "esc":
		m.form = nil
		m.setMode(bottombar.ModeNormal)
		m.footer.SetStatus("Add cancelled")
		return nil
	case "tab", "down":
		return m.moveField(1)
	case "shift+tab", "up":
		return m.moveField(-1)
	case "enter":
		m.submitForm()
		return nil
	}
	var cmd tea.Cmd
	m.form[m.formIdx].input, cmd = m.form[m.formIdx].input.Update(msg)
	return cmd
}

func (m *Model) submitForm() {
	value := func(i int) string { return m.form[i].input.Value() }

	f := task.NewForm(m.cal.Selected)
	f.Title = value(fieldTitle)
	f.EndDate = value(fieldEndDate)
	f.SetDate(value(fieldDate))
	f.StartTime = value(fieldStart)
	f.EndTime = value(fieldEnd)
	f.Priority = value(fieldPriority)
	f.Category = value(fieldCategory)
	f.Description = value(fieldDescription)

	t, err := f.Build(uuid.NewString())
	if err != nil {
		m.footer.SetStatus("ERR: " + err.Error())
		return
	}
	if err := m.opts.Tasks.Create(t); err != nil {
		m.log.WithError(err).Warn("saving task failed")
		m.footer.SetStatus("ERR: " + err.Error())
		return
	}
	m.form = nil
	m.setMode(bottombar.ModeNormal)
	m.cal.Focus(t)
	m.footer.SetStatus("Added " + t.Title)
	m.refresh()
}

// commandOptions lists the ':' commands.
func commandOptions() []bottombar.CommandOption {
	return []bottombar.CommandOption{
		{Name: "add", Description: "add <text>: create a task from free text"},
		{Name: "today", Description: "Jump to today"},
		{Name: "month", Description: "Show the month grid"},
		{Name: "week", Description: "Show the week grid"},
		{Name: "theme", Description: "theme light|dark|system"},
		{Name: "lock", Description: "Lock the calendar"},
		{Name: "reload", Description: "Re-read tasks from disk"},
		{Name: "q", Description: "Quit"},
	}
}

func (m *Model) startCommand() tea.Cmd {
	m.setMode(bottombar.ModeCommand)
	cmd := m.focusInput("command", textinput.EchoNormal)
	m.footer.UpdateCommandInput("", m.input.View())
	return tea.Batch(cmd, textinput.Blink)
}

func (m *Model) updateCommand(msg tea.KeyPressMsg) tea.Cmd {
	switch msg.String() {
	case "esc":
		m.input.Reset()
		m.input.Blur()
		m.setMode(bottombar.ModeNormal)
		m.footer.SetStatus("Command cancelled")
		return nil
	case "enter":
		line := strings.TrimSpace(m.input.Value())
		m.input.Reset()
		m.input.Blur()
		m.setMode(bottombar.ModeNormal)
		return m.runCommand(line)
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.footer.UpdateCommandInput(m.input.Value(), m.input.View())
	return cmd
}

func (m *Model) runCommand(line string) tea.Cmd {
	name, arg, _ := strings.Cut(line, " ")
	arg = strings.TrimSpace(arg)
	switch strings.ToLower(name) {
	case "":
		return nil
	case "q", "quit", "exit":
		return tea.Quit
	case "today":
		m.cal.SelectToday()
	case "month":
		m.cal.SetMode(grid.Month)
	case "week":
		m.cal.SetMode(grid.Week)
	case "theme":
		m.setTheme(arg)
	case "lock":
		if m.opts.Gate == nil || m.opts.Gate.Secret == "" {
			m.footer.SetStatus("No password configured")
			return nil
		}
		m.lock()
		return textinput.Blink
	case "reload":
		m.reload()
	case "add":
		if arg == "" {
			return m.startText()
		}
		if m.opts.Adapter == nil || !m.opts.Adapter.Configured() {
			m.footer.SetStatus("ERR: " + describe(draft.ErrUnconfigured))
			return nil
		}
		m.setMode(bottombar.ModeText)
		m.input.SetValue(arg)
		m.parsing = true
		m.footer.SetBusy(true)
		return m.parse(arg)
	default:
		m.footer.SetStatus(fmt.Sprintf("Unknown command: %s", line))
		return nil
	}
	m.refresh()
	return nil
}

func (m *Model) setTheme(raw string) {
	mode, err := theme.ParseMode(raw)
	if err != nil {
		m.footer.SetStatus("ERR: " + err.Error())
		return
	}
	if m.opts.Tasks != nil {
		if err := m.opts.Tasks.SetTheme(mode); err != nil {
			m.log.WithError(err).Warn("saving theme failed")
		}
	}
	m.applyTheme(mode)
	m.footer.SetStatus("Theme " + mode.String())
}

func (m *Model) cycleTheme() {
	modes := theme.Modes()
	next := modes[0]
	for i, mode := range modes {
		if mode == m.themeMode {
			next = modes[(i+1)%len(modes)]
		}
	}
	m.setTheme(next.String())
}

func (m *Model) reload() {
	if m.opts.Tasks == nil {
		return
	}
	m.opts.Tasks.Reload()
	m.applyTheme(m.opts.Tasks.Theme())
	m.footer.SetStatus("Reloaded")
}

func (m *Model) toggleCurrent() {
	t, ok := m.agenda.Current()
	if !ok || m.opts.Tasks == nil {
		return
	}
	if _, err := m.opts.Tasks.Toggle(t.ID); err != nil {
		m.footer.SetStatus("ERR: " + err.Error())
		return
	}
	if t.Completed {
		m.footer.SetStatus("Reopened " + t.Title)
	} else {
		m.footer.SetStatus("Completed " + t.Title)
	}
}

func (m *Model) deleteCurrent() {
	t, ok := m.agenda.Current()
	if !ok || m.opts.Tasks == nil {
		return
	}
	if _, err := m.opts.Tasks.Delete(t.ID); err != nil {
		m.footer.SetStatus("ERR: " + err.Error())
		return
	}
	m.footer.SetStatus("Deleted " + t.Title)
}

func (m *Model) updateNormal(msg tea.KeyPressMsg) tea.Cmd {
	key := msg.String()
	if key != "d" {
		m.awaitingDD = false
	}
	onAgenda := m.agenda.Focused()

	switch key {
	case ":":
		return m.startCommand()
	case "?":
		m.setMode(bottombar.ModeHelp)
		return nil
	case "q":
		m.footer.SetStatus("Use :q or ctrl+c to quit")
		return nil

	case "tab":
		m.agenda.SetFocused(!onAgenda)
	case "h", "left":
		m.cal.MoveSelection(-1)
	case "l", "right":
		m.cal.MoveSelection(1)
	case "k", "up":
		if onAgenda {
			m.agenda.Move(-1)
			return nil
		}
		m.cal.MoveSelection(-7)
	case "j", "down":
		if onAgenda {
			m.agenda.Move(1)
			return nil
		}
		m.cal.MoveSelection(7)
	case "[", "p":
		m.cal.Navigate(-1)
	case "]", "n":
		m.cal.Navigate(1)
	case "t":
		m.cal.SelectToday()
	case "w":
		m.cal.ToggleMode()

	case "a":
		return m.startText()
	case "o":
		if m.opts.Tasks == nil {
			return nil
		}
		return m.startForm()
	case "x", "space":
		m.toggleCurrent()
	case "d":
		if m.awaitingDD && time.Since(m.lastDTime) < 600*time.Millisecond {
			m.deleteCurrent()
			m.awaitingDD = false
		} else {
			m.awaitingDD = true
			m.lastDTime = time.Now()
			return nil
		}

	case "T":
		m.cycleTheme()
	case "L":
		if m.opts.Gate != nil && m.opts.Gate.Secret != "" {
			m.lock()
			return textinput.Blink
		}
		m.footer.SetStatus("No password configured")
	case "r":
		m.reload()
	default:
		return nil
	}
	m.refresh()
	return nil
}

// View renders the calendar page, the agenda and the footer.
func (m Model) View() string {
	footer, _ := m.footer.View()
	if m.footer.Mode() == bottombar.ModeLocked {
		prompt := lipgloss.JoinVertical(lipgloss.Left,
			m.palette.Title.Render("lumina is locked"),
			"",
			"Password: "+m.input.View(),
		)
		return m.palette.Border.Padding(1, 2).Render(prompt) + "\n\n" + footer
	}

	opts := calendar.DefaultOptions(m.palette)
	if m.cal.Mode == grid.Week {
		opts.TaskLines = 6
	}
	if m.termWidth > 0 {
		if w := (m.termWidth - 44) / 7; w > opts.CellWidth {
			opts.CellWidth = w
		}
	}
	page := lipgloss.JoinVertical(lipgloss.Left,
		m.palette.Title.Render(m.cal.Title()),
		calendar.Render(m.cal.Cells(m.querier()), opts),
	)
	body := lipgloss.JoinHorizontal(lipgloss.Top, page, "  ", m.agenda.View())

	switch m.footer.Mode() {
	case bottombar.ModeText:
		body += "\n\nAdd: " + m.input.View()
	case bottombar.ModeForm:
		body += "\n\n" + m.formView()
	case bottombar.ModeHelp:
		body += "\n\n" + lipgloss.NewStyle().Italic(true).Render(fullHelp)
	}
	return body + "\n\n" + footer
}

func (m Model) formView() string {
	lines := []string{m.palette.Title.Render("New task")}
	for i, f := range m.form {
		indicator := "  "
		if i == m.formIdx {
			indicator = "→ "
		}
		lines = append(lines, fmt.Sprintf("%s%-12s %s", indicator, f.label, f.input.View()))
	}
	return m.palette.Border.Padding(0, 1).Render(strings.Join(lines, "\n"))
}

type emptyQuerier struct{}

func (emptyQuerier) On(d day.Date) []task.Task { return nil }

func (m Model) querier() view.Querier {
	if m.opts.Tasks == nil {
		return emptyQuerier{}
	}
	return m.opts.Tasks
}

// applySizes recalculates the agenda width based on current terminal size.
func (m *Model) applySizes() {
	if m.termWidth == 0 {
		return
	}
	w := m.termWidth / 3
	if w < 24 {
		w = 24
	}
	if w > 40 {
		w = 40
	}
	m.agenda.SetWidth(w)
}
