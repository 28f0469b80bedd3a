package cli

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/alexanderramin/mesoplan/internal/cli/formatter"
	"github.com/alexanderramin/mesoplan/internal/domain"
	"github.com/alexanderramin/mesoplan/internal/progression"
	"github.com/alexanderramin/mesoplan/internal/service"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ── keys ─────────────────────────────────────────────────────────────────────

type editorKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	Left     key.Binding
	Right    key.Binding
	Increase key.Binding
	Decrease key.Binding
	Deload   key.Binding
	Preset   key.Binding
	Auto     key.Binding
	Save     key.Binding
	Help     key.Binding
	Quit     key.Binding
}

func newEditorKeyMap() editorKeyMap {
	return editorKeyMap{
		Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "prev week")),
		Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "next week")),
		Left:     key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "prev field")),
		Right:    key.NewBinding(key.WithKeys("right", "l", "tab"), key.WithHelp("→/l", "next field")),
		Increase: key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+", "raise")),
		Decrease: key.NewBinding(key.WithKeys("-", "_"), key.WithHelp("-", "lower")),
		Deload:   key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "toggle deload")),
		Preset:   key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "cycle preset")),
		Auto:     key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "auto-deload")),
		Save:     key.NewBinding(key.WithKeys("s", "ctrl+s"), key.WithHelp("s", "save")),
		Help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "more")),
		Quit:     key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "save & quit")),
	}
}

func (k editorKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Increase, k.Decrease, k.Deload, k.Save, k.Help, k.Quit}
}

func (k editorKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right},
		{k.Increase, k.Decrease, k.Deload, k.Preset, k.Auto},
		{k.Save, k.Help, k.Quit},
	}
}

// ── fields ───────────────────────────────────────────────────────────────────

type intensityField struct {
	name string
	step float64
	get  func(domain.IntensityParameters) float64
	set  func(*domain.IntensityParameters, float64)
	min  float64
	max  float64
}

var editorFields = []intensityField{
	{"volume", 5, func(p domain.IntensityParameters) float64 { return p.Volume }, func(p *domain.IntensityParameters, v float64) { p.Volume = v }, 5, 200},
	{"weight", 2.5, func(p domain.IntensityParameters) float64 { return p.Weight }, func(p *domain.IntensityParameters, v float64) { p.Weight = v }, 2.5, 200},
	{"rir", 1, func(p domain.IntensityParameters) float64 { return float64(p.RIR) }, func(p *domain.IntensityParameters, v float64) { p.RIR = int(v) }, 0, 10},
	{"rpe", 0.5, func(p domain.IntensityParameters) float64 { return p.RPE }, func(p *domain.IntensityParameters, v float64) { p.RPE = v }, 0, 10},
	{"sets", 0.1, func(p domain.IntensityParameters) float64 { return p.Sets }, func(p *domain.IntensityParameters, v float64) { p.Sets = v }, 0.1, 3},
	{"reps", 0.1, func(p domain.IntensityParameters) float64 { return p.RepsModifier }, func(p *domain.IntensityParameters, v float64) { p.RepsModifier = v }, 0.1, 3},
}

// ── messages ─────────────────────────────────────────────────────────────────

type editorSavedMsg struct {
	err  error
	quit bool
}

// ── model ────────────────────────────────────────────────────────────────────

// weekEditor edits one mesocycle's weeks through its own progression.Editor.
// The editor's listener keeps the latest emission, which is what gets saved.
type weekEditor struct {
	ctx       context.Context
	svc       service.MesocycleService
	mesocycle *domain.Mesocycle
	editor    *progression.Editor

	latest domain.MesocycleProgression
	dirty  bool

	cursor  int
	field   int
	presets []progression.Preset
	preset  int

	keys   editorKeyMap
	help   help.Model
	status string
	err    error
	width  int
}

func newWeekEditor(ctx context.Context, app *App, view *service.MesocycleView) (*weekEditor, error) {
	m := &weekEditor{
		ctx:       ctx,
		svc:       app.Mesocycles,
		mesocycle: view.Mesocycle,
		presets:   progression.Presets(),
		preset:    -1,
		keys:      newEditorKeyMap(),
		help:      help.New(),
	}
	editor, err := progression.New(view.Mesocycle.Weeks,
		progression.WithInitial(&view.Progression),
		progression.WithPreDeload(view.PreDeload),
		progression.WithLogger(app.logger()),
		progression.WithListener(m.onChange),
	)
	if err != nil {
		return nil, err
	}
	m.editor = editor
	m.latest = editor.Settle()
	m.dirty = false
	return m, nil
}

func (m *weekEditor) onChange(p domain.MesocycleProgression) {
	m.latest = p
	m.dirty = true
}

func (m *weekEditor) Init() tea.Cmd { return nil }

func (m *weekEditor) selectedWeek() domain.WeekIntensity {
	return m.latest.WeeklyProgressions[m.cursor]
}

func (m *weekEditor) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		return m, nil

	case editorSavedMsg:
		if msg.err != nil {
			m.err = msg.err
			m.status = "save failed: " + msg.err.Error()
			return m, nil
		}
		m.err = nil
		m.dirty = false
		m.status = "saved"
		if msg.quit {
			return m, tea.Quit
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *weekEditor) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.status = ""
	week := m.selectedWeek().Week

	switch {
	case key.Matches(msg, m.keys.Quit):
		if m.dirty {
			return m, m.save(true)
		}
		return m, tea.Quit
	case key.Matches(msg, m.keys.Save):
		if !m.dirty {
			m.status = "nothing to save"
			return m, nil
		}
		return m, m.save(false)
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
		m.preset = -1
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.latest.WeeklyProgressions)-1 {
			m.cursor++
		}
		m.preset = -1
	case key.Matches(msg, m.keys.Left):
		m.field = (m.field + len(editorFields) - 1) % len(editorFields)
	case key.Matches(msg, m.keys.Right):
		m.field = (m.field + 1) % len(editorFields)
	case key.Matches(msg, m.keys.Increase):
		m.adjust(week, 1)
	case key.Matches(msg, m.keys.Decrease):
		m.adjust(week, -1)
	case key.Matches(msg, m.keys.Deload):
		m.apply(m.editor.ToggleDeload(week))
	case key.Matches(msg, m.keys.Preset):
		m.preset = (m.preset + 1) % len(m.presets)
		p := m.presets[m.preset]
		if m.apply(m.editor.ApplyPreset(week, string(p.Name))) {
			m.status = fmt.Sprintf("week %d: %s", week, p.Label())
		}
	case key.Matches(msg, m.keys.Auto):
		freq := m.latest.GlobalSettings.DeloadFrequency
		if freq < 1 {
			freq = domain.DefaultDeloadFrequency
		}
		m.editor.ApplyAutoDeload(freq)
		m.status = fmt.Sprintf("deload every %s", formatter.Pluralize(freq, "week"))
	}
	return m, nil
}

func (m *weekEditor) adjust(week int, dir float64) {
	f := editorFields[m.field]
	intensity := m.selectedWeek().Intensity
	next := math.Round((f.get(intensity)+dir*f.step)*100) / 100
	if next < f.min || next > f.max {
		m.status = fmt.Sprintf("%s stays within %s-%s", f.name, formatter.Number(f.min), formatter.Number(f.max))
		return
	}
	f.set(&intensity, next)
	m.apply(m.editor.UpdateWeek(week, intensity, nil))
}

func (m *weekEditor) apply(_ domain.MesocycleProgression, err error) bool {
	if err != nil {
		m.status = err.Error()
		return false
	}
	return true
}

func (m *weekEditor) save(quit bool) tea.Cmd {
	ctx, svc, id := m.ctx, m.svc, m.mesocycle.ID
	p, pre := m.latest, m.editor.PreDeload()
	return func() tea.Msg {
		return editorSavedMsg{err: svc.Save(ctx, id, p, pre), quit: quit}
	}
}

// ── view ─────────────────────────────────────────────────────────────────────

var (
	cursorStyle = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	fieldStyle  = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorHeader)
)

func (m *weekEditor) View() string {
	var b strings.Builder

	title := formatter.Bold(m.mesocycle.Name) + "  " +
		formatter.Dim(formatter.DateRange(m.mesocycle)+" · "+formatter.Pluralize(m.editor.Weeks(), "week"))
	if m.dirty {
		title += "  " + formatter.StyleYellow.Render("● unsaved")
	}
	b.WriteString(title + "\n\n")

	headers := []string{" ", "WEEK"}
	for _, f := range editorFields {
		headers = append(headers, strings.ToUpper(f.name))
	}
	headers = append(headers, "LABEL", "")

	rows := make([][]string, 0, len(m.latest.WeeklyProgressions))
	for i, w := range m.latest.WeeklyProgressions {
		marker := " "
		if i == m.cursor {
			marker = cursorStyle.Render("›")
		}
		row := []string{marker, strconv.Itoa(w.Week)}
		for j, f := range editorFields {
			cell := formatter.Number(f.get(w.Intensity))
			if i == m.cursor && j == m.field {
				cell = fieldStyle.Render(cell)
			}
			row = append(row, cell)
		}
		row = append(row, w.Label, formatter.DeloadMarker(w.IsDeload))
		rows = append(rows, row)
	}
	b.WriteString(formatter.RenderTable(headers, rows))

	b.WriteString("\n")
	if m.status != "" {
		style := formatter.StyleDim
		if m.err != nil {
			style = formatter.StyleRed
		}
		b.WriteString(style.Render(m.status) + "\n")
	}
	b.WriteString(m.help.View(m.keys))
	return b.String()
}
