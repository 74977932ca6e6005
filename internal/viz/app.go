package viz

import (
	"fmt"
	"log/slog"
	"math"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/galton/internal/binomial"
	"github.com/san-kum/galton/internal/config"
	"github.com/san-kum/galton/internal/export"
	"github.com/san-kum/galton/internal/scene"
	"github.com/san-kum/galton/internal/sim"
	"github.com/san-kum/galton/internal/walk"
)

const (
	title      = "THE ROAD NOT TAKEN"
	panelWidth = 44
	chartWidth = 30
	// slider resolution, one notch is 0.01
	sliderSteps = 100
)

type Option func(*App)

func WithTheme(name string) Option {
	return func(a *App) { a.setTheme(GetTheme(name)) }
}

// WithRand sets the source used for random drops.
func WithRand(src sim.Source) Option {
	return func(a *App) { a.rng = src }
}

func WithExportDir(dir string) Option {
	return func(a *App) { a.exportDir = dir }
}

func WithLogger(l *slog.Logger) Option {
	return func(a *App) { a.logger = l }
}

func withClock(now func() time.Time) Option {
	return func(a *App) { a.now = now }
}

// App is the bubbletea model driving a session.
type App struct {
	session   *sim.Session
	rng       sim.Source
	theme     Theme
	st        styles
	board     *Board
	units     textinput.Model
	editing   bool
	showHelp  bool
	status    string
	warn      bool
	width     int
	height    int
	exportDir string
	logger    *slog.Logger
	now       func() time.Time
}

func NewApp(s *sim.Session, opts ...Option) App {
	units := textinput.New()
	units.Prompt = ""
	units.CharLimit = 12
	units.Width = 10
	units.Placeholder = "100"

	a := App{
		session:   s,
		board:     NewBoard(boardWidth, boardHeight),
		units:     units,
		exportDir: ".",
		logger:    slog.Default(),
		now:       time.Now,
	}
	a.setTheme(ThemeClassic)
	for _, opt := range opts {
		opt(&a)
	}
	return a
}

func (a *App) setTheme(t Theme) {
	a.theme = t
	a.st = newStyles(t)
}

func (a App) Session() *sim.Session { return a.session }
func (a App) Theme() Theme          { return a.theme }
func (a App) Editing() bool         { return a.editing }
func (a App) Status() string        { return a.status }

func (a App) Init() tea.Cmd { return nil }

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width, a.height = msg.Width, msg.Height
		a.fitBoard()
		return a, nil
	case tea.KeyMsg:
		if a.editing {
			return a.updateUnits(msg)
		}
		return a.handleKey(msg)
	}
	if a.editing {
		var cmd tea.Cmd
		a.units, cmd = a.units.Update(msg)
		return a, cmd
	}
	return a, nil
}

func (a *App) fitBoard() {
	w := a.width - panelWidth - 6
	h := a.height - 8
	a.board.Resize(min(max(w, 22), 2*boardWidth), min(max(h, 11), 2*boardHeight))
}

func (a App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	a.status, a.warn = "", false

	switch msg.String() {
	case "q", "ctrl+c":
		return a, tea.Quit
	case "?":
		a.showHelp = !a.showHelp
		return a, nil
	case "t":
		a.setTheme(NextTheme(a.theme))
		a.status = "theme: " + a.theme.Name
		return a, nil
	case "m", "tab":
		a.session.ToggleMode()
		a.status = a.session.Mode().String() + " mode"
		return a, nil
	case "e":
		a.exportSVG()
		return a, nil
	}

	if a.session.Manual() {
		return a.manualKey(msg)
	}
	return a.automaticKey(msg)
}

func (a App) automaticKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "left", "h":
		a.nudge(-1)
	case "right", "l":
		a.nudge(1)
	case "H", "shift+left":
		a.nudge(-10)
	case "L", "shift+right":
		a.nudge(10)
	case "u", "enter":
		a.editing = true
		a.units.SetValue(strconv.FormatFloat(a.session.Parameters().TotalUnits, 'f', -1, 64))
		a.units.CursorEnd()
		return a, a.units.Focus()
	}
	return a, nil
}

func (a App) manualKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "left", "h":
		a.choose(walk.Left)
	case "right", "l":
		a.choose(walk.Right)
	case "r":
		a.session.Reset()
	case "d", " ":
		a.drop(1)
	case "D":
		a.drop(10)
	}
	return a, nil
}

func (a *App) choose(d walk.Direction) {
	if !a.session.Choose(d) {
		a.status, a.warn = "path complete, press r to start another", true
		return
	}
	if a.session.Complete() {
		a.status = fmt.Sprintf("path complete at %v", a.session.Position())
	}
}

func (a *App) drop(n int) {
	if a.rng == nil {
		a.status, a.warn = "no random source configured", true
		return
	}
	for i := 0; i < n; i++ {
		a.session.Drop(a.rng)
	}
	a.status = fmt.Sprintf("dropped %d", n)
}

// nudge moves the probability slider by delta notches.
func (a *App) nudge(delta int) {
	notch := int(math.Round(a.session.Parameters().RightProbability*sliderSteps)) + delta
	notch = min(max(notch, 0), sliderSteps)
	a.session.SetProbability(float64(notch) / sliderSteps)
}

func (a App) updateUnits(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		a.applyUnits()
		a.editing = false
		a.units.Blur()
		return a, nil
	case "esc":
		a.editing = false
		a.units.Blur()
		return a, nil
	case "ctrl+c":
		return a, tea.Quit
	}
	var cmd tea.Cmd
	a.units, cmd = a.units.Update(msg)
	return a, cmd
}

// applyUnits parses the input field. An empty field reads as zero units;
// values outside [0, MaxTotalUnits] are clamped.
func (a *App) applyUnits() {
	a.status, a.warn = "", false
	text := strings.TrimSpace(a.units.Value())
	n := 0.0
	if text != "" {
		v, err := strconv.ParseFloat(text, 64)
		if err != nil || math.IsNaN(v) {
			a.status, a.warn = fmt.Sprintf("not a number: %q", text), true
			return
		}
		n = v
	}

	switch {
	case n < 0:
		n = 0
		a.warn = true
	case n > config.MaxTotalUnits:
		n = config.MaxTotalUnits
		a.warn = true
	}
	a.session.SetTotalUnits(n)
	if a.warn {
		a.status = fmt.Sprintf("total balls must be 0..%d, using %g", config.MaxTotalUnits, n)
		return
	}
	a.status = fmt.Sprintf("total balls: %g", n)
}

func (a *App) exportSVG() {
	name := fmt.Sprintf("galton-%s.svg", a.now().Format("20060102-150405"))
	path := filepath.Join(a.exportDir, name)
	sc := scene.Build(a.session.Snapshot())
	if err := export.SaveSVG(path, sc, a.theme.SVGStyle()); err != nil {
		a.logger.Error("svg export failed", "path", path, "error", err)
		a.status, a.warn = "export failed: "+err.Error(), true
		return
	}
	a.logger.Info("svg exported", "path", path)
	a.status = "saved " + path
}

func (a App) View() string {
	snap := a.session.Snapshot()
	a.board.Draw(scene.Build(snap))

	left := lipgloss.JoinVertical(lipgloss.Left,
		GradientText(title, a.theme.Primary, a.theme.Accent),
		"",
		a.board.Render(a.st),
	)
	main := lipgloss.JoinHorizontal(lipgloss.Top,
		a.st.canvas.Render(left),
		a.st.panel.Width(panelWidth).Render(a.panel(snap)),
	)
	if a.showHelp {
		return lipgloss.JoinVertical(lipgloss.Left, a.helpView(), main)
	}
	return main
}

func (a App) panel(snap sim.Snapshot) string {
	var s strings.Builder
	st := a.st
	row := func(label, value string) {
		s.WriteString(st.label.Render(label) + st.value.Render(value) + "\n")
	}

	s.WriteString(st.header.Render(strings.ToUpper(snap.Mode.String())) + "\n\n")

	control := st.value
	if snap.Mode == sim.Manual {
		control = st.muted
	}
	p := snap.Params
	s.WriteString(st.muted.Render(fmt.Sprintf("Probability of going right: %.2f", p.RightProbability)) + "\n")
	s.WriteString(control.Render(Slider(p.RightProbability, chartWidth)) + "\n")
	if a.editing {
		s.WriteString(st.label.Render("Total balls") + st.active.Render(a.units.View()) + "\n")
	} else {
		s.WriteString(st.label.Render("Total balls") + control.Render(strconv.FormatFloat(p.TotalUnits, 'f', -1, 64)) + "\n")
	}
	s.WriteString("\n")

	if snap.Mode == sim.Automatic {
		a.automaticPanel(&s, snap, row)
	} else {
		a.manualPanel(&s, snap, row)
	}

	if a.status != "" {
		style := st.active
		if a.warn {
			style = st.warning
		}
		s.WriteString("\n" + style.Render(a.status) + "\n")
	}

	s.WriteString("\n" + Separator(chartWidth, st.muted) + "\n")
	s.WriteString(a.hints(snap))
	return s.String()
}

func (a App) automaticPanel(s *strings.Builder, snap sim.Snapshot, row func(string, string)) {
	p := snap.Params
	placed := snap.Distribution.Total()
	row("Placed", fmt.Sprintf("%d (drift %+g)", placed, snap.Distribution.Drift(p.TotalUnits)))
	row("Mean", fmt.Sprintf("%.2f", binomial.Mean(p.Steps, p.RightProbability)))
	row("Variance", fmt.Sprintf("%.2f", binomial.Variance(p.Steps, p.RightProbability)))
	if len(snap.Distribution) > 1 {
		chart := asciigraph.Plot(snap.Distribution.Floats(),
			asciigraph.Height(6),
			asciigraph.Width(chartWidth),
			asciigraph.LowerBound(0),
			asciigraph.Precision(0),
			asciigraph.Caption("expected balls per bucket"))
		s.WriteString("\n" + a.st.graph.Render(chart) + "\n")
	}
}

func (a App) manualPanel(s *strings.Builder, snap sim.Snapshot, row func(string, string)) {
	p := snap.Params
	row("Position", snap.Position.String())
	row("Choices", fmt.Sprintf("%d/%d %s", len(snap.Choices), p.Steps, walk.FormatChoices(snap.Choices)))
	row("Completed", strconv.Itoa(len(snap.Completed)))

	names := make([]string, 0, len(snap.Metrics))
	for name := range snap.Metrics {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		label := fmt.Sprintf("%-18s", strings.ReplaceAll(name, "_", " "))
		s.WriteString(a.st.muted.Render(label) + a.st.value.Render(fmt.Sprintf("%.3f", snap.Metrics[name])) + "\n")
	}

	if len(snap.Completed) == 0 || len(snap.Histogram) < 2 {
		return
	}
	s.WriteString("\n" + a.st.label.Render("Endpoints") + SparklineChart(snap.Histogram, a.st.ball) + "\n")

	observed := make([]float64, len(snap.Histogram))
	for k, c := range snap.Histogram {
		observed[k] = float64(c)
	}
	expected := binomial.Probabilities(p.Steps, p.RightProbability)
	for k := range expected {
		expected[k] *= float64(len(snap.Completed))
	}
	chart := asciigraph.PlotMany([][]float64{observed, expected},
		asciigraph.Height(6),
		asciigraph.Width(chartWidth),
		asciigraph.LowerBound(0),
		asciigraph.Precision(0),
		asciigraph.SeriesColors(asciigraph.Red, asciigraph.Blue),
		asciigraph.SeriesLegends("observed", "expected"))
	s.WriteString("\n" + chart + "\n")
}

func (a App) hints(snap sim.Snapshot) string {
	st := a.st
	pair := func(k, d string) string { return st.key.Render(k) + st.muted.Render(" "+d+"  ") }

	var lines []string
	if a.editing {
		lines = append(lines, pair("enter", "apply")+pair("esc", "cancel"))
	} else if snap.Mode == sim.Manual {
		line := pair("←/→", "choose") + pair("d", "drop")
		if snap.Complete {
			line += pair("r", "reset")
		}
		lines = append(lines, line)
	} else {
		lines = append(lines, pair("←/→", "probability")+pair("u", "balls"))
	}
	lines = append(lines, pair("m", "mode")+pair("t", "theme")+pair("e", "svg")+pair("?", "help")+pair("q", "quit"))
	return strings.Join(lines, "\n")
}

func (a App) helpView() string {
	keys := [][2]string{
		{"←/→ h/l", "probability -/+ 0.01 (automatic), choose (manual)"},
		{"H/L", "probability -/+ 0.10"},
		{"u, enter", "edit total balls"},
		{"m, tab", "switch automatic/manual"},
		{"r", "start a new path"},
		{"d, space", "drop one random path"},
		{"D", "drop ten random paths"},
		{"e", "save board as SVG"},
		{"t", "cycle themes"},
		{"?", "toggle this help"},
		{"q", "quit"},
	}
	var b strings.Builder
	b.WriteString(a.st.header.Render("KEYBOARD SHORTCUTS") + "\n\n")
	for _, k := range keys {
		b.WriteString(a.st.key.Render(fmt.Sprintf("%-10s", k[0])) + " " + a.st.value.Render(k[1]) + "\n")
	}
	return a.st.help.Render(strings.TrimRight(b.String(), "\n"))
}

// Run starts the TUI on the alternate screen and blocks until it exits.
func Run(s *sim.Session, opts ...Option) error {
	_, err := tea.NewProgram(NewApp(s, opts...), tea.WithAltScreen()).Run()
	return err
}
