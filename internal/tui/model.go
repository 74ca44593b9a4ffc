package tui

import (
	"context"
	"io"
	"log/slog"
	"math"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vango-dev/rangeslider/pkg/model"
	"github.com/vango-dev/rangeslider/pkg/slider"
	"github.com/vango-dev/rangeslider/pkg/vdom"
	"github.com/vango-dev/rangeslider/pkg/view"
)

const (
	defaultTrackWidth = 40
	minTrackWidth     = 12
	maxTrackWidth     = 100
)

var (
	trackStyle  = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#9CA3AF", Dark: "#4B5563"})
	fillStyle   = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#2563EB", Dark: "#60A5FA"})
	handleStyle = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#1F2937", Dark: "#E5E7EB"})
	activeStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.AdaptiveColor{Light: "#DC2626", Dark: "#F87171"})
	labelStyle  = lipgloss.NewStyle().Bold(true)
	mutedStyle  = lipgloss.NewStyle().Faint(true)
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#B91C1C", Dark: "#FCA5A5"})
	boxStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
)

// Handle selects which handle the arrow keys move.
type Handle int

const (
	HandleLeft Handle = iota
	HandleRight
)

func (h Handle) key() slider.Key[float64] {
	if h == HandleRight {
		return slider.RightHandleValue
	}
	return slider.LeftHandleValue
}

// Model is the bubbletea model for the terminal slider.
type Model struct {
	slider *slider.Slider
	policy view.TickPolicy
	active Handle
	width  int

	// status is the last rejection, cleared by the next accepted key.
	status   string
	quitting bool
}

// NewModel creates a model around s.
func NewModel(s *slider.Slider, policy view.TickPolicy) Model {
	return Model{
		slider: s,
		policy: policy,
		width:  defaultTrackWidth,
	}
}

// Slider returns the slider the model drives.
func (m Model) Slider() *slider.Slider { return m.slider }

// Active returns the handle the arrow keys move.
func (m Model) Active() Handle { return m.active }

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = trackWidth(msg.Width)
		return m, nil

	case tea.KeyMsg:
		var err error
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.quitting = true
			return m, tea.Quit
		case "left", "down":
			err = m.move(-1)
		case "right", "up":
			err = m.move(1)
		case "tab", "shift+tab":
			m.toggleActive()
		case "r":
			err = m.toggle(slider.IsRange)
			if !slider.Get(m.slider, slider.IsRange) {
				m.active = HandleLeft
			}
		case "d":
			err = m.toggle(slider.HasDefaultValues)
		case "l":
			err = m.toggle(slider.LimitsDisplayed)
		case "v":
			err = m.toggle(slider.ValueLabelDisplayed)
		default:
			return m, nil
		}
		m.status = ""
		if err != nil {
			m.status = err.Error()
		}
	}
	return m, nil
}

func trackWidth(terminal int) int {
	w := terminal - 8
	if w < minTrackWidth {
		return minTrackWidth
	}
	if w > maxTrackWidth {
		return maxTrackWidth
	}
	return w
}

// move shifts the active handle by dir steps. In default values mode one
// step is one label.
func (m *Model) move(dir int) error {
	s := m.slider.Settings()
	step := s.Step
	if s.HasDefaultValues {
		step = 1
	}
	key := m.active.key()
	return slider.Set(m.slider, key, slider.Get(m.slider, key)+float64(dir)*step)
}

func (m *Model) toggleActive() {
	if !slider.Get(m.slider, slider.IsRange) {
		m.active = HandleLeft
		return
	}
	if m.active == HandleLeft {
		m.active = HandleRight
	} else {
		m.active = HandleLeft
	}
}

func (m *Model) toggle(key slider.Key[bool]) error {
	return slider.Set(m.slider, key, !slider.Get(m.slider, key))
}

// View implements tea.Model
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	s := m.slider.Settings()

	var b strings.Builder
	if s.ValueLabelDisplayed {
		b.WriteString(m.valueLine(s))
		b.WriteString("\n")
	}
	b.WriteString(m.track(s))
	b.WriteString("\n")
	if ticks := m.scaleLine(s); ticks != "" {
		b.WriteString(ticks)
		b.WriteString("\n")
	}
	if s.LimitsDisplayed {
		b.WriteString(m.limitsLine(s))
		b.WriteString("\n")
	}
	if m.status != "" {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render(m.status))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render(help(s)))

	return boxStyle.Render(b.String())
}

func help(s model.Settings) string {
	parts := []string{"←/→ move"}
	if s.IsRange {
		parts = append(parts, "tab handle")
	}
	parts = append(parts, "r range", "d labels", "l limits", "v value", "q quit")
	return strings.Join(parts, "  ")
}

// column maps a track position to a character column.
func (m Model) column(pos float64) int {
	return int(math.Round(pos * float64(m.width-1)))
}

func (m Model) track(s model.Settings) string {
	left := m.column(s.Position(s.LeftHandleValue))
	right := left
	if s.IsRange {
		right = m.column(s.Position(s.RightHandleValue))
	}
	from, to := 0, left
	if s.IsRange {
		from, to = left, right
	}

	var b strings.Builder
	for col := 0; col < m.width; col++ {
		switch {
		case col == left && (!s.IsRange || m.active == HandleLeft):
			b.WriteString(m.handle(HandleLeft))
		case s.IsRange && col == right:
			b.WriteString(m.handle(HandleRight))
		case col == left:
			b.WriteString(m.handle(HandleLeft))
		case col >= from && col < to:
			b.WriteString(fillStyle.Render("━"))
		default:
			b.WriteString(trackStyle.Render("─"))
		}
	}
	return b.String()
}

func (m Model) handle(h Handle) string {
	if h == m.active {
		return activeStyle.Render("●")
	}
	return handleStyle.Render("●")
}

func (m Model) valueLine(s model.Settings) string {
	text := s.Format(s.LeftHandleValue)
	if s.IsRange {
		text += " – " + s.Format(s.RightHandleValue)
	}
	return labelStyle.Render(text)
}

func (m Model) scaleLine(s model.Settings) string {
	if s.HasDefaultValues {
		return place(m.width, labelTicks(s, m.width))
	}
	ticks := view.Ticks(s, m.policy)
	if len(ticks) == 0 {
		return ""
	}
	marks := make([]mark, 0, len(ticks))
	for _, t := range ticks {
		marks = append(marks, mark{col: m.column(t.Position), text: model.FormatNumber(t.Value)})
	}
	return place(m.width, marks)
}

func (m Model) limitsLine(s model.Settings) string {
	lo, hi := s.MinValue, s.MaxValue
	if s.HasDefaultValues {
		lo, hi = 0, float64(len(s.DefaultValues)-1)
	}
	return mutedStyle.Render(place(m.width, []mark{
		{col: 0, text: s.Format(lo)},
		{col: m.width - 1, text: s.Format(hi)},
	}))
}

type mark struct {
	col  int
	text string
}

func labelTicks(s model.Settings, width int) []mark {
	n := len(s.DefaultValues)
	marks := make([]mark, 0, n)
	for i, label := range s.DefaultValues {
		pos := 0.0
		if n > 1 {
			pos = float64(i) / float64(n-1)
		}
		marks = append(marks, mark{col: int(math.Round(pos * float64(width-1))), text: label})
	}
	return marks
}

// place writes each mark centred on its column. A mark that would overlap
// the previous one is dropped; the last mark is right-aligned to the edge
// when it does not fit.
func place(width int, marks []mark) string {
	line := []rune(strings.Repeat(" ", width))
	next := 0
	for i, mk := range marks {
		text := []rune(mk.text)
		start := mk.col - len(text)/2
		if start < 0 {
			start = 0
		}
		if start+len(text) > width {
			start = width - len(text)
		}
		if start < next {
			if i != len(marks)-1 {
				continue
			}
			start = next
		}
		if start < 0 || start+len(text) > width {
			continue
		}
		copy(line[start:], text)
		next = start + len(text) + 1
	}
	return strings.TrimRight(string(line), " ")
}

// Run builds a slider from overrides and runs the terminal program until
// the user quits or ctx is cancelled.
func Run(ctx context.Context, overrides model.Overrides, policy view.TickPolicy, opts ...tea.ProgramOption) error {
	// Log output would draw over the alternate screen.
	s := slider.New(vdom.Div(), overrides,
		slider.WithTickPolicy(policy),
		slider.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
	)
	opts = append([]tea.ProgramOption{tea.WithContext(ctx), tea.WithAltScreen()}, opts...)
	_, err := tea.NewProgram(NewModel(s, policy), opts...).Run()
	if err != nil && ctx.Err() != nil {
		return nil
	}
	return err
}
