package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/hhakhilesh/DamperMassSpring/internal/dynamo"
)

const (
	canvasWidth  = 60
	canvasHeight = 7
	graphWidth   = 60
	graphHeight  = 8
	frameRate    = 30
)

var (
	canvasStyle = lipgloss.NewStyle().Padding(1, 2)
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	graphStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
)

type TickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(time.Second/frameRate, func(t time.Time) tea.Msg { return TickMsg(t) })
}

// Playback replays a trajectory. Speed is the number of samples advanced
// per frame.
type Playback struct {
	title   string
	traj    *dynamo.Trajectory
	head    int
	speed   int
	running bool
	scale   float32
}

func NewPlayback(title string, traj *dynamo.Trajectory) Playback {
	// samples per frame so a full replay takes about ten seconds
	speed := traj.Len() / (10 * frameRate)
	if speed < 1 {
		speed = 1
	}

	var peak float32
	for _, x := range traj.Position {
		if x < 0 {
			x = -x
		}
		if x > peak {
			peak = x
		}
	}
	scale := float32(1)
	if peak > 0 {
		scale = 18 / peak
	}

	return Playback{
		title:   title,
		traj:    traj,
		speed:   speed,
		running: true,
		scale:   scale,
	}
}

func (m Playback) Head() int      { return m.head }
func (m Playback) Running() bool  { return m.running }
func (m Playback) Speed() int     { return m.speed }
func (m Playback) Init() tea.Cmd  { return tick() }
func (m Playback) finished() bool { return m.head >= m.traj.Len()-1 }

func (m Playback) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "r":
			m.head = 0
			m.running = true
		case "+", "=":
			// one frame never needs to skip more than the whole run
			m.speed = min(m.speed*2, max(m.traj.Len(), 1))
		case "-", "_":
			if m.speed > 1 {
				m.speed /= 2
			}
		case "right", "l":
			if !m.running {
				m.seek(m.head + 1)
			}
		case "left", "h":
			if !m.running {
				m.seek(m.head - 1)
			}
		}
		return m, nil
	case TickMsg:
		if m.running {
			m.seek(m.head + m.speed)
			if m.finished() {
				m.running = false
			}
		}
		return m, tick()
	}
	return m, nil
}

func (m *Playback) seek(i int) {
	if i < 0 {
		i = 0
	}
	if last := m.traj.Len() - 1; i > last {
		i = last
	}
	m.head = i
}

func (m Playback) View() string {
	if m.traj.Len() == 0 {
		return "empty trajectory\n"
	}
	s := m.traj.Sample(m.head)

	status := StatusRunning.Render("PLAYING")
	if !m.running {
		status = StatusPaused.Render("PAUSED")
	}

	var b strings.Builder
	b.WriteString(headerStyle.Render(strings.ToUpper(m.title)) + "\n")
	b.WriteString(fmt.Sprintf("%s  t=%.3fs  x=%+.4f  x'=%+.4f  x%d\n", status, s.T, s.X, s.XDot, m.speed))
	b.WriteString(ProgressBar(float64(m.head)/float64(max(m.traj.Len()-1, 1)), canvasWidth) + "\n")
	b.WriteString(canvasStyle.Render(m.drawSpring(s.X)) + "\n")

	if m.head > 1 {
		graph := asciigraph.Plot(dynamo.Float64(m.traj.Position[:m.head+1]),
			asciigraph.Height(graphHeight),
			asciigraph.Width(graphWidth),
			asciigraph.Caption("x-position"),
		)
		b.WriteString(graphStyle.Render(graph) + "\n")
	}

	b.WriteString(KeyHint.Render("space pause · ←/→ step · +/- speed · r restart · q quit"))
	return b.String()
}

// drawSpring renders a wall, a coil and the mass displaced by x.
func (m Playback) drawSpring(x float32) string {
	canvas := make([][]rune, canvasHeight)
	for i := range canvas {
		canvas[i] = []rune(strings.Repeat(" ", canvasWidth))
	}
	cy := canvasHeight / 2

	for y := 0; y < canvasHeight; y++ {
		canvas[y][1] = '#'
	}

	mx := canvasWidth/2 + int(x*m.scale)
	if mx < 4 {
		mx = 4
	}
	if mx > canvasWidth-3 {
		mx = canvasWidth - 3
	}

	for sx := 2; sx < mx-1; sx++ {
		if sx%2 == 0 {
			canvas[cy][sx] = '/'
		} else {
			canvas[cy][sx] = '\\'
		}
	}

	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			canvas[cy+dy][mx+dx] = '█'
		}
	}

	for sx := 2; sx < canvasWidth; sx++ {
		canvas[canvasHeight-1][sx] = '='
	}

	lines := make([]string, canvasHeight)
	for i, row := range canvas {
		lines[i] = string(row)
	}
	return strings.Join(lines, "\n")
}

// RunPlayback blocks until the viewer quits.
func RunPlayback(title string, traj *dynamo.Trajectory) error {
	_, err := tea.NewProgram(NewPlayback(title, traj)).Run()
	return err
}
