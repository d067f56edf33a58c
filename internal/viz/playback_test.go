package viz

import (
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/hhakhilesh/DamperMassSpring/internal/dynamo"
)

func decaying(n int) *dynamo.Trajectory {
	traj := dynamo.NewTrajectory(n)
	x := float32(2)
	for i := 0; i < n; i++ {
		traj.Append(x, 0, float32(i)*0.01)
		x *= -0.9
	}
	return traj
}

func key(s string) tea.KeyMsg {
	switch s {
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func update(m Playback, msg tea.Msg) Playback {
	next, _ := m.Update(msg)
	return next.(Playback)
}

func TestPlaybackAdvancesOnTick(t *testing.T) {
	m := NewPlayback("unit", decaying(10))
	if m.Speed() != 1 {
		t.Fatalf("short trajectory should play one sample per frame, got %d", m.Speed())
	}

	m = update(m, TickMsg(time.Now()))
	m = update(m, TickMsg(time.Now()))
	if m.Head() != 2 {
		t.Errorf("head = %d, want 2", m.Head())
	}

	for i := 0; i < 20; i++ {
		m = update(m, TickMsg(time.Now()))
	}
	if m.Head() != 9 {
		t.Errorf("head should stop at the last sample, got %d", m.Head())
	}
	if m.Running() {
		t.Error("playback should pause at the end")
	}
}

func TestPlaybackKeys(t *testing.T) {
	m := NewPlayback("unit", decaying(10))

	m = update(m, key(" "))
	if m.Running() {
		t.Fatal("space should pause")
	}
	m = update(m, TickMsg(time.Now()))
	if m.Head() != 0 {
		t.Errorf("paused playback moved to %d", m.Head())
	}

	m = update(m, key("right"))
	m = update(m, key("right"))
	m = update(m, key("left"))
	if m.Head() != 1 {
		t.Errorf("head = %d after stepping, want 1", m.Head())
	}

	m = update(m, key("+"))
	if m.Speed() != 2 {
		t.Errorf("speed = %d, want 2", m.Speed())
	}
	m = update(m, key("-"))
	m = update(m, key("-"))
	if m.Speed() != 1 {
		t.Errorf("speed should not drop below 1, got %d", m.Speed())
	}

	m = update(m, key("r"))
	if m.Head() != 0 || !m.Running() {
		t.Errorf("restart: head=%d running=%v", m.Head(), m.Running())
	}

	_, cmd := m.Update(key("q"))
	if cmd == nil {
		t.Fatal("q should return a quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q should quit")
	}
}

func TestPlaybackSpeedIsBounded(t *testing.T) {
	m := NewPlayback("unit", decaying(10))
	for i := 0; i < 80; i++ {
		m = update(m, key("+"))
	}
	if m.Speed() != 10 {
		t.Errorf("speed = %d, want it capped at the trajectory length 10", m.Speed())
	}

	m = update(m, key("r"))
	m = update(m, TickMsg(time.Now()))
	if m.Head() != 9 {
		t.Errorf("a capped step should land on the last sample, got %d", m.Head())
	}

	m = update(m, key("-"))
	if m.Speed() != 5 {
		t.Errorf("speed = %d after slowing down, want 5", m.Speed())
	}
}

func TestPlaybackView(t *testing.T) {
	m := NewPlayback("unit", decaying(50))
	for i := 0; i < 5; i++ {
		m = update(m, TickMsg(time.Now()))
	}

	out := m.View()
	for _, want := range []string{"UNIT", "t=0.050s", "x-position", "█"} {
		if !strings.Contains(out, want) {
			t.Errorf("view missing %q", want)
		}
	}

	if got := NewPlayback("empty", dynamo.NewTrajectory(0)).View(); got != "empty trajectory\n" {
		t.Errorf("empty view = %q", got)
	}
}

func TestRenderSummary(t *testing.T) {
	out := RenderSummary("run", "m,c,k= 1,1,1", map[string]float64{"zulu_metric": 2, "alpha_metric": 1})
	if !strings.Contains(out, "m,c,k= 1,1,1") {
		t.Error("header missing")
	}
	if strings.Index(out, "alpha_metric") > strings.Index(out, "zulu_metric") {
		t.Error("rows should be sorted")
	}
	if !strings.Contains(RenderError(errors.New("boom")), "boom") {
		t.Error("error text missing")
	}
}
