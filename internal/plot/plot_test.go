package plot

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

var pngMagic = []byte("\x89PNG\r\n\x1a\n")

func ramp(n int) ([]float32, []float32) {
	xs := make([]float32, n)
	ys := make([]float32, n)
	for i := range xs {
		xs[i] = float32(i) * 0.1
		ys[i] = 2 - float32(i)*0.05
	}
	return xs, ys
}

func TestWritePNG(t *testing.T) {
	xs, ys := ramp(50)
	fig := DefaultFigure()
	fig.Legend = "m,c,k= 1,1,1"

	var buf bytes.Buffer
	if err := WritePNG(&buf, xs, ys, fig); err != nil {
		t.Fatalf("WritePNG failed: %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), pngMagic) {
		t.Error("output is not a PNG")
	}
}

func TestSave(t *testing.T) {
	xs, ys := ramp(10)
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "out.png")

	if err := Save(path, xs, ys, DefaultFigure()); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(data, pngMagic) {
		t.Error("saved file is not a PNG")
	}

	svgPath := filepath.Join(dir, "out.svg")
	if err := Save(svgPath, xs, ys, DefaultFigure()); err != nil {
		t.Fatalf("Save svg failed: %v", err)
	}
	data, err = os.ReadFile(svgPath)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "<svg") {
		t.Error("saved file is not an SVG")
	}
}

func TestNewLinePlot_Labels(t *testing.T) {
	xs, ys := ramp(5)
	p, err := NewLinePlot(xs, ys, Figure{Title: "t", XLabel: "time[s]", YLabel: "x"})
	if err != nil {
		t.Fatal(err)
	}
	if p.Title.Text != "t" || p.X.Label.Text != "time[s]" || p.Y.Label.Text != "x" {
		t.Errorf("labels not applied: %q %q %q", p.Title.Text, p.X.Label.Text, p.Y.Label.Text)
	}
}

func TestASCII(t *testing.T) {
	_, ys := ramp(200)
	out := ASCII(ys, "x-position", 60, 8)
	if !strings.Contains(out, "x-position") {
		t.Error("caption missing")
	}
	if rows := strings.Count(out, "\n"); rows < 8 {
		t.Errorf("expected at least 8 rows, got %d", rows)
	}
}
