package dynamo

import (
	"errors"
	"math"
	"strings"
	"testing"
)

func TestTrajectory_Append(t *testing.T) {
	tr := NewTrajectory(2)
	tr.Append(1, 0, 0)
	tr.Append(0.5, -1, 0.1)
	tr.Append(0, -2, 0.2)

	if tr.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", tr.Len())
	}
	if got := tr.Sample(1); got != (Sample{T: 0.1, X: 0.5, XDot: -1}) {
		t.Errorf("Sample(1) = %+v", got)
	}
	if got := tr.Final(); got != (Sample{T: 0.2, X: 0, XDot: -2}) {
		t.Errorf("Final() = %+v", got)
	}
}

func TestTrajectory_IsValid(t *testing.T) {
	nan := float32(math.NaN())
	inf := float32(math.Inf(1))

	tests := []struct {
		name  string
		traj  Trajectory
		valid bool
	}{
		{"empty", Trajectory{}, true},
		{"normal", Trajectory{Position: []float32{1, 2}, Velocity: []float32{0, 1}, Time: []float32{0, 1}}, true},
		{"short velocity", Trajectory{Position: []float32{1, 2}, Velocity: []float32{0}, Time: []float32{0, 1}}, false},
		{"with NaN", Trajectory{Position: []float32{nan}, Velocity: []float32{0}, Time: []float32{0}}, false},
		{"with +Inf", Trajectory{Position: []float32{0}, Velocity: []float32{inf}, Time: []float32{0}}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.traj.IsValid(); got != tt.valid {
				t.Errorf("IsValid() = %v, want %v", got, tt.valid)
			}
		})
	}
}

func TestTrajectory_FirstNonFinite(t *testing.T) {
	tr := NewTrajectory(4)
	tr.Append(1, 0, 0)
	tr.Append(2, 0, 1)
	if got := tr.FirstNonFinite(); got != -1 {
		t.Errorf("finite trajectory: got %d", got)
	}

	tr.Append(float32(math.Inf(-1)), 0, 2)
	tr.Append(float32(math.NaN()), float32(math.NaN()), 3)
	if got := tr.FirstNonFinite(); got != 2 {
		t.Errorf("FirstNonFinite() = %d, want 2", got)
	}

	short := Trajectory{Position: []float32{0, 1}, Velocity: []float32{0}, Time: []float32{0, 1}}
	if got := short.FirstNonFinite(); got != -1 {
		t.Errorf("mismatched lengths: got %d", got)
	}
}

func TestFloat64(t *testing.T) {
	got := Float64([]float32{0.5, -2})
	if len(got) != 2 || got[0] != 0.5 || got[1] != -2 {
		t.Errorf("Float64() = %v", got)
	}
}

func TestParameterError(t *testing.T) {
	err := &ParameterError{Name: "m", Value: -1, Rule: "positive and finite"}
	if !errors.Is(err, ErrInvalidParameter) {
		t.Error("ParameterError should unwrap to ErrInvalidParameter")
	}
	msg := err.Error()
	if !strings.Contains(msg, "m = -1") || !strings.HasPrefix(msg, "dynamo: invalid parameter") {
		t.Errorf("unexpected message %q", msg)
	}
}
