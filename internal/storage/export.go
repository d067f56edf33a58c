package storage

import (
	"encoding/json"
	"io"

	"github.com/hhakhilesh/DamperMassSpring/internal/config"
	"github.com/hhakhilesh/DamperMassSpring/internal/dynamo"
)

type ExportData struct {
	ID       string             `json:"id"`
	Config   config.Config      `json:"config"`
	Samples  int                `json:"samples"`
	Time     []float32          `json:"time"`
	Position []float32          `json:"position"`
	Velocity []float32          `json:"velocity"`
	Metrics  map[string]float64 `json:"metrics"`
}

// ExportJSON writes the run metadata and its full trajectory as one JSON
// document.
func ExportJSON(w io.Writer, meta *RunMetadata, traj *dynamo.Trajectory) error {
	data := ExportData{
		ID:       meta.ID,
		Config:   meta.Config,
		Samples:  traj.Len(),
		Time:     traj.Time,
		Position: traj.Position,
		Velocity: traj.Velocity,
		Metrics:  meta.Metrics,
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}
