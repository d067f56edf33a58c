package storage

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/hhakhilesh/DamperMassSpring/internal/config"
	"github.com/hhakhilesh/DamperMassSpring/internal/dynamo"
)

const (
	metadataFile   = "metadata.json"
	trajectoryFile = "trajectory.csv"
)

var (
	ErrRunNotFound  = errors.New("storage: run not found")
	ErrInvalidLabel = errors.New("storage: invalid run label")
)

type Store struct {
	baseDir string
	log     *slog.Logger
	now     func() time.Time
}

func New(baseDir string, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Store{baseDir: baseDir, log: logger, now: time.Now}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID        string             `json:"id"`
	Label     string             `json:"label"`
	Timestamp time.Time          `json:"timestamp"`
	Config    config.Config      `json:"config"`
	Metrics   map[string]float64 `json:"metrics"`
}

// Save writes metadata.json and trajectory.csv into a new run directory and
// returns the run id. Ids carry a random suffix so two saves on the same
// clock tick do not share a directory. Nothing is left on disk when Save
// fails, and trajectories with non-finite samples are refused.
func (s *Store) Save(label string, cfg config.Config, metrics map[string]float64, traj *dynamo.Trajectory) (runID string, err error) {
	if err := validLabel(label); err != nil {
		return "", err
	}
	if !traj.IsValid() {
		return "", fmt.Errorf("run %s: %w", label, dynamo.ErrDiverged)
	}

	ts := s.now()
	runID = fmt.Sprintf("%s_%d_%s", label, ts.UnixNano(), uuid.NewString()[:8])
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}
	defer func() {
		if err != nil {
			if rmErr := os.RemoveAll(runDir); rmErr != nil {
				s.log.Warn("cannot remove partial run", "dir", runDir, "err", rmErr)
			}
			runID = ""
		}
	}()

	meta := RunMetadata{
		ID:        runID,
		Label:     label,
		Timestamp: ts,
		Config:    cfg,
		Metrics:   metrics,
	}

	if err := writeJSON(filepath.Join(runDir, metadataFile), meta); err != nil {
		return "", fmt.Errorf("run %s metadata: %w", runID, err)
	}

	csvFile, err := os.Create(filepath.Join(runDir, trajectoryFile))
	if err != nil {
		return "", err
	}
	if err := WriteCSV(csvFile, traj); err != nil {
		csvFile.Close()
		return "", err
	}
	if err := csvFile.Close(); err != nil {
		return "", err
	}

	s.log.Debug("run saved", "id", runID, "dir", runDir, "samples", traj.Len())
	return runID, nil
}

// validLabel keeps run directories directly under the base directory.
func validLabel(label string) error {
	if label == "" || label == "." || label == ".." ||
		strings.ContainsAny(label, `/\`) || filepath.Base(label) != label {
		return fmt.Errorf("%w: %q (must be a plain name without path separators)", ErrInvalidLabel, label)
	}
	return nil
}

// WriteCSV writes a "time,x,x_dot" header followed by one row per sample.
func WriteCSV(w io.Writer, traj *dynamo.Trajectory) error {
	cw := csv.NewWriter(w)

	if err := cw.Write([]string{"time", "x", "x_dot"}); err != nil {
		return err
	}
	for i := 0; i < traj.Len(); i++ {
		row := []string{
			strconv.FormatFloat(float64(traj.Time[i]), 'g', -1, 32),
			strconv.FormatFloat(float64(traj.Position[i]), 'g', -1, 32),
			strconv.FormatFloat(float64(traj.Velocity[i]), 'g', -1, 32),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// List returns all readable runs, oldest first. Unreadable entries are
// skipped.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		meta, err := s.Load(entry.Name())
		if err != nil {
			s.log.Warn("skipping unreadable run", "dir", entry.Name(), "err", err)
			continue
		}

		runs = append(runs, *meta)
	}

	sort.Slice(runs, func(i, j int) bool {
		return runs[i].Timestamp.Before(runs[j].Timestamp)
	})
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
		}
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("run %s: %w", runID, err)
	}

	return &meta, nil
}

func (s *Store) LoadTrajectory(runID string) (*dynamo.Trajectory, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, trajectoryFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
		}
		return nil, err
	}
	defer file.Close()

	return ReadCSV(file)
}

// ReadCSV parses what WriteCSV produced. Rows that fail to parse are an
// error, so the three sequences always stay index-aligned.
func ReadCSV(r io.Reader) (*dynamo.Trajectory, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = 3

	records, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 1 {
		return dynamo.NewTrajectory(0), nil
	}

	traj := dynamo.NewTrajectory(len(records) - 1)
	for i, record := range records[1:] {
		var vals [3]float32
		for j, field := range record {
			v, err := strconv.ParseFloat(field, 32)
			if err != nil {
				return nil, fmt.Errorf("row %d column %d: %w", i+2, j+1, err)
			}
			vals[j] = float32(v)
		}
		traj.Append(vals[1], vals[2], vals[0])
	}

	return traj, nil
}

func writeJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
