package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/san-kum/pulselab/internal/optic"
)

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID        string             `json:"id"`
	Label     string             `json:"label"`
	Timestamp time.Time          `json:"timestamp"`
	Samples   int                `json:"samples"`
	Dt        float64            `json:"dt"`
	Length    float64            `json:"length"`
	Gamma     float64            `json:"gamma"`
	Tolerance float64            `json:"tolerance"`
	Steps     int                `json:"steps"`
	Metrics   map[string]float64 `json:"metrics"`
}

// Save writes metadata.json and field.csv for a completed run, plus
// trajectory.csv when the run captured one. Returns the run ID.
func (s *Store) Save(meta RunMetadata, timeAxis []float64, result *optic.Result) (string, error) {
	runID := fmt.Sprintf("%s_%d", meta.Label, time.Now().Unix())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta.ID = runID
	meta.Timestamp = time.Now()
	meta.Steps = result.StepsTaken
	meta.Metrics = result.Metrics

	metaFile, err := os.Create(filepath.Join(runDir, "metadata.json"))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	if err := writeField(filepath.Join(runDir, "field.csv"), timeAxis, result.Field); err != nil {
		return "", err
	}

	if result.Trajectory != nil {
		if err := writeTrajectory(filepath.Join(runDir, "trajectory.csv"), result.Trajectory); err != nil {
			return "", err
		}
	}

	return runID, nil
}

func writeField(path string, timeAxis []float64, u optic.Field) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	w := csv.NewWriter(file)
	defer w.Flush()

	if err := w.Write([]string{"time", "re", "im", "power"}); err != nil {
		return err
	}
	for i, v := range u {
		re, im := real(v), imag(v)
		row := []string{
			strconv.FormatFloat(timeAxis[i], 'g', 9, 64),
			strconv.FormatFloat(re, 'g', 9, 64),
			strconv.FormatFloat(im, 'g', 9, 64),
			strconv.FormatFloat(re*re+im*im, 'g', 9, 64),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}

// writeTrajectory stores one row per snapshot: distance followed by the
// per-sample power profile.
func writeTrajectory(path string, traj *optic.Trajectory) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	w := csv.NewWriter(file)
	defer w.Flush()

	for i, z := range traj.Z {
		row := make([]string, 0, len(traj.Fields[i])+1)
		row = append(row, strconv.FormatFloat(z, 'g', 9, 64))
		for _, p := range traj.Fields[i].Power() {
			row = append(row, strconv.FormatFloat(p, 'g', 9, 64))
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}

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

		data, err := os.ReadFile(filepath.Join(s.baseDir, entry.Name(), "metadata.json"))
		if err != nil {
			continue
		}

		var meta RunMetadata
		if err := json.Unmarshal(data, &meta); err != nil {
			continue
		}
		runs = append(runs, meta)
	}
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

// LoadField reads field.csv back as a time axis and complex field.
func (s *Store) LoadField(runID string) ([]float64, optic.Field, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, "field.csv"))
	if err != nil {
		return nil, nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	records, err := r.ReadAll()
	if err != nil {
		return nil, nil, err
	}
	if len(records) < 2 {
		return []float64{}, optic.Field{}, nil
	}

	timeAxis := make([]float64, 0, len(records)-1)
	u := make(optic.Field, 0, len(records)-1)
	for _, record := range records[1:] {
		if len(record) < 3 {
			continue
		}
		t, err := strconv.ParseFloat(record[0], 64)
		if err != nil {
			continue
		}
		re, err1 := strconv.ParseFloat(record[1], 64)
		im, err2 := strconv.ParseFloat(record[2], 64)
		if err1 != nil || err2 != nil {
			continue
		}
		timeAxis = append(timeAxis, t)
		u = append(u, complex(re, im))
	}
	return timeAxis, u, nil
}
