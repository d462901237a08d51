package storage

import (
	"encoding/json"
	"os"

	"github.com/san-kum/pulselab/internal/optic"
)

type ExportData struct {
	Meta  RunMetadata `json:"meta"`
	Time  []float64   `json:"time"`
	Re    []float64   `json:"re"`
	Im    []float64   `json:"im"`
	Power []float64   `json:"power"`
}

// ExportJSON writes a stored run's field to a standalone JSON file.
func (s *Store) ExportJSON(runID, path string) error {
	meta, err := s.Load(runID)
	if err != nil {
		return err
	}
	timeAxis, u, err := s.LoadField(runID)
	if err != nil {
		return err
	}

	data := ExportData{
		Meta:  *meta,
		Time:  timeAxis,
		Re:    make([]float64, len(u)),
		Im:    make([]float64, len(u)),
		Power: optic.Field(u).Power(),
	}
	for i, v := range u {
		data.Re[i] = real(v)
		data.Im[i] = imag(v)
	}

	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}

// ExportCSV writes a stored run's field to a standalone CSV file using
// the same column layout as the store's field files.
func (s *Store) ExportCSV(runID, path string) error {
	timeAxis, u, err := s.LoadField(runID)
	if err != nil {
		return err
	}
	return writeField(path, timeAxis, u)
}
