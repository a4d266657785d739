// Package store persists solved runs as a directory per run: metadata as
// indented JSON next to the wavefunction samples as CSV, one column per
// channel.
package store

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/numlab/radwave/internal/quantum"
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

// ChannelMeta records the quantum numbers of one solved channel so that a
// run can be re-validated later without the original config.
type ChannelMeta struct {
	L      int     `json:"l"`
	Energy float64 `json:"energy"`
	Label  string  `json:"label,omitempty"`
}

type RunMetadata struct {
	ID          string        `json:"id"`
	Potential   string        `json:"potential"`
	Timestamp   time.Time     `json:"timestamp"`
	Depth       float64       `json:"v0"`
	Radius      float64       `json:"r0"`
	Diffuseness float64       `json:"a0"`
	Mu          float64       `json:"mu"`
	Step        float64       `json:"h"`
	RMax        float64       `json:"rmax"`
	Start       string        `json:"start"`
	Channels    []ChannelMeta `json:"channels"`
}

// Grid reconstructs the radial grid the stored run was solved on.
func (m RunMetadata) Grid() quantum.Grid {
	return quantum.Grid{Step: m.Step, RMax: m.RMax}
}

// Save writes a run directory and returns its generated ID.
func (s *Store) Save(meta RunMetadata, channels []quantum.Wavefunction) (string, error) {
	if len(channels) == 0 {
		return "", fmt.Errorf("store: no wavefunctions to save")
	}

	runID := fmt.Sprintf("%s_%d", meta.Potential, time.Now().Unix())
	meta.ID = runID
	meta.Timestamp = time.Now()

	runDir := filepath.Join(s.baseDir, runID)
	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

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

	csvFile, err := os.Create(filepath.Join(runDir, "wavefunction.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	defer w.Flush()

	header := []string{"r"}
	for i := range channels {
		header = append(header, fmt.Sprintf("u%d", i))
	}
	if err := w.Write(header); err != nil {
		return "", err
	}

	grid := meta.Grid()
	for n := range channels[0] {
		row := make([]string, 0, len(channels)+1)
		row = append(row, strconv.FormatFloat(grid.R(n), 'g', -1, 64))
		for _, u := range channels {
			row = append(row, strconv.FormatFloat(u[n], 'g', -1, 64))
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}

	return runID, nil
}

// List returns metadata for all stored runs, newest first.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var runs []RunMetadata
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		meta, err := s.readMeta(e.Name())
		if err != nil {
			continue // skip stray directories
		}
		runs = append(runs, meta)
	}

	sort.Slice(runs, func(i, j int) bool {
		return runs[i].Timestamp.After(runs[j].Timestamp)
	})
	return runs, nil
}

func (s *Store) readMeta(runID string) (RunMetadata, error) {
	var meta RunMetadata
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		return meta, err
	}
	err = json.Unmarshal(data, &meta)
	return meta, err
}

// Load reads a stored run back into memory.
func (s *Store) Load(runID string) (RunMetadata, []quantum.Wavefunction, error) {
	meta, err := s.readMeta(runID)
	if err != nil {
		return meta, nil, fmt.Errorf("store: run %q: %w", runID, err)
	}

	f, err := os.Open(filepath.Join(s.baseDir, runID, "wavefunction.csv"))
	if err != nil {
		return meta, nil, err
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return meta, nil, err
	}
	if len(records) < 2 {
		return meta, nil, fmt.Errorf("store: run %q has no samples", runID)
	}

	nch := len(records[0]) - 1
	channels := make([]quantum.Wavefunction, nch)
	for i := range channels {
		channels[i] = make(quantum.Wavefunction, 0, len(records)-1)
	}

	for _, rec := range records[1:] {
		for i := 0; i < nch; i++ {
			v, err := strconv.ParseFloat(rec[i+1], 64)
			if err != nil {
				return meta, nil, fmt.Errorf("store: run %q: %w", runID, err)
			}
			channels[i] = append(channels[i], v)
		}
	}

	return meta, channels, nil
}

// CSVPath returns the location of a run's sample file, for export commands
// that stream it verbatim.
func (s *Store) CSVPath(runID string) string {
	return filepath.Join(s.baseDir, runID, "wavefunction.csv")
}
