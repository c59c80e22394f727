package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/san-kum/numlab/internal/config"
	"github.com/san-kum/numlab/internal/experiment"
	"github.com/san-kum/numlab/internal/numeric"
)

const (
	metadataFile = "metadata.json"
	samplesFile  = "samples.csv"
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
	ID         string              `json:"id"`
	Kind       string              `json:"kind"`
	Family     string              `json:"family"`
	Method     string              `json:"method"`
	Problem    string              `json:"problem"`
	Timestamp  time.Time           `json:"timestamp"`
	Params     config.ParamsConfig `json:"params"`
	Value      *float64            `json:"value,omitempty"`
	Exact      *float64            `json:"exact,omitempty"`
	AbsErr     *float64            `json:"abs_err,omitempty"`
	Evals      int                 `json:"evals"`
	Iterations int                 `json:"iterations"`
	ElapsedNS  int64               `json:"elapsed_ns"`
	Order      *float64            `json:"order,omitempty"`
}

// Run kinds.
const (
	KindRun   = "run"
	KindSweep = "sweep"
)

// Table is the content of a run's samples.csv.
type Table struct {
	Columns []string    `json:"columns"`
	Rows    [][]float64 `json:"rows"`
}

// Save writes res under a fresh run directory and returns its id.
// Sweeps store (n, value, abs_err) rows, ODE runs their trajectory as (x, y).
// A failed save leaves no run directory behind.
func (s *Store) Save(cfg *config.Config, res *experiment.Result) (string, error) {
	now := time.Now()
	runID := fmt.Sprintf("%s_%s_%d", res.Problem, res.Method, now.UnixNano())
	runDir := filepath.Join(s.baseDir, runID)

	meta := RunMetadata{
		ID:         runID,
		Kind:       KindRun,
		Family:     res.Family,
		Method:     res.Method,
		Problem:    res.Problem,
		Timestamp:  now,
		Params:     cfg.Params,
		Value:      finite(res.Value),
		Evals:      res.Evals,
		Iterations: res.Iterations,
		ElapsedNS:  res.Elapsed.Nanoseconds(),
	}
	if res.HasExact {
		meta.Exact = finite(res.Exact)
		meta.AbsErr = finite(res.AbsErr)
	}
	if len(res.Samples) > 0 {
		meta.Kind = KindSweep
		meta.Order = finite(res.Order)
	}

	data, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}
	if err := writeRun(runDir, data, tableOf(res)); err != nil {
		os.RemoveAll(runDir)
		return "", err
	}
	return runID, nil
}

func writeRun(runDir string, meta []byte, t *Table) error {
	if err := os.WriteFile(filepath.Join(runDir, metadataFile), append(meta, '\n'), 0644); err != nil {
		return err
	}
	return writeTable(filepath.Join(runDir, samplesFile), t)
}

// finite returns nil for NaN and ±Inf, which encoding/json rejects.
func finite(v float64) *float64 {
	if !numeric.IsFinite(v) {
		return nil
	}
	return &v
}

func tableOf(res *experiment.Result) *Table {
	switch {
	case len(res.Samples) > 0:
		t := &Table{Columns: []string{"n", "value", "abs_err"}}
		for _, s := range res.Samples {
			t.Rows = append(t.Rows, []float64{float64(s.N), s.Value, s.AbsErr})
		}
		return t
	case len(res.Trajectory) > 0:
		t := &Table{Columns: []string{"x", "y"}}
		for _, p := range res.Trajectory {
			t.Rows = append(t.Rows, []float64{p.X, p.Y})
		}
		return t
	}
	t := &Table{Columns: []string{"value", "abs_err"}}
	t.Rows = append(t.Rows, []float64{res.Value, res.AbsErr})
	return t
}

func writeTable(path string, t *Table) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(t.Columns); err != nil {
		return err
	}
	for _, row := range t.Rows {
		rec := make([]string, len(row))
		for i, v := range row {
			rec[i] = strconv.FormatFloat(v, 'g', -1, 64)
		}
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// List returns the metadata of every stored run, oldest first. Directories
// without readable metadata are skipped.
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
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

func (s *Store) LoadSamples(runID string) (*Table, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, samplesFile))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return &Table{}, nil
	}

	t := &Table{Columns: records[0], Rows: make([][]float64, 0, len(records)-1)}
	for _, record := range records[1:] {
		row := make([]float64, 0, len(record))
		for _, field := range record {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, fmt.Errorf("%s/%s: %w", runID, samplesFile, err)
			}
			row = append(row, v)
		}
		t.Rows = append(t.Rows, row)
	}
	return t, nil
}

// Export is the JSON document written by ExportJSON.
type Export struct {
	RunMetadata
	Samples *Table `json:"samples"`
}

// ExportJSON writes a run's metadata and samples to w as indented JSON.
func (s *Store) ExportJSON(runID string, w io.Writer) error {
	meta, err := s.Load(runID)
	if err != nil {
		return err
	}
	samples, err := s.LoadSamples(runID)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(Export{RunMetadata: *meta, Samples: samples})
}

// ExportCSV copies a run's samples.csv to w.
func (s *Store) ExportCSV(runID string, w io.Writer) error {
	f, err := os.Open(filepath.Join(s.baseDir, runID, samplesFile))
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = io.Copy(w, f)
	return err
}
