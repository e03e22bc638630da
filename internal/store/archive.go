package store

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/san-kum/pentad/internal/gate"
	"github.com/san-kum/pentad/internal/integrate"
	"github.com/san-kum/pentad/internal/spectral"
)

// Archive persists pipeline runs on disk: one directory per run with JSON
// metadata and the trajectory as CSV.
type Archive struct {
	baseDir string
}

func NewArchive(baseDir string) *Archive {
	return &Archive{baseDir: baseDir}
}

func (a *Archive) Init() error {
	return os.MkdirAll(a.baseDir, 0755)
}

type RunMetadata struct {
	ID        string             `json:"id"`
	Timestamp time.Time          `json:"timestamp"`
	Seed      string             `json:"seed"`
	StepSize  float64            `json:"step_size"`
	Horizon   float64            `json:"horizon"`
	Decision  gate.Decision      `json:"decision"`
	Signature spectral.Signature `json:"signature"`
	Digest    string             `json:"digest"`
}

func (a *Archive) Save(meta RunMetadata, tr integrate.Trajectory) (string, error) {
	runID := fmt.Sprintf("run_%s", uuid.NewString()[:8])
	runDir := filepath.Join(a.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta.ID = runID
	meta.Timestamp = time.Now().UTC()

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

	csvFile, err := os.Create(filepath.Join(runDir, "trajectory.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	defer w.Flush()

	header := []string{"time"}
	for i := 0; i < 5; i++ {
		header = append(header, fmt.Sprintf("x%d", i))
	}
	if err := w.Write(header); err != nil {
		return "", err
	}

	for i, s := range tr.States {
		row := []string{strconv.FormatFloat(tr.Times[i], 'g', 17, 64)}
		for _, v := range s {
			row = append(row, strconv.FormatFloat(v, 'g', 17, 64))
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}

	return runID, nil
}

func (a *Archive) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(a.baseDir)
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
		data, err := os.ReadFile(filepath.Join(a.baseDir, entry.Name(), "metadata.json"))
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

func (a *Archive) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(a.baseDir, runID, "metadata.json"))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

// LoadSeries reads one state component's time series back from the CSV.
func (a *Archive) LoadSeries(runID string, component int) ([]float64, []float64, error) {
	if component < 0 || component > 4 {
		return nil, nil, fmt.Errorf("component out of range: %d", component)
	}

	file, err := os.Open(filepath.Join(a.baseDir, runID, "trajectory.csv"))
	if err != nil {
		return nil, nil, err
	}
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	if err != nil {
		return nil, nil, err
	}
	if len(records) < 2 {
		return []float64{}, []float64{}, nil
	}

	times := make([]float64, 0, len(records)-1)
	series := make([]float64, 0, len(records)-1)
	for _, record := range records[1:] {
		if len(record) < 6 {
			continue
		}
		t, err := strconv.ParseFloat(record[0], 64)
		if err != nil {
			continue
		}
		v, err := strconv.ParseFloat(record[component+1], 64)
		if err != nil {
			continue
		}
		times = append(times, t)
		series = append(series, v)
	}

	return series, times, nil
}
