package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/san-kum/particleweb/internal/web"
)

// Store persists benchmark runs, one directory per run.
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
	Preset    string             `json:"preset"`
	Timestamp time.Time          `json:"timestamp"`
	Seed      int64              `json:"seed"`
	Width     float64            `json:"width"`
	Height    float64            `json:"height"`
	Frames    int                `json:"frames"`
	Particles int                `json:"particles"`
	MeanMs    float64            `json:"mean_ms"`
	P95Ms     float64            `json:"p95_ms"`
	Metrics   map[string]float64 `json:"metrics"`
}

// Run is a finished benchmark: its metadata plus per-frame stats and costs.
type Run struct {
	Meta   RunMetadata
	Frames []web.FrameStats
	// CostMs is the wall-clock cost of each frame, parallel to Frames.
	CostMs []float64
}

var frameHeader = []string{"frame", "time", "particles", "candidates", "links", "link_dist", "influence", "speed", "cost_ms"}

// Save writes run under a fresh ID and returns it.
func (s *Store) Save(run *Run) (string, error) {
	meta := run.Meta
	if meta.Timestamp.IsZero() {
		meta.Timestamp = time.Now()
	}
	meta.ID = fmt.Sprintf("%s_%d", meta.Preset, meta.Timestamp.UnixNano())
	runDir := filepath.Join(s.baseDir, meta.ID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", fmt.Errorf("create run dir: %w", err)
	}

	metaFile, err := os.Create(filepath.Join(runDir, "metadata.json"))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", fmt.Errorf("write metadata: %w", err)
	}

	csvFile, err := os.Create(filepath.Join(runDir, "frames.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	if err := w.Write(frameHeader); err != nil {
		return "", err
	}
	for i, f := range run.Frames {
		cost := 0.0
		if i < len(run.CostMs) {
			cost = run.CostMs[i]
		}
		row := []string{
			strconv.Itoa(f.Frame),
			formatFloat(f.Time),
			strconv.Itoa(f.Particles),
			strconv.Itoa(f.Candidates),
			strconv.Itoa(f.Links),
			formatFloat(f.LinkDist),
			formatFloat(f.Influence),
			formatFloat(f.MeanSpeed),
			formatFloat(cost),
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("write frames: %w", err)
	}

	return meta.ID, nil
}

// List returns every readable run, oldest first.
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

	sort.Slice(runs, func(i, j int) bool { return runs[i].Timestamp.Before(runs[j].Timestamp) })
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("decode %s: %w", runID, err)
	}

	return &meta, nil
}

// LoadFrames reads a run's per-frame stats and costs back.
func (s *Store) LoadFrames(runID string) ([]web.FrameStats, []float64, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, "frames.csv"))
	if err != nil {
		return nil, nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = len(frameHeader)

	records, err := r.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("read frames: %w", err)
	}
	if len(records) < 2 {
		return []web.FrameStats{}, []float64{}, nil
	}

	frames := make([]web.FrameStats, 0, len(records)-1)
	costs := make([]float64, 0, len(records)-1)
	for i, rec := range records[1:] {
		var f web.FrameStats
		var cost float64
		var perr error
		parseInt := func(s string) int {
			v, err := strconv.Atoi(s)
			if err != nil && perr == nil {
				perr = err
			}
			return v
		}
		parseFloat := func(s string) float64 {
			v, err := strconv.ParseFloat(s, 64)
			if err != nil && perr == nil {
				perr = err
			}
			return v
		}
		f.Frame = parseInt(rec[0])
		f.Time = parseFloat(rec[1])
		f.Particles = parseInt(rec[2])
		f.Candidates = parseInt(rec[3])
		f.Links = parseInt(rec[4])
		f.LinkDist = parseFloat(rec[5])
		f.Influence = parseFloat(rec[6])
		f.MeanSpeed = parseFloat(rec[7])
		cost = parseFloat(rec[8])
		if perr != nil {
			return nil, nil, fmt.Errorf("read frames: %s line %d: %w", runID, i+2, perr)
		}
		frames = append(frames, f)
		costs = append(costs, cost)
	}

	return frames, costs, nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 6, 64)
}
