package storage

import (
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"github.com/san-kum/particleweb/internal/web"
)

func TestStoreSaveLoad(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	run := &Run{
		Meta: RunMetadata{
			Preset:    "classic",
			Seed:      42,
			Width:     1700,
			Height:    1000,
			Frames:    2,
			Particles: 100,
			Metrics:   map[string]float64{"links": 12.5},
		},
		Frames: []web.FrameStats{
			{Frame: 0, Time: 16, Particles: 100, Candidates: 30, Links: 12, LinkDist: 180, MeanSpeed: 0.03},
			{Frame: 1, Time: 32, Particles: 100, Candidates: 31, Links: 13, LinkDist: 180, Influence: 0.5, MeanSpeed: 0.03},
		},
		CostMs: []float64{0.25, 0.5},
	}

	runID, err := st.Save(run)
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if runID == "" {
		t.Error("expected non-empty run id")
	}

	meta, err := st.Load(runID)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if meta.Preset != "classic" || meta.Seed != 42 || meta.ID != runID {
		t.Errorf("unexpected metadata: %+v", meta)
	}
	if meta.Metrics["links"] != 12.5 {
		t.Errorf("expected links 12.5, got %f", meta.Metrics["links"])
	}

	frames, costs, err := st.LoadFrames(runID)
	if err != nil {
		t.Fatalf("load frames failed: %v", err)
	}
	if len(frames) != 2 || len(costs) != 2 {
		t.Fatalf("expected 2 frames, got %d/%d", len(frames), len(costs))
	}
	if frames[1].Links != 13 || frames[1].Influence != 0.5 || costs[1] != 0.5 {
		t.Errorf("frame not preserved: %+v cost %f", frames[1], costs[1])
	}
}

func TestStoreList(t *testing.T) {
	dir := t.TempDir()
	st := New(dir)

	runs, err := st.List()
	if err != nil || len(runs) != 0 {
		t.Fatalf("expected empty list, got %v, %v", runs, err)
	}

	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	for i, preset := range []string{"dense", "calm"} {
		run := &Run{Meta: RunMetadata{Preset: preset, Timestamp: base.Add(time.Duration(i) * time.Minute)}}
		if _, err := st.Save(run); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.MkdirAll(filepath.Join(dir, "junk"), 0755); err != nil {
		t.Fatal(err)
	}

	runs, err = st.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 2 {
		t.Fatalf("expected 2 runs, got %d", len(runs))
	}
	if runs[0].Preset != "dense" || runs[1].Preset != "calm" {
		t.Errorf("expected oldest first, got %s, %s", runs[0].Preset, runs[1].Preset)
	}
}

func TestStoreLoad_Missing(t *testing.T) {
	st := New(t.TempDir())
	if _, err := st.Load("nope"); err == nil {
		t.Error("expected error for missing run")
	}
	if _, _, err := st.LoadFrames("nope"); err == nil {
		t.Error("expected error for missing frames")
	}
}

func TestStoreLoadFrames_Malformed(t *testing.T) {
	dir := t.TempDir()
	st := New(dir)
	run := &Run{
		Meta:   RunMetadata{Preset: "classic"},
		Frames: []web.FrameStats{{Frame: 0, Links: 1}},
		CostMs: []float64{0.1},
	}
	runID, err := st.Save(run)
	if err != nil {
		t.Fatal(err)
	}

	csv := "frame,time,particles,candidates,links,link_dist,influence,speed,cost_ms\n" +
		"0,16,100,3,2,180,0,0.03,0.1\n" +
		"1,32,100,3,oops,180,0,0.03,0.1\n"
	if err := os.WriteFile(filepath.Join(dir, runID, "frames.csv"), []byte(csv), 0644); err != nil {
		t.Fatal(err)
	}

	frames, _, err := st.LoadFrames(runID)
	if err == nil {
		t.Fatalf("expected parse error, got %d frames", len(frames))
	}
	var numErr *strconv.NumError
	if !errors.As(err, &numErr) {
		t.Errorf("expected wrapped *strconv.NumError, got %v", err)
	}
}
