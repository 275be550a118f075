package project

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/piwi3910/BarCut/internal/model"
)

func buildTestJob() model.Job {
	job := model.NewJob("Obra Ramirez")
	job.Add(model.NewProfile("MARCO-20", 0.512, 6000, 4.5,
		model.CutGroup{Label: "Jamb", Length: 1450, Adjustment: model.AdjustSubtract, AdjustBy: 12, Quantity: 2, Angle: model.Angle45},
		model.NewCutGroup(800, 3, model.Angle90),
	))
	job.Add(model.NewProfile("HOJA-20", 0.436, 6200, 4.5))
	return job
}

func assertSameJob(t *testing.T, want, got model.Job) {
	t.Helper()
	if got.Name != want.Name {
		t.Errorf("expected name %q, got %q", want.Name, got.Name)
	}
	if len(got.Profiles) != len(want.Profiles) {
		t.Fatalf("expected %d profiles, got %d", len(want.Profiles), len(got.Profiles))
	}
	for i := range want.Profiles {
		w, g := want.Profiles[i], got.Profiles[i]
		if g.ID != w.ID || g.Code != w.Code || g.BarLength != w.BarLength || g.WeightPerMeter != w.WeightPerMeter || g.PricePerKg != w.PricePerKg {
			t.Errorf("profile %d mismatch: want %+v, got %+v", i, w, g)
		}
		if len(g.Cuts) != len(w.Cuts) {
			t.Fatalf("profile %d: expected %d cuts, got %d", i, len(w.Cuts), len(g.Cuts))
		}
		for j := range w.Cuts {
			if g.Cuts[j] != w.Cuts[j] {
				t.Errorf("profile %d cut %d: want %+v, got %+v", i, j, w.Cuts[j], g.Cuts[j])
			}
		}
	}
}

func TestSaveAndLoadJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "obra"+JobExtension)
	job := buildTestJob()

	if err := Save(path, job); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	assertSameJob(t, job, loaded)

	if loaded.Profiles[0].Cuts[0].Length != 1438 || loaded.Profiles[0].Cuts[0].Label != "Jamb" {
		t.Errorf("expected adjusted Jamb cut, got %+v", loaded.Profiles[0].Cuts[0])
	}
	if loaded.Profiles[1].Cuts == nil {
		t.Error("empty cut list should load as empty, not nil")
	}
}

func TestSaveAndLoadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "obra.yaml")
	job := buildTestJob()

	if err := Save(path, job); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	assertSameJob(t, job, loaded)
}

func TestLoadHandWrittenYAMLGroups(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cortes.yml")
	content := `profiles:
  - code: MARCO-20
    weight_per_meter: 0.512
    bar_length_mm: 6000
    price_per_kg: 4.5
    groups:
      - length_mm: 1200
        quantity: 2
        angle: 45
      - length_mm: 900
        adjustment: add
        adjust_mm: 5
        quantity: 1
      - length_mm: 500
        quantity: 3
        label: Rail
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	job, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if job.Name != "cortes" {
		t.Errorf("expected name from file, got %q", job.Name)
	}
	if len(job.Profiles) != 1 {
		t.Fatalf("expected 1 profile, got %d", len(job.Profiles))
	}

	p := job.Profiles[0]
	if p.ID == "" {
		t.Error("expected generated ID")
	}
	want := []model.CutRequest{
		{Length: 1200, Angle: model.Angle45},
		{Length: 1200, Angle: model.Angle45},
		{Length: 905, Angle: model.Angle90},
		{Length: 500, Angle: model.Angle90, Label: "Rail"},
		{Length: 500, Angle: model.Angle90, Label: "Rail"},
		{Length: 500, Angle: model.Angle90, Label: "Rail"},
	}
	if len(p.Cuts) != len(want) {
		t.Fatalf("expected %d cuts, got %d", len(want), len(p.Cuts))
	}
	for i := range want {
		if p.Cuts[i] != want[i] {
			t.Errorf("cut %d: want %+v, got %+v", i, want[i], p.Cuts[i])
		}
	}
}

func TestLoadYAMLGroupAdjustmentAliases(t *testing.T) {
	path := filepath.Join(t.TempDir(), "obra.yaml")
	content := `profiles:
  - code: HOJA-20
    bar_length_mm: 6000
    groups:
      - length_mm: 1000
        adjustment: restar
        adjust_mm: 10
        quantity: 1
      - length_mm: 700
        adjustment: sumar
        adjust_mm: 3
        quantity: 1
        angle: 45
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	job, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	want := []model.CutRequest{
		{Length: 990, Angle: model.Angle90},
		{Length: 703, Angle: model.Angle45},
	}
	cuts := job.Profiles[0].Cuts
	if len(cuts) != len(want) {
		t.Fatalf("expected %d cuts, got %d", len(want), len(cuts))
	}
	for i := range want {
		if cuts[i] != want[i] {
			t.Errorf("cut %d: want %+v, got %+v", i, want[i], cuts[i])
		}
	}
}

func TestLoadRejectsInvalidGroupsAndCuts(t *testing.T) {
	const header = `profiles:
  - code: MARCO-20
    bar_length_mm: 6000
`
	tests := []struct {
		name    string
		body    string
		wantMsg string
	}{
		{"zero quantity", "    groups:\n      - length_mm: 500\n        quantity: 0\n", "quantity"},
		{"negative quantity", "    groups:\n      - length_mm: 500\n        quantity: -2\n", "quantity"},
		{"unknown adjustment", "    groups:\n      - length_mm: 500\n        adjustment: double\n        quantity: 1\n", "adjustment"},
		{"unsupported group angle", "    groups:\n      - length_mm: 500\n        quantity: 1\n        angle: 30\n", "angle"},
		{"adjusted to zero", "    groups:\n      - length_mm: 10\n        adjustment: restar\n        adjust_mm: 10\n        quantity: 1\n", "must be positive"},
		{"unsupported cut angle", "    cuts:\n      - length_mm: 500\n        angle: 30\n", "angle"},
		{"zero cut angle", "    cuts:\n      - length_mm: 500\n", "angle"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "job.yaml")
			if err := os.WriteFile(path, []byte(header+tt.body), 0644); err != nil {
				t.Fatal(err)
			}
			_, err := Load(path)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.wantMsg) || !strings.Contains(err.Error(), "MARCO-20") {
				t.Errorf("expected error naming %q and the profile, got %v", tt.wantMsg, err)
			}
		})
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := Load("/nonexistent/job.barcut"); err == nil {
		t.Error("expected error for missing file")
	}

	path := filepath.Join(t.TempDir(), "bad.barcut")
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected error for invalid JSON")
	}
}

func TestIsJobFile(t *testing.T) {
	cases := map[string]bool{
		"a.barcut": true,
		"a.json":   true,
		"a.YAML":   true,
		"a.yml":    true,
		"a.csv":    false,
		"a.xlsx":   false,
	}
	for path, want := range cases {
		if got := IsJobFile(path); got != want {
			t.Errorf("IsJobFile(%q) = %v, want %v", path, got, want)
		}
	}
}
