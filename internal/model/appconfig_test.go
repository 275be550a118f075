package model

import (
	"testing"
)

func TestDefaultAppConfig(t *testing.T) {
	cfg := DefaultAppConfig()

	if cfg.DefaultBarLength != 6000 {
		t.Errorf("expected default bar length 6000, got %f", cfg.DefaultBarLength)
	}
	if cfg.Workers != 1 {
		t.Errorf("expected 1 worker, got %d", cfg.Workers)
	}
	if cfg.Theme != "system" {
		t.Errorf("expected theme system, got %s", cfg.Theme)
	}
	if cfg.RecentJobs == nil {
		t.Error("expected non-nil recent jobs")
	}
}

func TestAppConfigNewProfile(t *testing.T) {
	cfg := DefaultAppConfig()
	cfg.DefaultPricePerKg = 4.5
	cfg.DefaultWeightPerMeter = 0.6

	p := cfg.NewProfile("MARCO-20")
	if p.Code != "MARCO-20" || p.BarLength != 6000 || p.PricePerKg != 4.5 || p.WeightPerMeter != 0.6 {
		t.Errorf("profile does not carry defaults: %+v", p)
	}
}

func TestAddRecentJob(t *testing.T) {
	cfg := DefaultAppConfig()
	cfg.AddRecentJob("a.barcut", 3)
	cfg.AddRecentJob("b.barcut", 3)
	cfg.AddRecentJob("c.barcut", 3)
	cfg.AddRecentJob("a.barcut", 3)

	want := []string{"a.barcut", "c.barcut", "b.barcut"}
	if len(cfg.RecentJobs) != len(want) {
		t.Fatalf("expected %d recent jobs, got %v", len(want), cfg.RecentJobs)
	}
	for i := range want {
		if cfg.RecentJobs[i] != want[i] {
			t.Errorf("recent[%d] = %s, want %s", i, cfg.RecentJobs[i], want[i])
		}
	}

	cfg.AddRecentJob("d.barcut", 3)
	if len(cfg.RecentJobs) != 3 || cfg.RecentJobs[0] != "d.barcut" {
		t.Errorf("expected d.barcut first and list capped at 3, got %v", cfg.RecentJobs)
	}
}
