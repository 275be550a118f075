package model

import (
	"testing"
)

func TestJobAddReplaceRemove(t *testing.T) {
	j := NewJob("Obra Ramirez")
	if j.CreatedAt == "" || j.UpdatedAt == "" {
		t.Error("expected timestamps to be set")
	}

	a := NewProfile("A", 0.5, 6000, 4, NewCutGroup(1000, 2, Angle90))
	b := NewProfile("B", 0.5, 6000, 4)
	j.Add(a)
	j.Add(b)

	codes := j.Codes()
	if len(codes) != 2 || codes[0] != "A" || codes[1] != "B" {
		t.Errorf("expected [A B], got %v", codes)
	}

	a.Code = "A2"
	if !j.Replace(a) {
		t.Fatal("expected replace to find profile")
	}
	if j.FindByID(a.ID).Code != "A2" {
		t.Error("expected replaced code A2")
	}
	if j.Replace(Profile{ID: "missing"}) {
		t.Error("replace of unknown ID should fail")
	}

	if !j.Remove(b.ID) {
		t.Error("expected remove to succeed")
	}
	if len(j.Profiles) != 1 {
		t.Errorf("expected 1 profile, got %d", len(j.Profiles))
	}
	if j.FindByID(b.ID) != nil {
		t.Error("removed profile should not be found")
	}
}

func TestJobSnapshotIsDeepCopy(t *testing.T) {
	j := NewJob("test")
	j.Add(NewProfile("A", 0.5, 6000, 4, NewCutGroup(1000, 1, Angle90)))

	snap := j.Snapshot()
	snap[0].Cuts[0].Length = 1
	snap[0].Code = "changed"

	if j.Profiles[0].Cuts[0].Length != 1000 {
		t.Error("snapshot should not share cuts with the job")
	}
	if j.Profiles[0].Code != "A" {
		t.Error("snapshot should not share profiles with the job")
	}
}

func TestEmptyJobSnapshot(t *testing.T) {
	var j Job
	if snap := j.Snapshot(); snap == nil || len(snap) != 0 {
		t.Errorf("expected empty non-nil snapshot, got %v", snap)
	}
}
