// Package project persists jobs, the application config and the profile
// catalog on disk.
package project

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/google/uuid"

	"github.com/piwi3910/BarCut/internal/model"
)

// JobExtension is the extension of JSON job files.
const JobExtension = ".barcut"

// profileFile is a profile as stored in a job file. Hand-written files may
// list cut groups instead of (or in addition to) expanded cuts.
type profileFile struct {
	model.Profile `yaml:",inline"`
	Groups        []model.CutGroup `json:"groups,omitempty" yaml:"groups,omitempty"`
}

type jobFile struct {
	Name      string        `json:"name" yaml:"name"`
	CreatedAt string        `json:"created_at,omitempty" yaml:"created_at,omitempty"`
	UpdatedAt string        `json:"updated_at,omitempty" yaml:"updated_at,omitempty"`
	Profiles  []profileFile `json:"profiles" yaml:"profiles"`
}

// IsYAML reports whether path names a YAML job file.
func IsYAML(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}

// IsJobFile reports whether path names a job file rather than a cut list.
func IsJobFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == JobExtension || ext == ".json" || IsYAML(path)
}

// Save writes the job to path. Files ending in .yaml or .yml are written
// as YAML, everything else as indented JSON.
func Save(path string, job model.Job) error {
	file := jobFile{
		Name:      job.Name,
		CreatedAt: job.CreatedAt,
		UpdatedAt: job.UpdatedAt,
		Profiles:  make([]profileFile, len(job.Profiles)),
	}
	for i, p := range job.Profiles {
		file.Profiles[i] = profileFile{Profile: p}
	}

	if !IsYAML(path) {
		if err := writeJSON(path, file); err != nil {
			return fmt.Errorf("save job: %w", err)
		}
		return nil
	}

	data, err := yaml.Marshal(file)
	if err != nil {
		return fmt.Errorf("save job: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("save job: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}

// Load reads a job from a JSON or YAML file. Cut groups are expanded and
// appended to each profile's cuts; profiles without an ID get one.
func Load(path string) (model.Job, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.Job{}, fmt.Errorf("load job: %w", err)
	}

	var file jobFile
	if IsYAML(path) {
		err = yaml.Unmarshal(data, &file)
	} else {
		err = json.Unmarshal(data, &file)
	}
	if err != nil {
		return model.Job{}, fmt.Errorf("parse job %s: %w", filepath.Base(path), err)
	}

	job := model.Job{
		Name:      file.Name,
		CreatedAt: file.CreatedAt,
		UpdatedAt: file.UpdatedAt,
		Profiles:  make([]model.Profile, 0, len(file.Profiles)),
	}
	if job.Name == "" {
		job.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	for _, pf := range file.Profiles {
		p := pf.Profile
		if p.ID == "" {
			p.ID = uuid.New().String()[:8]
		}
		if p.Cuts == nil {
			p.Cuts = []model.CutRequest{}
		}
		for i, c := range p.Cuts {
			if !c.Angle.Valid() {
				return model.Job{}, fmt.Errorf("load job %s: profile %s: cut #%d: unsupported angle %d (use 45 or 90)",
					filepath.Base(path), p.Code, i+1, int(c.Angle))
			}
		}
		for i, g := range pf.Groups {
			g, err := normalizeGroup(g)
			if err != nil {
				return model.Job{}, fmt.Errorf("load job %s: profile %s: group #%d: %w",
					filepath.Base(path), p.Code, i+1, err)
			}
			p.AddGroup(g)
		}
		job.Profiles = append(job.Profiles, p)
	}
	return job, nil
}

// normalizeGroup applies the defaults and aliases of a hand-written cut
// group and rejects groups that would expand to nothing or to bad cuts.
func normalizeGroup(g model.CutGroup) (model.CutGroup, error) {
	adj, ok := model.ParseAdjustment(string(g.Adjustment))
	if !ok {
		return g, fmt.Errorf("unknown adjustment %q", g.Adjustment)
	}
	g.Adjustment = adj
	if g.Angle == 0 {
		g.Angle = model.Angle90
	}
	if !g.Angle.Valid() {
		return g, fmt.Errorf("unsupported angle %d (use 45 or 90)", int(g.Angle))
	}
	if g.Quantity < 1 {
		return g, fmt.Errorf("quantity must be at least 1, got %d", g.Quantity)
	}
	if g.AdjustBy < 0 {
		return g, fmt.Errorf("adjustment must not be negative")
	}
	if length := g.FinalLength(); !(length > 0) || math.IsInf(length, 0) {
		return g, fmt.Errorf("adjusted length %.1f mm must be positive", length)
	}
	return g, nil
}
