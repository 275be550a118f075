package model

import (
	"time"
)

// Job is the caller-owned list of profiles entered in one session.
// Plans are not stored: they are recomputed from the profiles.
type Job struct {
	Name      string    `json:"name" yaml:"name"`
	CreatedAt string    `json:"created_at" yaml:"created_at"`
	UpdatedAt string    `json:"updated_at" yaml:"updated_at"`
	Profiles  []Profile `json:"profiles" yaml:"profiles"`
}

// NewJob creates an empty job stamped with the current time.
func NewJob(name string) Job {
	now := time.Now().UTC().Format(time.RFC3339)
	return Job{
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
		Profiles:  []Profile{},
	}
}

// Add appends a profile to the job.
func (j *Job) Add(p Profile) {
	j.Profiles = append(j.Profiles, p)
	j.touch()
}

// Replace swaps the profile with the same ID. Returns false if not found.
func (j *Job) Replace(p Profile) bool {
	for i := range j.Profiles {
		if j.Profiles[i].ID == p.ID {
			j.Profiles[i] = p
			j.touch()
			return true
		}
	}
	return false
}

// Remove removes a profile by ID. Returns true if found and removed.
func (j *Job) Remove(id string) bool {
	for i, p := range j.Profiles {
		if p.ID == id {
			j.Profiles = append(j.Profiles[:i], j.Profiles[i+1:]...)
			j.touch()
			return true
		}
	}
	return false
}

// FindByID returns a pointer to the profile with the given ID, or nil.
func (j *Job) FindByID(id string) *Profile {
	for i := range j.Profiles {
		if j.Profiles[i].ID == id {
			return &j.Profiles[i]
		}
	}
	return nil
}

// Codes returns the profile codes in job order.
func (j *Job) Codes() []string {
	codes := make([]string, len(j.Profiles))
	for i, p := range j.Profiles {
		codes[i] = p.Code
	}
	return codes
}

// Snapshot returns a deep copy of the job's profiles.
func (j Job) Snapshot() []Profile {
	return copyProfiles(j.Profiles)
}

func (j *Job) touch() {
	j.UpdatedAt = time.Now().UTC().Format(time.RFC3339)
}

// copyProfiles creates a deep copy of a profiles slice.
func copyProfiles(profiles []Profile) []Profile {
	if profiles == nil {
		return []Profile{}
	}
	cp := make([]Profile, len(profiles))
	for i, p := range profiles {
		cp[i] = p.Clone()
	}
	return cp
}
