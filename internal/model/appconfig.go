package model

// AppConfig holds application-wide preferences and the defaults used
// when a new profile is started.
type AppConfig struct {
	// Profile defaults
	DefaultBarLength      float64 `json:"default_bar_length_mm"`
	DefaultPricePerKg     float64 `json:"default_price_per_kg"`
	DefaultWeightPerMeter float64 `json:"default_weight_per_meter"`

	// Report settings
	LogoPath  string `json:"logo_path"`  // PNG/JPG drawn in the PDF header, optional
	OutputDir string `json:"output_dir"` // Where exports go when no path is given

	// Application preferences
	Workers    int      `json:"workers"` // Profiles planned in parallel, 1 = sequential
	RecentJobs []string `json:"recent_jobs"`
	Theme      string   `json:"theme"` // "light", "dark", "system"
}

// DefaultAppConfig returns an AppConfig populated with sensible defaults.
func DefaultAppConfig() AppConfig {
	return AppConfig{
		DefaultBarLength:      DefaultBarLengthMM,
		DefaultPricePerKg:     0,
		DefaultWeightPerMeter: 0,
		LogoPath:              "",
		OutputDir:             ".",
		Workers:               1,
		RecentJobs:            []string{},
		Theme:                 "system",
	}
}

// NewProfile starts a profile carrying this config's defaults.
func (c AppConfig) NewProfile(code string) Profile {
	return NewProfile(code, c.DefaultWeightPerMeter, c.DefaultBarLength, c.DefaultPricePerKg)
}

// AddRecentJob records path as most recently used, keeping at most max entries.
func (c *AppConfig) AddRecentJob(path string, max int) {
	recent := []string{path}
	for _, p := range c.RecentJobs {
		if p != path {
			recent = append(recent, p)
		}
	}
	if max > 0 && len(recent) > max {
		recent = recent[:max]
	}
	c.RecentJobs = recent
}
