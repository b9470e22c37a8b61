package model

import "time"

// Profile identifies the constraint profile a roster is generated under
type Profile string

const (
	ProfileClinical Profile = "clinical"
	ProfileNursing  Profile = "nursing"
)

func (p Profile) IsValid() bool {
	return p == ProfileClinical || p == ProfileNursing
}

// Default attempt counts per profile
const (
	DefaultClinicalRetries = 1000
	DefaultNursingRetries  = 50

	DefaultPopulationSize   = 50
	DefaultGenerations      = 20
	DefaultEliteCount       = 5
	DefaultCrossoverRate    = 0.7
	DefaultFatigueThreshold = 8.0
)

// Config is the shared base configuration for one generation run
type Config struct {
	Year  int
	Month time.Month

	// Days truncates the month to its first N days when non-zero
	Days int

	// MaxRetries is the number of Monte Carlo attempts
	MaxRetries int

	// RandomizeOrder shuffles days of equal difficulty
	RandomizeOrder bool

	// AntiClustering discourages every-other-day patterns
	AntiClustering bool

	// Seed makes a run reproducible. Zero draws a random seed
	Seed int64

	// Workers is the number of goroutines running attempts (<= 1 runs serially)
	Workers int

	// Options carries the profile specific settings
	Options ProfileOptions
}

// Profile returns the profile selected by the options (clinical when unset)
func (c Config) Profile() Profile {
	if c.Options == nil {
		return ProfileClinical
	}
	return c.Options.Profile()
}

// DaysInMonth returns the number of days covered by the run
func (c Config) DaysInMonth() int {
	days := time.Date(c.Year, c.Month+1, 0, 0, 0, 0, 0, time.UTC).Day()
	if c.Days > 0 && c.Days < days {
		return c.Days
	}
	return days
}

// Clinical returns the clinical options, or nil for another profile
func (c Config) Clinical() *ClinicalOptions {
	if opts, ok := c.Options.(*ClinicalOptions); ok {
		return opts
	}
	return nil
}

// Nursing returns the nursing options, or nil for another profile
func (c Config) Nursing() *NursingOptions {
	if opts, ok := c.Options.(*NursingOptions); ok {
		return opts
	}
	return nil
}

// ProfileOptions is implemented by exactly the profile option types in this package
type ProfileOptions interface {
	Profile() Profile
	isProfileOptions()
}

// ClinicalOptions configures physician rosters
type ClinicalOptions struct {
	// Holidays are day-of-month numbers treated like weekend days
	Holidays []int

	// FatigueModel enables the accumulated stress penalty
	FatigueModel     bool
	FatigueThreshold float64

	// Genetic switches from Monte Carlo restarts to genetic refinement
	Genetic        bool
	PopulationSize int
	Generations    int
	EliteCount     int
	CrossoverRate  float64
}

func (*ClinicalOptions) Profile() Profile { return ProfileClinical }
func (*ClinicalOptions) isProfileOptions() {}

// NursingOptions configures nursing-unit rosters
type NursingOptions struct {
	// Permissions maps a unit name or specialty tag to the weekdays it may work.
	// Keys absent from the table are allowed every day.
	Permissions map[string][]time.Weekday

	// DailyTarget caps optional positions once a day holds this many assignments (0 = no cap)
	DailyTarget int
}

func (*NursingOptions) Profile() Profile { return ProfileNursing }
func (*NursingOptions) isProfileOptions() {}
