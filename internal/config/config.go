package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/teambition/rrule-go"
	"gopkg.in/yaml.v3"

	"github.com/jakechorley/duty-roster/pkg/core/model"
	"github.com/jakechorley/duty-roster/pkg/core/roster"
)

// DefaultConfigFile is the problem file looked up by Load
const DefaultConfigFile = "roster.yaml"

// Staff is a staff member entry of the problem file
type Staff struct {
	ID             string `yaml:"id" validate:"required"`
	Name           string `yaml:"name" validate:"required"`
	Tier           int    `yaml:"tier" validate:"min=1"`
	Group          string `yaml:"group,omitempty"`
	Quota          int    `yaml:"quota" validate:"min=0"`
	EmergencyQuota int    `yaml:"emergencyQuota,omitempty" validate:"min=0"`
	WeekendLimit   int    `yaml:"weekendLimit,omitempty" validate:"min=0"`

	OffDays           []int  `yaml:"offDays,omitempty" validate:"dive,min=1,max=31"`
	OffDaysRule       string `yaml:"offDaysRule,omitempty"`
	RequestedDays     []int  `yaml:"requestedDays,omitempty" validate:"dive,min=1,max=31"`
	RequestedDaysRule string `yaml:"requestedDaysRule,omitempty"`

	// Active defaults to true
	Active *bool `yaml:"active,omitempty"`

	Specialty string `yaml:"specialty,omitempty"`
	Room      string `yaml:"room,omitempty"`
}

// Service is a slot type entry of the problem file
type Service struct {
	ID            string   `yaml:"id" validate:"required"`
	Name          string   `yaml:"name,omitempty"`
	MinDailyCount int      `yaml:"minDailyCount" validate:"min=0"`
	MaxDailyCount int      `yaml:"maxDailyCount" validate:"min=1,gtefield=MinDailyCount"`
	AllowedTiers  []int    `yaml:"allowedTiers,omitempty" validate:"dive,min=1"`
	AllowedUnits  []string `yaml:"allowedUnits,omitempty"`
	PriorityTiers []int    `yaml:"priorityTiers,omitempty" validate:"dive,min=1"`
	RequiredGroup string   `yaml:"requiredGroup,omitempty"`
	IsEmergency   bool     `yaml:"isEmergency,omitempty"`
}

// Clinical holds the clinical profile section
type Clinical struct {
	Holidays         []int   `yaml:"holidays,omitempty" validate:"dive,min=1,max=31"`
	HolidayRule      string  `yaml:"holidayRule,omitempty"`
	FatigueModel     bool    `yaml:"fatigueModel,omitempty"`
	FatigueThreshold float64 `yaml:"fatigueThreshold,omitempty" validate:"min=0"`
	Genetic          bool    `yaml:"genetic,omitempty"`
	PopulationSize   int     `yaml:"populationSize,omitempty" validate:"min=0"`
	Generations      int     `yaml:"generations,omitempty" validate:"min=0"`
	EliteCount       int     `yaml:"eliteCount,omitempty" validate:"min=0"`
	CrossoverRate    float64 `yaml:"crossoverRate,omitempty" validate:"min=0,max=1"`
}

// Nursing holds the nursing profile section
type Nursing struct {
	// Permissions maps a unit or specialty to weekday names (MO, TU, ... or Monday, ...)
	Permissions map[string][]string `yaml:"permissions,omitempty"`
	DailyTarget int                 `yaml:"dailyTarget,omitempty" validate:"min=0"`
}

// Config represents a roster problem file
type Config struct {
	Profile        string    `yaml:"profile" validate:"required,oneof=clinical nursing"`
	Year           int       `yaml:"year" validate:"min=2000,max=2100"`
	Month          int       `yaml:"month" validate:"min=1,max=12"`
	Days           int       `yaml:"days,omitempty" validate:"min=0,max=31"`
	Seed           int64     `yaml:"seed,omitempty"`
	MaxRetries     int       `yaml:"maxRetries,omitempty" validate:"min=0"`
	Workers        int       `yaml:"workers,omitempty" validate:"min=0"`
	RandomizeOrder bool      `yaml:"randomizeOrder,omitempty"`
	AntiClustering bool      `yaml:"antiClustering,omitempty"`
	Staff          []Staff   `yaml:"staff" validate:"required,min=1,dive"`
	Services       []Service `yaml:"services" validate:"required,min=1,dive"`
	Clinical       *Clinical `yaml:"clinical,omitempty"`
	Nursing        *Nursing  `yaml:"nursing,omitempty"`
}

// Problem is a validated problem file converted into engine input
type Problem struct {
	Input roster.Input

	// Warnings describe suspicious but accepted input
	Warnings []string
}

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// Load loads and validates the problem file.
// It looks for the file in the current directory first, then in the user's home directory
func Load() (*Config, error) {
	configPath, err := findConfigFile()
	if err != nil {
		return nil, fmt.Errorf("failed to find config file: %w", err)
	}

	return LoadFromPath(configPath)
}

// LoadFromPath loads and validates the problem file at path
func LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates a problem file
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate validates the configuration struct and checks rrule syntax and id uniqueness
func Validate(cfg *Config) error {
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	staffIDs := make(map[string]bool, len(cfg.Staff))
	for i, s := range cfg.Staff {
		if staffIDs[s.ID] {
			return fmt.Errorf("duplicate staff id %q at staff[%d]", s.ID, i)
		}
		staffIDs[s.ID] = true

		for field, rule := range map[string]string{"offDaysRule": s.OffDaysRule, "requestedDaysRule": s.RequestedDaysRule} {
			if rule == "" {
				continue
			}
			if _, err := rrule.StrToRRule(rule); err != nil {
				return fmt.Errorf("invalid rrule in staff[%d].%s: %w", i, field, err)
			}
		}
	}

	serviceIDs := make(map[string]bool, len(cfg.Services))
	for i, s := range cfg.Services {
		if serviceIDs[s.ID] {
			return fmt.Errorf("duplicate service id %q at services[%d]", s.ID, i)
		}
		serviceIDs[s.ID] = true
	}

	if cl := cfg.Clinical; cl != nil {
		if cl.HolidayRule != "" {
			if _, err := rrule.StrToRRule(cl.HolidayRule); err != nil {
				return fmt.Errorf("invalid rrule in clinical.holidayRule: %w", err)
			}
		}
		if cl.PopulationSize > 0 && cl.EliteCount > cl.PopulationSize {
			return fmt.Errorf("clinical.eliteCount %d exceeds populationSize %d", cl.EliteCount, cl.PopulationSize)
		}
	}

	if cfg.Nursing != nil {
		for key, days := range cfg.Nursing.Permissions {
			for _, d := range days {
				if _, err := parseWeekday(d); err != nil {
					return fmt.Errorf("invalid weekday in nursing.permissions[%s]: %w", key, err)
				}
			}
		}
	}

	return nil
}

// Problem converts the file into engine input, expanding recurrence rules over the month
func (c *Config) Problem() (*Problem, error) {
	month := time.Month(c.Month)
	cfg := model.Config{
		Year:           c.Year,
		Month:          month,
		Days:           c.Days,
		MaxRetries:     c.MaxRetries,
		RandomizeOrder: c.RandomizeOrder,
		AntiClustering: c.AntiClustering,
		Seed:           c.Seed,
		Workers:        c.Workers,
	}

	var warnings []string
	profile := model.Profile(c.Profile)

	switch profile {
	case model.ProfileClinical:
		opts := &model.ClinicalOptions{FatigueThreshold: model.DefaultFatigueThreshold}
		if cl := c.Clinical; cl != nil {
			holidays, err := expandDays(cl.HolidayRule, c.Year, month)
			if err != nil {
				return nil, fmt.Errorf("failed to expand holiday rule: %w", err)
			}
			var dropped []int
			opts.Holidays, dropped = withinMonth(mergeDays(cl.Holidays, holidays), c.Year, month)
			if len(dropped) > 0 {
				warnings = append(warnings, fmt.Sprintf("holidays %v are outside %s %d and were ignored", dropped, month, c.Year))
			}
			opts.FatigueModel = cl.FatigueModel
			if cl.FatigueThreshold > 0 {
				opts.FatigueThreshold = cl.FatigueThreshold
			}
			opts.Genetic = cl.Genetic
			opts.PopulationSize = cl.PopulationSize
			opts.Generations = cl.Generations
			opts.EliteCount = cl.EliteCount
			opts.CrossoverRate = cl.CrossoverRate
		}
		if c.Nursing != nil {
			warnings = append(warnings, "nursing section ignored for the clinical profile")
		}
		if cfg.MaxRetries == 0 {
			cfg.MaxRetries = model.DefaultClinicalRetries
		}
		cfg.Options = opts

	case model.ProfileNursing:
		opts := &model.NursingOptions{}
		if n := c.Nursing; n != nil {
			opts.DailyTarget = n.DailyTarget
			if len(n.Permissions) > 0 {
				opts.Permissions = make(map[string][]time.Weekday, len(n.Permissions))
				for key, days := range n.Permissions {
					for _, d := range days {
						wd, err := parseWeekday(d)
						if err != nil {
							return nil, err
						}
						opts.Permissions[key] = append(opts.Permissions[key], wd)
					}
				}
			}
		}
		if c.Clinical != nil {
			warnings = append(warnings, "clinical section ignored for the nursing profile")
		}
		if cfg.MaxRetries == 0 {
			cfg.MaxRetries = model.DefaultNursingRetries
		}
		cfg.Options = opts

	default:
		return nil, fmt.Errorf("unknown profile %q", c.Profile)
	}

	staff := make([]model.StaffMember, 0, len(c.Staff))
	for _, s := range c.Staff {
		member, err := s.member(c.Year, month)
		if err != nil {
			return nil, err
		}
		var dropped []int
		if member.OffDays, dropped = withinMonth(member.OffDays, c.Year, month); len(dropped) > 0 {
			warnings = append(warnings, fmt.Sprintf("staff %s off days %v are outside %s %d and were ignored", s.ID, dropped, month, c.Year))
		}
		if member.RequestedDays, dropped = withinMonth(member.RequestedDays, c.Year, month); len(dropped) > 0 {
			warnings = append(warnings, fmt.Sprintf("staff %s requested days %v are outside %s %d and were ignored", s.ID, dropped, month, c.Year))
		}
		if overlap := intersect(member.OffDays, member.RequestedDays); len(overlap) > 0 {
			warnings = append(warnings, fmt.Sprintf("staff %s requested days %v that are also off days", s.ID, overlap))
		}
		staff = append(staff, member)
	}

	slots := make([]model.SlotType, 0, len(c.Services))
	for _, s := range c.Services {
		slot := model.SlotType{
			ID:            s.ID,
			Name:          s.Name,
			MinDailyCount: s.MinDailyCount,
			MaxDailyCount: s.MaxDailyCount,
			AllowedTiers:  s.AllowedTiers,
			AllowedUnits:  s.AllowedUnits,
			PriorityTiers: s.PriorityTiers,
			RequiredGroup: s.RequiredGroup,
			IsEmergency:   s.IsEmergency,
		}
		if slot.Name == "" {
			slot.Name = slot.ID
		}
		if !slot.HasEligibilitySet() {
			warnings = append(warnings, fmt.Sprintf("service %s has no allowed tiers or units; nobody can fill it", s.ID))
		}
		slots = append(slots, slot)
	}

	return &Problem{
		Input:    roster.Input{Staff: staff, SlotTypes: slots, Config: cfg},
		Warnings: warnings,
	}, nil
}

func (s Staff) member(year int, month time.Month) (model.StaffMember, error) {
	off, err := expandDays(s.OffDaysRule, year, month)
	if err != nil {
		return model.StaffMember{}, fmt.Errorf("failed to expand off days rule for %s: %w", s.ID, err)
	}
	requested, err := expandDays(s.RequestedDaysRule, year, month)
	if err != nil {
		return model.StaffMember{}, fmt.Errorf("failed to expand requested days rule for %s: %w", s.ID, err)
	}

	active := true
	if s.Active != nil {
		active = *s.Active
	}

	return model.StaffMember{
		ID:             s.ID,
		Name:           s.Name,
		Tier:           s.Tier,
		Group:          s.Group,
		Quota:          s.Quota,
		EmergencyQuota: s.EmergencyQuota,
		WeekendLimit:   s.WeekendLimit,
		OffDays:        mergeDays(s.OffDays, off),
		RequestedDays:  mergeDays(s.RequestedDays, requested),
		Active:         active,
		Specialty:      s.Specialty,
		RoomID:         s.Room,
	}, nil
}

// withinMonth splits days into those that exist in the calendar month and those that do not
func withinMonth(days []int, year int, month time.Month) (kept, dropped []int) {
	length := time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
	for _, d := range days {
		if d >= 1 && d <= length {
			kept = append(kept, d)
		} else {
			dropped = append(dropped, d)
		}
	}
	return kept, dropped
}

// expandDays returns the days of the month on which an RRULE occurs
func expandDays(rule string, year int, month time.Month) ([]int, error) {
	if rule == "" {
		return nil, nil
	}

	r, err := rrule.StrToRRule(rule)
	if err != nil {
		return nil, fmt.Errorf("failed to parse rrule: %w", err)
	}

	start := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, -1)
	r.DTStart(start)

	var days []int
	for _, occurrence := range r.Between(start, end, true) {
		days = append(days, occurrence.Day())
	}
	return days, nil
}

// mergeDays returns the sorted union of day lists
func mergeDays(lists ...[]int) []int {
	seen := make(map[int]bool)
	var out []int
	for _, list := range lists {
		for _, d := range list {
			if !seen[d] {
				seen[d] = true
				out = append(out, d)
			}
		}
	}
	sort.Ints(out)
	return out
}

func intersect(a, b []int) []int {
	in := make(map[int]bool, len(a))
	for _, d := range a {
		in[d] = true
	}
	var out []int
	for _, d := range b {
		if in[d] {
			out = append(out, d)
		}
	}
	return out
}

var weekdayNames = map[string]time.Weekday{
	"su": time.Sunday, "sun": time.Sunday, "sunday": time.Sunday,
	"mo": time.Monday, "mon": time.Monday, "monday": time.Monday,
	"tu": time.Tuesday, "tue": time.Tuesday, "tuesday": time.Tuesday,
	"we": time.Wednesday, "wed": time.Wednesday, "wednesday": time.Wednesday,
	"th": time.Thursday, "thu": time.Thursday, "thursday": time.Thursday,
	"fr": time.Friday, "fri": time.Friday, "friday": time.Friday,
	"sa": time.Saturday, "sat": time.Saturday, "saturday": time.Saturday,
}

func parseWeekday(s string) (time.Weekday, error) {
	wd, ok := weekdayNames[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return 0, fmt.Errorf("unknown weekday %q", s)
	}
	return wd, nil
}

// findConfigFile searches for roster.yaml in current directory and home directory
func findConfigFile() (string, error) {
	if _, err := os.Stat(DefaultConfigFile); err == nil {
		return DefaultConfigFile, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	homeConfigPath := filepath.Join(homeDir, DefaultConfigFile)
	if _, err := os.Stat(homeConfigPath); err == nil {
		return homeConfigPath, nil
	}

	return "", fmt.Errorf("config file not found in current directory or home directory")
}
