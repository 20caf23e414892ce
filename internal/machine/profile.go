package machine

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// FileSystem abstracts file access for profile loading so tests can use
// an in-memory file system.
type FileSystem interface {
	// ReadFile reads the entire file at path.
	ReadFile(path string) ([]byte, error)
}

// OSFS implements FileSystem using the real OS file system.
type OSFS struct{}

// ReadFile reads the entire file at path.
func (OSFS) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// Profile is a machine profile: a TOML document overriding the
// compiled-in parameter defaults before the table is built. Zero fields
// are treated as "not set".
type Profile struct {
	System SystemProfile           `toml:"system"`
	Axis   map[string]AxisProfile  `toml:"axis"`
	Motor  map[string]MotorProfile `toml:"motor"`
}

// SystemProfile overrides system settings.
type SystemProfile struct {
	StatusInterval uint32 `toml:"status-interval"`
	JSONVerbosity  uint8  `toml:"json-verbosity"`
	TextVerbosity  uint8  `toml:"text-verbosity"`
}

// AxisProfile overrides one axis block, keyed by axis letter.
type AxisProfile struct {
	VelocityMax float64 `toml:"velocity-max"`
	FeedRateMax float64 `toml:"feedrate-max"`
	TravelMax   float64 `toml:"travel-max"`
	JerkMax     float64 `toml:"jerk-max"`
	JunctionDev float64 `toml:"junction-deviation"`
}

// MotorProfile overrides one motor block, keyed by motor number.
type MotorProfile struct {
	StepAngle    float64 `toml:"step-angle"`
	TravelPerRev float64 `toml:"travel-per-rev"`
	Microsteps   uint8   `toml:"microsteps"`
}

// LoadProfile reads a profile from the OS file system.
// Returns nil, nil if the file doesn't exist (not an error).
func LoadProfile(path string) (*Profile, error) {
	return LoadProfileFS(OSFS{}, path)
}

// LoadProfileFS reads a profile through the given file system.
func LoadProfileFS(fsys FileSystem, path string) (*Profile, error) {
	data, err := fsys.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read profile %s: %w", path, err)
	}

	var p Profile
	if err := toml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parse profile %s: %w", path, err)
	}
	return &p, nil
}

// axisDefaults returns the default block for axis letter g with the
// profile's non-zero overrides applied.
func (p *Profile) axisDefaults(g string, base Axis) Axis {
	if p == nil {
		return base
	}
	src, ok := p.Axis[g]
	if !ok {
		return base
	}
	if src.VelocityMax != 0 {
		base.VelocityMax = src.VelocityMax
	}
	if src.FeedRateMax != 0 {
		base.FeedRateMax = src.FeedRateMax
	}
	if src.TravelMax != 0 {
		base.TravelMax = src.TravelMax
	}
	if src.JerkMax != 0 {
		base.JerkMax = src.JerkMax
	}
	if src.JunctionDev != 0 {
		base.JunctionDev = src.JunctionDev
	}
	return base
}

// motorDefaultsFor returns the default block for motor number g with the
// profile's non-zero overrides applied.
func (p *Profile) motorDefaultsFor(g string, base Motor) Motor {
	if p == nil {
		return base
	}
	src, ok := p.Motor[g]
	if !ok {
		return base
	}
	if src.StepAngle != 0 {
		base.StepAngle = src.StepAngle
	}
	if src.TravelPerRev != 0 {
		base.TravelPerRev = src.TravelPerRev
	}
	if src.Microsteps != 0 {
		base.Microsteps = src.Microsteps
	}
	return base
}

// systemDefaults returns the system default overrides, zero meaning
// "keep the compiled-in value".
func (p *Profile) systemDefaults() SystemProfile {
	if p == nil {
		return SystemProfile{}
	}
	return p.System
}
