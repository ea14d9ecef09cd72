// Package config describes where stored environment copies live.
//
// A Config names one region (single copy) or two regions (redundant
// copies). It is loaded once, validated, and treated as immutable by the
// engine. Two file formats are accepted: the traditional whitespace
// separated fw_env.config and a YAML document.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joshuapare/bootenv/internal/format"
	"github.com/joshuapare/bootenv/pkg/types"
)

const (
	// DefaultPath is where the CLI looks for a configuration file.
	DefaultPath = "/etc/fw_env.config"
	// DefaultLockFile serializes CLI invocations against the same media.
	DefaultLockFile = "/var/lock/fw_printenv.lock"

	// MaxRegions is the number of copies a redundant configuration carries.
	MaxRegions = 2
)

// Region locates one stored copy.
type Region struct {
	Device     string `yaml:"device"`
	Offset     int64  `yaml:"offset"`
	Size       int    `yaml:"size"`
	SectorSize int    `yaml:"sectorsize,omitempty"` // erase-block size, 0 if unknown
	Sectors    int    `yaml:"sectors,omitempty"`    // erase blocks in the region, 0 means 1
}

// End returns the offset just past the region.
func (r Region) End() int64 { return r.Offset + int64(r.Size) }

// Config is the validated storage description.
type Config struct {
	Regions  []Region
	LockFile string
}

// Redundant reports whether two copies are configured.
func (c *Config) Redundant() bool { return len(c.Regions) == MaxRegions }

// Layout returns the stored copy layout shared by every region.
func (c *Config) Layout() format.Layout {
	if len(c.Regions) == 0 {
		return format.Layout{}
	}
	return format.Layout{Size: c.Regions[0].Size, Redundant: c.Redundant()}
}

// Validate checks the configuration for consistency.
func (c *Config) Validate() error {
	if n := len(c.Regions); n == 0 || n > MaxRegions {
		return configErr(fmt.Sprintf("need 1 or %d regions, have %d", MaxRegions, n), nil)
	}
	layout := c.Layout()
	for i, r := range c.Regions {
		if err := r.validate(layout); err != nil {
			return configErr(fmt.Sprintf("region %d (%s)", i, r.Device), err)
		}
	}
	if c.Redundant() {
		a, b := c.Regions[0], c.Regions[1]
		if a.Size != b.Size {
			return configErr(fmt.Sprintf("redundant regions differ in size: %d vs %d", a.Size, b.Size), nil)
		}
		if a.Device == b.Device && a.Offset < b.End() && b.Offset < a.End() {
			return configErr(fmt.Sprintf("redundant regions overlap on %s", a.Device), nil)
		}
	}
	return nil
}

func (r Region) validate(l format.Layout) error {
	if r.Device == "" {
		return fmt.Errorf("missing device path")
	}
	if r.Offset < 0 {
		return fmt.Errorf("negative offset %d", r.Offset)
	}
	if r.Size <= 0 {
		return fmt.Errorf("size must be positive, got %d", r.Size)
	}
	if err := (format.Layout{Size: r.Size, Redundant: l.Redundant}).Validate(); err != nil {
		return err
	}
	if r.SectorSize < 0 || r.Sectors < 0 {
		return fmt.Errorf("negative sector geometry %d x %d", r.SectorSize, r.Sectors)
	}
	if r.SectorSize > 0 {
		sectors := max(r.Sectors, 1)
		if r.Size > r.SectorSize*sectors {
			return fmt.Errorf("size %d exceeds %d sector(s) of %d bytes", r.Size, sectors, r.SectorSize)
		}
	}
	return nil
}

// Load reads and validates the configuration at path. Files ending in .yaml
// or .yml are parsed as YAML, everything else as fw_env.config.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, configErr("read "+path, err)
	}
	var cfg *Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		cfg, err = ParseYAML(data)
	default:
		cfg, err = ParseLegacy(data)
	}
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func configErr(msg string, err error) error {
	return &types.Error{Kind: types.ErrKindConfig, Msg: "config: " + msg, Err: err}
}
