package config

import (
	"bytes"
	"errors"
	"io"

	"gopkg.in/yaml.v3"
)

// yamlFile is the on-disk YAML shape.
type yamlFile struct {
	LockFile string   `yaml:"lockfile"`
	Copies   []Region `yaml:"copies"`
}

// ParseYAML parses a YAML configuration:
//
//	lockfile: /var/lock/fw_printenv.lock
//	copies:
//	  - device: /dev/mmcblk0
//	    offset: 0x3f8000
//	    size: 0x4000
//
// Unknown fields are rejected so typos surface early. The result is not
// validated.
func ParseYAML(data []byte) (*Config, error) {
	var f yamlFile
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return nil, configErr("parse yaml", err)
	}
	cfg := &Config{Regions: f.Copies, LockFile: f.LockFile}
	if cfg.LockFile == "" {
		cfg.LockFile = DefaultLockFile
	}
	return cfg, nil
}
