package config

import (
	"bufio"
	"bytes"
	"fmt"
	"strconv"
	"strings"
)

const commentPrefix = "#"

// ParseLegacy parses the fw_env.config format:
//
//	# device       offset    size     [sector size  [sectors]]
//	/dev/mmcblk0   0x3f8000  0x4000
//	/dev/mmcblk0   0x3fc000  0x4000
//
// Numbers may be decimal or 0x-prefixed hex. The result is not validated.
func ParseLegacy(data []byte) (*Config, error) {
	cfg := &Config{LockFile: DefaultLockFile}
	scanner := bufio.NewScanner(bytes.NewReader(data))
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if i := strings.Index(line, commentPrefix); i >= 0 {
			line = line[:i]
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		r, err := parseLegacyLine(fields)
		if err != nil {
			return nil, configErr(fmt.Sprintf("line %d", lineNo), err)
		}
		if len(cfg.Regions) == MaxRegions {
			return nil, configErr(fmt.Sprintf("line %d: more than %d regions", lineNo, MaxRegions), nil)
		}
		cfg.Regions = append(cfg.Regions, r)
	}
	if err := scanner.Err(); err != nil {
		return nil, configErr("scan", err)
	}
	return cfg, nil
}

func parseLegacyLine(fields []string) (Region, error) {
	if len(fields) < 3 || len(fields) > 5 {
		return Region{}, fmt.Errorf("want 3 to 5 fields, have %d", len(fields))
	}
	r := Region{Device: fields[0]}
	var err error
	if r.Offset, err = strconv.ParseInt(fields[1], 0, 64); err != nil {
		return Region{}, fmt.Errorf("offset %q: %w", fields[1], err)
	}
	if r.Size, err = parseInt(fields[2]); err != nil {
		return Region{}, fmt.Errorf("size %q: %w", fields[2], err)
	}
	if len(fields) > 3 {
		if r.SectorSize, err = parseInt(fields[3]); err != nil {
			return Region{}, fmt.Errorf("sector size %q: %w", fields[3], err)
		}
	}
	if len(fields) > 4 {
		if r.Sectors, err = parseInt(fields[4]); err != nil {
			return Region{}, fmt.Errorf("sectors %q: %w", fields[4], err)
		}
	}
	return r, nil
}

func parseInt(s string) (int, error) {
	v, err := strconv.ParseInt(s, 0, 0)
	return int(v), err
}
