// Package yaml loads kbmigrate configuration files.
package yaml

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	iofs "io/fs"
	"os"

	"github.com/fwojciec/kbmigrate"
	"gopkg.in/yaml.v3"
)

// LoadConfig reads the configuration file at path. Keys absent from the
// file keep their kbmigrate.DefaultConfig values; unknown keys are rejected.
func LoadConfig(path string) (kbmigrate.Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, iofs.ErrNotExist) {
		return kbmigrate.Config{}, kbmigrate.Errorf(kbmigrate.ENOTFOUND, "config file %q not found", path)
	} else if err != nil {
		return kbmigrate.Config{}, fmt.Errorf("could not read config file at %s: %w", path, err)
	}
	return ParseConfig(data)
}

// ParseConfig parses YAML configuration on top of the defaults.
func ParseConfig(data []byte) (kbmigrate.Config, error) {
	cfg := kbmigrate.DefaultConfig()

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return kbmigrate.Config{}, kbmigrate.Errorf(kbmigrate.EINVALID, "could not parse config: %v", err)
	}

	if err := cfg.Validate(); err != nil {
		return kbmigrate.Config{}, err
	}
	return cfg, nil
}
