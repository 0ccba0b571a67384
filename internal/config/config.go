// seehuhn.de/go/pslite - a minimal PostScript-like stack interpreter
// Copyright (C) 2023  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

// Package config reads the run configuration of the pslite command.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the settings of a run.
type Config struct {
	// Trace enables logging of every execution step.
	Trace bool `yaml:"trace"`

	// MaxOperandStack limits the depth of the operand stack.
	MaxOperandStack int `yaml:"max_operand_stack"`

	// Graphics installs the graphics operators, recording painted paths.
	Graphics bool `yaml:"graphics"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		MaxOperandStack: 500,
	}
}

// Load reads a configuration file.  Settings missing from the file keep
// their default values.
func Load(path string) (*Config, error) {
	fd, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer fd.Close()

	cfg, err := Decode(fd)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Decode reads a configuration in YAML format from r.
// Unknown keys are an error.
func Decode(r io.Reader) (*Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	err := dec.Decode(cfg)
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that the settings are in range.
func (cfg *Config) Validate() error {
	var errs []error
	if cfg.MaxOperandStack < 0 {
		errs = append(errs, fmt.Errorf("max_operand_stack: negative value %d", cfg.MaxOperandStack))
	}
	return errors.Join(errs...)
}
