// Copyright 2024 Mike Carlton
// Released under terms of the MIT License:
//   http://www.opensource.org/licenses/mit-license.php

package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"unitcalc/units"
)

// Config is the optional YAML configuration file.
type Config struct {
	Precision *int         `yaml:"precision"`
	Group     bool         `yaml:"group"`
	Database  string       `yaml:"database"`
	Units     []UnitConfig `yaml:"units"`
}

// UnitConfig defines a unit: a new base unit when only Quantity is given,
// otherwise Scale times the unit expression Of, shifted by Offset (in the
// scaled unit).
type UnitConfig struct {
	Symbol      string  `yaml:"symbol"`
	Description string  `yaml:"description"`
	Quantity    string  `yaml:"quantity"`
	Scale       float64 `yaml:"scale"`
	Offset      float64 `yaml:"offset"`
	Of          string  `yaml:"of"`
}

func loadConfig(path string) (Config, error) {
	var cfg Config

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read the config file: %w", err)
	}
	if err = yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse the config file %s: %w", path, err)
	}
	return cfg, nil
}

// apply sets options the command line left alone.
func (c Config) apply(options *Options) {
	if c.Precision != nil && !options.precisionSet {
		options.precision = *c.Precision
	}
	options.group = options.group || c.Group
	if options.database == "" {
		options.database = c.Database
	}
}

// build constructs the unit in reg. Later definitions may refer to
// earlier ones, so callers define them in order.
func (uc UnitConfig) build(reg *units.Registry) (units.Unit, error) {
	if uc.Symbol == "" {
		return nil, fmt.Errorf("unit definition without symbol")
	}

	if uc.Of == "" {
		if uc.Quantity == "" {
			return nil, fmt.Errorf("unit %q needs either 'of' or 'quantity'", uc.Symbol)
		}
		return reg.BaseUnit(uc.Quantity, uc.Symbol, nil), nil
	}

	of, err := parseUnits(uc.Of)
	if err != nil || of == nil {
		return nil, fmt.Errorf("unit %q: cannot parse 'of' %q", uc.Symbol, uc.Of)
	}

	scale := uc.Scale
	if scale == 0 {
		scale = 1
	}
	if uc.Offset == 0 {
		return reg.NamedScaledUnit(uc.Symbol, nil, scale, of)
	}

	scaled, err := reg.ScaledUnit(scale, of)
	if err != nil {
		return nil, fmt.Errorf("unit %q: %w", uc.Symbol, err)
	}
	return reg.NamedOffsetUnit(uc.Symbol, uc.Offset, scaled), nil
}

// defineUnits adds the configured units to the unit table.
func (c Config) defineUnits(reg *units.Registry) error {
	for _, uc := range c.Units {
		u, err := uc.build(reg)
		if err != nil {
			return err
		}
		description := uc.Description
		if description == "" {
			description = uc.Symbol
		}
		defineUnit(uc.Symbol, u, description, "configured")
	}
	return nil
}
