// Copyright 2024 Mike Carlton
// Released under terms of the MIT License:
//   http://www.opensource.org/licenses/mit-license.php

package main

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"

	"unitcalc/units"
)

// UnitStore keeps user-defined units in SQLite. Units are stored in
// decomposed form, scale and offset over a product of base units, and are
// rebuilt through a registry on load.
type UnitStore struct {
	db  *sql.DB
	reg *units.Registry
}

// StoredUnit is a unit read back from the store.
type StoredUnit struct {
	Symbol    string
	Unit      units.Unit
	CreatedAt time.Time
}

const unitSchema = `
CREATE TABLE IF NOT EXISTS units (
	symbol TEXT PRIMARY KEY,
	quantity TEXT NOT NULL DEFAULT '',
	prefixes TEXT NOT NULL DEFAULT '',
	scale TEXT NOT NULL,
	"offset" TEXT NOT NULL,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS unit_factors (
	symbol TEXT NOT NULL REFERENCES units(symbol) ON DELETE CASCADE,
	position INTEGER NOT NULL,
	quantity TEXT NOT NULL,
	base_symbol TEXT NOT NULL,
	base_prefixes TEXT NOT NULL DEFAULT '',
	power INTEGER NOT NULL,
	PRIMARY KEY (symbol, position)
);
`

// openUnitStore opens or creates the database at path.
func openUnitStore(path string, reg *units.Registry) (*UnitStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	db, err := sql.Open("sqlite3", path+"?_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if _, err := db.Exec(unitSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	return &UnitStore{db: db, reg: reg}, nil
}

func (s *UnitStore) Close() error {
	return s.db.Close()
}

// Save stores u under symbol, replacing any previous definition.
func (s *UnitStore) Save(symbol string, u units.Unit) error {
	simple, scale, offset := units.Decompose(u)

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM unit_factors WHERE symbol = ?`, symbol); err != nil {
		return err
	}
	_, err = tx.Exec(`
	INSERT OR REPLACE INTO units (symbol, quantity, prefixes, scale, "offset")
	VALUES (?, ?, ?, ?, ?)
	`, symbol, u.QuantityName(), u.PrefixSet().Name(),
		decimal.NewFromFloat(scale).String(), decimal.NewFromFloat(offset).String())
	if err != nil {
		return fmt.Errorf("failed to save unit %q: %w", symbol, err)
	}

	for position, f := range simple.Factors() {
		base := f.Base()
		_, err := tx.Exec(`
		INSERT INTO unit_factors (symbol, position, quantity, base_symbol, base_prefixes, power)
		VALUES (?, ?, ?, ?, ?, ?)
		`, symbol, position, base.QuantityName(), base.Symbol(), base.PrefixSet().Name(), f.Power())
		if err != nil {
			return fmt.Errorf("failed to save factor %s of %q: %w", f, symbol, err)
		}
	}

	return tx.Commit()
}

// Delete removes the unit stored under symbol, if any.
func (s *UnitStore) Delete(symbol string) error {
	_, err := s.db.Exec(`DELETE FROM units WHERE symbol = ?`, symbol)
	return err
}

// LoadAll rebuilds every stored unit, oldest first.
func (s *UnitStore) LoadAll() ([]StoredUnit, error) {
	rows, err := s.db.Query(`
	SELECT symbol, quantity, prefixes, scale, "offset", created_at
	FROM units
	ORDER BY created_at, symbol
	`)
	if err != nil {
		return nil, err
	}

	type unitRow struct {
		symbol, quantity, prefixes, scale, offset string
		createdAt                                 time.Time
	}
	var unitRows []unitRow
	for rows.Next() {
		var row unitRow
		if err := rows.Scan(&row.symbol, &row.quantity, &row.prefixes, &row.scale, &row.offset, &row.createdAt); err != nil {
			rows.Close()
			return nil, err
		}
		unitRows = append(unitRows, row)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, err
	}
	rows.Close()

	stored := make([]StoredUnit, 0, len(unitRows))
	for _, row := range unitRows {
		factors, err := s.loadFactors(row.symbol)
		if err != nil {
			return nil, err
		}
		scale, err := parseDecimal(row.scale)
		if err != nil {
			return nil, fmt.Errorf("unit %q: bad scale: %w", row.symbol, err)
		}
		offset, err := parseDecimal(row.offset)
		if err != nil {
			return nil, fmt.Errorf("unit %q: bad offset: %w", row.symbol, err)
		}

		u, err := s.rebuild(row.symbol, row.quantity, lookupPrefixes(row.prefixes), scale, offset, factors)
		if err != nil {
			return nil, err
		}
		stored = append(stored, StoredUnit{Symbol: row.symbol, Unit: u, CreatedAt: row.createdAt})
	}

	return stored, nil
}

func (s *UnitStore) loadFactors(symbol string) ([]*units.Factor, error) {
	rows, err := s.db.Query(`
	SELECT quantity, base_symbol, base_prefixes, power
	FROM unit_factors
	WHERE symbol = ?
	ORDER BY position
	`, symbol)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var factors []*units.Factor
	for rows.Next() {
		var quantity, baseSymbol, basePrefixes string
		var power int
		if err := rows.Scan(&quantity, &baseSymbol, &basePrefixes, &power); err != nil {
			return nil, err
		}
		base := s.reg.BaseUnit(quantity, baseSymbol, lookupPrefixes(basePrefixes))
		factors = append(factors, s.reg.Factor(base, power))
	}
	return factors, rows.Err()
}

// rebuild inverts Decompose: a value x of the unit is scale*x + offset in
// the product of factors.
func (s *UnitStore) rebuild(symbol, quantity string, prefixes *units.PrefixSet, scale, offset float64, factors []*units.Factor) (units.Unit, error) {
	simple := s.reg.DerivedUnit(factors...)

	if offset == 0 {
		if _, derived := simple.(*units.DerivedUnit); derived && scale == 1 {
			return s.reg.NamedDerivedUnit(quantity, symbol, prefixes, factors...), nil
		}
		return s.reg.NamedScaledUnit(symbol, prefixes, scale, simple)
	}

	scaled, err := s.reg.ScaledUnit(scale, simple)
	if err != nil {
		return nil, fmt.Errorf("unit %q: %w", symbol, err)
	}
	return s.reg.NamedOffsetUnit(symbol, offset/scale, scaled), nil
}

func parseDecimal(text string) (float64, error) {
	d, err := decimal.NewFromString(text)
	if err != nil {
		return 0, err
	}
	f, _ := d.Float64()
	return f, nil
}

func lookupPrefixes(name string) *units.PrefixSet {
	if name == "" {
		return nil
	}
	set, _ := units.LookupPrefixSet(name)
	return set
}
