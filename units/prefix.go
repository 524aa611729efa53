// Copyright 2024 Mike Carlton
// Released under terms of the MIT License:
//   http://www.opensource.org/licenses/mit-license.php

package units

import (
	"math"
	"sort"
	"strings"
	"sync"
)

// Prefix is a decimal magnitude prefix such as kilo or milli.
type Prefix struct {
	Symbol   string
	Name     string
	Exponent int
}

// Amount returns the scale factor of the prefix, 10^Exponent.
func (p Prefix) Amount() float64 {
	return math.Pow10(p.Exponent)
}

func (p Prefix) String() string {
	return p.Name
}

var (
	Yocto = Prefix{Symbol: "y", Name: "yocto", Exponent: -24}
	Zepto = Prefix{Symbol: "z", Name: "zepto", Exponent: -21}
	Atto  = Prefix{Symbol: "a", Name: "atto", Exponent: -18}
	Femto = Prefix{Symbol: "f", Name: "femto", Exponent: -15}
	Pico  = Prefix{Symbol: "p", Name: "pico", Exponent: -12}
	Nano  = Prefix{Symbol: "n", Name: "nano", Exponent: -9}
	Micro = Prefix{Symbol: "µ", Name: "micro", Exponent: -6}
	Milli = Prefix{Symbol: "m", Name: "milli", Exponent: -3}
	Centi = Prefix{Symbol: "c", Name: "centi", Exponent: -2}
	Deci  = Prefix{Symbol: "d", Name: "deci", Exponent: -1}
	Deca  = Prefix{Symbol: "da", Name: "deca", Exponent: 1}
	Hecto = Prefix{Symbol: "h", Name: "hecto", Exponent: 2}
	Kilo  = Prefix{Symbol: "k", Name: "kilo", Exponent: 3}
	Mega  = Prefix{Symbol: "M", Name: "mega", Exponent: 6}
	Giga  = Prefix{Symbol: "G", Name: "giga", Exponent: 9}
	Tera  = Prefix{Symbol: "T", Name: "tera", Exponent: 12}
	Peta  = Prefix{Symbol: "P", Name: "peta", Exponent: 15}
	Exa   = Prefix{Symbol: "E", Name: "exa", Exponent: 18}
	Zetta = Prefix{Symbol: "Z", Name: "zetta", Exponent: 21}
	Yotta = Prefix{Symbol: "Y", Name: "yotta", Exponent: 24}
)

// PrefixSet is an immutable, named set of prefixes allowed on a unit.
// A nil *PrefixSet allows no prefix.
type PrefixSet struct {
	name     string
	prefixes []Prefix // sorted by exponent
}

var (
	prefixSetsMu sync.RWMutex
	prefixSets   = map[string]*PrefixSet{}
)

// NewPrefixSet creates a prefix set and registers it under name so that it
// can be found again with LookupPrefixSet. Registering a name twice returns
// the first set.
func NewPrefixSet(name string, prefixes ...Prefix) *PrefixSet {
	if name == "" {
		panic(newConstructionError("prefix set name is empty"))
	}

	prefixSetsMu.Lock()
	defer prefixSetsMu.Unlock()

	if existing, ok := prefixSets[name]; ok {
		return existing
	}

	sorted := make([]Prefix, len(prefixes))
	copy(sorted, prefixes)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Exponent < sorted[j].Exponent })

	s := &PrefixSet{name: name, prefixes: sorted}
	prefixSets[name] = s
	return s
}

// LookupPrefixSet returns the registered prefix set with the given name.
func LookupPrefixSet(name string) (*PrefixSet, bool) {
	prefixSetsMu.RLock()
	defer prefixSetsMu.RUnlock()

	s, ok := prefixSets[name]
	return s, ok
}

// SIPrefixes holds every SI decimal prefix.
var SIPrefixes = NewPrefixSet("SI",
	Yocto, Zepto, Atto, Femto, Pico, Nano, Micro, Milli, Centi, Deci,
	Deca, Hecto, Kilo, Mega, Giga, Tera, Peta, Exa, Zetta, Yotta,
)

// Name returns the registered name of the set, or "" for a nil set.
func (s *PrefixSet) Name() string {
	if s == nil {
		return ""
	}
	return s.name
}

// Prefixes returns a copy of the prefixes, ordered by exponent.
func (s *PrefixSet) Prefixes() []Prefix {
	if s == nil {
		return nil
	}
	out := make([]Prefix, len(s.prefixes))
	copy(out, s.prefixes)
	return out
}

// Contains reports whether p belongs to the set.
func (s *PrefixSet) Contains(p Prefix) bool {
	if s == nil {
		return false
	}
	for _, q := range s.prefixes {
		if q == p {
			return true
		}
	}
	return false
}

// Lookup returns the prefix with the given symbol.
func (s *PrefixSet) Lookup(symbol string) (Prefix, bool) {
	if s == nil {
		return Prefix{}, false
	}
	for _, p := range s.prefixes {
		if p.Symbol == symbol {
			return p, true
		}
	}
	return Prefix{}, false
}

// Split splits a prefixed symbol such as "km" into its prefix and the
// remainder. The longest matching prefix symbol wins ("da" over "d").
func (s *PrefixSet) Split(symbol string) (Prefix, string, bool) {
	if s == nil {
		return Prefix{}, "", false
	}
	var (
		best  Prefix
		found bool
	)
	for _, p := range s.prefixes {
		if len(p.Symbol) < len(symbol) && strings.HasPrefix(symbol, p.Symbol) {
			if !found || len(p.Symbol) > len(best.Symbol) {
				best, found = p, true
			}
		}
	}
	if !found {
		return Prefix{}, "", false
	}
	return best, symbol[len(best.Symbol):], true
}

func (s *PrefixSet) String() string {
	return s.Name()
}
