// Copyright 2024 Mike Carlton
// Released under terms of the MIT License:
//   http://www.opensource.org/licenses/mit-license.php

package main

import (
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"regexp"
	"strings"

	"unitcalc/units"
)

func die(format string, args ...any) {
	panic(fmt.Sprintf(format, args...))
}

func newLogger(w io.Writer, debug bool) *slog.Logger {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

var BINARYOPS = map[string]bool{
	"+": true, "-": true, "*": true, "•": true, ".": true, units.DOT: true, "/": true,
	"%": true, "**": true, "pow": true,
}

var UNARYOPS = map[string]bool{
	"chs": true, "n": true, "r": true, "sqrt": true,
}

var CONSTANTS = map[string]float64{
	"pi": math.Pi,
}

var unitNameRe = regexp.MustCompile(`^[°µa-zA-Z]+$`)

type calculator struct {
	stack  *Stack
	store  *UnitStore
	logger *slog.Logger
	trace  bool
}

func (c *calculator) eval(arg string) {
	if c.trace {
		c.logger.Debug("eval", "token", arg, "stack", c.stack.oneline())
	}

	if num, ok := parseNumber(arg); ok {
		c.stack.push(Value{number: num})
		return
	}
	if alias, ok := STACKALIAS[arg]; ok {
		arg = alias
	}
	if op, ok := STACKOP[arg]; ok {
		op(c.stack)
		return
	}

	switch {
	case BINARYOPS[arg]:
		c.stack.binaryOp(arg)
	case UNARYOPS[arg]:
		c.stack.unaryOp(arg)
	case strings.HasPrefix(arg, "@") && BINARYOPS[arg[1:]]:
		c.stack.reduce(arg[1:])
	case strings.HasPrefix(arg, "=") && len(arg) > 1:
		c.define(arg[1:])
	default:
		if value, ok := CONSTANTS[arg]; ok {
			c.stack.push(Value{number: value})
			return
		}

		unit, err := parseUnits(arg)
		if err == errNotAUnit {
			die("Unrecognized argument '%s'", arg)
		} else if err != nil {
			die("%v", err)
		}
		c.stack.apply(unit, arg)
	}
}

// define names a new unit equal to the value on top of the stack and
// replaces that value with 1 of the new unit.
func (c *calculator) define(name string) {
	if !unitNameRe.MatchString(name) {
		die("Invalid unit name '%s'", name)
	}
	value, err := c.stack.pop()
	if err != nil {
		die("Not enough arguments for '=%s'", name)
	}
	if value.number == 0 || math.IsNaN(value.number) || math.IsInf(value.number, 0) {
		die("Cannot define unit '%s' as %v", name, value.number)
	}

	unit, err := units.Default.NamedScaledUnit(name, nil, value.number, value.unitOrDimensionless())
	if err != nil {
		die("%v", err)
	}
	defineUnit(name, unit, name, "defined")
	c.logger.Debug("defined unit", "definition", definition(unit))

	if c.store != nil {
		if err := c.store.Save(name, unit); err != nil {
			die("%v", err)
		}
	}

	c.stack.push(Value{number: 1, unit: unit})
}

func run(args []string, stdout, stderr io.Writer) (status int) {
	if len(args) == 0 {
		usage(stderr)
		return 1
	}

	// TODO: keep history and print where error occurred
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(stderr, "Error: %v, exiting\n", r)
			status = 1
		}
	}()

	options, args, err := scanOptions(args)
	if err != nil {
		die("%v", err)
	}
	if options.help {
		doHelp(stdout)
		return 0
	}

	logger := newLogger(stderr, options.verbose || options.trace)
	slog.SetDefault(logger)

	if options.config != "" {
		cfg, err := loadConfig(options.config)
		if err != nil {
			die("%v", err)
		}
		cfg.apply(&options)
		if err := cfg.defineUnits(units.Default); err != nil {
			die("%v", err)
		}
		logger.Debug("loaded config", "path", options.config, "units", len(cfg.Units))
	}

	var metrics *Metrics
	if options.showMetrics {
		if metrics, err = setupMetrics(units.Default); err != nil {
			die("%v", err)
		}
		defer metrics.Close()
	}

	calc := &calculator{stack: newStack(), logger: logger, trace: options.trace}
	if options.database != "" {
		store, err := openUnitStore(options.database, units.Default)
		if err != nil {
			die("%v", err)
		}
		defer store.Close()

		stored, err := store.LoadAll()
		if err != nil {
			die("%v", err)
		}
		for _, s := range stored {
			defineUnit(s.Symbol, s.Unit, s.Symbol, "stored")
		}
		logger.Debug("loaded units", "path", options.database, "count", len(stored))
		calc.store = store
	}

	if options.listUnits {
		fmt.Fprintln(stdout, strings.Join(listUnits(), "\n"))
	}

	for _, arg := range args {
		calc.eval(arg)
	}

	calc.stack.print(stdout, options.precision, options.group)

	if options.showDefinition {
		if top, err := calc.stack.peek(); err == nil && !top.unitless() {
			fmt.Fprintln(stdout, definition(top.unit))
		}
	}

	if metrics != nil {
		if err := metrics.Write(stdout); err != nil {
			die("%v", err)
		}
	}

	return 0
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}
