// Copyright 2024 Mike Carlton
// Released under terms of the MIT License:
//   http://www.opensource.org/licenses/mit-license.php

package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

type Options struct {
	group          bool
	trace          bool
	verbose        bool
	precision      int
	showDefinition bool
	showMetrics    bool
	listUnits      bool
	help           bool
	database       string
	config         string

	// set when the value came from the command line, so config defaults
	// do not override it
	precisionSet bool
}

func defaultOptions() Options {
	return Options{
		precision: 4,
	}
}

func heredoc(text string) string {
	lines := strings.Split(strings.TrimRight(text, " \t\n"), "\n")

	// Find the minimum leading whitespace for non-empty lines
	minIndent := -1
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed != "" {
			leadingSpaces := len(line) - len(strings.TrimLeft(line, " "))
			if minIndent == -1 || leadingSpaces < minIndent {
				minIndent = leadingSpaces
			}
		}
	}

	// Remove the minimum leading whitespace from each line
	for i, line := range lines {
		if len(line) >= minIndent {
			lines[i] = line[minIndent:]
		}
	}

	return strings.Join(lines, "\n")
}

func usage(w io.Writer) {
	fmt.Fprintf(w, "%s\n", heredoc(fmt.Sprintf(`
        Usage: unitcalc [OPTIONS | ARGUMENTS]
        Options:
          -t         Trace operations
          -v         Verbose output
          -g         Use ',' to group decimal numbers
          -p Integer Set display precision for floating point number (default: %d)
          -s         Show the definition of the units of the top of the stack
          -m         Show unit pool metrics (Prometheus text format)
          -d Path    Database of user-defined units
          -c Path    Configuration file (YAML)
          -u         List known units
          -h         Show extended help
	`, defaultOptions().precision)))
}

func doHelp(w io.Writer) {
	usage(w)

	fmt.Fprintf(w, "%s\n", heredoc(`
        Constants:
          pi
    `))

	fmt.Fprintf(w, "%s\n", heredoc(`
        Numbers:
          Decimal integers and floating point numbers (with optional exponent: [eE][-+]?[0-9]+)
          Hexadecimal integers (leading 0x or 0X)
          Octal integers (leading 0o or 0O)
          Binary integers (leading 0b or 0B)
          Times as m:s (minutes) or h:m:s (hours)

          Numbers can have a final binary magnitude factor (KMGTPEZY) for
          kilo-, mega-, giga-, tera-, peta-, exa-, zetta- or yotta-byte
    `))

	fmt.Fprintf(w, "%s\n", heredoc(`
        Stack Operations:
          x: exchange top 2 elements of the stack
          d: duplicate top element of the stack (aliased as dup)
          p: pop top element off of the stack (aliased as pop)
    `))

	fmt.Fprintf(w, "%s\n", heredoc(`
        Binary numerical operations (prepend with '@' to reduce the stack):
          + -  (right operand is converted to the units of the left)
          * /
          *    (aliased as ., · and •)
          %    (modulo, dimensionless values only)
          **   (aliased as pow, exponent must be dimensionless)

        Unary numerical operations:
          n     (number: remove any units)
          chs   (change sign)
          r     (reciprocal)
          sqrt  (square root)
    `))

	fmt.Fprintf(w, "%s\n", heredoc(`
        Units:
          Units are applied if current top of stack does not have any units
          Otherwise the current top of stack is converted to the units

          Expressions combine units with '.', '*', '·' and one '/', with
          integer powers: kg·m/s^2, km/h, /s
          SI prefixes apply to SI units: mm, kN, mg, us or µs
          'num' removes units
          '=name' defines a unit equal to the top of stack, e.g. 0.3048 m =myft
    `))

	fmt.Fprintf(w, "%s\n", strings.Join(listUnits(), "\n"))
}

// scanOptions removes options from args and returns the remaining
// arguments. Arguments that look like options but are not, such as '-'
// or '-5', are left for evaluation.
func scanOptions(args []string) (Options, []string, error) {
	options := defaultOptions()
	rest := make([]string, 0, len(args))

	argument := func(i int) (string, error) {
		if i >= len(args)-1 {
			return "", fmt.Errorf("missing required argument for '%s'", args[i])
		}
		return args[i+1], nil
	}

	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "-h":
			options.help = true
		case "-t":
			options.trace = true
		case "-v":
			options.verbose = true
		case "-g":
			options.group = true
		case "-s":
			options.showDefinition = true
		case "-m":
			options.showMetrics = true
		case "-u":
			options.listUnits = true
		case "-d", "-c":
			value, err := argument(i)
			if err != nil {
				return options, nil, err
			}
			if args[i] == "-d" {
				options.database = value
			} else {
				options.config = value
			}
			i++
		case "-p":
			value, err := argument(i)
			if err != nil {
				return options, nil, err
			}
			precision, err := strconv.Atoi(value)
			if err != nil || precision < 0 {
				return options, nil, fmt.Errorf("non-negative integer argument required for '%s', cannot parse '%s'", args[i], value)
			}
			options.precision, options.precisionSet = precision, true
			i++
		default:
			rest = append(rest, args[i])
		}
	}

	return options, rest, nil
}
