// Copyright 2024 Mike Carlton
// Released under terms of the MIT License:
//   http://www.opensource.org/licenses/mit-license.php

package main

import (
	"fmt"
	"io"
	"strings"

	"unitcalc/units"
)

type Stack struct {
	values []Value
}

func newStack() *Stack {
	return &Stack{values: []Value{}}
}

var STACKALIAS = map[string]string{
	"dup": "d",
	"pop": "p",
}

var STACKOP = map[string]func(*Stack){
	"x": func(s *Stack) { s.exchange() },
	"d": func(s *Stack) { s.dup() },
	"p": func(s *Stack) {
		if _, err := s.pop(); err != nil {
			die("Stack is empty for '%s'", "pop")
		}
	},
}

func (s *Stack) binaryOp(op string) {
	right, _ := s.pop()
	left, err := s.pop()
	if err != nil {
		die("Not enough arguments for binary operation '%s'", op)
	}

	result, err := left.binaryOp(op, right)
	if err != nil {
		die("%v", err)
	}
	s.push(result)
}

func (s *Stack) unaryOp(op string) {
	value, err := s.pop()
	if err != nil {
		die("Not enough arguments for unary operation '%s'", op)
	}

	result, err := value.unaryOp(op)
	if err != nil {
		die("%v", err)
	}
	s.push(result)
}

// apply attaches or converts to unit; symbol is the token that named it.
func (s *Stack) apply(unit units.Unit, symbol string) {
	value, err := s.pop()
	if err != nil {
		die("Not enough arguments for '%s'", symbol)
	}

	result, err := value.apply(unit)
	if err != nil {
		die("%v", err)
	}
	s.push(result)
}

func (s *Stack) reduce(op string) {
	if len(s.values) < 2 {
		die("Not enough arguments for reduction operation '@%s'", op)
	}

	// bottom to top, left-to-right
	result := s.values[0]
	for i := 1; i < len(s.values); i++ {
		var err error
		if result, err = result.binaryOp(op, s.values[i]); err != nil {
			die("%v", err)
		}
	}

	s.values = []Value{result}
}

func (s *Stack) push(v Value) {
	s.values = append(s.values, v)
}

func (s *Stack) pop() (Value, error) {
	if len(s.values) == 0 {
		return Value{}, fmt.Errorf("stack is empty")
	}
	v := s.values[len(s.values)-1]
	s.values = s.values[:len(s.values)-1]

	return v, nil
}

func (s *Stack) peek() (Value, error) {
	if len(s.values) == 0 {
		return Value{}, fmt.Errorf("stack is empty")
	}

	return s.values[len(s.values)-1], nil
}

// dup copies the top value; units are immutable so sharing them is safe.
func (s *Stack) dup() {
	if len(s.values) < 1 {
		die("Stack is empty for '%s'", "duplicate")
	}

	s.values = append(s.values, s.values[len(s.values)-1])
}

func (s *Stack) exchange() {
	if len(s.values) < 2 {
		die("Not enough arguments for '%s'", "exchange")
	}

	s.values[len(s.values)-1], s.values[len(s.values)-2] = s.values[len(s.values)-2], s.values[len(s.values)-1]
}

func (s *Stack) size() int {
	return len(s.values)
}

func (s *Stack) oneline() string {
	parts := make([]string, 0, len(s.values))
	for _, v := range s.values {
		parts = append(parts, v.String())
	}
	return strings.Join(parts, " ")
}

// ColumnWidths tracks integer and fractional part widths for alignment
type ColumnWidths struct {
	integerWidth    int // width of integer part (before decimal point)
	fractionalWidth int // width of fractional part (including decimal point)
}

func maxWidths(values []Value, precision int, group bool) ColumnWidths {
	var widths ColumnWidths
	for _, value := range values {
		intPart, fracPart := splitNumber(formatNumber(value.number, precision, group))
		widths.integerWidth = max(widths.integerWidth, len(intPart))
		widths.fractionalWidth = max(widths.fractionalWidth, len(fracPart))
	}
	return widths
}

// print writes the stack top first, one value per line, aligned on the
// decimal point.
func (s *Stack) print(w io.Writer, precision int, group bool) {
	widths := maxWidths(s.values, precision, group)

	for i := len(s.values) - 1; i >= 0; i-- {
		value := s.values[i]
		intPart, fracPart := splitNumber(formatNumber(value.number, precision, group))

		line := fmt.Sprintf("%*s%s", widths.integerWidth, intPart, fracPart)
		if symbol := value.symbol(); symbol != "" {
			line += fmt.Sprintf("%*s %s", widths.fractionalWidth-len(fracPart), "", symbol)
		}
		fmt.Fprintln(w, line)
	}
}
