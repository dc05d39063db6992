// This file is part of casl2 - https://github.com/db47h/casl2
//
// Copyright 2016 Denis Bernard <db047h@gmail.com>
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package asm

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/db47h/casl2/vm"
)

var (
	reLabel  = regexp.MustCompile(`^([A-Za-z][A-Za-z0-9]*)(.*)$`)
	reInst   = regexp.MustCompile(`^\s+([A-Z][A-Z0-9]*)\s*(.*)$`)
	reDCItem = regexp.MustCompile(`^('(?:''|[^'])*'|[0-9]+|#[0-9A-Fa-f]+|[A-Za-z][A-Za-z0-9]*)\s*(.*)$`)
)

// statement is one lexed source line: an optional label, a mnemonic and
// its operand list. raw keeps the unsplit operand tail for DC, whose item
// grammar owns commas and quotes.
type statement struct {
	label    string
	mnemonic string
	operands []string
	raw      string
	line     int
}

// stripComment removes a trailing ';' comment. A ';' inside a quoted DC
// string is part of the string.
func stripComment(s string) string {
	inQuote := false
	for k := 0; k < len(s); k++ {
		switch s[k] {
		case '\'':
			inQuote = !inQuote
		case ';':
			if !inQuote {
				return s[:k]
			}
		}
	}
	return s
}

// splitOperands splits an operand tail on commas, tolerating whitespace
// around them. Quoted DC strings are handled by parseDCItems instead.
func splitOperands(tail string) []string {
	tail = strings.TrimSpace(tail)
	if tail == "" {
		return nil
	}
	ops := strings.Split(tail, ",")
	for k := range ops {
		ops[k] = strings.TrimSpace(ops[k])
	}
	return ops
}

// lexLine lexes one physical source line. It returns nil for blank and
// comment-only lines.
func lexLine(line string, num int) (*statement, error) {
	code := stripComment(strings.TrimRight(line, "\r\n"))
	if strings.TrimSpace(code) == "" {
		return nil, nil
	}
	st := &statement{line: num}
	if c := code[0]; c != ' ' && c != '\t' {
		m := reLabel.FindStringSubmatch(code)
		if m == nil {
			return nil, errors.Errorf("syntax error (%s)", strings.TrimSpace(code))
		}
		st.label = m[1]
		code = m[2]
	}
	m := reInst.FindStringSubmatch(code)
	if m == nil {
		return nil, errors.Errorf("syntax error (%s)", strings.TrimSpace(code))
	}
	st.mnemonic = m[1]
	st.raw = strings.TrimSpace(m[2])
	st.operands = splitOperands(st.raw)
	return st, nil
}

// dcItem kinds.
const (
	dcNumber = iota
	dcString
	dcLabel
)

// dcItem is one parsed DC operand.
type dcItem struct {
	kind int
	str  string  // string contents or label name
	num  vm.Word // numeric value
}

// parseDCItems parses a DC operand list: single-quoted strings (doubled
// '' is a literal apostrophe), non-negative decimal integers, #-prefixed
// hexadecimal integers and label references, comma separated.
func parseDCItems(raw string) ([]dcItem, error) {
	var items []dcItem
	rest := strings.TrimSpace(raw)
	if rest == "" {
		return nil, errors.New("DC needs at least one operand")
	}
	for {
		m := reDCItem.FindStringSubmatch(rest)
		if m == nil {
			return nil, errors.Errorf("malformed DC operand (%s)", rest)
		}
		arg := m[1]
		rest = strings.TrimSpace(m[2])
		switch arg[0] {
		case '\'':
			s := strings.ReplaceAll(arg[1:len(arg)-1], "''", "'")
			if s == "" {
				return nil, errors.New("empty DC string")
			}
			items = append(items, dcItem{kind: dcString, str: s})
		case '#':
			n, err := strconv.ParseUint(arg[1:], 16, 64)
			if err != nil {
				return nil, errors.Errorf("malformed DC operand (%s)", arg)
			}
			items = append(items, dcItem{kind: dcNumber, num: vm.Word(n)})
		default:
			if arg[0] >= '0' && arg[0] <= '9' {
				n, err := strconv.ParseUint(arg, 10, 64)
				if err != nil {
					return nil, errors.Errorf("malformed DC operand (%s)", arg)
				}
				items = append(items, dcItem{kind: dcNumber, num: vm.Word(n)})
			} else {
				items = append(items, dcItem{kind: dcLabel, str: arg})
			}
		}
		if rest == "" {
			return items, nil
		}
		if rest[0] != ',' {
			return nil, errors.Errorf("expected ',' in DC operands (%s)", rest)
		}
		rest = strings.TrimSpace(rest[1:])
	}
}

// parseReg returns the index of a register name GR0..GR7.
func parseReg(tok string) (int, bool) {
	if len(tok) == 3 && tok[0] == 'G' && tok[1] == 'R' && tok[2] >= '0' && tok[2] <= '7' {
		return int(tok[2] - '0'), true
	}
	return 0, false
}

// parseNum parses a decimal or #-prefixed hexadecimal address constant,
// masked to 16 bits.
func parseNum(tok string) (vm.Word, bool) {
	if tok == "" {
		return 0, false
	}
	if tok[0] == '#' {
		n, err := strconv.ParseUint(tok[1:], 16, 64)
		return vm.Word(n), err == nil
	}
	if tok[0] >= '0' && tok[0] <= '9' {
		n, err := strconv.ParseUint(tok, 10, 64)
		return vm.Word(n), err == nil
	}
	return 0, false
}

// isIdent reports whether tok is a valid label identifier.
func isIdent(tok string) bool {
	m := reLabel.FindStringSubmatch(tok)
	return m != nil && m[2] == ""
}
