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
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/db47h/casl2/vm"
)

// operand shapes of machine instructions.
const (
	opNone = iota // no operands (NOP, RET)
	opR           // r (POP)
	opAdr         // adr[,x] (jumps, PUSH, CALL)
	opRAdr        // r,adr[,x] or r1,r2 when a register form exists
	opSvc         // n (SVC)
)

// instDef describes how a mnemonic encodes. mem is the two-word opcode
// byte, reg the one-word opcode byte (the sole form of NOP, POP and RET);
// regForm tells whether an r,adr instruction also has the one-word r1,r2
// form.
type instDef struct {
	mem     byte
	reg     byte
	regForm bool
	shape   int
}

var instTable = map[string]instDef{
	"NOP":  {reg: vm.OpNop, shape: opNone},
	"LD":   {mem: vm.OpLd, reg: vm.OpLdr, regForm: true, shape: opRAdr},
	"ST":   {mem: vm.OpSt, shape: opRAdr},
	"LAD":  {mem: vm.OpLad, shape: opRAdr},
	"ADDA": {mem: vm.OpAdda, reg: vm.OpAddar, regForm: true, shape: opRAdr},
	"SUBA": {mem: vm.OpSuba, reg: vm.OpSubar, regForm: true, shape: opRAdr},
	"ADDL": {mem: vm.OpAddl, reg: vm.OpAddlr, regForm: true, shape: opRAdr},
	"SUBL": {mem: vm.OpSubl, reg: vm.OpSublr, regForm: true, shape: opRAdr},
	"AND":  {mem: vm.OpAnd, reg: vm.OpAndr, regForm: true, shape: opRAdr},
	"OR":   {mem: vm.OpOr, reg: vm.OpOrr, regForm: true, shape: opRAdr},
	"XOR":  {mem: vm.OpXor, reg: vm.OpXorr, regForm: true, shape: opRAdr},
	"CPA":  {mem: vm.OpCpa, reg: vm.OpCpar, regForm: true, shape: opRAdr},
	"CPL":  {mem: vm.OpCpl, reg: vm.OpCplr, regForm: true, shape: opRAdr},
	"SLA":  {mem: vm.OpSla, shape: opRAdr},
	"SRA":  {mem: vm.OpSra, shape: opRAdr},
	"SLL":  {mem: vm.OpSll, shape: opRAdr},
	"SRL":  {mem: vm.OpSrl, shape: opRAdr},
	"JMI":  {mem: vm.OpJmi, shape: opAdr},
	"JNZ":  {mem: vm.OpJnz, shape: opAdr},
	"JZE":  {mem: vm.OpJze, shape: opAdr},
	"JUMP": {mem: vm.OpJump, shape: opAdr},
	"JPL":  {mem: vm.OpJpl, shape: opAdr},
	"JOV":  {mem: vm.OpJov, shape: opAdr},
	"PUSH": {mem: vm.OpPush, shape: opAdr},
	"POP":  {reg: vm.OpPop, shape: opR},
	"CALL": {mem: vm.OpCall, shape: opAdr},
	"RET":  {reg: vm.OpRet, shape: opNone},
	"SVC":  {mem: vm.OpSvc, shape: opSvc},
}

// Position locates an assembler diagnostic in the source.
type Position struct {
	Name string
	Line int
}

func (p Position) String() string {
	return fmt.Sprintf("%s:%d", p.Name, p.Line)
}

// ErrAsm encapsulates errors generated by the assembler.
type ErrAsm []struct {
	Pos Position
	Msg string
}

func (e ErrAsm) Error() string {
	l := make([]string, 0, len(e))
	for _, err := range e {
		l = append(l, fmt.Sprintf("%s: %s", err.Pos, err.Msg))
	}
	return strings.Join(l, "\n")
}

// Label is a resolved symbol.
type Label struct {
	Name string
	Addr vm.Word
}

// Program is the result of a successful assembly: a full memory image,
// the entry and terminal addresses and the resolved symbol table.
type Program struct {
	Mem   vm.Image
	Start vm.Word
	End   vm.Word

	labels map[string]vm.Word
}

// Labels returns the resolved symbol table sorted by address.
func (p *Program) Labels() []Label {
	l := make([]Label, 0, len(p.labels))
	for n, a := range p.labels {
		l = append(l, Label{n, a})
	}
	sort.Slice(l, func(i, j int) bool {
		if l[i].Addr != l[j].Addr {
			return l[i].Addr < l[j].Addr
		}
		return l[i].Name < l[j].Name
	})
	return l
}

// Option configures the assembler.
type Option func(*parser)

// Org sets the address assembly starts at, leaving that many zero cells
// ahead of the first emitted code word.
func Org(addr vm.Word) Option {
	return func(p *parser) { p.org = int(addr) }
}

// Assemble compiles CASL2 source read from the supplied io.Reader and
// returns the resulting program and error if any.
//
// The name parameter is used only in error messages to name the source of
// the error. If the io.Reader is a file, name should be the file name. If
// not nil, the returned error can safely be cast to an ErrAsm value.
func Assemble(name string, r io.Reader, opts ...Option) (*Program, error) {
	p := newParser(name)
	for _, opt := range opts {
		opt(p)
	}
	return p.Parse(r)
}
