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

package vm

import (
	"bytes"
	"fmt"
	"io"
	"strconv"

	"github.com/pkg/errors"
)

// Disassemble disassembles the cells at position pc and returns the
// position of the next instruction and the disassembly string.
func (m Image) Disassemble(pc Word) (next Word, disasm string) {
	var d bytes.Buffer
	w := m[pc].W
	op := byte(w >> 8)
	r1 := int(w>>4) & 0xf
	r2 := int(w) & 0xf
	name := OpName(op)
	if name == "" {
		d.WriteString("DC #")
		d.WriteString(strconv.FormatUint(uint64(w), 16))
		return pc + 1, d.String()
	}
	d.WriteString(name)
	pc++
	if !IsTwoWord(op) {
		switch op {
		case OpLdr, OpAddar, OpSubar, OpAddlr, OpSublr, OpAndr, OpOrr, OpXorr, OpCpar, OpCplr:
			fmt.Fprintf(&d, " GR%d, GR%d", r1, r2)
		case OpPop:
			fmt.Fprintf(&d, " GR%d", r1)
		}
		return pc, d.String()
	}
	a := m[pc]
	pc++
	switch op {
	case OpSvc:
		fmt.Fprintf(&d, " %d", uint16(a.W))
		return pc, d.String()
	case OpJmi, OpJnz, OpJze, OpJump, OpJpl, OpJov, OpPush, OpCall:
		fmt.Fprintf(&d, " #%04x", uint16(a.W))
	default:
		fmt.Fprintf(&d, " GR%d, #%04x", r1, uint16(a.W))
	}
	if a.Sym != "" {
		d.WriteString(" <" + a.Sym + ">")
	}
	if r2 != 0 {
		fmt.Fprintf(&d, ", GR%d", r2)
	}
	return pc, d.String()
}

func flag(b bool) byte {
	if b {
		return '1'
	}
	return '0'
}

// traceStep emits one line per executed instruction to the trace sink:
// the fetch address, the decoded operation and the post-step machine
// state. Purely observational.
func (i *Instance) traceStep(addr Word) {
	if i.trace == nil {
		return
	}
	_, disasm := i.Mem.Disassemble(addr)
	line := ""
	if l := i.Mem[addr].Line; l != 0 {
		line = "\tline " + strconv.Itoa(l)
	}
	fmt.Fprintf(i.trace, "%04x\t%-24s\tGR=%04x %04x %04x %04x %04x %04x %04x %04x\tSP=%04x\tZSO=%c%c%c%s\n",
		uint16(addr), disasm,
		uint16(i.GR[0]), uint16(i.GR[1]), uint16(i.GR[2]), uint16(i.GR[3]),
		uint16(i.GR[4]), uint16(i.GR[5]), uint16(i.GR[6]), uint16(i.GR[7]),
		uint16(i.SP), flag(i.Z), flag(i.S), flag(i.O), line)
}

// DumpRegs writes a register and flag dump to the specified io.Writer.
func (i *Instance) DumpRegs(w io.Writer) error {
	for n, v := range i.GR {
		if _, err := fmt.Fprintf(w, "GR%d=%04x ", n, uint16(v)); err != nil {
			return errors.Wrap(err, "register dump failed")
		}
	}
	_, err := fmt.Fprintf(w, "\nPR=%04x SP=%04x Z=%c S=%c O=%c\n",
		uint16(i.PR), uint16(i.SP), flag(i.Z), flag(i.S), flag(i.O))
	return errors.Wrap(err, "register dump failed")
}
