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
	"strings"
	"testing"
)

type C []Word

// setup builds an instance running the given code words, terminating at
// the end of the code unless overridden by an option.
func setup(t *testing.T, code C, opts ...Option) *Instance {
	t.Helper()
	mem := make(Image, len(code))
	for k, w := range code {
		mem[k] = Cell{W: w}
	}
	i, err := New(mem, append([]Option{Terminal(Word(len(code)))}, opts...)...)
	if err != nil {
		t.Fatal(err)
	}
	return i
}

func run(t *testing.T, i *Instance) {
	t.Helper()
	if err := i.Run(); err != nil {
		t.Fatal(err)
	}
}

func checkFlags(t *testing.T, i *Instance, z, s, o bool) {
	t.Helper()
	if i.Z != z || i.S != s || i.O != o {
		t.Errorf("flags Z=%v S=%v O=%v, expected Z=%v S=%v O=%v", i.Z, i.S, i.O, z, s, o)
	}
}

func TestLd_mem(t *testing.T) {
	i := setup(t, C{0x1010, 0x0003, 0x0000, 0x8000}, Terminal(3), Flags(false, false, true))
	run(t, i)
	if i.GR[1] != 0x8000 {
		t.Errorf("GR1 = %#04x, expected 0x8000", uint16(i.GR[1]))
	}
	checkFlags(t, i, false, true, false)
}

func TestLd_reg(t *testing.T) {
	i := setup(t, C{0x1412}, Flags(false, true, true))
	run(t, i)
	if i.GR[1] != 0 {
		t.Errorf("GR1 = %#04x, expected 0", uint16(i.GR[1]))
	}
	checkFlags(t, i, true, false, false)
}

func TestSt(t *testing.T) {
	i := setup(t, C{0x1110, 0x0003, 0x0000}, GR(1, 0xabcd), Flags(true, false, true))
	i.Mem[3] = Cell{W: 0xffff, Line: 9, Sym: "X"}
	run(t, i)
	if c := i.Mem[3]; c.W != 0xabcd || c.Line != 0 || c.Sym != "" {
		t.Errorf("Mem[3] = %+v, expected a bare 0xabcd", c)
	}
	// ST changes no flag
	checkFlags(t, i, true, false, true)
}

func TestLad_wrap(t *testing.T) {
	i := setup(t, C{0x1212, 0xffff}, GR(2, 2))
	run(t, i)
	if i.GR[1] != 1 {
		t.Errorf("GR1 = %#04x, expected 1", uint16(i.GR[1]))
	}
}

func TestAdda(t *testing.T) {
	data := []struct {
		a, b, r Word
		z, s, o bool
	}{
		{1, 2, 3, false, false, false},
		{0x7fff, 1, 0x8000, false, true, true},
		{0xffff, 1, 0, true, false, false},
		{0x8000, 0x8000, 0, true, false, true},
		{0xfffe, 1, 0xffff, false, true, false},
	}
	for _, d := range data {
		i := setup(t, C{0x2412}, GR(1, d.a), GR(2, d.b))
		run(t, i)
		if i.GR[1] != d.r {
			t.Errorf("ADDA %#04x+%#04x = %#04x, expected %#04x", uint16(d.a), uint16(d.b), uint16(i.GR[1]), uint16(d.r))
		}
		checkFlags(t, i, d.z, d.s, d.o)
	}
}

func TestSuba(t *testing.T) {
	data := []struct {
		a, b, r Word
		z, s, o bool
	}{
		{0, 1, 0xffff, false, true, false},
		{0x8000, 1, 0x7fff, false, false, true},
		{5, 5, 0, true, false, false},
		{0x7fff, 0xffff, 0x8000, false, true, true},
	}
	for _, d := range data {
		i := setup(t, C{0x2512}, GR(1, d.a), GR(2, d.b))
		run(t, i)
		if i.GR[1] != d.r {
			t.Errorf("SUBA %#04x-%#04x = %#04x, expected %#04x", uint16(d.a), uint16(d.b), uint16(i.GR[1]), uint16(d.r))
		}
		checkFlags(t, i, d.z, d.s, d.o)
	}
}

func TestAddl(t *testing.T) {
	data := []struct {
		a, b, r Word
		z, o    bool
	}{
		{1, 1, 2, false, false},
		{0xffff, 1, 0, true, true},
		{0x8000, 0x8000, 0, true, true},
		{0x8000, 1, 0x8001, false, false},
	}
	for _, d := range data {
		i := setup(t, C{0x2612}, GR(1, d.a), GR(2, d.b), Flags(false, true, false))
		run(t, i)
		if i.GR[1] != d.r {
			t.Errorf("ADDL %#04x+%#04x = %#04x, expected %#04x", uint16(d.a), uint16(d.b), uint16(i.GR[1]), uint16(d.r))
		}
		checkFlags(t, i, d.z, false, d.o)
	}
}

func TestSubl(t *testing.T) {
	data := []struct {
		a, b, r Word
		z, o    bool
	}{
		{0, 1, 0xffff, false, true},
		{5, 5, 0, true, false},
		{0x8000, 1, 0x7fff, false, false},
	}
	for _, d := range data {
		i := setup(t, C{0x2712}, GR(1, d.a), GR(2, d.b), Flags(false, true, false))
		run(t, i)
		if i.GR[1] != d.r {
			t.Errorf("SUBL %#04x-%#04x = %#04x, expected %#04x", uint16(d.a), uint16(d.b), uint16(i.GR[1]), uint16(d.r))
		}
		checkFlags(t, i, d.z, false, d.o)
	}
}

func TestLogical(t *testing.T) {
	data := []struct {
		op      Word
		a, b, r Word
	}{
		{0x3412, 0xf0f0, 0x8000, 0x8000}, // AND
		{0x3412, 0x00f0, 0x0f00, 0},
		{0x3512, 0x00f0, 0x0f00, 0x0ff0}, // OR
		{0x3612, 0xffff, 0x7fff, 0x8000}, // XOR
		{0x3612, 0xabcd, 0xabcd, 0},
	}
	for _, d := range data {
		i := setup(t, C{d.op}, GR(1, d.a), GR(2, d.b), Flags(false, true, true))
		run(t, i)
		if i.GR[1] != d.r {
			t.Errorf("op %#04x: %#04x,%#04x = %#04x, expected %#04x", uint16(d.op), uint16(d.a), uint16(d.b), uint16(i.GR[1]), uint16(d.r))
		}
		// logical results never set S or O, even with bit 15 set
		checkFlags(t, i, d.r == 0, false, false)
	}
}

func TestCompare(t *testing.T) {
	data := []struct {
		op   Word
		a, b Word
		z, s bool
	}{
		{0x4412, 1, 0xffff, false, false}, // CPA: 1 > -1
		{0x4412, 0xffff, 1, false, true},  // CPA: -1 < 1
		{0x4412, 3, 3, true, false},
		{0x4512, 1, 0xffff, false, true}, // CPL: 1 < 0xffff
		{0x4512, 0xffff, 1, false, false},
		{0x4512, 3, 3, true, false},
	}
	for _, d := range data {
		i := setup(t, C{d.op}, GR(1, d.a), GR(2, d.b), Flags(false, false, true))
		run(t, i)
		// compare writes no register
		if i.GR[1] != d.a || i.GR[2] != d.b {
			t.Errorf("op %#04x: registers mutated: GR1=%#04x GR2=%#04x", uint16(d.op), uint16(i.GR[1]), uint16(i.GR[2]))
		}
		checkFlags(t, i, d.z, d.s, false)
	}
}

func TestShift(t *testing.T) {
	data := []struct {
		op      Word // word1 of the shift, r1=GR1
		v       Word
		count   Word
		r       Word
		z, s, o bool
	}{
		{0x5110, 0xff00, 4, 0xfff0, false, true, false},  // SRA of negative
		{0x5210, 0xbf01, 17, 0x0000, true, false, false}, // SLL saturation
		{0x5010, 0x4001, 1, 0x0002, false, false, true},  // SLA drops bit 14 into O
		{0x5010, 0x8001, 1, 0x8002, false, true, false},  // SLA preserves sign
		{0x5010, 0xffff, 20, 0x8000, false, true, false}, // SLA clamps at 16
		{0x5110, 0x7fff, 15, 0x0000, true, false, true},  // SRA of positive
		{0x5310, 0x0003, 1, 0x0001, false, false, true},  // SRL
		{0x5310, 0x8000, 17, 0x0000, true, false, false}, // SRL saturation
		{0x5210, 0x8000, 1, 0x0000, true, false, true},   // SLL carries bit 15 out
	}
	for _, d := range data {
		i := setup(t, C{d.op, d.count}, GR(1, d.v))
		run(t, i)
		if i.GR[1] != d.r {
			t.Errorf("shift %#04x of %#04x by %d = %#04x, expected %#04x", uint16(d.op), uint16(d.v), d.count, uint16(i.GR[1]), uint16(d.r))
		}
		checkFlags(t, i, d.z, d.s, d.o)
	}
}

func TestShift_zeroCount(t *testing.T) {
	for _, op := range []Word{0x5010, 0x5110, 0x5210, 0x5310} {
		i := setup(t, C{op, 0}, GR(1, 0x8001), Flags(true, true, true))
		run(t, i)
		if i.GR[1] != 0x8001 {
			t.Errorf("shift %#04x by 0 changed register to %#04x", uint16(op), uint16(i.GR[1]))
		}
		checkFlags(t, i, true, true, true)
	}
}

func TestJumps(t *testing.T) {
	data := []struct {
		op      Word
		z, s, o bool
		taken   bool
	}{
		{0x6100, false, true, false, true},  // JMI
		{0x6100, false, false, false, false},
		{0x6200, false, false, false, true}, // JNZ
		{0x6200, true, false, false, false},
		{0x6300, true, false, false, true}, // JZE
		{0x6300, false, false, false, false},
		{0x6400, false, false, false, true}, // JUMP
		{0x6500, false, false, false, true}, // JPL
		{0x6500, true, false, false, false},
		{0x6500, false, true, false, false},
		{0x6600, false, false, true, true}, // JOV
		{0x6600, false, false, false, false},
	}
	for _, d := range data {
		// not taken falls through a NOP at 2, so the step count tells
		// whether the jump fired
		i := setup(t, C{d.op, 0x0003, 0x0000}, Flags(d.z, d.s, d.o))
		run(t, i)
		taken := i.InstructionCount() == 1
		if taken != d.taken {
			t.Errorf("jump %#04x with Z=%v S=%v O=%v: taken = %v", uint16(d.op), d.z, d.s, d.o, taken)
		}
		// jumps never modify flags
		checkFlags(t, i, d.z, d.s, d.o)
	}
}

func TestPushPop(t *testing.T) {
	i := setup(t, C{0x7000, 0x1234, 0x7130})
	run(t, i)
	if i.GR[3] != 0x1234 {
		t.Errorf("GR3 = %#04x, expected 0x1234", uint16(i.GR[3]))
	}
	if i.SP != 0 {
		t.Errorf("SP = %#04x, expected 0 after push/pop", uint16(i.SP))
	}
}

func TestPush_index(t *testing.T) {
	i := setup(t, C{0x7002, 0x0010}, GR(2, 0x20))
	run(t, i)
	if v := i.Mem[i.SP].W; v != 0x30 {
		t.Errorf("pushed %#04x, expected 0x30", uint16(v))
	}
}

func TestCallRet(t *testing.T) {
	// 0: CALL 4; 2: NOP (return lands here); 3: terminal; 4: RET
	i := setup(t, C{0x8000, 0x0004, 0x0000, 0x0000, 0x8100}, Terminal(3))
	run(t, i)
	if i.SP != 0 {
		t.Errorf("SP = %#04x, expected 0 after call/ret", uint16(i.SP))
	}
	if n := i.InstructionCount(); n != 3 {
		t.Errorf("executed %d instructions, expected 3", n)
	}
}

func TestVirtualCall(t *testing.T) {
	i := setup(t, C{0x8100}, VirtualCall())
	run(t, i)
	if i.PR != 1 {
		t.Errorf("PR = %#04x, expected terminal 1", uint16(i.PR))
	}
}

func TestNop(t *testing.T) {
	i := setup(t, C{0x0000}, Flags(true, true, true))
	run(t, i)
	checkFlags(t, i, true, true, true)
}

func TestUnknownOpcode(t *testing.T) {
	i := setup(t, C{0xff00})
	err := i.Run()
	if err == nil || !strings.Contains(err.Error(), "unknown opcode") {
		t.Errorf("expected unknown opcode error, got %v", err)
	}
}

func TestBadRegisterField(t *testing.T) {
	// POP with r1 = 9, unreachable through the assembler
	i := setup(t, C{0x7190})
	err := i.Run()
	if err == nil || !strings.Contains(err.Error(), "out of range") {
		t.Errorf("expected GR range error, got %v", err)
	}
}
