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

import "github.com/pkg/errors"

// fault aborts the current Run with a runtime error. Recovered in Run.
func (i *Instance) fault(addr Word, format string, args ...interface{}) {
	err := errors.Errorf(format, args...)
	if l := i.Mem[addr].Line; l != 0 {
		panic(errors.Wrapf(err, "at %#04x (line %d)", uint16(addr), l))
	}
	panic(errors.Wrapf(err, "at %#04x", uint16(addr)))
}

// fetch returns the word at PR and advances PR. Wraps at the end of the
// address space.
func (i *Instance) fetch() Word {
	w := i.Mem[i.PR].W
	i.PR++
	return w
}

// ea computes the effective address for a two-word instruction: the
// address word at PR plus the index register, masked to 16 bits.
func (i *Instance) ea(x int) Word {
	a := i.fetch()
	if x != 0 {
		a += i.GR[x]
	}
	return a
}

// store writes a word at run time, clearing any assembly-time provenance.
func (i *Instance) store(a, v Word) {
	i.Mem[a] = Cell{W: v}
}

func (i *Instance) push(v Word) {
	i.SP--
	i.store(i.SP, v)
}

func (i *Instance) pop() Word {
	v := i.Mem[i.SP].W
	i.SP++
	return v
}

// reg validates a decoded register field. The encoder cannot produce an
// index above 7, so this only guards against corrupted images.
func (i *Instance) reg(addr Word, n int) int {
	if n >= len(i.GR) {
		i.fault(addr, "GR index %d out of range", n)
	}
	return n
}

// setZS sets Z and S from a result word.
func (i *Instance) setZS(v Word) {
	i.Z = v == 0
	i.S = v&0x8000 != 0
}

// setLogical sets the flags for AND/OR/XOR results.
func (i *Instance) setLogical(v Word) {
	i.Z = v == 0
	i.S = false
	i.O = false
}

// Run executes the loaded image from the current PR until PR reaches the
// terminal address. In virtual-call mode the terminal address is pushed
// first, so a program ending in RET terminates the loop.
//
// On a runtime error (unknown opcode, unknown SVC service), PR points past
// the instruction that faulted and the returned error identifies the
// faulting address and, when known, the source line it was assembled from.
func (i *Instance) Run() (err error) {
	defer func() {
		if e := recover(); e != nil {
			switch e := e.(type) {
			case error:
				err = e
			default:
				panic(e)
			}
		}
	}()
	i.insCount = 0
	if i.vcall {
		i.push(i.end)
		i.vcall = false
	}
	for i.PR != i.end {
		instAddr := i.PR
		w := i.fetch()
		op := byte(w >> 8)
		r1 := int(w>>4) & 0xf
		r2 := int(w) & 0xf
		switch op {
		case OpNop:
		case OpLd:
			v := i.Mem[i.ea(r2)].W
			i.setZS(v)
			i.O = false
			i.GR[i.reg(instAddr, r1)] = v
		case OpLdr:
			v := i.GR[i.reg(instAddr, r2)]
			i.setZS(v)
			i.O = false
			i.GR[i.reg(instAddr, r1)] = v
		case OpSt:
			i.store(i.ea(r2), i.GR[i.reg(instAddr, r1)])
		case OpLad:
			i.GR[i.reg(instAddr, r1)] = i.ea(r2)
		case OpAdda:
			i.adda(instAddr, r1, i.Mem[i.ea(r2)].W)
		case OpAddar:
			i.adda(instAddr, r1, i.GR[i.reg(instAddr, r2)])
		case OpSuba:
			i.suba(instAddr, r1, i.Mem[i.ea(r2)].W)
		case OpSubar:
			i.suba(instAddr, r1, i.GR[i.reg(instAddr, r2)])
		case OpAddl:
			i.addl(instAddr, r1, i.Mem[i.ea(r2)].W)
		case OpAddlr:
			i.addl(instAddr, r1, i.GR[i.reg(instAddr, r2)])
		case OpSubl:
			i.subl(instAddr, r1, i.Mem[i.ea(r2)].W)
		case OpSublr:
			i.subl(instAddr, r1, i.GR[i.reg(instAddr, r2)])
		case OpAnd:
			r := i.reg(instAddr, r1)
			v := i.GR[r] & i.Mem[i.ea(r2)].W
			i.setLogical(v)
			i.GR[r] = v
		case OpAndr:
			r := i.reg(instAddr, r1)
			v := i.GR[r] & i.GR[i.reg(instAddr, r2)]
			i.setLogical(v)
			i.GR[r] = v
		case OpOr:
			r := i.reg(instAddr, r1)
			v := i.GR[r] | i.Mem[i.ea(r2)].W
			i.setLogical(v)
			i.GR[r] = v
		case OpOrr:
			r := i.reg(instAddr, r1)
			v := i.GR[r] | i.GR[i.reg(instAddr, r2)]
			i.setLogical(v)
			i.GR[r] = v
		case OpXor:
			r := i.reg(instAddr, r1)
			v := i.GR[r] ^ i.Mem[i.ea(r2)].W
			i.setLogical(v)
			i.GR[r] = v
		case OpXorr:
			r := i.reg(instAddr, r1)
			v := i.GR[r] ^ i.GR[i.reg(instAddr, r2)]
			i.setLogical(v)
			i.GR[r] = v
		case OpCpa:
			i.cpa(instAddr, r1, i.Mem[i.ea(r2)].W)
		case OpCpar:
			i.cpa(instAddr, r1, i.GR[i.reg(instAddr, r2)])
		case OpCpl:
			i.cpl(instAddr, r1, i.Mem[i.ea(r2)].W)
		case OpCplr:
			i.cpl(instAddr, r1, i.GR[i.reg(instAddr, r2)])
		case OpSla, OpSra, OpSll, OpSrl:
			i.shift(instAddr, op, r1, int(i.ea(r2)))
		case OpJmi:
			a := i.ea(r2)
			if i.S {
				i.PR = a
			}
		case OpJnz:
			a := i.ea(r2)
			if !i.Z {
				i.PR = a
			}
		case OpJze:
			a := i.ea(r2)
			if i.Z {
				i.PR = a
			}
		case OpJump:
			i.PR = i.ea(r2)
		case OpJpl:
			a := i.ea(r2)
			if !i.S && !i.Z {
				i.PR = a
			}
		case OpJov:
			a := i.ea(r2)
			if i.O {
				i.PR = a
			}
		case OpPush:
			i.push(i.ea(r2))
		case OpPop:
			i.GR[i.reg(instAddr, r1)] = i.pop()
		case OpCall:
			a := i.ea(r2)
			i.push(i.PR)
			i.PR = a
		case OpRet:
			i.PR = i.pop()
		case OpSvc:
			i.svc(instAddr, i.fetch())
		default:
			i.fault(instAddr, "unknown opcode %#02x", op)
		}
		i.insCount++
		i.traceStep(instAddr)
	}
	return nil
}

// adda adds v to GR r1 with signed overflow detection. Flags are computed
// from the truncated result before the register write.
func (i *Instance) adda(addr Word, r1 int, v Word) {
	r := i.reg(addr, r1)
	a := i.GR[r]
	s := a + v
	i.O = (a^v)&0x8000 == 0 && (a^s)&0x8000 != 0
	i.setZS(s)
	i.GR[r] = s
}

func (i *Instance) suba(addr Word, r1 int, v Word) {
	r := i.reg(addr, r1)
	a := i.GR[r]
	s := a - v
	i.O = (a^v)&0x8000 != 0 && (a^s)&0x8000 != 0
	i.setZS(s)
	i.GR[r] = s
}

// addl adds v to GR r1 as unsigned values. O is the carry out of bit 15.
func (i *Instance) addl(addr Word, r1 int, v Word) {
	r := i.reg(addr, r1)
	sum := uint32(i.GR[r]) + uint32(v)
	s := Word(sum)
	i.O = sum > 0xffff
	i.Z = s == 0
	i.S = false
	i.GR[r] = s
}

func (i *Instance) subl(addr Word, r1 int, v Word) {
	r := i.reg(addr, r1)
	a := i.GR[r]
	s := a - v
	i.O = a < v
	i.Z = s == 0
	i.S = false
	i.GR[r] = s
}

// cpa compares GR r1 against v as signed values. No register is written.
func (i *Instance) cpa(addr Word, r1 int, v Word) {
	a := i.GR[i.reg(addr, r1)]
	i.Z = a == v
	i.S = int16(a) < int16(v)
	i.O = false
}

func (i *Instance) cpl(addr Word, r1 int, v Word) {
	a := i.GR[i.reg(addr, r1)]
	i.Z = a == v
	i.S = a < v
	i.O = false
}

// shift applies one of the four shift opcodes to GR r1 with the given
// count. A count of 0 leaves the register and every flag unchanged.
func (i *Instance) shift(addr Word, op byte, r1, count int) {
	if count == 0 {
		return
	}
	r := i.reg(addr, r1)
	v := i.GR[r]
	var o bool
	switch op {
	case OpSla:
		if count > 16 {
			count = 16
		}
		for k := 0; k < count; k++ {
			o = v&0x4000 != 0
			v = v&0x8000 | v<<1&0x7fff
		}
		i.O = o
		i.setZS(v)
	case OpSra:
		if count > 16 {
			count = 16
		}
		for k := 0; k < count; k++ {
			o = v&1 != 0
			v = v>>1 | v&0x8000
		}
		i.O = o
		i.setZS(v)
	case OpSll:
		if count > 17 {
			count = 17
		}
		for k := 0; k < count; k++ {
			o = v&0x8000 != 0
			v <<= 1
		}
		i.O = o
		i.Z = v == 0
		i.S = false
	case OpSrl:
		if count > 17 {
			count = 17
		}
		for k := 0; k < count; k++ {
			o = v&1 != 0
			v >>= 1
		}
		i.O = o
		i.Z = v == 0
		i.S = false
	}
	i.GR[r] = v
}
