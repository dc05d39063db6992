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

// COMET2 opcode bytes. Two-word forms fetch an address word; one-word
// register-register forms keep both operands in the r fields.
const (
	OpNop   = 0x00
	OpLd    = 0x10
	OpSt    = 0x11
	OpLad   = 0x12
	OpLdr   = 0x14
	OpAdda  = 0x20
	OpSuba  = 0x21
	OpAddl  = 0x22
	OpSubl  = 0x23
	OpAddar = 0x24
	OpSubar = 0x25
	OpAddlr = 0x26
	OpSublr = 0x27
	OpAnd   = 0x30
	OpOr    = 0x31
	OpXor   = 0x32
	OpAndr  = 0x34
	OpOrr   = 0x35
	OpXorr  = 0x36
	OpCpa   = 0x40
	OpCpl   = 0x41
	OpCpar  = 0x44
	OpCplr  = 0x45
	OpSla   = 0x50
	OpSra   = 0x51
	OpSll   = 0x52
	OpSrl   = 0x53
	OpJmi   = 0x61
	OpJnz   = 0x62
	OpJze   = 0x63
	OpJump  = 0x64
	OpJpl   = 0x65
	OpJov   = 0x66
	OpPush  = 0x70
	OpPop   = 0x71
	OpCall  = 0x80
	OpRet   = 0x81
	OpSvc   = 0xF0
)

var opNames = map[byte]string{
	OpNop:   "NOP",
	OpLd:    "LD",
	OpSt:    "ST",
	OpLad:   "LAD",
	OpLdr:   "LD",
	OpAdda:  "ADDA",
	OpSuba:  "SUBA",
	OpAddl:  "ADDL",
	OpSubl:  "SUBL",
	OpAddar: "ADDA",
	OpSubar: "SUBA",
	OpAddlr: "ADDL",
	OpSublr: "SUBL",
	OpAnd:   "AND",
	OpOr:    "OR",
	OpXor:   "XOR",
	OpAndr:  "AND",
	OpOrr:   "OR",
	OpXorr:  "XOR",
	OpCpa:   "CPA",
	OpCpl:   "CPL",
	OpCpar:  "CPA",
	OpCplr:  "CPL",
	OpSla:   "SLA",
	OpSra:   "SRA",
	OpSll:   "SLL",
	OpSrl:   "SRL",
	OpJmi:   "JMI",
	OpJnz:   "JNZ",
	OpJze:   "JZE",
	OpJump:  "JUMP",
	OpJpl:   "JPL",
	OpJov:   "JOV",
	OpPush:  "PUSH",
	OpPop:   "POP",
	OpCall:  "CALL",
	OpRet:   "RET",
	OpSvc:   "SVC",
}

// IsTwoWord reports whether the opcode byte takes an address word.
func IsTwoWord(op byte) bool {
	switch op {
	case OpLd, OpSt, OpLad, OpAdda, OpSuba, OpAddl, OpSubl,
		OpAnd, OpOr, OpXor, OpCpa, OpCpl,
		OpSla, OpSra, OpSll, OpSrl,
		OpJmi, OpJnz, OpJze, OpJump, OpJpl, OpJov,
		OpPush, OpCall, OpSvc:
		return true
	}
	return false
}

// OpName returns the mnemonic for the opcode byte, or "" if the byte does
// not encode an instruction.
func OpName(op byte) string {
	return opNames[op]
}
