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

// Package asm provides a two-pass assembler for the CASL2 assembly
// language targeting the COMET2 virtual machine of package vm.
//
// Source grammar:
//
// Source is free-form lines. A ';' starts a comment running to the end of
// the line (a ';' inside a quoted DC string is part of the string). A
// label, if present, starts in column 1 and is a case-sensitive
// identifier beginning with a letter; it is bound to the current program
// length. The mnemonic follows whitespace and operands are comma
// separated, with whitespace around commas tolerated:
//
//	MAIN	START
//		IN	BUF, LEN	; read a line
//		OUT	BUF, LEN	; write it back
//		RET
//	BUF	DS	256
//	LEN	DS	1
//		END
//
// The register names GR0..GR7 are reserved and cannot be defined or
// referenced as labels.
//
// Machine instructions:
//
//	NOP
//	LD/ST/LAD	r,adr[,x]	(LD also r1,r2)
//	ADDA/SUBA/ADDL/SUBL	r,adr[,x] or r1,r2
//	AND/OR/XOR	r,adr[,x] or r1,r2
//	CPA/CPL		r,adr[,x] or r1,r2
//	SLA/SRA/SLL/SRL	r,adr[,x]
//	JMI/JNZ/JZE/JUMP/JPL/JOV	adr[,x]
//	PUSH	adr[,x]
//	POP	r
//	CALL	adr[,x]
//	RET
//	SVC	n
//
// An adr operand is a non-negative decimal integer, a #-prefixed
// hexadecimal integer, a label, or an =N literal. Literals are collected
// in a pool appended after the program, deduplicated by 16-bit value; the
// operand word receives the pool cell's address. The optional x is an
// index register; GR0 encodes as "no index".
//
// Pseudo-operations:
//
//	START [label]	must be the first statement; entry point
//	END		must be the last statement; terminal address
//	DS n		reserves n zero words
//	DC item,...	defines constants
//
// A DC item is a single-quoted string (doubled '' is a literal
// apostrophe; one cell per 8-bit code unit), a non-negative decimal
// integer, a #-prefixed hexadecimal integer, or a label reference.
//
// Macros:
//
//	IN src,size	read a block via SVC 1
//	OUT src,size	write a block via SVC 2
//	RPUSH		push GR1..GR7
//	RPOP		pop GR7..GR1
//
// IN and OUT save and restore GR1/GR2 around the supervisor call.
package asm
