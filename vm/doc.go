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

// Package vm implements the COMET2 virtual machine.
//
// COMET2 is the 16-bit machine architecture companion to the CASL2
// assembly language used in the Japanese IT engineer examinations. The
// machine has eight general registers GR0..GR7, a program counter PR, a
// stack pointer SP, three condition flags (zero, sign, overflow) and a
// flat 65,536-word memory. There is no distinction between code and data;
// addresses are plain 16-bit words and all address arithmetic wraps
// modulo 2^16.
//
// An Instance is created from an Image (usually produced by package asm)
// and configured with functional options: I/O sinks, a step trace sink,
// initial register and flag values, and the entry and terminal addresses.
// Run then interprets the image until PR reaches the terminal address:
//
//	i, err := vm.New(prog.Mem,
//		vm.Entry(prog.Start),
//		vm.Terminal(prog.End),
//		vm.Input(os.Stdin),
//		vm.Output(os.Stdout))
//	if err != nil {
//		// ...
//	}
//	err = i.Run()
//
// Character I/O goes through two supervisor calls: SVC 1 reads a block of
// up to 256 code units into memory, SVC 2 writes a block of memory to the
// output sink. Code units are 8-bit scalars; a proper JIS X 0201 mapping
// is up to the embedding program.
//
// Each memory cell carries optional assembly-time provenance (source line
// and originating symbol) that the trace sink may render. Provenance never
// influences execution and is cleared by stores executed at run time.
package vm
