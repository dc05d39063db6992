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

// The casl2 command line tool assembles a CASL2 source file and runs it
// on the COMET2 virtual machine of package github.com/db47h/casl2/vm.
//
// Usage:
//
//	casl2 [flags] file
//
// The file argument is a CASL2 source path, or "-" to read standard
// input.
//
// Assembly flags; --parse, --labels and --dump stop before execution,
// --org does not:
//
//	--parse		assemble only
//	--labels	assemble and list resolved labels
//	--dump		assemble and write the 65,536-word binary image
//			(little-endian) to stdout
//	--org n		assemble at base address n, leaving n zero words
//			below the program
//
// Runtime flags:
//
//	--in file	input source for SVC 1 (default stdin)
//	--out file	output sink for SVC 2 (default stdout)
//	--trace file	write a step trace
//	--data file	load raw bytes into memory before running
//	--data-at n	address the --data bytes are loaded at
//	--gr0..--gr7 n	seed general registers
//	--sp n		seed the stack pointer
//	--zf --sf --of	seed the condition flags
//	--entry n	override the entry address
//	--end n		override the terminal address
//	--call		virtual-call mode: the terminal address is pushed
//			before the first instruction, so a program ending
//			in RET terminates cleanly
//	--all-input	admit every input code unit on SVC 1 instead of
//			only printable ones
//	--raw		switch the terminal to raw input mode
//
// The exit status is 0 when the program reaches its terminal address and
// 1 on any assemble-time or runtime error. Runtime errors are reported
// with the faulting address, the source line it was assembled from and a
// register dump.
package main
