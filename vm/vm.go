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
	"bufio"
	"io"

	"github.com/pkg/errors"
)

// Option interface
type Option func(*Instance) error

// Input sets the input source for SVC 1. The reader is wrapped in a
// bufio.Reader unless it already implements io.ByteReader.
func Input(r io.Reader) Option {
	return func(i *Instance) error {
		if br, ok := r.(io.ByteReader); ok {
			i.input = br
		} else {
			i.input = bufio.NewReader(r)
		}
		return nil
	}
}

// Output sets the output sink for SVC 2.
func Output(w io.Writer) Option {
	return func(i *Instance) error { i.output = w; return nil }
}

// Trace sets the step trace sink.
func Trace(w io.Writer) Option {
	return func(i *Instance) error { i.trace = w; return nil }
}

// Entry sets the address execution starts at.
func Entry(a Word) Option {
	return func(i *Instance) error { i.PR = a; return nil }
}

// Terminal sets the address at which execution terminates.
func Terminal(a Word) Option {
	return func(i *Instance) error { i.end = a; return nil }
}

// GR seeds general register n.
func GR(n int, v Word) Option {
	return func(i *Instance) error {
		if n < 0 || n >= len(i.GR) {
			return errors.Errorf("no such register GR%d", n)
		}
		i.GR[n] = v
		return nil
	}
}

// SP seeds the stack pointer.
func SP(v Word) Option {
	return func(i *Instance) error { i.SP = v; return nil }
}

// Flags seeds the condition flags.
func Flags(z, s, o bool) Option {
	return func(i *Instance) error { i.Z, i.S, i.O = z, s, o; return nil }
}

// VirtualCall makes Run push the terminal address before the first fetch,
// so that a program ending in RET terminates naturally.
func VirtualCall() Option {
	return func(i *Instance) error { i.vcall = true; return nil }
}

// AllInput disables the printable filter on SVC 1 and admits every code
// unit from the input source.
func AllInput() Option {
	return func(i *Instance) error { i.allInput = true; return nil }
}

// Instance represents a COMET2 machine instance.
type Instance struct {
	GR  [8]Word
	PR  Word
	SP  Word
	Z   bool
	S   bool
	O   bool
	Mem Image

	end      Word
	vcall    bool
	allInput bool
	input    io.ByteReader
	output   io.Writer
	trace    io.Writer
	insCount int64
}

// New creates a new COMET2 instance running the given image. A short image
// is padded with zero cells to the full address space.
func New(mem Image, opts ...Option) (*Instance, error) {
	if len(mem) > MemSize {
		return nil, errors.Errorf("image too large: %d cells", len(mem))
	}
	if len(mem) < MemSize {
		mem = append(mem, make(Image, MemSize-len(mem))...)
	}
	i := &Instance{Mem: mem}
	for _, opt := range opts {
		if err := opt(i); err != nil {
			return nil, err
		}
	}
	return i, nil
}

// Terminal returns the configured terminal address.
func (i *Instance) Terminal() Word {
	return i.end
}

// InstructionCount returns the number of instructions executed so far.
func (i *Instance) InstructionCount() int64 {
	return i.insCount
}
