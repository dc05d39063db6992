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
	"encoding/binary"
	"io"

	"github.com/pkg/errors"
)

// Word is a COMET2 machine word. All address arithmetic wraps modulo 2^16
// by virtue of the underlying type.
type Word uint16

// MemSize is the number of words in a COMET2 memory image.
const MemSize = 1 << 16

// Cell is one memory location: a word plus assembly-time provenance. Line
// is the 1-based source line that produced the value, Sym the label or
// literal the value came from. Both are informational only and are cleared
// by stores executed at run time.
type Cell struct {
	W    Word
	Line int
	Sym  string
}

// Image is a COMET2 memory image. A running machine always owns exactly
// MemSize cells.
type Image []Cell

// NewImage returns a zeroed full-size memory image.
func NewImage() Image {
	return make(Image, MemSize)
}

// ReadData fills consecutive cells starting at offset with bytes read from
// r, one zero-extended byte per word, until EOF. Addresses wrap modulo
// 2^16, not modulo len(mem). It returns the number of cells written.
func ReadData(r io.Reader, mem Image, offset Word) (n int, err error) {
	br, ok := r.(io.ByteReader)
	if !ok {
		br = bufio.NewReader(r)
	}
	a := offset
	for {
		b, err := br.ReadByte()
		if err != nil {
			if err == io.EOF {
				return n, nil
			}
			return n, errors.Wrap(err, "data read failed")
		}
		mem[a] = Cell{W: Word(b)}
		a++
		n++
	}
}

// WriteBinary writes the image to w as little-endian 16-bit words.
func (m Image) WriteBinary(w io.Writer) error {
	bw := bufio.NewWriter(w)
	var b [2]byte
	for _, c := range m {
		binary.LittleEndian.PutUint16(b[:], uint16(c.W))
		if _, err := bw.Write(b[:]); err != nil {
			return errors.Wrap(err, "image write failed")
		}
	}
	return errors.Wrap(bw.Flush(), "image write failed")
}
