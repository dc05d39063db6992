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

// Supervisor call service numbers.
const (
	SvcIn  = 1
	SvcOut = 2
)

// inMax is the read cap of SVC IN, in cells.
const inMax = 256

// printable reports whether b is admitted by the default input filter:
// the printable ASCII range plus the JIS X 0201 katakana range.
func printable(b byte) bool {
	return 0x21 <= b && b <= 0x7e || 0xa1 <= b && b <= 0xdf
}

// svc dispatches a supervisor call. The service number is the address word
// of the SVC instruction; the r fields are ignored.
func (i *Instance) svc(addr, service Word) {
	switch service {
	case SvcIn:
		i.svcIn()
	case SvcOut:
		i.svcOut(addr)
	default:
		i.fault(addr, "unknown SVC service %d", service)
	}
}

// svcIn reads up to inMax code units into memory at GR1 and stores the
// count actually read at the address in GR2. With no input source the
// count is 0. Unless AllInput is set, non-printable code units are
// skipped.
func (i *Instance) svcIn() {
	var n Word
	if i.input != nil {
		for n < inMax {
			b, err := i.input.ReadByte()
			if err != nil {
				break
			}
			if !i.allInput && !printable(b) {
				continue
			}
			i.store(i.GR[1]+n, Word(b))
			n++
		}
	}
	i.store(i.GR[2], n)
}

// svcOut writes the low byte of MEM[GR2] cells starting at GR1 to the
// output sink.
func (i *Instance) svcOut(addr Word) {
	if i.output == nil {
		return
	}
	count := i.Mem[i.GR[2]].W
	b := make([]byte, count)
	for k := Word(0); k < count; k++ {
		b[k] = byte(i.Mem[i.GR[1]+k].W)
	}
	if _, err := i.output.Write(b); err != nil {
		i.fault(addr, "output write failed: %v", err)
	}
}
