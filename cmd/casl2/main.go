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

package main

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/db47h/casl2/asm"
	"github.com/db47h/casl2/vm"
)

var (
	parseOnly  bool
	dumpImage  bool
	listLabels bool
	orgAddr    uint16
	dataFile   string
	dataAt     uint16

	inFile    string
	outFile   string
	traceFile string
	grVals    [8]uint16
	spVal     uint16
	zFlag     bool
	sFlag     bool
	oFlag     bool
	entryAddr uint16
	endAddr   uint16
	vcall     bool
	allInput  bool
	rawInput  bool
)

// atExit reports a runtime error with a register dump and decides the
// process exit status.
func atExit(i *vm.Instance, err error) error {
	if err == nil {
		return nil
	}
	fmt.Fprintf(os.Stderr, "%v\n", err)
	if i != nil {
		i.DumpRegs(os.Stderr)
	}
	return err
}

// openSource returns the assembly source reader. "-" reads standard
// input.
func openSource(arg string) (string, io.ReadCloser, error) {
	if arg == "-" {
		return "stdin", io.NopCloser(os.Stdin), nil
	}
	f, err := os.Open(arg)
	if err != nil {
		return arg, nil, errors.Wrap(err, "open failed")
	}
	return arg, f, nil
}

func run(cmd *cobra.Command, args []string) error {
	name, src, err := openSource(args[0])
	if err != nil {
		return err
	}
	prog, err := asm.Assemble(name, src, asm.Org(vm.Word(orgAddr)))
	src.Close()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return err
	}

	if listLabels {
		for _, l := range prog.Labels() {
			fmt.Printf("%04x\t%s\n", uint16(l.Addr), l.Name)
		}
	}
	if dumpImage {
		if err = prog.Mem.WriteBinary(os.Stdout); err != nil {
			return atExit(nil, err)
		}
	}
	if parseOnly || listLabels || dumpImage {
		return nil
	}

	if dataFile != "" {
		f, err := os.Open(dataFile)
		if err != nil {
			return atExit(nil, errors.Wrap(err, "open failed"))
		}
		_, err = vm.ReadData(f, prog.Mem, vm.Word(dataAt))
		f.Close()
		if err != nil {
			return atExit(nil, err)
		}
	}

	var out io.Writer
	if outFile != "" {
		f, err := os.Create(outFile)
		if err != nil {
			return atExit(nil, errors.Wrap(err, "create failed"))
		}
		defer f.Close()
		w := bufio.NewWriter(f)
		defer w.Flush()
		out = w
	} else {
		w := bufio.NewWriter(os.Stdout)
		defer w.Flush()
		out = w
	}

	opts := []vm.Option{
		vm.Entry(prog.Start),
		vm.Terminal(prog.End),
		vm.Output(out),
		vm.SP(vm.Word(spVal)),
		vm.Flags(zFlag, sFlag, oFlag),
	}
	for n, v := range grVals {
		opts = append(opts, vm.GR(n, vm.Word(v)))
	}
	if cmd.Flags().Changed("entry") {
		opts = append(opts, vm.Entry(vm.Word(entryAddr)))
	}
	if cmd.Flags().Changed("end") {
		opts = append(opts, vm.Terminal(vm.Word(endAddr)))
	}
	if vcall {
		opts = append(opts, vm.VirtualCall())
	}
	if allInput {
		opts = append(opts, vm.AllInput())
	}

	if inFile != "" {
		f, err := os.Open(inFile)
		if err != nil {
			return atExit(nil, errors.Wrap(err, "open failed"))
		}
		defer f.Close()
		opts = append(opts, vm.Input(f))
	} else {
		if rawInput {
			restore, err := setRawIO()
			if err != nil {
				return atExit(nil, err)
			}
			defer restore()
		}
		opts = append(opts, vm.Input(os.Stdin))
	}

	if traceFile != "" {
		f, err := os.Create(traceFile)
		if err != nil {
			return atExit(nil, errors.Wrap(err, "create failed"))
		}
		defer f.Close()
		w := bufio.NewWriter(f)
		defer w.Flush()
		opts = append(opts, vm.Trace(w))
	}

	i, err := vm.New(prog.Mem, opts...)
	if err != nil {
		return atExit(nil, err)
	}
	return atExit(i, i.Run())
}

func main() {
	rootCmd := &cobra.Command{
		Use:           "casl2 [flags] file",
		Short:         "casl2 assembles and runs CASL2 programs on a COMET2 virtual machine",
		Args:          cobra.ExactArgs(1),
		RunE:          run,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	f := rootCmd.Flags()
	f.BoolVar(&parseOnly, "parse", false, "assemble only, do not run")
	f.BoolVar(&dumpImage, "dump", false, "assemble and write the binary image to stdout")
	f.BoolVar(&listLabels, "labels", false, "assemble and list resolved labels")
	f.Uint16Var(&orgAddr, "org", 0, "base address the program is assembled at")
	f.StringVar(&dataFile, "data", "", "load raw bytes from `file` into memory before running")
	f.Uint16Var(&dataAt, "data-at", 0, "memory address the --data bytes are loaded at")
	f.StringVar(&inFile, "in", "", "input source `file` for SVC 1 (default stdin)")
	f.StringVar(&outFile, "out", "", "output `file` for SVC 2 (default stdout)")
	f.StringVar(&traceFile, "trace", "", "write a step trace to `file`")
	for n := 0; n < len(grVals); n++ {
		f.Uint16Var(&grVals[n], fmt.Sprintf("gr%d", n), 0, fmt.Sprintf("initial value of GR%d", n))
	}
	f.Uint16Var(&spVal, "sp", 0, "initial value of SP")
	f.BoolVar(&zFlag, "zf", false, "initial value of the zero flag")
	f.BoolVar(&sFlag, "sf", false, "initial value of the sign flag")
	f.BoolVar(&oFlag, "of", false, "initial value of the overflow flag")
	f.Uint16Var(&entryAddr, "entry", 0, "override the entry address")
	f.Uint16Var(&endAddr, "end", 0, "override the terminal address")
	f.BoolVar(&vcall, "call", false, "virtual-call mode: push the terminal address before running")
	f.BoolVar(&allInput, "all-input", false, "admit every input code unit on SVC 1")
	f.BoolVar(&rawInput, "raw", false, "switch the terminal to raw input mode")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
