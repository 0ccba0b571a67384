// seehuhn.de/go/pslite - a minimal PostScript-like stack interpreter
// Copyright (C) 2023  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

// Command pslite runs a program with the pslite interpreter and prints the
// resulting operand stack.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"seehuhn.de/go/pslite"
	"seehuhn.de/go/pslite/graphics"
	"seehuhn.de/go/pslite/internal/config"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes the command with the given arguments and returns the exit
// code.  The exit code only reflects problems with the arguments and input
// files; a failing program still exits with code 0.
func run(args []string, stdout, stderr io.Writer) int {
	flags := flag.NewFlagSet("pslite", flag.ContinueOnError)
	flags.SetOutput(stderr)
	fileName := flags.String("file", "", "program to run")
	configName := flags.String("config", "", "YAML configuration file")
	trace := flags.Bool("trace", false, "log every execution step")
	withGraphics := flags.Bool("graphics", false, "enable the graphics operators")
	flags.Usage = func() {
		fmt.Fprintln(stderr, "usage: pslite --file <program> [--config <file.yml>] [--trace] [--graphics]")
		flags.PrintDefaults()
	}
	if err := flags.Parse(args); err != nil {
		return 2
	}
	if *fileName == "" {
		flags.Usage()
		return 2
	}

	cfg := config.Default()
	if *configName != "" {
		var err error
		cfg, err = config.Load(*configName)
		if err != nil {
			fmt.Fprintln(stderr, "pslite:", err)
			return 1
		}
	}
	if *trace {
		cfg.Trace = true
	}
	if *withGraphics {
		cfg.Graphics = true
	}

	fd, err := os.Open(*fileName)
	if err != nil {
		fmt.Fprintln(stderr, "pslite:", err)
		flags.Usage()
		return 1
	}
	defer fd.Close()

	logger := log.New(stderr, "pslite: ", 0)
	opts := []pslite.Option{
		pslite.WithMaxOperandStack(cfg.MaxOperandStack),
	}
	if cfg.Trace {
		opts = append(opts, pslite.WithLogf(logger.Printf))
	}
	var rec *graphics.Recorder
	if cfg.Graphics {
		rec = graphics.NewRecorder()
		opts = append(opts, pslite.WithDevice(rec))
	}

	intp := pslite.NewInterpreter(opts...)
	if !intp.Load(fd) {
		logger.Printf("%s: %v", *fileName, intp.Err())
	}

	fmt.Fprintln(stdout, intp.StackString())
	if rec != nil {
		pages := len(rec.Pages)
		items := len(rec.Page())
		for _, page := range rec.Pages {
			items += len(page)
		}
		fmt.Fprintf(stdout, "%d page(s), %d painted path(s)\n", pages, items)
	}
	return 0
}
