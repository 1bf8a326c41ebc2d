// Copyright (C) 2021  Antonio Lassandro

// This program is free software: you can redistribute it and/or modify it
// under the terms of the GNU General Public License as published by the Free
// Software Foundation, either version 3 of the License, or (at your option)
// any later version.

// This program is distributed in the hope that it will be useful, but WITHOUT
// ANY WARRANTY; without even the implied warranty of MERCHANTABILITY or
// FITNESS FOR A PARTICULAR PURPOSE.  See the GNU General Public License for
// more details.

// You should have received a copy of the GNU General Public License along
// with this program.  If not, see <http://www.gnu.org/licenses/>.

package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/tebeka/atexit"

	"github.com/lassandro/lc3vm/pkg/debugger"
	"github.com/lassandro/lc3vm/pkg/machine"
	"github.com/lassandro/lc3vm/pkg/terminal"
)

func init() {
	exe, _ := os.Executable()
	log.SetFlags(0)
	log.SetPrefix(fmt.Sprintf("%s: ", filepath.Base(exe)))
	log.SetOutput(os.Stderr)
}

func newLogger(c *config) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	logger.SetLevel(c.LogLevel)

	if c.Trace && !logger.IsLevelEnabled(logrus.DebugLevel) {
		logger.SetLevel(logrus.DebugLevel)
	}

	return logger
}

// loadImages replaces the machine's state with the images in c. Nothing
// changes unless every image loads. The PC starts at the origin of the
// first image unless -pc was given.
func loadImages(mc *machine.Machine, c *config) error {
	var scratch machine.Machine
	scratch.Reset()

	for i, path := range c.Images {
		origin, err := scratch.LoadImageFile(path)
		if err != nil {
			return err
		}

		if i == 0 {
			scratch.State.Program = origin
		}
	}

	if c.Program != nil {
		scratch.State.Program = *c.Program
	}

	mc.Reset()
	mc.State = scratch.State
	return nil
}

func lc3vm() int {
	c, err := parseArgs(os.Args[1:], os.Stderr)

	if err == flag.ErrHelp {
		return 0
	} else if err != nil {
		log.Println(err)
		return 1
	}

	if c.Help {
		fmt.Println(usage)
		return 0
	}

	if len(c.Images) == 0 {
		log.Println(usage)
		return 2
	}

	mc := machine.Machine{Log: newLogger(c), Trace: c.Trace}

	if err := loadImages(&mc, c); err != nil {
		log.Println(err)
		return 1
	}

	term, err := terminal.Open(os.Stdin, os.Stdout)

	if err != nil {
		log.Println(err)
		return 1
	}

	atexit.Register(func() { term.Restore() })
	defer term.Restore()

	mc.Devices = &machine.DeviceHandler{Keyboard: term, Display: term}

	var dbg *debugger.Debugger

	if c.Debug {
		dbg = newDebugger(&session{term: term, mc: &mc, config: c})
		mc.Debugger = dbg
	}

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(signals)

	go func() {
		for sig := range signals {
			// A second SIGINT before the break lands means the guest is
			// stuck in GETC/IN; treat it as a plain interrupt.
			if dbg != nil && sig == os.Interrupt && !dbg.Interrupt() {
				fmt.Fprintln(os.Stderr, "\nbreak requested, interrupt again to exit")
				continue
			}

			fmt.Fprintln(os.Stderr)
			atexit.Exit(130)
		}
	}()

	if dbg != nil {
		dbg.HandleBreak(dbg, &mc)
	}

	if err := mc.Run(); err != nil {
		term.Flush()
		log.Println(err)
		return 1
	}

	return 0
}

func main() {
	atexit.Exit(lc3vm())
}
