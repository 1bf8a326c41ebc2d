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
	"io"

	"github.com/sirupsen/logrus"

	"github.com/lassandro/lc3vm/pkg/encoding"
)

const usage = "lc3vm [-debug] [-trace] [-pc 0x####] [-log-level level] image..."

type config struct {
	Help     bool
	Debug    bool
	Trace    bool
	// Program overrides the initial PC. Nil starts at the origin of the
	// first image.
	Program  *uint16
	LogLevel logrus.Level
	Images   []string
}

func parseArgs(args []string, output io.Writer) (*config, error) {
	var c config

	var pc string
	var level string

	flags := flag.NewFlagSet("lc3vm", flag.ContinueOnError)
	flags.SetOutput(output)
	flags.BoolVar(&c.Help, "help", false, "Displays command usage")
	flags.BoolVar(&c.Debug, "debug", false, "Runs the machine in a debug CLI")
	flags.BoolVar(&c.Trace, "trace", false, "Logs every executed instruction")
	flags.StringVar(&pc, "pc", "", "Initial program counter (default: first image origin)")
	flags.StringVar(&level, "log-level", "warning", "Diagnostic log level")

	if err := flags.Parse(args); err != nil {
		return nil, err
	}

	if pc != "" {
		value, err := encoding.DecodeHex(pc)
		if err != nil {
			return nil, err
		}

		c.Program = &value
	}

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, err
	}

	c.LogLevel = lvl
	c.Images = flags.Args()

	return &c, nil
}
