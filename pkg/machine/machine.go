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

package machine

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

func (mc *MachineState) Reset() {
	for i := range mc.Registers {
		mc.Registers[i] = 0x0000
	}

	for i := range mc.Memory {
		mc.Memory[i] = 0x0000
	}

	// Programs are conventionally loaded at the start of user space
	mc.Program = MEMSPACE_USER
	mc.Condition = FLAG_ZERO
}

func (mc *Machine) Reset() {
	mc.State.Reset()
	mc.halted = false
}

func (mc *Machine) Halt() {
	mc.halted = true
}

func (mc *Machine) Halted() bool {
	return mc.halted
}

func (mc *Machine) logger() logrus.FieldLogger {
	if mc.Log == nil {
		return logrus.StandardLogger()
	}

	return mc.Log
}

// Step executes a single instruction. A halted machine does not fetch.
func (mc *Machine) Step() error {
	if mc.halted {
		return nil
	}

	addr := mc.State.Program

	word, err := mc.read(addr)
	if err != nil {
		return err
	}

	mc.State.Program++

	in := Instruction(word)

	if mc.Trace {
		mc.logger().WithFields(logrus.Fields{
			"pc":    fmt.Sprintf("%#04x", addr),
			"instr": fmt.Sprintf("%#04x", uint16(in)),
			"op":    in.String(),
		}).Debug("step")
	}

	err = handlers[in.Opcode()](mc, in)

	if mc.Debugger != nil {
		mc.Debugger.Step(mc)
	}

	return err
}

// Run steps the machine until it halts. Invalid opcodes and trap vectors
// are logged and skipped; any other error halts the machine and is
// returned. Use Reset to run a halted machine again.
func (mc *Machine) Run() error {
	for !mc.halted {
		err := mc.Step()

		if err == nil {
			continue
		}

		if !IsDiagnostic(err) {
			mc.Halt()
			return err
		}

		mc.logger().WithFields(diagnosticFields(err)).WithError(err).Warn("ignoring instruction")
	}

	return nil
}
