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
	"github.com/sirupsen/logrus"
)

// Keyboard is the input side of the console. KeyAvailable must not block;
// ReadKey blocks until a key arrives.
type Keyboard interface {
	KeyAvailable() bool
	ReadKey() (byte, error)
}

// Display is the output side of the console. *bufio.Writer satisfies it.
type Display interface {
	WriteByte(c byte) error
	Flush() error
}

type DeviceHandler struct {
	Keyboard Keyboard
	Display  Display
}

type MachineState struct {
	Registers [8]uint16
	Program   uint16
	Condition uint16
	Memory    [MemorySize]uint16
}

type MachineDebugger interface {
	Step(mc *Machine)
	Read(addr uint16, mc *Machine)
	Write(addr uint16, mc *Machine)
}

type Machine struct {
	Devices  *DeviceHandler
	State    MachineState
	Debugger MachineDebugger

	// Log receives diagnostics and, when Trace is set, one entry per
	// executed instruction. Nil means the logrus standard logger.
	Log   logrus.FieldLogger
	Trace bool

	halted bool
}
