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

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

var (
	ErrNoKeyboard     = errors.New("no keyboard attached")
	ErrImageTooShort  = errors.New("image too short")
	ErrImageOddLength = errors.New("image has a trailing half word")
	ErrImageOverflow  = errors.New("image runs past the end of memory")
)

// InvalidOpcodeError reports an RTI or reserved instruction. Execution
// continues past it.
type InvalidOpcodeError struct {
	Addr        uint16
	Instruction uint16
}

func (e *InvalidOpcodeError) Error() string {
	return fmt.Sprintf(
		"invalid opcode %s (%#04x) at %#04x",
		opNames[e.Instruction>>12], e.Instruction, e.Addr,
	)
}

// InvalidTrapError reports a TRAP with a vector that has no routine.
// Execution continues past it.
type InvalidTrapError struct {
	Addr   uint16
	Vector uint16
}

func (e *InvalidTrapError) Error() string {
	return fmt.Sprintf("invalid trap vector %#02x at %#04x", e.Vector, e.Addr)
}

// IsDiagnostic reports whether err is a guest anomaly that the run loop
// logs and absorbs rather than a device failure.
func IsDiagnostic(err error) bool {
	switch errors.Cause(err).(type) {
	case *InvalidOpcodeError, *InvalidTrapError:
		return true
	}

	return false
}

func diagnosticFields(err error) logrus.Fields {
	switch e := errors.Cause(err).(type) {
	case *InvalidOpcodeError:
		return logrus.Fields{
			"pc":    fmt.Sprintf("%#04x", e.Addr),
			"instr": fmt.Sprintf("%#04x", e.Instruction),
		}
	case *InvalidTrapError:
		return logrus.Fields{
			"pc":     fmt.Sprintf("%#04x", e.Addr),
			"vector": fmt.Sprintf("%#02x", e.Vector),
		}
	}

	return logrus.Fields{}
}
