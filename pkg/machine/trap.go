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
	"github.com/pkg/errors"
)

// TRAP |1111    |0000   |trapvect8       | System call
// ---- [ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ ]
func (mc *Machine) execTrap(in Instruction) error {
	mc.State.Registers[7] = mc.State.Program

	switch vector := in.TrapVector(); vector {
	case TRAP_GETC:
		return mc.trapGetc()
	case TRAP_OUT:
		return mc.trapOut()
	case TRAP_PUTS:
		return mc.trapPuts()
	case TRAP_IN:
		return mc.trapIn()
	case TRAP_PUTSP:
		return mc.trapPutsp()
	case TRAP_HALT:
		return mc.trapHalt()
	default:
		return &InvalidTrapError{Addr: mc.State.Program - 1, Vector: vector}
	}
}

func (mc *Machine) getc() (byte, error) {
	kb := mc.keyboard()
	if kb == nil {
		return 0, ErrNoKeyboard
	}

	key, err := kb.ReadKey()
	return key, errors.Wrap(err, "keyboard")
}

func (mc *Machine) trapGetc() error {
	key, err := mc.getc()
	if err != nil {
		return err
	}

	mc.setRegister(0, uint16(key))
	return nil
}

func (mc *Machine) trapOut() error {
	if err := mc.putc(byte(mc.State.Registers[0] & 0xFF)); err != nil {
		return err
	}

	return mc.flush()
}

// Strings are walked with plain memory reads so device registers and
// debugger watchpoints behave exactly as they do for LDR.
func (mc *Machine) trapPuts() error {
	addr := mc.State.Registers[0]

	for i := 0; i < MemorySize; i++ {
		value, err := mc.read(addr)
		if err != nil {
			return err
		}

		if value == 0 {
			break
		}

		if err := mc.putc(byte(value & 0xFF)); err != nil {
			return err
		}

		addr++
	}

	return mc.flush()
}

func (mc *Machine) trapIn() error {
	for i := 0; i < len(inputPrompt); i++ {
		if err := mc.putc(inputPrompt[i]); err != nil {
			return err
		}
	}

	if err := mc.flush(); err != nil {
		return err
	}

	key, err := mc.getc()
	if err != nil {
		return err
	}

	if err := mc.putc(key); err != nil {
		return err
	}

	mc.setRegister(0, uint16(key))
	return mc.flush()
}

func (mc *Machine) trapPutsp() error {
	addr := mc.State.Registers[0]

loop:
	for i := 0; i < MemorySize; i++ {
		value, err := mc.read(addr)
		if err != nil {
			return err
		}

		for _, c := range [2]byte{byte(value & 0xFF), byte(value >> 8)} {
			if c == 0 {
				break loop
			}

			if err := mc.putc(c); err != nil {
				return err
			}
		}

		addr++
	}

	return mc.flush()
}

func (mc *Machine) trapHalt() error {
	for _, c := range []byte("HALT\n") {
		if err := mc.putc(c); err != nil {
			return err
		}
	}

	mc.Halt()
	return mc.flush()
}
