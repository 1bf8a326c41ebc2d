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

func (mc *Machine) keyboard() Keyboard {
	if mc.Devices == nil {
		return nil
	}

	return mc.Devices.Keyboard
}

func (mc *Machine) display() Display {
	if mc.Devices == nil {
		return nil
	}

	return mc.Devices.Display
}

// read returns the word at addr. Device registers are serviced here: KBSR
// polls the keyboard and latches a pending key into KBDR, DSR reports
// whether a display is attached, DDR always reads as zero.
func (mc *Machine) read(addr uint16) (uint16, error) {
	switch addr {
	case DEV_KBSR:
		kb := mc.keyboard()

		if kb != nil && kb.KeyAvailable() {
			key, err := kb.ReadKey()
			if err != nil {
				return 0, errors.Wrap(err, "keyboard")
			}

			mc.State.Memory[DEV_KBSR] = 1 << 15
			mc.State.Memory[DEV_KBDR] = uint16(key)
		} else {
			mc.State.Memory[DEV_KBSR] = 0
		}

	case DEV_DSR:
		if mc.display() != nil {
			mc.State.Memory[DEV_DSR] = 1 << 15
		} else {
			mc.State.Memory[DEV_DSR] = 0
		}
	}

	if mc.Debugger != nil {
		mc.Debugger.Read(addr, mc)
	}

	if addr == DEV_DDR {
		return 0, nil
	}

	return mc.State.Memory[addr], nil
}

// write stores value at addr. Keyboard and display status registers are
// read-only; a DDR write sends one character to the display.
func (mc *Machine) write(addr uint16, value uint16) error {
	switch addr {
	case DEV_KBSR, DEV_KBDR, DEV_DSR:
		return nil

	case DEV_DDR:
		if err := mc.putc(byte(value & 0xFF)); err != nil {
			return err
		}

		if err := mc.flush(); err != nil {
			return err
		}
	}

	mc.State.Memory[addr] = value

	if mc.Debugger != nil {
		mc.Debugger.Write(addr, mc)
	}

	return nil
}

func (mc *Machine) putc(c byte) error {
	if d := mc.display(); d != nil {
		return errors.Wrap(d.WriteByte(c), "display")
	}

	return nil
}

func (mc *Machine) flush() error {
	if d := mc.display(); d != nil {
		return errors.Wrap(d.Flush(), "display")
	}

	return nil
}
