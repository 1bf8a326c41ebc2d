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

	"github.com/lassandro/lc3vm/pkg/encoding"
)

// Instruction is a raw instruction word. Accessors extract fields without
// validating them; an opcode simply ignores the fields it does not use.
type Instruction uint16

func (in Instruction) Opcode() uint16 { return uint16(in) >> 12 }

func (in Instruction) DR() uint16    { return (uint16(in) >> 9) & 0x7 }
func (in Instruction) SR1() uint16   { return (uint16(in) >> 6) & 0x7 }
func (in Instruction) BaseR() uint16 { return (uint16(in) >> 6) & 0x7 }
func (in Instruction) SR2() uint16   { return uint16(in) & 0x7 }
func (in Instruction) NZP() uint16   { return (uint16(in) >> 9) & 0x7 }

func (in Instruction) Immediate() bool { return (uint16(in)>>5)&0x1 == 1 }
func (in Instruction) Long() bool      { return (uint16(in)>>11)&0x1 == 1 }

func (in Instruction) Imm5() uint16 {
	return encoding.SignExtend(uint16(in)&0x1F, 5)
}

func (in Instruction) Offset6() uint16 {
	return encoding.SignExtend(uint16(in)&0x3F, 6)
}

func (in Instruction) PCOffset9() uint16 {
	return encoding.SignExtend(uint16(in)&0x1FF, 9)
}

func (in Instruction) PCOffset11() uint16 {
	return encoding.SignExtend(uint16(in)&0x7FF, 11)
}

func (in Instruction) TrapVector() uint16 {
	return encoding.ZeroExtend(uint16(in), 8)
}

// String renders the instruction in assembler syntax. Offsets are printed
// as signed decimals since the target depends on where the word lives.
func (in Instruction) String() string {
	switch op := in.Opcode(); op {
	case OP_ADD, OP_AND:
		if in.Immediate() {
			return fmt.Sprintf(
				"%s R%d, R%d, #%d",
				opNames[op], in.DR(), in.SR1(), int16(in.Imm5()),
			)
		}

		return fmt.Sprintf(
			"%s R%d, R%d, R%d", opNames[op], in.DR(), in.SR1(), in.SR2(),
		)

	case OP_BR:
		nzp := in.NZP()
		if nzp == 0 {
			return "NOP"
		}

		cond := ""
		if nzp&FLAG_NEG != 0 {
			cond += "n"
		}
		if nzp&FLAG_ZERO != 0 {
			cond += "z"
		}
		if nzp&FLAG_POS != 0 {
			cond += "p"
		}

		return fmt.Sprintf("BR%s #%d", cond, int16(in.PCOffset9()))

	case OP_JMP:
		if in.BaseR() == 7 {
			return "RET"
		}

		return fmt.Sprintf("JMP R%d", in.BaseR())

	case OP_JSR:
		if in.Long() {
			return fmt.Sprintf("JSR #%d", int16(in.PCOffset11()))
		}

		return fmt.Sprintf("JSRR R%d", in.BaseR())

	case OP_LD, OP_LDI, OP_LEA, OP_ST, OP_STI:
		return fmt.Sprintf(
			"%s R%d, #%d", opNames[op], in.DR(), int16(in.PCOffset9()),
		)

	case OP_LDR, OP_STR:
		return fmt.Sprintf(
			"%s R%d, R%d, #%d",
			opNames[op], in.DR(), in.BaseR(), int16(in.Offset6()),
		)

	case OP_NOT:
		return fmt.Sprintf("NOT R%d, R%d", in.DR(), in.SR1())

	case OP_TRAP:
		if name, ok := trapNames[in.TrapVector()]; ok {
			return name
		}

		return fmt.Sprintf("TRAP %#02x", in.TrapVector())

	default:
		return fmt.Sprintf(".FILL %#04x", uint16(in))
	}
}
