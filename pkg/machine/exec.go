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

type handler func(mc *Machine, in Instruction) error

// handlers maps each opcode to the function implementing it.
var handlers = [16]handler{
	OP_BR:   (*Machine).execBranch,
	OP_ADD:  (*Machine).execAdd,
	OP_LD:   (*Machine).execLoad,
	OP_ST:   (*Machine).execStore,
	OP_JSR:  (*Machine).execJumpSubroutine,
	OP_AND:  (*Machine).execAnd,
	OP_LDR:  (*Machine).execLoadRegister,
	OP_STR:  (*Machine).execStoreRegister,
	OP_RTI:  (*Machine).execInvalid,
	OP_NOT:  (*Machine).execNot,
	OP_LDI:  (*Machine).execLoadIndirect,
	OP_STI:  (*Machine).execStoreIndirect,
	OP_JMP:  (*Machine).execJump,
	OP_RES:  (*Machine).execInvalid,
	OP_LEA:  (*Machine).execLoadEffectiveAddress,
	OP_TRAP: (*Machine).execTrap,
}

func (mc *Machine) setFlags(value uint16) {
	if value == 0 {
		mc.State.Condition = FLAG_ZERO
	} else if value>>15 == 1 {
		mc.State.Condition = FLAG_NEG
	} else {
		mc.State.Condition = FLAG_POS
	}
}

func (mc *Machine) setRegister(r uint16, value uint16) {
	mc.State.Registers[r] = value
	mc.setFlags(value)
}

// BR   |0000    |N|Z|P|PCoffset9         | Conditional branch
// ---- [ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ ]
func (mc *Machine) execBranch(in Instruction) error {
	if in.NZP()&mc.State.Condition != 0 {
		mc.State.Program += in.PCOffset9()
	}

	return nil
}

// ADD  |0001    |DR   |SR1  |0|00 |SR2   | Register  addition
// ADD  |0001    |DR   |SR1  |1|imm5      | Immediate addition
// ---- [ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ ]
func (mc *Machine) execAdd(in Instruction) error {
	mc.setRegister(in.DR(), mc.State.Registers[in.SR1()]+mc.operand2(in))
	return nil
}

// AND  |0101    |DR   |SR1  |0|00 |SR2   | Register  bitwise
// AND  |0101    |DR   |SR1  |1|imm5      | Immediate bitwise
// ---- [ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ ]
func (mc *Machine) execAnd(in Instruction) error {
	mc.setRegister(in.DR(), mc.State.Registers[in.SR1()]&mc.operand2(in))
	return nil
}

func (mc *Machine) operand2(in Instruction) uint16 {
	if in.Immediate() {
		return in.Imm5()
	}

	return mc.State.Registers[in.SR2()]
}

// NOT  |1001    |DR   |SR   |1|11111     | Bitwise complement
// ---- [ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ ]
func (mc *Machine) execNot(in Instruction) error {
	mc.setRegister(in.DR(), ^mc.State.Registers[in.SR1()])
	return nil
}

// LD   |0010    |DR   |PCoffset9         | Load
// ---- [ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ ]
func (mc *Machine) execLoad(in Instruction) error {
	value, err := mc.read(mc.State.Program + in.PCOffset9())
	if err != nil {
		return err
	}

	mc.setRegister(in.DR(), value)
	return nil
}

// LDI  |1010    |DR   |PCoffset9         | Load indirect
// ---- [ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ ]
func (mc *Machine) execLoadIndirect(in Instruction) error {
	addr, err := mc.read(mc.State.Program + in.PCOffset9())
	if err != nil {
		return err
	}

	value, err := mc.read(addr)
	if err != nil {
		return err
	}

	mc.setRegister(in.DR(), value)
	return nil
}

// LDR  |0110    |DR   |BaseR|offset6     | Load base+offset
// ---- [ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ ]
func (mc *Machine) execLoadRegister(in Instruction) error {
	value, err := mc.read(mc.State.Registers[in.BaseR()] + in.Offset6())
	if err != nil {
		return err
	}

	mc.setRegister(in.DR(), value)
	return nil
}

// LEA  |1110    |DR   |PCoffset9         | Load effective address
// ---- [ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ ]
func (mc *Machine) execLoadEffectiveAddress(in Instruction) error {
	mc.setRegister(in.DR(), mc.State.Program+in.PCOffset9())
	return nil
}

// ST   |0011    |SR   |PCoffset9         | Store
// ---- [ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ ]
func (mc *Machine) execStore(in Instruction) error {
	return mc.write(mc.State.Program+in.PCOffset9(), mc.State.Registers[in.DR()])
}

// STI  |1011    |SR   |PCoffset9         | Store indirect
// ---- [ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ ]
func (mc *Machine) execStoreIndirect(in Instruction) error {
	addr, err := mc.read(mc.State.Program + in.PCOffset9())
	if err != nil {
		return err
	}

	return mc.write(addr, mc.State.Registers[in.DR()])
}

// STR  |0111    |SR   |BaseR|offset6     | Store base+offset
// ---- [ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ ]
func (mc *Machine) execStoreRegister(in Instruction) error {
	return mc.write(
		mc.State.Registers[in.BaseR()]+in.Offset6(),
		mc.State.Registers[in.DR()],
	)
}

// JMP  |1100    |000  |BaseR|000000      | Jump
// RET  |1100    |000  |111  |000000      | Return
// ---- [ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ ]
func (mc *Machine) execJump(in Instruction) error {
	mc.State.Program = mc.State.Registers[in.BaseR()]
	return nil
}

// JSR  |0100    |1|PCoffset11            | Jump to subroutine
// JSRR |0100    |0|00 |BaseR|000000      | Jump to subroutine register
// ---- [ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ ]
func (mc *Machine) execJumpSubroutine(in Instruction) error {
	target := mc.State.Program + in.PCOffset11()
	if !in.Long() {
		target = mc.State.Registers[in.BaseR()]
	}

	mc.State.Registers[7] = mc.State.Program
	mc.State.Program = target
	return nil
}

// RTI  |1000    |000000000000            | Return from interrupt
// RES  |1101    |                        | Reserved (illegal)
// ---- [ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ ]
func (mc *Machine) execInvalid(in Instruction) error {
	return &InvalidOpcodeError{
		Addr:        mc.State.Program - 1,
		Instruction: uint16(in),
	}
}
