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

package debugger_test

import (
	"bytes"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/lassandro/lc3vm/pkg/debugger"
	"github.com/lassandro/lc3vm/pkg/machine"
)

var _ = Describe("Debugger", func() {
	var (
		mc     *machine.Machine
		dbg    *debugger.Debugger
		out    bytes.Buffer
		breaks []uint16
		reads  []uint16
		writes []uint16
	)

	BeforeEach(func() {
		out.Reset()
		breaks, reads, writes = nil, nil, nil

		dbg = &debugger.Debugger{
			Out: &out,
			HandleBreak: func(d *debugger.Debugger, m *machine.Machine) {
				breaks = append(breaks, m.State.Program)
			},
			HandleRead: func(addr uint16, d *debugger.Debugger, m *machine.Machine) {
				reads = append(reads, addr)
			},
			HandleWrite: func(addr uint16, d *debugger.Debugger, m *machine.Machine) {
				writes = append(writes, addr)
			},
		}

		mc = &machine.Machine{Debugger: dbg}
		mc.Reset()

		copy(mc.State.Memory[0x3000:], []uint16{
			0b0001_000_000_1_00001, // ADD R0 R0 #1
			0b0011_000_000000010,   // ST R0 #2
			0b0010_001_000000001,   // LD R1 #1
			0xF025,                 // HALT
		})
	})

	Context("Breakpoints", func() {
		It("should stop before the instruction at the address", func() {
			Expect(dbg.AddBreakpoint(0x3002)).To(BeTrue())

			Expect(mc.Run()).To(Succeed())
			Expect(breaks).To(Equal([]uint16{0x3002}))
			Expect(mc.State.Registers[1]).To(Equal(uint16(1)))
		})

		It("should refuse duplicates", func() {
			Expect(dbg.AddBreakpoint(0x3001)).To(BeTrue())
			Expect(dbg.AddBreakpoint(0x3001)).To(BeFalse())
			Expect(dbg.Breakpoints).To(HaveLen(1))
		})

		It("should remove by index", func() {
			dbg.AddBreakpoint(0x3001)
			dbg.AddBreakpoint(0x3002)

			Expect(dbg.RemoveBreakpoint(0)).To(BeTrue())
			Expect(dbg.Breakpoints).To(Equal([]debugger.Breakpoint{{Addr: 0x3002}}))
			Expect(dbg.RemoveBreakpoint(5)).To(BeFalse())
		})

		It("should break after every step while single-stepping", func() {
			dbg.Break = true

			Expect(mc.Run()).To(Succeed())
			Expect(breaks).To(Equal([]uint16{0x3001, 0x3002, 0x3003}))
		})

		It("should break on the next step after an interrupt", func() {
			dbg.Interrupt()
			dbg.HandleBreak = func(d *debugger.Debugger, m *machine.Machine) {
				breaks = append(breaks, m.State.Program)
				d.Break = false
			}

			Expect(mc.Run()).To(Succeed())
			Expect(breaks).To(Equal([]uint16{0x3001}))
		})

		It("should report an interrupt that is still pending", func() {
			Expect(dbg.Interrupt()).To(BeFalse())
			Expect(dbg.Interrupt()).To(BeTrue())

			dbg.HandleBreak = func(d *debugger.Debugger, m *machine.Machine) {
				breaks = append(breaks, m.State.Program)
				d.Break = false
			}

			Expect(mc.Run()).To(Succeed())
			Expect(breaks).To(Equal([]uint16{0x3001}))
			Expect(dbg.Interrupt()).To(BeFalse())
		})

		It("should let the handler halt the machine", func() {
			dbg.AddBreakpoint(0x3001)
			dbg.HandleBreak = func(d *debugger.Debugger, m *machine.Machine) {
				m.Halt()
			}

			Expect(mc.Run()).To(Succeed())
			Expect(mc.State.Program).To(Equal(uint16(0x3001)))
			Expect(mc.State.Memory[0x3004]).To(Equal(uint16(0)))
		})
	})

	Context("Watchpoints", func() {
		It("should report writes only to write watches", func() {
			dbg.AddWatchpoint(0x3004, debugger.WriteWatch)

			Expect(mc.Run()).To(Succeed())
			Expect(writes).To(Equal([]uint16{0x3004}))
			Expect(reads).To(BeEmpty())
		})

		It("should report reads only to read watches", func() {
			dbg.AddWatchpoint(0x3004, debugger.ReadWatch)

			Expect(mc.Run()).To(Succeed())
			Expect(reads).To(Equal([]uint16{0x3004}))
			Expect(writes).To(BeEmpty())
		})

		It("should merge kinds on the same address", func() {
			dbg.AddWatchpoint(0x3004, debugger.ReadWatch)
			dbg.AddWatchpoint(0x3004, debugger.WriteWatch)

			Expect(dbg.Watchpoints).To(Equal([]debugger.Watchpoint{
				{Addr: 0x3004, Type: debugger.ReadWriteWatch},
			}))

			Expect(mc.Run()).To(Succeed())
			Expect(reads).To(Equal([]uint16{0x3004}))
			Expect(writes).To(Equal([]uint16{0x3004}))

			Expect(dbg.RemoveWatchpoint(0)).To(BeTrue())
			Expect(dbg.Watchpoints).To(BeEmpty())
		})
	})

	Context("Listings", func() {
		It("should disassemble around the program counter", func() {
			dbg.PrintCode(&mc.State, 0x3000, 2)

			Expect(out.String()).To(ContainSubstring("ADD R0, R0, #1"))
			Expect(out.String()).To(ContainSubstring("ST R0, #2"))
			Expect(out.String()).To(HavePrefix("=>"))
		})

		It("should print registers and the condition code", func() {
			mc.State.Registers[5] = 0xBEEF

			dbg.PrintRegisters(&mc.State)

			Expect(out.String()).To(ContainSubstring("0xbeef"))
			Expect(out.String()).To(ContainSubstring("0x3000"))
			Expect(out.String()).To(ContainSubstring("Z"))
		})

		It("should print memory four words to a line", func() {
			dbg.PrintMem(&mc.State, 0x3000, 8)

			Expect(out.String()).To(ContainSubstring("[0x3000]"))
			Expect(out.String()).To(ContainSubstring("[0x3004]"))
			Expect(out.String()).To(ContainSubstring("0xf025"))
		})
	})
})
