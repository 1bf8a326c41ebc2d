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
	"fmt"
	"io"
	"log"
	"math"
	"os"
	"strings"

	"github.com/lassandro/lc3vm/pkg/debugger"
	"github.com/lassandro/lc3vm/pkg/encoding"
	"github.com/lassandro/lc3vm/pkg/machine"
	"github.com/lassandro/lc3vm/pkg/terminal"
)

type session struct {
	term    *terminal.Terminal
	mc      *machine.Machine
	config  *config
	lastcmd []string
}

// newDebugger wires the prompt to the machine hooks. Watchpoints fire in
// the middle of an instruction, so they only request a break; the prompt
// opens once the instruction has finished.
func newDebugger(s *session) *debugger.Debugger {
	return &debugger.Debugger{
		Out: os.Stdout,
		HandleBreak: func(dbg *debugger.Debugger, mc *machine.Machine) {
			if !dbg.Break {
				fmt.Println()
				fmt.Println("Program stopped")
			}
			dbg.PrintCode(&mc.State, mc.State.Program, 1)
			s.repl(dbg)
		},
		HandleRead: func(addr uint16, dbg *debugger.Debugger, mc *machine.Machine) {
			fmt.Println()
			fmt.Println("Program stopped (read)")
			dbg.PrintMem(&mc.State, addr, 1)
			dbg.Break = true
		},
		HandleWrite: func(addr uint16, dbg *debugger.Debugger, mc *machine.Machine) {
			fmt.Println()
			fmt.Println("Program stopped (write)")
			dbg.PrintMem(&mc.State, addr, 1)
			dbg.Break = true
		},
	}
}

// parseCount accepts a decimal count in the formats: #8, 8
func parseCount(s string) (uint16, error) {
	value, err := encoding.DecodeInt(s)
	if err != nil {
		return 0, err
	}

	if value < 0 {
		return 0, fmt.Errorf("count must not be negative: %d", value)
	}

	return uint16(value), nil
}

// parseRange reads "[0x####|#] [#]": an optional start address and an
// optional count, where a lone decimal is a count from PC.
func parseRange(args []string, pc uint16, size uint16) (uint16, uint16, error) {
	addr := pc

	if len(args) > 0 {
		value, err := encoding.DecodeHex(args[0])

		if err == nil {
			addr = value
		} else if size, err = parseCount(args[0]); err != nil {
			return 0, 0, err
		}
	}

	if len(args) > 1 {
		value, err := parseCount(args[1])
		if err != nil {
			return 0, 0, err
		}

		size = value
	}

	return addr, size, nil
}

func debugBreak(dbg *debugger.Debugger, args []string) {
	const usage = "break [add|list|remove|clear]"

	if len(args) == 0 {
		args = append(args, "l")
	}

	cmd := args[0]
	args = args[1:]

	switch cmd {
	case "a", "add":
		const usage = "break add [0x####]"

		if len(args) != 1 {
			log.Println(usage)
			return
		}

		addr, err := encoding.DecodeHex(args[0])

		if err != nil {
			log.Println(err)
			return
		}

		if dbg.AddBreakpoint(addr) {
			fmt.Printf("Breakpoint added [%#04x]\n", addr)
		}

	case "l", "ls", "list":
		fmtstring := indexFormat(len(dbg.Breakpoints))

		for i, breakpoint := range dbg.Breakpoints {
			fmt.Printf(fmtstring, i, breakpoint.Addr, "")
		}

	case "r", "rm", "remove":
		const usage = "break remove [#]"

		if len(args) != 1 {
			log.Println(usage)
			return
		}

		i, err := parseCount(args[0])

		if err != nil {
			log.Println(err)
			return
		}

		if !dbg.RemoveBreakpoint(int(i)) {
			log.Println("Invalid breakpoint number")
			return
		}

		fmt.Printf("Breakpoint removed [%d]\n", i)

	case "clear":
		dbg.Breakpoints = nil
		fmt.Println("Breakpoints reset")

	default:
		log.Printf("break: '%s' is not a valid command\n", cmd)
		log.Println(usage)
	}
}

var watchNames = map[debugger.WatchpointType]string{
	debugger.ReadWatch:      "read",
	debugger.WriteWatch:     "write",
	debugger.ReadWriteWatch: "readwrite",
}

func debugWatch(dbg *debugger.Debugger, args []string) {
	const usage = "watch [add|list|remove|clear]"

	if len(args) == 0 {
		args = append(args, "l")
	}

	cmd := args[0]
	args = args[1:]

	switch cmd {
	case "a", "add":
		const usage = "watch add [r|w|rw] [0x####]"

		if len(args) != 2 {
			log.Println(usage)
			return
		}

		var kind debugger.WatchpointType

		switch args[0] {
		case "r", "read":
			kind = debugger.ReadWatch
		case "w", "write":
			kind = debugger.WriteWatch
		case "rw", "rwrite", "readwrite":
			kind = debugger.ReadWriteWatch
		default:
			log.Println(usage)
			return
		}

		addr, err := encoding.DecodeHex(args[1])

		if err != nil {
			log.Println(err)
			return
		}

		dbg.AddWatchpoint(addr, kind)
		fmt.Printf("Watchpoint added [%#04x]\n", addr)

	case "l", "ls", "list":
		fmtstring := indexFormat(len(dbg.Watchpoints))

		for i, watchpoint := range dbg.Watchpoints {
			fmt.Printf(fmtstring, i, watchpoint.Addr, watchNames[watchpoint.Type])
		}

	case "r", "rm", "remove":
		const usage = "watch remove [#]"

		if len(args) != 1 {
			log.Println(usage)
			return
		}

		i, err := parseCount(args[0])

		if err != nil {
			log.Println(err)
			return
		}

		if !dbg.RemoveWatchpoint(int(i)) {
			log.Println("Invalid watchpoint number")
			return
		}

		fmt.Printf("Watchpoint removed [%d]\n", i)

	case "clear":
		dbg.Watchpoints = nil
		fmt.Println("Watchpoints reset")

	default:
		log.Printf("watch: '%s' is not a valid command\n", cmd)
		log.Println(usage)
	}
}

// indexFormat pads list indices to the width of the largest one.
func indexFormat(n int) string {
	digits := math.Floor(math.Log10(float64(n + 1)))
	return fmt.Sprintf("#%%0%dd: %%#04x %%s\n", int64(digits)+1)
}

func debugReg(dbg *debugger.Debugger, mc *machine.MachineState, args []string) {
	const usage = "register [R#|PC|CC] [0x####]"

	if len(args) == 0 {
		dbg.PrintRegisters(mc)
		return
	}

	if len(args) != 2 {
		log.Println(usage)
		return
	}

	value, err := encoding.DecodeHex(args[1])

	if err != nil {
		log.Println(err)
		return
	}

	name := strings.ToUpper(args[0])

	switch {
	case len(name) == 2 && name[0] == 'R' && name[1] >= '0' && name[1] <= '7':
		mc.Registers[name[1]-'0'] = value
	case name == "PC":
		mc.Program = value
	case name == "CC":
		if value != machine.FLAG_NEG && value != machine.FLAG_ZERO &&
			value != machine.FLAG_POS {
			log.Println("Condition must be 0x1, 0x2 or 0x4")
			return
		}
		mc.Condition = value
	default:
		log.Println("Invalid register")
		return
	}

	fmt.Printf("\033[1m%s:\033[0m %#04x\n", name, value)
}

func debugCode(dbg *debugger.Debugger, mc *machine.MachineState, args []string) {
	const usage = "code [0x####|#] [#]"

	if len(args) > 2 {
		log.Println(usage)
		return
	}

	addr, size, err := parseRange(args, mc.Program, 8)

	if err != nil {
		log.Println(err)
		return
	}

	dbg.PrintCode(mc, addr, size)
}

func debugMemory(dbg *debugger.Debugger, mc *machine.MachineState, args []string) {
	const usage = "memory [0x####|#] [#]"

	if len(args) > 2 {
		log.Println(usage)
		return
	}

	addr, size, err := parseRange(args, mc.Program, 1)

	if err != nil {
		log.Println(err)
		return
	}

	dbg.PrintMem(mc, addr, size)
}

func debugJump(mc *machine.MachineState, args []string) {
	const usage = "jump [0x####]"

	if len(args) != 1 {
		log.Println(usage)
		return
	}

	addr, err := encoding.DecodeHex(args[0])

	if err != nil {
		log.Println(err)
		return
	}

	mc.Program = addr
	fmt.Printf("\033[1mPC:\033[0m %#04x\n", addr)
}

func debugSet(dbg *debugger.Debugger, mc *machine.MachineState, args []string) {
	const usage = "set [0x####] [0x####]"

	if len(args) != 2 {
		log.Println(usage)
		return
	}

	addr, err := encoding.DecodeHex(args[0])

	if err != nil {
		log.Println(err)
		return
	}

	value, err := encoding.DecodeHex(args[1])

	if err != nil {
		log.Println(err)
		return
	}

	mc.Memory[addr] = value
	dbg.PrintMem(mc, addr, 1)
}

// repl runs with the terminal in its original mode and returns when the
// machine should resume.
func (s *session) repl(dbg *debugger.Debugger) {
	resume, err := s.term.Suspend()

	if err != nil {
		log.Println(err)
		s.mc.Halt()
		return
	}

	defer func() {
		if err := resume(); err != nil {
			log.Println(err)
			s.mc.Halt()
		}
	}()

	for {
		fmt.Print("\033[1;30m(dbg)\033[0m ")

		line, err := s.term.ReadLine()

		if err != nil {
			if err != io.EOF {
				log.Println(err)
			}
			fmt.Println()
			s.mc.Halt()
			return
		}

		args := strings.Fields(line)

		if len(args) == 0 {
			if len(s.lastcmd) == 0 {
				continue
			}
			args = s.lastcmd
		} else {
			s.lastcmd = make([]string, len(args))
			copy(s.lastcmd, args)
		}

		cmd := args[0]
		args = args[1:]

		switch cmd {
		case "b", "bp", "break", "breakpoint":
			debugBreak(dbg, args)

		case "w", "wp", "watch", "watchpoint":
			debugWatch(dbg, args)

		case "r", "reg", "register", "registers":
			debugReg(dbg, &s.mc.State, args)

		case "l", "list", "code":
			debugCode(dbg, &s.mc.State, args)

		case "j", "jmp", "jump":
			debugJump(&s.mc.State, args)

		case "m", "mem", "memory":
			debugMemory(dbg, &s.mc.State, args)

		case "set":
			debugSet(dbg, &s.mc.State, args)

		case "c", "continue":
			dbg.Break = false
			return

		case "n", "next", "s", "step":
			dbg.Break = true
			return

		case "q", "quit", "exit":
			s.mc.Halt()
			return

		case "clear":
			fmt.Print("\033[H\033[2J")

		case "reset":
			if err := loadImages(s.mc, s.config); err != nil {
				log.Println(err)
				continue
			}
			dbg.PrintCode(&s.mc.State, s.mc.State.Program, 1)

		default:
			fmt.Printf("error: '%s' is not a valid command\n", cmd)
		}
	}
}
