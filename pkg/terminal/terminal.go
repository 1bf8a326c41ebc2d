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

// Package terminal puts the controlling terminal into the raw mode the
// machine expects and exposes it as the machine's keyboard and display.
package terminal

import (
	"bufio"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/pkg/errors"
	"github.com/pkg/term/termios"
	"golang.org/x/sys/unix"
	"golang.org/x/term"
)

type Terminal struct {
	in      *os.File
	reader  *bufio.Reader
	writer  *bufio.Writer
	restore unix.Termios
	raw     bool
	once    sync.Once
	err     error
}

// Open wraps in and out. When in is a terminal it is switched to
// non-canonical, no-echo mode until Restore is called; pipes and files are
// used as they are.
func Open(in *os.File, out io.Writer) (*Terminal, error) {
	t := &Terminal{
		in:     in,
		reader: bufio.NewReader(in),
		writer: bufio.NewWriter(out),
	}

	if !term.IsTerminal(int(in.Fd())) {
		return t, nil
	}

	if err := termios.Tcgetattr(in.Fd(), &t.restore); err != nil {
		return nil, errors.Wrap(err, "tcgetattr")
	}

	state := t.restore

	state.Iflag &^= unix.IGNBRK | unix.BRKINT | unix.INLCR
	state.Lflag &^= unix.ECHO | unix.ECHONL | unix.ICANON | unix.IEXTEN
	state.Cflag &^= unix.CSIZE | unix.PARENB
	state.Cflag |= unix.CS8

	state.Cc[unix.VMIN] = 1
	state.Cc[unix.VTIME] = 0

	if err := termios.Tcsetattr(in.Fd(), termios.TCSANOW, &state); err != nil {
		return nil, errors.Wrap(err, "tcsetattr")
	}

	t.raw = true
	return t, nil
}

// Raw reports whether Open changed the terminal settings.
func (t *Terminal) Raw() bool {
	return t.raw
}

// Restore puts the terminal settings back. It is safe to call from
// several exit paths, including a signal handler; only the first call acts.
// Pending output is not flushed here since the display may still be in use
// by the machine.
func (t *Terminal) Restore() error {
	t.once.Do(func() {
		if t.raw {
			t.err = errors.Wrap(
				termios.Tcsetattr(t.in.Fd(), termios.TCSANOW, &t.restore),
				"tcsetattr",
			)
		}
	})

	return t.err
}

// Suspend hands the terminal back in its original mode, for example to an
// interactive prompt, and returns a function that re-enters raw mode.
func (t *Terminal) Suspend() (resume func() error, err error) {
	if !t.raw {
		return func() error { return nil }, nil
	}

	var state unix.Termios
	if err := termios.Tcgetattr(t.in.Fd(), &state); err != nil {
		return nil, errors.Wrap(err, "tcgetattr")
	}

	if err := termios.Tcsetattr(t.in.Fd(), termios.TCSANOW, &t.restore); err != nil {
		return nil, errors.Wrap(err, "tcsetattr")
	}

	return func() error {
		return errors.Wrap(
			termios.Tcsetattr(t.in.Fd(), termios.TCSANOW, &state), "tcsetattr",
		)
	}, nil
}

// KeyAvailable reports whether ReadKey would return without blocking.
func (t *Terminal) KeyAvailable() bool {
	if t.reader.Buffered() > 0 {
		return true
	}

	fds := []unix.PollFd{{Fd: int32(t.in.Fd()), Events: unix.POLLIN}}

	for {
		n, err := unix.Poll(fds, 0)
		if err == unix.EINTR {
			continue
		}

		return err == nil && n > 0 && fds[0].Revents&unix.POLLIN != 0
	}
}

func (t *Terminal) ReadKey() (byte, error) {
	return t.reader.ReadByte()
}

// ReadLine reads a line of cooked input, without the line terminator.
// Keys typed ahead of the line stay queued for the machine.
func (t *Terminal) ReadLine() (string, error) {
	line, err := t.reader.ReadString('\n')
	if err != nil && !(err == io.EOF && len(line) > 0) {
		return "", err
	}

	return strings.TrimRight(line, "\r\n"), nil
}

func (t *Terminal) WriteByte(c byte) error {
	return t.writer.WriteByte(c)
}

func (t *Terminal) Flush() error {
	return t.writer.Flush()
}
