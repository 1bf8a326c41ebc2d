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

package terminal_test

import (
	"bytes"
	"io"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lassandro/lc3vm/pkg/machine"
	"github.com/lassandro/lc3vm/pkg/terminal"
)

var (
	_ machine.Keyboard = (*terminal.Terminal)(nil)
	_ machine.Display  = (*terminal.Terminal)(nil)
)

func TestPipeInput(t *testing.T) {
	r, w, err := os.Pipe()
	require.NoError(t, err)
	defer r.Close()
	defer w.Close()

	var out bytes.Buffer

	term, err := terminal.Open(r, &out)
	require.NoError(t, err)
	assert.False(t, term.Raw())

	assert.False(t, term.KeyAvailable())

	_, err = w.Write([]byte("ab"))
	require.NoError(t, err)

	assert.True(t, term.KeyAvailable())

	key, err := term.ReadKey()
	require.NoError(t, err)
	assert.Equal(t, byte('a'), key)

	// The second key sits in the read buffer, not the pipe
	assert.True(t, term.KeyAvailable())

	key, err = term.ReadKey()
	require.NoError(t, err)
	assert.Equal(t, byte('b'), key)

	assert.False(t, term.KeyAvailable())
}

func TestBufferedOutput(t *testing.T) {
	r, w, err := os.Pipe()
	require.NoError(t, err)
	defer r.Close()
	defer w.Close()

	var out bytes.Buffer

	term, err := terminal.Open(r, &out)
	require.NoError(t, err)

	require.NoError(t, term.WriteByte('x'))
	assert.Equal(t, "", out.String())

	require.NoError(t, term.Flush())
	assert.Equal(t, "x", out.String())

	// Nothing to restore on a pipe, any number of times
	require.NoError(t, term.Restore())
	require.NoError(t, term.Restore())

	resume, err := term.Suspend()
	require.NoError(t, err)
	require.NoError(t, resume())
}

func TestReadLine(t *testing.T) {
	r, w, err := os.Pipe()
	require.NoError(t, err)
	defer r.Close()

	term, err := terminal.Open(r, &bytes.Buffer{})
	require.NoError(t, err)

	_, err = w.Write([]byte("break add x3000\r\nq"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	line, err := term.ReadLine()
	require.NoError(t, err)
	assert.Equal(t, "break add x3000", line)

	line, err = term.ReadLine()
	require.NoError(t, err)
	assert.Equal(t, "q", line)

	_, err = term.ReadLine()
	assert.Equal(t, io.EOF, err)
}
